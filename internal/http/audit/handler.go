package audit

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tilly/internal/audit"
	"github.com/MrJamesThe3rd/tilly/internal/http/auth"
)

type Handler struct {
	svc *audit.Service
}

func NewHandler(svc *audit.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

type entryResponse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Username   string    `json:"username"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   int64     `json:"entity_id"`
	OldValue   *string   `json:"old_value,omitempty"`
	NewValue   *string   `json:"new_value,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	if !auth.ActorFromContext(r.Context()).CanViewAuditLog() {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	entityType := r.URL.Query().Get("entity_type")
	entityIDStr := r.URL.Query().Get("entity_id")

	var (
		entries []*audit.Entry
		err     error
	)

	switch {
	case entityType != "" && entityIDStr != "":
		var entityID int64

		entityID, err = strconv.ParseInt(entityIDStr, 10, 64)
		if err != nil {
			http.Error(w, "invalid entity_id", http.StatusBadRequest)
			return
		}

		entries, err = h.svc.ListByEntity(r.Context(), entityType, entityID)
	case entityType != "":
		entries, err = h.svc.ListByEntityType(r.Context(), entityType)
	default:
		entries, err = h.svc.List(r.Context())
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = entryResponse{
			ID:         e.ID,
			UserID:     e.UserID,
			Username:   e.Username,
			Action:     e.Action,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			OldValue:   e.OldValue,
			NewValue:   e.NewValue,
			Timestamp:  e.Timestamp,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
