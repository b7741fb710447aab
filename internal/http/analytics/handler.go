package analytics

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tilly/internal/analytics"
)

type Handler struct {
	svc *analytics.Service
}

func NewHandler(svc *analytics.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/top-products", h.topProducts)
	r.Get("/category-shares", h.categoryShares)
}

type totalsResponse struct {
	Count   int   `json:"count"`
	Units   int64 `json:"units"`
	Revenue int64 `json:"revenue"`
}

type summaryResponse struct {
	Total totalsResponse `json:"total"`
	Today totalsResponse `json:"today"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	total, err := h.svc.Totals(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	start, end := analytics.Today()

	today, err := h.svc.TotalsBetween(r.Context(), start, end)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, summaryResponse{
		Total: totalsResponse(total),
		Today: totalsResponse(today),
	})
}

func (h *Handler) topProducts(w http.ResponseWriter, r *http.Request) {
	limit := 10

	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	ranked, err := h.svc.TopProducts(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, ranked)
}

func (h *Handler) categoryShares(w http.ResponseWriter, r *http.Request) {
	shares, err := h.svc.CategoryShares(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, shares)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
