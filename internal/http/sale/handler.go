package sale

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tilly/internal/catalog"
	"github.com/MrJamesThe3rd/tilly/internal/http/auth"
	"github.com/MrJamesThe3rd/tilly/internal/pos"
	"github.com/MrJamesThe3rd/tilly/internal/sale"
)

type Handler struct {
	sales *sale.Service
	pos   *pos.Service
}

func NewHandler(sales *sale.Service, posSvc *pos.Service) *Handler {
	return &Handler{sales: sales, pos: posSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.record)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

type saleResponse struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Category    string    `json:"category,omitempty"`
	Quantity    int64     `json:"quantity"`
	TotalPrice  int64     `json:"total_price"`
	SaleDate    time.Time `json:"sale_date"`
	UserID      int64     `json:"user_id"`
}

func toResponse(sl *sale.Sale) saleResponse {
	return saleResponse{
		ID:          sl.ID,
		ProductID:   sl.ProductID,
		ProductName: sl.ProductName,
		Category:    sl.Category,
		Quantity:    sl.Quantity,
		TotalPrice:  sl.TotalPrice,
		SaleDate:    sl.SaleDate,
		UserID:      sl.UserID,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var start, end *time.Time

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			start = new(t)
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			e := t.Add(24*time.Hour - time.Second)
			end = &e
		}
	}

	var (
		sales []*sale.Sale
		err   error
	)

	if start != nil && end != nil {
		sales, err = h.sales.ListBetween(r.Context(), *start, *end)
	} else {
		sales, err = h.sales.List(r.Context())
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]saleResponse, len(sales))
	for i, sl := range sales {
		resp[i] = toResponse(sl)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	sl, err := h.sales.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, sale.ErrNotFound) {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toResponse(sl))
}

type recordSaleRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type insufficientStockResponse struct {
	Error     string `json:"error"`
	Available int64  `json:"available"`
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var req recordSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	actor := auth.ActorFromContext(r.Context())

	sl, err := h.pos.RecordSale(r.Context(), actor, req.ProductID, req.Quantity)
	if err != nil {
		var stockErr *pos.InsufficientStockError

		switch {
		case errors.Is(err, pos.ErrInvalidQuantity):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, catalog.ErrNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		case errors.As(err, &stockErr):
			writeJSON(w, http.StatusConflict, insufficientStockResponse{
				Error:     stockErr.Error(),
				Available: stockErr.Available,
			})
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	writeJSON(w, http.StatusCreated, toResponse(sl))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	actor := auth.ActorFromContext(r.Context())

	if err := h.pos.DeleteSale(r.Context(), actor, id); err != nil {
		if errors.Is(err, sale.ErrNotFound) {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
