package report

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tilly/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/sales.csv", h.salesCSV)
	r.Get("/sales.pdf", h.salesPDF)
}

func (h *Handler) salesCSV(w http.ResponseWriter, r *http.Request) {
	sales, err := h.svc.Sales(r.Context(), filterFromQuery(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"sales_report_%s.csv\"", time.Now().Format("20060102")))

	if err := report.WriteCSV(w, sales); err != nil {
		slog.Error("failed to write csv report", "error", err)
	}
}

func (h *Handler) salesPDF(w http.ResponseWriter, r *http.Request) {
	sales, err := h.svc.Sales(r.Context(), filterFromQuery(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"sales_report_%s.pdf\"", time.Now().Format("20060102")))

	if err := report.WritePDF(w, sales); err != nil {
		slog.Error("failed to write pdf report", "error", err)
	}
}

func filterFromQuery(r *http.Request) report.Filter {
	var filter report.Filter

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = new(t)
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			e := t.Add(24*time.Hour - time.Second)
			filter.EndDate = &e
		}
	}

	return filter
}
