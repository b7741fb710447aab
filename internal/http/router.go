package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	analyticsHandler "github.com/MrJamesThe3rd/tilly/internal/http/analytics"
	auditHandler "github.com/MrJamesThe3rd/tilly/internal/http/audit"
	"github.com/MrJamesThe3rd/tilly/internal/http/auth"
	"github.com/MrJamesThe3rd/tilly/internal/http/importcsv"
	productHandler "github.com/MrJamesThe3rd/tilly/internal/http/product"
	reportHandler "github.com/MrJamesThe3rd/tilly/internal/http/report"
	saleHandler "github.com/MrJamesThe3rd/tilly/internal/http/sale"
)

func New(
	authV1 *auth.Handler,
	productsV1 *productHandler.Handler,
	salesV1 *saleHandler.Handler,
	analyticsV1 *analyticsHandler.Handler,
	auditV1 *auditHandler.Handler,
	reportsV1 *reportHandler.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(authV1.Verify)

			r.Route("/products", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				productsV1.Routes(r)
			})

			r.Route("/sales", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				salesV1.Routes(r)
			})

			r.Route("/analytics", analyticsV1.Routes)

			r.Route("/audit", auditV1.Routes)

			r.Route("/reports", reportsV1.Routes)

			r.Route("/import", importV1.Routes)
		})
	})

	return router
}
