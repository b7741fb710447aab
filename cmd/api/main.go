package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/MrJamesThe3rd/tilly/internal/analytics"
	"github.com/MrJamesThe3rd/tilly/internal/audit"
	auditStore "github.com/MrJamesThe3rd/tilly/internal/audit/store"
	"github.com/MrJamesThe3rd/tilly/internal/catalog"
	catalogStore "github.com/MrJamesThe3rd/tilly/internal/catalog/store"
	"github.com/MrJamesThe3rd/tilly/internal/config"
	"github.com/MrJamesThe3rd/tilly/internal/database"
	tillyHttp "github.com/MrJamesThe3rd/tilly/internal/http"
	analyticsHandler "github.com/MrJamesThe3rd/tilly/internal/http/analytics"
	auditHandler "github.com/MrJamesThe3rd/tilly/internal/http/audit"
	authHandler "github.com/MrJamesThe3rd/tilly/internal/http/auth"
	importHandler "github.com/MrJamesThe3rd/tilly/internal/http/importcsv"
	productHandler "github.com/MrJamesThe3rd/tilly/internal/http/product"
	reportHandler "github.com/MrJamesThe3rd/tilly/internal/http/report"
	saleHandler "github.com/MrJamesThe3rd/tilly/internal/http/sale"
	"github.com/MrJamesThe3rd/tilly/internal/importer"
	"github.com/MrJamesThe3rd/tilly/internal/pos"
	posStore "github.com/MrJamesThe3rd/tilly/internal/pos/store"
	"github.com/MrJamesThe3rd/tilly/internal/report"
	"github.com/MrJamesThe3rd/tilly/internal/sale"
	saleStore "github.com/MrJamesThe3rd/tilly/internal/sale/store"
	"github.com/MrJamesThe3rd/tilly/internal/user"
	userStore "github.com/MrJamesThe3rd/tilly/internal/user/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.DB.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		auditService     = audit.NewService(auditStore.New(db))
		userService      = user.NewService(userStore.New(db))
		catalogService   = catalog.NewService(catalogStore.New(db), auditService)
		saleService      = sale.NewService(saleStore.New(db))
		posService       = pos.NewService(posStore.New(db), auditService)
		analyticsService = analytics.NewService(saleService)
		reportService    = report.NewService(saleService)
		importService    = importer.NewService()
	)

	var (
		authH      = authHandler.NewHandler(userService, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		productsH  = productHandler.NewHandler(catalogService)
		salesH     = saleHandler.NewHandler(saleService, posService)
		analyticsH = analyticsHandler.NewHandler(analyticsService)
		auditH     = auditHandler.NewHandler(auditService)
		reportsH   = reportHandler.NewHandler(reportService)
		importH    = importHandler.NewHandler(importService, catalogService)
	)

	router := tillyHttp.New(authH, productsH, salesH, analyticsH, auditH, reportsH, importH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
