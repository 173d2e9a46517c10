package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/kleinsmith/orthobill/internal/auth"
	"github.com/kleinsmith/orthobill/internal/catalog"
	"github.com/kleinsmith/orthobill/internal/config"
	orthoHttp "github.com/kleinsmith/orthobill/internal/http"
	authHandler "github.com/kleinsmith/orthobill/internal/http/auth"
	catalogHandler "github.com/kleinsmith/orthobill/internal/http/catalog"
	invoiceHandler "github.com/kleinsmith/orthobill/internal/http/invoice"
	quotationHandler "github.com/kleinsmith/orthobill/internal/http/quotation"
	reportHandler "github.com/kleinsmith/orthobill/internal/http/report"
	"github.com/kleinsmith/orthobill/internal/invoice"
	invoiceStore "github.com/kleinsmith/orthobill/internal/invoice/store"
	"github.com/kleinsmith/orthobill/internal/quotation"
	quotationStore "github.com/kleinsmith/orthobill/internal/quotation/store"
	"github.com/kleinsmith/orthobill/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	index, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		slog.Error("failed to load ICD-10 catalog", "error", err)
		os.Exit(1)
	}

	slog.Info("catalog loaded", "entries", index.Len())

	authService, err := auth.NewService(cfg.Auth.Secret, cfg.Auth.TokenTTL, cfg.Auth.LoginDelay, auth.DemoUsers())
	if err != nil {
		slog.Error("failed to initialise auth", "error", err)
		os.Exit(1)
	}

	quotations := quotationStore.New()
	invoices := invoiceStore.New()

	var (
		invoiceService   = invoice.NewService(invoices, invoice.LogNotifier{})
		quotationService = quotation.NewService(quotations, invoiceService)
	)

	if cfg.Demo.Seed {
		if err := seed.Demo(context.Background(), quotations, invoices); err != nil {
			slog.Error("failed to seed demo data", "error", err)
			os.Exit(1)
		}
	}

	var (
		authH      = authHandler.NewHandler(authService)
		catalogH   = catalogHandler.NewHandler(index)
		quotationH = quotationHandler.NewHandler(quotationService)
		invoiceH   = invoiceHandler.NewHandler(invoiceService)
		reportH    = reportHandler.NewHandler(quotationService, invoiceService)
	)

	router := orthoHttp.New(authService, authH, catalogH, quotationH, invoiceH, reportH)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "addr", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
