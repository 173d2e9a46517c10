package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	internalauth "github.com/kleinsmith/orthobill/internal/auth"
	authv1 "github.com/kleinsmith/orthobill/internal/http/auth"
	catalogv1 "github.com/kleinsmith/orthobill/internal/http/catalog"
	invoicev1 "github.com/kleinsmith/orthobill/internal/http/invoice"
	quotationv1 "github.com/kleinsmith/orthobill/internal/http/quotation"
	reportv1 "github.com/kleinsmith/orthobill/internal/http/report"
)

func New(
	sessions *internalauth.Service,
	authV1 *authv1.Handler,
	catalogV1 *catalogv1.Handler,
	quotationsV1 *quotationv1.Handler,
	invoicesV1 *invoicev1.Handler,
	reportsV1 *reportv1.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		// Everything past login requires a session.
		r.Group(func(r chi.Router) {
			r.Use(sessions.RequireAuth)

			r.Route("/catalog", catalogV1.Routes)

			r.Route("/quotations", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				quotationsV1.Routes(r)
			})

			r.Route("/invoices", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				invoicesV1.Routes(r)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/dashboard", reportsV1.Dashboard)
				// Analytics is the one admin-gated page.
				r.With(internalauth.RequireRole(internalauth.RoleAdmin)).
					Get("/analytics", reportsV1.Analytics)
			})
		})
	})

	return router
}
