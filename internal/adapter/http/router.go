package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/sidibe/caisse/internal/adapter/http/handler"
	"github.com/sidibe/caisse/internal/adapter/http/middleware"
	"github.com/sidibe/caisse/internal/domain"
	"github.com/sidibe/caisse/internal/infrastructure/auth"
	"github.com/sidibe/caisse/internal/infrastructure/metrics"
	"github.com/sidibe/caisse/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	CreditHandler    *handler.CreditHandler
	ExpenseHandler   *handler.ExpenseHandler
	StockHandler     *handler.StockHandler
	HandoverHandler  *handler.HandoverHandler
	AccountHandler   *handler.AccountHandler
	HealthHandler    *handler.HealthHandler
	Verifier         *auth.Verifier
	IdempotencyStore usecase.IdempotencyStore
	Metrics          *metrics.Metrics
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Verifier != nil {
			r.Use(middleware.AuthMiddleware(cfg.Verifier))
		}
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Credits
		r.Route("/credits", func(r chi.Router) {
			r.Post("/", cfg.CreditHandler.Issue)
			r.Get("/", cfg.CreditHandler.List)
			r.Get("/{reference}", cfg.CreditHandler.Get)
			r.Post("/{reference}/payments", cfg.CreditHandler.Pay)
			r.Delete("/{reference}", cfg.CreditHandler.Cancel)
		})

		// Payments
		r.Delete("/payments/{id}", cfg.CreditHandler.CancelPayment)

		// Expenses
		r.Route("/expenses", func(r chi.Router) {
			r.Post("/", cfg.ExpenseHandler.Create)
			r.Get("/", cfg.ExpenseHandler.List)
			r.Delete("/{id}", cfg.ExpenseHandler.Cancel)
		})

		// Stock movements
		r.Route("/stock-movements", func(r chi.Router) {
			r.Post("/", cfg.StockHandler.Record)
			r.Get("/", cfg.StockHandler.List)
			r.Put("/{id}", cfg.StockHandler.Update)
			r.Delete("/{id}", cfg.StockHandler.Cancel)
		})

		// Deposits
		r.Route("/deposits", func(r chi.Router) {
			r.Post("/", cfg.HandoverHandler.CreateDeposit)
			r.Get("/", cfg.HandoverHandler.ListDeposits)
			r.With(middleware.RequireRole(domain.RoleAdmin)).
				Post("/{id}/validate", cfg.HandoverHandler.ValidateDeposit)
			r.With(middleware.RequireRole(domain.RoleAdmin)).
				Post("/{id}/reject", cfg.HandoverHandler.RejectDeposit)
		})

		// Cash refills
		r.Route("/refills", func(r chi.Router) {
			r.Post("/", cfg.HandoverHandler.RequestRefill)
			r.Get("/", cfg.HandoverHandler.ListRefills)
			r.With(middleware.RequireRole(domain.RoleAdmin)).
				Post("/{id}/validate", cfg.HandoverHandler.ValidateRefill)
			r.With(middleware.RequireRole(domain.RoleAdmin)).
				Post("/{id}/reject", cfg.HandoverHandler.RejectRefill)
		})

		// Balances
		r.Get("/owners/{ownerID}/balances", cfg.AccountHandler.OwnerBalances)
		r.Get("/shops/{shopID}/balances", cfg.AccountHandler.ShopBalances)
	})

	return r
}
