package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/gostatement/internal/adapter/http/handler"
	"github.com/iho/gostatement/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	StatementHandler  *handler.StatementHandler
	HealthHandler     *handler.HealthHandler
	MetricsMiddleware *middleware.MetricsMiddleware
	Logger            zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.MetricsMiddleware != nil {
		r.Use(cfg.MetricsMiddleware.Wrap)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/statements", func(r chi.Router) {
			r.Post("/", cfg.StatementHandler.Create)
			r.Get("/{id}", cfg.StatementHandler.Get)
		})
	})

	return r
}
