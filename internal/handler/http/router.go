package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/discovery/internal/service"
	"github.com/utafrali/discovery/pkg/health"
	"github.com/utafrali/discovery/pkg/middleware"
)

// NewRouter creates a chi router with all discovery routes registered.
func NewRouter(
	discoveryService *service.DiscoveryService,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("discovery"))

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	discoveryHandler := NewDiscoveryHandler(discoveryService, logger)

	r.Route("/api/v1/discovery", func(r chi.Router) {
		r.Get("/products", discoveryHandler.SearchProducts)
		r.Post("/products/query", discoveryHandler.QueryProducts)
		r.Get("/orders", discoveryHandler.SearchOrders)
		r.Get("/history", discoveryHandler.History)
		r.Delete("/history", discoveryHandler.ClearHistory)
		r.Get("/popular", discoveryHandler.Popular)
	})

	return r
}
