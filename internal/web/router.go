package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pagewatch/pagewatch/internal/config"
	"github.com/pagewatch/pagewatch/internal/history"
)

// NewRouter sets up the operational endpoints and returns the http.Handler.
func NewRouter(cfg config.Config, hist *history.Log) http.Handler {
	r := chi.NewRouter()

	health := NewHealthHandler(len(cfg.Sites))
	sites := NewSitesHandler(hist)

	// Public routes
	r.Get("/healthz", health.ServeHTTP)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(BasicAuth(cfg.Auth))

		r.Get("/api/sites", sites.List)
		r.Get("/api/sites/{name}", sites.Detail)
		r.Handle("/metrics", promhttp.Handler())
	})

	return r
}
