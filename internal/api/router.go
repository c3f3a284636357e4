// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/bookmarket/internal/middleware"
)

// NewRouter wires the handlers into a chi router. A nil config uses
// DefaultChiMiddlewareConfig.
func NewRouter(h *Handler, config *ChiMiddlewareConfig) http.Handler {
	mw := NewChiMiddleware(config)
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.AccessLog)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "no such route")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	// Monitoring.
	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimitHealth())
		r.Get("/health", h.Health)
		r.Get("/model-metrics", h.ModelMetrics)
		r.Handle("/metrics", promhttp.Handler())
	})

	// Engine.
	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit())
		r.Use(APISecurityHeaders())
		r.Post("/predict-price", h.PredictPrice)
		r.Post("/recommend", h.Recommend)
		r.Get("/trending", h.Trending)
	})

	return r
}
