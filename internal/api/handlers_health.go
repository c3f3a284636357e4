// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/bookmarket/internal/logging"
	"github.com/tomtom215/bookmarket/internal/pricing"
)

// Health reports component readiness. It always answers 200 while the
// process is serving; readiness is in the body.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status: "healthy",
		Services: HealthServices{
			PricePredictor: h.pricer.Ready(),
			Recommender:    h.recommender.Ready(),
		},
		CollaborativeModelLoaded: h.recommender.CollaborativeLoaded(),
		UptimeSeconds:            time.Since(h.startTime).Seconds(),
	}
	if h.breaker != nil {
		resp.MarketBreaker = h.breaker.BreakerState()
	}
	respondJSON(w, r, http.StatusOK, resp)
}

// ModelMetrics reports catalog coverage and the price model description.
func (h *Handler) ModelMetrics(w http.ResponseWriter, r *http.Request) {
	stats, source := h.recommender.Stats(), "snapshot"
	if h.stats != nil {
		dbStats, err := h.stats.InteractionStats(r.Context())
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Interaction stats unavailable, using snapshot")
		} else {
			stats, source = dbStats, "store"
		}
	}

	info := h.pricer.ModelInfo()
	respondJSON(w, r, http.StatusOK, ModelMetricsResponse{
		RecommendationMetrics: RecommendationMetrics{
			TotalInteractions:      stats.TotalInteractions,
			ActiveUsers:            stats.ActiveUsers,
			InteractedBooks:        stats.InteractedBooks,
			TotalBooks:             stats.TotalBooks,
			BookCoveragePercentage: pricing.Round2(stats.CoveragePercentage()),
			Source:                 source,
		},
		PricePredictionMetrics: PricePredictionMetrics{
			ModelAccuracy: info.Accuracy,
			ModelType:     info.ModelType,
			FeaturesUsed:  info.FeaturesUsed,
		},
	})
}
