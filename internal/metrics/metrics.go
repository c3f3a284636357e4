// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Engine Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookmarket_recommendations_total",
			Help: "Recommendation requests by strategy that answered and its outcome",
		},
		[]string{"strategy", "outcome"},
	)

	PriceQuotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookmarket_price_quotes_total",
			Help: "Price quotes by the stage that produced them",
		},
		[]string{"source"},
	)

	MarketLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookmarket_market_lookups_total",
			Help: "External market lookups by outcome",
		},
		[]string{"outcome"},
	)

	MarketLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bookmarket_market_lookup_duration_seconds",
			Help:    "Duration of external market lookups",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5},
		},
	)

	LookupCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookmarket_lookup_cache_hits_total",
			Help: "Market lookup cache hits",
		},
		[]string{"tier"}, // memory, badger
	)

	LookupCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookmarket_lookup_cache_misses_total",
			Help: "Market lookup cache misses",
		},
		[]string{"tier"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Requests through a circuit breaker by result",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	// Catalog Metrics
	CatalogBooks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookmarket_catalog_books",
			Help: "Books in the current catalog snapshot",
		},
	)

	CatalogRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookmarket_catalog_refreshes_total",
			Help: "Catalog snapshot loads by source",
		},
		[]string{"source"}, // store, synthetic
	)

	ModelTrainingDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookmarket_model_training_duration_seconds",
			Help: "Time spent training the fallback price model at startup",
		},
	)

	// Event Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookmarket_events_published_total",
			Help: "Domain events published",
		},
		[]string{"topic", "result"},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookmarket_events_consumed_total",
			Help: "Domain events consumed",
		},
		[]string{"topic"},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation counts a served recommendation list.
func RecordRecommendation(strategy, outcome string) {
	RecommendationsTotal.WithLabelValues(strategy, outcome).Inc()
}

// RecordPriceQuote counts a quote by its source stage.
func RecordPriceQuote(source string) {
	PriceQuotesTotal.WithLabelValues(source).Inc()
}

// RecordMarketLookup records one external lookup.
func RecordMarketLookup(outcome string, duration time.Duration) {
	MarketLookupsTotal.WithLabelValues(outcome).Inc()
	MarketLookupDuration.Observe(duration.Seconds())
}

// RecordCacheLookup records a hit or miss in the given cache tier.
func RecordCacheLookup(tier string, hit bool) {
	if hit {
		LookupCacheHits.WithLabelValues(tier).Inc()
	} else {
		LookupCacheMisses.WithLabelValues(tier).Inc()
	}
}

// RecordEventPublished counts a publish attempt.
func RecordEventPublished(topic string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	EventsPublished.WithLabelValues(topic, result).Inc()
}

// RecordEventConsumed counts a consumed event.
func RecordEventConsumed(topic string) {
	EventsConsumed.WithLabelValues(topic).Inc()
}
