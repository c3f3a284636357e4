// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package api

import (
	"context"
	"time"

	"github.com/tomtom215/bookmarket/internal/catalog"
	"github.com/tomtom215/bookmarket/internal/events"
	"github.com/tomtom215/bookmarket/internal/models"
	"github.com/tomtom215/bookmarket/internal/pricing"
	"github.com/tomtom215/bookmarket/internal/recommend"
)

// Recommender is the part of recommend.Engine the handlers use.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) recommend.Result
	Ready() bool
	CollaborativeLoaded() bool
	Stats() models.CatalogStats
}

// Pricer is the part of pricing.Estimator the handlers use.
type Pricer interface {
	Quote(ctx context.Context, req models.PriceRequest) models.PriceQuote
	Ready() bool
	ModelInfo() pricing.ModelInfo
}

// BreakerReporter exposes the market circuit breaker state.
type BreakerReporter interface {
	BreakerState() string
}

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	recommender Recommender
	pricer      Pricer
	stats       catalog.StatsStore
	emitter     *events.Emitter
	breaker     BreakerReporter
	startTime   time.Time
}

// HandlerOption configures optional Handler dependencies.
type HandlerOption func(*Handler)

// WithStatsStore reads /model-metrics figures from the database instead of
// the in-memory snapshot.
func WithStatsStore(s catalog.StatsStore) HandlerOption {
	return func(h *Handler) { h.stats = s }
}

// WithEmitter publishes an event for every served request.
func WithEmitter(e *events.Emitter) HandlerOption {
	return func(h *Handler) { h.emitter = e }
}

// WithMarketBreaker reports the market client's breaker state on /health.
func WithMarketBreaker(b BreakerReporter) HandlerOption {
	return func(h *Handler) { h.breaker = b }
}

// NewHandler creates the handlers.
func NewHandler(recommender Recommender, pricer Pricer, opts ...HandlerOption) *Handler {
	h := &Handler{
		recommender: recommender,
		pricer:      pricer,
		startTime:   time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}
