// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package pricing

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tomtom215/bookmarket/internal/logging"
	"github.com/tomtom215/bookmarket/internal/metrics"
	"github.com/tomtom215/bookmarket/internal/models"
)

// DefaultPriceFloor is the lowest price the model stage quotes, in INR.
const DefaultPriceFloor = 20.0

// Option customises an Estimator.
type Option func(*Estimator)

// WithJitter replaces the ±5% random factor. fn must return values in
// [0.95, 1.05].
func WithJitter(fn func() float64) Option {
	return func(e *Estimator) { e.jitter = fn }
}

// WithReferenceYear sets the year EstimateFromMetadata measures age from.
func WithReferenceYear(year int) Option {
	return func(e *Estimator) { e.referenceYear = year }
}

// WithFloor sets the minimum model-stage price.
func WithFloor(floor float64) Option {
	return func(e *Estimator) { e.floor = floor }
}

// Estimator produces price quotes. It holds no mutable state and is safe
// for concurrent use.
type Estimator struct {
	market        MarketLookup
	model         *PriceModel
	referenceYear int
	floor         float64
	jitter        func() float64
	logger        zerolog.Logger
}

// NewEstimator creates an estimator. market may be nil to skip the remote
// stages.
func NewEstimator(market MarketLookup, model *PriceModel, opts ...Option) *Estimator {
	e := &Estimator{
		market:        market,
		model:         model,
		referenceYear: DefaultReferenceYear,
		floor:         DefaultPriceFloor,
		jitter:        defaultJitter,
		logger:        logging.WithComponent("pricing"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func defaultJitter() float64 {
	return 0.95 + 0.1*rand.Float64()
}

// Ready reports whether the fallback model is trained.
func (e *Estimator) Ready() bool {
	return e.model != nil
}

// ModelInfo describes the fallback model. Accuracy is zero before training.
func (e *Estimator) ModelInfo() ModelInfo {
	if e.model == nil {
		return ModelInfo{ModelType: ModelType, FeaturesUsed: []string{"title", "author", "genre", "condition"}}
	}
	return e.model.Info()
}

// lookupState carries the single market lookup shared by the market and
// estimated stages.
type lookupState struct {
	done    bool
	record  MarketRecord
	outcome models.Outcome
}

type quoteStage struct {
	source models.PriceSource
	run    func(context.Context, models.PriceRequest, *lookupState) (models.PriceQuote, models.Outcome)
}

// Quote prices req. It always returns a quote: the model stage cannot fail.
func (e *Estimator) Quote(ctx context.Context, req models.PriceRequest) models.PriceQuote {
	log := logging.Ctx(ctx).With().Str("component", "pricing").Str("title", req.Title).Logger()

	stages := []quoteStage{
		{models.PriceSourceMarket, e.marketStage},
		{models.PriceSourceEstimated, e.estimatedStage},
	}
	st := &lookupState{}
	for _, s := range stages {
		quote, outcome := e.runStage(ctx, s, req, st)
		if outcome.OK() {
			return e.finish(log, quote)
		}
		log.Debug().
			Str("stage", string(s.source)).
			Str("outcome", outcome.String()).
			Msg("Price stage did not answer, falling back")
	}
	return e.finish(log, e.modelQuote(req))
}

func (e *Estimator) finish(log zerolog.Logger, q models.PriceQuote) models.PriceQuote {
	metrics.RecordPriceQuote(string(q.Source))
	log.Debug().Str("source", string(q.Source)).Float64("price", q.Price).Msg("Price quoted")
	return q
}

func (e *Estimator) runStage(ctx context.Context, s quoteStage, req models.PriceRequest, st *lookupState) (q models.PriceQuote, outcome models.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().
				Str("stage", string(s.source)).
				Str("panic", fmt.Sprint(r)).
				Msg("Price stage panicked")
			q, outcome = models.PriceQuote{}, models.OutcomeUnavailable
		}
	}()
	return s.run(ctx, req, st)
}

func (e *Estimator) lookup(ctx context.Context, req models.PriceRequest, st *lookupState) {
	if st.done {
		return
	}
	st.done = true
	st.outcome = models.OutcomeUnavailable
	if e.market == nil {
		st.outcome = models.OutcomeNotFound
		return
	}
	st.record, st.outcome = e.market.Lookup(ctx, req.Title, req.Author)
}

func (e *Estimator) marketStage(ctx context.Context, req models.PriceRequest, st *lookupState) (models.PriceQuote, models.Outcome) {
	e.lookup(ctx, req, st)
	if !st.outcome.OK() {
		return models.PriceQuote{}, st.outcome
	}
	rec := st.record
	if !rec.HasPrice() {
		return models.PriceQuote{}, models.OutcomeNotFound
	}

	price := decimal.NewFromFloat(rec.ListedPrice).Mul(ConditionFactor(req.Condition))
	price = ToINR(price, rec.Currency)
	return models.PriceQuote{
		Price:    e.adjust(price, req.Condition),
		Currency: models.ReferenceCurrency,
		Source:   models.PriceSourceMarket,
		Metadata: map[string]any{
			"listed_price":    rec.ListedPrice,
			"listed_currency": rec.Currency,
			"market_title":    rec.Title,
			"publisher":       rec.Publisher,
		},
	}, models.OutcomeOK
}

func (e *Estimator) estimatedStage(ctx context.Context, req models.PriceRequest, st *lookupState) (models.PriceQuote, models.Outcome) {
	e.lookup(ctx, req, st)
	if !st.outcome.OK() {
		return models.PriceQuote{}, st.outcome
	}
	rec := st.record
	estimate := EstimateFromMetadata(rec, e.referenceYear)
	if estimate <= 0 {
		return models.PriceQuote{}, models.OutcomeNotFound
	}

	price := decimal.NewFromFloat(estimate).Mul(ConditionFactor(req.Condition))
	return models.PriceQuote{
		Price:    e.adjust(price, req.Condition),
		Currency: models.ReferenceCurrency,
		Source:   models.PriceSourceEstimated,
		Metadata: map[string]any{
			"estimate":       estimate,
			"market_title":   rec.Title,
			"page_count":     rec.PageCount,
			"categories":     rec.Categories,
			"published_date": rec.PublishedDate,
		},
	}, models.OutcomeOK
}

// adjust applies the used-copy jitter and rounds.
func (e *Estimator) adjust(price decimal.Decimal, condition string) float64 {
	if condition != ConditionNew {
		price = price.Mul(decimal.NewFromFloat(e.jitter()))
	}
	return price.Round(2).InexactFloat64()
}

func (e *Estimator) modelQuote(req models.PriceRequest) models.PriceQuote {
	q := models.PriceQuote{
		Currency: models.ReferenceCurrency,
		Source:   models.PriceSourceModel,
		Metadata: map[string]any{"model_type": ModelType},
	}
	if e.model == nil {
		e.logger.Warn().Msg("Price model not trained, quoting floor price")
		q.Price = Round2(e.floor)
		return q
	}
	price := e.model.Predict(req) * e.jitter()
	q.Price = Round2(math.Max(e.floor, price))
	return q
}
