// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package recommend

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookmarket/internal/artifacts"
	"github.com/tomtom215/bookmarket/internal/catalog"
	"github.com/tomtom215/bookmarket/internal/logging"
	"github.com/tomtom215/bookmarket/internal/metrics"
	"github.com/tomtom215/bookmarket/internal/models"
)

// Strategy names a way of producing recommendations.
type Strategy string

const (
	StrategyContent       Strategy = "content"
	StrategyCollaborative Strategy = "collaborative"
	StrategyTrending      Strategy = "trending"
	StrategyPopularity    Strategy = "popularity"
)

// ParseStrategy maps a request type to a strategy. Anything unrecognised is
// served as content.
func ParseStrategy(s string) Strategy {
	switch Strategy(s) {
	case StrategyCollaborative, StrategyTrending:
		return Strategy(s)
	default:
		return StrategyContent
	}
}

// Request is one recommendation query.
type Request struct {
	Strategy  Strategy
	UserID    int64
	BookTitle string
	Count     int
}

// StageResult records how one stage of the chain went.
type StageResult struct {
	Strategy Strategy
	Outcome  models.Outcome
}

// Result is the answer to a Request.
type Result struct {
	Items []models.DisplayItem

	// Strategy is the stage that produced Items.
	Strategy Strategy
	Outcome  models.Outcome
	Trail    []StageResult
}

// state is the catalog snapshot paired with its corpus.
type state struct {
	snap   *catalog.Snapshot
	corpus *Corpus
}

// Engine serves recommendations. It is safe for concurrent use.
type Engine struct {
	similarity *SimilarityStore
	popular    []artifacts.Row
	current    atomic.Pointer[state]
	logger     zerolog.Logger
}

// NewEngine creates an engine. bundle may be nil when the collaborative
// artifacts could not be loaded; collaborative and trending requests then
// degrade as described in the package documentation.
func NewEngine(bundle *artifacts.Bundle, snap *catalog.Snapshot) *Engine {
	e := &Engine{logger: logging.WithComponent("recommend")}
	if bundle != nil {
		e.similarity = NewSimilarityStore(bundle)
		e.popular = bundle.Popular
	}
	if snap != nil {
		e.SetSnapshot(snap)
	}
	return e
}

// SetSnapshot builds the corpus for snap and makes both current atomically.
func (e *Engine) SetSnapshot(snap *catalog.Snapshot) {
	start := time.Now()
	st := &state{snap: snap, corpus: BuildCorpus(snap.Books)}
	e.current.Store(st)
	e.logger.Debug().
		Int("books", len(snap.Books)).
		Bool("synthetic", snap.Synthetic).
		Dur("took", time.Since(start)).
		Msg("Catalog snapshot swapped")
}

// Snapshot returns the current catalog snapshot, or nil before the first
// SetSnapshot.
func (e *Engine) Snapshot() *catalog.Snapshot {
	if st := e.current.Load(); st != nil {
		return st.snap
	}
	return nil
}

// Ready reports whether a catalog snapshot is installed.
func (e *Engine) Ready() bool {
	return e.current.Load() != nil
}

// CollaborativeLoaded reports whether the similarity artifacts are available.
func (e *Engine) CollaborativeLoaded() bool {
	return e.similarity != nil
}

// Stats reports interaction coverage of the current snapshot.
func (e *Engine) Stats() models.CatalogStats {
	if snap := e.Snapshot(); snap != nil {
		return snap.Stats()
	}
	return models.CatalogStats{}
}

// Plan returns the ordered stages that will serve req.
func Plan(req Request) []Strategy {
	switch req.Strategy {
	case StrategyCollaborative:
		if req.BookTitle != "" {
			return []Strategy{StrategyCollaborative, StrategyTrending}
		}
		return []Strategy{StrategyContent, StrategyPopularity}
	case StrategyTrending:
		return []Strategy{StrategyTrending}
	default:
		return []Strategy{StrategyContent, StrategyPopularity}
	}
}

// Recommend runs the stage chain for req. It never fails: when no stage
// answers OK the last stage's list, possibly empty, is returned.
func (e *Engine) Recommend(ctx context.Context, req Request) Result {
	log := logging.Ctx(ctx).With().Str("component", "recommend").Logger()
	st := e.current.Load()

	var res Result
	for _, strategy := range Plan(req) {
		items, outcome := e.runStage(st, strategy, req)
		res.Trail = append(res.Trail, StageResult{Strategy: strategy, Outcome: outcome})
		res.Items, res.Strategy, res.Outcome = items, strategy, outcome
		if outcome.OK() {
			break
		}
		log.Debug().
			Str("strategy", string(strategy)).
			Str("outcome", outcome.String()).
			Msg("Stage did not answer, falling back")
	}
	if res.Items == nil {
		res.Items = []models.DisplayItem{}
	}

	metrics.RecordRecommendation(string(res.Strategy), res.Outcome.String())
	log.Debug().
		Str("requested", string(req.Strategy)).
		Str("served_by", string(res.Strategy)).
		Int("count", len(res.Items)).
		Msg("Recommendations served")
	return res
}

func (e *Engine) runStage(st *state, strategy Strategy, req Request) (items []models.DisplayItem, outcome models.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().
				Str("strategy", string(strategy)).
				Str("panic", fmt.Sprint(r)).
				Msg("Recommendation stage panicked")
			items, outcome = nil, models.OutcomeUnavailable
		}
	}()

	switch strategy {
	case StrategyCollaborative:
		return e.collaborative(req.BookTitle, req.Count)
	case StrategyTrending:
		return e.trending(req.Count)
	case StrategyContent:
		return e.content(st, req.UserID, req.Count)
	case StrategyPopularity:
		return e.popularity(st, req.Count)
	default:
		return nil, models.OutcomeNotFound
	}
}

func (e *Engine) collaborative(title string, count int) ([]models.DisplayItem, models.Outcome) {
	if e.similarity == nil {
		return nil, models.OutcomeUnavailable
	}
	idx, ok := e.similarity.Resolve(title)
	if !ok {
		return nil, models.OutcomeNotFound
	}
	rows := e.similarity.SimilarRows(idx, clamp(count, e.similarity.Size()-1))
	items := make([]models.DisplayItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, e.similarity.DisplayItem(r.Index))
	}
	return items, models.OutcomeOK
}

func (e *Engine) trending(count int) ([]models.DisplayItem, models.Outcome) {
	if e.popular == nil {
		return nil, models.OutcomeUnavailable
	}
	return Trending(e.popular, count), models.OutcomeOK
}

func (e *Engine) content(st *state, userID int64, count int) ([]models.DisplayItem, models.Outcome) {
	if st == nil {
		return nil, models.OutcomeUnavailable
	}
	interacted := st.snap.UserBooks(userID)
	if len(interacted) == 0 {
		return nil, models.OutcomeNotFound
	}

	exclude := make(map[int64]struct{}, len(interacted))
	for _, id := range interacted {
		exclude[id] = struct{}{}
	}
	ranked := Rank(UserProfile(interacted, st.corpus), st.corpus, exclude)
	ranked = ranked[:clamp(count, len(ranked))]

	items := make([]models.DisplayItem, 0, len(ranked))
	for _, sb := range ranked {
		items = append(items, models.DisplayFromBook(&st.snap.Books[sb.Position]))
	}
	return items, models.OutcomeOK
}

func (e *Engine) popularity(st *state, count int) ([]models.DisplayItem, models.Outcome) {
	if st == nil {
		return nil, models.OutcomeUnavailable
	}
	ranked := LivePopularity(st.snap)
	if len(ranked) == 0 {
		return nil, models.OutcomeNotFound
	}
	return ranked[:clamp(count, len(ranked))], models.OutcomeOK
}
