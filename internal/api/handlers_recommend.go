// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/tomtom215/bookmarket/internal/events"
	"github.com/tomtom215/bookmarket/internal/recommend"
	"github.com/tomtom215/bookmarket/internal/validation"
)

// Recommend serves content, collaborative or trending recommendations.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var body RecommendRequest
	if !decodeJSONBody(w, r, &body) {
		return
	}
	q := body.query()
	if verr := validation.ValidateStruct(&q); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	req := q.engineRequest()
	res := h.recommender.Recommend(r.Context(), req)
	h.emitServed(r.Context(), req, res)

	respondJSON(w, r, http.StatusOK, res.Items)
}

// Trending serves the top of the popularity table.
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	q := TrendingRequest{Limit: DefaultTrendingLimit}
	// Unparseable limits fall back to the default rather than failing.
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			q.Limit = n
		}
	}
	req := recommend.Request{Strategy: recommend.StrategyTrending, Count: q.Limit}
	res := h.recommender.Recommend(r.Context(), req)
	h.emitServed(r.Context(), req, res)

	respondJSON(w, r, http.StatusOK, res.Items)
}

func (h *Handler) emitServed(ctx context.Context, req recommend.Request, res recommend.Result) {
	h.emitter.RecommendationServed(ctx, events.RecommendationServed{
		UserID:    req.UserID,
		Requested: string(req.Strategy),
		ServedBy:  string(res.Strategy),
		Outcome:   res.Outcome.String(),
		BookTitle: req.BookTitle,
		Count:     len(res.Items),
	})
}
