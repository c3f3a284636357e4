// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package api

import (
	"github.com/tomtom215/bookmarket/internal/models"
	"github.com/tomtom215/bookmarket/internal/recommend"
)

// Request defaults.
const (
	DefaultCondition      = "Good"
	DefaultUserID         = 1
	DefaultRecommendType  = "content"
	DefaultRecommendCount = 5
	DefaultTrendingLimit  = 50
)

// PredictPriceRequest is the /predict-price body. Condition is a pointer so
// that an absent field defaults to Good while an explicit value is kept.
type PredictPriceRequest struct {
	Title     string  `json:"title" validate:"max=500,printable"`
	Author    string  `json:"author" validate:"max=300,printable"`
	Genre     string  `json:"genre" validate:"max=100,printable"`
	Condition *string `json:"condition" validate:"omitempty,max=50,printable"`
}

// PriceRequest applies defaults.
func (r PredictPriceRequest) PriceRequest() models.PriceRequest {
	condition := DefaultCondition
	if r.Condition != nil {
		condition = *r.Condition
	}
	return models.PriceRequest{
		Title:     r.Title,
		Author:    r.Author,
		Genre:     r.Genre,
		Condition: condition,
	}
}

// PredictPriceResponse is the /predict-price answer.
type PredictPriceResponse struct {
	PredictedPrice float64 `json:"predicted_price"`
}

// RecommendRequest is the /recommend body. Absent fields take defaults.
type RecommendRequest struct {
	UserID             *int64  `json:"user_id"`
	Type               *string `json:"type"`
	BookTitle          *string `json:"book_title"`
	NumRecommendations *int    `json:"num_recommendations"`
}

// recommendQuery is a RecommendRequest with defaults applied.
type recommendQuery struct {
	UserID    int64  `json:"user_id" validate:"gte=0"`
	Type      string `json:"type" validate:"max=32,printable"`
	BookTitle string `json:"book_title" validate:"max=500,printable"`
	Count     int    `json:"num_recommendations"`
}

func (r RecommendRequest) query() recommendQuery {
	q := recommendQuery{
		UserID: DefaultUserID,
		Type:   DefaultRecommendType,
		Count:  DefaultRecommendCount,
	}
	if r.UserID != nil {
		q.UserID = *r.UserID
	}
	if r.Type != nil {
		q.Type = *r.Type
	}
	if r.BookTitle != nil {
		q.BookTitle = *r.BookTitle
	}
	if r.NumRecommendations != nil {
		q.Count = *r.NumRecommendations
	}
	return q
}

func (q recommendQuery) engineRequest() recommend.Request {
	return recommend.Request{
		Strategy:  recommend.ParseStrategy(q.Type),
		UserID:    q.UserID,
		BookTitle: q.BookTitle,
		Count:     q.Count,
	}
}

// TrendingRequest holds the /trending query parameters. Limit is not
// range-checked: the engine clamps it to [0, len(popular)].
type TrendingRequest struct {
	Limit int `json:"limit"`
}

// HealthResponse is the /health answer.
type HealthResponse struct {
	Status                   string         `json:"status"`
	Services                 HealthServices `json:"services"`
	CollaborativeModelLoaded bool           `json:"collaborative_model_loaded"`
	UptimeSeconds            float64        `json:"uptime_seconds"`
	// MarketBreaker is closed, half-open or open. Absent when the market
	// lookup is disabled.
	MarketBreaker string `json:"market_breaker,omitempty"`
}

// HealthServices reports per-component readiness.
type HealthServices struct {
	PricePredictor bool `json:"price_predictor"`
	Recommender    bool `json:"recommender"`
}

// ModelMetricsResponse is the /model-metrics answer.
type ModelMetricsResponse struct {
	RecommendationMetrics  RecommendationMetrics  `json:"recommendation_metrics"`
	PricePredictionMetrics PricePredictionMetrics `json:"price_prediction_metrics"`
}

// RecommendationMetrics describes interaction coverage of the catalog.
type RecommendationMetrics struct {
	TotalInteractions      int     `json:"total_interactions"`
	ActiveUsers            int     `json:"active_users"`
	InteractedBooks        int     `json:"interacted_books"`
	TotalBooks             int     `json:"total_books"`
	BookCoveragePercentage float64 `json:"book_coverage_percentage"`
	Source                 string  `json:"source"`
}

// PricePredictionMetrics describes the fallback price model.
type PricePredictionMetrics struct {
	ModelAccuracy float64  `json:"model_accuracy"`
	ModelType     string   `json:"model_type"`
	FeaturesUsed  []string `json:"features_used"`
}
