// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package events

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Topics.
const (
	TopicPriceQuoted          = "bookmarket.price.quoted"
	TopicRecommendationServed = "bookmarket.recommendation.served"
)

// Topics lists every topic the service publishes.
var Topics = []string{TopicPriceQuoted, TopicRecommendationServed}

// SchemaVersion is bumped on breaking payload changes.
const SchemaVersion = 1

// Envelope fields shared by every event.
type Envelope struct {
	SchemaVersion int       `json:"schema_version"`
	EventID       string    `json:"event_id"`
	RequestID     string    `json:"request_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func newEnvelope(requestID string) Envelope {
	return Envelope{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.New().String(),
		RequestID:     requestID,
		OccurredAt:    time.Now().UTC(),
	}
}

// PriceQuoted is emitted for every price quote.
type PriceQuoted struct {
	Envelope
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	Genre     string  `json:"genre"`
	Condition string  `json:"condition"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Source    string  `json:"source"`
}

// RecommendationServed is emitted for every recommendation list.
type RecommendationServed struct {
	Envelope
	UserID    int64  `json:"user_id,omitempty"`
	Requested string `json:"requested"`
	ServedBy  string `json:"served_by"`
	Outcome   string `json:"outcome"`
	BookTitle string `json:"book_title,omitempty"`
	Count     int    `json:"count"`
}

// Decode parses an event payload for topic.
func Decode(topic string, payload []byte) (interface{}, error) {
	switch topic {
	case TopicPriceQuoted:
		var e PriceQuoted
		return &e, json.Unmarshal(payload, &e)
	case TopicRecommendationServed:
		var e RecommendationServed
		return &e, json.Unmarshal(payload, &e)
	default:
		var e Envelope
		return &e, json.Unmarshal(payload, &e)
	}
}
