// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package models

// PriceSource names the estimator stage that produced a quote.
type PriceSource string

// Price sources in fallback order.
const (
	PriceSourceMarket    PriceSource = "market"
	PriceSourceEstimated PriceSource = "estimated"
	PriceSourceModel     PriceSource = "model"
)

// ReferenceCurrency is the currency every quote is expressed in.
const ReferenceCurrency = "INR"

// PriceRequest describes a listing to be priced.
type PriceRequest struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Genre     string `json:"genre"`
	Condition string `json:"condition"`
}

// PriceQuote is a transient per-request price estimate.
type PriceQuote struct {
	Price    float64        `json:"price"`
	Currency string         `json:"currency"`
	Source   PriceSource    `json:"source"`
	Metadata map[string]any `json:"metadata,omitempty"`
}
