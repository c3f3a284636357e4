// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package pricing

import (
	"math"
	"strconv"
	"strings"
)

// DefaultReferenceYear anchors the recency adjustment.
const DefaultReferenceYear = 2025

// heuristicBasePrice is the INR starting point of EstimateFromMetadata.
const heuristicBasePrice = 300.0

var academicKeywords = []string{
	"textbook", "education", "academic", "study",
	"mathematics", "science", "physics", "chemistry", "biology",
}

// MarketRecord is what the remote catalog knows about a book. ListedPrice
// is zero when the catalog has no price.
type MarketRecord struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors,omitempty"`
	Publisher     string   `json:"publisher,omitempty"`
	Description   string   `json:"description,omitempty"`
	PublishedDate string   `json:"published_date,omitempty"`
	PageCount     int      `json:"page_count,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	AverageRating float64  `json:"average_rating,omitempty"`
	RatingsCount  int      `json:"ratings_count,omitempty"`
	ListedPrice   float64  `json:"listed_price,omitempty"`
	Currency      string   `json:"currency,omitempty"`
}

// HasPrice reports whether the catalog lists a usable price.
func (r *MarketRecord) HasPrice() bool {
	return r.ListedPrice > 0
}

// PublishedYear parses the leading year of PublishedDate ("2019", "2019-04",
// "2019-04-02").
func (r *MarketRecord) PublishedYear() (int, bool) {
	if len(r.PublishedDate) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(r.PublishedDate[:4])
	if err != nil {
		return 0, false
	}
	return year, true
}

// EstimateFromMetadata derives an INR price for a book the catalog knows but
// does not price. Page count, ratings, categories and age each scale a base
// price; the result is rounded to two decimals.
func EstimateFromMetadata(r MarketRecord, referenceYear int) float64 {
	price := heuristicBasePrice

	if r.PageCount > 0 {
		pageFactor := math.Min(float64(r.PageCount)/300, 2.0)
		price *= 0.7 + 0.3*pageFactor
	}

	if r.RatingsCount > 0 {
		ratingFactor := math.Min(r.AverageRating/5.0*1.5, 1.5)
		popularityFactor := math.Min(float64(r.RatingsCount)/1000, 1.3)
		price *= ratingFactor * popularityFactor
	}

	for _, category := range r.Categories {
		c := strings.ToLower(category)
		switch {
		case containsAny(c, academicKeywords):
			price *= 1.4
		case strings.Contains(c, "fiction"):
			price *= 0.9
		}
	}

	if year, ok := r.PublishedYear(); ok {
		age := referenceYear - year
		switch {
		case age < 1:
			price *= 1.4
		case age < 3:
			price *= 1.2
		case age > 15:
			price *= 0.7
		}
	}

	return Round2(price)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
