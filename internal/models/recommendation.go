// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package models

// DisplayItem is one entry of a recommendation list. Collaborative and
// trending items carry catalog metadata (image, ratings); content items carry
// the listing fields. image_url is always present and null when unknown.
type DisplayItem struct {
	ID           int64    `json:"id,omitempty"`
	Title        string   `json:"title"`
	Author       string   `json:"author"`
	ImageURL     *string  `json:"image_url"`
	Description  string   `json:"description,omitempty"`
	Genre        string   `json:"genre,omitempty"`
	RatingsCount *int     `json:"ratings_count,omitempty"`
	AvgRating    *float64 `json:"avg_rating,omitempty"`
}

// DisplayFromBook converts a catalog listing to a display item.
func DisplayFromBook(b *Book) DisplayItem {
	return DisplayItem{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		Genre:       b.Genre,
	}
}
