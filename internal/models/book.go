// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package models

// BookStatusAvailable marks a listing that can be recommended.
const BookStatusAvailable = "available"

// Book is a marketplace listing as read from the book store.
// Text fields that are NULL in storage are loaded as empty strings.
type Book struct {
	ID          int64   `json:"id"`
	SellerID    int64   `json:"seller_id,omitempty"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	Genre       string  `json:"genre"`
	Price       float64 `json:"price,omitempty"`
	Condition   string  `json:"condition,omitempty"`
	Status      string  `json:"status,omitempty"`
}

// Available reports whether the listing may appear in recommendations.
func (b *Book) Available() bool {
	return b.Status == "" || b.Status == BookStatusAvailable
}

// InteractionType classifies a user-book interaction.
type InteractionType string

// Interaction types recorded by the marketplace.
const (
	InteractionView     InteractionType = "view"
	InteractionSearch   InteractionType = "search"
	InteractionFavorite InteractionType = "favorite"
)

// Interaction is a single user-book event. Multiple interactions for the same
// (user, book) pair are allowed.
type Interaction struct {
	UserID int64           `json:"user_id"`
	BookID int64           `json:"book_id"`
	Type   InteractionType `json:"interaction_type"`
}

// CatalogStats summarises interaction coverage of the catalog.
type CatalogStats struct {
	TotalInteractions int `json:"total_interactions"`
	ActiveUsers       int `json:"active_users"`
	InteractedBooks   int `json:"interacted_books"`
	TotalBooks        int `json:"total_books"`
}

// CoveragePercentage returns the share of books with at least one interaction,
// in percent. An empty catalog has zero coverage.
func (s CatalogStats) CoveragePercentage() float64 {
	if s.TotalBooks == 0 {
		return 0
	}
	return float64(s.InteractedBooks) / float64(s.TotalBooks) * 100
}
