// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package catalog

import (
	"fmt"
	"math/rand"

	"github.com/tomtom215/bookmarket/internal/models"
)

// DefaultSyntheticSeed seeds the fallback catalog.
const DefaultSyntheticSeed int64 = 42

const (
	syntheticBooks = 100
	syntheticUsers = 20
	minUserBooks   = 5
	maxUserBooks   = 15
)

var syntheticGenres = []string{
	"Fiction", "Mystery", "Science Fiction", "Romance", "Fantasy", "Thriller",
	"Biography", "History", "Self-help", "Mathematics", "Physics", "Chemistry",
	"Biology", "English Literature", "Computer Science",
}

// Synthetic builds the demonstration catalog: 100 books by 20 authors and
// 20 users with 5 to 15 distinct interactions each. Equal seeds give equal
// catalogs.
func Synthetic(seed int64) ([]models.Book, []models.Interaction) {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic fixture data

	books := make([]models.Book, 0, syntheticBooks)
	for i := 1; i <= syntheticBooks; i++ {
		books = append(books, models.Book{
			ID:          int64(i),
			Title:       fmt.Sprintf("Book %d", i),
			Author:      fmt.Sprintf("Author %d", i%20+1),
			Description: fmt.Sprintf("Description for book %d", i),
			Genre:       syntheticGenres[rng.Intn(len(syntheticGenres))],
			Status:      models.BookStatusAvailable,
		})
	}

	var interactions []models.Interaction
	for user := int64(1); user <= syntheticUsers; user++ {
		n := minUserBooks + rng.Intn(maxUserBooks-minUserBooks+1)
		for _, idx := range rng.Perm(syntheticBooks)[:n] {
			interactions = append(interactions, models.Interaction{
				UserID: user,
				BookID: int64(idx + 1),
				Type:   syntheticInteractionType(rng.Float64()),
			})
		}
	}
	return books, interactions
}

func syntheticInteractionType(p float64) models.InteractionType {
	switch {
	case p < 0.7:
		return models.InteractionView
	case p < 0.9:
		return models.InteractionSearch
	default:
		return models.InteractionFavorite
	}
}
