// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package catalog

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookmarket/internal/logging"
	"github.com/tomtom215/bookmarket/internal/metrics"
	"github.com/tomtom215/bookmarket/internal/models"
)

// Snapshot is an immutable view of the catalog. It must not be modified
// after construction.
type Snapshot struct {
	Books        []models.Book
	Interactions []models.Interaction
	Synthetic    bool
	LoadedAt     time.Time

	byID map[int64]int
}

// NewSnapshot indexes books and interactions. Only available books are kept.
func NewSnapshot(books []models.Book, interactions []models.Interaction, synthetic bool) *Snapshot {
	s := &Snapshot{
		Books:        make([]models.Book, 0, len(books)),
		Interactions: interactions,
		Synthetic:    synthetic,
		LoadedAt:     time.Now(),
		byID:         make(map[int64]int, len(books)),
	}
	for i := range books {
		if !books[i].Available() {
			continue
		}
		if _, dup := s.byID[books[i].ID]; dup {
			continue
		}
		s.byID[books[i].ID] = len(s.Books)
		s.Books = append(s.Books, books[i])
	}
	return s
}

// Book returns the book with the given id.
func (s *Snapshot) Book(id int64) (*models.Book, bool) {
	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return &s.Books[i], true
}

// UserBooks returns the distinct book ids user interacted with, in first
// interaction order.
func (s *Snapshot) UserBooks(userID int64) []int64 {
	seen := make(map[int64]struct{})
	var ids []int64
	for _, in := range s.Interactions {
		if in.UserID != userID {
			continue
		}
		if _, ok := seen[in.BookID]; ok {
			continue
		}
		seen[in.BookID] = struct{}{}
		ids = append(ids, in.BookID)
	}
	return ids
}

// Stats computes the same figures as StatsStore.InteractionStats.
func (s *Snapshot) Stats() models.CatalogStats {
	users := make(map[int64]struct{})
	books := make(map[int64]struct{})
	for _, in := range s.Interactions {
		users[in.UserID] = struct{}{}
		books[in.BookID] = struct{}{}
	}
	return models.CatalogStats{
		TotalInteractions: len(s.Interactions),
		ActiveUsers:       len(users),
		InteractedBooks:   len(books),
		TotalBooks:        len(s.Books),
	}
}

// Loader builds snapshots from a BookStore.
type Loader struct {
	store  BookStore
	seed   int64
	logger zerolog.Logger
}

// NewLoader creates a loader. store may be nil, in which case every load
// yields the synthetic catalog.
func NewLoader(store BookStore, syntheticSeed int64) *Loader {
	return &Loader{
		store:  store,
		seed:   syntheticSeed,
		logger: logging.WithComponent("catalog"),
	}
}

// Load reads the store into a snapshot. Store failures and an empty catalog
// fall back to the synthetic catalog; Load never returns nil.
func (l *Loader) Load(ctx context.Context) *Snapshot {
	if l.store == nil {
		return l.synthetic("no store configured")
	}

	books, err := l.store.ListAvailableBooks(ctx)
	if err != nil {
		l.logger.Warn().Err(err).Msg("Failed to load books, using synthetic catalog")
		return l.synthetic("store error")
	}
	if len(books) == 0 {
		return l.synthetic("store empty")
	}

	interactions, err := l.store.ListInteractions(ctx)
	if err != nil {
		l.logger.Warn().Err(err).Msg("Failed to load interactions, using synthetic catalog")
		return l.synthetic("store error")
	}

	snap := NewSnapshot(books, interactions, false)
	metrics.CatalogBooks.Set(float64(len(snap.Books)))
	metrics.CatalogRefreshes.WithLabelValues("store").Inc()
	l.logger.Info().
		Int("books", len(snap.Books)).
		Int("interactions", len(snap.Interactions)).
		Msg("Catalog loaded")
	return snap
}

func (l *Loader) synthetic(reason string) *Snapshot {
	books, interactions := Synthetic(l.seed)
	snap := NewSnapshot(books, interactions, true)
	metrics.CatalogBooks.Set(float64(len(snap.Books)))
	metrics.CatalogRefreshes.WithLabelValues("synthetic").Inc()
	l.logger.Info().
		Str("reason", reason).
		Int("books", len(snap.Books)).
		Msg("Using synthetic catalog")
	return snap
}
