// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

/*
Package catalog reads marketplace books and user interactions.

A BookStore is the system of record (DuckDB by default, SQLite as an
alternative). The engine never queries it per request: a Loader reads the
whole catalog into an immutable Snapshot that is swapped atomically on
refresh. When the store is unreachable or holds no books, the Loader builds a
deterministic synthetic catalog instead so recommendations always have
something to rank.
*/
package catalog

import (
	"context"
	"errors"

	"github.com/tomtom215/bookmarket/internal/models"
)

// ErrStoreUnavailable is returned when the book store cannot be reached.
var ErrStoreUnavailable = errors.New("book store unavailable")

// BookStore lists the books and interactions the engine works from.
type BookStore interface {
	ListAvailableBooks(ctx context.Context) ([]models.Book, error)
	ListInteractions(ctx context.Context) ([]models.Interaction, error)
}

// StatsStore computes interaction coverage figures.
type StatsStore interface {
	InteractionStats(ctx context.Context) (models.CatalogStats, error)
}
