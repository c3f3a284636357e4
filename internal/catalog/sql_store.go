// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/duckdb/duckdb-go/v2"
	_ "modernc.org/sqlite"

	"github.com/tomtom215/bookmarket/internal/logging"
	"github.com/tomtom215/bookmarket/internal/models"
)

// Supported database/sql driver names.
const (
	DriverDuckDB = "duckdb"
	DriverSQLite = "sqlite"
)

const defaultQueryTimeout = 10 * time.Second

var schema = []string{
	`CREATE TABLE IF NOT EXISTS books (
		id BIGINT PRIMARY KEY,
		seller_id BIGINT,
		title VARCHAR NOT NULL,
		author VARCHAR,
		description VARCHAR,
		price DOUBLE,
		predicted_price DOUBLE,
		image_url VARCHAR,
		genre VARCHAR,
		"condition" VARCHAR,
		status VARCHAR DEFAULT 'available'
	)`,
	`CREATE TABLE IF NOT EXISTS user_book_interactions (
		id BIGINT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		book_id BIGINT NOT NULL,
		interaction_type VARCHAR NOT NULL
	)`,
}

// SQLStore is a BookStore backed by DuckDB or SQLite.
type SQLStore struct {
	db           *sql.DB
	driver       string
	sb           sq.StatementBuilderType
	queryTimeout time.Duration
}

// Open connects to the database at dsn and bootstraps the schema.
func Open(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	switch driver {
	case DriverDuckDB, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}

	if dir := filepath.Dir(dsn); dsn != "" && dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrStoreUnavailable, driver, err)
	}

	s := &SQLStore{
		db:           db,
		driver:       driver,
		sb:           sq.StatementBuilder.PlaceholderFormat(sq.Question),
		queryTimeout: defaultQueryTimeout,
	}

	if driver == DriverSQLite {
		// modernc sqlite serialises writers per connection
		db.SetMaxOpenConns(1)
		if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
			closeQuietly(db)
			return nil, fmt.Errorf("%w: pragma: %v", ErrStoreUnavailable, err)
		}
	}

	if err := s.initSchema(ctx); err != nil {
		closeQuietly(db)
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) initSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: create schema: %v", ErrStoreUnavailable, err)
		}
	}
	return nil
}

// Driver returns the database/sql driver name.
func (s *SQLStore) Driver() string {
	return s.driver
}

// Close closes the underlying connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func closeQuietly(db *sql.DB) {
	if err := db.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close book store")
	}
}

// ListAvailableBooks returns every book with status "available" ordered by id.
func (s *SQLStore) ListAvailableBooks(ctx context.Context) ([]models.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	query, args, err := s.sb.
		Select("id", "COALESCE(seller_id, 0)", "title", "COALESCE(author, '')",
			"COALESCE(description, '')", "COALESCE(genre, '')", "COALESCE(price, 0)",
			`COALESCE("condition", '')`, "COALESCE(status, 'available')").
		From("books").
		Where(sq.Eq{"status": models.BookStatusAvailable}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build books query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query books: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.SellerID, &b.Title, &b.Author, &b.Description,
			&b.Genre, &b.Price, &b.Condition, &b.Status); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

// ListInteractions returns every recorded interaction ordered by id.
func (s *SQLStore) ListInteractions(ctx context.Context) ([]models.Interaction, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	query, args, err := s.sb.
		Select("user_id", "book_id", "interaction_type").
		From("user_book_interactions").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build interactions query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query interactions: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []models.Interaction
	for rows.Next() {
		var (
			in  models.Interaction
			typ string
		)
		if err := rows.Scan(&in.UserID, &in.BookID, &typ); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		in.Type = models.InteractionType(typ)
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}
	return out, nil
}

// InteractionStats counts interactions, active users, interacted books and
// all books in the store.
func (s *SQLStore) InteractionStats(ctx context.Context) (models.CatalogStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	var stats models.CatalogStats

	query, args, err := s.sb.
		Select("COUNT(*)", "COUNT(DISTINCT user_id)", "COUNT(DISTINCT book_id)").
		From("user_book_interactions").
		ToSql()
	if err != nil {
		return stats, fmt.Errorf("build stats query: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, query, args...).
		Scan(&stats.TotalInteractions, &stats.ActiveUsers, &stats.InteractedBooks); err != nil {
		return stats, fmt.Errorf("%w: interaction stats: %v", ErrStoreUnavailable, err)
	}

	query, args, err = s.sb.Select("COUNT(*)").From("books").ToSql()
	if err != nil {
		return stats, fmt.Errorf("build book count query: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&stats.TotalBooks); err != nil {
		return stats, fmt.Errorf("%w: book count: %v", ErrStoreUnavailable, err)
	}
	return stats, nil
}

// Seed replaces the contents of both tables with books and interactions.
func (s *SQLStore) Seed(ctx context.Context, books []models.Book, interactions []models.Interaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback() //nolint:errcheck // rollback after a failed seed
		}
	}()

	for _, table := range []string{"user_book_interactions", "books"} {
		var query string
		query, _, err = s.sb.Delete(table).ToSql()
		if err != nil {
			return fmt.Errorf("build delete %s: %w", table, err)
		}
		if _, err = tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i := range books {
		b := &books[i]
		status := b.Status
		if status == "" {
			status = models.BookStatusAvailable
		}
		var (
			query string
			args  []any
		)
		query, args, err = s.sb.Insert("books").
			Columns("id", "seller_id", "title", "author", "description", "genre", "price", `"condition"`, "status").
			Values(b.ID, b.SellerID, b.Title, b.Author, b.Description, b.Genre, b.Price, b.Condition, status).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert book %d: %w", b.ID, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert book %d: %w", b.ID, err)
		}
	}

	for i, in := range interactions {
		var (
			query string
			args  []any
		)
		query, args, err = s.sb.Insert("user_book_interactions").
			Columns("id", "user_id", "book_id", "interaction_type").
			Values(int64(i+1), in.UserID, in.BookID, string(in.Type)).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert interaction: %w", err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert interaction: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}
