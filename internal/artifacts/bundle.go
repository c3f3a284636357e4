// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package artifacts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// File names inside an artifact directory.
const (
	BooksFile      = "books.json"
	PopularFile    = "popular.json"
	PivotFile      = "pt.json"
	SimilarityFile = "similarity_scores.json"
)

var (
	// ErrMissing is returned when an artifact file does not exist.
	ErrMissing = errors.New("artifact missing")

	// ErrMalformed is returned when an artifact cannot be decoded or its
	// shapes are inconsistent.
	ErrMalformed = errors.New("artifact malformed")
)

// Pivot is the pivot-table header: row titles in similarity-matrix order.
// Values holds the user-rating pivot the matrix was derived from and is
// optional.
type Pivot struct {
	Index  []string    `json:"index"`
	Values [][]float64 `json:"values,omitempty"`
}

// Bundle is a loaded set of collaborative artifacts.
type Bundle struct {
	Books      []Row
	Popular    []Row
	Pivot      Pivot
	Similarity [][]float64
}

// Size returns the number of rows in the similarity matrix.
func (b *Bundle) Size() int {
	return len(b.Similarity)
}

// Validate checks the matrix is square and matches the pivot index.
func (b *Bundle) Validate() error {
	n := len(b.Similarity)
	for i, row := range b.Similarity {
		if len(row) != n {
			return fmt.Errorf("%w: similarity row %d has %d columns, want %d", ErrMalformed, i, len(row), n)
		}
	}
	if len(b.Pivot.Index) != n {
		return fmt.Errorf("%w: pivot index has %d titles, similarity matrix has %d rows", ErrMalformed, len(b.Pivot.Index), n)
	}
	return nil
}

// Load reads a bundle from dir. Every file is required.
func Load(dir string) (*Bundle, error) {
	b := &Bundle{}

	if err := readJSON(filepath.Join(dir, BooksFile), &b.Books); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, PopularFile), &b.Popular); err != nil {
		return nil, err
	}
	if err := readPivot(filepath.Join(dir, PivotFile), &b.Pivot); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, SimilarityFile), &b.Similarity); err != nil {
		return nil, err
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// readPivot accepts either the Pivot object or a bare array of titles.
func readPivot(path string, p *Pivot) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &p.Index); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformed, filepath.Base(path), err)
		}
		return nil
	}
	if err := json.Unmarshal(data, p); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, filepath.Base(path), err)
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is built from the configured artifact dir
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissing, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// Write stores b in dir, creating the directory if needed.
func Write(dir string, b *Bundle) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	files := []struct {
		name string
		v    any
	}{
		{BooksFile, b.Books},
		{PopularFile, b.Popular},
		{PivotFile, b.Pivot},
		{SimilarityFile, b.Similarity},
	}
	for _, f := range files {
		data, err := json.Marshal(f.v)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", f.name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, f.name), data, 0o600); err != nil {
			return fmt.Errorf("write %s: %w", f.name, err)
		}
	}
	return nil
}
