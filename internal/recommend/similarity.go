// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package recommend

import (
	"sort"

	"github.com/tomtom215/bookmarket/internal/artifacts"
	"github.com/tomtom215/bookmarket/internal/models"
)

const unknownAuthor = "Unknown"

// ScoredRow is one similarity-matrix row with its score against a query row.
type ScoredRow struct {
	Index int
	Score float64
}

// SimilarityStore answers nearest-neighbour queries over the precomputed
// item-item matrix.
type SimilarityStore struct {
	titles  []string
	index   map[string]int
	matrix  [][]float64
	catalog map[string]artifacts.Row
}

// NewSimilarityStore indexes a validated bundle. The first occurrence of a
// duplicated title wins, both in the pivot index and in the catalog.
func NewSimilarityStore(b *artifacts.Bundle) *SimilarityStore {
	s := &SimilarityStore{
		titles:  b.Pivot.Index,
		index:   make(map[string]int, len(b.Pivot.Index)),
		matrix:  b.Similarity,
		catalog: make(map[string]artifacts.Row, len(b.Books)),
	}
	for i, t := range b.Pivot.Index {
		if _, ok := s.index[t]; !ok {
			s.index[t] = i
		}
	}
	for _, row := range b.Books {
		t := row.String(artifacts.ColTitle)
		if _, ok := s.catalog[t]; !ok && t != "" {
			s.catalog[t] = row
		}
	}
	return s
}

// Size returns the number of rows.
func (s *SimilarityStore) Size() int {
	return len(s.titles)
}

// Resolve returns the row index of title. Matching is exact.
func (s *SimilarityStore) Resolve(title string) (int, bool) {
	i, ok := s.index[title]
	return i, ok
}

// SimilarRows returns at most k rows most similar to index, highest score
// first. The query row is never included; equal scores keep row order.
func (s *SimilarityStore) SimilarRows(index, k int) []ScoredRow {
	if index < 0 || index >= len(s.matrix) || k <= 0 {
		return nil
	}
	row := s.matrix[index]
	out := make([]ScoredRow, 0, len(row))
	for j, score := range row {
		if j == index {
			continue
		}
		out = append(out, ScoredRow{Index: j, Score: score})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Score > out[b].Score
	})
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// DisplayItem joins row index to the catalog through its title. Rows with no
// catalog entry are shown with an unknown author and no image.
func (s *SimilarityStore) DisplayItem(index int) models.DisplayItem {
	title := s.titles[index]
	row, ok := s.catalog[title]
	if !ok {
		return models.DisplayItem{Title: title, Author: unknownAuthor}
	}
	author := unknownAuthor
	if row.HasAny(artifacts.ColAuthor) {
		author = row.String(artifacts.ColAuthor)
	}
	return models.DisplayItem{
		Title:    title,
		Author:   author,
		ImageURL: row.OptString(artifacts.ColImageURL),
	}
}
