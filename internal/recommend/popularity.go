// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package recommend

import (
	"sort"

	"github.com/tomtom215/bookmarket/internal/artifacts"
	"github.com/tomtom215/bookmarket/internal/catalog"
	"github.com/tomtom215/bookmarket/internal/models"
)

// LivePopularity ranks snapshot books by how many interactions reference
// them. Books without interactions, and interactions on books missing from
// the snapshot, are left out. Ties go to the lower book id.
func LivePopularity(snap *catalog.Snapshot) []models.DisplayItem {
	counts := make(map[int64]int)
	for _, in := range snap.Interactions {
		if _, ok := snap.Book(in.BookID); ok {
			counts[in.BookID]++
		}
	}

	ids := make([]int64, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})

	out := make([]models.DisplayItem, 0, len(ids))
	for _, id := range ids {
		b, _ := snap.Book(id)
		out = append(out, models.DisplayFromBook(b))
	}
	return out
}

// Trending maps the first count rows of the popularity table through the
// column resolution rules.
func Trending(popular []artifacts.Row, count int) []models.DisplayItem {
	count = clamp(count, len(popular))
	out := make([]models.DisplayItem, 0, count)
	for _, row := range popular[:count] {
		ratings := row.Int(artifacts.ColRatingsCount)
		avg := row.Float(artifacts.ColAvgRating)
		out = append(out, models.DisplayItem{
			Title:        row.String(artifacts.ColTitle),
			Author:       row.String(artifacts.ColAuthor),
			ImageURL:     row.OptString(artifacts.ColImageURL),
			RatingsCount: &ratings,
			AvgRating:    &avg,
		})
	}
	return out
}

// clamp bounds n to [0, size].
func clamp(n, size int) int {
	if n < 0 {
		return 0
	}
	if n > size {
		return size
	}
	return n
}
