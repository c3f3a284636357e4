// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package artifacts

import "sort"

// Summary describes a bundle for operators.
type Summary struct {
	Books          int      `json:"books" yaml:"books"`
	PopularRows    int      `json:"popular_rows" yaml:"popular_rows"`
	MatrixSize     int      `json:"matrix_size" yaml:"matrix_size"`
	PivotUsers     int      `json:"pivot_users,omitempty" yaml:"pivot_users,omitempty"`
	SampleTitles   []string `json:"sample_titles" yaml:"sample_titles"`
	PopularColumns []string `json:"popular_columns" yaml:"popular_columns"`
	// Unresolved lists the display fields that no popularity row carries
	// under any accepted name. Those fields serve their defaults.
	Unresolved []string `json:"unresolved_fields,omitempty" yaml:"unresolved_fields,omitempty"`
}

const summarySamples = 5

// Summarize reports the shape of b.
func Summarize(b *Bundle) Summary {
	s := Summary{
		Books:       len(b.Books),
		PopularRows: len(b.Popular),
		MatrixSize:  b.Size(),
	}
	if len(b.Pivot.Values) > 0 {
		s.PivotUsers = len(b.Pivot.Values[0])
	}

	n := len(b.Pivot.Index)
	if n > summarySamples {
		n = summarySamples
	}
	s.SampleTitles = append([]string{}, b.Pivot.Index[:n]...)

	seen := make(map[string]struct{})
	for _, row := range b.Popular {
		for k := range row {
			seen[k] = struct{}{}
		}
	}
	s.PopularColumns = make([]string, 0, len(seen))
	for k := range seen {
		s.PopularColumns = append(s.PopularColumns, k)
	}
	sort.Strings(s.PopularColumns)

	for _, col := range PopularColumns {
		if !anyResolves(b.Popular, col) {
			s.Unresolved = append(s.Unresolved, col.Field)
		}
	}
	return s
}

func anyResolves(rows []Row, col Column) bool {
	for _, row := range rows {
		if _, ok := row.Lookup(col); ok {
			return true
		}
	}
	return false
}
