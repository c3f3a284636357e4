// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package artifacts

import (
	"math"
	"strconv"
	"strings"
)

// Row is one record of a tabular artifact with its original column names.
type Row map[string]any

// Column resolves one output field from a Row. Names are tried in order and
// the first present, non-null value wins; Default is used otherwise.
type Column struct {
	Field   string
	Names   []string
	Default any
}

// Resolution rules for the catalog and popularity tables. The first name of
// each rule is the canonical column, the rest are legacy aliases.
var (
	ColTitle        = Column{Field: "title", Names: []string{"Book-Title", "title"}, Default: ""}
	ColAuthor       = Column{Field: "author", Names: []string{"Book-Author", "author"}, Default: ""}
	ColImageURL     = Column{Field: "image_url", Names: []string{"Image-URL-M", "image_url_m", "image_url"}, Default: nil}
	ColRatingsCount = Column{Field: "ratings_count", Names: []string{"number_of_ratings", "num_ratings", "ratings_count"}, Default: 0}
	ColAvgRating    = Column{Field: "avg_rating", Names: []string{"avg_rating"}, Default: 0.0}
)

// PopularColumns lists the rules applied to every popularity row.
var PopularColumns = []Column{ColTitle, ColAuthor, ColImageURL, ColRatingsCount, ColAvgRating}

// Lookup returns the raw value for the column and whether any of its names
// matched.
func (r Row) Lookup(c Column) (any, bool) {
	for _, name := range c.Names {
		if v, ok := r[name]; ok && v != nil {
			return v, true
		}
	}
	return c.Default, false
}

// String resolves c as text. Numbers are formatted, other types fall back
// to the column default.
func (r Row) String(c Column) string {
	v, ok := r.Lookup(c)
	if !ok {
		s, _ := c.Default.(string)
		return s
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		s, _ := c.Default.(string)
		return s
	}
}

// OptString resolves c as text, returning nil when no name matched or the
// value is empty.
func (r Row) OptString(c Column) *string {
	v, ok := r.Lookup(c)
	if !ok {
		return nil
	}
	s, isStr := v.(string)
	if !isStr || strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// Float resolves c as a number. Numeric strings are parsed; anything else
// yields the column default.
func (r Row) Float(c Column) float64 {
	v, ok := r.Lookup(c)
	if ok {
		if f, parsed := toFloat(v); parsed {
			return f
		}
	}
	f, _ := toFloat(c.Default)
	return f
}

// Int resolves c as an integer, truncating fractional values.
func (r Row) Int(c Column) int {
	return int(r.Float(c))
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) {
			return 0, false
		}
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// HasAny reports whether any name of c is present in the row.
func (r Row) HasAny(c Column) bool {
	_, ok := r.Lookup(c)
	return ok
}
