// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package models

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestBook_Available(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status string
		want   bool
	}{
		{"", true},
		{BookStatusAvailable, true},
		{"sold", false},
		{"reserved", false},
	}
	for _, tt := range tests {
		b := Book{Status: tt.status}
		if got := b.Available(); got != tt.want {
			t.Errorf("Available() with status %q = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestCatalogStats_CoveragePercentage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stats CatalogStats
		want  float64
	}{
		{"empty catalog", CatalogStats{}, 0},
		{"quarter", CatalogStats{InteractedBooks: 25, TotalBooks: 100}, 25},
		{"full", CatalogStats{InteractedBooks: 3, TotalBooks: 3}, 100},
	}
	for _, tt := range tests {
		if got := tt.stats.CoveragePercentage(); got != tt.want {
			t.Errorf("%s: CoveragePercentage() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestOutcome_String(t *testing.T) {
	t.Parallel()

	want := map[Outcome]string{
		OutcomeOK:          "ok",
		OutcomeNotFound:    "not_found",
		OutcomeUnavailable: "unavailable",
		OutcomeTimeout:     "timeout",
		Outcome(42):        "unknown",
	}
	for o, s := range want {
		if got := o.String(); got != s {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(o), got, s)
		}
		if o.OK() != (o == OutcomeOK) {
			t.Errorf("Outcome(%d).OK() = %v", int(o), o.OK())
		}
	}
}

func TestDisplayFromBook_NullImage(t *testing.T) {
	t.Parallel()

	item := DisplayFromBook(&Book{ID: 3, Title: "Emma", Author: "Jane Austen", Genre: "Romance", Price: 120})
	data, err := json.Marshal(item)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, `"image_url":null`) {
		t.Errorf("image_url should serialize as null: %s", out)
	}
	if strings.Contains(out, "ratings_count") || strings.Contains(out, "price") {
		t.Errorf("unexpected fields in %s", out)
	}
}
