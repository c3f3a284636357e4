// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package pricing

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/tomtom215/bookmarket/internal/models"
)

type stubLookup struct {
	record  MarketRecord
	outcome models.Outcome
	panics  bool
	calls   atomic.Int32
}

func (s *stubLookup) Lookup(context.Context, string, string) (MarketRecord, models.Outcome) {
	s.calls.Add(1)
	if s.panics {
		panic("lookup exploded")
	}
	return s.record, s.outcome
}

func fixedJitter(v float64) Option {
	return WithJitter(func() float64 { return v })
}

func physicsRecord() MarketRecord {
	return MarketRecord{
		Title:         "Concepts of Physics",
		PageCount:     650,
		AverageRating: 4.8,
		RatingsCount:  1500,
		Categories:    []string{"Physics"},
		PublishedDate: "2025",
	}
}

func TestEstimator_MarketStage(t *testing.T) {
	t.Parallel()

	lookup := &stubLookup{record: MarketRecord{Title: "Dune", ListedPrice: 10, Currency: "USD"}}
	tests := []struct {
		condition string
		jitter    float64
		want      float64
	}{
		{ConditionNew, 1.05, 830},
		{ConditionLikeNew, 1.0, 747},
		{ConditionGood, 1.0, 581},
		{ConditionPoor, 0.95, 236.55},
		{"Mint", 1.0, 581},
	}

	for _, tt := range tests {
		t.Run(tt.condition, func(t *testing.T) {
			t.Parallel()
			e := NewEstimator(lookup, nil, fixedJitter(tt.jitter))
			q := e.Quote(context.Background(), models.PriceRequest{Title: "Dune", Condition: tt.condition})
			if q.Source != models.PriceSourceMarket {
				t.Fatalf("Source = %q, want market", q.Source)
			}
			if q.Price != tt.want {
				t.Errorf("Price = %v, want %v", q.Price, tt.want)
			}
			if q.Currency != "INR" {
				t.Errorf("Currency = %q, want INR", q.Currency)
			}
		})
	}
}

func TestEstimator_EstimatedStage(t *testing.T) {
	t.Parallel()

	lookup := &stubLookup{record: physicsRecord()}
	e := NewEstimator(lookup, nil, fixedJitter(1.0), WithReferenceYear(2025))

	q := e.Quote(context.Background(), models.PriceRequest{Title: "Concepts of Physics", Condition: ConditionNew})
	if q.Source != models.PriceSourceEstimated || q.Price != 1430.96 {
		t.Errorf("New quote = %+v, want estimated 1430.96", q)
	}

	q = e.Quote(context.Background(), models.PriceRequest{Title: "Concepts of Physics", Condition: ConditionGood})
	if q.Price != 1001.67 {
		t.Errorf("Good quote = %v, want 1001.67", q.Price)
	}
	if lookup.calls.Load() != 2 {
		t.Errorf("lookups = %d, want one per quote", lookup.calls.Load())
	}
}

func TestEstimator_NewNotCheaperThanPoor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record MarketRecord
		source models.PriceSource
	}{
		{"market", MarketRecord{ListedPrice: 12.5, Currency: "GBP"}, models.PriceSourceMarket},
		{"estimated", physicsRecord(), models.PriceSourceEstimated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := NewEstimator(&stubLookup{record: tt.record}, nil)
			for i := 0; i < 20; i++ {
				newQ := e.Quote(context.Background(), models.PriceRequest{Title: "x", Condition: ConditionNew})
				poorQ := e.Quote(context.Background(), models.PriceRequest{Title: "x", Condition: ConditionPoor})
				if newQ.Source != tt.source || poorQ.Source != tt.source {
					t.Fatalf("sources = %s / %s, want %s", newQ.Source, poorQ.Source, tt.source)
				}
				if newQ.Price < poorQ.Price {
					t.Fatalf("New %v < Poor %v", newQ.Price, poorQ.Price)
				}
			}
		})
	}
}

func TestEstimator_FallsBackToModel(t *testing.T) {
	model := trainedModel(t)

	tests := []struct {
		name   string
		lookup MarketLookup
	}{
		{"not found", &stubLookup{outcome: models.OutcomeNotFound}},
		{"timeout", &stubLookup{outcome: models.OutcomeTimeout}},
		{"unavailable", &stubLookup{outcome: models.OutcomeUnavailable}},
		{"panic", &stubLookup{panics: true}},
		{"no market", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEstimator(tt.lookup, model)
			q := e.Quote(context.Background(), models.PriceRequest{
				Title: "Unknown Title", Author: "Nobody", Genre: "Mystery", Condition: ConditionGood,
			})
			if q.Source != models.PriceSourceModel {
				t.Errorf("Source = %q, want model", q.Source)
			}
			if q.Price < DefaultPriceFloor {
				t.Errorf("Price = %v below floor", q.Price)
			}
		})
	}
}

func TestEstimator_PanickingLookupRunsOnce(t *testing.T) {
	lookup := &stubLookup{panics: true}
	e := NewEstimator(lookup, trainedModel(t))

	e.Quote(context.Background(), models.PriceRequest{Title: "x", Condition: ConditionNew})
	if got := lookup.calls.Load(); got != 1 {
		t.Errorf("lookups = %d, want 1", got)
	}
}

func TestEstimator_ModelFloor(t *testing.T) {
	e := NewEstimator(nil, trainedModel(t), WithFloor(100000))
	q := e.Quote(context.Background(), models.PriceRequest{Title: "1984", Author: "George Orwell", Genre: "Dystopian", Condition: ConditionPoor})
	if q.Price != 100000 {
		t.Errorf("Price = %v, want floor 100000", q.Price)
	}
}

func TestEstimator_OrwellOnModelPath(t *testing.T) {
	model := trainedModel(t)
	e := NewEstimator(&stubLookup{outcome: models.OutcomeNotFound}, model)
	req := models.PriceRequest{Title: "1984", Author: "George Orwell", Genre: "Dystopian", Condition: ConditionNew}

	raw := model.Predict(req)
	lo, hi := Round2(raw*0.95), Round2(raw*1.05)
	if lo < DefaultPriceFloor {
		lo = DefaultPriceFloor
	}

	for i := 0; i < 10; i++ {
		q := e.Quote(context.Background(), req)
		if q.Source != models.PriceSourceModel {
			t.Fatalf("Source = %q, want model", q.Source)
		}
		if q.Price < DefaultPriceFloor {
			t.Fatalf("Price = %v below floor", q.Price)
		}
		if q.Price < lo || q.Price > hi {
			t.Errorf("Price = %v outside [%v, %v]", q.Price, lo, hi)
		}
	}
}

func TestEstimator_NoModel(t *testing.T) {
	t.Parallel()

	e := NewEstimator(nil, nil)
	if e.Ready() {
		t.Error("Ready() = true without a model")
	}
	q := e.Quote(context.Background(), models.PriceRequest{Title: "x"})
	if q.Source != models.PriceSourceModel || q.Price != DefaultPriceFloor {
		t.Errorf("Quote() = %+v, want floor model quote", q)
	}
	if info := e.ModelInfo(); info.ModelType != ModelType || info.Accuracy != 0 {
		t.Errorf("ModelInfo() = %+v", info)
	}
}
