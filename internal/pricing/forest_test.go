// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package pricing

import (
	"context"
	"math"
	"sort"
	"sync"
	"testing"

	"github.com/tomtom215/bookmarket/internal/models"
)

var (
	sharedModelOnce sync.Once
	sharedModel     *PriceModel
	sharedModelErr  error
)

// trainedModel trains the default model once for the whole package.
func trainedModel(t *testing.T) *PriceModel {
	t.Helper()
	sharedModelOnce.Do(func() {
		sharedModel, sharedModelErr = TrainPriceModel(context.Background(), DefaultModelConfig())
	})
	if sharedModelErr != nil {
		t.Fatalf("TrainPriceModel() error = %v", sharedModelErr)
	}
	return sharedModel
}

func TestFitForest_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tests := []struct {
		name string
		x    [][]float64
		y    []float64
		cfg  ForestConfig
	}{
		{"empty", nil, nil, DefaultForestConfig()},
		{"length mismatch", [][]float64{{1}, {2}}, []float64{1}, DefaultForestConfig()},
		{"no trees", [][]float64{{1}}, []float64{1}, ForestConfig{Trees: 0, MaxDepth: 4}},
		{"no depth", [][]float64{{1}}, []float64{1}, ForestConfig{Trees: 3, MaxDepth: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := FitForest(ctx, tt.x, tt.y, tt.cfg); err == nil {
				t.Error("FitForest() error = nil, want error")
			}
		})
	}
}

func TestFitForest_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FitForest(ctx, [][]float64{{0}, {1}}, []float64{1, 2}, DefaultForestConfig()); err == nil {
		t.Error("FitForest() with cancelled context should fail")
	}
}

func TestFitForest_ConstantTarget(t *testing.T) {
	t.Parallel()

	x := [][]float64{{0, 1}, {1, 0}, {2, 2}, {3, 1}}
	y := []float64{42, 42, 42, 42}
	f, err := FitForest(context.Background(), x, y, ForestConfig{Trees: 5, MaxDepth: 4, Seed: 1})
	if err != nil {
		t.Fatalf("FitForest() error = %v", err)
	}
	for _, row := range append(x, []float64{9, 9}) {
		if got := f.Predict(row); math.Abs(got-42) > 1e-9 {
			t.Errorf("Predict(%v) = %v, want 42", row, got)
		}
	}
}

func TestFitForest_LearnsStep(t *testing.T) {
	t.Parallel()

	var x [][]float64
	var y []float64
	for i := 0; i < 40; i++ {
		x = append(x, []float64{float64(i % 8)})
		if i%8 < 4 {
			y = append(y, 10)
		} else {
			y = append(y, 50)
		}
	}

	f, err := FitForest(context.Background(), x, y, ForestConfig{Trees: 30, MaxDepth: 6, Seed: 7, Workers: 2})
	if err != nil {
		t.Fatalf("FitForest() error = %v", err)
	}
	if f.Size() != 30 {
		t.Errorf("Size() = %d, want 30", f.Size())
	}
	low, high := f.Predict([]float64{1}), f.Predict([]float64{6})
	if math.Abs(low-10) > 1e-9 || math.Abs(high-50) > 1e-9 {
		t.Errorf("Predict = %v / %v, want 10 / 50", low, high)
	}
}

func TestFitForest_Deterministic(t *testing.T) {
	t.Parallel()

	samples := ReferenceDataset(3, 200)
	x := make([][]float64, len(samples))
	y := make([]float64, len(samples))
	for i, s := range samples {
		x[i] = []float64{GenreMultiplier(s.Genre), float64(len(s.Title)), conditionBasePrices[s.Condition]}
		y[i] = s.Price
	}

	cfg := ForestConfig{Trees: 20, MaxDepth: 8, Seed: 11}
	a, err := FitForest(context.Background(), x, y, cfg)
	if err != nil {
		t.Fatalf("FitForest() error = %v", err)
	}
	cfg.Workers = 1
	b, err := FitForest(context.Background(), x, y, cfg)
	if err != nil {
		t.Fatalf("FitForest() error = %v", err)
	}
	for _, row := range x[:20] {
		if a.Predict(row) != b.Predict(row) {
			t.Fatalf("predictions differ for %v: %v vs %v", row, a.Predict(row), b.Predict(row))
		}
	}
}

func TestReferenceDataset(t *testing.T) {
	t.Parallel()

	samples := ReferenceDataset(DefaultReferenceSeed, DefaultReferenceSamples)
	if len(samples) != 1000 {
		t.Fatalf("len = %d, want 1000", len(samples))
	}

	titleIndex := make(map[string]int)
	for i, title := range referenceTitles {
		titleIndex[title] = i
	}
	distinct := make(map[string]struct{})
	for _, s := range samples {
		i, ok := titleIndex[s.Title]
		if !ok {
			t.Fatalf("unknown title %q", s.Title)
		}
		if s.Author != referenceAuthors[i] || s.Genre != referenceGenres[i] {
			t.Errorf("%q has author %q genre %q", s.Title, s.Author, s.Genre)
		}
		if !KnownCondition(s.Condition) {
			t.Errorf("unknown condition %q", s.Condition)
		}
		if s.Price <= 0 {
			t.Errorf("%q/%s price %v not positive", s.Title, s.Condition, s.Price)
		}
		distinct[s.Title+"|"+s.Condition] = struct{}{}
	}
	if len(distinct) > len(referenceTitles)*len(Conditions) {
		t.Errorf("distinct inputs = %d", len(distinct))
	}

	again := ReferenceDataset(DefaultReferenceSeed, DefaultReferenceSamples)
	for i := range samples {
		if samples[i] != again[i] {
			t.Fatalf("sample %d differs between runs", i)
		}
	}
}

func TestReferenceTables(t *testing.T) {
	t.Parallel()

	if len(referenceTitles) != 39 || len(referenceAuthors) != 39 || len(referenceGenres) != 39 {
		t.Fatalf("reference lists are not parallel: %d/%d/%d", len(referenceTitles), len(referenceAuthors), len(referenceGenres))
	}
	if len(EducationalSubjects) != 20 {
		t.Errorf("EducationalSubjects = %d, want 20", len(EducationalSubjects))
	}
	for _, g := range append(append([]string{}, referenceGenres...), EducationalSubjects...) {
		if _, ok := genreMultipliers[g]; !ok {
			t.Errorf("genre %q has no multiplier", g)
		}
	}
	if GenreMultiplier("Cookbooks") != 1.0 {
		t.Error("unknown genre should default to 1.0")
	}

	tests := []struct {
		author string
		want   float64
	}{
		{"F. Scott Fitzgerald", 1.0},
		{"George Orwell", 1.2},
		{"Homer", 1.7},
		{"Leo Tolstoy", 1.6},
		{"Paulo Coelho", 1.8},
		{"Nobody", 1.0},
	}
	for _, tt := range tests {
		if got := authorPopularity(tt.author); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("authorPopularity(%q) = %v, want %v", tt.author, got, tt.want)
		}
	}
}

func TestTrainPriceModel(t *testing.T) {
	m := trainedModel(t)

	info := m.Info()
	if info.Accuracy < 0.75 || info.Accuracy > 0.92 {
		t.Errorf("Accuracy = %v, want within [0.75, 0.92]", info.Accuracy)
	}
	if info.ModelType != "RandomForestRegressor" {
		t.Errorf("ModelType = %q", info.ModelType)
	}
	if len(info.FeaturesUsed) != 4 {
		t.Errorf("FeaturesUsed = %v", info.FeaturesUsed)
	}

	if !sort.StringsAreSorted(m.conditions) || len(m.conditions) != len(Conditions) {
		t.Errorf("condition columns = %v", m.conditions)
	}
	if m.vectorizer.Size() == 0 || m.vectorizer.Size() > maxTextFeatures {
		t.Errorf("vocabulary size = %d", m.vectorizer.Size())
	}
	if m.TrainingDuration() <= 0 {
		t.Error("TrainingDuration() should be positive")
	}
}

func TestPriceModel_ConditionOrdering(t *testing.T) {
	m := trainedModel(t)

	newPrice := m.Predict(models.PriceRequest{Title: "1984", Author: "George Orwell", Genre: "Dystopian", Condition: ConditionNew})
	poorPrice := m.Predict(models.PriceRequest{Title: "1984", Author: "George Orwell", Genre: "Dystopian", Condition: ConditionPoor})
	if newPrice <= poorPrice {
		t.Errorf("New = %v should exceed Poor = %v", newPrice, poorPrice)
	}
}
