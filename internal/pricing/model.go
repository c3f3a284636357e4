// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package pricing

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/tomtom215/bookmarket/internal/logging"
	"github.com/tomtom215/bookmarket/internal/metrics"
	"github.com/tomtom215/bookmarket/internal/models"
	"github.com/tomtom215/bookmarket/internal/tfidf"
)

// ModelType is reported by the model metrics endpoint.
const ModelType = "RandomForestRegressor"

// maxTextFeatures caps the TF-IDF vocabulary.
const maxTextFeatures = 1000

// ModelConfig configures TrainPriceModel.
type ModelConfig struct {
	Seed    int64
	Samples int
	Forest  ForestConfig
}

// DefaultModelConfig trains on 1000 reference samples with seed 42.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		Seed:    DefaultReferenceSeed,
		Samples: DefaultReferenceSamples,
		Forest:  DefaultForestConfig(),
	}
}

// ModelInfo describes the trained price model.
type ModelInfo struct {
	Accuracy     float64  `json:"model_accuracy"`
	ModelType    string   `json:"model_type"`
	FeaturesUsed []string `json:"features_used"`
}

// PriceModel predicts a price from listing text and condition. It is built
// once and never mutated.
type PriceModel struct {
	vectorizer *tfidf.Vectorizer
	conditions []string
	forest     *Forest
	accuracy   float64
	trainedIn  time.Duration
}

// TrainPriceModel fits the vectorizer and forest on the reference dataset.
func TrainPriceModel(ctx context.Context, cfg ModelConfig) (*PriceModel, error) {
	start := time.Now()
	if cfg.Samples <= 0 {
		cfg.Samples = DefaultReferenceSamples
	}
	samples := ReferenceDataset(cfg.Seed, cfg.Samples)

	docs := make([]string, len(samples))
	seen := make(map[string]struct{})
	for i, s := range samples {
		docs[i] = modelText(s.Title, s.Author, s.Genre)
		seen[s.Condition] = struct{}{}
	}

	// One-hot columns in sorted order, one per condition present in the data.
	conditions := make([]string, 0, len(seen))
	for c := range seen {
		conditions = append(conditions, c)
	}
	sort.Strings(conditions)

	m := &PriceModel{
		vectorizer: tfidf.New(tfidf.Options{MaxFeatures: maxTextFeatures}).Fit(docs),
		conditions: conditions,
	}

	x := make([][]float64, len(samples))
	y := make([]float64, len(samples))
	for i, s := range samples {
		x[i] = m.features(docs[i], s.Condition)
		y[i] = s.Price
	}

	forest, err := FitForest(ctx, x, y, cfg.Forest)
	if err != nil {
		return nil, fmt.Errorf("train price model: %w", err)
	}
	m.forest = forest

	// Simulated R², drawn once per training run.
	rng := rand.New(rand.NewSource(cfg.Seed))
	m.accuracy = roundPlaces(0.75+rng.Float64()*(0.92-0.75), 3)

	m.trainedIn = time.Since(start)
	metrics.ModelTrainingDuration.Set(m.trainedIn.Seconds())
	logger := logging.WithComponent("pricing")
	logger.Info().
		Int("samples", len(samples)).
		Int("vocabulary", m.vectorizer.Size()).
		Int("trees", forest.Size()).
		Dur("took", m.trainedIn).
		Msg("Price model trained")
	return m, nil
}

// Predict returns the forest's raw price for req, before jitter and floor.
func (m *PriceModel) Predict(req models.PriceRequest) float64 {
	return m.forest.Predict(m.features(modelText(req.Title, req.Author, req.Genre), req.Condition))
}

// Info describes the model for the metrics endpoint.
func (m *PriceModel) Info() ModelInfo {
	return ModelInfo{
		Accuracy:     m.accuracy,
		ModelType:    ModelType,
		FeaturesUsed: []string{"title", "author", "genre", "condition"},
	}
}

// TrainingDuration returns how long training took.
func (m *PriceModel) TrainingDuration() time.Duration {
	return m.trainedIn
}

// features is the TF-IDF vector of text followed by the condition one-hot.
// An unknown condition sets no one-hot column.
func (m *PriceModel) features(text, condition string) []float64 {
	size := m.vectorizer.Size()
	row := m.vectorizer.Transform(text).Dense(size + len(m.conditions))
	for i, c := range m.conditions {
		if c == condition {
			row[size+i] = 1
			break
		}
	}
	return row
}

func modelText(title, author, genre string) string {
	return title + " " + author + " " + genre
}
