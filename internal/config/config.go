// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package config

import (
	"time"

	"github.com/tomtom215/bookmarket/internal/catalog"
	"github.com/tomtom215/bookmarket/internal/events"
	"github.com/tomtom215/bookmarket/internal/logging"
	"github.com/tomtom215/bookmarket/internal/pricing"
	"github.com/tomtom215/bookmarket/internal/resilience"
)

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Store     StoreConfig     `koanf:"store"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	Recommend RecommendConfig `koanf:"recommend"`
	Market    MarketConfig    `koanf:"market"`
	Cache     CacheConfig     `koanf:"cache"`
	Pricing   PricingConfig   `koanf:"pricing"`
	Events    EventsConfig    `koanf:"events"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// StoreConfig selects the catalog database. Driver "none" serves the
// synthetic catalog.
type StoreConfig struct {
	Driver string `koanf:"driver"`
	DSN    string `koanf:"dsn"`
}

// StoreDisabled is the driver value that skips the database.
const StoreDisabled = "none"

// Enabled reports whether a database is configured.
func (s StoreConfig) Enabled() bool {
	return s.Driver != "" && s.Driver != StoreDisabled
}

// ArtifactsConfig locates the collaborative filtering bundle.
type ArtifactsConfig struct {
	Dir string `koanf:"dir"`
}

// RecommendConfig controls the catalog snapshot lifecycle.
type RecommendConfig struct {
	RefreshInterval time.Duration `koanf:"refresh_interval"`
	SyntheticSeed   int64         `koanf:"synthetic_seed"`
}

// MarketConfig configures the external metadata lookup.
type MarketConfig struct {
	Enabled           bool          `koanf:"enabled"`
	BaseURL           string        `koanf:"base_url"`
	APIKey            string        `koanf:"api_key"`
	Timeout           time.Duration `koanf:"timeout"`
	MaxResults        int           `koanf:"max_results"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
}

// Client returns the pricing client settings.
func (m MarketConfig) Client() pricing.MarketConfig {
	return pricing.MarketConfig{
		BaseURL:           m.BaseURL,
		APIKey:            m.APIKey,
		Timeout:           m.Timeout,
		MaxResults:        m.MaxResults,
		RequestsPerSecond: m.RequestsPerSecond,
		Burst:             m.Burst,
		Breaker:           resilience.DefaultBreakerConfig(),
	}
}

// CacheConfig configures the market lookup cache.
type CacheConfig struct {
	TTL        time.Duration `koanf:"ttl"`
	BadgerPath string        `koanf:"badger_path"`
}

// PricingConfig configures the fallback price model and quoting.
type PricingConfig struct {
	Seed          int64   `koanf:"seed"`
	Samples       int     `koanf:"samples"`
	Trees         int     `koanf:"trees"`
	MaxDepth      int     `koanf:"max_depth"`
	MinLeaf       float64 `koanf:"min_leaf"`
	Workers       int     `koanf:"workers"`
	Floor         float64 `koanf:"floor"`
	ReferenceYear int     `koanf:"reference_year"`
}

// Model returns the training settings.
func (p PricingConfig) Model() pricing.ModelConfig {
	return pricing.ModelConfig{
		Seed:    p.Seed,
		Samples: p.Samples,
		Forest: pricing.ForestConfig{
			Trees:    p.Trees,
			MaxDepth: p.MaxDepth,
			MinLeaf:  p.MinLeaf,
			Seed:     p.Seed,
			Workers:  p.Workers,
		},
	}
}

// EventsConfig configures the domain event bus.
type EventsConfig struct {
	Enabled    bool   `koanf:"enabled"`
	NATSURL    string `koanf:"nats_url"`
	QueueGroup string `koanf:"queue_group"`
	BufferSize int64  `koanf:"buffer_size"`
}

// Bus returns the bus settings.
func (e EventsConfig) Bus() events.Config {
	cfg := events.DefaultConfig()
	cfg.NATSURL = e.NATSURL
	if e.QueueGroup != "" {
		cfg.QueueGroup = e.QueueGroup
	}
	if e.BufferSize > 0 {
		cfg.BufferSize = e.BufferSize
	}
	return cfg
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Logger returns the logging settings.
func (l LoggingConfig) Logger() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	cfg.Format = l.Format
	cfg.Caller = l.Caller
	return cfg
}

// defaultConfig is the lowest configuration layer.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              5001,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			CORSOrigins:       []string{"*"},
		},
		Store: StoreConfig{
			Driver: StoreDisabled,
		},
		Artifacts: ArtifactsConfig{
			Dir: "./artifacts",
		},
		Recommend: RecommendConfig{
			RefreshInterval: 10 * time.Minute,
			SyntheticSeed:   catalog.DefaultSyntheticSeed,
		},
		Market: MarketConfig{
			Enabled:    true,
			BaseURL:    pricing.DefaultMarketURL,
			Timeout:    pricing.MaxMarketTimeout,
			MaxResults: 5,
			Burst:      1,
		},
		Cache: CacheConfig{
			TTL: time.Hour,
		},
		Pricing: PricingConfig{
			Seed:          pricing.DefaultReferenceSeed,
			Samples:       pricing.DefaultReferenceSamples,
			Trees:         pricing.DefaultForestConfig().Trees,
			MaxDepth:      pricing.DefaultForestConfig().MaxDepth,
			MinLeaf:       pricing.DefaultForestConfig().MinLeaf,
			Floor:         pricing.DefaultPriceFloor,
			ReferenceYear: pricing.DefaultReferenceYear,
		},
		Events: EventsConfig{
			Enabled:    true,
			QueueGroup: "bookmarket",
			BufferSize: 256,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
