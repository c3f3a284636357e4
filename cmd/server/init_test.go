// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/bookmarket/internal/api"
	"github.com/tomtom215/bookmarket/internal/artifacts"
	"github.com/tomtom215/bookmarket/internal/config"
)

// loadTestConfig loads configuration with a small model and no network.
func loadTestConfig(t *testing.T, env map[string]string) *config.Config {
	t.Helper()
	t.Setenv(config.ConfigPathEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("MARKET_ENABLED", "false")
	t.Setenv("PRICE_MODEL_TREES", "5")
	t.Setenv("PRICE_MODEL_SAMPLES", "200")
	for k, v := range env {
		t.Setenv(k, v)
	}
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	return cfg
}

func TestInitComponents(t *testing.T) {
	withArtifacts := t.TempDir()
	if err := artifacts.Write(withArtifacts, artifacts.Reference(artifacts.DefaultSeed)); err != nil {
		t.Fatalf("artifacts.Write() error = %v", err)
	}

	tests := []struct {
		name              string
		env               map[string]string
		wantCollaborative bool
		wantStore         bool
		wantBus           bool
		wantBreaker       string
	}{
		{
			name:              "full stack on sqlite",
			env:               map[string]string{"ARTIFACTS_DIR": withArtifacts, "STORE_DRIVER": "sqlite", "STORE_DSN": filepath.Join(t.TempDir(), "books.db")},
			wantCollaborative: true,
			wantStore:         true,
			wantBus:           true,
		},
		{
			name: "missing artifacts and events disabled",
			env:  map[string]string{"ARTIFACTS_DIR": filepath.Join(t.TempDir(), "missing"), "EVENTS_ENABLED": "false"},
		},
		{
			name:              "market enabled reports its breaker",
			env:               map[string]string{"ARTIFACTS_DIR": withArtifacts, "EVENTS_ENABLED": "false", "MARKET_ENABLED": "true", "GOOGLE_BOOKS_URL": "http://127.0.0.1:1"},
			wantCollaborative: true,
			wantBreaker:       "closed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadTestConfig(t, tt.env)

			c, err := initComponents(context.Background(), cfg)
			if err != nil {
				t.Fatalf("initComponents() error = %v", err)
			}
			defer c.Close()

			if got := c.engine.CollaborativeLoaded(); got != tt.wantCollaborative {
				t.Errorf("CollaborativeLoaded() = %v, want %v", got, tt.wantCollaborative)
			}
			if !c.engine.Ready() {
				t.Error("engine has no catalog snapshot")
			}
			if !c.estimator.Ready() {
				t.Error("price model not trained")
			}
			if (c.store != nil) != tt.wantStore {
				t.Errorf("store = %v, want present=%v", c.store, tt.wantStore)
			}
			if (c.bus != nil) != tt.wantBus {
				t.Errorf("bus = %v, want present=%v", c.bus, tt.wantBus)
			}

			rec := httptest.NewRecorder()
			c.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			if rec.Code != http.StatusOK {
				t.Errorf("GET /health = %d, want 200", rec.Code)
			}
			var health api.HealthResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
				t.Fatal(err)
			}
			if health.MarketBreaker != tt.wantBreaker {
				t.Errorf("market_breaker = %q, want %q", health.MarketBreaker, tt.wantBreaker)
			}
		})
	}
}

func TestInitComponents_Canceled(t *testing.T) {
	cfg := loadTestConfig(t, map[string]string{"PRICE_MODEL_TREES": "200", "PRICE_MODEL_SAMPLES": "1000"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := initComponents(ctx, cfg); err == nil {
		t.Error("initComponents() with canceled context should fail")
	}
}

func TestChiConfig(t *testing.T) {
	t.Parallel()

	mw := chiConfig(config.ServerConfig{
		CORSOrigins:       []string{"https://books.example"},
		RateLimitRequests: 10,
		RateLimitWindow:   time.Second,
		RateLimitDisabled: true,
	})
	if len(mw.CORSAllowedOrigins) != 1 || mw.CORSAllowedOrigins[0] != "https://books.example" {
		t.Errorf("CORSAllowedOrigins = %v", mw.CORSAllowedOrigins)
	}
	if mw.RateLimitRequests != 10 || mw.RateLimitWindow != time.Second || !mw.RateLimitDisabled {
		t.Errorf("rate limit = %d/%v disabled=%v", mw.RateLimitRequests, mw.RateLimitWindow, mw.RateLimitDisabled)
	}

	defaults := chiConfig(config.ServerConfig{})
	if defaults.RateLimitRequests != 100 || defaults.CORSAllowedOrigins[0] != "*" {
		t.Errorf("zero server config should keep defaults, got %+v", defaults)
	}
}

func TestNewHTTPServer(t *testing.T) {
	t.Parallel()

	srv := newHTTPServer(config.ServerConfig{Host: "127.0.0.1", Port: 5001, ReadTimeout: time.Second}, http.NotFoundHandler())
	if srv.Addr != "127.0.0.1:5001" {
		t.Errorf("Addr = %q", srv.Addr)
	}
	if srv.ReadHeaderTimeout != time.Second {
		t.Errorf("ReadHeaderTimeout = %v", srv.ReadHeaderTimeout)
	}
}
