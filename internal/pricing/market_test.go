// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package pricing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/bookmarket/internal/cache"
	"github.com/tomtom215/bookmarket/internal/models"
	"github.com/tomtom215/bookmarket/internal/resilience"
)

const duneResponse = `{
  "totalItems": 2,
  "items": [
    {
      "volumeInfo": {
        "title": "Dune",
        "authors": ["Frank Herbert"],
        "publisher": "Ace",
        "publishedDate": "1990-09-01",
        "pageCount": 535,
        "categories": ["Fiction"],
        "averageRating": 4.5,
        "ratingsCount": 2100,
        "listPrice": {"amount": 9.99, "currencyCode": "USD"}
      }
    },
    {"volumeInfo": {"title": "Dune Messiah"}}
  ]
}`

type marketServer struct {
	*httptest.Server
	hits    atomic.Int32
	lastURL atomic.Value
}

func newMarketServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *marketServer {
	t.Helper()
	ms := &marketServer{}
	ms.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ms.hits.Add(1)
		ms.lastURL.Store(r.URL.String())
		handler(w, r)
	}))
	t.Cleanup(ms.Close)
	return ms
}

func respond(status int, body string) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestMarketClient_Lookup(t *testing.T) {
	tests := []struct {
		name        string
		handler     func(http.ResponseWriter, *http.Request)
		wantOutcome models.Outcome
		wantPrice   float64
		wantCurr    string
	}{
		{
			name:        "first item wins",
			handler:     respond(http.StatusOK, duneResponse),
			wantOutcome: models.OutcomeOK,
			wantPrice:   9.99,
			wantCurr:    "USD",
		},
		{
			name:        "sale info price",
			handler:     respond(http.StatusOK, `{"items":[{"volumeInfo":{"title":"Dune"},"saleInfo":{"listPrice":{"amount":450,"currencyCode":"INR"}}}]}`),
			wantOutcome: models.OutcomeOK,
			wantPrice:   450,
			wantCurr:    "INR",
		},
		{
			name:        "no price defaults currency",
			handler:     respond(http.StatusOK, `{"items":[{"volumeInfo":{"title":"Dune","pageCount":500}}]}`),
			wantOutcome: models.OutcomeOK,
			wantPrice:   0,
			wantCurr:    "INR",
		},
		{
			name:        "no items",
			handler:     respond(http.StatusOK, `{"totalItems":0}`),
			wantOutcome: models.OutcomeNotFound,
		},
		{
			name:        "server error",
			handler:     respond(http.StatusInternalServerError, `{"error":"boom"}`),
			wantOutcome: models.OutcomeUnavailable,
		},
		{
			name:        "rate limited upstream",
			handler:     respond(http.StatusTooManyRequests, ``),
			wantOutcome: models.OutcomeUnavailable,
		},
		{
			name:        "malformed body",
			handler:     respond(http.StatusOK, `{"items": [`),
			wantOutcome: models.OutcomeUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newMarketServer(t, tt.handler)
			c := NewMarketClient(MarketConfig{BaseURL: srv.URL, Timeout: time.Second}, nil)

			rec, outcome := c.Lookup(context.Background(), "Dune", "Frank Herbert")
			if outcome != tt.wantOutcome {
				t.Fatalf("Lookup() outcome = %v, want %v", outcome, tt.wantOutcome)
			}
			if !outcome.OK() {
				return
			}
			if rec.Title != "Dune" {
				t.Errorf("Title = %q, want Dune", rec.Title)
			}
			if rec.ListedPrice != tt.wantPrice || rec.Currency != tt.wantCurr {
				t.Errorf("price = %v %s, want %v %s", rec.ListedPrice, rec.Currency, tt.wantPrice, tt.wantCurr)
			}
		})
	}
}

func TestMarketClient_QueryFormat(t *testing.T) {
	srv := newMarketServer(t, respond(http.StatusOK, duneResponse))
	c := NewMarketClient(MarketConfig{BaseURL: srv.URL, APIKey: "k1"}, nil)

	rec, outcome := c.Lookup(context.Background(), "Dune", "Frank Herbert")
	if !outcome.OK() {
		t.Fatalf("Lookup() outcome = %v", outcome)
	}
	if rec.PageCount != 535 || rec.RatingsCount != 2100 || rec.Publisher != "Ace" {
		t.Errorf("record = %+v", rec)
	}

	got, _ := srv.lastURL.Load().(string)
	want := "/?key=k1&maxResults=5&q=Dune+inauthor%3AFrank+Herbert"
	if got != want {
		t.Errorf("request URL = %q, want %q", got, want)
	}
}

func TestMarketClient_Timeout(t *testing.T) {
	srv := newMarketServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	c := NewMarketClient(MarketConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, nil)

	start := time.Now()
	_, outcome := c.Lookup(context.Background(), "Slow", "")
	if outcome != models.OutcomeTimeout {
		t.Errorf("Lookup() outcome = %v, want timeout", outcome)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Lookup() took %v, want bounded by the timeout", elapsed)
	}
}

func TestMarketClient_TimeoutIsCapped(t *testing.T) {
	c := NewMarketClient(MarketConfig{Timeout: time.Minute}, nil)
	if c.timeout != MaxMarketTimeout {
		t.Errorf("timeout = %v, want %v", c.timeout, MaxMarketTimeout)
	}
	if c.baseURL != DefaultMarketURL {
		t.Errorf("baseURL = %q, want default", c.baseURL)
	}
}

func TestMarketClient_EmptyTitle(t *testing.T) {
	srv := newMarketServer(t, respond(http.StatusOK, duneResponse))
	c := NewMarketClient(MarketConfig{BaseURL: srv.URL}, nil)

	if _, outcome := c.Lookup(context.Background(), "  ", "Anyone"); outcome != models.OutcomeNotFound {
		t.Errorf("Lookup() outcome = %v, want not found", outcome)
	}
	if srv.hits.Load() != 0 {
		t.Error("empty title should not reach the API")
	}
}

func TestMarketClient_CachesFoundAndNotFound(t *testing.T) {
	srv := newMarketServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "Dune inauthor:Frank Herbert" {
			respond(http.StatusOK, duneResponse)(w, r)
			return
		}
		respond(http.StatusOK, `{"totalItems":0}`)(w, r)
	})
	mem := cache.New(time.Minute)
	defer mem.Close()
	c := NewMarketClient(MarketConfig{BaseURL: srv.URL}, cache.NewTiered[LookupResult](mem, nil, 0))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, outcome := c.Lookup(ctx, "Dune", "Frank Herbert"); !outcome.OK() {
			t.Fatalf("Lookup(Dune) outcome = %v", outcome)
		}
		if _, outcome := c.Lookup(ctx, "Unknown Book", ""); outcome != models.OutcomeNotFound {
			t.Fatalf("Lookup(Unknown) outcome = %v", outcome)
		}
	}
	// Keys are case-insensitive.
	if _, outcome := c.Lookup(ctx, "DUNE", "frank herbert"); !outcome.OK() {
		t.Fatalf("Lookup(DUNE) outcome = %v", outcome)
	}

	if got := srv.hits.Load(); got != 2 {
		t.Errorf("API hits = %d, want 2", got)
	}
}

func TestMarketClient_ErrorsAreNotCached(t *testing.T) {
	srv := newMarketServer(t, respond(http.StatusBadGateway, ``))
	mem := cache.New(time.Minute)
	defer mem.Close()
	c := NewMarketClient(MarketConfig{BaseURL: srv.URL}, cache.NewTiered[LookupResult](mem, nil, 0))

	c.Lookup(context.Background(), "Dune", "")
	c.Lookup(context.Background(), "Dune", "")
	if got := srv.hits.Load(); got != 2 {
		t.Errorf("API hits = %d, want 2", got)
	}
}

func TestMarketClient_BreakerOpens(t *testing.T) {
	srv := newMarketServer(t, respond(http.StatusServiceUnavailable, ``))
	c := NewMarketClient(MarketConfig{
		BaseURL: srv.URL,
		Breaker: resilience.BreakerConfig{
			MaxRequests:  1,
			Interval:     time.Minute,
			Timeout:      time.Hour,
			MinRequests:  2,
			FailureRatio: 0.5,
		},
	}, nil)

	for i := 0; i < 4; i++ {
		if _, outcome := c.Lookup(context.Background(), "Dune", ""); outcome != models.OutcomeUnavailable {
			t.Fatalf("Lookup() %d outcome = %v, want unavailable", i, outcome)
		}
	}
	if got := srv.hits.Load(); got != 2 {
		t.Errorf("API hits = %d, want 2 before the breaker opened", got)
	}
	if c.BreakerState() != "open" {
		t.Errorf("BreakerState() = %q, want open", c.BreakerState())
	}
}

func TestMarketClient_NotFoundDoesNotTripBreaker(t *testing.T) {
	srv := newMarketServer(t, respond(http.StatusOK, `{"totalItems":0}`))
	c := NewMarketClient(MarketConfig{
		BaseURL: srv.URL,
		Breaker: resilience.BreakerConfig{MaxRequests: 1, Interval: time.Minute, Timeout: time.Hour, MinRequests: 2, FailureRatio: 0.5},
	}, nil)

	for i := 0; i < 5; i++ {
		c.Lookup(context.Background(), "Nothing", "")
	}
	if c.BreakerState() != "closed" {
		t.Errorf("BreakerState() = %q, want closed", c.BreakerState())
	}
}

func TestMarketClient_CallerCancel(t *testing.T) {
	release := make(chan struct{})
	srv := newMarketServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
		respond(http.StatusOK, duneResponse)(w, r)
	})
	defer close(release)
	c := NewMarketClient(MarketConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if _, outcome := c.Lookup(ctx, "Dune", ""); outcome != models.OutcomeTimeout {
		t.Errorf("Lookup() outcome = %v, want timeout", outcome)
	}
}
