// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package pricing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/tomtom215/bookmarket/internal/cache"
	"github.com/tomtom215/bookmarket/internal/logging"
	"github.com/tomtom215/bookmarket/internal/metrics"
	"github.com/tomtom215/bookmarket/internal/models"
	"github.com/tomtom215/bookmarket/internal/resilience"
)

const (
	// DefaultMarketURL is the Google Books volumes endpoint.
	DefaultMarketURL = "https://www.googleapis.com/books/v1/volumes"

	// MaxMarketTimeout bounds every lookup.
	MaxMarketTimeout = 5 * time.Second

	marketBreakerName = "market-api"
	maxResponseBytes  = 1 << 20
)

// MarketLookup finds a book in the remote catalog.
type MarketLookup interface {
	Lookup(ctx context.Context, title, author string) (MarketRecord, models.Outcome)
}

// MarketConfig configures a MarketClient.
type MarketConfig struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	MaxResults        int
	RequestsPerSecond float64
	Burst             int
	Breaker           resilience.BreakerConfig
}

// LookupResult is the cached form of a lookup. Found is false for books
// the catalog does not know, so repeated misses are not re-fetched.
type LookupResult struct {
	Record MarketRecord `json:"record"`
	Found  bool         `json:"found"`
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return "market api returned status " + strconv.Itoa(e.Code)
}

// MarketClient looks books up in Google Books.
type MarketClient struct {
	baseURL    string
	apiKey     string
	maxResults int
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *resilience.Breaker
	group      singleflight.Group
	lookups    *cache.Tiered[LookupResult]
	logger     zerolog.Logger
}

// NewMarketClient creates a client. lookups may be nil to disable caching.
// The timeout is capped at MaxMarketTimeout.
func NewMarketClient(cfg MarketConfig, lookups *cache.Tiered[LookupResult]) *MarketClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultMarketURL
	}
	if cfg.Timeout <= 0 || cfg.Timeout > MaxMarketTimeout {
		cfg.Timeout = MaxMarketTimeout
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 5
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.Breaker.MaxRequests == 0 {
		cfg.Breaker = resilience.DefaultBreakerConfig()
	}

	return &MarketClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		maxResults: cfg.MaxResults,
		timeout:    cfg.Timeout,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, cfg.Burst),
		breaker:    resilience.NewBreaker(marketBreakerName, cfg.Breaker),
		lookups:    lookups,
		logger:     logging.WithComponent("market"),
	}
}

// BreakerState reports the circuit breaker state.
func (c *MarketClient) BreakerState() string {
	return c.breaker.State()
}

// Lookup returns the first catalog match for title and author. It never
// fails: problems are reported through the outcome.
func (c *MarketClient) Lookup(ctx context.Context, title, author string) (MarketRecord, models.Outcome) {
	if strings.TrimSpace(title) == "" {
		return MarketRecord{}, models.OutcomeNotFound
	}

	key := lookupKey(title, author)
	if c.lookups != nil {
		if res, ok := c.lookups.Get(key); ok {
			if !res.Found {
				return MarketRecord{}, models.OutcomeNotFound
			}
			return res.Record, models.OutcomeOK
		}
	}

	// The shared fetch outlives any single caller; each caller still gives
	// up when its own context ends.
	ch := c.group.DoChan(key, func() (interface{}, error) {
		return c.fetch(context.WithoutCancel(ctx), key, title, author), nil
	})
	select {
	case res := <-ch:
		r := res.Val.(fetchResult)
		return r.record, r.outcome
	case <-ctx.Done():
		return MarketRecord{}, outcomeFor(ctx.Err())
	}
}

type fetchResult struct {
	record  MarketRecord
	outcome models.Outcome
}

func (c *MarketClient) fetch(ctx context.Context, key, title, author string) fetchResult {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rec, outcome, err := c.query(ctx, title, author)
	metrics.RecordMarketLookup(outcome.String(), time.Since(start))

	log := logging.Ctx(ctx).With().Str("component", "market").Str("title", title).Logger()
	switch outcome {
	case models.OutcomeOK:
		c.store(key, LookupResult{Record: rec, Found: true})
	case models.OutcomeNotFound:
		c.store(key, LookupResult{})
		log.Debug().Msg("Book not found in market catalog")
	default:
		log.Warn().Err(err).Str("outcome", outcome.String()).Dur("took", time.Since(start)).Msg("Market lookup failed")
	}
	return fetchResult{record: rec, outcome: outcome}
}

func (c *MarketClient) store(key string, res LookupResult) {
	if c.lookups != nil {
		c.lookups.Set(key, res)
	}
}

func (c *MarketClient) query(ctx context.Context, title, author string) (MarketRecord, models.Outcome, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return MarketRecord{}, models.OutcomeTimeout, fmt.Errorf("rate limiter: %w", err)
	}

	resp, err := resilience.Call(c.breaker, func() (*volumesResponse, error) {
		return c.get(ctx, title, author)
	})
	if err != nil {
		return MarketRecord{}, outcomeFor(err), err
	}
	if len(resp.Items) == 0 {
		return MarketRecord{}, models.OutcomeNotFound, nil
	}
	return resp.Items[0].record(), models.OutcomeOK, nil
}

func (c *MarketClient) get(ctx context.Context, title, author string) (*volumesResponse, error) {
	q := title
	if author != "" {
		q += " inauthor:" + author
	}
	params := url.Values{}
	params.Set("q", q)
	params.Set("maxResults", strconv.Itoa(c.maxResults))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var out volumesResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode volumes: %w", err)
	}
	return &out, nil
}

// outcomeFor maps a lookup error to an outcome. Deadline errors, including
// those surfaced as net.Error timeouts, are Timeout; everything else is
// Unavailable.
func outcomeFor(err error) models.Outcome {
	if errors.Is(err, context.DeadlineExceeded) {
		return models.OutcomeTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return models.OutcomeTimeout
	}
	return models.OutcomeUnavailable
}

func lookupKey(title, author string) string {
	return strings.ToLower(strings.TrimSpace(title)) + "|" + strings.ToLower(strings.TrimSpace(author))
}

type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	VolumeInfo volumeInfo `json:"volumeInfo"`
	SaleInfo   saleInfo   `json:"saleInfo"`
}

type volumeInfo struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Publisher     string   `json:"publisher"`
	PublishedDate string   `json:"publishedDate"`
	Description   string   `json:"description"`
	PageCount     int      `json:"pageCount"`
	Categories    []string `json:"categories"`
	AverageRating float64  `json:"averageRating"`
	RatingsCount  int      `json:"ratingsCount"`
	ListPrice     *amount  `json:"listPrice"`
}

type saleInfo struct {
	ListPrice *amount `json:"listPrice"`
}

type amount struct {
	Amount       float64 `json:"amount"`
	CurrencyCode string  `json:"currencyCode"`
}

func (v *volume) record() MarketRecord {
	info := v.VolumeInfo
	rec := MarketRecord{
		Title:         info.Title,
		Authors:       info.Authors,
		Publisher:     info.Publisher,
		Description:   info.Description,
		PublishedDate: info.PublishedDate,
		PageCount:     info.PageCount,
		Categories:    info.Categories,
		AverageRating: info.AverageRating,
		RatingsCount:  info.RatingsCount,
		Currency:      models.ReferenceCurrency,
	}

	price := info.ListPrice
	if price == nil {
		price = v.SaleInfo.ListPrice
	}
	if price != nil {
		rec.ListedPrice = price.Amount
		if price.CurrencyCode != "" {
			rec.Currency = price.CurrencyCode
		}
	}
	return rec
}
