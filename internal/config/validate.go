// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/bookmarket/internal/catalog"
	"github.com/tomtom215/bookmarket/internal/logging"
	"github.com/tomtom215/bookmarket/internal/pricing"
)

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	for _, check := range []func() error{
		c.validateServer,
		c.validateStore,
		c.validateMarket,
		c.validateCache,
		c.validatePricing,
		c.validateEvents,
		c.validateLogging,
	} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("HTTP_READ_TIMEOUT and HTTP_WRITE_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	if !c.Server.RateLimitDisabled {
		if c.Server.RateLimitRequests < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Server.RateLimitRequests)
		}
		if c.Server.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Server.RateLimitWindow)
		}
	}
	return nil
}

func (c *Config) validateStore() error {
	switch c.Store.Driver {
	case "", StoreDisabled:
		return nil
	case catalog.DriverDuckDB, catalog.DriverSQLite:
		if c.Store.DSN == "" {
			return fmt.Errorf("STORE_DSN is required when STORE_DRIVER=%s", c.Store.Driver)
		}
		return nil
	default:
		return fmt.Errorf("STORE_DRIVER must be one of none, %s, %s, got %q",
			catalog.DriverDuckDB, catalog.DriverSQLite, c.Store.Driver)
	}
}

func (c *Config) validateMarket() error {
	if !c.Market.Enabled {
		return nil
	}
	if err := validateHTTPURL(c.Market.BaseURL, "GOOGLE_BOOKS_URL"); err != nil {
		return err
	}
	if c.Market.Timeout <= 0 || c.Market.Timeout > pricing.MaxMarketTimeout {
		return fmt.Errorf("MARKET_TIMEOUT must be in (0, %v], got %v", pricing.MaxMarketTimeout, c.Market.Timeout)
	}
	if c.Market.MaxResults < 1 || c.Market.MaxResults > 40 {
		return fmt.Errorf("MARKET_MAX_RESULTS must be between 1 and 40, got %d", c.Market.MaxResults)
	}
	if c.Market.RequestsPerSecond < 0 {
		return fmt.Errorf("MARKET_RPS must not be negative, got %v", c.Market.RequestsPerSecond)
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %v", c.Cache.TTL)
	}
	return nil
}

func (c *Config) validatePricing() error {
	p := c.Pricing
	switch {
	case p.Samples < 1:
		return fmt.Errorf("PRICE_MODEL_SAMPLES must be positive, got %d", p.Samples)
	case p.Trees < 1:
		return fmt.Errorf("PRICE_MODEL_TREES must be positive, got %d", p.Trees)
	case p.MaxDepth < 1:
		return fmt.Errorf("PRICE_MODEL_MAX_DEPTH must be positive, got %d", p.MaxDepth)
	case p.MinLeaf <= 0:
		return fmt.Errorf("PRICE_MODEL_MIN_LEAF must be positive, got %v", p.MinLeaf)
	case p.Workers < 0:
		return fmt.Errorf("PRICE_MODEL_WORKERS must not be negative, got %d", p.Workers)
	case p.Floor < 0:
		return fmt.Errorf("PRICE_FLOOR must not be negative, got %v", p.Floor)
	case p.ReferenceYear < 1900:
		return fmt.Errorf("PRICE_REFERENCE_YEAR looks wrong: %d", p.ReferenceYear)
	}
	return nil
}

func (c *Config) validateEvents() error {
	if !c.Events.Enabled || c.Events.NATSURL == "" {
		return nil
	}
	if err := validateNATSURL(c.Events.NATSURL); err != nil {
		return fmt.Errorf("NATS_URL is invalid: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}

// validateHTTPURL checks for an absolute http or https URL without a query.
func validateHTTPURL(rawURL, fieldName string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if u.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, u.RawQuery)
	}
	return nil
}

// validateNATSURL accepts nats, tls, ws and wss URLs.
func validateNATSURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}
	switch u.Scheme {
	case "nats", "tls", "ws", "wss":
	default:
		return fmt.Errorf("scheme must be nats, tls, ws, or wss, got: %s", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required (e.g., localhost:4222)")
	}
	return nil
}
