// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/bookmarket/internal/api"
	"github.com/tomtom215/bookmarket/internal/artifacts"
	"github.com/tomtom215/bookmarket/internal/cache"
	"github.com/tomtom215/bookmarket/internal/catalog"
	"github.com/tomtom215/bookmarket/internal/config"
	"github.com/tomtom215/bookmarket/internal/events"
	"github.com/tomtom215/bookmarket/internal/logging"
	"github.com/tomtom215/bookmarket/internal/pricing"
	"github.com/tomtom215/bookmarket/internal/recommend"
)

// lookupCachePrefix namespaces market lookups in the Badger database.
const lookupCachePrefix = "market:"

// components holds everything the supervisor tree and router need, plus
// the resources to release on exit.
type components struct {
	engine    *recommend.Engine
	loader    *catalog.Loader
	estimator *pricing.Estimator
	bus       *events.Bus
	router    http.Handler

	store    *catalog.SQLStore
	memCache *cache.Cache
	badgerDB *badger.DB
}

// initComponents builds the service graph. Only an unusable store, cache
// path or event transport is fatal.
func initComponents(ctx context.Context, cfg *config.Config) (*components, error) {
	c := &components{}
	ok := false
	defer func() {
		if !ok {
			c.Close()
		}
	}()

	var bookStore catalog.BookStore
	if cfg.Store.Enabled() {
		store, err := catalog.Open(ctx, cfg.Store.Driver, cfg.Store.DSN)
		if err != nil {
			return nil, fmt.Errorf("open catalog store: %w", err)
		}
		c.store = store
		bookStore = store
		logging.Info().Str("driver", cfg.Store.Driver).Msg("Catalog store opened")
	} else {
		logging.Info().Msg("No catalog store configured, serving the synthetic catalog")
	}
	c.loader = catalog.NewLoader(bookStore, cfg.Recommend.SyntheticSeed)

	bundle, snap, model, err := loadInParallel(ctx, cfg, c.loader)
	if err != nil {
		return nil, err
	}
	c.engine = recommend.NewEngine(bundle, snap)

	market, err := c.initMarket(cfg)
	if err != nil {
		return nil, err
	}
	c.estimator = pricing.NewEstimator(market, model,
		pricing.WithFloor(cfg.Pricing.Floor),
		pricing.WithReferenceYear(cfg.Pricing.ReferenceYear),
	)

	opts := []api.HandlerOption{}
	if c.store != nil {
		opts = append(opts, api.WithStatsStore(c.store))
	}
	if mc, ok := market.(*pricing.MarketClient); ok {
		opts = append(opts, api.WithMarketBreaker(mc))
	}
	if cfg.Events.Enabled {
		bus, err := events.NewBus(cfg.Events.Bus())
		if err != nil {
			return nil, fmt.Errorf("create event bus: %w", err)
		}
		c.bus = bus
		opts = append(opts, api.WithEmitter(events.NewEmitter(bus)))
		logging.Info().Str("transport", bus.Transport()).Msg("Event bus ready")
	}

	handler := api.NewHandler(c.engine, c.estimator, opts...)
	c.router = api.NewRouter(handler, chiConfig(cfg.Server))

	ok = true
	return c, nil
}

// loadInParallel loads the artifacts, the catalog snapshot and the price
// model concurrently. Each failure degrades its own feature only.
func loadInParallel(ctx context.Context, cfg *config.Config, loader *catalog.Loader) (*artifacts.Bundle, *catalog.Snapshot, *pricing.PriceModel, error) {
	var (
		bundle *artifacts.Bundle
		snap   *catalog.Snapshot
		model  *pricing.PriceModel
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := artifacts.Load(cfg.Artifacts.Dir)
		if err != nil {
			logging.Warn().Err(err).Str("dir", cfg.Artifacts.Dir).
				Msg("Collaborative artifacts unavailable, collaborative and trending requests will fall back")
			return nil
		}
		bundle = b
		logging.Info().Int("titles", b.Size()).Int("popular", len(b.Popular)).Msg("Collaborative artifacts loaded")
		return nil
	})
	g.Go(func() error {
		snap = loader.Load(gctx)
		return nil
	})
	g.Go(func() error {
		m, err := pricing.TrainPriceModel(gctx, cfg.Pricing.Model())
		if err != nil {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			logging.Error().Err(err).Msg("Price model training failed, quotes will use the price floor")
			return nil
		}
		model = m
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, nil, fmt.Errorf("startup interrupted: %w", err)
	}
	return bundle, snap, model, nil
}

// initMarket builds the market client and its lookup cache. It returns a
// nil MarketLookup when the market is disabled.
func (c *components) initMarket(cfg *config.Config) (pricing.MarketLookup, error) {
	if !cfg.Market.Enabled {
		logging.Info().Msg("Market lookup disabled, quotes use the price model")
		return nil, nil
	}

	c.memCache = cache.New(cfg.Cache.TTL)
	var persistent cache.Persistent
	if cfg.Cache.BadgerPath != "" {
		db, err := cache.OpenBadger(cfg.Cache.BadgerPath)
		if err != nil {
			return nil, err
		}
		c.badgerDB = db
		persistent = cache.NewBadgerStore(db, lookupCachePrefix)
	}
	lookups := cache.NewTiered[pricing.LookupResult](c.memCache, persistent, cfg.Cache.TTL)

	return pricing.NewMarketClient(cfg.Market.Client(), lookups), nil
}

func chiConfig(s config.ServerConfig) *api.ChiMiddlewareConfig {
	mw := api.DefaultChiMiddlewareConfig()
	if len(s.CORSOrigins) > 0 {
		mw.CORSAllowedOrigins = s.CORSOrigins
	}
	if s.RateLimitRequests > 0 {
		mw.RateLimitRequests = s.RateLimitRequests
	}
	if s.RateLimitWindow > 0 {
		mw.RateLimitWindow = s.RateLimitWindow
	}
	mw.RateLimitDisabled = s.RateLimitDisabled
	return mw
}

func newHTTPServer(s config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort(s.Host, strconv.Itoa(s.Port)),
		Handler:           handler,
		ReadTimeout:       s.ReadTimeout,
		ReadHeaderTimeout: s.ReadTimeout,
		WriteTimeout:      s.WriteTimeout,
	}
}

// Close releases the store, caches and bus. It is safe on a partially
// built value.
func (c *components) Close() {
	if c.bus != nil {
		if err := c.bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}
	if c.memCache != nil {
		c.memCache.Close()
	}
	if c.badgerDB != nil {
		if err := c.badgerDB.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing lookup cache")
		}
	}
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing catalog store")
		}
	}
}
