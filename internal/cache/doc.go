// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

/*
Package cache holds market lookup results so repeated price requests for the
same title do not reach the remote catalog.

Two tiers are provided:

  - Cache: an in-memory map with per-entry TTL and a background cleanup loop.
  - BadgerStore: a persistent tier on BadgerDB. Values are JSON encoded and
    expire through Badger's native entry TTL.

Tiered combines them. Reads try memory first, then Badger, and a Badger hit is
promoted into memory. Writes go to both tiers. Every lookup is counted in the
bookmarket_lookup_cache_{hits,misses}_total metrics with a tier label.

# Usage

	mem := cache.New(30 * time.Minute)
	defer mem.Close()

	db, err := cache.OpenBadger(cfg.Cache.Path)
	if err != nil {
	    return err
	}
	lookups := cache.NewTiered[pricing.MarketRecord](mem, cache.NewBadgerStore(db, "market:"), 24*time.Hour)
*/
package cache
