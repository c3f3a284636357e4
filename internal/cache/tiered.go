// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package cache

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookmarket/internal/logging"
	"github.com/tomtom215/bookmarket/internal/metrics"
)

// Tier labels used in metrics.
const (
	TierMemory = "memory"
	TierBadger = "badger"
)

// Tiered is a two-level cache of T values. Either tier may be nil.
type Tiered[T any] struct {
	mem        Cacher
	persistent Persistent
	ttl        time.Duration
	logger     zerolog.Logger
}

// NewTiered creates a tiered cache. ttl applies to the persistent tier; the
// memory tier uses its own default.
func NewTiered[T any](mem Cacher, persistent Persistent, ttl time.Duration) *Tiered[T] {
	return &Tiered[T]{
		mem:        mem,
		persistent: persistent,
		ttl:        ttl,
		logger:     logging.WithComponent("cache"),
	}
}

// Get returns the cached value for key. Persistent hits are promoted to
// memory. Persistent read errors are logged and treated as misses.
func (t *Tiered[T]) Get(key string) (T, bool) {
	var zero T

	if t.mem != nil {
		if v, ok := t.mem.Get(key); ok {
			if typed, ok := v.(T); ok {
				metrics.RecordCacheLookup(TierMemory, true)
				return typed, true
			}
		}
		metrics.RecordCacheLookup(TierMemory, false)
	}

	if t.persistent == nil {
		return zero, false
	}
	var v T
	ok, err := t.persistent.Get(key, &v)
	if err != nil {
		t.logger.Warn().Err(err).Str("key", key).Msg("Persistent cache read failed")
	}
	metrics.RecordCacheLookup(TierBadger, ok && err == nil)
	if !ok || err != nil {
		return zero, false
	}
	if t.mem != nil {
		t.mem.Set(key, v)
	}
	return v, true
}

// Set stores v in every configured tier. Persistent write errors are logged.
func (t *Tiered[T]) Set(key string, v T) {
	if t.mem != nil {
		t.mem.Set(key, v)
	}
	if t.persistent != nil {
		if err := t.persistent.Set(key, v, t.ttl); err != nil {
			t.logger.Warn().Err(err).Str("key", key).Msg("Persistent cache write failed")
		}
	}
}
