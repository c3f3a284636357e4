// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package cache

import "time"

// Cacher is the in-memory tier contract. Cache implements it; tests may
// substitute their own.
type Cacher interface {
	// Get returns the value and true if present and not expired.
	Get(key string) (interface{}, bool)

	// Set stores a value with the default TTL.
	Set(key string, value interface{})

	// SetWithTTL stores a value with a custom TTL.
	SetWithTTL(key string, value interface{}, ttl time.Duration)

	Delete(key string)
	Clear()
	GetStats() Stats
	HitRate() float64
}

// Persistent is the durable tier contract. BadgerStore implements it.
type Persistent interface {
	// Get decodes the stored value into dst. It reports false when the key
	// is absent or expired.
	Get(key string, dst interface{}) (bool, error)

	// Set stores value for ttl. A zero ttl never expires.
	Set(key string, value interface{}, ttl time.Duration) error
}

var (
	_ Cacher     = (*Cache)(nil)
	_ Persistent = (*BadgerStore)(nil)
)
