// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

/*
Package metrics defines the Prometheus collectors exported on GET /metrics.

All collectors are registered on the default registry through promauto at
package init, so importing the package is enough to expose them. Callers
record through the Record* helpers rather than touching label values
directly.

Families:

  - api_*: request count, latency and in-flight gauge (filled by middleware)
  - bookmarket_recommendations_total{strategy,outcome}
  - bookmarket_price_quotes_total{source}
  - bookmarket_market_lookups_total{outcome}, bookmarket_market_lookup_duration_seconds
  - bookmarket_lookup_cache_{hits,misses}_total{tier}
  - circuit_breaker_*: state and transitions of the market breaker
  - bookmarket_catalog_books, bookmarket_catalog_refreshes_total{source}
  - bookmarket_model_training_duration_seconds
  - bookmarket_events_{published,consumed}_total{topic}
*/
package metrics
