// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

/*
Package config loads and validates the service configuration.

Configuration is layered with koanf, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig).
 2. An optional YAML file: $CONFIG_PATH, then config.yaml, config.yml,
    /etc/bookmarket/config.yaml.
 3. Environment variables, through an explicit mapping table. Unknown
    variables are ignored.

Environment variables:

Server:
  - HTTP_HOST, HTTP_PORT (default 0.0.0.0:5001)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS (comma-separated)

Catalog store:
  - STORE_DRIVER: none, duckdb or sqlite (default none: synthetic catalog)
  - STORE_DSN: database file path

Artifacts and recommendations:
  - ARTIFACTS_DIR (default ./artifacts)
  - CATALOG_REFRESH_INTERVAL (default 10m), SYNTHETIC_SEED

Market lookup:
  - MARKET_ENABLED (default true)
  - GOOGLE_BOOKS_URL, GOOGLE_BOOKS_API_KEY
  - MARKET_TIMEOUT (max 5s), MARKET_MAX_RESULTS
  - MARKET_RPS, MARKET_BURST

Lookup cache:
  - CACHE_TTL (default 1h)
  - CACHE_BADGER_PATH: persistent tier, empty disables it

Price model:
  - PRICE_MODEL_SEED, PRICE_MODEL_SAMPLES, PRICE_MODEL_TREES,
    PRICE_MODEL_MAX_DEPTH, PRICE_MODEL_MIN_LEAF, PRICE_MODEL_WORKERS
  - PRICE_FLOOR (default 20), PRICE_REFERENCE_YEAR

Events:
  - EVENTS_ENABLED (default true), NATS_URL (empty: in-process),
    NATS_QUEUE_GROUP, EVENTS_BUFFER_SIZE

Logging:
  - LOG_LEVEL, LOG_FORMAT (json or console), LOG_CALLER

Usage:

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config
