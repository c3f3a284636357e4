// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

/*
Package main is the bookmarket HTTP server.

It serves book recommendations and second-hand price estimates over a small
JSON API, supervised by a suture tree:

	RootSupervisor ("bookmarket")
	├── DataSupervisor ("data-layer")
	│   └── Catalog refresh (reloads the catalog snapshot)
	├── MessagingSupervisor ("messaging-layer")
	│   └── Event consumer (when events are enabled)
	└── APISupervisor ("api-layer")
	    └── HTTP server

Startup order:

 1. Configuration: koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog
 3. Catalog store (DuckDB or SQLite, optional) and lookup caches
 4. In parallel: collaborative artifacts, catalog snapshot, price model
 5. Event bus, API handler and router
 6. Supervisor tree until SIGINT or SIGTERM

Missing artifacts, an unreachable store, or a failed model fit do not stop
the server; the affected endpoints degrade and /health reports it.

Common environment variables:

	PORT=5001
	STORE_DRIVER=duckdb          # duckdb, sqlite or none
	STORE_DSN=/data/books.duckdb
	ARTIFACTS_DIR=./artifacts
	GOOGLE_BOOKS_API_KEY=...
	CACHE_BADGER_PATH=/data/lookups
	NATS_URL=nats://localhost:4222
	LOG_LEVEL=info

See internal/config for the full list.
*/
package main
