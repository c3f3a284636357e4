// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

/*
Package middleware provides the HTTP middleware shared by every route.

All middleware has the chi signature func(http.Handler) http.Handler:

  - RequestID: reads or generates X-Request-ID and stores it in the logging
    context so every log line and published event carries it.
  - PrometheusMetrics: request count, duration and in-flight gauge, labelled by
    the chi route pattern rather than the raw path to bound cardinality.
  - AccessLog: one structured zerolog line per request.

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.AccessLog)
*/
package middleware
