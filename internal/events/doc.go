// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

/*
Package events publishes domain events after each served request.

Two topics are used:

  - bookmarket.price.quoted: one PriceQuoted per /predict-price answer.
  - bookmarket.recommendation.served: one RecommendationServed per
    /recommend or /trending answer.

Publishing is best effort. A failed publish is logged and counted but never
changes the HTTP response.

The transport is a Watermill in-process GoChannel by default. When a NATS URL
is configured the Watermill NATS publisher and subscriber are used instead,
in core NATS mode (no JetStream), and publishes go through a circuit breaker
so an unreachable server does not slow requests.

Consumer subscribes to both topics, logs each event and counts it in
bookmarket_events_consumed_total. It runs under the supervisor tree.
*/
package events
