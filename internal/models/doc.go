// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

/*
Package models defines the data structures shared by the Bookmarket engine.

Key Components:

  - Book: a marketplace listing read from the book store
  - Interaction: a single view, search or favorite event of a user on a book
  - CatalogStats: interaction coverage figures reported by /model-metrics
  - DisplayItem: one entry of a recommendation or trending list
  - PriceRequest / PriceQuote: input and output of the price estimator
  - Outcome: result kind of an engine stage (ok, not_found, unavailable, timeout)

Thread Safety:

Models are plain values. Books and interactions are loaded into immutable
snapshots and shared read-only between requests; quotes and display items are
built per request.

JSON Marshaling:

Field names follow the marketplace API (snake_case). DisplayItem always
serialises image_url, emitting null when the image is unknown.
*/
package models
