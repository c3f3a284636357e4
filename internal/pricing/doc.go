// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

/*
Package pricing quotes a resale price in INR for a book listing.

A quote comes from the first of three stages that answers:

 1. market: the remote catalog (Google Books) lists a price. The price is
    scaled by the condition factor, converted to INR, and jittered by
    ±5% for any condition other than New.
 2. estimated: the catalog knows the book but lists no price.
    EstimateFromMetadata derives one from page count, ratings, categories
    and publication year, then the same condition and jitter rules apply.
 3. model: nothing is known remotely. A random forest trained at startup on
    the reference dataset predicts the price from title, author, genre and
    condition. The result is jittered and floored at 20.

Stages report a models.Outcome rather than an error, and a panic inside the
market or estimated stage is recovered and treated as Unavailable, so Quote
always returns a price.

MarketClient is the remote lookup. It checks the lookup cache, collapses
concurrent identical lookups with singleflight, waits on a token-bucket
limiter and calls the API through a circuit breaker. Lookups are bounded by a
timeout of at most five seconds and never retried.
*/
package pricing
