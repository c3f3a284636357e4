// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

/*
Package tfidf turns short book texts into sparse term-weighted vectors.

Weighting follows the common smoothed scheme:

	tf(t, d)  = raw count of t in d
	idf(t)    = ln((1 + n) / (1 + df(t))) + 1
	w(t, d)   = tf(t, d) * idf(t), then each document vector is L2-normalised

Tokens are lowercase runs of two or more letters, digits or underscores.
English stop words can be dropped and the vocabulary can be capped to the
most frequent terms of the fitted corpus.

Vectors are immutable once built and safe to share between goroutines.
*/
package tfidf
