// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

/*
Package artifacts loads the precomputed collaborative-filtering bundle.

A bundle is four JSON files in one directory:

	books.json              catalog rows (Book-Title, Book-Author, Image-URL-M)
	popular.json            pre-ranked popularity rows, legacy column names allowed
	pt.json                 pivot index: one title per similarity row
	similarity_scores.json  square matrix of item-item similarity

The bundle is produced offline and is read once at process start. Rows are
kept as loosely typed maps because several schema variants exist in the wild;
fields are resolved per row through ordered Column rules (canonical name,
then legacy aliases, then a default) instead of failing on a missing column.

Load reports ErrMissing when a file is absent and ErrMalformed when the
matrix is not square or does not match the pivot index. Callers treat both
as "collaborative data unavailable" and keep serving content-based results.

Reference builds a small deterministic bundle (twenty classics) used for
development, tests and `bookctl artifacts generate`.
*/
package artifacts
