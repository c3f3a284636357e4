// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

/*
Package recommend answers "what should this reader look at next".

Three strategies are available:

  - content: builds a TF-IDF profile from the books a user interacted with
    and ranks the rest of the catalog by cosine similarity
  - collaborative: reads the precomputed item-item similarity matrix for a
    given title
  - trending: returns the precomputed popularity table as is

Each request is served by an ordered chain of stages. A stage reports a
models.Outcome; the first stage that answers OK wins, otherwise the chain
moves on:

	collaborative (title given)  -> collaborative, trending
	collaborative (no title)     -> content, popularity
	content                      -> content, popularity
	trending                     -> trending

popularity is the live ranking of catalog books by interaction count over the
current snapshot. It is not the precomputed table used by trending.

Recommend never fails. Missing artifacts, unknown titles and users without
history all degrade to a shorter or empty list.

# Thread Safety

The similarity store and popularity table are built once and never
modified. The catalog snapshot and its TF-IDF corpus are swapped together
through an atomic pointer by SetSnapshot; readers always see a consistent
pair and never block.
*/
package recommend
