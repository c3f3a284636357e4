// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

/*
Package api serves the recommendation and pricing engine over HTTP.

Routes (raw JSON bodies, no envelope):

	POST /predict-price   {title, author, genre, condition="Good"} -> {"predicted_price": n}
	POST /recommend       {user_id=1, type="content", book_title?, num_recommendations=5} -> [book...]
	GET  /trending        ?limit=50 -> [book...]
	GET  /health          service readiness
	GET  /model-metrics   interaction coverage and price model info
	GET  /metrics         Prometheus exposition

The engine never fails a request: strategies that cannot answer fall back and
pricing always produces a quote. The handlers only reject bodies that are not
JSON objects or that fail validation, both with a 400 JSON error.

Every served price and recommendation list is also published as a domain
event when an events.Emitter is configured.
*/
package api
