// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

/*
Package services adapts bookmarket components to suture.Service.

  - HTTPServerService: *http.Server with graceful shutdown
  - CatalogRefreshService: periodic catalog reload into the engine
  - EventConsumerService: domain event consumer

Return values drive the supervisor:

	nil         -> stopped cleanly, not restarted
	error       -> crashed, restarted with backoff
	ctx.Err()   -> shutdown requested
*/
package services
