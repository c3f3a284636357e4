// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

/*
Package supervisor runs the long-lived parts of the service under a
thejerf/suture/v4 supervision tree.

The tree has three layers so that a crash in one does not take down another:

  - data: catalog snapshot refresh
  - messaging: domain event consumer
  - api: HTTP server

Supervisor events (restarts, backoff, timeouts) are logged through
sutureslog, bridged to zerolog by logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewCatalogRefreshService(loader, engine, 10*time.Minute))
	tree.AddMessagingService(services.NewEventConsumerService(events.NewConsumer(bus)))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err = tree.Serve(ctx)
*/
package supervisor
