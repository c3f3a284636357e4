// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookmarket/internal/catalog"
	"github.com/tomtom215/bookmarket/internal/logging"
)

// DefaultRefreshInterval is used when no interval is configured.
const DefaultRefreshInterval = 10 * time.Minute

// SnapshotLoader produces catalog snapshots. *catalog.Loader satisfies it.
type SnapshotLoader interface {
	Load(ctx context.Context) *catalog.Snapshot
}

// SnapshotSink installs snapshots. *recommend.Engine satisfies it.
type SnapshotSink interface {
	SetSnapshot(snap *catalog.Snapshot)
}

// CatalogRefreshService reloads the catalog on a fixed interval and swaps
// the result into the engine. The initial load happens at startup, before
// the tree runs, so the first reload is one interval in.
type CatalogRefreshService struct {
	loader   SnapshotLoader
	sink     SnapshotSink
	interval time.Duration
	name     string
	logger   zerolog.Logger
}

// NewCatalogRefreshService creates the service. A non-positive interval
// means DefaultRefreshInterval.
func NewCatalogRefreshService(loader SnapshotLoader, sink SnapshotSink, interval time.Duration) *CatalogRefreshService {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &CatalogRefreshService{
		loader:   loader,
		sink:     sink,
		interval: interval,
		name:     "catalog-refresh",
		logger:   logging.WithComponent("catalog-refresh"),
	}
}

// Serve implements suture.Service.
func (s *CatalogRefreshService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("Catalog refresh running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// Refresh performs one reload. A load that finishes after cancellation is
// discarded.
func (s *CatalogRefreshService) Refresh(ctx context.Context) {
	start := time.Now()
	snap := s.loader.Load(ctx)
	if ctx.Err() != nil || snap == nil {
		return
	}
	s.sink.SetSnapshot(snap)
	s.logger.Debug().
		Int("books", len(snap.Books)).
		Bool("synthetic", snap.Synthetic).
		Dur("duration", time.Since(start)).
		Msg("Catalog refreshed")
}

// String names the service in supervisor logs.
func (s *CatalogRefreshService) String() string {
	return s.name
}
