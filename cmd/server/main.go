// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/bookmarket/internal/config"
	"github.com/tomtom215/bookmarket/internal/events"
	"github.com/tomtom215/bookmarket/internal/logging"
	"github.com/tomtom215/bookmarket/internal/supervisor"
	"github.com/tomtom215/bookmarket/internal/supervisor/services"
)

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(cfg.Logging.Logger())
	logging.Info().Msg("Starting bookmarket with supervisor tree")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Error().Err(err).Msg("Server stopped with error")
		os.Exit(1)
	}
	logging.Info().Msg("Server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	c, err := initComponents(ctx, cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	watchLogLevel()

	// sutureslog needs slog; the adapter forwards to zerolog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	tree.AddDataService(services.NewCatalogRefreshService(c.loader, c.engine, cfg.Recommend.RefreshInterval))
	if c.bus != nil {
		tree.AddMessagingService(services.NewEventConsumerService(events.NewConsumer(c.bus)))
	}
	server := newHTTPServer(cfg.Server, c.router)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().
		Str("addr", server.Addr).
		Bool("collaborative", c.engine.CollaborativeLoaded()).
		Bool("price_model", c.estimator.Ready()).
		Msg("Services registered, starting supervisor")

	err = tree.Serve(ctx)

	if report, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(report) > 0 {
		logging.Warn().Int("count", len(report)).Msg("Services did not stop within the shutdown timeout")
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// watchLogLevel reapplies the log level when the config file changes.
// Everything else needs a restart.
func watchLogLevel() {
	path := config.ConfigFile()
	if path == "" {
		return
	}
	err := config.WatchConfigFile(path, func() {
		cfg, err := config.LoadWithKoanf()
		if err != nil {
			logging.Warn().Err(err).Msg("Ignoring invalid config change")
			return
		}
		logging.Init(cfg.Logging.Logger())
		logging.Info().Str("level", cfg.Logging.Level).Msg("Logging settings reloaded")
	})
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Config file watch unavailable")
	}
}
