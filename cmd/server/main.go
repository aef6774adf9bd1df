// Hako - Media Catalog Search Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hako

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/hako/internal/api"
	"github.com/tomtom215/hako/internal/catalog"
	"github.com/tomtom215/hako/internal/config"
	"github.com/tomtom215/hako/internal/logging"
	"github.com/tomtom215/hako/internal/supervisor"
	"github.com/tomtom215/hako/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().
		Str("catalog", cfg.Catalog.Path).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting Hako")

	db, err := catalog.Open(cfg.Catalog.Path, catalogOptions(&cfg.Catalog))
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Catalog.Path).Msg("Failed to load catalog")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error releasing relation matrix")
		}
	}()

	handler, server := newServer(cfg, db)

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddMaintenanceService(services.NewCacheCleanupService(handler, cleanupInterval(cfg.API.CacheTTL)))
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	logging.Info().Msg("Hako stopped")
}

func catalogOptions(c *config.CatalogConfig) catalog.Options {
	return catalog.Options{
		SearchWorkers:     c.SearchWorkers,
		ParallelThreshold: c.ParallelThreshold,
	}
}

// newServer builds the API handler and the http.Server around it.
func newServer(cfg *config.Config, db *catalog.Database) (*api.Handler, *http.Server) {
	handler := api.NewHandler(db, &cfg.API)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.MiddlewareConfigFromAPI(&cfg.API)))
	return handler, &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
}

// cleanupInterval sweeps expired results at half their lifetime, at most
// once a second.
func cleanupInterval(ttl time.Duration) time.Duration {
	return max(ttl/2, time.Second)
}
