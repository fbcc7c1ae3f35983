// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

// Package main is the entry point for the JellyRewind server.
//
// JellyRewind turns a media server's playback activity log into annual
// year-in-review reports: reconstructed viewing sessions, marathon nights,
// completion-aware top lists, time-of-day patterns, cross-user rankings,
// and a viewer personality.
//
// Startup order:
//
//  1. Configuration (koanf v2: defaults, optional YAML file, REWIND_* env)
//  2. Logging (zerolog)
//  3. DuckDB store (optionally seeded with mock data)
//  4. Metadata cache and report service
//  5. Supervisor tree (suture v4) with the HTTP server and the periodic
//     database checkpoint as supervised services
//
// Shutdown is graceful on SIGINT and SIGTERM: new connections stop, in-flight
// requests drain within the configured timeout, the WAL is checkpointed, and
// the database closes.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jellyrewind/jellyrewind/internal/api"
	"github.com/jellyrewind/jellyrewind/internal/cache"
	"github.com/jellyrewind/jellyrewind/internal/config"
	"github.com/jellyrewind/jellyrewind/internal/database"
	"github.com/jellyrewind/jellyrewind/internal/logging"
	"github.com/jellyrewind/jellyrewind/internal/rewind"
	"github.com/jellyrewind/jellyrewind/internal/supervisor"
	"github.com/jellyrewind/jellyrewind/internal/supervisor/services"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

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
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Str("timezone", cfg.Rewind.DefaultTimezone).
		Msg("Starting JellyRewind")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	metaCache := cache.New(cfg.Cache.TTL)
	defer metaCache.Close()
	svc := rewind.New(db, metaCache, cfg.Rewind, cfg.API.DefaultLimit)

	handler := api.NewHandler(svc, db, cfg.API.MaxLimit, version)
	router := api.NewRouter(handler, &api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Server.CORSOrigins,
		CORSAllowedMethods: []string{"GET", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", "Authorization"},
		CORSMaxAge:         86400,
		RateLimitRequests:  cfg.Server.RateLimitReqs,
		RateLimitWindow:    cfg.Server.RateLimitWindow,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(services.NewCheckpointService(db, time.Hour))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Stopped gracefully")
}
