// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/reelrank/internal/api"
	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/database"
	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/supervisor"
	"github.com/tomtom215/reelrank/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("environment", cfg.Server.Environment).
		Bool("ingest_enabled", cfg.Ingest.Enabled).
		Str("cache_backend", cfg.Cache.Backend).
		Msg("Starting reelrank")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	rc, err := initRecommend(ctx, cfg, db)
	if err != nil {
		return err
	}
	defer rc.Close()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		return err
	}

	// Data layer
	closeIngest, err := initIngest(cfg, db, rc, tree)
	if err != nil {
		return err
	}
	defer closeIngest()

	if cfg.Model.RetrainInterval > 0 {
		tree.AddDataService(services.NewRetrainService(rc.Refresher, services.RetrainServiceConfig{
			Interval: cfg.Model.RetrainInterval,
		}, logging.Logger()))
		logging.Info().Dur("interval", cfg.Model.RetrainInterval).Msg("Model retraining added to supervisor tree")
	}

	// API layer
	handler := api.NewHandler(rc.Recommender, db, api.HandlerConfig{
		MaxLimit:       cfg.Recommend.MaxLimit,
		RequestTimeout: cfg.Server.RequestTimeout,
		ModelLoaded:    rc.Holder.Loaded,
	})
	router := api.NewRouter(handler, &api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Security.CORSOrigins,
		CORSMaxAge:         86400,
		RateLimitRequests:  cfg.Security.RateLimitReqs,
		RateLimitWindow:    cfg.Security.RateLimitWindow,
		RateLimitDisabled:  cfg.Security.RateLimitDisabled,
	})

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
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

	treeErr := <-errCh
	if errors.Is(treeErr, context.Canceled) {
		treeErr = nil
	}

	unstopped, _ := tree.UnstoppedServiceReport() //nolint:errcheck // report only
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	return treeErr
}
