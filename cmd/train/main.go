// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package main trains the latent-factor model from the ratings in DuckDB
// and saves it as a new version in the model directory.
//
// It reads the same configuration as the server (MODEL_*, DUCKDB_PATH, ...).
// A running server picks the new version up on its next start, or on its
// next scheduled retrain when MODEL_RETRAIN_INTERVAL is set.
//
//	DUCKDB_PATH=/data/reelrank.duckdb MODEL_DIR=/data/models ./reelrank-train
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/database"
	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/recommend/latent"
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	meta, err := train(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Training failed")
	}

	logging.Info().
		Str("model", meta.Name).
		Int("version", meta.Version).
		Int("ratings", meta.Ratings).
		Int("users", meta.Users).
		Int("items", meta.Items).
		Float64("rmse", meta.RMSE).
		Dur("duration", meta.Duration).
		Msg("Model saved")
}

func train(ctx context.Context, cfg *config.Config) (latent.Metadata, error) {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return latent.Metadata{}, err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	store, err := latent.NewModelStore(cfg.Model.Dir)
	if err != nil {
		return latent.Metadata{}, err
	}

	logger := logging.WithComponent("train")
	trainer := latent.NewTrainer(latent.TrainerConfig{
		Factors:        cfg.Model.Factors,
		Epochs:         cfg.Model.Epochs,
		LearningRate:   cfg.Model.LearningRate,
		Regularization: cfg.Model.Regularization,
		Seed:           cfg.Model.Seed,
	}, logger)

	refresher := latent.NewRefresher(db, trainer, store, latent.NewHolder(nil, 0),
		latent.RefresherConfig{Name: cfg.Model.Name, Keep: cfg.Model.KeepVersions}, logger)
	return refresher.Retrain(ctx)
}
