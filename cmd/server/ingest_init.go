// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/database"
	"github.com/tomtom215/reelrank/internal/ingest"
	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/supervisor"
	"github.com/tomtom215/reelrank/internal/supervisor/services"
)

// initIngest adds the one-shot MovieLens load to the data layer when
// enabled. The returned function closes the checkpoint store.
func initIngest(cfg *config.Config, db *database.DB, rc *recommendComponents, tree *supervisor.SupervisorTree) (func(), error) {
	if !cfg.Ingest.Enabled {
		logging.Info().Msg("MovieLens ingest disabled (INGEST_ENABLED=false)")
		return func() {}, nil
	}

	logger := logging.WithComponent("ingest")

	var (
		progress ingest.ProgressTracker = ingest.NewInMemoryProgress()
		closeFn                         = func() {}
	)
	if cfg.Ingest.ProgressPath != "" {
		bp, err := ingest.OpenBadgerProgress(cfg.Ingest.ProgressPath)
		if err != nil {
			return nil, fmt.Errorf("open ingest progress store: %w", err)
		}
		progress = bp
		closeFn = func() {
			if err := bp.Close(); err != nil {
				logging.Warn().Err(err).Msg("Error closing ingest progress store")
			}
		}
	}

	loader := ingest.NewLoader(&cfg.Ingest, db, progress, logger)

	var after services.AfterIngestFunc
	if cfg.Model.TrainOnStartup {
		after = func(ctx context.Context, _ *ingest.Stats) error {
			_, err := rc.Refresher.Retrain(ctx)
			return err
		}
	}

	tree.AddDataService(services.NewIngestService(loader, after, logger))
	logging.Info().
		Str("data_dir", cfg.Ingest.DataDir).
		Int("workers", cfg.Ingest.Workers).
		Int("max_ratings", cfg.Ingest.MaxRatings).
		Bool("resumable", cfg.Ingest.ProgressPath != "").
		Msg("MovieLens ingest added to supervisor tree")

	return closeFn, nil
}
