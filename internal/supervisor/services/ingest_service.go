// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/reelrank/internal/ingest"
)

// Loader is the bulk-load lifecycle used by IngestService.
// Satisfied by *ingest.Loader.
type Loader interface {
	Run(ctx context.Context) (*ingest.Stats, error)
}

// AfterIngestFunc runs once after a successful load, e.g. to retrain the model.
type AfterIngestFunc func(ctx context.Context, stats *ingest.Stats) error

// IngestService runs the MovieLens load once at startup.
//
// A failed load returns its error and suture restarts the service; with a
// checkpoint store the retry resumes where the previous attempt stopped.
// A completed load returns suture.ErrDoNotRestart.
type IngestService struct {
	loader Loader
	after  AfterIngestFunc
	logger zerolog.Logger
	name   string
}

// NewIngestService wraps loader. after may be nil.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewIngestService(loader Loader, after AfterIngestFunc, logger zerolog.Logger) *IngestService {
	return &IngestService{
		loader: loader,
		after:  after,
		logger: logger.With().Str("service", "ingest").Logger(),
		name:   "movielens-ingest",
	}
}

// Serve implements suture.Service.
func (s *IngestService) Serve(ctx context.Context) error {
	s.logger.Info().Msg("starting MovieLens ingest")

	stats, err := s.loader.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			s.logger.Info().Msg("ingest canceled due to shutdown")
			return ctx.Err()
		}
		return fmt.Errorf("ingest failed: %w", err)
	}

	s.logger.Info().
		Int64("imported", stats.Imported).
		Int64("skipped", stats.Skipped).
		Int64("errors", stats.Errors).
		Bool("resumed", stats.Resumed).
		Dur("duration", stats.Duration()).
		Msg("ingest completed")

	if s.after != nil {
		if err := s.after(ctx, stats); err != nil {
			// The data is loaded; rerunning the ingest would not help.
			s.logger.Warn().Err(err).Msg("post-ingest step failed")
		}
	}

	return suture.ErrDoNotRestart
}

// String names the service in supervisor logs.
func (s *IngestService) String() string {
	return s.name
}
