// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/recommend/latent"
)

// Retrainer rebuilds and publishes the latent-factor model.
// Satisfied by *latent.Refresher.
type Retrainer interface {
	Retrain(ctx context.Context) (latent.Metadata, error)
}

// RetrainServiceConfig controls the retraining schedule.
type RetrainServiceConfig struct {
	// Interval between retraining runs.
	// Default: 24h
	Interval time.Duration

	// Timeout bounds a single run.
	// Default: 30m
	Timeout time.Duration
}

// RetrainService retrains the model on a fixed schedule so new ratings
// reach collaborative scoring without a restart.
type RetrainService struct {
	retrainer Retrainer
	config    RetrainServiceConfig
	logger    zerolog.Logger
	name      string
}

// NewRetrainService creates the service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRetrainService(retrainer Retrainer, cfg RetrainServiceConfig, logger zerolog.Logger) *RetrainService {
	if cfg.Interval <= 0 {
		cfg.Interval = 24 * time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Minute
	}
	return &RetrainService{
		retrainer: retrainer,
		config:    cfg,
		logger:    logger.With().Str("service", "retrain").Logger(),
		name:      "model-retrain",
	}
}

// Serve implements suture.Service. Failed runs are logged and retried on
// the next tick.
func (s *RetrainService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.config.Interval).Msg("retrain service running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.retrain(ctx)
		}
	}
}

func (s *RetrainService) retrain(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	meta, err := s.retrainer.Retrain(runCtx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn().Err(err).Msg("scheduled retraining failed")
		}
		return
	}
	s.logger.Info().
		Int("version", meta.Version).
		Float64("rmse", meta.RMSE).
		Dur("duration", time.Since(start)).
		Msg("scheduled retraining complete")
}

// String names the service in supervisor logs.
func (s *RetrainService) String() string {
	return s.name
}
