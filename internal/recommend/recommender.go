// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/metrics"
)

// Recommender routes a request to the cold-start engine or the hybrid
// blender depending on whether the user has any signal.
type Recommender struct {
	config     *Config
	classifier *Classifier
	hybrid     UserStrategy
	coldStart  *ColdStartEngine
	logger     zerolog.Logger
}

// Option customizes a Recommender built by NewRecommender.
type Option func(*options)

type options struct {
	rng *rand.Rand
}

// WithRand injects the random source used for cold-start shuffling.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// NewRecommender wires every component over store and model.
// A nil model is allowed; collaborative scoring then yields nothing and
// existing users receive content-based results only.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRecommender(store Store, model Predictor, cfg *Config, logger zerolog.Logger, opts ...Option) (*Recommender, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend config: %w", err)
	}
	cfg = cfg.Clone()

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	predictor := NewSafePredictor(model, logger)
	collaborative := NewCollaborativeFilter(store, store, predictor, cfg, logger)
	content := NewContentFilter(store, store, cfg, logger)

	return &Recommender{
		config:     cfg,
		classifier: NewClassifier(store),
		hybrid:     NewHybridBlender(collaborative, content, cfg, logger),
		coldStart:  NewColdStartEngine(store, cfg, o.rng, logger),
		logger:     logger.With().Str("component", "recommender").Logger(),
	}, nil
}

// Config returns a copy of the active configuration.
func (r *Recommender) Config() *Config {
	return r.config.Clone()
}

// Recommend produces the recommendation list for userID. A zero limit
// selects the default of the chosen path. Collaborator failures are
// returned as *CollaboratorError.
func (r *Recommender) Recommend(ctx context.Context, userID, limit int) (*Result, error) {
	start := time.Now()
	logger := r.requestLogger(ctx, userID, limit)

	if limit > r.config.MaxLimit {
		limit = r.config.MaxLimit
	}

	isNew, err := r.classifier.IsNewUser(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Msg("user classification failed")
		return nil, err
	}

	result := &Result{UserID: userID, IsNewUser: isNew}
	if isNew {
		result.Path = metrics.PathColdStart
		result.Items, err = r.coldStart.Recommend(ctx, limit)
	} else {
		result.Path = metrics.PathHybrid
		result.Items, err = r.hybrid.Recommend(ctx, userID, limit)
	}

	metrics.RecordRecommendation(result.Path, len(result.Items), time.Since(start), err)

	if err != nil {
		logger.Error().Err(err).Str("path", result.Path).Msg("recommendation failed")
		return nil, err
	}

	logger.Info().
		Str("path", result.Path).
		Int("returned", len(result.Items)).
		Dur("duration", time.Since(start)).
		Msg("recommendations served")

	return result, nil
}

func (r *Recommender) requestLogger(ctx context.Context, userID, limit int) zerolog.Logger {
	ctxLogger := r.logger.With().Int("user_id", userID).Int("limit", limit)
	if id := logging.RequestIDFromContext(ctx); id != "" {
		ctxLogger = ctxLogger.Str("request_id", id)
	}
	return ctxLogger.Logger()
}
