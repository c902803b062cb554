// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/reelrank/internal/cache"
	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/database"
	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/recommend"
	"github.com/tomtom215/reelrank/internal/recommend/latent"
)

// recommendComponents holds the recommendation core and its model plumbing.
type recommendComponents struct {
	Recommender *recommend.Recommender
	Holder      *latent.Holder
	Refresher   *latent.Refresher

	closeCache func() error
}

// Close releases the metadata cache.
func (c *recommendComponents) Close() {
	if c.closeCache == nil {
		return
	}
	if err := c.closeCache(); err != nil {
		logging.Warn().Err(err).Msg("Error closing metadata cache")
	}
}

// initRecommend builds the store decorator chain, loads or trains the
// latent-factor model and wires the recommender.
//
// Decorators wrap the database from the inside out: circuit breaker first,
// then the metadata cache, so cache hits never count against the breaker.
func initRecommend(ctx context.Context, cfg *config.Config, db *database.DB) (*recommendComponents, error) {
	logger := logging.WithComponent("recommend")

	var store recommend.Store = db
	if cfg.Breaker.Enabled {
		store = recommend.NewBreakerStore(store, buildBreakerSettings(&cfg.Breaker), logger)
		logger.Info().
			Float64("failure_ratio", cfg.Breaker.FailureRatio).
			Dur("timeout", cfg.Breaker.Timeout).
			Msg("circuit breaker enabled for store queries")
	}

	metaCache, closeCache, err := cache.New[int, recommend.ItemMetadata](recommend.MetadataCacheName, buildCacheConfig(&cfg.Cache), logger)
	if err != nil {
		return nil, fmt.Errorf("create metadata cache: %w", err)
	}
	store = recommend.NewCachedCatalog(store, metaCache)

	models, err := latent.NewModelStore(cfg.Model.Dir)
	if err != nil {
		_ = closeCache() //nolint:errcheck // already failing
		return nil, fmt.Errorf("open model store: %w", err)
	}
	holder := latent.NewHolder(nil, 0)
	refresher := latent.NewRefresher(db, latent.NewTrainer(buildTrainerConfig(&cfg.Model), logger), models, holder,
		latent.RefresherConfig{Name: cfg.Model.Name, Keep: cfg.Model.KeepVersions}, logger)

	if err := refresher.Ensure(ctx, cfg.Model.TrainOnStartup); err != nil {
		// Content-based results still work without a model.
		logger.Error().Err(err).Msg("failed to prepare latent-factor model")
	}

	recommender, err := recommend.NewRecommender(store, holder, buildRecommendConfig(&cfg.Recommend), logger)
	if err != nil {
		_ = closeCache() //nolint:errcheck // already failing
		return nil, err
	}

	logger.Info().
		Bool("model_loaded", holder.Loaded()).
		Int("model_version", holder.Version()).
		Str("cache_backend", cfg.Cache.Backend).
		Msg("recommendation engine ready")

	return &recommendComponents{
		Recommender: recommender,
		Holder:      holder,
		Refresher:   refresher,
		closeCache:  closeCache,
	}, nil
}

func buildRecommendConfig(c *config.RecommendConfig) *recommend.Config {
	return &recommend.Config{
		NeighborhoodSize:     c.NeighborhoodSize,
		HighRatingThreshold:  c.HighRatingThreshold,
		ContentCandidateCap:  c.ContentCandidateCap,
		PoolMultiplier:       c.PoolMultiplier,
		TrendingWindowDays:   c.TrendingWindowDays,
		DefaultExistingLimit: c.DefaultExistingLimit,
		DefaultNewLimit:      c.DefaultNewLimit,
		MaxLimit:             c.MaxLimit,
		Seed:                 c.Seed,
	}
}

func buildTrainerConfig(c *config.ModelConfig) latent.TrainerConfig {
	return latent.TrainerConfig{
		Factors:        c.Factors,
		Epochs:         c.Epochs,
		LearningRate:   c.LearningRate,
		Regularization: c.Regularization,
		Seed:           c.Seed,
	}
}

func buildBreakerSettings(c *config.BreakerConfig) recommend.BreakerSettings {
	s := recommend.DefaultBreakerSettings()
	s.MaxRequests = c.MaxRequests
	s.Interval = c.Interval
	s.Timeout = c.Timeout
	s.MinRequests = c.MinRequests
	s.FailureRatio = c.FailureRatio
	return s
}

func buildCacheConfig(c *config.CacheConfig) cache.Config {
	return cache.Config{
		Backend:   cache.Backend(c.Backend),
		Capacity:  c.Capacity,
		TTL:       c.TTL,
		RedisAddr: c.RedisAddr,
		RedisDB:   c.RedisDB,
		KeyPrefix: c.KeyPrefix,
	}
}
