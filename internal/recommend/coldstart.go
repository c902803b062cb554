// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"math/rand"
	"slices"
	"sync"

	"github.com/rs/zerolog"
)

// ColdStartEngine recommends to users without history by mixing shuffled
// popular, trending and diverse pools.
type ColdStartEngine struct {
	source       PopularitySource
	multiplier   int
	windowDays   int
	defaultLimit int
	logger       zerolog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewColdStartEngine creates a cold-start engine. If rng is nil a source
// seeded from cfg.Seed is used.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewColdStartEngine(source PopularitySource, cfg *Config, rng *rand.Rand, logger zerolog.Logger) *ColdStartEngine {
	defaults := DefaultConfig()
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.seed())) //nolint:gosec // shuffling does not need crypto randomness
	}
	e := &ColdStartEngine{
		source:       source,
		multiplier:   cfg.PoolMultiplier,
		windowDays:   cfg.TrendingWindowDays,
		defaultLimit: cfg.DefaultNewLimit,
		logger:       logger.With().Str("component", "cold_start").Logger(),
		rng:          rng,
	}
	if e.multiplier <= 0 {
		e.multiplier = defaults.PoolMultiplier
	}
	if e.windowDays <= 0 {
		e.windowDays = defaults.TrendingWindowDays
	}
	if e.defaultLimit <= 0 {
		e.defaultLimit = defaults.DefaultNewLimit
	}
	return e
}

// Recommend returns up to limit unique items, shorter only when the three
// pools together hold fewer unique items. A zero limit selects the
// configured default; a negative limit yields an empty list.
func (e *ColdStartEngine) Recommend(ctx context.Context, limit int) (RecommendationList, error) {
	if limit == 0 {
		limit = e.defaultLimit
	}
	if limit < 0 {
		return RecommendationList{}, nil
	}

	poolSize := limit * e.multiplier

	popular, err := e.source.FetchPopularItems(ctx, poolSize)
	if err != nil {
		return nil, collaboratorErr("fetch popular items", err)
	}

	trending, err := e.source.FetchTrendingItems(ctx, poolSize, e.windowDays)
	if err != nil {
		return nil, collaboratorErr("fetch trending items", err)
	}

	diverse, err := e.source.FetchDiverseItems(ctx, poolSize)
	if err != nil {
		return nil, collaboratorErr("fetch diverse items", err)
	}

	pools := e.shuffle(popular, trending, diverse)
	merged := mergeUnique(limit, pools...)

	e.logger.Debug().
		Int("pool_size", poolSize).
		Int("popular", len(popular)).
		Int("trending", len(trending)).
		Int("diverse", len(diverse)).
		Int("returned", len(merged)).
		Msg("cold-start recommendations computed")

	return merged, nil
}

// shuffle returns shuffled copies of each pool, in argument order.
func (e *ColdStartEngine) shuffle(pools ...[]CandidateItem) []RecommendationList {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()

	shuffled := make([]RecommendationList, len(pools))
	for i, pool := range pools {
		p := slices.Clone(pool)
		e.rng.Shuffle(len(p), func(a, b int) {
			p[a], p[b] = p[b], p[a]
		})
		shuffled[i] = p
	}
	return shuffled
}
