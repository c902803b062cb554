// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"fmt"
)

// Config contains all tunables for the recommendation core.
type Config struct {
	// NeighborhoodSize is the number of most similar users consulted
	// by the collaborative filter.
	// Default: 10.
	NeighborhoodSize int `json:"neighborhood_size"`

	// HighRatingThreshold is the minimum score for a rated item to seed
	// the content-based genre profile.
	// Default: 4.0.
	HighRatingThreshold float64 `json:"high_rating_threshold"`

	// ContentCandidateCap bounds the genre-overlap candidate query.
	// Default: 50.
	ContentCandidateCap int `json:"content_candidate_cap"`

	// PoolMultiplier sizes each cold-start pool as limit * PoolMultiplier.
	// Default: 7.
	PoolMultiplier int `json:"pool_multiplier"`

	// TrendingWindowDays is the trailing window for trending items.
	// Default: 30.
	TrendingWindowDays int `json:"trending_window_days"`

	// DefaultExistingLimit is the list size for users with history when
	// the caller does not ask for one.
	// Default: 12.
	DefaultExistingLimit int `json:"default_existing_limit"`

	// DefaultNewLimit is the cold-start list size when the caller does not
	// ask for one.
	// Default: 10.
	DefaultNewLimit int `json:"default_new_limit"`

	// MaxLimit caps any requested list size.
	// Default: 100.
	MaxLimit int `json:"max_limit"`

	// Seed is the random seed for cold-start shuffling.
	// If zero, a fixed default seed is used.
	Seed int64 `json:"seed"`
}

// DefaultConfig returns a Config with the production defaults.
func DefaultConfig() *Config {
	return &Config{
		NeighborhoodSize:     10,
		HighRatingThreshold:  4.0,
		ContentCandidateCap:  50,
		PoolMultiplier:       7,
		TrendingWindowDays:   30,
		DefaultExistingLimit: 12,
		DefaultNewLimit:      10,
		MaxLimit:             100,
		Seed:                 42, // Default seed for determinism
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.NeighborhoodSize < 1 {
		return fmt.Errorf("neighborhood_size must be positive, got %d", c.NeighborhoodSize)
	}
	if c.HighRatingThreshold <= 0 {
		return fmt.Errorf("high_rating_threshold must be positive, got %f", c.HighRatingThreshold)
	}
	if c.ContentCandidateCap < 1 {
		return fmt.Errorf("content_candidate_cap must be positive, got %d", c.ContentCandidateCap)
	}
	if c.PoolMultiplier < 1 {
		return fmt.Errorf("pool_multiplier must be positive, got %d", c.PoolMultiplier)
	}
	if c.TrendingWindowDays < 1 {
		return fmt.Errorf("trending_window_days must be positive, got %d", c.TrendingWindowDays)
	}
	if c.DefaultExistingLimit < 1 {
		return fmt.Errorf("default_existing_limit must be positive, got %d", c.DefaultExistingLimit)
	}
	if c.DefaultNewLimit < 1 {
		return fmt.Errorf("default_new_limit must be positive, got %d", c.DefaultNewLimit)
	}
	if c.MaxLimit < c.DefaultExistingLimit || c.MaxLimit < c.DefaultNewLimit {
		return fmt.Errorf("max_limit must be >= both default limits, got %d", c.MaxLimit)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// seed returns the configured seed or the fixed default.
func (c *Config) seed() int64 {
	if c.Seed == 0 {
		return 42
	}
	return c.Seed
}
