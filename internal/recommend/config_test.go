// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import "testing"

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.NeighborhoodSize != 10 {
		t.Errorf("NeighborhoodSize = %d, want 10", cfg.NeighborhoodSize)
	}
	if cfg.HighRatingThreshold != 4.0 {
		t.Errorf("HighRatingThreshold = %v, want 4.0", cfg.HighRatingThreshold)
	}
	if cfg.DefaultExistingLimit != 12 || cfg.DefaultNewLimit != 10 {
		t.Errorf("default limits = %d/%d, want 12/10", cfg.DefaultExistingLimit, cfg.DefaultNewLimit)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"neighborhood", func(c *Config) { c.NeighborhoodSize = 0 }},
		{"threshold", func(c *Config) { c.HighRatingThreshold = 0 }},
		{"content cap", func(c *Config) { c.ContentCandidateCap = -1 }},
		{"pool multiplier", func(c *Config) { c.PoolMultiplier = 0 }},
		{"trending window", func(c *Config) { c.TrendingWindowDays = 0 }},
		{"existing limit", func(c *Config) { c.DefaultExistingLimit = 0 }},
		{"new limit", func(c *Config) { c.DefaultNewLimit = 0 }},
		{"max below default", func(c *Config) { c.MaxLimit = 5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestConfig_Seed(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Seed = 0
	if cfg.seed() != 42 {
		t.Errorf("seed() = %d, want 42", cfg.seed())
	}
	cfg.Seed = 7
	if cfg.seed() != 7 {
		t.Errorf("seed() = %d, want 7", cfg.seed())
	}
}
