// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000

	minModelFactors = 1
	maxModelFactors = 1000
)

var (
	validLogLevels = map[string]bool{
		"trace": true, "debug": true, "info": true, "warn": true, "error": true,
	}
	validLogFormats = map[string]bool{
		"json": true, "console": true,
	}
	validEnvironments = map[string]bool{
		"development": true, "staging": true, "production": true,
	}
	validCacheBackends = map[string]bool{
		"memory": true, "redis": true,
	}
)

// Validate checks the configuration and returns every problem found,
// joined into a single error.
func (c *Config) Validate() error {
	return errors.Join(
		c.validateDatabase(),
		c.validateServer(),
		c.validateLogging(),
		c.validateRecommend(),
		c.validateModel(),
		c.validateIngest(),
		c.validateCache(),
		c.validateBreaker(),
		c.validateSecurity(),
	)
}

func (c *Config) validateDatabase() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("HTTP_REQUEST_TIMEOUT must be positive, got %v", c.Server.RequestTimeout)
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of development, staging, production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	switch {
	case r.NeighborhoodSize < 1:
		return fmt.Errorf("RECOMMEND_NEIGHBORHOOD_SIZE must be positive, got %d", r.NeighborhoodSize)
	case r.HighRatingThreshold <= 0 || r.HighRatingThreshold > 5:
		return fmt.Errorf("RECOMMEND_HIGH_RATING_THRESHOLD must be in (0, 5], got %g", r.HighRatingThreshold)
	case r.ContentCandidateCap < 1:
		return fmt.Errorf("RECOMMEND_CONTENT_CANDIDATE_CAP must be positive, got %d", r.ContentCandidateCap)
	case r.PoolMultiplier < 1:
		return fmt.Errorf("RECOMMEND_POOL_MULTIPLIER must be positive, got %d", r.PoolMultiplier)
	case r.TrendingWindowDays < 1:
		return fmt.Errorf("RECOMMEND_TRENDING_WINDOW_DAYS must be positive, got %d", r.TrendingWindowDays)
	case r.DefaultExistingLimit < 1 || r.DefaultNewLimit < 1:
		return fmt.Errorf("recommend default limits must be positive, got %d and %d",
			r.DefaultExistingLimit, r.DefaultNewLimit)
	case r.MaxLimit < r.DefaultExistingLimit || r.MaxLimit < r.DefaultNewLimit:
		return fmt.Errorf("RECOMMEND_MAX_LIMIT must be >= both default limits, got %d", r.MaxLimit)
	}
	return nil
}

func (c *Config) validateModel() error {
	m := c.Model
	if strings.TrimSpace(m.Dir) == "" {
		return fmt.Errorf("MODEL_DIR is required")
	}
	if strings.TrimSpace(m.Name) == "" || strings.ContainsAny(m.Name, `/\`) {
		return fmt.Errorf("MODEL_NAME must be non-empty and contain no path separators, got %q", m.Name)
	}
	if m.Factors < minModelFactors || m.Factors > maxModelFactors {
		return fmt.Errorf("MODEL_FACTORS must be between %d and %d, got %d", minModelFactors, maxModelFactors, m.Factors)
	}
	if m.Epochs < 1 {
		return fmt.Errorf("MODEL_EPOCHS must be positive, got %d", m.Epochs)
	}
	if m.LearningRate <= 0 || m.LearningRate >= 1 {
		return fmt.Errorf("MODEL_LEARNING_RATE must be in (0, 1), got %g", m.LearningRate)
	}
	if m.Regularization < 0 {
		return fmt.Errorf("MODEL_REGULARIZATION must be >= 0, got %g", m.Regularization)
	}
	if m.KeepVersions < 1 {
		return fmt.Errorf("MODEL_KEEP_VERSIONS must be positive, got %d", m.KeepVersions)
	}
	if m.RetrainInterval < 0 {
		return fmt.Errorf("MODEL_RETRAIN_INTERVAL must be >= 0, got %v", m.RetrainInterval)
	}
	return nil
}

func (c *Config) validateIngest() error {
	in := c.Ingest
	if in.Enabled && strings.TrimSpace(in.DataDir) == "" {
		return fmt.Errorf("INGEST_DATA_DIR is required when ingest is enabled")
	}
	if in.Workers < 1 {
		return fmt.Errorf("INGEST_WORKERS must be positive, got %d", in.Workers)
	}
	if in.BatchSize < 1 {
		return fmt.Errorf("INGEST_BATCH_SIZE must be positive, got %d", in.BatchSize)
	}
	if in.MaxRatings < 0 {
		return fmt.Errorf("INGEST_MAX_RATINGS must be >= 0, got %d", in.MaxRatings)
	}
	if in.RateLimit < 0 {
		return fmt.Errorf("INGEST_RATE_LIMIT must be >= 0, got %g", in.RateLimit)
	}
	return nil
}

func (c *Config) validateCache() error {
	if !validCacheBackends[c.Cache.Backend] {
		return fmt.Errorf("CACHE_BACKEND must be memory or redis, got %q", c.Cache.Backend)
	}
	if c.Cache.Capacity < 1 {
		return fmt.Errorf("CACHE_CAPACITY must be positive, got %d", c.Cache.Capacity)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %v", c.Cache.TTL)
	}
	if c.Cache.Backend == "redis" && strings.TrimSpace(c.Cache.RedisAddr) == "" {
		return fmt.Errorf("REDIS_ADDR is required when CACHE_BACKEND=redis")
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if !c.Breaker.Enabled {
		return nil
	}
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("BREAKER_FAILURE_RATIO must be in (0, 1], got %g", c.Breaker.FailureRatio)
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive, got %v", c.Breaker.Timeout)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	if c.IsProduction() {
		for _, origin := range c.Security.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ORIGINS cannot be '*' in production")
			}
		}
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d, got %d",
			minRateLimitRequests, maxRateLimitRequests, c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}
