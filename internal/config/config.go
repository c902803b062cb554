// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Model     ModelConfig     `koanf:"model"`
	Ingest    IngestConfig    `koanf:"ingest"`
	Cache     CacheConfig     `koanf:"cache"`
	Breaker   BreakerConfig   `koanf:"breaker"`
	Security  SecurityConfig  `koanf:"security"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path                   string `koanf:"path"`
	MaxMemory              string `koanf:"max_memory"`
	Threads                int    `koanf:"threads"` // 0 = NumCPU
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"`
	SkipIndexes            bool   `koanf:"skip_indexes"` // for fast test setup
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`

	// RequestTimeout bounds a single recommendation request.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// Environment is development, staging or production.
	Environment string `koanf:"environment"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	// Level is trace, debug, info, warn or error.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller adds file:line to every entry.
	Caller bool `koanf:"caller"`
}

// RecommendConfig mirrors the tunables of the recommendation core.
type RecommendConfig struct {
	NeighborhoodSize     int     `koanf:"neighborhood_size"`
	HighRatingThreshold  float64 `koanf:"high_rating_threshold"`
	ContentCandidateCap  int     `koanf:"content_candidate_cap"`
	PoolMultiplier       int     `koanf:"pool_multiplier"`
	TrendingWindowDays   int     `koanf:"trending_window_days"`
	DefaultExistingLimit int     `koanf:"default_existing_limit"`
	DefaultNewLimit      int     `koanf:"default_new_limit"`
	MaxLimit             int     `koanf:"max_limit"`
	Seed                 int64   `koanf:"seed"`
}

// ModelConfig controls latent-factor model storage and training.
type ModelConfig struct {
	// Dir holds versioned model files.
	Dir string `koanf:"dir"`

	// Name is the model file prefix.
	Name string `koanf:"name"`

	// TrainOnStartup trains and saves a model when none is stored.
	TrainOnStartup bool `koanf:"train_on_startup"`

	// KeepVersions is how many saved versions survive pruning.
	KeepVersions int `koanf:"keep_versions"`

	// RetrainInterval retrains and hot-swaps the model periodically. 0 = off.
	RetrainInterval time.Duration `koanf:"retrain_interval"`

	Factors        int     `koanf:"factors"`
	Epochs         int     `koanf:"epochs"`
	LearningRate   float64 `koanf:"learning_rate"`
	Regularization float64 `koanf:"regularization"`
	Seed           int64   `koanf:"seed"`
}

// IngestConfig controls the MovieLens bulk loader.
type IngestConfig struct {
	// Enabled runs the loader once at server startup.
	Enabled bool `koanf:"enabled"`

	// DataDir contains movies.csv, links.csv, ratings.csv and tags.csv.
	DataDir string `koanf:"data_dir"`

	// Workers is the number of concurrent batch writers.
	Workers int `koanf:"workers"`

	// BatchSize is the number of rows per write.
	BatchSize int `koanf:"batch_size"`

	// MaxRatings caps the ratings read from ratings.csv. 0 = no cap.
	MaxRatings int `koanf:"max_ratings"`

	// ClearExisting wipes all tables before loading.
	ClearExisting bool `koanf:"clear_existing"`

	// ProgressPath is the Badger directory for resume checkpoints.
	// Empty disables checkpointing.
	ProgressPath string `koanf:"progress_path"`

	// RateLimit is the maximum batch writes per second. 0 = unlimited.
	RateLimit float64 `koanf:"rate_limit"`
}

// CacheConfig controls the item metadata cache.
type CacheConfig struct {
	// Backend is memory or redis.
	Backend   string        `koanf:"backend"`
	Capacity  int           `koanf:"capacity"`
	TTL       time.Duration `koanf:"ttl"`
	RedisAddr string        `koanf:"redis_addr"`
	RedisDB   int           `koanf:"redis_db"`
	KeyPrefix string        `koanf:"key_prefix"`
}

// BreakerConfig controls the circuit breaker around store queries.
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load loads configuration from defaults, an optional file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
