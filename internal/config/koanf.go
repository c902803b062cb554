// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelrank/config.yaml",
	"/etc/reelrank/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:                   "/data/reelrank.duckdb",
			MaxMemory:              "2GB",
			Threads:                0,
			PreserveInsertionOrder: false,
		},
		Server: ServerConfig{
			Port:           8080,
			Host:           "0.0.0.0",
			Timeout:        30 * time.Second,
			RequestTimeout: 10 * time.Second,
			Environment:    "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Recommend: RecommendConfig{
			NeighborhoodSize:     10,
			HighRatingThreshold:  4.0,
			ContentCandidateCap:  50,
			PoolMultiplier:       7,
			TrendingWindowDays:   30,
			DefaultExistingLimit: 12,
			DefaultNewLimit:      10,
			MaxLimit:             100,
			Seed:                 42,
		},
		Model: ModelConfig{
			Dir:             "/data/models",
			Name:            "latent",
			TrainOnStartup:  true,
			KeepVersions:    3,
			RetrainInterval: 0,
			Factors:         100,
			Epochs:          20,
			LearningRate:    0.005,
			Regularization:  0.02,
			Seed:            42,
		},
		Ingest: IngestConfig{
			Enabled:       false,
			DataDir:       "/data/movielens",
			Workers:       4,
			BatchSize:     1000,
			MaxRatings:    500000,
			ClearExisting: false,
			ProgressPath:  "/data/ingest-progress",
			RateLimit:     0,
		},
		Cache: CacheConfig{
			Backend:   "memory",
			Capacity:  10000,
			TTL:       10 * time.Minute,
			RedisAddr: "localhost:6379",
			RedisDB:   0,
			KeyPrefix: "reelrank:",
		},
		Breaker: BreakerConfig{
			Enabled:      true,
			MaxRequests:  3,
			Interval:     time.Minute,
			Timeout:      30 * time.Second,
			MinRequests:  10,
			FailureRatio: 0.6,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Built-in defaults
//  2. Config file (optional)
//  3. Environment variables
//
// Later sources override earlier ones.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" if none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when set from the environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to string slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Database
	"duckdb_path":                     "database.path",
	"duckdb_max_memory":               "database.max_memory",
	"duckdb_threads":                  "database.threads",
	"duckdb_preserve_insertion_order": "database.preserve_insertion_order",

	// Server
	"http_port":            "server.port",
	"http_host":            "server.host",
	"http_timeout":         "server.timeout",
	"http_request_timeout": "server.request_timeout",
	"environment":          "server.environment",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Recommendation core
	"recommend_neighborhood_size":      "recommend.neighborhood_size",
	"recommend_high_rating_threshold":  "recommend.high_rating_threshold",
	"recommend_content_candidate_cap":  "recommend.content_candidate_cap",
	"recommend_pool_multiplier":        "recommend.pool_multiplier",
	"recommend_trending_window_days":   "recommend.trending_window_days",
	"recommend_default_existing_limit": "recommend.default_existing_limit",
	"recommend_default_new_limit":      "recommend.default_new_limit",
	"recommend_max_limit":              "recommend.max_limit",
	"recommend_seed":                   "recommend.seed",

	// Latent-factor model
	"model_dir":              "model.dir",
	"model_name":             "model.name",
	"model_train_on_startup": "model.train_on_startup",
	"model_keep_versions":    "model.keep_versions",
	"model_retrain_interval": "model.retrain_interval",
	"model_factors":          "model.factors",
	"model_epochs":           "model.epochs",
	"model_learning_rate":    "model.learning_rate",
	"model_regularization":   "model.regularization",
	"model_seed":             "model.seed",

	// Ingest
	"ingest_enabled":        "ingest.enabled",
	"ingest_data_dir":       "ingest.data_dir",
	"ingest_workers":        "ingest.workers",
	"ingest_batch_size":     "ingest.batch_size",
	"ingest_max_ratings":    "ingest.max_ratings",
	"ingest_clear_existing": "ingest.clear_existing",
	"ingest_progress_path":  "ingest.progress_path",
	"ingest_rate_limit":     "ingest.rate_limit",

	// Cache
	"cache_backend":    "cache.backend",
	"cache_capacity":   "cache.capacity",
	"cache_ttl":        "cache.ttl",
	"cache_key_prefix": "cache.key_prefix",
	"redis_addr":       "cache.redis_addr",
	"redis_db":         "cache.redis_db",

	// Circuit breaker
	"breaker_enabled":       "breaker.enabled",
	"breaker_max_requests":  "breaker.max_requests",
	"breaker_interval":      "breaker.interval",
	"breaker_timeout":       "breaker.timeout",
	"breaker_min_requests":  "breaker.min_requests",
	"breaker_failure_ratio": "breaker.failure_ratio",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped, so unrelated environment
// variables never leak into the configuration.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// WatchConfigFile calls callback whenever the file at path changes.
// The caller is responsible for synchronising access to a reloaded Config.
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)
	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
