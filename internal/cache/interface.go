// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	// DefaultCapacity is the LRU capacity used when none is configured.
	DefaultCapacity = 10000

	// DefaultTTL is the entry lifetime used when none is configured.
	DefaultTTL = 5 * time.Minute
)

// Cacher is a typed key/value cache.
// A lookup failure is always reported as a miss.
type Cacher[K comparable, V any] interface {
	// Get returns the value and true if found and not expired.
	Get(ctx context.Context, key K) (V, bool)

	// Set stores a value with the cache's default TTL.
	Set(ctx context.Context, key K, value V)

	// Delete removes a value.
	Delete(ctx context.Context, key K)
}

// Stats holds in-process cache statistics.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Size      int   `json:"size"`
}

// HitRate returns hits / (hits + misses) as a percentage.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Backend selects the cache implementation.
type Backend string

const (
	// BackendMemory is the in-process LRU cache (default).
	BackendMemory Backend = "memory"

	// BackendRedis shares entries across replicas through Redis.
	BackendRedis Backend = "redis"
)

// Config holds configuration for creating a cache.
type Config struct {
	// Backend selects memory or redis.
	Backend Backend

	// Capacity is the maximum number of entries (memory only).
	Capacity int

	// TTL is the default time-to-live for entries.
	TTL time.Duration

	// RedisAddr is host:port of the Redis server (redis only).
	RedisAddr string

	// RedisDB selects the Redis logical database.
	RedisDB int

	// KeyPrefix namespaces Redis keys.
	KeyPrefix string
}

// New creates the configured cache. For the redis backend the returned
// close function releases the client; for memory it is a no-op.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New[K comparable, V any](name string, cfg Config, logger zerolog.Logger) (Cacher[K, V], func() error, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}

	switch cfg.Backend {
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return nil, nil, fmt.Errorf("redis cache %q: address is required", name)
		}
		client := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		prefix := cfg.KeyPrefix
		if prefix == "" {
			prefix = "reelrank"
		}
		c := NewRedis[K, V](client, name, prefix, cfg.TTL, logger)
		return c, client.Close, nil
	case BackendMemory, "":
		return NewLRU[K, V](name, cfg.Capacity, cfg.TTL), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Verify interface implementations at compile time
var (
	_ Cacher[int, string] = (*LRU[int, string])(nil)
	_ Cacher[int, string] = (*Redis[int, string])(nil)
)
