// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Redis is a Cacher backed by a Redis server. Values are stored as JSON
// under "{prefix}:{name}:{key}" with the configured TTL.
type Redis[K comparable, V any] struct {
	client redis.UniversalClient
	name   string
	prefix string
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedis creates a Redis-backed cache over an existing client.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRedis[K comparable, V any](client redis.UniversalClient, name, prefix string, ttl time.Duration, logger zerolog.Logger) *Redis[K, V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis[K, V]{
		client: client,
		name:   name,
		prefix: prefix,
		ttl:    ttl,
		logger: logger.With().Str("component", "cache").Str("cache", name).Logger(),
	}
}

func (c *Redis[K, V]) key(k K) string {
	return fmt.Sprintf("%s:%s:%v", c.prefix, c.name, k)
}

// Get returns the cached value. Connection and decode errors are logged
// and reported as a miss.
func (c *Redis[K, V]) Get(ctx context.Context, key K) (V, bool) {
	var value V

	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Msg("redis get failed")
		}
		return value, false
	}

	if err := json.Unmarshal(data, &value); err != nil {
		c.logger.Warn().Err(err).Msg("redis value decode failed")
		return value, false
	}
	return value, true
}

// Set stores value with the default TTL. Failures are logged.
func (c *Redis[K, V]) Set(ctx context.Context, key K, value V) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn().Err(err).Msg("redis value encode failed")
		return
	}
	if err := c.client.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("redis set failed")
	}
}

// Delete removes key. Failures are logged.
func (c *Redis[K, V]) Delete(ctx context.Context, key K) {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("redis delete failed")
	}
}
