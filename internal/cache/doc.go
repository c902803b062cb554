// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package cache provides typed caches for item metadata lookups.
//
// Two backends implement Cacher:
//
//   - LRU: in-process, capacity bounded, lazy TTL expiration
//   - Redis: shared across server replicas, JSON encoded values
//
// Use New to build the backend selected in configuration:
//
//	c, closeFn, err := cache.New[int, recommend.ItemMetadata]("item_metadata", cfg, logger)
//	defer closeFn()
//
// Both backends are safe for concurrent use. Backend failures never surface
// to callers; a Redis outage degrades to cache misses.
package cache
