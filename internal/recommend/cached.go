// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"

	"github.com/tomtom215/reelrank/internal/cache"
	"github.com/tomtom215/reelrank/internal/metrics"
)

// MetadataCacheName labels the item metadata cache in metrics.
const MetadataCacheName = "item_metadata"

// CachedCatalog is a Store whose item metadata and genre lookups are served
// from a per-item cache. Every other call passes through.
type CachedCatalog struct {
	Store
	cache cache.Cacher[int, ItemMetadata]
}

// NewCachedCatalog wraps store with c.
func NewCachedCatalog(store Store, c cache.Cacher[int, ItemMetadata]) *CachedCatalog {
	return &CachedCatalog{Store: store, cache: c}
}

// FetchItemMetadata serves cached items and fetches the rest in one call.
func (c *CachedCatalog) FetchItemMetadata(ctx context.Context, itemIDs []int) (map[int]ItemMetadata, error) {
	found, missing := c.lookup(ctx, itemIDs)
	if len(missing) == 0 {
		return found, nil
	}

	fetched, err := c.Store.FetchItemMetadata(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, meta := range fetched {
		c.cache.Set(ctx, id, meta)
		found[id] = meta
	}
	return found, nil
}

// FetchItemGenres is answered from the metadata cache.
func (c *CachedCatalog) FetchItemGenres(ctx context.Context, itemIDs []int) (map[int][]string, error) {
	meta, err := c.FetchItemMetadata(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	genres := make(map[int][]string, len(meta))
	for id, m := range meta {
		genres[id] = m.Genres
	}
	return genres, nil
}

func (c *CachedCatalog) lookup(ctx context.Context, itemIDs []int) (map[int]ItemMetadata, []int) {
	found := make(map[int]ItemMetadata, len(itemIDs))
	var missing []int
	for _, id := range itemIDs {
		if meta, ok := c.cache.Get(ctx, id); ok {
			metrics.RecordCacheLookup(MetadataCacheName, true)
			found[id] = meta
			continue
		}
		metrics.RecordCacheLookup(MetadataCacheName, false)
		missing = append(missing, id)
	}
	return found, missing
}

var _ Store = (*CachedCatalog)(nil)
