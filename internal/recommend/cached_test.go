// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/tomtom215/reelrank/internal/cache"
)

func TestCachedCatalog_FetchItemMetadata(t *testing.T) {
	t.Parallel()

	store := existingUserFixture()
	c := NewCachedCatalog(store, cache.NewLRU[int, ItemMetadata](MetadataCacheName, 100, time.Minute))
	ctx := context.Background()

	first, err := c.FetchItemMetadata(ctx, []int{10, 11})
	if err != nil {
		t.Fatalf("FetchItemMetadata() error = %v", err)
	}
	if first[10].Title != "Heat (1995)" {
		t.Errorf("title = %q, want Heat (1995)", first[10].Title)
	}

	// Fully cached: no store call.
	if _, err := c.FetchItemMetadata(ctx, []int{10, 11}); err != nil {
		t.Fatalf("FetchItemMetadata() error = %v", err)
	}
	if store.metadataCalls != 1 {
		t.Errorf("store calls = %d, want 1", store.metadataCalls)
	}

	// Partially cached: one more call.
	got, err := c.FetchItemMetadata(ctx, []int{10, 12})
	if err != nil {
		t.Fatalf("FetchItemMetadata() error = %v", err)
	}
	if store.metadataCalls != 2 {
		t.Errorf("store calls = %d, want 2", store.metadataCalls)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestCachedCatalog_FetchItemGenres(t *testing.T) {
	t.Parallel()

	store := existingUserFixture()
	c := NewCachedCatalog(store, cache.NewLRU[int, ItemMetadata](MetadataCacheName, 100, time.Minute))

	genres, err := c.FetchItemGenres(context.Background(), []int{13, 404})
	if err != nil {
		t.Fatalf("FetchItemGenres() error = %v", err)
	}
	if !slices.Equal(genres[13], []string{"Comedy", "Crime"}) {
		t.Errorf("genres[13] = %v, want [Comedy Crime]", genres[13])
	}
	if _, ok := genres[404]; ok {
		t.Error("unknown item present in result")
	}
}

func TestCachedCatalog_ErrorNotCached(t *testing.T) {
	t.Parallel()

	store := existingUserFixture()
	store.metadataErr = errStoreDown
	c := NewCachedCatalog(store, cache.NewLRU[int, ItemMetadata](MetadataCacheName, 100, time.Minute))

	if _, err := c.FetchItemMetadata(context.Background(), []int{10}); err == nil {
		t.Fatal("FetchItemMetadata() error = nil, want store error")
	}

	store.metadataErr = nil
	got, err := c.FetchItemMetadata(context.Background(), []int{10})
	if err != nil {
		t.Fatalf("FetchItemMetadata() error = %v", err)
	}
	if got[10].Title == "" {
		t.Error("item missing after recovery")
	}
}

func TestCachedCatalog_PassThrough(t *testing.T) {
	t.Parallel()

	store := existingUserFixture()
	c := NewCachedCatalog(store, cache.NewLRU[int, ItemMetadata](MetadataCacheName, 100, time.Minute))

	has, err := c.HasAnyRating(context.Background(), 1)
	if err != nil || !has {
		t.Errorf("HasAnyRating() = %v, %v; want true, nil", has, err)
	}
}
