// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"errors"
	"io"
	"slices"
	"sort"
	"sync/atomic"

	"github.com/rs/zerolog"
)

var errStoreDown = errors.New("store down")

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// mockStore implements Store for testing.
type mockStore struct {
	ratings    map[int]RatingVector
	metadata   map[int]ItemMetadata
	byGenre    []CandidateItem
	popular    []CandidateItem
	trending   []CandidateItem
	diverse    []CandidateItem
	genreLikes map[int]bool
	tags       map[int]bool

	ratingsErr    error
	othersErr     error
	genresErr     error
	byGenreErr    error
	metadataErr   error
	popularErr    error
	trendingErr   error
	diverseErr    error
	signalErr     error
	neighbourErr  error
	failNeighbour int

	fetchRatingCalls   int32
	fetchOthersCalls   int32
	hasRatingCalls     int32
	hasGenreCalls      int32
	hasTagCalls        int32
	metadataCalls      int32
	lastGenres         []string
	lastExcludeRatedBy int
	lastGenreLimit     int
	lastPoolLimit      int
	lastWindowDays     int
}

func (m *mockStore) FetchRatingVector(_ context.Context, userID int) (RatingVector, error) {
	atomic.AddInt32(&m.fetchRatingCalls, 1)
	if m.ratingsErr != nil {
		return nil, m.ratingsErr
	}
	if m.neighbourErr != nil && userID == m.failNeighbour {
		return nil, m.neighbourErr
	}
	if r, ok := m.ratings[userID]; ok {
		return r, nil
	}
	return RatingVector{}, nil
}

func (m *mockStore) FetchAllOtherUsersRatingVectors(_ context.Context, excludeUserID int) ([]UserRatings, error) {
	atomic.AddInt32(&m.fetchOthersCalls, 1)
	if m.othersErr != nil {
		return nil, m.othersErr
	}
	ids := make([]int, 0, len(m.ratings))
	for id := range m.ratings {
		if id != excludeUserID {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	out := make([]UserRatings, 0, len(ids))
	for _, id := range ids {
		out = append(out, UserRatings{UserID: id, Ratings: m.ratings[id]})
	}
	return out, nil
}

func (m *mockStore) FetchItemGenres(_ context.Context, itemIDs []int) (map[int][]string, error) {
	if m.genresErr != nil {
		return nil, m.genresErr
	}
	out := make(map[int][]string)
	for _, id := range itemIDs {
		if meta, ok := m.metadata[id]; ok {
			out[id] = meta.Genres
		}
	}
	return out, nil
}

func (m *mockStore) FetchItemsByGenre(_ context.Context, genres []string, excludeRatedBy, limit int) ([]CandidateItem, error) {
	if m.byGenreErr != nil {
		return nil, m.byGenreErr
	}
	m.lastGenres = slices.Clone(genres)
	m.lastExcludeRatedBy = excludeRatedBy
	m.lastGenreLimit = limit
	items := m.byGenre
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (m *mockStore) FetchItemMetadata(_ context.Context, itemIDs []int) (map[int]ItemMetadata, error) {
	atomic.AddInt32(&m.metadataCalls, 1)
	if m.metadataErr != nil {
		return nil, m.metadataErr
	}
	out := make(map[int]ItemMetadata)
	for _, id := range itemIDs {
		if meta, ok := m.metadata[id]; ok {
			out[id] = meta
		}
	}
	return out, nil
}

func (m *mockStore) FetchPopularItems(_ context.Context, limit int) ([]CandidateItem, error) {
	m.lastPoolLimit = limit
	if m.popularErr != nil {
		return nil, m.popularErr
	}
	return capItems(m.popular, limit), nil
}

func (m *mockStore) FetchTrendingItems(_ context.Context, limit, windowDays int) ([]CandidateItem, error) {
	m.lastWindowDays = windowDays
	if m.trendingErr != nil {
		return nil, m.trendingErr
	}
	return capItems(m.trending, limit), nil
}

func (m *mockStore) FetchDiverseItems(_ context.Context, limit int) ([]CandidateItem, error) {
	if m.diverseErr != nil {
		return nil, m.diverseErr
	}
	return capItems(m.diverse, limit), nil
}

func (m *mockStore) HasAnyRating(_ context.Context, userID int) (bool, error) {
	atomic.AddInt32(&m.hasRatingCalls, 1)
	if m.signalErr != nil {
		return false, m.signalErr
	}
	return len(m.ratings[userID]) > 0, nil
}

func (m *mockStore) HasAnyGenrePreference(_ context.Context, userID int) (bool, error) {
	atomic.AddInt32(&m.hasGenreCalls, 1)
	if m.signalErr != nil {
		return false, m.signalErr
	}
	return m.genreLikes[userID], nil
}

func (m *mockStore) HasAnyTag(_ context.Context, userID int) (bool, error) {
	atomic.AddInt32(&m.hasTagCalls, 1)
	if m.signalErr != nil {
		return false, m.signalErr
	}
	return m.tags[userID], nil
}

func capItems(items []CandidateItem, limit int) []CandidateItem {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

// mockPredictor implements Predictor for testing.
type mockPredictor struct {
	scores     map[[2]int]float64
	fallback   float64
	failItems  map[int]error
	panicItem  int
	calls      int32
	predictErr error
}

func (m *mockPredictor) Predict(userID, itemID int) (float64, error) {
	atomic.AddInt32(&m.calls, 1)
	if m.predictErr != nil {
		return 0, m.predictErr
	}
	if err, ok := m.failItems[itemID]; ok {
		return 0, err
	}
	if m.panicItem != 0 && itemID == m.panicItem {
		panic("corrupt factor matrix")
	}
	if s, ok := m.scores[[2]int{userID, itemID}]; ok {
		return s, nil
	}
	return m.fallback, nil
}

// mockStrategy implements UserStrategy for testing.
type mockStrategy struct {
	list      RecommendationList
	err       error
	calls     int32
	lastLimit int
}

func (m *mockStrategy) Recommend(_ context.Context, _ int, limit int) (RecommendationList, error) {
	atomic.AddInt32(&m.calls, 1)
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.list, nil
}

// items builds candidates with the given ids.
func items(ids ...int) []CandidateItem {
	out := make([]CandidateItem, len(ids))
	for i, id := range ids {
		out[i] = CandidateItem{ItemID: id, Genres: []string{}}
	}
	return out
}

// assertUnique fails if list contains a duplicate id or exceeds limit.
func assertUnique(t interface {
	Helper()
	Errorf(string, ...any)
}, list RecommendationList, limit int) {
	t.Helper()
	if len(list) > limit {
		t.Errorf("len = %d, exceeds limit %d", len(list), limit)
	}
	seen := make(map[int]bool, len(list))
	for _, item := range list {
		if seen[item.ItemID] {
			t.Errorf("duplicate item id %d", item.ItemID)
		}
		seen[item.ItemID] = true
	}
}
