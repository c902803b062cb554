// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"context"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelrank/internal/models"
	"github.com/tomtom215/reelrank/internal/recommend"
)

type mockRecommender struct {
	result *recommend.Result
	err    error
	// block waits for the context to end before returning.
	block bool

	calls atomic.Int32

	mu        sync.Mutex
	lastUser  int
	lastLimit int
	deadline  time.Time
}

func (m *mockRecommender) Recommend(ctx context.Context, userID, limit int) (*recommend.Result, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.lastUser, m.lastLimit = userID, limit
	m.deadline, _ = ctx.Deadline()
	m.mu.Unlock()

	if m.block {
		<-ctx.Done()
		return nil, &recommend.CollaboratorError{Op: "FetchRatingVector", Err: ctx.Err()}
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &recommend.Result{UserID: userID, Path: "hybrid"}, nil
}

func (m *mockRecommender) last() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastUser, m.lastLimit
}

type mockPinger struct {
	err   error
	calls atomic.Int32
}

func (m *mockPinger) Ping(context.Context) error {
	m.calls.Add(1)
	return m.err
}

func sampleResult() *recommend.Result {
	score := 4.25
	return &recommend.Result{
		UserID: 42,
		Path:   "hybrid",
		Items: recommend.RecommendationList{
			{ItemID: 318, Title: "Shawshank Redemption, The (1994)", Genres: []string{"Crime", "Drama"}, PredictedRating: &score},
			{ItemID: 2, Title: "Jumanji (1995)"},
		},
	}
}

func newTestRouter(rec Recommender, db Pinger, mwCfg *ChiMiddlewareConfig) *Router {
	h := NewHandler(rec, db, HandlerConfig{
		MaxLimit:       100,
		RequestTimeout: time.Second,
		ModelLoaded:    func() bool { return true },
	})
	if mwCfg == nil {
		mwCfg = &ChiMiddlewareConfig{
			CORSAllowedOrigins: []string{"https://reelrank.example"},
			RateLimitDisabled:  true,
		}
	}
	return NewRouter(h, mwCfg)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) models.APIResponse {
	t.Helper()
	var envelope struct {
		models.APIResponse
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	if data != nil && len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		if err := json.Unmarshal(envelope.Data, data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return envelope.APIResponse
}
