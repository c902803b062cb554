// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"context"
	"time"

	"github.com/tomtom215/reelrank/internal/recommend"
)

// Recommender produces recommendations. *recommend.Recommender implements it.
type Recommender interface {
	Recommend(ctx context.Context, userID, limit int) (*recommend.Result, error)
}

// Pinger reports database reachability. *database.DB implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HandlerConfig holds handler settings.
type HandlerConfig struct {
	// MaxLimit is the largest accepted limit parameter.
	MaxLimit int

	// RequestTimeout bounds each recommendation request.
	RequestTimeout time.Duration

	// ModelLoaded is reported by the readiness probe. nil reports false.
	ModelLoaded func() bool
}

// Handler serves the API endpoints.
type Handler struct {
	recommender Recommender
	db          Pinger
	cfg         HandlerConfig
	startTime   time.Time
}

// NewHandler creates a handler.
func NewHandler(recommender Recommender, db Pinger, cfg HandlerConfig) *Handler {
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 100
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	return &Handler{
		recommender: recommender,
		db:          db,
		cfg:         cfg,
		startTime:   time.Now(),
	}
}
