// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess  = "success"
	StatusError    = "error"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
)

// Error codes.
const (
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeRecommendationFailed = "RECOMMENDATION_FAILED"
	ErrCodeInternal             = "INTERNAL_ERROR"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeMethodNotAllowed     = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimited          = "RATE_LIMIT_EXCEEDED"
	ErrCodeTimeout              = "REQUEST_TIMEOUT"
)

// APIResponse is the envelope of every API response.
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "user_id must be at least 1",
//	    "details": {"field": "user_id"}
//	  },
//	  "metadata": {"timestamp": "2026-06-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how a response was produced.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`

	// RequestID echoes the X-Request-ID of the request.
	RequestID string `json:"request_id,omitempty"`
}

// APIError is the error part of a failed response.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RecommendationResponse is the data of GET /api/v1/recommendations.
//
// Example:
//
//	{
//	  "user_id": 42,
//	  "is_new_user": false,
//	  "path": "hybrid",
//	  "count": 2,
//	  "recommendations": [
//	    {"movie_id": 318, "title": "Shawshank Redemption, The (1994)", "genres": ["Crime", "Drama"], "predicted_rating": 4.61},
//	    {"movie_id": 1196, "title": "Star Wars: Episode V (1980)", "genres": ["Action", "Adventure", "Sci-Fi"]}
//	  ]
//	}
type RecommendationResponse struct {
	UserID          int                `json:"user_id"`
	IsNewUser       bool               `json:"is_new_user"`
	Path            string             `json:"path"`
	Count           int                `json:"count"`
	Recommendations []RecommendedMovie `json:"recommendations"`
}

// RecommendedMovie is one entry of a recommendation list.
type RecommendedMovie struct {
	MovieID         int      `json:"movie_id"`
	Title           string   `json:"title"`
	Genres          []string `json:"genres"`
	PredictedRating *float64 `json:"predicted_rating,omitempty"`
}

// LivenessStatus is the data of GET /health/live.
type LivenessStatus struct {
	Alive  bool    `json:"alive"`
	Uptime float64 `json:"uptime_seconds"`
}

// ReadinessStatus is the data of GET /health/ready.
type ReadinessStatus struct {
	DatabaseConnected bool    `json:"database_connected"`
	ModelLoaded       bool    `json:"model_loaded"`
	ReadyToServe      bool    `json:"ready_to_serve"`
	Uptime            float64 `json:"uptime_seconds"`
}
