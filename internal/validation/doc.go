// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package validation validates request structs with go-playground/validator v10.
//
// A single validator instance is built once and shared; it caches struct
// metadata and is safe for concurrent use. Field names in messages come
// from the `query` tag when present, falling back to `json`, so errors name
// the parameter the client actually sent:
//
//	type RecommendationQuery struct {
//	    UserID int `query:"user_id" validate:"required,min=1"`
//	    Limit  int `query:"limit" validate:"min=0,max=100"`
//	}
//
//	if err := validation.ValidateStruct(&q); err != nil {
//	    apiErr := err.ToAPIError() // Code: VALIDATION_ERROR
//	    ...
//	}
package validation
