// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/tomtom215/reelrank/internal/models"
	"github.com/tomtom215/reelrank/internal/recommend"
	"github.com/tomtom215/reelrank/internal/validation"
)

// recommendationQuery is the parsed query string of a recommendation request.
type recommendationQuery struct {
	UserID int `query:"user_id" validate:"required,min=1"`

	// Limit is nil when the client left the choice to the engine.
	Limit *int `query:"limit"`
}

// Recommendations handles GET /api/v1/recommendations.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	q, verr := h.parseRecommendationQuery(r)
	if verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	limit := 0
	if q.Limit != nil {
		limit = *q.Limit
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	result, err := h.recommender.Recommend(ctx, q.UserID, limit)
	if err != nil {
		status, code, message := classifyRecommendError(err)
		respondError(w, r, status, code, message, err)
		return
	}

	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data:   toRecommendationResponse(result),
		Metadata: models.Metadata{
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

func (h *Handler) parseRecommendationQuery(r *http.Request) (recommendationQuery, *validation.RequestValidationError) {
	values := r.URL.Query()
	var q recommendationQuery

	if raw := strings.TrimSpace(values.Get("user_id")); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return q, integerError("user_id", raw)
		}
		q.UserID = id
	}
	if verr := validation.ValidateStruct(&q); verr != nil {
		return q, verr
	}

	if values.Has("limit") {
		raw := strings.TrimSpace(values.Get("limit"))
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, integerError("limit", raw)
		}
		if verr := validation.ValidateVar("limit", n, fmt.Sprintf("min=1,max=%d", h.cfg.MaxLimit)); verr != nil {
			return q, verr
		}
		q.Limit = &n
	}
	return q, nil
}

func integerError(field, raw string) *validation.RequestValidationError {
	return validation.NewFieldError(field, "integer", raw, field+" must be an integer")
}

// classifyRecommendError maps an engine error to an HTTP response.
func classifyRecommendError(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, recommend.ErrCollaboratorFailure),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, models.ErrCodeRecommendationFailed,
			"Recommendations are temporarily unavailable"
	default:
		return http.StatusInternalServerError, models.ErrCodeInternal,
			"Failed to generate recommendations"
	}
}

func toRecommendationResponse(result *recommend.Result) models.RecommendationResponse {
	movies := lo.Map(result.Items, func(item recommend.CandidateItem, _ int) models.RecommendedMovie {
		genres := item.Genres
		if genres == nil {
			genres = []string{}
		}
		return models.RecommendedMovie{
			MovieID:         item.ItemID,
			Title:           item.Title,
			Genres:          genres,
			PredictedRating: item.PredictedRating,
		}
	})

	return models.RecommendationResponse{
		UserID:          result.UserID,
		IsNewUser:       result.IsNewUser,
		Path:            result.Path,
		Count:           len(movies),
		Recommendations: movies,
	}
}
