// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/models"
	"github.com/tomtom215/reelrank/internal/validation"
)

// respondJSON writes response with status. Metadata.Timestamp and RequestID
// are filled in when empty.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, response *models.APIResponse) {
	if response.Metadata.Timestamp.IsZero() {
		response.Metadata.Timestamp = time.Now().UTC()
	}
	if response.Metadata.RequestID == "" {
		response.Metadata.RequestID = logging.RequestIDFromContext(r.Context())
	}

	data, err := json.Marshal(response)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError writes an error envelope. err, when set, is logged but
// never sent to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		logging.Ctx(r.Context()).Warn().
			Str("code", code).
			Str("error", sanitizeLogValue(err.Error())).
			Int("status", status).
			Msg("API error")
	}

	respondJSON(w, r, status, &models.APIResponse{
		Status: models.StatusError,
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

func respondValidationError(w http.ResponseWriter, r *http.Request, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	respondJSON(w, r, http.StatusBadRequest, &models.APIResponse{
		Status: models.StatusError,
		Error: &models.APIError{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		},
	})
}

// sanitizeLogValue strips line breaks so request data cannot forge log lines.
func sanitizeLogValue(s string) string {
	return strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
}
