// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/reelrank/internal/models"
)

const readinessTimeout = 2 * time.Second

// HealthLive answers 200 while the process is running.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data: models.LivenessStatus{
			Alive:  true,
			Uptime: time.Since(h.startTime).Seconds(),
		},
	})
}

// HealthReady answers 200 when the database is reachable and 503 otherwise.
// A missing model does not make the service unready; existing users then
// receive content-based results only.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	dbConnected := h.db != nil && h.db.Ping(ctx) == nil

	status, code := models.StatusReady, http.StatusOK
	if !dbConnected {
		status, code = models.StatusNotReady, http.StatusServiceUnavailable
	}

	respondJSON(w, r, code, &models.APIResponse{
		Status: status,
		Data: models.ReadinessStatus{
			DatabaseConnected: dbConnected,
			ModelLoaded:       h.cfg.ModelLoaded != nil && h.cfg.ModelLoaded(),
			ReadyToServe:      dbConnected,
			Uptime:            time.Since(h.startTime).Seconds(),
		},
	})
}
