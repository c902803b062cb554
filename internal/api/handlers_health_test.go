// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/reelrank/internal/models"
)

func TestHealthLive(t *testing.T) {
	t.Parallel()

	db := &mockPinger{err: errors.New("down")}
	handler := newTestRouter(&mockRecommender{}, db, nil).SetupChi()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var data models.LivenessStatus
	decodeResponse(t, w, &data)
	if !data.Alive {
		t.Error("alive = false, want true")
	}
	if got := db.calls.Load(); got != 0 {
		t.Errorf("Ping calls = %d, want 0 (liveness ignores dependencies)", got)
	}
}

func TestHealthReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		db         Pinger
		wantStatus int
		wantState  string
	}{
		{"database up", &mockPinger{}, http.StatusOK, models.StatusReady},
		{"database down", &mockPinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable, models.StatusNotReady},
		{"no database", nil, http.StatusServiceUnavailable, models.StatusNotReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := newTestRouter(&mockRecommender{}, tt.db, nil).SetupChi()
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var data models.ReadinessStatus
			resp := decodeResponse(t, w, &data)
			if resp.Status != tt.wantState {
				t.Errorf("status = %q, want %q", resp.Status, tt.wantState)
			}
			if data.ReadyToServe != (tt.wantStatus == http.StatusOK) {
				t.Errorf("ready_to_serve = %v", data.ReadyToServe)
			}
			if !data.ModelLoaded {
				t.Error("model_loaded = false, want true")
			}
		})
	}
}
