// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package metrics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

// TestRecordDBQuery tests database query metric recording
func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		duration  time.Duration
		err       error
	}{
		{
			name:      "successful SELECT query",
			operation: "SELECT",
			table:     "ratings",
			duration:  10 * time.Millisecond,
		},
		{
			name:      "successful INSERT query",
			operation: "INSERT",
			table:     "movies",
			duration:  5 * time.Millisecond,
		},
		{
			name:      "failed query with short error",
			operation: "SELECT",
			table:     "tags",
			duration:  100 * time.Millisecond,
			err:       errors.New("connection refused"),
		},
		{
			name:      "failed query with long error - should truncate to 50 chars",
			operation: "DELETE",
			table:     "genre_likes",
			duration:  50 * time.Millisecond,
			err:       errors.New("this is a very long error message that exceeds fifty characters and should be truncated properly"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Record the query - should not panic
			RecordDBQuery(tt.operation, tt.table, tt.duration, tt.err)
		})
	}
}

// TestRecordDBQuery_ErrorTruncation verifies error labels never exceed 50 chars
func TestRecordDBQuery_ErrorTruncation(t *testing.T) {
	long := errors.New(strings.Repeat("c", 100))
	RecordDBQuery("SELECT", "truncation_test", time.Millisecond, long)

	got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("SELECT", "truncation_test", strings.Repeat("c", 50)))
	if got != 1 {
		t.Errorf("truncated error counter = %v, want 1", got)
	}
}

func TestErrorLabel(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "canceled", err: context.Canceled, want: "canceled"},
		{name: "wrapped canceled", err: fmt.Errorf("query ratings: %w", context.Canceled), want: "canceled"},
		{name: "deadline", err: context.DeadlineExceeded, want: "timeout"},
		{name: "plain", err: errors.New("boom"), want: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorLabel(tt.err); got != tt.want {
				t.Errorf("errorLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecordRecommendation(t *testing.T) {
	beforeOK := testutil.ToFloat64(RecommendationRequests.WithLabelValues(PathHybrid, "success"))
	beforeErr := testutil.ToFloat64(RecommendationRequests.WithLabelValues(PathColdStart, "error"))

	RecordRecommendation(PathHybrid, 12, 20*time.Millisecond, nil)
	RecordRecommendation(PathColdStart, 0, time.Millisecond, errors.New("store down"))

	if got := testutil.ToFloat64(RecommendationRequests.WithLabelValues(PathHybrid, "success")); got != beforeOK+1 {
		t.Errorf("hybrid success = %v, want %v", got, beforeOK+1)
	}
	if got := testutil.ToFloat64(RecommendationRequests.WithLabelValues(PathColdStart, "error")); got != beforeErr+1 {
		t.Errorf("cold_start error = %v, want %v", got, beforeErr+1)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("metrics_test"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("metrics_test"))

	RecordCacheLookup("metrics_test", true)
	RecordCacheLookup("metrics_test", false)
	RecordCacheLookup("metrics_test", false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("metrics_test")); got != hits+1 {
		t.Errorf("hits = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("metrics_test")); got != misses+2 {
		t.Errorf("misses = %v, want %v", got, misses+2)
	}
}

func TestRecordIngest(t *testing.T) {
	RecordIngest("metrics_test.csv", 10, 2, 1)

	if got := testutil.ToFloat64(IngestRecords.WithLabelValues("metrics_test.csv", "imported")); got != 10 {
		t.Errorf("imported = %v, want 10", got)
	}
	if got := testutil.ToFloat64(IngestRecords.WithLabelValues("metrics_test.csv", "error")); got != 1 {
		t.Errorf("error = %v, want 1", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	TrackActiveRequest(true)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active requests = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
}

// TestRecordRecommendation_ListSizeBuckets checks that an empty list lands in
// the zero bucket and the default hybrid size in the 12 bucket.
func TestRecordRecommendation_ListSizeBuckets(t *testing.T) {
	const path = "bucket_test"
	RecordRecommendation(path, 0, time.Millisecond, nil)
	RecordRecommendation(path, 12, time.Millisecond, nil)
	RecordRecommendation(path, 7, time.Millisecond, errors.New("store down")) // not observed

	var m dto.Metric
	if err := RecommendationListSize.WithLabelValues(path).(prometheus.Metric).Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	h := m.GetHistogram()
	if h.GetSampleCount() != 2 {
		t.Errorf("sample count = %d, want 2", h.GetSampleCount())
	}
	if h.GetSampleSum() != 12 {
		t.Errorf("sample sum = %v, want 12", h.GetSampleSum())
	}

	want := map[float64]uint64{0: 1, 10: 1, 12: 2, 100: 2}
	for _, b := range h.GetBucket() {
		if n, ok := want[b.GetUpperBound()]; ok && b.GetCumulativeCount() != n {
			t.Errorf("bucket le=%v count = %d, want %d", b.GetUpperBound(), b.GetCumulativeCount(), n)
		}
	}
}
