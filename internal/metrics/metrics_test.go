// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRecordExtraction tests outcome labelling for extraction calls
func TestRecordExtraction(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		items   int
		err     error
		outcome string
	}{
		{name: "success", kind: "test-success", items: 4, outcome: "success"},
		{name: "empty", kind: "test-empty", items: 0, outcome: "empty"},
		{name: "failure", kind: "test-failure", items: 3, err: errors.New("connection refused"), outcome: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(ExtractionRequests.WithLabelValues(tt.kind, tt.outcome))
			RecordExtraction(tt.kind, 25*time.Millisecond, tt.items, tt.err)
			after := testutil.ToFloat64(ExtractionRequests.WithLabelValues(tt.kind, tt.outcome))
			if after-before != 1 {
				t.Errorf("%s counter delta = %v, want 1", tt.outcome, after-before)
			}
		})
	}
}

// TestRecordSessionTransition tests transition counters
func TestRecordSessionTransition(t *testing.T) {
	c := SessionTransitions.WithLabelValues("start", "landing", "input")
	before := testutil.ToFloat64(c)

	RecordSessionTransition("start", "landing", "input")
	RecordSessionTransition("start", "landing", "input")

	if got := testutil.ToFloat64(c) - before; got != 2 {
		t.Errorf("transition delta = %v, want 2", got)
	}

	r := SessionRejectedEvents.WithLabelValues("confirm_preview", "landing")
	before = testutil.ToFloat64(r)
	RecordSessionRejected("confirm_preview", "landing")
	if got := testutil.ToFloat64(r) - before; got != 1 {
		t.Errorf("rejected delta = %v, want 1", got)
	}
}

// TestRecordRecommendation tests the success counter
func TestRecordRecommendation(t *testing.T) {
	c := RecommendRequests.WithLabelValues("success")
	before := testutil.ToFloat64(c)
	RecordRecommendation(time.Millisecond, 12)
	if got := testutil.ToFloat64(c) - before; got != 1 {
		t.Errorf("success delta = %v, want 1", got)
	}
}

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	c := APIRequestsTotal.WithLabelValues("GET", "/api/v1/questions", "200")
	before := testutil.ToFloat64(c)
	RecordAPIRequest("GET", "/api/v1/questions", "200", 5*time.Millisecond)
	if got := testutil.ToFloat64(c) - before; got != 1 {
		t.Errorf("request delta = %v, want 1", got)
	}
}

// TestTrackActiveRequest tests the in-flight gauge
func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}
