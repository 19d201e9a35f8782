// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		err       error
		wantType  string
	}{
		{"success", "get_recent_views", nil, ""},
		{"timeout", "get_views_since", fmt.Errorf("query: %w", context.DeadlineExceeded), "timeout"},
		{"canceled", "get_viewers", context.Canceled, "canceled"},
		{"other", "get_relationships", errors.New("connection reset"), "other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantType == "" {
				RecordDBQuery(tt.operation, time.Millisecond, nil)
				return
			}
			before := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.wantType))
			RecordDBQuery(tt.operation, time.Millisecond, tt.err)
			after := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.wantType))
			if after-before != 1 {
				t.Errorf("error counter delta = %v, want 1", after-before)
			}
		})
	}
}

func TestRecordStrategyRun(t *testing.T) {
	before := testutil.ToFloat64(StrategyFailures.WithLabelValues("trending", "timeout"))
	RecordStrategyRun("trending", 10*time.Millisecond, 0, "timeout")
	RecordStrategyRun("trending", 10*time.Millisecond, 4, "")

	after := testutil.ToFloat64(StrategyFailures.WithLabelValues("trending", "timeout"))
	if after-before != 1 {
		t.Errorf("failure counter delta = %v, want 1", after-before)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(RecommendCacheLookups.WithLabelValues("hit"))
	misses := testutil.ToFloat64(RecommendCacheLookups.WithLabelValues("miss"))

	RecordCacheLookup(true)
	RecordCacheLookup(false)
	RecordCacheLookup(false)

	if got := testutil.ToFloat64(RecommendCacheLookups.WithLabelValues("hit")) - hits; got != 1 {
		t.Errorf("hit delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(RecommendCacheLookups.WithLabelValues("miss")) - misses; got != 2 {
		t.Errorf("miss delta = %v, want 2", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("gauge = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("gauge = %v, want %v", got, before)
	}
}

func TestRecordQueryAndHistory(t *testing.T) {
	before := testutil.ToFloat64(QueriesProcessed.WithLabelValues("simple", "ar"))
	RecordQueryProcessed("simple", "ar")
	if got := testutil.ToFloat64(QueriesProcessed.WithLabelValues("simple", "ar")) - before; got != 1 {
		t.Errorf("queries delta = %v, want 1", got)
	}

	dropped := testutil.ToFloat64(HistoryWrites.WithLabelValues("dropped"))
	RecordHistoryWrite("dropped")
	if got := testutil.ToFloat64(HistoryWrites.WithLabelValues("dropped")) - dropped; got != 1 {
		t.Errorf("history delta = %v, want 1", got)
	}
}
