// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package strategies

import (
	"testing"
	"time"

	"github.com/tomtom215/halaqa-discovery/internal/recommend"
)

var testNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

func record(id, category string, tags ...string) recommend.ContentRecord {
	return recommend.ContentRecord{
		ID:        id,
		Title:     "Title " + id,
		Type:      "article",
		Author:    "author-" + id,
		Category:  category,
		Tags:      tags,
		CreatedAt: testNow.Add(-90 * 24 * time.Hour),
	}
}

func ids(results []recommend.RecommendationResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ContentID
	}
	return out
}

func assertIDs(t *testing.T, got []recommend.RecommendationResult, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got ids %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("got ids %v, want %v", gotIDs, want)
		}
	}
}

func assertNoAnchor(t *testing.T, got []recommend.RecommendationResult, anchor string) {
	t.Helper()
	for _, r := range got {
		if r.ContentID == anchor {
			t.Errorf("anchor %s returned in results", anchor)
		}
	}
}
