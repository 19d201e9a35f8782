// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package strategies

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/halaqa-discovery/internal/recommend"
	"github.com/tomtom215/halaqa-discovery/internal/recommend/recommendtest"
)

func TestFresh_Recommend(t *testing.T) {
	t.Parallel()

	created := func(id string, age time.Duration) recommend.ContentRecord {
		rec := record(id, "")
		rec.CreatedAt = testNow.Add(-age)
		return rec
	}
	store := recommendtest.NewStore().AddContent(
		created("today", time.Hour),
		created("last-week", 7*24*time.Hour),
		created("anchor", 2*time.Hour),
		created("old", 45*24*time.Hour),
	)

	strat := NewFresh(store, FreshConfig{Now: func() time.Time { return testNow }})
	got, err := strat.Recommend(context.Background(), recommend.RecommendationContext{ContentID: "anchor", Limit: 5})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	assertIDs(t, got, "today", "last-week")
	for _, r := range got {
		if r.Score != FreshScore || r.Reason != "New this month" {
			t.Errorf("%s = (%v, %q)", r.ContentID, r.Score, r.Reason)
		}
	}
}
