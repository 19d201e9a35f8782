// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package strategies

import (
	"context"
	"testing"

	"github.com/tomtom215/halaqa-discovery/internal/recommend"
	"github.com/tomtom215/halaqa-discovery/internal/recommend/recommendtest"
)

func editorialFixture() *recommendtest.Store {
	store := recommendtest.NewStore().AddContent(
		record("p1", "fiqh"), record("p2", "fiqh"), record("p3", "seerah"), record("anchor", "fiqh"),
	)
	store.AddPick(recommend.EditorialPick{ContentID: "p1", Category: "fiqh", Priority: 5, Reason: "Start here"})
	store.AddPick(recommend.EditorialPick{ContentID: "p2", Category: "fiqh", Priority: 8})
	store.AddPick(recommend.EditorialPick{ContentID: "p3", Category: "seerah", Priority: 9})
	store.AddPick(recommend.EditorialPick{ContentID: "anchor", Category: "fiqh", Priority: 10})
	store.AddPick(recommend.EditorialPick{ContentID: "deleted", Category: "fiqh", Priority: 7})
	return store
}

func TestEditorial_Recommend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rc   recommend.RecommendationContext
		want []string
	}{
		{"all categories", recommend.RecommendationContext{Limit: 10}, []string{"anchor", "p3", "p2", "p1"}},
		{"category filter", recommend.RecommendationContext{Category: "fiqh", Limit: 10}, []string{"anchor", "p2", "p1"}},
		{"anchor excluded", recommend.RecommendationContext{ContentID: "anchor", Category: "fiqh", Limit: 2}, []string{"p2", "p1"}},
		{"limit", recommend.RecommendationContext{Limit: 1}, []string{"anchor"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewEditorial(editorialFixture()).Recommend(context.Background(), tt.rc)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			assertIDs(t, got, tt.want...)
		})
	}
}

func TestEditorial_Reasons(t *testing.T) {
	t.Parallel()

	got, err := NewEditorial(editorialFixture()).Recommend(context.Background(), recommend.RecommendationContext{Category: "fiqh", ContentID: "anchor", Limit: 5})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	reasons := map[string]string{}
	for _, r := range got {
		reasons[r.ContentID] = r.Reason
	}
	if reasons["p1"] != "Start here" {
		t.Errorf("p1 reason = %q", reasons["p1"])
	}
	if reasons["p2"] != DefaultEditorialReason {
		t.Errorf("p2 reason = %q, want default", reasons["p2"])
	}
	if got[0].Score != 8 {
		t.Errorf("score = %v, want priority 8", got[0].Score)
	}
}
