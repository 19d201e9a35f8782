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

func TestStructured_Edges(t *testing.T) {
	t.Parallel()

	store := recommendtest.NewStore().AddContent(
		record("lesson-1", "aqeedah"), record("lesson-2", "aqeedah"),
		record("intro", "aqeedah"), record("tafsir", "quran"),
	)
	store.AddRelationship(recommend.Relationship{SourceID: "lesson-1", RelatedID: "lesson-2", Type: "series", Strength: 0.9})
	store.AddRelationship(recommend.Relationship{SourceID: "lesson-1", RelatedID: "intro", Type: "prerequisite", Strength: 0.7})
	store.AddRelationship(recommend.Relationship{SourceID: "lesson-1", RelatedID: "intro", Type: "related", Strength: 0.4})
	store.AddRelationship(recommend.Relationship{SourceID: "lesson-1", RelatedID: "tafsir", Type: "mystery", Strength: 0.2})
	store.AddRelationship(recommend.Relationship{SourceID: "lesson-1", RelatedID: "lesson-1", Type: "series", Strength: 1})

	got, err := NewStructured(store).Recommend(context.Background(), recommend.RecommendationContext{ContentID: "lesson-1", Limit: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	assertIDs(t, got, "lesson-2", "intro", "tafsir")
	assertNoAnchor(t, got, "lesson-1")

	want := []struct {
		score  float64
		reason string
	}{
		{0.9, "Part of the same series"},
		{0.7, "Recommended before this content"},
		{0.2, "Related content"},
	}
	for i, w := range want {
		if got[i].Score != w.score || got[i].Reason != w.reason {
			t.Errorf("result[%d] = (%v, %q), want (%v, %q)", i, got[i].Score, got[i].Reason, w.score, w.reason)
		}
	}
}

func TestRelationReason(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"prerequisite": "Recommended before this content",
		" Series ":     "Part of the same series",
		"continuation": "Continues where this content ends",
		"commentary":   "Commentary on this content",
		"translation":  "Also available in another language",
		"similar":      "Covers a similar topic",
		"":             "Related content",
	}
	for in, want := range tests {
		if got := RelationReason(in); got != want {
			t.Errorf("RelationReason(%q) = %q, want %q", in, got, want)
		}
	}
}
