// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package strategies

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/halaqa-discovery/internal/recommend"
	"github.com/tomtom215/halaqa-discovery/internal/recommend/recommendtest"
)

func historyFixture() *recommendtest.Store {
	store := recommendtest.NewStore().AddContent(
		record("A", "quran"), record("B", "quran"), record("C", "hadith"),
		record("D", "fiqh"), record("E", "fiqh"),
	)
	t0 := testNow.Add(-48 * time.Hour)
	store.AddView("u1", "A", t0).AddView("u1", "B", t0.Add(time.Hour))
	for _, other := range []string{"u2", "u3"} {
		store.AddView(other, "A", t0).AddView(other, "B", t0.Add(time.Minute)).AddView(other, "C", t0.Add(2*time.Minute))
	}
	store.AddView("u3", "D", t0.Add(3*time.Minute))
	store.AddView("u4", "E", t0) // shares nothing with u1
	return store
}

func TestHistory_CoViewCount(t *testing.T) {
	t.Parallel()

	h := NewHistory(historyFixture(), DefaultHistoryConfig())
	got, err := h.Recommend(context.Background(), recommend.RecommendationContext{UserID: "u1", Limit: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	assertIDs(t, got, "C", "D")
	if got[0].Score != 2 {
		t.Errorf("score(C) = %v, want 2", got[0].Score)
	}
	if got[1].Score != 1 {
		t.Errorf("score(D) = %v, want 1", got[1].Score)
	}
	if got[0].Reason != "Viewed by 2 learners with similar history" {
		t.Errorf("reason = %q", got[0].Reason)
	}
}

func TestHistory_ExcludesAnchorAndLimits(t *testing.T) {
	t.Parallel()

	h := NewHistory(historyFixture(), HistoryConfig{})
	got, err := h.Recommend(context.Background(), recommend.RecommendationContext{UserID: "u1", ContentID: "C", Limit: 1})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	assertIDs(t, got, "D")
}

func TestHistory_NoViews(t *testing.T) {
	t.Parallel()

	h := NewHistory(historyFixture(), DefaultHistoryConfig())
	got, err := h.Recommend(context.Background(), recommend.RecommendationContext{UserID: "nobody", Limit: 5})
	if err != nil || len(got) != 0 {
		t.Errorf("Recommend() = %v, %v; want empty, nil", got, err)
	}
}

func TestHistory_StoreError(t *testing.T) {
	t.Parallel()

	store := historyFixture()
	store.Errs["GetViewers"] = recommend.ErrStoreUnavailable
	h := NewHistory(store, DefaultHistoryConfig())

	_, err := h.Recommend(context.Background(), recommend.RecommendationContext{UserID: "u1", Limit: 5})
	if !errors.Is(err, recommend.ErrStoreUnavailable) {
		t.Errorf("error = %v, want ErrStoreUnavailable", err)
	}
}

func TestHistory_Applicable(t *testing.T) {
	t.Parallel()

	h := NewHistory(recommendtest.NewStore(), DefaultHistoryConfig())
	if h.Applicable(recommend.RecommendationContext{}) {
		t.Error("history should need a user id")
	}
	if !h.Applicable(recommend.RecommendationContext{UserID: "u1"}) {
		t.Error("history should apply with a user id")
	}
	if h.config.RecentViews != 20 {
		t.Errorf("RecentViews = %d, want capped default 20", h.config.RecentViews)
	}
}
