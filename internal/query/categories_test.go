// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package query

import (
	"reflect"
	"testing"
)

func TestCategoryIndex_Detect(t *testing.T) {
	t.Parallel()

	idx := newCategoryIndex([]Category{
		{ID: "fasting", Keywords: []string{"fasting", "Ramadan"}},
		{ID: "giving", Keywords: []string{"fast", "zakat", "charity", "nisab"}},
		{ID: "empty"},
	})

	tests := []struct {
		name string
		raw  string
		want []CategoryMatch
	}{
		{
			name: "exact hits",
			raw:  "Ramadan fasting",
			want: []CategoryMatch{
				{Category: "fasting", Confidence: 1, MatchedKeywords: []string{"fasting", "ramadan"}},
				{Category: "giving", Confidence: 0.25, MatchedKeywords: []string{"fast"}},
			},
		},
		{
			name: "partial hit and tie keeps table order",
			raw:  "fast",
			want: []CategoryMatch{
				{Category: "fasting", Confidence: 0.25, MatchedKeywords: []string{"fasting"}},
				{Category: "giving", Confidence: 0.25, MatchedKeywords: []string{"fast"}},
			},
		},
		{
			name: "higher confidence first",
			raw:  "zakat charity",
			want: []CategoryMatch{
				{Category: "giving", Confidence: 0.5, MatchedKeywords: []string{"zakat", "charity"}},
			},
		},
		{
			name: "no match",
			raw:  "seerah",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := idx.detect(lower(tt.raw), contentTokens(tt.raw))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("detect(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDefaultCategories(t *testing.T) {
	t.Parallel()

	want := []string{"quran", "hadith", "fiqh", "aqeedah", "seerah", "prayer", "fasting", "zakat", "hajj", "dua", "family", "history"}
	cats := DefaultCategories()
	if len(cats) != len(want) {
		t.Fatalf("got %d categories, want %d", len(cats), len(want))
	}
	for i, cat := range cats {
		if cat.ID != want[i] || len(cat.Keywords) == 0 {
			t.Errorf("category %d = %+v", i, cat)
		}
	}

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func lower(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'A' && r <= 'Z' {
			out[i] = r + 'a' - 'A'
		}
	}
	return string(out)
}
