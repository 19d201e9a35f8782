// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package cache

import "testing"

func TestKeywordMatcher_MatchAll(t *testing.T) {
	t.Parallel()

	m := NewKeywordMatcher([]Keyword[string]{
		{Text: "quran", Data: "quran"},
		{Text: "tafsir", Data: "quran"},
		{Text: "salah", Data: "prayer"},
		{Text: "prayer", Data: "prayer"},
		{Text: "he", Data: "noise"},
		{Text: "", Data: "ignored"},
	})

	tests := []struct {
		name string
		text string
		want []int
	}{
		{"single", "Learn Quran", []int{0}},
		{"multiple keywords", "tafsir of the quran and salah", []int{0, 1, 2, 4}},
		{"overlapping suffix", "the prayer", []int{3, 4}},
		{"repeated occurrence reported once", "quran quran", []int{0}},
		{"arabic text", "صلاة", nil},
		{"empty text", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.MatchAll(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("MatchAll(%q) = %+v, want indices %v", tt.text, got, tt.want)
			}
			for i, match := range got {
				if match.Index != tt.want[i] {
					t.Errorf("match[%d].Index = %d, want %d", i, match.Index, tt.want[i])
				}
			}
		})
	}
}

func TestKeywordMatcher_FailureLinks(t *testing.T) {
	t.Parallel()

	m := NewKeywordMatcher([]Keyword[int]{
		{Text: "abcd", Data: 1},
		{Text: "bc", Data: 2},
	})
	got := m.MatchAll("xabcx")
	if len(got) != 1 || got[0].Data != 2 {
		t.Errorf("MatchAll(xabcx) = %+v, want only bc", got)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}
