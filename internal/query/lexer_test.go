// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package query

import (
	"reflect"
	"testing"
)

func TestLex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []Token
	}{
		{
			name: "operators",
			raw:  `+quran -tafsir "five pillars"`,
			want: []Token{
				{TokenInclusion, "quran"},
				{TokenExclusion, "tafsir"},
				{TokenPhrase, "five pillars"},
			},
		},
		{
			name: "boolean any case",
			raw:  "prayer or Fasting NOT travel",
			want: []Token{
				{TokenTerm, "prayer"},
				{TokenBoolean, "OR"},
				{TokenTerm, "fasting"},
				{TokenBoolean, "NOT"},
				{TokenTerm, "travel"},
			},
		},
		{
			name: "phrase keeps case and inner text",
			raw:  `"  Five Pillars  " of Islam`,
			want: []Token{
				{TokenPhrase, "Five Pillars"},
				{TokenTerm, "of"},
				{TokenTerm, "islam"},
			},
		},
		{
			name: "unclosed quote ignored",
			raw:  `"unclosed phrase`,
			want: []Token{{TokenTerm, "unclosed"}, {TokenTerm, "phrase"}},
		},
		{
			name: "punctuation splits words",
			raw:  "salah/wudu, rulings!",
			want: []Token{{TokenTerm, "salah"}, {TokenTerm, "wudu"}, {TokenTerm, "rulings"}},
		},
		{
			name: "apostrophe kept inside word",
			raw:  "qur'an 'tafsir'",
			want: []Token{{TokenTerm, "qur'an"}, {TokenTerm, "tafsir"}},
		},
		{
			name: "bare markers dropped",
			raw:  `- + "" "   "`,
			want: nil,
		},
		{
			name: "quote ends a word",
			raw:  `abc"def"`,
			want: []Token{{TokenTerm, "abc"}, {TokenPhrase, "def"}},
		},
		{
			name: "arabic",
			raw:  "صلاة الفجر",
			want: []Token{{TokenTerm, "صلاة"}, {TokenTerm, "الفجر"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Lex(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lex(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	got := Tokenize(`Hello, World! -foo +bar "x" a.b`)
	want := []string{"hello", "world", "-foo", "+bar", `"x"`, "a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %q, want %q", got, want)
	}
	if got := Tokenize("  ,;  "); len(got) != 0 {
		t.Errorf("Tokenize(punctuation) = %q, want empty", got)
	}
}

func TestTokenKindString(t *testing.T) {
	t.Parallel()

	if TokenPhrase.String() != "phrase" || TokenKind(99).String() != "unknown" {
		t.Error("unexpected TokenKind names")
	}
}
