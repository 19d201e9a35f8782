// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package query

import (
	"sort"
	"strings"

	"github.com/tomtom215/halaqa-discovery/internal/cache"
)

// Category is a classification target and the keywords that signal it.
type Category struct {
	ID       string   `koanf:"id" json:"id"`
	Keywords []string `koanf:"keywords" json:"keywords"`
}

// DefaultCategories returns the built-in category table.
func DefaultCategories() []Category {
	return []Category{
		{ID: "quran", Keywords: []string{"quran", "qur'an", "surah", "ayah", "tafsir", "tajweed", "recitation", "القرآن"}},
		{ID: "hadith", Keywords: []string{"hadith", "sunnah", "bukhari", "muslim", "narration", "isnad", "الحديث"}},
		{ID: "fiqh", Keywords: []string{"fiqh", "halal", "haram", "ruling", "madhab", "fatwa", "jurisprudence"}},
		{ID: "aqeedah", Keywords: []string{"aqeedah", "aqidah", "tawheed", "iman", "belief", "creed"}},
		{ID: "seerah", Keywords: []string{"seerah", "sirah", "prophet", "companions", "sahaba", "biography"}},
		{ID: "prayer", Keywords: []string{"prayer", "salah", "salat", "wudu", "adhan", "qibla", "الصلاة", "صلاة"}},
		{ID: "fasting", Keywords: []string{"fasting", "ramadan", "sawm", "suhoor", "iftar"}},
		{ID: "zakat", Keywords: []string{"zakat", "zakah", "charity", "sadaqah", "nisab"}},
		{ID: "hajj", Keywords: []string{"hajj", "umrah", "pilgrimage", "ihram", "kaaba", "mecca"}},
		{ID: "dua", Keywords: []string{"dua", "supplication", "dhikr", "adhkar", "remembrance"}},
		{ID: "family", Keywords: []string{"marriage", "nikah", "family", "parents", "children", "divorce"}},
		{ID: "history", Keywords: []string{"history", "caliphate", "khilafah", "ottoman", "andalus", "civilization"}},
	}
}

type keywordRef struct {
	category int
	keyword  int
}

// categoryIndex scores a query against a fixed category table.
type categoryIndex struct {
	categories []Category
	matcher    *cache.KeywordMatcher[keywordRef]
}

func newCategoryIndex(categories []Category) *categoryIndex {
	var keywords []cache.Keyword[keywordRef]
	cleaned := make([]Category, len(categories))
	for ci, cat := range categories {
		cleaned[ci] = Category{ID: cat.ID, Keywords: make([]string, len(cat.Keywords))}
		for ki, kw := range cat.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			cleaned[ci].Keywords[ki] = kw
			keywords = append(keywords, cache.Keyword[keywordRef]{Text: kw, Data: keywordRef{category: ci, keyword: ki}})
		}
	}
	return &categoryIndex{categories: cleaned, matcher: cache.NewKeywordMatcher(keywords)}
}

// detect scores every category against the lower-cased query text and its
// content tokens.
//
// A keyword found as a substring of the query scores 1. Otherwise a keyword
// that contains, or is contained in, one of the tokens scores 0.5. The sum is
// divided by the category's keyword count and capped at 1. Categories with no
// hits are omitted. Ties keep table order.
func (ci *categoryIndex) detect(text string, tokens []string) []CategoryMatch {
	exact := make(map[keywordRef]struct{})
	for _, m := range ci.matcher.MatchAll(text) {
		exact[m.Data] = struct{}{}
	}

	var matches []CategoryMatch
	for c, cat := range ci.categories {
		if len(cat.Keywords) == 0 {
			continue
		}
		var score float64
		var matched []string
		for k, kw := range cat.Keywords {
			if kw == "" {
				continue
			}
			if _, ok := exact[keywordRef{category: c, keyword: k}]; ok {
				score++
				matched = append(matched, kw)
				continue
			}
			if partialMatch(kw, tokens) {
				score += 0.5
				matched = append(matched, kw)
			}
		}
		if score == 0 {
			continue
		}
		matches = append(matches, CategoryMatch{
			Category:        cat.ID,
			Confidence:      min(score/float64(len(cat.Keywords)), 1),
			MatchedKeywords: matched,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	return matches
}

func partialMatch(keyword string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(tok, keyword) || strings.Contains(keyword, tok) {
			return true
		}
	}
	return false
}
