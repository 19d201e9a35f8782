// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package query

import (
	"strings"
	"unicode/utf8"
)

// parseOperators sorts lexed tokens into operators and residual search
// terms.
//
// Exclusions, inclusions and residual terms are deduplicated in first-seen
// order. A word given with both signs keeps the first one. A term already captured as an inclusion, an exclusion or a word of
// an exact phrase is not repeated as a search term, and stop words never
// become search terms.
func parseOperators(tokens []Token) (Operators, []string) {
	ops := Operators{
		ExactPhrases:     []string{},
		Exclusions:       []string{},
		Inclusions:       []string{},
		BooleanOperators: []string{},
	}
	claimed := make(map[string]struct{})
	signed := make(map[string]struct{})
	var terms []string

	for _, tok := range tokens {
		switch tok.Kind {
		case TokenPhrase:
			ops.ExactPhrases = append(ops.ExactPhrases, tok.Text)
			for _, w := range normalizeWords(tok.Text) {
				claimed[w] = struct{}{}
			}
		case TokenBoolean:
			ops.BooleanOperators = append(ops.BooleanOperators, tok.Text)
		case TokenExclusion, TokenInclusion:
			if _, dup := signed[tok.Text]; dup {
				continue
			}
			signed[tok.Text] = struct{}{}
			claimed[tok.Text] = struct{}{}
			if tok.Kind == TokenExclusion {
				ops.Exclusions = append(ops.Exclusions, tok.Text)
			} else {
				ops.Inclusions = append(ops.Inclusions, tok.Text)
			}
		case TokenTerm:
			terms = append(terms, tok.Text)
		}
	}

	residual := []string{}
	for _, term := range terms {
		if _, ok := claimed[term]; ok || isStopWord(term) {
			continue
		}
		claimed[term] = struct{}{}
		residual = append(residual, term)
	}
	return ops, residual
}

// positiveTerms are the terms a match should contain: inclusions first, then
// residual search terms.
func positiveTerms(ops *Operators, searchTerms []string) []string {
	out := make([]string, 0, len(ops.Inclusions)+len(searchTerms))
	out = append(out, ops.Inclusions...)
	return append(out, searchTerms...)
}

// BuildExpandedQuery renders each term as "(term OR syn1 OR syn2)" when it
// has synonyms and bare otherwise, joined with " AND ".
func BuildExpandedQuery(terms []string, synonyms map[string][]string) string {
	groups := make([]string, 0, len(terms))
	for _, term := range terms {
		syns := synonyms[term]
		if len(syns) == 0 {
			groups = append(groups, term)
			continue
		}
		groups = append(groups, "("+strings.Join(append([]string{term}, syns...), " OR ")+")")
	}
	return strings.Join(groups, " AND ")
}

// BuildBooleanQuery renders a tsquery expression. Phrases become
// 'w1' <-> 'w2' chains, then inclusions and residual terms follow as quoted
// lexemes, then exclusions as !'x'. Clauses are joined with " & ", or with
// " | " throughout when the query contained an OR operator anywhere.
func BuildBooleanQuery(ops *Operators, residual []string) string {
	var clauses []string
	for _, phrase := range ops.ExactPhrases {
		words := normalizeWords(phrase)
		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = quoteLexeme(w)
		}
		if len(quoted) > 0 {
			clauses = append(clauses, strings.Join(quoted, " <-> "))
		}
	}
	for _, term := range ops.Inclusions {
		clauses = append(clauses, quoteLexeme(term))
	}
	for _, term := range residual {
		clauses = append(clauses, quoteLexeme(term))
	}
	for _, term := range ops.Exclusions {
		clauses = append(clauses, "!"+quoteLexeme(term))
	}

	joiner := " & "
	for _, op := range ops.BooleanOperators {
		if op == "OR" {
			joiner = " | "
			break
		}
	}
	return strings.Join(clauses, joiner)
}

func quoteLexeme(term string) string {
	return "'" + strings.ReplaceAll(term, "'", "''") + "'"
}

// BuildFuzzyPlan selects terms longer than two characters. It returns nil
// when none qualify.
func BuildFuzzyPlan(terms []string, threshold float64) *FuzzyPlan {
	var selected []string
	for _, term := range terms {
		if utf8.RuneCountInString(term) > 2 {
			selected = append(selected, term)
		}
	}
	if len(selected) == 0 {
		return nil
	}
	return &FuzzyPlan{Terms: selected, Threshold: threshold}
}
