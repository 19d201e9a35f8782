// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package query

import (
	"strings"
	"unicode"
)

// TokenKind is the type of a lexed token.
type TokenKind int

// Token kinds.
const (
	TokenTerm TokenKind = iota
	TokenPhrase
	TokenExclusion
	TokenInclusion
	TokenBoolean
)

var tokenKindNames = [...]string{
	TokenTerm:      "term",
	TokenPhrase:    "phrase",
	TokenExclusion: "exclusion",
	TokenInclusion: "inclusion",
	TokenBoolean:   "boolean",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "unknown"
}

// Token is one unit of a raw query.
//
// Text is normalized for every kind except TokenPhrase, which keeps the
// phrase as written minus surrounding space, and TokenBoolean, which is
// upper-cased (AND, OR, NOT).
type Token struct {
	Kind TokenKind
	Text string
}

// Lex splits a raw query into typed tokens in input order.
//
// A double quote opens a phrase that runs to the next double quote. An
// unclosed quote is dropped and the rest of the input lexes normally. Words
// prefixed with - or + become exclusions or inclusions; AND, OR and NOT in
// any case become boolean operators. Punctuation inside words splits them.
func Lex(raw string) []Token {
	var tokens []Token
	runes := []rune(raw)

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++

		case r == '"':
			end := indexRune(runes, i+1, '"')
			if end < 0 {
				i++
				continue
			}
			if phrase := strings.TrimSpace(string(runes[i+1 : end])); phrase != "" && len(normalizeWords(phrase)) > 0 {
				tokens = append(tokens, Token{Kind: TokenPhrase, Text: phrase})
			}
			i = end + 1

		default:
			start := i
			for i < len(runes) && !unicode.IsSpace(runes[i]) && runes[i] != '"' {
				i++
			}
			tokens = append(tokens, lexWord(string(runes[start:i]))...)
		}
	}
	return tokens
}

func lexWord(word string) []Token {
	switch upper := strings.ToUpper(word); upper {
	case "AND", "OR", "NOT":
		return []Token{{Kind: TokenBoolean, Text: upper}}
	}

	kind := TokenTerm
	switch word[0] {
	case '-':
		kind = TokenExclusion
		word = word[1:]
	case '+':
		kind = TokenInclusion
		word = word[1:]
	}

	words := normalizeWords(word)
	tokens := make([]Token, 0, len(words))
	for _, w := range words {
		tokens = append(tokens, Token{Kind: kind, Text: w})
	}
	return tokens
}

// Tokenize lower-cases raw, strips punctuation other than the operator
// markers (" - +) and splits on whitespace.
func Tokenize(raw string) []string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.ToLower(raw) {
		switch {
		case isWordRune(r), r == '"', r == '-', r == '+':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Fields(b.String())
}

// normalizeWords lower-cases s and splits it on anything that is not a
// letter, digit, combining mark or in-word apostrophe.
func normalizeWords(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !isWordRune(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if f = strings.Trim(f, "'’"); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || r == '\'' || r == '’'
}

func indexRune(runes []rune, from int, target rune) int {
	for j := from; j < len(runes); j++ {
		if runes[j] == target {
			return j
		}
	}
	return -1
}
