// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package query

import (
	"unicode"
)

// Language codes returned by DetectLanguage.
const (
	LanguageArabic  = "ar"
	LanguageUrdu    = "ur"
	LanguageEnglish = "en"
)

var urduRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0750, Hi: 0x077F, Stride: 1}, // Arabic Supplement
		{Lo: 0xFB50, Hi: 0xFDFF, Stride: 1}, // Arabic Presentation Forms-A
		{Lo: 0xFE70, Hi: 0xFEFF, Stride: 1}, // Arabic Presentation Forms-B
	},
}

// DetectLanguage returns "ar" if the text holds any code point in the Arabic
// block (U+0600-U+06FF), else "ur" if it holds any code point from the
// extended Arabic-script ranges used for Urdu, else "en". Latin text and text
// with no letters both read as English.
func DetectLanguage(text string) string {
	var urdu bool
	for _, r := range text {
		if r >= 0x0600 && r <= 0x06FF {
			return LanguageArabic
		}
		if unicode.Is(urduRanges, r) {
			urdu = true
		}
	}
	if urdu {
		return LanguageUrdu
	}
	return LanguageEnglish
}

// classifyComplexity is simple for at most two terms and no operators,
// complex for more than five terms, and medium otherwise.
func classifyComplexity(termCount int, hasOperators bool) Complexity {
	switch {
	case termCount <= 2 && !hasOperators:
		return ComplexitySimple
	case termCount > 5:
		return ComplexityComplex
	default:
		return ComplexityMedium
	}
}

// AnalyzeComplexity lexes raw and classifies it.
func AnalyzeComplexity(raw string) Complexity {
	ops, residual := parseOperators(Lex(raw))
	pq := ProcessedQuery{Operators: ops, SearchTerms: residual}
	return classifyComplexity(pq.termCount(), ops.Any())
}
