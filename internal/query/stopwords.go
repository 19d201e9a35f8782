// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package query

// stopWords never become search terms.
var stopWords = toSet(
	"a", "an", "the", "of", "in", "on", "at", "to", "for", "by", "with",
	"from", "as", "is", "are", "was", "were", "be", "been", "it", "its",
	"this", "that", "these", "those", "and", "or", "not", "but", "if",
	"into", "than", "then", "so", "such",
	"في", "من", "على", "عن", "إلى", "و",
	"ka", "ki", "ke", "ko", "se", "hai",
)

// fillerWords are dropped by Optimize on top of stopWords. They carry intent
// in natural-language questions but rarely help an index match.
var fillerWords = toSet(
	"what", "how", "why", "when", "where", "who", "which", "whom",
	"do", "does", "did", "can", "could", "should", "would", "will",
	"i", "me", "my", "we", "our", "you", "your", "about", "please",
	"tell", "explain", "show", "find", "learn", "some", "any", "all",
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func isStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

func isFillerWord(w string) bool {
	if isStopWord(w) {
		return true
	}
	_, ok := fillerWords[w]
	return ok
}
