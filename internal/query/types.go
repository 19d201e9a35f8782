// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package query

// Complexity classifies how involved a query is.
type Complexity string

// Complexity levels.
const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

// ProcessedQuery is the immutable result of processing one raw query.
type ProcessedQuery struct {
	OriginalQuery string `json:"original_query"`

	// ExpandedQuery ORs each positive term with its synonyms and ANDs the
	// groups, e.g. "(quran OR qur'an) AND fasting".
	ExpandedQuery string `json:"expanded_query"`

	// BooleanQuery is a tsquery expression for a full-text index.
	BooleanQuery string `json:"boolean_query"`

	// FuzzyQuery is nil when no term qualifies for similarity matching.
	FuzzyQuery *FuzzyPlan `json:"fuzzy_query,omitempty"`

	// DetectedCategories holds category ids by descending confidence.
	DetectedCategories []string `json:"detected_categories"`

	// Categories holds the full matches behind DetectedCategories.
	Categories []CategoryMatch `json:"categories"`

	SearchTerms []string  `json:"search_terms"`
	Operators   Operators `json:"operators"`
	Language    string    `json:"language"`
	Metadata    Metadata  `json:"metadata"`

	// Synonyms maps each expanded term to the synonyms used for it.
	Synonyms map[string][]string `json:"synonyms,omitempty"`
}

// Operators holds the operator syntax extracted from a raw query.
type Operators struct {
	ExactPhrases     []string `json:"exact_phrases"`
	Exclusions       []string `json:"exclusions"`
	Inclusions       []string `json:"inclusions"`
	BooleanOperators []string `json:"boolean_operators"`
}

// Any reports whether any operator was present.
func (o *Operators) Any() bool {
	return len(o.ExactPhrases) > 0 || len(o.Exclusions) > 0 ||
		len(o.Inclusions) > 0 || len(o.BooleanOperators) > 0
}

// Metadata summarizes a processed query.
type Metadata struct {
	HasSynonyms  bool       `json:"has_synonyms"`
	HasOperators bool       `json:"has_operators"`
	HasFuzzy     bool       `json:"has_fuzzy"`
	Complexity   Complexity `json:"complexity"`

	// Degraded is set when processing failed and the result is minimal.
	Degraded bool `json:"degraded,omitempty"`
}

// FuzzyPlan tells the store which terms to match by trigram similarity and
// at what threshold.
type FuzzyPlan struct {
	Terms     []string `json:"terms"`
	Threshold float64  `json:"threshold"`
}

// CategoryMatch is one detected category.
type CategoryMatch struct {
	Category        string   `json:"category"`
	Confidence      float64  `json:"confidence"`
	MatchedKeywords []string `json:"matched_keywords"`
}

// termCount is the count used for complexity: residual terms, inclusions,
// exclusions and phrases, each phrase counting once.
func (pq *ProcessedQuery) termCount() int {
	return len(pq.SearchTerms) + len(pq.Operators.Inclusions) +
		len(pq.Operators.Exclusions) + len(pq.Operators.ExactPhrases)
}
