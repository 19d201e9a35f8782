// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package query

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/tomtom215/halaqa-discovery/internal/cache"
	"github.com/tomtom215/halaqa-discovery/internal/metrics"
)

// HistorySource answers prefix lookups against previously seen queries.
type HistorySource interface {
	Suggest(ctx context.Context, prefix string, limit int) ([]string, error)
}

// Processor turns raw query strings into ProcessedQuery values. It is safe
// for concurrent use.
type Processor struct {
	config     Config
	synonyms   *synonymExpander
	categories *categoryIndex
	history    HistorySource
	logger     zerolog.Logger
}

// New creates a processor. synonyms and history may be nil, in which case
// no term is expanded and Suggest returns nothing.
//
//nolint:gocritic // hugeParam: config and logger are copied once at construction
func New(cfg Config, synonyms SynonymSource, history HistorySource, logger zerolog.Logger) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger = logger.With().Str("component", "query").Logger()

	return &Processor{
		config: cfg,
		synonyms: &synonymExpander{
			source:      synonyms,
			cache:       cache.NewLRU[string, []string](cfg.SynonymCacheSize, cfg.SynonymCacheTTL),
			maxPerTerm:  cfg.MaxSynonymsPerTerm,
			concurrency: cfg.SynonymConcurrency,
			timeout:     cfg.SynonymTimeout,
			logger:      logger,
		},
		categories: newCategoryIndex(cfg.Categories),
		history:    history,
		logger:     logger,
	}, nil
}

// Process runs the full pipeline over raw. It never fails: if a stage
// panics the cause is logged and a minimal result is returned.
func (p *Processor) Process(ctx context.Context, raw string) (pq ProcessedQuery) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().
				Str("query", raw).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("query processing failed, returning minimal result")
			metrics.QueriesDegraded.Inc()
			pq = minimalResult(raw)
		}
	}()

	pq = p.process(ctx, raw)
	metrics.RecordQueryProcessed(string(pq.Metadata.Complexity), pq.Language)
	return pq
}

func (p *Processor) process(ctx context.Context, raw string) ProcessedQuery {
	ops, residual := parseOperators(Lex(raw))
	positive := positiveTerms(&ops, residual)

	synonyms := p.synonyms.expand(ctx, positive)

	expanded := raw
	if len(positive) > 0 {
		expanded = BuildExpandedQuery(positive, synonyms)
	}
	fuzzy := BuildFuzzyPlan(positive, p.config.FuzzyThreshold)

	categories := p.categories.detect(strings.ToLower(raw), contentTokens(raw))
	categoryIDs := make([]string, len(categories))
	for i, c := range categories {
		categoryIDs[i] = c.Category
	}
	if categories == nil {
		categories = []CategoryMatch{}
	}

	pq := ProcessedQuery{
		OriginalQuery:      raw,
		ExpandedQuery:      expanded,
		BooleanQuery:       BuildBooleanQuery(&ops, residual),
		FuzzyQuery:         fuzzy,
		DetectedCategories: categoryIDs,
		Categories:         categories,
		SearchTerms:        residual,
		Operators:          ops,
		Language:           DetectLanguage(raw),
		Synonyms:           synonyms,
	}
	pq.Metadata = Metadata{
		HasSynonyms:  len(synonyms) > 0,
		HasOperators: ops.Any(),
		HasFuzzy:     fuzzy != nil,
		Complexity:   classifyComplexity(pq.termCount(), ops.Any()),
	}
	return pq
}

// contentTokens are the query words eligible for partial category matches:
// non-stop-words of at least three characters.
func contentTokens(raw string) []string {
	var out []string
	for _, tok := range Lex(raw) {
		if tok.Kind == TokenBoolean {
			continue
		}
		for _, w := range normalizeWords(tok.Text) {
			if utf8.RuneCountInString(w) >= 3 && !isStopWord(w) {
				out = append(out, w)
			}
		}
	}
	return out
}

func minimalResult(raw string) ProcessedQuery {
	return ProcessedQuery{
		OriginalQuery:      raw,
		ExpandedQuery:      raw,
		DetectedCategories: []string{},
		Categories:         []CategoryMatch{},
		SearchTerms:        []string{},
		Operators: Operators{
			ExactPhrases:     []string{},
			Exclusions:       []string{},
			Inclusions:       []string{},
			BooleanOperators: []string{},
		},
		Language: LanguageEnglish,
		Metadata: Metadata{Complexity: ComplexitySimple, Degraded: true},
	}
}

// Optimize drops stop and filler words from the search terms, caps them at
// MaxOptimizedTerms and recomputes complexity. The input is not modified.
//
//nolint:gocritic // hugeParam: ProcessedQuery is an immutable value
func (p *Processor) Optimize(pq ProcessedQuery) ProcessedQuery {
	terms := make([]string, 0, len(pq.SearchTerms))
	for _, term := range pq.SearchTerms {
		if isFillerWord(term) {
			continue
		}
		terms = append(terms, term)
		if len(terms) == p.config.MaxOptimizedTerms {
			break
		}
	}
	pq.SearchTerms = terms
	pq.Metadata.Complexity = classifyComplexity(pq.termCount(), pq.Metadata.HasOperators)
	return pq
}

// Suggest returns at most limit distinct prior queries starting with prefix.
// Prefixes shorter than MinSuggestPrefix characters, a missing history
// source and lookup failures all yield an empty list.
func (p *Processor) Suggest(ctx context.Context, prefix string, limit int) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if utf8.RuneCountInString(prefix) < p.config.MinSuggestPrefix || p.history == nil {
		return []string{}
	}
	switch {
	case limit <= 0:
		limit = p.config.DefaultSuggestLimit
	case limit > p.config.MaxSuggestLimit:
		limit = p.config.MaxSuggestLimit
	}

	raw, err := p.history.Suggest(ctx, prefix, limit)
	if err != nil {
		p.logger.Warn().Err(err).Str("prefix", prefix).Msg("suggestion lookup failed")
		return []string{}
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, min(len(raw), limit))
	for _, s := range raw {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out
}
