// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package query

import (
	"fmt"
	"time"
)

// Config contains the query processor configuration.
type Config struct {
	// FuzzyThreshold is the trigram similarity handed to the store.
	// Default: 0.3.
	FuzzyThreshold float64

	// MaxOptimizedTerms caps search terms after Optimize. Default: 10.
	MaxOptimizedTerms int

	// MaxSynonymsPerTerm caps the synonyms used per term. Default: 5.
	MaxSynonymsPerTerm int

	// SynonymCacheSize and SynonymCacheTTL bound the per-term lookup cache.
	// Defaults: 5000 entries, 10m.
	SynonymCacheSize int
	SynonymCacheTTL  time.Duration

	// SynonymTimeout bounds a single term's lookup. Default: 500ms.
	SynonymTimeout time.Duration

	// SynonymConcurrency bounds concurrent lookups per query. Default: 4.
	SynonymConcurrency int

	// MinSuggestPrefix is the shortest prefix Suggest answers. Default: 2.
	MinSuggestPrefix int

	// DefaultSuggestLimit and MaxSuggestLimit shape Suggest results.
	// Defaults: 10, 50.
	DefaultSuggestLimit int
	MaxSuggestLimit     int

	// Categories is the classification table. Default: DefaultCategories().
	Categories []Category
}

// DefaultConfig returns the default processor configuration.
func DefaultConfig() Config {
	return Config{
		FuzzyThreshold:      0.3,
		MaxOptimizedTerms:   10,
		MaxSynonymsPerTerm:  5,
		SynonymCacheSize:    5000,
		SynonymCacheTTL:     10 * time.Minute,
		SynonymTimeout:      500 * time.Millisecond,
		SynonymConcurrency:  4,
		MinSuggestPrefix:    2,
		DefaultSuggestLimit: 10,
		MaxSuggestLimit:     50,
		Categories:          DefaultCategories(),
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.FuzzyThreshold <= 0 || c.FuzzyThreshold > 1 {
		return fmt.Errorf("fuzzy_threshold must be in (0, 1], got %f", c.FuzzyThreshold)
	}
	if c.MaxOptimizedTerms < 1 {
		return fmt.Errorf("max_optimized_terms must be positive, got %d", c.MaxOptimizedTerms)
	}
	if c.MaxSynonymsPerTerm < 1 {
		return fmt.Errorf("max_synonyms_per_term must be positive, got %d", c.MaxSynonymsPerTerm)
	}
	if c.SynonymCacheSize < 1 || c.SynonymCacheTTL <= 0 {
		return fmt.Errorf("synonym cache needs a positive size and ttl, got %d and %v", c.SynonymCacheSize, c.SynonymCacheTTL)
	}
	if c.SynonymTimeout <= 0 {
		return fmt.Errorf("synonym_timeout must be positive, got %v", c.SynonymTimeout)
	}
	if c.SynonymConcurrency < 1 {
		return fmt.Errorf("synonym_concurrency must be positive, got %d", c.SynonymConcurrency)
	}
	if c.MinSuggestPrefix < 1 {
		return fmt.Errorf("min_suggest_prefix must be positive, got %d", c.MinSuggestPrefix)
	}
	if c.DefaultSuggestLimit < 1 || c.MaxSuggestLimit < c.DefaultSuggestLimit {
		return fmt.Errorf("suggest limits invalid: default %d, max %d", c.DefaultSuggestLimit, c.MaxSuggestLimit)
	}
	seen := make(map[string]struct{}, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.ID == "" {
			return fmt.Errorf("category with empty id")
		}
		if _, dup := seen[cat.ID]; dup {
			return fmt.Errorf("category %q defined twice", cat.ID)
		}
		seen[cat.ID] = struct{}{}
	}
	return nil
}
