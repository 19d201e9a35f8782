// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package recommend

import (
	"fmt"
	"time"
)

// Strategy names used by the default configuration.
const (
	StrategyHistory    = "history"
	StrategyTag        = "tag"
	StrategyStructured = "structured"
	StrategyTrending   = "trending"
	StrategyEditorial  = "editorial"
	StrategySession    = "session"
	StrategyFresh      = "fresh"
)

// Config contains all configuration for the fusion engine.
type Config struct {
	// Combined lists, in dispatch order, the strategies GetCombined may run.
	// Dispatch order fixes the order of concatenated reasons.
	Combined []string `json:"combined"`

	// Personalized controls the extra buckets GetPersonalized appends.
	Personalized PersonalizedConfig `json:"personalized"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Cache controls caching of combined results.
	Cache CacheConfig `json:"cache"`
}

// PersonalizedConfig controls the trending and editorial buckets.
type PersonalizedConfig struct {
	// TrendingStrategy names the strategy used for the trending bucket.
	TrendingStrategy string `json:"trending_strategy"`

	// TrendingShare is the fraction of the limit requested from trending.
	// Zero disables the bucket. Default: 0.3.
	TrendingShare float64 `json:"trending_share"`

	// EditorialStrategy names the strategy used for the editorial bucket.
	EditorialStrategy string `json:"editorial_strategy"`

	// EditorialShare is the fraction of the limit requested from editorial.
	// Zero disables the bucket. Default: 0.2.
	EditorialShare float64 `json:"editorial_share"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultLimit applies when a context carries no limit. Default: 10.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps any requested limit. Default: 50.
	MaxLimit int `json:"max_limit"`

	// StrategyTimeout bounds a single strategy run. Default: 3s.
	StrategyTimeout time.Duration `json:"strategy_timeout"`

	// MaxConcurrency bounds how many strategies run at once per request.
	// Default: 4.
	MaxConcurrency int `json:"max_concurrency"`
}

// CacheConfig controls caching of combined results.
type CacheConfig struct {
	// TTL is the entry lifetime. Zero disables caching. Default: 0.
	TTL time.Duration `json:"ttl"`

	// MaxEntries bounds the cache. Default: 1000.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Combined: []string{StrategyHistory, StrategyTag, StrategyStructured, StrategySession},
		Personalized: PersonalizedConfig{
			TrendingStrategy:  StrategyTrending,
			TrendingShare:     0.3,
			EditorialStrategy: StrategyEditorial,
			EditorialShare:    0.2,
		},
		Limits: LimitsConfig{
			DefaultLimit:    10,
			MaxLimit:        50,
			StrategyTimeout: 3 * time.Second,
			MaxConcurrency:  4,
		},
		Cache: CacheConfig{
			TTL:        0,
			MaxEntries: 1000,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if len(c.Combined) == 0 {
		return fmt.Errorf("combined must list at least one strategy")
	}
	seen := make(map[string]struct{}, len(c.Combined))
	for _, name := range c.Combined {
		if name == "" {
			return fmt.Errorf("combined contains an empty strategy name")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("combined lists strategy %q twice", name)
		}
		seen[name] = struct{}{}
	}

	if c.Personalized.TrendingShare < 0 || c.Personalized.TrendingShare > 1 {
		return fmt.Errorf("personalized.trending_share must be in [0, 1], got %f", c.Personalized.TrendingShare)
	}
	if c.Personalized.EditorialShare < 0 || c.Personalized.EditorialShare > 1 {
		return fmt.Errorf("personalized.editorial_share must be in [0, 1], got %f", c.Personalized.EditorialShare)
	}
	if c.Personalized.TrendingShare > 0 && c.Personalized.TrendingStrategy == "" {
		return fmt.Errorf("personalized.trending_strategy is required when trending_share > 0")
	}
	if c.Personalized.EditorialShare > 0 && c.Personalized.EditorialStrategy == "" {
		return fmt.Errorf("personalized.editorial_strategy is required when editorial_share > 0")
	}

	if c.Limits.DefaultLimit < 1 {
		return fmt.Errorf("limits.default_limit must be positive, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("limits.max_limit (%d) must be >= default_limit (%d)", c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}
	if c.Limits.StrategyTimeout <= 0 {
		return fmt.Errorf("limits.strategy_timeout must be positive, got %v", c.Limits.StrategyTimeout)
	}
	if c.Limits.MaxConcurrency < 1 {
		return fmt.Errorf("limits.max_concurrency must be positive, got %d", c.Limits.MaxConcurrency)
	}

	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be non-negative, got %v", c.Cache.TTL)
	}
	if c.Cache.TTL > 0 && c.Cache.MaxEntries < 1 {
		return fmt.Errorf("cache.max_entries must be positive when caching, got %d", c.Cache.MaxEntries)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() Config {
	clone := *c
	clone.Combined = append([]string(nil), c.Combined...)
	return clone
}
