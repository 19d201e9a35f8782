// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package config

import (
	"fmt"
	"time"
)

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateDatabase,
		c.validateHistory,
		c.validateQuery,
		c.validateRecommend,
		c.validateBreaker,
		c.validateSecurity,
		c.validateLogging,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if !c.Database.Enabled {
		return nil
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must not be negative")
	}
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("DB_QUERY_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateHistory() error {
	switch c.History.Backend {
	case "badger", "memory":
	default:
		return fmt.Errorf("HISTORY_BACKEND must be one of: badger, memory")
	}
	if c.History.RatePerSecond <= 0 || c.History.Burst < 1 {
		return fmt.Errorf("HISTORY_RATE_PER_SECOND and HISTORY_BURST must be positive")
	}
	if c.History.Buffer < 1 {
		return fmt.Errorf("HISTORY_BUFFER must be positive")
	}
	if c.History.WriteTimeout <= 0 {
		return fmt.Errorf("HISTORY_WRITE_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateQuery() error {
	q := c.Query
	if q.FuzzyThreshold <= 0 || q.FuzzyThreshold > 1 {
		return fmt.Errorf("QUERY_FUZZY_THRESHOLD must be in (0, 1]")
	}
	if q.MaxOptimizedTerms < 1 || q.MaxSynonymsPerTerm < 1 || q.SynonymConcurrency < 1 {
		return fmt.Errorf("query term, synonym and concurrency limits must be positive")
	}
	if q.MinSuggestPrefix < 1 || q.DefaultSuggestLimit < 1 || q.MaxSuggestLimit < q.DefaultSuggestLimit {
		return fmt.Errorf("suggest limits must be positive with max >= default")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if len(r.Combined) == 0 {
		return fmt.Errorf("RECOMMEND_STRATEGIES must list at least one strategy")
	}
	if r.TrendingShare < 0 || r.TrendingShare > 1 || r.EditorialShare < 0 || r.EditorialShare > 1 {
		return fmt.Errorf("RECOMMEND_TRENDING_SHARE and RECOMMEND_EDITORIAL_SHARE must be in [0, 1]")
	}
	if r.DefaultLimit < 1 || r.MaxLimit < r.DefaultLimit {
		return fmt.Errorf("recommend limits must be positive with max >= default")
	}
	if r.StrategyTimeout <= 0 || r.MaxConcurrency < 1 {
		return fmt.Errorf("RECOMMEND_STRATEGY_TIMEOUT and RECOMMEND_MAX_CONCURRENCY must be positive")
	}
	if r.CacheTTL < 0 {
		return fmt.Errorf("RECOMMEND_CACHE_TTL must not be negative")
	}
	if r.TrendingWindow <= 0 || r.TrendingDecay <= 0 || r.FreshWindow <= 0 {
		return fmt.Errorf("trending and fresh windows must be positive")
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if !c.Breaker.Enabled {
		return nil
	}
	if c.Breaker.FailureThreshold < 1 {
		return fmt.Errorf("BREAKER_FAILURE_THRESHOLD must be positive")
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateSecurity() error {
	if c.Security.MaxBodyBytes < 1 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// ShouldWarnAboutCORS reports whether wildcard CORS is configured in production.
func (c *Config) ShouldWarnAboutCORS() bool {
	if !c.IsProduction() {
		return false
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
