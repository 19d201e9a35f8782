// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML file (config.yaml or CONFIG_PATH)
//  3. Environment Variables: Override any mapped setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	store, err := database.Open(ctx, &cfg.Database, logger)
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	History   HistoryConfig   `koanf:"history"`
	Query     QueryConfig     `koanf:"query"`
	Recommend RecommendConfig `koanf:"recommend"`
	Breaker   BreakerConfig   `koanf:"breaker"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// DatabaseConfig holds DuckDB settings for the content store.
//
// Environment Variables:
//   - DATABASE_ENABLED: use DuckDB; when false the service runs on the
//     built-in synonym table and an empty catalogue (default: true)
//   - DUCKDB_PATH: database file; empty opens an in-memory database
//   - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 1GB)
//   - DUCKDB_THREADS: worker threads, 0 = NumCPU
//   - DB_QUERY_TIMEOUT: bound on a single store query (default: 5s)
//   - SEED_DEMO_DATA: load the demo catalogue into an empty database
type DatabaseConfig struct {
	Enabled      bool          `koanf:"enabled"`
	Path         string        `koanf:"path"`
	MaxMemory    string        `koanf:"max_memory"`
	Threads      int           `koanf:"threads"`
	QueryTimeout time.Duration `koanf:"query_timeout"`
	SeedDemo     bool          `koanf:"seed_demo"`
}

// HistoryConfig holds query history settings.
//
// Environment Variables:
//   - HISTORY_BACKEND: badger or memory (default: badger)
//   - HISTORY_PATH: BadgerDB directory; empty runs Badger in memory
//   - HISTORY_SYNC_WRITES: fsync every write (default: false)
//   - HISTORY_RATE_PER_SECOND: accepted entries per second (default: 50)
//   - HISTORY_BURST: limiter burst (default: 100)
type HistoryConfig struct {
	Backend       string        `koanf:"backend"`
	Path          string        `koanf:"path"`
	SyncWrites    bool          `koanf:"sync_writes"`
	RatePerSecond float64       `koanf:"rate_per_second"`
	Burst         int           `koanf:"burst"`
	Buffer        int64         `koanf:"buffer"`
	WriteTimeout  time.Duration `koanf:"write_timeout"`
}

// QueryConfig holds query processor settings.
type QueryConfig struct {
	FuzzyThreshold      float64       `koanf:"fuzzy_threshold"`
	MaxOptimizedTerms   int           `koanf:"max_optimized_terms"`
	MaxSynonymsPerTerm  int           `koanf:"max_synonyms_per_term"`
	SynonymCacheSize    int           `koanf:"synonym_cache_size"`
	SynonymCacheTTL     time.Duration `koanf:"synonym_cache_ttl"`
	SynonymTimeout      time.Duration `koanf:"synonym_timeout"`
	SynonymConcurrency  int           `koanf:"synonym_concurrency"`
	MinSuggestPrefix    int           `koanf:"min_suggest_prefix"`
	DefaultSuggestLimit int           `koanf:"default_suggest_limit"`
	MaxSuggestLimit     int           `koanf:"max_suggest_limit"`
}

// RecommendConfig holds fusion engine and strategy settings.
//
// Environment Variables:
//   - RECOMMEND_STRATEGIES: comma-separated combined strategies in dispatch
//     order (default: history,tag,structured,session)
//   - RECOMMEND_TRENDING_SHARE / RECOMMEND_EDITORIAL_SHARE: personalized
//     bucket fractions (default: 0.3 / 0.2)
//   - RECOMMEND_STRATEGY_TIMEOUT: bound on one strategy run (default: 3s)
//   - RECOMMEND_CACHE_TTL: combined result cache lifetime, 0 disables
type RecommendConfig struct {
	Combined        []string      `koanf:"combined"`
	TrendingShare   float64       `koanf:"trending_share"`
	EditorialShare  float64       `koanf:"editorial_share"`
	DefaultLimit    int           `koanf:"default_limit"`
	MaxLimit        int           `koanf:"max_limit"`
	StrategyTimeout time.Duration `koanf:"strategy_timeout"`
	MaxConcurrency  int           `koanf:"max_concurrency"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`
	TrendingWindow  time.Duration `koanf:"trending_window"`
	TrendingDecay   float64       `koanf:"trending_decay_hours"`
	FreshWindow     time.Duration `koanf:"fresh_window"`
}

// BreakerConfig holds the content store circuit breaker settings.
type BreakerConfig struct {
	Enabled          bool          `koanf:"enabled"`
	MaxRequests      uint32        `koanf:"max_requests"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"`
	FailureThreshold uint32        `koanf:"failure_threshold"`
}

// SecurityConfig holds HTTP exposure settings. The service has no
// authentication; these only shape CORS and rate limiting.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	MaxBodyBytes      int64         `koanf:"max_body_bytes"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
