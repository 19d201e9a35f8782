// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/halaqa-discovery/config.yaml",
	"/etc/halaqa-discovery/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with every default applied. Defaults load
// first and are overridden by the config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Database: DatabaseConfig{
			Enabled:      true,
			Path:         "/data/halaqa.duckdb",
			MaxMemory:    "1GB",
			Threads:      0, // 0 = runtime.NumCPU()
			QueryTimeout: 5 * time.Second,
			SeedDemo:     false,
		},
		History: HistoryConfig{
			Backend:       "badger",
			Path:          "/data/history",
			SyncWrites:    false,
			RatePerSecond: 50,
			Burst:         100,
			Buffer:        256,
			WriteTimeout:  2 * time.Second,
		},
		Query: QueryConfig{
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
		},
		Recommend: RecommendConfig{
			Combined:        []string{"history", "tag", "structured", "session"},
			TrendingShare:   0.3,
			EditorialShare:  0.2,
			DefaultLimit:    10,
			MaxLimit:        50,
			StrategyTimeout: 3 * time.Second,
			MaxConcurrency:  4,
			CacheTTL:        0, // caching off
			CacheMaxEntries: 1000,
			TrendingWindow:  7 * 24 * time.Hour,
			TrendingDecay:   24,
			FreshWindow:     30 * 24 * time.Hour,
		},
		Breaker: BreakerConfig{
			Enabled:          true,
			MaxRequests:      3,
			Interval:         time.Minute,
			Timeout:          30 * time.Second,
			FailureThreshold: 5,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			MaxBodyBytes:      1 << 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration with Koanf v2 from layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if one exists)
//  3. Environment Variables: Override any mapped setting
//
// The result is validated before it is returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: optional config file
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables, e.g. DUCKDB_PATH -> database.path
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"recommend.combined",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Database
	"database_enabled":  "database.enabled",
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"db_query_timeout":  "database.query_timeout",
	"seed_demo_data":    "database.seed_demo",

	// History
	"history_backend":         "history.backend",
	"history_path":            "history.path",
	"history_sync_writes":     "history.sync_writes",
	"history_rate_per_second": "history.rate_per_second",
	"history_burst":           "history.burst",
	"history_buffer":          "history.buffer",
	"history_write_timeout":   "history.write_timeout",

	// Query processor
	"query_fuzzy_threshold":      "query.fuzzy_threshold",
	"query_max_optimized_terms":  "query.max_optimized_terms",
	"query_max_synonyms":         "query.max_synonyms_per_term",
	"query_synonym_cache_size":   "query.synonym_cache_size",
	"query_synonym_cache_ttl":    "query.synonym_cache_ttl",
	"query_synonym_timeout":      "query.synonym_timeout",
	"query_synonym_concurrency":  "query.synonym_concurrency",
	"query_min_suggest_prefix":   "query.min_suggest_prefix",
	"query_default_suggest_size": "query.default_suggest_limit",
	"query_max_suggest_size":     "query.max_suggest_limit",

	// Recommendations
	"recommend_strategies":        "recommend.combined",
	"recommend_trending_share":    "recommend.trending_share",
	"recommend_editorial_share":   "recommend.editorial_share",
	"recommend_default_limit":     "recommend.default_limit",
	"recommend_max_limit":         "recommend.max_limit",
	"recommend_strategy_timeout":  "recommend.strategy_timeout",
	"recommend_max_concurrency":   "recommend.max_concurrency",
	"recommend_cache_ttl":         "recommend.cache_ttl",
	"recommend_cache_max_entries": "recommend.cache_max_entries",
	"recommend_trending_window":   "recommend.trending_window",
	"recommend_trending_decay":    "recommend.trending_decay_hours",
	"recommend_fresh_window":      "recommend.fresh_window",

	// Circuit breaker
	"breaker_enabled":           "breaker.enabled",
	"breaker_max_requests":      "breaker.max_requests",
	"breaker_interval":          "breaker.interval",
	"breaker_timeout":           "breaker.timeout",
	"breaker_failure_threshold": "breaker.failure_threshold",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
	"max_body_bytes":      "security.max_body_bytes",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - DUCKDB_PATH -> database.path
//   - HTTP_PORT -> server.port
//   - RECOMMEND_STRATEGIES -> recommend.combined
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	// An empty path skips the variable so unrelated environment does not
	// leak into the config.
	return ""
}
