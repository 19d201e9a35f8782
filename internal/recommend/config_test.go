// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package recommend

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	want := []string{StrategyHistory, StrategyTag, StrategyStructured, StrategySession}
	if strings.Join(cfg.Combined, ",") != strings.Join(want, ",") {
		t.Errorf("Combined = %v, want %v", cfg.Combined, want)
	}
	if cfg.Personalized.TrendingShare != 0.3 || cfg.Personalized.EditorialShare != 0.2 {
		t.Errorf("shares = %v, %v", cfg.Personalized.TrendingShare, cfg.Personalized.EditorialShare)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"no combined", func(c *Config) { c.Combined = nil }, "at least one"},
		{"empty name", func(c *Config) { c.Combined = []string{""} }, "empty strategy"},
		{"duplicate name", func(c *Config) { c.Combined = []string{"tag", "tag"} }, "twice"},
		{"trending share", func(c *Config) { c.Personalized.TrendingShare = 1.5 }, "trending_share"},
		{"editorial share", func(c *Config) { c.Personalized.EditorialShare = -0.1 }, "editorial_share"},
		{"trending name", func(c *Config) { c.Personalized.TrendingStrategy = "" }, "trending_strategy"},
		{"disabled bucket needs no name", func(c *Config) {
			c.Personalized.EditorialShare = 0
			c.Personalized.EditorialStrategy = ""
		}, ""},
		{"default limit", func(c *Config) { c.Limits.DefaultLimit = 0 }, "default_limit"},
		{"max limit", func(c *Config) { c.Limits.MaxLimit = 5 }, "max_limit"},
		{"timeout", func(c *Config) { c.Limits.StrategyTimeout = 0 }, "strategy_timeout"},
		{"concurrency", func(c *Config) { c.Limits.MaxConcurrency = 0 }, "max_concurrency"},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Second }, "cache.ttl"},
		{"cache entries", func(c *Config) {
			c.Cache.TTL = time.Minute
			c.Cache.MaxEntries = 0
		}, "max_entries"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Combined[0] = "changed"
	if cfg.Combined[0] != StrategyHistory {
		t.Error("Clone shares the Combined slice")
	}
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	base := RecommendationContext{UserID: "u", ContentID: "c", Limit: 5}
	other := base
	other.ExcludeViewed = true
	if base.cacheKey() == other.cacheKey() {
		t.Error("cache key ignores ExcludeViewed")
	}
	if base.cacheKey() != base.cacheKey() {
		t.Error("cache key is not deterministic")
	}
}
