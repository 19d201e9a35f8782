// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package main

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/halaqa-discovery/internal/config"
	"github.com/tomtom215/halaqa-discovery/internal/database"
	"github.com/tomtom215/halaqa-discovery/internal/history"
	"github.com/tomtom215/halaqa-discovery/internal/query"
	"github.com/tomtom215/halaqa-discovery/internal/recommend"
)

func TestQueryConfig_KeepsDefaultsForZero(t *testing.T) {
	t.Parallel()

	got := queryConfig(&config.QueryConfig{MaxOptimizedTerms: 7, SynonymTimeout: time.Second})
	def := query.DefaultConfig()

	if got.MaxOptimizedTerms != 7 || got.SynonymTimeout != time.Second {
		t.Errorf("overrides not applied: %+v", got)
	}
	if got.FuzzyThreshold != def.FuzzyThreshold || got.MaxSuggestLimit != def.MaxSuggestLimit {
		t.Errorf("defaults not kept: %+v", got)
	}
	if len(got.Categories) != len(def.Categories) {
		t.Errorf("categories = %d, want %d", len(got.Categories), len(def.Categories))
	}
}

func TestEngineConfig(t *testing.T) {
	t.Parallel()

	got := engineConfig(&config.RecommendConfig{
		Combined:       []string{recommend.StrategyTag, recommend.StrategyFresh},
		TrendingShare:  0,
		EditorialShare: 0.5,
		MaxLimit:       80,
		CacheTTL:       time.Minute,
	})

	if len(got.Combined) != 2 || got.Combined[1] != recommend.StrategyFresh {
		t.Errorf("combined = %v", got.Combined)
	}
	if got.Personalized.TrendingShare != 0 || got.Personalized.EditorialShare != 0.5 {
		t.Errorf("shares = %+v", got.Personalized)
	}
	if got.Limits.MaxLimit != 80 || got.Limits.DefaultLimit != recommend.DefaultConfig().Limits.DefaultLimit {
		t.Errorf("limits = %+v", got.Limits)
	}
	if got.Cache.TTL != time.Minute {
		t.Errorf("cache ttl = %v", got.Cache.TTL)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("mapped config invalid: %v", err)
	}
}

func TestNewEngine_RegistersAllStrategies(t *testing.T) {
	t.Parallel()

	cfg := &config.RecommendConfig{TrendingShare: 0.3, EditorialShare: 0.2}
	engine, err := newEngine(cfg, recommend.EmptyStore{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("newEngine: %v", err)
	}

	want := map[string]bool{
		recommend.StrategyHistory: true, recommend.StrategyTag: true,
		recommend.StrategyStructured: true, recommend.StrategySession: true,
		recommend.StrategyTrending: true, recommend.StrategyEditorial: true,
		recommend.StrategyFresh: true,
	}
	got := engine.Strategies()
	if len(got) != len(want) {
		t.Fatalf("strategies = %v", got)
	}
	for _, name := range got {
		if !want[name] {
			t.Errorf("unexpected strategy %q", name)
		}
	}

	// An empty catalogue yields empty, not failing, results.
	recs := engine.GetPersonalized(context.Background(), recommend.RecommendationContext{UserID: "u1"})
	if len(recs) != 0 {
		t.Errorf("got %d recommendations from an empty store", len(recs))
	}
}

func TestOpenContentStores_Disabled(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	stores, err := openContentStores(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("openContentStores: %v", err)
	}
	if stores.db != nil || stores.breaker != nil {
		t.Error("no database expected")
	}
	if _, ok := stores.content.(recommend.EmptyStore); !ok {
		t.Errorf("content = %T, want EmptyStore", stores.content)
	}
	syns, err := stores.synonyms.Lookup(context.Background(), "salah")
	if err != nil || len(syns) == 0 {
		t.Errorf("built-in synonyms for salah = %v, %v", syns, err)
	}
}

func TestOpenContentStores_InMemoryWithBreaker(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Database: config.DatabaseConfig{Enabled: true, SeedDemo: true},
		Breaker:  config.BreakerConfig{Enabled: true, FailureThreshold: 2},
	}
	stores, err := openContentStores(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("openContentStores: %v", err)
	}
	t.Cleanup(func() { _ = stores.db.Close() })

	if stores.breaker == nil || stores.content != stores.breaker {
		t.Fatal("content store is not behind the breaker")
	}
	if _, direct := stores.synonyms.(*database.Store); direct {
		t.Error("synonym lookups bypass the breaker")
	}
	if got := stores.breaker.State(); got != "closed" {
		t.Errorf("breaker state = %q, want closed", got)
	}
	if err := stores.db.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestOpenHistoryStore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		backend string
		wantErr bool
	}{
		{"memory", false},
		{"badger", false},
		{"", false},
		{"redis", true},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			t.Parallel()
			store, err := openHistoryStore(&config.HistoryConfig{Backend: tt.backend})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("openHistoryStore: %v", err)
			}
			t.Cleanup(func() { _ = store.Close() })

			ctx := context.Background()
			if err := store.Record(ctx, history.Entry{Query: "ramadan duas", SeenAt: time.Now()}); err != nil {
				t.Fatalf("Record: %v", err)
			}
			got, err := store.Suggest(ctx, "ram", 5)
			if err != nil || len(got) != 1 {
				t.Errorf("Suggest = %v, %v", got, err)
			}
		})
	}
}

func TestRecorderConfig(t *testing.T) {
	t.Parallel()

	got := recorderConfig(&config.HistoryConfig{Burst: 7})
	if got.Burst != 7 || got.RatePerSecond != history.DefaultRecorderConfig().RatePerSecond {
		t.Errorf("recorderConfig = %+v", got)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
