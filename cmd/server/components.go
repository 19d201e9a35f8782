// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/tomtom215/halaqa-discovery/internal/config"
	"github.com/tomtom215/halaqa-discovery/internal/database"
	"github.com/tomtom215/halaqa-discovery/internal/history"
	"github.com/tomtom215/halaqa-discovery/internal/query"
	"github.com/tomtom215/halaqa-discovery/internal/recommend"
	"github.com/tomtom215/halaqa-discovery/internal/recommend/strategies"
)

// historyStore is what the server needs from a history backend.
type historyStore interface {
	history.Store
	io.Closer
}

// memoryHistory gives the in-memory store a no-op Close.
type memoryHistory struct {
	*history.MemoryStore
}

func (memoryHistory) Close() error { return nil }

// contentStores groups the content backends chosen from configuration.
// db and breaker are nil when the database is disabled.
type contentStores struct {
	db       *database.Store
	breaker  *database.BreakerStore
	content  recommend.ContentStore
	synonyms query.SynonymSource
}

// openContentStores opens DuckDB when enabled, seeds it on request and puts
// the circuit breaker in front of it. With the database disabled the service
// runs on the built-in synonym table and an empty catalogue.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func openContentStores(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*contentStores, error) {
	if !cfg.Database.Enabled {
		logger.Warn().Msg("database disabled (DATABASE_ENABLED=false): serving built-in synonyms and no content")
		return &contentStores{
			content:  recommend.EmptyStore{},
			synonyms: query.DefaultSynonyms(),
		}, nil
	}

	db, err := database.Open(ctx, &cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	if cfg.Database.SeedDemo {
		if err := db.SeedDemo(ctx); err != nil {
			return nil, errors.Join(fmt.Errorf("seed demo data: %w", err), db.Close())
		}
		logger.Info().Msg("demo catalogue loaded (SEED_DEMO_DATA=true)")
	}

	stores := &contentStores{db: db, content: db, synonyms: db}
	if cfg.Breaker.Enabled {
		stores.breaker = database.NewBreakerStore(db, breakerConfig(&cfg.Breaker), logger)
		stores.content = stores.breaker
		stores.synonyms = stores.breaker.Synonyms(db)
	}
	return stores, nil
}

func breakerConfig(c *config.BreakerConfig) database.BreakerConfig {
	bc := database.DefaultBreakerConfig()
	if c.MaxRequests > 0 {
		bc.MaxRequests = c.MaxRequests
	}
	if c.FailureThreshold > 0 {
		bc.FailureThreshold = c.FailureThreshold
	}
	if c.Timeout > 0 {
		bc.Timeout = c.Timeout
	}
	bc.Interval = c.Interval
	return bc
}

// openHistoryStore opens the configured query history backend.
func openHistoryStore(cfg *config.HistoryConfig) (historyStore, error) {
	switch cfg.Backend {
	case "memory":
		return memoryHistory{history.NewMemoryStore()}, nil
	case "badger", "":
		return history.OpenBadgerStore(cfg.Path, cfg.SyncWrites)
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.Backend)
	}
}

func recorderConfig(c *config.HistoryConfig) history.RecorderConfig {
	rc := history.DefaultRecorderConfig()
	if c.RatePerSecond > 0 {
		rc.RatePerSecond = c.RatePerSecond
	}
	if c.Burst > 0 {
		rc.Burst = c.Burst
	}
	if c.Buffer > 0 {
		rc.Buffer = c.Buffer
	}
	if c.WriteTimeout > 0 {
		rc.WriteTimeout = c.WriteTimeout
	}
	return rc
}

// queryConfig maps the query section onto the processor config. Zero
// values keep the processor defaults.
func queryConfig(c *config.QueryConfig) query.Config {
	qc := query.DefaultConfig()
	setPositive(&qc.FuzzyThreshold, c.FuzzyThreshold)
	setPositive(&qc.MaxOptimizedTerms, c.MaxOptimizedTerms)
	setPositive(&qc.MaxSynonymsPerTerm, c.MaxSynonymsPerTerm)
	setPositive(&qc.SynonymCacheSize, c.SynonymCacheSize)
	setPositive(&qc.SynonymCacheTTL, c.SynonymCacheTTL)
	setPositive(&qc.SynonymTimeout, c.SynonymTimeout)
	setPositive(&qc.SynonymConcurrency, c.SynonymConcurrency)
	setPositive(&qc.MinSuggestPrefix, c.MinSuggestPrefix)
	setPositive(&qc.DefaultSuggestLimit, c.DefaultSuggestLimit)
	setPositive(&qc.MaxSuggestLimit, c.MaxSuggestLimit)
	return qc
}

// engineConfig maps the recommend section onto the engine config. The
// bucket shares are copied as-is so that 0 can disable a bucket.
func engineConfig(c *config.RecommendConfig) recommend.Config {
	ec := recommend.DefaultConfig()
	if len(c.Combined) > 0 {
		ec.Combined = append([]string(nil), c.Combined...)
	}
	ec.Personalized.TrendingShare = c.TrendingShare
	ec.Personalized.EditorialShare = c.EditorialShare
	setPositive(&ec.Limits.DefaultLimit, c.DefaultLimit)
	setPositive(&ec.Limits.MaxLimit, c.MaxLimit)
	setPositive(&ec.Limits.StrategyTimeout, c.StrategyTimeout)
	setPositive(&ec.Limits.MaxConcurrency, c.MaxConcurrency)
	ec.Cache.TTL = c.CacheTTL
	setPositive(&ec.Cache.MaxEntries, c.CacheMaxEntries)
	return ec
}

// newEngine builds the fusion engine and registers every strategy.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func newEngine(c *config.RecommendConfig, store recommend.ContentStore, logger zerolog.Logger) (*recommend.Engine, error) {
	engine, err := recommend.NewEngine(engineConfig(c), store, logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	trending := strategies.DefaultTrendingConfig()
	setPositive(&trending.Window, c.TrendingWindow)
	setPositive(&trending.DecayHours, c.TrendingDecay)
	fresh := strategies.DefaultFreshConfig()
	setPositive(&fresh.Window, c.FreshWindow)

	for _, s := range []recommend.Strategy{
		strategies.NewHistory(store, strategies.DefaultHistoryConfig()),
		strategies.NewTag(store),
		strategies.NewStructured(store),
		strategies.NewSession(store, strategies.DefaultSessionConfig()),
		strategies.NewTrending(store, trending),
		strategies.NewEditorial(store),
		strategies.NewFresh(store, fresh),
	} {
		engine.RegisterStrategy(s)
	}
	return engine, nil
}

type positive interface {
	~int | ~int64 | ~float64
}

func setPositive[T positive](dst *T, v T) {
	if v > 0 {
		*dst = v
	}
}
