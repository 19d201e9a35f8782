// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/halaqa-discovery/internal/metrics"
	"github.com/tomtom215/halaqa-discovery/internal/query"
	"github.com/tomtom215/halaqa-discovery/internal/recommend"
)

// BreakerConfig configures the circuit breaker in front of a content store.
type BreakerConfig struct {
	Name string

	// MaxRequests is the number of trial calls allowed while half-open.
	MaxRequests uint32

	// Interval is the cyclic period for clearing counts while closed. Zero
	// never clears.
	Interval time.Duration

	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration

	// FailureThreshold is the number of consecutive failures that trips it.
	FailureThreshold uint32
}

// DefaultBreakerConfig returns the production defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "content-store",
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// BreakerStore wraps a recommend.ContentStore with a circuit breaker. While
// the breaker is open, calls fail fast with recommend.ErrStoreUnavailable and
// the strategies depending on them contribute nothing.
type BreakerStore struct {
	next recommend.ContentStore
	cb   *gobreaker.CircuitBreaker[any]
}

// NewBreakerStore wraps next.
//
//nolint:gocritic // hugeParam: logger is copied once at construction
func NewBreakerStore(next recommend.ContentStore, cfg BreakerConfig, logger zerolog.Logger) *BreakerStore {
	if cfg.Name == "" {
		cfg.Name = DefaultBreakerConfig().Name
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = DefaultBreakerConfig().FailureThreshold
	}
	log := logger.With().Str("component", "database").Logger()

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.BreakerState.WithLabelValues(name).Set(stateValue(to))
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("content store circuit breaker changed state")
		},
		// A caller giving up is not a store failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}
	metrics.BreakerState.WithLabelValues(cfg.Name).Set(stateValue(gobreaker.StateClosed))

	return &BreakerStore{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[any](settings),
	}
}

// State returns the current breaker state name.
func (b *BreakerStore) State() string {
	return b.cb.State().String()
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// execute runs fn through the breaker and converts rejections into
// recommend.ErrStoreUnavailable.
func execute[T any](b *BreakerStore, fn func() (T, error)) (T, error) {
	res, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("%w: %w", recommend.ErrStoreUnavailable, err)
		}
		return zero, err
	}
	v, _ := res.(T)
	return v, nil
}

// GetRecentViews implements recommend.ContentStore.
func (b *BreakerStore) GetRecentViews(ctx context.Context, userID string, limit int) ([]recommend.View, error) {
	return execute(b, func() ([]recommend.View, error) {
		return b.next.GetRecentViews(ctx, userID, limit)
	})
}

// GetViewedAmong implements recommend.ContentStore.
func (b *BreakerStore) GetViewedAmong(ctx context.Context, userID string, contentIDs []string) ([]string, error) {
	return execute(b, func() ([]string, error) {
		return b.next.GetViewedAmong(ctx, userID, contentIDs)
	})
}

// GetViewers implements recommend.ContentStore.
func (b *BreakerStore) GetViewers(ctx context.Context, contentIDs []string, excludeUserID string) ([]string, error) {
	return execute(b, func() ([]string, error) {
		return b.next.GetViewers(ctx, contentIDs, excludeUserID)
	})
}

// GetContentByIDs implements recommend.ContentStore.
func (b *BreakerStore) GetContentByIDs(ctx context.Context, ids []string) ([]recommend.ContentRecord, error) {
	return execute(b, func() ([]recommend.ContentRecord, error) {
		return b.next.GetContentByIDs(ctx, ids)
	})
}

// GetContentByTagOverlap implements recommend.ContentStore.
func (b *BreakerStore) GetContentByTagOverlap(ctx context.Context, tags []string, excludeID string, limit int) ([]recommend.ContentRecord, error) {
	return execute(b, func() ([]recommend.ContentRecord, error) {
		return b.next.GetContentByTagOverlap(ctx, tags, excludeID, limit)
	})
}

// GetRelationships implements recommend.ContentStore.
func (b *BreakerStore) GetRelationships(ctx context.Context, contentID string, limit int) ([]recommend.Relationship, error) {
	return execute(b, func() ([]recommend.Relationship, error) {
		return b.next.GetRelationships(ctx, contentID, limit)
	})
}

// GetViewsSince implements recommend.ContentStore.
func (b *BreakerStore) GetViewsSince(ctx context.Context, since time.Time, halaqaIDs []string) ([]recommend.View, error) {
	return execute(b, func() ([]recommend.View, error) {
		return b.next.GetViewsSince(ctx, since, halaqaIDs)
	})
}

// GetEditorialPicks implements recommend.ContentStore.
func (b *BreakerStore) GetEditorialPicks(ctx context.Context, category string, limit int) ([]recommend.EditorialPick, error) {
	return execute(b, func() ([]recommend.EditorialPick, error) {
		return b.next.GetEditorialPicks(ctx, category, limit)
	})
}

// GetRecentlyCreated implements recommend.ContentStore.
func (b *BreakerStore) GetRecentlyCreated(ctx context.Context, since time.Time, limit int) ([]recommend.ContentRecord, error) {
	return execute(b, func() ([]recommend.ContentRecord, error) {
		return b.next.GetRecentlyCreated(ctx, since, limit)
	})
}

// Synonyms returns src guarded by the same breaker, so a store outage seen by
// either content reads or synonym lookups fails both fast.
func (b *BreakerStore) Synonyms(src query.SynonymSource) query.SynonymSource {
	return &breakerSynonyms{breaker: b, next: src}
}

type breakerSynonyms struct {
	breaker *BreakerStore
	next    query.SynonymSource
}

func (s *breakerSynonyms) Lookup(ctx context.Context, term string) ([]string, error) {
	return execute(s.breaker, func() ([]string, error) {
		return s.next.Lookup(ctx, term)
	})
}

func (s *breakerSynonyms) LookupPartial(ctx context.Context, term string) ([]string, error) {
	return execute(s.breaker, func() ([]string, error) {
		return s.next.LookupPartial(ctx, term)
	})
}

var (
	_ recommend.ContentStore = (*BreakerStore)(nil)
	_ query.SynonymSource    = (*breakerSynonyms)(nil)
)
