// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package strategies

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/halaqa-discovery/internal/recommend"
)

// FreshScore is the uniform score of every fresh item.
const FreshScore = 1.0

// FreshConfig tunes the fresh strategy.
type FreshConfig struct {
	// Window is how far back creation times count as fresh. Default: 30 days.
	Window time.Duration

	// Now is the clock. Default: time.Now.
	Now func() time.Time
}

// DefaultFreshConfig returns the default fresh configuration.
func DefaultFreshConfig() FreshConfig {
	return FreshConfig{Window: 30 * 24 * time.Hour, Now: time.Now}
}

// Fresh returns recently created items, newest first, for content that has
// no ranking signal yet.
type Fresh struct {
	store  recommend.ContentStore
	config FreshConfig
}

// NewFresh creates a fresh strategy, filling zero config values with defaults.
func NewFresh(store recommend.ContentStore, cfg FreshConfig) *Fresh {
	def := DefaultFreshConfig()
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.Now == nil {
		cfg.Now = def.Now
	}
	return &Fresh{store: store, config: cfg}
}

// Name implements recommend.Strategy.
func (f *Fresh) Name() string { return recommend.StrategyFresh }

// Applicable implements recommend.Strategy.
//
//nolint:gocritic // hugeParam: context is a value type by contract
func (f *Fresh) Applicable(recommend.RecommendationContext) bool {
	return true
}

// Recommend implements recommend.Strategy.
//
//nolint:gocritic // hugeParam: context is a value type by contract
func (f *Fresh) Recommend(ctx context.Context, rc recommend.RecommendationContext) ([]recommend.RecommendationResult, error) {
	records, err := f.store.GetRecentlyCreated(ctx, f.config.Now().Add(-f.config.Window), rc.Limit+1)
	if err != nil {
		return nil, fmt.Errorf("recently created: %w", err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	seen := make(map[string]struct{}, len(records))
	results := make([]recommend.RecommendationResult, 0, min(max(rc.Limit, 0), len(records)))
	for _, rec := range records {
		if len(results) == rc.Limit {
			break
		}
		if rec.ID == rc.ContentID {
			continue
		}
		if _, dup := seen[rec.ID]; dup {
			continue
		}
		seen[rec.ID] = struct{}{}
		results = append(results, recommend.NewResult(rec, FreshScore, "New this month"))
	}
	return results, nil
}
