// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package strategies

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/tomtom215/halaqa-discovery/internal/recommend"
)

// TrendingConfig tunes the trending strategy.
type TrendingConfig struct {
	// Window is the trailing period of views considered. Default: 7 days.
	Window time.Duration

	// DecayHours is the e-folding time of a view's weight. Default: 24.
	DecayHours float64

	// Now is the clock. Default: time.Now.
	Now func() time.Time
}

// DefaultTrendingConfig returns the default trending configuration.
func DefaultTrendingConfig() TrendingConfig {
	return TrendingConfig{
		Window:     7 * 24 * time.Hour,
		DecayHours: 24,
		Now:        time.Now,
	}
}

// Trending scores items by recent views, each view weighted by
// exp(-hoursSinceView/DecayHours). Ties break by raw view count.
type Trending struct {
	store  recommend.ContentStore
	config TrendingConfig
}

// NewTrending creates a trending strategy, filling zero config values with
// defaults.
func NewTrending(store recommend.ContentStore, cfg TrendingConfig) *Trending {
	def := DefaultTrendingConfig()
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.DecayHours <= 0 {
		cfg.DecayHours = def.DecayHours
	}
	if cfg.Now == nil {
		cfg.Now = def.Now
	}
	return &Trending{store: store, config: cfg}
}

// Name implements recommend.Strategy.
func (t *Trending) Name() string { return recommend.StrategyTrending }

// Applicable implements recommend.Strategy.
//
//nolint:gocritic // hugeParam: context is a value type by contract
func (t *Trending) Applicable(recommend.RecommendationContext) bool {
	return true
}

// RecencyWeight returns the weight of a view age old. Views from the future
// weigh as much as views made now.
func RecencyWeight(age time.Duration, decayHours float64) float64 {
	hours := age.Hours()
	if hours < 0 {
		hours = 0
	}
	return math.Exp(-hours / decayHours)
}

// Recommend implements recommend.Strategy.
//
//nolint:gocritic // hugeParam: context is a value type by contract
func (t *Trending) Recommend(ctx context.Context, rc recommend.RecommendationContext) ([]recommend.RecommendationResult, error) {
	now := t.config.Now()
	views, err := t.store.GetViewsSince(ctx, now.Add(-t.config.Window), rc.HalaqaIDs)
	if err != nil {
		return nil, fmt.Errorf("views since: %w", err)
	}

	index := make(map[string]int)
	cands := make([]candidate, 0)
	for _, v := range views {
		if v.ContentID == "" || v.ContentID == rc.ContentID {
			continue
		}
		i, ok := index[v.ContentID]
		if !ok {
			i = len(cands)
			index[v.ContentID] = i
			cands = append(cands, candidate{id: v.ContentID})
		}
		cands[i].score += RecencyWeight(now.Sub(v.ViewedAt), t.config.DecayHours)
		cands[i].count++
	}
	for i := range cands {
		cands[i].reason = plural(cands[i].count, "Trending: 1 recent view", "Trending: %d recent views")
	}

	rankCandidates(cands)
	// Headroom for records deleted since the views were recorded.
	if len(cands) > 2*rc.Limit {
		cands = cands[:2*rc.Limit]
	}
	return hydrate(ctx, t.store, cands, rc.ContentID, rc.Limit)
}
