// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package strategies

import (
	"context"
	"fmt"

	"github.com/tomtom215/halaqa-discovery/internal/recommend"
)

// HistoryConfig tunes the history strategy.
type HistoryConfig struct {
	// RecentViews is how many of the user's latest views seed the search.
	// Capped at 20.
	RecentViews int

	// MaxNeighbors bounds how many similar users are examined.
	MaxNeighbors int

	// NeighborViews is how many views are read per similar user.
	NeighborViews int
}

// DefaultHistoryConfig returns the default history configuration.
func DefaultHistoryConfig() HistoryConfig {
	return HistoryConfig{
		RecentViews:   20,
		MaxNeighbors:  100,
		NeighborViews: 50,
	}
}

// History recommends what users with an overlapping view history also
// viewed. The score is the number of such users who viewed the item.
type History struct {
	store  recommend.ContentStore
	config HistoryConfig
}

// NewHistory creates a history strategy, filling zero config values with
// defaults.
func NewHistory(store recommend.ContentStore, cfg HistoryConfig) *History {
	def := DefaultHistoryConfig()
	if cfg.RecentViews <= 0 || cfg.RecentViews > def.RecentViews {
		cfg.RecentViews = def.RecentViews
	}
	if cfg.MaxNeighbors <= 0 {
		cfg.MaxNeighbors = def.MaxNeighbors
	}
	if cfg.NeighborViews <= 0 {
		cfg.NeighborViews = def.NeighborViews
	}
	return &History{store: store, config: cfg}
}

// Name implements recommend.Strategy.
func (h *History) Name() string { return recommend.StrategyHistory }

// Applicable implements recommend.Strategy.
//
//nolint:gocritic // hugeParam: context is a value type by contract
func (h *History) Applicable(rc recommend.RecommendationContext) bool {
	return rc.UserID != ""
}

// Recommend implements recommend.Strategy.
//
//nolint:gocritic // hugeParam: context is a value type by contract
func (h *History) Recommend(ctx context.Context, rc recommend.RecommendationContext) ([]recommend.RecommendationResult, error) {
	views, err := h.store.GetRecentViews(ctx, rc.UserID, h.config.RecentViews)
	if err != nil {
		return nil, fmt.Errorf("recent views: %w", err)
	}
	if len(views) == 0 {
		return []recommend.RecommendationResult{}, nil
	}

	seeds := make([]string, 0, len(views))
	for _, v := range views {
		seeds = append(seeds, v.ContentID)
	}
	seeds = uniqueInOrder(seeds)
	own := toSet(seeds)

	neighbors, err := h.store.GetViewers(ctx, seeds, rc.UserID)
	if err != nil {
		return nil, fmt.Errorf("viewers: %w", err)
	}
	neighbors = uniqueInOrder(neighbors)
	if len(neighbors) > h.config.MaxNeighbors {
		neighbors = neighbors[:h.config.MaxNeighbors]
	}

	counts := make(map[string]int)
	for _, neighbor := range neighbors {
		if neighbor == rc.UserID {
			continue
		}
		theirs, err := h.store.GetRecentViews(ctx, neighbor, h.config.NeighborViews)
		if err != nil {
			return nil, fmt.Errorf("neighbor views: %w", err)
		}
		counted := make(map[string]struct{}, len(theirs))
		for _, v := range theirs {
			if _, mine := own[v.ContentID]; mine || v.ContentID == rc.ContentID {
				continue
			}
			if _, done := counted[v.ContentID]; done {
				continue
			}
			counted[v.ContentID] = struct{}{}
			counts[v.ContentID]++
		}
	}

	cands := make([]candidate, 0, len(counts))
	for id, n := range counts {
		cands = append(cands, candidate{
			id:     id,
			score:  float64(n),
			count:  n,
			reason: plural(n, "Viewed by a learner with similar history", "Viewed by %d learners with similar history"),
		})
	}
	rankCandidates(cands)
	// Headroom for records deleted since the views were recorded.
	if len(cands) > 2*rc.Limit {
		cands = cands[:2*rc.Limit]
	}
	return hydrate(ctx, h.store, cands, rc.ContentID, rc.Limit)
}
