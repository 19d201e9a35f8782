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

// DefaultEditorialReason is used for picks entered without a reason.
const DefaultEditorialReason = "Editor's pick"

// Editorial returns curator picks, optionally filtered by the context
// category. Score is the pick priority.
type Editorial struct {
	store recommend.ContentStore
}

// NewEditorial creates an editorial strategy.
func NewEditorial(store recommend.ContentStore) *Editorial {
	return &Editorial{store: store}
}

// Name implements recommend.Strategy.
func (e *Editorial) Name() string { return recommend.StrategyEditorial }

// Applicable implements recommend.Strategy.
//
//nolint:gocritic // hugeParam: context is a value type by contract
func (e *Editorial) Applicable(recommend.RecommendationContext) bool {
	return true
}

// Recommend implements recommend.Strategy.
//
//nolint:gocritic // hugeParam: context is a value type by contract
func (e *Editorial) Recommend(ctx context.Context, rc recommend.RecommendationContext) ([]recommend.RecommendationResult, error) {
	// Headroom covers the anchor and picks whose content was removed.
	picks, err := e.store.GetEditorialPicks(ctx, rc.Category, 2*rc.Limit+1)
	if err != nil {
		return nil, fmt.Errorf("editorial picks: %w", err)
	}

	seen := make(map[string]struct{}, len(picks))
	cands := make([]candidate, 0, len(picks))
	for _, pick := range picks {
		if pick.ContentID == rc.ContentID {
			continue
		}
		if _, dup := seen[pick.ContentID]; dup {
			continue
		}
		seen[pick.ContentID] = struct{}{}
		reason := pick.Reason
		if reason == "" {
			reason = DefaultEditorialReason
		}
		cands = append(cands, candidate{id: pick.ContentID, score: pick.Priority, reason: reason})
	}

	rankCandidates(cands)
	return hydrate(ctx, e.store, cands, rc.ContentID, rc.Limit)
}
