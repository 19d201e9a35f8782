// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package strategies

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/halaqa-discovery/internal/recommend"
)

// SameCategoryBonus is added to the tag score of items sharing the anchor's
// category.
const SameCategoryBonus = 2.0

// Tag recommends items whose tags intersect the anchor item's tags.
// Score is the number of shared tags plus SameCategoryBonus for a category
// match.
type Tag struct {
	store recommend.ContentStore

	// candidateFactor widens the store query so that ranking has room to
	// reorder before the limit applies.
	candidateFactor int
}

// NewTag creates a tag strategy.
func NewTag(store recommend.ContentStore) *Tag {
	return &Tag{store: store, candidateFactor: 5}
}

// Name implements recommend.Strategy.
func (t *Tag) Name() string { return recommend.StrategyTag }

// Applicable implements recommend.Strategy.
//
//nolint:gocritic // hugeParam: context is a value type by contract
func (t *Tag) Applicable(rc recommend.RecommendationContext) bool {
	return rc.ContentID != ""
}

// Recommend implements recommend.Strategy.
//
//nolint:gocritic // hugeParam: context is a value type by contract
func (t *Tag) Recommend(ctx context.Context, rc recommend.RecommendationContext) ([]recommend.RecommendationResult, error) {
	anchors, err := t.store.GetContentByIDs(ctx, []string{rc.ContentID})
	if err != nil {
		return nil, fmt.Errorf("anchor: %w", err)
	}
	if len(anchors) == 0 || len(anchors[0].Tags) == 0 {
		return []recommend.RecommendationResult{}, nil
	}
	anchor := anchors[0]

	anchorTags := make(map[string]struct{}, len(anchor.Tags))
	for _, tag := range anchor.Tags {
		anchorTags[strings.ToLower(strings.TrimSpace(tag))] = struct{}{}
	}

	pool, err := t.store.GetContentByTagOverlap(ctx, anchor.Tags, anchor.ID, rc.Limit*t.candidateFactor)
	if err != nil {
		return nil, fmt.Errorf("tag overlap: %w", err)
	}

	ranked := make([]candidate, 0, len(pool))
	records := make(map[string]recommend.ContentRecord, len(pool))
	for _, rec := range pool {
		if rec.ID == anchor.ID {
			continue
		}
		if _, dup := records[rec.ID]; dup {
			continue
		}

		var shared []string
		for _, tag := range rec.Tags {
			if _, ok := anchorTags[strings.ToLower(strings.TrimSpace(tag))]; ok {
				shared = append(shared, tag)
			}
		}
		score := float64(len(shared))
		sameCategory := anchor.Category != "" && strings.EqualFold(anchor.Category, rec.Category)
		if sameCategory {
			score += SameCategoryBonus
		}
		if score == 0 {
			continue
		}

		reason := "Same category"
		if len(shared) > 0 {
			reason = "Similar tags: " + strings.Join(shared, ", ")
		}
		records[rec.ID] = rec
		ranked = append(ranked, candidate{id: rec.ID, score: score, count: int(rec.ViewCount), reason: reason})
	}

	rankCandidates(ranked)
	results := make([]recommend.RecommendationResult, 0, min(max(rc.Limit, 0), len(ranked)))
	for _, c := range ranked {
		if len(results) == rc.Limit {
			break
		}
		results = append(results, recommend.NewResult(records[c.id], c.score, c.reason))
	}
	return results, nil
}
