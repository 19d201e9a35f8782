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

// Relationship types recognised by the structured strategy.
const (
	RelationPrerequisite = "prerequisite"
	RelationSeries       = "series"
	RelationContinuation = "continuation"
	RelationRelated      = "related"
	RelationCommentary   = "commentary"
	RelationTranslation  = "translation"
	RelationSimilar      = "similar"
)

var relationReasons = map[string]string{
	RelationPrerequisite: "Recommended before this content",
	RelationSeries:       "Part of the same series",
	RelationContinuation: "Continues where this content ends",
	RelationRelated:      "Related content",
	RelationCommentary:   "Commentary on this content",
	RelationTranslation:  "Also available in another language",
	RelationSimilar:      "Covers a similar topic",
}

// RelationReason returns the provenance phrase for a relationship type.
// Unknown types read as related content.
func RelationReason(relType string) string {
	if reason, ok := relationReasons[strings.ToLower(strings.TrimSpace(relType))]; ok {
		return reason
	}
	return relationReasons[RelationRelated]
}

// Structured follows curated relationship edges from the anchor item. Score
// is the edge strength.
type Structured struct {
	store recommend.ContentStore
}

// NewStructured creates a structured strategy.
func NewStructured(store recommend.ContentStore) *Structured {
	return &Structured{store: store}
}

// Name implements recommend.Strategy.
func (s *Structured) Name() string { return recommend.StrategyStructured }

// Applicable implements recommend.Strategy.
//
//nolint:gocritic // hugeParam: context is a value type by contract
func (s *Structured) Applicable(rc recommend.RecommendationContext) bool {
	return rc.ContentID != ""
}

// Recommend implements recommend.Strategy.
//
//nolint:gocritic // hugeParam: context is a value type by contract
func (s *Structured) Recommend(ctx context.Context, rc recommend.RecommendationContext) ([]recommend.RecommendationResult, error) {
	edges, err := s.store.GetRelationships(ctx, rc.ContentID, rc.Limit)
	if err != nil {
		return nil, fmt.Errorf("relationships: %w", err)
	}

	// Several edges may point at the same item; the strongest one wins.
	best := make(map[string]int, len(edges))
	cands := make([]candidate, 0, len(edges))
	for _, edge := range edges {
		if edge.RelatedID == "" || edge.RelatedID == rc.ContentID {
			continue
		}
		if i, seen := best[edge.RelatedID]; seen {
			if edge.Strength > cands[i].score {
				cands[i].score = edge.Strength
				cands[i].reason = RelationReason(edge.Type)
			}
			continue
		}
		best[edge.RelatedID] = len(cands)
		cands = append(cands, candidate{id: edge.RelatedID, score: edge.Strength, reason: RelationReason(edge.Type)})
	}

	rankCandidates(cands)
	return hydrate(ctx, s.store, cands, rc.ContentID, rc.Limit)
}
