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

// SessionConfig tunes the session strategy.
type SessionConfig struct {
	// MinOverlap is how many session items another user must have viewed.
	// Default: 2.
	MinOverlap int

	// MaxNeighbors bounds how many other users are examined.
	MaxNeighbors int

	// SequenceLength is how many views are read per other user.
	SequenceLength int
}

// DefaultSessionConfig returns the default session configuration.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		MinOverlap:     2,
		MaxNeighbors:   100,
		SequenceLength: 100,
	}
}

// Session recommends what learners who walked a similar path viewed next.
// Another user qualifies when their history contains at least MinOverlap of
// the session's items; every item they viewed directly after a session item
// (and not itself in the session) gains one point per such user.
type Session struct {
	store  recommend.ContentStore
	config SessionConfig
}

// NewSession creates a session strategy, filling zero config values with
// defaults.
func NewSession(store recommend.ContentStore, cfg SessionConfig) *Session {
	def := DefaultSessionConfig()
	if cfg.MinOverlap <= 0 {
		cfg.MinOverlap = def.MinOverlap
	}
	if cfg.MaxNeighbors <= 0 {
		cfg.MaxNeighbors = def.MaxNeighbors
	}
	if cfg.SequenceLength <= 0 {
		cfg.SequenceLength = def.SequenceLength
	}
	return &Session{store: store, config: cfg}
}

// Name implements recommend.Strategy.
func (s *Session) Name() string { return recommend.StrategySession }

// Applicable implements recommend.Strategy.
//
//nolint:gocritic // hugeParam: context is a value type by contract
func (s *Session) Applicable(rc recommend.RecommendationContext) bool {
	return len(uniqueInOrder(rc.SessionHistory)) >= s.config.MinOverlap
}

// Recommend implements recommend.Strategy.
//
//nolint:gocritic // hugeParam: context is a value type by contract
func (s *Session) Recommend(ctx context.Context, rc recommend.RecommendationContext) ([]recommend.RecommendationResult, error) {
	sessionItems := uniqueInOrder(rc.SessionHistory)
	if len(sessionItems) < s.config.MinOverlap {
		return []recommend.RecommendationResult{}, nil
	}
	inSession := toSet(sessionItems)

	others, err := s.store.GetViewers(ctx, sessionItems, rc.UserID)
	if err != nil {
		return nil, fmt.Errorf("viewers: %w", err)
	}
	others = uniqueInOrder(others)
	if len(others) > s.config.MaxNeighbors {
		others = others[:s.config.MaxNeighbors]
	}

	counts := make(map[string]int)
	for _, other := range others {
		if other == rc.UserID {
			continue
		}
		views, err := s.store.GetRecentViews(ctx, other, s.config.SequenceLength)
		if err != nil {
			return nil, fmt.Errorf("sequence: %w", err)
		}

		// Views arrive newest first; walk them oldest first.
		sequence := make([]string, len(views))
		for i, v := range views {
			sequence[len(views)-1-i] = v.ContentID
		}

		overlap := make(map[string]struct{})
		for _, id := range sequence {
			if _, ok := inSession[id]; ok {
				overlap[id] = struct{}{}
			}
		}
		if len(overlap) < s.config.MinOverlap {
			continue
		}

		next := make(map[string]struct{})
		for i := 0; i+1 < len(sequence); i++ {
			if _, ok := inSession[sequence[i]]; !ok {
				continue
			}
			following := sequence[i+1]
			if _, ok := inSession[following]; ok || following == rc.ContentID || following == "" {
				continue
			}
			next[following] = struct{}{}
		}
		for id := range next {
			counts[id]++
		}
	}

	cands := make([]candidate, 0, len(counts))
	for id, n := range counts {
		cands = append(cands, candidate{
			id:     id,
			score:  float64(n),
			count:  n,
			reason: plural(n, "Viewed next by a learner on a similar path", "Viewed next by %d learners on a similar path"),
		})
	}
	rankCandidates(cands)
	if len(cands) > 2*rc.Limit {
		cands = cands[:2*rc.Limit]
	}
	return hydrate(ctx, s.store, cands, rc.ContentID, rc.Limit)
}
