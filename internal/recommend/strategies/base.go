// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package strategies

import (
	"context"
	"fmt"
	"sort"

	"github.com/tomtom215/halaqa-discovery/internal/recommend"
)

// candidate is a content id with a strategy-local score.
type candidate struct {
	id     string
	score  float64
	count  int
	reason string
}

// rankCandidates sorts by score, then raw count, then id, all descending
// except id.
func rankCandidates(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		if cands[i].count != cands[j].count {
			return cands[i].count > cands[j].count
		}
		return cands[i].id < cands[j].id
	})
}

// hydrate loads the records for ranked candidates and returns results in the
// candidates' order. Candidates whose record no longer exists are skipped,
// as is the anchor. At most limit results are returned.
func hydrate(ctx context.Context, store recommend.ContentStore, cands []candidate, anchor string, limit int) ([]recommend.RecommendationResult, error) {
	ids := make([]string, 0, len(cands))
	for _, c := range cands {
		if c.id != anchor {
			ids = append(ids, c.id)
		}
	}
	if len(ids) == 0 {
		return []recommend.RecommendationResult{}, nil
	}

	records, err := store.GetContentByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	byID := make(map[string]recommend.ContentRecord, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}

	results := make([]recommend.RecommendationResult, 0, min(max(limit, 0), len(cands)))
	for _, c := range cands {
		if len(results) == limit {
			break
		}
		rec, ok := byID[c.id]
		if !ok || c.id == anchor {
			continue
		}
		results = append(results, recommend.NewResult(rec, c.score, c.reason))
	}
	return results, nil
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// uniqueInOrder drops duplicate and empty ids, keeping first occurrences.
func uniqueInOrder(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return fmt.Sprintf(many, n)
}
