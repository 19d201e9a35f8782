// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package recommend

import (
	"sort"
	"strings"
)

// ReasonSeparator joins the reasons of results merged by Fuse.
const ReasonSeparator = "; "

// Fuse merges strategy outputs by content id. Colliding results have their
// scores summed and their reasons joined with ReasonSeparator in the order the
// outputs are given. The inputs are not modified. The returned list is in
// first-seen order; callers sort it.
func Fuse(outputs ...[]RecommendationResult) []RecommendationResult {
	index := make(map[string]int)
	var merged []RecommendationResult

	for _, output := range outputs {
		for i := range output {
			res := output[i]
			pos, ok := index[res.ContentID]
			if !ok {
				index[res.ContentID] = len(merged)
				res.Tags = append([]string(nil), res.Tags...)
				merged = append(merged, res)
				continue
			}
			existing := &merged[pos]
			existing.Score += res.Score
			existing.Reason = joinReasons(existing.Reason, res.Reason)
		}
	}
	return merged
}

// AppendUnique appends results whose content id is not yet present. The
// first occurrence wins and scores are not summed.
func AppendUnique(base []RecommendationResult, extras ...[]RecommendationResult) []RecommendationResult {
	seen := make(map[string]struct{}, len(base))
	out := make([]RecommendationResult, 0, len(base))
	for i := range base {
		if _, dup := seen[base[i].ContentID]; dup {
			continue
		}
		seen[base[i].ContentID] = struct{}{}
		out = append(out, base[i])
	}
	for _, extra := range extras {
		for i := range extra {
			if _, dup := seen[extra[i].ContentID]; dup {
				continue
			}
			seen[extra[i].ContentID] = struct{}{}
			out = append(out, extra[i])
		}
	}
	return out
}

// RankAndTruncate sorts by score descending and cuts the list to limit. Equal
// scores order by content id so that the order strategies ran in never shows
// in the ranking.
func RankAndTruncate(results []RecommendationResult, limit int) []RecommendationResult {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ContentID < results[j].ContentID
	})
	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// filterOut drops every result whose content id is in exclude.
func filterOut(results []RecommendationResult, exclude map[string]struct{}) []RecommendationResult {
	if len(exclude) == 0 {
		return results
	}
	kept := results[:0:0]
	for i := range results {
		if _, drop := exclude[results[i].ContentID]; !drop {
			kept = append(kept, results[i])
		}
	}
	return kept
}

// sanitize enforces the per-strategy contract on a strategy's raw output:
// unique content ids, no anchor item, at most limit entries.
func sanitize(results []RecommendationResult, anchor string, limit int) []RecommendationResult {
	seen := make(map[string]struct{}, len(results))
	clean := make([]RecommendationResult, 0, len(results))
	for i := range results {
		id := results[i].ContentID
		if id == "" || (anchor != "" && id == anchor) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		clean = append(clean, results[i])
		if len(clean) == limit {
			break
		}
	}
	return clean
}

func joinReasons(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return strings.Join([]string{a, b}, ReasonSeparator)
	}
}
