// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package query

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/halaqa-discovery/internal/cache"
	"github.com/tomtom215/halaqa-discovery/internal/metrics"
)

// SynonymSource resolves a term to its synonyms. Implementations must be safe
// for concurrent use.
type SynonymSource interface {
	// Lookup returns the synonyms of an exact term.
	Lookup(ctx context.Context, term string) ([]string, error)

	// LookupPartial returns synonyms of every entry whose term contains, or
	// is contained in, term.
	LookupPartial(ctx context.Context, term string) ([]string, error)
}

// StaticSynonyms is an in-memory SynonymSource. Keys are lower-case.
type StaticSynonyms map[string][]string

// DefaultSynonyms returns the built-in synonym table for common Islamic
// studies vocabulary and transliteration variants.
func DefaultSynonyms() StaticSynonyms {
	return StaticSynonyms{
		"quran":      {"qur'an", "koran", "mushaf"},
		"hadith":     {"hadeeth", "sunnah", "narration"},
		"prayer":     {"salah", "salat", "namaz"},
		"salah":      {"prayer", "salat", "namaz"},
		"fasting":    {"sawm", "siyam", "roza"},
		"ramadan":    {"ramadhan", "ramzan"},
		"charity":    {"zakat", "sadaqah"},
		"zakat":      {"zakah", "charity"},
		"pilgrimage": {"hajj", "umrah"},
		"hajj":       {"pilgrimage"},
		"dua":        {"supplication", "du'a"},
		"prophet":    {"rasul", "messenger", "nabi"},
		"fiqh":       {"jurisprudence"},
		"aqeedah":    {"aqidah", "creed", "belief"},
		"tafsir":     {"tafseer", "exegesis"},
		"seerah":     {"sirah", "biography"},
		"mosque":     {"masjid"},
		"god":        {"allah"},
		"ablution":   {"wudu", "wudhu"},
		"wudu":       {"ablution", "wudhu"},
	}
}

// Lookup implements SynonymSource.
func (s StaticSynonyms) Lookup(_ context.Context, term string) ([]string, error) {
	return append([]string(nil), s[strings.ToLower(term)]...), nil
}

// LookupPartial implements SynonymSource. Matches are merged in key order.
func (s StaticSynonyms) LookupPartial(_ context.Context, term string) ([]string, error) {
	term = strings.ToLower(term)
	keys := make([]string, 0, len(s))
	for key := range s {
		if strings.Contains(key, term) || strings.Contains(term, key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var out []string
	for _, key := range keys {
		out = append(out, s[key]...)
	}
	return out, nil
}

// synonymExpander resolves synonyms for many terms concurrently through a
// cache. A failing lookup costs only its own term.
type synonymExpander struct {
	source      SynonymSource
	cache       *cache.LRU[string, []string]
	maxPerTerm  int
	concurrency int
	timeout     time.Duration
	logger      zerolog.Logger
}

// expand returns term -> synonyms for every term that has at least one.
func (x *synonymExpander) expand(ctx context.Context, terms []string) map[string][]string {
	found := make([][]string, len(terms))

	var g errgroup.Group
	g.SetLimit(x.concurrency)
	for i, term := range terms {
		g.Go(func() error {
			syns, err := x.lookup(ctx, term)
			if err != nil {
				metrics.SynonymLookupFailures.Inc()
				x.logger.Warn().Err(err).Str("term", term).Msg("synonym lookup failed, term not expanded")
				return nil
			}
			found[i] = syns
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string][]string, len(terms))
	for i, term := range terms {
		if len(found[i]) > 0 {
			out[term] = found[i]
		}
	}
	return out
}

func (x *synonymExpander) lookup(ctx context.Context, term string) (syns []string, err error) {
	if x.source == nil {
		return nil, nil
	}
	if cached, ok := x.cache.Get(term); ok {
		return cached, nil
	}

	defer func() {
		if r := recover(); r != nil {
			syns, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	lookupCtx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	raw, err := x.source.Lookup(lookupCtx, term)
	if err != nil {
		return nil, fmt.Errorf("exact lookup: %w", err)
	}
	if len(raw) == 0 {
		if raw, err = x.source.LookupPartial(lookupCtx, term); err != nil {
			return nil, fmt.Errorf("partial lookup: %w", err)
		}
	}

	syns = cleanSynonyms(term, raw, x.maxPerTerm)
	x.cache.Set(term, syns)
	return syns, nil
}

// cleanSynonyms lower-cases, trims and deduplicates raw, dropping the term
// itself, and keeps at most limit entries.
func cleanSynonyms(term string, raw []string, limit int) []string {
	seen := map[string]struct{}{term: {}}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out
}
