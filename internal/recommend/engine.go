// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/halaqa-discovery/internal/cache"
	"github.com/tomtom215/halaqa-discovery/internal/logging"
	"github.com/tomtom215/halaqa-discovery/internal/metrics"
)

// Engine runs registered strategies and fuses their output.
type Engine struct {
	config Config
	store  ContentStore
	logger zerolog.Logger

	stratMu    sync.RWMutex
	strategies map[string]Strategy

	results *cache.LRU[string, []RecommendationResult]
}

// task is one strategy dispatched for a request.
type task struct {
	strategy Strategy
	rc       RecommendationContext
}

// taskResult is the isolated outcome of one task.
type taskResult struct {
	name    string
	results []RecommendationResult
	err     error
}

// NewEngine creates an engine over store. Strategies are added with
// RegisterStrategy.
//
//nolint:gocritic // hugeParam: config and logger are copied once at construction
func NewEngine(cfg Config, store ContentStore, logger zerolog.Logger) (*Engine, error) {
	if store == nil {
		return nil, errors.New("recommend: content store is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config:     cfg.Clone(),
		store:      store,
		logger:     logger.With().Str("component", "recommend").Logger(),
		strategies: make(map[string]Strategy),
	}
	if cfg.Cache.TTL > 0 {
		e.results = cache.NewLRU[string, []RecommendationResult](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	return e, nil
}

// RegisterStrategy adds or replaces a strategy under its name.
func (e *Engine) RegisterStrategy(s Strategy) {
	e.stratMu.Lock()
	defer e.stratMu.Unlock()
	e.strategies[s.Name()] = s
	e.logger.Debug().Str("strategy", s.Name()).Msg("registered strategy")
}

// Strategies returns the registered strategy names in combined dispatch
// order, followed by any others.
func (e *Engine) Strategies() []string {
	e.stratMu.RLock()
	defer e.stratMu.RUnlock()

	names := make([]string, 0, len(e.strategies))
	listed := make(map[string]struct{}, len(e.config.Combined))
	for _, name := range e.config.Combined {
		listed[name] = struct{}{}
		if _, ok := e.strategies[name]; ok {
			names = append(names, name)
		}
	}
	for _, name := range []string{e.config.Personalized.TrendingStrategy, e.config.Personalized.EditorialStrategy, StrategyFresh} {
		if _, ok := listed[name]; ok {
			continue
		}
		if _, ok := e.strategies[name]; ok {
			listed[name] = struct{}{}
			names = append(names, name)
		}
	}
	var rest []string
	for name := range e.strategies {
		if _, ok := listed[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func (e *Engine) strategy(name string) (Strategy, bool) {
	e.stratMu.RLock()
	defer e.stratMu.RUnlock()
	s, ok := e.strategies[name]
	return s, ok
}

// Run executes a single named strategy with the same isolation as a fused
// run. Only an unknown name is reported as an error.
//
//nolint:gocritic // hugeParam: context is a value type by contract
func (e *Engine) Run(ctx context.Context, name string, rc RecommendationContext) ([]RecommendationResult, error) {
	s, ok := e.strategy(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
	}
	rc = e.normalize(rc)
	if !s.Applicable(rc) {
		return []RecommendationResult{}, nil
	}
	out := e.runTasks(ctx, []task{{strategy: s, rc: rc}})
	return out[0].results, nil
}

// GetCombined runs every applicable combined strategy concurrently and fuses
// the results. It never fails; an empty list is a valid answer.
//
//nolint:gocritic // hugeParam: context is a value type by contract
func (e *Engine) GetCombined(ctx context.Context, rc RecommendationContext) []RecommendationResult {
	rc = e.normalize(rc)

	key := rc.cacheKey()
	if e.results != nil {
		if cached, ok := e.results.Get(key); ok {
			metrics.RecordCacheLookup(true)
			return cloneResults(cached)
		}
		metrics.RecordCacheLookup(false)
	}

	fused := e.combine(ctx, rc)
	metrics.RecordFusion("combined", len(fused))

	if e.results != nil {
		e.results.Set(key, cloneResults(fused))
	}
	return fused
}

// GetPersonalized returns the combined list with trending and editorial
// buckets appended (first occurrence wins), re-ranked and truncated.
//
//nolint:gocritic // hugeParam: context is a value type by contract
func (e *Engine) GetPersonalized(ctx context.Context, rc RecommendationContext) []RecommendationResult {
	rc = e.normalize(rc)

	var (
		combined []RecommendationResult
		extras   []taskResult
	)
	var g errgroup.Group
	g.Go(func() error {
		combined = e.GetCombined(ctx, rc)
		return nil
	})
	g.Go(func() error {
		extras = e.runTasks(ctx, e.personalizedTasks(rc))
		return nil
	})
	_ = g.Wait()

	buckets := make([][]RecommendationResult, 0, len(extras))
	for _, extra := range extras {
		buckets = append(buckets, extra.results)
	}
	merged := AppendUnique(combined, buckets...)

	if rc.ExcludeViewed && rc.UserID != "" && len(merged) > len(combined) {
		merged = filterOut(merged, e.viewedAmong(ctx, rc.UserID, merged))
	}

	ranked := RankAndTruncate(merged, rc.Limit)
	metrics.RecordFusion("personalized", len(ranked))
	return ranked
}

// combine selects, runs and fuses the combined strategies.
//
//nolint:gocritic // hugeParam: context is a value type by contract
func (e *Engine) combine(ctx context.Context, rc RecommendationContext) []RecommendationResult {
	tasks := e.combinedTasks(rc)
	if len(tasks) == 0 {
		return []RecommendationResult{}
	}

	outcomes := e.runTasks(ctx, tasks)
	outputs := make([][]RecommendationResult, len(outcomes))
	for i, outcome := range outcomes {
		outputs[i] = outcome.results
	}
	fused := Fuse(outputs...)

	if rc.ExcludeViewed && rc.UserID != "" {
		fused = filterOut(fused, e.viewedAmong(ctx, rc.UserID, fused))
	}
	return RankAndTruncate(fused, rc.Limit)
}

//nolint:gocritic // hugeParam: context is a value type by contract
func (e *Engine) combinedTasks(rc RecommendationContext) []task {
	e.stratMu.RLock()
	defer e.stratMu.RUnlock()

	tasks := make([]task, 0, len(e.config.Combined))
	for _, name := range e.config.Combined {
		s, ok := e.strategies[name]
		if !ok || !s.Applicable(rc) {
			continue
		}
		tasks = append(tasks, task{strategy: s, rc: rc})
	}
	return tasks
}

//nolint:gocritic // hugeParam: context is a value type by contract
func (e *Engine) personalizedTasks(rc RecommendationContext) []task {
	p := e.config.Personalized
	buckets := []struct {
		name  string
		share float64
	}{
		{p.TrendingStrategy, p.TrendingShare},
		{p.EditorialStrategy, p.EditorialShare},
	}

	tasks := make([]task, 0, len(buckets))
	for _, b := range buckets {
		if b.share <= 0 {
			continue
		}
		s, ok := e.strategy(b.name)
		if !ok {
			continue
		}
		bucketRC := rc
		bucketRC.Limit = int(math.Ceil(float64(rc.Limit) * b.share))
		if !s.Applicable(bucketRC) {
			continue
		}
		tasks = append(tasks, task{strategy: s, rc: bucketRC})
	}
	return tasks
}

// runTasks executes tasks concurrently, bounded by Limits.MaxConcurrency, and
// waits for all of them. Results are returned in task order. A task that
// errors, times out or panics yields an empty result and never affects its
// siblings.
func (e *Engine) runTasks(ctx context.Context, tasks []task) []taskResult {
	out := make([]taskResult, len(tasks))

	var g errgroup.Group
	g.SetLimit(e.config.Limits.MaxConcurrency)
	for i := range tasks {
		g.Go(func() error {
			out[i] = e.runTask(ctx, tasks[i])
			return nil
		})
	}
	_ = g.Wait()

	for _, res := range out {
		if res.err != nil {
			e.logFailure(ctx, res)
		}
	}
	return out
}

//nolint:gocritic // hugeParam: task carries the context by value
func (e *Engine) runTask(ctx context.Context, t task) (res taskResult) {
	name := t.strategy.Name()
	res.name = name
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			res.results = []RecommendationResult{}
			res.err = &StrategyError{Strategy: name, Err: fmt.Errorf("panic: %v", r)}
		}
		metrics.RecordStrategyRun(name, time.Since(start), len(res.results), failureReason(res.err))
	}()

	taskCtx, cancel := context.WithTimeout(ctx, e.config.Limits.StrategyTimeout)
	defer cancel()

	results, err := t.strategy.Recommend(taskCtx, t.rc)
	if err == nil && taskCtx.Err() != nil {
		err = taskCtx.Err()
	}
	if err != nil {
		return taskResult{name: name, results: []RecommendationResult{}, err: &StrategyError{Strategy: name, Err: err}}
	}
	return taskResult{name: name, results: sanitize(results, t.rc.ContentID, t.rc.Limit)}
}

func (e *Engine) logFailure(ctx context.Context, res taskResult) {
	event := e.logger.Warn().Str("strategy", res.name).Err(res.err)
	if id := logging.RequestIDFromContext(ctx); id != "" {
		event = event.Str("request_id", id)
	}
	event.Msg("strategy failed, contributing no results")
}

// viewedAmong returns which of the candidates the user has ever viewed. On
// store failure the set is empty and the failure is logged; filtering then
// becomes a no-op.
func (e *Engine) viewedAmong(ctx context.Context, userID string, candidates []RecommendationResult) map[string]struct{} {
	if len(candidates) == 0 {
		return nil
	}
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ContentID
	}
	seen, err := e.store.GetViewedAmong(ctx, userID, ids)
	if err != nil {
		e.logger.Warn().Err(err).Str("user_id", userID).Msg("could not load view history, viewed items not excluded")
		return nil
	}
	viewed := make(map[string]struct{}, len(seen))
	for _, id := range seen {
		viewed[id] = struct{}{}
	}
	return viewed
}

//nolint:gocritic // hugeParam: context is a value type by contract
func (e *Engine) normalize(rc RecommendationContext) RecommendationContext {
	switch {
	case rc.Limit <= 0:
		rc.Limit = e.config.Limits.DefaultLimit
	case rc.Limit > e.config.Limits.MaxLimit:
		rc.Limit = e.config.Limits.MaxLimit
	}
	return rc
}

func failureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "error"
	}
}

func cloneResults(in []RecommendationResult) []RecommendationResult {
	out := make([]RecommendationResult, len(in))
	copy(out, in)
	return out
}
