// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package api

import (
	"context"
	"time"

	"github.com/tomtom215/halaqa-discovery/internal/discovery"
	"github.com/tomtom215/halaqa-discovery/internal/middleware"
	"github.com/tomtom215/halaqa-discovery/internal/query"
	"github.com/tomtom215/halaqa-discovery/internal/recommend"
)

// Discovery is the service behind the handlers. *discovery.Service
// implements it.
type Discovery interface {
	ProcessQuery(ctx context.Context, raw, userID string) query.ProcessedQuery
	OptimizeQuery(ctx context.Context, raw, userID string) query.ProcessedQuery
	Suggest(ctx context.Context, prefix string, limit int) []string
	Discover(ctx context.Context, raw string, rc recommend.RecommendationContext) discovery.Result
	GetCombinedRecs(ctx context.Context, rc recommend.RecommendationContext) []recommend.RecommendationResult
	GetPersonalizedRecs(ctx context.Context, rc recommend.RecommendationContext) []recommend.RecommendationResult
	GetRecommendations(ctx context.Context, rc recommend.RecommendationContext) []recommend.RecommendationResult
	RunStrategy(ctx context.Context, name string, rc recommend.RecommendationContext) ([]recommend.RecommendationResult, error)
	Strategies() []string
}

// Pinger checks a backing store. *database.Store implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BreakerReporter exposes circuit breaker state. *database.BreakerStore
// implements it.
type BreakerReporter interface {
	State() string
}

// Options holds the optional dependencies of a Handler.
type Options struct {
	// Store is pinged by the health endpoint; nil reports the store as
	// disabled.
	Store Pinger

	// Breaker state is reported by the health endpoint when set.
	Breaker BreakerReporter

	// Perf supplies per-endpoint latency to the health endpoint.
	Perf *middleware.PerformanceMonitor

	// Version is reported by the health endpoint.
	Version string

	// RequestTimeout bounds each discovery call; zero leaves the request
	// context as is.
	RequestTimeout time.Duration
}

// Handler serves the discovery API.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor
//   - handlers_search.go: query processing, suggestions, discover
//   - handlers_recommend.go: recommendation surfaces and single strategies
//   - handlers_health.go: liveness and health
//   - handlers_helpers.go: request decoding and parameter parsing
type Handler struct {
	svc       Discovery
	opts      Options
	startTime time.Time
}

// NewHandler creates a handler over svc.
//
//nolint:gocritic // hugeParam: options are copied once at construction
func NewHandler(svc Discovery, opts Options) *Handler {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	return &Handler{
		svc:       svc,
		opts:      opts,
		startTime: time.Now(),
	}
}

// requestContext applies the configured request timeout.
func (h *Handler) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.opts.RequestTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, h.opts.RequestTimeout)
}
