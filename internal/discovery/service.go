// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package discovery

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/halaqa-discovery/internal/history"
	"github.com/tomtom215/halaqa-discovery/internal/query"
	"github.com/tomtom215/halaqa-discovery/internal/recommend"
)

// QueryProcessor is the query side of the service. *query.Processor
// implements it.
type QueryProcessor interface {
	Process(ctx context.Context, raw string) query.ProcessedQuery
	Optimize(pq query.ProcessedQuery) query.ProcessedQuery
	Suggest(ctx context.Context, prefix string, limit int) []string
}

// Recommender is the recommendation side of the service. *recommend.Engine
// implements it.
type Recommender interface {
	GetCombined(ctx context.Context, rc recommend.RecommendationContext) []recommend.RecommendationResult
	GetPersonalized(ctx context.Context, rc recommend.RecommendationContext) []recommend.RecommendationResult
	Run(ctx context.Context, name string, rc recommend.RecommendationContext) ([]recommend.RecommendationResult, error)
	Strategies() []string
}

// HistoryRecorder accepts processed queries for the suggestion history. It
// must not block; *history.Recorder queues and returns immediately.
type HistoryRecorder interface {
	Record(ctx context.Context, entry history.Entry) error
}

// Service is the single entry point used by the HTTP layer. It is safe for
// concurrent use.
type Service struct {
	processor QueryProcessor
	engine    Recommender
	recorder  HistoryRecorder
	logger    zerolog.Logger
	now       func() time.Time
}

// Result pairs a processed query with the recommendations it led to.
type Result struct {
	Query           query.ProcessedQuery             `json:"query"`
	Recommendations []recommend.RecommendationResult `json:"recommendations"`
}

// New creates a service. recorder may be nil, in which case queries are
// not recorded.
//
//nolint:gocritic // hugeParam: logger is copied once at construction
func New(processor QueryProcessor, engine Recommender, recorder HistoryRecorder, logger zerolog.Logger) (*Service, error) {
	if processor == nil {
		return nil, errors.New("discovery: nil query processor")
	}
	if engine == nil {
		return nil, errors.New("discovery: nil recommender")
	}
	return &Service{
		processor: processor,
		engine:    engine,
		recorder:  recorder,
		logger:    logger.With().Str("component", "discovery").Logger(),
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

// ProcessQuery processes raw and records it for suggestions. Recording is
// fire-and-forget; its failure never affects the returned query.
func (s *Service) ProcessQuery(ctx context.Context, raw, userID string) query.ProcessedQuery {
	pq := s.processor.Process(ctx, raw)
	s.record(ctx, &pq, userID)
	return pq
}

// OptimizeQuery processes raw, records it and returns the optimized form.
func (s *Service) OptimizeQuery(ctx context.Context, raw, userID string) query.ProcessedQuery {
	return s.processor.Optimize(s.ProcessQuery(ctx, raw, userID))
}

// Suggest returns prior queries starting with prefix.
func (s *Service) Suggest(ctx context.Context, prefix string, limit int) []string {
	return s.processor.Suggest(ctx, prefix, limit)
}

// Discover processes raw and recommends content for it. When rc has no
// category the strongest detected category is used; the user id of rc is
// attributed to the recorded query.
//
//nolint:gocritic // hugeParam: context is a value type by contract
func (s *Service) Discover(ctx context.Context, raw string, rc recommend.RecommendationContext) Result {
	pq := s.ProcessQuery(ctx, raw, rc.UserID)
	if rc.Category == "" && len(pq.DetectedCategories) > 0 {
		rc.Category = pq.DetectedCategories[0]
	}
	return Result{
		Query:           pq,
		Recommendations: s.engine.GetPersonalized(ctx, rc),
	}
}

// GetCombinedRecs fuses the combined strategies for rc.
//
//nolint:gocritic // hugeParam: context is a value type by contract
func (s *Service) GetCombinedRecs(ctx context.Context, rc recommend.RecommendationContext) []recommend.RecommendationResult {
	return s.engine.GetCombined(ctx, rc)
}

// GetPersonalizedRecs returns combined results topped up with trending and
// editorial picks.
//
//nolint:gocritic // hugeParam: context is a value type by contract
func (s *Service) GetPersonalizedRecs(ctx context.Context, rc recommend.RecommendationContext) []recommend.RecommendationResult {
	return s.engine.GetPersonalized(ctx, rc)
}

// GetRecommendations picks the surface for rc: personalized when a user is
// known, combined otherwise.
//
//nolint:gocritic // hugeParam: context is a value type by contract
func (s *Service) GetRecommendations(ctx context.Context, rc recommend.RecommendationContext) []recommend.RecommendationResult {
	if rc.UserID != "" {
		return s.engine.GetPersonalized(ctx, rc)
	}
	return s.engine.GetCombined(ctx, rc)
}

// RunStrategy runs one named strategy. The only error is
// recommend.ErrUnknownStrategy.
//
//nolint:gocritic // hugeParam: context is a value type by contract
func (s *Service) RunStrategy(ctx context.Context, name string, rc recommend.RecommendationContext) ([]recommend.RecommendationResult, error) {
	return s.engine.Run(ctx, name, rc)
}

// Strategies lists the registered strategy names.
func (s *Service) Strategies() []string {
	return s.engine.Strategies()
}

func (s *Service) record(ctx context.Context, pq *query.ProcessedQuery, userID string) {
	if s.recorder == nil || pq.Metadata.Degraded {
		return
	}
	entry := history.Entry{
		Query:      pq.OriginalQuery,
		UserID:     userID,
		Complexity: string(pq.Metadata.Complexity),
		Categories: pq.DetectedCategories,
		SeenAt:     s.now(),
	}
	// The request context may end as soon as the response is written; the
	// entry outlives it.
	if err := s.recorder.Record(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Debug().Err(err).Str("query", pq.OriginalQuery).Msg("query not recorded")
	}
}
