// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/halaqa-discovery/internal/logging"
	"github.com/tomtom215/halaqa-discovery/internal/recommend"
)

// strategyParams names the strategy of GET /recommendations/strategies/{name}.
type strategyParams struct {
	Name string `json:"name" validate:"required,slug,max=32"`
}

type recommendFunc func(ctx context.Context, rc recommend.RecommendationContext) []recommend.RecommendationResult

// serveRecommendations decodes and validates a RecommendationContext body
// and answers with fn's results.
func (h *Handler) serveRecommendations(w http.ResponseWriter, r *http.Request, fn recommendFunc) {
	rw := NewResponseWriter(w, r)

	var rc recommend.RecommendationContext
	if !decodeJSON(rw, r, &rc) {
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()
	if rc.UserID != "" {
		ctx = logging.ContextWithUserID(ctx, rc.UserID)
	}

	results := fn(ctx, rc)
	rw.SuccessList(results, len(results))
}

// Combined handles POST /api/v1/recommendations: the fused output of the
// combined strategies.
func (h *Handler) Combined(w http.ResponseWriter, r *http.Request) {
	h.serveRecommendations(w, r, h.svc.GetCombinedRecs)
}

// Personalized handles POST /api/v1/recommendations/personalized: combined
// results topped up with trending and editorial picks.
func (h *Handler) Personalized(w http.ResponseWriter, r *http.Request) {
	h.serveRecommendations(w, r, h.svc.GetPersonalizedRecs)
}

// Recommendations handles POST /api/v1/recommendations/auto: personalized
// for known users, combined otherwise.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	h.serveRecommendations(w, r, h.svc.GetRecommendations)
}

// Strategies handles GET /api/v1/recommendations/strategies and lists the
// registered strategy names.
func (h *Handler) Strategies(w http.ResponseWriter, r *http.Request) {
	names := h.svc.Strategies()
	NewResponseWriter(w, r).SuccessList(names, len(names))
}

// RunStrategy handles GET /api/v1/recommendations/strategies/{name}. The
// context comes from URL parameters (see contextFromQuery).
func (h *Handler) RunStrategy(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	params := strategyParams{Name: chi.URLParam(r, "name")}
	if !validate(rw, &params) {
		return
	}
	rc, err := contextFromQuery(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validate(rw, &rc) {
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	results, err := h.svc.RunStrategy(ctx, params.Name, rc)
	if errors.Is(err, recommend.ErrUnknownStrategy) {
		rw.NotFound(ErrCodeUnknownStrategy, "unknown strategy: "+params.Name)
		return
	}
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("strategy", params.Name).Msg("strategy run failed")
		rw.InternalError("strategy run failed")
		return
	}
	rw.SuccessList(results, len(results))
}
