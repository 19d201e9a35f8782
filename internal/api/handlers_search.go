// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/halaqa-discovery/internal/logging"
	"github.com/tomtom215/halaqa-discovery/internal/recommend"
)

// processParams are the URL parameters of GET /search/process.
type processParams struct {
	Query    string `json:"q"`
	UserID   string `json:"user_id" validate:"omitempty,notblank,max=128"`
	Optimize bool   `json:"optimize"`
}

// suggestParams are the URL parameters of GET /search/suggest.
type suggestParams struct {
	Prefix string `json:"prefix" validate:"max=100"`
	Limit  int    `json:"limit" validate:"gte=0,lte=100"`
}

// discoverRequest is the body of POST /search/discover. Any query text is
// accepted, blank or long; the body limit bounds its size.
type discoverRequest struct {
	Query   string                          `json:"query"`
	Context recommend.RecommendationContext `json:"context"`
}

// ProcessQuery handles GET /api/v1/search/process?q=&optimize=&user_id=
// and returns the ProcessedQuery. An empty q is valid and yields a query
// with no terms.
func (h *Handler) ProcessQuery(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	optimize, err := parseBoolParam(r, "optimize")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	params := processParams{
		Query:    r.URL.Query().Get("q"),
		UserID:   strings.TrimSpace(r.URL.Query().Get("user_id")),
		Optimize: optimize,
	}
	if !validate(rw, &params) {
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()
	if params.UserID != "" {
		ctx = logging.ContextWithUserID(ctx, params.UserID)
	}

	if params.Optimize {
		rw.Success(h.svc.OptimizeQuery(ctx, params.Query, params.UserID))
		return
	}
	rw.Success(h.svc.ProcessQuery(ctx, params.Query, params.UserID))
}

// Suggest handles GET /api/v1/search/suggest?prefix=&limit= and returns
// prior queries starting with prefix. A limit of 0 uses the default.
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit, err := parseIntParam(r, "limit", 0)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	params := suggestParams{Prefix: r.URL.Query().Get("prefix"), Limit: limit}
	if !validate(rw, &params) {
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	suggestions := h.svc.Suggest(ctx, params.Prefix, params.Limit)
	rw.SuccessList(suggestions, len(suggestions))
}

// Discover handles POST /api/v1/search/discover. The body carries the raw
// query and a recommendation context; the response carries the processed
// query and the recommendations it led to.
func (h *Handler) Discover(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req discoverRequest
	if !decodeJSON(rw, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()
	if req.Context.UserID != "" {
		ctx = logging.ContextWithUserID(ctx, req.Context.UserID)
	}

	result := h.svc.Discover(ctx, req.Query, req.Context)
	logging.Ctx(ctx).Debug().
		Str("query", sanitizeLogValue(req.Query)).
		Int("results", len(result.Recommendations)).
		Msg("discover served")
	rw.Success(result)
}
