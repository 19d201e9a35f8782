// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

/*
Package api exposes query processing and recommendations over HTTP.

# Routes

	GET  /api/v1/health                          status, store, strategies, endpoint stats
	GET  /api/v1/health/live                     liveness
	GET  /api/v1/health/ready                    503 while the content store is unreachable
	GET  /api/v1/search/process?q=&optimize=     ProcessedQuery
	GET  /api/v1/search/suggest?prefix=&limit=   prior queries
	POST /api/v1/search/discover                 processed query plus recommendations
	POST /api/v1/recommendations                 combined strategies
	POST /api/v1/recommendations/personalized    combined plus trending and editorial buckets
	POST /api/v1/recommendations/auto            personalized with a user id, else combined
	GET  /api/v1/recommendations/strategies      registered strategy names
	GET  /api/v1/recommendations/strategies/{n}  one strategy, context from the query string
	GET  /metrics                                prometheus

# Response Envelope

Every response is an APIResponse:

	{"success": true, "data": ..., "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}}
	{"success": false, "error": {"code": "VALIDATION_ERROR", "message": "...", "details": {...}}}

Request bodies are decoded strictly (unknown fields are rejected) and
validated with go-playground/validator. An empty body on a recommendation
route is the zero RecommendationContext.

# Middleware

Request id, real IP, panic recovery, CORS, prometheus and the performance
monitor apply globally. Route groups add httprate limiting, security
headers and a body size cap.
*/
package api
