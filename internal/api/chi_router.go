// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/halaqa-discovery/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	perf          *middleware.PerformanceMonitor
	maxBodyBytes  int64
}

// NewRouter creates a router. perf may be nil.
func NewRouter(handler *Handler, mw *ChiMiddleware, perf *middleware.PerformanceMonitor, maxBodyBytes int64) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: mw,
		perf:          perf,
		maxBodyBytes:  maxBodyBytes,
	}
}

// SetupChi builds the HTTP handler.
//
//	GET  /api/v1/health, /health/live, /health/ready
//	GET  /api/v1/search/process?q=&optimize=&user_id=
//	GET  /api/v1/search/suggest?prefix=&limit=
//	POST /api/v1/search/discover
//	POST /api/v1/recommendations
//	POST /api/v1/recommendations/personalized
//	POST /api/v1/recommendations/auto
//	GET  /api/v1/recommendations/strategies
//	GET  /api/v1/recommendations/strategies/{name}
//	GET  /metrics
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, outermost first
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.PrometheusMetrics)
	if router.perf != nil {
		r.Use(router.perf.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		WriteError(w, req, http.StatusNotFound, ErrCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		WriteError(w, req, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1/search", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.MaxBodyBytes(router.maxBodyBytes))
		r.Get("/process", router.handler.ProcessQuery)
		r.Get("/suggest", router.handler.Suggest)
		r.Post("/discover", router.handler.Discover)
	})

	r.Route("/api/v1/recommendations", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.MaxBodyBytes(router.maxBodyBytes))
		r.Post("/", router.handler.Combined)
		r.Post("/personalized", router.handler.Personalized)
		r.Post("/auto", router.handler.Recommendations)
		r.Get("/strategies", router.handler.Strategies)
		r.Get("/strategies/{name}", router.handler.RunStrategy)
	})

	r.With(router.chiMiddleware.RateLimitHealth()).Handle("/metrics", promhttp.Handler())

	return r
}
