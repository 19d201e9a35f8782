// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

/*
Package middleware provides the HTTP middleware of the discovery API.

All middleware has the chi signature func(http.Handler) http.Handler:

  - RequestID: reuses or generates X-Request-ID and stores it for logging
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern
  - PerformanceMonitor.Middleware: sliding-window latency percentiles per
    endpoint, reported by the health endpoint
  - MaxBodyBytes: caps request body size

Stack order, outermost first:

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(perfMon.Middleware)
	r.Use(middleware.MaxBodyBytes(cfg.Security.MaxBodyBytes))

Metrics and the performance monitor read the route pattern after the
handler returns, so they must be registered on the router itself, not
wrapped around it.
*/
package middleware
