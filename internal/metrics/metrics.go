// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

// Package metrics holds the Prometheus collectors for the discovery service.
// Collectors are registered on the default registry at init through promauto
// and exposed by the API layer on /metrics.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Store metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discovery_store_query_duration_seconds",
			Help:    "Duration of content store queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_store_query_errors_total",
			Help: "Total number of content store query errors",
		},
		[]string{"operation", "error_type"},
	)

	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "discovery_store_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// Recommendation metrics
	StrategyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discovery_strategy_duration_seconds",
			Help:    "Duration of a single recommendation strategy run",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"strategy"},
	)

	StrategyFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_strategy_failures_total",
			Help: "Strategy runs that contributed nothing because of an error, timeout or panic",
		},
		[]string{"strategy", "reason"},
	)

	StrategyResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discovery_strategy_results",
			Help:    "Number of results contributed by a strategy run",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
		[]string{"strategy"},
	)

	FusionResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discovery_fusion_results",
			Help:    "Number of results returned after fusion",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
		[]string{"mode"},
	)

	RecommendCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_recommend_cache_lookups_total",
			Help: "Combined recommendation cache lookups by outcome",
		},
		[]string{"outcome"},
	)

	// Query processing metrics
	QueriesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_queries_processed_total",
			Help: "Processed queries by complexity and language",
		},
		[]string{"complexity", "language"},
	)

	QueriesDegraded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_queries_degraded_total",
			Help: "Queries that fell back to the minimal processed form",
		},
	)

	SynonymLookupFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_synonym_lookup_failures_total",
			Help: "Per-term synonym lookups that failed and were treated as no synonyms",
		},
	)

	// Query history metrics
	HistoryWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_history_writes_total",
			Help: "Query history writes by outcome (stored, dropped, failed)",
		},
		[]string{"outcome"},
	)

	StoreUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "discovery_store_up",
			Help: "Whether the last content store ping succeeded (1) or failed (0)",
		},
	)

	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discovery_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "discovery_api_active_requests",
			Help: "Number of in-flight API requests",
		},
	)
)

// RecordDBQuery records one content store query.
func RecordDBQuery(operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, errorType(err)).Inc()
	}
}

// RecordStrategyRun records the outcome of one strategy run. reason is empty
// on success.
func RecordStrategyRun(strategy string, duration time.Duration, results int, reason string) {
	StrategyDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	StrategyResults.WithLabelValues(strategy).Observe(float64(results))
	if reason != "" {
		StrategyFailures.WithLabelValues(strategy, reason).Inc()
	}
}

// RecordFusion records the size of a fused result list.
func RecordFusion(mode string, results int) {
	FusionResults.WithLabelValues(mode).Observe(float64(results))
}

// RecordCacheLookup records a combined-results cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		RecommendCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	RecommendCacheLookups.WithLabelValues("miss").Inc()
}

// RecordQueryProcessed records one processed query.
func RecordQueryProcessed(complexity, language string) {
	QueriesProcessed.WithLabelValues(complexity, language).Inc()
}

// RecordHistoryWrite records a query history write outcome.
func RecordHistoryWrite(outcome string) {
	HistoryWrites.WithLabelValues(outcome).Inc()
}

// RecordAPIRequest records an API request.
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// errorType buckets errors into a bounded label set.
func errorType(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "other"
	}
}

// SetStoreUp records the outcome of the latest content store ping.
func SetStoreUp(up bool) {
	if up {
		StoreUp.Set(1)
		return
	}
	StoreUp.Set(0)
}
