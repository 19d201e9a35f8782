// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/halaqa-discovery/internal/middleware"
)

// healthPingTimeout bounds the store ping of a health check.
const healthPingTimeout = 2 * time.Second

// Health statuses.
const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

// HealthStatus is the body of GET /api/v1/health.
type HealthStatus struct {
	Status        string                     `json:"status"`
	Version       string                     `json:"version"`
	UptimeSeconds float64                    `json:"uptime_seconds"`
	Store         StoreHealth                `json:"store"`
	Strategies    []string                   `json:"strategies"`
	Endpoints     []middleware.EndpointStats `json:"endpoints,omitempty"`
}

// StoreHealth reports the content store.
type StoreHealth struct {
	Enabled   bool   `json:"enabled"`
	Connected bool   `json:"connected"`
	Breaker   string `json:"breaker,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Health handles GET /api/v1/health. The service stays usable without its
// store (every strategy degrades to empty), so a failing store reports
// "degraded" with a 200 rather than an error.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:        statusHealthy,
		Version:       h.opts.Version,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Store:         h.storeHealth(r.Context()),
		Strategies:    h.svc.Strategies(),
	}
	if h.opts.Perf != nil {
		status.Endpoints = h.opts.Perf.Stats()
	}
	if status.Store.Enabled && (!status.Store.Connected || status.Store.Breaker == "open") {
		status.Status = statusDegraded
	}
	NewResponseWriter(w, r).Success(status)
}

// HealthLive handles GET /api/v1/health/live. It answers 200 while the
// process is serving.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "alive"})
}

// HealthReady handles GET /api/v1/health/ready: 503 when the enabled store
// cannot be reached.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	store := h.storeHealth(r.Context())
	if store.Enabled && !store.Connected {
		rw.ServiceUnavailable("content store unreachable", store)
		return
	}
	rw.Success(map[string]any{"status": "ready", "store": store})
}

func (h *Handler) storeHealth(ctx context.Context) StoreHealth {
	var sh StoreHealth
	if h.opts.Breaker != nil {
		sh.Breaker = h.opts.Breaker.State()
	}
	if h.opts.Store == nil {
		return sh
	}
	sh.Enabled = true

	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()
	if err := h.opts.Store.Ping(ctx); err != nil {
		sh.Error = err.Error()
		return sh
	}
	sh.Connected = true
	return sh
}
