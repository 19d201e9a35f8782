// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/halaqa-discovery/internal/metrics"
)

// Pinger is satisfied by database.Store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreMonitorConfig controls the content store probe.
type StoreMonitorConfig struct {
	// Interval between pings. Default: 30s
	Interval time.Duration

	// Timeout bounds one ping. Default: 5s
	Timeout time.Duration
}

// DefaultStoreMonitorConfig returns the defaults.
func DefaultStoreMonitorConfig() StoreMonitorConfig {
	return StoreMonitorConfig{
		Interval: 30 * time.Second,
		Timeout:  5 * time.Second,
	}
}

// StoreMonitorService pings the content store on a fixed interval, exports
// the result as discovery_store_up and logs up/down transitions.
type StoreMonitorService struct {
	store  Pinger
	config StoreMonitorConfig
	logger zerolog.Logger

	// up is owned by the Serve goroutine.
	up    bool
	known bool
}

// NewStoreMonitorService creates the monitor. Zero config fields take the
// defaults.
//
//nolint:gocritic // hugeParam: logger is copied once at construction
func NewStoreMonitorService(store Pinger, cfg StoreMonitorConfig, logger zerolog.Logger) *StoreMonitorService {
	def := DefaultStoreMonitorConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	return &StoreMonitorService{
		store:  store,
		config: cfg,
		logger: logger.With().Str("service", "store-monitor").Logger(),
	}
}

// Serve implements suture.Service. The first probe runs immediately.
func (s *StoreMonitorService) Serve(ctx context.Context) error {
	s.probe(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.probe(ctx)
		}
	}
}

// probe pings once and reports whether the store answered.
func (s *StoreMonitorService) probe(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	err := s.store.Ping(pingCtx)
	up := err == nil
	metrics.SetStoreUp(up)

	if !s.known || up != s.up {
		switch {
		case up && s.known:
			s.logger.Info().Msg("content store reachable again")
		case up:
			s.logger.Debug().Msg("content store reachable")
		default:
			s.logger.Warn().Err(err).Msg("content store unreachable")
		}
	}
	s.up, s.known = up, true
	return up
}

// String implements fmt.Stringer for suture event logs.
func (s *StoreMonitorService) String() string {
	return "store-monitor"
}
