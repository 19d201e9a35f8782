// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // register the duckdb driver
	"github.com/rs/zerolog"

	"github.com/tomtom215/halaqa-discovery/internal/config"
	"github.com/tomtom215/halaqa-discovery/internal/metrics"
	"github.com/tomtom215/halaqa-discovery/internal/recommend"
)

const defaultQueryTimeout = 5 * time.Second

// Store is the DuckDB-backed content store. It implements
// recommend.ContentStore and query.SynonymSource and is safe for concurrent
// use.
type Store struct {
	conn         *sql.DB
	queryTimeout time.Duration
	logger       zerolog.Logger
}

// Open opens (or creates) the database described by cfg and ensures the
// schema exists. An empty path opens a private in-memory database.
func Open(ctx context.Context, cfg *config.DatabaseConfig, logger zerolog.Logger) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("database config is required")
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	// Extension autoloading stays off: nothing here needs one, and a blocked
	// download would hang startup.
	connStr := fmt.Sprintf("%s?threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		path, threads, maxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := NewStoreFromDB(conn, cfg.QueryTimeout, logger)
	if err := s.EnsureSchema(ctx); err != nil {
		closeQuietly(conn)
		return nil, err
	}

	s.logger.Info().Str("path", path).Int("threads", threads).Str("max_memory", maxMemory).Msg("content store ready")
	return s, nil
}

// NewStoreFromDB wraps an open DuckDB handle. The schema is not created;
// call EnsureSchema.
func NewStoreFromDB(conn *sql.DB, queryTimeout time.Duration, logger zerolog.Logger) *Store {
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}
	return &Store{
		conn:         conn,
		queryTimeout: queryTimeout,
		logger:       logger.With().Str("component", "database").Logger(),
	}
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.conn.Close()
}

// queryContext bounds a single store call.
func (s *Store) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.queryTimeout)
}

// finish records the query metric and wraps err as a store failure.
func finish(op string, start time.Time, err error) error {
	metrics.RecordDBQuery(op, time.Since(start), err)
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", recommend.ErrStoreUnavailable, op, err)
}
