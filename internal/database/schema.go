// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package database

import (
	"context"
	"fmt"
	"time"
)

// Tables:
//   - content: catalogue items; tags are a lower-case comma-separated list
//   - content_views: one row per view, optionally inside a halaqa
//   - content_relationships: curated directed edges between items
//   - editorial_picks: curator picks, filtered by category and active flag
//   - search_synonyms: term to comma-separated synonyms
var tableQueries = []string{
	`CREATE TABLE IF NOT EXISTS content (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		type TEXT,
		author TEXT,
		category TEXT,
		tags TEXT,
		view_count BIGINT DEFAULT 0,
		beneficial_count BIGINT DEFAULT 0,
		rating DOUBLE DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS content_views (
		user_id TEXT NOT NULL,
		content_id TEXT NOT NULL,
		halaqa_id TEXT,
		viewed_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS content_relationships (
		source_id TEXT NOT NULL,
		related_id TEXT NOT NULL,
		relationship_type TEXT NOT NULL,
		strength DOUBLE DEFAULT 1.0,
		PRIMARY KEY (source_id, related_id, relationship_type)
	)`,
	`CREATE TABLE IF NOT EXISTS editorial_picks (
		content_id TEXT NOT NULL,
		category TEXT,
		priority DOUBLE DEFAULT 0,
		reason TEXT,
		active BOOLEAN DEFAULT true
	)`,
	`CREATE TABLE IF NOT EXISTS search_synonyms (
		term TEXT PRIMARY KEY,
		synonyms TEXT NOT NULL
	)`,
}

var indexQueries = []string{
	`CREATE INDEX IF NOT EXISTS idx_views_user_time ON content_views(user_id, viewed_at)`,
	`CREATE INDEX IF NOT EXISTS idx_views_content ON content_views(content_id)`,
	`CREATE INDEX IF NOT EXISTS idx_views_time ON content_views(viewed_at)`,
	`CREATE INDEX IF NOT EXISTS idx_content_created ON content(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_picks_category ON editorial_picks(category)`,
}

// EnsureSchema creates every table and index that does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	for _, q := range tableQueries {
		if _, err := s.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	for _, q := range indexQueries {
		if _, err := s.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
