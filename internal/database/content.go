// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/halaqa-discovery/internal/database/where"
	"github.com/tomtom215/halaqa-discovery/internal/recommend"
)

const contentColumns = `id, title, COALESCE(type, ''), COALESCE(author, ''), COALESCE(category, ''),
	COALESCE(tags, ''), COALESCE(view_count, 0), COALESCE(beneficial_count, 0),
	COALESCE(rating, 0), created_at`

// GetRecentViews implements recommend.ContentStore.
func (s *Store) GetRecentViews(ctx context.Context, userID string, limit int) (views []recommend.View, err error) {
	start := time.Now()
	defer func() { err = finish("get_recent_views", start, err) }()

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	q := `SELECT user_id, content_id, viewed_at FROM content_views
		WHERE user_id = ? ORDER BY viewed_at DESC, content_id` + limitClause(limit)
	rows, err := s.conn.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	return scanViews(rows)
}

// GetViewers implements recommend.ContentStore.
func (s *Store) GetViewers(ctx context.Context, contentIDs []string, excludeUserID string) (users []string, err error) {
	if len(contentIDs) == 0 {
		return []string{}, nil
	}
	start := time.Now()
	defer func() { err = finish("get_viewers", start, err) }()

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	cond, args := where.New().
		In("content_id", contentIDs).
		ClauseIf(excludeUserID != "", "user_id <> ?", excludeUserID).
		Build()
	q := `SELECT DISTINCT user_id FROM content_views WHERE ` + cond + ` ORDER BY user_id`

	rows, err := s.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return scanStrings(rows, "viewer")
}

// GetViewedAmong implements recommend.ContentStore. It checks the user's
// whole view history, not a recent window.
func (s *Store) GetViewedAmong(ctx context.Context, userID string, contentIDs []string) (ids []string, err error) {
	if len(contentIDs) == 0 {
		return []string{}, nil
	}
	start := time.Now()
	defer func() { err = finish("get_viewed_among", start, err) }()

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	cond, args := where.New().
		Clause("user_id = ?", userID).
		In("content_id", contentIDs).
		Build()
	q := `SELECT DISTINCT content_id FROM content_views WHERE ` + cond + ` ORDER BY content_id`

	rows, err := s.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return scanStrings(rows, "viewed content id")
}

// GetContentByIDs implements recommend.ContentStore.
func (s *Store) GetContentByIDs(ctx context.Context, ids []string) (records []recommend.ContentRecord, err error) {
	if len(ids) == 0 {
		return []recommend.ContentRecord{}, nil
	}
	start := time.Now()
	defer func() { err = finish("get_content_by_ids", start, err) }()

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	cond, args := where.New().In("id", ids).Build()
	rows, err := s.conn.QueryContext(ctx, `SELECT `+contentColumns+` FROM content WHERE `+cond, args...)
	if err != nil {
		return nil, err
	}
	return scanContent(rows)
}

// GetContentByTagOverlap implements recommend.ContentStore. Tags match
// case-insensitively; the most viewed candidates come first.
func (s *Store) GetContentByTagOverlap(ctx context.Context, tags []string, excludeID string, limit int) (records []recommend.ContentRecord, err error) {
	wanted := normalizeTags(tags)
	if len(wanted) == 0 {
		return []recommend.ContentRecord{}, nil
	}
	start := time.Now()
	defer func() { err = finish("get_content_by_tag_overlap", start, err) }()

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	cond, args := where.New().
		AnyOf(`list_contains(string_split(lower(COALESCE(tags, '')), ','), ?)`, wanted).
		ClauseIf(excludeID != "", "id <> ?", excludeID).
		Build()
	q := `SELECT ` + contentColumns + ` FROM content WHERE ` + cond +
		` ORDER BY view_count DESC, id` + limitClause(limit)

	rows, err := s.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return scanContent(rows)
}

// GetRelationships implements recommend.ContentStore.
func (s *Store) GetRelationships(ctx context.Context, contentID string, limit int) (rels []recommend.Relationship, err error) {
	start := time.Now()
	defer func() { err = finish("get_relationships", start, err) }()

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	q := `SELECT source_id, related_id, relationship_type, COALESCE(strength, 1.0)
		FROM content_relationships WHERE source_id = ?
		ORDER BY strength DESC, related_id` + limitClause(limit)
	rows, err := s.conn.QueryContext(ctx, q, contentID)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(rows)

	rels = []recommend.Relationship{}
	for rows.Next() {
		var rel recommend.Relationship
		if err := rows.Scan(&rel.SourceID, &rel.RelatedID, &rel.Type, &rel.Strength); err != nil {
			return nil, fmt.Errorf("scan relationship: %w", err)
		}
		rels = append(rels, rel)
	}
	return rels, rows.Err()
}

// GetViewsSince implements recommend.ContentStore.
func (s *Store) GetViewsSince(ctx context.Context, since time.Time, halaqaIDs []string) (views []recommend.View, err error) {
	start := time.Now()
	defer func() { err = finish("get_views_since", start, err) }()

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	cond, args := where.New().
		Clause("viewed_at >= ?", since.UTC()).
		In("halaqa_id", halaqaIDs).
		Build()
	q := `SELECT user_id, content_id, viewed_at FROM content_views WHERE ` + cond +
		` ORDER BY viewed_at DESC, content_id`

	rows, err := s.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return scanViews(rows)
}

// GetEditorialPicks implements recommend.ContentStore. Inactive picks are
// never returned.
func (s *Store) GetEditorialPicks(ctx context.Context, category string, limit int) (picks []recommend.EditorialPick, err error) {
	start := time.Now()
	defer func() { err = finish("get_editorial_picks", start, err) }()

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	cond, args := where.New().
		Clause("active").
		ClauseIf(category != "", "lower(category) = lower(?)", category).
		Build()
	q := `SELECT content_id, COALESCE(category, ''), COALESCE(priority, 0), COALESCE(reason, '')
		FROM editorial_picks WHERE ` + cond + ` ORDER BY priority DESC, content_id` + limitClause(limit)

	rows, err := s.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(rows)

	picks = []recommend.EditorialPick{}
	for rows.Next() {
		var pick recommend.EditorialPick
		if err := rows.Scan(&pick.ContentID, &pick.Category, &pick.Priority, &pick.Reason); err != nil {
			return nil, fmt.Errorf("scan editorial pick: %w", err)
		}
		picks = append(picks, pick)
	}
	return picks, rows.Err()
}

// GetRecentlyCreated implements recommend.ContentStore.
func (s *Store) GetRecentlyCreated(ctx context.Context, since time.Time, limit int) (records []recommend.ContentRecord, err error) {
	start := time.Now()
	defer func() { err = finish("get_recently_created", start, err) }()

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	q := `SELECT ` + contentColumns + ` FROM content WHERE created_at >= ?
		ORDER BY created_at DESC, id` + limitClause(limit)
	rows, err := s.conn.QueryContext(ctx, q, since.UTC())
	if err != nil {
		return nil, err
	}
	return scanContent(rows)
}

func scanContent(rows *sql.Rows) ([]recommend.ContentRecord, error) {
	defer closeQuietly(rows)

	records := []recommend.ContentRecord{}
	for rows.Next() {
		var (
			rec  recommend.ContentRecord
			tags string
		)
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Type, &rec.Author, &rec.Category,
			&tags, &rec.ViewCount, &rec.BeneficialCount, &rec.Rating, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		rec.Tags = splitTags(tags)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanViews(rows *sql.Rows) ([]recommend.View, error) {
	defer closeQuietly(rows)

	views := []recommend.View{}
	for rows.Next() {
		var v recommend.View
		if err := rows.Scan(&v.UserID, &v.ContentID, &v.ViewedAt); err != nil {
			return nil, fmt.Errorf("scan view: %w", err)
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func scanStrings(rows *sql.Rows, what string) ([]string, error) {
	defer closeQuietly(rows)

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func limitClause(limit int) string {
	if limit <= 0 {
		return ""
	}
	return " LIMIT " + strconv.Itoa(limit)
}

// normalizeTags lower-cases, trims and deduplicates tags, dropping empties
// and any containing the list separator.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || strings.Contains(tag, ",") {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func joinTags(tags []string) string {
	return strings.Join(normalizeTags(tags), ",")
}

func splitTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

var _ recommend.ContentStore = (*Store)(nil)
