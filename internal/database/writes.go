// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/halaqa-discovery/internal/recommend"
)

// ViewEvent is one view to insert. HalaqaID is empty for views made outside
// a study group.
type ViewEvent struct {
	UserID    string
	ContentID string
	HalaqaID  string
	ViewedAt  time.Time
}

// InsertContent upserts content records.
func (s *Store) InsertContent(ctx context.Context, records ...recommend.ContentRecord) error {
	return s.withTx(ctx, `INSERT OR REPLACE INTO content
		(id, title, type, author, category, tags, view_count, beneficial_count, rating, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		func(stmt *sql.Stmt) error {
			for i := range records {
				rec := &records[i]
				if _, err := stmt.ExecContext(ctx, rec.ID, rec.Title, rec.Type, rec.Author, rec.Category,
					joinTags(rec.Tags), rec.ViewCount, rec.BeneficialCount, rec.Rating, rec.CreatedAt.UTC()); err != nil {
					return fmt.Errorf("insert content %s: %w", rec.ID, err)
				}
			}
			return nil
		})
}

// InsertViews appends view events.
func (s *Store) InsertViews(ctx context.Context, views ...ViewEvent) error {
	return s.withTx(ctx, `INSERT INTO content_views (user_id, content_id, halaqa_id, viewed_at) VALUES (?, ?, ?, ?)`,
		func(stmt *sql.Stmt) error {
			for _, v := range views {
				var halaqa any
				if v.HalaqaID != "" {
					halaqa = v.HalaqaID
				}
				if _, err := stmt.ExecContext(ctx, v.UserID, v.ContentID, halaqa, v.ViewedAt.UTC()); err != nil {
					return fmt.Errorf("insert view: %w", err)
				}
			}
			return nil
		})
}

// InsertRelationships upserts curated edges.
func (s *Store) InsertRelationships(ctx context.Context, rels ...recommend.Relationship) error {
	return s.withTx(ctx, `INSERT OR REPLACE INTO content_relationships
		(source_id, related_id, relationship_type, strength) VALUES (?, ?, ?, ?)`,
		func(stmt *sql.Stmt) error {
			for _, rel := range rels {
				if _, err := stmt.ExecContext(ctx, rel.SourceID, rel.RelatedID, rel.Type, rel.Strength); err != nil {
					return fmt.Errorf("insert relationship %s->%s: %w", rel.SourceID, rel.RelatedID, err)
				}
			}
			return nil
		})
}

// InsertEditorialPicks adds active picks.
func (s *Store) InsertEditorialPicks(ctx context.Context, picks ...recommend.EditorialPick) error {
	return s.withTx(ctx, `INSERT INTO editorial_picks (content_id, category, priority, reason, active) VALUES (?, ?, ?, ?, true)`,
		func(stmt *sql.Stmt) error {
			for _, pick := range picks {
				if _, err := stmt.ExecContext(ctx, pick.ContentID, pick.Category, pick.Priority, pick.Reason); err != nil {
					return fmt.Errorf("insert editorial pick %s: %w", pick.ContentID, err)
				}
			}
			return nil
		})
}

// SetEditorialPickActive switches every pick of contentID on or off.
func (s *Store) SetEditorialPickActive(ctx context.Context, contentID string, active bool) error {
	ctx, cancel := s.queryContext(ctx)
	defer cancel()
	if _, err := s.conn.ExecContext(ctx, `UPDATE editorial_picks SET active = ? WHERE content_id = ?`, active, contentID); err != nil {
		return fmt.Errorf("update editorial pick %s: %w", contentID, err)
	}
	return nil
}

// withTx prepares query inside a transaction and hands the statement to fn.
// The transaction commits only when fn succeeds.
func (s *Store) withTx(ctx context.Context, query string, fn func(*sql.Stmt) error) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer closeQuietly(stmt)

	if err := fn(stmt); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
