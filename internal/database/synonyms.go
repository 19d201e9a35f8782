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
	"strings"
	"time"

	"github.com/tomtom215/halaqa-discovery/internal/query"
)

// Lookup implements query.SynonymSource. An unknown term has no synonyms.
func (s *Store) Lookup(ctx context.Context, term string) (synonyms []string, err error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil, nil
	}
	start := time.Now()
	defer func() { err = finish("synonym_lookup", start, err) }()

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	var raw string
	err = s.conn.QueryRowContext(ctx, `SELECT synonyms FROM search_synonyms WHERE term = ?`, term).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return splitSynonyms(raw), nil
}

// LookupPartial implements query.SynonymSource. It collects the synonyms of
// every stored term that contains term or is contained in it.
func (s *Store) LookupPartial(ctx context.Context, term string) (synonyms []string, err error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil, nil
	}
	start := time.Now()
	defer func() { err = finish("synonym_lookup_partial", start, err) }()

	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	rows, err := s.conn.QueryContext(ctx,
		`SELECT synonyms FROM search_synonyms
		WHERE contains(term, ?) OR contains(?, term)
		ORDER BY length(term), term`, term, term)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(rows)

	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan synonyms: %w", err)
		}
		synonyms = append(synonyms, splitSynonyms(raw)...)
	}
	return synonyms, rows.Err()
}

// InsertSynonyms upserts every entry of table.
func (s *Store) InsertSynonyms(ctx context.Context, table map[string][]string) error {
	return s.withTx(ctx, `INSERT OR REPLACE INTO search_synonyms (term, synonyms) VALUES (?, ?)`,
		func(stmt *sql.Stmt) error {
			for term, syns := range table {
				term = strings.ToLower(strings.TrimSpace(term))
				if term == "" || len(syns) == 0 {
					continue
				}
				if _, err := stmt.ExecContext(ctx, term, strings.Join(syns, ",")); err != nil {
					return fmt.Errorf("insert synonyms for %q: %w", term, err)
				}
			}
			return nil
		})
}

func splitSynonyms(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var _ query.SynonymSource = (*Store)(nil)
