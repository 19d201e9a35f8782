// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

// Package database is the DuckDB-backed content store for the discovery
// service.
//
// # Overview
//
// Store implements both read interfaces the core depends on:
//   - recommend.ContentStore: content records, view events, curated
//     relationships and editorial picks
//   - query.SynonymSource: exact and partial synonym lookups
//
// Every read runs under a per-query timeout, is recorded in the
// discovery_store_query_* metrics and wraps any failure with
// recommend.ErrStoreUnavailable, so the recommendation engine can treat
// it as an empty contribution.
//
// # Files
//
//   - store.go: Open, connection settings, shared helpers
//   - schema.go: table and index creation
//   - content.go: recommend.ContentStore queries
//   - synonyms.go: query.SynonymSource queries and synonym upserts
//   - writes.go: insert helpers used by seeding, tooling and tests
//   - seed.go: demo catalogue for local runs
//   - breaker.go: BreakerStore, a gobreaker wrapper over any ContentStore
//
// # Usage
//
//	store, err := database.Open(ctx, &cfg.Database, logger)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	guarded := database.NewBreakerStore(store, database.DefaultBreakerConfig(), logger)
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), guarded, logger)
//
// # Storage Format
//
// Tags and synonyms are stored as lower-case comma-separated lists. Tag
// overlap splits them with string_split and tests membership with
// list_contains.
package database
