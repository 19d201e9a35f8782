// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

// Package strategies implements the recommendation strategies fused by
// recommend.Engine.
//
//   - History: collaborative filtering over users who viewed the same items
//   - Tag: tag overlap with the anchor item, boosted for the same category
//   - Structured: curated relationship edges from the anchor item
//   - Trending: recency-decayed view counts over the last 7 days
//   - Editorial: curator picks ordered by priority
//   - Session: what learners with an overlapping path viewed next
//   - Fresh: items created in the last 30 days
//
// Each strategy reads only through recommend.ContentStore, returns unique
// content ids, never returns the anchor item and honours the requested limit.
// Store errors are returned to the engine, which isolates them.
package strategies
