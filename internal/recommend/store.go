// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package recommend

import (
	"context"
	"time"
)

// ContentStore is the read interface over content, view events, curated
// relationships and editorial picks. Implementations must be safe for
// concurrent use; the engine calls them from several goroutines at once.
//
// Failures reaching the backing store should wrap ErrStoreUnavailable.
type ContentStore interface {
	// GetRecentViews returns the user's views, newest first.
	GetRecentViews(ctx context.Context, userID string, limit int) ([]View, error)

	// GetViewedAmong returns the subset of contentIDs the user has ever
	// viewed, in any order.
	GetViewedAmong(ctx context.Context, userID string, contentIDs []string) ([]string, error)

	// GetViewers returns the distinct users who viewed any of contentIDs,
	// excluding excludeUserID when it is non-empty.
	GetViewers(ctx context.Context, contentIDs []string, excludeUserID string) ([]string, error)

	// GetContentByIDs returns the records that exist among ids, in any order.
	GetContentByIDs(ctx context.Context, ids []string) ([]ContentRecord, error)

	// GetContentByTagOverlap returns records sharing at least one tag,
	// excluding excludeID.
	GetContentByTagOverlap(ctx context.Context, tags []string, excludeID string, limit int) ([]ContentRecord, error)

	// GetRelationships returns curated edges from contentID, strongest first.
	GetRelationships(ctx context.Context, contentID string, limit int) ([]Relationship, error)

	// GetViewsSince returns views at or after since, optionally restricted to
	// views made within the given halaqa ids.
	GetViewsSince(ctx context.Context, since time.Time, halaqaIDs []string) ([]View, error)

	// GetEditorialPicks returns active picks, highest priority first. An empty
	// category returns picks of every category.
	GetEditorialPicks(ctx context.Context, category string, limit int) ([]EditorialPick, error)

	// GetRecentlyCreated returns records created at or after since, newest first.
	GetRecentlyCreated(ctx context.Context, since time.Time, limit int) ([]ContentRecord, error)
}

// Strategy is one self-contained recommendation algorithm.
type Strategy interface {
	// Name identifies the strategy in configuration, logs and metrics.
	Name() string

	// Applicable reports whether rc carries the inputs the strategy needs.
	Applicable(rc RecommendationContext) bool

	// Recommend returns at most rc.Limit results with unique content ids,
	// never including rc.ContentID. Store failures are returned as errors; the
	// engine turns them into an empty contribution.
	Recommend(ctx context.Context, rc RecommendationContext) ([]RecommendationResult, error)
}

// EmptyStore is a ContentStore with no content. It backs the service when
// no database is configured, so every strategy returns nothing.
type EmptyStore struct{}

var _ ContentStore = EmptyStore{}

func (EmptyStore) GetRecentViews(context.Context, string, int) ([]View, error) { return nil, nil }

func (EmptyStore) GetViewedAmong(context.Context, string, []string) ([]string, error) {
	return nil, nil
}

func (EmptyStore) GetViewers(context.Context, []string, string) ([]string, error) { return nil, nil }

func (EmptyStore) GetContentByIDs(context.Context, []string) ([]ContentRecord, error) {
	return nil, nil
}

func (EmptyStore) GetContentByTagOverlap(context.Context, []string, string, int) ([]ContentRecord, error) {
	return nil, nil
}

func (EmptyStore) GetRelationships(context.Context, string, int) ([]Relationship, error) {
	return nil, nil
}

func (EmptyStore) GetViewsSince(context.Context, time.Time, []string) ([]View, error) {
	return nil, nil
}

func (EmptyStore) GetEditorialPicks(context.Context, string, int) ([]EditorialPick, error) {
	return nil, nil
}

func (EmptyStore) GetRecentlyCreated(context.Context, time.Time, int) ([]ContentRecord, error) {
	return nil, nil
}
