// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

// Package recommendtest provides an in-memory recommend.ContentStore for
// tests, with per-method error injection and call counting.
package recommendtest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/halaqa-discovery/internal/recommend"
)

// Store is an in-memory content store. Populate it with the Add methods
// before use; reads are safe for concurrent use.
type Store struct {
	mu            sync.RWMutex
	content       map[string]recommend.ContentRecord
	views         []groupView
	relationships []recommend.Relationship
	picks         []recommend.EditorialPick

	// Errs maps a method name (e.g. "GetViewers") to the error it returns.
	Errs map[string]error

	// Delay is applied to every call, honouring context cancellation.
	Delay time.Duration

	calls sync.Map // method name -> *atomic.Int64
}

type groupView struct {
	recommend.View
	halaqaID string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		content: make(map[string]recommend.ContentRecord),
		Errs:    make(map[string]error),
	}
}

// AddContent stores records, replacing any with the same id.
func (s *Store) AddContent(records ...recommend.ContentRecord) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		s.content[rec.ID] = rec
	}
	return s
}

// AddView records a view made outside any halaqa.
func (s *Store) AddView(userID, contentID string, at time.Time) *Store {
	return s.AddGroupView(userID, contentID, "", at)
}

// AddGroupView records a view made within a halaqa.
func (s *Store) AddGroupView(userID, contentID, halaqaID string, at time.Time) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views = append(s.views, groupView{
		View:     recommend.View{UserID: userID, ContentID: contentID, ViewedAt: at},
		halaqaID: halaqaID,
	})
	return s
}

// AddRelationship records a curated edge.
func (s *Store) AddRelationship(rel recommend.Relationship) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.relationships = append(s.relationships, rel)
	return s
}

// AddPick records an editorial pick.
func (s *Store) AddPick(pick recommend.EditorialPick) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.picks = append(s.picks, pick)
	return s
}

// Calls returns how often method was called.
func (s *Store) Calls(method string) int64 {
	if v, ok := s.calls.Load(method); ok {
		return v.(*atomic.Int64).Load()
	}
	return 0
}

func (s *Store) enter(ctx context.Context, method string) error {
	counter, _ := s.calls.LoadOrStore(method, new(atomic.Int64))
	counter.(*atomic.Int64).Add(1)

	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Errs[method]
}

// GetRecentViews implements recommend.ContentStore.
func (s *Store) GetRecentViews(ctx context.Context, userID string, limit int) ([]recommend.View, error) {
	if err := s.enter(ctx, "GetRecentViews"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []recommend.View
	for _, v := range s.views {
		if v.UserID == userID {
			out = append(out, v.View)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ViewedAt.After(out[j].ViewedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GetViewedAmong implements recommend.ContentStore.
func (s *Store) GetViewedAmong(ctx context.Context, userID string, contentIDs []string) ([]string, error) {
	if err := s.enter(ctx, "GetViewedAmong"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]bool, len(contentIDs))
	for _, id := range contentIDs {
		wanted[id] = true
	}
	var out []string
	for _, v := range s.views {
		if v.UserID == userID && wanted[v.ContentID] {
			out = append(out, v.ContentID)
			wanted[v.ContentID] = false
		}
	}
	return out, nil
}

// GetViewers implements recommend.ContentStore.
func (s *Store) GetViewers(ctx context.Context, contentIDs []string, excludeUserID string) ([]string, error) {
	if err := s.enter(ctx, "GetViewers"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]struct{}, len(contentIDs))
	for _, id := range contentIDs {
		wanted[id] = struct{}{}
	}
	seen := make(map[string]struct{})
	var out []string
	for _, v := range s.views {
		if _, ok := wanted[v.ContentID]; !ok || v.UserID == excludeUserID {
			continue
		}
		if _, dup := seen[v.UserID]; dup {
			continue
		}
		seen[v.UserID] = struct{}{}
		out = append(out, v.UserID)
	}
	sort.Strings(out)
	return out, nil
}

// GetContentByIDs implements recommend.ContentStore.
func (s *Store) GetContentByIDs(ctx context.Context, ids []string) ([]recommend.ContentRecord, error) {
	if err := s.enter(ctx, "GetContentByIDs"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []recommend.ContentRecord
	for _, id := range ids {
		if rec, ok := s.content[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// GetContentByTagOverlap implements recommend.ContentStore.
func (s *Store) GetContentByTagOverlap(ctx context.Context, tags []string, excludeID string, limit int) ([]recommend.ContentRecord, error) {
	if err := s.enter(ctx, "GetContentByTagOverlap"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		wanted[strings.ToLower(tag)] = struct{}{}
	}
	var out []recommend.ContentRecord
	for _, rec := range s.content {
		if rec.ID == excludeID {
			continue
		}
		for _, tag := range rec.Tags {
			if _, ok := wanted[strings.ToLower(tag)]; ok {
				out = append(out, rec)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GetRelationships implements recommend.ContentStore.
func (s *Store) GetRelationships(ctx context.Context, contentID string, limit int) ([]recommend.Relationship, error) {
	if err := s.enter(ctx, "GetRelationships"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []recommend.Relationship
	for _, rel := range s.relationships {
		if rel.SourceID == contentID {
			out = append(out, rel)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Strength > out[j].Strength })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GetViewsSince implements recommend.ContentStore.
func (s *Store) GetViewsSince(ctx context.Context, since time.Time, halaqaIDs []string) ([]recommend.View, error) {
	if err := s.enter(ctx, "GetViewsSince"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make(map[string]struct{}, len(halaqaIDs))
	for _, id := range halaqaIDs {
		groups[id] = struct{}{}
	}
	var out []recommend.View
	for _, v := range s.views {
		if v.ViewedAt.Before(since) {
			continue
		}
		if len(groups) > 0 {
			if _, ok := groups[v.halaqaID]; !ok {
				continue
			}
		}
		out = append(out, v.View)
	}
	return out, nil
}

// GetEditorialPicks implements recommend.ContentStore.
func (s *Store) GetEditorialPicks(ctx context.Context, category string, limit int) ([]recommend.EditorialPick, error) {
	if err := s.enter(ctx, "GetEditorialPicks"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []recommend.EditorialPick
	for _, pick := range s.picks {
		if category != "" && !strings.EqualFold(pick.Category, category) {
			continue
		}
		out = append(out, pick)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GetRecentlyCreated implements recommend.ContentStore.
func (s *Store) GetRecentlyCreated(ctx context.Context, since time.Time, limit int) ([]recommend.ContentRecord, error) {
	if err := s.enter(ctx, "GetRecentlyCreated"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []recommend.ContentRecord
	for _, rec := range s.content {
		if !rec.CreatedAt.Before(since) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ recommend.ContentStore = (*Store)(nil)
