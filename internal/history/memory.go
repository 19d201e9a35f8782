// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package history

import (
	"context"

	"github.com/tomtom215/halaqa-discovery/internal/cache"
)

// MemoryStore keeps query history in a prefix trie. History is lost on
// restart.
type MemoryStore struct {
	trie *cache.Trie
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{trie: cache.NewTrie()}
}

// Record implements Store.
//
//nolint:gocritic // hugeParam: entries are small value types
func (s *MemoryStore) Record(_ context.Context, entry Entry) error {
	key := Normalize(entry.Query)
	if key == "" {
		return ErrEmptyQuery
	}
	s.trie.Insert(key, entry.SeenAt)
	return nil
}

// Suggest implements Store.
func (s *MemoryStore) Suggest(_ context.Context, prefix string, limit int) ([]string, error) {
	results := s.trie.Complete(Normalize(prefix), limit)
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Value
	}
	return out, nil
}

// Len returns the number of distinct queries.
func (s *MemoryStore) Len() int {
	return s.trie.Size()
}

var _ Store = (*MemoryStore)(nil)
