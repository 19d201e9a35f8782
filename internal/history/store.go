// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

// Package history records processed search queries and answers prefix
// suggestions from them.
//
// Two stores implement Store: BadgerStore persists entries in BadgerDB and
// MemoryStore keeps them in a prefix trie. Recorder sits in front of either
// one and turns Record into a fire-and-forget publish on an in-process
// watermill topic, drained by a supervised consumer, so that history writes
// never block or fail the query path.
package history

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
)

var (
	// ErrRecorderClosed is returned by Recorder.Record after Close.
	ErrRecorderClosed = errors.New("history recorder closed")

	// ErrEmptyQuery is returned when recording a blank query.
	ErrEmptyQuery = errors.New("empty query")
)

// Entry is one observed query.
type Entry struct {
	Query      string    `json:"query"`
	UserID     string    `json:"user_id,omitempty"`
	Complexity string    `json:"complexity,omitempty"`
	Categories []string  `json:"categories,omitempty"`
	SeenAt     time.Time `json:"seen_at"`
}

// Store persists query history and serves suggestions.
type Store interface {
	// Record adds one occurrence of the entry's query.
	Record(ctx context.Context, entry Entry) error

	// Suggest returns at most limit distinct queries starting with prefix,
	// most frequent first.
	Suggest(ctx context.Context, prefix string, limit int) ([]string, error)
}

// record is the aggregate kept per normalized query.
type record struct {
	Query      string    `json:"query"`
	Count      int64     `json:"count"`
	LastSeen   time.Time `json:"last_seen"`
	LastUserID string    `json:"last_user_id,omitempty"`
	Complexity string    `json:"complexity,omitempty"`
	Categories []string  `json:"categories,omitempty"`
}

func (r *record) add(e *Entry) {
	r.Count++
	if e.SeenAt.After(r.LastSeen) {
		r.LastSeen = e.SeenAt
	}
	if e.UserID != "" {
		r.LastUserID = e.UserID
	}
	if e.Complexity != "" {
		r.Complexity = e.Complexity
	}
	if len(e.Categories) > 0 {
		r.Categories = append([]string(nil), e.Categories...)
	}
}

// Normalize lower-cases a query and collapses its whitespace.
func Normalize(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// rankRecords orders by count, then recency, then query.
func rankRecords(records []record) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Count != records[j].Count {
			return records[i].Count > records[j].Count
		}
		if !records[i].LastSeen.Equal(records[j].LastSeen) {
			return records[i].LastSeen.After(records[j].LastSeen)
		}
		return records[i].Query < records[j].Query
	})
}
