// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package cache

import (
	"sort"
	"strings"
	"sync"
	"time"
)

type trieNode struct {
	children map[rune]*trieNode
	terminal bool
	value    string
	count    int
	lastSeen time.Time
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// TrieResult is one completion returned by Trie.Complete.
type TrieResult struct {
	Value    string
	Count    int
	LastSeen time.Time
}

// Trie is a case-insensitive prefix tree that tracks how often and how
// recently each value was inserted. Completions rank by count, then by
// recency, then alphabetically.
type Trie struct {
	mu   sync.RWMutex
	root *trieNode
	size int
}

// NewTrie returns an empty trie.
func NewTrie() *Trie {
	return &Trie{root: newTrieNode()}
}

// Insert records one occurrence of value at time seen. It reports whether the
// value was new.
func (t *Trie) Insert(value string, seen time.Time) bool {
	key := strings.ToLower(strings.TrimSpace(value))
	if key == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.root
	for _, ch := range key {
		next, ok := node.children[ch]
		if !ok {
			next = newTrieNode()
			node.children[ch] = next
		}
		node = next
	}

	isNew := !node.terminal
	node.terminal = true
	node.value = key
	node.count++
	if seen.After(node.lastSeen) {
		node.lastSeen = seen
	}
	if isNew {
		t.size++
	}
	return isNew
}

// Complete returns at most limit values starting with prefix.
func (t *Trie) Complete(prefix string, limit int) []TrieResult {
	key := strings.ToLower(strings.TrimSpace(prefix))
	if key == "" || limit <= 0 {
		return nil
	}

	t.mu.RLock()
	node := t.root
	for _, ch := range key {
		next, ok := node.children[ch]
		if !ok {
			t.mu.RUnlock()
			return nil
		}
		node = next
	}
	var results []TrieResult
	collect(node, &results)
	t.mu.RUnlock()

	sort.Slice(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count > results[j].Count
		}
		if !results[i].LastSeen.Equal(results[j].LastSeen) {
			return results[i].LastSeen.After(results[j].LastSeen)
		}
		return results[i].Value < results[j].Value
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func collect(node *trieNode, results *[]TrieResult) {
	if node.terminal {
		*results = append(*results, TrieResult{Value: node.value, Count: node.count, LastSeen: node.lastSeen})
	}
	for _, child := range node.children {
		collect(child, results)
	}
}

// Size returns the number of distinct values.
func (t *Trie) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}
