// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package cache

import "strings"

// Keyword is one pattern fed to a KeywordMatcher together with its payload.
type Keyword[T any] struct {
	Text string
	Data T
}

// KeywordMatch reports that keyword Index (position in the constructor input)
// occurs in the searched text.
type KeywordMatch[T any] struct {
	Index int
	Text  string
	Data  T
}

type acNode struct {
	children map[rune]*acNode
	failure  *acNode
	output   []int
}

func newACNode() *acNode {
	return &acNode{children: make(map[rune]*acNode)}
}

// KeywordMatcher is an Aho-Corasick automaton over a fixed keyword list.
// Matching is case-insensitive and runs in O(len(text) + matches) regardless
// of how many keywords were loaded. The automaton is immutable once built and
// safe for concurrent use.
type KeywordMatcher[T any] struct {
	root     *acNode
	keywords []Keyword[T]
}

// NewKeywordMatcher builds the automaton. Empty keywords are ignored.
func NewKeywordMatcher[T any](keywords []Keyword[T]) *KeywordMatcher[T] {
	m := &KeywordMatcher[T]{root: newACNode(), keywords: keywords}

	for i, kw := range keywords {
		text := strings.ToLower(kw.Text)
		if text == "" {
			continue
		}
		node := m.root
		for _, ch := range text {
			next, ok := node.children[ch]
			if !ok {
				next = newACNode()
				node.children[ch] = next
			}
			node = next
		}
		node.output = append(node.output, i)
	}

	queue := make([]*acNode, 0, len(m.root.children))
	for _, child := range m.root.children {
		child.failure = m.root
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for ch, child := range current.children {
			queue = append(queue, child)
			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}
			if fail == nil {
				child.failure = m.root
				continue
			}
			child.failure = fail.children[ch]
			child.output = append(child.output, child.failure.output...)
		}
	}
	return m
}

// MatchAll returns every keyword occurring in text, each reported once, in
// keyword input order.
func (m *KeywordMatcher[T]) MatchAll(text string) []KeywordMatch[T] {
	if len(m.keywords) == 0 || text == "" {
		return nil
	}

	seen := make(map[int]struct{})
	node := m.root
	for _, ch := range strings.ToLower(text) {
		for node != m.root && node.children[ch] == nil {
			node = node.failure
		}
		if next, ok := node.children[ch]; ok {
			node = next
		}
		for _, idx := range node.output {
			seen[idx] = struct{}{}
		}
	}

	matches := make([]KeywordMatch[T], 0, len(seen))
	for i, kw := range m.keywords {
		if _, ok := seen[i]; ok {
			matches = append(matches, KeywordMatch[T]{Index: i, Text: kw.Text, Data: kw.Data})
		}
	}
	return matches
}

// Len returns the number of keywords loaded.
func (m *KeywordMatcher[T]) Len() int {
	return len(m.keywords)
}
