// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

// Package where builds parameterized SQL WHERE clauses for the content store.
package where

import (
	"strings"
)

// Builder collects conditions joined with AND.
//
// Example usage:
//
//	wb := where.New()
//	wb.Clause("viewed_at >= ?", since)
//	wb.In("halaqa_id", halaqaIDs)
//	clause, args := wb.Build()
//	// viewed_at >= ? AND halaqa_id IN (?, ?)
type Builder struct {
	clauses []string
	args    []any
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{}
}

// Clause adds a raw condition with the arguments for its placeholders.
func (b *Builder) Clause(clause string, args ...any) *Builder {
	b.clauses = append(b.clauses, clause)
	b.args = append(b.args, args...)
	return b
}

// ClauseIf adds the condition only when ok is true.
func (b *Builder) ClauseIf(ok bool, clause string, args ...any) *Builder {
	if !ok {
		return b
	}
	return b.Clause(clause, args...)
}

// In adds "column IN (?, ...)". An empty values slice adds nothing.
func (b *Builder) In(column string, values []string) *Builder {
	if len(values) == 0 {
		return b
	}
	for _, v := range values {
		b.args = append(b.args, v)
	}
	b.clauses = append(b.clauses, column+" IN ("+Placeholders(len(values))+")")
	return b
}

// AnyOf adds one condition per value, OR-ed together in parentheses. The
// template holds a single placeholder. An empty values slice adds nothing.
func (b *Builder) AnyOf(template string, values []string) *Builder {
	if len(values) == 0 {
		return b
	}
	ors := make([]string, len(values))
	for i, v := range values {
		ors[i] = template
		b.args = append(b.args, v)
	}
	b.clauses = append(b.clauses, "("+strings.Join(ors, " OR ")+")")
	return b
}

// Build returns the AND-ed clause and its arguments. With no conditions the
// clause is "1=1".
func (b *Builder) Build() (string, []any) {
	if len(b.clauses) == 0 {
		return "1=1", []any{}
	}
	return strings.Join(b.clauses, " AND "), b.args
}

// Len returns the number of conditions added.
func (b *Builder) Len() int {
	return len(b.clauses)
}

// Placeholders returns "?, ?, ..." for n parameters.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
