// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package history

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

var baseTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"  Quran   Tafsir ": "quran tafsir",
		"FIQH":              "fiqh",
		"\t\n":              "",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRecordAdd(t *testing.T) {
	t.Parallel()

	rec := record{Query: "zakat"}
	rec.add(&Entry{UserID: "u1", Complexity: "simple", Categories: []string{"zakat"}, SeenAt: baseTime})
	rec.add(&Entry{SeenAt: baseTime.Add(-time.Hour)})

	if rec.Count != 2 || !rec.LastSeen.Equal(baseTime) || rec.LastUserID != "u1" || rec.Complexity != "simple" {
		t.Errorf("record = %+v", rec)
	}
}

// storeContract runs the behaviour every Store must share.
func storeContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	entries := []Entry{
		{Query: "Quran tafsir", SeenAt: baseTime},
		{Query: "quran  TAFSIR", SeenAt: baseTime.Add(time.Minute)},
		{Query: "quran recitation", SeenAt: baseTime.Add(2 * time.Minute)},
		{Query: "quran memorization", SeenAt: baseTime.Add(time.Minute)},
		{Query: "qibla direction", SeenAt: baseTime},
	}
	for _, e := range entries {
		if err := store.Record(ctx, e); err != nil {
			t.Fatalf("Record(%q) error = %v", e.Query, err)
		}
	}
	if err := store.Record(ctx, Entry{Query: "   "}); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("Record(blank) error = %v, want ErrEmptyQuery", err)
	}

	tests := []struct {
		prefix string
		limit  int
		want   []string
	}{
		{"qur", 10, []string{"quran tafsir", "quran recitation", "quran memorization"}},
		{"QURAN T", 10, []string{"quran tafsir"}},
		{"q", 2, []string{"quran tafsir", "quran recitation"}},
		{"hadith", 10, []string{}},
	}
	for _, tt := range tests {
		got, err := store.Suggest(ctx, tt.prefix, tt.limit)
		if err != nil {
			t.Fatalf("Suggest(%q) error = %v", tt.prefix, err)
		}
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Suggest(%q, %d) = %q, want %q", tt.prefix, tt.limit, got, tt.want)
		}
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	storeContract(t, store)
	if store.Len() != 4 {
		t.Errorf("Len() = %d, want 4", store.Len())
	}
}
