// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package history

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/halaqa-discovery/internal/logging"
)

type failingStore struct {
	calls atomic.Int32
}

func (f *failingStore) Record(context.Context, Entry) error {
	f.calls.Add(1)
	return errors.New("disk full")
}

func (f *failingStore) Suggest(context.Context, string, int) ([]string, error) {
	return nil, errors.New("disk full")
}

func newTestRecorder(t *testing.T, store Store, cfg RecorderConfig) *Recorder {
	t.Helper()
	r, err := NewRecorder(store, cfg, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func serve(t *testing.T, r *Recorder) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = r.Serve(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return cancel
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestRecorder_WritesThroughToStore(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	r := newTestRecorder(t, store, DefaultRecorderConfig())

	// Recorded before Serve starts: buffered by the subscription.
	if err := r.Record(context.Background(), Entry{Query: "fasting rules", UserID: "u1"}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	serve(t, r)
	if err := r.Record(context.Background(), Entry{Query: "fasting while travelling"}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	waitFor(t, func() bool { return store.Len() == 2 })

	got, err := r.Suggest(context.Background(), "fasting", 5)
	if err != nil || len(got) != 2 {
		t.Errorf("Suggest() = %q, %v", got, err)
	}
}

func TestRecorder_RateLimit(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	cfg := DefaultRecorderConfig()
	cfg.RatePerSecond = 0.001
	cfg.Burst = 2
	r := newTestRecorder(t, store, cfg)
	serve(t, r)

	for _, q := range []string{"one", "two", "three", "four"} {
		if err := r.Record(context.Background(), Entry{Query: q}); err != nil {
			t.Fatalf("Record(%q) error = %v", q, err)
		}
	}

	waitFor(t, func() bool { return store.Len() == 2 })
	time.Sleep(50 * time.Millisecond)
	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2 accepted entries", store.Len())
	}
}

func TestRecorder_StoreFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	store := &failingStore{}
	r := newTestRecorder(t, store, DefaultRecorderConfig())
	serve(t, r)

	for i := 0; i < 3; i++ {
		if err := r.Record(context.Background(), Entry{Query: "dua for rain"}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}
	waitFor(t, func() bool { return store.calls.Load() == 3 })
}

func TestRecorder_Closed(t *testing.T) {
	t.Parallel()

	r := newTestRecorder(t, NewMemoryStore(), DefaultRecorderConfig())
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := r.Record(context.Background(), Entry{Query: "late"}); !errors.Is(err, ErrRecorderClosed) {
		t.Errorf("Record() after Close = %v, want ErrRecorderClosed", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}

func TestRecorderConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*RecorderConfig)
	}{
		{"rate", func(c *RecorderConfig) { c.RatePerSecond = 0 }},
		{"burst", func(c *RecorderConfig) { c.Burst = 0 }},
		{"buffer", func(c *RecorderConfig) { c.Buffer = -1 }},
		{"timeout", func(c *RecorderConfig) { c.WriteTimeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRecorderConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error")
			}
		})
	}
	if _, err := NewRecorder(nil, DefaultRecorderConfig(), logging.NewTestLogger(io.Discard)); err == nil {
		t.Error("expected error for nil store")
	}
}
