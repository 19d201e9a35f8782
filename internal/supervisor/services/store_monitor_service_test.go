// Halaqa Discovery - Search Query Processing and Recommendation Fusion
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/halaqa-discovery

package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/halaqa-discovery/internal/metrics"
)

// scriptedPinger returns the scripted errors in order, then the last one.
type scriptedPinger struct {
	mu     sync.Mutex
	script []error
	calls  atomic.Int32
}

func (p *scriptedPinger) Ping(context.Context) error {
	n := int(p.calls.Add(1)) - 1
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.script) == 0 {
		return nil
	}
	if n >= len(p.script) {
		n = len(p.script) - 1
	}
	return p.script[n]
}

func TestNewStoreMonitorService_Defaults(t *testing.T) {
	t.Parallel()

	svc := NewStoreMonitorService(&scriptedPinger{}, StoreMonitorConfig{}, zerolog.Nop())
	if svc.config != DefaultStoreMonitorConfig() {
		t.Errorf("config = %+v, want defaults", svc.config)
	}
	if svc.String() != "store-monitor" {
		t.Errorf("String() = %q", svc.String())
	}
}

// TestStoreMonitorService_Transitions is not parallel: it reads the shared
// discovery_store_up gauge.
func TestStoreMonitorService_Transitions(t *testing.T) {
	down := errors.New("database is locked")
	pinger := &scriptedPinger{script: []error{nil, down, down, nil}}

	var buf bytes.Buffer
	svc := NewStoreMonitorService(pinger, StoreMonitorConfig{Interval: time.Hour}, zerolog.New(&buf))

	ctx := context.Background()
	steps := []bool{true, false, false, true}
	for i, want := range steps {
		if got := svc.probe(ctx); got != want {
			t.Fatalf("probe %d = %v, want %v", i, got, want)
		}
		wantGauge := 0.0
		if want {
			wantGauge = 1
		}
		if g := testutil.ToFloat64(metrics.StoreUp); g != wantGauge {
			t.Errorf("probe %d: gauge = %v, want %v", i, g, wantGauge)
		}
	}

	logs := buf.String()
	if n := strings.Count(logs, "content store unreachable"); n != 1 {
		t.Errorf("unreachable logged %d times, want 1:\n%s", n, logs)
	}
	if !strings.Contains(logs, "content store reachable again") {
		t.Errorf("recovery not logged:\n%s", logs)
	}
}

func TestStoreMonitorService_ServeProbesImmediately(t *testing.T) {
	t.Parallel()

	pinger := &scriptedPinger{}
	svc := NewStoreMonitorService(pinger, StoreMonitorConfig{Interval: 10 * time.Millisecond}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := svc.Serve(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
	if pinger.calls.Load() < 2 {
		t.Errorf("pinged %d times, want at least 2", pinger.calls.Load())
	}
}
