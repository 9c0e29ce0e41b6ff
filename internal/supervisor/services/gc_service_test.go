// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type mockCollector struct {
	calls atomic.Int32
	err   error
	ratio atomic.Value
}

func (m *mockCollector) CollectGarbage(_ context.Context, ratio float64) (int, error) {
	m.calls.Add(1)
	m.ratio.Store(ratio)
	return 1, m.err
}

func TestNewLocalStoreGCService_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		interval     time.Duration
		ratio        float64
		wantInterval time.Duration
		wantRatio    float64
	}{
		{0, 0, 10 * time.Minute, 0.5},
		{-time.Second, 1, 10 * time.Minute, 0.5},
		{time.Minute, 0.7, time.Minute, 0.7},
	}
	for _, tt := range tests {
		svc := NewLocalStoreGCService(&mockCollector{}, tt.interval, tt.ratio, zerolog.Nop())
		if svc.interval != tt.wantInterval || svc.ratio != tt.wantRatio {
			t.Errorf("(%v, %v) -> (%v, %v), want (%v, %v)",
				tt.interval, tt.ratio, svc.interval, svc.ratio, tt.wantInterval, tt.wantRatio)
		}
	}
}

func TestLocalStoreGCService_RunsOnEachTick(t *testing.T) {
	t.Parallel()

	store := &mockCollector{}
	svc := NewLocalStoreGCService(store, 10*time.Millisecond, 0.3, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := serveAsync(ctx, svc)

	deadline := time.Now().Add(time.Second)
	for store.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() error = %v, want context.Canceled", err)
	}
	if store.calls.Load() < 2 {
		t.Errorf("CollectGarbage calls = %d, want >= 2", store.calls.Load())
	}
	if got, _ := store.ratio.Load().(float64); got != 0.3 {
		t.Errorf("ratio = %v, want 0.3", got)
	}
}

func TestLocalStoreGCService_FailureKeepsRunning(t *testing.T) {
	t.Parallel()

	store := &mockCollector{err: errors.New("disk full")}
	svc := NewLocalStoreGCService(store, 10*time.Millisecond, 0.5, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() error = %v, want DeadlineExceeded", err)
	}
	if store.calls.Load() < 2 {
		t.Errorf("CollectGarbage calls = %d, want retries after failure", store.calls.Load())
	}
}
