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

	"github.com/thejerf/suture/v4"
)

type mockEventRouter struct {
	runErr     error
	returnNow  bool
	runCount   atomic.Int32
	closeCount atomic.Int32
}

func (m *mockEventRouter) Run(ctx context.Context) error {
	m.runCount.Add(1)
	if m.runErr != nil || m.returnNow {
		return m.runErr
	}
	<-ctx.Done()
	return nil
}

func (m *mockEventRouter) Close() error {
	m.closeCount.Add(1)
	return nil
}

func TestEventRouterService_StopsOnCancel(t *testing.T) {
	t.Parallel()

	router := &mockEventRouter{}
	svc := NewEventRouterService(router)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := serveAsync(ctx, svc)
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return")
	}
	if router.closeCount.Load() != 0 {
		t.Error("Close should not be called after a clean Run")
	}
	if svc.String() != "event-router" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestEventRouterService_EarlyStopIsNotRestarted(t *testing.T) {
	t.Parallel()

	runErr := errors.New("subscribe: connection refused")
	tests := []struct {
		name      string
		router    *mockEventRouter
		wantErr   error
		wantClose int32
	}{
		{"run error", &mockEventRouter{runErr: runErr}, runErr, 1},
		{"closed elsewhere", &mockEventRouter{returnNow: true}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := NewEventRouterService(tt.router).Serve(context.Background())
			if !errors.Is(err, suture.ErrDoNotRestart) {
				t.Errorf("Serve() error = %v, want ErrDoNotRestart", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Serve() error = %v, want %v", err, tt.wantErr)
			}
			if got := tt.router.closeCount.Load(); got != tt.wantClose {
				t.Errorf("Close calls = %d, want %d", got, tt.wantClose)
			}
		})
	}
}

func TestEventRouterService_UnderSupervisor(t *testing.T) {
	t.Parallel()

	router := &mockEventRouter{runErr: errors.New("boom")}
	sup := suture.New("test-sup", suture.Spec{
		FailureThreshold: 5,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          time.Second,
	})
	sup.Add(NewEventRouterService(router))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	<-sup.ServeBackground(ctx)

	if got := router.runCount.Load(); got != 1 {
		t.Errorf("Run calls = %d, want 1", got)
	}
}
