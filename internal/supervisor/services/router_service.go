// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package services

import (
	"context"
	"fmt"

	"github.com/thejerf/suture/v4"
)

// EventRouter is the lifecycle of *eventprocessor.Router.
type EventRouter interface {
	Run(ctx context.Context) error
	Close() error
}

// EventRouterService runs the Watermill router that applies local-store
// change events to the catalog.
//
// Run blocks until ctx is canceled, after which the router has already
// closed itself and drained in-flight messages. A Watermill router cannot
// be run twice, so an early stop removes the service instead of restarting
// it; the readiness probe then reports the process as not ready.
type EventRouterService struct {
	router EventRouter
	name   string
}

// NewEventRouterService wraps router.
func NewEventRouterService(router EventRouter) *EventRouterService {
	return &EventRouterService{router: router, name: "event-router"}
}

// Serve implements suture.Service.
func (s *EventRouterService) Serve(ctx context.Context) error {
	err := s.router.Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		_ = s.router.Close()
		return fmt.Errorf("event router stopped: %w: %w", err, suture.ErrDoNotRestart)
	}
	return suture.ErrDoNotRestart
}

// String implements fmt.Stringer; suture uses it in log messages.
func (s *EventRouterService) String() string {
	return s.name
}
