// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package eventprocessor

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is the current event schema version.
// Increment this when making breaking changes to LocalChangedEvent.
const SchemaVersion = 1

// Operations carried by LocalChangedEvent.
const (
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// LocalChangedEvent announces that one local-store record was written.
// It carries no record body: consumers re-read the store, so replicas that
// share the store converge even if events arrive out of order.
type LocalChangedEvent struct {
	SchemaVersion int       `json:"schema_version,omitempty"`
	EventID       string    `json:"event_id"`
	RestaurantID  string    `json:"restaurant_id"`
	Operation     string    `json:"operation"`
	OccurredAt    time.Time `json:"occurred_at"`
	RequestID     string    `json:"request_id,omitempty"`
}

// NewLocalChangedEvent creates an event with a fresh ID and timestamp.
func NewLocalChangedEvent(restaurantID, operation string) *LocalChangedEvent {
	return &LocalChangedEvent{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.New().String(),
		RestaurantID:  restaurantID,
		Operation:     operation,
		OccurredAt:    time.Now().UTC(),
	}
}

// Validate checks the required fields.
func (e *LocalChangedEvent) Validate() error {
	if e.EventID == "" {
		return fmt.Errorf("%w: event_id is required", ErrInvalidEvent)
	}
	if strings.TrimSpace(e.RestaurantID) == "" {
		return fmt.Errorf("%w: restaurant_id is required", ErrInvalidEvent)
	}
	switch e.Operation {
	case OpUpsert, OpDelete:
	default:
		return fmt.Errorf("%w: unknown operation %q", ErrInvalidEvent, e.Operation)
	}
	return nil
}
