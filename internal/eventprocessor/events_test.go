// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package eventprocessor

import (
	"errors"
	"testing"
)

func TestNewLocalChangedEvent(t *testing.T) {
	t.Parallel()

	a := NewLocalChangedEvent("r1", OpUpsert)
	b := NewLocalChangedEvent("r1", OpUpsert)

	if a.EventID == "" || a.EventID == b.EventID {
		t.Errorf("event IDs should be unique and non-empty: %q, %q", a.EventID, b.EventID)
	}
	if a.SchemaVersion != SchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", a.SchemaVersion, SchemaVersion)
	}
	if a.OccurredAt.IsZero() {
		t.Error("OccurredAt should be set")
	}
}

func TestLocalChangedEvent_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		event   LocalChangedEvent
		wantErr bool
	}{
		{"upsert", LocalChangedEvent{EventID: "e1", RestaurantID: "r1", Operation: OpUpsert}, false},
		{"delete", LocalChangedEvent{EventID: "e1", RestaurantID: "r1", Operation: OpDelete}, false},
		{"missing event id", LocalChangedEvent{RestaurantID: "r1", Operation: OpUpsert}, true},
		{"blank restaurant", LocalChangedEvent{EventID: "e1", RestaurantID: " ", Operation: OpUpsert}, true},
		{"unknown operation", LocalChangedEvent{EventID: "e1", RestaurantID: "r1", Operation: "merge"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.event.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidEvent) {
				t.Errorf("error %v should wrap ErrInvalidEvent", err)
			}
		})
	}
}

func TestSerializer(t *testing.T) {
	t.Parallel()

	s := NewSerializer()
	event := NewLocalChangedEvent("r42", OpDelete)
	event.RequestID = "req-1"

	data, err := s.Marshal(event)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got, err := s.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.EventID != event.EventID || got.RestaurantID != "r42" || got.Operation != OpDelete || got.RequestID != "req-1" {
		t.Errorf("Unmarshal() = %+v, want %+v", got, event)
	}

	if _, err := s.Marshal(&LocalChangedEvent{}); err == nil {
		t.Error("Marshal() of an invalid event should fail")
	}
	if _, err := s.Unmarshal([]byte(`{"event_id":"e1","operation":"upsert"}`)); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("Unmarshal() without restaurant_id error = %v, want ErrInvalidEvent", err)
	}
	if _, err := s.Unmarshal([]byte("not json")); err == nil {
		t.Error("Unmarshal() of garbage should fail")
	}
}
