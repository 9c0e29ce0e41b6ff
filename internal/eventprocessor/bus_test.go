// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package eventprocessor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/nats-io/nats-server/v2/server"

	"github.com/tomtom215/forkcast/internal/config"
	"github.com/tomtom215/forkcast/internal/logging"
)

func TestNewBus_Backends(t *testing.T) {
	t.Parallel()

	bus, err := NewBus(&config.EventsConfig{Backend: BackendGoChannel}, nil)
	if err != nil {
		t.Fatalf("NewBus(gochannel) error = %v", err)
	}
	if bus.Backend() != BackendGoChannel || bus.EmbeddedURL() != "" {
		t.Errorf("backend = %q, embedded = %q", bus.Backend(), bus.EmbeddedURL())
	}
	if err := bus.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	if _, err := NewBus(&config.EventsConfig{Backend: "kafka"}, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewBus(kafka) error = %v, want ErrInvalidConfig", err)
	}
}

func TestNewPublisher_Validation(t *testing.T) {
	t.Parallel()

	bus := NewGoChannelBus(watermill.NopLogger{})
	defer bus.Close()

	if _, err := NewPublisher(nil, "t"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("nil publisher error = %v, want ErrInvalidConfig", err)
	}
	if _, err := NewPublisher(bus.Publisher, ""); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("empty topic error = %v, want ErrInvalidConfig", err)
	}
}

func TestPublisher_PublishLocalChanged(t *testing.T) {
	t.Parallel()

	bus := NewGoChannelBus(watermill.NopLogger{})
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := bus.Subscriber.Subscribe(ctx, "local.changed")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	pub, err := NewPublisher(bus.Publisher, "local.changed")
	if err != nil {
		t.Fatalf("NewPublisher() error = %v", err)
	}

	reqCtx := logging.ContextWithRequestID(ctx, "req-99")
	if err := pub.PublishLocalChanged(reqCtx, "r1", OpUpsert); err != nil {
		t.Fatalf("PublishLocalChanged() error = %v", err)
	}

	select {
	case msg := <-messages:
		msg.Ack()
		event, err := NewSerializer().Unmarshal(msg.Payload)
		if err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if event.RestaurantID != "r1" || event.Operation != OpUpsert {
			t.Errorf("event = %+v", event)
		}
		if msg.UUID != event.EventID {
			t.Errorf("message UUID %q should equal event ID %q", msg.UUID, event.EventID)
		}
		if got := middleware.MessageCorrelationID(msg); got != "req-99" {
			t.Errorf("correlation ID = %q, want req-99", got)
		}
		if got := msg.Metadata.Get("restaurant_id"); got != "r1" {
			t.Errorf("restaurant_id metadata = %q", got)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for the published event")
	}

	if err := pub.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := pub.PublishLocalChanged(ctx, "r1", OpUpsert); !errors.Is(err, ErrPublisherClosed) {
		t.Errorf("publish after Close error = %v, want ErrPublisherClosed", err)
	}
}

func TestRouterConfigFrom(t *testing.T) {
	t.Parallel()

	rc := RouterConfigFrom(&config.EventsConfig{
		RouterRetryCount:           0,
		RouterRetryInitialInterval: 250 * time.Millisecond,
		RouterCloseTimeout:         5 * time.Second,
	})
	if rc.RetryMaxRetries != 0 {
		t.Errorf("RetryMaxRetries = %d, want 0", rc.RetryMaxRetries)
	}
	if rc.RetryInitialInterval != 250*time.Millisecond {
		t.Errorf("RetryInitialInterval = %v", rc.RetryInitialInterval)
	}
	if rc.CloseTimeout != 5*time.Second {
		t.Errorf("CloseTimeout = %v", rc.CloseTimeout)
	}
	if rc.RetryMultiplier != DefaultRouterConfig().RetryMultiplier {
		t.Errorf("RetryMultiplier = %v, want default", rc.RetryMultiplier)
	}
}

func TestNewBus_EmbeddedNATS(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping embedded NATS server in short mode")
	}
	t.Parallel()

	bus, err := NewBus(&config.EventsConfig{
		Backend:            BackendNATS,
		EmbeddedServer:     true,
		EmbeddedHost:       "127.0.0.1",
		EmbeddedPort:       server.RANDOM_PORT,
		RouterCloseTimeout: time.Second,
	}, nil)
	if err != nil {
		t.Fatalf("NewBus(nats) error = %v", err)
	}
	defer bus.Close()

	if bus.Backend() != BackendNATS || bus.EmbeddedURL() == "" {
		t.Fatalf("backend = %q, embedded URL = %q", bus.Backend(), bus.EmbeddedURL())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	messages, err := bus.Subscriber.Subscribe(ctx, "forkcast.test")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	pub, err := NewPublisher(bus.Publisher, "forkcast.test")
	if err != nil {
		t.Fatalf("NewPublisher() error = %v", err)
	}
	// Core NATS drops messages sent before the subscription reaches the
	// server, so publish until one arrives.
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		if err := pub.PublishLocalChanged(ctx, "r5", OpDelete); err != nil {
			t.Fatalf("PublishLocalChanged() error = %v", err)
		}
		select {
		case msg := <-messages:
			msg.Ack()
			event, err := NewSerializer().Unmarshal(msg.Payload)
			if err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if event.RestaurantID != "r5" || event.Operation != OpDelete {
				t.Errorf("event = %+v", event)
			}
			return
		case <-ticker.C:
		case <-ctx.Done():
			t.Fatal("timed out waiting for event over NATS")
		}
	}
}
