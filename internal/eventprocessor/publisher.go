// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package eventprocessor

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/tomtom215/forkcast/internal/logging"
	"github.com/tomtom215/forkcast/internal/metrics"
)

// Publisher sends local change events to one topic.
type Publisher struct {
	publisher  message.Publisher
	topic      string
	serializer *Serializer

	mu     sync.RWMutex
	closed bool
}

// NewPublisher wraps a Watermill publisher for topic.
func NewPublisher(pub message.Publisher, topic string) (*Publisher, error) {
	if pub == nil {
		return nil, fmt.Errorf("%w: publisher cannot be nil", ErrInvalidConfig)
	}
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrInvalidConfig)
	}
	return &Publisher{
		publisher:  pub,
		topic:      topic,
		serializer: NewSerializer(),
	}, nil
}

// Topic returns the topic events are published to.
func (p *Publisher) Topic() string {
	return p.topic
}

// PublishLocalChanged publishes one change event. The request ID from ctx,
// when present, travels as the correlation ID.
func (p *Publisher) PublishLocalChanged(ctx context.Context, restaurantID, operation string) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	event := NewLocalChangedEvent(restaurantID, operation)
	event.RequestID = logging.RequestIDFromContext(ctx)

	data, err := p.serializer.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(event.EventID, data)
	msg.Metadata.Set("restaurant_id", event.RestaurantID)
	msg.Metadata.Set("operation", event.Operation)
	if event.RequestID != "" {
		middleware.SetCorrelationID(event.RequestID, msg)
	}
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", p.topic, err)
	}

	metrics.EventsPublished.WithLabelValues(p.topic).Inc()
	return nil
}

// Close marks the publisher closed. The underlying Watermill publisher
// belongs to the Bus and is closed there.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
