// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package eventprocessor

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/forkcast/internal/logging"
	"github.com/tomtom215/forkcast/internal/metrics"
)

// Refresher reloads one record into a read cache.
type Refresher interface {
	Refresh(ctx context.Context, restaurantID string) error
}

// LocalChangedHandler applies change events to a Refresher.
type LocalChangedHandler struct {
	refresher  Refresher
	topic      string
	serializer *Serializer
	logger     zerolog.Logger
}

// NewLocalChangedHandler creates the consumer for topic.
func NewLocalChangedHandler(refresher Refresher, topic string, logger zerolog.Logger) *LocalChangedHandler {
	return &LocalChangedHandler{
		refresher:  refresher,
		topic:      topic,
		serializer: NewSerializer(),
		logger:     logger.With().Str("component", "local_changed_handler").Logger(),
	}
}

// Handle implements message.NoPublishHandlerFunc. Undecodable events are
// acknowledged and dropped since a retry cannot fix them; refresh errors
// are returned so the Retry middleware tries again.
func (h *LocalChangedHandler) Handle(msg *message.Message) error {
	event, err := h.serializer.Unmarshal(msg.Payload)
	if err != nil {
		h.logger.Warn().Err(err).Str("message_uuid", msg.UUID).Msg("Dropping undecodable change event")
		metrics.RecordEventHandled(h.topic, err)
		return nil
	}

	ctx := msg.Context()
	if event.RequestID != "" {
		ctx = logging.ContextWithRequestID(ctx, event.RequestID)
	}

	if err := h.refresher.Refresh(ctx, event.RestaurantID); err != nil {
		metrics.RecordEventHandled(h.topic, err)
		return fmt.Errorf("refresh %s: %w", event.RestaurantID, err)
	}

	metrics.RecordEventHandled(h.topic, nil)
	h.logger.Debug().
		Str("restaurant_id", event.RestaurantID).
		Str("operation", event.Operation).
		Str("request_id", event.RequestID).
		Msg("Applied local change")
	return nil
}

// Register subscribes the handler on router.
func (h *LocalChangedHandler) Register(r *Router, sub message.Subscriber) {
	r.AddConsumerHandler("local_changed_refresh", h.topic, sub, h.Handle)
}
