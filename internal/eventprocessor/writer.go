// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package eventprocessor

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/forkcast/internal/normalize"
)

// RecordStore is the write side of the local store.
type RecordStore interface {
	Put(ctx context.Context, rec *normalize.LocalRestaurant) error
	Delete(ctx context.Context, restaurantID string) error
}

// LocalWriter writes to the local store and announces each write. The
// catalog changes only when the event comes back through the router, so a
// single-node deployment and a replicated one take the same path.
type LocalWriter struct {
	store     RecordStore
	publisher *Publisher
	logger    zerolog.Logger
}

// NewLocalWriter creates a writer.
func NewLocalWriter(store RecordStore, publisher *Publisher, logger zerolog.Logger) *LocalWriter {
	return &LocalWriter{
		store:     store,
		publisher: publisher,
		logger:    logger.With().Str("component", "local_writer").Logger(),
	}
}

// Upsert stores rec and publishes an upsert event.
func (w *LocalWriter) Upsert(ctx context.Context, rec *normalize.LocalRestaurant) error {
	if err := w.store.Put(ctx, rec); err != nil {
		return err
	}
	return w.announce(ctx, rec.RestaurantID, OpUpsert)
}

// Delete removes a record and publishes a delete event.
func (w *LocalWriter) Delete(ctx context.Context, restaurantID string) error {
	if err := w.store.Delete(ctx, restaurantID); err != nil {
		return err
	}
	return w.announce(ctx, restaurantID, OpDelete)
}

// announce publishes after a successful write. A failed publish is returned
// to the caller: the write is durable but this replica's catalog is stale
// until the next write or restart.
func (w *LocalWriter) announce(ctx context.Context, restaurantID, op string) error {
	if err := w.publisher.PublishLocalChanged(ctx, restaurantID, op); err != nil {
		w.logger.Error().Err(err).
			Str("restaurant_id", restaurantID).
			Str("operation", op).
			Msg("Local write stored but change event not published")
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	return nil
}
