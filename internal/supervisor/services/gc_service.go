// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GarbageCollector is satisfied by *localstore.Store.
type GarbageCollector interface {
	CollectGarbage(ctx context.Context, ratio float64) (int, error)
}

// LocalStoreGCService periodically reclaims BadgerDB value log space left
// behind by local-store upserts and deletes.
//
// A failed run is logged and retried on the next tick. It never fails the
// service, since a stale value log costs disk and not correctness.
type LocalStoreGCService struct {
	store    GarbageCollector
	interval time.Duration
	ratio    float64
	logger   zerolog.Logger
	name     string
}

// NewLocalStoreGCService creates the service. A non-positive interval
// defaults to 10m and a ratio outside (0, 1) defaults to 0.5.
func NewLocalStoreGCService(store GarbageCollector, interval time.Duration, ratio float64, logger zerolog.Logger) *LocalStoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if ratio <= 0 || ratio >= 1 {
		ratio = 0.5
	}
	return &LocalStoreGCService{
		store:    store,
		interval: interval,
		ratio:    ratio,
		logger:   logger.With().Str("component", "local-store-gc").Logger(),
		name:     "local-store-gc",
	}
}

// Serve implements suture.Service.
func (s *LocalStoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *LocalStoreGCService) runOnce(ctx context.Context) {
	start := time.Now()
	rewritten, err := s.store.CollectGarbage(ctx, s.ratio)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn().Err(err).Msg("Value log GC failed")
		}
		return
	}
	s.logger.Debug().
		Int("rewritten", rewritten).
		Dur("duration", time.Since(start)).
		Msg("Value log GC complete")
}

// String implements fmt.Stringer; suture uses it in log messages.
func (s *LocalStoreGCService) String() string {
	return s.name
}
