// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package localstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/forkcast/internal/cache"
	"github.com/tomtom215/forkcast/internal/metrics"
	"github.com/tomtom215/forkcast/internal/normalize"
)

// Refresh reasons reported to metrics.
const (
	ReasonStartup = "startup"
	ReasonUpsert  = "upsert"
	ReasonDelete  = "delete"
	ReasonMiss    = "miss"
)

// Catalog is the read-through cache over the local store. It is loaded once
// and then changed only by Refresh, so search requests never touch badger
// on the hot path.
type Catalog struct {
	store  *Store
	cache  *cache.Cache[normalize.LocalRestaurant]
	logger zerolog.Logger

	loadMu sync.Mutex
	loaded bool
}

// NewCatalog creates an empty catalog over store.
func NewCatalog(store *Store, logger zerolog.Logger) *Catalog {
	return &Catalog{
		store:  store,
		cache:  cache.New[normalize.LocalRestaurant](0),
		logger: logger.With().Str("component", "local_catalog").Logger(),
	}
}

// Load replaces the cached content with everything in the store.
func (c *Catalog) Load(ctx context.Context) error {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	return c.loadLocked(ctx)
}

func (c *Catalog) loadLocked(ctx context.Context) error {
	recs, err := c.store.List(ctx)
	if err != nil {
		return fmt.Errorf("load local catalog: %w", err)
	}

	next := make(map[string]normalize.LocalRestaurant, len(recs))
	for i := range recs {
		next[recs[i].RestaurantID] = recs[i]
	}
	c.cache.Replace(next)
	c.loaded = true

	metrics.LocalCacheRefreshes.WithLabelValues(ReasonStartup).Inc()
	metrics.LocalCacheEntries.Set(float64(c.cache.Len()))
	c.logger.Info().Int("restaurants", len(next)).Msg("Local catalog loaded")
	return nil
}

func (c *Catalog) ensureLoaded(ctx context.Context) error {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	if c.loaded {
		return nil
	}
	return c.loadLocked(ctx)
}

// Refresh re-reads one record from the store. A record that no longer
// exists is dropped from the cache.
func (c *Catalog) Refresh(ctx context.Context, id string) error {
	rec, err := c.store.Get(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		c.cache.Delete(id)
		metrics.LocalCacheRefreshes.WithLabelValues(ReasonDelete).Inc()
		c.logger.Debug().Str("restaurant_id", id).Msg("Local catalog entry removed")
	case err != nil:
		return fmt.Errorf("refresh local record %s: %w", id, err)
	default:
		c.cache.Set(id, *rec)
		metrics.LocalCacheRefreshes.WithLabelValues(ReasonUpsert).Inc()
		c.logger.Debug().Str("restaurant_id", id).Msg("Local catalog entry refreshed")
	}

	metrics.LocalCacheEntries.Set(float64(c.cache.Len()))
	return nil
}

// ListRecords returns cached records ordered by ID, at most limit when
// limit is positive.
func (c *Catalog) ListRecords(ctx context.Context, limit int) ([]normalize.LocalRestaurant, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	recs := c.cache.Values()
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// GetRecord returns the cached record for id. A cache miss reads through to
// the store; a record missing from both returns (nil, nil).
func (c *Catalog) GetRecord(ctx context.Context, id string) (*normalize.LocalRestaurant, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	if rec, ok := c.cache.Get(id); ok {
		return &rec, nil
	}

	rec, err := c.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	c.cache.Set(id, *rec)
	metrics.LocalCacheRefreshes.WithLabelValues(ReasonMiss).Inc()
	metrics.LocalCacheEntries.Set(float64(c.cache.Len()))
	return rec, nil
}

// Len returns the number of cached restaurants.
func (c *Catalog) Len() int {
	return c.cache.Len()
}

// Stats returns the underlying cache statistics.
func (c *Catalog) Stats() cache.Stats {
	return c.cache.GetStats()
}

// HitRate returns the percentage of record lookups served from memory.
func (c *Catalog) HitRate() float64 {
	return c.cache.HitRate()
}
