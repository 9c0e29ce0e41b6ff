// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package sources

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/forkcast/internal/metrics"
	"github.com/tomtom215/forkcast/internal/models"
	"github.com/tomtom215/forkcast/internal/normalize"
)

// MergerConfig controls how sources are fetched.
type MergerConfig struct {
	// PrimaryTimeout bounds the whole primary fetch. Default: 3s.
	PrimaryTimeout time.Duration
	// LocalTimeout bounds the whole local fetch. Default: 1s.
	LocalTimeout time.Duration
	// MaxRestaurants caps each provider's listing. Default: 500.
	MaxRestaurants int
	// MenuConcurrency bounds parallel ListMenuItems calls per source. Default: 8.
	MenuConcurrency int
}

// DefaultMergerConfig returns production defaults.
func DefaultMergerConfig() MergerConfig {
	return MergerConfig{
		PrimaryTimeout:  3 * time.Second,
		LocalTimeout:    time.Second,
		MaxRestaurants:  500,
		MenuConcurrency: 8,
	}
}

// WorkingSet is the merged, per-request restaurant set with menus attached.
type WorkingSet struct {
	Restaurants []models.Restaurant
	Report      models.SourceReport
}

// ItemCount returns the number of menu items across all restaurants.
func (w *WorkingSet) ItemCount() int {
	n := 0
	for i := range w.Restaurants {
		n += len(w.Restaurants[i].Menu)
	}
	return n
}

// Merger fetches both sources and merges them into a WorkingSet.
type Merger struct {
	primary Provider
	local   Provider
	config  MergerConfig
	logger  zerolog.Logger
}

// NewMerger creates a merger. Either provider may be nil when that source is
// not configured; selecting it then reports it unavailable.
//
//nolint:gocritic // hugeParam: config is copied once at construction
func NewMerger(primary, local Provider, cfg MergerConfig, logger zerolog.Logger) *Merger {
	if cfg.MenuConcurrency <= 0 {
		cfg.MenuConcurrency = 1
	}
	return &Merger{
		primary: primary,
		local:   local,
		config:  cfg,
		logger:  logger.With().Str("component", "source-merger").Logger(),
	}
}

type fetchResult struct {
	restaurants []models.Restaurant
	outcome     models.SourceOutcome
	err         error
}

// Fetch reads the sources selected by mode and merges them. In hybrid mode
// both fetches run concurrently. A failed source is reported in the
// SourceReport and the response is marked degraded; an error is returned
// only when no selected source succeeded.
func (m *Merger) Fetch(ctx context.Context, mode models.SourceMode) (*WorkingSet, error) {
	if mode == "" {
		mode = models.ModeHybrid
	}

	report := models.SourceReport{
		Mode:    mode,
		Primary: models.SourceOutcome{Status: models.SourceStatusSkipped},
		Local:   models.SourceOutcome{Status: models.SourceStatusSkipped},
	}

	var primaryRes, localRes *fetchResult
	var wg sync.WaitGroup

	if mode.Includes(models.SourcePrimary) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			primaryRes = m.fetchSource(ctx, m.primary, models.SourcePrimary, m.config.PrimaryTimeout)
		}()
	}
	if mode.Includes(models.SourceLocal) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			localRes = m.fetchSource(ctx, m.local, models.SourceLocal, m.config.LocalTimeout)
		}()
	}
	wg.Wait()

	var primaryList, localList []models.Restaurant
	var errs []error
	succeeded := 0

	if primaryRes != nil {
		report.Primary = primaryRes.outcome
		if primaryRes.err != nil {
			errs = append(errs, primaryRes.err)
		} else {
			primaryList = primaryRes.restaurants
			succeeded++
		}
	}
	if localRes != nil {
		report.Local = localRes.outcome
		if localRes.err != nil {
			errs = append(errs, localRes.err)
		} else {
			localList = localRes.restaurants
			succeeded++
		}
	}

	if succeeded == 0 {
		return nil, errors.Join(errs...)
	}

	if len(errs) > 0 {
		report.Degraded = true
		failed := models.SourcePrimary
		if localRes != nil && localRes.err != nil {
			failed = models.SourceLocal
		}
		metrics.RecordDegraded(string(failed))
		m.logger.Warn().
			Err(errors.Join(errs...)).
			Str("failed_source", string(failed)).
			Msg("Serving degraded results from remaining source")
	}

	merged, duplicates := Merge(primaryList, localList)
	report.Duplicates = duplicates
	if duplicates > 0 {
		metrics.MergeDuplicates.Add(float64(duplicates))
	}

	m.logger.Debug().
		Str("mode", string(mode)).
		Int("primary_restaurants", len(primaryList)).
		Int("local_restaurants", len(localList)).
		Int("duplicates", duplicates).
		Int("merged", len(merged)).
		Msg("Merged source records")

	return &WorkingSet{Restaurants: merged, Report: report}, nil
}

// fetchSource lists restaurants and then their menus under one timeout.
// Any failure marks the whole source unavailable.
func (m *Merger) fetchSource(ctx context.Context, p Provider, src models.DataSource, timeout time.Duration) *fetchResult {
	start := time.Now()
	res := &fetchResult{}
	defer func() {
		metrics.RecordSourceFetch(string(src), time.Since(start), len(res.restaurants), res.err)
	}()

	if p == nil {
		res.err = fmt.Errorf("%w: %s: not configured", ErrSourceUnavailable, src)
		res.outcome = models.SourceOutcome{Status: models.SourceStatusUnavailable, Error: "not configured"}
		return res
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	restaurants, report, err := p.ListRestaurants(ctx, ListFilter{Limit: m.config.MaxRestaurants})
	if err != nil {
		return m.failed(res, src, err)
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.config.MenuConcurrency)
	for i := range restaurants {
		r := &restaurants[i]
		g.Go(func() error {
			items, itemReport, err := p.ListMenuItems(gctx, r.ID)
			if err != nil {
				return err
			}
			kept := items[:0]
			orphans := 0
			for _, item := range items {
				if item.RestaurantID != r.ID {
					orphans++
					continue
				}
				kept = append(kept, item)
			}
			r.Menu = kept

			mu.Lock()
			report.Add(itemReport)
			report.DroppedItems += orphans
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return m.failed(res, src, err)
	}

	metrics.RecordMalformed(string(src), normalize.KindRestaurant, report.DroppedRestaurants)
	metrics.RecordMalformed(string(src), normalize.KindMenuItem, report.DroppedItems)
	if report.Total() > 0 {
		m.logger.Debug().
			Str("source", string(src)).
			Int("dropped_restaurants", report.DroppedRestaurants).
			Int("dropped_items", report.DroppedItems).
			Msg("Dropped malformed records")
	}

	items := 0
	for i := range restaurants {
		items += len(restaurants[i].Menu)
	}

	res.restaurants = restaurants
	res.outcome = models.SourceOutcome{
		Status:      models.SourceStatusOK,
		Restaurants: len(restaurants),
		Items:       items,
		Dropped:     report.Total(),
	}
	return res
}

func (m *Merger) failed(res *fetchResult, src models.DataSource, err error) *fetchResult {
	if !errors.Is(err, ErrSourceUnavailable) {
		err = fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, src, err)
	}
	res.err = err
	res.outcome = models.SourceOutcome{Status: models.SourceStatusUnavailable, Error: err.Error()}
	return res
}

// MergeKey returns the dedup key: lowercase "{country_code}_{city}_{name}"
// with every run of whitespace collapsed to a single underscore.
func MergeKey(r *models.Restaurant) string {
	raw := strings.ToLower(r.Location.CountryCode + "_" + r.Location.City + "_" + r.Name)
	return strings.Join(strings.Fields(raw), "_")
}

// Merge combines primary and local restaurants. A local record whose key
// matches a primary record is discarded whole. Order is primary records
// first, then surviving local records, each in source order. The number of
// discarded local records is returned.
func Merge(primary, local []models.Restaurant) ([]models.Restaurant, int) {
	out := make([]models.Restaurant, 0, len(primary)+len(local))
	index := make(map[string]int, len(primary)+len(local))
	duplicates := 0

	add := func(r *models.Restaurant) {
		key := MergeKey(r)
		if at, ok := index[key]; ok {
			if out[at].Priority >= r.Priority {
				if r.DataSource != out[at].DataSource {
					duplicates++
				}
				return
			}
			out[at] = *r
			return
		}
		index[key] = len(out)
		out = append(out, *r)
	}

	for i := range primary {
		add(&primary[i])
	}
	for i := range local {
		add(&local[i])
	}
	return out, duplicates
}
