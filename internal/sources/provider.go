// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package sources

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/forkcast/internal/models"
	"github.com/tomtom215/forkcast/internal/normalize"
)

// ErrSourceUnavailable marks a provider that failed or timed out.
var ErrSourceUnavailable = errors.New("source unavailable")

// ListFilter bounds a restaurant listing. Providers return at most Limit
// records when Limit is positive.
type ListFilter struct {
	Limit int
}

// Provider is the narrow read interface the merger uses. Implementations
// return canonical records; source-specific layouts never cross it.
type Provider interface {
	Source() models.DataSource
	ListRestaurants(ctx context.Context, filter ListFilter) ([]models.Restaurant, normalize.Report, error)
	ListMenuItems(ctx context.Context, restaurantID string) ([]models.MenuItem, normalize.Report, error)
}

// PrimaryStore is the raw read API of the primary document store.
type PrimaryStore interface {
	ListRestaurantDocs(ctx context.Context, limit int) ([]normalize.PrimaryRestaurant, error)
	ListMenuDocs(ctx context.Context, restaurantID string) ([]normalize.PrimaryMenuItem, error)
}

// LocalStore is the raw read API of the local record store.
type LocalStore interface {
	ListRecords(ctx context.Context, limit int) ([]normalize.LocalRestaurant, error)
	GetRecord(ctx context.Context, restaurantID string) (*normalize.LocalRestaurant, error)
}

// DropFunc receives every record rejected by normalization.
type DropFunc func(err error)

// PrimaryProvider adapts a PrimaryStore to Provider.
type PrimaryProvider struct {
	store  PrimaryStore
	onDrop DropFunc
}

// NewPrimaryProvider creates the primary adapter. onDrop may be nil.
func NewPrimaryProvider(store PrimaryStore, onDrop DropFunc) *PrimaryProvider {
	return &PrimaryProvider{store: store, onDrop: onDrop}
}

// Source implements Provider.
func (p *PrimaryProvider) Source() models.DataSource { return models.SourcePrimary }

// ListRestaurants implements Provider.
func (p *PrimaryProvider) ListRestaurants(ctx context.Context, filter ListFilter) ([]models.Restaurant, normalize.Report, error) {
	docs, err := p.store.ListRestaurantDocs(ctx, filter.Limit)
	if err != nil {
		return nil, normalize.Report{}, fmt.Errorf("list primary restaurants: %w", err)
	}
	out, dropped := normalize.Convert(docs, normalize.PrimaryRestaurantToModel, p.onDrop)
	return out, normalize.Report{DroppedRestaurants: dropped}, nil
}

// ListMenuItems implements Provider.
func (p *PrimaryProvider) ListMenuItems(ctx context.Context, restaurantID string) ([]models.MenuItem, normalize.Report, error) {
	docs, err := p.store.ListMenuDocs(ctx, restaurantID)
	if err != nil {
		return nil, normalize.Report{}, fmt.Errorf("list primary menu %s: %w", restaurantID, err)
	}
	out, dropped := normalize.Convert(docs, normalize.PrimaryMenuItemToModel, p.onDrop)
	return out, normalize.Report{DroppedItems: dropped}, nil
}

// LocalProvider adapts a LocalStore to Provider.
type LocalProvider struct {
	store  LocalStore
	onDrop DropFunc
}

// NewLocalProvider creates the local adapter. onDrop may be nil.
func NewLocalProvider(store LocalStore, onDrop DropFunc) *LocalProvider {
	return &LocalProvider{store: store, onDrop: onDrop}
}

// Source implements Provider.
func (p *LocalProvider) Source() models.DataSource { return models.SourceLocal }

// ListRestaurants implements Provider. Embedded menus are not returned here;
// ListMenuItems serves them so that item drops are counted once.
func (p *LocalProvider) ListRestaurants(ctx context.Context, filter ListFilter) ([]models.Restaurant, normalize.Report, error) {
	records, err := p.store.ListRecords(ctx, filter.Limit)
	if err != nil {
		return nil, normalize.Report{}, fmt.Errorf("list local restaurants: %w", err)
	}
	out, dropped := normalize.Convert(records, func(raw normalize.LocalRestaurant) (models.Restaurant, error) {
		r, _, err := normalize.LocalRestaurantToModel(raw)
		r.Menu = nil
		return r, err
	}, p.onDrop)
	return out, normalize.Report{DroppedRestaurants: dropped}, nil
}

// ListMenuItems implements Provider.
func (p *LocalProvider) ListMenuItems(ctx context.Context, restaurantID string) ([]models.MenuItem, normalize.Report, error) {
	record, err := p.store.GetRecord(ctx, restaurantID)
	if err != nil {
		return nil, normalize.Report{}, fmt.Errorf("get local record %s: %w", restaurantID, err)
	}
	if record == nil {
		return nil, normalize.Report{}, nil
	}
	out, dropped := normalize.Convert(record.Menu, func(raw normalize.LocalMenuItem) (models.MenuItem, error) {
		return normalize.LocalMenuItemToModel(raw, restaurantID)
	}, p.onDrop)
	return out, normalize.Report{DroppedItems: dropped}, nil
}
