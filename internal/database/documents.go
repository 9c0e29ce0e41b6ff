// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/forkcast/internal/logging"
	"github.com/tomtom215/forkcast/internal/metrics"
	"github.com/tomtom215/forkcast/internal/models"
	"github.com/tomtom215/forkcast/internal/normalize"
)

const (
	tableRestaurants = "restaurants"
	tableMenuItems   = "menu_items"
)

// ListRestaurantDocs returns up to limit restaurant documents ordered by id.
// A limit of zero or less returns every document. Documents that no longer
// decode are skipped and counted as malformed.
func (db *DB) ListRestaurantDocs(ctx context.Context, limit int) ([]normalize.PrimaryRestaurant, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := "SELECT id, doc FROM restaurants ORDER BY id"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		metrics.RecordDBQuery("list", tableRestaurants, time.Since(start), err)
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer closeQuietly(rows)

	docs, err := scanDocs[normalize.PrimaryRestaurant](rows, normalize.KindRestaurant)
	metrics.RecordDBQuery("list", tableRestaurants, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return docs, nil
}

// ListMenuDocs returns every menu document for a restaurant, ordered by id.
func (db *DB) ListMenuDocs(ctx context.Context, restaurantID string) ([]normalize.PrimaryMenuItem, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		"SELECT id, doc FROM menu_items WHERE restaurant_id = ? ORDER BY id", restaurantID)
	if err != nil {
		metrics.RecordDBQuery("list", tableMenuItems, time.Since(start), err)
		return nil, fmt.Errorf("list menu items for %s: %w", restaurantID, err)
	}
	defer closeQuietly(rows)

	docs, err := scanDocs[normalize.PrimaryMenuItem](rows, normalize.KindMenuItem)
	metrics.RecordDBQuery("list", tableMenuItems, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("list menu items for %s: %w", restaurantID, err)
	}
	return docs, nil
}

func scanDocs[T any](rows *sql.Rows, kind string) ([]T, error) {
	var out []T
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		var doc T
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			logging.Warn().Str("id", id).Str("kind", kind).Err(err).Msg("Skipping undecodable primary document")
			metrics.RecordMalformed(string(models.SourcePrimary), kind, 1)
			continue
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// UpsertRestaurant inserts or replaces a restaurant document.
//
//nolint:gocritic // hugeParam: doc passed by value, it is encoded once
func (db *DB) UpsertRestaurant(ctx context.Context, doc normalize.PrimaryRestaurant) error {
	if doc.ID == "" || doc.Name == "" {
		return fmt.Errorf("%w: restaurant requires id and name", ErrInvalidDocument)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode restaurant %s: %w", doc.ID, err)
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO restaurants (id, name, city, country_code, doc, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			city = excluded.city,
			country_code = excluded.country_code,
			doc = excluded.doc,
			updated_at = excluded.updated_at`,
		doc.ID, doc.Name, doc.Location.City, doc.Location.CountryCode, string(raw), time.Now().UTC())
	metrics.RecordDBQuery("upsert", tableRestaurants, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("upsert restaurant %s: %w", doc.ID, err)
	}
	return nil
}

// UpsertMenuItem inserts or replaces a menu item document. The owning
// restaurant must exist.
//
//nolint:gocritic // hugeParam: doc passed by value, it is encoded once
func (db *DB) UpsertMenuItem(ctx context.Context, doc normalize.PrimaryMenuItem) error {
	if doc.ID == "" || doc.RestaurantID == "" || doc.Name == "" {
		return fmt.Errorf("%w: menu item requires id, restaurantId and name", ErrInvalidDocument)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode menu item %s: %w", doc.ID, err)
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	exists, err := db.restaurantExists(ctx, doc.RestaurantID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("restaurant %s: %w", doc.RestaurantID, ErrNotFound)
	}

	start := time.Now()
	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO menu_items (id, restaurant_id, doc, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			restaurant_id = excluded.restaurant_id,
			doc = excluded.doc,
			updated_at = excluded.updated_at`,
		doc.ID, doc.RestaurantID, string(raw), time.Now().UTC())
	metrics.RecordDBQuery("upsert", tableMenuItems, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("upsert menu item %s: %w", doc.ID, err)
	}
	return nil
}

// DeleteRestaurant removes a restaurant and its menu.
func (db *DB) DeleteRestaurant(ctx context.Context, id string) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM menu_items WHERE restaurant_id = ?", id); err != nil {
		metrics.RecordDBQuery("delete", tableMenuItems, time.Since(start), err)
		return fmt.Errorf("delete menu for %s: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM restaurants WHERE id = ?", id)
	metrics.RecordDBQuery("delete", tableRestaurants, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("delete restaurant %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("restaurant %s: %w", id, ErrNotFound)
	}
	return tx.Commit()
}

// CountRestaurants returns the number of stored restaurant documents.
func (db *DB) CountRestaurants(ctx context.Context) (int64, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var n int64
	start := time.Now()
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM restaurants").Scan(&n)
	metrics.RecordDBQuery("count", tableRestaurants, time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("count restaurants: %w", err)
	}
	return n, nil
}

func (db *DB) restaurantExists(ctx context.Context, id string) (bool, error) {
	var n int64
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM restaurants WHERE id = ?", id).Scan(&n); err != nil {
		return false, fmt.Errorf("lookup restaurant %s: %w", id, err)
	}
	return n > 0, nil
}
