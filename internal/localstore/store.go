// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package localstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/forkcast/internal/config"
	"github.com/tomtom215/forkcast/internal/metrics"
	"github.com/tomtom215/forkcast/internal/normalize"
)

// Key prefix for BadgerDB storage
const restaurantKeyPrefix = "restaurant:"

var (
	// ErrNotFound is returned when no record exists for an ID.
	ErrNotFound = errors.New("local record not found")

	// ErrInvalidRecord is returned for records without a restaurant ID.
	ErrInvalidRecord = errors.New("invalid local record")
)

// Store persists local-shape restaurant records in BadgerDB.
type Store struct {
	db     *badger.DB
	owned  bool
	logger zerolog.Logger
}

// Open opens the BadgerDB described by cfg. The returned Store owns the
// database and closes it on Close.
func Open(cfg *config.LocalConfig, logger zerolog.Logger) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		// 0750 per gosec G301
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create local store directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for local store: %w", err)
	}

	s := NewStore(db, logger)
	s.owned = true
	return s, nil
}

// NewStore wraps an already open BadgerDB. Close leaves db open.
func NewStore(db *badger.DB, logger zerolog.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger.With().Str("component", "localstore").Logger(),
	}
}

// Close closes the database when the Store opened it.
func (s *Store) Close() error {
	if s.owned {
		return s.db.Close()
	}
	return nil
}

func recordKey(id string) []byte {
	return []byte(restaurantKeyPrefix + id)
}

// Put creates or replaces a record.
func (s *Store) Put(ctx context.Context, rec *normalize.LocalRestaurant) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(rec.RestaurantID) == "" {
		return fmt.Errorf("%w: restaurant_id is required", ErrInvalidRecord)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal local record: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(recordKey(rec.RestaurantID), data); err != nil {
			return fmt.Errorf("set local record: %w", err)
		}
		return nil
	})
}

// PutMany writes records in one batch. Records without an ID are skipped
// and counted as malformed. It returns the number written.
func (s *Store) PutMany(ctx context.Context, recs []normalize.LocalRestaurant) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	written := 0
	for i := range recs {
		rec := &recs[i]
		if strings.TrimSpace(rec.RestaurantID) == "" {
			s.logger.Warn().Int("index", i).Str("name", rec.RestaurantName).Msg("Skipping local record without restaurant_id")
			metrics.RecordMalformed("local", "restaurant", 1)
			continue
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return 0, fmt.Errorf("marshal local record %s: %w", rec.RestaurantID, err)
		}
		if err := wb.Set(recordKey(rec.RestaurantID), data); err != nil {
			return 0, fmt.Errorf("batch set %s: %w", rec.RestaurantID, err)
		}
		written++
	}

	if err := wb.Flush(); err != nil {
		return 0, fmt.Errorf("flush local batch: %w", err)
	}
	return written, nil
}

// Get returns the record for id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*normalize.LocalRestaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rec normalize.LocalRestaurant
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get local record: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes the record for id. Missing records return ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		key := recordKey(id)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("get local record: %w", err)
		}
		if err := txn.Delete(key); err != nil {
			return fmt.Errorf("delete local record: %w", err)
		}
		return nil
	})
}

// List returns every decodable record in key order. Undecodable values are
// logged, counted and skipped.
func (s *Store) List(ctx context.Context) ([]normalize.LocalRestaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []normalize.LocalRestaurant
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(restaurantKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			var rec normalize.LocalRestaurant
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				s.logger.Warn().Err(err).Str("key", string(item.Key())).Msg("Skipping undecodable local record")
				metrics.RecordMalformed("local", "restaurant", 1)
				continue
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list local records: %w", err)
	}
	return out, nil
}

// Count returns the number of stored keys, decodable or not.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(restaurantKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count local records: %w", err)
	}
	return n, nil
}

// CollectGarbage runs BadgerDB value log GC until nothing is left to
// rewrite and returns the number of rewritten files. In-memory stores have
// no value log and return zero.
func (s *Store) CollectGarbage(ctx context.Context, ratio float64) (int, error) {
	rewritten := 0
	for {
		if err := ctx.Err(); err != nil {
			return rewritten, err
		}
		err := s.db.RunValueLogGC(ratio)
		switch {
		case err == nil:
			rewritten++
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrGCInMemoryMode):
			result := "noop"
			if rewritten > 0 {
				result = "rewritten"
			}
			metrics.LocalStoreGCRuns.WithLabelValues(result).Inc()
			return rewritten, nil
		default:
			metrics.LocalStoreGCRuns.WithLabelValues("failure").Inc()
			return rewritten, fmt.Errorf("local store value log gc: %w", err)
		}
	}
}
