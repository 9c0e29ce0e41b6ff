// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package localstore

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/forkcast/internal/normalize"
)

// SeedIfEmpty imports the JSON array of local-shape records at path when the
// store holds no records. It returns the number imported; a non-empty store
// or an empty path imports nothing.
func (s *Store) SeedIfEmpty(ctx context.Context, path string) (int, error) {
	if path == "" {
		return 0, nil
	}

	n, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Debug().Int("existing", n).Msg("Local store already populated, skipping seed")
		return 0, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied seed path
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var recs []normalize.LocalRestaurant
	if err := json.Unmarshal(data, &recs); err != nil {
		return 0, fmt.Errorf("decode seed file %s: %w", path, err)
	}

	written, err := s.PutMany(ctx, recs)
	if err != nil {
		return 0, fmt.Errorf("import seed: %w", err)
	}

	s.logger.Info().
		Str("path", path).
		Int("imported", written).
		Int("skipped", len(recs)-written).
		Msg("Seeded local store")
	return written, nil
}
