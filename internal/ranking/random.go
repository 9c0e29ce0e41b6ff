// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package ranking

import (
	"math/rand"
	"sync"
)

// defaultSeed is used when the configured seed is zero.
const defaultSeed = 42

// RandomSource yields uniform values in [0, 1).
type RandomSource interface {
	Float64() float64
}

// lockedRand is a seeded math/rand source safe for concurrent requests.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource returns a concurrency-safe seeded source.
// A zero seed selects the fixed default.
func NewRandomSource(seed int64) RandomSource {
	if seed == 0 {
		seed = defaultSeed
	}
	return &lockedRand{
		rng: rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for tie-breaking noise
	}
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}
