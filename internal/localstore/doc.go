// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

// Package localstore holds the local restaurant records in BadgerDB and
// serves them to search through Catalog, an in-memory read-through cache.
//
// Records are stored as local-shape JSON under "restaurant:<id>" keys. The
// catalog is loaded once at start; after that only Refresh changes it, and
// Refresh is driven by local-change events so every replica converges.
package localstore
