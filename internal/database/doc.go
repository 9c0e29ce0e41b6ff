// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package database is the DuckDB-backed primary store.

Restaurant and menu documents are kept in the primary source's own JSON
shape (normalize.PrimaryRestaurant and normalize.PrimaryMenuItem), one row
per document, so the normalization boundary stays in package normalize. *DB
satisfies sources.PrimaryStore and is read through the circuit breaker for
every hybrid or primary search. Writes come from the operator API.

An empty path opens an in-memory database, which the tests use.
*/
package database
