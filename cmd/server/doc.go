// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

// Package main is the entry point for the Forkcast server.
//
// Forkcast answers "what should I eat" queries: it merges restaurants from a
// primary document store (DuckDB) and a local record store (BadgerDB),
// filters them by place, time and diet, and ranks individual dishes.
//
// # Startup
//
//  1. .env is loaded through godotenv, then configuration through koanf
//     (defaults, config.yaml, environment).
//  2. The primary store opens and creates its schema.
//  3. The local store opens, is seeded from LOCAL_SEED_FILE when empty, and
//     its catalog cache is loaded.
//  4. The event bus (gochannel or NATS), the change publisher and the event
//     router are built. Local writes reach the catalog only through the bus.
//  5. The ranking engine is assembled over a merger of both sources, with a
//     circuit breaker around the primary store.
//  6. The supervisor tree starts the event router, the value log GC loop and
//     the HTTP server. The server listens once the router is running.
//
// # Signals
//
// SIGINT and SIGTERM cancel the tree. The HTTP server drains for
// HTTP_SHUTDOWN_TIMEOUT, the router finishes in-flight events, and the
// stores are closed last.
//
// # Example
//
//	export DUCKDB_PATH=/data/forkcast.duckdb
//	export LOCAL_STORE_PATH=/data/local
//	export LOCAL_SEED_FILE=/data/seed/local.json
//	export EVENTS_BACKEND=nats NATS_EMBEDDED=true
//	./forkcast
package main
