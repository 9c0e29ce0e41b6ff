// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package config provides centralized configuration management for Forkcast.

Configuration is layered with Koanf v2: struct defaults, then an optional
YAML file, then environment variables. The file is taken from CONFIG_PATH
or the first of DefaultConfigPaths that exists. Only mapped environment
variables are read, so unrelated variables never leak into the config.

# Sections

  - server: HTTP bind address, port and timeouts
  - logging: zerolog level, format and caller info
  - sources: default source mode, per-source timeouts, fan-out, primary
    rate limit and circuit breaker
  - database: DuckDB primary store
  - local: BadgerDB local store and optional seed file
  - events: gochannel or NATS bus for local-store change events
  - ranking: result limits, default radius, relevance noise and seed
  - security: CORS and per-IP rate limiting

# Environment Variables

Selected variables (see envMappings for the complete list):

  - HTTP_PORT: Listen port (default: 8480)
  - LOG_LEVEL / LOG_FORMAT: info / json
  - SOURCE_MODE: hybrid, primary or local (default: hybrid)
  - PRIMARY_TIMEOUT / LOCAL_TIMEOUT: 3s / 1s
  - DUCKDB_PATH: Primary store file (default: /data/forkcast.duckdb)
  - LOCAL_STORE_PATH: Local store directory (default: /data/local)
  - LOCAL_SEED_FILE: JSON seed imported into an empty local store
  - EVENTS_BACKEND: gochannel or nats (default: gochannel)
  - NATS_URL / NATS_EMBEDDED: broker URL / run an embedded server
  - RANKING_RELEVANCE_NOISE / RANKING_SEED: true / 0 (fixed default seed)
  - CORS_ORIGINS: Comma-separated origins (default: *)

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config
