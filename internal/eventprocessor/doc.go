// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package eventprocessor carries local-store change events over Watermill.

Writes to the local store go through LocalWriter, which stores the record and
publishes a LocalChangedEvent. A Router handler consumes the event and
refreshes the local catalog entry. The catalog therefore changes only through
the bus, whether one process or many share the store.

# Backends

  - gochannel: in-process pub/sub. The default for single-node runs and tests.
  - nats: core NATS through watermill-nats with JetStream disabled. Every
    replica subscribes without a queue group, so all of them refresh.
    An embedded nats-server can be started in-process for single-node
    deployments that still want the NATS path.

# Event Format

Events are JSON (goccy/go-json):

	{
	  "schema_version": 1,
	  "event_id": "c0a8...",
	  "restaurant_id": "r1",
	  "operation": "upsert",
	  "occurred_at": "2026-01-01T12:00:00Z",
	  "request_id": "..."
	}

The message UUID equals the event ID, and the request ID travels as the
Watermill correlation ID.

# Router Middleware

  - Recoverer: panics become errors
  - Retry: exponential backoff for refresh failures

Undecodable events are acknowledged and dropped; retrying cannot fix them.
*/
package eventprocessor
