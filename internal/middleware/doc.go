// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package middleware provides the HTTP middleware forkcast adds on top of the
chi and go-chi ecosystem.

  - RequestID: accepts or generates X-Request-ID and stores it in the
    logging context, so log lines, the response envelope and published change
    events share one ID.
  - PrometheusMetrics: forkcast_api_requests_total and
    forkcast_api_request_duration_seconds, labeled by chi route pattern.

CORS, rate limiting, panic recovery and real-IP extraction come from
go-chi/cors, go-chi/httprate and chi's own middleware package; the api
package assembles the stack.
*/
package middleware
