// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package api provides the HTTP REST API for Forkcast.

The API is a thin adapter: it parses query parameters into a
models.SearchQuery, calls the ranking engine, and wraps the result in the
standard envelope. It holds no search state of its own.

Endpoints:

	GET    /api/v1/search                   flat dish list plus shortlist
	GET    /api/v1/shortlist                shortlist only
	PUT    /api/v1/local/restaurants/{id}   upsert a local-shape record
	DELETE /api/v1/local/restaurants/{id}   delete a local record
	PUT    /api/v1/primary/restaurants/{id} upsert a primary document and menu
	DELETE /api/v1/primary/restaurants/{id} delete a primary document and menu
	GET    /api/v1/health                   sources, breaker and catalog state
	GET    /api/v1/health/live              liveness probe
	GET    /api/v1/health/ready             readiness probe
	GET    /metrics                         Prometheus exposition

Search parameters:

	city, country_code, lat, lon, radius_km   location
	mood                                      free text
	dietary                                   comma list, e.g. vegan,halal
	meal_period                               breakfast|lunch|dinner|snack|all_day
	day, hour, minute                         weekday name or 0-6, 24h clock
	at=now                                    use the server clock instead
	sort_by                                   relevance|hidden_gem|distance
	limit, per_restaurant                     0 selects the configured default
	mode                                      hybrid|primary|local

Every response uses the envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", ...}}
	{"success": false, "error": {"code": "VALIDATION_ERROR", ...}, "meta": {...}}

Status mapping for searches:

	400 VALIDATION_ERROR     malformed or out-of-range parameters
	503 SERVICE_UNAVAILABLE  every selected source failed
	200                      including degraded results; see data.sources.degraded

Local writes return 202: the record is stored and a change event is
published, and the catalog applies it when the event is handled.

Middleware (see chi_router.go): request ID, real IP, access log, panic
recovery, CORS (go-chi/cors), per-IP rate limits (go-chi/httprate), request
timeout and Prometheus request metrics.
*/
package api
