// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

// Package logging provides centralized zerolog-based structured logging for Forkcast.
//
// JSON output is the production default; console output is for local
// development. Every line carries "service":"forkcast".
//
// # Quick Start
//
//	import "github.com/tomtom215/forkcast/internal/logging"
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("city", "Lisbon").Int("results", 12).Msg("Search served")
//	logging.Error().Err(err).Str("source", "primary").Msg("Source fetch failed")
//
// # Configuration
//
// The config package maps these settings onto Config:
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// # Component Loggers
//
// Long-lived components take a zerolog.Logger at construction and tag it:
//
//	logger := logging.WithComponent("merger")
//	logger.Warn().Str("source", "local").Msg("Source unavailable")
//
// # Request Context
//
// The API middleware stores a request ID in the context. Ctx and CtxWith add
// it to every line logged for that request, and the event publisher copies it
// into the change events the request produces:
//
//	logging.Ctx(ctx).Info().Msg("Restaurant upserted")
//
// # slog Adapter
//
// Suture (via sutureslog) and Watermill (via watermill.NewSlogLogger) take a
// *slog.Logger. NewSlogLogger bridges them onto the global zerolog logger.
// slog groups become dotted key prefixes.
//
// # Testing
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
//	logger.Info().Msg("test message")
//
// Components that do not care about log output take zerolog.Nop().
package logging
