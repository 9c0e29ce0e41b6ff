// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package supervisor runs Forkcast's long-lived services under suture v4.

# Tree

	forkcast
	├── data-layer
	│   └── local-store-gc     BadgerDB value log GC (services.LocalStoreGCService)
	├── messaging-layer
	│   └── event-router       applies local-store change events (services.EventRouterService)
	└── api-layer
	    └── http-server        chi router (services.HTTPServerService)

Each layer restarts its own services with suture's backoff, so a crashing
GC loop never takes the HTTP server down with it.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddDataService(services.NewLocalStoreGCService(store, cfg.Local.GCInterval, cfg.Local.GCRatio, logger))
	tree.AddMessagingService(services.NewEventRouterService(router))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout).
	    WaitFor(router.Running()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

Canceling ctx stops every service; UnstoppedServiceReport names any that
missed ShutdownTimeout.

# Logging

Supervisor events (start, failure, backoff, restart) go through
sutureslog, backed by the zerolog slog adapter from internal/logging.
*/
package supervisor
