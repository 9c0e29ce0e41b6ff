// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tomtom215/forkcast/internal/config"
	"github.com/tomtom215/forkcast/internal/logging"
	"github.com/tomtom215/forkcast/internal/supervisor"
)

func main() {
	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Warn().Err(err).Msg("Failed to read .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()
	log := logging.WithComponent("server")

	log.Info().
		Str("default_mode", cfg.Sources.DefaultMode).
		Str("db_path", cfg.Database.Path).
		Str("local_path", cfg.Local.Path).
		Bool("local_in_memory", cfg.Local.InMemory).
		Str("events_backend", cfg.Events.Backend).
		Msg("Starting Forkcast")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer func() {
		if err := app.close(); err != nil {
			logging.Error().Err(err).Msg("Error releasing resources")
		}
	}()

	server := app.supervise(tree, logger)
	log.Info().Str("addr", server.Addr).Msg("Serving HTTP once the event router is running")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			log.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	log.Info().Msg("Forkcast stopped")
}
