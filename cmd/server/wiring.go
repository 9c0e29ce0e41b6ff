// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"

	"github.com/tomtom215/forkcast/internal/api"
	"github.com/tomtom215/forkcast/internal/config"
	"github.com/tomtom215/forkcast/internal/database"
	"github.com/tomtom215/forkcast/internal/eventprocessor"
	"github.com/tomtom215/forkcast/internal/localstore"
	"github.com/tomtom215/forkcast/internal/logging"
	"github.com/tomtom215/forkcast/internal/models"
	"github.com/tomtom215/forkcast/internal/ranking"
	"github.com/tomtom215/forkcast/internal/sources"
	"github.com/tomtom215/forkcast/internal/supervisor"
	"github.com/tomtom215/forkcast/internal/supervisor/services"
)

// application holds every long-lived component. close releases them in
// reverse dependency order once the supervisor tree has stopped.
type application struct {
	cfg *config.Config

	db        *database.DB
	store     *localstore.Store
	catalog   *localstore.Catalog
	bus       *eventprocessor.Bus
	publisher *eventprocessor.Publisher
	router    *eventprocessor.Router
	breaker   *sources.BreakerProvider
	engine    *ranking.Engine
	handler   http.Handler

	closers []func() error
}

// newApplication opens the stores, builds the event pipeline and the
// ranking engine, and assembles the HTTP handler. On error everything
// opened so far is closed.
func newApplication(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (app *application, err error) {
	app = &application{cfg: cfg}
	defer func() {
		if err != nil {
			_ = app.close()
			app = nil
		}
	}()

	app.db, err = database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open primary store: %w", err)
	}
	app.onClose(app.db.Close)

	app.store, err = localstore.Open(&cfg.Local, logger)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	app.onClose(app.store.Close)

	seeded, err := app.store.SeedIfEmpty(ctx, cfg.Local.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("seed local store: %w", err)
	}
	if seeded > 0 {
		logger.Info().Int("records", seeded).Msg("Local store seeded")
	}

	app.catalog = localstore.NewCatalog(app.store, logger)
	if err := app.catalog.Load(ctx); err != nil {
		return nil, fmt.Errorf("load local catalog: %w", err)
	}

	if err := app.buildEvents(logger); err != nil {
		return nil, err
	}

	onDrop := func(err error) {
		logger.Debug().Err(err).Msg("Dropped malformed record")
	}
	app.breaker = sources.NewBreakerProvider(
		sources.NewPrimaryProvider(app.db, onDrop),
		breakerConfig(&cfg.Sources),
		logger,
	)
	merger := sources.NewMerger(
		app.breaker,
		sources.NewLocalProvider(app.catalog, onDrop),
		mergerConfig(&cfg.Sources),
		logger,
	)

	app.engine, err = ranking.NewEngine(rankingConfig(cfg), merger, logger)
	if err != nil {
		return nil, fmt.Errorf("create ranking engine: %w", err)
	}

	handler, err := api.NewHandler(api.Deps{
		Searcher:    app.engine,
		Local:       eventprocessor.NewLocalWriter(app.store, app.publisher, logger),
		Primary:     app.db,
		Database:    app.db,
		Breaker:     app.breaker,
		Catalog:     app.catalog,
		Events:      app.router,
		DefaultMode: models.SourceMode(cfg.Sources.DefaultMode),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create api handler: %w", err)
	}
	mw := api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Server, &cfg.Security))
	app.handler = api.NewRouter(handler, mw).SetupChi()

	return app, nil
}

// buildEvents creates the bus, the change publisher and the router that
// refreshes the catalog.
func (app *application) buildEvents(logger zerolog.Logger) error {
	wmLogger := watermill.NewSlogLogger(logging.NewSlogLoggerFor(logger))

	bus, err := eventprocessor.NewBus(&app.cfg.Events, wmLogger)
	if err != nil {
		return fmt.Errorf("create event bus: %w", err)
	}
	app.bus = bus
	app.onClose(bus.Close)

	app.publisher, err = eventprocessor.NewPublisher(bus.Publisher, app.cfg.Events.Topic)
	if err != nil {
		return fmt.Errorf("create change publisher: %w", err)
	}
	app.onClose(app.publisher.Close)

	routerCfg := eventprocessor.RouterConfigFrom(&app.cfg.Events)
	app.router, err = eventprocessor.NewRouter(&routerCfg, wmLogger)
	if err != nil {
		return fmt.Errorf("create event router: %w", err)
	}
	eventprocessor.NewLocalChangedHandler(app.catalog, app.cfg.Events.Topic, logger).
		Register(app.router, bus.Subscriber)

	logger.Info().
		Str("backend", bus.Backend()).
		Str("topic", app.cfg.Events.Topic).
		Msg("Event bus ready")
	return nil
}

// supervise adds the application's services to tree.
func (app *application) supervise(tree *supervisor.SupervisorTree, logger zerolog.Logger) *http.Server {
	server := &http.Server{
		Addr:              net.JoinHostPort(app.cfg.Server.Host, strconv.Itoa(app.cfg.Server.Port)),
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      writeTimeout(app.cfg.Server.Timeout),
		IdleTimeout:       120 * time.Second,
	}

	if app.cfg.Local.GCInterval > 0 && !app.cfg.Local.InMemory {
		tree.AddDataService(services.NewLocalStoreGCService(app.store, app.cfg.Local.GCInterval, app.cfg.Local.GCRatio, logger))
	}
	tree.AddMessagingService(services.NewEventRouterService(app.router))
	tree.AddAPIService(services.NewHTTPServerService(server, app.cfg.Server.ShutdownTimeout).
		WaitFor(app.router.Running()))
	return server
}

func (app *application) onClose(fn func() error) {
	app.closers = append(app.closers, fn)
}

func (app *application) close() error {
	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	app.closers = nil
	return errors.Join(errs...)
}

// writeTimeout leaves headroom over the request timeout so the timeout
// middleware can still write its response.
func writeTimeout(requestTimeout time.Duration) time.Duration {
	if requestTimeout <= 0 {
		return 60 * time.Second
	}
	return requestTimeout + 5*time.Second
}

func breakerConfig(s *config.SourcesConfig) sources.BreakerConfig {
	bc := sources.DefaultBreakerConfig()
	if s.Breaker.MaxRequests > 0 {
		bc.MaxRequests = s.Breaker.MaxRequests
	}
	if s.Breaker.Interval > 0 {
		bc.Interval = s.Breaker.Interval
	}
	if s.Breaker.Timeout > 0 {
		bc.Timeout = s.Breaker.Timeout
	}
	if s.Breaker.MinRequests > 0 {
		bc.MinRequests = s.Breaker.MinRequests
	}
	if s.Breaker.FailureRatio > 0 {
		bc.FailureRatio = s.Breaker.FailureRatio
	}
	bc.RequestsPerSecond = s.PrimaryRPS
	if s.PrimaryBurst > 0 {
		bc.Burst = s.PrimaryBurst
	}
	return bc
}

func mergerConfig(s *config.SourcesConfig) sources.MergerConfig {
	mc := sources.DefaultMergerConfig()
	if s.PrimaryTimeout > 0 {
		mc.PrimaryTimeout = s.PrimaryTimeout
	}
	if s.LocalTimeout > 0 {
		mc.LocalTimeout = s.LocalTimeout
	}
	if s.MaxRestaurants > 0 {
		mc.MaxRestaurants = s.MaxRestaurants
	}
	if s.MenuConcurrency > 0 {
		mc.MenuConcurrency = s.MenuConcurrency
	}
	return mc
}

func rankingConfig(cfg *config.Config) *ranking.Config {
	rc := ranking.DefaultConfig()
	r := &cfg.Ranking
	if r.DefaultLimit > 0 {
		rc.Limits.DefaultLimit = r.DefaultLimit
	}
	if r.MaxLimit > 0 {
		rc.Limits.MaxLimit = r.MaxLimit
	}
	if r.DefaultPerRestaurant > 0 {
		rc.Limits.DefaultPerRestaurant = r.DefaultPerRestaurant
	}
	if r.MaxPerRestaurant > 0 {
		rc.Limits.MaxPerRestaurant = r.MaxPerRestaurant
	}
	if r.DefaultRadiusKm > 0 {
		rc.DefaultRadiusKm = r.DefaultRadiusKm
	}
	if cfg.Sources.DefaultMode != "" {
		rc.DefaultMode = models.SourceMode(cfg.Sources.DefaultMode)
	}
	rc.RelevanceNoise = r.RelevanceNoise
	rc.Seed = r.Seed
	return rc
}
