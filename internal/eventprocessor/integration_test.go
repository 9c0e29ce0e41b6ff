// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package eventprocessor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"

	"github.com/tomtom215/forkcast/internal/config"
	"github.com/tomtom215/forkcast/internal/localstore"
	"github.com/tomtom215/forkcast/internal/normalize"
)

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestLocalWriter_RefreshesCatalogThroughRouter(t *testing.T) {
	t.Parallel()

	store, err := localstore.Open(&config.LocalConfig{InMemory: true}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	catalog := localstore.NewCatalog(store, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := catalog.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	bus := NewGoChannelBus(watermill.NopLogger{})
	defer bus.Close()

	cfg := DefaultRouterConfig()
	cfg.CloseTimeout = time.Second
	router, err := NewRouter(&cfg, nil)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}
	NewLocalChangedHandler(catalog, "local.changed", zerolog.Nop()).Register(router, bus.Subscriber)
	if router.HandlerCount() != 1 {
		t.Fatalf("HandlerCount() = %d, want 1", router.HandlerCount())
	}

	go func() { _ = router.Run(ctx) }()
	<-router.Running()
	if !router.IsRunning() {
		t.Error("IsRunning() = false after Running() closed")
	}

	pub, err := NewPublisher(bus.Publisher, "local.changed")
	if err != nil {
		t.Fatalf("NewPublisher() error = %v", err)
	}
	writer := NewLocalWriter(store, pub, zerolog.Nop())

	rec := normalize.LocalRestaurant{RestaurantID: "r1", RestaurantName: "Rovi", City: "London", CountryCode: "GB"}
	if err := writer.Upsert(ctx, &rec); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	waitFor(t, func() bool { return catalog.Len() == 1 })

	got, err := catalog.GetRecord(ctx, "r1")
	if err != nil || got == nil || got.RestaurantName != "Rovi" {
		t.Fatalf("GetRecord() = %+v, %v", got, err)
	}

	if err := writer.Delete(ctx, "r1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	waitFor(t, func() bool { return catalog.Len() == 0 })

	if err := writer.Delete(ctx, "r1"); !errors.Is(err, localstore.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want localstore.ErrNotFound", err)
	}

	if err := router.Close(); err != nil {
		t.Errorf("router Close() error = %v", err)
	}
}

func TestLocalWriter_StoreErrorSkipsPublish(t *testing.T) {
	t.Parallel()

	store, err := localstore.Open(&config.LocalConfig{InMemory: true}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	bus := NewGoChannelBus(watermill.NopLogger{})
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	messages, err := bus.Subscriber.Subscribe(ctx, "local.changed")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	pub, _ := NewPublisher(bus.Publisher, "local.changed")
	writer := NewLocalWriter(store, pub, zerolog.Nop())

	err = writer.Upsert(ctx, &normalize.LocalRestaurant{RestaurantName: "No ID"})
	if !errors.Is(err, localstore.ErrInvalidRecord) {
		t.Fatalf("Upsert() error = %v, want ErrInvalidRecord", err)
	}

	select {
	case msg := <-messages:
		t.Errorf("unexpected event published: %s", msg.Payload)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestLocalWriter_PublishFailureKeepsRecord(t *testing.T) {
	t.Parallel()

	store, err := localstore.Open(&config.LocalConfig{InMemory: true}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	bus := NewGoChannelBus(watermill.NopLogger{})
	defer bus.Close()

	pub, _ := NewPublisher(bus.Publisher, "local.changed")
	_ = pub.Close()
	writer := NewLocalWriter(store, pub, zerolog.Nop())

	ctx := context.Background()
	err = writer.Upsert(ctx, &normalize.LocalRestaurant{RestaurantID: "l-9", RestaurantName: "Stored Anyway"})
	if !errors.Is(err, ErrPublishFailed) || !errors.Is(err, ErrPublisherClosed) {
		t.Fatalf("Upsert() error = %v, want ErrPublishFailed wrapping ErrPublisherClosed", err)
	}

	if _, err := store.Get(ctx, "l-9"); err != nil {
		t.Errorf("record should be stored despite publish failure: %v", err)
	}
}
