// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package eventprocessor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	natsgo "github.com/nats-io/nats.go"

	"github.com/tomtom215/forkcast/internal/config"
)

// Supported bus backends.
const (
	BackendGoChannel = "gochannel"
	BackendNATS      = "nats"
)

// Bus bundles the publisher and subscriber of one backend, plus the
// embedded NATS server when this process runs it.
type Bus struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber

	backend  string
	embedded *EmbeddedServer
}

// NewBus creates the bus selected by cfg.Backend.
func NewBus(cfg *config.EventsConfig, logger watermill.LoggerAdapter) (*Bus, error) {
	if logger == nil {
		logger = watermill.NopLogger{}
	}

	switch cfg.Backend {
	case BackendGoChannel, "":
		return NewGoChannelBus(logger), nil
	case BackendNATS:
		return newNATSBus(cfg, logger)
	default:
		return nil, fmt.Errorf("%w: unknown events backend %q", ErrInvalidConfig, cfg.Backend)
	}
}

// NewGoChannelBus creates an in-process bus. Messages published while no
// handler is subscribed are dropped.
func NewGoChannelBus(logger watermill.LoggerAdapter) *Bus {
	ch := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, logger)

	return &Bus{
		Publisher:  ch,
		Subscriber: ch,
		backend:    BackendGoChannel,
	}
}

func newNATSBus(cfg *config.EventsConfig, logger watermill.LoggerAdapter) (*Bus, error) {
	bus := &Bus{backend: BackendNATS}

	url := cfg.NATSURL
	if cfg.EmbeddedServer {
		srv, err := NewEmbeddedServer(&ServerConfig{Host: cfg.EmbeddedHost, Port: cfg.EmbeddedPort})
		if err != nil {
			return nil, fmt.Errorf("start embedded NATS: %w", err)
		}
		bus.embedded = srv
		url = srv.ClientURL()
		logger.Info("Embedded NATS server started", watermill.LogFields{"url": url})
	}

	natsOpts := []natsgo.Option{
		natsgo.Name("forkcast"),
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2 * time.Second),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{
				"url": nc.ConnectedUrl(),
			})
		}),
	}

	// Core NATS: every replica gets every change event. No queue group,
	// so the subscription fans out instead of load balancing.
	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         url,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream:   wmNats.JetStreamConfig{Disabled: true},
	}, logger)
	if err != nil {
		bus.shutdownEmbedded()
		return nil, fmt.Errorf("create watermill publisher: %w", err)
	}
	bus.Publisher = pub

	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              url,
		SubscribersCount: 1,
		CloseTimeout:     cfg.RouterCloseTimeout,
		AckWaitTimeout:   30 * time.Second,
		NatsOptions:      natsOpts,
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream:        wmNats.JetStreamConfig{Disabled: true},
	}, logger)
	if err != nil {
		_ = pub.Close()
		bus.shutdownEmbedded()
		return nil, fmt.Errorf("create watermill subscriber: %w", err)
	}
	bus.Subscriber = sub

	return bus, nil
}

// Backend returns the backend name.
func (b *Bus) Backend() string {
	return b.backend
}

// EmbeddedURL returns the embedded server URL, or "" when none runs here.
func (b *Bus) EmbeddedURL() string {
	if b.embedded == nil {
		return ""
	}
	return b.embedded.ClientURL()
}

// Close closes the publisher, the subscriber and the embedded server.
func (b *Bus) Close() error {
	var errs []error
	if b.Publisher != nil {
		if err := b.Publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close publisher: %w", err))
		}
	}
	// gochannel uses one value for both sides.
	if b.Subscriber != nil && any(b.Subscriber) != any(b.Publisher) {
		if err := b.Subscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close subscriber: %w", err))
		}
	}
	b.shutdownEmbedded()
	return errors.Join(errs...)
}

func (b *Bus) shutdownEmbedded() {
	if b.embedded == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = b.embedded.Shutdown(ctx)
	b.embedded = nil
}
