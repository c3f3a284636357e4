// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/tomtom215/bookmarket/internal/logging"
	"github.com/tomtom215/bookmarket/internal/metrics"
	"github.com/tomtom215/bookmarket/internal/models"
	"github.com/tomtom215/bookmarket/internal/resilience"
)

// ErrClosed is returned after Close.
var ErrClosed = errors.New("event bus is closed")

// Config configures a Bus.
type Config struct {
	// NATSURL selects the NATS transport. Empty means in-process.
	NATSURL       string
	QueueGroup    string
	BufferSize    int64
	MaxReconnects int
	ReconnectWait time.Duration
	CloseTimeout  time.Duration
}

// DefaultConfig returns an in-process configuration.
func DefaultConfig() Config {
	return Config{
		QueueGroup:    "bookmarket",
		BufferSize:    256,
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
		CloseTimeout:  5 * time.Second,
	}
}

// Bus publishes and subscribes to domain events.
type Bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	breaker    *resilience.Breaker
	transport  string
	logger     zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// NewBus creates a bus on the configured transport.
func NewBus(cfg Config) (*Bus, error) {
	wmLogger := NewWatermillLogger()
	b := &Bus{logger: logging.WithComponent("events")}

	if cfg.NATSURL == "" {
		ch := gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: cfg.BufferSize,
		}, wmLogger)
		b.publisher, b.subscriber, b.transport = ch, ch, "gochannel"
		return b, nil
	}

	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(cfg.MaxReconnects),
		natsgo.ReconnectWait(cfg.ReconnectWait),
		natsgo.DisconnectErrHandler(func(nc *natsgo.Conn, err error) {
			if err != nil {
				wmLogger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			wmLogger.Info("NATS reconnected", watermill.LogFields{"url": nc.ConnectedUrl()})
		}),
	}
	marshaler := &wmNats.NATSMarshaler{}

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         cfg.NATSURL,
		NatsOptions: natsOpts,
		Marshaler:   marshaler,
		JetStream:   wmNats.JetStreamConfig{Disabled: true},
	}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("create nats publisher: %w", err)
	}

	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              cfg.NATSURL,
		QueueGroupPrefix: cfg.QueueGroup,
		SubscribersCount: 1,
		CloseTimeout:     cfg.CloseTimeout,
		NatsOptions:      natsOpts,
		Unmarshaler:      marshaler,
		JetStream:        wmNats.JetStreamConfig{Disabled: true},
	}, wmLogger)
	if err != nil {
		_ = pub.Close()
		return nil, fmt.Errorf("create nats subscriber: %w", err)
	}

	b.publisher, b.subscriber, b.transport = pub, sub, "nats"
	b.breaker = resilience.NewBreaker("event-publisher", resilience.DefaultBreakerConfig())
	return b, nil
}

// Transport names the active transport.
func (b *Bus) Transport() string {
	return b.transport
}

// Publish serializes payload and publishes it on topic.
func (b *Bus) Publish(ctx context.Context, topic string, eventID string, payload interface{}) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrClosed
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}
	msg := message.NewMessage(eventID, data)
	if id := logging.RequestIDFromContext(ctx); id != "" {
		msg.Metadata.Set("request_id", id)
	}

	if b.breaker != nil {
		_, err = b.breaker.Execute(func() (interface{}, error) {
			return nil, b.publisher.Publish(topic, msg)
		})
	} else {
		err = b.publisher.Publish(topic, msg)
	}
	metrics.RecordEventPublished(topic, err)
	return err
}

// Subscribe returns the message stream for topic. Messages must be acked.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil, ErrClosed
	}
	return b.subscriber.Subscribe(ctx, topic)
}

// Close shuts both sides down. It is safe to call more than once.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	var errs []error
	if err := b.publisher.Close(); err != nil {
		errs = append(errs, err)
	}
	// GoChannel is both publisher and subscriber.
	if b.transport != "gochannel" {
		if err := b.subscriber.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Emitter turns served requests into events. A nil *Emitter is valid and
// publishes nothing.
type Emitter struct {
	bus    *Bus
	logger zerolog.Logger
}

// NewEmitter creates an emitter on bus.
func NewEmitter(bus *Bus) *Emitter {
	return &Emitter{bus: bus, logger: logging.WithComponent("events")}
}

// PriceQuoted publishes a PriceQuoted event.
func (e *Emitter) PriceQuoted(ctx context.Context, req models.PriceRequest, q models.PriceQuote) {
	if e == nil || e.bus == nil {
		return
	}
	ev := PriceQuoted{
		Envelope:  newEnvelope(logging.RequestIDFromContext(ctx)),
		Title:     req.Title,
		Author:    req.Author,
		Genre:     req.Genre,
		Condition: req.Condition,
		Price:     q.Price,
		Currency:  q.Currency,
		Source:    string(q.Source),
	}
	e.publish(ctx, TopicPriceQuoted, ev.EventID, ev)
}

// RecommendationServed publishes a RecommendationServed event.
func (e *Emitter) RecommendationServed(ctx context.Context, ev RecommendationServed) {
	if e == nil || e.bus == nil {
		return
	}
	ev.Envelope = newEnvelope(logging.RequestIDFromContext(ctx))
	e.publish(ctx, TopicRecommendationServed, ev.EventID, ev)
}

func (e *Emitter) publish(ctx context.Context, topic, id string, payload interface{}) {
	if err := e.bus.Publish(ctx, topic, id, payload); err != nil {
		e.logger.Warn().Err(err).Str("topic", topic).Msg("Failed to publish event")
	}
}
