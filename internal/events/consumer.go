// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package events

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/bookmarket/internal/logging"
	"github.com/tomtom215/bookmarket/internal/metrics"
)

// Consumer reads every topic, logs and counts the events.
type Consumer struct {
	bus    *Bus
	topics []string
	counts map[string]*atomic.Int64
	logger zerolog.Logger
}

// NewConsumer creates a consumer for the given topics, or all topics when
// none are given.
func NewConsumer(bus *Bus, topics ...string) *Consumer {
	if len(topics) == 0 {
		topics = Topics
	}
	counts := make(map[string]*atomic.Int64, len(topics))
	for _, t := range topics {
		counts[t] = &atomic.Int64{}
	}
	return &Consumer{
		bus:    bus,
		topics: topics,
		counts: counts,
		logger: logging.WithComponent("event-consumer"),
	}
}

// Count returns how many events were consumed from topic.
func (c *Consumer) Count(topic string) int64 {
	if n, ok := c.counts[topic]; ok {
		return n.Load()
	}
	return 0
}

// Run subscribes and consumes until ctx is done.
func (c *Consumer) Run(ctx context.Context) error {
	streams := make(map[string]<-chan *message.Message, len(c.topics))
	for _, topic := range c.topics {
		ch, err := c.bus.Subscribe(ctx, topic)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
		streams[topic] = ch
	}
	c.logger.Info().Strs("topics", c.topics).Str("transport", c.bus.Transport()).Msg("Event consumer started")

	var wg sync.WaitGroup
	for topic, ch := range streams {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.drain(ctx, topic, ch)
		}()
	}
	wg.Wait()
	return ctx.Err()
}

func (c *Consumer) drain(ctx context.Context, topic string, ch <-chan *message.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			c.handle(topic, msg)
		}
	}
}

func (c *Consumer) handle(topic string, msg *message.Message) {
	defer msg.Ack()

	ev, err := Decode(topic, msg.Payload)
	if err != nil {
		c.logger.Warn().Err(err).Str("topic", topic).Str("message_id", msg.UUID).Msg("Dropping malformed event")
		return
	}

	c.counts[topic].Add(1)
	metrics.RecordEventConsumed(topic)

	log := c.logger.Debug().Str("topic", topic).Str("event_id", msg.UUID)
	if id := msg.Metadata.Get("request_id"); id != "" {
		log = log.Str("request_id", id)
	}
	switch e := ev.(type) {
	case *PriceQuoted:
		log.Str("title", e.Title).Str("source", e.Source).Float64("price", e.Price).Msg("Price quoted")
	case *RecommendationServed:
		log.Str("served_by", e.ServedBy).Str("outcome", e.Outcome).Int("count", e.Count).Msg("Recommendations served")
	default:
		log.Msg("Event consumed")
	}
}
