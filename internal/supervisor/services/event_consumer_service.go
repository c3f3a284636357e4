// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package services

import (
	"context"
	"fmt"
)

// EventRunner consumes events until ctx is done. *events.Consumer satisfies
// it.
type EventRunner interface {
	Run(ctx context.Context) error
}

// EventConsumerService supervises the domain event consumer. A subscription
// failure returns an error so suture restarts it with backoff.
type EventConsumerService struct {
	runner EventRunner
	name   string
}

// NewEventConsumerService wraps runner.
func NewEventConsumerService(runner EventRunner) *EventConsumerService {
	return &EventConsumerService{runner: runner, name: "event-consumer"}
}

// Serve implements suture.Service.
func (s *EventConsumerService) Serve(ctx context.Context) error {
	err := s.runner.Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("event consumer: %w", err)
	}
	return nil
}

// String names the service in supervisor logs.
func (s *EventConsumerService) String() string {
	return s.name
}
