// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/bookmarket/internal/metrics"
)

func TestBreaker_OpensAfterFailureRatio(t *testing.T) {
	b := NewBreaker("test-open", BreakerConfig{
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Hour,
		MinRequests:  4,
		FailureRatio: 0.5,
	})

	boom := errors.New("boom")
	for i := 0; i < 4; i++ {
		if _, err := b.Execute(func() (interface{}, error) { return nil, boom }); !errors.Is(err, boom) {
			t.Fatalf("call %d error = %v, want boom", i, err)
		}
	}

	if got := b.State(); got != "open" {
		t.Fatalf("State() = %q, want open", got)
	}
	_, err := b.Execute(func() (interface{}, error) { return "never", nil })
	if !IsRejected(err) {
		t.Errorf("Execute() on open breaker error = %v, want rejection", err)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("test-open")); got != 2 {
		t.Errorf("state gauge = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerRequests.WithLabelValues("test-open", "rejected")); got != 1 {
		t.Errorf("rejected requests = %v, want 1", got)
	}
}

func TestBreaker_StaysClosedBelowMinimum(t *testing.T) {
	b := NewBreaker("test-closed", DefaultBreakerConfig())

	for i := 0; i < 9; i++ {
		_, _ = b.Execute(func() (interface{}, error) { return nil, errors.New("fail") })
	}
	if got := b.State(); got != "closed" {
		t.Errorf("State() = %q after 9 failures, want closed", got)
	}
	if b.Name() != "test-closed" {
		t.Errorf("Name() = %q", b.Name())
	}
}

func TestCall_Typed(t *testing.T) {
	b := NewBreaker("test-call", DefaultBreakerConfig())

	got, err := Call(b, func() (int, error) { return 42, nil })
	if err != nil || got != 42 {
		t.Errorf("Call() = %d, %v; want 42, nil", got, err)
	}

	_, err = Call(b, func() (int, error) { return 0, errors.New("bad") })
	if err == nil {
		t.Error("Call() should propagate fn errors")
	}
}

func TestIsRejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"open", gobreaker.ErrOpenState, true},
		{"too many", gobreaker.ErrTooManyRequests, true},
		{"other", errors.New("x"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRejected(tt.err); got != tt.want {
				t.Errorf("IsRejected(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
