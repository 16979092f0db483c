// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package extract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/menuwise/internal/menu"
	"github.com/tomtom215/menuwise/internal/metrics"
)

// ResilienceConfig configures rate limiting and the circuit breaker.
type ResilienceConfig struct {
	// Name labels the breaker in logs and metrics.
	Name string

	// RatePerSecond is the sustained call rate. Zero disables limiting.
	RatePerSecond float64
	Burst         int

	// MaxRequests allowed through while half-open.
	MaxRequests uint32

	// Interval is the closed-state window after which counts reset.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration

	// The breaker opens once MinRequests calls were seen in the window and
	// at least FailureRatio of them failed.
	MinRequests  uint32
	FailureRatio float64
}

// DefaultResilienceConfig returns the production defaults.
func DefaultResilienceConfig() ResilienceConfig {
	return ResilienceConfig{
		Name:          "gemini-extraction",
		RatePerSecond: 1,
		Burst:         5,
		MaxRequests:   1,
		Interval:      time.Minute,
		Timeout:       30 * time.Second,
		MinRequests:   5,
		FailureRatio:  0.6,
	}
}

// Resilient wraps an Extractor with a rate limiter, a circuit breaker and
// metrics. Invalid requests and caller cancellations do not count as
// provider failures.
//
// The breaker uses wall-clock time for its interval and timeout.
type Resilient struct {
	next    Extractor
	cb      *gobreaker.CircuitBreaker[[]menu.Record]
	limiter *rate.Limiter
	name    string
	logger  zerolog.Logger
}

var _ Extractor = (*Resilient)(nil)

// NewResilient wraps next.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewResilient(next Extractor, cfg ResilienceConfig, logger zerolog.Logger) *Resilient {
	if cfg.Name == "" {
		cfg.Name = DefaultResilienceConfig().Name
	}
	r := &Resilient{
		next:   next,
		name:   cfg.Name,
		logger: logger.With().Str("component", "extract_breaker").Str("breaker", cfg.Name).Logger(),
	}
	if cfg.RatePerSecond > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), max(cfg.Burst, 1))
	}

	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cfg.Name).Set(0)

	r.cb = gobreaker.NewCircuitBreaker[[]menu.Record](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.FailureRatio
			if shouldTrip {
				r.logger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("opening circuit")
			}
			return shouldTrip
		},
		IsSuccessful: func(err error) bool {
			return err == nil || isCallerError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			r.logger.Info().Str("from", fromStr).Str("to", toStr).Msg("circuit state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return r
}

// Extract implements Extractor.
func (r *Resilient) Extract(ctx context.Context, req Request) ([]menu.Record, error) {
	start := time.Now()
	kind := string(req.Kind)

	if r.limiter != nil && !r.limiter.Allow() {
		metrics.ExtractionRateLimited.Inc()
		metrics.RecordExtraction(kind, time.Since(start), 0, ErrRateLimited)
		return nil, ErrRateLimited
	}

	records, err := r.execute(ctx, req)
	metrics.RecordExtraction(kind, time.Since(start), len(records), err)
	return records, err
}

// State returns the breaker state as "closed", "half-open" or "open".
func (r *Resilient) State() string {
	return stateToString(r.cb.State())
}

func (r *Resilient) execute(ctx context.Context, req Request) ([]menu.Record, error) {
	records, err := r.cb.Execute(func() ([]menu.Record, error) {
		return r.next.Extract(ctx, req)
	})

	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(r.name, "success").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(r.name).Set(0)
		return records, nil
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(r.name, "rejected").Inc()
		r.logger.Warn().Err(err).Msg("request rejected")
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	case isCallerError(err):
		return nil, err
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(r.name, "failure").Inc()
		counts := r.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(r.name).Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}
}

// isCallerError reports errors caused by the request or the caller rather
// than the provider.
func isCallerError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrMissingAPIKey) ||
		errors.Is(err, context.Canceled)
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
