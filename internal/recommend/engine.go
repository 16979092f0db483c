// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/menuwise/internal/logging"
	"github.com/tomtom215/menuwise/internal/menu"
	"github.com/tomtom215/menuwise/internal/metrics"
	"github.com/tomtom215/menuwise/internal/preferences"
)

var (
	// ErrInvalidPreferences is returned when the preference vector is incomplete
	// or holds values outside the quiz options.
	ErrInvalidPreferences = errors.New("invalid preferences")

	// ErrTooManyItems is returned when a menu exceeds Config.MaxItems.
	ErrTooManyItems = errors.New("too many menu items")

	// ErrNoCurator is returned by Recommend before a curator is registered.
	ErrNoCurator = errors.New("no curator registered")
)

// Engine scores and curates menus. It is safe for concurrent use.
type Engine struct {
	mu      sync.RWMutex
	config  *Config
	logger  zerolog.Logger
	curator Curator

	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// Stats holds request counters for the engine.
type Stats struct {
	Requests int64 `json:"requests"`
	Errors   int64 `json:"errors"`
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// RegisterCurator sets the curator used to build selections.
// A later call replaces the earlier curator.
func (e *Engine) RegisterCurator(c Curator) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.curator = c
	e.logger.Info().
		Str("curator", c.Name()).
		Msg("registered curator")
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return *e.config
}

// Stats returns request counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests: e.requestCount.Load(),
		Errors:   e.errorCount.Load(),
	}
}

// Recommend ranks items against prefs and curates the result.
//
// The vector is validated first; scoring itself assumes a complete vector.
// Every call recomputes from scratch.
//
//nolint:gocritic // hugeParam: prefs passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, items []menu.Item, prefs preferences.Vector) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	requestID := logging.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = logging.GenerateRequestID()
	}
	logger := e.logger.With().
		Str("request_id", requestID).
		Int("items", len(items)).
		Logger()

	e.mu.RLock()
	curator := e.curator
	maxItems := e.config.MaxItems
	e.mu.RUnlock()

	if err := e.checkRequest(ctx, items, &prefs, curator, maxItems); err != nil {
		e.errorCount.Add(1)
		metrics.RecommendRequests.WithLabelValues("invalid").Inc()
		logger.Debug().Err(err).Msg("recommendation rejected")
		return nil, err
	}

	ranked := Rank(items, prefs)
	selection := curator.Curate(ranked)

	latency := time.Since(start)
	metrics.RecordRecommendation(latency, len(items))

	resp := &Response{
		Ranked:    ranked,
		Selection: selection,
		Metadata: ResponseMetadata{
			RequestID:   requestID,
			ItemCount:   len(items),
			Curator:     curator.Name(),
			LatencyMS:   latency.Milliseconds(),
			GeneratedAt: time.Now().UTC(),
		},
	}

	logger.Debug().
		Int("top_picks", len(selection.TopPicks)).
		Int("other_options", len(selection.OtherOptions)).
		Dur("latency", latency).
		Msg("recommendation complete")

	return resp, nil
}

func (e *Engine) checkRequest(ctx context.Context, items []menu.Item, prefs *preferences.Vector, curator Curator, maxItems int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if curator == nil {
		return ErrNoCurator
	}
	if len(items) > maxItems {
		return fmt.Errorf("%w: %d > %d", ErrTooManyItems, len(items), maxItems)
	}
	if err := prefs.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPreferences, err)
	}
	return nil
}
