// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/tomtom215/menuwise/internal/api"
	"github.com/tomtom215/menuwise/internal/config"
	"github.com/tomtom215/menuwise/internal/logging"
	"github.com/tomtom215/menuwise/internal/session"
	"github.com/tomtom215/menuwise/internal/supervisor"
	"github.com/tomtom215/menuwise/internal/supervisor/services"
	ws "github.com/tomtom215/menuwise/internal/websocket"
)

// longPollAllowance keeps WriteTimeout above the longest preview long-poll.
const longPollAllowance = 35 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
		Service:   "menuwise",
	})

	logging.Info().
		Str("version", api.Version).
		Str("environment", cfg.Server.Environment).
		Str("model", cfg.Gemini.Model).
		Str("gemini_api_key", logging.SanitizeToken(cfg.Gemini.APIKey)).
		Dur("extraction_timeout", cfg.Extraction.Timeout).
		Dur("extraction_cache_ttl", cfg.Extraction.CacheTTL).
		Msg("Starting Menuwise")

	if cfg.Gemini.APIKey == "" {
		logging.Warn().Msg("GEMINI_API_KEY is not set; every menu extraction will fail")
	}

	logger := logging.Logger()

	extractor, extractionCache := buildExtractor(cfg, logger)
	engine, err := buildRecommender(cfg, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation engine")
	}

	sessions := session.NewManager(
		extractor,
		engine,
		session.Config{
			ExtractionTimeout: cfg.Extraction.Timeout,
			MaxItems:          cfg.Recommend.MaxItems,
		},
		session.ManagerConfig{
			IdleTTL:       cfg.Session.IdleTTL,
			SweepInterval: cfg.Session.SweepInterval,
			MaxSessions:   cfg.Session.MaxSessions,
		},
		logger,
	)

	hub := ws.NewHub(sessions, logger)

	handler := api.NewHandler(sessions, hub, api.HandlerConfig{
		MaxUploadBytes:       cfg.Server.MaxUploadBytes,
		AllowedOrigins:       cfg.Security.CORSOrigins,
		ExtractionConfigured: cfg.Gemini.APIKey != "",
		Environment:          cfg.Server.Environment,
	})
	chiMw := api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	router := api.NewRouter(handler, chiMw)

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + longPollAllowance,
		IdleTimeout:       2 * time.Minute,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddStateService(services.NewRunnerService("session-sweeper", sessions.Run))
	if extractionCache != nil {
		interval := cfg.Session.SweepInterval
		tree.AddStateService(services.NewRunnerService("extraction-cache", func(ctx context.Context) error {
			return extractionCache.Run(ctx, interval)
		}))
	}
	tree.AddMessagingService(hub)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

	if err := run(tree); err != nil {
		logging.Error().Err(err).Msg("Supervisor tree error")
		os.Exit(1)
	}
	logging.Info().Msg("Application stopped gracefully")
}

// run serves the tree until SIGINT or SIGTERM and reports services that
// did not stop in time.
func run(tree *supervisor.SupervisorTree) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	var runErr error
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			runErr = fmt.Errorf("supervisor: %w", err)
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	return runErr
}
