// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package main

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/menuwise/internal/cache"
	"github.com/tomtom215/menuwise/internal/config"
	"github.com/tomtom215/menuwise/internal/extract"
	"github.com/tomtom215/menuwise/internal/menu"
	"github.com/tomtom215/menuwise/internal/recommend"
	"github.com/tomtom215/menuwise/internal/recommend/reranking"
)

// buildExtractor assembles the extraction stack:
//
//	Cached -> Resilient -> Pipeline -> Gemini
//
// URLs are resolved by fetching the page first and by the model's search
// tool as a fallback. The returned cache is nil when caching is disabled.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func buildExtractor(cfg *config.Config, logger zerolog.Logger) (extract.Extractor, *cache.Cache[[]menu.Record]) {
	gemini := extract.NewGeminiClient(extract.GeminiConfig{
		APIKey:          cfg.Gemini.APIKey,
		Model:           cfg.Gemini.Model,
		BaseURL:         cfg.Gemini.BaseURL,
		Timeout:         cfg.Gemini.Timeout,
		MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
	}, logger)

	page := extract.NewPageResolver(extract.PageConfig{
		Timeout:      cfg.Extraction.PageTimeout,
		MaxBodyBytes: cfg.Extraction.PageMaxBodyBytes,
		MaxTextBytes: cfg.Extraction.PageMaxTextBytes,
		UserAgent:    cfg.Extraction.PageUserAgent,
	}, logger)

	pipeline := extract.NewPipeline(gemini, []extract.Resolver{page, gemini}, logger)

	var extractor extract.Extractor = extract.NewResilient(pipeline, extract.ResilienceConfig{
		Name:          "gemini-extraction",
		RatePerSecond: cfg.Extraction.RateLimit,
		Burst:         cfg.Extraction.RateBurst,
		MaxRequests:   cfg.Extraction.BreakerMaxRequests,
		Interval:      cfg.Extraction.BreakerInterval,
		Timeout:       cfg.Extraction.BreakerTimeout,
		MinRequests:   cfg.Extraction.BreakerMinRequests,
		FailureRatio:  cfg.Extraction.BreakerFailureRatio,
	}, logger)

	if cfg.Extraction.CacheTTL <= 0 {
		logger.Info().Msg("extraction cache disabled")
		return extractor, nil
	}

	store := cache.New[[]menu.Record](cfg.Extraction.CacheTTL)
	return extract.NewCached(extractor, store, logger), store
}

// buildRecommender creates the scoring engine with the course curator.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func buildRecommender(cfg *config.Config, logger zerolog.Logger) (*recommend.Engine, error) {
	engine, err := recommend.NewEngine(&recommend.Config{
		MaxItems:     cfg.Recommend.MaxItems,
		TopPicks:     cfg.Recommend.TopPicks,
		OtherOptions: cfg.Recommend.OtherOptions,
	}, logger)
	if err != nil {
		return nil, err
	}

	curatorCfg := reranking.DefaultCuratorConfig()
	curatorCfg.TopPicks = cfg.Recommend.TopPicks
	curatorCfg.OtherOptions = cfg.Recommend.OtherOptions
	engine.RegisterCurator(reranking.NewCourseCurator(curatorCfg))
	return engine, nil
}
