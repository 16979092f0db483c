// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/menuwise/config.yaml",
	"/etc/menuwise/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			MaxUploadBytes:  15 << 20, // base64 of a ~10MB photo
			Environment:     "development",
		},
		Gemini: GeminiConfig{
			Model:           "gemini-2.5-flash",
			BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
			Timeout:         60 * time.Second,
			MaxOutputTokens: 8192,
		},
		Extraction: ExtractionConfig{
			Timeout:             90 * time.Second,
			RateLimit:           1,
			RateBurst:           5,
			BreakerMaxRequests:  1,
			BreakerInterval:     time.Minute,
			BreakerTimeout:      30 * time.Second,
			BreakerMinRequests:  5,
			BreakerFailureRatio: 0.6,
			CacheTTL:            30 * time.Minute,
			PageTimeout:         15 * time.Second,
			PageMaxBodyBytes:    5 << 20,
			PageMaxTextBytes:    15000,
			PageUserAgent:       "Menuwise/1.0 (Menu Fetcher)",
		},
		Recommend: RecommendConfig{
			MaxItems:     500,
			TopPicks:     3,
			OtherOptions: 5,
		},
		Session: SessionConfig{
			IdleTTL:       30 * time.Minute,
			SweepInterval: time.Minute,
			MaxSessions:   10000,
		},
		Security: SecurityConfig{
			RateLimitReqs:     60,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any mapped setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// GEMINI_API_KEY -> gemini.api_key, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
var envMappings = map[string]string{
	// Server mappings
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"max_upload_bytes":      "server.max_upload_bytes",
	"environment":           "server.environment",

	// Gemini mappings
	"gemini_api_key":           "gemini.api_key",
	"gemini_model":             "gemini.model",
	"gemini_base_url":          "gemini.base_url",
	"gemini_timeout":           "gemini.timeout",
	"gemini_max_output_tokens": "gemini.max_output_tokens",

	// Extraction mappings
	"extraction_timeout":               "extraction.timeout",
	"extraction_rate_limit":            "extraction.rate_limit",
	"extraction_rate_burst":            "extraction.rate_burst",
	"extraction_breaker_max_requests":  "extraction.breaker_max_requests",
	"extraction_breaker_interval":      "extraction.breaker_interval",
	"extraction_breaker_timeout":       "extraction.breaker_timeout",
	"extraction_breaker_min_requests":  "extraction.breaker_min_requests",
	"extraction_breaker_failure_ratio": "extraction.breaker_failure_ratio",
	"extraction_cache_ttl":             "extraction.cache_ttl",
	"page_timeout":                     "extraction.page_timeout",
	"page_max_body_bytes":              "extraction.page_max_body_bytes",
	"page_max_text_bytes":              "extraction.page_max_text_bytes",
	"page_user_agent":                  "extraction.page_user_agent",

	// Recommendation mappings
	"recommend_max_items":     "recommend.max_items",
	"recommend_top_picks":     "recommend.top_picks",
	"recommend_other_options": "recommend.other_options",

	// Session mappings
	"session_idle_ttl":       "session.idle_ttl",
	"session_sweep_interval": "session.sweep_interval",
	"session_max":            "session.max_sessions",

	// Security mappings
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped so unrelated environment
// variables cannot pollute the config.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
