// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Gemini     GeminiConfig     `koanf:"gemini"`
	Extraction ExtractionConfig `koanf:"extraction"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Session    SessionConfig    `koanf:"session"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// MaxUploadBytes caps request bodies, which carry base64 menu photos.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`

	// Environment mode: "development" or "production".
	Environment string `koanf:"environment"`
}

// GeminiConfig holds settings for the menu extraction model.
//
// Environment Variables:
//   - GEMINI_API_KEY: API key (required)
//   - GEMINI_MODEL: model name (default: gemini-2.5-flash)
//   - GEMINI_BASE_URL: REST endpoint base
//   - GEMINI_TIMEOUT: per-call HTTP timeout (default: 60s)
type GeminiConfig struct {
	APIKey          string        `koanf:"api_key"`
	Model           string        `koanf:"model"`
	BaseURL         string        `koanf:"base_url"`
	Timeout         time.Duration `koanf:"timeout"`
	MaxOutputTokens int           `koanf:"max_output_tokens"`
}

// ExtractionConfig holds the extraction pipeline settings: the overall
// deadline, rate limiting, circuit breaker, result cache and page fetching.
type ExtractionConfig struct {
	// Timeout bounds one background extraction including URL resolution.
	Timeout time.Duration `koanf:"timeout"`

	RateLimit float64 `koanf:"rate_limit"` // calls per second, 0 disables
	RateBurst int     `koanf:"rate_burst"`

	BreakerMaxRequests  uint32        `koanf:"breaker_max_requests"`
	BreakerInterval     time.Duration `koanf:"breaker_interval"`
	BreakerTimeout      time.Duration `koanf:"breaker_timeout"`
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests"`
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio"`

	// CacheTTL keeps successful results for identical inputs. 0 disables.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	PageTimeout      time.Duration `koanf:"page_timeout"`
	PageMaxBodyBytes int64         `koanf:"page_max_body_bytes"`
	PageMaxTextBytes int           `koanf:"page_max_text_bytes"`
	PageUserAgent    string        `koanf:"page_user_agent"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	MaxItems     int `koanf:"max_items"`
	TopPicks     int `koanf:"top_picks"`
	OtherOptions int `koanf:"other_options"`
}

// SessionConfig holds session lifetime settings.
type SessionConfig struct {
	IdleTTL       time.Duration `koanf:"idle_ttl"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
	MaxSessions   int           `koanf:"max_sessions"`
}

// SecurityConfig holds HTTP hardening settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads configuration from all layered sources. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
