// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"unknown environment", func(c *Config) { c.Server.Environment = "qa" }, "ENVIRONMENT"},
		{"tiny upload limit", func(c *Config) { c.Server.MaxUploadBytes = 10 }, "MAX_UPLOAD_BYTES"},
		{"empty model", func(c *Config) { c.Gemini.Model = " " }, "GEMINI_MODEL"},
		{"base url with query", func(c *Config) { c.Gemini.BaseURL = "https://x.test/v1?key=abc" }, "query"},
		{"base url wrong scheme", func(c *Config) { c.Gemini.BaseURL = "ftp://x.test" }, "scheme"},
		{"base url with path is fine", func(c *Config) { c.Gemini.BaseURL = "https://proxy.internal/gemini/v1beta" }, ""},
		{"short extraction timeout", func(c *Config) { c.Extraction.Timeout = 10 * time.Millisecond }, "EXTRACTION_TIMEOUT"},
		{"rate limit without burst", func(c *Config) { c.Extraction.RateBurst = 0 }, "EXTRACTION_RATE_BURST"},
		{"rate limit disabled without burst", func(c *Config) {
			c.Extraction.RateLimit = 0
			c.Extraction.RateBurst = 0
		}, ""},
		{"failure ratio above one", func(c *Config) { c.Extraction.BreakerFailureRatio = 1.5 }, "FAILURE_RATIO"},
		{"negative cache ttl", func(c *Config) { c.Extraction.CacheTTL = -time.Second }, "EXTRACTION_CACHE_TTL"},
		{"negative other options", func(c *Config) { c.Recommend.OtherOptions = -1 }, "RECOMMEND_OTHER_OPTIONS"},
		{"short session ttl", func(c *Config) { c.Session.IdleTTL = time.Second }, "SESSION_IDLE_TTL"},
		{"no cors origins", func(c *Config) { c.Security.CORSOrigins = nil }, "CORS_ORIGINS"},
		{"rate limit disabled ignores window", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitWindow = 0
		}, ""},
		{"wildcard cors in production", func(c *Config) {
			c.Server.Environment = "production"
			c.Gemini.APIKey = "AIzaRealLookingKey123"
		}, "CORS_ORIGINS"},
		{"production ok", func(c *Config) {
			c.Server.Environment = "production"
			c.Gemini.APIKey = "AIzaRealLookingKey123"
			c.Security.CORSOrigins = []string{"https://menuwise.app"}
		}, ""},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestContainsPlaceholder(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"AIzaSyA-real-key", false},
		{"changeme", true},
		{"YOUR_API_KEY", true},
		{"replace-with-key", true},
	}
	for _, tt := range tests {
		if got := containsPlaceholder(tt.value); got != tt.want {
			t.Errorf("containsPlaceholder(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestIsProduction(t *testing.T) {
	cfg := defaultConfig()
	if cfg.IsProduction() {
		t.Error("default environment should not be production")
	}
	cfg.Server.Environment = "production"
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false for production")
	}
}
