// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

var validEnvironments = map[string]bool{
	"development": true,
	"production":  true,
}

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateGemini,
		c.validateExtraction,
		c.validateRecommend,
		c.validateSession,
		c.validateSecurity,
		c.validateLogging,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

// validateServer validates HTTP server settings
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Server.MaxUploadBytes < 1<<10 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be at least 1KB")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, production")
	}
	return nil
}

// validateGemini validates the extraction model settings. The API key is
// only mandatory in production; without it every extraction fails with a
// missing-key error, which is useful for local UI work.
func (c *Config) validateGemini() error {
	if c.Gemini.APIKey == "" && c.IsProduction() {
		return fmt.Errorf("GEMINI_API_KEY is required when ENVIRONMENT=production")
	}
	if c.Gemini.APIKey != "" && containsPlaceholder(c.Gemini.APIKey) {
		return fmt.Errorf("GEMINI_API_KEY appears to be a placeholder value")
	}
	if strings.TrimSpace(c.Gemini.Model) == "" {
		return fmt.Errorf("GEMINI_MODEL is required")
	}
	if err := validateHTTPURL(c.Gemini.BaseURL, "GEMINI_BASE_URL"); err != nil {
		return err
	}
	if c.Gemini.Timeout <= 0 {
		return fmt.Errorf("GEMINI_TIMEOUT must be positive")
	}
	if c.Gemini.MaxOutputTokens < 1 {
		return fmt.Errorf("GEMINI_MAX_OUTPUT_TOKENS must be positive")
	}
	return nil
}

// validateExtraction validates pipeline limits
func (c *Config) validateExtraction() error {
	e := &c.Extraction
	switch {
	case e.Timeout < time.Second:
		return fmt.Errorf("EXTRACTION_TIMEOUT must be at least 1s")
	case e.RateLimit < 0:
		return fmt.Errorf("EXTRACTION_RATE_LIMIT must not be negative")
	case e.RateLimit > 0 && e.RateBurst < 1:
		return fmt.Errorf("EXTRACTION_RATE_BURST must be positive when rate limiting is enabled")
	case e.BreakerMaxRequests < 1:
		return fmt.Errorf("EXTRACTION_BREAKER_MAX_REQUESTS must be positive")
	case e.BreakerTimeout <= 0:
		return fmt.Errorf("EXTRACTION_BREAKER_TIMEOUT must be positive")
	case e.BreakerFailureRatio <= 0 || e.BreakerFailureRatio > 1:
		return fmt.Errorf("EXTRACTION_BREAKER_FAILURE_RATIO must be in (0, 1]")
	case e.CacheTTL < 0:
		return fmt.Errorf("EXTRACTION_CACHE_TTL must not be negative")
	case e.PageTimeout <= 0:
		return fmt.Errorf("PAGE_TIMEOUT must be positive")
	case e.PageMaxBodyBytes < 1<<10:
		return fmt.Errorf("PAGE_MAX_BODY_BYTES must be at least 1KB")
	case e.PageMaxTextBytes < 100:
		return fmt.Errorf("PAGE_MAX_TEXT_BYTES must be at least 100")
	}
	return nil
}

// validateRecommend validates recommendation limits
func (c *Config) validateRecommend() error {
	if c.Recommend.MaxItems < 1 {
		return fmt.Errorf("RECOMMEND_MAX_ITEMS must be positive")
	}
	if c.Recommend.TopPicks < 1 || c.Recommend.TopPicks > 10 {
		return fmt.Errorf("RECOMMEND_TOP_PICKS must be between 1 and 10")
	}
	if c.Recommend.OtherOptions < 0 || c.Recommend.OtherOptions > 50 {
		return fmt.Errorf("RECOMMEND_OTHER_OPTIONS must be between 0 and 50")
	}
	return nil
}

// validateSession validates session lifetime settings
func (c *Config) validateSession() error {
	if c.Session.IdleTTL < time.Minute {
		return fmt.Errorf("SESSION_IDLE_TTL must be at least 1m")
	}
	if c.Session.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive")
	}
	if c.Session.MaxSessions < 0 {
		return fmt.Errorf("SESSION_MAX must not be negative")
	}
	return nil
}

// validateSecurity validates rate limiting and CORS
func (c *Config) validateSecurity() error {
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	if c.IsProduction() {
		for _, origin := range c.Security.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain * when ENVIRONMENT=production")
			}
		}
	}
	return nil
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateHTTPURL validates that a URL is an absolute http(s) URL without a
// query string.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}

// placeholderPatterns defines common placeholder patterns that indicate
// the user forgot to set a real value.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_API_KEY",
	"YOUR_KEY",
	"PLACEHOLDER",
	"EXAMPLE",
}

// containsPlaceholder checks if a value contains common placeholder patterns
func containsPlaceholder(value string) bool {
	upperValue := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upperValue, pattern) {
			return true
		}
	}
	return false
}
