// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package logging

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// SanitizeToken masks a secret, showing only the first and last 4 characters.
// Example: "AIzaSyD3x4mpl3K3y0000000000" -> "AIza...0000"
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// sensitiveQueryParams are stripped from URLs before they are logged.
var sensitiveQueryParams = []string{"key", "api_key", "apikey", "token", "access_token", "sig", "signature"}

// SanitizeURL masks sensitive query parameters and any userinfo in a URL.
// Text that does not parse as a URL is truncated instead.
func SanitizeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return TruncateText(raw, 120)
	}

	if u.User != nil {
		u.User = url.User("***")
	}

	query := u.Query()
	changed := false
	for key := range query {
		for _, sensitive := range sensitiveQueryParams {
			if strings.EqualFold(key, sensitive) {
				query.Set(key, "***")
				changed = true
			}
		}
	}
	if changed {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// SanitizeError strips an API key that leaked into an error message, e.g.
// through a request URL echoed by an upstream error body.
func SanitizeError(msg, secret string) string {
	if secret != "" {
		msg = strings.ReplaceAll(msg, secret, SanitizeToken(secret))
	}
	return TruncateText(msg, 300)
}

// TruncateText shortens s to at most maxBytes bytes without splitting a
// UTF-8 sequence, appending "..." when something was cut.
func TruncateText(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
