// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package recommend

import "fmt"

// Config contains configuration for the recommendation engine.
type Config struct {
	// MaxItems caps how many menu items one request may score.
	// Extracted menus rarely exceed a few hundred dishes.
	MaxItems int `json:"max_items" koanf:"max_items"`

	// TopPicks is the size of the curated top selection.
	TopPicks int `json:"top_picks" koanf:"top_picks"`

	// OtherOptions is the number of runner-up dishes shown.
	OtherOptions int `json:"other_options" koanf:"other_options"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxItems:     500,
		TopPicks:     3,
		OtherOptions: 5,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.MaxItems < 1 {
		return fmt.Errorf("max_items must be positive, got %d", c.MaxItems)
	}
	if c.TopPicks < 1 {
		return fmt.Errorf("top_picks must be positive, got %d", c.TopPicks)
	}
	if c.OtherOptions < 0 {
		return fmt.Errorf("other_options must be non-negative, got %d", c.OtherOptions)
	}
	return nil
}
