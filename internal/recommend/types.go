// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package recommend

import (
	"time"

	"github.com/tomtom215/menuwise/internal/menu"
)

// ScoredItem is a menu item together with how well it fits a preference
// vector. It is always a fresh derivation; nothing mutates one in place.
type ScoredItem struct {
	// Item is a copy of the scored dish.
	Item menu.Item `json:"item"`

	// Score is the signed rule total. Excluded dishes sit at -1000 or below.
	Score int `json:"score"`

	// MatchReason holds at most two sentences joined by ". ".
	MatchReason string `json:"match_reason"`
}

// Selection is the curated presentation of a ranked list.
type Selection struct {
	// TopPicks favors one starter, one main and one dessert.
	TopPicks []ScoredItem `json:"top_picks"`

	// OtherOptions are the next best dishes not already in TopPicks.
	OtherOptions []ScoredItem `json:"other_options"`
}

// Curator turns a ranked list into a Selection.
// Implementations must not mutate the input slice.
type Curator interface {
	Name() string
	Curate(ranked []ScoredItem) Selection
}

// Response is the result of a recommendation request.
type Response struct {
	// Ranked is every scored item, sorted by descending score.
	Ranked []ScoredItem `json:"ranked"`

	// Selection is the curated view of Ranked.
	Selection Selection `json:"selection"`

	// Metadata describes how the response was produced.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains information about how a response was produced.
type ResponseMetadata struct {
	RequestID   string    `json:"request_id"`
	ItemCount   int       `json:"item_count"`
	Curator     string    `json:"curator"`
	LatencyMS   int64     `json:"latency_ms"`
	GeneratedAt time.Time `json:"generated_at"`
}
