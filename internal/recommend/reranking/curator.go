// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package reranking

import (
	"github.com/tomtom215/menuwise/internal/menu"
	"github.com/tomtom215/menuwise/internal/recommend"
)

// CuratorConfig sizes the curated lists.
type CuratorConfig struct {
	// TopPicks is the maximum number of highlighted dishes.
	TopPicks int

	// OtherOptions is the maximum number of runner-up dishes.
	OtherOptions int

	// Courses are seeded into the top picks in this order before backfilling.
	Courses []menu.Course
}

// DefaultCuratorConfig returns three top picks covering starter, main and
// dessert, plus five other options.
func DefaultCuratorConfig() CuratorConfig {
	return CuratorConfig{
		TopPicks:     3,
		OtherOptions: 5,
		Courses:      []menu.Course{menu.CourseStarter, menu.CourseMain, menu.CourseDessert},
	}
}

// CourseCurator builds a Selection that covers one dish per course first.
type CourseCurator struct {
	topPicks     int
	otherOptions int
	courses      []menu.Course
}

var _ recommend.Curator = (*CourseCurator)(nil)

// NewCourseCurator creates a curator. Negative sizes are treated as zero.
//
//nolint:gocritic // hugeParam: config passed by value for immutability
func NewCourseCurator(cfg CuratorConfig) *CourseCurator {
	return &CourseCurator{
		topPicks:     max(cfg.TopPicks, 0),
		otherOptions: max(cfg.OtherOptions, 0),
		courses:      append([]menu.Course(nil), cfg.Courses...),
	}
}

// Name returns the curator identifier.
func (c *CourseCurator) Name() string {
	return "course"
}

// Curate selects top picks and other options from a list already sorted by
// descending score. The input slice is not modified.
//
//nolint:gocritic // rangeValCopy: ScoredItem copied into the selection on purpose
func (c *CourseCurator) Curate(ranked []recommend.ScoredItem) recommend.Selection {
	picked := make(map[string]struct{}, c.topPicks)
	top := make([]recommend.ScoredItem, 0, c.topPicks)

	take := func(item recommend.ScoredItem) {
		picked[item.Item.ID] = struct{}{}
		top = append(top, item)
	}

	for _, course := range c.courses {
		if len(top) >= c.topPicks {
			break
		}
		for _, item := range ranked {
			if item.Item.Tags.Course != course {
				continue
			}
			if _, dup := picked[item.Item.ID]; !dup {
				take(item)
			}
			break
		}
	}

	for _, item := range ranked {
		if len(top) >= c.topPicks {
			break
		}
		if _, dup := picked[item.Item.ID]; dup {
			continue
		}
		take(item)
	}

	others := make([]recommend.ScoredItem, 0, c.otherOptions)
	for _, item := range ranked {
		if len(others) >= c.otherOptions {
			break
		}
		if _, dup := picked[item.Item.ID]; dup {
			continue
		}
		picked[item.Item.ID] = struct{}{}
		others = append(others, item)
	}

	return recommend.Selection{
		TopPicks:     top,
		OtherOptions: others,
	}
}
