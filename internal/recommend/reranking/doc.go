// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

// Package reranking turns a ranked menu into the curated view a diner sees.
//
// Reranking is applied after scoring:
//
//	Score -> Rank (stable, descending) -> Curate -> TopPicks + OtherOptions
//
// # Course Curator
//
// CourseCurator favors course coverage over raw score. It first takes the
// best starter, the best main and the best dessert, in that order, and
// backfills from the top of the ranking until the top picks are full. The
// remaining dishes, still in ranking order, become the other options.
//
// An item never appears in both lists. Items are identified by ID, so a
// ranking with duplicate IDs is treated as one dish.
//
// # Usage
//
//	engine.RegisterCurator(reranking.NewCourseCurator(reranking.DefaultCuratorConfig()))
package reranking
