// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

// Package recommend scores menu items against a diner's quiz answers.
//
// # Scoring
//
// Score runs a fixed sequence of rules over one item: dietary restrictions,
// protein, cuisine, flavor profile, texture, balance, spiciness,
// adventurousness, budget and finally dessert handling. Rules are independent
// and additive with one exception: a dessert scored for a diner who wants no
// dessert is pinned to exactly -100, whatever it had accumulated.
//
// Matching is substring containment over the lower-cased name and
// description. The keyword families live in keywords.go as plain tables so the
// rule set can be reviewed and tested on its own.
//
// Each matching rule may contribute a reason sentence. Duplicates are dropped
// and only the first two survive; an item with no reasons gets
// FallbackReason.
//
// # Ranking
//
// Rank scores a whole menu and sorts it by descending score. The sort is
// stable, so dishes with equal scores keep their menu order.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	engine.RegisterCurator(reranking.NewCourseCurator(reranking.DefaultCuratorConfig()))
//
//	resp, err := engine.Recommend(ctx, items, prefs)
//
// # Thread Safety
//
// Score and Rank are pure functions. The Engine guards its curator and config
// with a read-write lock and is safe for concurrent use.
package recommend
