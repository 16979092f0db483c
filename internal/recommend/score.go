// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package recommend

import (
	"sort"
	"strings"

	"github.com/tomtom215/menuwise/internal/menu"
	"github.com/tomtom215/menuwise/internal/preferences"
)

// Point values for each rule.
const (
	excludedPenalty      = -1000
	unlabeledPenalty     = -50
	glutenPenalty        = -100
	restrictionBonus     = 10
	proteinBonus         = 20
	proteinMissPenalty   = -10
	cuisineBonus         = 15
	flavorBonus          = 15
	textureBonus         = 12
	balanceAdjustment    = 10
	heavyStarterPenalty  = -5
	tooSpicyPenalty      = -30
	heatBonus            = 10
	mildPenalty          = -5
	adventureBonus       = 10
	adventureMissPenalty = -5
	familiarMissPenalty  = -10
	dessertRejected      = -100
	dessertYesBonus      = 15
	dessertMaybeBonus    = 5

	maxReasons = 2
)

// scoreCard accumulates points and reasons while the rules run.
type scoreCard struct {
	points  int
	reasons []string
}

func (c *scoreCard) add(points int, reason string) {
	c.points += points
	if reason != "" {
		c.reasons = append(c.reasons, reason)
	}
}

// matchReason deduplicates reasons keeping first occurrence and joins the
// first two.
func (c *scoreCard) matchReason() string {
	seen := make(map[string]struct{}, len(c.reasons))
	unique := make([]string, 0, maxReasons)
	for _, r := range c.reasons {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		unique = append(unique, r)
		if len(unique) == maxReasons {
			break
		}
	}
	if len(unique) == 0 {
		return FallbackReason
	}
	return strings.Join(unique, ". ")
}

// Score evaluates every rule against a single item.
//
// Score is pure: the result depends only on its arguments. prefs must be a
// complete vector; pass it through preferences.Vector.Validate first when it
// comes from outside the process.
func Score(item menu.Item, prefs preferences.Vector) ScoredItem {
	text := item.Text()
	card := &scoreCard{}

	scoreRestrictions(card, &item, text, prefs.Restrictions)
	scoreProtein(card, &item, text, prefs.Protein)
	scoreCuisine(card, &item, text, prefs.Cuisine)
	scoreFlavor(card, &item, text, prefs.FlavorProfile)
	if fam, ok := textureFamilies[prefs.Texture]; ok && matchesAny(text, fam.Keywords) {
		card.add(textureBonus, fam.Reason)
	}
	scoreBalance(card, &item, text, prefs.Balance)
	scoreSpiciness(card, &item, prefs.Spiciness)
	scoreAdventure(card, text, prefs.Adventurousness)
	scoreBudget(card, &item, prefs.Budget)
	scoreDessert(card, &item, prefs.Dessert)

	return ScoredItem{
		Item:        item.Clone(),
		Score:       card.points,
		MatchReason: card.matchReason(),
	}
}

// Rank scores every item and sorts the result by descending score. Items with
// equal scores keep their input order.
func Rank(items []menu.Item, prefs preferences.Vector) []ScoredItem {
	scored := make([]ScoredItem, len(items))
	for i := range items {
		scored[i] = Score(items[i], prefs)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

func scoreRestrictions(card *scoreCard, item *menu.Item, text string, r preferences.Restriction) {
	switch r {
	case preferences.RestrictionVegetarian:
		// Drinks are assumed meat-free.
		labeled := item.HasDietary("vegetarian") || item.HasDietary("vegan") || item.Tags.Course == menu.CourseDrink
		switch {
		case labeled:
			card.add(restrictionBonus, "")
		case matchesAny(text, meatKeywords):
			card.add(excludedPenalty, "")
		default:
			card.add(unlabeledPenalty, "")
		}
	case preferences.RestrictionVegan:
		if item.HasDietary("vegan") {
			card.add(restrictionBonus, "")
		} else {
			card.add(excludedPenalty, "")
		}
	case preferences.RestrictionNoPork:
		if matchesAny(text, porkKeywords) {
			card.add(excludedPenalty, "")
		}
	case preferences.RestrictionGlutenFree:
		if item.HasDietary("gluten-free") {
			card.add(restrictionBonus, "")
		} else {
			card.add(glutenPenalty, "")
		}
	}
}

func scoreProtein(card *scoreCard, item *menu.Item, text string, p preferences.Protein) {
	if p == preferences.ProteinAny {
		return
	}
	matched := matchesAny(text, proteinFamilies[p])
	if p == preferences.ProteinVegetarian && item.HasDietary("vegetarian") {
		matched = true
	}
	switch {
	case matched:
		card.add(proteinBonus, proteinReason(p))
	case item.Tags.Course == menu.CourseMain:
		card.add(proteinMissPenalty, "")
	}
}

func scoreCuisine(card *scoreCard, item *menu.Item, text string, c preferences.Cuisine) {
	if c == preferences.CuisineAny {
		return
	}
	name := string(c)
	if strings.Contains(strings.ToLower(item.Tags.Cuisine), name) || strings.Contains(text, name) {
		card.add(cuisineBonus, cuisineReason(c))
		return
	}
	if fam, ok := cuisineFamilies[c]; ok && matchesAny(text, fam.Keywords) {
		card.add(cuisineBonus, fam.Reason)
	}
}

func scoreFlavor(card *scoreCard, item *menu.Item, text string, f preferences.FlavorProfile) {
	fam, ok := flavorFamilies[f]
	if !ok || !matchesAny(text, fam.Keywords) {
		return
	}
	// Unset spiciness counts as none.
	if f == preferences.FlavorSweetSpicy && menu.ParseSpiciness(string(item.Tags.Spiciness)) == menu.SpicinessNone {
		return
	}
	card.add(flavorBonus, fam.Reason)
}

func scoreBalance(card *scoreCard, item *menu.Item, text string, b preferences.Balance) {
	switch b {
	case preferences.BalanceLight:
		if item.Tags.Course == menu.CourseStarter || matchesAny(text, lightKeywords) {
			card.add(balanceAdjustment, "")
		}
		if matchesAny(text, lightPenaltyKeywords) {
			card.add(-balanceAdjustment, "")
		}
	case preferences.BalanceHeavy:
		if matchesAny(text, heavyKeywords) {
			card.add(balanceAdjustment, reasonHearty)
		}
		if item.Tags.Course == menu.CourseStarter && !matchesAny(text, heartyStarterKeywords) {
			card.add(heavyStarterPenalty, "")
		}
	}
}

func scoreSpiciness(card *scoreCard, item *menu.Item, s preferences.Spiciness) {
	switch s {
	case preferences.SpicinessNone:
		if item.Tags.Spiciness.Spicy() {
			card.add(tooSpicyPenalty, "")
		}
	case preferences.SpicinessHot:
		if item.Tags.Spiciness.Spicy() {
			card.add(heatBonus, reasonHeat)
		} else {
			card.add(mildPenalty, "")
		}
	}
}

func scoreAdventure(card *scoreCard, text string, level preferences.Level) {
	common := matchesAny(text, commonDishKeywords)
	switch level {
	case preferences.LevelHigh:
		if !common {
			card.add(adventureBonus, reasonAdventurous)
		} else {
			card.add(adventureMissPenalty, "")
		}
	case preferences.LevelLow:
		if common {
			card.add(adventureBonus, reasonFamiliar)
		} else {
			card.add(familiarMissPenalty, "")
		}
	}
}

func scoreBudget(card *scoreCard, item *menu.Item, budget preferences.Level) {
	price, ok := ParsePrice(item.Price)
	if !ok {
		return
	}
	switch {
	case budget == preferences.LevelLow && price < lowBudgetCeiling:
		card.add(budgetMatchPoints, "")
	case budget == preferences.LevelHigh && price > highBudgetFloor:
		card.add(budgetMatchPoints, "")
	}
}

func scoreDessert(card *scoreCard, item *menu.Item, d preferences.Dessert) {
	if item.Tags.Course != menu.CourseDessert {
		return
	}
	switch d {
	case preferences.DessertNo:
		// Replaces everything accumulated so far.
		card.points = dessertRejected
	case preferences.DessertYes:
		card.add(dessertYesBonus, "")
	case preferences.DessertMaybe:
		card.add(dessertMaybeBonus, "")
	}
}
