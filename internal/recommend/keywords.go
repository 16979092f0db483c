// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package recommend

import (
	"strings"

	"github.com/tomtom215/menuwise/internal/preferences"
)

// family is a keyword set together with the reason surfaced when it matches.
// An empty Reason means the rule adjusts the score silently.
type family struct {
	Keywords []string
	Reason   string
}

// Keyword matching is plain substring containment on lower-cased text, so
// "grill" also matches "grilled" and "bean" matches "beans".
var (
	meatKeywords = []string{"beef", "chicken", "pork", "lamb", "fish", "meat", "bacon", "steak"}
	porkKeywords = []string{"pork", "bacon", "ham", "sausage", "chorizo", "pepperoni"}

	proteinFamilies = map[preferences.Protein][]string{
		preferences.ProteinBeef:       {"beef", "steak", "burger", "ribs", "veal", "meatball"},
		preferences.ProteinChicken:    {"chicken", "turkey", "wings", "duck", "poultry"},
		preferences.ProteinSeafood:    {"fish", "salmon", "tuna", "shrimp", "prawn", "crab", "lobster", "seafood", "calamari"},
		preferences.ProteinVegetarian: {"tofu", "bean", "lentil", "chickpea", "vegetable"},
	}

	cuisineFamilies = map[preferences.Cuisine]family{
		preferences.CuisineAsian: {
			Keywords: []string{"thai", "chinese", "japanese", "curry", "sushi", "noodle", "soy", "teriyaki"},
			Reason:   "Spot on Asian flavors",
		},
		preferences.CuisineItalian: {
			Keywords: []string{"pasta", "pizza", "risotto", "parmesan", "tomato", "basil"},
			Reason:   "Classic Italian vibes",
		},
		preferences.CuisineMexican: {
			Keywords: []string{"taco", "burrito", "salsa", "nacho", "quesadilla", "bean"},
			Reason:   "Mexican style favorite",
		},
		preferences.CuisineAmerican: {
			Keywords: []string{"burger", "fries", "grill", "bbq", "sandwich", "steak"},
			Reason:   "Great American comfort food",
		},
	}

	flavorFamilies = map[preferences.FlavorProfile]family{
		preferences.FlavorCreamy: {
			Keywords: []string{"cream", "cheese", "butter", "alfredo", "bisque", "rich", "yogurt", "coconut milk"},
			Reason:   "Rich and creamy texture",
		},
		preferences.FlavorSavory: {
			Keywords: []string{"soy", "miso", "truffle", "mushroom", "steak", "garlic", "roasted", "gravy"},
			Reason:   "Deep savory umami flavors",
		},
		preferences.FlavorFresh: {
			Keywords: []string{"salad", "citrus", "lemon", "lime", "herb", "mint", "basil", "raw", "fruit", "vinaigrette"},
			Reason:   "Fresh and zesty notes",
		},
		preferences.FlavorSmoky: {
			Keywords: []string{"smoke", "bbq", "charred", "grilled", "wood", "bacon", "chipotle"},
			Reason:   "Smoky and grilled to perfection",
		},
		// Also requires the dish to carry some heat; see scoreFlavor.
		preferences.FlavorSweetSpicy: {
			Keywords: []string{"sweet chili", "honey", "mango", "pineapple", "teriyaki", "glaze"},
			Reason:   "Delicious sweet & spicy combo",
		},
	}

	textureFamilies = map[preferences.Texture]family{
		preferences.TextureCrispy: {
			Keywords: []string{"fried", "crispy", "crunchy", "breaded", "battered", "tempura", "schnitzel"},
			Reason:   "Has that crunch you wanted",
		},
		preferences.TextureGrilled: {
			Keywords: []string{"grilled", "charred", "roasted", "seared"},
			Reason:   "Fire-grilled goodness",
		},
		preferences.TextureSaucy: {
			Keywords: []string{"stew", "curry", "sauce", "braised", "soup", "gravy", "risotto"},
			Reason:   "Saucy and comforting",
		},
		preferences.TextureRaw: {
			Keywords: []string{"salad", "raw", "sashimi", "tartare", "carpaccio", "cold"},
			Reason:   "Fresh and crisp",
		},
	}

	lightKeywords         = []string{"salad", "soup", "steamed", "grilled chicken", "fish"}
	lightPenaltyKeywords  = []string{"cream", "fried", "burger", "pasta", "cheese"}
	heavyKeywords         = []string{"burger", "pasta", "fried", "cheese", "cream", "steak", "potato"}
	heartyStarterKeywords = []string{"wings", "nachos"}
	commonDishKeywords    = []string{"burger", "pizza", "pasta", "chicken", "caesar", "fries", "sandwich"}
)

// Reasons that are not tied to a keyword family.
const (
	reasonHearty      = "A hearty, indulgent meal"
	reasonHeat        = "Packs the heat you like"
	reasonAdventurous = "A unique, adventurous choice"
	reasonFamiliar    = "A safe, familiar favorite"

	// FallbackReason is the match reason used when no rule produced one.
	FallbackReason = "Matches your general taste profile."
)

// matchesAny reports whether text contains any of the keywords.
// text must already be lower-cased.
func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// proteinReason formats the reason for a protein match.
func proteinReason(p preferences.Protein) string {
	return "Perfect choice for " + string(p) + " lovers"
}

// cuisineReason formats the reason for a direct cuisine match.
func cuisineReason(c preferences.Cuisine) string {
	return "Hits that " + string(c) + " craving"
}
