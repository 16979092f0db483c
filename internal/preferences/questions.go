// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package preferences

// QuestionID names a quiz question. Each id matches the json name of the
// Vector field it fills.
type QuestionID string

const (
	QuestionRestrictions    QuestionID = "restrictions"
	QuestionProtein         QuestionID = "protein"
	QuestionCuisine         QuestionID = "cuisine"
	QuestionSpiciness       QuestionID = "spiciness"
	QuestionFlavorProfile   QuestionID = "flavor_profile"
	QuestionTexture         QuestionID = "texture"
	QuestionBalance         QuestionID = "balance"
	QuestionAdventurousness QuestionID = "adventurousness"
	QuestionBudget          QuestionID = "budget"
	QuestionDessert         QuestionID = "dessert"
)

// Option is one selectable answer.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Question is a single quiz prompt with its fixed option set.
type Question struct {
	ID      QuestionID `json:"id"`
	Text    string     `json:"text"`
	Options []Option   `json:"options"`
}

// Has reports whether value is one of the question's options.
func (q *Question) Has(value string) bool {
	for _, opt := range q.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

var questionBank = []Question{
	{
		ID:   QuestionRestrictions,
		Text: "First, do you have any strict dietary requirements?",
		Options: []Option{
			{Label: "No restrictions", Value: string(RestrictionNone)},
			{Label: "Vegetarian", Value: string(RestrictionVegetarian)},
			{Label: "Vegan", Value: string(RestrictionVegan)},
			{Label: "No Pork", Value: string(RestrictionNoPork)},
			{Label: "Gluten-Free", Value: string(RestrictionGlutenFree)},
		},
	},
	{
		ID:   QuestionProtein,
		Text: "What main ingredient are you in the mood for?",
		Options: []Option{
			{Label: "Beef / Red Meat", Value: string(ProteinBeef)},
			{Label: "Chicken / Poultry", Value: string(ProteinChicken)},
			{Label: "Seafood / Fish", Value: string(ProteinSeafood)},
			{Label: "Plant-based / Veggies", Value: string(ProteinVegetarian)},
			{Label: "Surprise me (Anything goes)", Value: string(ProteinAny)},
		},
	},
	{
		ID:   QuestionCuisine,
		Text: "Which culinary vibe matches your current mood?",
		Options: []Option{
			{Label: "Italian / Pasta / Mediterranean", Value: string(CuisineItalian)},
			{Label: "Asian (Thai/Chinese/Sushi)", Value: string(CuisineAsian)},
			{Label: "Mexican / Latin American", Value: string(CuisineMexican)},
			{Label: "American Grill / Burgers", Value: string(CuisineAmerican)},
			{Label: "Open to anything", Value: string(CuisineAny)},
		},
	},
	{
		ID:   QuestionSpiciness,
		Text: "How much heat can you handle?",
		Options: []Option{
			{Label: "None (Zero spice)", Value: string(SpicinessNone)},
			{Label: "Mild (Just a tickle)", Value: string(SpicinessMild)},
			{Label: "Medium (Nice kick)", Value: string(SpicinessMedium)},
			{Label: "Hot (Bring the fire)", Value: string(SpicinessHot)},
		},
	},
	{
		ID:   QuestionFlavorProfile,
		Text: "What specific flavor profile is your palate craving?",
		Options: []Option{
			{Label: "Rich, Creamy & Cheesy", Value: string(FlavorCreamy)},
			{Label: "Deep Savory & Umami (Salty/Meaty)", Value: string(FlavorSavory)},
			{Label: "Fresh, Zesty & Citrusy", Value: string(FlavorFresh)},
			{Label: "Smoky & BBQ", Value: string(FlavorSmoky)},
			{Label: "Sweet & Spicy", Value: string(FlavorSweetSpicy)},
		},
	},
	{
		ID:   QuestionTexture,
		Text: "How about texture? How do you want it prepared?",
		Options: []Option{
			{Label: "Crispy, Fried, or Breaded", Value: string(TextureCrispy)},
			{Label: "Grilled, Charred, or Seared", Value: string(TextureGrilled)},
			{Label: "Saucy, Soft, or Stewed", Value: string(TextureSaucy)},
			{Label: "Fresh, Raw, or Cold", Value: string(TextureRaw)},
			{Label: "No specific preference", Value: string(TextureAny)},
		},
	},
	{
		ID:   QuestionBalance,
		Text: "Are you looking for something Light or Indulgent?",
		Options: []Option{
			{Label: "Light & Healthy (Salads, Steamed)", Value: string(BalanceLight)},
			{Label: "Balanced & Wholesome", Value: string(BalanceBalanced)},
			{Label: "Heavy, Rich & Comforting", Value: string(BalanceHeavy)},
		},
	},
	{
		ID:   QuestionAdventurousness,
		Text: "How risky do you want to be with your choice?",
		Options: []Option{
			{Label: "Stick to safe, familiar comfort food", Value: string(LevelLow)},
			{Label: "Willing to try something a bit different", Value: string(LevelMedium)},
			{Label: "I want an exotic food adventure", Value: string(LevelHigh)},
		},
	},
	{
		ID:   QuestionBudget,
		Text: "What's the budget for this meal?",
		Options: []Option{
			{Label: "Budget-friendly / Value", Value: string(LevelLow)},
			{Label: "Standard / Mid-range", Value: string(LevelMedium)},
			{Label: "Splurge / Premium", Value: string(LevelHigh)},
		},
	},
	{
		ID:   QuestionDessert,
		Text: "Finally, are we saving room for dessert?",
		Options: []Option{
			{Label: "Yes, definitely!", Value: string(DessertYes)},
			{Label: "No, savory food only", Value: string(DessertNo)},
			{Label: "Maybe, if it matches the meal", Value: string(DessertMaybe)},
		},
	},
}

// Questions returns the quiz in presentation order. The returned slice is a
// copy and may be modified by the caller.
func Questions() []Question {
	out := make([]Question, len(questionBank))
	for i := range questionBank {
		out[i] = questionBank[i]
		out[i].Options = append([]Option(nil), questionBank[i].Options...)
	}
	return out
}

// Lookup returns the question with the given id.
func Lookup(id QuestionID) (Question, bool) {
	for i := range questionBank {
		if questionBank[i].ID == id {
			return questionBank[i], true
		}
	}
	return Question{}, false
}
