// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package preferences

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrIncomplete is returned by Build while questions remain unanswered.
	ErrIncomplete = errors.New("preference vector incomplete")

	// ErrUnknownQuestion is returned for an answer to a question not in the bank.
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrInvalidAnswer is returned for a value outside the question's option set.
	ErrInvalidAnswer = errors.New("invalid answer")
)

// Builder collects quiz answers one question at a time. The zero value is
// ready to use. A Builder is not safe for concurrent use.
type Builder struct {
	restrictions    *Restriction
	protein         *Protein
	cuisine         *Cuisine
	spiciness       *Spiciness
	flavorProfile   *FlavorProfile
	texture         *Texture
	balance         *Balance
	adventurousness *Level
	budget          *Level
	dessert         *Dessert
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Answer records the answer to one question, replacing any earlier answer.
func (b *Builder) Answer(id QuestionID, value string) error {
	q, ok := Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, id)
	}
	if !q.Has(value) {
		return fmt.Errorf("%w: %q for %s", ErrInvalidAnswer, value, id)
	}

	switch id {
	case QuestionRestrictions:
		v := Restriction(value)
		b.restrictions = &v
	case QuestionProtein:
		v := Protein(value)
		b.protein = &v
	case QuestionCuisine:
		v := Cuisine(value)
		b.cuisine = &v
	case QuestionSpiciness:
		v := Spiciness(value)
		b.spiciness = &v
	case QuestionFlavorProfile:
		v := FlavorProfile(value)
		b.flavorProfile = &v
	case QuestionTexture:
		v := Texture(value)
		b.texture = &v
	case QuestionBalance:
		v := Balance(value)
		b.balance = &v
	case QuestionAdventurousness:
		v := Level(value)
		b.adventurousness = &v
	case QuestionBudget:
		v := Level(value)
		b.budget = &v
	case QuestionDessert:
		v := Dessert(value)
		b.dessert = &v
	}
	return nil
}

// Clear removes the answer to a question, e.g. when the diner steps back.
func (b *Builder) Clear(id QuestionID) {
	switch id {
	case QuestionRestrictions:
		b.restrictions = nil
	case QuestionProtein:
		b.protein = nil
	case QuestionCuisine:
		b.cuisine = nil
	case QuestionSpiciness:
		b.spiciness = nil
	case QuestionFlavorProfile:
		b.flavorProfile = nil
	case QuestionTexture:
		b.texture = nil
	case QuestionBalance:
		b.balance = nil
	case QuestionAdventurousness:
		b.adventurousness = nil
	case QuestionBudget:
		b.budget = nil
	case QuestionDessert:
		b.dessert = nil
	}
}

func (b *Builder) answered(id QuestionID) bool {
	switch id {
	case QuestionRestrictions:
		return b.restrictions != nil
	case QuestionProtein:
		return b.protein != nil
	case QuestionCuisine:
		return b.cuisine != nil
	case QuestionSpiciness:
		return b.spiciness != nil
	case QuestionFlavorProfile:
		return b.flavorProfile != nil
	case QuestionTexture:
		return b.texture != nil
	case QuestionBalance:
		return b.balance != nil
	case QuestionAdventurousness:
		return b.adventurousness != nil
	case QuestionBudget:
		return b.budget != nil
	case QuestionDessert:
		return b.dessert != nil
	default:
		return false
	}
}

// Answered returns how many questions have an answer.
func (b *Builder) Answered() int {
	return len(questionBank) - len(b.Remaining())
}

// Remaining returns the unanswered question ids in quiz order.
func (b *Builder) Remaining() []QuestionID {
	var missing []QuestionID
	for i := range questionBank {
		if !b.answered(questionBank[i].ID) {
			missing = append(missing, questionBank[i].ID)
		}
	}
	return missing
}

// Next returns the first unanswered question, or false when the quiz is done.
func (b *Builder) Next() (Question, bool) {
	remaining := b.Remaining()
	if len(remaining) == 0 {
		return Question{}, false
	}
	return Lookup(remaining[0])
}

// Complete reports whether every question has an answer.
func (b *Builder) Complete() bool {
	return len(b.Remaining()) == 0
}

// Build returns the finished vector. It fails with ErrIncomplete, naming the
// missing questions, until every question has been answered.
func (b *Builder) Build() (Vector, error) {
	if missing := b.Remaining(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, id := range missing {
			names[i] = string(id)
		}
		return Vector{}, fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(names, ", "))
	}

	return Vector{
		Restrictions:    *b.restrictions,
		Protein:         *b.protein,
		Cuisine:         *b.cuisine,
		Spiciness:       *b.spiciness,
		FlavorProfile:   *b.flavorProfile,
		Texture:         *b.texture,
		Balance:         *b.balance,
		Adventurousness: *b.adventurousness,
		Budget:          *b.budget,
		Dessert:         *b.dessert,
	}, nil
}

// FromAnswers builds a vector from a question-id keyed answer map in one step.
// Answers are applied in quiz order so the first reported error is stable.
func FromAnswers(answers map[QuestionID]string) (Vector, error) {
	unknown := make([]string, 0)
	for id := range answers {
		if _, ok := Lookup(id); !ok {
			unknown = append(unknown, string(id))
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Vector{}, fmt.Errorf("%w: %q", ErrUnknownQuestion, unknown[0])
	}

	b := NewBuilder()
	for i := range questionBank {
		id := questionBank[i].ID
		value, ok := answers[id]
		if !ok {
			continue
		}
		if err := b.Answer(id, value); err != nil {
			return Vector{}, err
		}
	}
	return b.Build()
}
