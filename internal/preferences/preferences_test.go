// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package preferences

import (
	"errors"
	"strings"
	"testing"
)

func fullAnswers() map[QuestionID]string {
	return map[QuestionID]string{
		QuestionRestrictions:    "none",
		QuestionProtein:         "beef",
		QuestionCuisine:         "american",
		QuestionSpiciness:       "none",
		QuestionFlavorProfile:   "savory",
		QuestionTexture:         "grilled",
		QuestionBalance:         "heavy",
		QuestionAdventurousness: "low",
		QuestionBudget:          "medium",
		QuestionDessert:         "maybe",
	}
}

func TestQuestions(t *testing.T) {
	qs := Questions()
	if len(qs) != 10 {
		t.Fatalf("Questions() returned %d questions, want 10", len(qs))
	}

	seen := make(map[QuestionID]bool)
	for _, q := range qs {
		if seen[q.ID] {
			t.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
		if len(q.Options) < 3 {
			t.Errorf("question %q has %d options", q.ID, len(q.Options))
		}
	}

	// Mutating the copy must not leak into the bank.
	qs[0].Options[0].Value = "mutated"
	if q, _ := Lookup(QuestionRestrictions); q.Options[0].Value != "none" {
		t.Error("Questions() returned a slice sharing options with the bank")
	}
}

// Every option in the bank must pass the vector's validate tags, and vice versa.
func TestQuestionBankMatchesVectorValidation(t *testing.T) {
	base, err := FromAnswers(fullAnswers())
	if err != nil {
		t.Fatalf("FromAnswers() error = %v", err)
	}

	for _, q := range Questions() {
		for _, opt := range q.Options {
			answers := fullAnswers()
			answers[q.ID] = opt.Value
			v, err := FromAnswers(answers)
			if err != nil {
				t.Fatalf("FromAnswers(%s=%s) error = %v", q.ID, opt.Value, err)
			}
			if err := v.Validate(); err != nil {
				t.Errorf("Validate() rejected bank option %s=%s: %v", q.ID, opt.Value, err)
			}
		}
	}

	if err := base.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestBuilder_IncrementalCompletion(t *testing.T) {
	b := NewBuilder()
	if b.Complete() {
		t.Fatal("empty builder reports complete")
	}
	if next, ok := b.Next(); !ok || next.ID != QuestionRestrictions {
		t.Fatalf("Next() = %v, %v; want restrictions", next.ID, ok)
	}

	answers := fullAnswers()
	for i, q := range Questions() {
		if _, err := b.Build(); !errors.Is(err, ErrIncomplete) {
			t.Fatalf("Build() after %d answers: err = %v, want ErrIncomplete", i, err)
		}
		if err := b.Answer(q.ID, answers[q.ID]); err != nil {
			t.Fatalf("Answer(%s) error = %v", q.ID, err)
		}
		if got := b.Answered(); got != i+1 {
			t.Errorf("Answered() = %d, want %d", got, i+1)
		}
	}

	if !b.Complete() {
		t.Fatal("builder not complete after all answers")
	}
	if _, ok := b.Next(); ok {
		t.Error("Next() should report no remaining questions")
	}

	v, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if v.Protein != ProteinBeef || v.FlavorProfile != FlavorSavory || v.Dessert != DessertMaybe {
		t.Errorf("Build() = %+v", v)
	}
}

func TestBuilder_BuildNamesMissingQuestions(t *testing.T) {
	b := NewBuilder()
	_ = b.Answer(QuestionRestrictions, "vegan")
	_ = b.Answer(QuestionBudget, "low")
	b.Clear(QuestionBudget)

	_, err := b.Build()
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("Build() err = %v", err)
	}
	if !strings.Contains(err.Error(), "budget") || strings.Contains(err.Error(), "restrictions") {
		t.Errorf("Build() error %q should name budget and not restrictions", err)
	}
}

func TestBuilder_RejectsBadAnswers(t *testing.T) {
	b := NewBuilder()

	if err := b.Answer("mood", "happy"); !errors.Is(err, ErrUnknownQuestion) {
		t.Errorf("Answer(unknown) err = %v, want ErrUnknownQuestion", err)
	}
	if err := b.Answer(QuestionDessert, "always"); !errors.Is(err, ErrInvalidAnswer) {
		t.Errorf("Answer(dessert=always) err = %v, want ErrInvalidAnswer", err)
	}
	// balance has no "any" option
	if err := b.Answer(QuestionBalance, "any"); !errors.Is(err, ErrInvalidAnswer) {
		t.Errorf("Answer(balance=any) err = %v, want ErrInvalidAnswer", err)
	}
	if b.Answered() != 0 {
		t.Errorf("Answered() = %d after rejected answers", b.Answered())
	}
}

func TestFromAnswers_UnknownQuestion(t *testing.T) {
	answers := fullAnswers()
	answers["zodiac"] = "leo"
	if _, err := FromAnswers(answers); !errors.Is(err, ErrUnknownQuestion) {
		t.Errorf("FromAnswers() err = %v, want ErrUnknownQuestion", err)
	}
}

func TestVectorValidate(t *testing.T) {
	v, _ := FromAnswers(fullAnswers())
	v.Texture = "soggy"
	err := v.Validate()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("Validate() err = %v, want ErrInvalid", err)
	}
	if !strings.Contains(err.Error(), "texture") {
		t.Errorf("Validate() error %q should name texture", err)
	}

	var empty Vector
	if err := empty.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("zero Vector Validate() = %v, want ErrInvalid", err)
	}
}
