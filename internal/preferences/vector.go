// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

// Package preferences models the ten-answer taste quiz.
//
// A Vector is only ever produced complete: either by Builder.Build once every
// question has an answer, or by decoding a full vector and calling Validate.
// The scoring engine assumes a valid Vector and performs no checks of its own.
package preferences

import (
	"errors"
	"fmt"

	"github.com/tomtom215/menuwise/internal/validation"
)

// ErrInvalid is returned when a vector has missing or out-of-range answers.
var ErrInvalid = errors.New("invalid preference vector")

// Restriction is a hard dietary requirement.
type Restriction string

const (
	RestrictionNone       Restriction = "none"
	RestrictionVegetarian Restriction = "vegetarian"
	RestrictionVegan      Restriction = "vegan"
	RestrictionNoPork     Restriction = "no-pork"
	RestrictionGlutenFree Restriction = "gluten-free"
)

// Protein is the main ingredient the diner is in the mood for.
type Protein string

const (
	ProteinBeef       Protein = "beef"
	ProteinChicken    Protein = "chicken"
	ProteinSeafood    Protein = "seafood"
	ProteinVegetarian Protein = "vegetarian"
	ProteinAny        Protein = "any"
)

// Cuisine is the culinary style the diner prefers.
type Cuisine string

const (
	CuisineItalian  Cuisine = "italian"
	CuisineAsian    Cuisine = "asian"
	CuisineMexican  Cuisine = "mexican"
	CuisineAmerican Cuisine = "american"
	CuisineAny      Cuisine = "any"
)

// Spiciness is the heat tolerance of the diner.
type Spiciness string

const (
	SpicinessNone   Spiciness = "none"
	SpicinessMild   Spiciness = "mild"
	SpicinessMedium Spiciness = "medium"
	SpicinessHot    Spiciness = "hot"
)

// FlavorProfile is the flavor family the diner craves.
type FlavorProfile string

const (
	FlavorCreamy     FlavorProfile = "creamy"
	FlavorSavory     FlavorProfile = "savory"
	FlavorFresh      FlavorProfile = "fresh"
	FlavorSmoky      FlavorProfile = "smoky"
	FlavorSweetSpicy FlavorProfile = "sweet-spicy"
)

// Texture is the preferred preparation style.
type Texture string

const (
	TextureCrispy  Texture = "crispy"
	TextureGrilled Texture = "grilled"
	TextureSaucy   Texture = "saucy"
	TextureRaw     Texture = "raw"
	TextureAny     Texture = "any"
)

// Balance is how light or indulgent the meal should be.
type Balance string

const (
	BalanceLight    Balance = "light"
	BalanceBalanced Balance = "balanced"
	BalanceHeavy    Balance = "heavy"
)

// Level is a three-step scale shared by adventurousness and budget.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Dessert is whether the diner is saving room for dessert.
type Dessert string

const (
	DessertYes   Dessert = "yes"
	DessertMaybe Dessert = "maybe"
	DessertNo    Dessert = "no"
)

// Vector is a complete set of quiz answers.
type Vector struct {
	Restrictions    Restriction   `json:"restrictions" validate:"required,oneof=none vegetarian vegan no-pork gluten-free"`
	Protein         Protein       `json:"protein" validate:"required,oneof=beef chicken seafood vegetarian any"`
	Cuisine         Cuisine       `json:"cuisine" validate:"required,oneof=italian asian mexican american any"`
	Spiciness       Spiciness     `json:"spiciness" validate:"required,oneof=none mild medium hot"`
	FlavorProfile   FlavorProfile `json:"flavor_profile" validate:"required,oneof=creamy savory fresh smoky sweet-spicy"`
	Texture         Texture       `json:"texture" validate:"required,oneof=crispy grilled saucy raw any"`
	Balance         Balance       `json:"balance" validate:"required,oneof=light balanced heavy"`
	Adventurousness Level         `json:"adventurousness" validate:"required,oneof=low medium high"`
	Budget          Level         `json:"budget" validate:"required,oneof=low medium high"`
	Dessert         Dessert       `json:"dessert" validate:"required,oneof=yes maybe no"`
}

// Validate reports whether every field holds a value from its option set.
// The returned error wraps ErrInvalid.
func (v *Vector) Validate() error {
	if err := validation.ValidateStruct(v); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, err.Error())
	}
	return nil
}
