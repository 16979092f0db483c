// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package menu

import (
	"strings"
)

// Course classifies where a dish sits in a meal.
type Course string

const (
	CourseStarter Course = "starter"
	CourseMain    Course = "main"
	CourseDessert Course = "dessert"
	CourseDrink   Course = "drink"
	CourseSide    Course = "side"
	CourseUnknown Course = "unknown"
)

// Courses lists every course in schema order.
var Courses = []Course{CourseStarter, CourseMain, CourseDessert, CourseDrink, CourseSide, CourseUnknown}

// ParseCourse normalizes a course label. Unrecognized values map to CourseUnknown.
func ParseCourse(s string) Course {
	c := Course(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Courses {
		if c == known {
			return c
		}
	}
	return CourseUnknown
}

// Spiciness is the heat level of a dish.
type Spiciness string

const (
	SpicinessNone   Spiciness = "none"
	SpicinessMild   Spiciness = "mild"
	SpicinessMedium Spiciness = "medium"
	SpicinessHot    Spiciness = "hot"
)

// ParseSpiciness normalizes a spiciness label. Empty or unrecognized values
// map to SpicinessNone.
func ParseSpiciness(s string) Spiciness {
	switch v := Spiciness(strings.ToLower(strings.TrimSpace(s))); v {
	case SpicinessMild, SpicinessMedium, SpicinessHot:
		return v
	default:
		return SpicinessNone
	}
}

// Spicy reports whether the level is medium or hot.
func (s Spiciness) Spicy() bool {
	return s == SpicinessMedium || s == SpicinessHot
}

// Tags are the attributes inferred for a dish at extraction time.
type Tags struct {
	Course    Course    `json:"course"`
	Protein   string    `json:"protein"`
	Cuisine   string    `json:"cuisine"`
	Spiciness Spiciness `json:"spiciness"`
	// Dietary holds free-text labels such as "vegan" or "gluten-free".
	Dietary []string `json:"dietary"`
}

// Item is a single dish on an extracted menu.
type Item struct {
	// ID is unique within one extraction batch only.
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// Price is the display string as printed on the menu ("$15.50", "Market Price", "").
	Price string `json:"price"`
	Tags  Tags   `json:"tags"`
}

// Text returns the lower-cased name and description joined by a space.
// Keyword matching runs against this text.
func (i *Item) Text() string {
	return strings.ToLower(i.Name + " " + i.Description)
}

// HasDietary reports whether the item carries the given dietary label.
// The comparison is case-insensitive.
func (i *Item) HasDietary(label string) bool {
	for _, d := range i.Tags.Dietary {
		if strings.EqualFold(strings.TrimSpace(d), label) {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with the receiver.
func (i *Item) Clone() Item {
	c := *i
	if i.Tags.Dietary != nil {
		c.Tags.Dietary = append([]string(nil), i.Tags.Dietary...)
	}
	return c
}

// CloneItems deep-copies a slice of items.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for idx := range items {
		out[idx] = items[idx].Clone()
	}
	return out
}
