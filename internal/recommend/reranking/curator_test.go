// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package reranking

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/menuwise/internal/menu"
	"github.com/tomtom215/menuwise/internal/preferences"
	"github.com/tomtom215/menuwise/internal/recommend"
)

func scored(id string, course menu.Course, score int) recommend.ScoredItem {
	return recommend.ScoredItem{
		Item:  menu.Item{ID: id, Name: id, Tags: menu.Tags{Course: course}},
		Score: score,
	}
}

func idsOf(items []recommend.ScoredItem) []string {
	out := make([]string, 0, len(items))
	for i := range items {
		out = append(out, items[i].Item.ID)
	}
	return out
}

func TestCourseCurator_Name(t *testing.T) {
	c := NewCourseCurator(DefaultCuratorConfig())
	if c.Name() != "course" {
		t.Errorf("Name() = %q, want %q", c.Name(), "course")
	}
}

func TestCourseCurator_Curate(t *testing.T) {
	tests := []struct {
		name       string
		ranked     []recommend.ScoredItem
		wantTop    []string
		wantOthers []string
	}{
		{
			name:       "empty",
			ranked:     nil,
			wantTop:    []string{},
			wantOthers: []string{},
		},
		{
			name: "one of each course in fixed order",
			ranked: []recommend.ScoredItem{
				scored("m1", menu.CourseMain, 50),
				scored("d1", menu.CourseDessert, 40),
				scored("m2", menu.CourseMain, 30),
				scored("s1", menu.CourseStarter, 10),
			},
			wantTop:    []string{"s1", "m1", "d1"},
			wantOthers: []string{"m2"},
		},
		{
			name: "missing dessert backfills from the top",
			ranked: []recommend.ScoredItem{
				scored("m1", menu.CourseMain, 50),
				scored("m2", menu.CourseMain, 45),
				scored("k1", menu.CourseDrink, 40),
				scored("s1", menu.CourseStarter, 5),
			},
			wantTop:    []string{"s1", "m1", "m2"},
			wantOthers: []string{"k1"},
		},
		{
			name: "no courses at all",
			ranked: []recommend.ScoredItem{
				scored("a", menu.CourseDrink, 9),
				scored("b", menu.CourseSide, 8),
				scored("c", menu.CourseUnknown, 7),
				scored("d", menu.CourseDrink, 6),
			},
			wantTop:    []string{"a", "b", "c"},
			wantOthers: []string{"d"},
		},
		{
			name: "course pick wins even with negative score",
			ranked: []recommend.ScoredItem{
				scored("m1", menu.CourseMain, 60),
				scored("m2", menu.CourseMain, 55),
				scored("m3", menu.CourseMain, 50),
				scored("d1", menu.CourseDessert, -100),
			},
			wantTop:    []string{"m1", "d1", "m2"},
			wantOthers: []string{"m3"},
		},
		{
			name: "fewer than three items",
			ranked: []recommend.ScoredItem{
				scored("m1", menu.CourseMain, 10),
				scored("k1", menu.CourseDrink, 1),
			},
			wantTop:    []string{"m1", "k1"},
			wantOthers: []string{},
		},
		{
			name: "duplicate ids are one dish",
			ranked: []recommend.ScoredItem{
				scored("x", menu.CourseMain, 10),
				scored("x", menu.CourseMain, 10),
				scored("y", menu.CourseSide, 5),
			},
			wantTop:    []string{"x", "y"},
			wantOthers: []string{},
		},
	}

	curator := NewCourseCurator(DefaultCuratorConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := curator.Curate(tt.ranked)
			if got := idsOf(sel.TopPicks); !reflect.DeepEqual(got, tt.wantTop) {
				t.Errorf("TopPicks = %v, want %v", got, tt.wantTop)
			}
			if got := idsOf(sel.OtherOptions); !reflect.DeepEqual(got, tt.wantOthers) {
				t.Errorf("OtherOptions = %v, want %v", got, tt.wantOthers)
			}
		})
	}
}

func TestCourseCurator_Limits(t *testing.T) {
	ranked := make([]recommend.ScoredItem, 0, 20)
	for i := 0; i < 20; i++ {
		ranked = append(ranked, scored(fmt.Sprintf("item-%02d", i), menu.CourseMain, 100-i))
	}

	sel := NewCourseCurator(DefaultCuratorConfig()).Curate(ranked)
	if len(sel.TopPicks) != 3 {
		t.Errorf("TopPicks len = %d, want 3", len(sel.TopPicks))
	}
	if len(sel.OtherOptions) != 5 {
		t.Errorf("OtherOptions len = %d, want 5", len(sel.OtherOptions))
	}

	seen := make(map[string]bool)
	for _, id := range idsOf(sel.TopPicks) {
		seen[id] = true
	}
	for _, id := range idsOf(sel.OtherOptions) {
		if seen[id] {
			t.Errorf("id %s appears in both lists", id)
		}
	}

	wantOthers := []string{"item-03", "item-04", "item-05", "item-06", "item-07"}
	if got := idsOf(sel.OtherOptions); !reflect.DeepEqual(got, wantOthers) {
		t.Errorf("OtherOptions = %v, want %v", got, wantOthers)
	}
}

func TestCourseCurator_CustomConfig(t *testing.T) {
	ranked := []recommend.ScoredItem{
		scored("m1", menu.CourseMain, 30),
		scored("k1", menu.CourseDrink, 20),
		scored("s1", menu.CourseStarter, 10),
	}

	tests := []struct {
		name       string
		cfg        CuratorConfig
		wantTop    []string
		wantOthers []string
	}{
		{
			name:       "single pick takes first course only",
			cfg:        CuratorConfig{TopPicks: 1, OtherOptions: 5, Courses: DefaultCuratorConfig().Courses},
			wantTop:    []string{"s1"},
			wantOthers: []string{"m1", "k1"},
		},
		{
			name:       "drinks first",
			cfg:        CuratorConfig{TopPicks: 2, OtherOptions: 1, Courses: []menu.Course{menu.CourseDrink}},
			wantTop:    []string{"k1", "m1"},
			wantOthers: []string{"s1"},
		},
		{
			name:       "negative sizes clamp to zero",
			cfg:        CuratorConfig{TopPicks: -1, OtherOptions: -3},
			wantTop:    []string{},
			wantOthers: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := NewCourseCurator(tt.cfg).Curate(ranked)
			if got := idsOf(sel.TopPicks); !reflect.DeepEqual(got, tt.wantTop) {
				t.Errorf("TopPicks = %v, want %v", got, tt.wantTop)
			}
			if got := idsOf(sel.OtherOptions); !reflect.DeepEqual(got, tt.wantOthers) {
				t.Errorf("OtherOptions = %v, want %v", got, tt.wantOthers)
			}
		})
	}
}

func TestCourseCurator_DoesNotMutateInput(t *testing.T) {
	ranked := []recommend.ScoredItem{
		scored("m1", menu.CourseMain, 30),
		scored("s1", menu.CourseStarter, 10),
	}
	before := idsOf(ranked)
	NewCourseCurator(DefaultCuratorConfig()).Curate(ranked)
	if got := idsOf(ranked); !reflect.DeepEqual(got, before) {
		t.Errorf("input reordered: %v, want %v", got, before)
	}
}

func TestCourseCurator_WithEngine(t *testing.T) {
	engine, err := recommend.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	engine.RegisterCurator(NewCourseCurator(DefaultCuratorConfig()))

	items := []menu.Item{
		{ID: "1", Name: "Tiramisu", Tags: menu.Tags{Course: menu.CourseDessert}},
		{ID: "2", Name: "Bruschetta", Description: "tomato and basil", Tags: menu.Tags{Course: menu.CourseStarter}},
		{ID: "3", Name: "Lasagna", Description: "beef ragu pasta", Tags: menu.Tags{Course: menu.CourseMain}},
		{ID: "4", Name: "Espresso", Tags: menu.Tags{Course: menu.CourseDrink}},
	}
	prefs := preferences.Vector{
		Restrictions:    preferences.RestrictionNone,
		Protein:         preferences.ProteinBeef,
		Cuisine:         preferences.CuisineItalian,
		Spiciness:       preferences.SpicinessMild,
		FlavorProfile:   preferences.FlavorSavory,
		Texture:         preferences.TextureAny,
		Balance:         preferences.BalanceBalanced,
		Adventurousness: preferences.LevelMedium,
		Budget:          preferences.LevelMedium,
		Dessert:         preferences.DessertNo,
	}

	resp, err := engine.Recommend(context.Background(), items, prefs)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	// Tiramisu is pinned to -100 but still fills the dessert slot.
	if got := idsOf(resp.Selection.TopPicks); !reflect.DeepEqual(got, []string{"2", "3", "1"}) {
		t.Errorf("TopPicks = %v, want [2 3 1]", got)
	}
	if got := idsOf(resp.Selection.OtherOptions); !reflect.DeepEqual(got, []string{"4"}) {
		t.Errorf("OtherOptions = %v, want [4]", got)
	}
	if resp.Metadata.Curator != "course" {
		t.Errorf("Curator = %q, want course", resp.Metadata.Curator)
	}
}
