// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package menu

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/menuwise/internal/validation"
)

// RecordTags mirrors the tag object of the extraction schema.
type RecordTags struct {
	Course    string   `json:"course"`
	Protein   string   `json:"protein"`
	Cuisine   string   `json:"cuisine,omitempty"`
	Spiciness string   `json:"spiciness"`
	Dietary   []string `json:"dietary"`
}

// Record is one dish as returned by the extraction collaborator.
// Any id field the collaborator sends is ignored.
type Record struct {
	Name        string     `json:"name" validate:"notblank"`
	Description string     `json:"description"`
	Price       string     `json:"price"`
	Tags        RecordTags `json:"tags"`
}

// Validate checks the record has the fields an Item requires.
func (r *Record) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return err
	}
	return nil
}

// ItemID formats the id assigned to the record at position index of a batch
// received at the given time.
func ItemID(index int, receivedAt time.Time) string {
	return fmt.Sprintf("menu-item-%d-%d", index, receivedAt.UnixMilli())
}

// FromRecords converts a batch of records into items, assigning batch-local ids.
// Records that fail validation are skipped; the batch index used for the id is
// the record's original position, so ids remain unique.
func FromRecords(records []Record, receivedAt time.Time) []Item {
	items := make([]Item, 0, len(records))
	for idx := range records {
		rec := &records[idx]
		if err := rec.Validate(); err != nil {
			continue
		}

		var dietary []string
		for _, d := range rec.Tags.Dietary {
			if d = strings.TrimSpace(d); d != "" {
				dietary = append(dietary, d)
			}
		}

		items = append(items, Item{
			ID:          ItemID(idx, receivedAt),
			Name:        strings.TrimSpace(rec.Name),
			Description: strings.TrimSpace(rec.Description),
			Price:       strings.TrimSpace(rec.Price),
			Tags: Tags{
				Course:    ParseCourse(rec.Tags.Course),
				Protein:   strings.TrimSpace(rec.Tags.Protein),
				Cuisine:   strings.TrimSpace(rec.Tags.Cuisine),
				Spiciness: ParseSpiciness(rec.Tags.Spiciness),
				Dietary:   dietary,
			},
		})
	}
	return items
}
