// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

// Package menu defines the structured menu records produced by extraction.
//
// # Overview
//
// A Record is what the extraction collaborator returns: name, description,
// display price and inferred tags. Records carry no identity of their own.
// FromRecords turns a batch of records into Items, assigning each one an id
// derived from its position in the batch and the batch timestamp:
//
//	items := menu.FromRecords(records, time.Now())
//	// items[0].ID == "menu-item-0-1760600000000"
//
// Ids are unique within one batch. Re-extracting the same menu produces a
// different set of ids, so ids must not be persisted or compared across
// batches.
//
// # Normalization
//
// Course and spiciness values outside their enumerations collapse to
// CourseUnknown and SpicinessNone. Records without a name are dropped.
// Items are treated as immutable once created.
package menu
