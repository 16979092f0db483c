// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package session

import (
	"errors"
	"fmt"
)

// EmptyMenuMessage is recorded when extraction finds no dishes.
const EmptyMenuMessage = "No menu items found. Please try again."

// fallbackFailureMessage is recorded for errors that carry no message.
const fallbackFailureMessage = "Failed to parse menu"

// timeoutMessage is recorded when extraction exceeds its deadline.
const timeoutMessage = "Reading the menu took too long. Please try again."

// tooManyItemsMessage is recorded when a menu is larger than the
// recommender accepts.
func tooManyItemsMessage(found, limit int) string {
	return fmt.Sprintf("This menu has %d dishes, more than the %d we can rank. Please submit one section at a time.", found, limit)
}

var (
	// ErrInvalidTransition is returned when an event is not accepted in the
	// current step. The state is left unchanged.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrClosed is returned by a closed orchestrator.
	ErrClosed = errors.New("session closed")

	// ErrNotFound is returned by Manager for unknown or expired ids.
	ErrNotFound = errors.New("session not found")

	// ErrTooManySessions is returned by Manager.Create at capacity.
	ErrTooManySessions = errors.New("too many active sessions")
)

// ExtractionFailedError is returned by CompleteQuestionnaire when the
// background extraction failed while the diner was answering. The session
// has already been moved back to the input step.
type ExtractionFailedError struct {
	Message string
}

func (e *ExtractionFailedError) Error() string {
	return fmt.Sprintf("error reading menu: %s", e.Message)
}

func invalidTransition(event Event, step Step) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, event, step)
}
