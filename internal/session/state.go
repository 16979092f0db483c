// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

package session

import (
	"github.com/tomtom215/menuwise/internal/menu"
	"github.com/tomtom215/menuwise/internal/preferences"
)

// Step is a screen of the recommendation flow.
type Step string

const (
	StepLanding       Step = "landing"
	StepInput         Step = "input"
	StepQuestionnaire Step = "questionnaire"
	StepPreview       Step = "preview"
	StepResults       Step = "results"
)

// Event names an Orchestrator operation. Used in errors, logs and metrics.
type Event string

const (
	EventStart                 Event = "start"
	EventCancel                Event = "cancel"
	EventSubmitInput           Event = "submit_input"
	EventCompleteQuestionnaire Event = "complete_questionnaire"
	EventRetryMenu             Event = "retry_menu"
	EventConfirmPreview        Event = "confirm_preview"
	EventRestart               Event = "restart"
	EventExtractionSettled     Event = "extraction_settled"
)

// State is a snapshot of one session.
type State struct {
	Step            Step                `json:"step"`
	Items           []menu.Item         `json:"items"`
	Preferences     *preferences.Vector `json:"preferences,omitempty"`
	IsExtracting    bool                `json:"is_extracting"`
	ExtractionError string              `json:"extraction_error,omitempty"`

	// Generation identifies the latest submission.
	Generation uint64 `json:"generation"`
}

func (s *State) clone() State {
	c := *s
	c.Items = menu.CloneItems(s.Items)
	if s.Preferences != nil {
		prefs := *s.Preferences
		c.Preferences = &prefs
	}
	return c
}

// PreviewStatus is what the preview screen should show.
type PreviewStatus string

const (
	PreviewLoading PreviewStatus = "loading"
	PreviewError   PreviewStatus = "error"
	PreviewReady   PreviewStatus = "ready"
)

// PreviewView is the preview screen content.
type PreviewView struct {
	Status PreviewStatus `json:"status"`
	Items  []menu.Item   `json:"items,omitempty"`
	Error  string        `json:"error,omitempty"`
}

func previewOf(s *State) PreviewView {
	switch {
	case s.IsExtracting:
		return PreviewView{Status: PreviewLoading}
	case s.ExtractionError != "":
		return PreviewView{Status: PreviewError, Error: s.ExtractionError}
	default:
		return PreviewView{Status: PreviewReady, Items: menu.CloneItems(s.Items)}
	}
}
