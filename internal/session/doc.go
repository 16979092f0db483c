// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

/*
Package session drives one diner through the recommendation flow.

An Orchestrator is a small state machine over five steps:

	Landing -> Input -> Questionnaire -> Preview -> Results
	             ^            |             |
	             +------------+-------------+   (extraction error / retry)

Submitting a menu starts extraction in the background and immediately moves
the diner on to the questionnaire (or straight to the preview when
preferences are already known). The extraction result lands in the state
whenever it arrives; the preview reports loading, error or ready depending
on what has landed so far.

Every submission carries a generation number. Submit, retry and restart
bump it, and a result whose generation is no longer current is discarded,
so a slow extraction can never overwrite a newer menu.

All state changes go through Orchestrator methods under a single mutex.
Callers only ever see deep-copied snapshots, either on demand (Snapshot)
or pushed through Subscribe.

Manager keeps one Orchestrator per browser session, keyed by a random id,
and expires sessions that stay idle longer than the configured TTL.
*/
package session
