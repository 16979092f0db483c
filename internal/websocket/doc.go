// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

/*
Package websocket pushes live session state to browsers.

A client connects to /api/v1/sessions/{id}/ws and receives a "state"
message after every transition of that session: the step changing,
extraction starting or settling, preferences being recorded. This lets the
frontend render the loading preview without polling.

Key Components:

  - Hub: owns client registration and fan-out. Clients of the same session
    share one upstream subscription, opened for the first watcher and
    released with the last. The latest snapshot is replayed to late joiners.
  - Client: one connection with a read pump (pings, close detection) and a
    write pump (snapshots, keepalive).
  - StateSource: where snapshots come from; session.Manager implements it.

Message Types:

  - state: a session.State snapshot
  - session_closed: the session was deleted or expired; the server closes
    the connection afterwards
  - ping / pong: application-level keepalive initiated by the client

Slow clients whose send buffer fills up are disconnected rather than
allowed to stall the hub.

Usage:

	hub := websocket.NewHub(sessions, logger)
	go hub.RunWithContext(ctx)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err == nil {
	    _ = websocket.NewClient(hub, conn, sessionID).Attach()
	}
*/
package websocket
