// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

/*
Package supervisor provides process supervision for Menuwise using suture v4.

# Tree

	menuwise
	├── state-layer
	│   ├── session-sweeper      closes idle sessions
	│   └── extraction-cache     drops expired cached menus (when enabled)
	├── messaging-layer
	│   └── websocket-hub        fans session snapshots out to clients
	└── api-layer
	    └── http-server

A service that returns an error is restarted with backoff; a crash loop in
one layer does not stop the others. Supervisor events are logged through
sutureslog, which writes to the zerolog-backed slog handler from package
logging.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{})
	if err != nil {
		return err
	}
	tree.AddStateService(services.NewRunnerService("session-sweeper", sessions.Run))
	tree.AddMessagingService(hub)
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))
	return tree.Serve(ctx)

Serve returns after every service has stopped or missed ShutdownTimeout;
UnstoppedServiceReport names the ones that did not stop.
*/
package supervisor
