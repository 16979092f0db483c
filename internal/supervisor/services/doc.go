// Menuwise - Restaurant Menu Dish Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuwise

/*
Package services adapts Menuwise components to suture.Service.

  - HTTPServerService runs an *http.Server with graceful shutdown.
  - RunnerService wraps a blocking Run(ctx) loop with a name, used for the
    session expiry sweeper and the extraction cache janitor.

The WebSocket hub implements suture.Service itself and needs no wrapper.
*/
package services
