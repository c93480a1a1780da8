// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

/*
Package services adapts long-running components to suture.Service.

  - HTTPServerService runs an *http.Server and shuts it down gracefully
    when the supervisor context is canceled.
  - MaintenanceService runs a task on a fixed interval with a per-run
    timeout. Failed runs are logged at warn and retried on the next tick.

Every service implements fmt.Stringer so suture events name it.
*/
package services
