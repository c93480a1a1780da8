// Lumiere - Tag-Driven Movie Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

/*
Package supervisor provides process supervision for Lumiere using suture v4.

The tree has two layers so that background maintenance can fail and back
off without affecting request serving:

	RootSupervisor ("lumiere")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   ├── cache-gc       (Badger value-log GC, badger backend only)
	│   └── db-checkpoint  (DuckDB WAL checkpoint)
	└── APISupervisor ("api-layer")
	    └── http-server

Crashed services restart with suture's exponential backoff. Canceling the
context passed to Serve stops every service; services that miss
TreeConfig.ShutdownTimeout show up in UnstoppedServiceReport.

Supervisor events are logged through sutureslog, which takes a *slog.Logger.
Use logging.NewSlogLogger so the events reach the zerolog output:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(srv, addr, 10*time.Second, logger))
	return tree.Serve(ctx)

Service wrappers live in the services subpackage.
*/
package supervisor
