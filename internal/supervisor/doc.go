// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

/*
Package supervisor provides process supervision for JellyRewind using suture v4.

The supervisor tree organizes long-running services into two layers:

	RootSupervisor ("jellyrewind")
	├── DataSupervisor ("data-layer")
	│   └── CheckpointService (periodic DuckDB WAL flush)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with exponential backoff; a failure in the
data layer does not take down the HTTP API.

Basic setup:

	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())
	if err != nil {
	    log.Fatal(err)
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	tree.AddDataService(services.NewCheckpointService(db, time.Hour))
	if err := tree.Serve(ctx); err != nil {
	    log.Printf("supervisor stopped: %v", err)
	}

All services implement suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Returning nil means the service stopped cleanly and will not be restarted.
Returning an error triggers a restart, subject to FailureThreshold and
FailureBackoff in TreeConfig.

DuckDB itself is not supervised. It is an embedded library whose connections
are owned by the database package; only its periodic maintenance runs as a
supervised service.
*/
package supervisor
