// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

/*
Package services provides suture.Service wrappers for JellyRewind components.

Each wrapper translates a component's lifecycle into suture's context-aware
Serve pattern:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Available services:

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts the blocking ListenAndServe pattern to Serve
  - Configurable shutdown timeout for draining connections

Checkpoint (CheckpointService):
  - Periodically flushes the DuckDB write-ahead log
  - Keeps the main database file current between restarts

Return values determine supervisor behavior: nil means clean stop with no
restart, an error means crash and restart, and ctx.Err() means shutdown was
requested. All wrappers implement fmt.Stringer so suture can name them in
log messages.
*/
package services
