// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

/*
Package api provides the HTTP surface of JellyRewind, built on chi.

Routes:

	GET /api/v1/health                                      - liveness and database check
	GET /api/v1/users                                       - known accounts
	GET /api/v1/users/{userID}/years                        - years with playback data
	GET /api/v1/rewind/{year}/users/{userID}                - full year-in-review report
	GET /api/v1/rewind/{year}/users/{userID}/comparison     - cross-user comparison only
	GET /api/v1/rewind/{year}/users/{userID}/marathons      - marathon list only
	GET /api/v1/rewind/{year}/server                        - server-wide roll-up
	GET /metrics                                            - Prometheus metrics

All /api/v1 responses use the models.APIResponse envelope. User endpoints
accept either a user ID or a username. Report endpoints take optional ?tz=
(IANA zone) and ?limit= query parameters; limit is clamped to the configured
maximum.

The middleware stack is request ID, real IP, panic recovery, gzip
compression, CORS (go-chi/cors), rate limiting (go-chi/httprate), and
Prometheus instrumentation.
*/
package api
