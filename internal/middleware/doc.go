// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

// Package middleware provides chi-compatible HTTP middleware: request ID
// propagation and Prometheus instrumentation. CORS, rate limiting, and
// compression come from the chi ecosystem and are wired in the api package.
package middleware
