// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

// Package models provides the data structures shared across JellyRewind:
// raw playback events, reconstructed sessions, marathons, per-user annual
// statistics, cross-user comparisons, and the API response envelope.
package models
