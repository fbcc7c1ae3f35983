// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

package models

import "time"

// Media types as recorded in the playback log.
const (
	MediaTypeMovie   = "Movie"
	MediaTypeEpisode = "Episode"
	MediaTypeAudio   = "Audio"
)

// PlaybackEvent is one raw row of the playback activity log. The log is
// noisy: a single viewing produces a start event (often zero duration),
// progress updates, and a completion event. Events are immutable and ordered
// ascending by Time within a user/year query.
type PlaybackEvent struct {
	UserID         string    `json:"user_id"`
	ItemID         string    `json:"item_id"`
	ItemName       string    `json:"item_name"`
	ItemType       string    `json:"item_type"`
	PlaybackMethod string    `json:"playback_method"`
	ClientName     string    `json:"client_name"`
	DeviceName     string    `json:"device_name"`
	Time           time.Time `json:"time"`
	DurationSec    int64     `json:"duration_seconds"`
}

// End returns the event's computed end: start plus reported play duration.
func (e PlaybackEvent) End() time.Time {
	return e.Time.Add(time.Duration(e.DurationSec) * time.Second)
}

// PlaybackSession is a reconstructed continuous viewing of one item, merged
// from one or more raw events.
//
// Invariants:
//   - all constituent events share ItemID
//   - StartTime is the first event's start
//   - EndTime is the last event's start plus its duration
//   - TotalSeconds is the sum of constituent event durations, NOT the span
//     EndTime-StartTime (paused or seeked time is not watched time)
type PlaybackSession struct {
	ItemID       string    `json:"item_id"`
	ItemName     string    `json:"item_name"`
	ItemType     string    `json:"item_type"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	TotalSeconds int64     `json:"total_seconds"`
	EventCount   int       `json:"event_count"`
}

// ItemStats aggregates all of a user's sessions for one content item within
// a year.
type ItemStats struct {
	ItemID       string            `json:"item_id"`
	ItemName     string            `json:"item_name"`
	ItemType     string            `json:"item_type"`
	SessionCount int               `json:"session_count"`
	TotalSeconds int64             `json:"total_seconds"`
	Sessions     []PlaybackSession `json:"sessions,omitempty"`
}

// TotalMinutes returns the aggregated watch time rounded to whole minutes.
func (s *ItemStats) TotalMinutes() int {
	return int((s.TotalSeconds + 30) / 60)
}

// User identifies a media server account.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
