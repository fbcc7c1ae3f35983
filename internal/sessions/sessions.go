// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

// Package sessions reconstructs continuous viewing sessions from the noisy
// raw playback log.
//
// A single viewing typically produces several log rows: a zero-duration
// start marker, progress updates, and a completion row. Reconstruction
// merges consecutive rows for the same item when the next row starts within
// a bounded window around the previous row's computed end, so the rest of
// the pipeline can reason about viewings instead of log noise.
package sessions

import (
	"time"

	"github.com/jellyrewind/jellyrewind/internal/models"
)

// Config bounds the merge window.
type Config struct {
	// MaxGap is the largest forward gap between the last event's computed
	// end and the next event's start that still merges.
	MaxGap time.Duration

	// Overlap is the tolerated negative gap, absorbing overlapping or
	// duplicated rows.
	Overlap time.Duration
}

// DefaultConfig matches the tuned production thresholds.
func DefaultConfig() Config {
	return Config{
		MaxGap:  5 * time.Minute,
		Overlap: time.Minute,
	}
}

// Reconstruct merges raw events into sessions. Events must be ordered
// ascending by start time, as the store returns them; the scan is a single
// pass and deterministic.
//
// A session's TotalSeconds is the sum of its events' durations, never the
// wall-clock span: pauses and seeks within the window are not watched time.
// EndTime is the last constituent event's start plus its duration, which is
// also the reference point for the next event's gap; a short trailing event
// can therefore end a session earlier than an earlier long chunk did.
func Reconstruct(events []models.PlaybackEvent, cfg Config) []models.PlaybackSession {
	var result []models.PlaybackSession
	var cur *models.PlaybackSession

	for _, e := range events {
		if cur != nil && e.ItemID == cur.ItemID {
			gap := e.Time.Sub(cur.EndTime)
			if gap <= cfg.MaxGap && gap >= -cfg.Overlap {
				cur.TotalSeconds += e.DurationSec
				cur.EndTime = e.End()
				cur.EventCount++
				continue
			}
		}

		if cur != nil {
			result = append(result, *cur)
		}
		cur = &models.PlaybackSession{
			ItemID:       e.ItemID,
			ItemName:     e.ItemName,
			ItemType:     e.ItemType,
			StartTime:    e.Time,
			EndTime:      e.End(),
			TotalSeconds: e.DurationSec,
			EventCount:   1,
		}
	}

	if cur != nil {
		result = append(result, *cur)
	}
	return result
}

// AggregateByItem rolls sessions up per content item, preserving the order
// in which items first appear.
func AggregateByItem(sessions []models.PlaybackSession) []models.ItemStats {
	index := make(map[string]int)
	var items []models.ItemStats

	for _, s := range sessions {
		i, ok := index[s.ItemID]
		if !ok {
			i = len(items)
			index[s.ItemID] = i
			items = append(items, models.ItemStats{
				ItemID:   s.ItemID,
				ItemName: s.ItemName,
				ItemType: s.ItemType,
			})
		}
		items[i].SessionCount++
		items[i].TotalSeconds += s.TotalSeconds
		items[i].Sessions = append(items[i].Sessions, s)
	}
	return items
}
