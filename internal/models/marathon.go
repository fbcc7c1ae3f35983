// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

package models

import "time"

// MarathonItem is a single session's contribution to a marathon.
type MarathonItem struct {
	ItemID          string    `json:"item_id"`
	ItemName        string    `json:"item_name"`
	ItemType        string    `json:"item_type"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
}

// Marathon is a contiguous run of sessions across possibly different items,
// with small allowed gaps between them.
//
// TotalMinutes is the wall-clock span from first session start to last
// session end, deliberately inclusive of idle gaps (bathroom breaks count
// toward the epic session length). It can therefore exceed the sum of
// watched time but never be shorter than it.
type Marathon struct {
	StartTime    time.Time      `json:"start_time"`
	EndTime      time.Time      `json:"end_time"`
	TotalMinutes int            `json:"total_minutes"`
	TotalHours   float64        `json:"total_hours"`
	Items        []MarathonItem `json:"items"`
	ItemCount    int            `json:"item_count"`
	Date         string         `json:"date"`
}

// MarathonSummary aggregates a user's reportable marathons for a year.
// Only marathons with at least two sessions count.
type MarathonSummary struct {
	TotalMarathons     int       `json:"total_marathons"`
	TotalMarathonHours float64   `json:"total_marathon_hours"`
	AverageMinutes     int       `json:"average_minutes"`
	Longest            *Marathon `json:"longest,omitempty"`
}
