// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

package stats

import (
	"testing"
	"time"

	"github.com/jellyrewind/jellyrewind/internal/models"
)

func sessionAt(start time.Time, seconds int64) models.PlaybackSession {
	return models.PlaybackSession{
		ItemID:       "e1",
		ItemType:     models.MediaTypeEpisode,
		StartTime:    start,
		EndTime:      start.Add(time.Duration(seconds) * time.Second),
		TotalSeconds: seconds,
	}
}

func TestHourlyZeroFilled(t *testing.T) {
	got := Hourly(nil, time.UTC)
	if len(got) != 24 {
		t.Fatalf("got %d buckets, want 24", len(got))
	}
	for h, b := range got {
		if b.Hour != h || b.Plays != 0 || b.Minutes != 0 {
			t.Errorf("bucket %d = %+v, want zero-filled", h, b)
		}
	}
}

func TestHourlyTimezone(t *testing.T) {
	riga, err := time.LoadLocation("Europe/Riga")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	// 21:30 UTC on a summer date is 00:30 in Riga (UTC+3).
	sessions := []models.PlaybackSession{
		sessionAt(time.Date(2025, 7, 1, 21, 30, 0, 0, time.UTC), 1800),
	}

	utcBuckets := Hourly(sessions, time.UTC)
	if utcBuckets[21].Plays != 1 {
		t.Errorf("UTC bucket 21 plays = %d, want 1", utcBuckets[21].Plays)
	}

	rigaBuckets := Hourly(sessions, riga)
	if rigaBuckets[0].Plays != 1 {
		t.Errorf("Riga bucket 0 plays = %d, want 1", rigaBuckets[0].Plays)
	}
	if rigaBuckets[0].Minutes != 30 {
		t.Errorf("Riga bucket 0 minutes = %d, want 30", rigaBuckets[0].Minutes)
	}
}

func TestDayOfWeek(t *testing.T) {
	// 2025-06-01 is a Sunday.
	sessions := []models.PlaybackSession{
		sessionAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), 3600),
		sessionAt(time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC), 1800),
	}

	got := DayOfWeek(sessions, time.UTC)
	if len(got) != 7 {
		t.Fatalf("got %d buckets, want 7", len(got))
	}
	if got[0].DayName != "Sunday" || got[0].Plays != 1 || got[0].Minutes != 60 {
		t.Errorf("Sunday = %+v, want 1 play / 60 minutes", got[0])
	}
	if got[1].DayName != "Monday" || got[1].Plays != 1 {
		t.Errorf("Monday = %+v, want 1 play", got[1])
	}
}

func TestMonthly(t *testing.T) {
	sessions := []models.PlaybackSession{
		sessionAt(time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC), 5400),
		sessionAt(time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC), 3600),
	}

	got := Monthly(sessions, time.UTC)
	if len(got) != 12 {
		t.Fatalf("got %d buckets, want 12", len(got))
	}
	march := got[2]
	if march.MonthName != "March" || march.Plays != 2 {
		t.Errorf("March = %+v, want 2 plays", march)
	}
	if march.Hours != 2.5 {
		t.Errorf("March hours = %v, want 2.5", march.Hours)
	}
	if got[0].Plays != 0 {
		t.Errorf("January plays = %d, want 0", got[0].Plays)
	}
}

func TestDevicesAndClients(t *testing.T) {
	events := []models.PlaybackEvent{
		{DeviceName: "TV", ClientName: "Web"},
		{DeviceName: "TV", ClientName: "Web"},
		{DeviceName: "TV", ClientName: "Android"},
		{DeviceName: "Phone", ClientName: "Android"},
	}

	devices := Devices(events)
	if len(devices) != 2 {
		t.Fatalf("got %d devices, want 2", len(devices))
	}
	if devices[0].DeviceName != "TV" || devices[0].Plays != 3 || devices[0].Percentage != 75.0 {
		t.Errorf("top device = %+v, want TV 3 plays 75%%", devices[0])
	}

	clients := Clients(events)
	if clients[0].Plays != 2 || clients[1].Plays != 2 {
		t.Errorf("client plays = %d/%d, want 2/2", clients[0].Plays, clients[1].Plays)
	}
	// Equal counts order alphabetically.
	if clients[0].ClientName != "Android" {
		t.Errorf("first client = %q, want Android", clients[0].ClientName)
	}
}

func TestDevicesUnknownBucket(t *testing.T) {
	// Rows without a device name still count; they surface as "Unknown" so
	// the percentages cover every play.
	events := []models.PlaybackEvent{
		{DeviceName: "TV", ClientName: "Web"},
		{DeviceName: "", ClientName: ""},
		{DeviceName: "", ClientName: "Web"},
		{DeviceName: "TV", ClientName: "Web"},
	}

	devices := Devices(events)
	if len(devices) != 2 {
		t.Fatalf("got %d devices, want 2", len(devices))
	}
	var sum float64
	for _, d := range devices {
		sum += d.Percentage
	}
	if sum != 100.0 {
		t.Errorf("percentages sum = %v, want 100", sum)
	}
	if devices[0].DeviceName != "TV" || devices[0].Plays != 2 {
		t.Errorf("top device = %+v, want TV with 2", devices[0])
	}
	if devices[1].DeviceName != "Unknown" || devices[1].Plays != 2 {
		t.Errorf("second device = %+v, want Unknown with 2", devices[1])
	}

	clients := Clients(events)
	if len(clients) != 2 {
		t.Fatalf("got %d clients, want 2", len(clients))
	}
	if clients[1].ClientName != "Unknown" || clients[1].Plays != 1 {
		t.Errorf("second client = %+v, want Unknown with 1", clients[1])
	}
}

func TestClassifyMethod(t *testing.T) {
	testCases := []struct {
		method string
		want   Method
	}{
		{"DirectPlay", MethodDirect},
		{"DirectStream", MethodRemux},
		{"Transcode (v:direct a:transcode)", MethodRemux},
		{"Transcode", MethodTranscode},
		{"Transcode (v:h264 a:aac)", MethodTranscode},
		{"", MethodUnknown},
	}
	for _, tc := range testCases {
		if got := ClassifyMethod(tc.method); got != tc.want {
			t.Errorf("ClassifyMethod(%q) = %v, want %v", tc.method, got, tc.want)
		}
	}
}

func TestPlaybackMethods(t *testing.T) {
	events := []models.PlaybackEvent{
		{PlaybackMethod: "DirectPlay"},
		{PlaybackMethod: "DirectPlay"},
		{PlaybackMethod: "Transcode (v:direct a:transcode)"},
		{PlaybackMethod: "Transcode"},
	}

	got := PlaybackMethods(events)
	if got.Direct != 2 || got.Remux != 1 || got.Transcode != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/1/1", got.Direct, got.Remux, got.Transcode)
	}
	if got.DirectPercentage != 50.0 || got.RemuxPercentage != 25.0 || got.TranscodePercentage != 25.0 {
		t.Errorf("percentages = %v/%v/%v, want 50/25/25",
			got.DirectPercentage, got.RemuxPercentage, got.TranscodePercentage)
	}
}
