// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

package database

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jellyrewind/jellyrewind/internal/models"
)

// seedMockData fills an empty store with generated playback activity for the
// current year. Development convenience; enabled with
// database.seed_mock_data.
func (db *DB) seedMockData(ctx context.Context) error {
	// Deterministic so restarts keep the same report numbers.
	rng := rand.New(rand.NewSource(42))
	year := time.Now().Year()

	users := []models.User{
		{ID: "00000001aaaa4bbbcccc000000000001", Username: "alice"},
		{ID: "00000002aaaa4bbbcccc000000000002", Username: "bob"},
		{ID: "00000003aaaa4bbbcccc000000000003", Username: "carol"},
	}
	if err := db.UpsertUsers(ctx, users); err != nil {
		return err
	}

	movies := []LibraryItem{
		{ItemID: "10000001aaaa4bbbcccc000000000001", Name: "The Long Haul", MediaType: "Movie", RuntimeTicks: 7200 * ticksPerSecond, Genres: []string{"Drama"}, TmdbID: "101"},
		{ItemID: "10000002aaaa4bbbcccc000000000002", Name: "Midnight Circuit", MediaType: "Movie", RuntimeTicks: 6600 * ticksPerSecond, Genres: []string{"Action", "Thriller"}, TmdbID: "102"},
		{ItemID: "10000003aaaa4bbbcccc000000000003", Name: "Paper Lanterns", MediaType: "Movie", RuntimeTicks: 5400 * ticksPerSecond, Genres: []string{"Romance"}, TmdbID: "103"},
	}
	var episodes []LibraryItem
	for ep := 1; ep <= 10; ep++ {
		episodes = append(episodes, LibraryItem{
			ItemID:       fmt.Sprintf("20000001aaaa4bbbcccc0000000000%02d", ep),
			Name:         fmt.Sprintf("Harbor Lights - S01E%02d", ep),
			MediaType:    "Episode",
			SeriesName:   "Harbor Lights",
			RuntimeTicks: 2700 * ticksPerSecond,
			Genres:       []string{"Drama", "Mystery"},
		})
	}
	if err := db.UpsertLibraryItems(ctx, append(movies, episodes...)); err != nil {
		return err
	}

	methods := []string{"DirectPlay", "DirectStream", "Transcode (v:direct a:transcode)", "Transcode"}
	clients := []string{"Jellyfin Web", "Jellyfin Android", "Jellyfin Media Player"}
	devices := []string{"Living Room TV", "Pixel 8", "Workstation"}

	var events []models.PlaybackEvent
	for _, u := range users {
		sessions := 80 + rng.Intn(120)
		for i := 0; i < sessions; i++ {
			var item LibraryItem
			if rng.Intn(3) == 0 {
				item = movies[rng.Intn(len(movies))]
			} else {
				item = episodes[rng.Intn(len(episodes))]
			}
			runtime := item.RuntimeTicks / ticksPerSecond
			watched := runtime * int64(50+rng.Intn(51)) / 100

			start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).
				Add(time.Duration(rng.Intn(365*24)) * time.Hour).
				Add(time.Duration(rng.Intn(60)) * time.Minute)

			// A viewing shows up as a zero-duration start marker plus one
			// or more progress chunks, like the real ingest produces.
			method := methods[rng.Intn(len(methods))]
			client := clients[rng.Intn(len(clients))]
			device := devices[rng.Intn(len(devices))]
			base := models.PlaybackEvent{
				UserID:         u.ID,
				ItemID:         models.NormalizeID(item.ItemID),
				ItemName:       item.Name,
				ItemType:       item.MediaType,
				PlaybackMethod: method,
				ClientName:     client,
				DeviceName:     device,
				Time:           start,
			}
			events = append(events, base)

			chunks := 1 + rng.Intn(3)
			chunkSec := watched / int64(chunks)
			cursor := start
			for c := 0; c < chunks; c++ {
				e := base
				e.Time = cursor
				e.DurationSec = chunkSec
				events = append(events, e)
				cursor = cursor.Add(time.Duration(chunkSec) * time.Second)
			}
		}
	}

	return db.InsertEvents(ctx, events)
}
