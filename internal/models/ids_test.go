// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

package models

import "testing"

func TestNormalizeID(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"dashed uppercase", "4FEB1F1E-DEBB-483F-AA29-F9EC56F3289E", "4feb1f1edebb483faa29f9ec56f3289e"},
		{"already normalized", "4feb1f1edebb483faa29f9ec56f3289e", "4feb1f1edebb483faa29f9ec56f3289e"},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeID(tc.input); got != tc.want {
				t.Errorf("NormalizeID(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestToUUID(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"normalized", "4feb1f1edebb483faa29f9ec56f3289e", "4FEB1F1E-DEBB-483F-AA29-F9EC56F3289E"},
		{"already dashed", "4feb1f1e-debb-483f-aa29-f9ec56f3289e", "4FEB1F1E-DEBB-483F-AA29-F9EC56F3289E"},
		{"too short passes through", "abc", "ABC"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ToUUID(tc.input); got != tc.want {
				t.Errorf("ToUUID(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestIDsMatch(t *testing.T) {
	if !IDsMatch("4FEB1F1E-DEBB-483F-AA29-F9EC56F3289E", "4feb1f1edebb483faa29f9ec56f3289e") {
		t.Error("expected dashed and normalized forms of the same ID to match")
	}
	if IDsMatch("4feb1f1edebb483faa29f9ec56f3289e", "5feb1f1edebb483faa29f9ec56f3289e") {
		t.Error("expected different IDs not to match")
	}
}

func TestToUUIDRoundTrip(t *testing.T) {
	id := "4FEB1F1E-DEBB-483F-AA29-F9EC56F3289E"
	if got := ToUUID(NormalizeID(id)); got != id {
		t.Errorf("round trip = %q, want %q", got, id)
	}
}
