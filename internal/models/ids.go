// JellyRewind - Media Server Year-in-Review Analytics
// Copyright 2026 JellyRewind contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jellyrewind/jellyrewind

package models

import "strings"

// Media server databases disagree on identifier formats: the playback log
// stores lowercase IDs without dashes ("4feb1f1edebb483faa29f9ec56f3289e")
// while the library store uses dashed uppercase UUIDs
// ("4FEB1F1E-DEBB-483F-AA29-F9EC56F3289E"). All internal keys use the
// normalized form; ToUUID restores the dashed form for library joins.

// NormalizeID converts an identifier to lowercase without dashes.
func NormalizeID(id string) string {
	return strings.ToLower(strings.ReplaceAll(id, "-", ""))
}

// ToUUID converts a normalized identifier back to dashed uppercase UUID form.
// Input that is not 32 hex characters is returned unchanged apart from
// normalization, so malformed IDs still round-trip deterministically.
func ToUUID(id string) string {
	n := NormalizeID(id)
	if len(n) != 32 {
		return strings.ToUpper(n)
	}
	return strings.ToUpper(n[0:8] + "-" + n[8:12] + "-" + n[12:16] + "-" + n[16:20] + "-" + n[20:32])
}

// IDsMatch reports whether two identifiers refer to the same entity,
// regardless of format.
func IDsMatch(a, b string) bool {
	return NormalizeID(a) == NormalizeID(b)
}
