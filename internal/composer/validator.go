// Package composer validates and extracts composer names from the noisy
// free text that music services return. Track titles, album names, and AI
// responses all routinely hand back an album title or a placeholder where
// a composer belongs; this package is the filter between those sources
// and persisted records.
package composer

import (
	"strings"

	"cadenza/internal/textnorm"
)

// placeholders are values that name nothing.
var placeholders = map[string]bool{
	"":        true,
	"unknown": true,
	"n/a":     true,
	"na":      true,
	"none":    true,
	"various": true,
}

// albumKeywords mark values that are actually album or compilation
// titles, not personal names. The list is intentionally non-exhaustive.
var albumKeywords = []string{
	"best of",
	"complete",
	"collection",
	"greatest hits",
	"live at",
	"live in",
	"anthology",
	"edition",
	"remastered",
	"deluxe",
	"anniversary",
	"volume",
	"compilation",
	"box set",
	"essential",
	"soundtrack",
}

// ValidName reports whether value is plausibly a composer name rather
// than a placeholder or a leaked album title. albumName may be empty when
// no album context exists.
func ValidName(value, albumName string) bool {
	trimmed := strings.TrimSpace(value)
	if placeholders[strings.ToLower(trimmed)] {
		return false
	}

	lower := strings.ToLower(trimmed)
	for _, keyword := range albumKeywords {
		if strings.Contains(lower, keyword) {
			return false
		}
	}

	if albumName == "" {
		return true
	}
	normalizedValue := textnorm.Normalize(trimmed)
	normalizedAlbum := textnorm.Normalize(albumName)
	if normalizedValue == "" || normalizedAlbum == "" {
		return normalizedValue != ""
	}
	if normalizedValue == normalizedAlbum {
		return false
	}
	// A composer whose name is buried inside the album title is almost
	// always the album title leaking through, except for trivially short
	// fragments.
	if len(normalizedValue) > 3 && strings.Contains(normalizedAlbum, normalizedValue) {
		return false
	}
	return true
}
