package composer

import (
	"strings"
	"unicode"

	"cadenza/internal/textnorm"
)

const (
	minCandidateLen = 3
	maxCandidateLen = 50
)

// formKeywords disqualify a title segment from being a composer name:
// musical forms, structural markers, and tempo indications.
var formKeywords = []string{
	"symphony",
	"concerto",
	"sonata",
	"quartet",
	"trio",
	"suite",
	"opus",
	"op.",
	"no.",
	"movement",
	"act",
	"scene",
	"variation",
	"allegro",
	"andante",
	"adagio",
	"presto",
	"largo",
	"moderato",
}

// FromTitle pulls a composer name out of a track title using the
// "Name: Work" and "Name - Work" conventions, in that order. It returns
// the expanded full name, or "" when the title yields nothing usable.
func FromTitle(title string) string {
	if candidate := candidateBefore(title, ":"); acceptable(candidate) {
		return expandName(candidate)
	}
	if candidate := candidateBefore(title, " - "); acceptable(candidate) {
		return expandName(candidate)
	}
	return ""
}

// FromAlbum applies the title extraction logic to an album name, used as
// a fallback when the track title yields nothing.
func FromAlbum(album string) string {
	return FromTitle(album)
}

// FromArtist maps an artist credit to a composer full name when the
// credit itself is a historical composer, e.g. "J.S. Bach" or "Mozart".
// Only the expansion table is consulted, so performers never match.
func FromArtist(artist string) string {
	normalized := textnorm.Normalize(artist)
	if normalized == "" {
		return ""
	}
	if full, ok := fullNames[normalized]; ok {
		return full
	}
	fields := strings.Fields(normalized)
	if len(fields) < 2 {
		return ""
	}
	if full, ok := fullNames[fields[len(fields)-1]]; ok {
		return full
	}
	return ""
}

func candidateBefore(title, sep string) string {
	idx := strings.Index(title, sep)
	if idx < 0 {
		return ""
	}
	candidate := strings.TrimSpace(title[:idx])
	if len(candidate) < minCandidateLen || len(candidate) > maxCandidateLen {
		return ""
	}
	return candidate
}

// acceptable applies the name-shape heuristics: no leading digit, no
// musical-form vocabulary, and either a known surname or something that
// looks like a personal name (contains a space or a period).
func acceptable(candidate string) bool {
	if candidate == "" {
		return false
	}
	runes := []rune(candidate)
	if unicode.IsDigit(runes[0]) {
		return false
	}
	lower := strings.ToLower(candidate)
	for _, keyword := range formKeywords {
		if strings.Contains(lower, keyword) {
			return false
		}
	}
	if knownSurname(candidate) {
		return true
	}
	return strings.ContainsAny(candidate, " .")
}
