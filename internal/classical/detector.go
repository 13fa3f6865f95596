// Package classical decides whether a work probably belongs to the Western
// classical or early-music tradition. The verdict gates which enrichment
// prompts and composer validations apply; it is a heuristic, not a
// taxonomy.
package classical

import "strings"

// genreVocabulary lists genre fragments that indicate a classical context.
// Matching is case-insensitive substring containment.
var genreVocabulary = []string{
	"baroque",
	"classical",
	"early music",
	"romantic",
	"opera",
	"chamber music",
	"orchestral",
	"renaissance",
	"medieval",
	"choral",
	"sacred",
	"cantata",
	"symphony",
	"concerto",
	"oratorio",
	"requiem",
	"harpsichord",
	"lute",
	"gregorian",
	"polyphony",
}

// catalogMarkers are catalog-number prefixes matched as whole words so
// that e.g. "rv" does not fire inside "nirvana".
var catalogMarkers = []string{"bwv", "k.", "kv", "op.", "rv", "hwv", "d.", "woo"}

// tempoMarkers are movement tempo indications common in classical track
// titles.
var tempoMarkers = []string{
	"allegro",
	"andante",
	"adagio",
	"presto",
	"largo",
	"vivace",
	"moderato",
	"grave",
	"lento",
}

// MatchesGenres reports whether any genre tag indicates a classical
// context.
func MatchesGenres(genres []string) bool {
	for _, genre := range genres {
		lower := strings.ToLower(genre)
		for _, vocab := range genreVocabulary {
			if strings.Contains(lower, vocab) {
				return true
			}
		}
	}
	return false
}

// MatchesTitle reports whether the track title or album text carries
// catalog-number or tempo-marking patterns typical of classical releases.
func MatchesTitle(title, album string) bool {
	return matchesText(title) || matchesText(album)
}

func matchesText(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return false
	}
	for _, marker := range catalogMarkers {
		if containsWord(lower, marker) {
			return true
		}
	}
	for _, marker := range tempoMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	// "No. 5 in C Minor" style work numbering.
	if strings.Contains(lower, "no.") && (strings.Contains(lower, "major") || strings.Contains(lower, "minor")) {
		return true
	}
	return false
}

// containsWord reports whether marker appears in text delimited by spaces
// or string boundaries.
func containsWord(text, marker string) bool {
	padded := " " + text + " "
	idx := strings.Index(padded, marker)
	for idx >= 0 {
		before := padded[idx-1]
		afterIdx := idx + len(marker)
		if before == ' ' && (afterIdx >= len(padded) || padded[afterIdx] == ' ' || isDigitByte(padded[afterIdx])) {
			return true
		}
		next := strings.Index(padded[idx+1:], marker)
		if next < 0 {
			return false
		}
		idx = idx + 1 + next
	}
	return false
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}
