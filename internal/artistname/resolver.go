// Package artistname decomposes composite artist credits into candidate
// principal-artist names. Last.fm credits frequently pack an ensemble, a
// soloist, and an instrument annotation into one string; the resolver
// recovers the individual names so each can be looked up on its own.
package artistname

import (
	"sort"
	"strings"
)

// separators is the fixed, ordered set of credit separators. Order matters:
// Principal splits on the first separator that appears in the input.
var separators = []string{
	" / ",
	", ",
	" & ",
	" ; ",
	" and ",
	" feat.",
	" feat ",
	" ft.",
	" ft ",
}

// Principal returns the most likely principal artist from a composite
// credit: the segment before the first matching separator, with any
// parenthetical role annotation removed. If no separator matches, the
// trimmed input is returned whole.
func Principal(composite string) string {
	cleaned := stripAnnotations(composite)
	for _, sep := range separators {
		if idx := indexSeparator(cleaned, sep); idx >= 0 {
			return strings.TrimSpace(cleaned[:idx])
		}
	}
	return strings.TrimSpace(cleaned)
}

// SplitCandidates returns every segment of the composite credit longer
// than two characters, shortest first. Short segments are statistically
// more likely to be a solo artist name than a long ensemble name, so
// callers trying candidates in order start with the best bet.
func SplitCandidates(composite string) []string {
	cleaned := stripAnnotations(composite)
	segments := []string{cleaned}
	for _, sep := range separators {
		var next []string
		for _, segment := range segments {
			next = append(next, splitOnSeparator(segment, sep)...)
		}
		segments = next
	}

	var candidates []string
	for _, segment := range segments {
		trimmed := strings.TrimSpace(segment)
		if len(trimmed) > 2 {
			candidates = append(candidates, trimmed)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i]) < len(candidates[j])
	})
	return candidates
}

func splitOnSeparator(segment, sep string) []string {
	var parts []string
	for {
		idx := indexSeparator(segment, sep)
		if idx < 0 {
			parts = append(parts, segment)
			return parts
		}
		parts = append(parts, segment[:idx])
		segment = segment[idx+len(sep):]
	}
}

// indexSeparator finds the first case-insensitive occurrence of an ASCII
// separator. Offsets are computed against the original string: case-folding
// a copy is not length-preserving for every rune, so indexes found in a
// folded copy can land mid-rune in the original.
func indexSeparator(s, sep string) int {
	for i := 0; i+len(sep) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(sep)], sep) {
			return i
		}
	}
	return -1
}

// stripAnnotations removes parenthetical instrument or role annotations
// such as "(violin)" or "(conductor)".
func stripAnnotations(name string) string {
	var builder strings.Builder
	depth := 0
	for _, r := range name {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
				continue
			}
			builder.WriteRune(r)
		default:
			if depth == 0 {
				builder.WriteRune(r)
			}
		}
	}
	return strings.TrimSpace(builder.String())
}
