// Package textnorm canonicalizes free-text names for comparison and
// deduplication. Normalized forms are comparison keys only and must never
// be shown to users.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiReplacer handles letters that do not decompose to a base letter
// plus combining marks under NFD.
var asciiReplacer = strings.NewReplacer(
	"ø", "o",
	"æ", "ae",
	"œ", "oe",
	"ß", "ss",
	"ð", "d",
	"đ", "d",
	"þ", "th",
	"ł", "l",
)

// Normalize lowercases the input, folds diacritics to their base ASCII
// letter, strips punctuation (letters, digits, and whitespace survive),
// collapses runs of whitespace, and trims. It is total: any input yields
// a deterministic result, and the function is idempotent.
func Normalize(input string) string {
	lowered := strings.ToLower(strings.TrimSpace(input))
	if lowered == "" {
		return ""
	}
	lowered = asciiReplacer.Replace(lowered)

	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, lowered)
	if err != nil {
		folded = lowered
	}

	var builder strings.Builder
	builder.Grow(len(folded))
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			builder.WriteRune(r)
		case unicode.IsSpace(r):
			builder.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(builder.String()), " ")
}

// Equal reports whether two names normalize to the same key.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
