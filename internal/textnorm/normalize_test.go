package textnorm_test

import (
	"testing"

	"cadenza/internal/textnorm"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Johann Sebastian BACH", "johann sebastian bach"},
		{"diacritics", "Antonín Dvořák", "antonin dvorak"},
		{"saint saens", "Camille Saint-Saëns", "camille saintsaens"},
		{"punctuation stripped", "J.S. Bach", "js bach"},
		{"whitespace collapsed", "  The   Beatles  ", "the beatles"},
		{"nordic letters", "Sigur Rós & Björk", "sigur ros bjork"},
		{"oe ligature", "Œuvres complètes", "oeuvres completes"},
		{"digits kept", "Symphony No. 40", "symphony no 40"},
		{"empty", "", ""},
		{"only punctuation", "...!!!", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := textnorm.Normalize(tc.input)
			if got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Antonín Dvořák",
		"Holland Baroque Society / Rachel Podger (violin)",
		"MOTÖRHEAD",
		"plain text",
	}
	for _, input := range inputs {
		once := textnorm.Normalize(input)
		twice := textnorm.Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestEqual(t *testing.T) {
	if !textnorm.Equal("Dvořák", "dvorak") {
		t.Fatal("expected Dvořák and dvorak to compare equal")
	}
	if textnorm.Equal("Bach", "Handel") {
		t.Fatal("expected Bach and Handel to differ")
	}
}
