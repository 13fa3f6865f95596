package scoring_test

import (
	"testing"

	"cadenza/internal/scoring"
)

func TestArtist(t *testing.T) {
	cases := []struct {
		name               string
		genres, tags       int
		composer, disambig bool
		want               float64
	}{
		{"nothing", 0, 0, false, false, 0.0},
		{"one genre", 1, 0, false, false, 0.2},
		{"two genres", 2, 0, false, false, 0.4},
		{"one tag", 0, 1, false, false, 0.1},
		{"three tags", 0, 3, false, false, 0.2},
		{"composer", 0, 0, true, false, 0.2},
		{"disambiguation", 0, 0, false, true, 0.2},
		{"everything clamps", 5, 9, true, true, 1.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := scoring.Artist(tc.genres, tc.tags, tc.composer, tc.disambig)
			if !almostEqual(got, tc.want) {
				t.Fatalf("Artist = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAIEnrichedArtist(t *testing.T) {
	cases := []struct {
		name                           string
		genres                         int
		musicType, composer, described bool
		want                           float64
	}{
		{"paid bonus only", 0, false, false, false, 0.1},
		{"full response", 2, true, true, true, 1.0},
		{"one genre with type", 1, true, false, false, 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := scoring.AIEnrichedArtist(tc.genres, tc.musicType, tc.composer, tc.described)
			if !almostEqual(got, tc.want) {
				t.Fatalf("AIEnrichedArtist = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestClassicalTrack(t *testing.T) {
	full := scoring.ClassicalTrack(true, true, true, true, true, true, 0.95)
	if !almostEqual(full, 1.0) {
		t.Fatalf("full classical score = %v, want 1.0", full)
	}
	composerOnly := scoring.ClassicalTrack(true, false, false, false, false, false, 0.5)
	if !almostEqual(composerOnly, 0.30) {
		t.Fatalf("composer-only score = %v, want 0.30", composerOnly)
	}
	confident := scoring.ClassicalTrack(false, false, false, false, false, false, 0.8)
	if !almostEqual(confident, 0.05) {
		t.Fatalf("confidence-only score = %v, want 0.05", confident)
	}
}

func TestComposerBonus(t *testing.T) {
	if got := scoring.ComposerBonus(0.5); !almostEqual(got, 0.7) {
		t.Fatalf("ComposerBonus(0.5) = %v", got)
	}
	if got := scoring.ComposerBonus(0.95); !almostEqual(got, 1.0) {
		t.Fatalf("ComposerBonus(0.95) = %v, want clamp to 1.0", got)
	}
}

func TestScoresStayInRange(t *testing.T) {
	for genres := 0; genres <= 4; genres++ {
		for tags := 0; tags <= 4; tags++ {
			got := scoring.Artist(genres, tags, true, true)
			if got < 0 || got > 1 {
				t.Fatalf("Artist(%d, %d) = %v out of range", genres, tags, got)
			}
		}
	}
}

func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}
