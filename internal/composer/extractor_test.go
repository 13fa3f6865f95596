package composer_test

import (
	"testing"

	"cadenza/internal/composer"
)

func TestFromTitle(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"colon convention", "Antonio Vivaldi: Violin Concerto No. 2", "Antonio Vivaldi"},
		{"surname expanded", "Bach: Cello Suite No. 1", "Johann Sebastian Bach"},
		{"dash convention", "Arvo Pärt - Spiegel im Spiegel", "Arvo Pärt"},
		{"form keyword rejected", "Symphony No. 5: Allegro con brio", ""},
		{"movement prefix rejected", "Cello Suite No. 1: Prelude", ""},
		{"leading digit rejected", "12 Variations: Theme", ""},
		{"too short", "XY: Work", ""},
		{"single word unknown rejected", "Morricone: The Mission", ""},
		{"no separator", "Yellow Submarine", ""},
		{"initials accepted", "J.S. Bach: Air on the G String", "Johann Sebastian Bach"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := composer.FromTitle(tc.title); got != tc.want {
				t.Fatalf("FromTitle(%q) = %q, want %q", tc.title, got, tc.want)
			}
		})
	}
}

func TestFromAlbum(t *testing.T) {
	if got := composer.FromAlbum("Handel: Water Music"); got != "George Frideric Handel" {
		t.Fatalf("FromAlbum = %q, want George Frideric Handel", got)
	}
	if got := composer.FromAlbum("Greatest Hits"); got != "" {
		t.Fatalf("FromAlbum = %q, want empty", got)
	}
}

func TestFromArtist(t *testing.T) {
	cases := []struct {
		artist string
		want   string
	}{
		{"J.S. Bach", "Johann Sebastian Bach"},
		{"Mozart", "Wolfgang Amadeus Mozart"},
		{"Antonín Dvořák", "Antonín Dvořák"},
		{"Rachel Podger", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := composer.FromArtist(tc.artist); got != tc.want {
			t.Fatalf("FromArtist(%q) = %q, want %q", tc.artist, got, tc.want)
		}
	}
}
