package api_test

import (
	"context"
	"testing"

	"cadenza/internal/api"
	"cadenza/internal/library"
)

type libraryStub struct {
	artists   []*library.ArtistRecord
	scrobbles []*library.EnrichedScrobble
	counts    library.Counts
}

func (s *libraryStub) ArtistsNeedingEnrichment(context.Context, float64, int) ([]*library.ArtistRecord, error) {
	return s.artists, nil
}

func (s *libraryStub) EnrichedScrobbles(context.Context, string, int, int) ([]*library.EnrichedScrobble, error) {
	return s.scrobbles, nil
}

func (s *libraryStub) CountAll(context.Context) (library.Counts, error) {
	return s.counts, nil
}

func (s *libraryStub) Path() string {
	return "/tmp/library.db"
}

func TestLibraryServicePendingArtists(t *testing.T) {
	stub := &libraryStub{artists: []*library.ArtistRecord{{
		ID:               3,
		Name:             "Unknown Quartet",
		QualityScore:     0.2,
		EnrichmentSource: library.SourceMusicBrainz,
	}}}
	svc := api.NewLibraryService(stub, 0.8)

	artists, err := svc.PendingArtists(context.Background(), 10)
	if err != nil {
		t.Fatalf("PendingArtists: %v", err)
	}
	if len(artists) != 1 {
		t.Fatalf("expected 1 artist, got %d", len(artists))
	}
	if artists[0].Name != "Unknown Quartet" || artists[0].QualityScore != 0.2 {
		t.Fatalf("unexpected artist DTO: %+v", artists[0])
	}
}

func TestLibraryServiceScrobbles(t *testing.T) {
	stub := &libraryStub{scrobbles: []*library.EnrichedScrobble{{
		Scrobble: library.Scrobble{
			ArtistName: "Radiohead",
			TrackName:  "Nude",
			ListenedAt: 1700000000,
		},
		Genres:      []string{"rock"},
		IsClassical: false,
	}}}
	svc := api.NewLibraryService(stub, 0.8)

	scrobbles, err := svc.Scrobbles(context.Background(), "listener", 10, 0)
	if err != nil {
		t.Fatalf("Scrobbles: %v", err)
	}
	if len(scrobbles) != 1 {
		t.Fatalf("expected 1 scrobble, got %d", len(scrobbles))
	}
	if scrobbles[0].Track != "Nude" || scrobbles[0].ListenedAt == "" {
		t.Fatalf("unexpected scrobble DTO: %+v", scrobbles[0])
	}
}

func TestLibraryServiceStatus(t *testing.T) {
	stub := &libraryStub{counts: library.Counts{Artists: 2, Tracks: 5, Scrobbles: 9}}
	svc := api.NewLibraryService(stub, 0.8)

	status, err := svc.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Scrobbles != 9 || status.DatabasePath == "" {
		t.Fatalf("unexpected status: %+v", status)
	}
}
