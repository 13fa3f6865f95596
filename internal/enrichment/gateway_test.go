package enrichment_test

import (
	"context"
	"errors"
	"testing"

	"cadenza/internal/enrichment"
	"cadenza/internal/library"
	"cadenza/internal/services/musicbrainz"
	"cadenza/internal/testsupport"
	"cadenza/internal/textnorm"
)

type fakeLookup struct {
	artists map[string]*musicbrainz.Artist
	err     error
	calls   int
}

func (f *fakeLookup) SearchArtist(_ context.Context, name string) (*musicbrainz.Artist, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	artist, ok := f.artists[name]
	if !ok {
		return nil, errors.New("no match")
	}
	return artist, nil
}

func seedArtist(t *testing.T, store *library.Store, name string, score float64) *library.ArtistRecord {
	t.Helper()
	record := &library.ArtistRecord{
		Name:             name,
		NormalizedName:   textnorm.Normalize(name),
		Genres:           []string{"classical", "baroque"},
		QualityScore:     score,
		EnrichmentSource: library.SourceMusicBrainz,
	}
	if _, err := store.UpsertArtist(context.Background(), record); err != nil {
		t.Fatalf("seed artist: %v", err)
	}
	stored, err := store.GetArtist(context.Background(), name)
	if err != nil {
		t.Fatalf("get seeded artist: %v", err)
	}
	return stored
}

func TestGatewayStoreHitSkipsLookup(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	seedArtist(t, store, "Rachel Podger", 0.9)
	lookup := &fakeLookup{}
	gateway := enrichment.NewGateway(store, lookup, 0.8, nil)

	record, err := gateway.GetOrFetchArtist(context.Background(), "Rachel Podger")
	if err != nil {
		t.Fatalf("GetOrFetchArtist: %v", err)
	}
	if record.QualityScore != 0.9 {
		t.Fatalf("score = %v, want 0.9", record.QualityScore)
	}
	if lookup.calls != 0 {
		t.Fatalf("lookup called %d times for high-quality cached artist", lookup.calls)
	}
	if stats := gateway.Stats(); stats.StoreHits != 1 {
		t.Fatalf("store hits = %d, want 1", stats.StoreHits)
	}
}

func TestGatewayMemoryHitOnRepeat(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	seedArtist(t, store, "Rachel Podger", 0.9)
	gateway := enrichment.NewGateway(store, &fakeLookup{}, 0.8, nil)

	for i := 0; i < 2; i++ {
		if _, err := gateway.GetOrFetchArtist(context.Background(), "Rachel Podger"); err != nil {
			t.Fatalf("GetOrFetchArtist: %v", err)
		}
	}
	stats := gateway.Stats()
	if stats.StoreHits != 1 || stats.MemoryHits != 1 {
		t.Fatalf("stats = %+v, want one store hit then one memory hit", stats)
	}
}

func TestGatewayKeepsHigherStoredScore(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	seedArtist(t, store, "Arvo Part", 0.9)
	lookup := &fakeLookup{artists: map[string]*musicbrainz.Artist{
		"Arvo Part": {Name: "Arvo Part", Genres: []string{"classical", "minimalism"}},
	}}
	// A threshold above the stored score forces the lookup to run.
	gateway := enrichment.NewGateway(store, lookup, 0.95, nil)

	record, err := gateway.GetOrFetchArtist(context.Background(), "Arvo Part")
	if err != nil {
		t.Fatalf("GetOrFetchArtist: %v", err)
	}
	if lookup.calls != 1 {
		t.Fatalf("lookup calls = %d, want 1", lookup.calls)
	}
	if record.QualityScore != 0.9 {
		t.Fatalf("score = %v, want stored 0.9 kept over weaker lookup", record.QualityScore)
	}

	stored, err := store.GetArtist(context.Background(), "Arvo Part")
	if err != nil {
		t.Fatalf("GetArtist: %v", err)
	}
	if stored.QualityScore != 0.9 {
		t.Fatalf("persisted score = %v, regressed by lookup", stored.QualityScore)
	}
}

func TestGatewayLookupFailureWritesPlaceholder(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	lookup := &fakeLookup{err: errors.New("service unavailable")}
	gateway := enrichment.NewGateway(store, lookup, 0.8, nil)

	record, err := gateway.GetOrFetchArtist(context.Background(), "Unknown Ensemble")
	if err != nil {
		t.Fatalf("GetOrFetchArtist: %v", err)
	}
	if record.QualityScore != 0 || record.EnrichmentSource != library.SourceNone {
		t.Fatalf("placeholder = %+v, want zero-score record with source none", record)
	}

	stored, err := store.GetArtist(context.Background(), "Unknown Ensemble")
	if err != nil {
		t.Fatalf("GetArtist: %v", err)
	}
	if stored == nil {
		t.Fatal("placeholder was not persisted")
	}

	// The same run must not repeat a failing query.
	if _, err := gateway.GetOrFetchArtist(context.Background(), "Unknown Ensemble"); err != nil {
		t.Fatalf("second GetOrFetchArtist: %v", err)
	}
	if lookup.calls != 1 {
		t.Fatalf("lookup calls = %d, want 1", lookup.calls)
	}
	if stats := gateway.Stats(); stats.LookupFailures != 1 {
		t.Fatalf("lookup failures = %d, want 1", stats.LookupFailures)
	}
}

func TestGatewayLinksSpellingVariants(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	canonical := seedArtist(t, store, "Dvořák", 0.3)
	lookup := &fakeLookup{artists: map[string]*musicbrainz.Artist{
		"Dvorak": {Name: "Dvorak", Genres: []string{"classical", "romantic"}, IsComposer: true},
	}}
	gateway := enrichment.NewGateway(store, lookup, 0.8, nil)

	record, err := gateway.GetOrFetchArtist(context.Background(), "Dvorak")
	if err != nil {
		t.Fatalf("GetOrFetchArtist: %v", err)
	}
	if record.CanonicalArtistID == nil {
		t.Fatal("spelling variant was not linked")
	}
	if *record.CanonicalArtistID != canonical.ID {
		t.Fatalf("canonical id = %d, want %d", *record.CanonicalArtistID, canonical.ID)
	}
}
