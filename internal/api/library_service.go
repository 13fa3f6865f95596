package api

import (
	"context"

	"cadenza/internal/library"
)

// LibraryReader abstracts store interactions needed for API queries.
type LibraryReader interface {
	ArtistsNeedingEnrichment(ctx context.Context, threshold float64, limit int) ([]*library.ArtistRecord, error)
	EnrichedScrobbles(ctx context.Context, user string, limit, offset int) ([]*library.EnrichedScrobble, error)
	CountAll(ctx context.Context) (library.Counts, error)
	Path() string
}

// LibraryService exposes read-only library operations returning API DTOs.
type LibraryService struct {
	store     LibraryReader
	threshold float64
}

// NewLibraryService constructs a LibraryService around the provided
// reader. threshold bounds which artists count as pending enrichment.
func NewLibraryService(store LibraryReader, threshold float64) *LibraryService {
	if store == nil {
		return nil
	}
	return &LibraryService{store: store, threshold: threshold}
}

// PendingArtists returns the artists still below the quality threshold,
// worst first.
func (s *LibraryService) PendingArtists(ctx context.Context, limit int) ([]Artist, error) {
	if s == nil || s.store == nil {
		return nil, nil
	}
	records, err := s.store.ArtistsNeedingEnrichment(ctx, s.threshold, limit)
	if err != nil {
		return nil, err
	}
	return FromArtistRecords(records), nil
}

// Scrobbles returns a user's enriched plays, newest first.
func (s *LibraryService) Scrobbles(ctx context.Context, user string, limit, offset int) ([]Scrobble, error) {
	if s == nil || s.store == nil {
		return nil, nil
	}
	rows, err := s.store.EnrichedScrobbles(ctx, user, limit, offset)
	if err != nil {
		return nil, err
	}
	return FromEnrichedScrobbles(rows), nil
}

// Status summarizes the library contents.
func (s *LibraryService) Status(ctx context.Context) (*LibraryStatus, error) {
	if s == nil || s.store == nil {
		return nil, nil
	}
	counts, err := s.store.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	return &LibraryStatus{
		DatabasePath: s.store.Path(),
		Artists:      counts.Artists,
		Tracks:       counts.Tracks,
		Scrobbles:    counts.Scrobbles,
	}, nil
}
