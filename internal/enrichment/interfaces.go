package enrichment

import (
	"context"

	"cadenza/internal/services/claude"
	"cadenza/internal/services/lastfm"
	"cadenza/internal/services/musicbrainz"
)

// HistorySource fetches a user's recent plays, newest first.
type HistorySource interface {
	RecentTracks(ctx context.Context, user string, limit, page int) ([]lastfm.Track, error)
}

// MetadataLookup is the free bibliographic tier.
type MetadataLookup interface {
	SearchArtist(ctx context.Context, name string) (*musicbrainz.Artist, error)
}

// Enricher is the paid tier. Every call consumes one unit of the run's
// AI budget.
type Enricher interface {
	EnrichArtist(ctx context.Context, name string, knownGenres []string) (*claude.ArtistEnrichment, error)
	CheckIsComposer(ctx context.Context, name string, genres []string) (*claude.ComposerCheck, error)
	EnrichClassicalTrack(ctx context.Context, artist, track, album string) (*claude.ClassicalTrackEnrichment, error)
}
