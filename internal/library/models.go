package library

import (
	"encoding/json"
	"time"
)

// Source identifies where a record's metadata came from.
type Source string

const (
	SourceNone        Source = "none"
	SourceLastFM      Source = "lastfm"
	SourceMusicBrainz Source = "musicbrainz"
	SourceClaude      Source = "claude"
)

// ArtistRecord is the canonical knowledge about one artist name.
type ArtistRecord struct {
	ID                int64
	Name              string
	NormalizedName    string
	MBID              string
	Genres            []string
	ComposerName      string
	IsComposer        bool
	QualityScore      float64
	EnrichmentSource  Source
	EnrichedByAI      bool
	CanonicalArtistID *int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TrackRecord is the knowledge about one (artist, track) pair. The
// classical-only fields are populated only when the track was judged to
// be in a classical context at enrichment time.
type TrackRecord struct {
	ID               int64
	ArtistName       string
	TrackName        string
	AlbumName        string
	Genres           []string
	ComposerName     string
	IsClassical      bool
	Period           string
	MusicalForm      string
	OpusCatalog      string
	WorkTitle        string
	Movement         string
	QualityScore     float64
	EnrichmentSource Source
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Scrobble is one recorded historical play. Rows are append-only and
// deduplicated by (user, artist, track, listened_at).
type Scrobble struct {
	ID         int64
	User       string
	ArtistName string
	TrackName  string
	AlbumName  string
	ListenedAt int64
	Loved      bool
	CreatedAt  time.Time
}

// EnrichedScrobble joins a scrobble with the track knowledge accumulated
// for it.
type EnrichedScrobble struct {
	Scrobble
	Genres           []string
	ComposerName     string
	IsClassical      bool
	QualityScore     float64
	EnrichmentSource Source
}

// Counts summarizes store contents for status reporting.
type Counts struct {
	Artists   int64 `json:"artists"`
	Tracks    int64 `json:"tracks"`
	Scrobbles int64 `json:"scrobbles"`
}

func encodeGenres(genres []string) (string, error) {
	if len(genres) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(genres)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeGenres(raw string) []string {
	if raw == "" {
		return nil
	}
	var genres []string
	if err := json.Unmarshal([]byte(raw), &genres); err != nil {
		return nil
	}
	return genres
}
