package api

import (
	"time"

	"cadenza/internal/library"
)

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Artist describes one artist record in a transport-friendly format.
type Artist struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	MBID             string   `json:"mbid,omitempty"`
	Genres           []string `json:"genres"`
	ComposerName     string   `json:"composerName,omitempty"`
	IsComposer       bool     `json:"isComposer"`
	QualityScore     float64  `json:"qualityScore"`
	EnrichmentSource string   `json:"enrichmentSource"`
	EnrichedByAI     bool     `json:"enrichedByAi"`
	CanonicalID      *int64   `json:"canonicalArtistId,omitempty"`
	UpdatedAt        string   `json:"updatedAt,omitempty"`
}

// Scrobble describes one play joined with its track knowledge.
type Scrobble struct {
	Artist           string   `json:"artist"`
	Track            string   `json:"track"`
	Album            string   `json:"album,omitempty"`
	ListenedAt       string   `json:"listenedAt"`
	Loved            bool     `json:"loved"`
	Genres           []string `json:"genres"`
	ComposerName     string   `json:"composerName,omitempty"`
	IsClassical      bool     `json:"isClassical"`
	QualityScore     float64  `json:"qualityScore"`
	EnrichmentSource string   `json:"enrichmentSource"`
}

// LibraryStatus aggregates store contents for API consumers.
type LibraryStatus struct {
	DatabasePath string `json:"databasePath"`
	Artists      int64  `json:"artists"`
	Tracks       int64  `json:"tracks"`
	Scrobbles    int64  `json:"scrobbles"`
}

// ArtistListResponse wraps a collection of artists.
type ArtistListResponse struct {
	Artists []Artist `json:"artists"`
}

// ScrobbleListResponse wraps a collection of enriched scrobbles.
type ScrobbleListResponse struct {
	Scrobbles []Scrobble `json:"scrobbles"`
}

// StatusResponse wraps the library status payload.
type StatusResponse struct {
	Status LibraryStatus `json:"status"`
}

// FromArtistRecord converts a persisted artist into its DTO.
func FromArtistRecord(record *library.ArtistRecord) Artist {
	if record == nil {
		return Artist{}
	}
	updated := ""
	if !record.UpdatedAt.IsZero() {
		updated = record.UpdatedAt.UTC().Format(dateTimeFormat)
	}
	return Artist{
		ID:               record.ID,
		Name:             record.Name,
		MBID:             record.MBID,
		Genres:           record.Genres,
		ComposerName:     record.ComposerName,
		IsComposer:       record.IsComposer,
		QualityScore:     record.QualityScore,
		EnrichmentSource: string(record.EnrichmentSource),
		EnrichedByAI:     record.EnrichedByAI,
		CanonicalID:      record.CanonicalArtistID,
		UpdatedAt:        updated,
	}
}

// FromArtistRecords converts a slice of persisted artists.
func FromArtistRecords(records []*library.ArtistRecord) []Artist {
	if len(records) == 0 {
		return nil
	}
	out := make([]Artist, 0, len(records))
	for _, record := range records {
		out = append(out, FromArtistRecord(record))
	}
	return out
}

// FromEnrichedScrobble converts a joined scrobble row into its DTO.
func FromEnrichedScrobble(row *library.EnrichedScrobble) Scrobble {
	if row == nil {
		return Scrobble{}
	}
	listened := ""
	if row.ListenedAt > 0 {
		listened = time.Unix(row.ListenedAt, 0).UTC().Format(dateTimeFormat)
	}
	return Scrobble{
		Artist:           row.ArtistName,
		Track:            row.TrackName,
		Album:            row.AlbumName,
		ListenedAt:       listened,
		Loved:            row.Loved,
		Genres:           row.Genres,
		ComposerName:     row.ComposerName,
		IsClassical:      row.IsClassical,
		QualityScore:     row.QualityScore,
		EnrichmentSource: string(row.EnrichmentSource),
	}
}

// FromEnrichedScrobbles converts a slice of joined scrobble rows.
func FromEnrichedScrobbles(rows []*library.EnrichedScrobble) []Scrobble {
	if len(rows) == 0 {
		return nil
	}
	out := make([]Scrobble, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromEnrichedScrobble(row))
	}
	return out
}
