package claude

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ArtistEnrichment is the payload returned for a primary artist
// enrichment request.
type ArtistEnrichment struct {
	Genres           []string `json:"genres"`
	IsComposer       bool     `json:"is_composer"`
	ComposerFullName string   `json:"composer_full_name"`
	MusicType        string   `json:"music_type"`
	Description      string   `json:"description"`
}

// ComposerCheck is the payload returned for the binary
// composer-or-performer check.
type ComposerCheck struct {
	IsHistoricalComposer bool   `json:"is_historical_composer"`
	Explanation          string `json:"explanation"`
}

// ClassicalTrackEnrichment is the payload returned for a classical track
// enrichment request.
type ClassicalTrackEnrichment struct {
	Composer    string  `json:"composer"`
	Period      string  `json:"period"`
	MusicalForm string  `json:"musical_form"`
	OpusCatalog string  `json:"opus_catalog"`
	WorkTitle   string  `json:"work_title"`
	Movement    string  `json:"movement"`
	Confidence  float64 `json:"confidence"`
}

// EnrichArtist asks the model for genre, composer, and descriptive
// metadata about an artist.
func (c *Client) EnrichArtist(ctx context.Context, name string, knownGenres []string) (*ArtistEnrichment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("claude enrich artist: name required")
	}

	prompt := "Artist: " + name
	if len(knownGenres) > 0 {
		prompt += "\nKnown genres: " + strings.Join(knownGenres, ", ")
	}
	content, err := c.CompleteJSON(ctx, ArtistEnrichmentPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var parsed ArtistEnrichment
	if err := DecodeModelJSON(content, &parsed); err != nil {
		return nil, fmt.Errorf("claude enrich artist: parse payload: %w", err)
	}
	parsed.ComposerFullName = strings.TrimSpace(parsed.ComposerFullName)
	parsed.MusicType = strings.TrimSpace(parsed.MusicType)
	parsed.Description = strings.TrimSpace(parsed.Description)
	return &parsed, nil
}

// CheckIsComposer asks the model the narrow question of whether the
// artist is a historical composer rather than a performer, used to
// correct the primary enrichment in classical contexts.
func (c *Client) CheckIsComposer(ctx context.Context, name string, genres []string) (*ComposerCheck, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("claude composer check: name required")
	}

	prompt := "Artist: " + name
	if len(genres) > 0 {
		prompt += "\nGenres: " + strings.Join(genres, ", ")
	}
	content, err := c.CompleteJSON(ctx, ComposerCheckPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var parsed ComposerCheck
	if err := DecodeModelJSON(content, &parsed); err != nil {
		return nil, fmt.Errorf("claude composer check: parse payload: %w", err)
	}
	return &parsed, nil
}

// EnrichClassicalTrack asks the model for the composer, period, form,
// and catalog details of one classical track.
func (c *Client) EnrichClassicalTrack(ctx context.Context, artist, track, album string) (*ClassicalTrackEnrichment, error) {
	artist = strings.TrimSpace(artist)
	track = strings.TrimSpace(track)
	if artist == "" || track == "" {
		return nil, errors.New("claude classical track: artist and track required")
	}

	prompt := "Artist: " + artist + "\nTrack: " + track
	if album = strings.TrimSpace(album); album != "" {
		prompt += "\nAlbum: " + album
	}
	content, err := c.CompleteJSON(ctx, ClassicalTrackPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var parsed ClassicalTrackEnrichment
	if err := DecodeModelJSON(content, &parsed); err != nil {
		return nil, fmt.Errorf("claude classical track: parse payload: %w", err)
	}
	if parsed.Confidence < 0 {
		parsed.Confidence = 0
	}
	if parsed.Confidence > 1 {
		parsed.Confidence = 1
	}
	return &parsed, nil
}
