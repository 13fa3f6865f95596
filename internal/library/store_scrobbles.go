package library

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// InsertScrobble appends one play event. Duplicate events, keyed by
// (user, artist, track, listened_at), are ignored; the return value
// reports whether a row was actually written.
func (s *Store) InsertScrobble(ctx context.Context, scrobble *Scrobble) (bool, error) {
	if scrobble == nil {
		return false, errors.New("insert scrobble: nil scrobble")
	}
	if scrobble.User == "" || scrobble.ArtistName == "" || scrobble.TrackName == "" {
		return false, errors.New("insert scrobble: user, artist, and track required")
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO scrobbles (
            user, artist_name, track_name, album_name, listened_at, loved, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		scrobble.User,
		scrobble.ArtistName,
		scrobble.TrackName,
		scrobble.AlbumName,
		scrobble.ListenedAt,
		boolToInt(scrobble.Loved),
		timestamp(time.Now()),
	)
	if err != nil {
		return false, fmt.Errorf("insert scrobble: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert scrobble: rows affected: %w", err)
	}
	return affected > 0, nil
}

// EnrichedScrobbles returns a user's plays newest first, joined with the
// track knowledge accumulated for each.
func (s *Store) EnrichedScrobbles(ctx context.Context, user string, limit, offset int) ([]*EnrichedScrobble, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.user, s.artist_name, s.track_name, s.album_name,
                s.listened_at, s.loved, s.created_at,
                COALESCE(t.genres, '[]'),
                COALESCE(t.composer_name, ''),
                COALESCE(t.is_classical, 0),
                COALESCE(t.quality_score, 0),
                COALESCE(t.enrichment_source, 'none')
         FROM scrobbles s
         LEFT JOIN tracks t
             ON t.artist_name = s.artist_name AND t.track_name = s.track_name
         WHERE s.user = ?
         ORDER BY s.listened_at DESC, s.id DESC
         LIMIT ? OFFSET ?`,
		user, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("enriched scrobbles: %w", err)
	}
	defer rows.Close()

	var results []*EnrichedScrobble
	for rows.Next() {
		var (
			row         EnrichedScrobble
			loved       int
			isClassical int
			genres      string
			source      string
			createdAt   string
		)
		err := rows.Scan(
			&row.ID,
			&row.User,
			&row.ArtistName,
			&row.TrackName,
			&row.AlbumName,
			&row.ListenedAt,
			&loved,
			&createdAt,
			&genres,
			&row.ComposerName,
			&isClassical,
			&row.QualityScore,
			&source,
		)
		if err != nil {
			return nil, fmt.Errorf("scan enriched scrobble: %w", err)
		}
		row.Loved = loved != 0
		row.IsClassical = isClassical != 0
		row.Genres = decodeGenres(genres)
		row.EnrichmentSource = Source(source)
		row.CreatedAt = parseTimestamp(createdAt)
		results = append(results, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate enriched scrobbles: %w", err)
	}
	return results, nil
}
