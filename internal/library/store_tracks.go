package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const trackColumns = `id, artist_name, track_name, album_name, genres, composer_name, is_classical,
    period, musical_form, opus_catalog, work_title, movement,
    quality_score, enrichment_source, created_at, updated_at`

// GetTrack returns the record for one (artist, track) pair, or nil when
// none exists.
func (s *Store) GetTrack(ctx context.Context, artist, track string) (*TrackRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+trackColumns+` FROM tracks WHERE artist_name = ? AND track_name = ?`,
		artist, track)
	record, err := scanTrack(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get track: %w", err)
	}
	return record, nil
}

// TracksMissingComposer returns every track without a composer. The scan
// is deliberately unconditional: tracks checked before and found
// non-classical are revisited every run.
func (s *Store) TracksMissingComposer(ctx context.Context) ([]*TrackRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+trackColumns+` FROM tracks WHERE composer_name = '' ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("find tracks missing composer: %w", err)
	}
	defer rows.Close()
	return collectTracks(rows)
}

// UpsertTrack writes the record keyed by (artist, track). An existing row
// is only replaced when the incoming quality score is equal or better.
// The return value reports whether a row was actually written.
func (s *Store) UpsertTrack(ctx context.Context, record *TrackRecord) (bool, error) {
	if record == nil {
		return false, errors.New("upsert track: nil record")
	}
	if record.ArtistName == "" || record.TrackName == "" {
		return false, errors.New("upsert track: artist and track names required")
	}
	genres, err := encodeGenres(record.Genres)
	if err != nil {
		return false, fmt.Errorf("upsert track: encode genres: %w", err)
	}
	now := timestamp(time.Now())

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tracks (
            artist_name, track_name, album_name, genres, composer_name, is_classical,
            period, musical_form, opus_catalog, work_title, movement,
            quality_score, enrichment_source, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(artist_name, track_name) DO UPDATE SET
            album_name = excluded.album_name,
            genres = excluded.genres,
            composer_name = excluded.composer_name,
            is_classical = excluded.is_classical,
            period = excluded.period,
            musical_form = excluded.musical_form,
            opus_catalog = excluded.opus_catalog,
            work_title = excluded.work_title,
            movement = excluded.movement,
            quality_score = excluded.quality_score,
            enrichment_source = excluded.enrichment_source,
            updated_at = excluded.updated_at
        WHERE excluded.quality_score >= tracks.quality_score`,
		record.ArtistName,
		record.TrackName,
		record.AlbumName,
		genres,
		record.ComposerName,
		boolToInt(record.IsClassical),
		record.Period,
		record.MusicalForm,
		record.OpusCatalog,
		record.WorkTitle,
		record.Movement,
		record.QualityScore,
		string(record.EnrichmentSource),
		now,
		now,
	)
	if err != nil {
		return false, fmt.Errorf("upsert track: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("upsert track: rows affected: %w", err)
	}
	return affected > 0, nil
}

func scanTrack(row rowScanner) (*TrackRecord, error) {
	var (
		record      TrackRecord
		genres      string
		source      string
		isClassical int
		createdAt   string
		updatedAt   string
	)
	err := row.Scan(
		&record.ID,
		&record.ArtistName,
		&record.TrackName,
		&record.AlbumName,
		&genres,
		&record.ComposerName,
		&isClassical,
		&record.Period,
		&record.MusicalForm,
		&record.OpusCatalog,
		&record.WorkTitle,
		&record.Movement,
		&record.QualityScore,
		&source,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	record.Genres = decodeGenres(genres)
	record.EnrichmentSource = Source(source)
	record.IsClassical = isClassical != 0
	record.CreatedAt = parseTimestamp(createdAt)
	record.UpdatedAt = parseTimestamp(updatedAt)
	return &record, nil
}

func collectTracks(rows *sql.Rows) ([]*TrackRecord, error) {
	var records []*TrackRecord
	for rows.Next() {
		record, err := scanTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("scan track: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tracks: %w", err)
	}
	return records, nil
}
