package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const artistColumns = `id, name, normalized_name, mbid, genres, composer_name, is_composer,
    quality_score, enrichment_source, enriched_by_ai, canonical_artist_id, created_at, updated_at`

// GetArtist returns the record for an exact artist name, or nil when none
// exists.
func (s *Store) GetArtist(ctx context.Context, name string) (*ArtistRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+artistColumns+` FROM artists WHERE name = ?`, name)
	record, err := scanArtist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get artist: %w", err)
	}
	return record, nil
}

// FindArtistsByNormalizedName returns every record whose normalized name
// matches, used for duplicate-candidate lookups.
func (s *Store) FindArtistsByNormalizedName(ctx context.Context, normalized string) ([]*ArtistRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+artistColumns+` FROM artists WHERE normalized_name = ? ORDER BY id`, normalized)
	if err != nil {
		return nil, fmt.Errorf("find artists by normalized name: %w", err)
	}
	defer rows.Close()
	return collectArtists(rows)
}

// ArtistsNeedingEnrichment returns artists below the quality threshold
// that have not already been enriched by AI, worst scores first.
func (s *Store) ArtistsNeedingEnrichment(ctx context.Context, threshold float64, limit int) ([]*ArtistRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+artistColumns+` FROM artists
         WHERE quality_score < ? AND enriched_by_ai = 0
         ORDER BY quality_score ASC, id ASC LIMIT ?`, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("find artists needing enrichment: %w", err)
	}
	defer rows.Close()
	return collectArtists(rows)
}

// UpsertArtist writes the record keyed by artist name. An existing row is
// only replaced when the incoming quality score is equal or better;
// lookups are never allowed to regress quality. The return value reports
// whether a row was actually written.
func (s *Store) UpsertArtist(ctx context.Context, record *ArtistRecord) (bool, error) {
	if record == nil {
		return false, errors.New("upsert artist: nil record")
	}
	if record.Name == "" {
		return false, errors.New("upsert artist: name required")
	}
	genres, err := encodeGenres(record.Genres)
	if err != nil {
		return false, fmt.Errorf("upsert artist: encode genres: %w", err)
	}
	now := timestamp(time.Now())

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO artists (
            name, normalized_name, mbid, genres, composer_name, is_composer,
            quality_score, enrichment_source, enriched_by_ai, canonical_artist_id,
            created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(name) DO UPDATE SET
            normalized_name = excluded.normalized_name,
            mbid = excluded.mbid,
            genres = excluded.genres,
            composer_name = excluded.composer_name,
            is_composer = excluded.is_composer,
            quality_score = excluded.quality_score,
            enrichment_source = excluded.enrichment_source,
            enriched_by_ai = excluded.enriched_by_ai,
            canonical_artist_id = excluded.canonical_artist_id,
            updated_at = excluded.updated_at
        WHERE excluded.quality_score >= artists.quality_score`,
		record.Name,
		record.NormalizedName,
		record.MBID,
		genres,
		record.ComposerName,
		boolToInt(record.IsComposer),
		record.QualityScore,
		string(record.EnrichmentSource),
		boolToInt(record.EnrichedByAI),
		record.CanonicalArtistID,
		now,
		now,
	)
	if err != nil {
		return false, fmt.Errorf("upsert artist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("upsert artist: rows affected: %w", err)
	}
	return affected > 0, nil
}

// LinkCanonicalArtist records that the named artist is a spelling variant
// of the canonical record.
func (s *Store) LinkCanonicalArtist(ctx context.Context, name string, canonicalID int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE artists SET canonical_artist_id = ?, updated_at = ? WHERE name = ? AND id != ?`,
		canonicalID, timestamp(time.Now()), name, canonicalID)
	if err != nil {
		return fmt.Errorf("link canonical artist: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("link canonical artist: no row updated for %q", name)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArtist(row rowScanner) (*ArtistRecord, error) {
	var (
		record      ArtistRecord
		genres      string
		source      string
		isComposer  int
		enrichedAI  int
		canonicalID sql.NullInt64
		createdAt   string
		updatedAt   string
	)
	err := row.Scan(
		&record.ID,
		&record.Name,
		&record.NormalizedName,
		&record.MBID,
		&genres,
		&record.ComposerName,
		&isComposer,
		&record.QualityScore,
		&source,
		&enrichedAI,
		&canonicalID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	record.Genres = decodeGenres(genres)
	record.EnrichmentSource = Source(source)
	record.IsComposer = isComposer != 0
	record.EnrichedByAI = enrichedAI != 0
	if canonicalID.Valid {
		record.CanonicalArtistID = &canonicalID.Int64
	}
	record.CreatedAt = parseTimestamp(createdAt)
	record.UpdatedAt = parseTimestamp(updatedAt)
	return &record, nil
}

func collectArtists(rows *sql.Rows) ([]*ArtistRecord, error) {
	var records []*ArtistRecord
	for rows.Next() {
		record, err := scanArtist(rows)
		if err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artists: %w", err)
	}
	return records, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
