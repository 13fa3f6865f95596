package enrichment

import (
	"context"
	"log/slog"

	"cadenza/internal/library"
	"cadenza/internal/logging"
	"cadenza/internal/scoring"
	"cadenza/internal/textnorm"
)

// CacheStats counts how each tier of the lookup path resolved artists
// during one run.
type CacheStats struct {
	MemoryHits     int `json:"memory_hits"`
	StoreHits      int `json:"store_hits"`
	Lookups        int `json:"lookups"`
	LookupFailures int `json:"lookup_failures"`
}

// Gateway is the tiered artist lookup path for one enrichment run:
// in-process cache, then persistent store, then the free external
// lookup. Each tier is consulted only when the previous one did not
// yield a satisfactory score. A Gateway is run-scoped and not safe for
// concurrent use; independent runs own independent gateways over the
// shared store.
type Gateway struct {
	store     *library.Store
	lookup    MetadataLookup
	threshold float64
	logger    *slog.Logger

	memory map[string]*library.ArtistRecord
	stats  CacheStats
}

// NewGateway builds a fresh run-scoped gateway. lookup may be nil, in
// which case only cached data is served.
func NewGateway(store *library.Store, lookup MetadataLookup, threshold float64, logger *slog.Logger) *Gateway {
	if threshold <= 0 {
		threshold = scoring.DefaultThreshold
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Gateway{
		store:     store,
		lookup:    lookup,
		threshold: threshold,
		logger:    logger,
		memory:    make(map[string]*library.ArtistRecord),
	}
}

// Stats returns the tier counters accumulated so far.
func (g *Gateway) Stats() CacheStats {
	return g.stats
}

// GetOrFetchArtist resolves an artist through the tiers. A cached record
// at or above the threshold short-circuits; a lookup failure degrades to
// the cached record or to a persisted zero-score placeholder, so the
// same run never repeats a guaranteed-failing query. Lookups are never
// allowed to regress a cached record's quality score.
func (g *Gateway) GetOrFetchArtist(ctx context.Context, name string) (*library.ArtistRecord, error) {
	if cached, ok := g.memory[name]; ok {
		g.stats.MemoryHits++
		return cached, nil
	}

	stored, err := g.store.GetArtist(ctx, name)
	if err != nil {
		return nil, err
	}
	if stored != nil && stored.QualityScore >= g.threshold {
		g.stats.StoreHits++
		g.memory[name] = stored
		return stored, nil
	}

	if g.lookup == nil {
		if stored != nil {
			g.memory[name] = stored
			return stored, nil
		}
		return g.placeholder(ctx, name)
	}

	g.stats.Lookups++
	found, lookupErr := g.lookup.SearchArtist(ctx, name)
	if lookupErr != nil {
		g.stats.LookupFailures++
		g.logger.Debug("artist lookup failed",
			logging.String("artist", name),
			logging.Error(lookupErr))
		if stored != nil {
			g.memory[name] = stored
			return stored, nil
		}
		return g.placeholder(ctx, name)
	}

	record := &library.ArtistRecord{
		Name:             name,
		NormalizedName:   textnorm.Normalize(name),
		MBID:             found.MBID,
		Genres:           found.Genres,
		IsComposer:       found.IsComposer,
		QualityScore:     scoring.Artist(len(found.Genres), len(found.Tags), found.IsComposer, found.Disambiguation != ""),
		EnrichmentSource: library.SourceMusicBrainz,
	}

	if stored != nil && stored.QualityScore > record.QualityScore {
		g.memory[name] = stored
		return stored, nil
	}

	if err := g.linkCanonical(ctx, record); err != nil {
		return nil, err
	}
	if _, err := g.store.UpsertArtist(ctx, record); err != nil {
		return nil, err
	}
	g.memory[name] = record
	return record, nil
}

// placeholder persists a zero-score record so the artist stays eligible
// for AI catch-up enrichment without being re-looked-up this run.
func (g *Gateway) placeholder(ctx context.Context, name string) (*library.ArtistRecord, error) {
	record := &library.ArtistRecord{
		Name:             name,
		NormalizedName:   textnorm.Normalize(name),
		EnrichmentSource: library.SourceNone,
	}
	if err := g.linkCanonical(ctx, record); err != nil {
		return nil, err
	}
	if _, err := g.store.UpsertArtist(ctx, record); err != nil {
		return nil, err
	}
	g.memory[name] = record
	return record, nil
}

// linkCanonical points a new spelling variant at the oldest record
// sharing its normalized name. Records are linked, never merged.
func (g *Gateway) linkCanonical(ctx context.Context, record *library.ArtistRecord) error {
	if record.NormalizedName == "" {
		return nil
	}
	matches, err := g.store.FindArtistsByNormalizedName(ctx, record.NormalizedName)
	if err != nil {
		return err
	}
	for _, match := range matches {
		if match.Name == record.Name || match.CanonicalArtistID != nil {
			continue
		}
		record.CanonicalArtistID = &match.ID
		return nil
	}
	return nil
}
