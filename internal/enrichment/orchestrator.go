package enrichment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"cadenza/internal/artistname"
	"cadenza/internal/classical"
	"cadenza/internal/composer"
	"cadenza/internal/library"
	"cadenza/internal/logging"
	"cadenza/internal/scoring"
	"cadenza/internal/services/claude"
	"cadenza/internal/services/lastfm"
)

// minClassicalConfidence is the floor below which a classical-track AI
// result is discarded outright.
const minClassicalConfidence = 0.5

// Options configures an Orchestrator.
type Options struct {
	// QualityThreshold gates external lookups; see Gateway.
	QualityThreshold float64
	// PageSize is the history fetch page size.
	PageSize int
}

// Orchestrator drives one enrichment run: fetch plays, enrich each track
// from cache and the free tier, then spend the AI budget on the
// lowest-quality artists and on composer-less classical tracks.
type Orchestrator struct {
	store    *library.Store
	history  HistorySource
	lookup   MetadataLookup
	enricher Enricher
	logger   *slog.Logger
	opts     Options
}

// SyncResult summarizes one run.
type SyncResult struct {
	RunID              string     `json:"run_id"`
	TracksProcessed    int        `json:"tracks_processed"`
	ScrobblesRecorded  int        `json:"scrobbles_recorded"`
	ArtistsEnrichedAI  int        `json:"artists_enriched_ai"`
	ClassicalEnriched  int        `json:"classical_tracks_enriched"`
	AICallsUsed        int        `json:"ai_calls_used"`
	AIBudgetExhausted  bool       `json:"ai_budget_exhausted"`
	EnrichmentFailures int        `json:"enrichment_failures"`
	Cache              CacheStats `json:"cache"`
}

// NewOrchestrator assembles the enrichment workflow. enricher may be nil
// to run without the paid tier; lookup may be nil to run offline.
func NewOrchestrator(store *library.Store, history HistorySource, lookup MetadataLookup, enricher Enricher, logger *slog.Logger, opts Options) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	if opts.QualityThreshold <= 0 {
		opts.QualityThreshold = scoring.DefaultThreshold
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 50
	}
	return &Orchestrator{
		store:    store,
		history:  history,
		lookup:   lookup,
		enricher: enricher,
		logger:   logger,
		opts:     opts,
	}
}

// SyncUser runs one full enrichment pass for a user. aiCallLimit seeds
// the fresh per-run budget; 0 disables paid enrichment. A history fetch
// failure before any work aborts the run; per-artist lookup failures
// only degrade that artist.
func (o *Orchestrator) SyncUser(ctx context.Context, user string, trackLimit, aiCallLimit int) (*SyncResult, error) {
	result := &SyncResult{RunID: uuid.NewString()}
	budget := NewBudget(aiCallLimit)
	gateway := NewGateway(o.store, o.lookup, o.opts.QualityThreshold, o.logger)
	logger := o.logger.With(logging.String("run_id", result.RunID), logging.String("user", user))

	events, err := o.fetchHistory(ctx, user, trackLimit)
	if err != nil {
		return nil, err
	}
	logger.Info("sync started",
		logging.Int("events", len(events)),
		logging.Int("ai_call_limit", aiCallLimit))

	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := o.enrichEvent(ctx, user, event, gateway, result); err != nil {
			return nil, err
		}
		result.TracksProcessed++
	}

	if err := o.enrichArtistsByAI(ctx, budget, result, logger); err != nil {
		return nil, err
	}
	if err := o.enrichClassicalTracks(ctx, budget, result, logger); err != nil {
		return nil, err
	}

	result.AICallsUsed = budget.Used()
	result.AIBudgetExhausted = aiCallLimit > 0 && budget.Exhausted()
	result.Cache = gateway.Stats()
	logger.Info("sync finished",
		logging.Int("tracks_processed", result.TracksProcessed),
		logging.Int("artists_enriched_ai", result.ArtistsEnrichedAI),
		logging.Int("classical_tracks_enriched", result.ClassicalEnriched),
		logging.Int("ai_calls_used", result.AICallsUsed))
	return result, nil
}

// EnrichedScrobbles returns a user's persisted plays joined with track
// knowledge, newest first.
func (o *Orchestrator) EnrichedScrobbles(ctx context.Context, user string, limit, offset int) ([]*library.EnrichedScrobble, error) {
	return o.store.EnrichedScrobbles(ctx, user, limit, offset)
}

func (o *Orchestrator) fetchHistory(ctx context.Context, user string, trackLimit int) ([]lastfm.Track, error) {
	if trackLimit <= 0 {
		trackLimit = o.opts.PageSize
	}
	var events []lastfm.Track
	for page := 1; len(events) < trackLimit; page++ {
		size := o.opts.PageSize
		if remaining := trackLimit - len(events); remaining < size {
			size = remaining
		}
		batch, err := o.history.RecentTracks(ctx, user, size, page)
		if err != nil {
			return nil, fmt.Errorf("fetch history: %w", err)
		}
		events = append(events, batch...)
		if len(batch) < size {
			break
		}
	}
	if len(events) > trackLimit {
		events = events[:trackLimit]
	}
	return events, nil
}

// enrichEvent handles one play: resolve the artist through the gateway,
// extract a composer from the title or album, detect classical context,
// then persist the scrobble and the track record.
func (o *Orchestrator) enrichEvent(ctx context.Context, user string, event lastfm.Track, gateway *Gateway, result *SyncResult) error {
	principal := artistname.Principal(event.Artist)
	if principal == "" {
		return nil
	}

	artist, err := gateway.GetOrFetchArtist(ctx, principal)
	if err != nil {
		return err
	}

	// Composer extraction works from text alone, so it applies even when
	// the artist lookup yielded nothing.
	composerName := composer.FromTitle(event.Name)
	if composerName == "" {
		composerName = composer.FromAlbum(event.Album)
	}
	isClassical := classical.MatchesGenres(artist.Genres) || classical.MatchesTitle(event.Name, event.Album)
	if composerName == "" && isClassical {
		composerName = composer.FromArtist(principal)
	}
	if composerName != "" && !composer.ValidName(composerName, event.Album) {
		composerName = ""
	}

	trackScore := artist.QualityScore
	if composerName != "" {
		trackScore = scoring.ComposerBonus(trackScore)
	}

	if !event.NowPlaying {
		inserted, err := o.store.InsertScrobble(ctx, &library.Scrobble{
			User:       user,
			ArtistName: event.Artist,
			TrackName:  event.Name,
			AlbumName:  event.Album,
			ListenedAt: event.ListenedAt,
			Loved:      event.Loved,
		})
		if err != nil {
			return err
		}
		if inserted {
			result.ScrobblesRecorded++
		}
	}

	_, err = o.store.UpsertTrack(ctx, &library.TrackRecord{
		ArtistName:       event.Artist,
		TrackName:        event.Name,
		AlbumName:        event.Album,
		Genres:           artist.Genres,
		ComposerName:     composerName,
		IsClassical:      isClassical,
		QualityScore:     trackScore,
		EnrichmentSource: artist.EnrichmentSource,
	})
	return err
}

// enrichArtistsByAI spends budget on the lowest-quality artists. Failed
// calls are never retried within the run; budget exhaustion ends the
// loop early and is reported, not an error.
func (o *Orchestrator) enrichArtistsByAI(ctx context.Context, budget *Budget, result *SyncResult, logger *slog.Logger) error {
	if o.enricher == nil || budget.Remaining() == 0 {
		return nil
	}

	candidates, err := o.store.ArtistsNeedingEnrichment(ctx, o.opts.QualityThreshold, budget.Remaining())
	if err != nil {
		return err
	}

	for _, artist := range candidates {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !budget.TryConsume() {
			break
		}

		enriched, err := o.enricher.EnrichArtist(ctx, artist.Name, artist.Genres)
		if err != nil {
			result.EnrichmentFailures++
			logger.Warn("artist ai enrichment failed",
				logging.String("artist", artist.Name),
				logging.Error(err))
			continue
		}

		merged := mergeArtistEnrichment(artist, enriched)

		// In classical contexts a second, narrower question corrects the
		// primary call's composer verdict in both directions.
		if classical.MatchesGenres(merged.Genres) && budget.TryConsume() {
			check, err := o.enricher.CheckIsComposer(ctx, artist.Name, merged.Genres)
			if err != nil {
				result.EnrichmentFailures++
				logger.Warn("composer check failed",
					logging.String("artist", artist.Name),
					logging.Error(err))
			} else {
				merged.IsComposer = check.IsHistoricalComposer
				if !merged.IsComposer {
					merged.ComposerName = ""
				}
			}
		}

		merged.QualityScore = scoring.AIEnrichedArtist(
			len(merged.Genres),
			enriched.MusicType != "",
			merged.IsComposer,
			enriched.Description != "",
		)
		// The store refuses score regressions, so the record may survive
		// unchanged; only actual writes count as enrichments.
		written, err := o.store.UpsertArtist(ctx, merged)
		if err != nil {
			return err
		}
		if written {
			result.ArtistsEnrichedAI++
		}
	}
	return nil
}

func mergeArtistEnrichment(artist *library.ArtistRecord, enriched *claude.ArtistEnrichment) *library.ArtistRecord {
	merged := *artist
	if len(enriched.Genres) > 0 {
		merged.Genres = enriched.Genres
	}
	merged.IsComposer = enriched.IsComposer
	composerName := enriched.ComposerFullName
	if composerName != "" && !composer.ValidName(composerName, "") {
		composerName = ""
	}
	merged.ComposerName = composerName
	merged.EnrichmentSource = library.SourceClaude
	merged.EnrichedByAI = true
	return &merged
}

// enrichClassicalTracks scans every composer-less track and spends
// remaining budget on those that look classical. Results below the
// confidence floor are discarded.
func (o *Orchestrator) enrichClassicalTracks(ctx context.Context, budget *Budget, result *SyncResult, logger *slog.Logger) error {
	if o.enricher == nil || budget.Remaining() == 0 {
		return nil
	}

	tracks, err := o.store.TracksMissingComposer(ctx)
	if err != nil {
		return err
	}

	for _, track := range tracks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !track.IsClassical &&
			!classical.MatchesGenres(track.Genres) &&
			!classical.MatchesTitle(track.TrackName, track.AlbumName) {
			continue
		}
		if !budget.TryConsume() {
			break
		}

		enriched, err := o.enricher.EnrichClassicalTrack(ctx, track.ArtistName, track.TrackName, track.AlbumName)
		if err != nil {
			result.EnrichmentFailures++
			logger.Warn("classical track enrichment failed",
				logging.String("artist", track.ArtistName),
				logging.String("track", track.TrackName),
				logging.Error(err))
			continue
		}
		if enriched.Confidence < minClassicalConfidence {
			logger.Debug("classical track result discarded",
				logging.String("track", track.TrackName),
				logging.Float64("confidence", enriched.Confidence))
			continue
		}

		composerName := enriched.Composer
		if composerName != "" && !composer.ValidName(composerName, track.AlbumName) {
			composerName = ""
		}

		updated := *track
		updated.ComposerName = composerName
		updated.IsClassical = true
		updated.Period = enriched.Period
		updated.MusicalForm = enriched.MusicalForm
		updated.OpusCatalog = enriched.OpusCatalog
		updated.WorkTitle = enriched.WorkTitle
		updated.Movement = enriched.Movement
		updated.QualityScore = scoring.ClassicalTrack(
			composerName != "",
			enriched.Period != "",
			enriched.MusicalForm != "",
			enriched.OpusCatalog != "",
			enriched.WorkTitle != "",
			enriched.Movement != "",
			enriched.Confidence,
		)
		updated.EnrichmentSource = library.SourceClaude
		written, err := o.store.UpsertTrack(ctx, &updated)
		if err != nil {
			return err
		}
		if written {
			result.ClassicalEnriched++
		}
	}
	return nil
}
