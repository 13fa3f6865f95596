package claude

// ArtistEnrichmentPrompt captures the instructions sent when enriching an
// artist's metadata. Keep prompt updates centralized here so they are
// easy to tweak without hunting through call sites.
const ArtistEnrichmentPrompt = `You are a music librarian cataloging artists.

Given an artist name and optionally some known genres, return what you know about the artist.

Rules:

- "genres" lists up to five genre labels, most specific first.

- "is_composer" is true only for composers of notated works (historical or living), not performers, bands, or producers.

- "composer_full_name" gives the composer's conventional full name when is_composer is true, otherwise an empty string.

- "music_type" is one short label such as "classical", "jazz", "rock", "electronic", "folk".

- "description" is one sentence of neutral, factual context. Use an empty string if you are not certain the artist exists.

You must respond ONLY with a JSON object like:
{"genres": ["baroque", "classical"], "is_composer": true, "composer_full_name": "Johann Sebastian Bach", "music_type": "classical", "description": "German Baroque composer and organist."}`

// ComposerCheckPrompt captures the instructions for the binary
// composer-or-performer check used in classical contexts.
const ComposerCheckPrompt = `You decide whether a musical artist is a historical composer or a performer.

Rules:

- "is_historical_composer" is true only if the name primarily refers to a composer of notated works, for example Bach, Mozart, or Hildegard von Bingen.

- Performers, ensembles, orchestras, conductors, and modern bands are false, even when they play classical repertoire.

- When the name is ambiguous, prefer false.

You must respond ONLY with a JSON object like: {"is_historical_composer": true, "explanation": "short reason"}`

// ClassicalTrackPrompt captures the instructions for enriching one
// classical track with work-level metadata.
const ClassicalTrackPrompt = `You are a classical music catalog assistant.

Given an artist, a track title, and optionally an album, identify the underlying work.

Rules:

- "composer" is the composer's conventional full name, or an empty string if unknown.

- "period" is one of: medieval, renaissance, baroque, classical, romantic, modern, contemporary. Empty if unsure.

- "musical_form" names the form, such as "concerto", "symphony", "suite", "cantata", "sonata". Empty if unsure.

- "opus_catalog" is the catalog designation, such as "BWV 1007" or "Op. 27 No. 2". Empty if unsure.

- "work_title" is the full conventional work title.

- "movement" names the movement when the track is a single movement.

- "confidence" is your confidence from 0.0 to 1.0 that this identification is correct. Use a low value rather than guessing.

You must respond ONLY with a JSON object like:
{"composer": "Johann Sebastian Bach", "period": "baroque", "musical_form": "suite", "opus_catalog": "BWV 1007", "work_title": "Cello Suite No. 1 in G major", "movement": "Prelude", "confidence": 0.95}`
