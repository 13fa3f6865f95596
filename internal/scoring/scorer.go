// Package scoring converts heterogeneous enrichment evidence into a single
// quality score in [0, 1]. Scores gate which external tier the cache
// gateway consults next, so the weights here are the economic policy of
// the whole engine: a score at or above the configured threshold means
// "good enough, stop spending".
package scoring

// DefaultThreshold is the quality score at or above which a record is
// considered complete and no further lookups are attempted.
const DefaultThreshold = 0.8

// Artist scores metadata obtained from the free bibliographic lookup.
func Artist(genreCount, tagCount int, isComposer, hasDisambiguation bool) float64 {
	score := 0.0
	switch {
	case genreCount >= 2:
		score += 0.4
	case genreCount >= 1:
		score += 0.2
	}
	switch {
	case tagCount >= 3:
		score += 0.2
	case tagCount >= 1:
		score += 0.1
	}
	if isComposer {
		score += 0.2
	}
	if hasDisambiguation {
		score += 0.2
	}
	return clamp(score)
}

// AIEnrichedArtist scores metadata obtained from a successful paid
// enrichment call. The flat 0.1 closing term credits the paid source
// itself: an AI answer with the same field coverage outranks a free one,
// so the record is not re-bought on the next run.
func AIEnrichedArtist(genreCount int, hasMusicType, hasComposer, hasDescription bool) float64 {
	score := 0.1
	switch {
	case genreCount >= 2:
		score += 0.4
	case genreCount >= 1:
		score += 0.2
	}
	if hasMusicType {
		score += 0.2
	}
	if hasComposer {
		score += 0.2
	}
	if hasDescription {
		score += 0.1
	}
	return clamp(score)
}

// ClassicalTrack scores a classical-track enrichment result. Weights
// favor the composer and catalog number, the two fields that identify a
// work unambiguously.
func ClassicalTrack(hasComposer, hasPeriod, hasForm, hasCatalog, hasWorkTitle, hasMovement bool, confidence float64) float64 {
	score := 0.0
	if hasComposer {
		score += 0.30
	}
	if hasPeriod {
		score += 0.15
	}
	if hasForm {
		score += 0.15
	}
	if hasCatalog {
		score += 0.20
	}
	if hasWorkTitle {
		score += 0.10
	}
	if hasMovement {
		score += 0.05
	}
	if confidence >= 0.8 {
		score += 0.05
	}
	return clamp(score)
}

// ComposerBonus raises a track score when a composer was extracted,
// capped at 1.0.
func ComposerBonus(base float64) float64 {
	return clamp(base + 0.2)
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
