// Package library is the durable half of the enrichment cache: artist and
// track knowledge plus the append-only scrobble history, backed by
// SQLite. All writes are idempotent upserts that never regress a quality
// score, which keeps concurrent sync runs commutative.
package library
