// Package enrichment is the decision engine that augments raw listening
// history with derived metadata. It decides when cached data is good
// enough, when a free bibliographic lookup is worth attempting, and when
// a paid AI call is justified under the per-run budget, then merges and
// scores the results.
package enrichment
