// Package daemon hosts the long-running serve mode: the HTTP API over
// the library store plus on-demand enrichment runs.
package daemon
