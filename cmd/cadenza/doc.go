// Package main hosts the cadenza CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into
// enrichment runs, library queries, configuration scaffolding, and the
// long-running serve mode. It centralizes configuration resolution and
// structured logging setup so subcommands can focus on user experience
// instead of wiring.
package main
