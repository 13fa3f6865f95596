// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"testing"

	"cadenza/internal/config"
)

// NewConfig returns a validated config rooted in per-test temp
// directories.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.DataDir = t.TempDir()
	cfg.Paths.LogDir = t.TempDir()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}
