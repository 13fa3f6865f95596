package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"cadenza/internal/config"
)

func TestDefaultValidates(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if resolved != path {
		t.Fatalf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Enrichment.QualityThreshold != 0.8 {
		t.Fatalf("quality threshold = %v, want 0.8", cfg.Enrichment.QualityThreshold)
	}
	if cfg.Enrichment.AICallLimit != 10 {
		t.Fatalf("ai call limit = %d, want 10", cfg.Enrichment.AICallLimit)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[paths]
data_dir = "` + dir + `"

[enrichment]
quality_threshold = 0.6
ai_call_limit = 3
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if cfg.Enrichment.QualityThreshold != 0.6 {
		t.Fatalf("quality threshold = %v, want 0.6", cfg.Enrichment.QualityThreshold)
	}
	if cfg.Enrichment.AICallLimit != 3 {
		t.Fatalf("ai call limit = %d, want 3", cfg.Enrichment.AICallLimit)
	}
	if cfg.Paths.DataDir != dir {
		t.Fatalf("data dir = %q, want %q", cfg.Paths.DataDir, dir)
	}
}

func TestValidateRejectsBadThreshold(t *testing.T) {
	cfg := config.Default()
	cfg.Enrichment.QualityThreshold = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for threshold > 1")
	}
}

func TestValidateRejectsKeyWithoutModel(t *testing.T) {
	cfg := config.Default()
	cfg.Claude.APIKey = "sk-test"
	cfg.Claude.Model = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for api key without model")
	}
}

func TestValidateRejectsBareNtfyTopic(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = "my-topic"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for topic without scheme")
	}
}

func TestDatabasePath(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.DataDir = "/tmp/cadenza-test"
	if got := cfg.DatabasePath(); got != "/tmp/cadenza-test/library.db" {
		t.Fatalf("DatabasePath = %q", got)
	}
}
