package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T, user string) string {
	t.Helper()
	base := t.TempDir()
	path := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q
api_bind = ""

[lastfm]
api_key = "test-key"
user = %q
`, filepath.Join(base, "data"), filepath.Join(base, "logs"), user)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	output, err := executeCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(output, target) {
		t.Fatalf("output %q does not mention target path", output)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}

	// A second init must refuse to overwrite.
	if _, err := executeCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestConfigPathCommand(t *testing.T) {
	path := writeTestConfig(t, "listener")

	output, err := executeCommand(t, "--config", path, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if !strings.Contains(output, path) {
		t.Fatalf("output %q does not contain config path", output)
	}
}

func TestConfigShowRedactsSecrets(t *testing.T) {
	path := writeTestConfig(t, "listener")

	output, err := executeCommand(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if strings.Contains(output, "test-key") {
		t.Fatal("api key leaked into config show output")
	}
	if !strings.Contains(output, "<redacted>") {
		t.Fatalf("output %q missing redaction marker", output)
	}
}

func TestArtistsCommandEmptyLibrary(t *testing.T) {
	path := writeTestConfig(t, "listener")

	output, err := executeCommand(t, "--config", path, "artists")
	if err != nil {
		t.Fatalf("artists: %v", err)
	}
	if !strings.Contains(output, "No artists pending enrichment") {
		t.Fatalf("unexpected output: %q", output)
	}
}

func TestScrobblesCommandRequiresUser(t *testing.T) {
	path := writeTestConfig(t, "")

	_, err := executeCommand(t, "--config", path, "scrobbles")
	if err == nil {
		t.Fatal("expected error when no user is configured")
	}
	if !strings.Contains(err.Error(), "user") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestScrobblesCommandEmptyHistory(t *testing.T) {
	path := writeTestConfig(t, "listener")

	output, err := executeCommand(t, "--config", path, "scrobbles")
	if err != nil {
		t.Fatalf("scrobbles: %v", err)
	}
	if !strings.Contains(output, "No scrobbles recorded for listener") {
		t.Fatalf("unexpected output: %q", output)
	}
}
