package claude_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"cadenza/internal/services/claude"
)

func messageBody(text string) string {
	payload := map[string]any{
		"content":     []map[string]string{{"type": "text", "text": text}},
		"stop_reason": "end_turn",
	}
	encoded, _ := json.Marshal(payload)
	return string(encoded)
}

func newTestClient(t *testing.T, handler http.Handler) *claude.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return claude.NewClient(claude.Config{
		APIKey:  "sk-test",
		BaseURL: server.URL,
		Model:   "claude-test",
	},
		claude.WithSleeper(func(time.Duration) {}),
		claude.WithRetryBackoff(time.Millisecond, time.Millisecond),
	)
}

func TestEnrichArtist(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "sk-test" {
			t.Errorf("missing api key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Errorf("missing anthropic-version header")
		}
		_, _ = w.Write([]byte(messageBody(`{"genres": ["baroque"], "is_composer": true, "composer_full_name": "Johann Sebastian Bach", "music_type": "classical", "description": "German composer."}`)))
	}))

	result, err := client.EnrichArtist(context.Background(), "J.S. Bach", []string{"baroque"})
	if err != nil {
		t.Fatalf("EnrichArtist: %v", err)
	}
	if !result.IsComposer || result.ComposerFullName != "Johann Sebastian Bach" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestEnrichArtistStripsCodeFences(t *testing.T) {
	fenced := "```json\n{\"genres\": [\"folk\"], \"is_composer\": false, \"composer_full_name\": \"\", \"music_type\": \"folk\", \"description\": \"\"}\n```"
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(messageBody(fenced)))
	}))

	result, err := client.EnrichArtist(context.Background(), "Someone", nil)
	if err != nil {
		t.Fatalf("EnrichArtist: %v", err)
	}
	if len(result.Genres) != 1 || result.Genres[0] != "folk" {
		t.Fatalf("unexpected genres: %v", result.Genres)
	}
}

func TestEnrichArtistMalformedPayload(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(messageBody("I am not JSON at all")))
	}))

	if _, err := client.EnrichArtist(context.Background(), "Someone", nil); err == nil {
		t.Fatal("expected parse error for malformed payload")
	}
}

func TestRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "overloaded", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(messageBody(`{"is_historical_composer": true, "explanation": "Baroque composer"}`)))
	}))

	check, err := client.CheckIsComposer(context.Background(), "Bach", []string{"baroque"})
	if err != nil {
		t.Fatalf("CheckIsComposer: %v", err)
	}
	if !check.IsHistoricalComposer {
		t.Fatalf("unexpected check: %+v", check)
	}
	if calls.Load() != 2 {
		t.Fatalf("calls = %d, want retry once", calls.Load())
	}
}

func TestNoRetryOnBadRequest(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad request", http.StatusBadRequest)
	}))

	if _, err := client.EnrichArtist(context.Background(), "Someone", nil); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want no retry on 400", calls.Load())
	}
}

func TestEnrichClassicalTrackClampsConfidence(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(messageBody(`{"composer": "Antonio Vivaldi", "period": "baroque", "musical_form": "concerto", "opus_catalog": "RV 269", "work_title": "Spring", "movement": "Allegro", "confidence": 1.7}`)))
	}))

	result, err := client.EnrichClassicalTrack(context.Background(), "Vivaldi", "Spring: Allegro", "")
	if err != nil {
		t.Fatalf("EnrichClassicalTrack: %v", err)
	}
	if result.Confidence != 1.0 {
		t.Fatalf("confidence = %v, want clamp to 1.0", result.Confidence)
	}
}

func TestCompleteJSONRequiresAPIKey(t *testing.T) {
	client := claude.NewClient(claude.Config{Model: "claude-test"})
	if _, err := client.CompleteJSON(context.Background(), "system", "user"); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestDecodeModelJSON(t *testing.T) {
	var target struct {
		OK bool `json:"ok"`
	}
	if err := claude.DecodeModelJSON("prefix {\"ok\": true} suffix", &target); err != nil {
		t.Fatalf("DecodeModelJSON: %v", err)
	}
	if !target.OK {
		t.Fatal("expected embedded object to decode")
	}
	if err := claude.DecodeModelJSON("", &target); err == nil {
		t.Fatal("expected error for empty payload")
	}
}
