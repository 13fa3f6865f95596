package lastfm_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cadenza/internal/services/lastfm"
)

const recentTracksPayload = `{
  "recenttracks": {
    "track": [
      {
        "name": "Cello Suite No. 1: Prelude",
        "artist": {"name": "J.S. Bach"},
        "album": {"#text": "The Cello Suites"},
        "@attr": {"nowplaying": "true"}
      },
      {
        "name": "Air on the G String",
        "artist": {"name": "J.S. Bach"},
        "album": {"#text": ""},
        "date": {"uts": "1700000000"},
        "loved": "1"
      }
    ]
  }
}`

func TestRecentTracks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("method") != "user.getrecenttracks" {
			t.Errorf("method = %q", query.Get("method"))
		}
		if query.Get("user") != "alice" {
			t.Errorf("user = %q", query.Get("user"))
		}
		if query.Get("limit") != "10" || query.Get("page") != "2" {
			t.Errorf("pagination = limit %q page %q", query.Get("limit"), query.Get("page"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(recentTracksPayload))
	}))
	defer server.Close()

	client, err := lastfm.New("key", server.URL, time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tracks, err := client.RecentTracks(context.Background(), "alice", 10, 2)
	if err != nil {
		t.Fatalf("RecentTracks: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}
	if !tracks[0].NowPlaying || tracks[0].ListenedAt != 0 {
		t.Fatalf("first track should be now playing: %+v", tracks[0])
	}
	if tracks[1].ListenedAt != 1700000000 || !tracks[1].Loved {
		t.Fatalf("second track fields wrong: %+v", tracks[1])
	}
	if tracks[1].Artist != "J.S. Bach" {
		t.Fatalf("artist = %q", tracks[1].Artist)
	}
}

func TestRecentTracksAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": 10, "message": "Invalid API key"}`))
	}))
	defer server.Close()

	client, err := lastfm.New("bad", server.URL, time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := client.RecentTracks(context.Background(), "alice", 10, 1); err == nil {
		t.Fatal("expected api error")
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := lastfm.New("", "", time.Second); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
