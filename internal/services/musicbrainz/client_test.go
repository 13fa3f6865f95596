package musicbrainz_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cadenza/internal/services/musicbrainz"
)

const searchPayload = `{
  "artists": [
    {"id": "low", "name": "Johann Bach", "score": 60},
    {"id": "mbid-jsb", "name": "Johann Sebastian Bach", "score": 100}
  ]
}`

const lookupPayload = `{
  "id": "mbid-jsb",
  "name": "Johann Sebastian Bach",
  "type": "Person",
  "disambiguation": "German Baroque composer",
  "genres": [{"name": "baroque"}, {"name": "classical"}],
  "tags": [{"name": "composer"}, {"name": "german"}, {"name": "organ"}]
}`

func newTestClient(t *testing.T, handler http.Handler) *musicbrainz.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := musicbrainz.New(server.URL, "cadenza-test/1.0", time.Second,
		musicbrainz.WithSleeper(func(time.Duration) {}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func TestSearchArtist(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "cadenza-test/1.0" {
			t.Errorf("user agent = %q", r.Header.Get("User-Agent"))
		}
		switch {
		case strings.HasPrefix(r.URL.Path, "/artist/mbid-jsb"):
			_, _ = w.Write([]byte(lookupPayload))
		case r.URL.Path == "/artist":
			_, _ = w.Write([]byte(searchPayload))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			http.NotFound(w, r)
		}
	}))

	artist, err := client.SearchArtist(context.Background(), "Johann Sebastian Bach")
	if err != nil {
		t.Fatalf("SearchArtist: %v", err)
	}
	if artist.MBID != "mbid-jsb" {
		t.Fatalf("mbid = %q, want best-scoring match", artist.MBID)
	}
	if len(artist.Genres) != 2 || len(artist.Tags) != 3 {
		t.Fatalf("genres/tags = %v / %v", artist.Genres, artist.Tags)
	}
	if !artist.IsComposer {
		t.Fatal("expected composer heuristic to fire")
	}
	if artist.Disambiguation != "German Baroque composer" {
		t.Fatalf("disambiguation = %q", artist.Disambiguation)
	}
}

func TestThrottleSpacesConsecutiveRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/artist/mbid-jsb"):
			_, _ = w.Write([]byte(lookupPayload))
		default:
			_, _ = w.Write([]byte(searchPayload))
		}
	}))
	t.Cleanup(server.Close)

	var sleeps []time.Duration
	client, err := musicbrainz.New(server.URL, "cadenza-test/1.0", time.Second,
		musicbrainz.WithSleeper(func(d time.Duration) { sleeps = append(sleeps, d) }))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// One search issues two HTTP requests back to back; the first is
	// free, the second must wait out the courtesy interval.
	if _, err := client.SearchArtist(context.Background(), "Johann Sebastian Bach"); err != nil {
		t.Fatalf("SearchArtist: %v", err)
	}
	if len(sleeps) != 1 {
		t.Fatalf("sleeper calls = %d, want 1", len(sleeps))
	}
	if sleeps[0] <= 900*time.Millisecond || sleeps[0] > time.Second {
		t.Fatalf("throttle wait = %v, want close to 1s", sleeps[0])
	}
}

func TestSearchArtistNoMatch(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"artists": []}`))
	}))

	if _, err := client.SearchArtist(context.Background(), "Nobody At All"); err == nil {
		t.Fatal("expected error for empty result set")
	}
}

func TestSearchArtistServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))

	if _, err := client.SearchArtist(context.Background(), "Anyone"); err == nil {
		t.Fatal("expected error for 503")
	}
}

func TestNewRequiresUserAgent(t *testing.T) {
	if _, err := musicbrainz.New("", "", time.Second); err == nil {
		t.Fatal("expected error for missing user agent")
	}
}
