// Package lastfm fetches a user's listening history from the Last.fm web
// API.
package lastfm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultHTTPTimeout = 15 * time.Second

// Track is one play from the recent-tracks feed. ListenedAt is zero for
// the "now playing" entry, which has not finished yet.
type Track struct {
	Artist     string
	Name       string
	Album      string
	ListenedAt int64
	NowPlaying bool
	Loved      bool
}

// Client talks to the Last.fm user.getrecenttracks endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a Last.fm client.
func New(apiKey, baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("lastfm: api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = "https://ws.audioscrobbler.com/2.0/"
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// RecentTracks fetches one page of a user's recent plays, newest first.
func (c *Client) RecentTracks(ctx context.Context, user string, limit, page int) ([]Track, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return nil, errors.New("lastfm recent tracks: user required")
	}
	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}

	params := url.Values{}
	params.Set("method", "user.getrecenttracks")
	params.Set("user", user)
	params.Set("api_key", c.apiKey)
	params.Set("format", "json")
	params.Set("extended", "1")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("lastfm recent tracks: new request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lastfm recent tracks: http error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("lastfm recent tracks: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lastfm recent tracks: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload recentTracksResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("lastfm recent tracks: decode response: %w", err)
	}
	if payload.Error != 0 {
		return nil, fmt.Errorf("lastfm recent tracks: api error %d: %s", payload.Error, payload.Message)
	}

	tracks := make([]Track, 0, len(payload.RecentTracks.Track))
	for _, entry := range payload.RecentTracks.Track {
		track := Track{
			Artist: firstOf(entry.Artist.Name, entry.Artist.Text),
			Name:   entry.Name,
			Album:  entry.Album.Text,
			Loved:  entry.Loved == "1",
		}
		if entry.Attr.NowPlaying == "true" {
			track.NowPlaying = true
		} else if entry.Date.UTS != "" {
			uts, err := strconv.ParseInt(entry.Date.UTS, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("lastfm recent tracks: parse timestamp %q: %w", entry.Date.UTS, err)
			}
			track.ListenedAt = uts
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

type recentTracksResponse struct {
	RecentTracks struct {
		Track []recentTrack `json:"track"`
	} `json:"recenttracks"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

type recentTrack struct {
	Name   string `json:"name"`
	Artist struct {
		// extended=1 responses use "name"; plain responses use "#text".
		Name string `json:"name"`
		Text string `json:"#text"`
	} `json:"artist"`
	Album struct {
		Text string `json:"#text"`
	} `json:"album"`
	Date struct {
		UTS string `json:"uts"`
	} `json:"date"`
	Attr struct {
		NowPlaying string `json:"nowplaying"`
	} `json:"@attr"`
	Loved string `json:"loved"`
}

func firstOf(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
