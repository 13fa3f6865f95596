// Package musicbrainz looks up artist metadata from the MusicBrainz web
// service. MusicBrainz is free but rate limited, so the client enforces
// the one-request-per-second courtesy interval and always sends an
// identifying User-Agent.
package musicbrainz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	defaultHTTPTimeout = 15 * time.Second
	courtesyInterval   = time.Second
)

// Artist is the subset of MusicBrainz artist data the enrichment engine
// consumes.
type Artist struct {
	MBID           string
	Name           string
	Type           string
	Disambiguation string
	Genres         []string
	Tags           []string
	IsComposer     bool
}

// Client provides access to the MusicBrainz API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client

	mu       sync.Mutex
	lastCall time.Time
	sleeper  func(time.Duration)
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

// WithSleeper overrides how throttle waits are performed (useful for
// tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		c.sleeper = sleeper
	}
}

// New creates a MusicBrainz client.
func New(baseURL, userAgent string, timeout time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://musicbrainz.org/ws/2"
	}
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return nil, errors.New("musicbrainz: user agent required")
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	client := &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		sleeper:    time.Sleep,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchArtist finds the best match for an artist name and returns its
// genres, tags, and disambiguation. The search result carries tags only,
// so a second lookup fetches genres for the chosen match.
func (c *Client) SearchArtist(ctx context.Context, name string) (*Artist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("musicbrainz search: artist name required")
	}

	params := url.Values{}
	params.Set("query", fmt.Sprintf("artist:%q", name))
	params.Set("fmt", "json")
	params.Set("limit", "5")

	var search searchResponse
	if err := c.get(ctx, "/artist?"+params.Encode(), &search); err != nil {
		return nil, fmt.Errorf("musicbrainz search: %w", err)
	}
	if len(search.Artists) == 0 {
		return nil, fmt.Errorf("musicbrainz search: no match for %q", name)
	}

	best := search.Artists[0]
	for _, candidate := range search.Artists[1:] {
		if candidate.Score > best.Score {
			best = candidate
		}
	}

	detail, err := c.lookupArtist(ctx, best.ID)
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (c *Client) lookupArtist(ctx context.Context, mbid string) (*Artist, error) {
	params := url.Values{}
	params.Set("inc", "genres tags")
	params.Set("fmt", "json")

	var detail artistDetail
	if err := c.get(ctx, "/artist/"+url.PathEscape(mbid)+"?"+params.Encode(), &detail); err != nil {
		return nil, fmt.Errorf("musicbrainz lookup: %w", err)
	}

	artist := &Artist{
		MBID:           detail.ID,
		Name:           detail.Name,
		Type:           detail.Type,
		Disambiguation: detail.Disambiguation,
	}
	for _, genre := range detail.Genres {
		artist.Genres = append(artist.Genres, genre.Name)
	}
	for _, tag := range detail.Tags {
		artist.Tags = append(artist.Tags, tag.Name)
	}
	artist.IsComposer = looksLikeComposer(artist)
	return artist, nil
}

// looksLikeComposer applies the bibliographic heuristic: a person whose
// tags or genres mention composing or the classical tradition.
func looksLikeComposer(artist *Artist) bool {
	if !strings.EqualFold(artist.Type, "Person") {
		return false
	}
	for _, label := range append(append([]string{}, artist.Genres...), artist.Tags...) {
		lower := strings.ToLower(label)
		if strings.Contains(lower, "composer") || strings.Contains(lower, "classical") ||
			strings.Contains(lower, "baroque") || strings.Contains(lower, "romantic") {
			return true
		}
	}
	return false
}

func (c *Client) get(ctx context.Context, path string, target any) error {
	if err := c.throttle(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// throttle enforces the courtesy interval between requests.
func (c *Client) throttle(ctx context.Context) error {
	c.mu.Lock()
	wait := courtesyInterval - time.Since(c.lastCall)
	if wait < 0 {
		wait = 0
	}
	c.lastCall = time.Now().Add(wait)
	c.mu.Unlock()

	if wait <= 0 {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	c.sleeper(wait)
	return ctx.Err()
}

type searchResponse struct {
	Artists []struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Score int    `json:"score"`
	} `json:"artists"`
}

type artistDetail struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Type           string      `json:"type"`
	Disambiguation string      `json:"disambiguation"`
	Genres         []namedItem `json:"genres"`
	Tags           []namedItem `json:"tags"`
}

type namedItem struct {
	Name string `json:"name"`
}
