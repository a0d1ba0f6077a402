// Package genius provides a Genius API search client.
package genius

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"

	"github.com/justestif/emotify/internal/song"
)

const (
	// DefaultBaseURL is the Genius API root.
	DefaultBaseURL = "https://api.genius.com"
	userAgent      = "emotify/1.0"
)

// Sentinel errors.
var (
	// ErrUnauthorized is returned when Genius rejects the access token.
	ErrUnauthorized = errors.New("genius: invalid access token")
)

// Client is a Genius API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	baseURL string
	base    *http.Client
	timeout time.Duration
}

// WithBaseURL overrides the API root.
func WithBaseURL(u string) Option {
	return func(o *clientOptions) {
		if u != "" {
			o.baseURL = u
		}
	}
}

// WithHTTPClient sets the client whose transport carries the bearer token.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		o.base = c
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// NewClient creates a Genius client authenticated with accessToken.
func NewClient(accessToken string, opts ...Option) *Client {
	o := clientOptions{
		baseURL: DefaultBaseURL,
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	ctx := context.Background()
	if o.base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, o.base)
	}
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))
	httpClient.Timeout = o.timeout

	return &Client{
		httpClient: httpClient,
		baseURL:    o.baseURL,
	}
}

// compile-time interface assertion
var _ song.Searcher = (*Client)(nil)

// Search returns song hits for query in Genius relevance order.
// Non-song hits are skipped.
func (c *Client) Search(ctx context.Context, query string) ([]song.Candidate, error) {
	params := url.Values{"q": {query}}
	reqURL := c.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status: %s", resp.Status)
		}
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	status := parsed.Meta.Status
	if status == 0 {
		status = resp.StatusCode
	}
	switch {
	case status == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case status != http.StatusOK:
		if parsed.Meta.Message != "" {
			return nil, fmt.Errorf("API error %d: %s", status, parsed.Meta.Message)
		}
		return nil, fmt.Errorf("unexpected status: %d", status)
	}

	// The disambiguation window covers the provider's first hits of any type.
	hits := parsed.Response.Hits
	if len(hits) > song.ResolveLimit {
		hits = hits[:song.ResolveLimit]
	}

	candidates := make([]song.Candidate, 0, len(hits))
	for _, h := range hits {
		if h.Type != "" && h.Type != "song" {
			continue
		}
		candidates = append(candidates, convertResult(h.Result))
	}
	return candidates, nil
}

// convertResult converts a Genius song result to a song.Candidate.
func convertResult(r songResult) song.Candidate {
	return song.Candidate{
		ID:           strconv.Itoa(r.ID),
		Title:        r.Title,
		Artist:       r.PrimaryArtist.Name,
		URL:          r.URL,
		ThumbnailURL: r.SongArtImageThumbnailURL,
		FullTitle:    r.FullTitle,
	}
}
