// Package spotify provides a Spotify Web API search provider.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/justestif/emotify/internal/song"
)

// searchLimit matches the number of hits the disambiguator examines.
const searchLimit = song.ResolveLimit

// ErrMissingCredentials is returned when the client ID or secret is empty.
var ErrMissingCredentials = errors.New("missing Spotify client ID or secret")

// Client wraps the Spotify API client with convenience methods.
type Client struct {
	api *spotify.Client
}

// New creates a new Spotify client wrapper.
// The underlying client should already be authenticated.
func New(api *spotify.Client) *Client {
	return &Client{api: api}
}

// NewWithClientCredentials creates a client using the client-credentials
// flow, which needs no user login and is enough for catalog search.
func NewWithClientCredentials(ctx context.Context, clientID, clientSecret string, timeout time.Duration) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, ErrMissingCredentials
	}

	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}

	base := &http.Client{Timeout: timeout}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	httpClient := cfg.Client(ctx)
	httpClient.Timeout = timeout

	return New(spotify.New(httpClient)), nil
}

// compile-time interface assertion
var _ song.Searcher = (*Client)(nil)

// Search returns track hits for query in Spotify relevance order.
func (c *Client) Search(ctx context.Context, query string) ([]song.Candidate, error) {
	result, err := c.api.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(searchLimit))
	if err != nil {
		return nil, fmt.Errorf("searching tracks: %w", err)
	}

	if result.Tracks == nil {
		return []song.Candidate{}, nil
	}

	candidates := make([]song.Candidate, 0, len(result.Tracks.Tracks))
	for _, t := range result.Tracks.Tracks {
		candidates = append(candidates, convertTrack(t))
	}
	return candidates, nil
}
