package spotify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zmb3/spotify/v2"

	"github.com/justestif/emotify/internal/song"
)

const helloTrack = `{
	"id": "4sPmO7WMQUAf45kwMOtONw",
	"name": "Hello",
	"artists": [{"name": "Adele"}],
	"external_urls": {"spotify": "https://open.spotify.com/track/4sPmO7WMQUAf45kwMOtONw"},
	"album": {
		"name": "25",
		"images": [
			{"url": "https://i.scdn.co/image/640", "width": 640, "height": 640},
			{"url": "https://i.scdn.co/image/64", "width": 64, "height": 64},
			{"url": "https://i.scdn.co/image/300", "width": 300, "height": 300}
		]
	}
}`

func TestConvertTrack(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want song.Candidate
	}{
		{
			name: "single artist",
			raw:  helloTrack,
			want: song.Candidate{
				ID:           "4sPmO7WMQUAf45kwMOtONw",
				Title:        "Hello",
				Artist:       "Adele",
				URL:          "https://open.spotify.com/track/4sPmO7WMQUAf45kwMOtONw",
				ThumbnailURL: "https://i.scdn.co/image/64",
				FullTitle:    "Hello by Adele",
			},
		},
		{
			name: "multiple artists uses first as primary",
			raw:  `{"id":"t2","name":"Collab","artists":[{"name":"Artist A"},{"name":"Artist B"}],"album":{"images":[]}}`,
			want: song.Candidate{
				ID:        "t2",
				Title:     "Collab",
				Artist:    "Artist A",
				FullTitle: "Collab by Artist A, Artist B",
			},
		},
		{
			name: "no artists",
			raw:  `{"id":"t3","name":"Untitled","artists":[]}`,
			want: song.Candidate{
				ID:        "t3",
				Title:     "Untitled",
				FullTitle: "Untitled",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var track spotify.FullTrack
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &track))

			assert.Equal(t, tt.want, convertTrack(track))
		})
	}
}

func TestSearch(t *testing.T) {
	var gotQuery, gotType, gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotType = r.URL.Query().Get("type")
		gotLimit = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tracks":{"items":[` + helloTrack + `],"limit":5,"total":1}}`))
	}))
	defer server.Close()

	client := New(spotify.New(server.Client(), spotify.WithBaseURL(server.URL+"/")))

	got, err := client.Search(context.Background(), "Adele Hello")
	require.NoError(t, err)

	assert.Equal(t, "Adele Hello", gotQuery)
	assert.Equal(t, "track", gotType)
	assert.Equal(t, "5", gotLimit)
	require.Len(t, got, 1)
	assert.Equal(t, "Adele", got[0].Artist)
}

func TestNewWithClientCredentials_MissingCredentials(t *testing.T) {
	_, err := NewWithClientCredentials(context.Background(), "", "secret", 0)
	assert.ErrorIs(t, err, ErrMissingCredentials)
}
