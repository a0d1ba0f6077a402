package genius

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justestif/emotify/internal/song"
)

const helloResponse = `{
	"meta": {"status": 200},
	"response": {
		"hits": [
			{
				"type": "song",
				"result": {
					"id": 2332455,
					"title": "Hello",
					"full_title": "Hello by Adele",
					"url": "https://genius.com/Adele-hello-lyrics",
					"song_art_image_thumbnail_url": "https://images.genius.com/hello.300x300x1.jpg",
					"primary_artist": {"name": "Adele"}
				}
			},
			{
				"type": "video",
				"result": {"id": 1, "title": "Hello (music video)"}
			},
			{
				"type": "song",
				"result": {
					"id": 77,
					"title": "Hello",
					"full_title": "Hello by Lionel Richie",
					"url": "https://genius.com/Lionel-richie-hello-lyrics",
					"primary_artist": {"name": "Lionel Richie"}
				}
			}
		]
	}
}`

func TestSearch(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    []song.Candidate
		wantErr error
		anyErr  bool
	}{
		{
			name:   "maps song hits and skips others",
			status: http.StatusOK,
			body:   helloResponse,
			want: []song.Candidate{
				{
					ID:           "2332455",
					Title:        "Hello",
					Artist:       "Adele",
					URL:          "https://genius.com/Adele-hello-lyrics",
					ThumbnailURL: "https://images.genius.com/hello.300x300x1.jpg",
					FullTitle:    "Hello by Adele",
				},
				{
					ID:        "77",
					Title:     "Hello",
					Artist:    "Lionel Richie",
					URL:       "https://genius.com/Lionel-richie-hello-lyrics",
					FullTitle: "Hello by Lionel Richie",
				},
			},
		},
		{
			name:   "no hits returns empty slice",
			status: http.StatusOK,
			body:   `{"meta":{"status":200},"response":{"hits":[]}}`,
			want:   []song.Candidate{},
		},
		{
			name:   "only the first five hits are considered",
			status: http.StatusOK,
			body: `{"meta":{"status":200},"response":{"hits":[
				{"type":"video","result":{"id":1,"title":"Hello (live)"}},
				{"type":"video","result":{"id":2,"title":"Hello (lyric video)"}},
				{"type":"video","result":{"id":3,"title":"Hello (cover)"}},
				{"type":"video","result":{"id":4,"title":"Hello (remix)"}},
				{"type":"video","result":{"id":5,"title":"Hello (interview)"}},
				{"type":"song","result":{"id":6,"title":"Hello","full_title":"Hello by Adele","primary_artist":{"name":"Adele"}}}
			]}}`,
			want: []song.Candidate{},
		},
		{
			name:    "unauthorized",
			status:  http.StatusUnauthorized,
			body:    `{"meta":{"status":401,"message":"This call requires an access_token."}}`,
			wantErr: ErrUnauthorized,
		},
		{
			name:   "server error without json",
			status: http.StatusBadGateway,
			body:   `<html>bad gateway</html>`,
			anyErr: true,
		},
		{
			name:   "api error message",
			status: http.StatusForbidden,
			body:   `{"meta":{"status":403,"message":"Action forbidden"}}`,
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAuth, gotQuery string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/search" {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				gotAuth = r.Header.Get("Authorization")
				gotQuery = r.URL.Query().Get("q")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient("secret-token",
				WithBaseURL(server.URL),
				WithHTTPClient(server.Client()),
				WithTimeout(5*time.Second),
			)

			got, err := client.Search(context.Background(), "Adele Hello")

			assert.Equal(t, "Bearer secret-token", gotAuth)
			assert.Equal(t, "Adele Hello", gotQuery)

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				require.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient("token")

	assert.Equal(t, DefaultBaseURL, client.baseURL)
	require.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}
