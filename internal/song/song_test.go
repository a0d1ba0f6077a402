package song

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		artist    string
		title     string
		candidate Candidate
		want      int
	}{
		{
			name:      "exact match",
			artist:    "Adele",
			title:     "Hello",
			candidate: Candidate{Title: "Hello", Artist: "Adele"},
			want:      3,
		},
		{
			name:      "remix suffix still matches title",
			artist:    "Taylor Swift",
			title:     "Anti-Hero",
			candidate: Candidate{Title: "Anti-Hero (Remix)", Artist: "Taylor Swift"},
			want:      3,
		},
		{
			name:      "query contains candidate title",
			artist:    "taylor swift",
			title:     "Anti-Hero (Live)",
			candidate: Candidate{Title: "Anti-Hero", Artist: "Taylor Swift"},
			want:      3,
		},
		{
			name:      "artist only",
			artist:    "Adele",
			title:     "Hello",
			candidate: Candidate{Title: "Someone Like You", Artist: "Adele"},
			want:      1,
		},
		{
			name:      "title only",
			artist:    "Adele",
			title:     "Hello",
			candidate: Candidate{Title: "Hello", Artist: "Lionel Richie"},
			want:      2,
		},
		{
			name:      "no match",
			artist:    "Adele",
			title:     "Hello",
			candidate: Candidate{Title: "Bad Guy", Artist: "Billie Eilish"},
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.artist, tt.title, tt.candidate))
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		candidates []Candidate
		limit      int
		wantID     string
		wantOK     bool
	}{
		{
			name:   "empty list is not found",
			limit:  ResolveLimit,
			wantOK: false,
		},
		{
			name: "all zero scores is not found",
			candidates: []Candidate{
				{ID: "1", Title: "Bad Guy", Artist: "Billie Eilish"},
				{ID: "2", Title: "Levitating", Artist: "Dua Lipa"},
			},
			limit:  ResolveLimit,
			wantOK: false,
		},
		{
			name: "highest score wins",
			candidates: []Candidate{
				{ID: "1", Title: "Hello", Artist: "Lionel Richie"},
				{ID: "2", Title: "Hello", Artist: "Adele"},
			},
			limit:  ResolveLimit,
			wantID: "2",
			wantOK: true,
		},
		{
			name: "tie keeps provider order",
			candidates: []Candidate{
				{ID: "1", Title: "Hello (Live)", Artist: "Adele"},
				{ID: "2", Title: "Hello", Artist: "Adele"},
			},
			limit:  ResolveLimit,
			wantID: "1",
			wantOK: true,
		},
		{
			name: "candidate past the limit is never selected",
			candidates: []Candidate{
				{ID: "1", Title: "Someone Like You", Artist: "Adele"},
				{ID: "2", Title: "Skyfall", Artist: "Adele"},
				{ID: "3", Title: "Rumour Has It", Artist: "Adele"},
				{ID: "4", Title: "Easy On Me", Artist: "Adele"},
				{ID: "5", Title: "Rolling in the Deep", Artist: "Adele"},
				{ID: "6", Title: "Hello", Artist: "Adele"},
			},
			limit:  ResolveLimit,
			wantID: "1",
			wantOK: true,
		},
		{
			name: "limit larger than list",
			candidates: []Candidate{
				{ID: "1", Title: "Hello", Artist: "Adele"},
			},
			limit:  50,
			wantID: "1",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve("Adele", "Hello", tt.candidates, tt.limit)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, got.ID)
			}
		})
	}
}

func TestResolve_Deterministic(t *testing.T) {
	candidates := []Candidate{
		{ID: "1", Title: "Love Story", Artist: "Taylor Swift"},
		{ID: "2", Title: "Love", Artist: "Kendrick Lamar"},
		{ID: "3", Title: "Crazy in Love", Artist: "Beyonce"},
	}

	first, ok := Resolve("Kendrick Lamar", "Love", candidates, ResolveLimit)
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		got, ok := Resolve("Kendrick Lamar", "Love", candidates, ResolveLimit)
		require.True(t, ok)
		assert.Equal(t, first, got)
	}
	assert.Equal(t, "2", first.ID)
}

type fakeSearcher struct {
	hits      []Candidate
	err       error
	lastQuery string
}

func (f *fakeSearcher) Search(_ context.Context, query string) ([]Candidate, error) {
	f.lastQuery = query
	return f.hits, f.err
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		searcher *fakeSearcher
		wantID   string
		wantErr  error
	}{
		{
			name: "resolves best hit",
			searcher: &fakeSearcher{hits: []Candidate{
				{ID: "42", Title: "Hello", Artist: "Adele"},
			}},
			wantID: "42",
		},
		{
			name:     "no hits is not found",
			searcher: &fakeSearcher{},
			wantErr:  ErrNotFound,
		},
		{
			name:     "provider error is wrapped",
			searcher: &fakeSearcher{err: errors.New("connection reset")},
			wantErr:  ErrSearchFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lookup(context.Background(), tt.searcher, "Adele", "Hello")
			assert.Equal(t, "Adele Hello", tt.searcher.lastQuery)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestNotFoundError(t *testing.T) {
	err := error(&NotFoundError{Artist: "Adele", Title: "Hello"})
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, `no match found for title "Hello" artist "Adele"`, err.Error())

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Adele", nf.Artist)
}
