// Package song looks a song up with a search provider and picks the best hit.
package song

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// ResolveLimit is the number of search hits examined by Resolve.
const ResolveLimit = 5

var (
	// ErrNotFound is returned when no search hit is an acceptable match.
	ErrNotFound = errors.New("song not found")

	// ErrSearchFailed wraps transport or provider failures from a Searcher.
	ErrSearchFailed = errors.New("song search failed")
)

// Candidate is a single search hit returned by a provider.
type Candidate struct {
	ID           string
	Title        string
	Artist       string // primary artist
	URL          string
	ThumbnailURL string
	FullTitle    string
}

// Searcher is implemented by search providers.
// Hits are returned in the provider's relevance order.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Candidate, error)
}

// NotFoundError describes a lookup that produced no acceptable hit.
type NotFoundError struct {
	Artist string
	Title  string
}

func (e *NotFoundError) Error() string {
	if e.Artist == "" && e.Title == "" {
		return ErrNotFound.Error()
	}
	return fmt.Sprintf("no match found for title %q artist %q", e.Title, e.Artist)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Score rates how well a candidate matches the query: 2 points for a title
// match, 1 for an artist match. Matching is case-insensitive containment in
// either direction, so "Anti-Hero" matches "Anti-Hero (Remix)".
func Score(queryArtist, querySong string, c Candidate) int {
	score := 0
	if containsEither(querySong, c.Title) {
		score += 2
	}
	if containsEither(queryArtist, c.Artist) {
		score++
	}
	return score
}

// Resolve returns the best-scoring candidate among the first limit entries.
// Ties keep the earliest candidate. The boolean is false when candidates is
// empty or nothing scores above zero.
func Resolve(queryArtist, querySong string, candidates []Candidate, limit int) (Candidate, bool) {
	if limit > len(candidates) {
		limit = len(candidates)
	}

	bestScore := 0
	bestIndex := -1
	for i := 0; i < limit; i++ {
		score := Score(queryArtist, querySong, candidates[i])
		if score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}

	if bestIndex == -1 {
		return Candidate{}, false
	}
	return candidates[bestIndex], true
}

// Lookup searches for "<artist> <title>" and resolves the hits.
// Returns a *NotFoundError when nothing acceptable comes back.
func Lookup(ctx context.Context, searcher Searcher, artist, title string) (Candidate, error) {
	hits, err := searcher.Search(ctx, artist+" "+title)
	if err != nil {
		return Candidate{}, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}

	best, ok := Resolve(artist, title, hits, ResolveLimit)
	if !ok {
		log.Printf("song: no acceptable hit among %d results for %q by %q", len(hits), title, artist)
		return Candidate{}, &NotFoundError{Artist: artist, Title: title}
	}
	return best, nil
}

// containsEither reports whether a contains b or b contains a, ignoring case.
func containsEither(a, b string) bool {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	return strings.Contains(b, a) || strings.Contains(a, b)
}
