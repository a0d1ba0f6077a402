// Package report runs one analysis cycle: song lookup, model analysis and
// lexicon scoring, strictly in that order.
package report

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/justestif/emotify/internal/analysis"
	"github.com/justestif/emotify/internal/emotion"
	"github.com/justestif/emotify/internal/song"
)

// ErrInvalidInput matches requests with a blank artist or title.
var ErrInvalidInput = errors.New("invalid input")

// InputError names the field that failed validation.
type InputError struct {
	Field string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Analyzer produces an emotional analysis for a resolved song.
type Analyzer interface {
	Analyze(ctx context.Context, s song.Candidate) (analysis.EmotionAnalysis, error)
}

// Query is the user's input after trimming.
type Query struct {
	Artist string
	Title  string
}

// Timings records how long each step took.
type Timings struct {
	Search   time.Duration
	Analysis time.Duration
	Scoring  time.Duration
	Total    time.Duration
}

// Report is the outcome of one cycle. Nothing in it is shared with other
// cycles.
type Report struct {
	ID        uuid.UUID
	Query     Query
	Song      song.Candidate
	Analysis  analysis.EmotionAnalysis
	Scores    emotion.Scores
	Timings   Timings
	CreatedAt time.Time
}

// Service runs analysis cycles.
type Service struct {
	searcher  song.Searcher
	analyzer  Analyzer
	scorer    emotion.Scorer
	configErr error
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithConfigError blocks every Run with err, typically a missing secret.
func WithConfigError(err error) Option {
	return func(s *Service) {
		s.configErr = err
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Service. searcher and analyzer may be nil when a config
// error is set.
func New(searcher song.Searcher, analyzer Analyzer, scorer emotion.Scorer, opts ...Option) *Service {
	s := &Service{
		searcher: searcher,
		analyzer: analyzer,
		scorer:   scorer,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ConfigError returns the stored configuration error, if any.
func (s *Service) ConfigError() error {
	return s.configErr
}

// Run looks the song up, asks the model for an analysis and scores the
// returned keywords. Each step waits for the previous one; the first error
// ends the cycle.
func (s *Service) Run(ctx context.Context, artist, title string) (*Report, error) {
	if s.configErr != nil {
		return nil, s.configErr
	}

	q := Query{Artist: strings.TrimSpace(artist), Title: strings.TrimSpace(title)}
	switch {
	case q.Artist == "":
		return nil, &InputError{Field: "artist"}
	case q.Title == "":
		return nil, &InputError{Field: "song title"}
	}

	r := &Report{
		ID:        uuid.New(),
		Query:     q,
		CreatedAt: s.now(),
	}
	log.Printf("report %s: start %q by %q", r.ID, q.Title, q.Artist)

	step := s.now()
	found, err := song.Lookup(ctx, s.searcher, q.Artist, q.Title)
	r.Timings.Search = s.now().Sub(step)
	if err != nil {
		log.Printf("report %s: search failed after %v: %v", r.ID, r.Timings.Search, err)
		return nil, err
	}
	r.Song = found
	log.Printf("report %s: resolved %q in %v", r.ID, found.FullTitle, r.Timings.Search)

	step = s.now()
	result, err := s.analyzer.Analyze(ctx, found)
	r.Timings.Analysis = s.now().Sub(step)
	if err != nil {
		log.Printf("report %s: analysis failed after %v: %v", r.ID, r.Timings.Analysis, err)
		return nil, err
	}
	r.Analysis = result

	step = s.now()
	r.Scores = emotion.Normalize(result.EmotionalKeywords, s.scorer)
	r.Timings.Scoring = s.now().Sub(step)

	r.Timings.Total = s.now().Sub(r.CreatedAt)
	log.Printf("report %s: done in %v (search %v, analysis %v, scoring %v, %d/%d keywords recognized)",
		r.ID, r.Timings.Total, r.Timings.Search, r.Timings.Analysis, r.Timings.Scoring,
		r.Scores.Recognized, r.Scores.Tokens)

	return r, nil
}
