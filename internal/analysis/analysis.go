// Package analysis asks a generative model for a structured emotional
// analysis of a song and coerces the free-text reply into EmotionAnalysis.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/justestif/emotify/internal/song"
)

// Default values substituted for fields the model left out.
const (
	NotAvailable     = "N/A"
	UnknownEmotion   = "Unknown"
	NoDescription    = "No description"
	DefaultIntensity = 5
	MaxIntensity     = 10
)

// Counts requested in the prompt. Replies are not rejected for other counts.
const (
	PrimaryEmotionCount = 4
	KeywordCount        = 15
)

var (
	// ErrMalformedResponse matches replies that contain no parseable JSON.
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrProviderFailure matches transport and API failures of the model.
	ErrProviderFailure = errors.New("analysis provider failure")
)

// PrimaryEmotion is one of the dominant emotions the model identified.
type PrimaryEmotion struct {
	Emotion     string
	Intensity   int // 0-10
	Description string
}

// EmotionAnalysis is the model's structured analysis with defaults applied.
type EmotionAnalysis struct {
	OverallTone       string
	PrimaryEmotions   []PrimaryEmotion
	Mood              string
	Themes            string
	EmotionalKeywords []string
	TempoEnergy       string // slow, medium or fast
	Valence           string // positive, negative or mixed
	LyricalThemes     []string
	EmotionalArc      string
	MusicalElements   string
}

// MalformedResponseError carries the raw reply that could not be parsed.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	if e.Err == nil {
		return ErrMalformedResponse.Error()
	}
	return fmt.Sprintf("%s: %v", ErrMalformedResponse, e.Err)
}

func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// ProviderError wraps a failure reported by the Generator.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrProviderFailure
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Generator produces a free-text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Analyzer requests and parses song analyses.
type Analyzer struct {
	gen      Generator
	provider string
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithProviderName sets the name reported in ProviderError.
func WithProviderName(name string) Option {
	return func(a *Analyzer) {
		if name != "" {
			a.provider = name
		}
	}
}

// NewAnalyzer creates an Analyzer backed by gen.
func NewAnalyzer(gen Generator, opts ...Option) *Analyzer {
	a := &Analyzer{
		gen:      gen,
		provider: "gemini",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze sends one prompt for s and parses the reply. There is no retry.
func (a *Analyzer) Analyze(ctx context.Context, s song.Candidate) (EmotionAnalysis, error) {
	reply, err := a.gen.Generate(ctx, BuildPrompt(s))
	if err != nil {
		return EmotionAnalysis{}, &ProviderError{Provider: a.provider, Err: err}
	}

	result, err := ParseReply(reply)
	if err != nil {
		log.Printf("analysis: could not parse %d-byte reply for %q: %v", len(reply), s.Title, err)
		return EmotionAnalysis{}, err
	}
	return result, nil
}
