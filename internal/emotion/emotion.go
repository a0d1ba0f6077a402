// Package emotion turns raw lexicon counts into percentage shares.
package emotion

import (
	"slices"
	"strings"

	"github.com/justestif/emotify/internal/lexicon"
)

// Scorer tallies emotion categories in a text.
type Scorer interface {
	Score(text string) lexicon.Result
}

// Share is one category's raw count and percentage of the total.
type Share struct {
	Category lexicon.Category
	Raw      int
	Percent  float64
}

// Scores is the normalized lexicon result for one set of keywords.
// Shares keep the scorer's first-encounter order.
type Scores struct {
	Shares     []Share
	Total      int
	Tokens     int
	Recognized int
}

// Normalize joins keywords with single spaces, scores the text and converts
// raw counts into percentages of their sum. The result is empty when nothing
// was counted.
func Normalize(keywords []string, scorer Scorer) Scores {
	res := scorer.Score(strings.Join(keywords, " "))

	total := res.Total()
	if total <= 0 {
		return Scores{Tokens: res.Tokens, Recognized: res.Recognized}
	}

	shares := make([]Share, 0, len(res.Counts))
	for _, c := range res.Counts {
		shares = append(shares, Share{
			Category: c.Category,
			Raw:      c.Raw,
			Percent:  float64(c.Raw) / float64(total) * 100,
		})
	}

	return Scores{
		Shares:     shares,
		Total:      total,
		Tokens:     res.Tokens,
		Recognized: res.Recognized,
	}
}

// Empty reports whether there is nothing to chart.
func (s Scores) Empty() bool {
	return len(s.Shares) == 0
}

// Ranked returns the shares sorted by descending percentage. Ties keep
// first-encounter order.
func (s Scores) Ranked() []Share {
	ranked := slices.Clone(s.Shares)
	slices.SortStableFunc(ranked, func(a, b Share) int {
		switch {
		case a.Percent > b.Percent:
			return -1
		case a.Percent < b.Percent:
			return 1
		}
		return 0
	})
	return ranked
}

// Top returns at most n of the highest-ranked shares.
func (s Scores) Top(n int) []Share {
	ranked := s.Ranked()
	if n < 0 {
		n = 0
	}
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Percent returns the share of category c, or 0 when it was not counted.
func (s Scores) Percent(c lexicon.Category) float64 {
	for _, sh := range s.Shares {
		if sh.Category == c {
			return sh.Percent
		}
	}
	return 0
}
