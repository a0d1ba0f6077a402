package lexicon

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Count is the raw number of hits for one category.
type Count struct {
	Category Category
	Raw      int
}

// Result is the outcome of scoring a text.
type Result struct {
	// Counts holds one entry per category hit, in first-encounter order.
	Counts     []Count
	Tokens     int
	Recognized int
}

// Total returns the sum of all raw counts.
func (r Result) Total() int {
	total := 0
	for _, c := range r.Counts {
		total += c.Raw
	}
	return total
}

// Score tokenizes text and tallies the categories of every listed token.
func (l *Lexicon) Score(text string) Result {
	tokens := Tokenize(text)
	res := Result{Tokens: len(tokens)}

	index := make(map[Category]int)
	for _, tok := range tokens {
		cats := l.Lookup(tok)
		if len(cats) == 0 {
			continue
		}
		res.Recognized++
		for _, c := range cats {
			i, ok := index[c]
			if !ok {
				i = len(res.Counts)
				index[c] = i
				res.Counts = append(res.Counts, Count{Category: c})
			}
			res.Counts[i].Raw++
		}
	}
	return res
}

// Tokenize lower-cases text, folds accents ("café" becomes "cafe") and
// splits it into words of letters and inner apostrophes.
func Tokenize(text string) []string {
	folded, _, err := transform.String(foldAccents(), text)
	if err != nil {
		folded = text
	}
	folded = strings.ToLower(folded)

	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// foldAccents builds a fresh transformer; transform.Chain is not safe for
// concurrent use.
func foldAccents() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
