// Package lexicon scores text against a word/emotion association list in
// the NRC Emotion Lexicon file format.
package lexicon

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Category is an emotion or sentiment category.
type Category string

// The closed set of categories.
const (
	Fear         Category = "fear"
	Anger        Category = "anger"
	Anticipation Category = "anticipation"
	Trust        Category = "trust"
	Surprise     Category = "surprise"
	Positive     Category = "positive"
	Negative     Category = "negative"
	Sadness      Category = "sadness"
	Disgust      Category = "disgust"
	Joy          Category = "joy"
)

// Categories lists every category in canonical order.
var Categories = []Category{
	Fear, Anger, Anticipation, Trust, Surprise,
	Positive, Negative, Sadness, Disgust, Joy,
}

//go:embed data/emotion_lexicon.tsv
var defaultData string

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
)

// Lexicon maps lower-case words to their associated categories.
type Lexicon struct {
	words map[string][]Category
}

// Default returns the embedded lexicon.
func Default() *Lexicon {
	defaultOnce.Do(func() {
		lex, err := Load(strings.NewReader(defaultData))
		if err != nil {
			panic(fmt.Sprintf("lexicon: embedded data: %v", err))
		}
		defaultLex = lex
	})
	return defaultLex
}

// LoadFile reads a lexicon from path.
func LoadFile(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening lexicon: %w", err)
	}
	defer f.Close()

	lex, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return lex, nil
}

// Load parses "word<TAB>category<TAB>0|1" lines. Blank lines and lines
// starting with '#' are skipped; rows flagged 0 are ignored.
func Load(r io.Reader) (*Lexicon, error) {
	words := make(map[string][]Category)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: expected 3 tab-separated fields, got %d", lineNo, len(fields))
		}

		cat := Category(strings.ToLower(strings.TrimSpace(fields[1])))
		if !slices.Contains(Categories, cat) {
			return nil, fmt.Errorf("line %d: unknown category %q", lineNo, fields[1])
		}

		flag, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil || (flag != 0 && flag != 1) {
			return nil, fmt.Errorf("line %d: association must be 0 or 1, got %q", lineNo, fields[2])
		}
		if flag == 0 {
			continue
		}

		word := strings.ToLower(strings.TrimSpace(fields[0]))
		if !slices.Contains(words[word], cat) {
			words[word] = append(words[word], cat)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading lexicon: %w", err)
	}

	for w, cats := range words {
		slices.SortFunc(cats, func(a, b Category) int {
			return slices.Index(Categories, a) - slices.Index(Categories, b)
		})
		words[w] = cats
	}

	return &Lexicon{words: words}, nil
}

// Len returns the number of words with at least one association.
func (l *Lexicon) Len() int {
	return len(l.words)
}

// Lookup returns the categories for word, trying simple singular forms
// when the word itself is not listed.
func (l *Lexicon) Lookup(word string) []Category {
	word = strings.ToLower(word)
	if cats, ok := l.words[word]; ok {
		return cats
	}
	for _, alt := range singulars(word) {
		if cats, ok := l.words[alt]; ok {
			return cats
		}
	}
	return nil
}

// singulars returns candidate singular forms of an English plural.
func singulars(word string) []string {
	var out []string
	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 4:
		out = append(out, strings.TrimSuffix(word, "ies")+"y")
	case strings.HasSuffix(word, "es") && len(word) > 3:
		out = append(out, strings.TrimSuffix(word, "es"), strings.TrimSuffix(word, "s"))
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") && len(word) > 3:
		out = append(out, strings.TrimSuffix(word, "s"))
	}
	return out
}
