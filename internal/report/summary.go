package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/justestif/emotify/internal/analysis"
)

const topEmotionCount = 3

// FormatSummary returns the key takeaways of a report as plain text:
// mood, valence, energy and the top lexicon emotions.
func FormatSummary(r *Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Key takeaways for %s\n", songLabel(r))
	fmt.Fprintf(&sb, "Primary mood: %s\n", r.Analysis.Mood)
	fmt.Fprintf(&sb, "Emotional valence: %s\n", Capitalize(r.Analysis.Valence))
	fmt.Fprintf(&sb, "Energy level: %s\n", Capitalize(r.Analysis.TempoEnergy))

	if r.Scores.Empty() {
		sb.WriteString("No lexicon emotions detected\n")
		return sb.String()
	}

	sb.WriteString("Top emotions:\n")
	for i, share := range r.Scores.Top(topEmotionCount) {
		fmt.Fprintf(&sb, "  %s %s %.1f%%\n", humanize.Ordinal(i+1), Capitalize(string(share.Category)), share.Percent)
	}

	fmt.Fprintf(&sb, "Words analyzed: %s (%s recognized)\n",
		humanize.Comma(int64(r.Scores.Tokens)), humanize.Comma(int64(r.Scores.Recognized)))

	return sb.String()
}

// Capitalize upper-cases the first letter and lower-cases the rest, so
// "MIXED emotions" becomes "Mixed emotions". The N/A placeholder is
// returned unchanged.
func Capitalize(s string) string {
	if s == "" || s == analysis.NotAvailable {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.English).String(s[:size]) + cases.Lower(language.English).String(s[size:])
}

func songLabel(r *Report) string {
	if r.Song.FullTitle != "" {
		return r.Song.FullTitle
	}
	return fmt.Sprintf("%q by %s", r.Query.Title, r.Query.Artist)
}
