package web

import (
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/justestif/emotify/internal/report"
)

// palette cycles through the ranked bar colors.
var palette = []string{
	"#667eea", "#764ba2", "#f093fb", "#4facfe", "#00f2fe",
	"#43e97b", "#fa709a", "#fee140", "#30cfd0", "#a8edea",
}

const intensityColor = "#764ba2"

// Chart is a single dataset in the shape charts.js expects.
type Chart struct {
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Texts  []string  `json:"texts"`
	Colors []string  `json:"colors"`
	Max    float64   `json:"max"`
}

// ChartSet holds every chart rendered for a report. Radar and Ranked are nil
// when the lexicon found nothing.
type ChartSet struct {
	Radar     *Chart `json:"radar,omitempty"`
	Ranked    *Chart `json:"ranked,omitempty"`
	Intensity *Chart `json:"intensity,omitempty"`
}

// BuildCharts converts a report into chart datasets.
func BuildCharts(r *report.Report) ChartSet {
	var set ChartSet

	if !r.Scores.Empty() {
		radar := &Chart{Title: "Emotion Distribution"}
		for _, s := range r.Scores.Shares {
			radar.Labels = append(radar.Labels, report.Capitalize(string(s.Category)))
			radar.Values = append(radar.Values, s.Percent)
			radar.Max = max(radar.Max, s.Percent)
		}
		set.Radar = radar

		ranked := &Chart{Title: "Emotion Intensity Rankings", Max: 100}
		for i, s := range r.Scores.Ranked() {
			ranked.Labels = append(ranked.Labels, report.Capitalize(string(s.Category)))
			ranked.Values = append(ranked.Values, s.Percent)
			ranked.Texts = append(ranked.Texts, fmt.Sprintf("%.1f%%", s.Percent))
			ranked.Colors = append(ranked.Colors, palette[i%len(palette)])
		}
		set.Ranked = ranked
	}

	if len(r.Analysis.PrimaryEmotions) > 0 {
		intensity := &Chart{Title: "AI Emotion Intensity Ratings", Max: 10}
		for _, e := range r.Analysis.PrimaryEmotions {
			intensity.Labels = append(intensity.Labels, e.Emotion)
			intensity.Values = append(intensity.Values, float64(e.Intensity))
			intensity.Texts = append(intensity.Texts, fmt.Sprintf("%d/10", e.Intensity))
			intensity.Colors = append(intensity.Colors, intensityColor)
		}
		set.Intensity = intensity
	}

	return set
}

// JSON encodes the set for a <script type="application/json"> block.
// json.Marshal escapes <, > and &, so the output cannot close the element.
func (c ChartSet) JSON() (template.JS, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encoding charts: %w", err)
	}
	return template.JS(b), nil //nolint:gosec // HTML-escaped by json.Marshal
}
