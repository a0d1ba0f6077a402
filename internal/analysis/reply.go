package analysis

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
)

// ParseReply extracts the analysis object from a model reply.
//
// The span from the first '{' to the last '}' is parsed when present, so
// prose and code fences around the object are ignored. Otherwise the whole
// trimmed reply is parsed. Missing or wrongly typed fields get defaults.
func ParseReply(reply string) (EmotionAnalysis, error) {
	text := strings.TrimSpace(reply)
	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			text = text[start : end+1]
		}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return EmotionAnalysis{}, &MalformedResponseError{Raw: reply, Err: err}
	}
	if fields == nil {
		return EmotionAnalysis{}, &MalformedResponseError{Raw: reply, Err: errors.New("reply is not a JSON object")}
	}

	return EmotionAnalysis{
		OverallTone:       stringField(fields, "overall_tone"),
		PrimaryEmotions:   primaryEmotions(fields["primary_emotions"]),
		Mood:              stringField(fields, "mood"),
		Themes:            stringField(fields, "themes"),
		EmotionalKeywords: stringList(fields["emotional_keywords"]),
		TempoEnergy:       stringField(fields, "tempo_energy"),
		Valence:           stringField(fields, "valence"),
		LyricalThemes:     stringList(fields["lyrical_themes"]),
		EmotionalArc:      stringField(fields, "emotional_arc"),
		MusicalElements:   stringField(fields, "musical_elements"),
	}, nil
}

// stringField returns fields[key] as a string, or NotAvailable.
func stringField(fields map[string]json.RawMessage, key string) string {
	return stringOr(fields[key], NotAvailable)
}

func stringOr(raw json.RawMessage, fallback string) string {
	if absent(raw) {
		return fallback
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fallback
	}
	return s
}

// stringList keeps the string elements of a JSON array. Anything else
// yields an empty, non-nil slice.
func stringList(raw json.RawMessage) []string {
	out := []string{}
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return out
	}
	for _, item := range items {
		var s string
		if json.Unmarshal(item, &s) == nil {
			out = append(out, s)
		}
	}
	return out
}

func primaryEmotions(raw json.RawMessage) []PrimaryEmotion {
	out := []PrimaryEmotion{}
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return out
	}
	for _, item := range items {
		var fields map[string]json.RawMessage
		if json.Unmarshal(item, &fields) != nil || fields == nil {
			continue
		}
		out = append(out, PrimaryEmotion{
			Emotion:     stringOr(fields["emotion"], UnknownEmotion),
			Intensity:   intensity(fields["intensity"]),
			Description: stringOr(fields["description"], NoDescription),
		})
	}
	return out
}

// intensity reads a numeric intensity, rounding and clamping it to
// 0..MaxIntensity. Absent or non-numeric values give DefaultIntensity.
func intensity(raw json.RawMessage) int {
	if absent(raw) {
		return DefaultIntensity
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return DefaultIntensity
	}
	return int(math.Round(math.Max(0, math.Min(f, MaxIntensity))))
}

// absent reports whether a field was missing or explicitly null.
func absent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
