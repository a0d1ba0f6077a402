package web

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justestif/emotify/internal/analysis"
	"github.com/justestif/emotify/internal/emotion"
)

func TestBuildCharts(t *testing.T) {
	set := BuildCharts(helloReport())

	require.NotNil(t, set.Radar)
	assert.Equal(t, []string{"Negative", "Sadness", "Joy", "Anticipation"}, set.Radar.Labels, "radar keeps encounter order")
	assert.InDelta(t, 37.5, set.Radar.Max, 1e-9)

	require.NotNil(t, set.Ranked)
	assert.Equal(t, []string{"Anticipation", "Negative", "Sadness", "Joy"}, set.Ranked.Labels)
	assert.Equal(t, []string{"37.5%", "25.0%", "25.0%", "12.5%"}, set.Ranked.Texts)
	assert.Equal(t, palette[:4], set.Ranked.Colors)

	require.NotNil(t, set.Intensity)
	assert.Equal(t, []string{"Regret", "Hope"}, set.Intensity.Labels)
	assert.Equal(t, []float64{9, 3}, set.Intensity.Values)
	assert.Equal(t, []string{"9/10", "3/10"}, set.Intensity.Texts)
}

func TestBuildCharts_Empty(t *testing.T) {
	rep := helloReport()
	rep.Scores = emotion.Scores{}
	rep.Analysis.PrimaryEmotions = []analysis.PrimaryEmotion{}

	set := BuildCharts(rep)

	assert.Nil(t, set.Radar)
	assert.Nil(t, set.Ranked)
	assert.Nil(t, set.Intensity)
}

func TestChartSetJSON_EscapesMarkup(t *testing.T) {
	rep := helloReport()
	rep.Analysis.PrimaryEmotions = []analysis.PrimaryEmotion{{Emotion: "</script><b>", Intensity: 5}}

	js, err := BuildCharts(rep).JSON()
	require.NoError(t, err)

	assert.False(t, strings.Contains(string(js), "</script>"))

	var decoded ChartSet
	require.NoError(t, json.Unmarshal([]byte(js), &decoded))
	assert.Equal(t, "</script><b>", decoded.Intensity.Labels[0])
}
