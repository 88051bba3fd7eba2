package generator

import (
	"github.com/hhkbp2/testify/require"
	"testing"
)

func TestAnalyzeEmptyText(t *testing.T) {
	_, err := Analyze("", ModeBigram)
	require.True(t, IsInvalidArgument(err))
	_, err = Analyze("", ModeWord)
	require.True(t, IsInvalidArgument(err))
}

func TestAnalyzeBigrams(t *testing.T) {
	a, err := Analyze("aabb", ModeBigram)
	require.Nil(t, err)
	require.Equal(t, 3, a.Total)
	require.Equal(t, map[string]int{"aa": 1, "ab": 1, "bb": 1}, a.Counts)
	p := a.Percentages()
	require.Equal(t, 3, len(p))
	for _, v := range p {
		require.InDelta(t, 33.333, v, 0.001)
	}
}

func TestAnalyzeBigramsLowercaseRunes(t *testing.T) {
	a, err := Analyze("ДаДа", ModeBigram)
	require.Nil(t, err)
	require.Equal(t, map[string]int{"да": 2, "ад": 1}, a.Counts)
	require.InDelta(t, 66.667, a.Percentage("да"), 0.001)
	require.Equal(t, []string{"да", "ад"}, a.Tokens())
}

func TestAnalyzeSingleRune(t *testing.T) {
	a, err := Analyze("я", ModeBigram)
	require.Nil(t, err)
	require.Equal(t, 0, a.Total)
	require.Equal(t, 0, len(a.Percentages()))
}

func TestAnalyzeWords(t *testing.T) {
	p, err := AnalyzeText("или  и там\tили\n", ModeWord)
	require.Nil(t, err)
	require.Equal(t, 3, len(p))
	require.InDelta(t, 50.0, p["или"], 1e-9)
	require.InDelta(t, 25.0, p["и"], 1e-9)
	require.InDelta(t, 25.0, p["там"], 1e-9)
}

func TestAnalyzeGeneratedTextSumsToHundred(t *testing.T) {
	g := newTextGenerator(t, ModeWord, 11,
		FrequencyEntry{"a", 5},
		FrequencyEntry{"b", 3},
		FrequencyEntry{"c", 2})
	text, err := g.GenerateText(5000)
	require.Nil(t, err)
	p, err := AnalyzeText(text, ModeWord)
	require.Nil(t, err)
	var sum float64
	for _, v := range p {
		sum += v
	}
	require.InDelta(t, 100.0, sum, 1e-9)
}
