package chart

import (
	"bytes"
	"fmt"
	"github.com/hhkbp2/freqgen/generator"
	"github.com/hhkbp2/testify/require"
	"github.com/spf13/afero"
	"testing"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestTopSeriesEmpty(t *testing.T) {
	_, err := TopSeries(map[string]float64{}, map[string]int{}, TopTokens)
	require.True(t, generator.IsInvalidState(err))
	_, err = TopSeries(map[string]float64{"a": 1}, map[string]int{}, TopTokens)
	require.True(t, generator.IsInvalidState(err))
	_, err = TopSeries(nil, map[string]int{"a": 1}, TopTokens)
	require.True(t, generator.IsInvalidArgument(err))
	_, err = TopSeries(map[string]float64{"a": 1}, nil, TopTokens)
	require.True(t, generator.IsInvalidArgument(err))
}

func TestTopSeriesSelectsAndScales(t *testing.T) {
	expected := make(map[string]float64)
	actual := make(map[string]int)
	for i := 0; i < 60; i++ {
		token := fmt.Sprintf("t%02d", i)
		expected[token] = float64(60 - i)
		actual[token] = 2 * (60 - i)
	}
	s, err := TopSeries(expected, actual, TopTokens)
	require.Nil(t, err)
	require.Equal(t, TopTokens, s.Len())
	require.Equal(t, "t00", s.Labels[0])
	require.Equal(t, "t39", s.Labels[TopTokens-1])
	require.Equal(t, 60.0, s.Expected[0])
	// the actual maximum is scaled onto the expected maximum
	require.InDelta(t, 60.0, s.Actual[0], 1e-9)
	require.InDelta(t, 21.0, s.Actual[TopTokens-1], 1e-9)
}

func TestTopSeriesMissingActual(t *testing.T) {
	s, err := TopSeries(
		map[string]float64{"a": 0.5, "b": 0.3, "c": 0.2},
		map[string]int{"zz": 10},
		TopTokens)
	require.Nil(t, err)
	require.Equal(t, []string{"a", "b", "c"}, s.Labels)
	require.Equal(t, []float64{0, 0, 0}, s.Actual)
}

func TestCreateFrequencyPlot(t *testing.T) {
	fs := afero.NewMemMapFs()
	expected := map[string]float64{"аа": 0.5, "аб": 0.3, "ав": 0.2}
	actual := map[string]int{"аа": 50, "аб": 30, "ав": 20}
	err := CreateFrequencyPlot(fs, expected, actual, "Тестовый график", "test_plot.png")
	require.Nil(t, err)
	b, err := afero.ReadFile(fs, "test_plot.png")
	require.Nil(t, err)
	require.True(t, bytes.HasPrefix(b, pngMagic))
}

func TestCreateFrequencyPlotEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	err := CreateFrequencyPlot(fs, map[string]float64{}, map[string]int{}, "Тестовый график", "test_plot.png")
	require.True(t, generator.IsInvalidState(err))
	exists, err := afero.Exists(fs, "test_plot.png")
	require.Nil(t, err)
	require.False(t, exists)
}

func TestCreateCumulativePlot(t *testing.T) {
	fs := afero.NewMemMapFs()
	err := CreateCumulativePlot(fs, []float64{0.5, 0.8, 1.0}, "cumulative", "cdf.png")
	require.Nil(t, err)
	b, err := afero.ReadFile(fs, "cdf.png")
	require.Nil(t, err)
	require.True(t, bytes.HasPrefix(b, pngMagic))

	err = CreateCumulativePlot(fs, []float64{}, "cumulative", "empty.png")
	require.True(t, generator.IsInvalidState(err))
	err = CreateCumulativePlot(fs, nil, "cumulative", "nil.png")
	require.True(t, generator.IsInvalidArgument(err))
}
