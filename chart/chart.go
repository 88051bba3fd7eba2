// Package chart renders expected vs. generated frequency comparisons.
package chart

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hhkbp2/freqgen/generator"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	// Number of tokens shown on a comparison chart.
	TopTokens = 40

	ExpectedLabel = "Expected"
	ActualLabel   = "Actual"
)

var (
	Width  = 30 * vg.Inch
	Height = 6 * vg.Inch

	ExpectedColor = color.RGBA{R: 0x1f, G: 0x4e, B: 0xd8, A: 0xff}
	ActualColor   = color.RGBA{R: 0xd8, G: 0x2c, B: 0x1f, A: 0xff}
)

// Series is the data of a comparison chart, one element per token.
type Series struct {
	Labels   []string
	Expected []float64
	Actual   []float64
}

func (self *Series) Len() int {
	return len(self.Labels)
}

// TopSeries selects the n tokens with the highest expected weight and scales
// the actual counts so their maximum equals the expected maximum.
func TopSeries(expected map[string]float64, actual map[string]int, n int) (*Series, error) {
	if expected == nil || actual == nil {
		return nil, errors.Wrap(generator.ErrInvalidArgument, "input series cannot be nil")
	}
	if len(expected) == 0 || len(actual) == 0 {
		return nil, errors.Wrap(generator.ErrInvalidState, "no data to plot")
	}
	tokens := make([]string, 0, len(expected))
	for k := range expected {
		tokens = append(tokens, k)
	}
	sort.Slice(tokens, func(i, j int) bool {
		wi, wj := expected[tokens[i]], expected[tokens[j]]
		if wi != wj {
			return wi > wj
		}
		return tokens[i] < tokens[j]
	})
	if n > 0 && len(tokens) > n {
		tokens = tokens[:n]
	}
	s := &Series{
		Labels:   tokens,
		Expected: make([]float64, len(tokens)),
		Actual:   make([]float64, len(tokens)),
	}
	var maxExpected, maxActual float64
	for i, t := range tokens {
		s.Expected[i] = expected[t]
		s.Actual[i] = float64(actual[t])
		if s.Expected[i] > maxExpected {
			maxExpected = s.Expected[i]
		}
		if s.Actual[i] > maxActual {
			maxActual = s.Actual[i]
		}
	}
	if maxActual > 0 {
		scale := maxExpected / maxActual
		for i := range s.Actual {
			s.Actual[i] *= scale
		}
	}
	return s, nil
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.3g", v)
}

// NewComparisonPlot lays out the two bar series of s side by side, each bar
// labelled with its value.
func NewComparisonPlot(s *Series, title string) (*plot.Plot, error) {
	if s == nil {
		return nil, errors.Wrap(generator.ErrInvalidArgument, "nil series")
	}
	if s.Len() == 0 {
		return nil, errors.Wrap(generator.ErrInvalidState, "no data to plot")
	}
	p, err := plot.New()
	if err != nil {
		return nil, err
	}
	p.Title.Text = title
	p.X.Label.Text = "Elements"
	p.Y.Label.Text = "Frequency"

	// Bars and labels share a group of one data unit per token.
	group := Width * 0.9 / vg.Length(s.Len()+1)
	barWidth := group * 0.35
	expectedBars, err := plotter.NewBarChart(plotter.Values(s.Expected), barWidth)
	if err != nil {
		return nil, err
	}
	expectedBars.LineStyle.Width = vg.Length(0)
	expectedBars.Color = ExpectedColor
	expectedBars.Offset = -barWidth / 2
	actualBars, err := plotter.NewBarChart(plotter.Values(s.Actual), barWidth)
	if err != nil {
		return nil, err
	}
	actualBars.LineStyle.Width = vg.Length(0)
	actualBars.Color = ActualColor
	actualBars.Offset = barWidth / 2

	xys := make(plotter.XYs, 0, 2*s.Len())
	texts := make([]string, 0, 2*s.Len())
	for i := 0; i < s.Len(); i++ {
		xys = append(xys, plotter.XY{X: float64(i) - 0.35, Y: s.Expected[i]})
		texts = append(texts, formatValue(s.Expected[i]))
		xys = append(xys, plotter.XY{X: float64(i), Y: s.Actual[i]})
		texts = append(texts, formatValue(s.Actual[i]))
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}

	p.Add(expectedBars, actualBars, labels)
	p.Legend.Add(ExpectedLabel, expectedBars)
	p.Legend.Add(ActualLabel, actualBars)
	p.Legend.Top = true
	p.NominalX(s.Labels...)
	return p, nil
}

// CreateFrequencyPlot renders the comparison of expected weights and actual
// counts as a PNG file on fs.
func CreateFrequencyPlot(fs afero.Fs, expected map[string]float64, actual map[string]int,
	title string, fileName string) error {

	s, err := TopSeries(expected, actual, TopTokens)
	if err != nil {
		return err
	}
	p, err := NewComparisonPlot(s, title)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(Width, Height, "png")
	if err != nil {
		return errors.Wrap(err, "render frequency plot")
	}
	f, err := fs.Create(fileName)
	if err != nil {
		return errors.Wrapf(err, "create %s", fileName)
	}
	if _, err = wt.WriteTo(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", fileName)
	}
	return f.Close()
}
