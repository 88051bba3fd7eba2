package chart

import (
	"github.com/hhkbp2/freqgen/generator"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	gochart "github.com/wcharczuk/go-chart"
)

// NewCumulativeChart plots the cumulative distribution against token rank.
// The curve starts at (0, 0).
func NewCumulativeChart(cumulative []float64, title string) (*gochart.Chart, error) {
	if cumulative == nil {
		return nil, errors.Wrap(generator.ErrInvalidArgument, "nil cumulative distribution")
	}
	if len(cumulative) == 0 {
		return nil, errors.Wrap(generator.ErrInvalidState, "no data to plot")
	}
	xs := make([]float64, len(cumulative)+1)
	ys := make([]float64, len(cumulative)+1)
	for i, v := range cumulative {
		xs[i+1] = float64(i + 1)
		ys[i+1] = v
	}
	graph := &gochart.Chart{
		Title:      title,
		TitleStyle: gochart.StyleShow(),
		XAxis: gochart.XAxis{
			Name:      "Rank",
			NameStyle: gochart.StyleShow(),
			Style:     gochart.StyleShow(),
		},
		YAxis: gochart.YAxis{
			Name:      "Cumulative probability",
			NameStyle: gochart.StyleShow(),
			Style:     gochart.StyleShow(),
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    "cumulative",
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					Show:        true,
					StrokeColor: gochart.ColorBlue,
				},
			},
		},
	}
	graph.Elements = []gochart.Renderable{
		gochart.Legend(graph),
	}
	return graph, nil
}

// CreateCumulativePlot writes the cumulative chart as a PNG file on fs.
func CreateCumulativePlot(fs afero.Fs, cumulative []float64, title string, fileName string) error {
	graph, err := NewCumulativeChart(cumulative, title)
	if err != nil {
		return err
	}
	f, err := fs.Create(fileName)
	if err != nil {
		return errors.Wrapf(err, "create %s", fileName)
	}
	if err = graph.Render(gochart.PNG, f); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", fileName)
	}
	return f.Close()
}
