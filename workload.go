package freqgen

import (
	"fmt"
	"strings"

	"github.com/hhkbp2/freqgen/generator"
	"github.com/pkg/errors"
)

type workloadPreset struct {
	name          string
	title         string
	countProperty string
	countDefault  string
}

var (
	workloadPresets = map[generator.Mode]workloadPreset{
		generator.ModeBigram: {
			name:          "gen-1",
			title:         "Bigram Frequency Distribution",
			countProperty: PropertyBigramCount,
			countDefault:  PropertyBigramCountDefault,
		},
		generator.ModeWord: {
			name:          "gen-2",
			title:         "Word Frequency Distribution",
			countProperty: PropertyWordCount,
			countDefault:  PropertyWordCountDefault,
		},
	}
)

// Workload is one generation scenario: which unit to sample, how many
// draws, and under which name its artifacts are written.
type Workload struct {
	Name  string
	Title string
	Mode  generator.Mode
	Count int
}

func NewWorkload(mode generator.Mode, p Properties) (*Workload, error) {
	preset, ok := workloadPresets[mode]
	if !ok {
		return nil, errors.Wrapf(generator.ErrInvalidArgument, "no workload for mode %s", mode)
	}
	count, err := p.GetInt(preset.countProperty, preset.countDefault)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, errors.Wrapf(generator.ErrInvalidArgument, "%s must be positive, got %d", preset.countProperty, count)
	}
	return &Workload{
		Name:  preset.name,
		Title: preset.title,
		Mode:  mode,
		Count: int(count),
	}, nil
}

// NewWorkloads returns the workloads listed in the modes property, in order.
func NewWorkloads(p Properties) ([]*Workload, error) {
	propStr := p.GetDefault(PropertyModes, PropertyModesDefault)
	ret := make([]*Workload, 0, 2)
	seen := make(map[generator.Mode]bool)
	for _, s := range strings.Split(propStr, ",") {
		s = strings.ToLower(strings.TrimSpace(s))
		if len(s) == 0 {
			continue
		}
		mode, err := generator.ParseMode(s)
		if err != nil {
			return nil, errors.Wrapf(err, "property %s", PropertyModes)
		}
		if seen[mode] {
			continue
		}
		seen[mode] = true
		w, err := NewWorkload(mode, p)
		if err != nil {
			return nil, err
		}
		ret = append(ret, w)
	}
	if len(ret) == 0 {
		return nil, errors.Wrapf(generator.ErrInvalidArgument, "no modes in %s=%q", PropertyModes, propStr)
	}
	return ret, nil
}

func (self *Workload) TextFile() string {
	return self.Name + ".txt"
}

func (self *Workload) ChartFile() string {
	return self.Name + ".png"
}

func (self *Workload) CumulativeChartFile() string {
	return self.Name + "-cdf.png"
}

func (self *Workload) ReportFile() string {
	return self.Name + ".csv"
}

// Operation returns the measurement name of op for this workload.
func (self *Workload) Operation(op string) string {
	return fmt.Sprintf("%s-%s", op, self.Mode)
}
