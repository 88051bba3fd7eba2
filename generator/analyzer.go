package generator

import (
	"sort"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// EmpiricalDistribution maps a token to its share of a text in percent.
type EmpiricalDistribution map[string]float64

// FrequencyAnalysis holds the occurrence counts measured in one text.
type FrequencyAnalysis struct {
	Mode   Mode
	Counts map[string]int
	Total  int
}

// Analyze counts the units of text. Bigram mode counts every overlapping pair
// of lowercased characters; word mode counts whitespace separated words.
func Analyze(text string, mode Mode) (*FrequencyAnalysis, error) {
	if len(text) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "text cannot be empty")
	}
	counts := make(map[string]int)
	total := 0
	switch mode {
	case ModeBigram:
		runes := []rune(text)
		for i := range runes {
			runes[i] = unicode.ToLower(runes[i])
		}
		for i := 0; i+1 < len(runes); i++ {
			counts[string(runes[i:i+2])]++
			total++
		}
	case ModeWord:
		for _, w := range strings.Fields(text) {
			counts[w]++
			total++
		}
	default:
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown mode %d", mode)
	}
	return &FrequencyAnalysis{
		Mode:   mode,
		Counts: counts,
		Total:  total,
	}, nil
}

// Percentages returns count/total*100 for every observed token.
func (self *FrequencyAnalysis) Percentages() EmpiricalDistribution {
	ret := make(EmpiricalDistribution, len(self.Counts))
	if self.Total == 0 {
		return ret
	}
	total := float64(self.Total)
	for k, v := range self.Counts {
		ret[k] = float64(v) / total * 100
	}
	return ret
}

func (self *FrequencyAnalysis) Percentage(token string) float64 {
	if self.Total == 0 {
		return 0
	}
	return float64(self.Counts[token]) / float64(self.Total) * 100
}

// Tokens returns the observed tokens, most frequent first.
func (self *FrequencyAnalysis) Tokens() []string {
	ret := make([]string, 0, len(self.Counts))
	for k := range self.Counts {
		ret = append(ret, k)
	}
	sort.Slice(ret, func(i, j int) bool {
		ci, cj := self.Counts[ret[i]], self.Counts[ret[j]]
		if ci != cj {
			return ci > cj
		}
		return ret[i] < ret[j]
	})
	return ret
}

// AnalyzeText is Analyze returning only the percentages.
func AnalyzeText(text string, mode Mode) (EmpiricalDistribution, error) {
	a, err := Analyze(text, mode)
	if err != nil {
		return nil, err
	}
	return a.Percentages(), nil
}
