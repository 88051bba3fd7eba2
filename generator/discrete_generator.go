package generator

import (
	"sort"

	"github.com/pkg/errors"
)

// DiscreteGenerator draws tokens of a FrequencyTable with probability
// proportional to their weight.
//
// Tokens are ordered by descending weight, ties keeping the table order, and
// a cumulative distribution over that order is searched with a single
// uniform draw. The cumulative slice is built once and never changes, but
// the random source advances on every draw, so a DiscreteGenerator must not
// be used from several goroutines at once. Build one per goroutine instead.
type DiscreteGenerator struct {
	tokens     []string
	cumulative []float64
	random     RandomSource
	lastIndex  int
}

func NewDiscreteGenerator(table *FrequencyTable, random RandomSource) (*DiscreteGenerator, error) {
	if table == nil || table.Len() == 0 {
		return nil, errors.Wrap(ErrInvalidState, "empty frequency table")
	}
	if random == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil random source")
	}
	entries := table.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Weight > entries[j].Weight
	})
	tokens := make([]string, len(entries))
	weights := make([]float64, len(entries))
	for i, e := range entries {
		tokens[i] = e.Token
		weights[i] = e.Weight
	}
	return &DiscreteGenerator{
		tokens:     tokens,
		cumulative: cdf(weights),
		random:     random,
		lastIndex:  -1,
	}, nil
}

// cdf turns weights into partial sums of the normalized weights. The last
// value is pinned to 1 so rounding never leaves a gap at the top.
func cdf(weights []float64) []float64 {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	ret := make([]float64, len(weights))
	x := 0.0
	for i, w := range weights {
		// 1/sum overflows for subnormal sums, w/sum does not
		x += w / sum
		if x > 1.0 {
			x = 1.0
		}
		ret[i] = x
	}
	if len(ret) > 0 {
		ret[len(ret)-1] = 1.0
	}
	return ret
}

// Search returns the first index whose cumulative probability is >= r, or
// the last index when rounding leaves no such index.
func (self *DiscreteGenerator) Search(r float64) int {
	i := sort.SearchFloat64s(self.cumulative, r)
	if i >= len(self.cumulative) {
		i = len(self.cumulative) - 1
	}
	return i
}

// Next draws one entry and returns its rank in the descending-weight order.
func (self *DiscreteGenerator) Next() int {
	i := self.Search(self.random.Float64())
	self.lastIndex = i
	return i
}

func (self *DiscreteGenerator) NextString() string {
	return self.tokens[self.Next()]
}

func (self *DiscreteGenerator) LastString() string {
	if self.lastIndex < 0 {
		return self.NextString()
	}
	return self.tokens[self.lastIndex]
}

// Len returns the number of drawable tokens. It is 0 for a zero value
// DiscreteGenerator.
func (self *DiscreteGenerator) Len() int {
	return len(self.tokens)
}

// Tokens returns the tokens in sampling order.
func (self *DiscreteGenerator) Tokens() []string {
	ret := make([]string, len(self.tokens))
	copy(ret, self.tokens)
	return ret
}

// Cumulative returns the cumulative distribution aligned with Tokens.
func (self *DiscreteGenerator) Cumulative() []float64 {
	ret := make([]float64, len(self.cumulative))
	copy(ret, self.cumulative)
	return ret
}
