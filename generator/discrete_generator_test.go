package generator

import (
	"github.com/hhkbp2/testify/require"
	"testing"
)

type fixedRandom struct {
	values []float64
	i      int
}

func (self *fixedRandom) Float64() float64 {
	v := self.values[self.i%len(self.values)]
	self.i++
	return v
}

func mustTable(t *testing.T, entries ...FrequencyEntry) *FrequencyTable {
	table, err := NewFrequencyTable(entries)
	require.Nil(t, err)
	return table
}

func TestDiscreteGeneratorOrdering(t *testing.T) {
	table := mustTable(t,
		FrequencyEntry{"c", 0.2},
		FrequencyEntry{"a", 0.5},
		FrequencyEntry{"d", 0.2},
		FrequencyEntry{"b", 0.1})
	g, err := NewDiscreteGenerator(table, NewRandom(1))
	require.Nil(t, err)
	// ties keep the table order
	require.Equal(t, []string{"a", "c", "d", "b"}, g.Tokens())
	cumulative := g.Cumulative()
	require.Equal(t, 4, len(cumulative))
	require.InDelta(t, 0.5, cumulative[0], 1e-12)
	require.InDelta(t, 0.7, cumulative[1], 1e-12)
	require.InDelta(t, 0.9, cumulative[2], 1e-12)
	require.Equal(t, 1.0, cumulative[3])
}

func TestDiscreteGeneratorCumulativeInvariant(t *testing.T) {
	r := NewRandom(42)
	for n := 1; n < 200; n += 7 {
		entries := make([]FrequencyEntry, 0, n)
		for i := 0; i < n; i++ {
			entries = append(entries, FrequencyEntry{
				Token:  string(rune('a'+i%26)) + string(rune('a'+i/26)),
				Weight: r.Float64()*100 + 1e-9,
			})
		}
		g, err := NewDiscreteGenerator(mustTable(t, entries...), r)
		require.Nil(t, err)
		cumulative := g.Cumulative()
		for i := 1; i < len(cumulative); i++ {
			require.True(t, cumulative[i] >= cumulative[i-1])
		}
		require.InDelta(t, 1.0, cumulative[len(cumulative)-1], 1e-9)
	}
}

func TestDiscreteGeneratorSearch(t *testing.T) {
	table := mustTable(t,
		FrequencyEntry{"a", 1},
		FrequencyEntry{"b", 1},
		FrequencyEntry{"c", 2})
	g, err := NewDiscreteGenerator(table, NewRandom(1))
	require.Nil(t, err)
	require.Equal(t, []string{"c", "a", "b"}, g.Tokens())
	require.Equal(t, 0, g.Search(0))
	require.Equal(t, 0, g.Search(0.5))
	require.Equal(t, 1, g.Search(0.5000001))
	require.Equal(t, 1, g.Search(0.75))
	require.Equal(t, 2, g.Search(0.99))
	// above every partial sum, falls back to the last entry
	require.Equal(t, 2, g.Search(1.5))
}

func TestDiscreteGeneratorUsesInjectedSource(t *testing.T) {
	table := mustTable(t,
		FrequencyEntry{"x", 3},
		FrequencyEntry{"y", 1})
	random := &fixedRandom{values: []float64{0.1, 0.9, 0.74, 0.76}}
	var g Generator
	dg, err := NewDiscreteGenerator(table, random)
	require.Nil(t, err)
	g = dg
	expected := []string{"x", "y", "x", "y"}
	for _, e := range expected {
		require.Equal(t, e, g.NextString())
		require.Equal(t, e, g.LastString())
	}
}

func TestDiscreteGeneratorSeedIsReproducible(t *testing.T) {
	table := mustTable(t,
		FrequencyEntry{"x", 3},
		FrequencyEntry{"y", 2},
		FrequencyEntry{"z", 1})
	g1, err := NewDiscreteGenerator(table, NewRandom(7))
	require.Nil(t, err)
	g2, err := NewDiscreteGenerator(table, NewRandom(7))
	require.Nil(t, err)
	for i := 0; i < 100; i++ {
		require.Equal(t, g1.NextString(), g2.NextString())
	}
}

func TestDiscreteGeneratorInvalidInput(t *testing.T) {
	_, err := NewDiscreteGenerator(nil, NewRandom(1))
	require.True(t, IsInvalidState(err))
	table := mustTable(t, FrequencyEntry{"x", 1})
	_, err = NewDiscreteGenerator(table, nil)
	require.True(t, IsInvalidArgument(err))
}

func TestDiscreteGeneratorConvergence(t *testing.T) {
	table := mustTable(t,
		FrequencyEntry{"a", 40},
		FrequencyEntry{"b", 25},
		FrequencyEntry{"c", 20},
		FrequencyEntry{"d", 10},
		FrequencyEntry{"e", 4},
		FrequencyEntry{"f", 1})
	g, err := NewDiscreteGenerator(table, NewRandom(2024))
	require.Nil(t, err)
	total := 100000
	counts := make(map[string]int)
	for i := 0; i < total; i++ {
		counts[g.NextString()]++
	}
	for _, e := range table.Entries() {
		actual := float64(counts[e.Token]) / float64(total) * 100
		expected := table.Probability(e.Token) * 100
		require.InDelta(t, expected, actual, 2.0)
	}
}

func TestDiscreteGeneratorSubnormalWeights(t *testing.T) {
	table := mustTable(t,
		FrequencyEntry{"a", 3e-310},
		FrequencyEntry{"b", 1e-310})
	g, err := NewDiscreteGenerator(table, &fixedRandom{values: []float64{0.5, 0.8}})
	require.Nil(t, err)
	cumulative := g.Cumulative()
	require.InDelta(t, 0.75, cumulative[0], 1e-9)
	require.Equal(t, 1.0, cumulative[1])
	require.Equal(t, "a", g.NextString())
	require.Equal(t, "b", g.NextString())

	g, err = NewDiscreteGenerator(table, NewRandom(11))
	require.Nil(t, err)
	counts := make(map[string]int)
	for i := 0; i < 10000; i++ {
		counts[g.NextString()]++
	}
	require.InDelta(t, 2500, counts["b"], 300)
}
