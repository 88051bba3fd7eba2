package generator

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// FrequencyEntry is a token with its relative weight.
type FrequencyEntry struct {
	Token  string
	Weight float64
}

// FrequencyTable is an immutable token to weight mapping. Entries keep the
// order in which their tokens were first encountered in the source.
type FrequencyTable struct {
	entries []FrequencyEntry
	index   map[string]int
	total   float64
	dropped int
}

// Len returns the number of distinct tokens.
func (self *FrequencyTable) Len() int {
	return len(self.entries)
}

// Entries returns a copy of the entries in encounter order.
func (self *FrequencyTable) Entries() []FrequencyEntry {
	ret := make([]FrequencyEntry, len(self.entries))
	copy(ret, self.entries)
	return ret
}

func (self *FrequencyTable) Weight(token string) (float64, bool) {
	i, ok := self.index[token]
	if !ok {
		return 0, false
	}
	return self.entries[i].Weight, true
}

func (self *FrequencyTable) Contains(token string) bool {
	_, ok := self.index[token]
	return ok
}

func (self *FrequencyTable) TotalWeight() float64 {
	return self.total
}

// DroppedRows returns how many source rows were rejected while the table was
// built.
func (self *FrequencyTable) DroppedRows() int {
	return self.dropped
}

// Expected returns the token to weight mapping as loaded.
func (self *FrequencyTable) Expected() map[string]float64 {
	ret := make(map[string]float64, len(self.entries))
	for _, e := range self.entries {
		ret[e.Token] = e.Weight
	}
	return ret
}

// Probability returns the normalized weight of token, or 0 if it is unknown.
func (self *FrequencyTable) Probability(token string) float64 {
	w, ok := self.Weight(token)
	if !ok {
		return 0
	}
	return w / self.total
}

// TableBuilder collects rows for a FrequencyTable. A later row for the same
// token overwrites the weight of the earlier one but keeps its position.
type TableBuilder struct {
	entries []FrequencyEntry
	index   map[string]int
	dropped int
}

func NewTableBuilder() *TableBuilder {
	return &TableBuilder{
		entries: make([]FrequencyEntry, 0),
		index:   make(map[string]int),
	}
}

// NormalizeToken lowercases and trims a raw token.
func NormalizeToken(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

// Add records a row. It returns ErrParseFailure when the token is empty or the
// weight is not a positive finite number; the row is then counted as dropped.
func (self *TableBuilder) Add(token string, weight float64) error {
	token = NormalizeToken(token)
	if len(token) == 0 {
		self.dropped++
		return errors.Wrap(ErrParseFailure, "empty token")
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight <= 0 {
		self.dropped++
		return errors.Wrapf(ErrParseFailure, "invalid weight %g for %q", weight, token)
	}
	if i, ok := self.index[token]; ok {
		self.entries[i].Weight = weight
		return nil
	}
	self.index[token] = len(self.entries)
	self.entries = append(self.entries, FrequencyEntry{
		Token:  token,
		Weight: weight,
	})
	return nil
}

// Drop counts a row that was rejected before it reached Add.
func (self *TableBuilder) Drop() {
	self.dropped++
}

func (self *TableBuilder) Dropped() int {
	return self.dropped
}

// Build freezes the collected rows. It fails with ErrInvalidState when no
// entries were collected or the total weight is not positive.
func (self *TableBuilder) Build() (*FrequencyTable, error) {
	if len(self.entries) == 0 {
		return nil, errors.Wrapf(ErrInvalidState,
			"no entries loaded (%d rows dropped)", self.dropped)
	}
	var total float64
	for _, e := range self.entries {
		total += e.Weight
	}
	if !(total > 0) || math.IsInf(total, 0) {
		return nil, errors.Wrapf(ErrInvalidState, "invalid weight sum %g", total)
	}
	entries := make([]FrequencyEntry, len(self.entries))
	copy(entries, self.entries)
	index := make(map[string]int, len(self.index))
	for k, v := range self.index {
		index[k] = v
	}
	return &FrequencyTable{
		entries: entries,
		index:   index,
		total:   total,
		dropped: self.dropped,
	}, nil
}

// NewFrequencyTable builds a table from in-memory entries.
func NewFrequencyTable(entries []FrequencyEntry) (*FrequencyTable, error) {
	b := NewTableBuilder()
	for _, e := range entries {
		b.Add(e.Token, e.Weight)
	}
	return b.Build()
}
