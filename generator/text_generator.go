package generator

import (
	"strings"

	"github.com/pkg/errors"
)

// GeneratedText is the ordered result of one Generate call.
type GeneratedText struct {
	Tokens    []string
	Separator string
}

// Len returns the number of sampled units.
func (self *GeneratedText) Len() int {
	return len(self.Tokens)
}

func (self *GeneratedText) String() string {
	if len(self.Tokens) == 0 {
		return ""
	}
	size := len(self.Separator) * (len(self.Tokens) - 1)
	for _, t := range self.Tokens {
		size += len(t)
	}
	var b strings.Builder
	b.Grow(size)
	for i, t := range self.Tokens {
		if i > 0 {
			b.WriteString(self.Separator)
		}
		b.WriteString(t)
	}
	return b.String()
}

// DrawObserver is notified of the rank of every drawn token.
type DrawObserver interface {
	ObserveDraw(rank int)
}

// TextGenerator assembles text from independent weighted draws. Bigram
// tokens are concatenated; words are joined by a single space.
type TextGenerator struct {
	sampler  *DiscreteGenerator
	mode     Mode
	observer DrawObserver
}

func NewTextGenerator(sampler *DiscreteGenerator, mode Mode) *TextGenerator {
	return &TextGenerator{
		sampler: sampler,
		mode:    mode,
	}
}

func (self *TextGenerator) SetObserver(o DrawObserver) {
	self.observer = o
}

func (self *TextGenerator) Mode() Mode {
	return self.mode
}

// Generate draws exactly count tokens.
func (self *TextGenerator) Generate(count int) (*GeneratedText, error) {
	if count <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "count must be positive, got %d", count)
	}
	if self.sampler == nil || self.sampler.Len() == 0 {
		return nil, errors.Wrap(ErrInvalidState, "generator not initialized")
	}
	tokens := make([]string, count)
	for i := 0; i < count; i++ {
		rank := self.sampler.Next()
		tokens[i] = self.sampler.tokens[rank]
		if self.observer != nil {
			self.observer.ObserveDraw(rank)
		}
	}
	return &GeneratedText{
		Tokens:    tokens,
		Separator: self.mode.Separator(),
	}, nil
}

// GenerateText is Generate followed by assembly into a single string.
func (self *TextGenerator) GenerateText(count int) (string, error) {
	text, err := self.Generate(count)
	if err != nil {
		return "", err
	}
	return text.String(), nil
}
