package generator

import (
	"github.com/pkg/errors"
)

// Generator is a source of string values drawn from some distribution.
type Generator interface {
	// NextString generates the next value.
	NextString() string
	// LastString returns the previous value generated by the distribution,
	// e.g. the value returned by the last NextString() call.
	// Calling LastString() should not advance the distribution or have any
	// side effects. If NextString() has not yet been called, LastString()
	// should return something reasonable.
	LastString() string
}

// Mode selects the sampling unit of a table: character bigrams or words.
type Mode uint8

const (
	ModeBigram Mode = 1 + iota
	ModeWord
)

func (self Mode) String() string {
	switch self {
	case ModeBigram:
		return "bigram"
	case ModeWord:
		return "word"
	default:
		return "UNKNOWN_MODE"
	}
}

// Separator is the string placed between generated tokens.
func (self Mode) Separator() string {
	if self == ModeWord {
		return " "
	}
	return ""
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "bigram", "bigrams":
		return ModeBigram, nil
	case "word", "words":
		return ModeWord, nil
	default:
		return 0, errors.Wrapf(ErrInvalidArgument, "unknown mode %q", s)
	}
}
