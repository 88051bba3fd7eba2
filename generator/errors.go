package generator

import (
	"github.com/pkg/errors"
)

var (
	ErrFileNotFound    = errors.New("The frequency table file does not exist.")
	ErrInvalidState    = errors.New("The operation is not valid in the current state.")
	ErrInvalidArgument = errors.New("The argument is not valid.")
	// ErrParseFailure is row-local. Loaders recover from it by dropping the row.
	ErrParseFailure = errors.New("The row could not be parsed.")
)

func NewErrorf(format string, args ...interface{}) error {
	return errors.Errorf(format, args...)
}

// IsFileNotFound reports whether err was caused by a missing table file.
func IsFileNotFound(err error) bool {
	return errors.Cause(err) == ErrFileNotFound
}

// IsInvalidState reports whether err was caused by an empty or uninitialized
// table, sampler or chart series.
func IsInvalidState(err error) bool {
	return errors.Cause(err) == ErrInvalidState
}

// IsInvalidArgument reports whether err was caused by a bad argument.
func IsInvalidArgument(err error) bool {
	return errors.Cause(err) == ErrInvalidArgument
}
