package generator

import (
	"math/rand"
	"time"
)

// RandomSource yields uniform values in [0, 1). *rand.Rand satisfies it.
//
// A RandomSource is mutated on every call, so it must not be shared by
// goroutines drawing concurrently.
type RandomSource interface {
	Float64() float64
}

// NewRandom returns a generator seeded with seed. Equal seeds give equal
// streams.
func NewRandom(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NewTimeSeed derives a seed from the wall clock.
func NewTimeSeed() int64 {
	return time.Now().UnixNano()
}
