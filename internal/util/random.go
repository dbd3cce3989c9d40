package util

import "math/rand/v2"

// NewRand returns a random source owned by a single caller.
// A zero seed draws a fresh seed so repeated calls produce varied output.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

// RandFactory builds a fresh random source per generation call
type RandFactory func() *rand.Rand

// SeededFactory returns a factory whose sources all start from seed.
// Seed 0 yields independently seeded sources.
func SeededFactory(seed int64) RandFactory {
	return func() *rand.Rand {
		return NewRand(seed)
	}
}
