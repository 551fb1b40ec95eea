package utils

import "math/rand"

// Rand is the uniform randomness source consumed by the engine. It is
// injected so customer picks, artifact shuffles, and mutation rolls can be
// pinned down in tests.
type Rand interface {
	Float64() float64
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

type stdRand struct{}

// NewRand returns the default math/rand-backed source.
func NewRand() Rand {
	return stdRand{}
}

func (stdRand) Float64() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

func (stdRand) Intn(n int) int {
	return rand.Intn(n) //nolint:gosec // Game logic randomness, not security critical
}

func (stdRand) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}
