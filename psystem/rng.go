package psystem

import (
	"math/rand"
)

// RNG is the single seedable source of randomness behind every stochastic
// choice the derivation engine makes (spec.md §9: "go through an injected
// RNG object so tests can seed it; avoid module-level PRNG state").
type RNG interface {
	// Float64 returns a pseudo-random number in [0, 1).
	Float64() float64
	// IntN returns a pseudo-random number in [0, n).
	IntN(n int) int
}

// rngSource wraps *rand.Rand to satisfy RNG.
type rngSource struct {
	r *rand.Rand
}

// NewRNG returns an RNG seeded with seed. Two RNGs built from the same seed
// produce identical sequences, which is what makes a run reproducible
// (spec.md §8).
func NewRNG(seed int64) RNG {
	return &rngSource{r: rand.New(rand.NewSource(seed))}
}

func (s *rngSource) Float64() float64 {
	return s.r.Float64()
}

func (s *rngSource) IntN(n int) int {
	return s.r.Intn(n)
}

// categorical draws an index in [0, len(weights)) with probability
// proportional to weights[i]. weights must sum to > 0.
func categorical(rng RNG, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	target := rng.Float64() * total
	cum := 0.0
	for i, w := range weights {
		cum += w
		if target < cum {
			return i
		}
	}
	return len(weights) - 1
}
