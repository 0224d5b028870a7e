// Package rng provides the seeded random stream threaded through a compression run.
package rng

import (
	"crypto/sha256"
	"math/rand/v2"
)

// Rand is a reproducible uniform generator keyed by a string seed.
// It is not safe for concurrent use; every round owns its own instance.
type Rand struct {
	r *rand.Rand
}

// New returns a generator whose stream depends only on seed.
func New(seed string) *Rand {
	return &Rand{r: rand.New(rand.NewChaCha8(sha256.Sum256([]byte(seed))))}
}

// Float64 returns a uniform value in [0,1).
func (r *Rand) Float64() float64 {
	return r.r.Float64()
}

// FloatBetween returns a uniform value in [min,max).
func (r *Rand) FloatBetween(min, max float64) float64 {
	return min + (max-min)*r.r.Float64()
}

// Mix interpolates linearly from a (t=0) to b (t=1).
func Mix(t, a, b float64) float64 {
	return t*(b-a) + a
}
