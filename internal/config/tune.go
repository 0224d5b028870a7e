package config

import (
	"math"
	"strconv"

	"github.com/fractalpixel/selfextractor-compressor/internal/rng"
)

// RoundSeed is the seed of round n derived from a base seed.
func RoundSeed(base string, round int) string {
	return base + " R" + strconv.Itoa(round)
}

// Tune derives the configuration of one round from base. The size of the random
// departure from base is bounded by base.ParameterVariation. Draws are taken from r
// in a fixed order, so identical inputs always yield identical output.
func Tune(base Config, round int, r *rng.Rand) Config {
	variation := base.ParameterVariation

	value := func(v, min, max float64) float64 {
		candidate := r.FloatBetween(min, max)
		var weight float64
		if r.Float64() < variation {
			weight = r.Float64()
		} else {
			weight = variation * r.Float64()
		}
		return rng.Mix(weight, v, candidate)
	}
	boolean := func(v bool) bool {
		candidate := r.Float64() < 0.5
		if 1-r.Float64()*r.Float64() < variation {
			return candidate
		}
		return v
	}

	out := base
	out.RandomSeed = RoundSeed(base.RandomSeed, round)
	out.SelectionFocus = value(base.SelectionFocus, 0, 1)
	out.FractionOfSingleCharacterKeys = value(base.FractionOfSingleCharacterKeys, 0, 1)
	out.UseAlphanumericMultiCharacterKeys = boolean(base.UseAlphanumericMultiCharacterKeys)
	top := math.Floor(value(float64(base.TopReplacementsToSelectFrom), 1, MAXTOPREPLACEMENTS) + 0.5)
	out.TopReplacementsToSelectFrom = int(math.Min(MAXTOPREPLACEMENTS, math.Max(1, top)))
	return out
}
