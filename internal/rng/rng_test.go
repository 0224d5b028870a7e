package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameSeedSameStream(t *testing.T) {
	a := New("SelfextractorSeed R1")
	b := New("SelfextractorSeed R1")
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float64(), b.Float64())
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New("seed R1")
	b := New("seed R2")
	same := 0
	for i := 0; i < 16; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	assert.Less(t, same, 16)
}

func TestRanges(t *testing.T) {
	r := New("ranges")
	for i := 0; i < 1000; i++ {
		v := r.Float64()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
		w := r.FloatBetween(1, 30)
		require.GreaterOrEqual(t, w, 1.0)
		require.Less(t, w, 30.0)
	}
}

func TestMix(t *testing.T) {
	assert.Equal(t, 2.0, Mix(0, 2, 10))
	assert.Equal(t, 10.0, Mix(1, 2, 10))
	assert.Equal(t, 6.0, Mix(0.5, 2, 10))
}
