package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fractalpixel/selfextractor-compressor/internal/rng"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.Rounds != 50 {
		t.Errorf("expected Rounds=50, got %d", c.Rounds)
	}
	if c.RandomSeed != "SelfextractorSeed" {
		t.Errorf("expected RandomSeed=SelfextractorSeed, got %s", c.RandomSeed)
	}
	require.NoError(t, c.Validate())
}

func TestWithDoesNotMutate(t *testing.T) {
	base := Default()
	derived := base.WithRounds(7).WithRandomSeed("x").WithParameterVariation(0)
	assert.Equal(t, 50, base.Rounds)
	assert.Equal(t, "SelfextractorSeed", base.RandomSeed)
	assert.Equal(t, 7, derived.Rounds)
	assert.False(t, derived.Deterministic())
	derived.TopReplacementsToSelectFrom = 1
	assert.True(t, derived.Deterministic())
	assert.False(t, base.Deterministic())
}

func TestValidate(t *testing.T) {
	bad := []Config{
		Default().WithRounds(0),
		Default().WithParameterVariation(1.5),
		func() Config { c := Default(); c.TopReplacementsToSelectFrom = 0; return c }(),
		func() Config { c := Default(); c.SelectionFocus = -0.1; return c }(),
		func() Config { c := Default(); c.FractionOfSingleCharacterKeys = 2; return c }(),
	}
	for _, c := range bad {
		err := c.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalid))
	}
}

func TestParseFieldOrderIrrelevant(t *testing.T) {
	a, err := Parse([]byte("rounds: 3\nselection_focus: 0.5\nrandom_seed: abc\nuse_alphanumeric_multi_character_keys: false\n"))
	require.NoError(t, err)
	b, err := Parse([]byte("use_alphanumeric_multi_character_keys: false\nrandom_seed: abc\nselection_focus: 0.5\nrounds: 3\n"))
	require.NoError(t, err)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("configs differ (-a +b):\n%s", diff)
	}
	assert.Equal(t, 0.64, a.FractionOfSingleCharacterKeys)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := Default().WithRounds(12).WithRandomSeed("demo")
	require.NoError(t, c.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(c, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestTuneDeterministic(t *testing.T) {
	base := Default()
	a := Tune(base, 3, rng.New("s"))
	b := Tune(base, 3, rng.New("s"))
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("tune not deterministic:\n%s", diff)
	}
	assert.Equal(t, "SelfextractorSeed R3", a.RandomSeed)
}

func TestTuneWithoutVariationKeepsBase(t *testing.T) {
	base := Default().WithParameterVariation(0)
	r := rng.New("zero")
	for round := 1; round <= 20; round++ {
		c := Tune(base, round, r)
		assert.Equal(t, base.SelectionFocus, c.SelectionFocus)
		assert.Equal(t, base.FractionOfSingleCharacterKeys, c.FractionOfSingleCharacterKeys)
		assert.Equal(t, base.UseAlphanumericMultiCharacterKeys, c.UseAlphanumericMultiCharacterKeys)
		assert.Equal(t, base.TopReplacementsToSelectFrom, c.TopReplacementsToSelectFrom)
		assert.Equal(t, RoundSeed(base.RandomSeed, round), c.RandomSeed)
	}
}

func TestTuneStaysInRange(t *testing.T) {
	base := Default().WithParameterVariation(1)
	r := rng.New("range")
	for round := 1; round <= 200; round++ {
		c := Tune(base, round, r)
		require.NoError(t, c.Validate())
		base = c.WithParameterVariation(1).WithRandomSeed("SelfextractorSeed")
	}
}
