package encoder

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fractalpixel/selfextractor-compressor/internal/config"
	"github.com/fractalpixel/selfextractor-compressor/internal/diag"
	"github.com/fractalpixel/selfextractor-compressor/internal/unpacker"
)

func scenarioConfig() config.Config {
	c := config.Default().WithRounds(1).WithParameterVariation(0)
	c.TopReplacementsToSelectFrom = 1
	c.SelectionFocus = 1
	c.FractionOfSingleCharacterKeys = 1
	return c
}

func TestEncodeRepeatedTriplet(t *testing.T) {
	a, err := Encode(context.Background(), "abcabcabcabc", scenarioConfig(), 1)
	require.NoError(t, err)
	require.Empty(t, a.Warnings)
	require.Len(t, a.Build.Slots, 1)
	assert.Equal(t, "abc", a.Build.Slots[0].Payload)
	assert.Len(t, a.Build.Slots[0].Key, 1)
	assert.Equal(t, strings.Repeat(a.Build.Slots[0].Key, 4), a.Build.Text)
	assert.Equal(t, len(a.Keys.Alphabet), a.Keys.Single)

	got, err := unpacker.Decode(a.Program)
	require.NoError(t, err)
	assert.Equal(t, "abcabcabcabc", got)
}

func TestEncodeRoundTrip(t *testing.T) {
	sources := []string{
		`for(i=0;i<256;i++)c.fillRect(i,Math.sin(i/9)*40+80,2,2);for(i=0;i<256;i++)c.fillRect(i,Math.cos(i/9)*40+80,2,2);`,
		`s="a\"b\\c";t="a\"b\\c";u="a\"b\\c";v='\n\n';w='\n\n';`,
		"x=`tpl ${1+1} tpl`;y=`tpl ${2+2} tpl`;z=`tpl ${3+3} tpl`;",
		strings.Repeat("onclick=function(e){e.preventDefault()};", 5),
	}
	for _, src := range sources {
		for _, seed := range []string{"A", "B"} {
			cfg := config.Default().WithRandomSeed(seed)
			a, err := Encode(context.Background(), src, cfg, 2)
			require.NoError(t, err)
			got, err := unpacker.Decode(a.Program)
			require.NoError(t, err, "program %q", a.Program)
			assert.Equal(t, src, got)
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	src := strings.Repeat("context.beginPath();context.arc(x,y,r,0,7);context.fill();", 3)
	a, err := Encode(context.Background(), src, config.Default(), 1)
	require.NoError(t, err)
	b, err := Encode(context.Background(), src, config.Default(), 4)
	require.NoError(t, err)
	assert.Equal(t, a.Program, b.Program)
}

func TestEncodeAlphabetExhausted(t *testing.T) {
	var all strings.Builder
	for c := 0; c < 128; c++ {
		all.WriteByte(byte(c))
	}
	src := all.String()
	a, err := Encode(context.Background(), src, config.Default(), 1)
	require.NoError(t, err)
	assert.Equal(t, src, a.Program)
	require.Len(t, a.Warnings, 1)
	assert.Equal(t, diag.AlphabetExhausted, a.Warnings[0].Code)
}

func TestEncodeNothingToGain(t *testing.T) {
	a, err := Encode(context.Background(), "ab", config.Default(), 1)
	require.NoError(t, err)
	assert.Empty(t, a.Build.Slots)
	assert.Greater(t, len(a.Program), 2)
	got, err := unpacker.Decode(a.Program)
	require.NoError(t, err)
	assert.Equal(t, "ab", got)
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `a\\nb\\\\`, Escape(`a\nb\\`))
}
