package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDedupeKeepsFirstPerCode(t *testing.T) {
	ws := []Warning{
		{Code: AlphabetExhausted, Message: "first"},
		{Code: QuoteHazard, Message: "q"},
		{Code: AlphabetExhausted, Message: "second"},
	}
	got := Dedupe(ws)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Message)
	assert.Equal(t, QuoteHazard, got[1].Code)
	assert.Equal(t, "alphabet-exhausted: first; quote-hazard: q", Join(got))
}

func TestStats(t *testing.T) {
	assert.Equal(t, "812 B (-188 B, 18.8%)", Stats(812, 1000))
	assert.Equal(t, "0 B (-0 B, 0%)", Stats(0, 0))
}

func TestIcon(t *testing.T) {
	assert.Equal(t, "+", Round{Improved: true, Size: 5, Best: 5}.Icon())
	assert.Equal(t, "=", Round{Size: 5, Best: 5}.Icon())
	assert.Equal(t, "-", Round{Size: 6, Best: 5}.Icon())
}

func TestLogReporter(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := LogReporter{Logger: zap.New(core)}
	r.Round(Round{Round: 3, Rounds: 10, Size: 90, Best: 80, Original: 100})
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Round  3 / 10 ( 30%): - 90 B (-10 B, 10%). Best is 80 B (-20 B, 20%).", logs.All()[0].Message)
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger(false, true)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	l, err = NewLogger(true, false)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))
}
