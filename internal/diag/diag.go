// Package diag carries the logging, warning and progress plumbing of a compression run.
package diag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Code identifies a kind of non-fatal anomaly.
type Code string

const (
	AlphabetExhausted Code = "alphabet-exhausted"
	QuoteHazard       Code = "quote-hazard"
	NoImprovement     Code = "no-improvement"
)

// Warning is a non-fatal anomaly. Processing always continues after one.
type Warning struct {
	Code    Code
	Message string
}

func (w Warning) String() string {
	return string(w.Code) + ": " + w.Message
}

// Dedupe keeps the first warning of every code.
func Dedupe(ws []Warning) []Warning {
	return lo.UniqBy(ws, func(w Warning) Code { return w.Code })
}

// NewLogger builds the console logger used by the commands.
func NewLogger(verbose, quiet bool) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.DisableStacktrace = true
	config.DisableCaller = true
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.TimeKey = ""
	switch {
	case quiet:
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case verbose:
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Named("selfextractor"), nil
}

// Round describes one finished search round.
type Round struct {
	Round    int
	Rounds   int
	Size     int
	Best     int
	Original int
	Improved bool
}

// Icon is "+" when the round improved on the best, "=" when it tied, "-" otherwise.
func (r Round) Icon() string {
	switch {
	case r.Improved:
		return "+"
	case r.Size == r.Best:
		return "="
	default:
		return "-"
	}
}

// Stats formats size relative to original, e.g. "812 B (-188 B, 18.8%)".
func Stats(size, original int) string {
	pct := 0.0
	if original > 0 {
		pct = 100 * float64(original-size) / float64(original)
	}
	return fmt.Sprintf("%d B (-%d B, %s%%)", size, original-size, strconv.FormatFloat(pct, 'g', 3, 64))
}

// Reporter receives one notification per round, in round order.
type Reporter interface {
	Round(Round)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Round)

func (f ReporterFunc) Round(r Round) { f(r) }

// LogReporter writes round progress to a zap logger.
type LogReporter struct {
	Logger *zap.Logger
}

func (l LogReporter) Round(r Round) {
	width := len(strconv.Itoa(r.Rounds))
	pct := 100 * r.Round / r.Rounds
	l.Logger.Info(fmt.Sprintf("Round %*d / %d (%3d%%): %s %s. Best is %s.",
		width, r.Round, r.Rounds, pct, r.Icon(), Stats(r.Size, r.Original), Stats(r.Best, r.Original)))
}

// Nop discards progress.
var Nop Reporter = ReporterFunc(func(Round) {})

// Join lists warnings on one line.
func Join(ws []Warning) string {
	return strings.Join(lo.Map(ws, func(w Warning, _ int) string { return w.String() }), "; ")
}
