// Package search runs the annealed multi-round search over encoder configurations
// and keeps the shortest program found.
package search

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/fractalpixel/selfextractor-compressor/internal/config"
	"github.com/fractalpixel/selfextractor-compressor/internal/diag"
	"github.com/fractalpixel/selfextractor-compressor/internal/encoder"
	"github.com/fractalpixel/selfextractor-compressor/internal/rng"
)

// Options are the collaborators of a search. Zero values are usable.
type Options struct {
	Logger   *zap.Logger
	Reporter diag.Reporter
	// Workers scanning candidate substrings; 0 means GOMAXPROCS.
	Workers int
}

// Alternative is one recorded attempt.
type Alternative struct {
	Config  config.Config
	Program string
}

// Result is the outcome of Compress.
type Result struct {
	// Program is the shortest text found, or Source if nothing was shorter.
	Program string
	// Source is the newline-normalized input.
	Source   string
	Config   config.Config
	Improved bool
	Rounds   int
	Warnings []diag.Warning
}

var newlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Normalize replaces every line break with a single space. Sources that depend on
// automatic semicolon insertion at line ends do not survive this.
func Normalize(s string) string {
	return newlines.Replace(s)
}

type pool []Alternative

func (p pool) sort() {
	slices.SortStableFunc(p, func(a, b Alternative) int {
		return cmp.Compare(len(a.Program), len(b.Program))
	})
}

// nth returns the alternative at fraction f of the pool ordered by length.
func (p pool) nth(f float64) Alternative {
	p.sort()
	return p[int(f*float64(len(p)))]
}

func (p pool) best() Alternative {
	return lo.MinBy(p, func(a, b Alternative) bool { return len(a.Program) < len(b.Program) })
}

// Compress searches cfg.Rounds configurations derived from cfg and returns the
// shortest program. It never fails on content; on cancellation it returns the best
// result so far together with ctx.Err().
func Compress(ctx context.Context, source string, cfg config.Config, opt Options) (Result, error) {
	logger := opt.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	reporter := opt.Reporter
	if reporter == nil {
		reporter = diag.LogReporter{Logger: logger}
	}

	source = Normalize(source)
	if cfg.Deterministic() {
		cfg = cfg.WithRounds(1)
	}
	if cfg.Verbose {
		logger.Debug("trying out different replacements",
			zap.Int("bytes", len(source)), zap.Int("rounds", cfg.Rounds), zap.String("seed", cfg.RandomSeed))
	}

	var warnings []diag.Warning
	if strings.Contains(source, "`") {
		warnings = append(warnings, diag.Warning{
			Code:    diag.QuoteHazard,
			Message: "the source contains backtick characters, ${ blocks inside template literals may not survive packing",
		})
	}

	r := rng.New(cfg.RandomSeed)
	alternatives := pool{{Config: cfg, Program: source}}
	shortest := len(source)
	var err error
	rounds := 0

	for round := 1; round <= cfg.Rounds; round++ {
		if err = ctx.Err(); err != nil {
			break
		}
		// Annealing approaches 0 over the run: 1 explores, 0 refines the best so far.
		annealing := 1 - float64(round)/float64(cfg.Rounds)
		annealing = (annealing*annealing + annealing) / 2
		focus := annealing * r.Float64() * r.Float64()

		base := alternatives.nth(focus).Config.
			WithParameterVariation(annealing * cfg.ParameterVariation).
			WithRandomSeed(cfg.RandomSeed)
		roundConfig := config.Tune(base, round, r)

		var attempt encoder.Attempt
		attempt, err = encoder.Encode(ctx, source, roundConfig, opt.Workers)
		warnings = append(warnings, attempt.Warnings...)
		if err != nil {
			break
		}
		alternatives = append(alternatives, Alternative{Config: roundConfig, Program: attempt.Program})
		rounds++

		improved := len(attempt.Program) < shortest
		if improved {
			shortest = len(attempt.Program)
		}
		if cfg.Verbose {
			reporter.Round(diag.Round{
				Round:    round,
				Rounds:   cfg.Rounds,
				Size:     len(attempt.Program),
				Best:     shortest,
				Original: len(source),
				Improved: improved,
			})
		}
	}

	best := alternatives.best()
	res := Result{Program: best.Program, Source: source, Config: best.Config, Rounds: rounds}
	if len(best.Program) >= len(source) {
		res.Program = source
		warnings = append(warnings, diag.Warning{
			Code:    diag.NoImprovement,
			Message: "could not reduce the size of the input, returning the original source",
		})
	} else {
		res.Improved = true
		if cfg.Verbose {
			logger.Debug("best configuration",
				zap.String("result", diag.Stats(len(best.Program), len(source))), zap.Any("config", best.Config))
		}
	}

	res.Warnings = diag.Dedupe(warnings)
	for _, w := range res.Warnings {
		logger.Warn(w.Message, zap.String("code", string(w.Code)))
	}
	return res, err
}
