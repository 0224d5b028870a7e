// Package encoder runs one encoding attempt: alphabet discovery, dictionary build and
// program synthesis.
package encoder

import (
	"context"
	"strings"

	"github.com/fractalpixel/selfextractor-compressor/internal/config"
	"github.com/fractalpixel/selfextractor-compressor/internal/dict"
	"github.com/fractalpixel/selfextractor-compressor/internal/diag"
	"github.com/fractalpixel/selfextractor-compressor/internal/keys"
	"github.com/fractalpixel/selfextractor-compressor/internal/rng"
	"github.com/fractalpixel/selfextractor-compressor/internal/unpacker"
)

// MINALPHABET is the smallest number of unused bytes that allows any encoding:
// one separator and one key.
const MINALPHABET = 2

// Attempt is the outcome of one Encode call.
type Attempt struct {
	Program  string
	Build    dict.Result
	Keys     keys.Allocator
	Warnings []diag.Warning
}

// Escape doubles every backslash; the decoder's string literal consumes one level.
func Escape(s string) string {
	return strings.ReplaceAll(s, `\`, `\\`)
}

// Encode compresses source under cfg. The random stream is seeded by cfg.RandomSeed.
// When fewer than MINALPHABET bytes are unused, source is returned unchanged with an
// AlphabetExhausted warning.
func Encode(ctx context.Context, source string, cfg config.Config, workers int) (Attempt, error) {
	escaped := Escape(source)
	unused := keys.FindUnused(escaped, keys.Suffixes(cfg.UseAlphanumericMultiCharacterKeys))
	if len(unused) < MINALPHABET {
		return Attempt{
			Program: source,
			Warnings: []diag.Warning{{
				Code:    diag.AlphabetExhausted,
				Message: "could not find two or more unused characters to use as keys, input is not compressed",
			}},
		}, nil
	}

	separator := unused[0]
	alloc := keys.NewAllocator(unused[1:], cfg.FractionOfSingleCharacterKeys, cfg.UseAlphanumericMultiCharacterKeys)

	b := dict.Builder{
		Keys:            alloc,
		TopReplacements: cfg.TopReplacementsToSelectFrom,
		SelectionFocus:  cfg.SelectionFocus,
		Workers:         workers,
	}
	res, err := b.Build(ctx, escaped, rng.New(cfg.RandomSeed))
	if err != nil {
		return Attempt{Program: source}, err
	}
	if res.Value <= 0 {
		res = dict.Result{Text: escaped}
	}

	p := unpacker.Program{
		Text:      res.Text,
		Payloads:  res.Payloads(),
		Separator: separator,
		Keys:      alloc,
	}
	return Attempt{Program: p.Source(), Build: res, Keys: alloc}, nil
}
