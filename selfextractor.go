/*
Selfextractor packs a JavaScript source into a shorter program that unpacks and runs
the original. Geared towards demoscene productions of a few kilobytes.
*/
package selfextractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/fractalpixel/selfextractor-compressor/internal/config"
	"github.com/fractalpixel/selfextractor-compressor/internal/diag"
	"github.com/fractalpixel/selfextractor-compressor/internal/search"
	"github.com/fractalpixel/selfextractor-compressor/internal/unpacker"
)

const Version = "0.1.0"

type (
	Config   = config.Config
	Warning  = diag.Warning
	Reporter = diag.Reporter
	Round    = diag.Round
)

// ErrVerify is returned when a packed program does not decode to its source.
var ErrVerify = errors.New("packed program does not reproduce the source")

// DefaultConfig returns the stock search configuration.
func DefaultConfig() Config { return config.Default() }

// LoadConfig reads a YAML configuration file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) { return config.Load(path) }

// Options controls a Packer. The zero value packs with DefaultConfig.
type Options struct {
	Config Config
	// QUIET suppresses per-round progress.
	QUIET bool
	// Extract takes the last <script> block of an HTML wrapper and strips
	// comment-only lines before packing.
	Extract bool
	// Verify decodes the packed program and fails with ErrVerify on mismatch.
	Verify   bool
	Workers  int
	Logger   *zap.Logger
	Reporter Reporter
}

// Packer holds one packed source.
type Packer struct {
	result  search.Result
	input   int
	elapsed time.Duration
}

// New reads r completely and packs it.
func New(opt Options, r io.Reader) (*Packer, error) {
	return NewContext(context.Background(), opt, r)
}

// NewContext is New with cancellation, checked between rounds and substitutions.
func NewContext(ctx context.Context, opt Options, r io.Reader) (*Packer, error) {
	t0 := time.Now()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	src := string(data)
	if opt.Extract {
		src = Extract(src)
	}

	cfg := opt.Config
	if cfg == (Config{}) {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opt.QUIET {
		cfg = cfg.WithVerbose(false)
	}

	res, err := search.Compress(ctx, src, cfg, search.Options{
		Logger:   opt.Logger,
		Reporter: opt.Reporter,
		Workers:  opt.Workers,
	})
	if err != nil {
		return nil, err
	}
	if opt.Verify && res.Improved {
		got, err := unpacker.Decode(res.Program)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrVerify, err)
		}
		if got != res.Source {
			return nil, ErrVerify
		}
	}
	return &Packer{result: res, input: len(data), elapsed: time.Since(t0)}, nil
}

// WriteTo writes the packed program.
func (p *Packer) WriteTo(w io.Writer) (int64, error) {
	n, err := io.Copy(w, bytes.NewReader(p.Bytes()))
	if err != nil {
		return n, fmt.Errorf("failed to write packed program: %w", err)
	}
	return n, nil
}

// Bytes returns the packed program.
func (p *Packer) Bytes() []byte { return []byte(p.result.Program) }

// Improved reports whether the program is shorter than the normalized source.
func (p *Packer) Improved() bool { return p.result.Improved }

// Warnings lists the non-fatal anomalies of the run, one per kind.
func (p *Packer) Warnings() []Warning { return p.result.Warnings }

// Config is the configuration of the winning round.
func (p *Packer) Config() Config { return p.result.Config }

// Compress packs source under cfg and returns the shortest program found, or the
// newline-normalized source if nothing shorter was found.
func Compress(source string, cfg Config) string {
	res, _ := search.Compress(context.Background(), source, cfg, search.Options{})
	return res.Program
}

// Decode returns the source a packed program evaluates. Unpacked sources are not
// programs produced by this package and fail with an error.
func Decode(program string) (string, error) {
	return unpacker.Decode(program)
}
