// Package cli holds the flags shared by the selfextractor commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fractalpixel/selfextractor-compressor/internal/config"
)

// Flags are the parsed values of the shared command line.
type Flags struct {
	ConfigFile  string
	Rounds      int
	Seed        string
	Variation   float64
	Top         int
	Focus       float64
	SingleKeys  float64
	NumericKeys bool
	Workers     int
	Quiet       bool
	Verbose     bool
	NoExtract   bool
	Verify      bool
	CPUProfile  string
}

// Bind registers the shared flags on cmd.
func Bind(cmd *cobra.Command) *Flags {
	d := config.Default()
	f := &Flags{}
	fs := cmd.Flags()
	fs.StringVar(&f.ConfigFile, "config", "", "read search settings from YAML `file`")
	fs.IntVar(&f.Rounds, "rounds", d.Rounds, "number of search rounds")
	fs.StringVar(&f.Seed, "seed", d.RandomSeed, "random seed of the search")
	fs.Float64Var(&f.Variation, "variation", d.ParameterVariation, "how far rounds vary the parameters (0..1)")
	fs.IntVar(&f.Top, "top", d.TopReplacementsToSelectFrom, fmt.Sprintf("pick substitutions among the best `n` (1..%d)", config.MAXTOPREPLACEMENTS))
	fs.Float64Var(&f.Focus, "focus", d.SelectionFocus, "bias towards the best substitution (0..1)")
	fs.Float64Var(&f.SingleKeys, "single-keys", d.FractionOfSingleCharacterKeys, "fraction of the alphabet used as single-character keys")
	fs.BoolVar(&f.NumericKeys, "numeric-keys", false, "use decimal instead of base-36 multi-character key suffixes")
	fs.IntVar(&f.Workers, "workers", 0, "candidate scan workers (0 uses all CPUs)")
	fs.BoolVarP(&f.Quiet, "quiet", "q", false, "quiet mode")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "debug logging")
	fs.BoolVar(&f.NoExtract, "no-extract", false, "pack the input as is, without taking the last <script> block")
	fs.BoolVar(&f.Verify, "verify", false, "decode the packed program and check it reproduces the source")
	fs.StringVar(&f.CPUProfile, "cpuprofile", "", "write cpu profile to `file`")
	return f
}

// Config loads the config file, if any, and applies the flags that were set on
// the command line on top of it.
func (f *Flags) Config(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if f.ConfigFile != "" {
		c, err := config.Load(f.ConfigFile)
		if err != nil {
			return config.Config{}, err
		}
		cfg = c
	}
	changed := cmd.Flags().Changed
	if changed("rounds") {
		cfg.Rounds = f.Rounds
	}
	if changed("seed") {
		cfg.RandomSeed = f.Seed
	}
	if changed("variation") {
		cfg.ParameterVariation = f.Variation
	}
	if changed("top") {
		cfg.TopReplacementsToSelectFrom = f.Top
	}
	if changed("focus") {
		cfg.SelectionFocus = f.Focus
	}
	if changed("single-keys") {
		cfg.FractionOfSingleCharacterKeys = f.SingleKeys
	}
	if changed("numeric-keys") {
		cfg.UseAlphanumericMultiCharacterKeys = !f.NumericKeys
	}
	if f.Quiet {
		cfg.Verbose = false
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
