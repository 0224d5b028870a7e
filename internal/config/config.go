// Package config holds the search configuration of the recursive replacer.
//
// A Config is a plain value. Rounds never mutate a shared instance; they derive
// a new one through the With* constructors or Tune.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MAXTOPREPLACEMENTS bounds TopReplacementsToSelectFrom after tuning.
const MAXTOPREPLACEMENTS = 30

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is one point in the search space.
type Config struct {
	Rounds                            int     `yaml:"rounds"`
	ParameterVariation                float64 `yaml:"parameter_variation"`
	TopReplacementsToSelectFrom       int     `yaml:"top_replacements_to_select_from"`
	SelectionFocus                    float64 `yaml:"selection_focus"`
	FractionOfSingleCharacterKeys     float64 `yaml:"fraction_of_single_character_keys"`
	UseAlphanumericMultiCharacterKeys bool    `yaml:"use_alphanumeric_multi_character_keys"`
	RandomSeed                        string  `yaml:"random_seed"`
	Verbose                           bool    `yaml:"verbose"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Rounds:                            50,
		ParameterVariation:                0.4,
		TopReplacementsToSelectFrom:       3,
		SelectionFocus:                    0.7,
		FractionOfSingleCharacterKeys:     0.64,
		UseAlphanumericMultiCharacterKeys: true,
		RandomSeed:                        "SelfextractorSeed",
		Verbose:                           true,
	}
}

func (c Config) WithRounds(n int) Config {
	c.Rounds = n
	return c
}

func (c Config) WithParameterVariation(v float64) Config {
	c.ParameterVariation = v
	return c
}

func (c Config) WithRandomSeed(seed string) Config {
	c.RandomSeed = seed
	return c
}

func (c Config) WithVerbose(v bool) Config {
	c.Verbose = v
	return c
}

// Deterministic reports whether repeated rounds would all produce the same result.
func (c Config) Deterministic() bool {
	return c.ParameterVariation <= 0 && c.TopReplacementsToSelectFrom <= 1
}

// Validate checks the ranges documented on each field.
func (c Config) Validate() error {
	switch {
	case c.Rounds < 1:
		return fmt.Errorf("%w: rounds must be at least 1, got %d", ErrInvalid, c.Rounds)
	case c.ParameterVariation < 0 || c.ParameterVariation > 1:
		return fmt.Errorf("%w: parameter_variation must be in [0,1], got %g", ErrInvalid, c.ParameterVariation)
	case c.TopReplacementsToSelectFrom < 1 || c.TopReplacementsToSelectFrom > MAXTOPREPLACEMENTS:
		return fmt.Errorf("%w: top_replacements_to_select_from must be in [1,%d], got %d", ErrInvalid, MAXTOPREPLACEMENTS, c.TopReplacementsToSelectFrom)
	case c.SelectionFocus < 0 || c.SelectionFocus > 1:
		return fmt.Errorf("%w: selection_focus must be in [0,1], got %g", ErrInvalid, c.SelectionFocus)
	case c.FractionOfSingleCharacterKeys < 0 || c.FractionOfSingleCharacterKeys > 1:
		return fmt.Errorf("%w: fraction_of_single_character_keys must be in [0,1], got %g", ErrInvalid, c.FractionOfSingleCharacterKeys)
	}
	return nil
}

// Parse decodes YAML on top of Default. Keys absent from data keep their defaults.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads a YAML config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	return Parse(data)
}

// Save writes c as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0666); err != nil {
		return fmt.Errorf("failed to write config %q: %w", path, err)
	}
	return nil
}
