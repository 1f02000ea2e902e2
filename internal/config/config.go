// Package config holds the engine options and their patcheck.yaml loader.
//
// Options only toggle how thorough the analysis is; they never change which
// verdict kinds exist. Defaults match the conservative behavior of a stable
// compiler front-end.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options configures one match checking session.
type Options struct {
	// ExhaustivePatterns enables module-relative uninhabitedness reasoning:
	// variants and fields of visibly empty types stop counting as possible
	// values. Off by default, matching the guarded rollout of the analogous
	// compiler feature.
	ExhaustivePatterns bool `yaml:"exhaustive_patterns"`

	// PreciseIntMatching treats pointer-sized integers as having a known
	// bit-width, allowing ranges over them to be proven exhaustive. When
	// off, such types behave as if they had an extra unnamed constructor.
	PreciseIntMatching bool `yaml:"precise_int_matching"`

	// MaxWitnesses caps how many counter-example patterns are rendered in
	// one "patterns not covered" report. Zero means the default cap.
	MaxWitnesses int `yaml:"max_witnesses"`
}

// DefaultMaxWitnesses is the display cap applied when MaxWitnesses is zero.
const DefaultMaxWitnesses = 3

// Default returns the options used when no patcheck.yaml is present.
func Default() *Options {
	return &Options{
		ExhaustivePatterns: false,
		PreciseIntMatching: false,
		MaxWitnesses:       DefaultMaxWitnesses,
	}
}

// Load reads options from a patcheck.yaml file. Unknown keys are rejected
// so typos in option names fail loudly rather than silently reverting to
// defaults.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	opts := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(opts); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if opts.MaxWitnesses < 0 {
		return nil, fmt.Errorf("parsing %s: max_witnesses must be non-negative", path)
	}
	if opts.MaxWitnesses == 0 {
		opts.MaxWitnesses = DefaultMaxWitnesses
	}
	return opts, nil
}
