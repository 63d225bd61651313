// Copyright 2018 Rob Marissen.
// SPDX-License-Identifier: MIT

package isoquant

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Defaults for Config fields that are left at their zero value.
const (
	DefaultRTTolerance   = float64(30)
	DefaultMassTolerance = float64(100e-6)
	DefaultChunkSize     = 250
	DefaultWorkers       = 1
)

// Config holds the settings of a quantification session. The zero
// value of a field means "use the default".
type Config struct {
	// Isotopologues are the isotopic variant offsets to quantify
	// (0 for the monoisotopic peak, 1 for M1, ...). Their order is
	// the order of the per-row result vector.
	Isotopologues []int `yaml:"isotopologues"`
	// RTTolerance is the half width of the retention time window
	// around the elution scan, in the same unit the scan index uses
	// for retention times.
	RTTolerance float64 `yaml:"rt_tolerance"`
	// MassTolerance is the fractional width of the mass match band:
	// the band around a theoretical m/z spans mz*(1±MassTolerance/2).
	MassTolerance float64 `yaml:"mass_tolerance"`
	// Workers is the number of concurrent workers in a batch run.
	// It may not exceed the available parallelism minus one.
	Workers int `yaml:"workers"`
	// ChunkSize is the number of rows handed to a worker at a time.
	ChunkSize int `yaml:"chunk_size"`
}

// DefaultConfig returns the configuration used when no options are
// given: isotopologues M0..M5, a retention time window of ±30, a
// 100 ppm mass band, one worker and chunks of 250 rows.
func DefaultConfig() Config {
	return Config{
		Isotopologues: []int{0, 1, 2, 3, 4, 5},
		RTTolerance:   DefaultRTTolerance,
		MassTolerance: DefaultMassTolerance,
		Workers:       DefaultWorkers,
		ChunkSize:     DefaultChunkSize,
	}
}

// ParseConfig reads a Config from YAML. Unknown fields are an error,
// empty input yields the zero Config.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	d := yaml.NewDecoder(bytes.NewReader(data))
	d.KnownFields(true)
	if err := d.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return cfg, nil
}

// sanitize fills zero-valued fields with their defaults
func (cfg *Config) sanitize() {
	def := DefaultConfig()
	if cfg.Isotopologues == nil {
		cfg.Isotopologues = def.Isotopologues
	}
	if cfg.RTTolerance == 0 {
		cfg.RTTolerance = def.RTTolerance
	}
	if cfg.MassTolerance == 0 {
		cfg.MassTolerance = def.MassTolerance
	}
	if cfg.Workers == 0 {
		cfg.Workers = def.Workers
	}
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = def.ChunkSize
	}
}

// maxWorkers is the highest allowed worker count: the available
// parallelism minus one, but never less than 1
func maxWorkers() int {
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	return n
}

// validate reports configuration problems. It assumes sanitize has
// been applied.
func (cfg *Config) validate() error {
	if len(cfg.Isotopologues) == 0 {
		return fmt.Errorf("%w: no isotopologues requested", ErrConfig)
	}
	seen := make(map[int]bool, len(cfg.Isotopologues))
	for _, iso := range cfg.Isotopologues {
		if iso < 0 {
			return fmt.Errorf("%w: negative isotopologue offset %d", ErrConfig, iso)
		}
		if seen[iso] {
			return fmt.Errorf("%w: duplicate isotopologue offset %d", ErrConfig, iso)
		}
		seen[iso] = true
	}
	if cfg.RTTolerance <= 0 {
		return fmt.Errorf("%w: retention time tolerance %g must be positive", ErrConfig, cfg.RTTolerance)
	}
	if cfg.MassTolerance <= 0 || cfg.MassTolerance >= 1 {
		return fmt.Errorf("%w: mass tolerance %g outside (0, 1)", ErrConfig, cfg.MassTolerance)
	}
	if cfg.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size %d must be positive", ErrConfig, cfg.ChunkSize)
	}
	if cfg.Workers < 1 || cfg.Workers > maxWorkers() {
		return fmt.Errorf("%w: worker count %d outside [1, %d]", ErrConfig, cfg.Workers, maxWorkers())
	}
	return nil
}
