// Copyright 2018 Rob Marissen.
// SPDX-License-Identifier: MIT

// Package isoquant quantifies peptide isotopologues from indexed mass
// spectrometry scans. For each identified peptide it extracts the
// intensity of every requested isotopic variant over a retention time
// window around the elution scan, and integrates each variant's
// intensity-over-time trace into a single abundance value. Batches of
// identifications run concurrently with results indexed by input row.
package isoquant

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/524D/isoquant/msdata"
	"github.com/524D/isoquant/msident"
)

// Mass added per charge and per isotopologue step, in Da
const massProton = float64(1.007825)

// ScanIndex supplies indexed scan data: retention time, MS level and
// peak list by scan id, plus enumeration of all scans for windowed
// search. Peak lists must be ordered ascending by m/z, and all methods
// must be safe for concurrent use during a run. msdata.Index satisfies
// this contract.
type ScanIndex interface {
	RetentionTime(scanID string) (float64, error)
	MSLevel(scanID string) (int, error)
	Peaks(scanID string) ([]msdata.Peak, error)
	Scans() []msdata.ScanRef
}

// IdentTable supplies peptide identification rows by row index.
// msident.Table satisfies this contract.
type IdentTable interface {
	NumIdents() int
	Ident(i int) (msident.Identification, error)
}

// ProgressFunc receives batch progress as (rows done, rows total).
// With more than one worker it may be called concurrently.
type ProgressFunc func(done, total int)

type rtSpec struct {
	rt float64
	id string
}

type rtSpecs []rtSpec

func (a rtSpecs) Len() int           { return len(a) }
func (a rtSpecs) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a rtSpecs) Less(i, j int) bool { return a[i].rt < a[j].rt }

// Quantifier is a quantification session over one scan index and one
// identification table. All state is fixed at construction; sessions
// are safe for concurrent use.
type Quantifier struct {
	scans    ScanIndex
	idents   IdentTable
	cfg      Config
	logger   *zap.Logger
	progress ProgressFunc
	rtOfMs1  rtSpecs // MS1 scans ordered by retention time
}

// Option configures a Quantifier
type Option func(*Quantifier) error

// WithConfig replaces the default configuration. Zero-valued fields
// keep their defaults.
func WithConfig(cfg Config) Option {
	return func(q *Quantifier) error {
		q.cfg = cfg
		return nil
	}
}

// WithLogger sets the session logger. The default discards all output.
func WithLogger(logger *zap.Logger) Option {
	return func(q *Quantifier) error {
		if logger == nil {
			return fmt.Errorf("logger must not be nil")
		}
		q.logger = logger
		return nil
	}
}

// WithProgress registers an observer for batch progress
func WithProgress(f ProgressFunc) Option {
	return func(q *Quantifier) error {
		q.progress = f
		return nil
	}
}

// New creates a quantification session. It validates the configuration
// and collects the retention times of all MS1 scans for windowed
// lookup, so construction is the only pass over the full scan
// enumeration.
func New(scans ScanIndex, idents IdentTable, opts ...Option) (*Quantifier, error) {
	if scans == nil || idents == nil {
		return nil, fmt.Errorf("%w: scan index and identification table are required", ErrConfig)
	}
	q := &Quantifier{
		scans:  scans,
		idents: idents,
		cfg:    DefaultConfig(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(q); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	q.cfg.sanitize()
	if err := q.cfg.validate(); err != nil {
		return nil, err
	}

	rtOfMs1, err := buildRtMs1(q.scans)
	if err != nil {
		return nil, err
	}
	q.rtOfMs1 = rtOfMs1
	if len(q.rtOfMs1) == 0 {
		q.logger.Warn("scan index contains no MS1 scans, all traces will be empty")
	}
	return q, nil
}

// Config returns the session configuration after defaulting
func (q *Quantifier) Config() Config {
	return q.cfg
}

// buildRtMs1 collects the (retention time, scan id) pairs of all MS1
// scans, ordered by retention time. The stable sort keeps scans with
// equal retention times in enumeration order, so window lookups are
// deterministic.
func buildRtMs1(scans ScanIndex) (rtSpecs, error) {
	refs := scans.Scans()
	rtOfMs1 := make(rtSpecs, 0, len(refs))
	for _, ref := range refs {
		level, err := scans.MSLevel(ref.ID)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", ref.ID, err)
		}
		if level == 1 {
			rtOfMs1 = append(rtOfMs1, rtSpec{rt: ref.RetentionTime, id: ref.ID})
		}
	}
	sort.Stable(rtOfMs1)
	return rtOfMs1, nil
}
