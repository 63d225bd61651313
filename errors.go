// Copyright 2018 Rob Marissen.
// SPDX-License-Identifier: MIT

package isoquant

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig means the run configuration is invalid
	ErrConfig = errors.New("isoquant: invalid configuration")
	// ErrMissingScan means an identification references a scan
	// that is not in the scan index
	ErrMissingScan = errors.New("isoquant: elution scan not indexed")
	// ErrDegenerateInput means an identification carries a
	// non-positive mass or charge
	ErrDegenerateInput = errors.New("isoquant: non-positive mass or charge")
)

// RowError ties a per-row failure to the input row index and peptide
// id, so failures can be correlated with the identification table.
type RowError struct {
	Row   int
	PepID string
	Err   error
}

func (e *RowError) Error() string {
	if e.PepID == "" {
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("row %d (pep_id %s): %v", e.Row, e.PepID, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
