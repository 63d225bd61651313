// Package msdata holds mass spectrometry scan data in memory:
// per-scan metadata plus centroided peak lists, indexed by scan id.
package msdata

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Peak contains the actual ms peak info
type Peak struct {
	Mz     float64
	Intens float64
}

// Spectrum is a single scan as materialized by the caller: the scan id,
// retention time, MS level and peak list. A spectrum is immutable once
// it has been indexed.
type Spectrum struct {
	ID            string
	RetentionTime float64
	MSLevel       int
	Peaks         []Peak
}

// ScanRef pairs a scan id with its retention time. It is the unit of
// scan enumeration for retention time windowed searches.
type ScanRef struct {
	ID            string
	RetentionTime float64
}

var (
	// ErrInvalidScanID means an invalid scan id is supplied
	ErrInvalidScanID = errors.New("msdata: invalid scan id")
	// ErrDuplicateScanID means two spectra share the same scan id
	ErrDuplicateScanID = errors.New("msdata: duplicate scan id")
)

// Validate checks that a spectrum is usable for indexing
func (s *Spectrum) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("msdata: spectrum has an empty scan id")
	}
	if math.IsNaN(s.RetentionTime) || math.IsInf(s.RetentionTime, 0) {
		return fmt.Errorf("msdata: scan %s: invalid retention time", s.ID)
	}
	if s.MSLevel < 1 {
		return fmt.Errorf("msdata: scan %s: ms level %d out of range", s.ID, s.MSLevel)
	}
	for i, p := range s.Peaks {
		if math.IsNaN(p.Mz) || math.IsInf(p.Mz, 0) || p.Mz <= 0 {
			return fmt.Errorf("msdata: scan %s: peak %d has invalid mz %g", s.ID, i, p.Mz)
		}
		if math.IsNaN(p.Intens) || math.IsInf(p.Intens, 0) || p.Intens < 0 {
			return fmt.Errorf("msdata: scan %s: peak %d has invalid intensity %g", s.ID, i, p.Intens)
		}
	}
	return nil
}

// SortPeaks sorts a peak list ascending by m/z, in place
func SortPeaks(peaks []Peak) {
	sort.Slice(peaks,
		func(i, j int) bool { return peaks[i].Mz < peaks[j].Mz })
}
