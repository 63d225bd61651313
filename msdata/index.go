package msdata

import (
	"fmt"
)

// Index provides read-only access to a set of spectra by scan id.
// It keeps its own copy of the peak lists, sorted ascending by m/z so
// that m/z window lookups can use binary search. All accessors are
// safe for concurrent use once the index is built.
type Index struct {
	spectra  []Spectrum
	id2Index map[string]int
}

// NewIndex builds an index from materialized spectra. Every spectrum
// is validated, and peak lists are copied and sorted by m/z.
func NewIndex(spectra []Spectrum) (*Index, error) {
	x := &Index{
		spectra:  make([]Spectrum, len(spectra)),
		id2Index: make(map[string]int, len(spectra)),
	}
	for i := range spectra {
		if err := spectra[i].Validate(); err != nil {
			return nil, err
		}
		if _, ok := x.id2Index[spectra[i].ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateScanID, spectra[i].ID)
		}
		s := spectra[i]
		// Copy the peaks, we don't want to sort the caller's slice
		s.Peaks = make([]Peak, len(spectra[i].Peaks))
		copy(s.Peaks, spectra[i].Peaks)
		SortPeaks(s.Peaks)
		x.spectra[i] = s
		x.id2Index[s.ID] = i
	}
	return x, nil
}

// NumScans returns the number of indexed spectra
func (x *Index) NumScans() int {
	return len(x.spectra)
}

// RetentionTime returns the retention time of a scan
func (x *Index) RetentionTime(scanID string) (float64, error) {
	i, ok := x.id2Index[scanID]
	if !ok {
		return 0.0, ErrInvalidScanID
	}
	return x.spectra[i].RetentionTime, nil
}

// MSLevel returns the MS level of a scan
func (x *Index) MSLevel(scanID string) (int, error) {
	i, ok := x.id2Index[scanID]
	if !ok {
		return 0, ErrInvalidScanID
	}
	return x.spectra[i].MSLevel, nil
}

// Peaks returns the peak list of a scan, ordered ascending by m/z.
// The returned slice is shared with the index; callers must not
// modify it.
func (x *Index) Peaks(scanID string) ([]Peak, error) {
	i, ok := x.id2Index[scanID]
	if !ok {
		return nil, ErrInvalidScanID
	}
	return x.spectra[i].Peaks, nil
}

// Scans returns the (scan id, retention time) pairs of all indexed
// spectra, in indexing order
func (x *Index) Scans() []ScanRef {
	refs := make([]ScanRef, len(x.spectra))
	for i := range x.spectra {
		refs[i] = ScanRef{
			ID:            x.spectra[i].ID,
			RetentionTime: x.spectra[i].RetentionTime,
		}
	}
	return refs
}
