package msdata

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testSpectra() []Spectrum {
	return []Spectrum{
		{
			ID:            `scan=1`,
			RetentionTime: 10.0,
			MSLevel:       1,
			// Deliberately unsorted, NewIndex must sort its copy
			Peaks: []Peak{
				{Mz: 502.0, Intens: 30.0},
				{Mz: 400.5, Intens: 10.0},
				{Mz: 501.0, Intens: 20.0},
			},
		},
		{
			ID:            `scan=2`,
			RetentionTime: 11.0,
			MSLevel:       2,
			Peaks:         []Peak{{Mz: 201.1, Intens: 5.0}},
		},
		{
			ID:            `scan=3`,
			RetentionTime: 12.0,
			MSLevel:       1,
		},
	}
}

func TestNewIndex(t *testing.T) {
	spectra := testSpectra()
	x, err := NewIndex(spectra)
	if err != nil {
		t.Fatalf("NewIndex: error return %v", err)
	}
	if x.NumScans() != 3 {
		t.Errorf("NumScans: %d, should be 3", x.NumScans())
	}

	rt, err := x.RetentionTime(`scan=2`)
	if err != nil {
		t.Errorf("RetentionTime: error return %v", err)
	}
	if rt != 11.0 {
		t.Errorf("RetentionTime: %f, should be 11.0", rt)
	}

	level, err := x.MSLevel(`scan=2`)
	if err != nil {
		t.Errorf("MSLevel: error return %v", err)
	}
	if level != 2 {
		t.Errorf("MSLevel: %d, should be 2", level)
	}

	peaks, err := x.Peaks(`scan=1`)
	if err != nil {
		t.Errorf("Peaks: error return %v", err)
	}
	want := []Peak{
		{Mz: 400.5, Intens: 10.0},
		{Mz: 501.0, Intens: 20.0},
		{Mz: 502.0, Intens: 30.0},
	}
	if diff := cmp.Diff(want, peaks); diff != "" {
		t.Errorf("Peaks mismatch (-want +got):\n%s", diff)
	}

	// The caller's slice must be left alone
	if spectra[0].Peaks[0].Mz != 502.0 {
		t.Errorf("NewIndex: input peaks were reordered: %v", spectra[0].Peaks)
	}

	// Peakless scan yields an empty list, not an error
	peaks, err = x.Peaks(`scan=3`)
	if err != nil {
		t.Errorf("Peaks: error return %v for peakless scan", err)
	}
	if len(peaks) != 0 {
		t.Errorf("Peaks: %d peaks for peakless scan, should be 0", len(peaks))
	}
}

func TestIndexUnknownScanID(t *testing.T) {
	x, err := NewIndex(testSpectra())
	if err != nil {
		t.Fatalf("NewIndex: error return %v", err)
	}

	if _, err = x.RetentionTime(`scan=99`); !errors.Is(err, ErrInvalidScanID) {
		t.Errorf("RetentionTime: error return %v, should be ErrInvalidScanID", err)
	}
	if _, err = x.MSLevel(`scan=99`); !errors.Is(err, ErrInvalidScanID) {
		t.Errorf("MSLevel: error return %v, should be ErrInvalidScanID", err)
	}
	if _, err = x.Peaks(`scan=99`); !errors.Is(err, ErrInvalidScanID) {
		t.Errorf("Peaks: error return %v, should be ErrInvalidScanID", err)
	}
}

func TestNewIndexDuplicateScanID(t *testing.T) {
	spectra := testSpectra()
	spectra[2].ID = `scan=1`
	_, err := NewIndex(spectra)
	if !errors.Is(err, ErrDuplicateScanID) {
		t.Errorf("NewIndex: error return %v, should be ErrDuplicateScanID", err)
	}
}

func TestNewIndexInvalidSpectrum(t *testing.T) {
	spectra := testSpectra()
	spectra[1].MSLevel = 0
	if _, err := NewIndex(spectra); err == nil {
		t.Errorf("NewIndex: no error for invalid spectrum")
	}
}

func TestIndexScans(t *testing.T) {
	x, err := NewIndex(testSpectra())
	if err != nil {
		t.Fatalf("NewIndex: error return %v", err)
	}
	want := []ScanRef{
		{ID: `scan=1`, RetentionTime: 10.0},
		{ID: `scan=2`, RetentionTime: 11.0},
		{ID: `scan=3`, RetentionTime: 12.0},
	}
	if diff := cmp.Diff(want, x.Scans()); diff != "" {
		t.Errorf("Scans mismatch (-want +got):\n%s", diff)
	}
}
