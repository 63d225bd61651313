// Copyright 2018 Rob Marissen.
// SPDX-License-Identifier: MIT

package isoquant

import (
	"fmt"
	"sort"

	"github.com/524D/isoquant/msdata"
	"github.com/524D/isoquant/msident"
)

// Sample is one point of an extracted trace: the summed intensity of
// the peaks matching one isotopologue in one nearby MS1 scan, tagged
// with the theoretical m/z the match was done against. A sample is
// emitted for every (nearby scan, isotopologue) pair, even when no
// peak matched.
type Sample struct {
	RetentionTime float64
	Iso           int
	Intens        float64
	Mz            float64
}

// Trace extracts the intensity-over-time trace of one identification.
// It resolves the elution scan's retention time, then walks all MS1
// scans within the retention time window and sums, per requested
// isotopologue, the intensities of the peaks inside the mass tolerance
// band around the isotopologue's theoretical m/z.
//
// A missing elution scan or a non-positive mass or charge fails the
// identification; a window without MS1 scans yields an empty trace and
// no error. Samples are ordered by retention time, isotopologues in
// request order within one scan.
func (q *Quantifier) Trace(ident msident.Identification) ([]Sample, error) {
	if ident.Mass <= 0 {
		return nil, fmt.Errorf("%w: mass %g", ErrDegenerateInput, ident.Mass)
	}
	if ident.Charge <= 0 {
		return nil, fmt.Errorf("%w: charge %g", ErrDegenerateInput, ident.Charge)
	}
	refRT, err := q.scans.RetentionTime(ident.ScanID)
	if err != nil {
		return nil, fmt.Errorf("%w: scan %s: %v", ErrMissingScan, ident.ScanID, err)
	}

	// m/z of the monoisotopic precursor
	prec := (ident.Mass + ident.Charge*massProton) / ident.Charge

	nearby := q.ms1InRtWindow(refRT-q.cfg.RTTolerance, refRT+q.cfg.RTTolerance)
	samples := make([]Sample, 0, len(nearby)*len(q.cfg.Isotopologues))
	for _, scan := range nearby {
		peaks, err := q.scans.Peaks(scan.id)
		if err != nil {
			return nil, fmt.Errorf("%w: scan %s: %v", ErrMissingScan, scan.id, err)
		}
		for _, iso := range q.cfg.Isotopologues {
			mz := prec + float64(iso)*massProton/ident.Charge
			sum := intensityInMzWindow(
				mz-mz*q.cfg.MassTolerance/2,
				mz+mz*q.cfg.MassTolerance/2,
				peaks)
			samples = append(samples, Sample{
				RetentionTime: scan.rt,
				Iso:           iso,
				Intens:        sum,
				Mz:            mz,
			})
		}
	}
	return samples, nil
}

// ms1InRtWindow returns the MS1 scans with rtMin <= rt <= rtMax,
// ordered by retention time
func (q *Quantifier) ms1InRtWindow(rtMin, rtMax float64) rtSpecs {
	i1 := sort.Search(len(q.rtOfMs1), func(i int) bool { return q.rtOfMs1[i].rt >= rtMin })
	i2 := sort.Search(len(q.rtOfMs1), func(i int) bool { return q.rtOfMs1[i].rt > rtMax })
	return q.rtOfMs1[i1:i2]
}

// intensityInMzWindow sums the intensities of the peaks strictly
// inside the given mz window; peaks exactly on a bound do not match.
// Peaks must be ordered by mz prior to calling this function
func intensityInMzWindow(mzMin, mzMax float64, peaks []msdata.Peak) float64 {
	i1 := sort.Search(len(peaks), func(i int) bool { return peaks[i].Mz > mzMin })

	var sum float64
	for i := i1; i < len(peaks) && peaks[i].Mz < mzMax; i++ {
		sum += peaks[i].Intens
	}
	return sum
}
