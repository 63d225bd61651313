// Copyright 2018 Rob Marissen.
// SPDX-License-Identifier: MIT

package isoquant

import (
	"sort"

	"gonum.org/v1/gonum/integrate"
)

// Integrate collapses a trace into one area per requested
// isotopologue, in request order. The samples of each isotopologue are
// sorted by retention time and integrated with the trapezoidal rule.
// An isotopologue without samples gets area 0, as does a single sample
// (no width to integrate over), and a negative raw area is clamped to
// 0. The result always has len(isotopologues) elements.
//
// Integrate is a pure function: it never modifies the trace.
func Integrate(trace []Sample, isotopologues []int) []float64 {
	areas := make([]float64, len(isotopologues))
	for j, iso := range isotopologues {
		var pts []Sample
		for _, s := range trace {
			if s.Iso == iso {
				pts = append(pts, s)
			}
		}
		if len(pts) < 2 {
			continue
		}
		// The trapezoidal rule needs ascending x values. The stable
		// sort keeps samples with equal retention times in trace
		// order, so a given trace always integrates the same way.
		sort.SliceStable(pts, func(a, b int) bool {
			return pts[a].RetentionTime < pts[b].RetentionTime
		})
		rt := make([]float64, len(pts))
		intens := make([]float64, len(pts))
		for i, p := range pts {
			rt[i] = p.RetentionTime
			intens[i] = p.Intens
		}
		if area := integrate.Trapezoidal(rt, intens); area > 0 {
			areas[j] = area
		}
	}
	return areas
}
