/*
Copyright © 2018 the zremap authors.
This file is part of zremap.

zremap is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

zremap is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with zremap.  If not, see <http://www.gnu.org/licenses/>.
*/

package zremap

import (
	"math"
	"testing"
)

func TestFindOverlapSingleCell(t *testing.T) {
	e := []float64{0, -10}
	wt := make([]float64, 1)
	z1 := make([]float64, 1)
	z2 := make([]float64, 1)

	kTop, kBot := FindOverlap(e, -2, -6, 0, 0, wt, z1, z2)
	if kTop != 0 || kBot != 0 {
		t.Fatalf("want kTop=0, kBot=0; got %d, %d", kTop, kBot)
	}
	if wt[0] != 1 {
		t.Errorf("wt: want 1, got %g", wt[0])
	}
	// The normalized coordinate has the cell center at 0 and the bottom
	// at 0.5.
	if math.Abs(z1[0]-(-0.3)) > 1e-14 {
		t.Errorf("z1: want -0.3, got %g", z1[0])
	}
	if math.Abs(z2[0]-0.1) > 1e-14 {
		t.Errorf("z2: want 0.1, got %g", z2[0])
	}
}

func TestFindOverlapMultiCell(t *testing.T) {
	e := []float64{0, -10, -20, -30}
	wt := make([]float64, 3)
	z1 := make([]float64, 3)
	z2 := make([]float64, 3)

	kTop, kBot := FindOverlap(e, -5, -25, 2, 0, wt, z1, z2)
	if kTop != 0 || kBot != 2 {
		t.Fatalf("want kTop=0, kBot=2; got %d, %d", kTop, kBot)
	}
	wantWt := []float64{0.25, 0.5, 0.25}
	var tot float64
	for k := range wantWt {
		if math.Abs(wt[k]-wantWt[k]) > 1e-14 {
			t.Errorf("wt[%d]: want %g, got %g", k, wantWt[k], wt[k])
		}
		tot += wt[k]
	}
	if math.Abs(tot-1) > 1e-14 {
		t.Errorf("weights sum to %g; want 1", tot)
	}
	// Partial first and last cells, whole cell in the middle.
	if z1[0] != 0 || z2[0] != 0.5 {
		t.Errorf("first cell: want (0, 0.5), got (%g, %g)", z1[0], z2[0])
	}
	if z1[1] != -0.5 || z2[1] != 0.5 {
		t.Errorf("middle cell: want (-0.5, 0.5), got (%g, %g)", z1[1], z2[1])
	}
	if z1[2] != -0.5 || z2[2] != 0 {
		t.Errorf("last cell: want (-0.5, 0), got (%g, %g)", z1[2], z2[2])
	}
}

func TestFindOverlapBelowData(t *testing.T) {
	e := []float64{0, -10, -20}
	wt := make([]float64, 2)
	z1 := make([]float64, 2)
	z2 := make([]float64, 2)

	kTop, _ := FindOverlap(e, -25, -30, 1, 0, wt, z1, z2)
	if kTop <= 1 {
		t.Errorf("range below the deepest interface: want kTop > kMax, got %d", kTop)
	}
}

func TestFindOverlapScanChaining(t *testing.T) {
	// Restarting the scan at the previous kBot gives the same result as
	// scanning from the top.
	e := []float64{0, -7, -13, -26, -41}
	wt := make([]float64, 4)
	z1 := make([]float64, 4)
	z2 := make([]float64, 4)

	_, kBot := FindOverlap(e, -2, -10, 3, 0, wt, z1, z2)
	kTop2, kBot2 := FindOverlap(e, -10, -30, 3, kBot, wt, z1, z2)
	kTop2b, kBot2b := FindOverlap(e, -10, -30, 3, 0, wt, z1, z2)
	if kTop2 != kTop2b || kBot2 != kBot2b {
		t.Errorf("chained scan (%d, %d) differs from full scan (%d, %d)",
			kTop2, kBot2, kTop2b, kBot2b)
	}
}

func TestFindLimitedSlope(t *testing.T) {
	e := []float64{0, -1, -2, -3}

	// A local extremum flattens the reconstruction.
	if got := FindLimitedSlope([]float64{1, 5, 1}, e, 1); got != 0 {
		t.Errorf("extremum: want 0, got %g", got)
	}

	// Linear data on a uniform mesh give the per-cell change.
	if got := FindLimitedSlope([]float64{1, 2, 3}, e, 1); math.Abs(got-1) > 1e-14 {
		t.Errorf("linear: want 1, got %g", got)
	}

	// A large jump is limited so the reconstruction stays within the
	// range of the neighboring averages.
	got := FindLimitedSlope([]float64{0, 1, 10}, e, 1)
	if math.Abs(got-2) > 1e-14 {
		t.Errorf("limited: want 2, got %g", got)
	}
}

func TestFindLimitedSlopeBounded(t *testing.T) {
	e := []float64{0, -2, -5, -6}
	val := []float64{2, 4, 9}
	sl := FindLimitedSlope(val, e, 1)
	lo := math.Min(val[0], math.Min(val[1], val[2]))
	hi := math.Max(val[0], math.Max(val[1], val[2]))
	for _, z := range []float64{-0.5, 0, 0.5} {
		v := val[1] + sl*z
		if v < lo-1e-12 || v > hi+1e-12 {
			t.Errorf("reconstruction %g at z=%g leaves [%g, %g]", v, z, lo, hi)
		}
	}
}
