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

import "math"

// FindOverlap determines which of the cells bounded by the interface
// heights e overlap with the depth range between zTop and zBot, and the
// fractional weight of each overlapping cell. The interfaces decrease
// monotonically (index 0 is the shallowest) and zTop > zBot. The scan
// starts at cell kStart and never considers cells beyond kMax, so calling
// with monotonically deepening ranges and kStart set to the previous
// call's kBot makes the search across a whole column linear in the number
// of cells.
//
// For each overlapping cell k, z1[k] and z2[k] are the bounds of the
// overlapping portion in a coordinate normalized by the cell thickness and
// centered on the cell, so that -0.5 is the cell top and 0.5 the cell
// bottom. Weights are normalized to sum to 1 unless the range has
// collapsed to zero thickness, in which case they are left zero and the
// caller treats the range as contributing nothing.
//
// A returned kTop greater than kMax means the range lies entirely below
// the deepest interface considered; no weights are set.
func FindOverlap(e []float64, zTop, zBot float64, kMax, kStart int, wt, z1, z2 []float64) (kTop, kBot int) {
	// The first cell whose bottom interface is below zTop intersects the
	// range from above.
	k := kStart
	for ; k <= kMax; k++ {
		if e[k+1] < zTop {
			break
		}
	}
	kTop = k
	if k > kMax {
		return kTop, k
	}

	if e[k+1] <= zBot {
		// The entire range is contained within cell k.
		kBot = k
		wt[k] = 1
		ih := 1 / (e[k] - e[k+1])
		ec := 0.5 * (e[k] + e[k+1])
		z1[k] = (ec - math.Min(e[k], zTop)) * ih
		z2[k] = (ec - zBot) * ih
		return kTop, kBot
	}

	// Accumulate downward: a partial contribution from the first cell,
	// full thicknesses in between, and the portion above zBot from the
	// terminating cell.
	wt[k] = math.Min(e[k], zTop) - e[k+1]
	wtTot := wt[k]
	z1[k] = (0.5*(e[k]+e[k+1]) - math.Min(e[k], zTop)) / (e[k] - e[k+1])
	z2[k] = 0.5
	kBot = kMax
	for k = kTop + 1; k <= kMax; k++ {
		if e[k+1] <= zBot {
			kBot = k
			wt[k] = e[k] - zBot
			z1[k] = -0.5
			z2[k] = (0.5*(e[k]+e[k+1]) - zBot) / (e[k] - e[k+1])
		} else {
			wt[k] = e[k] - e[k+1]
			z1[k] = -0.5
			z2[k] = 0.5
		}
		wtTot += wt[k]
		if k == kBot {
			break
		}
	}
	if wtTot > 0 {
		iWt := 1 / wtTot
		for k = kTop; k <= kBot; k++ {
			wt[k] *= iWt
		}
	}
	return kTop, kBot
}

// FindLimitedSlope returns a monotonicity-limited estimate of the change of
// val across cell k, in units of the value per cell thickness. The
// reconstruction val[k] + slope*z for z in [-0.5, 0.5] never leaves the
// range spanned by val[k-1], val[k], and val[k+1]. Valid for
// 1 <= k <= len(val)-2; e holds the len(val)+1 interface heights.
func FindLimitedSlope(val, e []float64, k int) float64 {
	if (val[k]-val[k-1])*(val[k]-val[k+1]) >= 0 {
		// Local extremum; flatten the reconstruction.
		return 0
	}
	d1 := 0.5 * (e[k-1] - e[k+1])
	d2 := 0.5 * (e[k] - e[k+2])
	if d1*d2 <= 0 {
		return 0
	}
	slope := (d1*d1*(val[k+1]-val[k]) + d2*d2*(val[k]-val[k-1])) *
		(e[k] - e[k+1]) / (d1 * d2 * (d1 + d2))
	// Monotonic constraint (Lin et al. 1994, eq. B-9).
	dMx := math.Max(math.Max(val[k-1], val[k]), val[k+1]) - val[k]
	dMn := val[k] - math.Min(math.Min(val[k-1], val[k]), val[k+1])
	return math.Copysign(math.Min(math.Abs(slope), 2*math.Min(dMx, dMn)), slope)
}
