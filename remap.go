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
	"fmt"
	"math"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// missingTol is the relative tolerance used when comparing field values
// against the declared missing-value sentinel.
const missingTol = 1.e-6

// Remapper remaps a depth-space source field onto a z-star layer grid.
type Remapper struct {
	// SourceFile is the path to the NetCDF file holding the source field.
	SourceFile string
	// VarName is the name of the source field variable.
	VarName string
	// ZUnits are the units of the source vertical coordinate
	// ("m", "cm", or "km").
	ZUnits string
	// LandValue fills the target layers of masked or zero-thickness
	// columns.
	LandValue float64
	// TimeIndex selects the record to read when the source field has a
	// leading time dimension.
	TimeIndex int
	// TolerateMissingSurface zeroes ocean surface cells that hold the
	// missing-value sentinel instead of treating them as fatal input
	// errors. Missing values below the surface are always filled by
	// repeating the last valid value above them.
	TolerateMissingSurface bool
}

// RemapFromSource reads the named field from the NetCDF file at path and
// conservatively remaps it onto the z-star grid defined by the target
// layer thicknesses (layer, y, x) and the bathymetry and mask in grid.
// Progress and data-quality warnings are sent on msgChan if it is not nil.
// ok is false when the source file cannot be used at all; errors that
// indicate corrupt scientific input cause a panic instead, because
// guessing would silently produce wrong physics.
func RemapFromSource(path, varName string, thickness *sparse.DenseArray, grid Grid, zUnits string, landValue float64, msgChan chan string) (field *sparse.DenseArray, ok bool) {
	r := &Remapper{
		SourceFile:             path,
		VarName:                varName,
		ZUnits:                 zUnits,
		LandValue:              landValue,
		TolerateMissingSurface: true,
	}
	return r.Remap(thickness, grid, msgChan)
}

// Remap remaps the configured source field onto the z-star grid defined
// by the target layer thicknesses (layer, y, x) and grid. See
// RemapFromSource.
func (r *Remapper) Remap(thickness *sparse.DenseArray, grid Grid, msgChan chan string) (*sparse.DenseArray, bool) {
	src, ok := readZSource(r.SourceFile, r.VarName, r.TimeIndex, r.ZUnits, msgChan)
	if !ok {
		return nil, false
	}
	ny, nx := grid.Ny(), grid.Nx()
	if len(thickness.Shape) != 3 || thickness.Shape[1] != ny || thickness.Shape[2] != nx {
		sendMsg(msgChan, fmt.Sprintf("zremap: thickness field shape %v does not match %dx%d grid",
			thickness.Shape, ny, nx))
		return nil, false
	}
	if src.data.Shape[1] != ny || src.data.Shape[2] != nx {
		sendMsg(msgChan, fmt.Sprintf("zremap: source field %s shape %v does not match %dx%d grid",
			r.VarName, src.data.Shape, ny, nx))
		return nil, false
	}
	nlay := thickness.Shape[0]
	out := sparse.ZerosDense(nlay, ny, nx)

	type empty struct{}
	sem := make(chan empty, ny) // semaphore pattern
	for j := 0; j < ny; j++ {
		go func(j int) { // concurrent processing; columns are independent
			sc := newColumnScratch(nlay, src.data.Shape[0])
			colOut := make([]float64, nlay)
			for i := 0; i < nx; i++ {
				r.remapColumnAt(src, thickness, grid, j, i, sc, colOut, msgChan)
				for k := 0; k < nlay; k++ {
					out.Set(colOut[k], k, j, i)
				}
			}
			sem <- empty{}
		}(j)
	}
	for j := 0; j < ny; j++ { // wait for routines to finish
		<-sem
	}
	return out, true
}

// columnScratch holds the per-worker buffers reused across columns, sized
// once from the maximum source and target level counts.
type columnScratch struct {
	h, e       []float64 // target layer thicknesses and interfaces
	trIn       []float64 // prepared source column
	wt, z1, z2 []float64
	slope      []float64
	slopeSet   []bool
}

func newColumnScratch(nlay, nPts int) *columnScratch {
	return &columnScratch{
		h:        make([]float64, nlay),
		e:        make([]float64, nlay+1),
		trIn:     make([]float64, nPts),
		wt:       make([]float64, nPts),
		z1:       make([]float64, nPts),
		z2:       make([]float64, nPts),
		slope:    make([]float64, nPts),
		slopeSet: make([]bool, nPts),
	}
}

// remapColumnAt builds the z-star interfaces for column (j,i), prepares
// the source column, and remaps it, writing one value per target layer
// into colOut.
func (r *Remapper) remapColumnAt(src *zSource, thickness *sparse.DenseArray, grid Grid, j, i int, sc *columnScratch, colOut []float64, msgChan chan string) {
	if grid.Mask(j, i) < 0.5 {
		fill(colOut, r.LandValue)
		return
	}
	nlay := len(sc.h)
	for k := 0; k < nlay; k++ {
		sc.h[k] = thickness.Get(k, j, i)
	}
	if !zStarInterfaces(grid.Depth(j, i), sc.h, sc.e) {
		fill(colOut, r.LandValue)
		return
	}
	nPts := src.data.Shape[0]
	trIn := sc.trIn[:nPts]
	for k := 0; k < nPts; k++ {
		trIn[k] = src.data.Get(k, j, i)
	}
	r.prepColumn(src, trIn, grid.LonLat(j, i), msgChan)
	remapColumn(trIn, src.edges, src.hasEdges, sc.e, colOut, sc)
}

// prepColumn applies missing-value substitution to one prepared source
// column. A sentinel at the ocean surface cannot be interpolated and is
// either zeroed with a warning or treated as a fatal input-data error,
// depending on configuration; sentinels below the surface are filled by
// vertical persistence of the last valid value above.
func (r *Remapper) prepColumn(src *zSource, trIn []float64, pt geom.Point, msgChan chan string) {
	if !src.useMissing {
		return
	}
	if isMissing(trIn[0], src.missing) {
		if !r.TolerateMissingSurface {
			panic(fmt.Errorf("zremap: %s: %s has a missing value at the ocean surface at (%g, %g)",
				r.SourceFile, r.VarName, pt.X, pt.Y))
		}
		sendMsg(msgChan, fmt.Sprintf("zremap: warning: %s has a missing value at the ocean surface at (%g, %g); using 0",
			r.VarName, pt.X, pt.Y))
		trIn[0] = 0
	}
	for k := 1; k < len(trIn); k++ {
		if isMissing(trIn[k], src.missing) {
			trIn[k] = trIn[k-1] // persistence fill
		}
	}
}

// remapColumn remaps one prepared source column onto the target interfaces
// e, writing one conservative layer average per target layer into out.
// zE holds the source interfaces (or centers, when hasEdges is false, in
// which case the profile is interpolated linearly between adjacent
// averages). Target layers that lie wholly outside the source depth range
// take the nearest boundary cell's value; layers that partially stick out
// blend that boundary value in proportionally to the out-of-range depth
// fraction.
func remapColumn(trIn, zE []float64, hasEdges bool, e []float64, out []float64, sc *columnScratch) {
	nc := len(zE) - 1
	vBot := trIn[len(trIn)-1]
	for i := range sc.slopeSet {
		sc.slopeSet[i] = false
	}
	kStart := 0
	for k := range out {
		zTop, zBot := e[k], e[k+1]
		switch {
		case zBot > zE[0]:
			// Entirely above the data; clamp to the top value.
			out[k] = trIn[0]
		case zTop <= zE[nc]:
			// Entirely below the data; clamp to the bottom value.
			out[k] = vBot
		default:
			zT := math.Min(zTop, zE[0])
			zB := math.Max(zBot, zE[nc])
			kTop, kBot := FindOverlap(zE, zT, zB, nc-1, kStart, sc.wt, sc.z1, sc.z2)
			var v float64
			if kTop <= nc-1 {
				for kz := kTop; kz <= kBot; kz++ {
					zAvg := 0.5 * (sc.z1[kz] + sc.z2[kz])
					if hasEdges {
						sl := 0.0
						if kz >= 1 && kz <= nc-2 {
							if !sc.slopeSet[kz] {
								sc.slope[kz] = FindLimitedSlope(trIn, zE, kz)
								sc.slopeSet[kz] = true
							}
							sl = sc.slope[kz]
						}
						v += sc.wt[kz] * (trIn[kz] + sl*zAvg)
					} else {
						v += sc.wt[kz] * (trIn[kz] + (trIn[kz+1]-trIn[kz])*(zAvg+0.5))
					}
				}
				kStart = kBot
			}
			if kTop == 0 && zTop > zE[0] {
				frac := (zTop - zE[0]) / (zTop - zBot)
				v = frac*trIn[0] + (1-frac)*v
			}
			if kBot == nc-1 && zBot < zE[nc] {
				frac := (zE[nc] - zBot) / (zTop - zBot)
				v = frac*vBot + (1-frac)*v
			}
			out[k] = v
		}
	}
}

func isMissing(v, missing float64) bool {
	return math.Abs(v-missing) <= missingTol*math.Abs(missing)
}

func fill(s []float64, v float64) {
	for i := range s {
		s[i] = v
	}
}
