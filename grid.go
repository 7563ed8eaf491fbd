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
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
)

// Grid supplies the per-column information the remapper needs from the
// horizontal model domain.
type Grid interface {
	// Nx is the number of columns in the West-East direction.
	Nx() int
	// Ny is the number of columns in the South-North direction.
	Ny() int
	// Depth is the bathymetry depth of column (j,i) [m], positive down.
	Depth(j, i int) float64
	// Mask is 1 for ocean columns and 0 for land.
	Mask(j, i int) float64
	// LonLat is the geographic location of the column center, used to
	// make data-quality warnings traceable.
	LonLat(j, i int) geom.Point
}

// FileGrid is a Grid backed by a NetCDF grid description file holding
// 2-D bathymetry and land-mask variables and 1-D longitude and latitude
// coordinate variables.
type FileGrid struct {
	depth, mask *sparse.DenseArray
	lon, lat    []float64
}

// ReadFileGrid reads the named variables from the NetCDF file at path.
func ReadFileGrid(path, depthVar, maskVar, lonVar, latVar string) (*FileGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("zremap: opening grid file: %v", err)
	}
	defer f.Close()
	ff, err := cdf.Open(f)
	if err != nil {
		return nil, fmt.Errorf("zremap: reading grid file %s: %v", path, err)
	}
	g := new(FileGrid)
	if g.depth, err = readArray(ff, depthVar, 2); err != nil {
		return nil, err
	}
	if g.mask, err = readArray(ff, maskVar, 2); err != nil {
		return nil, err
	}
	if g.lon, err = read1D(ff, lonVar); err != nil {
		return nil, err
	}
	if g.lat, err = read1D(ff, latVar); err != nil {
		return nil, err
	}
	if g.depth.Shape[0] != len(g.lat) || g.depth.Shape[1] != len(g.lon) {
		return nil, fmt.Errorf("zremap: grid file %s: %s is %dx%d but coordinates are %dx%d",
			path, depthVar, g.depth.Shape[0], g.depth.Shape[1], len(g.lat), len(g.lon))
	}
	return g, nil
}

func (g *FileGrid) Nx() int { return len(g.lon) }

func (g *FileGrid) Ny() int { return len(g.lat) }

func (g *FileGrid) Depth(j, i int) float64 { return g.depth.Get(j, i) }

func (g *FileGrid) Mask(j, i int) float64 { return g.mask.Get(j, i) }

func (g *FileGrid) LonLat(j, i int) geom.Point {
	return geom.Point{X: g.lon[i], Y: g.lat[j]}
}

// zStarInterfaces fills e with the nlay+1 interface heights of a z-star
// column: the deepest interface sits at the bathymetry depth, and the
// layer thicknesses h are dilated by a common factor so the column total
// matches the bathymetry exactly. Interfaces decrease monotonically with
// index, matching the source-grid convention. Returns false for a column
// that cannot be built (non-positive depth or zero total thickness); the
// caller fills such columns with the land value.
func zStarInterfaces(depth float64, h, e []float64) bool {
	hTot := floats.Sum(h)
	if depth <= 0 || hTot <= 0 {
		return false
	}
	dilate := depth / hTot
	n := len(h)
	e[n] = -depth
	for k := n - 1; k >= 0; k-- {
		e[k] = e[k+1] + dilate*h[k]
	}
	return true
}
