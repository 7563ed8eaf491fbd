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
	"sort"

	"github.com/GaryBoone/GoStats/stats"
	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// RemapData holds one or more remapped (layer, y, x) fields ready to be
// written to a NetCDF file.
type RemapData struct {
	// Data is a map of information about the remapped variables, with the
	// keys being the variable names.
	Data map[string]struct {
		Description string             // variable description
		Units       string             // variable units
		Data        *sparse.DenseArray // variable data
	}
}

// AddVariable adds data for a new variable to d.
func (d *RemapData) AddVariable(name, description, units string, data *sparse.DenseArray) {
	if d.Data == nil {
		d.Data = make(map[string]struct {
			Description string
			Units       string
			Data        *sparse.DenseArray
		})
	}
	d.Data[name] = struct {
		Description string             // variable description
		Units       string             // variable units
		Data        *sparse.DenseArray // variable data
	}{
		Description: description,
		Units:       units,
		Data:        data,
	}
}

// Write writes d to netcdf file w. All variables must share the same
// (layer, y, x) shape.
func (d *RemapData) Write(w *os.File) error {
	if len(d.Data) == 0 {
		return fmt.Errorf("zremap: no variables to write")
	}

	// Sort the names so they write in the same order every time.
	names := make([]string, 0, len(d.Data))
	for n := range d.Data {
		names = append(names, n)
	}
	sort.Strings(names)

	shape := d.Data[names[0]].Data.Shape
	for _, name := range names {
		dd := d.Data[name]
		if len(dd.Data.Shape) != 3 {
			return fmt.Errorf("zremap: variable %s has %d dimensions; want 3",
				name, len(dd.Data.Shape))
		}
		for i, s := range dd.Data.Shape {
			if s != shape[i] {
				return fmt.Errorf("zremap: variable %s shape %v does not match %v",
					name, dd.Data.Shape, shape)
			}
		}
	}

	h := cdf.NewHeader([]string{"layer", "y", "x"}, shape)
	h.AddAttribute("", "comment", "z-star remapped ocean initial condition file")
	h.AddAttribute("", "nlay", []int32{int32(shape[0])})
	h.AddAttribute("", "ny", []int32{int32(shape[1])})
	h.AddAttribute("", "nx", []int32{int32(shape[2])})

	for _, name := range names {
		dd := d.Data[name]
		h.AddVariable(name, []string{"layer", "y", "x"}, []float32{0})
		h.AddAttribute(name, "description", dd.Description)
		h.AddAttribute(name, "units", dd.Units)
	}
	h.Define()

	f, err := cdf.Create(w, h) // writes the header to w
	if err != nil {
		return err
	}
	for _, name := range names {
		if err = writeNCF(f, name, d.Data[name].Data); err != nil {
			return fmt.Errorf("zremap: writing variable %s to netcdf file: %v", name, err)
		}
	}
	return cdf.UpdateNumRecs(w)
}

func writeNCF(f *cdf.File, Var string, data *sparse.DenseArray) error {
	// Check that data matches dimensions.
	n := 1
	for _, v := range data.Shape {
		n *= v
	}
	if len(data.Elements) != n {
		return fmt.Errorf("dims are %d but array length is %d", n, len(data.Elements))
	}
	data32 := make([]float32, len(data.Elements))
	for i, e := range data.Elements {
		data32[i] = float32(e)
	}
	end := f.Header.Lengths(Var)
	start := make([]int, len(end))
	w := f.Writer(Var, start, end)
	_, err := w.Write(data32)
	return err
}

// FieldStats summarizes a remapped (layer, y, x) field over its ocean
// columns, leaving out the land cells that only hold the fill value.
type FieldStats struct {
	OceanCells int
	LandCells  int
	Min, Max   float64
	Mean       float64
	StdDev     float64
}

// Stats computes summary statistics of the remapped field over the ocean
// columns of grid.
func Stats(field *sparse.DenseArray, grid Grid) FieldStats {
	var s stats.Stats
	var land int
	nlay := field.Shape[0]
	for j := 0; j < grid.Ny(); j++ {
		for i := 0; i < grid.Nx(); i++ {
			if grid.Mask(j, i) < 0.5 {
				land++
				continue
			}
			for k := 0; k < nlay; k++ {
				s.Update(field.Get(k, j, i))
			}
		}
	}
	out := FieldStats{
		OceanCells: s.Count(),
		LandCells:  land * nlay,
	}
	if s.Count() > 0 {
		out.Min = s.Min()
		out.Max = s.Max()
		out.Mean = s.Mean()
	}
	if s.Count() > 1 {
		out.StdDev = s.SampleStandardDeviation()
	}
	return out
}
