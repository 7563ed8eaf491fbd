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
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/sparse"
)

func TestRemapDataWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.nc")

	field := denseArray([]int{2, 2, 3},
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12)
	d := new(RemapData)
	d.AddVariable("temp", "potential temperature", "degC", field)

	w, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Write(w); err != nil {
		t.Fatal(err)
	}
	w.Close()

	got, err := ReadField(path, "temp")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Shape) != 3 || got.Shape[0] != 2 || got.Shape[1] != 2 || got.Shape[2] != 3 {
		t.Fatalf("shape: want [2 2 3], got %v", got.Shape)
	}
	for i, want := range field.Elements {
		if math.Abs(got.Elements[i]-want) > 1e-6 {
			t.Errorf("element %d: want %g, got %g", i, want, got.Elements[i])
		}
	}
}

func TestRemapDataWriteChecks(t *testing.T) {
	d := new(RemapData)
	w, err := os.Create(filepath.Join(t.TempDir(), "out.nc"))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if err := d.Write(w); err == nil {
		t.Error("empty data: want error")
	}

	d.AddVariable("a", "", "", sparse.ZerosDense(2, 2, 2))
	d.AddVariable("b", "", "", sparse.ZerosDense(2, 2, 3))
	if err := d.Write(w); err == nil {
		t.Error("mismatched shapes: want error")
	}
}

func TestStats(t *testing.T) {
	grid := &testGrid{
		nx:    2,
		ny:    1,
		depth: []float64{30, 30},
		mask:  []float64{1, 0},
	}
	field := denseArray([]int{2, 1, 2},
		1, -100,
		3, -100)

	s := Stats(field, grid)
	if s.OceanCells != 2 || s.LandCells != 2 {
		t.Fatalf("cells: want 2 ocean and 2 land, got %d and %d", s.OceanCells, s.LandCells)
	}
	if s.Min != 1 || s.Max != 3 || s.Mean != 2 {
		t.Errorf("want min 1, max 3, mean 2; got %g, %g, %g", s.Min, s.Max, s.Mean)
	}
	if math.Abs(s.StdDev-math.Sqrt2) > 1e-12 {
		t.Errorf("stddev: want %g, got %g", math.Sqrt2, s.StdDev)
	}
}
