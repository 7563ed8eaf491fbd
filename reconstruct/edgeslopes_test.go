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

package reconstruct

import (
	"math"
	"testing"
)

// cellAverages computes exact cell averages of the polynomial with
// antiderivative F over the mesh with cell widths h, starting at x=0.
func cellAverages(h []float64, F func(float64) float64) []float64 {
	u := make([]float64, len(h))
	x0 := 0.0
	for i, w := range h {
		x1 := x0 + w
		u[i] = (F(x1) - F(x0)) / w
		x0 = x1
	}
	return u
}

// edgePositions returns the n+1 edge positions of the mesh with cell
// widths h, starting at x=0.
func edgePositions(h []float64) []float64 {
	x := make([]float64, len(h)+1)
	for i, w := range h {
		x[i+1] = x[i] + w
	}
	return x
}

func checkEdgeSlopes(t *testing.T, got [][2]float64, x []float64, deriv func(float64) float64, tol float64) {
	t.Helper()
	for k := range got {
		for side, r := range []int{k, k + 1} {
			want := deriv(x[r])
			if math.Abs(got[k][side]-want) > tol*math.Max(1, math.Abs(want)) {
				t.Errorf("cell %d side %d: want %g, got %g", k, side, want, got[k][side])
			}
		}
	}
}

func TestEdgeSlopesH3Cubic(t *testing.T) {
	// The third-order estimator reproduces cubic profiles exactly on a
	// non-uniform mesh.
	h := []float64{0.5, 1.2, 0.8, 1.0, 0.7, 1.3}
	F := func(x float64) float64 { return x*x*x*x/4 - x*x }
	deriv := func(x float64) float64 { return 3*x*x - 2 }

	u := cellAverages(h, F)
	for _, answers := range []Answers{Answers2018, AnswersCentered} {
		got, err := EdgeSlopesH3(h, u, 0, answers)
		if err != nil {
			t.Fatal(err)
		}
		checkEdgeSlopes(t, got, edgePositions(h), deriv, 1e-9)
	}
}

func TestEdgeSlopesH3Uniform(t *testing.T) {
	// On a uniform mesh the interior rows reduce to the classical compact
	// scheme with neighbor coefficients 1/10.
	h := []float64{1, 1, 1, 1, 1}
	u := cellAverages(h, func(x float64) float64 { return x * x / 2 })

	got, err := EdgeSlopesH3(h, u, 0, Answers2018)
	if err != nil {
		t.Fatal(err)
	}
	for k := range got {
		for side := range got[k] {
			if math.Abs(got[k][side]-1) > 1e-12 {
				t.Errorf("cell %d side %d: want 1, got %g", k, side, got[k][side])
			}
		}
	}
}

func TestEdgeSlopesH5Quintic(t *testing.T) {
	// The fifth-order estimator reproduces quintic profiles exactly on a
	// non-uniform mesh.
	h := []float64{0.9, 1.1, 0.6, 1.4, 0.8, 1.2, 1.0, 0.7}
	F := func(x float64) float64 { return x * x * x * x * x * x / 6 }
	deriv := func(x float64) float64 { return 5 * x * x * x * x }

	u := cellAverages(h, F)
	for _, answers := range []Answers{Answers2018, AnswersCentered} {
		got, err := EdgeSlopesH5(h, u, 0, answers)
		if err != nil {
			t.Fatal(err)
		}
		checkEdgeSlopes(t, got, edgePositions(h), deriv, 1e-6)
	}
}

func TestEdgeSlopesContinuity(t *testing.T) {
	// The two entries describing a shared edge are identical, because both
	// come from the same edge unknown.
	h := []float64{0.5, 1.2, 0.8, 1.0, 0.7, 1.3, 0.9}
	u := []float64{3, 1, 4, 1, 5, 9, 2}

	got3, err := EdgeSlopesH3(h, u, 1e-10, Answers2018)
	if err != nil {
		t.Fatal(err)
	}
	got5, err := EdgeSlopesH5(h, u, 1e-10, Answers2018)
	if err != nil {
		t.Fatal(err)
	}
	for _, got := range [][][2]float64{got3, got5} {
		for k := 0; k < len(got)-1; k++ {
			if got[k][1] != got[k+1][0] {
				t.Errorf("cell %d: right slope %g does not match next cell's left slope %g",
					k, got[k][1], got[k+1][0])
			}
		}
	}
}

func TestEdgeSlopesAnswersAgree(t *testing.T) {
	// The two coefficient formulations agree on smooth data.
	h := []float64{0.9, 1.1, 0.6, 1.4, 0.8, 1.2, 1.0}
	u := cellAverages(h, func(x float64) float64 { return math.Sin(x) })

	a3, err := EdgeSlopesH3(h, u, 0, Answers2018)
	if err != nil {
		t.Fatal(err)
	}
	b3, err := EdgeSlopesH3(h, u, 0, AnswersCentered)
	if err != nil {
		t.Fatal(err)
	}
	for k := range a3 {
		for side := range a3[k] {
			if math.Abs(a3[k][side]-b3[k][side]) > 1e-6 {
				t.Errorf("cell %d side %d: %g vs %g", k, side, a3[k][side], b3[k][side])
			}
		}
	}
}

func TestEdgeSlopesZeroWidthCell(t *testing.T) {
	// A vanished cell must not poison the estimates when a negligible
	// width is supplied.
	h := []float64{1, 1, 0, 1, 1, 1}
	u := []float64{1, 2, 2.5, 3, 4, 5}

	got, err := EdgeSlopesH3(h, u, 1e-10, Answers2018)
	if err != nil {
		t.Fatal(err)
	}
	for k := range got {
		for side := range got[k] {
			if math.IsNaN(got[k][side]) || math.IsInf(got[k][side], 0) {
				t.Fatalf("cell %d side %d: non-finite slope %g", k, side, got[k][side])
			}
		}
	}
}

func TestEdgeSlopesArgumentChecks(t *testing.T) {
	if _, err := EdgeSlopesH3([]float64{1, 1, 1}, []float64{1, 2, 3}, 0, Answers2018); err == nil {
		t.Error("EdgeSlopesH3 with 3 cells: want error, got nil")
	}
	if _, err := EdgeSlopesH5([]float64{1, 1, 1, 1, 1}, []float64{1, 2, 3, 4, 5}, 0, Answers2018); err == nil {
		t.Error("EdgeSlopesH5 with 5 cells: want error, got nil")
	}
	if _, err := EdgeSlopesH3([]float64{1, 1, 1, 1}, []float64{1, 2}, 0, Answers2018); err == nil {
		t.Error("mismatched lengths: want error, got nil")
	}
}

func TestCellMoment(t *testing.T) {
	// Both formulations give the average of x^j over the cell.
	cases := []struct {
		x0, x1 float64
		j      int
		want   float64
	}{
		{0, 2, 0, 1},
		{0, 2, 1, 1},
		{1, 3, 2, 13. / 3.},
		{-1, 1, 3, 0},
	}
	for _, c := range cases {
		for _, answers := range []Answers{Answers2018, AnswersCentered} {
			got := cellMoment(c.x0, c.x1, c.j, answers)
			if math.Abs(got-c.want) > 1e-12 {
				t.Errorf("cellMoment(%g, %g, %d, %v): want %g, got %g",
					c.x0, c.x1, c.j, answers, c.want, got)
			}
		}
	}
}
