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
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// solveDense solves the small dense system a·x = b by LU decomposition with
// partial pivoting. It is shared by the boundary polynomial fits of both
// edge-slope estimators.
func solveDense(a *mat.Dense, b []float64) ([]float64, error) {
	var lu mat.LU
	lu.Factorize(a)
	var x mat.VecDense
	if err := lu.SolveVecTo(&x, false, mat.NewVecDense(len(b), b)); err != nil {
		return nil, fmt.Errorf("reconstruct: dense solve: %v", err)
	}
	out := make([]float64, len(b))
	for i := range out {
		out[i] = x.AtVec(i)
	}
	return out, nil
}

// solveTridiag solves the tridiagonal system with sub-diagonal dl, main
// diagonal d, and super-diagonal du. The rows assembled by the estimators
// are pre-normalized so that d is all ones.
func solveTridiag(dl, d, du, b []float64) ([]float64, error) {
	n := len(d)
	t := mat.NewTridiag(n, dl, d, du)
	var x mat.VecDense
	if err := t.SolveVecTo(&x, false, mat.NewVecDense(n, b)); err != nil {
		return nil, fmt.Errorf("reconstruct: tridiagonal solve: %v", err)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = x.AtVec(i)
	}
	return out, nil
}

// polyDerivVal evaluates the derivative of the polynomial with the given
// coefficients (constant term first) at x.
func polyDerivVal(c []float64, x float64) float64 {
	v := 0.0
	for j := len(c) - 1; j >= 1; j-- {
		v = v*x + float64(j)*c[j]
	}
	return v
}

// binomial returns the binomial coefficient n choose k for the small
// arguments used by the centered moment expansion.
func binomial(n, k int) float64 {
	v := 1.0
	for i := 0; i < k; i++ {
		v = v * float64(n-i) / float64(i+1)
	}
	return v
}
