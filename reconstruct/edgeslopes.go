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

// Package reconstruct estimates derivatives of sub-cell profiles at the
// edges of one-dimensional cells from cell-average data on a non-uniform
// mesh. The estimators are implicit: each edge slope is coupled to its
// neighbors through a tridiagonal system, which yields third-order (h3)
// or fifth-order (h5) accuracy rather than the lower order of a purely
// local finite difference.
package reconstruct

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Answers selects between two numerically distinct but mathematically
// equivalent formulations of the polynomial-fit coefficients. They agree
// on smooth data to within discretization error and differ only in
// floating-point cancellation behavior.
type Answers int

const (
	// Answers2018 reproduces the original 2018 formulation, which builds
	// cell moments from differences of raw monomial powers.
	Answers2018 Answers = iota
	// AnswersCentered re-centers each cell moment on the cell midpoint,
	// which avoids the cancellation of the difference-of-powers form.
	AnswersCentered
)

// EdgeSlopesH3 returns third-order implicit estimates of the slope of the
// reconstructed profile at the edges of each of the cells with widths h and
// averages u. Row k of the result holds the slopes at the left and right
// edges of cell k, so the two entries describing an edge shared by
// neighboring cells are identical by construction. hNeglect is a negligible
// width added to denominators so that the estimates remain finite and
// continuous as cell widths shrink to zero. At least 4 cells are required.
func EdgeSlopesH3(h, u []float64, hNeglect float64, answers Answers) ([][2]float64, error) {
	n := len(h)
	if n < 4 {
		return nil, fmt.Errorf("reconstruct: EdgeSlopesH3 needs at least 4 cells, got %d", n)
	}
	if len(u) != n {
		return nil, fmt.Errorf("reconstruct: %d widths but %d averages", n, len(u))
	}

	dl, d, du, b := newSystem(n)

	// Interior edges: one combination row per edge, with closed-form
	// coefficients in the two neighboring cell widths. The row expresses
	//   alpha*s[r-1] + s[r] + beta*s[r+1] = a*(u[k] - u[k+1])
	// for edge r = k+1 between cells k and k+1, and is exact for
	// polynomial profiles through degree 3.
	for k := 0; k < n-1; k++ {
		r := k + 1
		p := h[k] + hNeglect
		q := h[k+1] + hNeglect
		s := p + q
		p2, q2 := p*p, q*q
		p3, q3 := p2*p, q2*q
		nrm := p3*p + q3*q + 5*(p3*q+p*q3) + 8*p2*q2
		a := -12 * s * p * q / nrm
		dl[r-1] = -(a / 12) * (p3 + 2*p2*q - q3) / (p * s)
		du[r] = -(a / 12) * (q3 + 2*q2*p - p3) / (q * s)
		b[r] = a * (u[k] - u[k+1])
	}

	// Boundary edges: seed the slope directly from a cubic fit through the
	// 4 cells nearest each boundary. du[0] and dl[n-1] stay zero, so these
	// are identity rows.
	var err error
	if b[0], err = boundaryEdgeSlope(h[:4], u[:4], false, hNeglect, answers); err != nil {
		return nil, err
	}
	if b[n], err = boundaryEdgeSlope(h[n-4:], u[n-4:], true, hNeglect, answers); err != nil {
		return nil, err
	}

	sol, err := solveTridiag(dl, d, du, b)
	if err != nil {
		return nil, err
	}
	return edgePairs(sol), nil
}

// EdgeSlopesH5 returns fifth-order implicit estimates of the edge slopes,
// in the same (N,2) encoding as EdgeSlopesH3. Each combination row couples
// an edge to its two neighboring edges and to the four nearest cell
// averages; the rows one cell in from each boundary fall back to a
// one-sided 4-cell stencil, and the boundary edges themselves are seeded
// from a degree-5 fit through the 6 nearest cells. At least 6 cells are
// required.
func EdgeSlopesH5(h, u []float64, hNeglect float64, answers Answers) ([][2]float64, error) {
	n := len(h)
	if n < 6 {
		return nil, fmt.Errorf("reconstruct: EdgeSlopesH5 needs at least 6 cells, got %d", n)
	}
	if len(u) != n {
		return nil, fmt.Errorf("reconstruct: %d widths but %d averages", n, len(u))
	}

	dl, d, du, b := newSystem(n)

	for r := 1; r <= n-1; r++ {
		// First cell of the 4-cell stencil: centered on edge r where
		// possible, biased one-sided next to the boundaries.
		c0 := r - 2
		if c0 < 0 {
			c0 = 0
		}
		if c0 > n-4 {
			c0 = n - 4
		}
		alpha, beta, a, err := edgeRowH5(h, r, c0, hNeglect, answers)
		if err != nil {
			return nil, err
		}
		dl[r-1] = alpha
		du[r] = beta
		b[r] = a[0]*u[c0] + a[1]*u[c0+1] + a[2]*u[c0+2] + a[3]*u[c0+3]
	}

	var err error
	if b[0], err = boundaryEdgeSlope(h[:6], u[:6], false, hNeglect, answers); err != nil {
		return nil, err
	}
	if b[n], err = boundaryEdgeSlope(h[n-6:], u[n-6:], true, hNeglect, answers); err != nil {
		return nil, err
	}

	sol, err := solveTridiag(dl, d, du, b)
	if err != nil {
		return nil, err
	}
	return edgePairs(sol), nil
}

// newSystem allocates the tridiagonal system for the n+1 edge unknowns,
// with the main diagonal pre-normalized to 1.
func newSystem(n int) (dl, d, du, b []float64) {
	dl = make([]float64, n)
	d = make([]float64, n+1)
	du = make([]float64, n)
	b = make([]float64, n+1)
	for r := range d {
		d[r] = 1
	}
	return dl, d, du, b
}

// edgePairs spreads the n+1 edge solutions into the (N,2) cell encoding.
func edgePairs(sol []float64) [][2]float64 {
	out := make([][2]float64, len(sol)-1)
	for k := range out {
		out[k][0] = sol[k]
		out[k][1] = sol[k+1]
	}
	return out
}

// edgeRowH5 derives the coefficients of one h5 combination row,
//
//	alpha*s[r-1] + s[r] + beta*s[r+1] = sum_m a[m]*u[c0+m],
//
// by requiring the row to hold exactly for every monomial profile through
// degree 5 over the 4-cell stencil starting at cell c0. The six exactness
// conditions form a dense 6×6 system in (alpha, beta, a0..a3).
func edgeRowH5(h []float64, r, c0 int, hNeglect float64, answers Answers) (alpha, beta float64, a [4]float64, err error) {
	w := func(i int) float64 { return h[i] + hNeglect }
	// pos is the position of the left edge of cell i, measured from edge r.
	pos := func(i int) float64 {
		x := 0.0
		if i < r {
			for m := i; m < r; m++ {
				x -= w(m)
			}
		} else {
			for m := r; m < i; m++ {
				x += w(m)
			}
		}
		return x
	}
	xL := -w(r - 1)
	xR := w(r)

	m6 := mat.NewDense(6, 6, nil)
	rhs := make([]float64, 6)
	for j := 0; j < 6; j++ {
		m6.Set(j, 0, dmono(xL, j))
		m6.Set(j, 1, dmono(xR, j))
		for m := 0; m < 4; m++ {
			x0 := pos(c0 + m)
			m6.Set(j, 2+m, -cellMoment(x0, x0+w(c0+m), j, answers))
		}
		rhs[j] = -dmono(0, j)
	}
	c, err := solveDense(m6, rhs)
	if err != nil {
		return 0, 0, a, err
	}
	copy(a[:], c[2:])
	return c[0], c[1], a, nil
}

// boundaryEdgeSlope fits a polynomial of degree len(h)-1 through the cells
// nearest a domain boundary, requiring the integral of the fit over each
// cell to match that cell's average, and returns the derivative of the fit
// evaluated at the boundary. atRight selects which end of the stencil is
// the boundary.
func boundaryEdgeSlope(h, u []float64, atRight bool, hNeglect float64, answers Answers) (float64, error) {
	m := len(h)
	a := mat.NewDense(m, m, nil)
	rhs := make([]float64, m)
	x0 := 0.0
	for i := 0; i < m; i++ {
		x1 := x0 + h[i] + hNeglect
		for j := 0; j < m; j++ {
			a.Set(i, j, cellMoment(x0, x1, j, answers))
		}
		rhs[i] = u[i]
		x0 = x1
	}
	c, err := solveDense(a, rhs)
	if err != nil {
		return 0, err
	}
	if atRight {
		return polyDerivVal(c, x0), nil
	}
	return polyDerivVal(c, 0), nil
}

// cellMoment is the average of x^j over the cell [x0, x1].
func cellMoment(x0, x1 float64, j int, answers Answers) float64 {
	if answers == Answers2018 {
		jf := float64(j + 1)
		return (math.Pow(x1, jf) - math.Pow(x0, jf)) / (jf * (x1 - x0))
	}
	mid := 0.5 * (x0 + x1)
	half := 0.5 * (x1 - x0)
	v := 0.0
	for r := 0; r <= j; r += 2 {
		v += binomial(j, r) * math.Pow(mid, float64(j-r)) * math.Pow(half, float64(r)) / float64(r+1)
	}
	return v
}

// dmono is the derivative of x^j evaluated at x.
func dmono(x float64, j int) float64 {
	if j == 0 {
		return 0
	}
	return float64(j) * math.Pow(x, float64(j-1))
}
