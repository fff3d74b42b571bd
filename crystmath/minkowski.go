/*
 * minkowski.go, part of gocryst.
 *
 * Copyright 2024 The gocryst developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Greedy Minkowski reduction after Nguyen and Stehle. In three
//dimensions the greedy algorithm is known to reach a Minkowski-reduced
//basis (Proc. R. Soc. Lond. A (1992) 436, 55).

package crystmath

import (
	"math"

	"github.com/gocryst/gocryst/v3"
)

//MinkowskiReduce returns the Minkowski-reduced basis together with the
//integer transformation matrix T such that reduced = basis*T. T has
//determinant +1.
func MinkowskiReduce(basis v3.Mat3) (v3.Mat3, v3.IMat) {
	reduced := basis
	trans := v3.IdentI()
	minkowskiGreedy(&reduced, &trans, 3)

	if trans.Det() < 0 {
		reduced = reduced.Scale(-1)
		trans = trans.Neg()
	}
	return reduced, trans
}

//IsMinkowskiReduced reports whether the column basis is Minkowski
//reduced. The coefficient vectors below are the only ones that can
//beat the second and third basis vectors when the basis is sorted by
//length.
func IsMinkowskiReduced(basis v3.Mat3) bool {
	norms := [3]float64{colNorm(basis, 0), colNorm(basis, 1), colNorm(basis, 2)}
	if norms[0] > norms[1]+eps || norms[1] > norms[2]+eps {
		return false
	}
	for _, coeffs := range [][3]float64{{1, -1, 0}, {1, 1, 0}} {
		if basis.MulVec(v3.Vec(coeffs)).Norm()+eps < norms[1] {
			return false
		}
	}
	for _, coeffs := range [][3]float64{
		{1, 0, 1}, {1, 0, -1}, {0, 1, 1}, {0, 1, -1},
		{1, -1, -1}, {1, -1, 1}, {1, 1, -1}, {1, 1, 1},
	} {
		if basis.MulVec(v3.Vec(coeffs)).Norm()+eps < norms[2] {
			return false
		}
	}
	return true
}

//minkowskiGreedy reduces the first rank columns of basis in place,
//keeping basis*trans invariant.
func minkowskiGreedy(basis *v3.Mat3, trans *v3.IMat, rank int) {
	if rank == 1 {
		return
	}

	cc := newCycleChecker()
	for {
		//sort basis vectors by length
		for i := 0; i < rank; i++ {
			for j := 0; j < rank-1-i; j++ {
				if colNorm(*basis, j) > colNorm(*basis, j+1)+eps {
					swapColumns(basis, j, j+1)
					*trans = trans.Mul(swapColMat(j, j+1))
				}
			}
		}

		minkowskiGreedy(basis, trans, rank-1)

		//closest vector problem for the last column, projected onto
		//the span of the already reduced ones (Gram-Schmidt)
		n := rank - 1
		var gs [2]float64
		if n == 1 {
			gs[0] = dotCols(*basis, 0, 1) / dotCols(*basis, 0, 0)
		} else {
			h01 := dotCols(*basis, 0, 1) / dotCols(*basis, 0, 0)
			h10 := dotCols(*basis, 1, 0) / dotCols(*basis, 1, 1)
			u0 := dotCols(*basis, 0, 2) / dotCols(*basis, 0, 0)
			u1 := dotCols(*basis, 1, 2) / dotCols(*basis, 1, 1)
			det := 1 - h01*h10
			gs[0] = (u0 - h01*u1) / det
			gs[1] = (u1 - h10*u0) / det
		}
		var rint [2]int
		for i := 0; i < n; i++ {
			rint[i] = int(math.Round(gs[i]))
		}

		//the shorter columns are Minkowski reduced already, so offsets
		//in [-1, 1] around the rounded coefficients cover all Voronoi
		//relevant vectors
		cvpMin := math.Inf(1)
		var coeffsMin [2]int
		var cMin v3.Vec
		for _, off := range voronoiOffsets(n) {
			var coeffs [2]int
			var c v3.Vec
			for i := 0; i < n; i++ {
				coeffs[i] = rint[i] + off[i]
				c = c.Add(column(*basis, i).Scale(float64(coeffs[i])))
			}
			cvp := c.Sub(column(*basis, n)).Norm()
			if cvp < cvpMin {
				cvpMin = cvp
				coeffsMin = coeffs
				cMin = c
			}
		}

		setColumn(basis, n, column(*basis, n).Sub(cMin))
		add := v3.IdentI()
		for i := 0; i < n; i++ {
			add[i][n] = -coeffsMin[i]
		}
		*trans = trans.Mul(add)

		//loop until the length ordering stops changing
		if colNorm(*basis, n)+eps > colNorm(*basis, n-1) {
			break
		}
		if !cc.insert(*trans) {
			break
		}
	}
}

func voronoiOffsets(n int) [][2]int {
	if n == 1 {
		return [][2]int{{-1, 0}, {0, 0}, {1, 0}}
	}
	out := make([][2]int, 0, 9)
	for o0 := -1; o0 <= 1; o0++ {
		for o1 := -1; o1 <= 1; o1++ {
			out = append(out, [2]int{o0, o1})
		}
	}
	return out
}

func column(m v3.Mat3, j int) v3.Vec {
	return v3.Vec{m[0][j], m[1][j], m[2][j]}
}

func setColumn(m *v3.Mat3, j int, v v3.Vec) {
	m[0][j] = v[0]
	m[1][j] = v[1]
	m[2][j] = v[2]
}

func swapColumns(m *v3.Mat3, i, j int) {
	for k := 0; k < 3; k++ {
		m[k][i], m[k][j] = m[k][j], m[k][i]
	}
}

func colNorm(m v3.Mat3, j int) float64 {
	return column(m, j).Norm()
}

func dotCols(m v3.Mat3, i, j int) float64 {
	return column(m, i).Dot(column(m, j))
}

//swapColMat returns the elementary matrix exchanging columns i and j.
func swapColMat(i, j int) v3.IMat {
	m := v3.IMat{}
	for k := 0; k < 3; k++ {
		switch k {
		case i:
			m[i][j] = 1
		case j:
			m[j][i] = 1
		default:
			m[k][k] = 1
		}
	}
	return m
}

//addColMat returns the elementary matrix adding k times column i into
//column j.
func addColMat(i, j, k int) v3.IMat {
	m := v3.IdentI()
	m[i][j] = k
	return m
}

//negColMat returns the elementary matrix negating column j.
func negColMat(j int) v3.IMat {
	m := v3.IdentI()
	m[j][j] = -1
	return m
}
