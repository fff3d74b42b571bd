/*
 * integer.go, part of gocryst.
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

package crystmath

import "github.com/gocryst/gocryst/v3"

//IntegerLinearSystem is a solved integer system a*x = b. X is one
//special solution and Nullspace spans the solutions of a*x = 0, one
//basis vector per row.
type IntegerLinearSystem struct {
	Rank      int
	X         []int
	Nullspace [][]int
}

//SolveIntegerLinearSystem solves a*x = b over the integers via the
//Smith normal form. It returns nil when the system has no solution or
//no nontrivial nullspace.
func SolveIntegerLinearSystem(a [][]int, b []int) *IntegerLinearSystem {
	n := len(a[0])
	snf := NewSNF(a)
	rank := snf.Rank()
	if rank == n {
		return nil
	}

	//solve D*y = L*b, then x = R*y
	y := make([]int, n)
	for i := 0; i < rank; i++ {
		lb := 0
		for j := range b {
			lb += snf.L[i][j] * b[j]
		}
		if lb%snf.D[i][i] != 0 {
			return nil
		}
		y[i] = lb / snf.D[i][i]
	}
	x := make([]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x[i] += snf.R[i][j] * y[j]
		}
	}

	nullspace := make([][]int, n-rank)
	for k := range nullspace {
		nullspace[k] = make([]int, n)
		for i := 0; i < n; i++ {
			nullspace[k][i] = snf.R[i][rank+k]
		}
	}
	return &IntegerLinearSystem{Rank: rank, X: x, Nullspace: nullspace}
}

//Sylvester3 returns an integer basis of the solutions P of the
//simultaneous conjugation equations A[i]*P = P*B[i]. The equations are
//vectorized row-major as (I otimes A - B^T otimes I) vec(P) = 0. A nil
//return means only the trivial solution exists.
func Sylvester3(a, b []v3.IMat) []v3.IMat {
	size := len(a)
	coeffs := make([][]int, 9*size)
	//entry (i, j) of A*P - P*B:
	//sum_l A[i][l] P[l][j] - P[i][l] B[l][j] with vec(P)[3r+c] = P[r][c]
	for k := 0; k < size; k++ {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				row := make([]int, 9)
				for l := 0; l < 3; l++ {
					row[3*l+j] += a[k][i][l]
					row[3*i+l] -= b[k][l][j]
				}
				coeffs[9*k+3*i+j] = row
			}
		}
	}

	zero := make([]int, 9*size)
	sol := SolveIntegerLinearSystem(coeffs, zero)
	if sol == nil {
		return nil
	}
	basis := make([]v3.IMat, 0, len(sol.Nullspace))
	for _, row := range sol.Nullspace {
		var p v3.IMat
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				p[i][j] = row[3*i+j]
			}
		}
		basis = append(basis, p)
	}
	return basis
}
