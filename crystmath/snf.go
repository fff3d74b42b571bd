/*
 * snf.go, part of gocryst.
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

//SNF is the Smith normal form of an integer matrix: D = L * basis * R
//with L and R unimodular and D diagonal.
type SNF struct {
	D [][]int
	L [][]int
	R [][]int
}

//NewSNF computes the Smith normal form of an MxN integer matrix.
func NewSNF(basis [][]int) *SNF {
	m := len(basis)
	n := len(basis[0])
	d := cloneIntMat(basis)
	l := identIntMat(m)
	r := identIntMat(n)

	mn := m
	if n < mn {
		mn = n
	}
	for s := 0; s < mn; s++ {
		for {
			//pivot element with the smallest nonzero absolute value
			pi, pj := -1, -1
			for i := s; i < m; i++ {
				for j := s; j < n; j++ {
					if d[i][j] != 0 && (pi < 0 || absInt(d[i][j]) < absInt(d[pi][pj])) {
						pi, pj = i, j
					}
				}
			}
			if pi < 0 {
				break
			}

			d[s], d[pi] = d[pi], d[s]
			l[s], l[pi] = l[pi], l[s]
			swapIntCols(d, s, pj)
			swapIntCols(r, s, pj)

			if d[s][s] < 0 {
				negIntCol(d, s)
				negIntCol(r, s)
			}

			update := false
			for i := s + 1; i < m; i++ {
				k := d[i][s] / d[s][s]
				if k != 0 {
					update = true
					for j := 0; j < n; j++ {
						d[i][j] -= k * d[s][j]
					}
					for j := 0; j < m; j++ {
						l[i][j] -= k * l[s][j]
					}
				}
			}
			for j := s + 1; j < n; j++ {
				k := d[s][j] / d[s][s]
				if k != 0 {
					update = true
					for i := 0; i < m; i++ {
						d[i][j] -= k * d[i][s]
					}
					for i := 0; i < n; i++ {
						r[i][j] -= k * r[i][s]
					}
				}
			}
			if !update {
				break
			}
		}
	}
	return &SNF{D: d, L: l, R: r}
}

//Rank returns the number of nonzero diagonal entries of D.
func (s *SNF) Rank() int {
	mn := len(s.D)
	if len(s.D[0]) < mn {
		mn = len(s.D[0])
	}
	rank := 0
	for i := 0; i < mn; i++ {
		if s.D[i][i] != 0 {
			rank++
		}
	}
	return rank
}

//SNF3 is the Smith normal form of a 3x3 integer matrix with the
//factors held as fixed-size matrices.
type SNF3 struct {
	D, L, R v3.IMat
}

//NewSNF3 computes the Smith normal form of a 3x3 integer matrix.
func NewSNF3(basis v3.IMat) SNF3 {
	rows := make([][]int, 3)
	for i := 0; i < 3; i++ {
		rows[i] = []int{basis[i][0], basis[i][1], basis[i][2]}
	}
	snf := NewSNF(rows)
	var out SNF3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.D[i][j] = snf.D[i][j]
			out.L[i][j] = snf.L[i][j]
			out.R[i][j] = snf.R[i][j]
		}
	}
	return out
}
