/*
 * hnf.go, part of gocryst.
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

//HNF is the column-wise Hermite normal form of an integer matrix:
//H = basis * R with R unimodular.
type HNF struct {
	H [][]int
	R [][]int
}

//NewHNF computes the column-wise Hermite normal form of an MxN integer
//matrix.
func NewHNF(basis [][]int) *HNF {
	m := len(basis)
	n := len(basis[0])
	h := cloneIntMat(basis)
	r := identIntMat(n)

	for s := 0; s < m; s++ {
		for {
			allZero := true
			for j := s; j < n; j++ {
				if h[s][j] != 0 {
					allZero = false
					break
				}
			}
			if allZero {
				break
			}

			//pivot column with the smallest nonzero absolute value
			pivot := -1
			for j := s; j < n; j++ {
				if h[s][j] != 0 && (pivot < 0 || absInt(h[s][j]) < absInt(h[s][pivot])) {
					pivot = j
				}
			}
			swapIntCols(h, s, pivot)
			swapIntCols(r, s, pivot)

			if h[s][s] < 0 {
				negIntCol(h, s)
				negIntCol(r, s)
			}

			update := false
			for j := 0; j < n; j++ {
				if j == s {
					continue
				}
				k := divEuclid(h[s][j], h[s][s])
				if k != 0 {
					update = true
					for i := 0; i < m; i++ {
						h[i][j] -= k * h[i][s]
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
	return &HNF{H: h, R: r}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

//divEuclid is integer division rounding toward negative infinity for
//positive divisors, matching Euclidean division with b > 0.
func divEuclid(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func cloneIntMat(a [][]int) [][]int {
	out := make([][]int, len(a))
	for i := range a {
		out[i] = make([]int, len(a[i]))
		copy(out[i], a[i])
	}
	return out
}

func identIntMat(n int) [][]int {
	out := make([][]int, n)
	for i := range out {
		out[i] = make([]int, n)
		out[i][i] = 1
	}
	return out
}

func swapIntCols(a [][]int, i, j int) {
	for k := range a {
		a[k][i], a[k][j] = a[k][j], a[k][i]
	}
}

func negIntCol(a [][]int, j int) {
	for k := range a {
		a[k][j] = -a[k][j]
	}
}

func mulIntMat(a, b [][]int) [][]int {
	m := len(a)
	k := len(b)
	n := len(b[0])
	out := make([][]int, m)
	for i := 0; i < m; i++ {
		out[i] = make([]int, n)
		for j := 0; j < n; j++ {
			s := 0
			for l := 0; l < k; l++ {
				s += a[i][l] * b[l][j]
			}
			out[i][j] = s
		}
	}
	return out
}
