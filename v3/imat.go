/*
 * imat.go, part of gocryst.
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

//imat.go holds the integer companions of Mat3 and Vec. Rotation parts of
//symmetry operations and basis-change matrices are exact integer objects;
//keeping them as int arrays makes them comparable (usable as map keys)
//and immune to rounding.

package v3

//IVec is an integer 3-vector.
type IVec [3]int

//Add returns v+w.
func (v IVec) Add(w IVec) IVec {
	return IVec{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

//Sub returns v-w.
func (v IVec) Sub(w IVec) IVec {
	return IVec{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

//Neg returns -v.
func (v IVec) Neg() IVec {
	return IVec{-v[0], -v[1], -v[2]}
}

//ToVec converts v to a float Vec.
func (v IVec) ToVec() Vec {
	return Vec{float64(v[0]), float64(v[1]), float64(v[2])}
}

//IMat is a 3x3 integer matrix, stored row-major.
type IMat [3][3]int

//IdentI returns the integer identity matrix.
func IdentI() IMat {
	return IMat{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

//Mul returns m*n.
func (m IMat) Mul(n IMat) IMat {
	var r IMat
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				r[i][j] += m[i][k] * n[k][j]
			}
		}
	}
	return r
}

//MulVec returns m*v for an integer column vector v.
func (m IMat) MulVec(v IVec) IVec {
	var r IVec
	for i := 0; i < 3; i++ {
		r[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2]
	}
	return r
}

//MulVecF returns m*v for a float column vector v.
func (m IMat) MulVecF(v Vec) Vec {
	var r Vec
	for i := 0; i < 3; i++ {
		r[i] = float64(m[i][0])*v[0] + float64(m[i][1])*v[1] + float64(m[i][2])*v[2]
	}
	return r
}

//Transpose returns the transpose of m.
func (m IMat) Transpose() IMat {
	var r IMat
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

//Neg returns -m.
func (m IMat) Neg() IMat {
	var r IMat
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = -m[i][j]
		}
	}
	return r
}

//Det returns the determinant of m.
func (m IMat) Det() int {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

//Trace returns the trace of m.
func (m IMat) Trace() int {
	return m[0][0] + m[1][1] + m[2][2]
}

//Adjugate returns the adjugate of m, so that m.Mul(m.Adjugate()) equals
//Det(m) times the identity.
func (m IMat) Adjugate() IMat {
	var r IMat
	r[0][0] = m[1][1]*m[2][2] - m[1][2]*m[2][1]
	r[0][1] = m[0][2]*m[2][1] - m[0][1]*m[2][2]
	r[0][2] = m[0][1]*m[1][2] - m[0][2]*m[1][1]
	r[1][0] = m[1][2]*m[2][0] - m[1][0]*m[2][2]
	r[1][1] = m[0][0]*m[2][2] - m[0][2]*m[2][0]
	r[1][2] = m[0][2]*m[1][0] - m[0][0]*m[1][2]
	r[2][0] = m[1][0]*m[2][1] - m[1][1]*m[2][0]
	r[2][1] = m[0][1]*m[2][0] - m[0][0]*m[2][1]
	r[2][2] = m[0][0]*m[1][1] - m[0][1]*m[1][0]
	return r
}

//IsUnimodular reports whether det(m) is +1 or -1.
func (m IMat) IsUnimodular() bool {
	d := m.Det()
	return d == 1 || d == -1
}

//Inverse returns the exact inverse of a unimodular m. It panics for any
//other determinant; callers deal with non-unimodular matrices through
//Adjugate and Det.
func (m IMat) Inverse() IMat {
	d := m.Det()
	if d != 1 && d != -1 {
		panic(ErrSingular)
	}
	adj := m.Adjugate()
	if d == -1 {
		adj = adj.Neg()
	}
	return adj
}

//ToMat3 converts m to a float Mat3.
func (m IMat) ToMat3() Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = float64(m[i][j])
		}
	}
	return r
}

//IMatFromMat3 rounds a float matrix to the nearest integer matrix and
//reports whether every entry was within tol of that integer.
func IMatFromMat3(m Mat3, tol float64) (IMat, bool) {
	var r IMat
	ok := true
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := m[i][j]
			n := int(iround(v))
			r[i][j] = n
			if v-float64(n) > tol || float64(n)-v > tol {
				ok = false
			}
		}
	}
	return r, ok
}

func iround(v float64) float64 {
	if v < 0 {
		return float64(int(v - 0.5))
	}
	return float64(int(v + 0.5))
}
