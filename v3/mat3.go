/*
 * mat3.go, part of gocryst.
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

//mat3.go holds the fixed-size float types. They are plain arrays, so they
//can be compared, hashed and copied by value; the gonum machinery is
//reached through ToDense/Mat3FromDense when a factorization is needed.

package v3

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

//Vec is a 3-vector. Operations return copies, the receiver is never
//modified.
type Vec [3]float64

//Add returns v+w.
func (v Vec) Add(w Vec) Vec {
	return Vec{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

//Sub returns v-w.
func (v Vec) Sub(w Vec) Vec {
	return Vec{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

//Scale returns s*v.
func (v Vec) Scale(s float64) Vec {
	return Vec{s * v[0], s * v[1], s * v[2]}
}

//Dot returns the dot product of v and w.
func (v Vec) Dot(w Vec) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

//Cross returns the cross product of v and w.
func (v Vec) Cross(w Vec) Vec {
	return Vec{
		v[1]*w[2] - v[2]*w[1],
		v[2]*w[0] - v[0]*w[2],
		v[0]*w[1] - v[1]*w[0],
	}
}

//Norm returns the Euclidean norm of v.
func (v Vec) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

//Norm2 returns the squared Euclidean norm of v.
func (v Vec) Norm2() float64 {
	return v.Dot(v)
}

//Mod1 wraps every component of v into [0,1).
func (v Vec) Mod1() Vec {
	var r Vec
	for i := 0; i < 3; i++ {
		r[i] = v[i] - math.Floor(v[i])
		if r[i] >= 1 { //guards against -1e-17 flooring to -1
			r[i] = 0
		}
	}
	return r
}

//Round returns the nearest integer vector to v.
func (v Vec) Round() IVec {
	return IVec{int(math.Round(v[0])), int(math.Round(v[1])), int(math.Round(v[2]))}
}

//IsInteger reports whether every component of v is within tol of an
//integer.
func (v Vec) IsInteger(tol float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(v[i]-math.Round(v[i])) > tol {
			return false
		}
	}
	return true
}

//Mat3 is a 3x3 float matrix, stored row-major.
type Mat3 [3][3]float64

//Ident3 returns the 3x3 identity.
func Ident3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

//Mul returns m*n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				r[i][j] += m[i][k] * n[k][j]
			}
		}
	}
	return r
}

//MulVec returns m*v, with v taken as a column vector.
func (m Mat3) MulVec(v Vec) Vec {
	var r Vec
	for i := 0; i < 3; i++ {
		r[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2]
	}
	return r
}

//Transpose returns the transpose of m.
func (m Mat3) Transpose() Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

//Add returns m+n.
func (m Mat3) Add(n Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][j] + n[i][j]
		}
	}
	return r
}

//Scale returns s*m.
func (m Mat3) Scale(s float64) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = s * m[i][j]
		}
	}
	return r
}

//Det returns the determinant of m.
func (m Mat3) Det() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

//Inverse returns the inverse of m, computed through gonum. It returns an
//error for a (numerically) singular matrix.
func (m Mat3) Inverse() (Mat3, error) {
	var inv mat.Dense
	if err := inv.Inverse(m.ToDense()); err != nil {
		return Mat3{}, Error{ErrSingular.Error(), []string{"Mat3.Inverse"}, true}
	}
	return Mat3FromDense(&inv), nil
}

//ToDense copies m into a gonum Dense.
func (m Mat3) ToDense() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2],
	})
}

//Mat3FromDense copies a 3x3 gonum matrix into a Mat3. It panics if d is
//not 3x3.
func Mat3FromDense(d mat.Matrix) Mat3 {
	r, c := d.Dims()
	if r != 3 || c != 3 {
		panic(ErrShape)
	}
	var m Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = d.At(i, j)
		}
	}
	return m
}

//Row returns the i-th row of m.
func (m Mat3) Row(i int) Vec {
	return Vec{m[i][0], m[i][1], m[i][2]}
}

//SetRow returns a copy of m with the i-th row replaced by v.
func (m Mat3) SetRow(i int, v Vec) Mat3 {
	m[i] = [3]float64{v[0], v[1], v[2]}
	return m
}
