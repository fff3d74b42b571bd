/*
 * v3.go, part of gocryst.
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

package v3

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space, one site per row. It wraps a
//gonum Dense with 3 columns so the gonum machinery (QR, Cholesky, etc.)
//stays available where the fixed-size types below fall short.
type Matrix struct {
	*mat.Dense
}

//Matrix2Dense returns the underlying Dense of A.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

//Dense2Matrix wraps a 3-column Dense into a Matrix. It panics if A does
//not have exactly 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

//NewMatrix builds a Matrix from a row-major slice of coordinates, which
//must have a length divisible by 3.
func NewMatrix(data []float64) (*Matrix, error) {
	if len(data) < 3 {
		return nil, Error{ErrNotEnoughElements.Error(), []string{"NewMatrix"}, true}
	}
	if len(data)%3 != 0 {
		return nil, Error{fmt.Sprintf("%s: %d values", ErrNotXx3Matrix.Error(), len(data)), []string{"NewMatrix"}, true}
	}
	return &Matrix{mat.NewDense(len(data)/3, 3, data)}, nil
}

//Zeros returns a zero-filled Matrix with vecs rows.
func Zeros(vecs int) *Matrix {
	return &Matrix{mat.NewDense(vecs, 3, nil)}
}

//NVecs returns the number of row vectors in F.
func (F *Matrix) NVecs() int {
	r, _ := F.Dense.Dims()
	return r
}

//Len returns the number of row vectors in F, for gonum compatibility.
func (F *Matrix) Len() int {
	return F.NVecs()
}

//Vec returns the i-th row of F as a Vec copy.
func (F *Matrix) Vec(i int) Vec {
	return Vec{F.At(i, 0), F.At(i, 1), F.At(i, 2)}
}

//SetVec overwrites the i-th row of F with v.
func (F *Matrix) SetVec(i int, v Vec) {
	F.Set(i, 0, v[0])
	F.Set(i, 1, v[1])
	F.Set(i, 2, v[2])
}

//VecView returns a view (not a copy) of the i-th row of F.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//Copy returns a fresh copy of F.
func (F *Matrix) Copy() *Matrix {
	r := Zeros(F.NVecs())
	r.Dense.Copy(F.Dense)
	return r
}

//Mul puts A*B in F, as in gonum.
func (F *Matrix) Mul(A, B mat.Matrix) {
	F.Dense.Mul(A, B)
}

//Errors

//Error is the error type for the v3 package, implementing the
//cryst.Error interface (kept structural to avoid a circular import).
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of
//the error, and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or can be ignored.
func (err Error) Critical() bool { return err.critical }

//PanicMsg is a message used for panics; it does satisfy the error
//interface, but for recoverable conditions use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix      = PanicMsg("gocryst/v3: A Matrix should have 3 columns")
	ErrNotEnoughElements = PanicMsg("gocryst/v3: not enough elements in Matrix")
	ErrSingular          = PanicMsg("gocryst/v3: matrix is singular")
	ErrShape             = PanicMsg("gocryst/v3: Dimension mismatch")
	ErrIndexOutOfRange   = PanicMsg("gocryst/v3: index out of range")
)
