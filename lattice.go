/*
 * lattice.go, part of gocryst.
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

package cryst

import (
	"math"

	"github.com/gocryst/gocryst/crystmath"
	"github.com/gocryst/gocryst/v3"
)

//EPS is the tolerance used for exact-arithmetic comparisons, such as
//recognizing a translation that should be a small rational number.
const EPS = 1e-8

//Lattice represents the basis vectors of a lattice. Basis column i is
//the i-th basis vector, so cartesian coordinates are Basis times
//fractional coordinates.
type Lattice struct {
	Basis v3.Mat3
}

//NewLattice creates a lattice from row basis vectors, the common
//external convention: rowBasis[i] is the i-th basis vector.
func NewLattice(rowBasis v3.Mat3) Lattice {
	return Lattice{Basis: rowBasis.Transpose()}
}

//NewLatticeFromColumns creates a lattice whose basis columns are
//already the basis vectors.
func NewLatticeFromColumns(basis v3.Mat3) Lattice {
	return Lattice{Basis: basis}
}

//MetricTensor returns basis^T * basis.
func (l Lattice) MetricTensor() v3.Mat3 {
	return l.Basis.Transpose().Mul(l.Basis)
}

//CartesianCoords converts fractional to cartesian coordinates.
func (l Lattice) CartesianCoords(frac v3.Vec) v3.Vec {
	return l.Basis.MulVec(frac)
}

//Volume returns the cell volume.
func (l Lattice) Volume() float64 {
	return math.Abs(l.Basis.Det())
}

//Rotate returns the lattice rotated by the cartesian rotation matrix.
func (l Lattice) Rotate(rotation v3.Mat3) Lattice {
	return Lattice{Basis: rotation.Mul(l.Basis)}
}

//MinkowskiReduce returns the Minkowski-reduced lattice and the integer
//transformation matrix to it.
func (l Lattice) MinkowskiReduce() (Lattice, v3.IMat, error) {
	reduced, trans := crystmath.MinkowskiReduce(l.Basis)
	rl := Lattice{Basis: reduced}
	if !rl.IsMinkowskiReduced() {
		return rl, trans, ErrMinkowskiReduction
	}
	return rl, trans, nil
}

//IsMinkowskiReduced returns true if the basis vectors are Minkowski
//reduced.
func (l Lattice) IsMinkowskiReduced() bool {
	return crystmath.IsMinkowskiReduced(l.Basis)
}

//NiggliReduce returns the Niggli-reduced lattice and the integer
//transformation matrix to it.
func (l Lattice) NiggliReduce() (Lattice, v3.IMat, error) {
	rl, trans := l.UncheckedNiggliReduce()
	if !rl.IsNiggliReduced() {
		return rl, trans, ErrNiggliReduction
	}
	return rl, trans, nil
}

//UncheckedNiggliReduce is NiggliReduce without verifying the reduction
//conditions afterwards.
func (l Lattice) UncheckedNiggliReduce() (Lattice, v3.IMat) {
	reduced, trans := crystmath.NiggliReduce(l.Basis)
	return Lattice{Basis: reduced}, trans
}

//IsNiggliReduced returns true if the basis vectors are Niggli reduced.
func (l Lattice) IsNiggliReduced() bool {
	return crystmath.IsNiggliReduced(l.Basis)
}

//DelaunayReduce returns the Delaunay-reduced lattice and the integer
//transformation matrix to it.
func (l Lattice) DelaunayReduce() (Lattice, v3.IMat) {
	reduced, trans := crystmath.DelaunayReduce(l.Basis)
	return Lattice{Basis: reduced}, trans
}

//Transform returns the lattice with basis*linear as the new basis.
func (l Lattice) Transform(linear v3.Mat3) Lattice {
	return Lattice{Basis: l.Basis.Mul(linear)}
}

//Parameters returns the conventional cell parameters
//(a, b, c, alpha, beta, gamma), angles in degrees.
func (l Lattice) Parameters() (a, b, c, alpha, beta, gamma float64) {
	va := v3.Vec{l.Basis[0][0], l.Basis[1][0], l.Basis[2][0]}
	vb := v3.Vec{l.Basis[0][1], l.Basis[1][1], l.Basis[2][1]}
	vc := v3.Vec{l.Basis[0][2], l.Basis[1][2], l.Basis[2][2]}
	a, b, c = va.Norm(), vb.Norm(), vc.Norm()
	deg := 180.0 / math.Pi
	alpha = math.Acos(vb.Dot(vc)/(b*c)) * deg
	beta = math.Acos(vc.Dot(va)/(c*a)) * deg
	gamma = math.Acos(va.Dot(vb)/(a*b)) * deg
	return a, b, c, alpha, beta, gamma
}
