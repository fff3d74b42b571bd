/*
 * transformation.go, part of gocryst.
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

//Changes of origin and basis for affine space: (P, p) sends fractional
//coordinates x to P^-1 (x - p).

package cryst

import (
	"math"

	"github.com/gocryst/gocryst/crystmath"
	"github.com/gocryst/gocryst/v3"
)

//UnimodularTransformation is a change of basis with determinant one;
//it maps a primitive cell to another primitive cell of the same
//lattice.
type UnimodularTransformation struct {
	Linear      v3.IMat
	OriginShift v3.Vec
	linearInv   v3.IMat
}

//NewUnimodularTransformation panics if linear does not have
//determinant one.
func NewUnimodularTransformation(linear v3.IMat, originShift v3.Vec) UnimodularTransformation {
	if linear.Det() != 1 {
		panic(ErrNotUnimodular)
	}
	return UnimodularTransformation{
		Linear:      linear,
		OriginShift: originShift,
		linearInv:   linear.Inverse(),
	}
}

//UnimodularFromLinear is NewUnimodularTransformation with a zero
//origin shift.
func UnimodularFromLinear(linear v3.IMat) UnimodularTransformation {
	return NewUnimodularTransformation(linear, v3.Vec{})
}

//UnimodularFromOriginShift shifts the origin without changing basis.
func UnimodularFromOriginShift(originShift v3.Vec) UnimodularTransformation {
	return NewUnimodularTransformation(v3.IdentI(), originShift)
}

//TransformLattice returns the lattice with basis*P.
func (t UnimodularTransformation) TransformLattice(lattice Lattice) Lattice {
	return lattice.Transform(t.Linear.ToMat3())
}

//TransformOperations conjugates each operation by (P, p).
func (t UnimodularTransformation) TransformOperations(operations []Operation) []Operation {
	out := make([]Operation, 0, len(operations))
	for _, op := range operations {
		rot := t.linearInv.Mul(op.Rotation).Mul(t.Linear)
		tr := t.linearInv.MulVecF(
			op.Rotation.MulVecF(t.OriginShift).Add(op.Translation).Sub(t.OriginShift))
		out = append(out, NewOperation(rot, tr))
	}
	return out
}

//TransformMagneticOperations conjugates magnetic operations by (P, p),
//leaving time reversal untouched.
func (t UnimodularTransformation) TransformMagneticOperations(operations []MagneticOperation) []MagneticOperation {
	out := make([]MagneticOperation, 0, len(operations))
	for _, mop := range operations {
		ops := t.TransformOperations([]Operation{mop.Operation})
		out = append(out, MagneticOperation{Operation: ops[0], TimeReversal: mop.TimeReversal})
	}
	return out
}

//TransformCell applies (P, p)^-1 x = P^-1 (x - p) to every site.
func (t UnimodularTransformation) TransformCell(cell *Cell) *Cell {
	newLattice := t.TransformLattice(cell.Lattice)
	newPositions := make([]v3.Vec, len(cell.Positions))
	for i, pos := range cell.Positions {
		newPositions[i] = t.linearInv.MulVecF(pos.Sub(t.OriginShift))
	}
	return NewCell(newLattice, newPositions, cloneNumbers(cell.Numbers))
}

//TransformMagneticCell transforms the positional part; moments ride
//along unchanged.
func (t UnimodularTransformation) TransformMagneticCell(mc *MagneticCell) *MagneticCell {
	moments := make([]Moment, len(mc.Moments))
	copy(moments, mc.Moments)
	return MagneticCellFromCell(t.TransformCell(mc.Cell), moments)
}

//Compose returns the product (P1, p1) (P2, p2) = (P1 P2, P1 p2 + p1).
func (t UnimodularTransformation) Compose(rhs UnimodularTransformation) UnimodularTransformation {
	return NewUnimodularTransformation(
		t.Linear.Mul(rhs.Linear),
		t.Linear.MulVecF(rhs.OriginShift).Add(t.OriginShift),
	)
}

//Inverse returns (P, p)^-1 = (P^-1, -P^-1 p).
func (t UnimodularTransformation) Inverse() UnimodularTransformation {
	return NewUnimodularTransformation(
		t.linearInv,
		t.linearInv.MulVecF(t.OriginShift).Scale(-1),
	)
}

//Transformation is a change of basis with positive determinant; the
//determinant is the index of the sublattice, so transforming a cell
//may multiply the number of sites.
type Transformation struct {
	Linear      v3.IMat
	OriginShift v3.Vec
	Size        int
	LinearInv   v3.Mat3
}

//NewTransformation panics if linear has a non-positive determinant.
func NewTransformation(linear v3.IMat, originShift v3.Vec) Transformation {
	det := linear.Det()
	if det <= 0 {
		panic(ErrNotPositiveDet)
	}
	inv, err := linear.ToMat3().Inverse()
	if err != nil {
		panic(ErrNotPositiveDet)
	}
	return Transformation{
		Linear:      linear,
		OriginShift: originShift,
		Size:        det,
		LinearInv:   inv,
	}
}

//TransformationFromLinear is NewTransformation with a zero origin
//shift.
func TransformationFromLinear(linear v3.IMat) Transformation {
	return NewTransformation(linear, v3.Vec{})
}

//TransformLattice returns the lattice with basis*P.
func (t Transformation) TransformLattice(lattice Lattice) Lattice {
	return lattice.Transform(t.Linear.ToMat3())
}

//InverseTransformLattice returns the lattice with basis*P^-1.
func (t Transformation) InverseTransformLattice(lattice Lattice) Lattice {
	return lattice.Transform(t.LinearInv)
}

//TransformOperations conjugates the operations into the sublattice
//setting, (P, p)^-1 (W, w) (P, p). Operations incompatible with the
//sublattice are dropped.
func (t Transformation) TransformOperations(operations []Operation) []Operation {
	out := make([]Operation, 0, len(operations))
	for _, op := range operations {
		if newOp, ok := transformOperationAsFloat(op, t.Linear.ToMat3(), t.LinearInv, t.OriginShift); ok {
			out = append(out, newOp)
		}
	}
	return out
}

//TransformMagneticOperations is TransformOperations on the spatial
//parts, carrying time reversal along.
func (t Transformation) TransformMagneticOperations(operations []MagneticOperation) []MagneticOperation {
	out := make([]MagneticOperation, 0, len(operations))
	for _, mop := range operations {
		if newOp, ok := transformOperationAsFloat(mop.Operation, t.Linear.ToMat3(), t.LinearInv, t.OriginShift); ok {
			out = append(out, MagneticOperation{Operation: newOp, TimeReversal: mop.TimeReversal})
		}
	}
	return out
}

//InverseTransformOperations conjugates the other way,
//(P, p) (W, w) (P, p)^-1.
func (t Transformation) InverseTransformOperations(operations []Operation) []Operation {
	shift := t.Linear.ToMat3().MulVec(t.OriginShift).Scale(-1)
	out := make([]Operation, 0, len(operations))
	for _, op := range operations {
		if newOp, ok := transformOperationAsFloat(op, t.LinearInv, t.Linear.ToMat3(), shift); ok {
			out = append(out, newOp)
		}
	}
	return out
}

//InverseTransformMagneticOperations is InverseTransformOperations on
//the spatial parts, carrying time reversal along.
func (t Transformation) InverseTransformMagneticOperations(operations []MagneticOperation) []MagneticOperation {
	shift := t.Linear.ToMat3().MulVec(t.OriginShift).Scale(-1)
	out := make([]MagneticOperation, 0, len(operations))
	for _, mop := range operations {
		if newOp, ok := transformOperationAsFloat(mop.Operation, t.LinearInv, t.Linear.ToMat3(), shift); ok {
			out = append(out, MagneticOperation{Operation: newOp, TimeReversal: mop.TimeReversal})
		}
	}
	return out
}

//TransformCell maps a cell to the sublattice setting. The returned
//mapping sends each site of the transformed cell to its source site.
func (t Transformation) TransformCell(cell *Cell) (*Cell, []int) {
	newLattice := t.TransformLattice(cell.Lattice)
	points := t.latticePoints()

	newPositions := make([]v3.Vec, 0, len(cell.Positions)*len(points))
	newNumbers := make([]int, 0, len(cell.Numbers)*len(points))
	siteMapping := make([]int, 0, len(cell.Positions)*len(points))
	for i, pos := range cell.Positions {
		for _, point := range points {
			newPos := t.LinearInv.MulVec(pos.Add(point))
			for k := 0; k < 3; k++ {
				newPos[k] = math.Mod(newPos[k], 1)
			}
			newPositions = append(newPositions, newPos)
			newNumbers = append(newNumbers, cell.Numbers[i])
			siteMapping = append(siteMapping, i)
		}
	}
	return NewCell(newLattice, newPositions, newNumbers), siteMapping
}

//TransformMagneticCell maps a magnetic cell to the sublattice setting,
//copying each site's moment to its images.
func (t Transformation) TransformMagneticCell(mc *MagneticCell) (*MagneticCell, []int) {
	newCell, siteMapping := t.TransformCell(mc.Cell)
	moments := make([]Moment, len(siteMapping))
	for i, src := range siteMapping {
		moments[i] = mc.Moments[src]
	}
	return MagneticCellFromCell(newCell, moments), siteMapping
}

//latticePoints enumerates distinct lattice points of the parent
//lattice inside the sublattice via the Smith normal form of P: with
//D = L P R, representatives are L^-1 f for f in Z_D0 x Z_D1 x Z_D2.
func (t Transformation) latticePoints() []v3.Vec {
	snf := crystmath.NewSNF3(t.Linear)
	linv := snf.L.Inverse()
	points := make([]v3.Vec, 0, t.Size)
	for f0 := 0; f0 < snf.D[0][0]; f0++ {
		for f1 := 0; f1 < snf.D[1][1]; f1++ {
			for f2 := 0; f2 < snf.D[2][2]; f2++ {
				points = append(points, linv.MulVec(v3.IVec{f0, f1, f2}).ToVec())
			}
		}
	}
	return points
}

//transformOperationAsFloat conjugates (W, w) by (linear, originShift).
//It fails when the conjugated rotation is not an integer matrix in the
//new basis.
func transformOperationAsFloat(op Operation, linear, linearInv v3.Mat3, originShift v3.Vec) (Operation, bool) {
	newRotF := linearInv.Mul(op.Rotation.ToMat3()).Mul(linear)
	newRot, ok := v3.IMatFromMat3(newRotF, EPS)
	if !ok {
		return Operation{}, false
	}
	//check the rounded rotation maps back to the original
	recovered := linear.Mul(newRot.ToMat3()).Mul(linearInv)
	back, ok := v3.IMatFromMat3(recovered, EPS)
	if !ok || back != op.Rotation {
		return Operation{}, false
	}
	newTrans := linearInv.MulVec(
		op.Rotation.MulVecF(originShift).Add(op.Translation).Sub(originShift))
	return NewOperation(newRot, newTrans), true
}
