/*
 * symmetry.go, part of gocryst.
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

package search

import (
	"math"

	cryst "github.com/gocryst/gocryst"
	v3 "github.com/gocryst/gocryst/v3"
)

//PrimitiveSymmetrySearch holds the coset representatives of a space
//group with respect to its translation subgroup.
type PrimitiveSymmetrySearch struct {
	//Operations in the given primitive cell. They form a group.
	Operations []cryst.Operation
	//Permutations[i] is the site permutation induced by
	//Operations[i].
	Permutations []cryst.Permutation
}

//NewPrimitiveSymmetrySearch searches the symmetry operations of a
//primitive cell whose basis vectors are Minkowski-reduced. If the
//group closure and the tolerances are incompatible, closure wins.
func NewPrimitiveSymmetrySearch(primitiveCell *cryst.Cell, symprec float64, angleTolerance cryst.AngleTolerance) (*PrimitiveSymmetrySearch, error) {
	roughSymprec := 2 * symprec
	if roughSymprec > basisColumn(primitiveCell.Lattice.Basis, 0).Norm()/2 {
		return nil, cryst.ErrTooLargeSymprec
	}

	bravaisGroup, err := SearchBravaisGroup(primitiveCell.Lattice, symprec, angleTolerance)
	if err != nil {
		return nil, err
	}

	pivots := pivotSiteIndices(primitiveCell.Numbers)
	src := pivots[0]
	type candidate struct {
		rotation    v3.IMat
		translation v3.Vec
		permutation cryst.Permutation
	}
	candidates := []candidate{}
	for _, rotation := range bravaisGroup {
		rotatedPositions := make([]v3.Vec, primitiveCell.NumAtoms())
		for i, pos := range primitiveCell.Positions {
			rotatedPositions[i] = rotation.MulVecF(pos)
		}
		for _, dst := range pivots {
			//try to overlap the src site onto the dst site
			translation := primitiveCell.Positions[dst].Sub(rotatedPositions[src])
			newPositions := make([]v3.Vec, len(rotatedPositions))
			for i, pos := range rotatedPositions {
				newPositions[i] = pos.Add(translation)
			}
			//keep scanning: the rough tolerance may admit several
			//translations for one rotation
			if permutation, ok := solveCorrespondence(primitiveCell, newPositions, roughSymprec); ok {
				candidates = append(candidates, candidate{rotation, translation, permutation})
			}
		}
	}

	operations := []cryst.Operation{}
	permutations := []cryst.Permutation{}
	for _, c := range candidates {
		translation, distance := symmetrizeTranslationFromPermutation(primitiveCell, c.permutation, c.rotation, c.translation)
		if distance < symprec {
			operations = append(operations, cryst.NewOperation(c.rotation, translation))
			permutations = append(permutations, c.permutation)
		}
	}
	if len(operations) == 0 {
		return nil, cryst.ErrTooSmallSymprec
	}

	closedOperations, closedPermutations := closeUnderMultiplication(operations, permutations, primitiveCell.NumAtoms())
	if len(closedOperations) != len(operations) {
		return nil, cryst.ErrTooLargeSymprec
	}
	if !checkClosure(closedOperations, primitiveCell.Lattice, roughSymprec) {
		return nil, cryst.ErrTooLargeSymprec
	}

	return &PrimitiveSymmetrySearch{
		Operations:   closedOperations,
		Permutations: closedPermutations,
	}, nil
}

//closeUnderMultiplication regenerates the operations by group
//multiplication, in a fixed breadth-first order, carrying the induced
//permutations along.
func closeUnderMultiplication(operations []cryst.Operation, permutations []cryst.Permutation, numAtoms int) ([]cryst.Operation, []cryst.Permutation) {
	type node struct {
		operation   cryst.Operation
		permutation cryst.Permutation
	}
	queue := []node{{cryst.IdentityOp(), cryst.IdentityPermutation(numAtoms)}}
	visited := make(map[v3.IMat]bool)
	outOperations := []cryst.Operation{}
	outPermutations := []cryst.Permutation{}
	for len(queue) > 0 {
		lhs := queue[0]
		queue = queue[1:]
		if visited[lhs.operation.Rotation] {
			continue
		}
		visited[lhs.operation.Rotation] = true
		outOperations = append(outOperations, lhs.operation)
		outPermutations = append(outPermutations, lhs.permutation)

		for k, rhs := range operations {
			newOp := lhs.operation.Mul(rhs)
			//only up to the translation subgroup
			newOp.Translation = roundFrac(newOp.Translation)
			queue = append(queue, node{newOp, lhs.permutation.Mul(permutations[k])})
		}
	}
	return outOperations, outPermutations
}

func checkClosure(operations []cryst.Operation, lattice cryst.Lattice, symprec float64) bool {
	translationsMap := make(map[v3.IMat]v3.Vec)
	for _, operation := range operations {
		translationsMap[operation.Rotation] = operation.Translation
	}
	for _, op1 := range operations {
		for _, op2 := range operations {
			op12 := op1.Mul(op2)
			diff := roundFrac(translationsMap[op12.Rotation].Sub(op12.Translation))
			if lattice.CartesianCoords(diff).Norm() > symprec {
				return false
			}
		}
	}
	return true
}

//PrimitiveMagneticSymmetrySearch holds the coset representatives of a
//magnetic space group with respect to its translation subgroup.
type PrimitiveMagneticSymmetrySearch struct {
	//Operations in the given primitive magnetic cell. They form a
	//group.
	Operations   []cryst.MagneticOperation
	Permutations []cryst.Permutation
}

//NewPrimitiveMagneticSymmetrySearch searches the magnetic symmetry
//operations of a primitive magnetic cell whose basis vectors are
//Minkowski-reduced.
func NewPrimitiveMagneticSymmetrySearch(mc *cryst.MagneticCell, symprec float64, angleTolerance cryst.AngleTolerance, magSymprec float64, action cryst.MomentAction) (*PrimitiveMagneticSymmetrySearch, error) {
	//candidate operations come from the primitive nonmagnetic cell
	primNonmagCell, err := NewPrimitiveCell(mc.Cell, symprec)
	if err != nil {
		return nil, err
	}
	primNonmagSymmetry, err := NewPrimitiveSymmetrySearch(primNonmagCell.Cell, symprec, angleTolerance)
	if err != nil {
		return nil, err
	}
	candidates := OperationsInCell(primNonmagCell, primNonmagSymmetry.Operations)

	magneticOperations := []cryst.MagneticOperation{}
	permutations := []cryst.Permutation{}
	for _, operation := range candidates {
		newPositions := make([]v3.Vec, mc.NumAtoms())
		for i, pos := range mc.Cell.Positions {
			newPositions[i] = operation.Rotation.MulVecF(pos).Add(operation.Translation)
		}
		permutation, ok := solveCorrespondence(mc.Cell, newPositions, symprec)
		if !ok {
			continue
		}

		cartesianRotation := operation.CartesianRotation(mc.Cell.Lattice)
		//find timeReversal with timeReversal*R*moments[i] = moments[perm(i)]
		for _, timeReversal := range []bool{true, false} {
			take := true
			for i := 0; i < mc.NumAtoms(); i++ {
				acted := cryst.ActMagneticOperation(mc.Moments[i], cartesianRotation, timeReversal, action)
				if !acted.IsClose(mc.Moments[permutation.Apply(i)], magSymprec) {
					take = false
					break
				}
			}
			if take {
				magneticOperations = append(magneticOperations, cryst.NewMagneticOperation(operation.Rotation, operation.Translation, timeReversal))
				permutations = append(permutations, permutation)
			}
		}
	}

	if !checkMagneticClosure(magneticOperations, mc.Cell.Lattice, symprec) {
		return nil, cryst.ErrTooLargeSymprec
	}

	return &PrimitiveMagneticSymmetrySearch{
		Operations:   magneticOperations,
		Permutations: permutations,
	}, nil
}

type magOpKey struct {
	rotation     v3.IMat
	timeReversal bool
}

func checkMagneticClosure(operations []cryst.MagneticOperation, lattice cryst.Lattice, symprec float64) bool {
	translationsMap := make(map[magOpKey]v3.Vec)
	for _, mop := range operations {
		translationsMap[magOpKey{mop.Rotation, mop.TimeReversal}] = mop.Translation
	}
	for _, mop1 := range operations {
		for _, mop2 := range operations {
			mop12 := mop1.Mul(mop2)
			ref, ok := translationsMap[magOpKey{mop12.Rotation, mop12.TimeReversal}]
			if !ok {
				return false
			}
			diff := roundFrac(ref.Sub(mop12.Translation))
			if lattice.CartesianCoords(diff).Norm() > symprec {
				return false
			}
		}
	}
	return true
}

//OperationsInCell maps operations found in the primitive cell back to
//the input cell, combining them with every pure translation.
func OperationsInCell(primCell *PrimitiveCell, primOperations []cryst.Operation) []cryst.Operation {
	inputOperations := cryst.TransformationFromLinear(primCell.Linear).TransformOperations(primOperations)
	operations := []cryst.Operation{}
	for _, t1 := range primCell.Translations {
		for _, op2 := range inputOperations {
			//(E, t1) (R, t2) = (R, t1 + t2)
			t12 := t1.Add(op2.Translation).Mod1()
			operations = append(operations, cryst.NewOperation(op2.Rotation, t12))
		}
	}
	return operations
}

//MagneticOperationsInMagneticCell maps magnetic operations found in
//the primitive magnetic cell back to the input cell.
func MagneticOperationsInMagneticCell(primMagCell *PrimitiveMagneticCell, primOperations []cryst.MagneticOperation) []cryst.MagneticOperation {
	inputOperations := cryst.TransformationFromLinear(primMagCell.Linear).TransformMagneticOperations(primOperations)
	operations := []cryst.MagneticOperation{}
	for _, t1 := range primMagCell.Translations {
		for _, op2 := range inputOperations {
			t12 := t1.Add(op2.Translation).Mod1()
			operations = append(operations, cryst.NewMagneticOperation(op2.Rotation, t12, op2.TimeReversal))
		}
	}
	return operations
}

//SearchBravaisGroup finds the rotations keeping the metric tensor of
//a Minkowski-reduced lattice. The result is checked to form a group.
func SearchBravaisGroup(minkowskiLattice cryst.Lattice, symprec float64, angleTolerance cryst.AngleTolerance) ([]v3.IMat, error) {
	var lengths [3]float64
	for j := 0; j < 3; j++ {
		lengths[j] = basisColumn(minkowskiLattice.Basis, j).Norm()
	}

	//coefficients in [-1, 1] suffice because the columns of a
	//Minkowski-reduced lattice expand in those bounds
	var candidateLatticePoints [3][]v3.IVec
	for c0 := -1; c0 <= 1; c0++ {
		for c1 := -1; c1 <= 1; c1++ {
			for c2 := -1; c2 <= 1; c2++ {
				coeffs := v3.IVec{c0, c1, c2}
				length := minkowskiLattice.Basis.MulVec(coeffs.ToVec()).Norm()
				for j := 0; j < 3; j++ {
					if math.Abs(length-lengths[j]) < symprec {
						candidateLatticePoints[j] = append(candidateLatticePoints[j], coeffs)
					}
				}
			}
		}
	}

	rotations := []v3.IMat{}
	for _, c0 := range candidateLatticePoints[0] {
		v0 := minkowskiLattice.Basis.MulVec(c0.ToVec())
		for _, c1 := range candidateLatticePoints[1] {
			v1 := minkowskiLattice.Basis.MulVec(c1.ToVec())
			//check the (0, 1) element of the metric tensor first
			if !compareNondiagonalMetric(minkowskiLattice.Basis, v0, v1, 0, 1, symprec, angleTolerance) {
				continue
			}
			for _, c2 := range candidateLatticePoints[2] {
				v2 := minkowskiLattice.Basis.MulVec(c2.ToVec())

				rotation := v3.IMat{
					{c0[0], c1[0], c2[0]},
					{c0[1], c1[1], c2[1]},
					{c0[2], c1[2], c2[2]},
				}
				if absInt(rotation.Det()) != 1 {
					continue
				}
				if !compareNondiagonalMetric(minkowskiLattice.Basis, v1, v2, 1, 2, symprec, angleTolerance) {
					continue
				}
				if !compareNondiagonalMetric(minkowskiLattice.Basis, v2, v0, 2, 0, symprec, angleTolerance) {
					continue
				}
				rotations = append(rotations, rotation)
			}
		}
	}

	//48 is the order of the full cubic point group
	if len(rotations) == 0 || 48%len(rotations) != 0 {
		return nil, cryst.ErrBravaisGroupSearch
	}
	complemented := TraverseRotations(rotations)
	if len(complemented) != len(rotations) {
		return nil, cryst.ErrBravaisGroupSearch
	}
	return complemented, nil
}

//TraverseRotations generates the group spanned by the given rotations
//in a fixed breadth-first order.
func TraverseRotations(rotations []v3.IMat) []v3.IMat {
	queue := []v3.IMat{v3.IdentI()}
	visited := make(map[v3.IMat]bool)
	group := []v3.IMat{}
	for len(queue) > 0 {
		lhs := queue[0]
		queue = queue[1:]
		if visited[lhs] {
			continue
		}
		visited[lhs] = true
		group = append(group, lhs)
		for _, rhs := range rotations {
			if product := lhs.Mul(rhs); !visited[product] {
				queue = append(queue, product)
			}
		}
	}
	return group
}

//compareNondiagonalMetric reports whether the basis vector pair
//(basis.col(col1), basis.col(col2)) and (b1, b2) span close enough
//angles. With the default tolerance the angle deviation is weighted
//by the vector lengths, Eq. (7) of arXiv:1808.01590.
func compareNondiagonalMetric(basis v3.Mat3, b1, b2 v3.Vec, col1, col2 int, symprec float64, angleTolerance cryst.AngleTolerance) bool {
	thetaOrg := angleBetween(basisColumn(basis, col1), basisColumn(basis, col2))
	thetaNew := angleBetween(b1, b2)
	cosDtheta := math.Cos(thetaOrg)*math.Cos(thetaNew) + math.Sin(thetaOrg)*math.Sin(thetaNew)

	if !angleTolerance.Default {
		return math.Abs(math.Acos(clampCos(cosDtheta))) < angleTolerance.Radian
	}
	sinDtheta2 := 1 - cosDtheta*cosDtheta
	lengthAve2 := (basisColumn(basis, col1).Norm() + b1.Norm()) * (basisColumn(basis, col2).Norm() + b2.Norm()) / 4
	return sinDtheta2*lengthAve2 < symprec*symprec
}

func angleBetween(a, b v3.Vec) float64 {
	return math.Acos(clampCos(a.Dot(b) / (a.Norm() * b.Norm())))
}

func clampCos(c float64) float64 {
	if c > 1 {
		return 1
	}
	if c < -1 {
		return -1
	}
	return c
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
