/*
 * standardize.go, part of gocryst.
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

package standard

import (
	"gonum.org/v1/gonum/mat"

	cryst "github.com/gocryst/gocryst"
	"github.com/gocryst/gocryst/crystdata"
	"github.com/gocryst/gocryst/crystmath"
	"github.com/gocryst/gocryst/identify"
	"github.com/gocryst/gocryst/v3"
)

//StandardizedCell is a cell in the conventional setting of its space
//group, with symmetrized lattice and positions.
type StandardizedCell struct {
	//PrimCell is the primitive standardized cell.
	PrimCell *cryst.Cell
	//PrimTransformation maps the input primitive cell to PrimCell.
	PrimTransformation cryst.UnimodularTransformation
	//Cell is the conventional standardized cell.
	Cell *cryst.Cell
	//Wyckoffs holds the Wyckoff position of each site in Cell.
	Wyckoffs []crystdata.WyckoffPosition
	//Transformation maps the input primitive cell to Cell.
	Transformation cryst.Transformation
	//RotationMatrix maps the lattice of the input primitive cell to
	//that of the standardized cell.
	RotationMatrix v3.Mat3
	//SiteMapping sends each site of Cell to its site in PrimCell.
	SiteMapping []int

	primPermutations []cryst.Permutation
}

//NewStandardizedCell standardizes a primitive cell. Triclinic groups
//are Niggli-reduced; the basis is rotated to an upper triangular
//matrix.
func NewStandardizedCell(primCell *cryst.Cell, primOperations []cryst.Operation, primPermutations []cryst.Permutation, spaceGroup identify.SpaceGroup, symprec float64) (*StandardizedCell, error) {
	std, err := standardizeAndSymmetrizeCell(primCell, primOperations, primPermutations, spaceGroup)
	if err != nil {
		return nil, err
	}

	wyckoffs, err := assignWyckoffs(std.PrimCell, std.primPermutations, std.Cell, std.SiteMapping, spaceGroup.HallNumber, symprec)
	if err != nil {
		return nil, err
	}
	std.Wyckoffs = wyckoffs
	return std, nil
}

func standardizeAndSymmetrizeCell(primCell *cryst.Cell, primOperations []cryst.Operation, primPermutations []cryst.Permutation, spaceGroup identify.SpaceGroup) (*StandardizedCell, error) {
	entry, err := crystdata.HallEntry(spaceGroup.HallNumber)
	if err != nil {
		return nil, err
	}
	arithmetic, err := crystdata.ArithmeticClass(entry.ArithmeticNumber)
	if err != nil {
		return nil, err
	}

	//to the standardized primitive cell; triclinic groups have no
	//symmetry to pin the basis, so Niggli reduction picks it
	var primTransformation cryst.UnimodularTransformation
	if crystdata.LatticeSystemOf(arithmetic.BravaisClass) == crystdata.LatticeTriclinic {
		primTransformation = standardizeTriclinicCell(primCell.Lattice)
	} else {
		primTransformation = spaceGroup.Transformation
	}
	primStdCellTmp := primTransformation.TransformCell(primCell)

	//symmetrize positions with the refined operations of the setting
	hs, err := crystdata.NewHallSymbolFromNumber(spaceGroup.HallNumber)
	if err != nil {
		return nil, err
	}
	convStdOperations := hs.Traverse()
	centeringTrans := cryst.TransformationFromLinear(entry.Centering.Linear())
	primStdOperations := centeringTrans.InverseTransformOperations(convStdOperations)

	//reorder the permutations: the traversal order of the setting
	//differs from the symmetry search order
	permutationByRotation := make(map[v3.IMat]cryst.Permutation, len(primOperations))
	for i, op := range primTransformation.TransformOperations(primOperations) {
		permutationByRotation[op.Rotation] = primPermutations[i]
	}
	primStdPermutations := make([]cryst.Permutation, len(primStdOperations))
	for i, op := range primStdOperations {
		permutation, ok := permutationByRotation[op.Rotation]
		if !ok {
			return nil, cryst.ErrStandardization
		}
		primStdPermutations[i] = permutation
	}
	primStdCell := cryst.NewCell(
		primStdCellTmp.Lattice,
		symmetrizePositions(primStdCellTmp, primStdOperations, primStdPermutations),
		primStdCellTmp.Numbers,
	)

	//to the conventional standardized cell
	stdCell, siteMapping := centeringTrans.TransformCell(primStdCell)

	_, rotationMatrix := symmetrizeLattice(stdCell.Lattice, cryst.ProjectRotations(convStdOperations))

	return &StandardizedCell{
		PrimCell:           primStdCell.Rotate(rotationMatrix),
		PrimTransformation: primTransformation,
		Cell:               stdCell.Rotate(rotationMatrix),
		Transformation: cryst.NewTransformation(
			primTransformation.Linear.Mul(centeringTrans.Linear),
			primTransformation.OriginShift,
		),
		RotationMatrix:   rotationMatrix,
		SiteMapping:      siteMapping,
		primPermutations: primStdPermutations,
	}, nil
}

func assignWyckoffs(primStdCell *cryst.Cell, primStdPermutations []cryst.Permutation, stdCell *cryst.Cell, siteMapping []int, hallNumber int, symprec float64) ([]crystdata.WyckoffPosition, error) {
	//group the sites of the conventional cell by crystallographic
	//orbit
	orbits := OrbitsInCell(primStdCell.NumAtoms(), primStdPermutations, siteMapping)
	numOrbits := 0
	mapping := make([]int, stdCell.NumAtoms())
	for i := 0; i < stdCell.NumAtoms(); i++ {
		if orbits[i] == i {
			mapping[i] = numOrbits
			numOrbits++
		} else {
			mapping[i] = mapping[orbits[i]]
		}
	}

	multiplicities := make([]int, numOrbits)
	for i := 0; i < stdCell.NumAtoms(); i++ {
		multiplicities[mapping[i]]++
	}

	representatives := make([]*crystdata.WyckoffPosition, numOrbits)
	for i, position := range stdCell.Positions {
		orbit := mapping[i]
		if representatives[orbit] != nil {
			continue
		}
		if wyckoff, ok := assignWyckoffPosition(position, multiplicities[orbit], hallNumber, stdCell.Lattice, symprec); ok {
			representatives[orbit] = &wyckoff
		}
	}
	for _, wyckoff := range representatives {
		if wyckoff == nil {
			return nil, cryst.ErrWyckoffAssignment
		}
	}

	wyckoffs := make([]crystdata.WyckoffPosition, stdCell.NumAtoms())
	for i := 0; i < stdCell.NumAtoms(); i++ {
		wyckoffs[i] = *representatives[mapping[i]]
	}
	return wyckoffs, nil
}

//OrbitsInCell extends the orbits of a primitive cell to a cell whose
//siteMapping sends each site to its primitive site. Each site points
//to the first site of its orbit.
func OrbitsInCell(primNumAtoms int, primPermutations []cryst.Permutation, siteMapping []int) []int {
	primOrbits := cryst.OrbitsFromPermutations(primNumAtoms, primPermutations)

	first := make(map[int]int)
	orbits := make([]int, len(siteMapping))
	for i := range siteMapping {
		key := primOrbits[siteMapping[i]]
		if _, ok := first[key]; !ok {
			first[key] = i
		}
		orbits[i] = first[key]
	}
	return orbits
}

//standardizeTriclinicCell Niggli-reduces without checking the
//reduction condition, which is numerically brittle for distorted
//cells.
func standardizeTriclinicCell(lattice cryst.Lattice) cryst.UnimodularTransformation {
	_, linear := lattice.UncheckedNiggliReduce()
	return cryst.UnimodularFromLinear(linear)
}

//assignWyckoffPosition finds a tabulated Wyckoff position containing
//the given site: a variable y and an integer offset with
//|lattice (A y + o - position - offset)| < symprec, where (A, o) is
//the coordinate space of the candidate. With the Smith normal form
//D = L A R, the least-squares candidate is y = R D^+ L (position +
//offset - o).
func assignWyckoffPosition(position v3.Vec, multiplicity int, hallNumber int, lattice cryst.Lattice, symprec float64) (crystdata.WyckoffPosition, bool) {
	positions, err := crystdata.WyckoffPositions(hallNumber)
	if err != nil {
		return crystdata.WyckoffPosition{}, false
	}
	for _, wyckoff := range positions {
		if wyckoff.Multiplicity != multiplicity {
			continue
		}
		space, err := crystdata.NewWyckoffPositionSpace(wyckoff.Coordinates)
		if err != nil {
			continue
		}

		rows := make([][]int, 3)
		for i := 0; i < 3; i++ {
			rows[i] = []int{space.Linear[i][0], space.Linear[i][1], space.Linear[i][2]}
		}
		snf := crystmath.NewSNF(rows)

		for o0 := -1; o0 <= 1; o0++ {
			for o1 := -1; o1 <= 1; o1++ {
				for o2 := -1; o2 <= 1; o2++ {
					offset := v3.Vec{float64(o0), float64(o1), float64(o2)}
					target := offset.Add(position).Sub(space.Origin)

					var b, rinvy, y v3.Vec
					for i := 0; i < 3; i++ {
						for j := 0; j < 3; j++ {
							b[i] += float64(snf.L[i][j]) * target[j]
						}
					}
					for i := 0; i < 3; i++ {
						if snf.D[i][i] != 0 {
							rinvy[i] = b[i] / float64(snf.D[i][i])
						}
					}
					for i := 0; i < 3; i++ {
						for j := 0; j < 3; j++ {
							y[i] += float64(snf.R[i][j]) * rinvy[j]
						}
					}

					diff := space.Linear.MulVecF(y).Add(space.Origin).Sub(position).Sub(offset)
					if lattice.CartesianCoords(diff).Norm() < symprec {
						return wyckoff, true
					}
				}
			}
		}
	}
	return crystdata.WyckoffPosition{}, false
}

//symmetrizePositions averages each site over its site symmetry group.
func symmetrizePositions(cell *cryst.Cell, operations []cryst.Operation, permutations []cryst.Permutation) []v3.Vec {
	inversePermutations := make([]cryst.Permutation, len(permutations))
	for i, permutation := range permutations {
		inversePermutations[i] = permutation.Inverse()
	}

	newPositions := make([]v3.Vec, cell.NumAtoms())
	for i := range newPositions {
		var acc v3.Vec
		for k, op := range operations {
			displacement := op.Rotation.MulVecF(cell.Positions[inversePermutations[k].Apply(i)]).
				Add(op.Translation).Sub(cell.Positions[i])
			displacement = displacement.Sub(displacement.Round().ToVec())
			acc = acc.Add(displacement)
		}
		newPositions[i] = cell.Positions[i].Add(acc.Scale(1 / float64(len(operations))))
	}
	return newPositions
}

//symmetrizeLattice averages the metric tensor over the rotation group
//and rebuilds an upper triangular basis from its Cholesky factor. The
//returned rotation maps the input basis onto the new one up to
//strain, taken from the orthogonal factor of the QR decomposition.
func symmetrizeLattice(lattice cryst.Lattice, rotations []v3.IMat) (cryst.Lattice, v3.Mat3) {
	metric := lattice.MetricTensor()
	var symmetrized v3.Mat3
	for _, rotation := range rotations {
		r := rotation.ToMat3()
		symmetrized = symmetrized.Add(r.Transpose().Mul(metric).Mul(r))
	}
	symmetrized = symmetrized.Scale(1 / float64(len(rotations)))

	sym := mat.NewSymDense(3, nil)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			sym.SetSym(i, j, symmetrized[i][j])
		}
	}
	var chol mat.Cholesky
	if !chol.Factorize(sym) {
		return lattice, v3.Ident3()
	}
	var upper mat.TriDense
	chol.UTo(&upper)
	triBasis := v3.Mat3FromDense(&upper)

	//triBasis approximates rotation * basis, so the rotation is the
	//orthogonal factor of triBasis * basis^-1
	basisInv, err := lattice.Basis.Inverse()
	if err != nil {
		return lattice, v3.Ident3()
	}
	var qr mat.QR
	qr.Factorize(triBasis.Mul(basisInv).ToDense())
	var qd, rd mat.Dense
	qr.QTo(&qd)
	qr.RTo(&rd)
	q := v3.Mat3FromDense(&qd)
	r := v3.Mat3FromDense(&rd)

	//fix the axis-direction freedom of the factorization
	var rotationMatrix v3.Mat3
	for i := 0; i < 3; i++ {
		s := sign(r[i][i])
		for k := 0; k < 3; k++ {
			rotationMatrix[k][i] = q[k][i] * s
		}
	}
	return cryst.NewLatticeFromColumns(triBasis), rotationMatrix
}

func sign(x float64) float64 {
	switch {
	case x > cryst.EPS:
		return 1
	case x < -cryst.EPS:
		return -1
	default:
		return 0
	}
}
