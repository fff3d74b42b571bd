/*
 * magnetic.go, part of gocryst.
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

package dataset

import (
	"math"

	cryst "github.com/gocryst/gocryst"
	"github.com/gocryst/gocryst/identify"
	"github.com/gocryst/gocryst/search"
	"github.com/gocryst/gocryst/standard"
	"github.com/gocryst/gocryst/v3"
)

//MagneticDataset is the result of the symmetry analysis of a magnetic
//cell.
type MagneticDataset struct {
	//UNINumber of the magnetic space-group type, 1 to 1651.
	UNINumber int

	//Operations in the input magnetic cell.
	Operations []cryst.MagneticOperation

	//Orbits groups sites of the input cell under the magnetic group.
	Orbits []int

	//StdMagCell is the standardized conventional magnetic cell.
	StdMagCell *cryst.MagneticCell
	//StdLinear and StdOriginShift map the input cell to StdMagCell.
	StdLinear      v3.Mat3
	StdOriginShift v3.Vec
	//StdRotationMatrix is the rigid rotation applied by the
	//standardization.
	StdRotationMatrix v3.Mat3

	//PrimStdMagCell is the standardized primitive magnetic cell.
	PrimStdMagCell *cryst.MagneticCell
	//PrimStdLinear and PrimStdOriginShift map the input cell to
	//PrimStdMagCell.
	PrimStdLinear      v3.Mat3
	PrimStdOriginShift v3.Vec
	//MappingStdPrim sends each site of the input cell to its site in
	//PrimStdMagCell.
	MappingStdPrim []int
}

//NewMagnetic analyzes a magnetic cell. magSymprec bounds the moment
//distance under candidate operations; pass symprec again to reuse the
//positional tolerance. The action selects whether moments transform as
//polar or axial vectors.
func NewMagnetic(mc *cryst.MagneticCell, symprec float64, angleTolerance cryst.AngleTolerance, magSymprec float64, action cryst.MomentAction) (*MagneticDataset, error) {
	primMagCell, err := search.NewPrimitiveMagneticCell(mc, symprec, magSymprec)
	if err != nil {
		return nil, err
	}
	magneticSymmetrySearch, err := search.NewPrimitiveMagneticSymmetrySearch(primMagCell.MagneticCell, symprec, angleTolerance, magSymprec, action)
	if err != nil {
		return nil, err
	}
	operations := magneticOperationsInCell(primMagCell, magneticSymmetrySearch.Operations)

	epsilon := symprec / math.Cbrt(primMagCell.MagneticCell.Cell.Lattice.Volume())
	msg, err := identify.NewMagneticSpaceGroup(magneticSymmetrySearch.Operations, epsilon)
	if err != nil {
		return nil, err
	}

	stdMagCell, err := standard.NewStandardizedMagneticCell(primMagCell, magneticSymmetrySearch, msg, symprec, magSymprec, epsilon, action)
	if err != nil {
		return nil, err
	}

	orbits := standard.OrbitsInCell(primMagCell.MagneticCell.NumAtoms(), magneticSymmetrySearch.Permutations, primMagCell.SiteMapping)
	mappingStdPrim := make([]int, len(primMagCell.SiteMapping))
	copy(mappingStdPrim, primMagCell.SiteMapping)

	primLinearInv, err := primMagCell.Linear.ToMat3().Inverse()
	if err != nil {
		return nil, cryst.ErrPrimitiveCellSearch
	}
	stdLinear := primLinearInv.Mul(stdMagCell.Transformation.Linear.ToMat3())
	stdOriginShift := primLinearInv.MulVec(stdMagCell.Transformation.OriginShift)
	primStdLinear := primLinearInv.Mul(stdMagCell.PrimTransformation.Linear.ToMat3())
	primStdOriginShift := primLinearInv.MulVec(stdMagCell.PrimTransformation.OriginShift)

	return &MagneticDataset{
		UNINumber: msg.UNINumber,

		Operations: operations,

		Orbits: orbits,

		StdMagCell:        stdMagCell.MagCell,
		StdLinear:         stdLinear,
		StdOriginShift:    stdOriginShift,
		StdRotationMatrix: stdMagCell.RotationMatrix,

		PrimStdMagCell:     stdMagCell.PrimMagCell,
		PrimStdLinear:      primStdLinear,
		PrimStdOriginShift: primStdOriginShift,
		MappingStdPrim:     mappingStdPrim,
	}, nil
}

//NumOperations returns the number of magnetic symmetry operations in
//the input cell.
func (d *MagneticDataset) NumOperations() int { return len(d.Operations) }

func magneticOperationsInCell(primMagCell *search.PrimitiveMagneticCell, primOperations []cryst.MagneticOperation) []cryst.MagneticOperation {
	inputOperations := cryst.TransformationFromLinear(primMagCell.Linear).TransformMagneticOperations(primOperations)
	operations := make([]cryst.MagneticOperation, 0, len(primMagCell.Translations)*len(inputOperations))
	for _, t1 := range primMagCell.Translations {
		for _, mop := range inputOperations {
			t12 := t1.Add(mop.Operation.Translation)
			for k := 0; k < 3; k++ {
				t12[k] = math.Mod(t12[k], 1)
			}
			operations = append(operations, cryst.NewMagneticOperation(mop.Operation.Rotation, t12, mop.TimeReversal))
		}
	}
	return operations
}
