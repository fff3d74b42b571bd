/*
 * dataset.go, part of gocryst.
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
	"fmt"
	"math"

	cryst "github.com/gocryst/gocryst"
	"github.com/gocryst/gocryst/crystdata"
	"github.com/gocryst/gocryst/identify"
	"github.com/gocryst/gocryst/search"
	"github.com/gocryst/gocryst/standard"
	"github.com/gocryst/gocryst/v3"
)

//Dataset is the result of the symmetry analysis of a cell.
type Dataset struct {
	//Number is the ITA space group number, 1 to 230.
	Number int
	//HallNumber of the matched setting, 1 to 530.
	HallNumber int
	//HMSymbol is the short Hermann-Mauguin symbol.
	HMSymbol string
	//HallSymbol of the matched setting.
	HallSymbol string

	//Operations in the input cell.
	Operations []cryst.Operation

	//Orbits groups the sites of the input cell: site i is equivalent
	//to site Orbits[i], the first site of its crystallographic orbit.
	Orbits []int
	//Wyckoffs holds the Wyckoff letter of each site of the input cell.
	Wyckoffs []string
	//SiteSymmetrySymbols are oriented with respect to StdCell.
	SiteSymmetrySymbols []string

	//StdCell is the standardized conventional cell.
	StdCell *cryst.Cell
	//StdLinear and StdOriginShift map the input cell to StdCell.
	StdLinear      v3.Mat3
	StdOriginShift v3.Vec
	//StdRotationMatrix is the rigid rotation applied by the
	//standardization.
	StdRotationMatrix v3.Mat3
	//PearsonSymbol of StdCell, e.g. "hP4".
	PearsonSymbol string

	//PrimStdCell is the standardized primitive cell.
	PrimStdCell *cryst.Cell
	//PrimStdLinear and PrimStdOriginShift map the input cell to
	//PrimStdCell.
	PrimStdLinear      v3.Mat3
	PrimStdOriginShift v3.Vec
	//MappingStdPrim sends each site of the input cell to its site in
	//PrimStdCell.
	MappingStdPrim []int
}

//New analyzes a cell. Atomic positions within symprec of each other in
//cartesian distance are treated as overlapping; the setting selects
//which Hall setting represents the identified space group type.
func New(cell *cryst.Cell, symprec float64, angleTolerance cryst.AngleTolerance, setting crystdata.Setting) (*Dataset, error) {
	primCell, err := search.NewPrimitiveCell(cell, symprec)
	if err != nil {
		return nil, err
	}
	symmetrySearch, err := search.NewPrimitiveSymmetrySearch(primCell.Cell, symprec, angleTolerance)
	if err != nil {
		return nil, err
	}
	operations := operationsInCell(primCell, symmetrySearch.Operations)

	//identification works on dimensionless translations
	epsilon := symprec / math.Cbrt(primCell.Cell.Lattice.Volume())
	spaceGroup, err := identify.NewSpaceGroup(symmetrySearch.Operations, setting, epsilon)
	if err != nil {
		return nil, err
	}

	stdCell, err := standard.NewStandardizedCell(primCell.Cell, symmetrySearch.Operations, symmetrySearch.Permutations, spaceGroup, symprec)
	if err != nil {
		return nil, err
	}

	orbits := standard.OrbitsInCell(primCell.Cell.NumAtoms(), symmetrySearch.Permutations, primCell.SiteMapping)

	//the standardized primitive cell keeps the site order of the
	//primitive cell, so the input sites map through it directly
	mappingStdPrim := make([]int, len(primCell.SiteMapping))
	copy(mappingStdPrim, primCell.SiteMapping)
	primStdWyckoffs := make([]*crystdata.WyckoffPosition, primCell.Cell.NumAtoms())
	for i := range stdCell.Wyckoffs {
		j := stdCell.SiteMapping[i]
		if primStdWyckoffs[j] == nil {
			primStdWyckoffs[j] = &stdCell.Wyckoffs[i]
		}
	}
	wyckoffs := make([]string, len(mappingStdPrim))
	siteSymmetrySymbols := make([]string, len(mappingStdPrim))
	for i, j := range mappingStdPrim {
		if primStdWyckoffs[j] == nil {
			return nil, cryst.ErrWyckoffAssignment
		}
		wyckoffs[i] = primStdWyckoffs[j].Letter
		siteSymmetrySymbols[i] = primStdWyckoffs[j].SiteSymmetry
	}

	entry, err := crystdata.HallEntry(spaceGroup.HallNumber)
	if err != nil {
		return nil, err
	}
	spaceGroupType, err := crystdata.SpaceGroupType(spaceGroup.Number)
	if err != nil {
		return nil, err
	}

	//input cell <- primCell.Linear <- primitive cell -> stdCell
	primLinearInv, err := primCell.Linear.ToMat3().Inverse()
	if err != nil {
		return nil, cryst.ErrPrimitiveCellSearch
	}
	stdLinear := primLinearInv.Mul(stdCell.Transformation.Linear.ToMat3())
	stdOriginShift := primLinearInv.MulVec(stdCell.Transformation.OriginShift)
	primStdLinear := primLinearInv.Mul(stdCell.PrimTransformation.Linear.ToMat3())
	primStdOriginShift := primLinearInv.MulVec(stdCell.PrimTransformation.OriginShift)

	return &Dataset{
		Number:     spaceGroup.Number,
		HallNumber: spaceGroup.HallNumber,
		HMSymbol:   entry.HMShort,
		HallSymbol: entry.HallSymbol,

		Operations: operations,

		Orbits:              orbits,
		Wyckoffs:            wyckoffs,
		SiteSymmetrySymbols: siteSymmetrySymbols,

		StdCell:           stdCell.Cell,
		StdLinear:         stdLinear,
		StdOriginShift:    stdOriginShift,
		StdRotationMatrix: stdCell.RotationMatrix,
		PearsonSymbol:     fmt.Sprintf("%s%d", spaceGroupType.BravaisClass, stdCell.Cell.NumAtoms()),

		PrimStdCell:        stdCell.PrimCell,
		PrimStdLinear:      primStdLinear,
		PrimStdOriginShift: primStdOriginShift,
		MappingStdPrim:     mappingStdPrim,
	}, nil
}

//NumOperations returns the number of symmetry operations in the input
//cell.
func (d *Dataset) NumOperations() int { return len(d.Operations) }

//operationsInCell expands the primitive operations into the input
//cell, composing them with the pure translations the input cell
//carries.
func operationsInCell(primCell *search.PrimitiveCell, primOperations []cryst.Operation) []cryst.Operation {
	inputOperations := cryst.TransformationFromLinear(primCell.Linear).TransformOperations(primOperations)
	operations := make([]cryst.Operation, 0, len(primCell.Translations)*len(inputOperations))
	for _, t1 := range primCell.Translations {
		for _, op := range inputOperations {
			t12 := t1.Add(op.Translation)
			for k := 0; k < 3; k++ {
				t12[k] = math.Mod(t12[k], 1)
			}
			operations = append(operations, cryst.NewOperation(op.Rotation, t12))
		}
	}
	return operations
}
