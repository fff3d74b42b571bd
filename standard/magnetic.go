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

package standard

import (
	cryst "github.com/gocryst/gocryst"
	"github.com/gocryst/gocryst/crystdata"
	"github.com/gocryst/gocryst/identify"
	"github.com/gocryst/gocryst/search"
	"github.com/gocryst/gocryst/v3"
)

//StandardizedMagneticCell is a magnetic cell in the conventional
//setting of the reference space group of its magnetic space group,
//with symmetrized lattice, positions and moments.
type StandardizedMagneticCell struct {
	//PrimMagCell is the primitive standardized magnetic cell.
	PrimMagCell *cryst.MagneticCell
	//PrimTransformation maps the input primitive magnetic cell to
	//PrimMagCell.
	PrimTransformation cryst.UnimodularTransformation
	//MagCell is the conventional standardized magnetic cell.
	MagCell *cryst.MagneticCell
	//Transformation maps the input primitive magnetic cell to MagCell.
	Transformation cryst.Transformation
	//RotationMatrix maps the lattice of the input primitive magnetic
	//cell to that of the standardized one.
	RotationMatrix v3.Mat3
	//SiteMapping sends each site of MagCell to its site in
	//PrimMagCell.
	SiteMapping []int
}

//NewStandardizedMagneticCell standardizes a primitive magnetic cell.
//The lattice and positions are symmetrized by the reference space
//group of the magnetic space group, then the moments are symmetrized
//by the full magnetic group.
func NewStandardizedMagneticCell(primMagCell *search.PrimitiveMagneticCell, magneticSymmetrySearch *search.PrimitiveMagneticSymmetrySearch, magneticSpaceGroup identify.MagneticSpaceGroup, symprec, magSymprec, epsilon float64, action cryst.MomentAction) (*StandardizedMagneticCell, error) {
	refSpaceGroup, err := magneticSpaceGroup.ReferenceSpaceGroup()
	if err != nil {
		return nil, err
	}
	entry, err := crystdata.MagneticSpaceGroupType(magneticSpaceGroup.UNINumber)
	if err != nil {
		return nil, cryst.ErrMagneticStandardization
	}
	refOperations, refPermutations := referenceOperationsAndPermutations(magneticSymmetrySearch, entry.ConstructType, magSymprec)

	//symmetrize positions and lattice by the reference space group
	refStdCell, err := NewStandardizedCell(primMagCell.MagneticCell.Cell, refOperations, refPermutations, refSpaceGroup, symprec)
	if err != nil {
		return nil, err
	}

	//the standardization rotates the cell, so the moments rotate too
	moments := make([]cryst.Moment, len(primMagCell.MagneticCell.Moments))
	for i, moment := range primMagCell.MagneticCell.Moments {
		moments[i] = moment.ActRotation(refStdCell.RotationMatrix, action)
	}
	cartRotations := make([]v3.Mat3, len(magneticSymmetrySearch.Operations))
	timeReversals := make([]bool, len(magneticSymmetrySearch.Operations))
	for k, mop := range magneticSymmetrySearch.Operations {
		cartRotations[k] = mop.Operation.CartesianRotation(primMagCell.MagneticCell.Cell.Lattice)
		timeReversals[k] = mop.TimeReversal
	}
	primStdMoments := symmetrizeMoments(moments, cartRotations, timeReversals, magneticSymmetrySearch.Permutations, action)
	primStdMagCell := cryst.MagneticCellFromCell(refStdCell.PrimCell, primStdMoments)

	//to the conventional standardized magnetic cell
	refined := refStdCell.PrimTransformation.Inverse().TransformMagneticCell(primStdMagCell)
	convStdMagCell, _ := refStdCell.Transformation.TransformMagneticCell(refined)

	return &StandardizedMagneticCell{
		PrimMagCell:        primStdMagCell,
		PrimTransformation: refStdCell.PrimTransformation,
		MagCell:            convStdMagCell,
		Transformation:     refStdCell.Transformation,
		RotationMatrix:     refStdCell.RotationMatrix,
		SiteMapping:        refStdCell.SiteMapping,
	}, nil
}

//referenceOperationsAndPermutations picks the subgroup whose
//standardization fixes the conventional setting: the family space
//group for types I to III and the maximal space subgroup for type IV.
func referenceOperationsAndPermutations(magneticSymmetrySearch *search.PrimitiveMagneticSymmetrySearch, constructType crystdata.ConstructType, epsilon float64) ([]cryst.Operation, []cryst.Permutation) {
	var refOperations []cryst.Operation
	var contained []bool
	if constructType == crystdata.Type4 {
		refOperations, contained = identify.MaximalSpaceSubgroup(magneticSymmetrySearch.Operations)
	} else {
		refOperations, _, contained = identify.FamilySpaceGroup(magneticSymmetrySearch.Operations, epsilon)
	}
	var refPermutations []cryst.Permutation
	for i, permutation := range magneticSymmetrySearch.Permutations {
		if contained[i] {
			refPermutations = append(refPermutations, permutation)
		}
	}
	return refOperations, refPermutations
}

//symmetrizeMoments averages each moment over the magnetic group.
func symmetrizeMoments(moments []cryst.Moment, cartRotations []v3.Mat3, timeReversals []bool, permutations []cryst.Permutation, action cryst.MomentAction) []cryst.Moment {
	inversePermutations := make([]cryst.Permutation, len(permutations))
	for i, permutation := range permutations {
		inversePermutations[i] = permutation.Inverse()
	}
	newMoments := make([]cryst.Moment, len(moments))
	for i := range moments {
		equivalent := make([]cryst.Moment, len(cartRotations))
		for k := range cartRotations {
			equivalent[k] = cryst.ActMagneticOperation(moments[inversePermutations[k].Apply(i)], cartRotations[k], timeReversals[k], action)
		}
		newMoments[i] = cryst.AverageMoments(equivalent)
	}
	return newMoments
}
