/*
 * primitive.go, part of gocryst.
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
	"github.com/gocryst/gocryst/crystmath"
	v3 "github.com/gocryst/gocryst/v3"
)

//PrimitiveCell is the result of searching the translation subgroup of
//an input cell.
type PrimitiveCell struct {
	//Cell is the found primitive cell, Minkowski-reduced.
	Cell *cryst.Cell
	//Linear transforms the primitive cell to the input cell.
	Linear v3.IMat
	//SiteMapping sends the ith atom of the input cell to the
	//SiteMapping[i]th atom of the primitive cell (many to one).
	SiteMapping []int
	//Translations are the pure translations in the input cell.
	Translations []v3.Vec
	//Permutations[i] is the site permutation induced by
	//Translations[i] in the input cell.
	Permutations []cryst.Permutation
}

//NewPrimitiveCell finds a primitive cell of the input cell and the
//transformation back to it.
func NewPrimitiveCell(cell *cryst.Cell, symprec float64) (*PrimitiveCell, error) {
	reducedLattice, reducedTransMat, err := cell.Lattice.MinkowskiReduce()
	if err != nil {
		return nil, err
	}
	reducedCell := cryst.UnimodularFromLinear(reducedTransMat).TransformCell(cell)

	roughSymprec := 2 * symprec
	if roughSymprec > minimumBasisNorm(reducedLattice)/2 {
		return nil, cryst.ErrTooLargeSymprec
	}

	//try to overlap the src pivot site onto every other pivot site
	pivots := pivotSiteIndices(reducedCell.Numbers)
	src := pivots[0]
	type candidate struct {
		permutation cryst.Permutation
		translation v3.Vec
	}
	candidates := []candidate{}
	for _, dst := range pivots {
		translation := reducedCell.Positions[dst].Sub(reducedCell.Positions[src])
		newPositions := make([]v3.Vec, reducedCell.NumAtoms())
		for i, pos := range reducedCell.Positions {
			newPositions[i] = pos.Add(translation)
		}
		//the rough translation may not minimize the distances, so the
		//correspondence search uses the looser tolerance
		if permutation, ok := solveCorrespondence(reducedCell, newPositions, roughSymprec); ok {
			candidates = append(candidates, candidate{permutation, translation})
		}
	}

	translations := []v3.Vec{}
	permutations := []cryst.Permutation{}
	for _, c := range candidates {
		translation, distance := symmetrizeTranslationFromPermutation(reducedCell, c.permutation, v3.IdentI(), c.translation)
		if distance < symprec {
			translations = append(translations, translation)
			permutations = append(permutations, c.permutation)
		}
	}

	size := len(translations)
	if size == 0 || reducedCell.NumAtoms()%size != 0 {
		return nil, cryst.ErrTooSmallSymprec
	}

	transMat, ok := transformationMatrixFromTranslations(translations)
	if !ok {
		return nil, cryst.ErrTooSmallSymprec
	}

	primitiveCell, siteMapping, _ := primitiveCellFromTransformation(reducedCell, transMat, translations, permutations)
	_, primTransMat, err := primitiveCell.Lattice.MinkowskiReduce()
	if err != nil {
		return nil, err
	}
	reducedPrimCell := cryst.UnimodularFromLinear(primTransMat).TransformCell(primitiveCell)

	//(input cell) -[reducedTransMat]-> (reduced cell)
	//    <-[transMat]- (primitive cell)
	//    -[primTransMat]-> (reduced primitive cell)
	inputTranslations := make([]v3.Vec, len(translations))
	for i, translation := range translations {
		inputTranslations[i] = reducedTransMat.MulVecF(translation)
	}
	return &PrimitiveCell{
		Cell:         reducedPrimCell,
		Linear:       primTransMat.Inverse().Mul(transMat).Mul(reducedTransMat.Inverse()),
		SiteMapping:  siteMapping,
		Translations: inputTranslations,
		Permutations: permutations,
	}, nil
}

//PrimitiveMagneticCell is the result of searching the translation
//subgroup of a magnetic cell. Only translations that keep the
//magnetic moments survive.
type PrimitiveMagneticCell struct {
	MagneticCell *cryst.MagneticCell
	//Linear transforms the primitive magnetic cell to the input cell.
	Linear v3.IMat
	//SiteMapping sends input sites to primitive sites (many to one).
	SiteMapping []int
	//Translations are the moment-preserving pure translations in the
	//input cell.
	Translations []v3.Vec
	Permutations []cryst.Permutation
}

//NewPrimitiveMagneticCell finds a primitive magnetic cell of the
//input magnetic cell.
func NewPrimitiveMagneticCell(mc *cryst.MagneticCell, symprec, magSymprec float64) (*PrimitiveMagneticCell, error) {
	//candidate translations come from the nonmagnetic cell
	primNonmagnetic, err := NewPrimitiveCell(mc.Cell, symprec)
	if err != nil {
		return nil, err
	}

	translations := []v3.Vec{}
	permutations := []cryst.Permutation{}
	for k, translation := range primNonmagnetic.Translations {
		permutation := primNonmagnetic.Permutations[k]
		take := true
		for i := 0; i < mc.NumAtoms(); i++ {
			if !mc.Moments[i].IsClose(mc.Moments[permutation.Apply(i)], magSymprec) {
				take = false
				break
			}
		}
		if take {
			translations = append(translations, translation)
			permutations = append(permutations, permutation)
		}
	}

	size := len(translations)
	if size == 0 || mc.NumAtoms()%size != 0 {
		return nil, cryst.ErrTooSmallSymprec
	}

	transMat, ok := transformationMatrixFromTranslations(translations)
	if !ok {
		return nil, cryst.ErrTooSmallSymprec
	}

	primCell, siteMapping, representatives := primitiveCellFromTransformation(mc.Cell, transMat, translations, permutations)
	primMoments := make([]cryst.Moment, len(representatives))
	for i, ri := range representatives {
		primMoments[i] = mc.Moments[ri]
	}
	primMagCell := cryst.MagneticCellFromCell(primCell, primMoments)

	_, primTransMat, err := primMagCell.Cell.Lattice.MinkowskiReduce()
	if err != nil {
		return nil, err
	}
	reducedPrimMagCell := cryst.UnimodularFromLinear(primTransMat).TransformMagneticCell(primMagCell)

	return &PrimitiveMagneticCell{
		MagneticCell: reducedPrimMagCell,
		Linear:       primTransMat.Inverse().Mul(transMat),
		SiteMapping:  siteMapping,
		Translations: translations,
		Permutations: permutations,
	}, nil
}

func minimumBasisNorm(lattice cryst.Lattice) float64 {
	minNorm := math.Inf(1)
	for j := 0; j < 3; j++ {
		norm := basisColumn(lattice.Basis, j).Norm()
		if norm < minNorm {
			minNorm = norm
		}
	}
	return minNorm
}

func basisColumn(m v3.Mat3, j int) v3.Vec {
	return v3.Vec{m[0][j], m[1][j], m[2][j]}
}

//transformationMatrixFromTranslations recovers the transformation
//from the primitive cell to the input cell out of the found pure
//translations, via the Hermite normal form of the lattice spanned by
//the translations and the unit cell.
func transformationMatrixFromTranslations(translations []v3.Vec) (v3.IMat, bool) {
	size := len(translations)
	columns := make([][]int, 3)
	for i := range columns {
		columns[i] = make([]int, 3+size)
		columns[i][i] = size
	}
	for k, translation := range translations {
		for i := 0; i < 3; i++ {
			columns[i][3+k] = int(math.Round(translation[i] * float64(size)))
		}
	}
	hnf := crystmath.NewHNF(columns)

	var transMatInv v3.Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			transMatInv[i][j] = float64(hnf.H[i][j]) / float64(size)
		}
	}
	inv, err := transMatInv.Inverse()
	if err != nil {
		return v3.IMat{}, false
	}
	transMat, _ := v3.IMatFromMat3(inv, 0.5)
	if math.Abs(float64(transMat.Det())-float64(size)) > cryst.EPS {
		return v3.IMat{}, false
	}
	return transMat, true
}

//primitiveCellFromTransformation maps cell to a primitive cell by the
//inverse of transMat, averaging each orbit of the translation
//permutations onto its representative site.
func primitiveCellFromTransformation(cell *cryst.Cell, transMat v3.IMat, translations []v3.Vec, permutations []cryst.Permutation) (*cryst.Cell, []int, []int) {
	newLattice := cryst.TransformationFromLinear(transMat).InverseTransformLattice(cell.Lattice)

	numAtoms := cell.NumAtoms()
	orbits := cryst.OrbitsFromPermutations(numAtoms, permutations)
	representatives := []int{}
	for i := 0; i < numAtoms; i++ {
		if orbits[i] == i {
			representatives = append(representatives, i)
		}
	}

	inversePermutations := make([]cryst.Permutation, len(permutations))
	for k, permutation := range permutations {
		inversePermutations[k] = permutation.Inverse()
	}

	transMatFloat := transMat.ToMat3()
	newPositions := make([]v3.Vec, len(representatives))
	newNumbers := make([]int, len(representatives))
	for i, orbitI := range representatives {
		acc := v3.Vec{}
		for k, invPerm := range inversePermutations {
			displacement := cell.Positions[invPerm.Apply(orbitI)].Add(translations[k]).Sub(cell.Positions[orbitI])
			acc = acc.Add(roundFrac(displacement))
		}
		newPositions[i] = transMatFloat.MulVec(cell.Positions[orbitI].Add(acc.Scale(1 / float64(len(translations)))))
		newNumbers[i] = cell.Numbers[orbitI]
	}

	return cryst.NewCell(newLattice, newPositions, newNumbers), siteMappingFromOrbits(orbits), representatives
}

//siteMappingFromOrbits renumbers orbit representatives consecutively
//in order of first appearance.
func siteMappingFromOrbits(orbits []int) []int {
	mapping := make(map[int]int)
	out := make([]int, len(orbits))
	for i, ri := range orbits {
		if _, ok := mapping[ri]; !ok {
			mapping[ri] = len(mapping)
		}
		out[i] = mapping[ri]
	}
	return out
}
