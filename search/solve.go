/*
 * solve.go, part of gocryst.
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
	cryst "github.com/gocryst/gocryst"
	v3 "github.com/gocryst/gocryst/v3"
)

//pivotSiteIndices returns the sites carrying the atomic kind with the
//smallest occurrence. Trying to overlap one of them onto each of the
//others bounds the candidate translations.
func pivotSiteIndices(numbers []int) []int {
	counter := make(map[int]int)
	for _, number := range numbers {
		counter[number]++
	}
	pivotKind := 0
	pivotCount := -1
	for kind, count := range counter {
		if pivotCount < 0 || count < pivotCount || (count == pivotCount && kind < pivotKind) {
			pivotKind = kind
			pivotCount = count
		}
	}
	indices := []int{}
	for i, number := range numbers {
		if number == pivotKind {
			indices = append(indices, i)
		}
	}
	return indices
}

//solveCorrespondence searches a permutation such that
//newPositions[i] matches reducedCell.Positions[perm.Apply(i)] up to a
//lattice translation, within symprec. The cell must be
//Minkowski-reduced so the nearest periodic image is found among the
//adjacent cells.
func solveCorrespondence(reducedCell *cryst.Cell, newPositions []v3.Vec, symprec float64) (cryst.Permutation, bool) {
	numAtoms := reducedCell.NumAtoms()
	mapping := make([]int, numAtoms)
	visited := make([]bool, numAtoms)

	for i := 0; i < numAtoms; i++ {
		found := false
		for j := 0; j < numAtoms; j++ {
			if visited[j] || reducedCell.Numbers[i] != reducedCell.Numbers[j] {
				continue
			}
			diff := roundFrac(reducedCell.Positions[j].Sub(newPositions[i]))
			if reducedCell.Lattice.CartesianCoords(diff).Norm() < symprec {
				mapping[i] = j
				visited[j] = true
				found = true
				break
			}
		}
		if !found {
			return cryst.Permutation{}, false
		}
	}
	return cryst.NewPermutation(mapping), true
}

//symmetrizeTranslationFromPermutation refines a rough translation so
//that it minimizes the total displacement under the permutation, and
//returns the largest residual distance,
//
//	argmin_t sum_i |pbc(rotation*positions[i] + t - positions[perm(i)])|^2
func symmetrizeTranslationFromPermutation(reducedCell *cryst.Cell, permutation cryst.Permutation, rotation v3.IMat, roughTranslation v3.Vec) (v3.Vec, float64) {
	numAtoms := reducedCell.NumAtoms()
	translation := v3.Vec{}
	for i := 0; i < numAtoms; i++ {
		displacement := reducedCell.Positions[permutation.Apply(i)].Sub(rotation.MulVecF(reducedCell.Positions[i]))
		//subtract the rough translation before rounding so the
		//remainder is almost zero
		displacement = roundFrac(displacement.Sub(roughTranslation)).Add(roughTranslation)
		translation = translation.Add(displacement)
	}
	translation = translation.Scale(1 / float64(numAtoms))

	distance := 0.0
	for i := 0; i < numAtoms; i++ {
		displacement := rotation.MulVecF(reducedCell.Positions[i]).Add(translation).Sub(reducedCell.Positions[permutation.Apply(i)])
		d := reducedCell.Lattice.CartesianCoords(roundFrac(displacement)).Norm()
		if d > distance {
			distance = d
		}
	}
	return translation, distance
}

//roundFrac maps each fractional component into [-0.5, 0.5].
func roundFrac(v v3.Vec) v3.Vec {
	return v.Sub(v.Round().ToVec())
}
