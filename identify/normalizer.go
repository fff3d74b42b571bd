/*
 * normalizer.go, part of gocryst.
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

package identify

import (
	cryst "github.com/gocryst/gocryst"
)

//integralNormalizer generates the integral normalizer of the space
//group up to its centralizer. The factor group of the integral
//normalizer by the centralizer is isomorphic to a finite permutation
//group, so the result is finite. Coefficients in [-2, 2] suffice for
//a Delaunay-reduced basis.
func integralNormalizer(primOperations, primGenerators []cryst.Operation, epsilon float64) []cryst.UnimodularTransformation {
	primRotations := cryst.ProjectRotations(primOperations)
	primRotationGenerators := cryst.ProjectRotations(primGenerators)
	types := rotationTypes(primRotations)

	var conjugators []cryst.UnimodularTransformation
	for _, basis := range transMatBases(primRotations, types, primRotationGenerators) {
		if primTransMat, ok := firstUnimodular(basis); ok {
			if originShift, found := matchOriginShift(primOperations, primTransMat, primGenerators, epsilon); found {
				conjugators = append(conjugators,
					cryst.NewUnimodularTransformation(primTransMat, originShift))
			}
		}
	}
	return conjugators
}
