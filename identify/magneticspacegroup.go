/*
 * magneticspacegroup.go, part of gocryst.
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
	"math"

	cryst "github.com/gocryst/gocryst"
	"github.com/gocryst/gocryst/crystdata"
	"github.com/gocryst/gocryst/v3"
)

//MagneticSpaceGroup is an identified magnetic space-group type.
type MagneticSpaceGroup struct {
	UNINumber int
	//Transformation maps the input primitive setting onto the
	//primitive BNS setting of UNINumber.
	Transformation cryst.UnimodularTransformation
}

//NewMagneticSpaceGroup identifies the magnetic space-group type of
//magnetic operations given in a reduced primitive basis. epsilon is
//the tolerance for comparing translation parts.
func NewMagneticSpaceGroup(primMagOperations []cryst.MagneticOperation, epsilon float64) (MagneticSpaceGroup, error) {
	refOperations, constructType, err := identifyReferenceSpaceGroup(primMagOperations, epsilon)
	if err != nil {
		return MagneticSpaceGroup{}, err
	}
	//stdRefSpg.Transformation: primitive input -> primitive BNS setting
	stdRefSpg, err := NewSpaceGroup(refOperations, crystdata.Setting{}, epsilon)
	if err != nil {
		return MagneticSpaceGroup{}, err
	}

	for _, uniNumber := range crystdata.UNINumbersForSpaceGroup(stdRefSpg.Number) {
		entry, err := crystdata.MagneticSpaceGroupType(uniNumber)
		if err != nil {
			return MagneticSpaceGroup{}, err
		}
		if entry.ConstructType != constructType {
			continue
		}

		//for types I and II the reference group already pins the type
		if constructType == crystdata.Type1 || constructType == crystdata.Type2 {
			return MagneticSpaceGroup{
				UNINumber:      uniNumber,
				Transformation: stdRefSpg.Transformation,
			}, nil
		}

		symbol, err := crystdata.MagneticSpaceGroupHallSymbol(uniNumber)
		if err != nil {
			return MagneticSpaceGroup{}, err
		}
		mhs, err := crystdata.NewMagneticHallSymbol(symbol)
		if err != nil {
			return MagneticSpaceGroup{}, err
		}
		dbPrimMagOperations := mhs.PrimitiveTraverse()
		dbRefOperations, dbRefGenerators, err := dbReferenceSpaceGroupPrimitive(entry.Number)
		if err != nil {
			return MagneticSpaceGroup{}, err
		}

		switch constructType {
		case crystdata.Type3:
			//the centralizer of the family group keeps the maximal
			//subgroup invariant, so sweeping the normalizer of the
			//family group up to the centralizer is enough
			for _, corr := range integralNormalizer(dbRefOperations, dbRefGenerators, epsilon) {
				newTransformation := stdRefSpg.Transformation.Compose(corr)
				newPrimMagOperations := newTransformation.TransformMagneticOperations(primMagOperations)
				if matchPrimMagOperations(newPrimMagOperations, dbPrimMagOperations, epsilon) {
					return MagneticSpaceGroup{
						UNINumber:      uniNumber,
						Transformation: newTransformation,
					}, nil
				}
			}
		case crystdata.Type4:
			//find a conjugator sending the anti-translation of the
			//input onto the tabled one while keeping the maximal
			//subgroup
			src, ok := antiTranslation(stdRefSpg.Transformation.TransformMagneticOperations(primMagOperations))
			if !ok {
				return MagneticSpaceGroup{}, cryst.ErrMagneticSpaceGroupType
			}
			dst, ok := antiTranslation(dbPrimMagOperations)
			if !ok {
				return MagneticSpaceGroup{}, cryst.ErrMagneticSpaceGroupType
			}
			if corr, found := findConjugatorType4(dbRefGenerators, dbRefOperations, src, dst, epsilon); found {
				newTransformation := stdRefSpg.Transformation.Compose(corr)
				newPrimMagOperations := newTransformation.TransformMagneticOperations(primMagOperations)
				if matchPrimMagOperations(newPrimMagOperations, dbPrimMagOperations, epsilon) {
					return MagneticSpaceGroup{
						UNINumber:      uniNumber,
						Transformation: newTransformation,
					}, nil
				}
			}
		}
	}
	return MagneticSpaceGroup{}, cryst.ErrMagneticSpaceGroupType
}

//ReferenceSpaceGroup returns the reference space group of the
//identified type in the BNS setting.
func (msg MagneticSpaceGroup) ReferenceSpaceGroup() (SpaceGroup, error) {
	entry, err := crystdata.MagneticSpaceGroupType(msg.UNINumber)
	if err != nil {
		return SpaceGroup{}, err
	}
	refHallNumber, err := crystdata.StandardHallNumber(entry.Number)
	if err != nil {
		return SpaceGroup{}, err
	}
	return SpaceGroupFromHallNumber(refHallNumber, msg.Transformation)
}

//identifyReferenceSpaceGroup derives the construct type and the
//reference space group in the BNS setting: the family group for types
//I to III, the maximal space subgroup for type IV.
func identifyReferenceSpaceGroup(primMagOperations []cryst.MagneticOperation, epsilon float64) ([]cryst.Operation, crystdata.ConstructType, error) {
	xsg, _ := MaximalSpaceSubgroup(primMagOperations)
	fsg, isType2, _ := FamilySpaceGroup(primMagOperations, epsilon)

	if len(primMagOperations)%len(xsg) != 0 || len(primMagOperations)%len(fsg) != 0 {
		return nil, 0, cryst.ErrConstructType
	}

	var constructType crystdata.ConstructType
	switch index := len(primMagOperations) / len(xsg); {
	case index == 1 && !isType2:
		constructType = crystdata.Type1
	case index == 2 && isType2:
		constructType = crystdata.Type2
	case index == 2 && !isType2:
		if _, ok := antiTranslation(primMagOperations); ok {
			constructType = crystdata.Type4
		} else {
			constructType = crystdata.Type3
		}
	default:
		return nil, 0, cryst.ErrConstructType
	}

	if constructType == crystdata.Type4 {
		return xsg, constructType, nil
	}
	return fsg, constructType, nil
}

//MaximalSpaceSubgroup takes the operations without time reversal. The
//returned mask marks which input operations were kept.
func MaximalSpaceSubgroup(primMagOperations []cryst.MagneticOperation) ([]cryst.Operation, []bool) {
	xsg := make([]cryst.Operation, 0, len(primMagOperations))
	contained := make([]bool, len(primMagOperations))
	for i, mop := range primMagOperations {
		if mop.TimeReversal {
			continue
		}
		xsg = append(xsg, mop.Operation)
		contained[i] = true
	}
	return xsg, contained
}

//FamilySpaceGroup takes all operations ignoring their time-reversal
//parts, dropping duplicates. The reported flag is true when some
//operation appears both with and without time reversal (type II). For
//type IV groups the result still holds duplicated rotation parts.
func FamilySpaceGroup(primMagOperations []cryst.MagneticOperation, epsilon float64) ([]cryst.Operation, bool, []bool) {
	fsg := make([]cryst.Operation, 0, len(primMagOperations))
	translations := make(map[v3.IMat]v3.Vec)
	contained := make([]bool, len(primMagOperations))
	isType2 := false

	for i, mop := range primMagOperations {
		if other, ok := translations[mop.Operation.Rotation]; ok {
			if nearLatticeTranslation(mop.Operation.Translation.Sub(other), epsilon) {
				isType2 = true
				continue
			}
		}
		fsg = append(fsg, mop.Operation)
		translations[mop.Operation.Rotation] = mop.Operation.Translation
		contained[i] = true
	}
	return fsg, isType2, contained
}

//dbReferenceSpaceGroupPrimitive returns the primitive operations and
//generators of the reference space group of a magnetic type, taken
//from the standard Hall setting of its space-group number.
func dbReferenceSpaceGroupPrimitive(number int) ([]cryst.Operation, []cryst.Operation, error) {
	refHallNumber, err := crystdata.StandardHallNumber(number)
	if err != nil {
		return nil, nil, err
	}
	hs, err := crystdata.NewHallSymbolFromNumber(refHallNumber)
	if err != nil {
		return nil, nil, err
	}
	operations := hs.PrimitiveTraverse()

	//in primitive, a generator with identity rotation is a pure
	//translation and generates nothing
	generators := make([]cryst.Operation, 0, len(hs.Generators))
	for _, gen := range hs.PrimitiveGenerators() {
		if gen.Rotation == v3.IdentI() {
			continue
		}
		generators = append(generators, gen)
	}
	if len(generators) == 0 {
		generators = append(generators, cryst.NewOperation(v3.IdentI(), v3.Vec{}))
	}
	return operations, generators, nil
}

//findConjugatorType4 searches a unimodular transformation sending
//(E, src) to (E, dst) while keeping the stabilized operations. Since
//(P, p)^-1 (E, src) (P, p) = (E, P^-1 src), the candidate must obey
//P^-1 src = dst (mod 1).
func findConjugatorType4(stabilizedGenerators, stabilizedOperations []cryst.Operation, src, dst v3.Vec, epsilon float64) (cryst.UnimodularTransformation, bool) {
	stabilizedRotations := cryst.ProjectRotations(stabilizedOperations)
	stabilizedRotationGenerators := cryst.ProjectRotations(stabilizedGenerators)
	types := rotationTypes(stabilizedRotations)

	var conjugator cryst.UnimodularTransformation
	for _, basis := range transMatBases(stabilizedRotations, types, stabilizedRotationGenerators) {
		found := eachUnimodular(basis, func(primTransMat v3.IMat) bool {
			if !nearLatticeTranslation(primTransMat.MulVecF(dst).Sub(src), epsilon) {
				return false
			}
			originShift, ok := matchOriginShift(stabilizedOperations, primTransMat, stabilizedGenerators, epsilon)
			if !ok {
				return false
			}
			conjugator = cryst.NewUnimodularTransformation(primTransMat, originShift)
			return true
		})
		if found {
			return conjugator, true
		}
	}
	return cryst.UnimodularTransformation{}, false
}

//matchPrimMagOperations compares two primitive magnetic groups up to
//lattice translations.
func matchPrimMagOperations(a, b []cryst.MagneticOperation, epsilon float64) bool {
	if len(a) != len(b) {
		return false
	}

	type key struct {
		rotation     v3.IMat
		timeReversal bool
	}
	translations := make(map[key]v3.Vec, len(a))
	for _, mop := range a {
		translations[key{mop.Operation.Rotation, mop.TimeReversal}] = mop.Operation.Translation
	}
	for _, mop := range b {
		other, ok := translations[key{mop.Operation.Rotation, mop.TimeReversal}]
		if !ok {
			return false
		}
		if !nearLatticeTranslation(mop.Operation.Translation.Sub(other), epsilon) {
			return false
		}
	}
	return true
}

//antiTranslation returns the translation of the first pure
//anti-translation, an operation with identity rotation and time
//reversal.
func antiTranslation(magOperations []cryst.MagneticOperation) (v3.Vec, bool) {
	for _, mop := range magOperations {
		if mop.TimeReversal && mop.Operation.Rotation == v3.IdentI() {
			return mop.Operation.Translation, true
		}
	}
	return v3.Vec{}, false
}

//nearLatticeTranslation reports whether every component of diff is
//within epsilon of an integer.
func nearLatticeTranslation(diff v3.Vec, epsilon float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(diff[i]-math.Round(diff[i])) > epsilon {
			return false
		}
	}
	return true
}
