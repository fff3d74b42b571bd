/*
 * pointgroup.go, part of gocryst.
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
	"github.com/gocryst/gocryst/crystdata"
	"github.com/gocryst/gocryst/crystmath"
	"github.com/gocryst/gocryst/v3"
)

//PointGroup is an identified crystallographic point group.
type PointGroup struct {
	ArithmeticNumber int
	//PrimTransMat maps the input primitive basis onto the primitive
	//basis of the tabulated representative.
	PrimTransMat v3.IMat
}

//NewPointGroup identifies the arithmetic crystal class of a rotation
//group given in a reduced primitive basis.
func NewPointGroup(primRotations []v3.IMat) (PointGroup, error) {
	types := rotationTypes(primRotations)
	class, err := geometricCrystalClassOf(types)
	if err != nil {
		return PointGroup{}, err
	}

	switch crystdata.CrystalSystemOf(class) {
	case crystdata.Triclinic:
		//trivial: any basis works for 1 and -1
		switch class {
		case crystdata.ClassC1:
			return PointGroup{ArithmeticNumber: 1, PrimTransMat: v3.IdentI()}, nil
		default:
			return PointGroup{ArithmeticNumber: 2, PrimTransMat: v3.IdentI()}, nil
		}
	case crystdata.Cubic:
		return matchWithCubicPointGroup(primRotations, types, class)
	default:
		return matchWithPointGroup(primRotations, types, class)
	}
}

//PointGroupFromLattice identifies the arithmetic crystal class of
//rotations given in an arbitrary primitive basis of the lattice.
func PointGroupFromLattice(lattice cryst.Lattice, primRotations []v3.IMat) (PointGroup, error) {
	_, reducedTransMat, err := lattice.MinkowskiReduce()
	if err != nil {
		return PointGroup{}, err
	}
	toReduced := cryst.UnimodularFromLinear(reducedTransMat)
	ops := make([]cryst.Operation, len(primRotations))
	for i, r := range primRotations {
		ops[i] = cryst.NewOperation(r, v3.Vec{})
	}
	reducedRotations := cryst.ProjectRotations(toReduced.TransformOperations(ops))

	reduced, err := NewPointGroup(reducedRotations)
	if err != nil {
		return PointGroup{}, err
	}
	return PointGroup{
		ArithmeticNumber: reduced.ArithmeticNumber,
		PrimTransMat:     reduced.PrimTransMat.Mul(reducedTransMat),
	}, nil
}

//matchWithCubicPointGroup shortcuts the unimodular search for cubic
//classes: the space of transformation matrices onto the P-centered
//representative is one-dimensional, so the centering is read off the
//determinant.
func matchWithCubicPointGroup(primRotations []v3.IMat, types []RotationType, class crystdata.GeometricCrystalClass) (PointGroup, error) {
	type candidate struct {
		arithmeticNumber int
		representative   crystdata.PointGroupRepresentative
	}
	var candidates []candidate
	var primitive *candidate
	for number := 1; number <= crystdata.NumArithmeticClasses(); number++ {
		entry, err := crystdata.ArithmeticClass(number)
		if err != nil {
			return PointGroup{}, err
		}
		if entry.GeometricClass != class {
			continue
		}
		representative, err := crystdata.NewPointGroupRepresentative(number)
		if err != nil {
			return PointGroup{}, err
		}
		candidates = append(candidates, candidate{number, representative})
		if representative.Centering == crystdata.CenteringP {
			primitive = &candidates[len(candidates)-1]
		}
	}
	if primitive == nil {
		return PointGroup{}, cryst.ErrArithmeticClass
	}

	for _, basis := range transMatBases(primRotations, types, primitive.representative.PrimitiveGenerators()) {
		if len(basis) != 1 {
			continue
		}
		//convTransMat: input primitive -> P-centered conventional
		convTransMat := basis[0]
		det := convTransMat.Det()
		if det < 0 {
			convTransMat = convTransMat.Neg()
			det = -det
		}
		if det == 0 {
			continue
		}

		for _, cand := range candidates {
			centering := cand.representative.Centering
			if centering.Order() != det {
				continue
			}
			primF := convTransMat.ToMat3().Mul(centering.Inverse())
			primTransMat, ok := v3.IMatFromMat3(primF, 0.5)
			if !ok || primTransMat.Det() != 1 {
				return PointGroup{}, cryst.ErrArithmeticClass
			}
			return PointGroup{ArithmeticNumber: cand.arithmeticNumber, PrimTransMat: primTransMat}, nil
		}
	}
	return PointGroup{}, cryst.ErrArithmeticClass
}

func matchWithPointGroup(primRotations []v3.IMat, types []RotationType, class crystdata.GeometricCrystalClass) (PointGroup, error) {
	for number := 1; number <= crystdata.NumArithmeticClasses(); number++ {
		entry, err := crystdata.ArithmeticClass(number)
		if err != nil {
			return PointGroup{}, err
		}
		if entry.GeometricClass != class {
			continue
		}
		representative, err := crystdata.NewPointGroupRepresentative(number)
		if err != nil {
			return PointGroup{}, err
		}

		for _, basis := range transMatBases(primRotations, types, representative.PrimitiveGenerators()) {
			if primTransMat, ok := firstUnimodular(basis); ok {
				return PointGroup{ArithmeticNumber: number, PrimTransMat: primTransMat}, nil
			}
		}
	}
	return PointGroup{}, cryst.ErrArithmeticClass
}

//geometricCrystalClassOf looks up the class from the count of each
//rotation type, ordered (-6, -4, -3, -2, -1, 1, 2, 3, 4, 6). See
//Table 6 of arXiv:1808.01590.
func geometricCrystalClassOf(types []RotationType) (crystdata.GeometricCrystalClass, error) {
	var count [10]int
	for _, t := range types {
		switch t {
		case -6:
			count[0]++
		case -4:
			count[1]++
		case -3:
			count[2]++
		case -2:
			count[3]++
		case -1:
			count[4]++
		case 1:
			count[5]++
		case 2:
			count[6]++
		case 3:
			count[7]++
		case 4:
			count[8]++
		case 6:
			count[9]++
		}
	}
	class, ok := geometricClassByCount[count]
	if !ok {
		return "", cryst.ErrGeometricClass
	}
	return class, nil
}

var geometricClassByCount = map[[10]int]crystdata.GeometricCrystalClass{
	//triclinic
	{0, 0, 0, 0, 0, 1, 0, 0, 0, 0}: crystdata.ClassC1,
	{0, 0, 0, 0, 1, 1, 0, 0, 0, 0}: crystdata.ClassCi,
	//monoclinic
	{0, 0, 0, 0, 0, 1, 1, 0, 0, 0}: crystdata.ClassC2,
	{0, 0, 0, 1, 0, 1, 0, 0, 0, 0}: crystdata.ClassC1h,
	{0, 0, 0, 1, 1, 1, 1, 0, 0, 0}: crystdata.ClassC2h,
	//orthorhombic
	{0, 0, 0, 0, 0, 1, 3, 0, 0, 0}: crystdata.ClassD2,
	{0, 0, 0, 2, 0, 1, 1, 0, 0, 0}: crystdata.ClassC2v,
	{0, 0, 0, 3, 1, 1, 3, 0, 0, 0}: crystdata.ClassD2h,
	//tetragonal
	{0, 0, 0, 0, 0, 1, 1, 0, 2, 0}: crystdata.ClassC4,
	{0, 2, 0, 0, 0, 1, 1, 0, 0, 0}: crystdata.ClassS4,
	{0, 2, 0, 1, 1, 1, 1, 0, 2, 0}: crystdata.ClassC4h,
	{0, 0, 0, 0, 0, 1, 5, 0, 2, 0}: crystdata.ClassD4,
	{0, 0, 0, 4, 0, 1, 1, 0, 2, 0}: crystdata.ClassC4v,
	{0, 2, 0, 2, 0, 1, 3, 0, 0, 0}: crystdata.ClassD2d,
	{0, 2, 0, 5, 1, 1, 5, 0, 2, 0}: crystdata.ClassD4h,
	//trigonal
	{0, 0, 0, 0, 0, 1, 0, 2, 0, 0}: crystdata.ClassC3,
	{0, 0, 2, 0, 1, 1, 0, 2, 0, 0}: crystdata.ClassC3i,
	{0, 0, 0, 0, 0, 1, 3, 2, 0, 0}: crystdata.ClassD3,
	{0, 0, 0, 3, 0, 1, 0, 2, 0, 0}: crystdata.ClassC3v,
	{0, 0, 2, 3, 1, 1, 3, 2, 0, 0}: crystdata.ClassD3d,
	//hexagonal
	{0, 0, 0, 0, 0, 1, 1, 2, 0, 2}: crystdata.ClassC6,
	{2, 0, 0, 1, 0, 1, 0, 2, 0, 0}: crystdata.ClassC3h,
	{2, 0, 2, 1, 1, 1, 1, 2, 0, 2}: crystdata.ClassC6h,
	{0, 0, 0, 0, 0, 1, 7, 2, 0, 2}: crystdata.ClassD6,
	{0, 0, 0, 6, 0, 1, 1, 2, 0, 2}: crystdata.ClassC6v,
	{2, 0, 0, 4, 0, 1, 3, 2, 0, 0}: crystdata.ClassD3h,
	{2, 0, 2, 7, 1, 1, 7, 2, 0, 2}: crystdata.ClassD6h,
	//cubic
	{0, 0, 0, 0, 0, 1, 3, 8, 0, 0}: crystdata.ClassT,
	{0, 0, 8, 3, 1, 1, 3, 8, 0, 0}: crystdata.ClassTh,
	{0, 0, 0, 0, 0, 1, 9, 8, 6, 0}: crystdata.ClassO,
	{0, 6, 0, 6, 0, 1, 3, 8, 0, 0}: crystdata.ClassTd,
	{0, 6, 8, 9, 1, 1, 9, 8, 6, 0}: crystdata.ClassOh,
}

//transMatBases enumerates integer bases of the transformation
//matrices mapping the rotation group onto the group generated by
//otherGenerators. For each assignment of a rotation of matching type
//to each generator, the simultaneous conjugation equations
//P^-1 R_i P = G_i are solved by the Sylvester equation.
func transMatBases(primRotations []v3.IMat, types []RotationType, otherGenerators []v3.IMat) [][]v3.IMat {
	generatorTypes := rotationTypes(otherGenerators)

	candidates := make([][]int, len(otherGenerators))
	for k, t := range generatorTypes {
		for i := range primRotations {
			if types[i] == t {
				candidates[k] = append(candidates[k], i)
			}
		}
		if len(candidates[k]) == 0 {
			return nil
		}
	}

	var bases [][]v3.IMat
	pivot := make([]int, len(candidates))
	eachProduct(candidates, pivot, 0, func() {
		a := make([]v3.IMat, len(pivot))
		for k, i := range pivot {
			a[k] = primRotations[candidates[k][i]]
		}
		if basis := crystmath.Sylvester3(a, otherGenerators); basis != nil {
			bases = append(bases, basis)
		}
	})
	return bases
}

//eachProduct walks the cartesian product of index ranges, calling fn
//with indices filled into pivot.
func eachProduct(candidates [][]int, pivot []int, depth int, fn func()) {
	if depth == len(candidates) {
		fn()
		return
	}
	for i := range candidates[depth] {
		pivot[depth] = i
		eachProduct(candidates, pivot, depth+1, fn)
	}
}

//firstUnimodular searches an integer combination of the basis with
//determinant one. Coefficients in [-1, 1] are tried before [-2, 2],
//which suffices for a Delaunay-reduced basis.
func firstUnimodular(basis []v3.IMat) (v3.IMat, bool) {
	var found v3.IMat
	ok := eachUnimodular(basis, func(m v3.IMat) bool {
		found = m
		return true
	})
	return found, ok
}

//eachUnimodular calls fn with every determinant-one combination of
//the basis until fn returns true.
func eachUnimodular(basis []v3.IMat, fn func(v3.IMat) bool) bool {
	if len(basis) == 0 {
		return false
	}
	comb := make([]int, len(basis))
	try := func(limit int, need2 bool) bool {
		var rec func(depth int) bool
		rec = func(depth int) bool {
			if depth == len(basis) {
				if need2 {
					any2 := false
					for _, c := range comb {
						if c == 2 || c == -2 {
							any2 = true
							break
						}
					}
					if !any2 {
						return false
					}
				}
				var m v3.IMat
				for k, c := range comb {
					for i := 0; i < 3; i++ {
						for j := 0; j < 3; j++ {
							m[i][j] += c * basis[k][i][j]
						}
					}
				}
				if m.Det() != 1 {
					return false
				}
				return fn(m)
			}
			for c := -limit; c <= limit; c++ {
				comb[depth] = c
				if rec(depth + 1) {
					return true
				}
			}
			return false
		}
		return rec(0)
	}
	if try(1, false) {
		return true
	}
	return try(2, true)
}
