/*
 * spacegroup.go, part of gocryst.
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
	"github.com/gocryst/gocryst/crystmath"
	"github.com/gocryst/gocryst/v3"
)

//SpaceGroup is an identified space-group type.
type SpaceGroup struct {
	Number     int
	HallNumber int
	//Transformation maps the input primitive setting onto the
	//primitive setting of HallNumber.
	Transformation cryst.UnimodularTransformation
}

//NewSpaceGroup identifies the space-group type of operations given in
//a reduced primitive basis. epsilon is the tolerance for comparing
//translation parts.
func NewSpaceGroup(primOperations []cryst.Operation, setting crystdata.Setting, epsilon float64) (SpaceGroup, error) {
	primRotations := cryst.ProjectRotations(primOperations)
	pointGroup, err := NewPointGroup(primRotations)
	if err != nil {
		return SpaceGroup{}, err
	}

	corrections, err := correctionTransformationMatrices(pointGroup.ArithmeticNumber)
	if err != nil {
		return SpaceGroup{}, err
	}
	for _, hallNumber := range setting.HallNumbers() {
		entry, err := crystdata.HallEntry(hallNumber)
		if err != nil {
			return SpaceGroup{}, err
		}
		if entry.ArithmeticNumber != pointGroup.ArithmeticNumber {
			continue
		}

		hs, err := crystdata.NewHallSymbolFromNumber(hallNumber)
		if err != nil {
			return SpaceGroup{}, err
		}
		dbPrimGenerators := hs.PrimitiveGenerators()

		//several settings of the same group differ only by an axis
		//permutation, so a few corrections are tried per entry
		for _, corr := range corrections {
			transMat := pointGroup.PrimTransMat.Mul(corr)
			if originShift, ok := matchOriginShift(primOperations, transMat, dbPrimGenerators, epsilon); ok {
				return SpaceGroup{
					Number:         entry.Number,
					HallNumber:     hallNumber,
					Transformation: cryst.NewUnimodularTransformation(transMat, originShift),
				}, nil
			}
		}
	}
	return SpaceGroup{}, cryst.ErrSpaceGroupType
}

//SpaceGroupFromLattice identifies the space-group type of operations
//given in an arbitrary primitive basis of the lattice.
func SpaceGroupFromLattice(lattice cryst.Lattice, primOperations []cryst.Operation, setting crystdata.Setting, epsilon float64) (SpaceGroup, error) {
	_, reducedTransMat, err := lattice.MinkowskiReduce()
	if err != nil {
		return SpaceGroup{}, err
	}
	toReduced := cryst.UnimodularFromLinear(reducedTransMat)
	reducedPrimOperations := toReduced.TransformOperations(primOperations)

	reduced, err := NewSpaceGroup(reducedPrimOperations, setting, epsilon)
	if err != nil {
		return SpaceGroup{}, err
	}
	return SpaceGroup{
		Number:         reduced.Number,
		HallNumber:     reduced.HallNumber,
		Transformation: reduced.Transformation.Compose(toReduced),
	}, nil
}

//SpaceGroupFromHallNumber wraps a known Hall number and transformation
//into a SpaceGroup.
func SpaceGroupFromHallNumber(hallNumber int, transformation cryst.UnimodularTransformation) (SpaceGroup, error) {
	entry, err := crystdata.HallEntry(hallNumber)
	if err != nil {
		return SpaceGroup{}, err
	}
	return SpaceGroup{
		Number:         entry.Number,
		HallNumber:     hallNumber,
		Transformation: transformation,
	}, nil
}

//correctionTransformationMatrices lists the changes of conventional
//setting that leave the arithmetic crystal class invariant: cell
//choices for monoclinic classes, axis permutations for orthorhombic
//ones and the axis swap of m-3. Each is conjugated into the primitive
//basis of the class centering; matrices that do not stay unimodular
//there are discarded.
func correctionTransformationMatrices(arithmeticNumber int) ([]v3.IMat, error) {
	entry, err := crystdata.ArithmeticClass(arithmeticNumber)
	if err != nil {
		return nil, err
	}

	var convs []v3.IMat
	switch entry.GeometricClass {
	case crystdata.ClassC2, crystdata.ClassC1h, crystdata.ClassC2h:
		convs = []v3.IMat{
			v3.IdentI(),
			//b2 to b1
			{{0, 0, -1}, {0, 1, 0}, {1, 0, -1}},
			//b3 to b1
			{{-1, 0, 1}, {0, 1, 0}, {-1, 0, 0}},
		}
	case crystdata.ClassD2, crystdata.ClassC2v, crystdata.ClassD2h:
		convs = []v3.IMat{
			//abc
			v3.IdentI(),
			//ba-c
			{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
			//cab
			{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
			//-cba
			{{0, 0, -1}, {0, 1, 0}, {1, 0, 0}},
			//bca
			{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
			//a-cb
			{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
		}
	case crystdata.ClassTh:
		convs = []v3.IMat{
			v3.IdentI(),
			{{0, 0, 1}, {0, -1, 0}, {1, 0, 0}},
		}
	default:
		convs = []v3.IMat{v3.IdentI()}
	}

	representative, err := crystdata.NewPointGroupRepresentative(arithmeticNumber)
	if err != nil {
		return nil, err
	}
	centering := representative.Centering

	corrections := make([]v3.IMat, 0, len(convs))
	for _, conv := range convs {
		corrF := centering.Linear().Mul(conv).ToMat3().Mul(centering.Inverse())
		corr, ok := v3.IMatFromMat3(corrF, 0.5)
		if !ok || corr.Det() != 1 {
			continue
		}
		corrections = append(corrections, corr)
	}
	return corrections, nil
}

//matchOriginShift searches an origin shift c such that (P, c)
//conjugates the operations onto the tabulated generators, where P is
//transMat. Writing s = P^-1 c, each generator (R, t_db) imposes
//(R - E) s = t_db - t (mod 1) against the conjugated translation t of
//the operation sharing R, and the stacked system is solved modulo one.
func matchOriginShift(primOperations []cryst.Operation, transMat v3.IMat, dbPrimGenerators []cryst.Operation, epsilon float64) (v3.Vec, bool) {
	conjugated := cryst.UnimodularFromLinear(transMat).TransformOperations(primOperations)
	translations := make(map[v3.IMat]v3.Vec, len(conjugated))
	for _, op := range conjugated {
		translations[op.Rotation] = op.Translation
	}

	a := make([][]int, 0, 3*len(dbPrimGenerators))
	b := make([]float64, 0, 3*len(dbPrimGenerators))
	for _, gen := range dbPrimGenerators {
		//a correction matrix need not normalize the point group, so
		//the rotation may be missing (for example mm2 against 2mm)
		target, ok := translations[gen.Rotation]
		if !ok {
			return v3.Vec{}, false
		}
		for i := 0; i < 3; i++ {
			row := make([]int, 3)
			for j := 0; j < 3; j++ {
				row[j] = gen.Rotation[i][j]
			}
			row[i]--
			a = append(a, row)
			b = append(b, gen.Translation[i]-target[i])
		}
	}

	s, ok := solveMod1(a, b, epsilon)
	if !ok {
		return v3.Vec{}, false
	}
	originShift := transMat.MulVecF(s)
	for i := 0; i < 3; i++ {
		originShift[i] = math.Mod(originShift[i], 1)
	}
	return originShift, true
}

//solveMod1 solves a x = b (mod 1) for x in [0, 1)^3, with a an
//integer matrix of 3 columns. Via the Smith normal form d = l a r the
//system becomes d y = l b with x = r y; zero diagonal entries require
//the corresponding entry of l b to be an integer.
func solveMod1(a [][]int, b []float64, epsilon float64) (v3.Vec, bool) {
	snf := crystmath.NewSNF(a)

	lb := make([]float64, len(b))
	for i := range snf.L {
		for j := range b {
			lb[i] += float64(snf.L[i][j]) * b[j]
		}
	}

	var y v3.Vec
	for i := 0; i < 3; i++ {
		if snf.D[i][i] == 0 {
			if r := lb[i] - math.Round(lb[i]); math.Abs(r) > epsilon {
				return v3.Vec{}, false
			}
		} else {
			y[i] = lb[i] / float64(snf.D[i][i])
		}
	}

	var x v3.Vec
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			x[i] += float64(snf.R[i][j]) * y[j]
		}
		x[i] = math.Mod(x[i], 1)
	}

	for i := range a {
		residual := -b[i]
		for j := 0; j < 3; j++ {
			residual += float64(a[i][j]) * x[j]
		}
		residual -= math.Round(residual)
		if math.Abs(residual) > epsilon {
			return v3.Vec{}, false
		}
	}
	return x, true
}
