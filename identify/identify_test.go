/*
 * identify_test.go, part of gocryst.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryst "github.com/gocryst/gocryst"
	"github.com/gocryst/gocryst/crystdata"
	"github.com/gocryst/gocryst/search"
	v3 "github.com/gocryst/gocryst/v3"
)

func TestRotationTypeOf(t *testing.T) {
	cases := []struct {
		rotation v3.IMat
		expect   RotationType
	}{
		{v3.IdentI(), 1},
		{v3.IdentI().Neg(), -1},
		{v3.IMat{{-1, 0, 0}, {0, -1, 0}, {0, 0, 1}}, 2},
		{v3.IMat{{1, 0, 0}, {0, 1, 0}, {0, 0, -1}}, -2},
		{v3.IMat{{0, -1, 0}, {1, -1, 0}, {0, 0, 1}}, 3},
		{v3.IMat{{0, 1, 0}, {-1, 1, 0}, {0, 0, -1}}, -3},
		{v3.IMat{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}}, 4},
		{v3.IMat{{0, 1, 0}, {-1, 0, 0}, {0, 0, -1}}, -4},
		{v3.IMat{{1, -1, 0}, {1, 0, 0}, {0, 0, 1}}, 6},
		{v3.IMat{{-1, 1, 0}, {-1, 0, 0}, {0, 0, -1}}, -6},
	}
	for _, c := range cases {
		assert.Equal(t, c.expect, RotationTypeOf(c.rotation))
	}
}

//every arithmetic crystal class must be recovered from the rotation
//group of its own representative, with a determinant-one matching
//matrix that maps the group into itself
func TestPointGroupMatch(t *testing.T) {
	for number := 1; number <= crystdata.NumArithmeticClasses(); number++ {
		representative, err := crystdata.NewPointGroupRepresentative(number)
		require.NoError(t, err)
		primRotations := search.TraverseRotations(representative.PrimitiveGenerators())

		pointGroup, err := NewPointGroup(primRotations)
		require.NoError(t, err, "arithmetic crystal class %d", number)
		assert.Equal(t, number, pointGroup.ArithmeticNumber)
		assert.Equal(t, 1, pointGroup.PrimTransMat.Det())

		rotationSet := make(map[v3.IMat]bool, len(primRotations))
		for _, r := range primRotations {
			rotationSet[r] = true
		}
		inv := pointGroup.PrimTransMat.Inverse()
		for _, r := range primRotations {
			conjugated := inv.Mul(r).Mul(pointGroup.PrimTransMat)
			assert.True(t, rotationSet[conjugated])
		}
	}
}

func TestSolveMod1(t *testing.T) {
	a := [][]int{
		{-2, 0, 0},
		{0, -2, 0},
		{0, 0, -2},
		{-2, 0, 0},
		{0, 0, 0},
		{0, 0, -2},
	}
	b := []float64{0, 0, 0, 0, 0.5, 0}
	_, ok := solveMod1(a, b, cryst.EPS)
	assert.False(t, ok)
}

//the monoclinic corrections applied to P1c1 (Hall number 21) change
//the glide into c, a and n
func TestCorrectionTransformationMatrices(t *testing.T) {
	hs, err := crystdata.NewHallSymbolFromNumber(21)
	require.NoError(t, err)
	primOperations := hs.PrimitiveTraverse()

	entry, err := crystdata.HallEntry(21)
	require.NoError(t, err)
	corrections, err := correctionTransformationMatrices(entry.ArithmeticNumber)
	require.NoError(t, err)
	require.Len(t, corrections, 3)

	mirror := v3.IMat{{1, 0, 0}, {0, -1, 0}, {0, 0, 1}}
	expects := []v3.Vec{{0, 0, 0.5}, {0.5, 0, 0}, {-0.5, 0, -0.5}}
	for i, corr := range corrections {
		conjugated := cryst.UnimodularFromLinear(corr).TransformOperations(primOperations)
		found := false
		for _, op := range conjugated {
			if op.Rotation != mirror {
				continue
			}
			found = true
			for k := 0; k < 3; k++ {
				assert.InDelta(t, expects[i][k], op.Translation[k], 1e-8)
			}
		}
		assert.True(t, found)
	}
}

func checkSpaceGroup(t *testing.T, hallNumber int, setting crystdata.Setting) {
	t.Helper()

	hs, err := crystdata.NewHallSymbolFromNumber(hallNumber)
	require.NoError(t, err)
	primOperations := hs.PrimitiveTraverse()

	spaceGroup, err := NewSpaceGroup(primOperations, setting, 1e-8)
	require.NoError(t, err, "Hall number %d", hallNumber)

	entry, err := crystdata.HallEntry(hallNumber)
	require.NoError(t, err)
	assert.Equal(t, entry.Number, spaceGroup.Number)
	assert.Equal(t, 1, spaceGroup.Transformation.Linear.Det())

	//the transformed operations must coincide with those of the
	//matched setting up to lattice translations
	matched, err := crystdata.NewHallSymbolFromNumber(spaceGroup.HallNumber)
	require.NoError(t, err)
	matchedOperations := matched.PrimitiveTraverse()

	translations := make(map[v3.IMat]v3.Vec, len(matchedOperations))
	for _, op := range matchedOperations {
		translations[op.Rotation] = op.Translation
	}
	transformed := spaceGroup.Transformation.TransformOperations(primOperations)
	require.Equal(t, len(matchedOperations), len(transformed))
	for _, op := range transformed {
		expect, ok := translations[op.Rotation]
		require.True(t, ok)
		for k := 0; k < 3; k++ {
			diff := expect[k] - op.Translation[k]
			assert.InDelta(t, 0, diff-math.Round(diff), 1e-8)
		}
	}
}

func TestIdentifySpaceGroup(t *testing.T) {
	for _, hallNumber := range []int{1, 21, 150, 292, 480, 523, 530} {
		checkSpaceGroup(t, hallNumber, crystdata.Setting{})
	}
}

func TestIdentifySpaceGroupAllSettings(t *testing.T) {
	if testing.Short() {
		t.Skip("scanning all Hall settings")
	}
	for _, setting := range []crystdata.Setting{{}, {Spglib: true}} {
		for hallNumber := 1; hallNumber <= crystdata.NumHallSymbols(); hallNumber++ {
			checkSpaceGroup(t, hallNumber, setting)
		}
	}
}

func primMagOperations(t *testing.T, uniNumber int) []cryst.MagneticOperation {
	t.Helper()
	mhs, err := crystdata.NewMagneticHallSymbolFromUNI(uniNumber)
	require.NoError(t, err)
	return mhs.PrimitiveTraverse()
}

func TestMaximalSubgroupAndFamilyGroup(t *testing.T) {
	cases := []struct {
		uniNumber     int
		constructType crystdata.ConstructType
		orderMSG      int
		orderXSG      int
		orderFSG      int
	}{
		{2, crystdata.Type2, 2, 1, 1},
		{1594, crystdata.Type1, 48, 48, 48},
		{1595, crystdata.Type2, 96, 48, 48},
		{1596, crystdata.Type3, 48, 24, 48},
		{1599, crystdata.Type4, 96, 48, 96},
	}
	for _, c := range cases {
		magOperations := primMagOperations(t, c.uniNumber)
		require.Len(t, magOperations, c.orderMSG)

		xsg, _ := MaximalSpaceSubgroup(magOperations)
		assert.Len(t, xsg, c.orderXSG)

		fsg, _, _ := FamilySpaceGroup(magOperations, 1e-8)
		assert.Len(t, fsg, c.orderFSG)

		_, constructType, err := identifyReferenceSpaceGroup(magOperations, 1e-8)
		require.NoError(t, err)
		assert.Equal(t, c.constructType, constructType)
	}
}

func checkMagneticSpaceGroup(t *testing.T, uniNumber int) {
	t.Helper()
	magOperations := primMagOperations(t, uniNumber)
	msg, err := NewMagneticSpaceGroup(magOperations, 1e-8)
	require.NoError(t, err, "UNI number %d", uniNumber)
	assert.Equal(t, uniNumber, msg.UNINumber)
}

func TestIdentifyMagneticSpaceGroup(t *testing.T) {
	for _, uniNumber := range []int{1, 2, 771, 1155, 1158, 1594, 1595, 1596, 1599, 1651} {
		checkMagneticSpaceGroup(t, uniNumber)
	}
}

func TestIdentifyMagneticSpaceGroupAllTypes(t *testing.T) {
	if testing.Short() {
		t.Skip("scanning all magnetic space-group types")
	}
	for uniNumber := 1; uniNumber <= crystdata.NumMagneticSpaceGroupTypes(); uniNumber++ {
		checkMagneticSpaceGroup(t, uniNumber)
	}
}
