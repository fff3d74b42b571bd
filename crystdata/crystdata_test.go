/*
 * crystdata_test.go, part of gocryst.
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

package crystdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v3 "github.com/gocryst/gocryst/v3"
)

func TestTableCardinalities(t *testing.T) {
	assert.Equal(t, 530, NumHallSymbols())
	assert.Equal(t, 230, NumSpaceGroupTypes())
	assert.Equal(t, 73, NumArithmeticClasses())
	assert.Equal(t, 1651, NumMagneticSpaceGroupTypes())
}

func TestHallEntryLookup(t *testing.T) {
	e, err := HallEntry(480)
	require.NoError(t, err)
	assert.Equal(t, 186, e.Number)
	assert.Equal(t, "P63mc", e.HMShort)
	assert.Equal(t, "P 6c -2c", e.HallSymbol)
	assert.Equal(t, CenteringP, e.Centering)

	last, err := HallEntry(530)
	require.NoError(t, err)
	assert.Equal(t, 230, last.Number)
	assert.Equal(t, "-I 4bd 2c 3", last.HallSymbol)

	_, err = HallEntry(0)
	assert.Error(t, err)
	_, err = HallEntry(531)
	assert.Error(t, err)
}

func TestSpaceGroupTypeLookup(t *testing.T) {
	e, err := SpaceGroupType(225)
	require.NoError(t, err)
	assert.Equal(t, "Fm-3m", e.HMShort)
	assert.Equal(t, 72, e.ArithmeticNumber)
	assert.Equal(t, ClassOh, e.GeometricClass)
	assert.Equal(t, BravaisCF, e.BravaisClass)
	assert.Equal(t, Cubic, e.CrystalSystem)

	wurtzite, err := SpaceGroupType(186)
	require.NoError(t, err)
	assert.Equal(t, ClassC6v, wurtzite.GeometricClass)
	assert.Equal(t, BravaisHP, wurtzite.BravaisClass)
	assert.Equal(t, Hexagonal, wurtzite.CrystalSystem)
	assert.Equal(t, FamilyHexagonal, wurtzite.CrystalFamily)
}

func TestStandardHallNumbers(t *testing.T) {
	for _, c := range []struct{ number, hallNumber int }{
		{1, 1},
		{186, 480},
		{225, 523},
	} {
		got, err := StandardHallNumber(c.number)
		require.NoError(t, err)
		assert.Equal(t, c.hallNumber, got)
	}
}

func TestSettingHallNumbers(t *testing.T) {
	assert.Equal(t, []int{433}, Setting{HallNumber: 433}.HallNumbers())
	assert.Len(t, Setting{Spglib: true}.HallNumbers(), 530)
	standard := Setting{}.HallNumbers()
	assert.Len(t, standard, 230)
	assert.Equal(t, 523, standard[224])
}

func TestClassification(t *testing.T) {
	assert.Equal(t, Tetragonal, CrystalSystemOf(ClassD2d))
	assert.Equal(t, LaueD4h, LaueClassOf(ClassD2d))
	assert.Equal(t, LatticeRhombohedral, LatticeSystemOf(BravaisHR))
	assert.Equal(t, FamilyHexagonal, CrystalFamilyOf(Trigonal))
}

func TestHallSymbolTraverse(t *testing.T) {
	for _, c := range []struct {
		symbol                   string
		centering                Centering
		nCenteringTranslations   int
		nGenerators, nOperations int
	}{
		{"P 2 2ab -1ab", CenteringP, 0, 3, 8},    //No. 51
		{"P 31 2 (0 0 4)", CenteringP, 0, 2, 6},  //No. 151
		{"P 65", CenteringP, 0, 1, 6},            //No. 170
		{"P 61 2 (0 0 5)", CenteringP, 0, 2, 12}, //No. 178
		{"-P 6c 2c", CenteringP, 0, 3, 24},       //No. 194
		{"F 4d 2 3", CenteringF, 3, 3, 24},       //No. 210
	} {
		hs, err := NewHallSymbol(c.symbol)
		require.NoError(t, err, c.symbol)
		assert.Equal(t, c.centering, hs.Centering, c.symbol)
		assert.Len(t, hs.CenteringTranslations, c.nCenteringTranslations, c.symbol)
		assert.Len(t, hs.Generators, c.nGenerators, c.symbol)
		assert.Len(t, hs.Traverse(), c.nOperations, c.symbol)
	}
}

func TestHallSymbolGenerators(t *testing.T) {
	//No. 178
	hs, err := NewHallSymbol("P 61 2 (0 0 5)")
	require.NoError(t, err)
	require.Len(t, hs.Generators, 2)
	assert.Equal(t, v3.IMat{{1, -1, 0}, {1, 0, 0}, {0, 0, 1}}, hs.Generators[0].Rotation)
	assert.InDeltaSlice(t, []float64{0, 0, 1.0 / 6.0}, hs.Generators[0].Translation[:], 1e-12)
	assert.Equal(t, v3.IMat{{0, -1, 0}, {-1, 0, 0}, {0, 0, -1}}, hs.Generators[1].Rotation)
	assert.InDeltaSlice(t, []float64{0, 0, 5.0 / 6.0}, hs.Generators[1].Translation[:], 1e-12)
}

func TestHallSymbolPrimitiveTraverse(t *testing.T) {
	hs, err := NewHallSymbol("F 4d 2 3")
	require.NoError(t, err)
	//the primitive cell holds the same operations as the conventional
	//one because centering translations are excluded from traversal
	assert.Len(t, hs.PrimitiveTraverse(), 24)
}

func TestHallSymbolRejectsTimeReversal(t *testing.T) {
	_, err := NewHallSymbol("F 4d 2 3 1'")
	assert.Error(t, err)
	_, err = NewHallSymbol("X 2")
	assert.Error(t, err)
}

func TestMagneticHallSymbolTraverse(t *testing.T) {
	for _, c := range []struct {
		symbol                   string
		centering                Centering
		nCenteringTranslations   int
		nGenerators, nOperations int
	}{
		{"C 2c -2 1c'", CenteringC, 1, 3, 8},          //36.177
		{"P 31 2 1c' (0 0 4)", CenteringP, 0, 3, 12},  //151.32
		{"P 6c 2c' -1'", CenteringP, 0, 3, 24},        //194.265
		{"F 4d 2 3 1'", CenteringF, 3, 4, 48},         //210.53
	} {
		mhs, err := NewMagneticHallSymbol(c.symbol)
		require.NoError(t, err, c.symbol)
		assert.Equal(t, c.centering, mhs.Centering, c.symbol)
		assert.Len(t, mhs.CenteringTranslations, c.nCenteringTranslations, c.symbol)
		assert.Len(t, mhs.Generators, c.nGenerators, c.symbol)
		assert.Len(t, mhs.Traverse(), c.nOperations, c.symbol)
	}
}

func TestMagneticSpaceGroupTypeLookup(t *testing.T) {
	e, err := MagneticSpaceGroupType(1158)
	require.NoError(t, err)
	assert.Equal(t, "136.498", e.BNSNumber)
	assert.Equal(t, 136, e.Number)
	assert.Equal(t, Type3, e.ConstructType)

	symbol, err := MagneticSpaceGroupHallSymbol(1158)
	require.NoError(t, err)
	assert.Equal(t, "-P 4n' 2n'", symbol)

	first, err := MagneticSpaceGroupType(1)
	require.NoError(t, err)
	assert.Equal(t, "1.1", first.BNSNumber)
	assert.Equal(t, Type1, first.ConstructType)

	_, err = MagneticSpaceGroupType(1652)
	assert.Error(t, err)
}

func TestMagneticHallSymbolFromUNI(t *testing.T) {
	mhs, err := NewMagneticHallSymbolFromUNI(1158)
	require.NoError(t, err)
	//type-III group, so half of the 16 operations are primed
	primed := 0
	for _, op := range mhs.Traverse() {
		if op.TimeReversal {
			primed++
		}
	}
	assert.Equal(t, 8, primed)
}

func TestUNINumbersForSpaceGroup(t *testing.T) {
	nums := UNINumbersForSpaceGroup(136)
	require.NotEmpty(t, nums)
	assert.Equal(t, 1155, nums[0])
	assert.Contains(t, nums, 1158)

	total := 0
	for number := 1; number <= 230; number++ {
		total += len(UNINumbersForSpaceGroup(number))
	}
	assert.Equal(t, 1651, total)
}

func TestWyckoffPositions(t *testing.T) {
	positions, err := WyckoffPositions(523)
	require.NoError(t, err)
	require.NotEmpty(t, positions)
	//the general position comes last in multiplicity-ascending tables,
	//check a known special position instead
	assert.Equal(t, "a", positions[0].Letter)
	assert.Equal(t, 4, positions[0].Multiplicity)
	assert.Equal(t, "m-3m", positions[0].SiteSymmetry)
}

func TestWyckoffPositionSpace(t *testing.T) {
	for _, c := range []struct {
		coordinates string
		linear      v3.IMat
		origin      v3.Vec
	}{
		{"-y, x, z+1/2", v3.IMat{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}}, v3.Vec{0, 0, 0.5}},
		{"x,x-y+1/4,z+1/4", v3.IMat{{1, 0, 0}, {1, -1, 0}, {0, 0, 1}}, v3.Vec{0, 0.25, 0.25}},
		{"-x+2z,y,z", v3.IMat{{-1, 0, 2}, {0, 1, 0}, {0, 0, 1}}, v3.Vec{0, 0, 0}},
		{"1/4,1/4,1/4", v3.IMat{}, v3.Vec{0.25, 0.25, 0.25}},
	} {
		space, err := NewWyckoffPositionSpace(c.coordinates)
		require.NoError(t, err, c.coordinates)
		assert.Equal(t, c.linear, space.Linear, c.coordinates)
		assert.InDeltaSlice(t, c.origin[:], space.Origin[:], 1e-12, c.coordinates)
	}
}

func TestHallTraverseAllSettings(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full table traversal")
	}
	for hallNumber := 1; hallNumber <= NumHallSymbols(); hallNumber++ {
		hs, err := NewHallSymbolFromNumber(hallNumber)
		require.NoError(t, err, hallNumber)
		ops := hs.Traverse()
		assert.NotEmpty(t, ops, hallNumber)
		//the number of coset representatives divides 48
		assert.Zero(t, 48%len(ops), hallNumber)
	}
}
