/*
 * standard_test.go, part of gocryst.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryst "github.com/gocryst/gocryst"
	"github.com/gocryst/gocryst/crystdata"
	"github.com/gocryst/gocryst/identify"
	"github.com/gocryst/gocryst/search"
	v3 "github.com/gocryst/gocryst/v3"
)

func ohRotations(t *testing.T) []v3.IMat {
	t.Helper()
	for number := 1; number <= 73; number++ {
		entry, err := crystdata.ArithmeticClass(number)
		require.NoError(t, err)
		if entry.GeometricClass != crystdata.ClassOh || entry.BravaisClass != crystdata.BravaisCP {
			continue
		}
		rep, err := crystdata.NewPointGroupRepresentative(number)
		require.NoError(t, err)
		return search.TraverseRotations(rep.PrimitiveGenerators())
	}
	t.Fatal("no primitive cubic holohedry in the arithmetic class table")
	return nil
}

func TestSymmetrizeLatticeCubic(t *testing.T) {
	lattice := cryst.NewLattice(v3.Mat3{
		{1, 0, 0.0001},
		{0, -0.999, 0},
		{0, 0, -1.0001},
	})
	rotations := ohRotations(t)

	newLattice, rotationMatrix := symmetrizeLattice(lattice, rotations)
	basis := newLattice.Basis
	assert.InDelta(t, basis[0][0], basis[1][1], 1e-12)
	assert.InDelta(t, basis[0][0], basis[2][2], 1e-12)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i != j {
				assert.InDelta(t, 0, basis[i][j], 1e-12)
			}
		}
	}

	//the symmetrized basis is the rotated original up to strain
	rotated := rotationMatrix.Mul(lattice.Basis)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, basis[i][j], rotated[i][j], 1e-2)
		}
	}
}

func TestOrbitsInCell(t *testing.T) {
	//two primitive sites doubled by a centering translation
	identity := cryst.IdentityPermutation(2)
	siteMapping := []int{0, 1, 0, 1}
	assert.Equal(t, []int{0, 1, 0, 1}, OrbitsInCell(2, []cryst.Permutation{identity}, siteMapping))

	//a permutation merging the two primitive sites merges all four
	swap := cryst.NewPermutation([]int{1, 0})
	assert.Equal(t, []int{0, 0, 0, 0}, OrbitsInCell(2, []cryst.Permutation{identity, swap}, siteMapping))
}

func TestAssignWyckoffPosition(t *testing.T) {
	lattice := cryst.NewLattice(v3.Ident3())

	//hall number 523 is the standard setting of Fm-3m
	wyckoff, ok := assignWyckoffPosition(v3.Vec{0, 0, 0}, 4, 523, lattice, 1e-4)
	require.True(t, ok)
	assert.Equal(t, "a", wyckoff.Letter)
	assert.Equal(t, 4, wyckoff.Multiplicity)

	wyckoff, ok = assignWyckoffPosition(v3.Vec{0, 0, 0.5}, 4, 523, lattice, 1e-4)
	require.True(t, ok)
	assert.Equal(t, "b", wyckoff.Letter)

	//a general point only fits the general position
	_, ok = assignWyckoffPosition(v3.Vec{0.123, 0.456, 0.789}, 4, 523, lattice, 1e-4)
	assert.False(t, ok)
}

func primitiveSearch(t *testing.T, cell *cryst.Cell, symprec float64) (*search.PrimitiveCell, *search.PrimitiveSymmetrySearch) {
	t.Helper()
	primCell, err := search.NewPrimitiveCell(cell, symprec)
	require.NoError(t, err)
	symmetrySearch, err := search.NewPrimitiveSymmetrySearch(primCell.Cell, symprec, cryst.DefaultAngleTolerance())
	require.NoError(t, err)
	return primCell, symmetrySearch
}

func TestStandardizedCellFCC(t *testing.T) {
	symprec := 1e-4
	cell := cryst.NewCell(
		cryst.NewLattice(v3.Ident3()),
		[]v3.Vec{{0, 0, 0}, {0, 0.5, 0.5}, {0.5, 0, 0.5}, {0.5, 0.5, 0}},
		[]int{0, 0, 0, 0},
	)
	primCell, symmetrySearch := primitiveSearch(t, cell, symprec)
	spaceGroup, err := identify.NewSpaceGroup(symmetrySearch.Operations, crystdata.Setting{}, cryst.EPS)
	require.NoError(t, err)
	assert.Equal(t, 225, spaceGroup.Number)

	std, err := NewStandardizedCell(primCell.Cell, symmetrySearch.Operations, symmetrySearch.Permutations, spaceGroup, symprec)
	require.NoError(t, err)

	assert.Equal(t, 1, std.PrimCell.NumAtoms())
	assert.Equal(t, 4, std.Cell.NumAtoms())
	require.Len(t, std.Wyckoffs, 4)
	for _, wyckoff := range std.Wyckoffs {
		assert.Equal(t, 4, wyckoff.Multiplicity)
		assert.Equal(t, "m-3m", wyckoff.SiteSymmetry)
	}
	assert.Equal(t, []int{0, 0, 0, 0}, std.SiteMapping)

	//conventional cubic cell of the same volume as the input
	basis := std.Cell.Lattice.Basis
	assert.InDelta(t, 1, basis[0][0], 1e-8)
	assert.InDelta(t, basis[0][0], basis[1][1], 1e-8)
	assert.InDelta(t, basis[0][0], basis[2][2], 1e-8)
}

func TestStandardizedCellWurtzite(t *testing.T) {
	//AB stacking along c, space group P6_3mc
	symprec := 1e-4
	a, c := 3.81, 6.24
	cell := cryst.NewCell(
		cryst.NewLattice(v3.Mat3{
			{a, 0, 0},
			{-a / 2, a * 0.8660254037844386, 0},
			{0, 0, c},
		}),
		[]v3.Vec{
			{1. / 3., 2. / 3., 0},
			{2. / 3., 1. / 3., 0.5},
			{1. / 3., 2. / 3., 0.385},
			{2. / 3., 1. / 3., 0.885},
		},
		[]int{0, 0, 1, 1},
	)
	primCell, symmetrySearch := primitiveSearch(t, cell, symprec)
	spaceGroup, err := identify.NewSpaceGroup(symmetrySearch.Operations, crystdata.Setting{}, cryst.EPS)
	require.NoError(t, err)
	assert.Equal(t, 186, spaceGroup.Number)

	std, err := NewStandardizedCell(primCell.Cell, symmetrySearch.Operations, symmetrySearch.Permutations, spaceGroup, symprec)
	require.NoError(t, err)

	assert.Equal(t, 4, std.PrimCell.NumAtoms())
	assert.Equal(t, 4, std.Cell.NumAtoms())
	for _, wyckoff := range std.Wyckoffs {
		assert.Equal(t, 2, wyckoff.Multiplicity)
		assert.Equal(t, "b", wyckoff.Letter)
	}
}

func TestStandardizedCellTriclinic(t *testing.T) {
	symprec := 1e-4
	cell := cryst.NewCell(
		cryst.NewLattice(v3.Mat3{
			{1, 0, 0},
			{0.3, 1.1, 0},
			{0.2, 0.4, 1.3},
		}),
		[]v3.Vec{{0, 0, 0}, {0.63, 0.28, 0.51}},
		[]int{0, 1},
	)
	primCell, symmetrySearch := primitiveSearch(t, cell, symprec)
	spaceGroup, err := identify.NewSpaceGroup(symmetrySearch.Operations, crystdata.Setting{}, cryst.EPS)
	require.NoError(t, err)
	assert.Equal(t, 1, spaceGroup.Number)

	std, err := NewStandardizedCell(primCell.Cell, symmetrySearch.Operations, symmetrySearch.Permutations, spaceGroup, symprec)
	require.NoError(t, err)

	//Niggli reduction keeps the cell primitive; the basis becomes
	//upper triangular in column form
	assert.Equal(t, 2, std.Cell.NumAtoms())
	basis := std.Cell.Lattice.Basis
	assert.InDelta(t, 0, basis[1][0], 1e-12)
	assert.InDelta(t, 0, basis[2][0], 1e-12)
	assert.InDelta(t, 0, basis[2][1], 1e-12)
}

func TestStandardizedMagneticCellRutileType3(t *testing.T) {
	symprec := 1e-4
	magSymprec := 1e-4
	a, c := 4.603, 2.969
	x4f := 0.30496
	mc := cryst.NewMagneticCell(
		cryst.NewLattice(v3.Mat3{{a, 0, 0}, {0, a, 0}, {0, 0, c}}),
		[]v3.Vec{
			{0, 0, 0},
			{0.5, 0.5, 0.5},
			{x4f, x4f, 0},
			{1 - x4f, 1 - x4f, 0},
			{0.5 - x4f, 0.5 + x4f, 0.5},
			{0.5 + x4f, 0.5 - x4f, 0.5},
		},
		[]int{0, 0, 1, 1, 1, 1},
		[]cryst.Moment{
			cryst.Collinear(0.7), cryst.Collinear(-0.7),
			cryst.Collinear(0), cryst.Collinear(0),
			cryst.Collinear(0), cryst.Collinear(0),
		},
	)
	primMagCell, err := search.NewPrimitiveMagneticCell(mc, symprec, magSymprec)
	require.NoError(t, err)
	magneticSymmetrySearch, err := search.NewPrimitiveMagneticSymmetrySearch(
		primMagCell.MagneticCell, symprec, cryst.DefaultAngleTolerance(), magSymprec, cryst.Axial)
	require.NoError(t, err)
	msg, err := identify.NewMagneticSpaceGroup(magneticSymmetrySearch.Operations, cryst.EPS)
	require.NoError(t, err)
	assert.Equal(t, 1158, msg.UNINumber)

	std, err := NewStandardizedMagneticCell(
		primMagCell, magneticSymmetrySearch, msg, symprec, magSymprec, cryst.EPS, cryst.Axial)
	require.NoError(t, err)

	assert.Equal(t, 6, std.PrimMagCell.NumAtoms())
	assert.Equal(t, 6, std.MagCell.NumAtoms())

	//symmetrization keeps the antiferromagnetic arrangement
	up, ok := std.MagCell.Moments[0].(cryst.Collinear)
	require.True(t, ok)
	down := std.MagCell.Moments[1].(cryst.Collinear)
	assert.InDelta(t, 0.7, float64(up), 1e-8)
	assert.InDelta(t, -0.7, float64(down), 1e-8)
	for _, moment := range std.MagCell.Moments[2:] {
		assert.True(t, moment.IsClose(cryst.Collinear(0), 1e-8))
	}
}
