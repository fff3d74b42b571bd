/*
 * dataset_test.go, part of gocryst.
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

package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryst "github.com/gocryst/gocryst"
	"github.com/gocryst/gocryst/crystdata"
	"github.com/gocryst/gocryst/identify"
	v3 "github.com/gocryst/gocryst/v3"
)

//permutationFromOperation searches the site permutation the operation
//induces on the cell, greedily and in O(N^2).
func permutationFromOperation(cell *cryst.Cell, op cryst.Operation, symprec float64) (cryst.Permutation, bool) {
	visited := make([]bool, cell.NumAtoms())
	mapping := make([]int, cell.NumAtoms())
	for i := 0; i < cell.NumAtoms(); i++ {
		newPos := op.Rotation.MulVecF(cell.Positions[i]).Add(op.Translation)
		found := false
		for j := 0; j < cell.NumAtoms(); j++ {
			if visited[j] {
				continue
			}
			diff := newPos.Sub(cell.Positions[j])
			diff = diff.Sub(diff.Round().ToVec())
			if cell.Lattice.CartesianCoords(diff).Norm() < symprec {
				visited[j] = true
				mapping[i] = j
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

func assertDataset(t *testing.T, cell *cryst.Cell, symprec float64, setting crystdata.Setting) *Dataset {
	t.Helper()
	angleTolerance := cryst.DefaultAngleTolerance()
	dataset, err := New(cell, symprec, angleTolerance, setting)
	require.NoError(t, err)

	//operations are distinct mod lattice translations
	for i := range dataset.Operations {
		for j := i + 1; j < len(dataset.Operations); j++ {
			if dataset.Operations[i].Rotation != dataset.Operations[j].Rotation {
				continue
			}
			diff := dataset.Operations[i].Translation.Sub(dataset.Operations[j].Translation)
			diff = diff.Sub(diff.Round().ToVec())
			near := true
			for k := 0; k < 3; k++ {
				if math.Abs(diff[k]) > symprec {
					near = false
				}
			}
			assert.False(t, near, "duplicate operation")
		}
	}

	for _, op := range dataset.Operations {
		permutation, ok := permutationFromOperation(cell, op, symprec)
		require.True(t, ok)
		for i := 0; i < cell.NumAtoms(); i++ {
			j := permutation.Apply(i)
			assert.Equal(t, cell.Numbers[i], cell.Numbers[j])
			assert.Equal(t, dataset.Orbits[i], dataset.Orbits[j])
			if op.Rotation == v3.IdentI() {
				assert.Equal(t, dataset.MappingStdPrim[i], dataset.MappingStdPrim[j])
			}
		}
	}

	//standardized cells identify to the same type
	stdDataset, err := New(dataset.StdCell, symprec, angleTolerance, setting)
	require.NoError(t, err)
	assert.Equal(t, dataset.Number, stdDataset.Number)
	assert.Equal(t, dataset.HallNumber, stdDataset.HallNumber)
	primStdDataset, err := New(dataset.PrimStdCell, symprec, angleTolerance, setting)
	require.NoError(t, err)
	assert.Equal(t, dataset.Number, primStdDataset.Number)
	assert.Equal(t, dataset.HallNumber, primStdDataset.HallNumber)

	//the inverse of PrimStdLinear is an integer matrix
	primStdLinearInv, err := dataset.PrimStdLinear.Inverse()
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, math.Round(primStdLinearInv[i][j]), primStdLinearInv[i][j], 1e-8)
		}
	}

	//rotation and linear parts reproduce the standardized bases
	stdBasis := dataset.StdRotationMatrix.Mul(cell.Lattice.Basis).Mul(dataset.StdLinear)
	primStdBasis := dataset.StdRotationMatrix.Mul(cell.Lattice.Basis).Mul(dataset.PrimStdLinear)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, dataset.StdCell.Lattice.Basis[i][j], stdBasis[i][j], 1e-8)
			assert.InDelta(t, dataset.PrimStdCell.Lattice.Basis[i][j], primStdBasis[i][j], 1e-8)
		}
	}

	require.Len(t, dataset.MappingStdPrim, cell.NumAtoms())
	require.Len(t, dataset.Wyckoffs, cell.NumAtoms())
	require.Len(t, dataset.SiteSymmetrySymbols, cell.NumAtoms())
	return dataset
}

func TestDatasetFCC(t *testing.T) {
	cell := cryst.NewCell(
		cryst.NewLattice(v3.Ident3()),
		[]v3.Vec{{0, 0, 0}, {0, 0.5, 0.5}, {0.5, 0, 0.5}, {0.5, 0.5, 0}},
		[]int{0, 0, 0, 0},
	)
	dataset := assertDataset(t, cell, 1e-4, crystdata.Setting{Spglib: true})

	assert.Equal(t, 225, dataset.Number)
	assert.Equal(t, 523, dataset.HallNumber)
	assert.Equal(t, "Fm-3m", dataset.HMSymbol)
	assert.Equal(t, 48*4, dataset.NumOperations())
	assert.Equal(t, []int{0, 0, 0, 0}, dataset.Orbits)
	assert.Equal(t, []string{"a", "a", "a", "a"}, dataset.Wyckoffs)
	assert.Equal(t, "cF4", dataset.PearsonSymbol)
	assert.Equal(t, 1, dataset.PrimStdCell.NumAtoms())
}

func TestDatasetRutile(t *testing.T) {
	a, c := 4.603, 2.969
	x4f := 0.3046
	cell := cryst.NewCell(
		cryst.NewLattice(v3.Mat3{{a, 0, 0}, {0, a, 0}, {0, 0, c}}),
		[]v3.Vec{
			{0, 0, 0},
			{0.5, 0.5, 0.5},
			{x4f, x4f, 0},
			{-x4f, -x4f, 0},
			{-x4f + 0.5, x4f + 0.5, 0.5},
			{x4f + 0.5, -x4f + 0.5, 0.5},
		},
		[]int{0, 0, 1, 1, 1, 1},
	)
	dataset := assertDataset(t, cell, 1e-4, crystdata.Setting{Spglib: true})

	assert.Equal(t, 136, dataset.Number)
	assert.Equal(t, 419, dataset.HallNumber)
	assert.Equal(t, 16, dataset.NumOperations())
	assert.Equal(t, []int{0, 0, 2, 2, 2, 2}, dataset.Orbits)
	assert.Equal(t, []string{"a", "a", "f", "f", "f", "f"}, dataset.Wyckoffs)
	assert.Equal(t, "tP6", dataset.PearsonSymbol)
}

func TestDatasetHCP(t *testing.T) {
	a, c := 3.17, 5.14
	cell := cryst.NewCell(
		cryst.NewLattice(v3.Mat3{
			{a, 0, 0},
			{-a / 2, a * math.Sqrt(3) / 2, 0},
			{0, 0, c},
		}),
		[]v3.Vec{
			{1. / 3., 2. / 3., 0.25},
			{2. / 3., 1. / 3., 0.75},
		},
		[]int{0, 0},
	)
	dataset := assertDataset(t, cell, 1e-4, crystdata.Setting{})

	assert.Equal(t, 194, dataset.Number)
	assert.Equal(t, 488, dataset.HallNumber)
	assert.Equal(t, 24, dataset.NumOperations())
	assert.Equal(t, []int{0, 0}, dataset.Orbits)
	//2c and 2d belong to the same Wyckoff set
	assert.Equal(t, dataset.Wyckoffs[0], dataset.Wyckoffs[1])
	assert.Contains(t, []string{"c", "d"}, dataset.Wyckoffs[0])
}

func TestDatasetWurtzite(t *testing.T) {
	a, c := 3.81, 6.24
	z1, z2 := 0.00014, 0.37486
	cell := cryst.NewCell(
		cryst.NewLattice(v3.Mat3{
			{a, 0, 0},
			{-a / 2, a * math.Sqrt(3) / 2, 0},
			{0, 0, c},
		}),
		[]v3.Vec{
			{1. / 3., 2. / 3., z1},
			{2. / 3., 1. / 3., z1 + 0.5},
			{1. / 3., 2. / 3., z2},
			{2. / 3., 1. / 3., z2 + 0.5},
		},
		[]int{0, 0, 1, 1},
	)
	dataset := assertDataset(t, cell, 1e-4, crystdata.Setting{})

	assert.Equal(t, 186, dataset.Number)
	assert.Equal(t, 480, dataset.HallNumber)
	assert.Equal(t, 12, dataset.NumOperations())
	assert.Equal(t, []int{0, 0, 2, 2}, dataset.Orbits)
	assert.Equal(t, "hP4", dataset.PearsonSymbol)
	//2a and 2b belong to the same Wyckoff set
	assert.Equal(t, dataset.Wyckoffs[0], dataset.Wyckoffs[1])
	assert.Contains(t, []string{"a", "b"}, dataset.Wyckoffs[0])
}

func assertMagneticDataset(t *testing.T, mc *cryst.MagneticCell, symprec, magSymprec float64, action cryst.MomentAction) *MagneticDataset {
	t.Helper()
	angleTolerance := cryst.DefaultAngleTolerance()
	dataset, err := NewMagnetic(mc, symprec, angleTolerance, magSymprec, action)
	require.NoError(t, err)

	stdDataset, err := NewMagnetic(dataset.StdMagCell, symprec, angleTolerance, magSymprec, action)
	require.NoError(t, err)
	assert.Equal(t, dataset.UNINumber, stdDataset.UNINumber)
	primStdDataset, err := NewMagnetic(dataset.PrimStdMagCell, symprec, angleTolerance, magSymprec, action)
	require.NoError(t, err)
	assert.Equal(t, dataset.UNINumber, primStdDataset.UNINumber)

	primStdLinearInv, err := dataset.PrimStdLinear.Inverse()
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, math.Round(primStdLinearInv[i][j]), primStdLinearInv[i][j], 1e-8)
		}
	}

	stdBasis := dataset.StdRotationMatrix.Mul(mc.Cell.Lattice.Basis).Mul(dataset.StdLinear)
	primStdBasis := dataset.StdRotationMatrix.Mul(mc.Cell.Lattice.Basis).Mul(dataset.PrimStdLinear)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, dataset.StdMagCell.Cell.Lattice.Basis[i][j], stdBasis[i][j], 1e-8)
			assert.InDelta(t, dataset.PrimStdMagCell.Cell.Lattice.Basis[i][j], primStdBasis[i][j], 1e-8)
		}
	}

	require.Len(t, dataset.MappingStdPrim, mc.NumAtoms())
	return dataset
}

func TestMagneticDatasetRutile(t *testing.T) {
	lattice := cryst.NewLattice(v3.Ident3())
	positions := []v3.Vec{
		{0, 0, 0},
		{0.5, 0.5, 0.5},
		{0.3, 0.3, 0},
		{0.7, 0.7, 0},
		{0.2, 0.8, 0.5},
		{0.8, 0.2, 0.5},
	}
	numbers := []int{0, 0, 1, 1, 1, 1}
	symprec := 1e-4

	moments := func(ti1, ti2 float64) []cryst.Moment {
		return []cryst.Moment{
			cryst.Collinear(ti1), cryst.Collinear(ti2),
			cryst.Collinear(0), cryst.Collinear(0),
			cryst.Collinear(0), cryst.Collinear(0),
		}
	}

	//ferromagnetic order keeps the full group without time reversal
	mc := cryst.NewMagneticCell(lattice, positions, numbers, moments(0.7, 0.7))
	dataset := assertMagneticDataset(t, mc, symprec, symprec, cryst.Polar)
	assert.Equal(t, 1155, dataset.UNINumber)

	//a nonmagnetic arrangement gains the time reversal coset
	mc = cryst.NewMagneticCell(lattice, positions, numbers, moments(0, 0))
	dataset = assertMagneticDataset(t, mc, symprec, symprec, cryst.Polar)
	assert.Equal(t, 1156, dataset.UNINumber)

	//antiferromagnetic order trades half the group for primed
	//operations
	mc = cryst.NewMagneticCell(lattice, positions, numbers, moments(0.7, -0.7))
	dataset = assertMagneticDataset(t, mc, symprec, symprec, cryst.Polar)
	assert.Equal(t, 1158, dataset.UNINumber)
	assert.Equal(t, 16, dataset.NumOperations())
	assert.Equal(t, []int{0, 0, 2, 2, 2, 2}, dataset.Orbits)
	assert.Equal(t, 6, dataset.StdMagCell.NumAtoms())
	assert.Equal(t, 6, dataset.PrimStdMagCell.NumAtoms())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, dataset.MappingStdPrim)
}

func TestMagneticDatasetRutileType4(t *testing.T) {
	//two rutile-like halves with opposite moments stacked along c
	mc := cryst.NewMagneticCell(
		cryst.NewLattice(v3.Mat3{{5, 0, 0}, {0, 5, 0}, {0, 0, 6}}),
		[]v3.Vec{
			{0, 0, 0},
			{0.5, 0.5, 0.25},
			{0.3, 0.3, 0},
			{0.7, 0.7, 0},
			{0.2, 0.8, 0.25},
			{0.8, 0.2, 0.25},
			{0, 0, 0.5},
			{0.5, 0.5, 0.75},
			{0.3, 0.3, 0.5},
			{0.7, 0.7, 0.5},
			{0.2, 0.8, 0.75},
			{0.8, 0.2, 0.75},
		},
		[]int{0, 0, 1, 1, 1, 1, 0, 0, 1, 1, 1, 1},
		[]cryst.Moment{
			cryst.Collinear(0.3), cryst.Collinear(0.3),
			cryst.Collinear(0), cryst.Collinear(0),
			cryst.Collinear(0), cryst.Collinear(0),
			cryst.Collinear(-0.3), cryst.Collinear(-0.3),
			cryst.Collinear(0), cryst.Collinear(0),
			cryst.Collinear(0), cryst.Collinear(0),
		},
	)
	dataset := assertMagneticDataset(t, mc, 1e-4, 1e-4, cryst.Polar)
	assert.Equal(t, 932, dataset.UNINumber)
}

func TestOperationsFromNumber(t *testing.T) {
	//C2/c carries 4 coset operations over 2 lattice points
	operations, err := OperationsFromNumber(15, crystdata.Setting{}, false)
	require.NoError(t, err)
	assert.Len(t, operations, 8)

	primitive, err := OperationsFromNumber(15, crystdata.Setting{}, true)
	require.NoError(t, err)
	assert.Len(t, primitive, 4)

	_, err = OperationsFromNumber(231, crystdata.Setting{}, false)
	assert.Error(t, err)
}

func TestMagneticOperationsRoundTrip(t *testing.T) {
	for _, uniNumber := range []int{2, 932, 1155, 1158, 1242, 1651} {
		mops, err := MagneticOperationsFromUNI(uniNumber, true)
		require.NoError(t, err, uniNumber)
		msg, err := identify.NewMagneticSpaceGroup(mops, cryst.EPS)
		require.NoError(t, err, uniNumber)
		assert.Equal(t, uniNumber, msg.UNINumber)
	}
}
