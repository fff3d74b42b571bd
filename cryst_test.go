/*
 * cryst_test.go, part of gocryst.
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

package cryst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocryst/gocryst/v3"
)

func TestLatticeMetricTensor(t *testing.T) {
	lattice := NewLattice(v3.Mat3{
		{1, 1, 1},
		{1, 1, 0},
		{1, -1, 0},
	})
	g := lattice.MetricTensor()
	expect := v3.Mat3{
		{3, 2, 0},
		{2, 2, 0},
		{0, 0, 2},
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, expect[i][j], g[i][j], 1e-12)
		}
	}
}

func TestOperationCompose(t *testing.T) {
	fourfold := NewOperation(
		v3.IMat{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
		v3.Vec{0, 0, 0.5},
	)
	sq := fourfold.Mul(fourfold)
	assert.Equal(t, v3.IMat{{-1, 0, 0}, {0, -1, 0}, {0, 0, 1}}, sq.Rotation)
	assert.InDelta(t, 1.0, sq.Translation[2], 1e-12)
}

func TestOperationString(t *testing.T) {
	op := NewOperation(
		v3.IMat{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
		v3.Vec{0, 0, 0.5},
	)
	assert.Equal(t, "-y,+x,+z+0.5", op.String())
}

func TestPermutation(t *testing.T) {
	p := NewPermutation([]int{1, 2, 0})
	assert.Equal(t, 1, p.Apply(0))
	assert.True(t, p.Inverse().Equal(NewPermutation([]int{2, 0, 1})))
	assert.True(t, p.Mul(p.Inverse()).Equal(IdentityPermutation(3)))
	assert.Panics(t, func() { NewPermutation([]int{0, 0, 1}) })
}

func TestOrbitsFromPermutations(t *testing.T) {
	orbits := OrbitsFromPermutations(3, []Permutation{NewPermutation([]int{2, 1, 0})})
	assert.Equal(t, []int{0, 1, 0}, orbits)

	orbits = OrbitsFromPermutations(3, []Permutation{NewPermutation([]int{1, 0, 2})})
	assert.Equal(t, []int{0, 0, 2}, orbits)
}

func TestCellMismatchedLengthsPanics(t *testing.T) {
	lattice := NewLattice(v3.Ident3())
	assert.Panics(t, func() {
		NewCell(lattice, []v3.Vec{{0, 0, 0}, {0.5, 0.5, 0.5}}, []int{1})
	})
}

func TestTransformationIncompatibleOperation(t *testing.T) {
	trans := TransformationFromLinear(v3.IMat{{1, 0, 0}, {0, 1, 0}, {0, 0, 2}})
	threefold := NewOperation(v3.IMat{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}}, v3.Vec{})
	assert.Empty(t, trans.TransformOperations([]Operation{threefold}))
}

func TestTransformCellMultiplies(t *testing.T) {
	lattice := NewLattice(v3.Ident3())
	cell := NewCell(lattice, []v3.Vec{{0, 0, 0}}, []int{1})
	trans := TransformationFromLinear(v3.IMat{{1, 0, 0}, {0, 1, 0}, {0, 0, 2}})
	newCell, mapping := trans.TransformCell(cell)
	assert.Equal(t, 2, newCell.NumAtoms())
	assert.Equal(t, []int{0, 0}, mapping)
}

func TestUnimodularRoundTrip(t *testing.T) {
	linear := v3.IMat{{1, 1, 0}, {0, 1, 0}, {0, 0, 1}}
	tr := NewUnimodularTransformation(linear, v3.Vec{0.25, 0, 0})
	lattice := NewLattice(v3.Ident3())
	cell := NewCell(lattice, []v3.Vec{{0.5, 0.25, 0}}, []int{1})

	back := tr.Inverse().TransformCell(tr.TransformCell(cell))
	for k := 0; k < 3; k++ {
		assert.InDelta(t, cell.Positions[0][k], back.Positions[0][k], 1e-12)
	}
}

func TestCollinearMoments(t *testing.T) {
	m := Collinear(0.7)
	improper := v3.Mat3{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}}

	assert.Equal(t, Collinear(0.7), m.ActRotation(improper, Polar))
	assert.Equal(t, Collinear(-0.7), m.ActRotation(improper, Axial))
	assert.Equal(t, Collinear(-0.7), m.ActTimeReversal(true))
	assert.True(t, m.IsClose(Collinear(0.7+1e-7), 1e-4))
	assert.False(t, m.IsClose(Collinear(-0.7), 1e-4))
}

func TestNonCollinearMoments(t *testing.T) {
	m := NonCollinear(v3.Vec{1, 0, 0})
	rot := v3.Mat3{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}}

	rotated, ok := m.ActRotation(rot, Polar).(NonCollinear)
	require.True(t, ok)
	assert.InDelta(t, 0.0, rotated[0], 1e-12)
	assert.InDelta(t, 1.0, rotated[1], 1e-12)

	avg, ok := AverageMoments([]Moment{
		NonCollinear(v3.Vec{1, 0, 0}),
		NonCollinear(v3.Vec{0, 1, 0}),
	}).(NonCollinear)
	require.True(t, ok)
	assert.InDelta(t, 0.5, avg[0], 1e-12)
	assert.InDelta(t, 0.5, avg[1], 1e-12)
}
