/*
 * plot_test.go, part of gocryst.
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

package crystplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryst "github.com/gocryst/gocryst"
	"github.com/gocryst/gocryst/crystdata"
	"github.com/gocryst/gocryst/dataset"
	v3 "github.com/gocryst/gocryst/v3"
)

func rutileCell() *cryst.Cell {
	a := 4.603
	c := 2.969
	x := 0.3046
	return cryst.NewCell(
		cryst.NewLattice(v3.Mat3{{a, 0, 0}, {0, a, 0}, {0, 0, c}}),
		[]v3.Vec{
			{0, 0, 0},
			{0.5, 0.5, 0.5},
			{x, x, 0},
			{-x, -x, 0},
			{-x + 0.5, x + 0.5, 0.5},
			{x + 0.5, -x + 0.5, 0.5},
		},
		[]int{22, 22, 8, 8, 8, 8},
	)
}

func TestCellPlot(t *testing.T) {
	cell := rutileCell()
	name := filepath.Join(t.TempDir(), "rutile")
	require.NoError(t, CellPlot(cell, nil, "Rutile", name))
	info, err := os.Stat(name + ".png")
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestCellPlotBadInput(t *testing.T) {
	assert.Error(t, CellPlot(nil, nil, "", "nothing"))
	cell := rutileCell()
	assert.Error(t, CellPlot(cell, []int{0, 0}, "", "nothing"))
}

func TestDatasetPlot(t *testing.T) {
	d, err := dataset.New(rutileCell(), 1e-4, cryst.DefaultAngleTolerance(), crystdata.Setting{Spglib: true})
	require.NoError(t, err)
	require.Equal(t, 136, d.Number)
	name := filepath.Join(t.TempDir(), "rutile_std")
	require.NoError(t, DatasetPlot(d, "Rutile, standardized", name))
	_, err = os.Stat(name + ".png")
	require.NoError(t, err)
}
