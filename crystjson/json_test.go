/*
 * json_test.go, part of gocryst.
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

package crystjson

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryst "github.com/gocryst/gocryst"
	"github.com/gocryst/gocryst/crystdata"
	"github.com/gocryst/gocryst/dataset"
	v3 "github.com/gocryst/gocryst/v3"
)

func TestStructureRoundTrip(t *testing.T) {
	cell := cryst.NewCell(
		cryst.NewLattice(v3.Mat3{{4.6, 0, 0}, {0, 4.6, 0}, {0, 0, 2.97}}),
		[]v3.Vec{{0, 0, 0}, {0.5, 0.5, 0.5}},
		[]int{22, 22},
	)
	record := FromCell(cell)

	raw, err := json.Marshal(record)
	require.NoError(t, err)
	var decoded Structure
	require.NoError(t, json.Unmarshal(raw, &decoded))

	back, jerr := decoded.ToCell()
	require.Nil(t, jerr)
	assert.Equal(t, cell.Numbers, back.Numbers)
	for i := range cell.Positions {
		assert.InDeltaSlice(t, cell.Positions[i][:], back.Positions[i][:], 1e-12)
	}
	for i := 0; i < 3; i++ {
		assert.InDeltaSlice(t, cell.Lattice.Basis[i][:], back.Lattice.Basis[i][:], 1e-12)
	}
}

func TestStructureRejectsMismatch(t *testing.T) {
	s := &Structure{
		Basis:     [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Positions: [][3]float64{{0, 0, 0}, {0.5, 0.5, 0.5}},
		Species:   []int{1},
	}
	_, jerr := s.ToCell()
	require.NotNil(t, jerr)
	assert.True(t, jerr.InStructure)

	s.Species = []int{1, 1}
	s.Moments = [][]float64{{0.5}}
	_, jerr = s.ToMagneticCell()
	require.NotNil(t, jerr)
	assert.True(t, jerr.InStructure)

	s.Moments = [][]float64{{0.5}, {0.5, 0, 0}}
	_, jerr = s.ToMagneticCell()
	require.NotNil(t, jerr)
}

func TestMagneticStructureRoundTrip(t *testing.T) {
	mc := cryst.NewMagneticCell(
		cryst.NewLattice(v3.Ident3()),
		[]v3.Vec{{0, 0, 0}, {0.5, 0.5, 0.5}},
		[]int{26, 26},
		[]cryst.Moment{cryst.Collinear(2.2), cryst.Collinear(-2.2)},
	)
	back, jerr := FromMagneticCell(mc).ToMagneticCell()
	require.Nil(t, jerr)
	assert.True(t, back.Moments[0].IsClose(cryst.Collinear(2.2), 1e-12))
	assert.True(t, back.Moments[1].IsClose(cryst.Collinear(-2.2), 1e-12))
}

func TestDecodeStructuresAndResults(t *testing.T) {
	in := strings.NewReader(`[
		{"Name": "fcc Cu",
		 "Basis": [[1,0,0],[0,1,0],[0,0,1]],
		 "Positions": [[0,0,0],[0,0.5,0.5],[0.5,0,0.5],[0.5,0.5,0]],
		 "Species": [29,29,29,29]}
	]`)
	structures, jerr := DecodeStructures(in)
	require.Nil(t, jerr)
	require.Len(t, structures, 1)

	cell, jerr := structures[0].ToCell()
	require.Nil(t, jerr)
	d, err := dataset.New(cell, 1e-4, cryst.DefaultAngleTolerance(), crystdata.Setting{})
	require.NoError(t, err)

	result := FromDataset(d, false)
	result.Name = structures[0].Name
	assert.Equal(t, 225, result.Number)
	assert.Equal(t, "cF4", result.PearsonSymbol)
	assert.Equal(t, 192, result.NumOperations)
	assert.Empty(t, result.Operations)

	var out bytes.Buffer
	require.Nil(t, SendResults([]*Result{result}, &out))
	var decoded []Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "fcc Cu", decoded[0].Name)
	assert.Equal(t, []string{"a", "a", "a", "a"}, decoded[0].Wyckoffs)
}

func TestErrorMarshal(t *testing.T) {
	jerr := NewError("encode", "TestErrorMarshal", assert.AnError)
	raw := jerr.Marshal()
	var decoded Error
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, decoded.IsError)
	assert.True(t, decoded.InEncode)
	assert.Equal(t, "TestErrorMarshal", decoded.Function)
}
