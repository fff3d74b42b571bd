/*
 * json.go, part of gocryst.
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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	cryst "github.com/gocryst/gocryst"
	"github.com/gocryst/gocryst/dataset"
	"github.com/gocryst/gocryst/v3"
)

//An easily JSON-serializable error type.
type Error struct {
	deco        []string
	IsError     bool //If this is false (no error) all the other fields will be at their zero-values.
	InStructure bool //If error, was it in converting a structure?
	InAnalysis  bool //Was it in the symmetry analysis?
	InEncode    bool //Was it in encoding or decoding the JSON itself?
	Structure   int  //Which structure of the input list?
	Function    string
	Message     string
}

//Error implements the error interface.
func (J *Error) Error() string {
	return J.Message
}

//Decorate will add the dec string to the decoration slice of strings
//of the error, and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - "))
	}
	return ret
}

//Takes an error and some additional info to create a
//json-marshal-able error.
func NewError(where, function string, err error) *Error {
	jerr := new(Error)
	jerr.IsError = true
	switch where {
	case "structure":
		jerr.InStructure = true
	case "encode":
		jerr.InEncode = true
	default:
		jerr.InAnalysis = true
	}
	jerr.Function = function
	jerr.Message = err.Error()
	return jerr
}

//Structure is a ready-to-serialize container for a cell. The basis is
//given row-wise, each row one lattice vector in cartesian coordinates,
//positions are fractional. Moments, when present, hold one value per
//site: one float for collinear structures, three for non-collinear
//ones.
type Structure struct {
	Name      string      `json:",omitempty"`
	Basis     [3][3]float64
	Positions [][3]float64
	Species   []int
	Moments   [][]float64 `json:",omitempty"`
}

//ToCell builds a cell from the record, ignoring any moments.
func (S *Structure) ToCell() (*cryst.Cell, *Error) {
	const funcname = "Structure.ToCell"
	if len(S.Positions) != len(S.Species) {
		return nil, NewError("structure", funcname,
			fmt.Errorf("%d positions for %d species", len(S.Positions), len(S.Species)))
	}
	var basis v3.Mat3
	positions := make([]v3.Vec, len(S.Positions))
	for i := 0; i < 3; i++ {
		basis[i] = v3.Vec(S.Basis[i])
	}
	for i, p := range S.Positions {
		positions[i] = v3.Vec(p)
	}
	numbers := make([]int, len(S.Species))
	copy(numbers, S.Species)
	return cryst.NewCell(cryst.NewLattice(basis), positions, numbers), nil
}

//ToMagneticCell builds a magnetic cell from the record. All moments
//must have the same dimension, 1 for collinear and 3 for
//non-collinear.
func (S *Structure) ToMagneticCell() (*cryst.MagneticCell, *Error) {
	const funcname = "Structure.ToMagneticCell"
	cell, jerr := S.ToCell()
	if jerr != nil {
		return nil, jerr
	}
	if len(S.Moments) != len(S.Positions) {
		return nil, NewError("structure", funcname,
			fmt.Errorf("%d moments for %d sites", len(S.Moments), len(S.Positions)))
	}
	moments := make([]cryst.Moment, len(S.Moments))
	for i, m := range S.Moments {
		switch len(m) {
		case 1:
			moments[i] = cryst.Collinear(m[0])
		case 3:
			moments[i] = cryst.NonCollinear{m[0], m[1], m[2]}
		default:
			return nil, NewError("structure", funcname,
				fmt.Errorf("site %d: moment of dimension %d", i, len(m)))
		}
		if i > 0 && len(m) != len(S.Moments[0]) {
			return nil, NewError("structure", funcname,
				fmt.Errorf("site %d: mixed moment dimensions", i))
		}
	}
	return cryst.MagneticCellFromCell(cell, moments), nil
}

//FromCell fills a record from a cell.
func FromCell(cell *cryst.Cell) *Structure {
	s := new(Structure)
	//columns of the basis are the lattice vectors
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			s.Basis[i][k] = cell.Lattice.Basis[k][i]
		}
	}
	s.Positions = make([][3]float64, cell.NumAtoms())
	s.Species = make([]int, cell.NumAtoms())
	for i, p := range cell.Positions {
		s.Positions[i] = [3]float64(p)
		s.Species[i] = cell.Numbers[i]
	}
	return s
}

//FromMagneticCell fills a record from a magnetic cell.
func FromMagneticCell(mc *cryst.MagneticCell) *Structure {
	s := FromCell(mc.Cell)
	s.Moments = make([][]float64, len(mc.Moments))
	for i, m := range mc.Moments {
		switch v := m.(type) {
		case cryst.Collinear:
			s.Moments[i] = []float64{float64(v)}
		case cryst.NonCollinear:
			s.Moments[i] = []float64{v[0], v[1], v[2]}
		}
	}
	return s
}

//OperationRecord is one symmetry operation, the rotation row-wise.
type OperationRecord struct {
	Rotation     [3][3]int
	Translation  [3]float64
	TimeReversal bool `json:",omitempty"`
}

func operationRecords(operations []cryst.Operation) []OperationRecord {
	out := make([]OperationRecord, len(operations))
	for i, op := range operations {
		out[i] = OperationRecord{
			Rotation:    [3][3]int(op.Rotation),
			Translation: [3]float64(op.Translation),
		}
	}
	return out
}

//Result is a ready-to-serialize container for a Dataset.
type Result struct {
	Name                string `json:",omitempty"`
	Number              int
	HallNumber          int
	HMSymbol            string
	HallSymbol          string
	PearsonSymbol       string
	NumOperations       int
	Operations          []OperationRecord `json:",omitempty"`
	Orbits              []int
	Wyckoffs            []string
	SiteSymmetrySymbols []string
	StdStructure        *Structure
	PrimStdStructure    *Structure
	MappingStdPrim      []int
}

//FromDataset fills a result record. With operations false the
//operation list is left out, which keeps batch outputs small.
func FromDataset(d *dataset.Dataset, operations bool) *Result {
	r := &Result{
		Number:              d.Number,
		HallNumber:          d.HallNumber,
		HMSymbol:            d.HMSymbol,
		HallSymbol:          d.HallSymbol,
		PearsonSymbol:       d.PearsonSymbol,
		NumOperations:       d.NumOperations(),
		Orbits:              d.Orbits,
		Wyckoffs:            d.Wyckoffs,
		SiteSymmetrySymbols: d.SiteSymmetrySymbols,
		StdStructure:        FromCell(d.StdCell),
		PrimStdStructure:    FromCell(d.PrimStdCell),
		MappingStdPrim:      d.MappingStdPrim,
	}
	if operations {
		r.Operations = operationRecords(d.Operations)
	}
	return r
}

//MagneticResult is a ready-to-serialize container for a
//MagneticDataset.
type MagneticResult struct {
	Name             string `json:",omitempty"`
	UNINumber        int
	NumOperations    int
	Operations       []OperationRecord `json:",omitempty"`
	Orbits           []int
	StdStructure     *Structure
	PrimStdStructure *Structure
	MappingStdPrim   []int
}

//FromMagneticDataset fills a magnetic result record.
func FromMagneticDataset(d *dataset.MagneticDataset, operations bool) *MagneticResult {
	r := &MagneticResult{
		UNINumber:        d.UNINumber,
		NumOperations:    d.NumOperations(),
		Orbits:           d.Orbits,
		StdStructure:     FromMagneticCell(d.StdMagCell),
		PrimStdStructure: FromMagneticCell(d.PrimStdMagCell),
		MappingStdPrim:   d.MappingStdPrim,
	}
	if operations {
		r.Operations = make([]OperationRecord, len(d.Operations))
		for i, mop := range d.Operations {
			r.Operations[i] = OperationRecord{
				Rotation:     [3][3]int(mop.Operation.Rotation),
				Translation:  [3]float64(mop.Operation.Translation),
				TimeReversal: mop.TimeReversal,
			}
		}
	}
	return r
}

//DecodeStructures decodes a JSON list of structures.
func DecodeStructures(in io.Reader) ([]Structure, *Error) {
	const funcname = "DecodeStructures"
	var structures []Structure
	dec := json.NewDecoder(in)
	if err := dec.Decode(&structures); err != nil {
		return nil, NewError("encode", funcname, err)
	}
	return structures, nil
}

//SendResults encodes results and writes them to out.
func SendResults(results []*Result, out io.Writer) *Error {
	const funcname = "SendResults"
	enc := json.NewEncoder(out)
	if err := enc.Encode(results); err != nil {
		return NewError("encode", funcname, err)
	}
	return nil
}

//SendMagneticResults encodes magnetic results and writes them to out.
func SendMagneticResults(results []*MagneticResult, out io.Writer) *Error {
	const funcname = "SendMagneticResults"
	enc := json.NewEncoder(out)
	if err := enc.Encode(results); err != nil {
		return NewError("encode", funcname, err)
	}
	return nil
}
