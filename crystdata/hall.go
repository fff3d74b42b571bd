/*
 * hall.go, part of gocryst.
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

//Hall symbols, following A1.4.2.3 in ITB (2010).
//
//Extended Backus-Naur form for the symbols accepted here:
//
//	<Hall symbol>    := <L> <N>+ <V>?
//	<L>              := "-"? <lattice symbol>
//	<lattice symbol> := [PABCIRF]
//	<N>              := <nfold> <A>? <T>? "'"?
//	<nfold>          := "-"? ("1" | "2" | "3" | "4" | "6")
//	<A>              := [xyz] | "^" | "=" | "*"
//	<T>              := [abcnuvwd] | [1-6]
//	<V>              := "(" [0-11] [0-11] [0-11] ")"
//
//The axis symbols ' and " of ITB are written ^ and = so that ' can
//mark time reversal in magnetic symbols.

package crystdata

import (
	"math"
	"strconv"
	"strings"

	cryst "github.com/gocryst/gocryst"
	v3 "github.com/gocryst/gocryst/v3"
)

//maxDenominator bounds the denominators of translation parts, so a
//traversed translation can be rounded back onto the twelfths grid.
const maxDenominator = 12

var errHallSymbol = cryst.NewError("gocryst: ill-formed Hall symbol")

//HallSymbol holds the generators encoded by a Hall symbol.
type HallSymbol struct {
	Symbol    string
	Centering Centering
	//CenteringTranslations are the nonzero lattice points of the
	//centering.
	CenteringTranslations []v3.Vec
	//Generators of the space group, pure translations excluded.
	Generators []cryst.Operation
}

//NewHallSymbol parses a Hall symbol. Symbols carrying time reversal
//markers are rejected, use NewMagneticHallSymbol for those.
func NewHallSymbol(symbol string) (*HallSymbol, error) {
	inversionAtOrigin, centering, ns, originShift, err := parseHall(symbol)
	if err != nil {
		return nil, err
	}
	generators := []cryst.Operation{}
	if inversionAtOrigin {
		generators = append(generators, cryst.NewOperation(v3.IdentI().Neg(), originShift.Scale(2)))
	}
	for _, n := range ns {
		if n.timeReversal {
			return nil, errHallSymbol
		}
		generators = append(generators, cryst.NewOperation(n.rotation, shiftedTranslationMod1(n, originShift)))
	}
	return &HallSymbol{
		Symbol:                symbol,
		Centering:             centering,
		CenteringTranslations: centeringTranslations(centering),
		Generators:            generators,
	}, nil
}

//NewHallSymbolFromNumber parses the Hall symbol of a tabulated
//setting.
func NewHallSymbolFromNumber(hallNumber int) (*HallSymbol, error) {
	entry, err := HallEntry(hallNumber)
	if err != nil {
		return nil, err
	}
	return NewHallSymbol(entry.HallSymbol)
}

//Traverse generates all symmetry operations up to translations of the
//conventional cell. The order of the returned operations is fixed.
func (hs *HallSymbol) Traverse() []cryst.Operation {
	queue := []cryst.Operation{cryst.IdentityOp()}
	seen := make(map[v3.IMat]bool)
	operations := []cryst.Operation{}
	for len(queue) > 0 {
		lhs := queue[0]
		queue = queue[1:]
		if seen[lhs.Rotation] {
			continue
		}
		seen[lhs.Rotation] = true
		operations = append(operations, lhs)
		for _, rhs := range hs.Generators {
			newOp := lhs.Mul(rhs)
			if !seen[newOp.Rotation] {
				queue = append(queue, cryst.NewOperation(newOp.Rotation, purifyTranslationMod1(newOp.Translation)))
			}
		}
	}
	return operations
}

//PrimitiveTraverse generates all symmetry operations up to
//translations of the primitive cell.
func (hs *HallSymbol) PrimitiveTraverse() []cryst.Operation {
	return cryst.TransformationFromLinear(hs.Centering.Linear()).InverseTransformOperations(hs.Traverse())
}

//PrimitiveGenerators returns the generators in the primitive basis.
func (hs *HallSymbol) PrimitiveGenerators() []cryst.Operation {
	return cryst.TransformationFromLinear(hs.Centering.Linear()).InverseTransformOperations(hs.Generators)
}

//MagneticHallSymbol holds the generators encoded by a magnetic Hall
//symbol, J. Appl. Cryst. 54, 338 (2021).
type MagneticHallSymbol struct {
	Symbol                string
	Centering             Centering
	CenteringTranslations []v3.Vec
	//Generators of the magnetic space group, pure translations
	//excluded. Anti-translations are kept.
	Generators []cryst.MagneticOperation
}

//NewMagneticHallSymbol parses a magnetic Hall symbol.
func NewMagneticHallSymbol(symbol string) (*MagneticHallSymbol, error) {
	inversionAtOrigin, centering, ns, originShift, err := parseHall(symbol)
	if err != nil {
		return nil, err
	}
	generators := []cryst.MagneticOperation{}
	if inversionAtOrigin {
		generators = append(generators, cryst.NewMagneticOperation(v3.IdentI().Neg(), originShift.Scale(2), false))
	}
	for _, n := range ns {
		generators = append(generators, cryst.NewMagneticOperation(n.rotation, shiftedTranslationMod1(n, originShift), n.timeReversal))
	}
	return &MagneticHallSymbol{
		Symbol:                symbol,
		Centering:             centering,
		CenteringTranslations: centeringTranslations(centering),
		Generators:            generators,
	}, nil
}

//NewMagneticHallSymbolFromUNI parses the magnetic Hall symbol of a
//tabulated magnetic space-group type.
func NewMagneticHallSymbolFromUNI(uniNumber int) (*MagneticHallSymbol, error) {
	entry, err := MagneticSpaceGroupHallSymbol(uniNumber)
	if err != nil {
		return nil, err
	}
	return NewMagneticHallSymbol(entry)
}

type magRotationKey struct {
	rotation     v3.IMat
	timeReversal bool
}

//Traverse generates all magnetic symmetry operations up to
//translations of the conventional cell, in a fixed order.
func (mhs *MagneticHallSymbol) Traverse() []cryst.MagneticOperation {
	queue := []cryst.MagneticOperation{cryst.IdentityMagOp()}
	seen := make(map[magRotationKey]bool)
	operations := []cryst.MagneticOperation{}
	for len(queue) > 0 {
		lhs := queue[0]
		queue = queue[1:]
		key := magRotationKey{lhs.Rotation, lhs.TimeReversal}
		if seen[key] {
			continue
		}
		seen[key] = true
		operations = append(operations, lhs)
		for _, rhs := range mhs.Generators {
			newOp := lhs.Mul(rhs)
			if !seen[magRotationKey{newOp.Rotation, newOp.TimeReversal}] {
				queue = append(queue, cryst.NewMagneticOperation(newOp.Rotation, purifyTranslationMod1(newOp.Translation), newOp.TimeReversal))
			}
		}
	}
	return operations
}

//PrimitiveTraverse generates all magnetic symmetry operations up to
//translations of the primitive cell.
func (mhs *MagneticHallSymbol) PrimitiveTraverse() []cryst.MagneticOperation {
	return cryst.TransformationFromLinear(mhs.Centering.Linear()).InverseTransformMagneticOperations(mhs.Traverse())
}

//PrimitiveGenerators returns the generators in the primitive basis.
func (mhs *MagneticHallSymbol) PrimitiveGenerators() []cryst.MagneticOperation {
	return cryst.TransformationFromLinear(mhs.Centering.Linear()).InverseTransformMagneticOperations(mhs.Generators)
}

//hallOperation is one parsed <N> token.
type hallOperation struct {
	rotation     v3.IMat
	translation  v3.Vec
	timeReversal bool
	nfold        string
	axis         string
}

//shiftedTranslationMod1 rebases a generator translation by the origin
//shift v, (R, t) -> (R, t + v - Rv) mod 1.
func shiftedTranslationMod1(n hallOperation, originShift v3.Vec) v3.Vec {
	return n.translation.Add(originShift).Sub(n.rotation.MulVecF(originShift)).Mod1()
}

func parseHall(symbol string) (bool, Centering, []hallOperation, v3.Vec, error) {
	tokens := strings.Fields(symbol)
	if len(tokens) < 2 {
		return false, Centering(0), nil, v3.Vec{}, errHallSymbol
	}
	inversionAtOrigin, centering, err := parseHallLattice(tokens[0])
	if err != nil {
		return false, Centering(0), nil, v3.Vec{}, err
	}
	ns := []hallOperation{}
	originShift := v3.Vec{}
	prevNfold := ""
	prevAxis := ""
	for cursor := 1; cursor < len(tokens); cursor++ {
		if strings.HasPrefix(tokens[cursor], "(") {
			originShift, err = parseOriginShift(tokens[cursor:])
			if err != nil {
				return false, Centering(0), nil, v3.Vec{}, err
			}
			break
		}
		//the default axis of a token depends on its position and on
		//the preceding token
		n, err := parseHallOperation(tokens[cursor], len(ns), prevNfold, prevAxis)
		if err != nil {
			return false, Centering(0), nil, v3.Vec{}, err
		}
		ns = append(ns, n)
		prevNfold = n.nfold
		prevAxis = n.axis
	}
	return inversionAtOrigin, centering, ns, originShift, nil
}

func parseHallLattice(token string) (bool, Centering, error) {
	inversionAtOrigin := false
	if strings.HasPrefix(token, "-") {
		inversionAtOrigin = true
		token = token[1:]
	}
	if len(token) != 1 {
		return false, Centering(0), errHallSymbol
	}
	switch c := Centering(token[0]); c {
	case CenteringP, CenteringA, CenteringB, CenteringC, CenteringI, CenteringR, CenteringF:
		return inversionAtOrigin, c, nil
	}
	return false, Centering(0), errHallSymbol
}

func parseOriginShift(tokens []string) (v3.Vec, error) {
	fields := []string{}
	for _, tok := range tokens {
		tok = strings.TrimPrefix(tok, "(")
		tok = strings.TrimSuffix(tok, ")")
		if tok != "" {
			fields = append(fields, tok)
		}
	}
	if len(fields) != 3 {
		return v3.Vec{}, errHallSymbol
	}
	var shift v3.Vec
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return v3.Vec{}, errHallSymbol
		}
		shift[i] = x / maxDenominator
	}
	return shift, nil
}

func parseHallOperation(token string, count int, prevNfold, prevAxis string) (hallOperation, error) {
	pos := 0
	improper := false
	if pos < len(token) && token[pos] == '-' {
		improper = true
		pos++
	}
	if pos >= len(token) {
		return hallOperation{}, errHallSymbol
	}
	nfold := string(token[pos])
	pos++

	axis := ""
	if pos < len(token) {
		if token[pos] == '^' {
			axis += "p"
			pos++
		} else if token[pos] == '=' {
			axis += "pp"
			pos++
		}
	}
	if pos < len(token) {
		switch token[pos] {
		case 'x', 'y', 'z', '*':
			axis += string(token[pos])
			pos++
		}
	}
	//Table A1.4.2.5: a lone ^ or = inherits the preceding axis
	if (axis == "p" || axis == "pp") && (prevAxis == "x" || prevAxis == "y" || prevAxis == "z") {
		axis += prevAxis
	}
	if nfold == "1" {
		axis += "z"
	}
	//default axes, A1.4.2.3.1
	if axis == "" || axis == "p" || axis == "pp" {
		switch count {
		case 0:
			axis += "z"
		case 1:
			if prevNfold == "2" || prevNfold == "4" {
				axis += "x"
			} else if prevNfold == "3" || prevNfold == "6" {
				axis += "pz"
			} else {
				return hallOperation{}, errHallSymbol
			}
		case 2:
			if nfold == "3" {
				axis += "*"
			} else {
				return hallOperation{}, errHallSymbol
			}
		default:
			return hallOperation{}, errHallSymbol
		}
	}

	rotation, ok := hallRotation(nfold + axis)
	if !ok {
		return hallOperation{}, errHallSymbol
	}
	if improper {
		rotation = rotation.Neg()
	}

	translation := v3.Vec{}
	timeReversal := false
	for ; pos < len(token); pos++ {
		c := token[pos]
		switch {
		case c >= '1' && c <= '6':
			//a numeric subscript is always along the z axis
			order, _ := strconv.ParseFloat(nfold, 64)
			num, _ := strconv.ParseFloat(string(c), 64)
			translation = v3.Vec{0, 0, num / order}
		case strings.ContainsRune("abcnuvwd", rune(c)):
			t, ok := hallTranslation(c)
			if !ok {
				return hallOperation{}, errHallSymbol
			}
			translation = translation.Add(t)
		case c == '\'':
			timeReversal = true
		default:
			return hallOperation{}, errHallSymbol
		}
	}
	return hallOperation{rotation, translation, timeReversal, nfold, axis}, nil
}

func hallRotation(nfoldAxis string) (v3.IMat, bool) {
	switch nfoldAxis {
	case "1x", "1y", "1z":
		return v3.IdentI(), true
	case "2x":
		return v3.IMat{{1, 0, 0}, {0, -1, 0}, {0, 0, -1}}, true
	case "2y":
		return v3.IMat{{-1, 0, 0}, {0, 1, 0}, {0, 0, -1}}, true
	case "2z":
		return v3.IMat{{-1, 0, 0}, {0, -1, 0}, {0, 0, 1}}, true
	case "3x":
		return v3.IMat{{1, 0, 0}, {0, 0, -1}, {0, 1, -1}}, true
	case "3y":
		return v3.IMat{{-1, 0, 1}, {0, 1, 0}, {-1, 0, 0}}, true
	case "3z":
		return v3.IMat{{0, -1, 0}, {1, -1, 0}, {0, 0, 1}}, true
	case "4x":
		return v3.IMat{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}}, true
	case "4y":
		return v3.IMat{{0, 0, 1}, {0, 1, 0}, {-1, 0, 0}}, true
	case "4z":
		return v3.IMat{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}}, true
	case "6x":
		return v3.IMat{{1, 0, 0}, {0, 1, -1}, {0, 1, 0}}, true
	case "6y":
		return v3.IMat{{0, 0, 1}, {0, 1, 0}, {-1, 0, 1}}, true
	case "6z":
		return v3.IMat{{1, -1, 0}, {1, 0, 0}, {0, 0, 1}}, true
	case "2px":
		return v3.IMat{{-1, 0, 0}, {0, 0, -1}, {0, -1, 0}}, true
	case "2ppx":
		return v3.IMat{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}}, true
	case "2py":
		return v3.IMat{{0, 0, -1}, {0, -1, 0}, {-1, 0, 0}}, true
	case "2ppy":
		return v3.IMat{{0, 0, 1}, {0, -1, 0}, {1, 0, 0}}, true
	case "2pz":
		return v3.IMat{{0, -1, 0}, {-1, 0, 0}, {0, 0, -1}}, true
	case "2ppz":
		return v3.IMat{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}}, true
	case "3*":
		return v3.IMat{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}}, true
	}
	return v3.IMat{}, false
}

func hallTranslation(symbol byte) (v3.Vec, bool) {
	switch symbol {
	case 'a':
		return v3.Vec{0.5, 0, 0}, true
	case 'b':
		return v3.Vec{0, 0.5, 0}, true
	case 'c':
		return v3.Vec{0, 0, 0.5}, true
	case 'n':
		return v3.Vec{0.5, 0.5, 0.5}, true
	case 'u':
		return v3.Vec{0.25, 0, 0}, true
	case 'v':
		return v3.Vec{0, 0.25, 0}, true
	case 'w':
		return v3.Vec{0, 0, 0.25}, true
	case 'd':
		return v3.Vec{0.25, 0.25, 0.25}, true
	}
	return v3.Vec{}, false
}

func centeringTranslations(c Centering) []v3.Vec {
	translations := []v3.Vec{}
	for _, t := range c.LatticePoints() {
		if t.Norm() > cryst.EPS {
			translations = append(translations, t)
		}
	}
	return translations
}

//purifyTranslationMod1 rounds a traversed translation back onto the
//twelfths grid, wrapping into [0, 1).
func purifyTranslationMod1(translation v3.Vec) v3.Vec {
	var out v3.Vec
	for i, e := range translation {
		eint := int(math.Round(e*maxDenominator)) % maxDenominator
		if eint < 0 {
			eint += maxDenominator
		}
		out[i] = float64(eint) / maxDenominator
	}
	return out
}
