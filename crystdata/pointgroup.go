/*
 * pointgroup.go, part of gocryst.
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
	"github.com/gocryst/gocryst/v3"

	cryst "github.com/gocryst/gocryst"
)

//PointGroupRepresentative is the tabulated representative of an
//arithmetic crystal class: the rotation generators of its Hall
//setting together with the centering. Rhombohedral classes use
//hexagonal axes.
type PointGroupRepresentative struct {
	Generators []v3.IMat
	Centering  Centering
}

//NewPointGroupRepresentative builds the representative point group of
//the given arithmetic crystal class (1 to 73).
func NewPointGroupRepresentative(arithmeticNumber int) (PointGroupRepresentative, error) {
	hallNumber, err := RepresentativeHallNumber(arithmeticNumber)
	if err != nil {
		return PointGroupRepresentative{}, err
	}
	hs, err := NewHallSymbolFromNumber(hallNumber)
	if err != nil {
		return PointGroupRepresentative{}, err
	}
	return PointGroupRepresentative{
		Generators: cryst.ProjectRotations(hs.Generators),
		Centering:  hs.Centering,
	}, nil
}

//PrimitiveGenerators conjugates the generators into the primitive
//basis of the centering.
func (pg PointGroupRepresentative) PrimitiveGenerators() []v3.IMat {
	linear := pg.Centering.Linear().ToMat3()
	inverse := pg.Centering.Inverse()
	out := make([]v3.IMat, 0, len(pg.Generators))
	for _, g := range pg.Generators {
		prim := linear.Mul(g.ToMat3()).Mul(inverse)
		rounded, ok := v3.IMatFromMat3(prim, 0.5)
		if !ok {
			panic(cryst.ErrNotUnimodular)
		}
		out = append(out, rounded)
	}
	return out
}
