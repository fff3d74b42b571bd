/*
 * centering.go, part of gocryst.
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

//Centering is the lattice centering of a Hall setting.
type Centering byte

const (
	CenteringP Centering = 'P'
	CenteringA Centering = 'A'
	CenteringB Centering = 'B'
	CenteringC Centering = 'C'
	CenteringI Centering = 'I'
	CenteringR Centering = 'R' //obverse setting
	CenteringF Centering = 'F'
)

//Order returns the number of lattice points per conventional cell.
func (c Centering) Order() int {
	switch c {
	case CenteringP:
		return 1
	case CenteringR:
		return 3
	case CenteringF:
		return 4
	default:
		return 2
	}
}

//Linear returns the transformation matrix from the primitive to the
//conventional cell.
func (c Centering) Linear() v3.IMat {
	switch c {
	case CenteringA:
		return v3.IMat{{1, 0, 0}, {0, 1, 1}, {0, -1, 1}}
	case CenteringB:
		return v3.IMat{{1, 0, -1}, {0, 1, 0}, {1, 0, 1}}
	case CenteringC:
		return v3.IMat{{1, -1, 0}, {1, 1, 0}, {0, 0, 1}}
	case CenteringR:
		return v3.IMat{{1, 0, 1}, {-1, 1, 1}, {0, -1, 1}}
	case CenteringI:
		return v3.IMat{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}}
	case CenteringF:
		return v3.IMat{{-1, 1, 1}, {1, -1, 1}, {1, 1, -1}}
	default:
		return v3.IdentI()
	}
}

//Inverse returns the transformation matrix from the conventional to
//the primitive cell.
func (c Centering) Inverse() v3.Mat3 {
	inv, err := c.Linear().ToMat3().Inverse()
	if err != nil {
		panic(cryst.PanicMsg(err.Error()))
	}
	return inv
}

//LatticePoints returns the centering translations including zero.
func (c Centering) LatticePoints() []v3.Vec {
	switch c {
	case CenteringA:
		return []v3.Vec{{0, 0, 0}, {0, 0.5, 0.5}}
	case CenteringB:
		return []v3.Vec{{0, 0, 0}, {0.5, 0, 0.5}}
	case CenteringC:
		return []v3.Vec{{0, 0, 0}, {0.5, 0.5, 0}}
	case CenteringI:
		return []v3.Vec{{0, 0, 0}, {0.5, 0.5, 0.5}}
	case CenteringR:
		return []v3.Vec{
			{0, 0, 0},
			{2.0 / 3.0, 1.0 / 3.0, 1.0 / 3.0},
			{1.0 / 3.0, 2.0 / 3.0, 2.0 / 3.0},
		}
	case CenteringF:
		return []v3.Vec{{0, 0, 0}, {0, 0.5, 0.5}, {0.5, 0, 0.5}, {0.5, 0.5, 0}}
	default:
		return []v3.Vec{{0, 0, 0}}
	}
}

//AllCenterings lists the centerings in a fixed order.
func AllCenterings() []Centering {
	return []Centering{CenteringP, CenteringA, CenteringB, CenteringC,
		CenteringI, CenteringR, CenteringF}
}
