/*
 * rotationtype.go, part of gocryst.
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

package identify

import (
	cryst "github.com/gocryst/gocryst"
	"github.com/gocryst/gocryst/v3"
)

//RotationType is the crystallographic type of a rotation matrix: n
//for a proper n-fold rotation, -n for the corresponding rotoinversion
//(-2 is a mirror).
type RotationType int

//RotationTypeOf classifies an integer rotation matrix by its
//determinant and trace. Any matrix of finite order in GL(3, Z) falls
//in one of the ten cases.
func RotationTypeOf(r v3.IMat) RotationType {
	det := r.Det()
	tr := r.Trace()
	switch {
	case det == 1:
		switch tr {
		case 3:
			return 1
		case -1:
			return 2
		case 0:
			return 3
		case 1:
			return 4
		case 2:
			return 6
		}
	case det == -1:
		switch tr {
		case -3:
			return -1
		case 1:
			return -2
		case 0:
			return -3
		case -1:
			return -4
		case -2:
			return -6
		}
	}
	panic(cryst.ErrNotRotation)
}

func rotationTypes(rotations []v3.IMat) []RotationType {
	out := make([]RotationType, len(rotations))
	for i, r := range rotations {
		out[i] = RotationTypeOf(r)
	}
	return out
}
