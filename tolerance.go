/*
 * tolerance.go, part of gocryst.
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

//AngleTolerance controls how rotation parts are compared during the
//symmetry search. With the default, angle deviations are judged
//against the length tolerance scaled by the basis vector lengths; an
//explicit value compares angles in radians.
type AngleTolerance struct {
	Radian  float64
	Default bool
}

//DefaultAngleTolerance defers angle comparisons to the length
//tolerance.
func DefaultAngleTolerance() AngleTolerance {
	return AngleTolerance{Default: true}
}

//RadianAngleTolerance compares rotation angles against the given
//value in radians.
func RadianAngleTolerance(radian float64) AngleTolerance {
	return AngleTolerance{Radian: radian}
}
