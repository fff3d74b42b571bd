/*
 * cycle.go, part of gocryst.
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

package crystmath

import "github.com/gocryst/gocryst/v3"

//cycleChecker records the transformation matrices visited during a
//lattice reduction so the iteration can be stopped once it starts to
//cycle. v3.IMat is a plain array, so it can be used as a map key.
type cycleChecker struct {
	visited map[v3.IMat]bool
}

func newCycleChecker() *cycleChecker {
	return &cycleChecker{visited: make(map[v3.IMat]bool)}
}

//insert adds m to the visited set. It returns false if m was already
//there.
func (c *cycleChecker) insert(m v3.IMat) bool {
	if c.visited[m] {
		return false
	}
	c.visited[m] = true
	return true
}
