/*
 * cell.go, part of gocryst.
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

import "github.com/gocryst/gocryst/v3"

//Cell represents a crystal structure: a lattice plus fractional site
//coordinates and the atomic number of each site.
type Cell struct {
	Lattice   Lattice
	Positions []v3.Vec
	Numbers   []int
}

//NewCell builds a cell. It panics if positions and numbers differ in
//length.
func NewCell(lattice Lattice, positions []v3.Vec, numbers []int) *Cell {
	if len(positions) != len(numbers) {
		panic(ErrMismatchedLengths)
	}
	return &Cell{Lattice: lattice, Positions: positions, Numbers: numbers}
}

//NumAtoms returns the number of sites in the cell.
func (c *Cell) NumAtoms() int { return len(c.Positions) }

//Rotate returns the cell with its lattice rotated by the cartesian
//rotation matrix. Fractional coordinates are unchanged.
func (c *Cell) Rotate(rotation v3.Mat3) *Cell {
	return NewCell(c.Lattice.Rotate(rotation), clonePositions(c.Positions), cloneNumbers(c.Numbers))
}

//Clone returns a deep copy of the cell.
func (c *Cell) Clone() *Cell {
	return NewCell(c.Lattice, clonePositions(c.Positions), cloneNumbers(c.Numbers))
}

//CoordMatrix returns the fractional coordinates as an Nx3 matrix, the
//row-per-site layout used by the plotting and serialization layers.
func (c *Cell) CoordMatrix() *v3.Matrix {
	out := v3.Zeros(len(c.Positions))
	for i, p := range c.Positions {
		out.SetVec(i, p)
	}
	return out
}

func clonePositions(p []v3.Vec) []v3.Vec {
	out := make([]v3.Vec, len(p))
	copy(out, p)
	return out
}

func cloneNumbers(n []int) []int {
	out := make([]int, len(n))
	copy(out, n)
	return out
}

//OrbitsFromPermutations partitions numAtoms sites into orbits under
//the given permutations. If sites i and j are equivalent then
//orbits[i] == orbits[j], and each orbit is labeled by its smallest
//member, so orbits[i] == i for exactly one site per orbit.
func OrbitsFromPermutations(numAtoms int, permutations []Permutation) []int {
	parent := make([]int, numAtoms)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(i, j int) {
		ri, rj := find(i), find(j)
		if ri != rj {
			parent[rj] = ri
		}
	}
	for _, perm := range permutations {
		for i := 0; i < numAtoms; i++ {
			union(i, perm.Apply(i))
		}
	}

	label := make(map[int]int)
	for i := 0; i < numAtoms; i++ {
		if _, ok := label[find(i)]; !ok {
			label[find(i)] = i
		}
	}
	out := make([]int, numAtoms)
	for i := 0; i < numAtoms; i++ {
		out[i] = label[find(i)]
	}
	return out
}
