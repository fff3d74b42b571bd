/*
 * permutation.go, part of gocryst.
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

//Permutation maps site indices: Apply(i) is the image of site i.
type Permutation struct {
	mapping []int
}

//NewPermutation wraps the given mapping. It panics if mapping is not a
//bijection on [0, len).
func NewPermutation(mapping []int) Permutation {
	seen := make([]bool, len(mapping))
	for _, j := range mapping {
		if j < 0 || j >= len(mapping) || seen[j] {
			panic(ErrNotPermutation)
		}
		seen[j] = true
	}
	return Permutation{mapping: mapping}
}

//IdentityPermutation returns the identity on size elements.
func IdentityPermutation(size int) Permutation {
	mapping := make([]int, size)
	for i := range mapping {
		mapping[i] = i
	}
	return Permutation{mapping: mapping}
}

//Size returns the number of elements.
func (p Permutation) Size() int { return len(p.mapping) }

//Apply returns the image of i.
func (p Permutation) Apply(i int) int { return p.mapping[i] }

//Inverse returns the inverse permutation.
func (p Permutation) Inverse() Permutation {
	inv := make([]int, len(p.mapping))
	for i, j := range p.mapping {
		inv[j] = i
	}
	return Permutation{mapping: inv}
}

//Mul returns the composition of p after q.
func (p Permutation) Mul(q Permutation) Permutation {
	mapping := make([]int, len(p.mapping))
	for i := range mapping {
		mapping[i] = p.Apply(q.Apply(i))
	}
	return Permutation{mapping: mapping}
}

//Equal reports whether both permutations have the same mapping.
func (p Permutation) Equal(q Permutation) bool {
	if len(p.mapping) != len(q.mapping) {
		return false
	}
	for i := range p.mapping {
		if p.mapping[i] != q.mapping[i] {
			return false
		}
	}
	return true
}
