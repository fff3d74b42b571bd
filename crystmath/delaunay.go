/*
 * delaunay.go, part of gocryst.
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

import (
	"sort"

	"github.com/gocryst/gocryst/v3"
)

//DelaunayReduce transforms the column basis until the superbase
//(b1, b2, b3, -b1-b2-b3) has no positive pairwise scalar products,
//then picks the three shortest vectors among the superbase and its
//pairwise sums. It returns the reduced basis and the integer matrix T
//with reduced = basis*T, det(T) = +1.
func DelaunayReduce(basis v3.Mat3) (v3.Mat3, v3.IMat) {
	reduced := basis
	trans := v3.IdentI()

	cc := newCycleChecker()
	for {
		sb := superbase(reduced)

		update := false
		for i := 0; i < 3 && !update; i++ {
			for j := i + 1; j < 4; j++ {
				if sb[i].Dot(sb[j]) > eps {
					tmp := v3.IdentI()
					for k := 0; k < 3; k++ {
						if k == i || k == j {
							continue
						}
						tmp = tmp.Mul(addColMat(i, k, 1))
					}
					tmp = tmp.Mul(negColMat(i))

					reduced = reduced.Mul(tmp.ToMat3())
					trans = trans.Mul(tmp)
					update = true
					break
				}
			}
		}

		if !update || !cc.insert(trans) {
			break
		}
	}

	//three shortest among {b1, b2, b3, b4, b1+b2, b2+b3, b3+b1}
	candidates := []v3.IVec{
		{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {-1, -1, -1},
		{1, 1, 0}, {0, 1, 1}, {1, 0, 1},
	}
	norms := make([]float64, len(candidates))
	for i, c := range candidates {
		norms[i] = reduced.MulVec(c.ToVec()).Norm()
	}
	order := []int{0, 1, 2, 3, 4, 5, 6}
	sort.SliceStable(order, func(i, j int) bool { return norms[order[i]] < norms[order[j]] })

	var shortest v3.IMat
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			shortest[i][j] = candidates[order[j]][i]
		}
	}
	trans = trans.Mul(shortest)
	reduced = reduced.Mul(shortest.ToMat3())

	if trans.Det() < 0 {
		reduced = reduced.Scale(-1)
		trans = trans.Neg()
	}
	return reduced, trans
}

func superbase(basis v3.Mat3) [4]v3.Vec {
	var sb [4]v3.Vec
	var sum v3.Vec
	for j := 0; j < 3; j++ {
		sb[j] = column(basis, j)
		sum = sum.Add(sb[j])
	}
	sb[3] = sum.Scale(-1)
	return sb
}
