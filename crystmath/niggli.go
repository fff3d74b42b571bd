/*
 * niggli.go, part of gocryst.
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

//Implements the algorithm of Krivy and Gruber, Acta Cryst. (1976)
//A32, 297, with the stabilized tolerances of Grosse-Kunstleve et al.,
//Acta Cryst. (2004) A60, 1.

package crystmath

import (
	"math"

	"github.com/gocryst/gocryst/v3"
)

const eps = 1e-8

//niggliParams holds the metric parameters of a basis:
//A=a*a, B=b*b, C=c*c, Xi=2bc cos(alpha), Eta=2ca cos(beta),
//Zeta=2ab cos(gamma).
type niggliParams struct {
	A, B, C, Xi, Eta, Zeta    float64
	signXi, signEta, signZeta int
}

func newNiggliParams(basis v3.Mat3) niggliParams {
	g := basis.Transpose().Mul(basis)
	xi := 2 * g[1][2]
	eta := 2 * g[2][0]
	zeta := 2 * g[0][1]
	return niggliParams{
		A: g[0][0], B: g[1][1], C: g[2][2],
		Xi: xi, Eta: eta, Zeta: zeta,
		signXi: signEps(xi), signEta: signEps(eta), signZeta: signEps(zeta),
	}
}

func signEps(x float64) int {
	switch {
	case x > eps:
		return 1
	case x < -eps:
		return -1
	default:
		return 0
	}
}

//NiggliReduce returns the Niggli-reduced basis together with the
//integer transformation matrix T such that reduced = basis*T.
//T has determinant +1.
func NiggliReduce(basis v3.Mat3) (v3.Mat3, v3.IMat) {
	reduced := basis
	trans := v3.IdentI()

	cc := newCycleChecker()
	step := 1
	for step <= 8 {
		p := newNiggliParams(reduced)
		var branch bool
		switch step {
		case 1:
			branch = niggliStep1(p, &trans)
		case 2:
			branch = niggliStep2(p, &trans)
		case 3:
			branch = niggliStep3(p, &trans)
		case 4:
			branch = niggliStep4(p, &trans)
		case 5:
			branch = niggliStep5(p, &trans)
		case 6:
			branch = niggliStep6(p, &trans)
		case 7:
			branch = niggliStep7(p, &trans)
		case 8:
			branch = niggliStep8(p, &trans)
		}
		reduced = basis.Mul(trans.ToMat3())

		if branch && (step == 2 || step == 5 || step == 6 || step == 7 || step == 8) {
			step = 1
		} else {
			step++
		}
		//terminate once a transformation matrix repeats at step 1
		if step == 1 && !cc.insert(trans) {
			break
		}
	}

	if trans.Det() < 0 {
		reduced = reduced.Scale(-1)
		trans = trans.Neg()
	}
	return reduced, trans
}

//IsNiggliReduced reports whether the column basis satisfies the Niggli
//conditions within the internal tolerance.
func IsNiggliReduced(basis v3.Mat3) bool {
	p := newNiggliParams(basis)

	//common conditions: A <= B <= C, A >= |eta|, B >= |xi|
	if p.B-p.A < -eps || p.C-p.B < -eps {
		return false
	}
	if p.A-math.Abs(p.Eta) < -eps || p.B-math.Abs(p.Xi) < -eps {
		return false
	}

	if p.signXi*p.signEta*p.signZeta > 0 {
		//type-I cell: all three scalar products positive
		if p.Xi <= eps || p.Eta <= eps || p.Zeta <= eps {
			return false
		}
		if math.Abs(p.A-p.B) < eps && p.Eta-p.Xi < -eps {
			return false
		}
		if math.Abs(p.B-p.C) < eps && p.Zeta-p.Eta < -eps {
			return false
		}
		if math.Abs(p.B-math.Abs(p.Xi)) < eps && 2*p.Eta-p.Zeta < -eps {
			return false
		}
		if math.Abs(p.A-math.Abs(p.Eta)) < eps && 2*p.Xi-p.Zeta < -eps {
			return false
		}
		if math.Abs(p.A-math.Abs(p.Zeta)) < eps && 2*p.Xi-p.Eta < -eps {
			return false
		}
	} else {
		//type-II cell: all three scalar products non-positive
		if p.Xi > eps || p.Eta > eps || p.Zeta > eps {
			return false
		}
		if math.Abs(p.A-p.B) < eps && math.Abs(p.Eta)-math.Abs(p.Xi) < -eps {
			return false
		}
		if math.Abs(p.B-p.C) < eps && math.Abs(p.Zeta)-math.Abs(p.Eta) < -eps {
			return false
		}
		if math.Abs(p.B-math.Abs(p.Xi)) < eps && math.Abs(p.Zeta) >= eps {
			return false
		}
		if math.Abs(p.A-math.Abs(p.Eta)) < eps && math.Abs(p.Zeta) >= eps {
			return false
		}
		if math.Abs(p.A-math.Abs(p.Zeta)) < eps && math.Abs(p.Eta) >= eps {
			return false
		}
		if math.Abs(p.Xi+p.Eta+p.Zeta-p.A-p.B) < eps &&
			math.Abs(p.Eta)+math.Abs(p.Zeta)-p.A < -eps {
			return false
		}
	}
	return true
}

//If A > B or (A = B, |xi| > |eta|), swap a and b.
func niggliStep1(p niggliParams, trans *v3.IMat) bool {
	if p.A-p.B > eps || (math.Abs(p.A-p.B) < eps && math.Abs(p.Xi) > math.Abs(p.Eta)) {
		*trans = trans.Mul(v3.IMat{{0, -1, 0}, {-1, 0, 0}, {0, 0, -1}})
		return true
	}
	return false
}

//If B > C or (B = C, |eta| > |zeta|), swap b and c.
func niggliStep2(p niggliParams, trans *v3.IMat) bool {
	if p.B-p.C > eps || (math.Abs(p.B-p.C) < eps && math.Abs(p.Eta) > math.Abs(p.Zeta)) {
		*trans = trans.Mul(v3.IMat{{-1, 0, 0}, {0, 0, -1}, {0, -1, 0}})
		return true
	}
	return false
}

//Adjust axis directions for a type-I cell.
func niggliStep3(p niggliParams, trans *v3.IMat) bool {
	if p.signXi*p.signEta*p.signZeta > 0 {
		m := v3.IdentI()
		if p.signXi == -1 {
			m[0][0] = -1
		}
		if p.signEta == -1 {
			m[1][1] = -1
		}
		if p.signZeta == -1 {
			m[2][2] = -1
		}
		*trans = trans.Mul(m)
		return true
	}
	return false
}

//Adjust axis directions for a type-II cell.
func niggliStep4(p niggliParams, trans *v3.IMat) bool {
	if p.signXi == -1 && p.signEta == -1 && p.signZeta == -1 {
		return false
	}
	if p.signXi*p.signEta*p.signZeta <= 0 {
		i, j, k := 1, 1, 1
		pz := -1
		if p.signXi == 1 {
			i = -1
		} else if p.signXi == 0 {
			pz = 0
		}
		if p.signEta == 1 {
			j = -1
		} else if p.signEta == 0 {
			pz = 1
		}
		if p.signZeta == 1 {
			k = -1
		} else if p.signZeta == 0 {
			pz = 2
		}
		if i*j*k == -1 {
			switch pz {
			case 0:
				i = -1
			case 1:
				j = -1
			case 2:
				k = -1
			}
		}
		*trans = trans.Mul(v3.IMat{{i, 0, 0}, {0, j, 0}, {0, 0, k}})
		return true
	}
	return false
}

//If |xi| > B or (xi = B, 2 eta < zeta) or (xi = -B, zeta < 0).
func niggliStep5(p niggliParams, trans *v3.IMat) bool {
	if math.Abs(p.Xi)-p.B > eps ||
		(math.Abs(p.Xi-p.B) < eps && p.Zeta-2*p.Eta > eps) ||
		(math.Abs(p.Xi+p.B) < eps && -p.Zeta > eps) {
		*trans = trans.Mul(v3.IMat{{1, 0, 0}, {0, 1, -p.signXi}, {0, 0, 1}})
		return true
	}
	return false
}

//If |eta| > A or (eta = A, 2 xi < zeta) or (eta = -A, zeta < 0).
func niggliStep6(p niggliParams, trans *v3.IMat) bool {
	if math.Abs(p.Eta)-p.A > eps ||
		(math.Abs(p.Eta-p.A) < eps && p.Zeta-2*p.Xi > eps) ||
		(math.Abs(p.Eta+p.A) < eps && -p.Zeta > eps) {
		*trans = trans.Mul(v3.IMat{{1, 0, -p.signEta}, {0, 1, 0}, {0, 0, 1}})
		return true
	}
	return false
}

//If |zeta| > A or (zeta = A, 2 xi < eta) or (zeta = -A, eta < 0).
func niggliStep7(p niggliParams, trans *v3.IMat) bool {
	if math.Abs(p.Zeta)-p.A > eps ||
		(math.Abs(p.Zeta-p.A) < eps && p.Eta-2*p.Xi > eps) ||
		(math.Abs(p.Zeta+p.A) < eps && -p.Eta > eps) {
		*trans = trans.Mul(v3.IMat{{1, -p.signZeta, 0}, {0, 1, 0}, {0, 0, 1}})
		return true
	}
	return false
}

//If xi + eta + zeta + A + B < 0 or
//(xi + eta + zeta + A + B = 0, 2 (A + eta) + zeta > 0).
func niggliStep8(p niggliParams, trans *v3.IMat) bool {
	s := p.Xi + p.Eta + p.Zeta + p.A + p.B
	if s < -eps || (math.Abs(s) < eps && 2*(p.A+p.Eta)+p.Zeta > eps) {
		*trans = trans.Mul(v3.IMat{{1, 0, 1}, {0, 1, 1}, {0, 0, 1}})
		return true
	}
	return false
}
