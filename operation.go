/*
 * operation.go, part of gocryst.
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

import (
	"fmt"
	"strings"

	"github.com/gocryst/gocryst/v3"
)

//Operation is a crystallographic symmetry operation (W, w) acting on
//fractional coordinates as x -> W x + w.
type Operation struct {
	Rotation    v3.IMat
	Translation v3.Vec
}

//NewOperation returns the operation (rotation, translation).
func NewOperation(rotation v3.IMat, translation v3.Vec) Operation {
	return Operation{Rotation: rotation, Translation: translation}
}

//IdentityOp returns the identity operation.
func IdentityOp() Operation {
	return Operation{Rotation: v3.IdentI()}
}

//Mul composes two operations:
//(r1, t1) * (r2, t2) = (r1 r2, r1 t2 + t1).
func (op Operation) Mul(rhs Operation) Operation {
	return Operation{
		Rotation:    op.Rotation.Mul(rhs.Rotation),
		Translation: op.Rotation.MulVecF(rhs.Translation).Add(op.Translation),
	}
}

//CartesianRotation returns the rotation part in cartesian coordinates
//with respect to the given lattice.
func (op Operation) CartesianRotation(lattice Lattice) v3.Mat3 {
	inv, err := lattice.Basis.Inverse()
	if err != nil {
		panic(PanicMsg(err.Error()))
	}
	return lattice.Basis.Mul(op.Rotation.ToMat3()).Mul(inv)
}

//String formats the operation in x,y,z notation.
func (op Operation) String() string {
	symbols := [3]string{"x", "y", "z"}
	parts := make([]string, 3)
	for i := 0; i < 3; i++ {
		var b strings.Builder
		for j := 0; j < 3; j++ {
			e := op.Rotation[i][j]
			if e == 0 {
				continue
			}
			if e > 0 {
				b.WriteByte('+')
			} else {
				b.WriteByte('-')
			}
			if e != 1 && e != -1 {
				fmt.Fprintf(&b, "%d", absI(e))
			}
			b.WriteString(symbols[j])
		}
		if op.Translation[i] != 0 {
			if op.Translation[i] > 0 {
				b.WriteByte('+')
			}
			fmt.Fprintf(&b, "%v", op.Translation[i])
		}
		parts[i] = b.String()
	}
	return strings.Join(parts, ",")
}

func absI(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

//MagneticOperation couples a space operation with time reversal.
type MagneticOperation struct {
	Operation
	TimeReversal bool
}

//NewMagneticOperation returns (rotation, translation, time reversal).
func NewMagneticOperation(rotation v3.IMat, translation v3.Vec, timeReversal bool) MagneticOperation {
	return MagneticOperation{
		Operation:    NewOperation(rotation, translation),
		TimeReversal: timeReversal,
	}
}

//IdentityMagOp returns the identity magnetic operation.
func IdentityMagOp() MagneticOperation {
	return MagneticOperation{Operation: IdentityOp()}
}

//Mul composes two magnetic operations. Time reversals compose by
//exclusive or.
func (op MagneticOperation) Mul(rhs MagneticOperation) MagneticOperation {
	return MagneticOperation{
		Operation:    op.Operation.Mul(rhs.Operation),
		TimeReversal: op.TimeReversal != rhs.TimeReversal,
	}
}

//ProjectRotations returns the rotation parts of ops.
func ProjectRotations(ops []Operation) []v3.IMat {
	out := make([]v3.IMat, len(ops))
	for i, op := range ops {
		out[i] = op.Rotation
	}
	return out
}
