/*
 * operations.go, part of gocryst.
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

package dataset

import (
	"math"

	cryst "github.com/gocryst/gocryst"
	"github.com/gocryst/gocryst/crystdata"
)

//OperationsFromNumber regenerates the symmetry operations of a space
//group type from the reference database. The setting picks the Hall
//setting representing the type; with primitive true the operations
//come in the primitive basis, otherwise in the conventional one,
//expanded over the centering translations.
func OperationsFromNumber(number int, setting crystdata.Setting, primitive bool) ([]cryst.Operation, error) {
	if number < 1 || number > 230 {
		return nil, cryst.ErrSpaceGroupType
	}
	hallNumber := setting.HallNumber
	if hallNumber == 0 {
		hallNumbers := setting.HallNumbers()
		if setting.Spglib {
			//spglib order lists all settings; take the first of this
			//group
			for _, candidate := range hallNumbers {
				entry, err := crystdata.HallEntry(candidate)
				if err != nil {
					return nil, err
				}
				if entry.Number == number {
					hallNumber = candidate
					break
				}
			}
		} else {
			hallNumber = hallNumbers[number-1]
		}
	}
	hs, err := crystdata.NewHallSymbolFromNumber(hallNumber)
	if err != nil {
		return nil, err
	}
	if primitive {
		return hs.PrimitiveTraverse(), nil
	}
	return expandByCentering(hs.Traverse(), hs.Centering), nil
}

//MagneticOperationsFromUNI regenerates the magnetic symmetry
//operations of a magnetic space-group type from its UNI number.
func MagneticOperationsFromUNI(uniNumber int, primitive bool) ([]cryst.MagneticOperation, error) {
	mhs, err := crystdata.NewMagneticHallSymbolFromUNI(uniNumber)
	if err != nil {
		return nil, err
	}
	if primitive {
		return mhs.PrimitiveTraverse(), nil
	}
	coset := mhs.Traverse()
	points := mhs.Centering.LatticePoints()
	operations := make([]cryst.MagneticOperation, 0, len(points)*len(coset))
	for _, t1 := range points {
		for _, mop := range coset {
			t12 := t1.Add(mop.Operation.Translation)
			for k := 0; k < 3; k++ {
				t12[k] = math.Mod(t12[k], 1)
			}
			operations = append(operations, cryst.NewMagneticOperation(mop.Operation.Rotation, t12, mop.TimeReversal))
		}
	}
	return operations, nil
}

func expandByCentering(coset []cryst.Operation, centering crystdata.Centering) []cryst.Operation {
	points := centering.LatticePoints()
	operations := make([]cryst.Operation, 0, len(points)*len(coset))
	for _, t1 := range points {
		for _, op := range coset {
			t12 := t1.Add(op.Translation)
			for k := 0; k < 3; k++ {
				t12[k] = math.Mod(t12[k], 1)
			}
			operations = append(operations, cryst.NewOperation(op.Rotation, t12))
		}
	}
	return operations
}
