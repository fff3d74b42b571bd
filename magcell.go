/*
 * magcell.go, part of gocryst.
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
	"math"

	"github.com/gocryst/gocryst/v3"
)

//MomentAction selects how a rotation acts on magnetic moments.
type MomentAction int

const (
	//Polar moments transform as m -> R m.
	Polar MomentAction = iota
	//Axial moments transform as m -> det(R) R m.
	Axial
)

//Moment is a magnetic moment attached to a site. Collinear and
//NonCollinear implement it.
type Moment interface {
	//ActRotation applies a cartesian rotation under the given action.
	ActRotation(cartesianRotation v3.Mat3, action MomentAction) Moment
	//ActTimeReversal flips the moment when timeReversal is true.
	ActTimeReversal(timeReversal bool) Moment
	//IsClose reports whether both moments agree within magSymprec.
	IsClose(other Moment, magSymprec float64) bool
}

//ActMagneticOperation applies rotation then time reversal to m.
func ActMagneticOperation(m Moment, cartesianRotation v3.Mat3, timeReversal bool, action MomentAction) Moment {
	return m.ActRotation(cartesianRotation, action).ActTimeReversal(timeReversal)
}

//Collinear is a scalar moment along a common quantization axis.
type Collinear float64

func (m Collinear) ActRotation(cartesianRotation v3.Mat3, action MomentAction) Moment {
	if action == Axial {
		det := math.Round(cartesianRotation.Det())
		return Collinear(det * float64(m))
	}
	return m
}

func (m Collinear) ActTimeReversal(timeReversal bool) Moment {
	if timeReversal {
		return -m
	}
	return m
}

func (m Collinear) IsClose(other Moment, magSymprec float64) bool {
	o, ok := other.(Collinear)
	if !ok {
		return false
	}
	return math.Abs(float64(m)-float64(o)) < magSymprec
}

//NonCollinear is a cartesian moment vector.
type NonCollinear v3.Vec

func (m NonCollinear) ActRotation(cartesianRotation v3.Mat3, action MomentAction) Moment {
	rotated := cartesianRotation.MulVec(v3.Vec(m))
	if action == Axial {
		det := math.Round(cartesianRotation.Det())
		rotated = rotated.Scale(det)
	}
	return NonCollinear(rotated)
}

func (m NonCollinear) ActTimeReversal(timeReversal bool) Moment {
	if timeReversal {
		return NonCollinear(v3.Vec(m).Scale(-1))
	}
	return m
}

func (m NonCollinear) IsClose(other Moment, magSymprec float64) bool {
	o, ok := other.(NonCollinear)
	if !ok {
		return false
	}
	return v3.Vec(m).Sub(v3.Vec(o)).Norm() < magSymprec
}

//AverageMoments returns the mean of the given moments, which must all
//be of the same concrete type.
func AverageMoments(moments []Moment) Moment {
	switch moments[0].(type) {
	case Collinear:
		sum := 0.0
		for _, m := range moments {
			sum += float64(m.(Collinear))
		}
		return Collinear(sum / float64(len(moments)))
	case NonCollinear:
		var sum v3.Vec
		for _, m := range moments {
			sum = sum.Add(v3.Vec(m.(NonCollinear)))
		}
		return NonCollinear(sum.Scale(1 / float64(len(moments))))
	}
	panic(ErrUnknownMomentKind)
}

//MagneticCell is a cell with a magnetic moment on each site.
type MagneticCell struct {
	Cell    *Cell
	Moments []Moment
}

//NewMagneticCell builds a magnetic cell. It panics if moments and
//positions differ in length.
func NewMagneticCell(lattice Lattice, positions []v3.Vec, numbers []int, moments []Moment) *MagneticCell {
	cell := NewCell(lattice, positions, numbers)
	return MagneticCellFromCell(cell, moments)
}

//MagneticCellFromCell attaches moments to an existing cell.
func MagneticCellFromCell(cell *Cell, moments []Moment) *MagneticCell {
	if len(moments) != cell.NumAtoms() {
		panic(ErrMismatchedLengths)
	}
	return &MagneticCell{Cell: cell, Moments: moments}
}

//NumAtoms returns the number of sites.
func (mc *MagneticCell) NumAtoms() int { return mc.Cell.NumAtoms() }

//Clone returns a deep copy.
func (mc *MagneticCell) Clone() *MagneticCell {
	moments := make([]Moment, len(mc.Moments))
	copy(moments, mc.Moments)
	return &MagneticCell{Cell: mc.Cell.Clone(), Moments: moments}
}
