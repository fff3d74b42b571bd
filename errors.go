/*
 * errors.go, part of gocryst.
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

import "strings"

//Error is the error type for the symmetry-analysis packages. The deco
//field accumulates context as the error travels up the call stack.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return err.message }

//Decorate adds the dec string to the error and returns the current
//decoration. Pass "" to only retrieve the decoration.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }

//NewError returns a non-critical Error with the given message.
func NewError(message string) Error {
	return Error{message: message}
}

//errDecorate wraps err with dec, preserving the accumulated context
//when err already is an Error.
func errDecorate(err error, dec string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Error); ok {
		e.deco = append(e.deco, dec)
		return e
	}
	return Error{message: strings.Join([]string{dec, err.Error()}, ": ")}
}

//Errors the analysis pipeline reports. They carry no context by
//themselves; callers decorate them on the way up.
var (
	ErrTooSmallSymprec         = NewError("gocryst: symmetry precision too small to find the translations")
	ErrTooLargeSymprec         = NewError("gocryst: symmetry precision too large, overlapping atoms")
	ErrPrimitiveCellSearch     = NewError("gocryst: failed to find a primitive cell")
	ErrBravaisGroupSearch      = NewError("gocryst: failed to find the Bravais group")
	ErrSymmetrySearch          = NewError("gocryst: failed to find the symmetry operations")
	ErrMinkowskiReduction      = NewError("gocryst: Minkowski reduction did not converge")
	ErrNiggliReduction         = NewError("gocryst: Niggli reduction did not converge")
	ErrGeometricClass          = NewError("gocryst: failed to identify the geometric crystal class")
	ErrArithmeticClass         = NewError("gocryst: failed to identify the arithmetic crystal class")
	ErrConstructType           = NewError("gocryst: failed to identify the magnetic construct type")
	ErrSpaceGroupType          = NewError("gocryst: failed to identify the space-group type")
	ErrMagneticSpaceGroupType  = NewError("gocryst: failed to identify the magnetic space-group type")
	ErrStandardization         = NewError("gocryst: failed to standardize the cell")
	ErrMagneticStandardization = NewError("gocryst: failed to standardize the magnetic cell")
	ErrWyckoffAssignment       = NewError("gocryst: failed to assign Wyckoff positions")
	ErrUnknownHallNumber       = NewError("gocryst: Hall number out of range")
	ErrUnknownUNINumber        = NewError("gocryst: UNI number out of range")
)

//PanicMsg is the type used for panics on programming errors, so they
//can be distinguished from panics in the underlying libraries.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrMismatchedLengths PanicMsg = "gocryst: positions, species and moments must have the same length"
	ErrNotUnimodular     PanicMsg = "gocryst: transformation matrix must have determinant one"
	ErrNotPositiveDet    PanicMsg = "gocryst: transformation matrix must have positive determinant"
	ErrNotPermutation    PanicMsg = "gocryst: mapping is not a permutation"
	ErrNotRotation       PanicMsg = "gocryst: matrix is not a crystallographic rotation"
	ErrUnknownMomentKind PanicMsg = "gocryst: unknown magnetic moment type"
)
