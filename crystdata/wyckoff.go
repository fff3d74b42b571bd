/*
 * wyckoff.go, part of gocryst.
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

package crystdata

import (
	"strconv"
	"strings"
	"sync"

	cryst "github.com/gocryst/gocryst"
	v3 "github.com/gocryst/gocryst/v3"
)

//WyckoffPosition is one Wyckoff position of a Hall setting.
type WyckoffPosition struct {
	Letter string
	//Multiplicity in the conventional cell.
	Multiplicity int
	SiteSymmetry string
	//Coordinates of the first representative point in shorthand
	//notation, e.g. "2x,x,z".
	Coordinates string
}

var (
	wyckoffOnce   sync.Once
	wyckoffByHall map[int][]WyckoffPosition
)

func loadWyckoffTables() {
	wyckoffOnce.Do(func() {
		wyckoffByHall = make(map[int][]WyckoffPosition)
		for _, row := range readTable("wyckoff_positions.csv") {
			hallNumber := mustInt(row[0])
			wyckoffByHall[hallNumber] = append(wyckoffByHall[hallNumber], WyckoffPosition{
				Letter:       row[1],
				Multiplicity: mustInt(row[2]),
				SiteSymmetry: row[3],
				Coordinates:  strings.Trim(row[4], "()"),
			})
		}
	})
}

//WyckoffPositions lists the Wyckoff positions of a Hall setting, from
//the highest multiplicity (general position) down to the lowest.
func WyckoffPositions(hallNumber int) ([]WyckoffPosition, error) {
	loadWyckoffTables()
	positions, ok := wyckoffByHall[hallNumber]
	if !ok {
		return nil, cryst.ErrUnknownHallNumber
	}
	out := make([]WyckoffPosition, len(positions))
	copy(out, positions)
	return out, nil
}

//WyckoffPositionSpace is the affine subspace spanned by a Wyckoff
//position, x' = Linear*[x, y, z]^T + Origin.
type WyckoffPositionSpace struct {
	Linear v3.IMat
	Origin v3.Vec
}

//NewWyckoffPositionSpace parses shorthand Wyckoff coordinates.
//Ignoring whitespace,
//
//	<shorthand>   := <term>, <term>, <term>
//	<term>        := "-"? <factor> ([+-] <factor>)* ([+-] <translation>)?
//	<factor>      := <integer>? <variable>
//	<variable>    := "x" | "y" | "z"
//	<translation> := <integer> ("/" <integer>)?
func NewWyckoffPositionSpace(coordinates string) (WyckoffPositionSpace, error) {
	terms := strings.Split(strings.ReplaceAll(coordinates, " ", ""), ",")
	if len(terms) != 3 {
		return WyckoffPositionSpace{}, errWyckoffCoords
	}
	var space WyckoffPositionSpace
	for i, term := range terms {
		for _, tok := range splitSignedTokens(term) {
			last := tok.text[len(tok.text)-1]
			if last >= '0' && last <= '9' {
				//translation
				nums := strings.Split(tok.text, "/")
				numerator, err := strconv.ParseFloat(nums[0], 64)
				if err != nil {
					return WyckoffPositionSpace{}, errWyckoffCoords
				}
				denominator := 1.0
				if len(nums) == 2 {
					denominator, err = strconv.ParseFloat(nums[1], 64)
					if err != nil {
						return WyckoffPositionSpace{}, errWyckoffCoords
					}
				} else if len(nums) > 2 {
					return WyckoffPositionSpace{}, errWyckoffCoords
				}
				space.Origin[i] += float64(tok.sign) * numerator / denominator
			} else {
				//variable
				j := strings.IndexByte("xyz", last)
				if j < 0 {
					return WyckoffPositionSpace{}, errWyckoffCoords
				}
				coeff := 1
				if len(tok.text) > 1 {
					var err error
					coeff, err = strconv.Atoi(tok.text[:len(tok.text)-1])
					if err != nil {
						return WyckoffPositionSpace{}, errWyckoffCoords
					}
				}
				space.Linear[i][j] += tok.sign * coeff
			}
		}
	}
	return space, nil
}

var errWyckoffCoords = cryst.NewError("gocryst: ill-formed Wyckoff coordinates")

type signedToken struct {
	sign int
	text string
}

func splitSignedTokens(term string) []signedToken {
	tokens := []signedToken{}
	sign := 1
	start := 0
	for pos := 0; pos < len(term); pos++ {
		switch term[pos] {
		case '+':
			tokens = append(tokens, signedToken{sign, term[start:pos]})
			sign = 1
			start = pos + 1
		case '-':
			if pos > start {
				tokens = append(tokens, signedToken{sign, term[start:pos]})
			}
			sign = -1
			start = pos + 1
		}
	}
	if start < len(term) {
		tokens = append(tokens, signedToken{sign, term[start:]})
	}
	return tokens
}
