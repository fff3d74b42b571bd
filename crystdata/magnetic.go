/*
 * magnetic.go, part of gocryst.
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
	"sync"

	cryst "github.com/gocryst/gocryst"
)

//MagneticSpaceGroupTypeEntry describes one of the 1651 magnetic space
//group types in the UNI numbering.
type MagneticSpaceGroupTypeEntry struct {
	UNINumber     int //1..1651
	LitvinNumber  int
	BNSNumber     string //e.g. "136.498"
	OGNumber      string //e.g. "136.5.1159"
	Number        int    //ITA number of the reference space group
	ConstructType ConstructType
}

var (
	magneticOnce sync.Once

	magneticTypes   []MagneticSpaceGroupTypeEntry //indexed by uni_number-1
	magneticHall    []string                      //magnetic Hall symbol per UNI number
	uniBySpaceGroup map[int][]int
)

func loadMagneticTables() {
	magneticOnce.Do(func() {
		uniBySpaceGroup = make(map[int][]int)
		for _, row := range readTable("magnetic_space_group_types.csv") {
			e := MagneticSpaceGroupTypeEntry{
				UNINumber:     mustInt(row[0]),
				LitvinNumber:  mustInt(row[1]),
				BNSNumber:     row[2],
				OGNumber:      row[3],
				Number:        mustInt(row[4]),
				ConstructType: ConstructType(mustInt(row[5])),
			}
			magneticTypes = append(magneticTypes, e)
			uniBySpaceGroup[e.Number] = append(uniBySpaceGroup[e.Number], e.UNINumber)
		}
		magneticHall = make([]string, len(magneticTypes))
		for _, row := range readTable("magnetic_hall_symbols.csv") {
			magneticHall[mustInt(row[0])-1] = row[1]
		}
	})
}

//MagneticSpaceGroupType returns the entry for a UNI number between 1
//and 1651.
func MagneticSpaceGroupType(uniNumber int) (*MagneticSpaceGroupTypeEntry, error) {
	loadMagneticTables()
	if uniNumber < 1 || uniNumber > len(magneticTypes) {
		return nil, cryst.ErrUnknownUNINumber
	}
	e := magneticTypes[uniNumber-1]
	return &e, nil
}

//NumMagneticSpaceGroupTypes is the count of magnetic space group
//types.
func NumMagneticSpaceGroupTypes() int {
	loadMagneticTables()
	return len(magneticTypes)
}

//MagneticSpaceGroupHallSymbol returns the magnetic Hall symbol of a
//UNI number.
func MagneticSpaceGroupHallSymbol(uniNumber int) (string, error) {
	loadMagneticTables()
	if uniNumber < 1 || uniNumber > len(magneticHall) {
		return "", cryst.ErrUnknownUNINumber
	}
	return magneticHall[uniNumber-1], nil
}

//UNINumbersForSpaceGroup lists, in ascending order, the UNI numbers
//of the magnetic space group types whose reference space group has
//the given ITA number.
func UNINumbersForSpaceGroup(number int) []int {
	loadMagneticTables()
	nums := uniBySpaceGroup[number]
	out := make([]int, len(nums))
	copy(out, nums)
	return out
}
