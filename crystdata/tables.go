/*
 * tables.go, part of gocryst.
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

//HallSymbolEntry describes one of the 530 Hall settings of the
//230 space group types.
type HallSymbolEntry struct {
	HallNumber       int    //1..530
	Number           int    //ITA space group number, 1..230
	ArithmeticNumber int    //arithmetic crystal class, 1..73
	Setting          string //setting label, e.g. "b1", "2", "H"
	HallSymbol       string
	HMShort          string //short Hermann-Mauguin symbol
	Centering        Centering
}

//SpaceGroupTypeEntry describes one of the 230 space group types.
type SpaceGroupTypeEntry struct {
	Number           int
	HMShort          string
	HMFull           string
	ArithmeticNumber int
	ArithmeticSymbol string
	GeometricClass   GeometricCrystalClass
	BravaisClass     BravaisClass
	LatticeSystem    LatticeSystem
	CrystalSystem    CrystalSystem
	CrystalFamily    CrystalFamily
}

//ArithmeticClassEntry describes one of the 73 arithmetic crystal
//classes.
type ArithmeticClassEntry struct {
	Number         int //1..73
	Symbol         string
	GeometricClass GeometricCrystalClass
	BravaisClass   BravaisClass
}

var (
	tablesOnce sync.Once

	hallEntries       []HallSymbolEntry      //indexed by hall_number-1
	spaceGroupTypes   []SpaceGroupTypeEntry  //indexed by number-1
	arithmeticEntries []ArithmeticClassEntry //indexed by arithmetic number-1
	standardHall      []int                  //standard hall_number per space group number, indexed by number-1
	arithmeticHall    []int                  //representative hall_number per arithmetic number, indexed by arithmetic number-1
)

func loadTables() {
	tablesOnce.Do(func() {
		for _, row := range readTable("hall_symbols.csv") {
			hallEntries = append(hallEntries, HallSymbolEntry{
				HallNumber:       mustInt(row[0]),
				Number:           mustInt(row[1]),
				ArithmeticNumber: mustInt(row[2]),
				Setting:          row[3],
				HallSymbol:       row[4],
				HMShort:          row[5],
				Centering:        Centering(row[6][0]),
			})
		}
		for _, row := range readTable("space_group_types.csv") {
			spaceGroupTypes = append(spaceGroupTypes, SpaceGroupTypeEntry{
				Number:           mustInt(row[0]),
				HMShort:          row[1],
				HMFull:           row[2],
				ArithmeticNumber: mustInt(row[3]),
				ArithmeticSymbol: row[4],
				GeometricClass:   GeometricCrystalClass(row[5]),
				BravaisClass:     BravaisClass(row[6]),
				LatticeSystem:    LatticeSystem(row[7]),
				CrystalSystem:    CrystalSystem(row[8]),
				CrystalFamily:    CrystalFamily(row[9]),
			})
		}
		for _, row := range readTable("arithmetic_classes.csv") {
			arithmeticEntries = append(arithmeticEntries, ArithmeticClassEntry{
				Number:         mustInt(row[0]),
				Symbol:         row[1],
				GeometricClass: GeometricCrystalClass(row[2]),
				BravaisClass:   BravaisClass(row[3]),
			})
		}
		standardHall = make([]int, 230)
		for _, row := range readTable("standard_settings.csv") {
			standardHall[mustInt(row[0])-1] = mustInt(row[1])
		}
		arithmeticHall = make([]int, 73)
		for _, e := range hallEntries {
			if arithmeticHall[e.ArithmeticNumber-1] == 0 {
				arithmeticHall[e.ArithmeticNumber-1] = e.HallNumber
			}
		}
	})
}

//HallEntry returns the entry for a Hall number between 1 and 530.
func HallEntry(hallNumber int) (*HallSymbolEntry, error) {
	loadTables()
	if hallNumber < 1 || hallNumber > len(hallEntries) {
		return nil, cryst.ErrUnknownHallNumber
	}
	e := hallEntries[hallNumber-1]
	return &e, nil
}

//NumHallSymbols is the count of distinct Hall settings.
func NumHallSymbols() int {
	loadTables()
	return len(hallEntries)
}

//SpaceGroupType returns the entry for an ITA space group number
//between 1 and 230.
func SpaceGroupType(number int) (*SpaceGroupTypeEntry, error) {
	loadTables()
	if number < 1 || number > len(spaceGroupTypes) {
		return nil, cryst.ErrSpaceGroupType
	}
	e := spaceGroupTypes[number-1]
	return &e, nil
}

//NumSpaceGroupTypes is the count of space group types.
func NumSpaceGroupTypes() int {
	loadTables()
	return len(spaceGroupTypes)
}

//ArithmeticClass returns the entry for an arithmetic crystal class
//number between 1 and 73.
func ArithmeticClass(number int) (*ArithmeticClassEntry, error) {
	loadTables()
	if number < 1 || number > len(arithmeticEntries) {
		return nil, cryst.ErrArithmeticClass
	}
	e := arithmeticEntries[number-1]
	return &e, nil
}

//NumArithmeticClasses is the count of arithmetic crystal classes.
func NumArithmeticClasses() int {
	loadTables()
	return len(arithmeticEntries)
}

//StandardHallNumber returns the Hall number of the standard
//(spglib-default) setting of a space group type.
func StandardHallNumber(number int) (int, error) {
	loadTables()
	if number < 1 || number > len(standardHall) {
		return 0, cryst.ErrSpaceGroupType
	}
	return standardHall[number-1], nil
}

//RepresentativeHallNumber returns the Hall number of the first listed
//setting in an arithmetic crystal class, used as the representative
//when matching point groups.
func RepresentativeHallNumber(arithmeticNumber int) (int, error) {
	loadTables()
	if arithmeticNumber < 1 || arithmeticNumber > len(arithmeticHall) {
		return 0, cryst.ErrArithmeticClass
	}
	return arithmeticHall[arithmeticNumber-1], nil
}

//Setting selects which Hall setting represents each space group type
//when identifying a structure.
type Setting struct {
	//HallNumber pins an explicit setting when nonzero.
	HallNumber int
	//Spglib scans all 530 settings in spglib order when true. The
	//default scans only the standard settings.
	Spglib bool
}

//HallNumbers lists the Hall numbers the setting selects, in matching
//order.
func (s Setting) HallNumbers() []int {
	loadTables()
	if s.HallNumber != 0 {
		return []int{s.HallNumber}
	}
	if s.Spglib {
		nums := make([]int, len(hallEntries))
		for i := range nums {
			nums[i] = i + 1
		}
		return nums
	}
	nums := make([]int, len(standardHall))
	copy(nums, standardHall)
	return nums
}
