/*
 * classification.go, part of gocryst.
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

//Classifications of space groups by point group and by lattice,
//Table 3.2.3.2 of ITA (6th).

package crystdata

//GeometricCrystalClass is one of the 32 crystallographic point groups
//in Schoenflies-like labels.
type GeometricCrystalClass string

const (
	ClassC1  GeometricCrystalClass = "C1"  //1
	ClassCi  GeometricCrystalClass = "Ci"  //-1
	ClassC2  GeometricCrystalClass = "C2"  //2
	ClassC1h GeometricCrystalClass = "C1h" //m
	ClassC2h GeometricCrystalClass = "C2h" //2/m
	ClassD2  GeometricCrystalClass = "D2"  //222
	ClassC2v GeometricCrystalClass = "C2v" //mm2
	ClassD2h GeometricCrystalClass = "D2h" //mmm
	ClassC4  GeometricCrystalClass = "C4"  //4
	ClassS4  GeometricCrystalClass = "S4"  //-4
	ClassC4h GeometricCrystalClass = "C4h" //4/m
	ClassD4  GeometricCrystalClass = "D4"  //422
	ClassC4v GeometricCrystalClass = "C4v" //4mm
	ClassD2d GeometricCrystalClass = "D2d" //-42m
	ClassD4h GeometricCrystalClass = "D4h" //4/mmm
	ClassC3  GeometricCrystalClass = "C3"  //3
	ClassC3i GeometricCrystalClass = "C3i" //-3
	ClassD3  GeometricCrystalClass = "D3"  //32
	ClassC3v GeometricCrystalClass = "C3v" //3m
	ClassD3d GeometricCrystalClass = "D3d" //-3m
	ClassC6  GeometricCrystalClass = "C6"  //6
	ClassC3h GeometricCrystalClass = "C3h" //-6
	ClassC6h GeometricCrystalClass = "C6h" //6/m
	ClassD6  GeometricCrystalClass = "D6"  //622
	ClassC6v GeometricCrystalClass = "C6v" //6mm
	ClassD3h GeometricCrystalClass = "D3h" //-6m2
	ClassD6h GeometricCrystalClass = "D6h" //6/mmm
	ClassT   GeometricCrystalClass = "T"   //23
	ClassTh  GeometricCrystalClass = "Th"  //m-3
	ClassO   GeometricCrystalClass = "O"   //432
	ClassTd  GeometricCrystalClass = "Td"  //-43m
	ClassOh  GeometricCrystalClass = "Oh"  //m-3m
)

//CrystalSystem is the classification of the 32 geometric classes into
//seven systems.
type CrystalSystem string

const (
	Triclinic    CrystalSystem = "triclinic"
	Monoclinic   CrystalSystem = "monoclinic"
	Orthorhombic CrystalSystem = "orthorhombic"
	Tetragonal   CrystalSystem = "tetragonal"
	Trigonal     CrystalSystem = "trigonal"
	Hexagonal    CrystalSystem = "hexagonal"
	Cubic        CrystalSystem = "cubic"
)

//CrystalSystemOf returns the crystal system of a geometric class.
func CrystalSystemOf(class GeometricCrystalClass) CrystalSystem {
	switch class {
	case ClassC1, ClassCi:
		return Triclinic
	case ClassC2, ClassC1h, ClassC2h:
		return Monoclinic
	case ClassD2, ClassC2v, ClassD2h:
		return Orthorhombic
	case ClassC4, ClassS4, ClassC4h, ClassD4, ClassC4v, ClassD2d, ClassD4h:
		return Tetragonal
	case ClassC3, ClassC3i, ClassD3, ClassC3v, ClassD3d:
		return Trigonal
	case ClassC6, ClassC3h, ClassC6h, ClassD6, ClassC6v, ClassD3h, ClassD6h:
		return Hexagonal
	default:
		return Cubic
	}
}

//LaueClass is the class of the point group joined with inversion.
type LaueClass string

const (
	LaueCi  LaueClass = "Ci"
	LaueC2h LaueClass = "C2h"
	LaueD2h LaueClass = "D2h"
	LaueC4h LaueClass = "C4h"
	LaueD4h LaueClass = "D4h"
	LaueC3i LaueClass = "C3i"
	LaueD3d LaueClass = "D3d"
	LaueC6h LaueClass = "C6h"
	LaueD6h LaueClass = "D6h"
	LaueTh  LaueClass = "Th"
	LaueOh  LaueClass = "Oh"
)

//LaueClassOf returns the Laue class of a geometric class.
func LaueClassOf(class GeometricCrystalClass) LaueClass {
	switch class {
	case ClassC1, ClassCi:
		return LaueCi
	case ClassC2, ClassC1h, ClassC2h:
		return LaueC2h
	case ClassD2, ClassC2v, ClassD2h:
		return LaueD2h
	case ClassC4, ClassS4, ClassC4h:
		return LaueC4h
	case ClassD4, ClassC4v, ClassD2d, ClassD4h:
		return LaueD4h
	case ClassC3, ClassC3i:
		return LaueC3i
	case ClassD3, ClassC3v, ClassD3d:
		return LaueD3d
	case ClassC6, ClassC3h, ClassC6h:
		return LaueC6h
	case ClassD6, ClassC6v, ClassD3h, ClassD6h:
		return LaueD6h
	case ClassT, ClassTh:
		return LaueTh
	default:
		return LaueOh
	}
}

//BravaisClass is one of the 14 Bravais types of lattices.
type BravaisClass string

const (
	BravaisAP BravaisClass = "aP"
	BravaisMP BravaisClass = "mP"
	BravaisMC BravaisClass = "mC"
	BravaisOP BravaisClass = "oP"
	BravaisOS BravaisClass = "oS"
	BravaisOF BravaisClass = "oF"
	BravaisOI BravaisClass = "oI"
	BravaisTP BravaisClass = "tP"
	BravaisTI BravaisClass = "tI"
	BravaisHR BravaisClass = "hR"
	BravaisHP BravaisClass = "hP"
	BravaisCP BravaisClass = "cP"
	BravaisCF BravaisClass = "cF"
	BravaisCI BravaisClass = "cI"
)

//LatticeSystem is the classification of Bravais classes by holohedry.
type LatticeSystem string

const (
	LatticeTriclinic    LatticeSystem = "triclinic"
	LatticeMonoclinic   LatticeSystem = "monoclinic"
	LatticeOrthorhombic LatticeSystem = "orthorhombic"
	LatticeTetragonal   LatticeSystem = "tetragonal"
	LatticeRhombohedral LatticeSystem = "rhombohedral"
	LatticeHexagonal    LatticeSystem = "hexagonal"
	LatticeCubic        LatticeSystem = "cubic"
)

//LatticeSystemOf returns the lattice system of a Bravais class.
func LatticeSystemOf(bravais BravaisClass) LatticeSystem {
	switch bravais {
	case BravaisAP:
		return LatticeTriclinic
	case BravaisMP, BravaisMC:
		return LatticeMonoclinic
	case BravaisOP, BravaisOS, BravaisOF, BravaisOI:
		return LatticeOrthorhombic
	case BravaisTP, BravaisTI:
		return LatticeTetragonal
	case BravaisHR:
		return LatticeRhombohedral
	case BravaisHP:
		return LatticeHexagonal
	default:
		return LatticeCubic
	}
}

//CrystalFamily merges trigonal and hexagonal systems.
type CrystalFamily string

const (
	FamilyTriclinic    CrystalFamily = "triclinic"
	FamilyMonoclinic   CrystalFamily = "monoclinic"
	FamilyOrthorhombic CrystalFamily = "orthorhombic"
	FamilyTetragonal   CrystalFamily = "tetragonal"
	FamilyHexagonal    CrystalFamily = "hexagonal"
	FamilyCubic        CrystalFamily = "cubic"
)

//CrystalFamilyOf returns the crystal family of a crystal system.
func CrystalFamilyOf(system CrystalSystem) CrystalFamily {
	switch system {
	case Triclinic:
		return FamilyTriclinic
	case Monoclinic:
		return FamilyMonoclinic
	case Orthorhombic:
		return FamilyOrthorhombic
	case Tetragonal:
		return FamilyTetragonal
	case Trigonal, Hexagonal:
		return FamilyHexagonal
	default:
		return FamilyCubic
	}
}

//ConstructType classifies how a magnetic space group relates to its
//maximal nonmagnetic subgroup.
type ConstructType int

const (
	//Type1 groups contain no time reversal at all.
	Type1 ConstructType = 1
	//Type2 groups contain pure time reversal.
	Type2 ConstructType = 2
	//Type3 groups pair time reversal with proper or improper rotations
	//but never with a pure translation.
	Type3 ConstructType = 3
	//Type4 groups pair time reversal with a fractional translation.
	Type4 ConstructType = 4
)
