/*
 * doc.go, part of gocryst.
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

//Package crystmath implements the lattice-reduction and integer-matrix
//algorithms the rest of the library is built on: Niggli, Minkowski and
//Delaunay reduction of lattice bases, Hermite and Smith normal forms,
//and integer linear systems. Lattice bases are handled column-wise
//throughout, so basis*T is the reduced basis for an integer matrix T.
package crystmath
