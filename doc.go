/*
 * cryst_doc.go, part of gocryst.
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

/*
Package cryst provides the core types for crystal-symmetry analysis:
lattices, cells, magnetic cells, symmetry operations and the
transformations between settings. The heavier machinery lives in the
subpackages: crystmath (lattice reduction and integer matrices),
crystdata (the reference databases), search (symmetry search),
identify (space-group type identification), standard (cell
standardization) and dataset (the assembled results).

Lattices store their basis vectors as matrix columns, so cartesian
coordinates are basis times fractional coordinates, and a symmetry
operation acts on fractional coordinates as x' = R x + t.
*/
package cryst
