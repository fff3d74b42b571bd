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

/*
Package crystdata carries the crystallographic reference databases and
the Hall-symbol machinery. The tables are embedded as gzipped CSV and
decompressed on first use: the 230 space-group types, 73 arithmetic
crystal classes, 530 Hall settings, the Wyckoff positions of every
setting, and the 1651 magnetic space-group types with their magnetic
Hall symbols.

Space-group settings are addressed by Hall number (1..530) and
magnetic space-group types by UNI number (1..1651).
*/
package crystdata
