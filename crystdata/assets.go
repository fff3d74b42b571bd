/*
 * assets.go, part of gocryst.
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
	"bytes"
	"embed"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/klauspost/compress/gzip"
)

//go:embed assets/*.csv.gz
var assets embed.FS

//readTable decompresses and parses one embedded table, skipping the
//header row. The embedded data is part of the build, so any failure
//here is a corrupted binary and panics.
func readTable(name string) [][]string {
	raw, err := assets.ReadFile("assets/" + name + ".gz")
	if err != nil {
		panic(fmt.Sprintf("crystdata: missing embedded table %s: %v", name, err))
	}
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("crystdata: corrupt embedded table %s: %v", name, err))
	}
	defer zr.Close()
	records, err := csv.NewReader(zr).ReadAll()
	if err != nil {
		panic(fmt.Sprintf("crystdata: corrupt embedded table %s: %v", name, err))
	}
	if len(records) < 2 {
		panic(fmt.Sprintf("crystdata: empty embedded table %s", name))
	}
	return records[1:]
}

func mustInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		panic(fmt.Sprintf("crystdata: bad integer %q in embedded table", s))
	}
	return v
}
