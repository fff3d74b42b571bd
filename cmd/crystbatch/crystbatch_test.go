/*
 * crystbatch_test.go, part of gocryst.
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

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocryst/gocryst/crystjson"
)

func TestLoadConfigDefaults(t *testing.T) {
	conf, err := LoadConfig("")
	require.NoError(t, err)
	assert.InDelta(t, 1e-4, conf.Symprec, 1e-15)
	assert.Equal(t, "axial", conf.Action)
	assert.GreaterOrEqual(t, conf.Workers, 1)
	assert.False(t, conf.Magnetic)
}

func TestLoadConfigFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "crystbatch.yaml")
	config := `symprec: 1.0e-5
spglib: true
workers: 2
operations: true
inputs:
  - structures.json
output: results.json
`
	require.NoError(t, os.WriteFile(filename, []byte(config), 0o644))
	conf, err := LoadConfig(filename)
	require.NoError(t, err)
	assert.InDelta(t, 1e-5, conf.Symprec, 1e-15)
	assert.True(t, conf.Spglib)
	assert.Equal(t, 2, conf.Workers)
	assert.True(t, conf.Operations)
	assert.Equal(t, []string{"structures.json"}, conf.Inputs)
	assert.Equal(t, "results.json", conf.Output)
	assert.True(t, conf.Setting().Spglib)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("symprec: -1\n"), 0o644))
	_, err := LoadConfig(filename)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filename, []byte("action: sideways\n"), 0o644))
	_, err = LoadConfig(filename)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filename, []byte("hall_number: 531\n"), 0o644))
	_, err = LoadConfig(filename)
	assert.Error(t, err)
}

func fixtureFile(t *testing.T) string {
	t.Helper()
	structures := `[
		{"Name": "fcc Cu",
		 "Basis": [[1,0,0],[0,1,0],[0,0,1]],
		 "Positions": [[0,0,0],[0,0.5,0.5],[0.5,0,0.5],[0.5,0.5,0]],
		 "Species": [29,29,29,29]},
		{"Name": "bcc Fe",
		 "Basis": [[2.87,0,0],[0,2.87,0],[0,0,2.87]],
		 "Positions": [[0,0,0],[0.5,0.5,0.5]],
		 "Species": [26,26]}
	]`
	filename := filepath.Join(t.TempDir(), "structures.json")
	require.NoError(t, os.WriteFile(filename, []byte(structures), 0o644))
	return filename
}

func TestBatchRun(t *testing.T) {
	filename := fixtureFile(t)
	conf, err := LoadConfig("")
	require.NoError(t, err)
	conf.Workers = 2
	conf.Spglib = true

	jobs, err := readJobs([]string{filename})
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "fcc Cu", jobs[0].name)

	outcomes := analyze(conf, jobs)
	require.Len(t, outcomes, 2)
	require.NoError(t, outcomes[0].err)
	require.NoError(t, outcomes[1].err)
	assert.Equal(t, 225, outcomes[0].result.Number)
	assert.Equal(t, 229, outcomes[1].result.Number)

	var out bytes.Buffer
	require.NoError(t, writeResults(conf, outcomes, &out))
	var results []crystjson.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "cF4", results[0].PearsonSymbol)
	assert.Equal(t, "cI2", results[1].PearsonSymbol)

	var table bytes.Buffer
	summarize(conf, jobs, outcomes, &table)
	assert.Contains(t, table.String(), "fcc Cu")
	assert.Contains(t, table.String(), "229")
}

func TestBatchRecordsFailures(t *testing.T) {
	broken := `[{"Basis": [[1,0,0],[0,1,0],[0,0,1]],
		"Positions": [[0,0,0]], "Species": [1, 1]}]`
	filename := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(filename, []byte(broken), 0o644))

	conf, err := LoadConfig("")
	require.NoError(t, err)
	jobs, err := readJobs([]string{filename})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.True(t, strings.HasPrefix(jobs[0].name, "broken.json#"))

	outcomes := analyze(conf, jobs)
	require.Error(t, outcomes[0].err)

	var out bytes.Buffer
	require.NoError(t, writeResults(conf, outcomes, &out))
	var results []crystjson.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	assert.Empty(t, results)
}
