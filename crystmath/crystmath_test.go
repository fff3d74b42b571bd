/*
 * crystmath_test.go, part of gocryst.
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

package crystmath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/gocryst/gocryst/v3"
)

func randomIntBasis(rng *rand.Rand) v3.Mat3 {
	var b v3.Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			b[i][j] = float64(rng.Intn(255) - 127)
		}
	}
	return b
}

func assertMatClose(t *testing.T, expect, got v3.Mat3, tol float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, expect[i][j], got[i][j], tol)
		}
	}
}

func TestNiggliSmall(t *testing.T) {
	//example in Acta Cryst. (1976). A32, 297
	g := mat.NewSymDense(3, []float64{
		9, -11, -2,
		-11, 27, -2.5,
		-2, -2.5, 4,
	})
	var ch mat.Cholesky
	require.True(t, ch.Factorize(g))
	var l mat.TriDense
	ch.LTo(&l)
	var dense mat.Dense
	dense.CloneFrom(l.T())
	basis := v3.Mat3FromDense(&dense)

	reduced, trans := NiggliReduce(basis)
	assertMatClose(t, reduced, basis.Mul(trans.ToMat3()), 1e-8)
	assert.Equal(t, 1, trans.Det())

	p := newNiggliParams(reduced)
	assert.InDelta(t, 4.0, p.A, 1e-6)
	assert.InDelta(t, 9.0, p.B, 1e-6)
	assert.InDelta(t, 9.0, p.C, 1e-6)
	assert.InDelta(t, 9.0, p.Xi, 1e-6)
	assert.InDelta(t, 3.0, p.Eta, 1e-6)
	assert.InDelta(t, 4.0, p.Zeta, 1e-6)
	assert.True(t, IsNiggliReduced(reduced))
}

func TestNiggliRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	for trial := 0; trial < 256; trial++ {
		basis := randomIntBasis(rng)
		if math.Abs(basis.Det()) < 1e-8 {
			continue
		}
		reduced, trans := NiggliReduce(basis)
		assert.True(t, IsNiggliReduced(reduced))
		assertMatClose(t, reduced, basis.Mul(trans.ToMat3()), 1e-8)
		assert.Equal(t, 1, trans.Det())
	}
}

func TestMinkowskiSmall(t *testing.T) {
	identity := v3.Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	assert.True(t, IsMinkowskiReduced(identity))
	reduced, trans := MinkowskiReduce(identity)
	assertMatClose(t, identity, reduced, 1e-12)
	assert.Equal(t, v3.IdentI(), trans)

	//columns (0,1,0), (1,1,0), (1,1,1)
	basis := v3.Mat3{{0, 1, 1}, {1, 1, 1}, {0, 0, 1}}
	assert.False(t, IsMinkowskiReduced(basis))
	reduced, trans = MinkowskiReduce(basis)
	assert.True(t, IsMinkowskiReduced(reduced))
	assertMatClose(t, reduced, basis.Mul(trans.ToMat3()), 1e-8)
}

func TestMinkowskiRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 256; trial++ {
		basis := randomIntBasis(rng)
		if math.Abs(basis.Det()) < 1e-8 {
			continue
		}
		reduced, trans := MinkowskiReduce(basis)
		assert.True(t, IsMinkowskiReduced(reduced))
		assertMatClose(t, reduced, basis.Mul(trans.ToMat3()), 1e-8)
		assert.Equal(t, 1, trans.Det())
	}
}

func TestDelaunaySmall(t *testing.T) {
	basis := v3.Mat3{
		{-2.2204639179669590, 1.2819854407640749, 10.5158083946732219},
		{-4.4409278359339179, 0.0, 0.0},
		{179.8575773553236843, 103.8408207018900669, 883.3279051525505565},
	}
	reduced, trans := DelaunayReduce(basis)
	assertMatClose(t, reduced, basis.Mul(trans.ToMat3()), 1e-4)
	assert.Equal(t, 1, trans.Det())

	//reduced superbase has no positive pairwise scalar products
	sb := superbase(reduced)
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 4; j++ {
			assert.LessOrEqual(t, sb[i].Dot(sb[j]), eps)
		}
	}
}

func TestDelaunayRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for trial := 0; trial < 256; trial++ {
		basis := randomIntBasis(rng)
		if math.Abs(basis.Det()) < 1e-8 {
			continue
		}
		reduced, trans := DelaunayReduce(basis)
		assertMatClose(t, reduced, basis.Mul(trans.ToMat3()), 1e-4)
		assert.Equal(t, 1, trans.Det())
	}
}

func TestHNFSmall(t *testing.T) {
	m := [][]int{
		{-1, 0, 0},
		{1, 2, 2},
		{0, -1, -2},
	}
	hnf := NewHNF(m)
	expect := [][]int{
		{1, 0, 0},
		{1, 2, 0},
		{0, 0, 1},
	}
	assert.Equal(t, expect, hnf.H)
	assert.Equal(t, hnf.H, mulIntMat(m, hnf.R))

	m = [][]int{
		{20, -6},
		{-2, 1},
	}
	hnf = NewHNF(m)
	assert.Equal(t, [][]int{{2, 0}, {1, 4}}, hnf.H)

	m = [][]int{
		{2, 3, 6, 2},
		{5, 6, 1, 6},
		{8, 3, 1, 1},
	}
	hnf = NewHNF(m)
	expect = [][]int{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
	}
	assert.Equal(t, expect, hnf.H)
}

func TestHNFRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 256; trial++ {
		m := make([][]int, 3)
		for i := range m {
			m[i] = make([]int, 5)
			for j := range m[i] {
				m[i][j] = rng.Intn(8) - 4
			}
		}
		hnf := NewHNF(m)
		assert.Equal(t, hnf.H, mulIntMat(m, hnf.R))
	}
}

func TestSNFSmall(t *testing.T) {
	m := [][]int{
		{2, 4, 4},
		{-6, 6, 12},
		{10, -4, -16},
	}
	snf := NewSNF(m)
	expect := [][]int{
		{2, 0, 0},
		{0, 6, 0},
		{0, 0, 12},
	}
	assert.Equal(t, expect, snf.D)
	assert.Equal(t, snf.D, mulIntMat(mulIntMat(snf.L, m), snf.R))
	assert.Equal(t, 3, snf.Rank())
}

func TestSNFRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for trial := 0; trial < 256; trial++ {
		m := make([][]int, 5)
		for i := range m {
			m[i] = make([]int, 7)
			for j := range m[i] {
				m[i][j] = rng.Intn(8) - 4
			}
		}
		snf := NewSNF(m)
		assert.Equal(t, snf.D, mulIntMat(mulIntMat(snf.L, m), snf.R))
	}
}

func TestIntegerLinearSystem(t *testing.T) {
	{
		a := [][]int{
			{6, 4, 10},
			{-1, 1, -5},
		}
		b := []int{4, 11}
		sol := SolveIntegerLinearSystem(a, b)
		require.NotNil(t, sol)
		assert.Equal(t, 2, sol.Rank)
		for i := range a {
			got := 0
			for j := range sol.X {
				got += a[i][j] * sol.X[j]
			}
			assert.Equal(t, b[i], got)
		}
	}
	{
		a := [][]int{{1, 1, 0}}
		b := []int{2}
		sol := SolveIntegerLinearSystem(a, b)
		require.NotNil(t, sol)
		assert.Equal(t, 1, sol.Rank)
	}
	{
		a := [][]int{{2, 4, 0}}
		b := []int{1}
		assert.Nil(t, SolveIntegerLinearSystem(a, b))
	}
}

func TestSylvester3(t *testing.T) {
	//conjugating a group with itself always admits the identity
	gens := []v3.IMat{
		{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
		{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}},
	}
	basis := Sylvester3(gens, gens)
	require.NotEmpty(t, basis)
	for _, p := range basis {
		for _, g := range gens {
			assert.Equal(t, g.Mul(p), p.Mul(g))
		}
	}
}
