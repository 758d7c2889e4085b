// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linop

import (
	"math/rand"
	"testing"

	"github.com/lamefem/lamefem/sparse"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// twoMatrices returns two random matrices sharing the pattern of 1D two-node elements
func twoMatrices(n int, seed int64) (a, b *sparse.Matrix) {
	pb := sparse.NewPatternBuilder(n)
	for i := 0; i < n-1; i++ {
		pb.AddDense([]int{i, i + 1})
	}
	p := pb.Build()
	rnd := rand.New(rand.NewSource(seed))
	a, b = sparse.NewMatrix(p), sparse.NewMatrix(p)
	for k := range p.Cols {
		a.Vals[k] = rnd.Float64() - 0.5
		b.Vals[k] = rnd.Float64() - 0.5
	}
	return
}

func mul(op Operator, x []float64) (y []float64) {
	y = make([]float64, len(x))
	VMult(op, y, x)
	return
}

func Test_sum01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sum01. additive products and sum matrix")

	n := 7
	a, b := twoMatrices(n, 1234)
	x := []float64{1, 2, -3, 0.5, 0, -1, 4}

	ax := mul(Single{a}, x)
	bx := mul(Single{b}, x)
	ref := make([]float64, n)
	for i := range ref {
		ref[i] = ax[i] + bx[i]
	}

	op := NewSum(a, b)
	m, nn := op.Size()
	chk.Int(tst, "m", m, n)
	chk.Int(tst, "n", nn, n)
	chk.Int(tst, "len", op.Len(), 2)

	// from zero
	dst := make([]float64, n)
	op.VMultAdd(dst, x)
	assert.InDeltaSlice(tst, ref, dst, 1e-14)

	// multiply-add keeps previous contents
	op.VMultAdd(dst, x)
	for i := range ref {
		ref[i] *= 2
	}
	assert.InDeltaSlice(tst, ref, dst, 1e-14)

	// sum matrix
	sx := mul(Single{op.Sum()}, x)
	for i := range ref {
		ref[i] /= 2
	}
	assert.InDeltaSlice(tst, ref, sx, 1e-14)
	io.Pforan("S·x = %v\n", sx)
}

func Test_sum02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sum02. three matrices: sum matrix uses the first two")

	n := 5
	a, b := twoMatrices(n, 1)
	c, _ := twoMatrices(n, 2)
	x := []float64{1, 1, 1, 1, 1}

	op := NewSum(a, b, c)
	y := mul(op, x)
	ref := mul(Weighted{[]Term{{1, Single{a}}, {1, Single{b}}, {1, Single{c}}}}, x)
	assert.InDeltaSlice(tst, ref, y, 1e-14)

	s := mul(Single{op.Sum()}, x)
	ref = mul(Weighted{[]Term{{1, Single{a}}, {1, Single{b}}}}, x)
	assert.InDeltaSlice(tst, ref, s, 1e-14)
}

func Test_sum03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sum03. construction errors and lifetime")

	a, b := twoMatrices(4, 1)
	e, _ := twoMatrices(5, 1)

	assert.Panics(tst, func() { NewSum() })
	assert.Panics(tst, func() { NewSum(a) })
	assert.Panics(tst, func() { NewSum(a, nil) })
	assert.Panics(tst, func() { NewSum(a, e) })

	// rewriting a referenced matrix makes the composite stale
	op := NewSum(a, b)
	require.True(tst, op.Valid())
	b.Zero()
	assert.False(tst, op.Valid())
	assert.Panics(tst, func() { op.VMultAdd(make([]float64, 4), make([]float64, 4)) })
	assert.Panics(tst, func() { op.Sum() })

	// released
	op = NewSum(a, b)
	op.Release()
	assert.False(tst, op.Valid())
	assert.Panics(tst, func() { op.VMultAdd(make([]float64, 4), make([]float64, 4)) })
	assert.Panics(tst, func() { op.Sum() })
}

func Test_weighted01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("weighted01. weighted sums of operators")

	n := 6
	a, b := twoMatrices(n, 99)
	x := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}
	ax, bx := mul(Single{a}, x), mul(Single{b}, x)

	// matrices and nested operators (the latter need workspace)
	w := Weighted{[]Term{{2, a}, {-3, Single{b}}}}
	w.Check()
	y := mul(w, x)
	for i := range y {
		chk.Float64(tst, "y", 1e-14, y[i], 2*ax[i]-3*bx[i])
	}

	nested := Weighted{[]Term{{0.5, w}, {1, NewSum(a, b)}}}
	y = mul(nested, x)
	for i := range y {
		chk.Float64(tst, "y", 1e-14, y[i], 2*ax[i]-0.5*bx[i])
	}

	m, nn := Weighted{}.Size()
	chk.Int(tst, "m", m, 0)
	chk.Int(tst, "n", nn, 0)
	e, _ := twoMatrices(n+1, 1)
	assert.Panics(tst, func() { Weighted{}.Check() })
	assert.Panics(tst, func() { Weighted{[]Term{{1, a}, {1, e}}}.Check() })
}
