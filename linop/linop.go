// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package linop implements linear operators presented to iterative solvers
package linop

import (
	"github.com/lamefem/lamefem/sparse"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"
)

// Operator defines a square or rectangular linear operator
//  Note: VMultAdd performs dst += A*src; dst is never zeroed
type Operator interface {
	Size() (m, n int)            // dimensions
	VMultAdd(dst, src []float64) // dst += A*src
}

// scaledAdder is implemented by operators that can scale their contribution without workspace
type scaledAdder interface {
	VMultAddScaled(dst []float64, α float64, src []float64) // dst += α*A*src
}

// VMult performs dst = A*src
func VMult(A Operator, dst, src []float64) {
	for i := range dst {
		dst[i] = 0
	}
	A.VMultAdd(dst, src)
}

// Single wraps one matrix
type Single struct {
	A *sparse.Matrix
}

// Size returns the dimensions
func (o Single) Size() (m, n int) { return o.A.Size() }

// VMultAdd performs dst += A*src
func (o Single) VMultAdd(dst, src []float64) { o.A.VMultAdd(dst, src) }

// Term holds one coefficient-operator pair of Weighted
type Term struct {
	Coef float64
	Op   Operator
}

// Weighted represents Σ Coef_k * Op_k
type Weighted struct {
	Terms []Term
}

// Size returns the dimensions of the first term
func (o Weighted) Size() (m, n int) {
	if len(o.Terms) == 0 {
		return
	}
	return o.Terms[0].Op.Size()
}

// VMultAdd performs dst += Σ Coef_k * Op_k * src
func (o Weighted) VMultAdd(dst, src []float64) {
	var tmp []float64
	for _, t := range o.Terms {
		if s, ok := t.Op.(scaledAdder); ok {
			s.VMultAddScaled(dst, t.Coef, src)
			continue
		}
		if tmp == nil {
			tmp = make([]float64, len(dst))
		}
		VMult(t.Op, tmp, src)
		floats.AddScaled(dst, t.Coef, tmp)
	}
}

// Check panics if the terms have different dimensions
func (o Weighted) Check() {
	if len(o.Terms) == 0 {
		chk.Panic("weighted operator needs at least one term")
	}
	m, n := o.Terms[0].Op.Size()
	for k, t := range o.Terms {
		mk, nk := t.Op.Size()
		if mk != m || nk != n {
			chk.Panic("term %d has size %d×%d; expected %d×%d", k, mk, nk, m, n)
		}
	}
}
