// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linop

import (
	"github.com/lamefem/lamefem/sparse"

	"github.com/cpmech/gosl/chk"
)

// Sum presents an ordered list of matrices sharing one sparsity pattern as a single operator.
// It does not own the matrices: it records their generation stamps and refuses to work once any
// of them has been rewritten or after Release.
//
//  Note: the precomputed sum matrix holds ms[0] + ms[1] only, even if more matrices are listed
type Sum struct {
	ms       []*sparse.Matrix // referenced matrices
	gens     []uint64         // generation stamps at construction
	sum      *sparse.Matrix   // ms[0] + ms[1]
	released bool             // Release was called
}

// NewSum returns a composite operator over ms; panics if fewer than two matrices are given,
// if any is nil, or if the patterns differ
func NewSum(ms ...*sparse.Matrix) (o *Sum) {
	if len(ms) < 2 {
		chk.Panic("composite operator needs at least two matrices; %d is invalid", len(ms))
	}
	for k, m := range ms {
		if m == nil {
			chk.Panic("matrix %d of composite operator is nil", k)
		}
		if !m.SamePattern(ms[0]) {
			chk.Panic("matrix %d of composite operator has a sparsity pattern different from matrix 0", k)
		}
	}
	o = &Sum{ms: make([]*sparse.Matrix, len(ms)), gens: make([]uint64, len(ms))}
	copy(o.ms, ms)
	for k, m := range ms {
		o.gens[k] = m.Gen()
	}
	o.sum = sparse.NewMatrix(ms[0].Pat)
	o.sum.CopyFrom(ms[0])
	o.sum.AddScaled(1, ms[1])
	o.sum.Compress()
	return
}

// Size returns the dimensions
func (o *Sum) Size() (m, n int) {
	return o.ms[0].Size()
}

// Len returns the number of referenced matrices
func (o *Sum) Len() int {
	return len(o.ms)
}

// Valid tells whether the composite can still be used
func (o *Sum) Valid() bool {
	if o.released {
		return false
	}
	for k, m := range o.ms {
		if m.Gen() != o.gens[k] {
			return false
		}
	}
	return true
}

// VMultAdd performs dst += Σ_k ms[k]*src
func (o *Sum) VMultAdd(dst, src []float64) {
	o.check()
	for _, m := range o.ms {
		m.VMultAdd(dst, src)
	}
}

// Sum returns the precomputed ms[0] + ms[1]
func (o *Sum) Sum() *sparse.Matrix {
	o.check()
	return o.sum
}

// Release drops the sum matrix; any further product panics
func (o *Sum) Release() {
	o.released = true
	o.sum = nil
}

// check panics if the composite is stale or released
func (o *Sum) check() {
	if o.released {
		chk.Panic("composite operator was released")
	}
	for k, m := range o.ms {
		if m.Gen() != o.gens[k] {
			chk.Panic("matrix %d of composite operator was rewritten after construction", k)
		}
	}
}
