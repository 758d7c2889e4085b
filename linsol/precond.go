// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsol

import (
	"github.com/lamefem/lamefem/sparse"

	"github.com/cpmech/gosl/chk"
)

// Preconditioner approximates the inverse of a matrix
type Preconditioner interface {
	Apply(z, r []float64) // z := M⁻¹·r
}

// Identity does not precondition
type Identity struct{}

// Apply copies r into z
func (o Identity) Apply(z, r []float64) { copy(z, r) }

// Jacobi preconditions with the inverse of the diagonal
type Jacobi struct {
	invd []float64
}

// NewJacobi returns a Jacobi preconditioner for a; zero diagonal entries are replaced by one
func NewJacobi(a *sparse.Matrix) (o *Jacobi) {
	n, _ := a.Size()
	o = &Jacobi{invd: make([]float64, n)}
	a.Diag(o.invd)
	for i, d := range o.invd {
		if d == 0 {
			o.invd[i] = 1
			continue
		}
		o.invd[i] = 1 / d
	}
	return
}

// Apply computes z := D⁻¹·r
func (o *Jacobi) Apply(z, r []float64) {
	for i, d := range o.invd {
		z[i] = d * r[i]
	}
}

// SSOR is the symmetric successive over-relaxation preconditioner
//  M = ω/(2-ω) · (D/ω + L) · D⁻¹ · (D/ω + U)
type SSOR struct {
	a *sparse.Matrix // matrix; not copied
	ω float64        // relaxation parameter
	d []float64      // diagonal; zeros replaced by ones
}

// NewSSOR returns a SSOR preconditioner for a with relaxation parameter ω ∈ (0,2)
func NewSSOR(a *sparse.Matrix, ω float64) (o *SSOR, err error) {
	if ω <= 0 || ω >= 2 {
		return nil, chk.Err("SSOR relaxation parameter must be in (0,2); %g is invalid", ω)
	}
	n, _ := a.Size()
	o = &SSOR{a: a, ω: ω, d: make([]float64, n)}
	a.Diag(o.d)
	for i, d := range o.d {
		if d == 0 {
			o.d[i] = 1
		}
	}
	return
}

// Apply computes z := M⁻¹·r with one forward and one backward sweep
func (o *SSOR) Apply(z, r []float64) {
	n := len(o.d)
	ω := o.ω

	// forward: (D/ω + L)·y = r
	for i := 0; i < n; i++ {
		s := r[i]
		cols, vals := o.a.Row(i)
		for k, j := range cols {
			if j >= i {
				break
			}
			s -= vals[k] * z[j]
		}
		z[i] = s * ω / o.d[i]
	}

	// scale: w = (2-ω)/ω · D·y
	for i := 0; i < n; i++ {
		z[i] *= (2 - ω) / ω * o.d[i]
	}

	// backward: (D/ω + U)·z = w
	for i := n - 1; i >= 0; i-- {
		s := z[i]
		cols, vals := o.a.Row(i)
		for k := len(cols) - 1; k >= 0; k-- {
			j := cols[k]
			if j <= i {
				break
			}
			s -= vals[k] * z[j]
		}
		z[i] = s * ω / o.d[i]
	}
}
