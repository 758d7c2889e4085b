// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparse

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// Matrix holds values aligned with a shared Pattern.
//  Note: values are compressed into column-compressed storage (la.CCMatrix) before products;
//        Gen is bumped whenever the whole contents are rewritten (Zero, CopyFrom)
type Matrix struct {
	Pat  *Pattern // sparsity pattern (shared)
	Vals []float64

	gen   uint64       // generation stamp
	dirty bool         // Vals modified after last compression
	tri   la.Triplet   // workspace for compression
	cc    *la.CCMatrix // compressed matrix
}

// NewMatrix returns a zero matrix with pattern p
func NewMatrix(p *Pattern) *Matrix {
	if p == nil {
		chk.Panic("pattern must not be nil")
	}
	return &Matrix{Pat: p, Vals: make([]float64, p.Nnz()), gen: 1, dirty: true}
}

// Size returns the dimensions of the matrix
func (o *Matrix) Size() (m, n int) {
	return o.Pat.N, o.Pat.N
}

// Gen returns the generation stamp
func (o *Matrix) Gen() uint64 {
	return o.gen
}

// SamePattern tells whether b shares the pattern of o (same object or same structure)
func (o *Matrix) SamePattern(b *Matrix) bool {
	if o.Pat == b.Pat {
		return true
	}
	if o.Pat.N != b.Pat.N || o.Pat.Nnz() != b.Pat.Nnz() {
		return false
	}
	for i, p := range o.Pat.RowPtr {
		if b.Pat.RowPtr[i] != p {
			return false
		}
	}
	for k, j := range o.Pat.Cols {
		if b.Pat.Cols[k] != j {
			return false
		}
	}
	return true
}

// Zero clears all values and starts a new generation
func (o *Matrix) Zero() {
	for k := range o.Vals {
		o.Vals[k] = 0
	}
	o.gen++
	o.dirty = true
}

// Add adds v to entry (i,j); panics if (i,j) is not in pattern
func (o *Matrix) Add(i, j int, v float64) {
	k := o.Pat.Index(i, j)
	if k < 0 {
		chk.Panic("entry (%d,%d) is not in sparsity pattern", i, j)
	}
	o.Vals[k] += v
	o.dirty = true
}

// Set sets entry (i,j); panics if (i,j) is not in pattern
func (o *Matrix) Set(i, j int, v float64) {
	k := o.Pat.Index(i, j)
	if k < 0 {
		chk.Panic("entry (%d,%d) is not in sparsity pattern", i, j)
	}
	o.Vals[k] = v
	o.dirty = true
}

// At returns entry (i,j); zero if (i,j) is not in pattern
func (o *Matrix) At(i, j int) float64 {
	k := o.Pat.Index(i, j)
	if k < 0 {
		return 0
	}
	return o.Vals[k]
}

// Row returns the columns and values of row i (not copies)
func (o *Matrix) Row(i int) (cols []int, vals []float64) {
	a, b := o.Pat.RowPtr[i], o.Pat.RowPtr[i+1]
	return o.Pat.Cols[a:b], o.Vals[a:b]
}

// Diag fills d with the diagonal
func (o *Matrix) Diag(d []float64) {
	for i := 0; i < o.Pat.N; i++ {
		d[i] = o.Vals[o.Pat.Index(i, i)]
	}
}

// CopyFrom copies the values of a into o and starts a new generation
func (o *Matrix) CopyFrom(a *Matrix) {
	if !o.SamePattern(a) {
		chk.Panic("cannot copy matrices with different sparsity patterns")
	}
	copy(o.Vals, a.Vals)
	o.gen++
	o.dirty = true
}

// AddScaled performs o += α*a
func (o *Matrix) AddScaled(α float64, a *Matrix) {
	if !o.SamePattern(a) {
		chk.Panic("cannot add matrices with different sparsity patterns")
	}
	for k, v := range a.Vals {
		o.Vals[k] += α * v
	}
	o.dirty = true
}

// Compress converts the values into column-compressed storage. It is called automatically by the
// products; calling it beforehand makes subsequent products read-only.
func (o *Matrix) Compress() {
	if !o.dirty && o.cc != nil {
		return
	}
	n := o.Pat.N
	o.tri.Init(n, n, o.Pat.Nnz())
	o.tri.Start()
	for i := 0; i < n; i++ {
		for p := o.Pat.RowPtr[i]; p < o.Pat.RowPtr[i+1]; p++ {
			o.tri.Put(i, o.Pat.Cols[p], o.Vals[p])
		}
	}
	o.cc = o.tri.ToMatrix(nil)
	o.dirty = false
}

// CC returns the compressed matrix
func (o *Matrix) CC() *la.CCMatrix {
	o.Compress()
	return o.cc
}

// VMultAdd performs dst += o*src
func (o *Matrix) VMultAdd(dst, src []float64) {
	o.VMultAddScaled(dst, 1, src)
}

// VMultAddScaled performs dst += α*o*src
func (o *Matrix) VMultAddScaled(dst []float64, α float64, src []float64) {
	if len(dst) != o.Pat.N || len(src) != o.Pat.N {
		chk.Panic("cannot multiply %d×%d matrix: len(dst)=%d, len(src)=%d", o.Pat.N, o.Pat.N, len(dst), len(src))
	}
	o.Compress()
	la.SpMatVecMulAdd(dst, α, o.cc, src)
}

// Quad returns vᵀ·o·v using the row storage
func (o *Matrix) Quad(v []float64) (res float64) {
	for i := 0; i < o.Pat.N; i++ {
		var s float64
		for p := o.Pat.RowPtr[i]; p < o.Pat.RowPtr[i+1]; p++ {
			s += o.Vals[p] * v[o.Pat.Cols[p]]
		}
		res += v[i] * s
	}
	return
}

// MaxAsymmetry returns max |a_ij - a_ji|
func (o *Matrix) MaxAsymmetry() (res float64) {
	for i := 0; i < o.Pat.N; i++ {
		for p := o.Pat.RowPtr[i]; p < o.Pat.RowPtr[i+1]; p++ {
			d := o.Vals[p] - o.At(o.Pat.Cols[p], i)
			if d < 0 {
				d = -d
			}
			if d > res {
				res = d
			}
		}
	}
	return
}

// Print prints the matrix as a dense one; only for small matrices
func (o *Matrix) Print(format string) (l string) {
	for i := 0; i < o.Pat.N; i++ {
		for j := 0; j < o.Pat.N; j++ {
			l += io.Sf(format, o.At(i, j))
		}
		l += "\n"
	}
	return
}
