// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sparse implements sparsity patterns and matrices sharing them
package sparse

import (
	"sort"

	"github.com/cpmech/gosl/chk"
)

// Pattern holds the set of (row, column) pairs that may be non-zero in compressed-row form.
// Columns are sorted within each row and every diagonal entry is present.
type Pattern struct {
	N      int   // number of rows == number of columns
	RowPtr []int // [N+1] start of each row in Cols
	Cols   []int // [Nnz] column indices
}

// PatternBuilder collects couplings before compressing them into a Pattern
type PatternBuilder struct {
	n    int
	rows []map[int]bool
}

// NewPatternBuilder returns a builder for an n×n pattern
func NewPatternBuilder(n int) *PatternBuilder {
	if n < 1 {
		chk.Panic("pattern size must be positive; %d is invalid", n)
	}
	o := &PatternBuilder{n: n, rows: make([]map[int]bool, n)}
	for i := 0; i < n; i++ {
		o.rows[i] = map[int]bool{i: true}
	}
	return o
}

// Add couples row i and column j
func (o *PatternBuilder) Add(i, j int) {
	if i < 0 || i >= o.n || j < 0 || j >= o.n {
		chk.Panic("entry (%d,%d) is outside %d×%d pattern", i, j, o.n, o.n)
	}
	o.rows[i][j] = true
}

// AddDense couples all pairs of dofs; e.g. the location array of an element
func (o *PatternBuilder) AddDense(dofs []int) {
	for _, i := range dofs {
		for _, j := range dofs {
			o.Add(i, j)
		}
	}
}

// Build compresses the collected couplings
func (o *PatternBuilder) Build() (p *Pattern) {
	p = &Pattern{N: o.n, RowPtr: make([]int, o.n+1)}
	for i, row := range o.rows {
		p.RowPtr[i+1] = p.RowPtr[i] + len(row)
	}
	p.Cols = make([]int, 0, p.RowPtr[o.n])
	for _, row := range o.rows {
		start := len(p.Cols)
		for j := range row {
			p.Cols = append(p.Cols, j)
		}
		sort.Ints(p.Cols[start:])
	}
	return
}

// Nnz returns the number of entries in the pattern
func (o *Pattern) Nnz() int {
	return o.RowPtr[o.N]
}

// Index returns the position of (i,j) in Cols or -1 if not in pattern
func (o *Pattern) Index(i, j int) int {
	if i < 0 || i >= o.N {
		return -1
	}
	cols := o.Cols[o.RowPtr[i]:o.RowPtr[i+1]]
	k := sort.SearchInts(cols, j)
	if k < len(cols) && cols[k] == j {
		return o.RowPtr[i] + k
	}
	return -1
}

// IsSymmetric tells whether (i,j) in pattern implies (j,i) in pattern
func (o *Pattern) IsSymmetric() bool {
	for i := 0; i < o.N; i++ {
		for p := o.RowPtr[i]; p < o.RowPtr[i+1]; p++ {
			if o.Index(o.Cols[p], i) < 0 {
				return false
			}
		}
	}
	return true
}
