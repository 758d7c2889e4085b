// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"sort"

	"github.com/lamefem/lamefem/sparse"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Entry holds one term w·x_j of a constraint line
type Entry struct {
	J int     // target dof
	W float64 // weight
}

// Line holds the affine relation x_i = Σ_j W_j·x_j + K
type Line struct {
	I       int     // constrained dof
	Entries []Entry // targets; sorted by J after Close
	K       float64 // inhomogeneity
}

// Constraints holds affine constraints among dofs; e.g. essential boundary conditions (no entries)
// or hanging nodes (entries). After Close, no line references another constrained dof.
type Constraints struct {
	n      int
	lines  map[int]*Line
	closed bool
}

// NewConstraints returns an empty set of constraints over n dofs
func NewConstraints(n int) *Constraints {
	return &Constraints{n: n, lines: make(map[int]*Line)}
}

// AddLine constrains dof i; no-op if i is already constrained
func (o *Constraints) AddLine(i int) {
	o.checkOpen(i)
	if _, ok := o.lines[i]; !ok {
		o.lines[i] = &Line{I: i}
	}
}

// AddEntry adds w·x_j to line i
func (o *Constraints) AddEntry(i, j int, w float64) {
	o.checkOpen(i)
	line, ok := o.lines[i]
	if !ok {
		chk.Panic("dof %d is not constrained; call AddLine first", i)
	}
	if j < 0 || j >= o.n || j == i {
		chk.Panic("target dof %d of line %d is invalid", j, i)
	}
	line.Entries = append(line.Entries, Entry{j, w})
}

// SetInhomogeneity sets the constant term of line i
func (o *Constraints) SetInhomogeneity(i int, k float64) {
	o.checkOpen(i)
	line, ok := o.lines[i]
	if !ok {
		chk.Panic("dof %d is not constrained; call AddLine first", i)
	}
	line.K = k
}

// Close resolves chains of constrained targets and sorts entries. Cycles are errors.
func (o *Constraints) Close() (err error) {
	if o.closed {
		return
	}
	const (
		white = iota // not visited
		grey         // being resolved
		black        // resolved
	)
	state := make(map[int]int, len(o.lines))
	var resolve func(line *Line) error
	resolve = func(line *Line) error {
		switch state[line.I] {
		case black:
			return nil
		case grey:
			return chk.Err("constraints have a cycle through dof %d", line.I)
		}
		state[line.I] = grey
		acc := make(map[int]float64)
		k := line.K
		for _, e := range line.Entries {
			target, ok := o.lines[e.J]
			if !ok {
				acc[e.J] += e.W
				continue
			}
			if err := resolve(target); err != nil {
				return err
			}
			for _, t := range target.Entries {
				acc[t.J] += e.W * t.W
			}
			k += e.W * target.K
		}
		line.Entries = line.Entries[:0]
		for j, w := range acc {
			if w != 0 {
				line.Entries = append(line.Entries, Entry{j, w})
			}
		}
		sort.Slice(line.Entries, func(a, b int) bool { return line.Entries[a].J < line.Entries[b].J })
		line.K = k
		state[line.I] = black
		return nil
	}
	for _, i := range o.Indices() {
		if err = resolve(o.lines[i]); err != nil {
			return
		}
	}
	o.closed = true
	return
}

// IsConstrained tells whether dof i is constrained
func (o *Constraints) IsConstrained(i int) bool {
	_, ok := o.lines[i]
	return ok
}

// NConstrained returns the number of constrained dofs
func (o *Constraints) NConstrained() int {
	return len(o.lines)
}

// Indices returns the sorted constrained dofs
func (o *Constraints) Indices() (res []int) {
	res = make([]int, 0, len(o.lines))
	for i := range o.lines {
		res = append(res, i)
	}
	sort.Ints(res)
	return
}

// GetLine returns line i or nil if i is not constrained
func (o *Constraints) GetLine(i int) *Line {
	return o.lines[i]
}

// Distribute sets every constrained entry of v from its line
func (o *Constraints) Distribute(v []float64) {
	o.checkClosed()
	for i, line := range o.lines {
		v[i] = line.value(v)
	}
}

// SetInitial writes the inhomogeneities into v
func (o *Constraints) SetInitial(v []float64) {
	for i, line := range o.lines {
		v[i] = line.K
	}
}

// MaxViolation returns max |x_i - Σ w·x_j - k_i|
func (o *Constraints) MaxViolation(v []float64) (res float64) {
	for i, line := range o.lines {
		res = math.Max(res, math.Abs(v[i]-line.value(v)))
	}
	return
}

// value computes Σ W·v_j + K
func (o *Line) value(v []float64) (res float64) {
	res = o.K
	for _, e := range o.Entries {
		res += e.W * v[e.J]
	}
	return
}

// condensation ////////////////////////////////////////////////////////////////////////////////////

// expand returns the unconstrained dofs that dof I is made of
func (o *Constraints) expand(I int) (ents []Entry, k float64, constrained bool) {
	if line, ok := o.lines[I]; ok {
		return line.Entries, line.K, true
	}
	return []Entry{{I, 1}}, 0, false
}

// addToPattern couples all dofs that the location array umap is made of
func (o *Constraints) addToPattern(pb *sparse.PatternBuilder, umap []int) {
	var dofs []int
	for _, I := range umap {
		ents, _, _ := o.expand(I)
		for _, e := range ents {
			dofs = append(dofs, e.J)
		}
	}
	pb.AddDense(dofs)
}

// distributeLocal adds α·K into A while eliminating constrained dofs: entries of constrained rows
// and columns go to the targets of their lines and, if b != nil, the inhomogeneities are moved to
// the right-hand side. If keepDiag is true, each constrained diagonal receives |α·K_ii| and the
// corresponding entry of b receives |α·K_ii|·k_i; otherwise constrained rows stay empty.
func (o *Constraints) distributeLocal(A *sparse.Matrix, b []float64, K *mat.Dense, α float64, umap []int, keepDiag bool) {
	o.checkClosed()
	for a, I := range umap {
		entsA, kA, consA := o.expand(I)
		for c, J := range umap {
			Kac := α * K.At(a, c)
			if Kac == 0 {
				continue
			}
			entsC, kC, consC := o.expand(J)
			for _, ea := range entsA {
				for _, ec := range entsC {
					A.Add(ea.J, ec.J, ea.W*ec.W*Kac)
				}
				if b != nil && consC && kC != 0 {
					b[ea.J] -= ea.W * Kac * kC
				}
			}
		}
		if consA && keepDiag {
			d := math.Abs(α * K.At(a, a))
			A.Add(I, I, d)
			if b != nil {
				b[I] += d * kA
			}
		}
	}
}

// distributeLocalVector adds the local vector f into b; entries of constrained dofs go to the
// targets of their lines
func (o *Constraints) distributeLocalVector(b, f []float64, umap []int) {
	o.checkClosed()
	for a, I := range umap {
		ents, _, _ := o.expand(I)
		for _, e := range ents {
			b[e.J] += e.W * f[a]
		}
	}
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func (o *Constraints) checkOpen(i int) {
	if o.closed {
		chk.Panic("constraints are closed and cannot be modified")
	}
	if i < 0 || i >= o.n {
		chk.Panic("dof %d is out of range [0,%d)", i, o.n)
	}
}

func (o *Constraints) checkClosed() {
	if !o.closed {
		chk.Panic("constraints must be closed first")
	}
}
