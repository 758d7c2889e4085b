// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/lamefem/lamefem/inp"

	"github.com/cpmech/gosl/chk"
)

// Source computes the body force (right-hand side) at a point
type Source interface {
	Value(f, x []float64) // f := b(x)
}

// TwoCircles is a unit body force acting inside three circles of radius R: along x inside the
// circles centred at (±0.5, 0) and along y inside the circle centred at the origin
type TwoCircles struct {
	R float64 // radius; 0 => 0.2
}

// Value computes the body force at x
func (o TwoCircles) Value(f, x []float64) {
	r := o.R
	if r == 0 {
		r = 0.2
	}
	rr := r * r
	d2 := func(cx, cy float64) float64 {
		return (x[0]-cx)*(x[0]-cx) + (x[1]-cy)*(x[1]-cy)
	}
	f[0], f[1] = 0, 0
	if d2(0.5, 0) < rr || d2(-0.5, 0) < rr {
		f[0] = 1
	}
	if d2(0, 0) < rr {
		f[1] = 1
	}
}

// Constant is a uniform body force
type Constant struct {
	Bx, By float64
}

// Value computes the body force at x
func (o Constant) Value(f, x []float64) {
	f[0], f[1] = o.Bx, o.By
}

// NewSource returns the source defined in dat
func NewSource(dat *inp.SourceData) (Source, error) {
	switch dat.Type {
	case "", "circles":
		return TwoCircles{}, nil
	case "constant":
		return Constant{dat.Bx, dat.By}, nil
	}
	return nil, chk.Err("source type %q is not available", dat.Type)
}
