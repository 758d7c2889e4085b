// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Uniaxial implements the plane-strain solution of a block stretched along x with free lateral
// faces. The displacements are linear, thus any bilinear mesh reproduces them exactly.
//
//      y ^
//        |  free
//        ------------
//      ▷ |          | → ux = ε·(xmax - x0)
//      ▷ |  λ, μ    | →
//      ▷ |          | →
//        ------------ ---> x
//        △    △    △
type Uniaxial struct {
	λ  float64 // Lamé's first coefficient
	μ  float64 // shear modulus
	ε  float64 // prescribed strain along x
	x0 float64 // x-coordinate of fixed face
	y0 float64 // y-coordinate of fixed face
}

// Init initialises this structure
func (o *Uniaxial) Init(prms dbf.Params) {

	// default values
	o.λ = 1.0
	o.μ = 1.0
	o.ε = 0.05
	o.x0 = -1.0
	o.y0 = -1.0

	// parameters
	for _, p := range prms {
		switch p.N {
		case "lambda":
			o.λ = p.V
		case "mu":
			o.μ = p.V
		case "eps":
			o.ε = p.V
		case "x0":
			o.x0 = p.V
		case "y0":
			o.y0 = p.V
		}
	}
}

// Ratio returns the lateral contraction ratio -εy/εx = λ/(λ+2μ)
func (o *Uniaxial) Ratio() float64 {
	return o.λ / (o.λ + 2.0*o.μ)
}

// Displacement computes the displacements @ x
func (o *Uniaxial) Displacement(x []float64) (ux, uy float64) {
	ux = o.ε * (x[0] - o.x0)
	uy = -o.Ratio() * o.ε * (x[1] - o.y0)
	return
}

// Stress computes stresses (constant)
func (o *Uniaxial) Stress() (sx, sy, sz, sxy float64) {
	εx, εy := o.ε, -o.Ratio()*o.ε
	sx = (o.λ+2.0*o.μ)*εx + o.λ*εy
	sy = o.λ*εx + (o.λ+2.0*o.μ)*εy
	sz = o.λ * (εx + εy)
	return
}

// CompareDisplacement compares displacements
//  Output:
//   e -- absolute error for each component
func (o *Uniaxial) CompareDisplacement(x, u []float64, tol float64, verbose bool) (e []float64) {

	// analytical solution
	ux, uy := o.Displacement(x)

	// message
	if verbose {
		chk.PrintAnaNum("ux", tol, ux, u[0], verbose)
		chk.PrintAnaNum("uy", tol, uy, u[1], verbose)
	}

	// check displacements
	e = []float64{
		math.Abs(ux - u[0]),
		math.Abs(uy - u[1]),
	}
	return
}
