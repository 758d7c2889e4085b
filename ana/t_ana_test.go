// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_uniaxial01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("uniaxial01")

	var sol Uniaxial
	sol.Init([]*dbf.P{
		&dbf.P{N: "lambda", V: 2.0},
		&dbf.P{N: "mu", V: 0.5},
		&dbf.P{N: "eps", V: 0.1},
	})
	chk.Float64(tst, "ratio", 1e-15, sol.Ratio(), 2.0/3.0)

	// fixed corner
	ux, uy := sol.Displacement([]float64{-1, -1})
	chk.Float64(tst, "ux(x0,y0)", 1e-17, ux, 0)
	chk.Float64(tst, "uy(x0,y0)", 1e-17, uy, 0)

	// opposite corner
	ux, uy = sol.Displacement([]float64{1, 1})
	chk.Float64(tst, "ux(1,1)", 1e-15, ux, 0.2)
	chk.Float64(tst, "uy(1,1)", 1e-15, uy, -0.2*2.0/3.0)

	// lateral faces are free
	sx, sy, sz, sxy := sol.Stress()
	io.Pforan("σ = %v %v %v %v\n", sx, sy, sz, sxy)
	chk.Float64(tst, "σy", 1e-15, sy, 0)
	chk.Float64(tst, "σxy", 1e-15, sxy, 0)
	chk.Float64(tst, "σx", 1e-15, sx, 3.0*0.1-2.0*0.1*2.0/3.0)
	chk.Float64(tst, "σz", 1e-15, sz, 2.0*(0.1-0.1*2.0/3.0))

	// comparison
	e := sol.CompareDisplacement([]float64{0, 0}, []float64{0.1, -0.1 * 2.0 / 3.0}, 1e-15, chk.Verbose)
	chk.Array(tst, "errors", 1e-15, e, []float64{0, 0})
}
