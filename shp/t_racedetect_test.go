// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_race01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("race01. copies of qua4 used concurrently")

	nchan := 4
	done := make(chan float64, nchan)

	base := Get("qua4", 0)
	shapes := make([]*Shape, nchan)
	for i := 0; i < nchan; i++ {
		shapes[i] = base.GetCopy()
	}
	io.Pforan("shapes = %v\n", shapes)

	x := [][]float64{
		{0, 2, 2, 0},
		{0, 0, 1, 1},
	}
	for i := 0; i < nchan; i++ {
		go func(shape *Shape, r float64) {
			shape.CalcAtR(x, []float64{r, -r}, true)
			done <- shape.J
		}(shapes[i], 0.1*float64(i))
	}

	for i := 0; i < nchan; i++ {
		chk.Float64(tst, "J", 1e-15, <-done, 0.5)
	}
}
