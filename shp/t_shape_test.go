// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_shape01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape01. nodal values and dSdR")

	r := []float64{0.3, -0.2}
	for name, shape := range factory {
		io.Pforan("--------------------------------- %-6s---------------------------------\n", name)
		CheckShape(tst, shape, 1e-15, chk.Verbose)
		CheckDSdR(tst, shape, r, 1e-9, chk.Verbose)
	}
}

func Test_shape02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape02. qua4 mapping: area, partition of unity and G")

	xmat := [][]float64{
		{10, 13, 13, 10},
		{8, 8, 9, 9},
	}
	dx, dy := 3.0, 1.0

	shape := Get("qua4", 1)
	if shape == nil {
		tst.Errorf("cannot get qua4")
		return
	}
	ips, err := GetIps("qua4", 0)
	if err != nil {
		tst.Errorf("GetIps failed:\n%v", err)
		return
	}
	chk.Int(tst, "nip", len(ips), 4)

	var area float64
	for _, ip := range ips {
		err = shape.CalcAtIp(xmat, ip, true)
		if err != nil {
			tst.Errorf("CalcAtIp failed:\n%v", err)
			return
		}
		area += shape.J * ip.W
		var sum, sumGx, sumGy float64
		for m := 0; m < shape.Nverts; m++ {
			sum += shape.S[m]
			sumGx += shape.G[m][0]
			sumGy += shape.G[m][1]
		}
		chk.Float64(tst, "ΣS", 1e-15, sum, 1)
		chk.Float64(tst, "ΣGx", 1e-15, sumGx, 0)
		chk.Float64(tst, "ΣGy", 1e-15, sumGy, 0)
		chk.Float64(tst, "J", 1e-15, shape.J, dx*dy/4.0)
	}
	chk.Float64(tst, "area", 1e-14, area, dx*dy)

	CheckDSdx(tst, shape, xmat, []float64{11.2, 8.7}, 1e-6, chk.Verbose)
}

func Test_shape03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape03. inverse mapping of distorted qua4")

	xmat := [][]float64{
		{0, 2, 2.5, -0.2},
		{0, 0.1, 1.8, 1.5},
	}
	shape := Get("qua4", 1)
	rIn := []float64{0.25, -0.6}
	y := shape.IpRealCoords(xmat, Ipoint{X: [2]float64{rIn[0], rIn[1]}})

	r := make([]float64, 2)
	err := shape.InvMap(r, y, xmat)
	if err != nil {
		tst.Errorf("InvMap failed:\n%v", err)
		return
	}
	chk.Array(tst, "r", 1e-10, r, rIn)
	if !shape.IsInsideNat(r, 1e-12) {
		tst.Errorf("point should be inside")
	}
	if shape.IsInsideNat([]float64{1.1, 0}, 1e-12) {
		tst.Errorf("point should be outside")
	}
}

func Test_ips01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ips01. Gauss points")

	for _, nip := range []int{1, 4, 9} {
		ips, err := GetIps("qua4", nip)
		if err != nil {
			tst.Errorf("GetIps failed:\n%v", err)
			return
		}
		chk.Int(tst, "nip", len(ips), nip)

		// integrate x²y² over [-1,1]² exactly with 4 and 9 points
		var sumW, sumF float64
		for _, ip := range ips {
			sumW += ip.W
			sumF += ip.W * ip.X[0] * ip.X[0] * ip.X[1] * ip.X[1]
		}
		chk.Float64(tst, "ΣW", 1e-15, sumW, 4)
		if nip > 1 {
			chk.Float64(tst, "∫x²y²", 1e-15, sumF, 4.0/9.0)
		}
	}

	ips, err := GetIps("lin2", 3)
	if err != nil {
		tst.Errorf("GetIps failed:\n%v", err)
		return
	}
	var sumF float64
	for _, ip := range ips {
		sumF += ip.W * math.Pow(ip.X[0], 4)
	}
	chk.Float64(tst, "∫x⁴", 1e-15, sumF, 2.0/5.0)

	_, err = GetIps("qua4", 5)
	if err == nil {
		tst.Errorf("nip=5 should fail")
	}
	_, err = GetIps("tri3", 3)
	if err == nil {
		tst.Errorf("tri3 should fail")
	}
}
