// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape structures/routines
package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// constants
const MINDET = 1.0e-14 // minimum determinant allowed for dxdR

// ShpFunc is the shape functions callback function
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Shape holds geometry data
type Shape struct {

	// geometry
	Type           string      // name; e.g. "qua4"
	Func           ShpFunc     // shape/derivs function callback function
	FaceType       string      // geometry of face; e.g. "qua4" => "lin2"
	Gndim          int         // geometry of shape; e.g. "lin2" => gnd == 1
	Nverts         int         // number of vertices in cell; e.g. "qua4" => 4
	VtkCode        int         // VTK code
	FaceNverts     int         // number of vertices on face
	FaceLocalVerts [][]int     // face local vertices [nfaces][FaceNverts]
	NatCoords      [][]float64 // natural coordinates [gndim][nverts]

	// scratchpad: volume
	S    []float64   // [nverts] shape functions
	G    [][]float64 // [nverts][gndim] G == dSdx. derivative of shape function
	J    float64     // Jacobian: determinant of dxdr
	DSdR [][]float64 // [nverts][gndim] derivatives of S w.r.t natural coordinates
	DxdR *mat.Dense  // [gndim][gndim] derivatives of real coordinates w.r.t natural coordinates
	DRdx *mat.Dense  // [gndim][gndim] dRdx == inverse(dxdR)

	// scratchpad: line
	Jvec []float64 // [ndim] dxdR for line elements
}

// GetCopy returns a new copy of this shape structure with its own scratchpad
func (o Shape) GetCopy() *Shape {
	p := Shape{
		Type:           o.Type,
		Func:           o.Func,
		FaceType:       o.FaceType,
		Gndim:          o.Gndim,
		Nverts:         o.Nverts,
		VtkCode:        o.VtkCode,
		FaceNverts:     o.FaceNverts,
		FaceLocalVerts: o.FaceLocalVerts,
		NatCoords:      o.NatCoords,
	}
	p.init_scratchpad()
	return &p
}

// factory holds all Shapes available
var factory = make(map[string]*Shape)

// Get returns an existent Shape structure
//  Note: 1) returns nil on errors
//        2) use goroutineId > 0 to get a copy
func Get(geoType string, goroutineId int) *Shape {
	s, ok := factory[geoType]
	if !ok {
		return nil
	}
	if goroutineId > 0 {
		return s.GetCopy()
	}
	return s
}

// GetFaceLocalVerts returns the local vertices of face idxface; nil if geoType is unknown
func GetFaceLocalVerts(geoType string, idxface int) []int {
	s, ok := factory[geoType]
	if !ok || idxface < 0 || idxface >= len(s.FaceLocalVerts) {
		return nil
	}
	return s.FaceLocalVerts[idxface]
}

// GetNverts returns the number of vertices of geoType or -1 if not available
func GetNverts(geoType string) int {
	if s, ok := factory[geoType]; ok {
		return s.Nverts
	}
	return -1
}

// IpRealCoords returns the real coordinates (y) of an integration point
func (o *Shape) IpRealCoords(x [][]float64, ip Ipoint) (y []float64) {
	ndim := len(x)
	y = make([]float64, ndim)
	o.Func(o.S, o.DSdR, ip.R(), false)
	for i := 0; i < ndim; i++ {
		for m := 0; m < o.Nverts; m++ {
			y[i] += o.S[m] * x[i][m]
		}
	}
	return
}

// CalcAtIp calculates volume data such as S and G at integration point ip
//  Input:
//   x[ndim][nverts] -- coordinates matrix of element
//   ip              -- integration point
//  Output:
//   S, DSdR, DxdR, DRdx, G, and J
func (o *Shape) CalcAtIp(x [][]float64, ip Ipoint, derivs bool) (err error) {
	return o.CalcAtR(x, ip.R(), derivs)
}

// CalcAtR calculates volume data such as S and G at natural coordinate r
func (o *Shape) CalcAtR(x [][]float64, r []float64, derivs bool) (err error) {

	// S and dSdR
	o.Func(o.S, o.DSdR, r, derivs)
	if !derivs {
		return
	}

	if o.Gndim == 1 {
		// calculate Jvec == dxdR
		for i := 0; i < len(x); i++ {
			o.Jvec[i] = 0.0
			for m := 0; m < o.Nverts; m++ {
				o.Jvec[i] += x[i][m] * o.DSdR[m][0]
			}
		}
		o.J = 0
		for i := 0; i < len(x); i++ {
			o.J += o.Jvec[i] * o.Jvec[i]
		}
		o.J = math.Sqrt(o.J)
		if o.J < MINDET {
			return chk.Err("length of line element is too small: J = %g", o.J)
		}
		for m := 0; m < o.Nverts; m++ {
			o.G[m][0] = o.DSdR[m][0] / o.J
		}
		return
	}

	// dxdR := sum_n x * dSdR   =>  dx_i/dR_j := sum_n x^n_i * dS^n/dR_j
	for i := 0; i < o.Gndim; i++ {
		for j := 0; j < o.Gndim; j++ {
			var sum float64
			for n := 0; n < o.Nverts; n++ {
				sum += x[i][n] * o.DSdR[n][j]
			}
			o.DxdR.Set(i, j, sum)
		}
	}

	// dRdx := inv(dxdR)
	o.J = mat.Det(o.DxdR)
	if math.Abs(o.J) < MINDET {
		return chk.Err("determinant of dxdR is too small: J = %g", o.J)
	}
	err = o.DRdx.Inverse(o.DxdR)
	if err != nil {
		return chk.Err("cannot invert dxdR:\n%v", err)
	}

	// G == dSdx := dSdR * dRdx  =>  dS^m/dx_j := sum_i dS^m/dR_i * dR_i/dx_j
	for m := 0; m < o.Nverts; m++ {
		for j := 0; j < o.Gndim; j++ {
			o.G[m][j] = 0
			for i := 0; i < o.Gndim; i++ {
				o.G[m][j] += o.DSdR[m][i] * o.DRdx.At(i, j)
			}
		}
	}
	return
}

// init_scratchpad initialise volume data (scratchpad)
func (o *Shape) init_scratchpad() {
	o.S = make([]float64, o.Nverts)
	o.DSdR = utl.Alloc(o.Nverts, o.Gndim)
	o.G = utl.Alloc(o.Nverts, o.Gndim)
	if o.Gndim == 1 {
		o.Jvec = make([]float64, 2)
		return
	}
	o.DxdR = mat.NewDense(o.Gndim, o.Gndim, nil)
	o.DRdx = mat.NewDense(o.Gndim, o.Gndim, nil)
}
