// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// register shapes
func init() {

	// lin2
	lin2 := &Shape{
		Type:       "lin2",
		Func:       Lin2,
		Gndim:      1,
		Nverts:     2,
		VtkCode:    VTK_LINE,
		FaceNverts: 1,
		NatCoords: [][]float64{
			{-1, 1},
		},
		FaceLocalVerts: [][]int{{0}, {1}},
	}
	lin2.init_scratchpad()
	factory["lin2"] = lin2

	// qua4
	qua4 := &Shape{
		Type:       "qua4",
		Func:       Qua4,
		FaceType:   "lin2",
		Gndim:      2,
		Nverts:     4,
		VtkCode:    VTK_QUAD,
		FaceNverts: 2,
		NatCoords: [][]float64{
			{-1, 1, 1, -1},
			{-1, -1, 1, 1},
		},
		FaceLocalVerts: [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}},
	}
	qua4.init_scratchpad()
	factory["qua4"] = qua4
}

// VTK codes
const (
	VTK_LINE = 3
	VTK_QUAD = 9
)

// Lin2 calculates the shape functions (S) and derivatives of shape functions (dSdR) of lin2
// elements at {r} natural coordinates.
//
//   -1     0    +1
//    0-----------1-->r
func Lin2(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	S[0] = 0.5 * (1.0 - r[0])
	S[1] = 0.5 * (1.0 + r[0])
	if !derivs {
		return
	}
	dSdR[0][0] = -0.5
	dSdR[1][0] = 0.5
}

// Qua4 calculates the shape functions (S) and derivatives of shape functions (dSdR) of qua4
// elements at {r,s} natural coordinates.
//
//    3-----------2
//    |     s     |
//    |     |     |
//    |     +--r  |
//    |           |
//    |           |
//    0-----------1
func Qua4(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	S[0] = (1.0 - r[0] - r[1] + r[0]*r[1]) / 4.0
	S[1] = (1.0 + r[0] - r[1] - r[0]*r[1]) / 4.0
	S[2] = (1.0 + r[0] + r[1] + r[0]*r[1]) / 4.0
	S[3] = (1.0 - r[0] + r[1] - r[0]*r[1]) / 4.0
	if !derivs {
		return
	}
	dSdR[0][0] = (-1.0 + r[1]) / 4.0
	dSdR[0][1] = (-1.0 + r[0]) / 4.0
	dSdR[1][0] = (+1.0 - r[1]) / 4.0
	dSdR[1][1] = (-1.0 - r[0]) / 4.0
	dSdR[2][0] = (+1.0 + r[1]) / 4.0
	dSdR[2][1] = (+1.0 + r[0]) / 4.0
	dSdR[3][0] = (-1.0 - r[1]) / 4.0
	dSdR[3][1] = (+1.0 - r[0]) / 4.0
}
