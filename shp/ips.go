// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Ipoint holds the natural coordinates and the weight of an integration point
type Ipoint struct {
	X [2]float64 // natural coordinates
	W float64    // weight
}

// R returns the natural coordinates as a slice
func (o Ipoint) R() []float64 {
	return []float64{o.X[0], o.X[1]}
}

// gauss1d holds Gauss-Legendre points and weights on [-1,1] with n = 1, 2, 3 points
var gauss1d = map[int][2][]float64{
	1: {{0}, {2}},
	2: {{-1.0 / math.Sqrt(3.0), 1.0 / math.Sqrt(3.0)}, {1, 1}},
	3: {{-math.Sqrt(0.6), 0, math.Sqrt(0.6)}, {5.0 / 9.0, 8.0 / 9.0, 5.0 / 9.0}},
}

// GetIps returns the integration points of a shape
//  geoType -- "lin2" or "qua4"
//  nip     -- number of points; 0 means default. lin2: {1,2,3}; qua4: {1,4,9}
func GetIps(geoType string, nip int) (ips []Ipoint, err error) {
	switch geoType {
	case "lin2":
		if nip == 0 {
			nip = 2
		}
		g, ok := gauss1d[nip]
		if !ok {
			return nil, chk.Err("cannot find integration points for %q with nip=%d", geoType, nip)
		}
		for i, x := range g[0] {
			ips = append(ips, Ipoint{X: [2]float64{x, 0}, W: g[1][i]})
		}
	case "qua4":
		if nip == 0 {
			nip = 4
		}
		n := int(math.Round(math.Sqrt(float64(nip))))
		g, ok := gauss1d[n]
		if !ok || n*n != nip {
			return nil, chk.Err("cannot find integration points for %q with nip=%d", geoType, nip)
		}
		for j, y := range g[0] {
			for i, x := range g[0] {
				ips = append(ips, Ipoint{X: [2]float64{x, y}, W: g[1][i] * g[1][j]})
			}
		}
	default:
		return nil, chk.Err("cannot find integration points for shape %q", geoType)
	}
	return
}
