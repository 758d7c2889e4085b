// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
)

// face tags of box meshes
const (
	TagXmin = -10 // face at x == xmin
	TagXmax = -11 // face at x == xmax
	TagYmin = -20 // face at y == ymin
	TagYmax = -21 // face at y == ymax
)

// NewBoxMesh returns a mesh with a single qua4 cell covering [xmin,xmax]×[ymin,ymax]
//
//   3-----(-21)-----2
//   |               |
// (-10)    -1     (-11)
//   |               |
//   0-----(-20)-----1
func NewBoxMesh(xmin, xmax, ymin, ymax float64) (o *Mesh, err error) {
	if xmax <= xmin || ymax <= ymin {
		return nil, chk.Err("box limits are invalid: x=[%g,%g] y=[%g,%g]", xmin, xmax, ymin, ymax)
	}
	o = &Mesh{
		Verts: []*Vert{
			{Id: 0, Tag: -1, C: []float64{xmin, ymin}},
			{Id: 1, Tag: -2, C: []float64{xmax, ymin}},
			{Id: 2, Tag: -3, C: []float64{xmax, ymax}},
			{Id: 3, Tag: -4, C: []float64{xmin, ymax}},
		},
		Cells: []*Cell{
			{Id: 0, Tag: -1, Type: "qua4", Verts: []int{0, 1, 2, 3}, FTags: []int{TagYmin, TagXmax, TagYmax, TagXmin}},
		},
	}
	err = o.Init()
	return
}

// Refine splits each qua4 cell into four children. Vertices at edge midpoints are shared by
// neighbouring cells. Children keep the cell tag and inherit the face tags of outer faces.
//
//   3-----m2------2
//   |  c3  |  c2  |
//   m3-----c------m1
//   |  c0  |  c1  |
//   0-----m0------1
func (o *Mesh) Refine() (err error) {

	// new vertex with coordinates average of vertices in ids
	verts := o.Verts
	newVert := func(ids ...int) int {
		c := make([]float64, 2)
		for _, id := range ids {
			c[0] += verts[id].C[0]
			c[1] += verts[id].C[1]
		}
		c[0] /= float64(len(ids))
		c[1] /= float64(len(ids))
		v := &Vert{Id: len(verts), C: c}
		verts = append(verts, v)
		return v.Id
	}

	// split
	mids := make(map[edgeKey]int)
	cells := make([]*Cell, 0, 4*len(o.Cells))
	for _, c := range o.Cells {
		if c.Type != "qua4" {
			return chk.Err("cannot refine cell %d with type %q", c.Id, c.Type)
		}
		var m [4]int
		for j := 0; j < 4; j++ {
			a, b := c.Verts[j], c.Verts[(j+1)%4]
			key := newEdgeKey(a, b)
			id, ok := mids[key]
			if !ok {
				id = newVert(a, b)
				mids[key] = id
			}
			m[j] = id
		}
		ctr := newVert(c.Verts...)
		v, f := c.Verts, c.FTags
		children := [][2][]int{
			{{v[0], m[0], ctr, m[3]}, {f[0], 0, 0, f[3]}},
			{{m[0], v[1], m[1], ctr}, {f[0], f[1], 0, 0}},
			{{ctr, m[1], v[2], m[2]}, {0, f[1], f[2], 0}},
			{{m[3], ctr, m[2], v[3]}, {0, 0, f[2], f[3]}},
		}
		for _, ch := range children {
			cells = append(cells, &Cell{Id: len(cells), Tag: c.Tag, Type: c.Type, Verts: ch[0], FTags: ch[1]})
		}
	}
	o.Verts = verts
	o.Cells = cells
	return o.Init()
}

// RefineGlobal calls Refine nsteps times
func (o *Mesh) RefineGlobal(nsteps int) (err error) {
	if nsteps < 0 {
		return chk.Err("number of refinement steps must be non-negative; %d is invalid", nsteps)
	}
	for i := 0; i < nsteps; i++ {
		err = o.Refine()
		if err != nil {
			return
		}
	}
	return
}
