// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/lamefem/lamefem/shp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Vert holds vertex data
type Vert struct {
	Id  int       `json:"id"`  // id
	Tag int       `json:"tag"` // tag
	C   []float64 `json:"c"`   // coordinates (size==2)
}

// Cell holds cell data
type Cell struct {

	// input data
	Id    int    `json:"id"`    // id
	Tag   int    `json:"tag"`   // tag
	Type  string `json:"type"`  // geometry type (string); only "qua4"
	Verts []int  `json:"verts"` // vertices
	FTags []int  `json:"ftags"` // edge tags

	// neighbours
	Neighs []int `json:"-"` // neighbours; e.g. [3, 7, -1, 11] => side:cid => 0:3, 1:7, 2:-1(no cell), 3:11

	// derived
	Shp *shp.Shape `json:"-"` // shape structure
}

// CellFaceId structure
type CellFaceId struct {
	C   *Cell // cell
	Fid int   // face id
}

// Mesh holds a mesh for FE analyses
type Mesh struct {

	// from JSON
	Verts []*Vert `json:"verts"` // vertices
	Cells []*Cell `json:"cells"` // cells

	// derived
	FnamePath  string  `json:"-"` // complete filename path
	Ndim       int     `json:"-"` // space dimension
	Xmin, Xmax float64 `json:"-"` // min and max x-coordinate
	Ymin, Ymax float64 `json:"-"` // min and max y-coordinate

	// derived: maps
	VertTag2verts map[int][]*Vert      `json:"-"` // vertex tag => set of vertices
	CellTag2cells map[int][]*Cell      `json:"-"` // cell tag => set of cells
	FaceTag2cells map[int][]CellFaceId `json:"-"` // face tag => set of cells
	FaceTag2verts map[int][]int        `json:"-"` // face tag => vertices on tagged face
	BryFaces      []CellFaceId         `json:"-"` // faces without neighbours
	BryVerts      []int                `json:"-"` // vertices on faces without neighbours (sorted)
}

// ReadMsh reads a mesh for FE analyses
func ReadMsh(dir, fn string) (o *Mesh, err error) {

	// read file
	o = new(Mesh)
	o.FnamePath = filepath.Join(dir, fn)
	b, err := os.ReadFile(o.FnamePath)
	if err != nil {
		return nil, chk.Err("cannot read mesh file %q:\n%v", o.FnamePath, err)
	}

	// decode
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot decode mesh file %q:\n%v", o.FnamePath, err)
	}

	// derived data
	err = o.Init()
	if err != nil {
		return nil, chk.Err("mesh file %q is invalid:\n%v", o.FnamePath, err)
	}
	return
}

// Init checks the mesh and computes derived data such as maps, limits and neighbours
func (o *Mesh) Init() (err error) {

	// check
	if len(o.Verts) < 3 {
		return chk.Err("mesh must have at least 3 vertices; %d is invalid", len(o.Verts))
	}
	if len(o.Cells) < 1 {
		return chk.Err("mesh must have at least 1 cell")
	}

	// vertex related derived data
	o.Ndim = 2
	o.Xmin, o.Xmax = math.Inf(1), math.Inf(-1)
	o.Ymin, o.Ymax = math.Inf(1), math.Inf(-1)
	o.VertTag2verts = make(map[int][]*Vert)
	for i, v := range o.Verts {

		// check vertex id and coordinates
		if v.Id != i {
			return chk.Err("vertex ids must be sequential: vertex %d has id %d", i, v.Id)
		}
		if len(v.C) != 2 {
			return chk.Err("vertex %d must have 2 coordinates; %d is invalid", i, len(v.C))
		}

		// tags
		if v.Tag < 0 {
			o.VertTag2verts[v.Tag] = append(o.VertTag2verts[v.Tag], v)
		}

		// limits
		o.Xmin = math.Min(o.Xmin, v.C[0])
		o.Xmax = math.Max(o.Xmax, v.C[0])
		o.Ymin = math.Min(o.Ymin, v.C[1])
		o.Ymax = math.Max(o.Ymax, v.C[1])
	}

	// cell related derived data
	o.CellTag2cells = make(map[int][]*Cell)
	o.FaceTag2cells = make(map[int][]CellFaceId)
	o.FaceTag2verts = make(map[int][]int)
	edges := make(map[edgeKey][]CellFaceId)
	for i, c := range o.Cells {

		// check id, type and vertices
		if c.Id != i {
			return chk.Err("cell ids must be sequential: cell %d has id %d", i, c.Id)
		}
		c.Shp = shp.Get(c.Type, 0)
		if c.Shp == nil || c.Shp.Gndim != 2 {
			return chk.Err("cell %d has unsupported type %q", i, c.Type)
		}
		if len(c.Verts) != c.Shp.Nverts {
			return chk.Err("cell %d must have %d vertices; %d is invalid", i, c.Shp.Nverts, len(c.Verts))
		}
		for _, v := range c.Verts {
			if v < 0 || v >= len(o.Verts) {
				return chk.Err("cell %d references vertex %d which does not exist", i, v)
			}
		}
		nfaces := len(c.Shp.FaceLocalVerts)
		if len(c.FTags) == 0 {
			c.FTags = make([]int, nfaces)
		}
		if len(c.FTags) != nfaces {
			return chk.Err("cell %d must have %d face tags; %d is invalid", i, nfaces, len(c.FTags))
		}

		// cell tags
		o.CellTag2cells[c.Tag] = append(o.CellTag2cells[c.Tag], c)

		// face tags and edges
		for j, ftag := range c.FTags {
			lverts := c.Shp.FaceLocalVerts[j]
			a, b := c.Verts[lverts[0]], c.Verts[lverts[1]]
			if ftag < 0 {
				o.FaceTag2cells[ftag] = append(o.FaceTag2cells[ftag], CellFaceId{c, j})
				o.FaceTag2verts[ftag] = append(o.FaceTag2verts[ftag], a, b)
			}
			key := newEdgeKey(a, b)
			edges[key] = append(edges[key], CellFaceId{c, j})
		}
	}

	// remove duplicates
	for ftag, verts := range o.FaceTag2verts {
		o.FaceTag2verts[ftag] = utl.IntUnique(verts)
	}

	// neighbours and boundary
	for _, c := range o.Cells {
		c.Neighs = make([]int, len(c.FTags))
	}
	o.BryFaces = nil
	var bry []int
	for _, c := range o.Cells {
		for j := range c.FTags {
			lverts := c.Shp.FaceLocalVerts[j]
			a, b := c.Verts[lverts[0]], c.Verts[lverts[1]]
			pairs := edges[newEdgeKey(a, b)]
			switch len(pairs) {
			case 1:
				c.Neighs[j] = -1
				o.BryFaces = append(o.BryFaces, CellFaceId{c, j})
				bry = append(bry, a, b)
			case 2:
				other := pairs[0]
				if other.C == c {
					other = pairs[1]
				}
				c.Neighs[j] = other.C.Id
			default:
				return chk.Err("edge (%d,%d) is shared by %d cells", a, b, len(pairs))
			}
		}
	}
	o.BryVerts = utl.IntUnique(bry)
	return
}

// CellCoords returns the coordinate matrix of a particular Cell [ndim][nverts]
func (o *Mesh) CellCoords(c *Cell) (x [][]float64) {
	x = make([][]float64, o.Ndim)
	for i := 0; i < o.Ndim; i++ {
		x[i] = make([]float64, len(c.Verts))
		for j, v := range c.Verts {
			x[i][j] = o.Verts[v].C[i]
		}
	}
	return
}

// Centroid returns the average of the vertices of cell c
func (o *Mesh) Centroid(c *Cell) (y []float64) {
	y = make([]float64, o.Ndim)
	for _, v := range c.Verts {
		for i := 0; i < o.Ndim; i++ {
			y[i] += o.Verts[v].C[i]
		}
	}
	for i := 0; i < o.Ndim; i++ {
		y[i] /= float64(len(c.Verts))
	}
	return
}

// String returns a JSON representation of *Vert
func (o *Vert) String() string {
	l := io.Sf("{\"id\":%4d, \"tag\":%6d, \"c\":[", o.Id, o.Tag)
	for i, x := range o.C {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%23.15e", x)
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Cell
func (o *Cell) String() string {
	l := io.Sf("{\"id\":%d, \"tag\":%d, \"type\":%q, \"verts\":[", o.Id, o.Tag, o.Type)
	for i, x := range o.Verts {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%d", x)
	}
	l += "], \"ftags\":["
	for i, x := range o.FTags {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%d", x)
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Mesh
func (o Mesh) String() string {
	l := "{\n  \"verts\" : [\n"
	for i, x := range o.Verts {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ],\n  \"cells\" : [\n"
	for i, x := range o.Cells {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ]\n}"
	return l
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// edgeKey identifies an edge by its sorted vertices
type edgeKey struct{ a, b int }

func newEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}
