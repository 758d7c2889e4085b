// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/lamefem/lamefem/inp"

	"github.com/cpmech/gosl/chk"
)

// Ukeys holds the keys of the displacement components
var Ukeys = []string{"ux", "uy"}

// Dof holds degree-of-freedom information
type Dof struct {
	Key string // primary variable key; e.g. "ux"
	Eq  int    // equation number
}

// Node holds node dofs information
type Node struct {
	Dofs []*Dof    // degrees-of-freedom == primary variables
	Vert *inp.Vert // pointer to Vertex
}

// NewNode allocates a new Node
func NewNode(v *inp.Vert) *Node {
	return &Node{Vert: v}
}

// AddDofAndEq adds a new dof to node if it does not exist yet; returns the next equation number
func (o *Node) AddDofAndEq(ukey string, eqnum int) (nexteq int) {
	for _, d := range o.Dofs {
		if d.Key == ukey {
			return eqnum
		}
	}
	o.Dofs = append(o.Dofs, &Dof{ukey, eqnum})
	return eqnum + 1
}

// GetEq returns the equation number corresponding to ukey or -1 if not found
func (o *Node) GetEq(ukey string) (eqnum int) {
	for _, d := range o.Dofs {
		if d.Key == ukey {
			return d.Eq
		}
	}
	return -1
}

// DofHandler numbers the dofs of the vector-valued bilinear space: two dofs per vertex,
// numbered node-wise in the order vertices first appear while looping over cells
type DofHandler struct {
	Nodes    []*Node // all active nodes
	Vid2node []*Node // vertex id => node; nil if vertex is not used by any cell
	Umaps    [][]int // cell id => location array [ux0 uy0 ux1 uy1 ...]
	Ndofs    int     // total number of dofs
}

// NewDofHandler numbers the dofs of all cells in msh
func NewDofHandler(msh *inp.Mesh) (o *DofHandler, err error) {
	if msh == nil || len(msh.Cells) == 0 {
		return nil, chk.Err("cannot number dofs of an empty mesh")
	}
	o = new(DofHandler)
	o.Vid2node = make([]*Node, len(msh.Verts))
	o.Umaps = make([][]int, len(msh.Cells))
	ndim := len(Ukeys)
	var eq int
	for _, cell := range msh.Cells {
		for _, v := range cell.Verts {
			nod := o.Vid2node[v]
			if nod == nil {
				nod = NewNode(msh.Verts[v])
				o.Vid2node[v] = nod
				o.Nodes = append(o.Nodes, nod)
			}
			for _, ukey := range Ukeys {
				eq = nod.AddDofAndEq(ukey, eq)
			}
		}
		umap := make([]int, len(cell.Verts)*ndim)
		for m, v := range cell.Verts {
			for i, ukey := range Ukeys {
				umap[i+m*ndim] = o.Vid2node[v].GetEq(ukey)
			}
		}
		o.Umaps[cell.Id] = umap
	}
	o.Ndofs = eq
	return
}

// VertValues returns the values of ukey at every vertex; zero at vertices without dofs
func (o *DofHandler) VertValues(v []float64, ukey string) (res []float64) {
	res = make([]float64, len(o.Vid2node))
	for vid, nod := range o.Vid2node {
		if nod == nil {
			continue
		}
		if eq := nod.GetEq(ukey); eq >= 0 {
			res[vid] = v[eq]
		}
	}
	return
}
