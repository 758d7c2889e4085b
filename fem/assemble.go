// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/lamefem/lamefem/inp"
	"github.com/lamefem/lamefem/shp"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// ipData holds geometry at an integration point
type ipData struct {
	S    []float64 // [nverts] shape functions
	X    []float64 // [ndim] real coordinates
	Coef float64   // |J|·weight
}

// cellData holds the fixed geometry of a cell and its local matrices computed with unit
// coefficients; assembly only scales them by the coefficients of the cell's region
type cellData struct {
	Cell   *inp.Cell   // cell
	Umap   []int       // location array
	Region int         // material region
	Ips    []ipData    // integration points
	Klam   *mat.Dense  // [nu][nu] λ-form with λ = 1
	Kmu    *mat.Dense  // [nu][nu] μ-form with μ = 1
	H      *mat.Dense  // [nu][nu] H1-seminorm form
	X      [][]float64 // [ndim][nverts] coordinates
}

// newCellData integrates the local forms of cell c
//  λ-form:  λ ∂_{ci}φ_i ∂_{cj}φ_j = λ (div φ_i)(div φ_j)
//  μ-form:  μ (∂_{cj}φ_i ∂_{ci}φ_j + δ_{ci,cj} ∇φ_i·∇φ_j) = μ Bᵢᵀ·D·Bⱼ with D = diag(2,2,1)
//  H1-form: δ_{ci,cj} ∇φ_i·∇φ_j = Nᵢᵀ·Nⱼ
func newCellData(msh *inp.Mesh, c *inp.Cell, umap []int, region, nip int) (o *cellData, err error) {

	// shape and integration points
	sh := shp.Get(c.Type, 1)
	if sh == nil {
		return nil, chk.Err("cell %d has unsupported type %q", c.Id, c.Type)
	}
	ips, err := shp.GetIps(c.Type, nip)
	if err != nil {
		return nil, chk.Err("cannot get integration points of cell %d:\n%v", c.Id, err)
	}

	// allocate
	ndim := len(Ukeys)
	nu := ndim * sh.Nverts
	o = &cellData{
		Cell:   c,
		Umap:   umap,
		Region: region,
		Ips:    make([]ipData, len(ips)),
		Klam:   mat.NewDense(nu, nu, nil),
		Kmu:    mat.NewDense(nu, nu, nil),
		H:      mat.NewDense(nu, nu, nil),
		X:      msh.CellCoords(c),
	}

	// auxiliary
	B := mat.NewDense(3, nu, nil)         // strains (Voigt with engineering shear)
	N := mat.NewDense(ndim*ndim, nu, nil) // gradients of each component
	d := mat.NewVecDense(nu, nil)         // divergence
	D := mat.NewDiagDense(3, []float64{2, 2, 1})
	var DB, tmp mat.Dense

	// integrate
	for idx, ip := range ips {

		// geometry
		o.Ips[idx].X = sh.IpRealCoords(o.X, ip)
		err = sh.CalcAtIp(o.X, ip, true)
		if err != nil {
			return nil, chk.Err("cell %d is invalid:\n%v", c.Id, err)
		}
		if sh.J <= 0 {
			return nil, chk.Err("cell %d has non-positive Jacobian: J = %g", c.Id, sh.J)
		}
		o.Ips[idx].S = append([]float64{}, sh.S...)
		o.Ips[idx].Coef = sh.J * ip.W

		// B, N and d
		G := sh.G
		for m := 0; m < sh.Nverts; m++ {
			ix, iy := m*ndim, 1+m*ndim
			B.Set(0, ix, G[m][0])
			B.Set(1, iy, G[m][1])
			B.Set(2, ix, G[m][1])
			B.Set(2, iy, G[m][0])
			N.Set(0, ix, G[m][0])
			N.Set(1, ix, G[m][1])
			N.Set(2, iy, G[m][0])
			N.Set(3, iy, G[m][1])
			d.SetVec(ix, G[m][0])
			d.SetVec(iy, G[m][1])
		}
		coef := o.Ips[idx].Coef

		// λ-form
		o.Klam.RankOne(o.Klam, coef, d, d)

		// μ-form
		DB.Mul(D, B)
		tmp.Mul(B.T(), &DB)
		tmp.Scale(coef, &tmp)
		o.Kmu.Add(o.Kmu, &tmp)

		// H1-form
		tmp.Mul(N.T(), N)
		tmp.Scale(coef, &tmp)
		o.H.Add(o.H, &tmp)
	}
	return
}

// localRhs computes f_i = ∫ φ_i b_{ci} dΩ
func (o *cellData) localRhs(f []float64, src Source) {
	ndim := len(Ukeys)
	b := make([]float64, ndim)
	for i := range f {
		f[i] = 0
	}
	for _, ip := range o.Ips {
		src.Value(b, ip.X)
		for m, s := range ip.S {
			for i := 0; i < ndim; i++ {
				f[i+m*ndim] += s * b[i] * ip.Coef
			}
		}
	}
}

// regionIndex returns the index of the region containing point y of the nx×ny grid over
// [xmin,xmax]×[ymin,ymax]
func regionIndex(y []float64, msh *inp.Mesh, nx, ny int) int {
	locate := func(v, vmin, vmax float64, n int) int {
		if vmax <= vmin {
			return 0
		}
		k := int(math.Floor((v - vmin) / (vmax - vmin) * float64(n)))
		if k < 0 {
			return 0
		}
		if k >= n {
			return n - 1
		}
		return k
	}
	return locate(y[0], msh.Xmin, msh.Xmax, nx) + locate(y[1], msh.Ymin, msh.Ymax, ny)*nx
}

// assembleH1 assembles the H1-seminorm matrix; constrained rows and columns are left empty
func (o *Discretization) assembleH1() {
	o.h1.Zero()
	for _, cd := range o.cells {
		o.cons.distributeLocal(o.h1, nil, cd.H, 1, cd.Umap, false)
	}
	o.h1.Compress()
}

// assembleSystem rebuilds the λ and μ matrices and the right-hand side for parameter p.
// p must have been checked.
func (o *Discretization) assembleSystem(p Parameter) {

	// clear
	o.lam.Zero()
	o.mu.Zero()
	for i := range o.rhs {
		o.rhs[i] = 0
	}

	// cells
	λs, μs := p[KeyLambda], p[KeyMu]
	var f []float64
	for _, cd := range o.cells {
		o.cons.distributeLocal(o.lam, o.rhs, cd.Klam, λs[cd.Region], cd.Umap, true)
		o.cons.distributeLocal(o.mu, o.rhs, cd.Kmu, μs[cd.Region], cd.Umap, true)
		if len(f) != len(cd.Umap) {
			f = make([]float64, len(cd.Umap))
		}
		cd.localRhs(f, o.src)
		o.cons.distributeLocalVector(o.rhs, f, cd.Umap)
	}

	// compress
	o.lam.Compress()
	o.mu.Compress()
}
