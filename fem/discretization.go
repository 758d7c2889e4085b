// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the finite element discretization of plane linear elasticity with
// parameterized Lamé coefficients: dofs, constraints, assembly, solution and norms
package fem

import (
	"math"
	"time"

	"github.com/lamefem/lamefem/inp"
	"github.com/lamefem/lamefem/linop"
	"github.com/lamefem/lamefem/linsol"
	"github.com/lamefem/lamefem/out"
	"github.com/lamefem/lamefem/sparse"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"
)

// MAXVIOLATION is the largest constraint violation accepted for a returned solution
const MAXVIOLATION = 1e-12

// Discretization holds the fixed mesh, dofs, constraints and matrices of a parameterized linear
// elasticity problem. Mesh, dofs, pattern, constraints and H1 matrix are built once; the λ and μ
// matrices and the right-hand side are rebuilt by each Solve.
//  Note: at most one Solve may run at a time; H1SemiNorm may be called concurrently
type Discretization struct {

	// input
	Cfg     *inp.Config // configuration
	ShowMsg bool        // show messages

	// fixed
	msh      *inp.Mesh       // mesh
	dofs     *DofHandler     // dofs
	cons     *Constraints    // constraints
	pat      *sparse.Pattern // sparsity pattern shared by all matrices
	cells    []*cellData     // geometry and local matrices
	nregions int             // number of material regions
	src      Source          // body force
	ctrl     linsol.Control  // solver control
	h1       *sparse.Matrix  // H1-seminorm matrix

	// rebuilt by Solve
	lam *sparse.Matrix // λ matrix
	mu  *sparse.Matrix // μ matrix
	rhs []float64      // right-hand side

	// summary
	sum *Summary
}

// New returns the discretization of the box [-1,1]² refined refine times, clamped on the whole
// boundary and loaded by the TwoCircles body force
func New(refine int) (o *Discretization, err error) {
	if refine < 0 {
		return nil, &ConstructionError{chk.Err("number of refinement steps must be non-negative; %d is invalid", refine)}
	}
	return NewFromConfig(inp.DefaultConfig(refine))
}

// NewFromConfig returns a new discretization built from configuration data
func NewFromConfig(cfg *inp.Config) (o *Discretization, err error) {

	// check input
	if cfg == nil {
		return nil, &ConstructionError{chk.Err("configuration must not be nil")}
	}
	err = cfg.Check()
	if err != nil {
		return nil, &ConstructionError{err}
	}
	o = &Discretization{Cfg: cfg, ShowMsg: cfg.Data.Verbose}
	cputime := time.Now()

	// mesh
	o.msh, err = cfg.GetMesh()
	if err != nil {
		return nil, &ConstructionError{chk.Err("cannot build mesh:\n%v", err)}
	}

	// dofs
	o.dofs, err = NewDofHandler(o.msh)
	if err != nil {
		return nil, &ConstructionError{err}
	}

	// constraints
	err = o.setConstraints(cfg.Bcs)
	if err != nil {
		return nil, &ConstructionError{err}
	}

	// body force
	o.src, err = NewSource(&cfg.Source)
	if err != nil {
		return nil, &ConstructionError{err}
	}

	// cells
	o.nregions = cfg.Nregions()
	o.cells = make([]*cellData, len(o.msh.Cells))
	for i, c := range o.msh.Cells {
		region := regionIndex(o.msh.Centroid(c), o.msh, cfg.Regions.Nx, cfg.Regions.Ny)
		o.cells[i], err = newCellData(o.msh, c, o.dofs.Umaps[c.Id], region, cfg.Mesh.Nip)
		if err != nil {
			return nil, &ConstructionError{err}
		}
	}

	// sparsity pattern
	pb := sparse.NewPatternBuilder(o.dofs.Ndofs)
	for _, cd := range o.cells {
		o.cons.addToPattern(pb, cd.Umap)
	}
	o.pat = pb.Build()

	// matrices
	o.h1 = sparse.NewMatrix(o.pat)
	o.lam = sparse.NewMatrix(o.pat)
	o.mu = sparse.NewMatrix(o.pat)
	o.rhs = make([]float64, o.dofs.Ndofs)
	o.assembleH1()

	// solver control
	o.ctrl = linsol.Control{
		MaxIt:   cfg.Solver.MaxIt,
		Rtol:    cfg.Solver.Rtol,
		Atol:    cfg.Solver.Atol,
		ShowMsg: cfg.Solver.ShowR,
	}

	// summary
	o.sum = NewSummary(o.dofs.Ndofs, o.nregions)

	// message
	if o.ShowMsg {
		io.Pf("> ncells=%d nverts=%d ndofs=%d nconstrained=%d nnz=%d\n", len(o.msh.Cells), len(o.msh.Verts), o.dofs.Ndofs, o.cons.NConstrained(), o.pat.Nnz())
		io.Pf("> construction time = %v\n", time.Now().Sub(cputime))
	}
	return
}

// setConstraints constrains the dofs of vertices on tagged faces; without bcs, all dofs of
// boundary vertices are set to zero
func (o *Discretization) setConstraints(bcs []*inp.BcData) (err error) {
	o.cons = NewConstraints(o.dofs.Ndofs)
	if len(bcs) == 0 {
		for _, v := range o.msh.BryVerts {
			for _, ukey := range Ukeys {
				o.cons.AddLine(o.dofs.Vid2node[v].GetEq(ukey))
			}
		}
		return o.cons.Close()
	}
	for _, bc := range bcs {
		verts, ok := o.msh.FaceTag2verts[bc.Tag]
		if !ok {
			return chk.Err("cannot set boundary condition: there are no faces with tag %d", bc.Tag)
		}
		for _, v := range verts {
			for k, ukey := range bc.Keys {
				eq := o.dofs.Vid2node[v].GetEq(ukey)
				if eq < 0 {
					return chk.Err("cannot find dof %q of vertex %d", ukey, v)
				}
				o.cons.AddLine(eq)
				o.cons.SetInhomogeneity(eq, bc.Vals[k])
			}
		}
	}
	return o.cons.Close()
}

// Solve assembles the system for parameter p and solves it with preconditioned conjugate
// gradients. The returned vector belongs to the caller and satisfies all constraints.
func (o *Discretization) Solve(p Parameter) (x []float64, err error) {

	// check parameter before touching anything
	err = p.Check(o.nregions)
	if err != nil {
		return nil, err
	}
	cputime := time.Now()

	// assemble
	o.assembleSystem(p)

	// composite operator over λ and μ matrices; it must not outlive this call
	A := linop.NewSum(o.lam, o.mu)
	defer A.Release()

	// preconditioner
	M, err := o.preconditioner(A.Sum())
	if err != nil {
		return nil, err
	}

	// initial values and solution
	x = make([]float64, o.dofs.Ndofs)
	o.cons.SetInitial(x)
	res, err := linsol.CG(A, x, o.rhs, M, o.ctrl)
	if err != nil {
		return nil, &NonConvergenceError{err}
	}

	// constrained values
	o.cons.Distribute(x)
	err = o.checkConstraints(x)
	if err != nil {
		return nil, err
	}

	// summary
	elapsed := time.Now().Sub(cputime)
	o.sum.add(p, res, elapsed)
	if o.ShowMsg {
		io.Pf("> solve: %s => %d iterations, residual = %g, time = %v\n", p, res.Iterations, res.Residual, elapsed)
	}
	return
}

// checkConstraints returns a NonConvergenceError if x violates the constraints by more than
// MAXVIOLATION
func (o *Discretization) checkConstraints(x []float64) error {
	if viol := o.cons.MaxViolation(x); viol > MAXVIOLATION {
		return &NonConvergenceError{chk.Err("solution violates constraints: max violation = %g", viol)}
	}
	return nil
}

// preconditioner returns the preconditioner selected in the configuration, built on matrix a
func (o *Discretization) preconditioner(a *sparse.Matrix) (linsol.Preconditioner, error) {
	switch o.Cfg.Solver.Precond {
	case "jacobi":
		return linsol.NewJacobi(a), nil
	case "none":
		return linsol.Identity{}, nil
	}
	return linsol.NewSSOR(a, o.Cfg.Solver.Omega)
}

// H1SemiNorm returns sqrt(vᵀ·H·v) where H is the H1-seminorm matrix
func (o *Discretization) H1SemiNorm(v []float64) (float64, error) {
	if len(v) != o.dofs.Ndofs {
		return 0, &DimensionError{"H1SemiNorm", len(v), o.dofs.Ndofs}
	}
	Hv := make([]float64, len(v))
	o.h1.VMultAdd(Hv, v)
	return math.Sqrt(math.Max(0, floats.Dot(v, Hv))), nil
}

// EnergyNorm returns sqrt(vᵀ·(Λ+M)·v) using the λ and μ matrices of the last Solve
func (o *Discretization) EnergyNorm(v []float64) (float64, error) {
	if len(v) != o.dofs.Ndofs {
		return 0, &DimensionError{"EnergyNorm", len(v), o.dofs.Ndofs}
	}
	A := linop.Weighted{Terms: []linop.Term{{Coef: 1, Op: o.lam}, {Coef: 1, Op: o.mu}}}
	Av := make([]float64, len(v))
	linop.VMult(A, Av, v)
	return math.Sqrt(math.Max(0, floats.Dot(v, Av))), nil
}

// PointValue returns the displacement at point y, interpolated within the cell containing it
func (o *Discretization) PointValue(v, y []float64) (u []float64, err error) {
	if len(v) != o.dofs.Ndofs {
		return nil, &DimensionError{"PointValue", len(v), o.dofs.Ndofs}
	}
	ndim := len(Ukeys)
	r := make([]float64, ndim)
	for _, cd := range o.cells {
		if !insideBox(y, cd.X) {
			continue
		}
		sh := cd.Cell.Shp.GetCopy()
		if sh.InvMap(r, y, cd.X) != nil || !sh.IsInsideNat(r, 1e-10) {
			continue
		}
		sh.Func(sh.S, sh.DSdR, r, false)
		u = make([]float64, ndim)
		for m, s := range sh.S {
			for i := 0; i < ndim; i++ {
				u[i] += s * v[cd.Umap[i+m*ndim]]
			}
		}
		return
	}
	return nil, chk.Err("point %v is outside the mesh", y)
}

// Visualize writes the mesh and the displacement field v to a VTU file
func (o *Discretization) Visualize(v []float64, filename string) (err error) {
	if len(v) != o.dofs.Ndofs {
		return &DimensionError{"Visualize", len(v), o.dofs.Ndofs}
	}
	ux := o.dofs.VertValues(v, "ux")
	uy := o.dofs.VertValues(v, "uy")
	u := make([]float64, 3*len(ux))
	for i := range ux {
		u[3*i], u[3*i+1] = ux[i], uy[i]
	}
	regions := make([]float64, len(o.cells))
	for i, cd := range o.cells {
		regions[i] = float64(cd.Region)
	}
	pdata := []*out.Field{
		{Name: "u", Ncomp: 3, Vals: u},
		{Name: "ux", Ncomp: 1, Vals: ux},
		{Name: "uy", Ncomp: 1, Vals: uy},
	}
	cdata := []*out.Field{
		{Name: "region", Ncomp: 1, Vals: regions},
	}
	err = out.WriteVtu(filename, o.msh, pdata, cdata)
	if err != nil {
		return &IOError{filename, err}
	}
	if o.ShowMsg {
		io.Pf("> file <%s> written\n", filename)
	}
	return
}

// accessors ///////////////////////////////////////////////////////////////////////////////////////

// LambdaMat returns the λ matrix of the last Solve
func (o *Discretization) LambdaMat() *sparse.Matrix { return o.lam }

// MuMat returns the μ matrix of the last Solve
func (o *Discretization) MuMat() *sparse.Matrix { return o.mu }

// H1Mat returns the H1-seminorm matrix
func (o *Discretization) H1Mat() *sparse.Matrix { return o.h1 }

// Rhs returns the right-hand side of the last Solve
func (o *Discretization) Rhs() []float64 { return o.rhs }

// NDofs returns the number of dofs
func (o *Discretization) NDofs() int { return o.dofs.Ndofs }

// NRegions returns the number of material regions
func (o *Discretization) NRegions() int { return o.nregions }

// Mesh returns the mesh
func (o *Discretization) Mesh() *inp.Mesh { return o.msh }

// Dofs returns the dof handler
func (o *Discretization) Dofs() *DofHandler { return o.dofs }

// Constraints returns the constraints
func (o *Discretization) Constraints() *Constraints { return o.cons }

// Summary returns the record of all solves
func (o *Discretization) Summary() *Summary { return o.sum }

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// insideBox tells whether y is within the bounding box of coordinates x[ndim][nverts]
func insideBox(y []float64, x [][]float64) bool {
	const tol = 1e-10
	for i := range y {
		if y[i] < floats.Min(x[i])-tol || y[i] > floats.Max(x[i])+tol {
			return false
		}
	}
	return true
}
