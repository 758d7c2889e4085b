// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data: meshes and configuration read from (.sim) JSON files
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
)

// Data holds global data for simulations
type Data struct {
	Desc    string `json:"desc"`    // description of simulation
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/lamefem
	Verbose bool   `json:"verbose"` // show messages
}

// MeshData holds data to build the fixed mesh
type MeshData struct {
	File   string  `json:"file"`   // JSON mesh file (.msh); empty => box mesh
	Xmin   float64 `json:"xmin"`   // box: min x
	Xmax   float64 `json:"xmax"`   // box: max x
	Ymin   float64 `json:"ymin"`   // box: min y
	Ymax   float64 `json:"ymax"`   // box: max y
	Refine int     `json:"refine"` // number of global refinement steps
	Nip    int     `json:"nip"`    // number of integration points per cell; 0 => default (2x2 Gauss)
}

// SolverData holds data for the iterative linear solver
type SolverData struct {
	MaxIt   int     `json:"maxit"`   // maximum number of iterations
	Rtol    float64 `json:"rtol"`    // relative tolerance on the residual reduction
	Atol    float64 `json:"atol"`    // absolute tolerance on the residual
	Precond string  `json:"precond"` // preconditioner: "ssor", "jacobi" or "none"
	Omega   float64 `json:"omega"`   // relaxation parameter of SSOR
	ShowR   bool    `json:"showr"`   // show residual
}

// RegionsData defines a grid of nx×ny material regions over the bounding box of the mesh.
// Each parameter key must hold nx*ny values; region index = ix + iy*nx.
type RegionsData struct {
	Nx int `json:"nx"` // number of regions along x
	Ny int `json:"ny"` // number of regions along y
}

// SourceData holds the definition of the right-hand side (body force)
type SourceData struct {
	Type string  `json:"type"` // "circles" or "constant"
	Bx   float64 `json:"bx"`   // constant: x-component
	By   float64 `json:"by"`   // constant: y-component
}

// BcData holds essential boundary conditions applied to all vertices on faces with Tag
type BcData struct {
	Tag  int       `json:"tag"`  // tag of face
	Keys []string  `json:"keys"` // "ux" and/or "uy"
	Vals []float64 `json:"vals"` // prescribed values; len(vals) == len(keys)
}

// Config holds all input data
type Config struct {

	// input
	Data    Data                   `json:"data"`    // global data
	Mesh    MeshData               `json:"mesh"`    // mesh data
	Solver  SolverData             `json:"solver"`  // solver data
	Regions RegionsData            `json:"regions"` // material regions
	Source  SourceData             `json:"source"`  // right-hand side
	Bcs     []*BcData              `json:"bcs"`     // essential boundary conditions; empty => clamp all boundary vertices
	Params  []map[string][]float64 `json:"params"`  // parameter sets to be solved for (used by the CLI)

	// derived
	Dir string `json:"-"` // directory of .sim file
	Key string `json:"-"` // filename key; e.g. mysim.sim => mysim
}

// SetDefault sets default values
func (o *SolverData) SetDefault() {
	o.MaxIt = 2000
	o.Rtol = 1e-10
	o.Atol = 1e-14
	o.Precond = "ssor"
	o.Omega = 1.2
}

// SetDefault sets default values
func (o *MeshData) SetDefault() {
	o.Xmin, o.Xmax = -1, 1
	o.Ymin, o.Ymax = -1, 1
}

// DefaultConfig returns the configuration used for a box [-1,1]² refined nsteps times,
// clamped on the whole boundary and loaded by the "circles" source
func DefaultConfig(nsteps int) (o *Config) {
	o = new(Config)
	o.Data.DirOut = "/tmp/lamefem"
	o.Mesh.SetDefault()
	o.Mesh.Refine = nsteps
	o.Solver.SetDefault()
	o.Regions = RegionsData{1, 1}
	o.Source.Type = "circles"
	o.Key = "lamefem"
	return
}

// ReadConfig reads configuration from a (.sim) JSON file
func ReadConfig(simfilepath string) (o *Config, err error) {

	// read file
	b, err := os.ReadFile(simfilepath)
	if err != nil {
		return nil, chk.Err("cannot read simulation file %q:\n%v", simfilepath, err)
	}

	// set default values
	o = DefaultConfig(0)

	// decode
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal simulation file %q:\n%v", simfilepath, err)
	}

	// input directory and filename key
	o.Dir = os.ExpandEnv(filepath.Dir(simfilepath))
	fn := filepath.Base(simfilepath)
	o.Key = strings.TrimSuffix(fn, filepath.Ext(fn))
	if o.Data.DirOut == "" {
		o.Data.DirOut = "/tmp/lamefem/" + o.Key
	}
	err = o.Check()
	return
}

// Check checks consistency of input data
func (o *Config) Check() (err error) {
	if o.Mesh.Refine < 0 {
		return chk.Err("number of refinement steps must be non-negative; %d is invalid", o.Mesh.Refine)
	}
	if o.Solver.MaxIt < 1 {
		return chk.Err("maximum number of iterations must be positive; %d is invalid", o.Solver.MaxIt)
	}
	if o.Solver.Rtol < 0 || o.Solver.Atol < 0 {
		return chk.Err("tolerances must be non-negative; rtol=%g, atol=%g", o.Solver.Rtol, o.Solver.Atol)
	}
	switch o.Solver.Precond {
	case "ssor":
		if o.Solver.Omega <= 0 || o.Solver.Omega >= 2 {
			return chk.Err("SSOR relaxation must be in (0,2); %g is invalid", o.Solver.Omega)
		}
	case "jacobi", "none":
	default:
		return chk.Err("preconditioner %q is not available", o.Solver.Precond)
	}
	if o.Regions.Nx < 1 || o.Regions.Ny < 1 {
		return chk.Err("number of regions must be positive; nx=%d, ny=%d", o.Regions.Nx, o.Regions.Ny)
	}
	switch o.Source.Type {
	case "circles", "constant":
	default:
		return chk.Err("source type %q is not available", o.Source.Type)
	}
	for _, bc := range o.Bcs {
		if len(bc.Keys) != len(bc.Vals) {
			return chk.Err("bcs with tag=%d: number of keys (%d) and values (%d) differ", bc.Tag, len(bc.Keys), len(bc.Vals))
		}
		for _, key := range bc.Keys {
			if key != "ux" && key != "uy" {
				return chk.Err("bcs with tag=%d: key %q is invalid", bc.Tag, key)
			}
		}
	}
	return
}

// Nregions returns the number of material regions
func (o *Config) Nregions() int {
	return o.Regions.Nx * o.Regions.Ny
}

// GetMesh builds the base mesh (box or from file) and refines it globally
func (o *Config) GetMesh() (msh *Mesh, err error) {
	if o.Mesh.Refine < 0 {
		return nil, chk.Err("number of refinement steps must be non-negative; %d is invalid", o.Mesh.Refine)
	}
	if o.Mesh.File != "" {
		dir := o.Dir
		if filepath.IsAbs(o.Mesh.File) {
			dir = ""
		}
		msh, err = ReadMsh(dir, o.Mesh.File)
	} else {
		msh, err = NewBoxMesh(o.Mesh.Xmin, o.Mesh.Xmax, o.Mesh.Ymin, o.Mesh.Ymax)
	}
	if err != nil {
		return
	}
	err = msh.RefineGlobal(o.Mesh.Refine)
	return
}
