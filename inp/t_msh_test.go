// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_msh01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh01. box mesh")

	msh, err := NewBoxMesh(-1, 1, -1, 1)
	if err != nil {
		tst.Errorf("NewBoxMesh failed:\n%v", err)
		return
	}
	io.Pforan("%v\n", msh)

	chk.Int(tst, "nverts", len(msh.Verts), 4)
	chk.Int(tst, "ncells", len(msh.Cells), 1)
	chk.Float64(tst, "xmin", 1e-17, msh.Xmin, -1)
	chk.Float64(tst, "xmax", 1e-17, msh.Xmax, 1)
	chk.Float64(tst, "ymin", 1e-17, msh.Ymin, -1)
	chk.Float64(tst, "ymax", 1e-17, msh.Ymax, 1)
	chk.Ints(tst, "bryverts", msh.BryVerts, []int{0, 1, 2, 3})
	chk.Ints(tst, "neighs", msh.Cells[0].Neighs, []int{-1, -1, -1, -1})
	chk.Ints(tst, "xmin verts", msh.FaceTag2verts[TagXmin], []int{0, 3})
	chk.Ints(tst, "xmax verts", msh.FaceTag2verts[TagXmax], []int{1, 2})
	chk.Ints(tst, "ymin verts", msh.FaceTag2verts[TagYmin], []int{0, 1})
	chk.Ints(tst, "ymax verts", msh.FaceTag2verts[TagYmax], []int{2, 3})

	_, err = NewBoxMesh(1, 1, 0, 1)
	if err == nil {
		tst.Errorf("NewBoxMesh should have failed with empty box")
	}
}

func Test_msh02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh02. global refinement")

	for n := 0; n < 5; n++ {
		msh, err := NewBoxMesh(-1, 1, -1, 1)
		if err != nil {
			tst.Errorf("NewBoxMesh failed:\n%v", err)
			return
		}
		err = msh.RefineGlobal(n)
		if err != nil {
			tst.Errorf("RefineGlobal failed:\n%v", err)
			return
		}
		m := 1 << uint(n) // cells per direction
		io.Pforan("n=%d nverts=%d ncells=%d\n", n, len(msh.Verts), len(msh.Cells))
		chk.Int(tst, "nverts", len(msh.Verts), (m+1)*(m+1))
		chk.Int(tst, "ncells", len(msh.Cells), m*m)
		chk.Int(tst, "nbryverts", len(msh.BryVerts), 4*m)
		chk.Int(tst, "nbryfaces", len(msh.BryFaces), 4*m)
		for _, tag := range []int{TagXmin, TagXmax, TagYmin, TagYmax} {
			chk.Int(tst, io.Sf("nverts on %d", tag), len(msh.FaceTag2verts[tag]), m+1)
			chk.Int(tst, io.Sf("ncells on %d", tag), len(msh.FaceTag2cells[tag]), m)
		}

		// check geometry of tagged vertices
		for _, v := range msh.FaceTag2verts[TagXmax] {
			chk.Float64(tst, "x on xmax", 1e-15, msh.Verts[v].C[0], 1)
		}
		for _, v := range msh.FaceTag2verts[TagYmin] {
			chk.Float64(tst, "y on ymin", 1e-15, msh.Verts[v].C[1], -1)
		}

		// all cells have positive area
		for _, c := range msh.Cells {
			x := msh.CellCoords(c)
			area := 0.0
			for i := 0; i < 4; i++ {
				j := (i + 1) % 4
				area += x[0][i]*x[1][j] - x[0][j]*x[1][i]
			}
			area /= 2
			chk.Float64(tst, "area", 1e-15, area, 4.0/float64(m*m))
		}
	}

	msh, _ := NewBoxMesh(0, 1, 0, 1)
	err := msh.RefineGlobal(-1)
	if err == nil {
		tst.Errorf("RefineGlobal should have failed with negative number of steps")
	}
}

func Test_msh03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh03. read mesh and neighbours")

	msh, err := ReadMsh("data", "twoquads.msh")
	if err != nil {
		tst.Errorf("ReadMsh failed:\n%v", err)
		return
	}
	io.Pforan("%v\n", msh)

	chk.Int(tst, "nverts", len(msh.Verts), 6)
	chk.Int(tst, "ncells", len(msh.Cells), 2)
	chk.Ints(tst, "neighs0", msh.Cells[0].Neighs, []int{-1, 1, -1, -1})
	chk.Ints(tst, "neighs1", msh.Cells[1].Neighs, []int{-1, -1, -1, 0})
	chk.Ints(tst, "bryverts", msh.BryVerts, []int{0, 1, 2, 3, 4, 5})
	chk.Int(tst, "nbryfaces", len(msh.BryFaces), 6)
	chk.Int(tst, "ncells tag -2", len(msh.CellTag2cells[-2]), 1)
	chk.Int(tst, "nverts tag -100", len(msh.VertTag2verts[-100]), 1)
	chk.Array(tst, "centroid1", 1e-15, msh.Centroid(msh.Cells[1]), []float64{1.5, 0.5})

	// String must produce valid JSON with the same contents
	var cpy Mesh
	err = json.Unmarshal([]byte(msh.String()), &cpy)
	if err != nil {
		tst.Errorf("cannot unmarshal String output:\n%v", err)
		return
	}
	err = cpy.Init()
	if err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}
	chk.Int(tst, "nverts (copy)", len(cpy.Verts), len(msh.Verts))
	for i, c := range cpy.Cells {
		chk.Ints(tst, "verts (copy)", c.Verts, msh.Cells[i].Verts)
		chk.Ints(tst, "ftags (copy)", c.FTags, msh.Cells[i].FTags)
	}

	// refinement of a read mesh keeps cell tags
	err = msh.Refine()
	if err != nil {
		tst.Errorf("Refine failed:\n%v", err)
		return
	}
	chk.Int(tst, "nverts", len(msh.Verts), 15)
	chk.Int(tst, "ncells tag -1", len(msh.CellTag2cells[-1]), 4)
	chk.Int(tst, "ncells tag -2", len(msh.CellTag2cells[-2]), 4)
	chk.Int(tst, "nverts on -10", len(msh.FaceTag2verts[TagXmin]), 3)

	_, err = ReadMsh("data", "nonexistent.msh")
	if err == nil {
		tst.Errorf("ReadMsh should have failed with nonexistent file")
	}
}

func Test_msh04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh04. invalid meshes")

	msh := &Mesh{
		Verts: []*Vert{
			{Id: 0, C: []float64{0, 0}},
			{Id: 1, C: []float64{1, 0}},
			{Id: 2, C: []float64{1, 1}},
		},
		Cells: []*Cell{{Id: 0, Type: "tri3", Verts: []int{0, 1, 2}}},
	}
	err := msh.Init()
	if err == nil {
		tst.Errorf("Init should have failed with unsupported cell type")
	}
	io.Pforan("err = %v\n", err)

	msh.Cells[0] = &Cell{Id: 0, Type: "qua4", Verts: []int{0, 1, 2, 7}}
	err = msh.Init()
	if err == nil {
		tst.Errorf("Init should have failed with nonexistent vertex")
	}
	io.Pforan("err = %v\n", err)

	msh.Cells[0] = &Cell{Id: 3, Type: "qua4", Verts: []int{0, 1, 2, 2}}
	err = msh.Init()
	if err == nil {
		tst.Errorf("Init should have failed with wrong cell id")
	}
	io.Pforan("err = %v\n", err)
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01. read configuration")

	cfg, err := ReadConfig("data/twoquads.sim")
	if err != nil {
		tst.Errorf("ReadConfig failed:\n%v", err)
		return
	}
	chk.String(tst, cfg.Key, "twoquads")
	chk.String(tst, cfg.Data.DirOut, "/tmp/lamefem/twoquads")
	chk.String(tst, cfg.Solver.Precond, "jacobi")
	chk.String(tst, cfg.Source.Type, "constant")
	chk.Int(tst, "maxit", cfg.Solver.MaxIt, 500)
	chk.Int(tst, "nregions", cfg.Nregions(), 2)
	chk.Int(tst, "nbcs", len(cfg.Bcs), 1)
	chk.Int(tst, "nparams", len(cfg.Params), 2)
	chk.Float64(tst, "rtol", 1e-17, cfg.Solver.Rtol, 1e-12)
	chk.Float64(tst, "omega (default)", 1e-17, cfg.Solver.Omega, 1.2)
	chk.Float64(tst, "by", 1e-17, cfg.Source.By, -1)
	chk.Array(tst, "lambda", 1e-17, cfg.Params[0]["lambda"], []float64{1, 2})

	msh, err := cfg.GetMesh()
	if err != nil {
		tst.Errorf("GetMesh failed:\n%v", err)
		return
	}
	chk.Int(tst, "ncells", len(msh.Cells), 8)
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02. default configuration and checks")

	cfg := DefaultConfig(2)
	err := cfg.Check()
	if err != nil {
		tst.Errorf("Check failed:\n%v", err)
		return
	}
	msh, err := cfg.GetMesh()
	if err != nil {
		tst.Errorf("GetMesh failed:\n%v", err)
		return
	}
	chk.Int(tst, "ncells", len(msh.Cells), 16)

	bad := []func(o *Config){
		func(o *Config) { o.Mesh.Refine = -1 },
		func(o *Config) { o.Solver.MaxIt = 0 },
		func(o *Config) { o.Solver.Rtol = -1 },
		func(o *Config) { o.Solver.Omega = 2 },
		func(o *Config) { o.Solver.Precond = "ilu" },
		func(o *Config) { o.Regions.Nx = 0 },
		func(o *Config) { o.Source.Type = "gravity" },
		func(o *Config) { o.Bcs = []*BcData{{Tag: -10, Keys: []string{"ux"}}} },
		func(o *Config) { o.Bcs = []*BcData{{Tag: -10, Keys: []string{"pl"}, Vals: []float64{0}}} },
	}
	for i, modify := range bad {
		cfg = DefaultConfig(0)
		modify(cfg)
		err = cfg.Check()
		if err == nil {
			tst.Errorf("Check should have failed with case %d", i)
			continue
		}
		io.Pforan("%d: %v\n", i, err)
	}

	_, err = ReadConfig("data/nonexistent.sim")
	if err == nil {
		tst.Errorf("ReadConfig should have failed with nonexistent file")
	}
}
