// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build ignore
// +build ignore

package main

import (
	"path/filepath"

	"github.com/lamefem/lamefem/inp"
	"github.com/lamefem/lamefem/out"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// input data
	mshfn, fnkey := io.ArgToFilename(0, "../inp/data/twoquads", ".msh", true)
	nsteps := io.ArgToInt(1, 0)
	dirout := io.ArgToString(2, "/tmp/lamefem")
	io.Pf("\n%-16s mshfn  = %v\n", "mesh filename", mshfn)
	io.Pf("%-16s nsteps = %v\n", "refinements", nsteps)
	io.Pf("%-16s dirout = %v\n\n", "output dir", dirout)

	// read and refine mesh
	msh, err := inp.ReadMsh("", mshfn)
	if err != nil {
		chk.Panic("%v", err)
	}
	err = msh.RefineGlobal(nsteps)
	if err != nil {
		chk.Panic("%v", err)
	}

	// tags
	vtags := make([]float64, len(msh.Verts))
	for i, v := range msh.Verts {
		vtags[i] = float64(v.Tag)
	}
	ctags := make([]float64, len(msh.Cells))
	for i, c := range msh.Cells {
		ctags[i] = float64(c.Tag)
	}

	// write file
	fn := filepath.Join(dirout, fnkey+".vtu")
	err = out.WriteVtu(fn, msh, []*out.Field{{Name: "tag", Ncomp: 1, Vals: vtags}}, []*out.Field{{Name: "tag", Ncomp: 1, Vals: ctags}})
	if err != nil {
		chk.Panic("%v", err)
	}
	io.Pfblue2("file <%s> written\n", fn)
}
