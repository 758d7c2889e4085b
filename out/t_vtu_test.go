// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lamefem/lamefem/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_vtu01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("vtu01. write mesh and fields")

	msh, err := inp.NewBoxMesh(0, 2, 0, 1)
	require.NoError(tst, err)
	require.NoError(tst, msh.Refine())

	nv, nc := len(msh.Verts), len(msh.Cells)
	ux := make([]float64, nv)
	for i, v := range msh.Verts {
		ux[i] = v.C[0] * v.C[1]
	}
	region := []float64{0, 1, 1, 0}
	pdata := []*Field{{Name: "ux", Ncomp: 1, Vals: ux}}
	cdata := []*Field{{Name: "region", Ncomp: 1, Vals: region}}

	fn := filepath.Join(tst.TempDir(), "sub", "box.vtu")
	err = WriteVtu(fn, msh, pdata, cdata)
	require.NoError(tst, err)

	b, err := os.ReadFile(fn)
	require.NoError(tst, err)
	l := string(b)
	if chk.Verbose {
		io.Pf("%s\n", l)
	}

	assert.True(tst, strings.HasPrefix(l, "<?xml version=\"1.0\"?>"))
	assert.Contains(tst, l, io.Sf("<Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">", nv, nc))
	assert.Contains(tst, l, "Name=\"ux\" NumberOfComponents=\"1\"")
	assert.Contains(tst, l, "Name=\"region\" NumberOfComponents=\"1\"")
	assert.Contains(tst, l, "<PointData>")
	assert.Contains(tst, l, "<CellData>")
	assert.Contains(tst, l, "4 8 12 16 ")
	assert.Contains(tst, l, "Name=\"types\" format=\"ascii\">\n9 9 9 9 \n")
	assert.True(tst, strings.HasSuffix(l, "</VTKFile>\n"))

	// inputs are not modified
	chk.Array(tst, "region", 1e-17, region, []float64{0, 1, 1, 0})
}

func Test_vtu02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("vtu02. errors")

	msh, err := inp.NewBoxMesh(0, 1, 0, 1)
	require.NoError(tst, err)

	dir := tst.TempDir()
	err = WriteVtu(filepath.Join(dir, "a.vtu"), msh, []*Field{{Name: "u", Ncomp: 3, Vals: make([]float64, 4)}}, nil)
	assert.Error(tst, err)
	err = WriteVtu(filepath.Join(dir, "b.vtu"), msh, nil, []*Field{{Name: "c", Ncomp: 1, Vals: nil}})
	assert.Error(tst, err)

	// directory in place of file
	err = WriteVtu(dir, msh, nil, nil)
	assert.Error(tst, err)
	io.Pforan("err = %v\n", err)
}
