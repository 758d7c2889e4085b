// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements output of meshes and fields for visualisation with ParaView/VisIt
package out

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/lamefem/lamefem/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Field holds values of a point or cell field
type Field struct {
	Name  string    // name of field; e.g. "ux"
	Ncomp int       // number of components per point or cell
	Vals  []float64 // [npoints*ncomp] or [ncells*ncomp] values
}

// WriteVtu writes an ASCII VTU (UnstructuredGrid) file with the mesh, point data and cell data.
// Input values are not modified.
func WriteVtu(filename string, msh *inp.Mesh, pdata, cdata []*Field) (err error) {

	// check
	nv, nc := len(msh.Verts), len(msh.Cells)
	for _, f := range pdata {
		if f.Ncomp < 1 || len(f.Vals) != nv*f.Ncomp {
			return chk.Err("point field %q must have %d×%d values; %d is invalid", f.Name, nv, f.Ncomp, len(f.Vals))
		}
	}
	for _, f := range cdata {
		if f.Ncomp < 1 || len(f.Vals) != nc*f.Ncomp {
			return chk.Err("cell field %q must have %d×%d values; %d is invalid", f.Name, nc, f.Ncomp, len(f.Vals))
		}
	}

	// buffers
	var hdr, geo, dat, foo bytes.Buffer
	io.Ff(&hdr, "<?xml version=\"1.0\"?>\n<VTKFile type=\"UnstructuredGrid\" version=\"0.1\" byte_order=\"LittleEndian\">\n<UnstructuredGrid>\n")
	io.Ff(&hdr, "<Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", nv, nc)
	err = topology(&geo, msh)
	if err != nil {
		return
	}
	fieldsWrite(&dat, "PointData", pdata)
	fieldsWrite(&dat, "CellData", cdata)
	io.Ff(&foo, "</Piece>\n</UnstructuredGrid>\n</VTKFile>\n")

	// save file
	if dir := filepath.Dir(filename); dir != "" {
		err = os.MkdirAll(dir, 0777)
		if err != nil {
			return
		}
	}
	fil, err := os.Create(filename)
	if err != nil {
		return
	}
	defer func() {
		if e := fil.Close(); err == nil {
			err = e
		}
	}()
	for _, buf := range []*bytes.Buffer{&hdr, &geo, &dat, &foo} {
		_, err = fil.Write(buf.Bytes())
		if err != nil {
			return
		}
	}
	return
}

// topology writes points and cells
func topology(buf *bytes.Buffer, msh *inp.Mesh) (err error) {

	// coordinates
	io.Ff(buf, "<Points>\n<DataArray type=\"Float64\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, v := range msh.Verts {
		io.Ff(buf, "%23.15e %23.15e %23.15e ", v.C[0], v.C[1], 0.0)
	}
	io.Ff(buf, "\n</DataArray>\n</Points>\n")

	// connectivities
	io.Ff(buf, "<Cells>\n<DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	for _, c := range msh.Cells {
		for _, v := range c.Verts {
			io.Ff(buf, "%d ", v)
		}
	}

	// offsets
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	var offset int
	for _, c := range msh.Cells {
		offset += len(c.Verts)
		io.Ff(buf, "%d ", offset)
	}

	// types
	io.Ff(buf, "\n</DataArray>\n<DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	for _, c := range msh.Cells {
		if c.Shp == nil || c.Shp.VtkCode < 0 {
			return chk.Err("cannot handle cell type %q", c.Type)
		}
		io.Ff(buf, "%d ", c.Shp.VtkCode)
	}
	io.Ff(buf, "\n</DataArray>\n</Cells>\n")
	return
}

// fieldsWrite writes a PointData or CellData block
func fieldsWrite(buf *bytes.Buffer, block string, fields []*Field) {
	if len(fields) == 0 {
		return
	}
	io.Ff(buf, "<%s>\n", block)
	for _, f := range fields {
		io.Ff(buf, "<DataArray type=\"Float64\" Name=\"%s\" NumberOfComponents=\"%d\" format=\"ascii\">\n", f.Name, f.Ncomp)
		for _, x := range f.Vals {
			io.Ff(buf, "%23.15e ", x)
		}
		io.Ff(buf, "\n</DataArray>\n")
	}
	io.Ff(buf, "</%s>\n", block)
}
