// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/io"
)

// ConstructionError is returned when the mesh, the dofs or the constraints cannot be set up
type ConstructionError struct {
	Err error
}

func (o *ConstructionError) Error() string { return "construction failed:\n" + o.Err.Error() }
func (o *ConstructionError) Unwrap() error { return o.Err }

// ParameterError is returned when a Parameter misses a required key or holds malformed values.
// Nothing is assembled when this error is returned.
type ParameterError struct {
	Key string // offending key
	Msg string // description
}

func (o *ParameterError) Error() string {
	return io.Sf("parameter %q is invalid: %s", o.Key, o.Msg)
}

// DimensionError is returned when the size of a vector differs from the number of dofs
type DimensionError struct {
	Op   string // operation; e.g. "H1SemiNorm"
	Got  int    // size of given vector
	Want int    // number of dofs
}

func (o *DimensionError) Error() string {
	return io.Sf("%s: vector has size %d but number of dofs is %d", o.Op, o.Got, o.Want)
}

// NonConvergenceError is returned when the linear solver fails; e.g. the iteration cap is reached
type NonConvergenceError struct {
	Err error
}

func (o *NonConvergenceError) Error() string { return "linear solver failed:\n" + o.Err.Error() }
func (o *NonConvergenceError) Unwrap() error { return o.Err }

// IOError is returned when output files cannot be written
type IOError struct {
	Filename string
	Err      error
}

func (o *IOError) Error() string {
	return io.Sf("cannot write file <%s>:\n%v", o.Filename, o.Err)
}
func (o *IOError) Unwrap() error { return o.Err }
