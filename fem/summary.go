// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/lamefem/lamefem/linsol"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/google/uuid"
)

// SolveRecord holds information about one solve
type SolveRecord struct {
	Param      Parameter     `json:"param"`      // parameter
	Iterations int           `json:"iterations"` // number of CG iterations
	Residual   float64       `json:"residual"`   // final residual
	Initial    float64       `json:"initial"`    // initial residual
	CpuTime    time.Duration `json:"cputime"`    // assembly and solution time
}

// MAXSOLVES is the default number of solve records kept by a Summary
const MAXSOLVES = 1000

// Summary records the solves performed by a Discretization. Only the last MaxSolves records are
// kept; older ones are dropped and counted in Ndropped.
type Summary struct {
	RunId     string         `json:"runid"`    // identifier of this run
	Ndofs     int            `json:"ndofs"`    // number of dofs
	Nregions  int            `json:"nregions"` // number of material regions
	Ndropped  int            `json:"ndropped"` // number of dropped records
	Solves    []*SolveRecord `json:"solves"`   // last solves
	MaxSolves int            `json:"-"`        // maximum number of records; 0 => no recording
}

// NewSummary returns a new summary with a fresh run identifier
func NewSummary(ndofs, nregions int) *Summary {
	return &Summary{RunId: uuid.NewString(), Ndofs: ndofs, Nregions: nregions, MaxSolves: MAXSOLVES}
}

// add records one solve
func (o *Summary) add(p Parameter, res linsol.Result, cputime time.Duration) {
	if o.MaxSolves < 1 {
		o.Ndropped++
		return
	}
	if n := len(o.Solves) - o.MaxSolves + 1; n > 0 {
		m := copy(o.Solves, o.Solves[n:])
		for i := m; i < len(o.Solves); i++ {
			o.Solves[i] = nil
		}
		o.Solves = o.Solves[:m]
		o.Ndropped += n
	}
	o.Solves = append(o.Solves, &SolveRecord{
		Param:      p.GetCopy(),
		Iterations: res.Iterations,
		Residual:   res.Residual,
		Initial:    res.Initial,
		CpuTime:    cputime,
	})
}

// Save saves summary to <dirout>/<fnkey>-sum.json
func (o *Summary) Save(dirout, fnkey string) (err error) {

	// buffer and encoder
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")

	// encode summary
	err = enc.Encode(o)
	if err != nil {
		return chk.Err("cannot encode summary:\n%v", err)
	}

	// save file
	err = os.MkdirAll(dirout, 0777)
	if err != nil {
		return &IOError{dirout, err}
	}
	fn := sumPath(dirout, fnkey)
	err = os.WriteFile(fn, buf.Bytes(), 0644)
	if err != nil {
		return &IOError{fn, err}
	}
	return
}

// ReadSummary reads summary back
func ReadSummary(dirout, fnkey string) (o *Summary, err error) {
	fn := sumPath(dirout, fnkey)
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read summary file <%s>:\n%v", fn, err)
	}
	o = new(Summary)
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot decode summary file <%s>:\n%v", fn, err)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func sumPath(dirout, fnkey string) string {
	return filepath.Join(dirout, io.Sf("%s-sum.json", fnkey))
}
