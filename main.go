// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"github.com/lamefem/lamefem/fem"
	"github.com/lamefem/lamefem/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".sim", true)
	verbose := io.ArgToBool(1, true)
	saveVtu := io.ArgToBool(2, true)
	saveSummary := io.ArgToBool(3, true)

	// message
	if verbose {
		io.PfWhite("\nLamefem -- parameterized plane linear elasticity\n\n")
		io.Pf("Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")
		io.Pf("%-24s fnamepath   = %v\n", "filename path", fnamepath)
		io.Pf("%-24s verbose     = %v\n", "show messages", verbose)
		io.Pf("%-24s saveVtu     = %v\n", "save vtu files", saveVtu)
		io.Pf("%-24s saveSummary = %v\n\n", "save summary", saveSummary)
	}

	// configuration
	cfg, err := inp.ReadConfig(fnamepath)
	if err != nil {
		chk.Panic("cannot read configuration:\n%v", err)
	}
	if verbose {
		cfg.Data.Verbose = true
	}
	if len(cfg.Params) == 0 {
		chk.Panic("simulation file %q has no parameters to solve for", fnamepath)
	}

	// discretization
	d, err := fem.NewFromConfig(cfg)
	if err != nil {
		chk.Panic("%v", err)
	}

	// solve for each parameter
	for idx, p := range cfg.Params {
		x, err := d.Solve(p)
		if err != nil {
			chk.Panic("solve %d failed:\n%v", idx, err)
		}
		h1, err := d.H1SemiNorm(x)
		if err != nil {
			chk.Panic("%v", err)
		}
		io.Pforan("%3d: %v => |u|_H1 = %g\n", idx, fem.Parameter(p), h1)
		if saveVtu {
			fn := filepath.Join(cfg.Data.DirOut, io.Sf("%s-%d.vtu", cfg.Key, idx))
			err = d.Visualize(x, fn)
			if err != nil {
				chk.Panic("%v", err)
			}
		}
	}

	// summary
	if saveSummary {
		err = d.Summary().Save(cfg.Data.DirOut, cfg.Key)
		if err != nil {
			chk.Panic("%v", err)
		}
	}
}
