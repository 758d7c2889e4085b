// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/io"
)

// Lamé coefficients keys
const (
	KeyLambda = "lambda"
	KeyMu     = "mu"
)

// Parameter maps names to values; e.g. {"lambda": [1], "mu": [1]}.
// Each required key holds one value per material region.
type Parameter map[string][]float64

// RequiredKeys returns the keys the assembler needs
func RequiredKeys() []string {
	return []string{KeyLambda, KeyMu}
}

// Check checks that all required keys hold nregions finite values
func (o Parameter) Check(nregions int) error {
	for _, key := range RequiredKeys() {
		vals, ok := o[key]
		if !ok {
			return &ParameterError{key, "key is missing"}
		}
		if len(vals) != nregions {
			return &ParameterError{key, io.Sf("number of values must be equal to the number of regions (%d); %d is invalid", nregions, len(vals))}
		}
		for i, v := range vals {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &ParameterError{key, io.Sf("value %d is not finite: %v", i, v)}
			}
		}
	}
	return nil
}

// GetCopy returns a deep copy
func (o Parameter) GetCopy() Parameter {
	p := make(Parameter, len(o))
	for key, vals := range o {
		p[key] = append([]float64{}, vals...)
	}
	return p
}

// String returns a compact representation with sorted keys
func (o Parameter) String() (l string) {
	keys := make([]string, 0, len(o))
	for key := range o {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for i, key := range keys {
		if i > 0 {
			l += " "
		}
		l += io.Sf("%s=%v", key, o[key])
	}
	return
}
