// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package linsol implements iterative linear solvers and preconditioners
package linsol

import (
	"math"

	"github.com/lamefem/lamefem/linop"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"
)

// Control holds the stopping criteria of iterative solvers.
// Convergence is reached when ‖r‖ ≤ max(Rtol·‖r₀‖, Atol).
type Control struct {
	MaxIt   int     // maximum number of iterations
	Rtol    float64 // relative tolerance
	Atol    float64 // absolute tolerance
	ShowMsg bool    // show residuals
}

// Result holds the outcome of a solve
type Result struct {
	Iterations int     // number of iterations performed
	Residual   float64 // final ‖r‖
	Initial    float64 // ‖r₀‖
}

// NotConvergedError is returned when the iteration cap is reached
type NotConvergedError struct {
	Iterations int     // iterations performed
	Residual   float64 // last ‖r‖
	Target     float64 // residual required for convergence
}

// Error returns the error message
func (o *NotConvergedError) Error() string {
	return io.Sf("iterative solver did not converge after %d iterations: residual = %g > %g", o.Iterations, o.Residual, o.Target)
}

// CG solves A·x = b with the preconditioned conjugate gradients method.
// A must be symmetric positive definite. x holds the initial guess on input.
func CG(A linop.Operator, x, b []float64, M Preconditioner, ctrl Control) (res Result, err error) {

	// check
	m, n := A.Size()
	if m != n || len(x) != n || len(b) != n {
		return res, chk.Err("CG needs a square operator and compatible vectors: A is %d×%d, len(x)=%d, len(b)=%d", m, n, len(x), len(b))
	}
	if ctrl.MaxIt < 1 {
		return res, chk.Err("maximum number of iterations must be positive; %d is invalid", ctrl.MaxIt)
	}
	if M == nil {
		M = Identity{}
	}

	// r := b - A·x
	r := make([]float64, n)
	linop.VMult(A, r, x)
	floats.SubTo(r, b, r)
	res.Initial = floats.Norm(r, 2)
	res.Residual = res.Initial
	target := math.Max(ctrl.Rtol*res.Initial, ctrl.Atol)
	if ctrl.ShowMsg {
		io.Pf("%4d%23.15e\n", 0, res.Residual)
	}
	if res.Residual <= target {
		return
	}

	// auxiliary
	z := make([]float64, n)
	p := make([]float64, n)
	q := make([]float64, n)

	// p := z := M⁻¹·r
	M.Apply(z, r)
	copy(p, z)
	ρ := floats.Dot(r, z)

	// iterations
	for it := 1; it <= ctrl.MaxIt; it++ {

		// q := A·p
		linop.VMult(A, q, p)
		pq := floats.Dot(p, q)
		if pq <= 0 || math.IsNaN(pq) {
			res.Iterations = it
			return res, chk.Err("CG breakdown at iteration %d: pᵀAp = %g (operator is not positive definite)", it, pq)
		}

		// update x and r
		α := ρ / pq
		floats.AddScaled(x, α, p)
		floats.AddScaled(r, -α, q)
		res.Iterations = it
		res.Residual = floats.Norm(r, 2)
		if ctrl.ShowMsg {
			io.Pf("%4d%23.15e\n", it, res.Residual)
		}
		if res.Residual <= target {
			return
		}

		// new direction
		M.Apply(z, r)
		ρnew := floats.Dot(r, z)
		β := ρnew / ρ
		ρ = ρnew
		floats.AddScaledTo(p, z, β, p)
	}
	return res, &NotConvergedError{res.Iterations, res.Residual, target}
}
