// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package newton implements convergence checks for the local (inner) Newton
// iterations of return-mapping algorithms
package newton

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// Status is the outcome of one convergence check
type Status int

const (
	Continue  Status = iota // keep iterating
	Converged               // residual and correction are small enough
	Diverged                // give up this local solve
)

// String returns the name of the status
func (o Status) String() string {
	switch o {
	case Continue:
		return "continue"
	case Converged:
		return "converged"
	case Diverged:
		return "diverged"
	}
	return "unknown"
}

// Checker checks the inner Newton iterations with two sets of tolerances:
//  it <= NmaxIt            : uses Tol and RTol
//  NmaxIt < it <= NmaxItAlt: uses the (looser) TolAlt and RTolAlt
type Checker struct {
	Scale     la.Vector // scale factors for residual components; nil => ones
	NmaxIt    int       // max number of iterations with the main tolerances
	NmaxItAlt int       // max number of iterations with the alternative tolerances
	Tol       float64   // tolerance on the residual norm
	RTol      float64   // tolerance on the relative norm of corrections
	TolAlt    float64   // alternative tolerance on the residual norm
	RTolAlt   float64   // alternative tolerance on the relative norm of corrections
}

// NewChecker returns a checker that converges when the residual norm is below
// tol and diverges once the number of iterations exceeds nmaxit
func NewChecker(nmaxit int, tol float64) *Checker {
	return &Checker{
		NmaxIt:    nmaxit,
		NmaxItAlt: nmaxit,
		Tol:       tol,
		RTol:      math.MaxFloat64,
		TolAlt:    tol,
		RTolAlt:   math.MaxFloat64,
	}
}

// ResidualNorm computes the Euclidean norm of the scaled residual
func (o *Checker) ResidualNorm(r la.Vector) float64 {
	if len(o.Scale) == 0 {
		return r.Norm()
	}
	sum := 0.0
	for i, v := range r {
		v *= o.Scale[i]
		sum += v * v
	}
	return math.Sqrt(sum)
}

// RelativeNorm computes the norm of the increment dx relative to x
func (o *Checker) RelativeNorm(dx, x la.Vector) float64 {
	incNorm := dx.Norm()
	if incNorm < 1e-14 {
		return incNorm
	}
	refNorm := x.Norm()
	if refNorm < 1e-12 {
		return 0 // cannot compute a reasonable relative norm
	}
	return incNorm / refNorm
}

// IsConverged checks whether the Newton scheme has converged after 'it' iterations
func (o *Checker) IsConverged(r, x, dx la.Vector, it int) bool {
	return o.converged(o.ResidualNorm(r), o.RelativeNorm(dx, x), it)
}

// IterationFinished checks whether the iterations must stop: either converged
// or the maximum number of iterations has been exceeded
func (o *Checker) IterationFinished(r, x, dx la.Vector, it int) bool {
	return o.IsConverged(r, x, dx, it) || it > o.NmaxItAlt
}

// Check returns the status of the iterations after 'it' iterations
func (o *Checker) Check(r, x, dx la.Vector, it int) Status {
	return o.status(o.ResidualNorm(r), o.RelativeNorm(dx, x), it)
}

func (o *Checker) status(resNorm, relNorm float64, it int) Status {
	if math.IsNaN(resNorm) || math.IsInf(resNorm, 0) {
		return Diverged
	}
	if o.converged(resNorm, relNorm, it) {
		return Converged
	}
	if it > o.NmaxItAlt {
		return Diverged
	}
	return Continue
}

func (o *Checker) converged(resNorm, relNorm float64, it int) bool {
	if it <= o.NmaxIt {
		return resNorm <= o.Tol && relNorm <= o.RTol
	}
	if it <= o.NmaxItAlt+1 {
		return resNorm <= o.TolAlt && relNorm <= o.RTolAlt
	}
	return false
}
