// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package newton

import "github.com/cpmech/gosl/la"

// State holds the history of one inner Newton solve
type State struct {
	It   int       // number of checks performed
	Hist []float64 // most recent residual norms (bounded)
	Prev float64   // previous residual norm
}

// push records a new residual norm keeping at most nmax entries
func (o *State) push(resNorm float64, nmax int) {
	if len(o.Hist) > 0 {
		o.Prev = o.Hist[len(o.Hist)-1]
	}
	if nmax < 1 {
		nmax = 1
	}
	if len(o.Hist) == nmax {
		copy(o.Hist, o.Hist[1:])
		o.Hist = o.Hist[:nmax-1]
	}
	o.Hist = append(o.Hist, resNorm)
	o.It++
}

// CheckerMk2 extends Checker with stagnation detection: the solve is flagged
// as diverging when the residual norm did not decrease over the last Window
// iterations, i.e. when R(it) > Decrease * R(it-Window)
type CheckerMk2 struct {
	Checker
	Window   int     // number of iterations to look back; 0 => no stagnation check
	Decrease float64 // required ratio; 1 means "any decrease"
	st       State
}

// NewCheckerMk2 returns a new Mark II checker
func NewCheckerMk2(nmaxit int, tol float64, window int) *CheckerMk2 {
	return &CheckerMk2{
		Checker:  *NewChecker(nmaxit, tol),
		Window:   window,
		Decrease: 1.0,
	}
}

// Reset clears the iteration history; call it at the start of each local solve
func (o *CheckerMk2) Reset() {
	o.st.It = 0
	o.st.Hist = o.st.Hist[:0]
	o.st.Prev = 0
}

// State returns a copy of the history of the current solve
func (o *CheckerMk2) State() State {
	st := o.st
	st.Hist = append([]float64(nil), o.st.Hist...)
	return st
}

// Check returns the status of the iterations after 'it' iterations
func (o *CheckerMk2) Check(r, x, dx la.Vector, it int) Status {
	resNorm := o.ResidualNorm(r)
	o.st.push(resNorm, o.Window+1)
	status := o.status(resNorm, o.RelativeNorm(dx, x), it)
	if status != Continue || o.Window < 1 {
		return status
	}
	if len(o.st.Hist) > o.Window {
		if resNorm > o.Decrease*o.st.Hist[0] {
			return Diverged
		}
	}
	return Continue
}
