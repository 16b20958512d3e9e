// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/cmi-go/cmi/substep"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// newModel allocates and initialises a model
func newModel(tst *testing.T, name string, ndim int, prms dbf.Params) Model {
	mdl, err := New(name)
	if err != nil {
		tst.Fatalf("New failed: %v\n", err)
	}
	err = mdl.Init(ndim, false, prms)
	if err != nil {
		tst.Fatalf("Init failed: %v\n", err)
	}
	return mdl
}

// stressPQ returns a 2D stress (Mandel) with invariants p and q
//  σ = -p Im + s    with    s = [a, -a, 0, 0]    and    q = sqrt(3) a
func stressPQ(p, q float64) la.Vector {
	a := q / math.Sqrt(3.0)
	return la.Vector{-p + a, -p - a, -p, 0}
}

// checkDXdY compares DXdY with finite differences with respect to xOld
func checkDXdY(tst *testing.T, law substep.Law, xOld, Δε la.Vector, tol float64) {
	nx, nsig := law.Sizes()
	out := substep.NewLocal(nx, nsig)
	if !law.Integrate(out, xOld, Δε, 0, 1) {
		tst.Errorf("Integrate failed\n")
		return
	}
	dXdY := out.DXdY.GetDeep2()
	tmp := substep.NewLocal(nx, nsig)
	chk.DerivVecVec(tst, "dXdY", tol, dXdY, xOld, 1e-5, chk.Verbose, func(f, x []float64) {
		law.Integrate(tmp, x, Δε, 0, 1)
		copy(f, tmp.X)
	})
}

// checkD compares the consistent tangent of a material with finite differences
func checkD(tst *testing.T, mat *Material, s0 *State, Δε la.Vector, t, Δt, h, tol float64) {
	s := s0.GetCopy()
	if _, err := mat.Update(s, Δε, t, Δt); err != nil {
		tst.Errorf("Update failed: %v\n", err)
		return
	}
	D := mat.D.GetDeep2()
	chk.DerivVecVec(tst, "D", tol, D, Δε, h, chk.Verbose, func(f, x []float64) {
		st := s0.GetCopy()
		mat.Update(st, x, t, Δt)
		copy(f, st.Sig)
	})
}
