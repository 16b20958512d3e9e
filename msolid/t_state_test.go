// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

func Test_state01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("state01")

	nsig, nalp, nsurf := 4, 1, 2
	state0 := NewState(nsig, nalp, nsurf)
	io.Pforan("state0 = %+v\n", state0)
	chk.Array(tst, "sig", 1.0e-17, state0.Sig, []float64{0, 0, 0, 0})
	chk.Array(tst, "alp", 1.0e-17, state0.Alp, []float64{0})
	chk.Int(tst, "nx", state0.Nx(), 5)

	state0.Sig[0] = 10.0
	state0.Sig[1] = 11.0
	state0.Sig[2] = 12.0
	state0.Sig[3] = 13.0
	state0.Alp[0] = 20.0
	state0.Dgam = 0.5
	state0.Loading = true
	state0.Active[1] = true

	state1 := NewState(nsig, nalp, nsurf)
	state1.Set(state0)
	io.Pforan("state1 = %+v\n", state1)
	chk.Array(tst, "sig", 1.0e-17, state1.Sig, []float64{10, 11, 12, 13})
	chk.Array(tst, "alp", 1.0e-17, state1.Alp, []float64{20})
	chk.Float64(tst, "dgam", 1.0e-17, state1.Dgam, 0.5)
	if !state1.Loading || state1.Active[0] || !state1.Active[1] {
		tst.Errorf("flags were not copied\n")
	}

	state2 := state1.GetCopy()
	io.Pforan("state2 = %+v\n", state2)
	chk.Array(tst, "sig", 1.0e-17, state2.Sig, []float64{10, 11, 12, 13})
	chk.Array(tst, "alp", 1.0e-17, state2.Alp, []float64{20})

	// packing
	x := la.NewVector(state2.Nx())
	state2.ToVector(x)
	chk.Array(tst, "x", 1.0e-17, x, []float64{10, 11, 12, 13, 20})
	x[0], x[4] = -1, -2
	state2.FromVector(x)
	chk.Array(tst, "sig", 1.0e-17, state2.Sig, []float64{-1, 11, 12, 13})
	chk.Array(tst, "alp", 1.0e-17, state2.Alp, []float64{-2})
	chk.Array(tst, "sig1", 1.0e-17, state1.Sig, []float64{10, 11, 12, 13})
}
