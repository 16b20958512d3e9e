// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/tsr"
)

// Mmatch computes M=q/p and qy0 from c and φ corresponding to the strength that would
// be modelled by the Mohr-Coulomb model matching one of the following cones:
//  typ == 0 : compression cone (outer)
//      == 1 : extension cone (inner)
//      == 2 : plane-strain
func Mmatch(c, φ float64, typ int) (M, qy0 float64, err error) {
	φr := φ * math.Pi / 180.0
	si := math.Sin(φr)
	co := math.Cos(φr)
	var ξ float64
	switch typ {
	case 0: // compression cone (outer)
		M = 6.0 * si / (3.0 - si)
		ξ = 6.0 * co / (3.0 - si)
	case 1: // extension cone (inner)
		M = 6.0 * si / (3.0 + si)
		ξ = 6.0 * co / (3.0 + si)
	case 2: // plane-strain
		t := si / co
		d := math.Sqrt(3.0 + 4.0*t*t)
		M = 3.0 * t / d
		ξ = 3.0 / d
	default:
		return 0, 0, chk.Err("typ=%d is invalid", typ)
	}
	qy0 = ξ * c
	return
}

// Invs computes the mean pressure and deviatoric stress invariants of σ in Mandel's basis
//  p = -tr(σ)/3    q = sqrt(3/2) |dev(σ)|
func Invs(σ la.Vector) (p, q float64) {
	p = -(σ[0] + σ[1] + σ[2]) / 3.0
	var ss float64
	for i := range σ {
		si := σ[i] + p*tsr.SecIdenMan[i]
		ss += si * si
	}
	q = math.Sqrt(1.5 * ss)
	return
}

// devInvs computes the deviator s = dev(σ) and the invariants p and q
func devInvs(s, σ la.Vector) (p, q float64) {
	p, q = Invs(σ)
	for i := range s {
		s[i] = σ[i] + p*tsr.SecIdenMan[i]
	}
	return
}

// setIdentity sets m := identity
func setIdentity(m *la.Matrix) {
	for i := 0; i < m.M; i++ {
		for j := 0; j < m.N; j++ {
			m.Set(i, j, 0)
		}
		m.Set(i, i, 1)
	}
}
