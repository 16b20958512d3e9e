// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/tsr"

	"github.com/cmi-go/cmi/substep"
)

// VonMises implements von Mises plasticity with linear isotropic hardening
//  f = q - qy0 - H α
type VonMises struct {
	SmallElasticity
	qy0 float64    // initial qy
	H   float64    // hardening variable
	De  *la.Matrix // elastic modulus
	ten la.Vector  // auxiliary tensor: trial stress
	s   la.Vector  // auxiliary tensor: deviator of trial stress
}

// add model to factory
func init() {
	allocators["vm"] = func() Model { return new(VonMises) }
}

// Init initialises model
func (o *VonMises) Init(ndim int, pstress bool, prms dbf.Params) (err error) {
	err = o.SmallElasticity.Init(ndim, pstress, prms)
	if err != nil {
		return
	}
	for _, p := range prms {
		switch p.N {
		case "qy0":
			o.qy0 = p.V
		case "H":
			o.H = p.V
		case "E", "nu", "K", "G":
		default:
			return chk.Err("vm: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.qy0 <= 0 {
		return chk.Err("vm: qy0 must be positive. qy0=%g is invalid", o.qy0)
	}
	o.De = la.NewMatrix(o.Nsig, o.Nsig)
	o.CalcDe(o.De)
	o.ten = la.NewVector(o.Nsig)
	o.s = la.NewVector(o.Nsig)
	return
}

// GetPrms gets (an example) of parameters
func (o VonMises) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "E", V: 1000},
		&dbf.P{N: "nu", V: 0.25},
		&dbf.P{N: "qy0", V: 2},
		&dbf.P{N: "H", V: 100},
	}
}

// InitIntVars initialises internal (secondary) variables
func (o VonMises) InitIntVars(σ la.Vector) (s *State, err error) {
	s = NewState(o.Nsig, 1, 1)
	copy(s.Sig, σ)
	return
}

// Sizes returns the number of components of X and σ
func (o VonMises) Sizes() (nx, nsig int) { return o.Nsig + 1, o.Nsig }

// ElasticTangent returns De
func (o VonMises) ElasticTangent() *la.Matrix { return o.De }

// YieldFuncs computes the yield functions
func (o VonMises) YieldFuncs(s *State) []float64 {
	_, q := Invs(s.Sig)
	return []float64{q - o.qy0 - o.H*s.Alp[0]}
}

// Integrate performs the radial return
func (o *VonMises) Integrate(out *substep.Local, xOld, Δε la.Vector, tOld, Δt float64) bool {

	// trial state
	n := o.Nsig
	o.Update(o.ten, xOld, Δε)
	αold := xOld[n]
	_, qtr := devInvs(o.s, o.ten)
	ftr := qtr - o.qy0 - o.H*αold

	// elastic
	setIdentity(out.DXdY)
	if ftr <= 0 {
		copy(out.X, o.ten)
		out.X[n] = αold
		out.Elastic = true
		return true
	}

	// return mapping
	hp := 3.0*o.G + o.H
	Δγ := ftr / hp
	m := 3.0 * o.G * Δγ / qtr
	for i := 0; i < n; i++ {
		out.X[i] = o.ten[i] - m*o.s[i]
	}
	out.X[n] = αold + Δγ

	// ∂X/∂Y with Y = [σtr, αold]
	//  dm/dσtr = c s    with  c = (3/2) (3G/qtr²) (1/hp - Δγ/qtr)
	c := 1.5 * 3.0 * o.G / (qtr * qtr) * (1.0/hp - Δγ/qtr)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.DXdY.Set(i, j, tsr.SecIdenMan[i]*tsr.SecIdenMan[j]/3.0+(1.0-m)*tsr.FouPsdMan[i][j]-c*o.s[i]*o.s[j])
		}
		out.DXdY.Set(i, n, o.s[i]*3.0*o.G*o.H/(qtr*hp))
		out.DXdY.Set(n, i, 1.5*o.s[i]/(qtr*hp))
	}
	out.DXdY.Set(n, n, 3.0*o.G/hp)
	return true
}
