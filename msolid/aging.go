// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"

	"github.com/cmi-go/cmi/substep"
)

// AgingElast implements a linear elastic model whose stiffness grows with time
// (e.g. curing concrete). The rate form is integrated: dσ = De(t) dε
//  E(t) = Einf (1 - β exp(-t/tA))
type AgingElast struct {

	// parameters
	Einf float64 // final Young's modulus
	Nu   float64 // Poisson's coefficient
	Beta float64 // β: E(0) = (1 - β) Einf
	TA   float64 // tA: characteristic time

	// auxiliary
	Nsig int        // number of stress components
	De   *la.Matrix // elastic modulus at the last requested time
}

// add model to factory
func init() {
	allocators["aging-elast"] = func() Model { return new(AgingElast) }
}

// Init initialises model
func (o *AgingElast) Init(ndim int, pstress bool, prms dbf.Params) (err error) {
	if pstress {
		return chk.Err("aging-elast: plane-stress is not available")
	}
	if ndim != 2 && ndim != 3 {
		return chk.Err("aging-elast: ndim must be 2 or 3. ndim=%d is invalid", ndim)
	}
	o.Nsig = 2 * ndim
	for _, p := range prms {
		switch p.N {
		case "Einf":
			o.Einf = p.V
		case "nu":
			o.Nu = p.V
		case "beta":
			o.Beta = p.V
		case "tA":
			o.TA = p.V
		default:
			return chk.Err("aging-elast: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.Einf <= 0 || o.TA <= 0 || o.Beta < 0 || o.Beta >= 1 || o.Nu <= -1 || o.Nu >= 0.5 {
		return chk.Err("aging-elast: invalid parameters: Einf=%g, nu=%g, beta=%g, tA=%g", o.Einf, o.Nu, o.Beta, o.TA)
	}
	o.De = la.NewMatrix(o.Nsig, o.Nsig)
	o.ElasticTangentAt(0)
	return
}

// GetPrms gets (an example) of parameters
func (o AgingElast) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "Einf", V: 1000},
		&dbf.P{N: "nu", V: 0.2},
		&dbf.P{N: "beta", V: 0.5},
		&dbf.P{N: "tA", V: 1},
	}
}

// InitIntVars initialises internal (secondary) variables
func (o AgingElast) InitIntVars(σ la.Vector) (s *State, err error) {
	s = NewState(o.Nsig, 0, 0)
	copy(s.Sig, σ)
	return
}

// Sizes returns the number of components of X and σ
func (o AgingElast) Sizes() (nx, nsig int) { return o.Nsig, o.Nsig }

// CalcE computes Young's modulus at time t
func (o AgingElast) CalcE(t float64) float64 {
	return o.Einf * (1.0 - o.Beta*math.Exp(-t/o.TA))
}

// ElasticTangent returns the elastic modulus at the last requested time
func (o *AgingElast) ElasticTangent() *la.Matrix { return o.De }

// ElasticTangentAt computes the elastic modulus at time t
func (o *AgingElast) ElasticTangentAt(t float64) *la.Matrix {
	E := o.CalcE(t)
	calcDe(o.De, Calc_K_from_Enu(E, o.Nu), Calc_G_from_Enu(E, o.Nu), o.Nsig)
	return o.De
}

// Integrate computes σ = σold + De(tOld) Δε
func (o *AgingElast) Integrate(out *substep.Local, xOld, Δε la.Vector, tOld, Δt float64) bool {
	De := o.ElasticTangentAt(tOld)
	la.MatVecMul(out.X, 1, De, Δε)
	for i := 0; i < o.Nsig; i++ {
		out.X[i] += xOld[i]
	}
	setIdentity(out.DXdY)
	return true
}
