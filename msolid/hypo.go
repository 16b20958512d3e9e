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

// HypoElast implements a pressure-dependent hypoelastic model for powders and porous media
//  dσ = (K(p) Im⊗Im + 2 G Psd) dε    with    K(p) = K0 + a p
type HypoElast struct {

	// constants
	Nsig int // number of stress components

	// parameters
	K0 float64 // bulk modulus at p = 0
	A  float64 // a = dK/dp
	G  float64 // shear modulus

	// auxiliary
	De *la.Matrix // elastic modulus at p = 0
}

// add model to factory
func init() {
	allocators["hypo-elast"] = func() Model { return new(HypoElast) }
}

// Init initialises model
func (o *HypoElast) Init(ndim int, pstress bool, prms dbf.Params) (err error) {

	// constants
	if pstress {
		return chk.Err("hypo-elast: plane-stress is not available")
	}
	if ndim != 2 && ndim != 3 {
		return chk.Err("hypo-elast: ndim must be 2 or 3. ndim=%d is invalid", ndim)
	}
	o.Nsig = 2 * ndim

	// parameters
	for _, p := range prms {
		switch p.N {
		case "K0":
			o.K0 = p.V
		case "a":
			o.A = p.V
		case "G":
			o.G = p.V
		default:
			return chk.Err("hypo-elast: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.K0 <= 0 || o.G <= 0 || o.A < 0 {
		return chk.Err("hypo-elast: K0 and G must be positive and a non-negative. K0=%g, G=%g, a=%g are invalid", o.K0, o.G, o.A)
	}

	// auxiliary
	o.De = la.NewMatrix(o.Nsig, o.Nsig)
	calcDe(o.De, o.K0, o.G, o.Nsig)
	return
}

// GetPrms gets (an example) of parameters
func (o HypoElast) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "K0", V: 100},
		&dbf.P{N: "a", V: 10},
		&dbf.P{N: "G", V: 60},
	}
}

// InitIntVars initialises internal (secondary) variables
func (o HypoElast) InitIntVars(σ la.Vector) (s *State, err error) {
	s = NewState(o.Nsig, 0, 0)
	copy(s.Sig, σ)
	return
}

// Sizes returns the number of components of X and σ
func (o HypoElast) Sizes() (nx, nsig int) { return o.Nsig, o.Nsig }

// ElasticTangent returns the elastic modulus at p = 0
func (o HypoElast) ElasticTangent() *la.Matrix { return o.De }

// CalcK computes the bulk modulus. Negative values are not allowed
func (o HypoElast) CalcK(p float64) float64 {
	K := o.K0 + o.A*p
	if K < 1e-3*o.K0 {
		return 1e-3 * o.K0
	}
	return K
}

// Integrate computes (forward Euler)
//  σ = σold + D(σold) Δε
//  ∂σ/∂σold = I - tr(Δε) a/3 Im⊗Im    (if K(p) > 0)
func (o *HypoElast) Integrate(out *substep.Local, xOld, Δε la.Vector, tOld, Δt float64) bool {
	p, _ := Invs(xOld[:o.Nsig])
	K := o.CalcK(p)
	dKdp := o.A
	if K != o.K0+o.A*p {
		dKdp = 0
	}
	trΔε := Δε[0] + Δε[1] + Δε[2]
	for i := 0; i < o.Nsig; i++ {
		out.X[i] = xOld[i]
		for j := 0; j < o.Nsig; j++ {
			Dij := K*tsr.SecIdenMan[i]*tsr.SecIdenMan[j] + 2.0*o.G*tsr.FouPsdMan[i][j]
			out.X[i] += Dij * Δε[j]
			out.DXdE.Set(i, j, Dij)
			v := -trΔε * dKdp * tsr.SecIdenMan[i] * tsr.SecIdenMan[j] / 3.0
			if i == j {
				v += 1
			}
			out.DXdY.Set(i, j, v)
		}
	}
	return true
}

func (o HypoElast) explicit() {}
