// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/tsr"
)

// Calc_K_from_Enu returns the bulk modulus K for given Young's modulus and Poisson's coefficient
func Calc_K_from_Enu(E, ν float64) float64 { return E / (3.0 * (1.0 - 2.0*ν)) }

// Calc_G_from_Enu returns the shear modulus G for given Young's modulus and Poisson's coefficient
func Calc_G_from_Enu(E, ν float64) float64 { return E / (2.0 * (1.0 + ν)) }

// Calc_E_from_KG returns Young's modulus for given bulk and shear moduli
func Calc_E_from_KG(K, G float64) float64 { return 9.0 * K * G / (3.0*K + G) }

// Calc_nu_from_KG returns Poisson's coefficient for given bulk and shear moduli
func Calc_nu_from_KG(K, G float64) float64 { return (3.0*K - 2.0*G) / (6.0*K + 2.0*G) }

// SmallElasticity implements linear/isotropic elasticity for small strain analyses
type SmallElasticity struct {
	E    float64 // Young's modulus
	Nu   float64 // Poisson's coefficient
	K    float64 // Bulk modulus
	G    float64 // Shear modulus
	Nsig int     // number of stress components
}

// Init initialises this structure. Parameters: either {E, nu} or {K, G}
func (o *SmallElasticity) Init(ndim int, pstress bool, prms dbf.Params) (err error) {
	if pstress {
		return chk.Err("plane-stress is not available for local integration")
	}
	if ndim != 2 && ndim != 3 {
		return chk.Err("ndim must be 2 or 3. ndim=%d is invalid", ndim)
	}
	o.Nsig = 2 * ndim
	var hasE, hasNu, hasK, hasG bool
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E, hasE = p.V, true
		case "nu":
			o.Nu, hasNu = p.V, true
		case "K":
			o.K, hasK = p.V, true
		case "G":
			o.G, hasG = p.V, true
		}
	}
	switch {
	case hasE && hasNu:
		if o.Nu <= -1 || o.Nu >= 0.5 {
			return chk.Err("Poisson's coefficient must be in (-1, 0.5). nu=%g is invalid", o.Nu)
		}
		o.K = Calc_K_from_Enu(o.E, o.Nu)
		o.G = Calc_G_from_Enu(o.E, o.Nu)
	case hasK && hasG:
		o.E = Calc_E_from_KG(o.K, o.G)
		o.Nu = Calc_nu_from_KG(o.K, o.G)
	default:
		return chk.Err("elasticity requires either {E, nu} or {K, G}")
	}
	if o.K <= 0 || o.G <= 0 {
		return chk.Err("elastic moduli must be positive. K=%g and G=%g are invalid", o.K, o.G)
	}
	return
}

// CalcDe computes the elastic modulus De = K Im⊗Im + 2 G Psd
func (o SmallElasticity) CalcDe(De *la.Matrix) {
	calcDe(De, o.K, o.G, o.Nsig)
}

// Update computes σ := σold + De Δε
func (o SmallElasticity) Update(σ, σold, Δε la.Vector) {
	trΔε := Δε[0] + Δε[1] + Δε[2]
	for i := 0; i < o.Nsig; i++ {
		devΔε_i := Δε[i] - trΔε*tsr.SecIdenMan[i]/3.0
		σ[i] = σold[i] + o.K*trΔε*tsr.SecIdenMan[i] + 2.0*o.G*devΔε_i
	}
}

// calcDe computes De = K Im⊗Im + 2 G Psd
func calcDe(De *la.Matrix, K, G float64, nsig int) {
	for i := 0; i < nsig; i++ {
		for j := 0; j < nsig; j++ {
			De.Set(i, j, K*tsr.SecIdenMan[i]*tsr.SecIdenMan[j]+2.0*G*tsr.FouPsdMan[i][j])
		}
	}
}
