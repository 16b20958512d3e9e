// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package visco implements the Duvaut-Lions viscosity regularisation of
// rate-independent (inviscid) responses
package visco

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// DuvautLions blends an elastic trial response with the inviscid response:
//
//  σ = w σtr + (1 - w) σinf    with    w = τ / (τ + Δt)
//
// Δt/τ → 0 gives the trial (elastic) response; Δt/τ → ∞ gives the inviscid one
type DuvautLions struct {
	Tau float64 // relaxation time τ
}

// New returns a new regulariser
func New(tau float64) (o *DuvautLions, err error) {
	if tau <= 0 {
		return nil, chk.Err("visco: relaxation time must be positive. τ=%g is invalid", tau)
	}
	return &DuvautLions{Tau: tau}, nil
}

// Weight returns the weight w of the trial response
func (o DuvautLions) Weight(Δt float64) float64 {
	return o.Tau / (o.Tau + Δt)
}

// ApplyOnStateVar blends a scalar state variable
func (o DuvautLions) ApplyOnStateVar(trial, inviscid, Δt float64) (res float64, err error) {
	if Δt < 0 {
		return 0, chk.Err("visco: time increment must be non-negative. Δt=%g is invalid", Δt)
	}
	w := o.Weight(Δt)
	return w*trial + (1.0-w)*inviscid, nil
}

// ApplyOnStress computes res := w trial + (1 - w) inviscid
func (o DuvautLions) ApplyOnStress(res, trial, inviscid la.Vector, Δt float64) (err error) {
	if Δt < 0 {
		return chk.Err("visco: time increment must be non-negative. Δt=%g is invalid", Δt)
	}
	if len(trial) != len(res) || len(inviscid) != len(res) {
		return chk.Err("visco: sizes of stress vectors do not match: %d, %d, %d", len(res), len(trial), len(inviscid))
	}
	w := o.Weight(Δt)
	for i := range res {
		res[i] = w*trial[i] + (1.0-w)*inviscid[i]
	}
	return
}

// ApplyOnTangent computes res := w trialTangent + (1 - w) inviscidTangent
func (o DuvautLions) ApplyOnTangent(res, trialTangent, inviscidTangent *la.Matrix, Δt float64) (err error) {
	if Δt < 0 {
		return chk.Err("visco: time increment must be non-negative. Δt=%g is invalid", Δt)
	}
	if !sameShape(res, trialTangent) || !sameShape(res, inviscidTangent) {
		return chk.Err("visco: shapes of tangent matrices do not match")
	}
	w := o.Weight(Δt)
	for i := 0; i < res.M; i++ {
		for j := 0; j < res.N; j++ {
			res.Set(i, j, w*trialTangent.Get(i, j)+(1.0-w)*inviscidTangent.Get(i, j))
		}
	}
	return
}

// ApplyOnMatTangent computes the tangent with respect to the trial stress
//  res := w I + (1 - w) dσinf/dσtr
func (o DuvautLions) ApplyOnMatTangent(res, dInfdTrial *la.Matrix, Δt float64) (err error) {
	if Δt < 0 {
		return chk.Err("visco: time increment must be non-negative. Δt=%g is invalid", Δt)
	}
	if !sameShape(res, dInfdTrial) || res.M != res.N {
		return chk.Err("visco: tangent matrices must be square and of the same size")
	}
	w := o.Weight(Δt)
	for i := 0; i < res.M; i++ {
		for j := 0; j < res.N; j++ {
			v := (1.0 - w) * dInfdTrial.Get(i, j)
			if i == j {
				v += w
			}
			res.Set(i, j, v)
		}
	}
	return
}

func sameShape(a, b *la.Matrix) bool {
	return a.M == b.M && a.N == b.N
}
