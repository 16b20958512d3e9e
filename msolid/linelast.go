// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"

	"github.com/cmi-go/cmi/substep"
)

// LinElast implements a linear elastic model
type LinElast struct {
	SmallElasticity
	De *la.Matrix // elastic modulus
}

// add model to factory
func init() {
	allocators["lin-elast"] = func() Model { return new(LinElast) }
}

// Init initialises model
func (o *LinElast) Init(ndim int, pstress bool, prms dbf.Params) (err error) {
	err = o.SmallElasticity.Init(ndim, pstress, prms)
	if err != nil {
		return
	}
	o.De = la.NewMatrix(o.Nsig, o.Nsig)
	o.CalcDe(o.De)
	return
}

// GetPrms gets (an example) of parameters
func (o LinElast) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "E", V: 1000},
		&dbf.P{N: "nu", V: 0.25},
	}
}

// InitIntVars initialises internal (secondary) variables
func (o LinElast) InitIntVars(σ la.Vector) (s *State, err error) {
	s = NewState(o.Nsig, 0, 0)
	copy(s.Sig, σ)
	return
}

// Sizes returns the number of components of X and σ
func (o LinElast) Sizes() (nx, nsig int) { return o.Nsig, o.Nsig }

// ElasticTangent returns De
func (o LinElast) ElasticTangent() *la.Matrix { return o.De }

// Integrate computes σ = σold + De Δε
func (o *LinElast) Integrate(out *substep.Local, xOld, Δε la.Vector, tOld, Δt float64) bool {
	o.Update(out.X, xOld, Δε)
	setIdentity(out.DXdY)
	out.Elastic = true
	return true
}
