// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import "github.com/cpmech/gosl/la"

// State holds all continuum mechanics data of a material point
//  The local state integrated by the substepper is X = [σ, α]
type State struct {

	// essential
	Sig la.Vector // σ: current Cauchy stress tensor (effective) [nsig]

	// for plasticity (if len(α) > 0)
	Alp     la.Vector // α: internal variables of rate type [nalp]
	Dgam    float64   // Δγ: increment of Lagrange multiplier (for plasticity only)
	Loading bool      // unloading flag (for plasticity only)
	Active  []bool    // active yield surfaces after the last update [nsurf]
}

// NewState allocates state structure
func NewState(nsig, nalp, nsurf int) *State {
	var state State
	state.Sig = la.NewVector(nsig)
	if nalp > 0 {
		state.Alp = la.NewVector(nalp)
	}
	if nsurf > 0 {
		state.Active = make([]bool, nsurf)
	}
	return &state
}

// Set copies states
//  Note: 1) this and other states must have been pre-allocated with the same sizes
//        2) this method does not check for errors
func (o *State) Set(other *State) {
	copy(o.Sig, other.Sig)
	if len(o.Alp) > 0 {
		copy(o.Alp, other.Alp)
		o.Dgam = other.Dgam
		o.Loading = other.Loading
	}
	copy(o.Active, other.Active)
}

// GetCopy returns a copy of this state
func (o *State) GetCopy() *State {
	other := NewState(len(o.Sig), len(o.Alp), len(o.Active))
	other.Set(o)
	return other
}

// Nx returns the number of components of the local state X
func (o *State) Nx() int {
	return len(o.Sig) + len(o.Alp)
}

// ToVector packs σ and α into x = [σ, α]
func (o *State) ToVector(x la.Vector) {
	n := copy(x, o.Sig)
	copy(x[n:], o.Alp)
}

// FromVector unpacks x = [σ, α] into σ and α
func (o *State) FromVector(x la.Vector) {
	n := copy(o.Sig, x)
	copy(o.Alp, x[n:])
}
