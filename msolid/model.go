// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msolid implements local constitutive laws for solids and their
// integration at material points by adaptive substepping
/*
 *  local state X = [σ, α]; trial state Y = X_old + [De Δε; 0]
 *
 *  implicit    | X = X(Y)         | DXdY = ∂X/∂Y
 *  explicit    | X = X(X_old, Δε) | DXdY = ∂X/∂X_old, DXdE = ∂X/∂Δε
 *  time-varied | implicit with De = De(t)
 */
package msolid

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
)

// Model defines the interface for local constitutive laws
type Model interface {
	Init(ndim int, pstress bool, prms dbf.Params) error // initialises model
	GetPrms() dbf.Params                                // gets (an example) of parameters
	InitIntVars(σ la.Vector) (*State, error)            // initialises AND allocates internal (secondary) variables
	Sizes() (nx, nsig int)                              // number of components of X and of σ
	ElasticTangent() *la.Matrix                         // elastic stiffness De at the reference state
}

// Explicit defines models integrated in closed form
//  Integrate computes X, DXdY = ∂X/∂X_old and DXdE = ∂X/∂Δε
type Explicit interface {
	Model
	explicit()
}

// Yielder defines models with yield surfaces
type Yielder interface {
	YieldFuncs(s *State) []float64 // computes the yield functions
}

// NewtonSetter defines models with inner Newton iterations
type NewtonSetter interface {
	SetNmaxIt(nmaxit int) // sets the max number of iterations
}

// New returns new solid model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'msolid' database", name)
	}
	return allocator(), nil
}

// allocators holds all available solid models; modelname => allocator
var allocators = map[string]func() Model{}

// Names returns the names of all available models, sorted
func Names() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}
