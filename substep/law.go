// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package substep

import "github.com/cpmech/gosl/la"

// Local holds the output of one local integration over a substep
//  X = [σ, internal variables]
type Local struct {
	X       la.Vector  // new state [nx]
	DXdY    *la.Matrix // implicit: ∂X/∂Y with Y the trial state; explicit: ∂X/∂Xold [nx][nx]
	DXdE    *la.Matrix // explicit only: ∂X/∂Δε of the substep [nx][nsig]
	Elastic bool       // the substep was purely elastic
	Reason  error      // optional cause of a non-converged integration
}

// NewLocal allocates a new Local structure
func NewLocal(nx, nsig int) *Local {
	return &Local{
		X:    la.NewVector(nx),
		DXdY: la.NewMatrix(nx, nx),
		DXdE: la.NewMatrix(nx, nsig),
	}
}

// set copies another Local structure
func (o *Local) set(other *Local) {
	copy(o.X, other.X)
	copy(o.DXdY.Data, other.DXdY.Data)
	copy(o.DXdE.Data, other.DXdE.Data)
	o.Elastic = other.Elastic
	o.Reason = other.Reason
}

// Law defines local laws integrated implicitly with a constant elastic tangent.
// Integrate performs the local integration of the substep with strain increment
// Δε starting at time tOld with duration Δt and returns false if it did not
// converge. It must give the same results for the same inputs
type Law interface {
	Sizes() (nx, nsig int)      // number of state components and stress components
	ElasticTangent() *la.Matrix // elastic stiffness Cel [nsig][nsig]
	Integrate(out *Local, xOld, Δε la.Vector, tOld, Δt float64) (converged bool)
}

// TimeLaw defines local laws whose elastic tangent varies with time
type TimeLaw interface {
	Law
	ElasticTangentAt(t float64) *la.Matrix // elastic stiffness Cel(t) [nsig][nsig]
}

// ExplicitLaw defines local laws integrated in closed form. Integrate must
// set out.X, out.DXdY = ∂X/∂Xold and out.DXdE = ∂X/∂Δε
type ExplicitLaw interface {
	Sizes() (nx, nsig int)
	Integrate(out *Local, xOld, Δε la.Vector, tOld, Δt float64) (converged bool)
}
