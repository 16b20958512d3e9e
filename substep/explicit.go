// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package substep

import "github.com/cpmech/gosl/la"

// Explicit integrates local laws that are given in closed form
type Explicit struct {
	Opts Options
}

// NewExplicit returns a new substepper. opts may be nil => default options
func NewExplicit(opts *Options) (o *Explicit, err error) {
	o = new(Explicit)
	err = initOptions(&o.Opts, opts)
	return
}

// Integrate integrates the strain increment Δε over the time increment ΔT
// starting from the state xOld at time tOld
func (o *Explicit) Integrate(law ExplicitLaw, xOld, Δε la.Vector, tOld, ΔT float64, jnl *Journal) (res *Result, err error) {
	nx, nsig := law.Sizes()
	if err = checkSizes(nx, nsig, xOld, Δε); err != nil {
		return
	}
	c := newCore(&o.Opts, nx, nsig, jnl)
	c.local = localFor(law, Δε, tOld, ΔT)
	c.tangent = explicitTangent
	return c.run(xOld)
}

// explicitTangent computes
//  res := dXdXold · T + h dXdΔε
func explicitTangent(res, T *la.Matrix, out *Local, progress, h float64) {
	la.MatMatMul(res, 1, out.DXdY, T)
	for k := range res.Data {
		res.Data[k] += h * out.DXdE.Data[k]
	}
}
