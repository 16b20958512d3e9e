// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package substep

import "github.com/cpmech/gosl/la"

// TimeVariant integrates implicit local laws whose elastic tangent changes in
// time. Cel is evaluated at the beginning of every substep
type TimeVariant struct {
	Opts Options
}

// NewTimeVariant returns a new substepper. opts may be nil => default options
func NewTimeVariant(opts *Options) (o *TimeVariant, err error) {
	o = new(TimeVariant)
	err = initOptions(&o.Opts, opts)
	return
}

// Integrate integrates the strain increment Δε over the time increment ΔT
// starting from the state xOld at time tOld
func (o *TimeVariant) Integrate(law TimeLaw, xOld, Δε la.Vector, tOld, ΔT float64, jnl *Journal) (res *Result, err error) {
	nx, nsig := law.Sizes()
	if err = checkSizes(nx, nsig, xOld, Δε); err != nil {
		return
	}
	c := newCore(&o.Opts, nx, nsig, jnl)
	c.local = localFor(law, Δε, tOld, ΔT)
	work := la.NewMatrix(nx, nsig)
	c.tangent = func(res, T *la.Matrix, out *Local, progress, h float64) {
		Cel := law.ElasticTangentAt(tOld + progress*ΔT)
		implicitTangent(res, T, out.DXdY, Cel, h, work)
	}
	return c.run(xOld)
}
