// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package substep

import "github.com/cpmech/gosl/la"

// Adaptive integrates implicit local laws with a constant elastic tangent
type Adaptive struct {
	Opts Options
}

// NewAdaptive returns a new substepper. opts may be nil => default options
func NewAdaptive(opts *Options) (o *Adaptive, err error) {
	o = new(Adaptive)
	err = initOptions(&o.Opts, opts)
	return
}

// Integrate integrates the strain increment Δε over the time increment ΔT
// starting from the state xOld at time tOld
func (o *Adaptive) Integrate(law Law, xOld, Δε la.Vector, tOld, ΔT float64, jnl *Journal) (res *Result, err error) {
	nx, nsig := law.Sizes()
	if err = checkSizes(nx, nsig, xOld, Δε); err != nil {
		return
	}
	Cel := law.ElasticTangent()
	c := newCore(&o.Opts, nx, nsig, jnl)
	c.local = localFor(law, Δε, tOld, ΔT)
	work := la.NewMatrix(nx, nsig)
	c.tangent = func(res, T *la.Matrix, out *Local, progress, h float64) {
		implicitTangent(res, T, out.DXdY, Cel, h, work)
	}
	return c.run(xOld)
}

// initOptions sets options from given ones or defaults
func initOptions(dest, opts *Options) (err error) {
	if opts == nil {
		dest.SetDefault()
	} else {
		*dest = *opts
	}
	return dest.Check()
}

// integrator integrates the local law over one substep
type integrator interface {
	Integrate(out *Local, xOld, Δε la.Vector, tOld, Δt float64) (converged bool)
}

// localFor returns the local integration of substeps of Δε over ΔT
func localFor(law integrator, Δε la.Vector, tOld, ΔT float64) localFcn {
	dε := la.NewVector(len(Δε))
	return func(out *Local, x la.Vector, progress, h float64) bool {
		for i := range Δε {
			dε[i] = h * Δε[i]
		}
		return law.Integrate(out, x, dε, tOld+progress*ΔT, h*ΔT)
	}
}

// implicitTangent computes
//  res := dXdY · (T + h E)    with    E = [Cel; 0]
func implicitTangent(res, T, dXdY, Cel *la.Matrix, h float64, work *la.Matrix) {
	copy(work.Data, T.Data)
	for i := 0; i < Cel.M; i++ {
		for j := 0; j < Cel.N; j++ {
			work.Add(i, j, h*Cel.Get(i, j))
		}
	}
	la.MatMatMul(res, 1, dXdY, work)
}
