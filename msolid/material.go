// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"

	"github.com/cmi-go/cmi/substep"
	"github.com/cmi-go/cmi/visco"
)

// Material integrates a local law at a material point with adaptive
// substepping and, optionally, Duvaut-Lions viscosity
type Material struct {
	Mdl   Model              // local law
	Opts  substep.Options    // substepping options
	Visco *visco.DuvautLions // viscosity; nil => rate-independent
	Jnl   *substep.Journal   // diagnostics of the last update; may be nil
	D     *la.Matrix         // consistent tangent dσ/dΔε after the last update [nsig][nsig]
	Last  *substep.Result    // result of the last update

	// auxiliary
	nx    int        // number of components of X
	nsig  int        // number of stress components
	x0    la.Vector  // X at the beginning of the increment
	σtr   la.Vector  // elastic trial stress
	σv    la.Vector  // viscous stress
	Dv    *la.Matrix // viscous tangent
	integ integrator // substepper
}

// integrator integrates one increment starting from x0
type integrator func(x0, Δε la.Vector, t, Δt float64) (*substep.Result, error)

// NewMaterial allocates a material point
//  τ -- relaxation time of Duvaut-Lions viscosity; τ == 0 => no viscosity
func NewMaterial(name string, ndim int, pstress bool, prms dbf.Params, opts *substep.Options, τ float64) (o *Material, err error) {
	mdl, err := New(name)
	if err != nil {
		return
	}
	err = mdl.Init(ndim, pstress, prms)
	if err != nil {
		return nil, chk.Err("cannot initialise model %q:\n%v", name, err)
	}
	return NewMaterialFor(mdl, opts, τ)
}

// NewMaterialFor allocates a material point with an initialised model
func NewMaterialFor(mdl Model, opts *substep.Options, τ float64) (o *Material, err error) {

	// options
	o = &Material{Mdl: mdl}
	if opts == nil {
		o.Opts.SetDefault()
	} else {
		o.Opts = *opts
	}
	if err = o.Opts.Check(); err != nil {
		return nil, err
	}
	if ns, ok := mdl.(NewtonSetter); ok {
		ns.SetNmaxIt(o.Opts.MaxNewtonIterations)
	}

	// viscosity
	if τ < 0 {
		return nil, chk.Err("relaxation time must be non-negative. τ=%g is invalid", τ)
	}
	if τ > 0 {
		o.Visco, err = visco.New(τ)
		if err != nil {
			return nil, err
		}
	}

	// substepper
	switch law := mdl.(type) {
	case Explicit:
		lw, ok := mdl.(substep.ExplicitLaw)
		if !ok {
			return nil, chk.Err("explicit model does not implement the local integration")
		}
		sub, _ := substep.NewExplicit(&o.Opts)
		o.integ = func(x0, Δε la.Vector, t, Δt float64) (*substep.Result, error) {
			return sub.Integrate(lw, x0, Δε, t, Δt, o.Jnl)
		}
	case substep.TimeLaw:
		sub, _ := substep.NewTimeVariant(&o.Opts)
		o.integ = func(x0, Δε la.Vector, t, Δt float64) (*substep.Result, error) {
			return sub.Integrate(law, x0, Δε, t, Δt, o.Jnl)
		}
	case substep.Law:
		sub, _ := substep.NewAdaptive(&o.Opts)
		o.integ = func(x0, Δε la.Vector, t, Δt float64) (*substep.Result, error) {
			return sub.Integrate(law, x0, Δε, t, Δt, o.Jnl)
		}
	default:
		return nil, chk.Err("model does not implement a local integration")
	}

	// auxiliary
	o.nx, o.nsig = mdl.Sizes()
	o.D = la.NewMatrix(o.nsig, o.nsig)
	o.x0 = la.NewVector(o.nx)
	o.σtr = la.NewVector(o.nsig)
	o.σv = la.NewVector(o.nsig)
	o.Dv = la.NewMatrix(o.nsig, o.nsig)
	return
}

// Update updates the state for the strain increment Δε over [t, t+Δt]
//  pnewdt -- suggested multiplier of the next increment; < 1 => cut increment
//  Note: s is not modified if the integration fails
func (o *Material) Update(s *State, Δε la.Vector, t, Δt float64) (pnewdt float64, err error) {

	// integrate
	o.Jnl.Reset()
	if s.Nx() != o.nx {
		return substep.PNewDTFailure, chk.Err("size of state (%d) must be equal to %d", s.Nx(), o.nx)
	}
	s.ToVector(o.x0)
	res, err := o.integ(o.x0, Δε, t, Δt)
	o.Last = res
	if err != nil {
		if res != nil {
			return res.PNewDT, err
		}
		return substep.PNewDTFailure, err
	}
	copy(o.D.Data, res.Tangent.Data)

	// viscosity: blend elastic trial and inviscid responses
	if o.Visco != nil {
		var Cel *la.Matrix
		if tl, ok := o.Mdl.(substep.TimeLaw); ok {
			Cel = tl.ElasticTangentAt(t)
		} else {
			Cel = o.Mdl.ElasticTangent()
		}
		la.MatVecMul(o.σtr, 1, Cel, Δε)
		for i := 0; i < o.nsig; i++ {
			o.σtr[i] += o.x0[i]
		}
		if err = o.Visco.ApplyOnStress(o.σv, o.σtr, res.X[:o.nsig], Δt); err != nil {
			return substep.PNewDTFailure, err
		}
		copy(res.X, o.σv)
		for i := o.nsig; i < o.nx; i++ {
			if res.X[i], err = o.Visco.ApplyOnStateVar(o.x0[i], res.X[i], Δt); err != nil {
				return substep.PNewDTFailure, err
			}
		}
		if err = o.Visco.ApplyOnTangent(o.Dv, Cel, o.D, Δt); err != nil {
			return substep.PNewDTFailure, err
		}
		copy(o.D.Data, o.Dv.Data)
	}

	// update state
	s.FromVector(res.X)
	s.Dgam = 0
	for i := range s.Alp {
		s.Dgam += res.X[o.nsig+i] - o.x0[o.nsig+i]
	}
	s.Loading = s.Dgam > 0
	if yl, ok := o.Mdl.(Yielder); ok && len(s.Active) > 0 {
		ftol := 1e-7 * (1.0 + s.Sig.Norm())
		f := yl.YieldFuncs(s)
		for i := range s.Active {
			s.Active[i] = f[i] > -ftol
			if s.Active[i] {
				s.Loading = true
			}
		}
	}
	return res.PNewDT, nil
}
