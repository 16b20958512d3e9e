// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"errors"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/cmi-go/cmi/substep"
)

// Path holds strain increments and time increments
type Path struct {
	Deps []la.Vector // strain increments [ninc][nsig]
	Dt   []float64   // time increments [ninc]
}

// NewPath returns a path where each given increment is split into nsub equal parts
//  dt -- time increments; nil => unit time increments
func NewPath(deps [][]float64, dt []float64, nsub int) (o *Path, err error) {
	if len(deps) == 0 {
		return nil, chk.Err("path must have at least one increment")
	}
	if dt != nil && len(dt) != len(deps) {
		return nil, chk.Err("number of time increments (%d) must be equal to the number of strain increments (%d)", len(dt), len(deps))
	}
	if nsub < 1 {
		nsub = 1
	}
	nsig := len(deps[0])
	o = new(Path)
	for i, Δε := range deps {
		if len(Δε) != nsig {
			return nil, chk.Err("all strain increments must have %d components. increment %d has %d", nsig, i, len(Δε))
		}
		Δt := 1.0
		if dt != nil {
			Δt = dt[i]
		}
		if Δt < 0 {
			return nil, chk.Err("time increments must be non-negative. Δt[%d]=%g is invalid", i, Δt)
		}
		for k := 0; k < nsub; k++ {
			v := la.NewVector(nsig)
			for j := range v {
				v[j] = Δε[j] / float64(nsub)
			}
			o.Deps = append(o.Deps, v)
			o.Dt = append(o.Dt, Δt/float64(nsub))
		}
	}
	return
}

// Size returns the number of increments
func (o *Path) Size() int { return len(o.Deps) }

// Driver runs a material point along a strain path
type Driver struct {

	// input
	Mat     *Material // material point
	MaxCuts int       // max number of cuts of one increment
	SaveD   bool      // save tangents
	Verbose bool      // show messages

	// results
	Res   []*State     // stress/internal states [ninc+1]
	Eps   []la.Vector  // strains [ninc+1][nsig]
	T     []float64    // times [ninc+1]
	D     []*la.Matrix // tangents [ninc] (if SaveD)
	NCuts []int        // number of cuts per increment [ninc]
}

// Init initialises driver
//  σ0 -- initial stress; nil => zero
func (o *Driver) Init(mat *Material, σ0 la.Vector) (err error) {
	o.Mat = mat
	if o.MaxCuts < 1 {
		o.MaxCuts = 10
	}
	_, nsig := mat.Mdl.Sizes()
	if σ0 == nil {
		σ0 = la.NewVector(nsig)
	}
	if len(σ0) != nsig {
		return chk.Err("initial stress must have %d components", nsig)
	}
	s, err := mat.Mdl.InitIntVars(σ0)
	if err != nil {
		return
	}
	o.Res = []*State{s}
	o.Eps = []la.Vector{la.NewVector(nsig)}
	o.T = []float64{0}
	o.D = nil
	o.NCuts = nil
	return
}

// Run integrates the path. Increments are cut when the material suggests so
func (o *Driver) Run(pth *Path) (err error) {

	// check
	if len(o.Res) == 0 {
		return chk.Err("driver must be initialised first")
	}
	_, nsig := o.Mat.Mdl.Sizes()
	if len(pth.Deps) != len(pth.Dt) {
		return chk.Err("path is inconsistent: %d strain increments and %d time increments", len(pth.Deps), len(pth.Dt))
	}

	// auxiliary
	Δε := la.NewVector(nsig)
	s := o.Res[len(o.Res)-1].GetCopy()
	strial := s.GetCopy()
	ε := la.NewVector(nsig)
	copy(ε, o.Eps[len(o.Eps)-1])
	t := o.T[len(o.T)-1]

	// for all increments
	for inc, ΔεInc := range pth.Deps {
		if len(ΔεInc) != nsig {
			return chk.Err("strain increment %d must have %d components", inc, nsig)
		}
		ΔtInc := pth.Dt[inc]
		done, frac, ncuts := 0.0, 1.0, 0
		for done < 1.0-1e-15 {
			frac = utl.Min(frac, 1.0-done)
			for i := 0; i < nsig; i++ {
				Δε[i] = frac * ΔεInc[i]
			}
			strial.Set(s)
			pnewdt, e := o.Mat.Update(strial, Δε, t, frac*ΔtInc)
			if e != nil {
				if pnewdt >= 1 || !cuttable(e) {
					return chk.Err("increment %d failed:\n%v", inc, e)
				}
				ncuts++
				if ncuts > o.MaxCuts {
					return chk.Err("increment %d failed after %d cuts:\n%v", inc, o.MaxCuts, e)
				}
				frac *= pnewdt
				if o.Verbose {
					io.Pfred("increment %d: cutting to %g\n", inc, frac)
				}
				continue
			}
			s.Set(strial)
			for i := 0; i < nsig; i++ {
				ε[i] += Δε[i]
			}
			t += frac * ΔtInc
			done += frac
		}

		// results
		o.Res = append(o.Res, s.GetCopy())
		εcopy := la.NewVector(nsig)
		copy(εcopy, ε)
		o.Eps = append(o.Eps, εcopy)
		o.T = append(o.T, t)
		o.NCuts = append(o.NCuts, ncuts)
		if o.SaveD {
			D := la.NewMatrix(nsig, nsig)
			copy(D.Data, o.Mat.D.Data)
			o.D = append(o.D, D)
		}
		if o.Verbose {
			io.Pf("%4d: t=%g σ=%v α=%v\n", inc, t, s.Sig, s.Alp)
		}
	}
	return
}

// cuttable returns whether a smaller increment may succeed
func cuttable(err error) bool {
	return errors.Is(err, substep.ErrMinStepSize) ||
		errors.Is(err, substep.ErrMaxSubsteps) ||
		errors.Is(err, substep.ErrLocalDivergence) ||
		errors.Is(err, substep.ErrCombinationsExhausted)
}
