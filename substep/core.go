// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package substep implements adaptive substepping of local constitutive laws
// with error control by Richardson extrapolation
package substep

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// PNewDTFailure is the suggested multiplier of the increment after a failure
const PNewDTFailure = 0.5

// stages of one substep cycle
type stage int

const (
	fullStep stage = iota
	firstHalfStep
	secondHalfStep
)

func (o stage) String() string {
	switch o {
	case fullStep:
		return "full step"
	case firstHalfStep:
		return "first half step"
	}
	return "second half step"
}

// Result holds the outcome of the integration of one increment
type Result struct {
	X          la.Vector  // state at the end of the increment; at Progress if failed
	Tangent    *la.Matrix // consistent tangent dσ/dΔε [nsig][nsig]
	PNewDT     float64    // suggested multiplier of the next increment
	Progress   float64    // converged fraction of the increment
	NSteps     int        // number of local integrations
	NAccepted  int        // number of accepted substeps
	NRejected  int        // number of substeps rejected by the error estimate
	NDiscarded int        // number of substeps discarded due to local divergence
	NSplit     int        // number of splits (first half step reused as full step)
}

// localFcn integrates the local law over the fraction h of the increment
// starting at progress
type localFcn func(out *Local, x la.Vector, progress, h float64) (converged bool)

// tangentFcn computes res := dX/dΔε at the end of the substep from T (at the
// beginning of the substep)
type tangentFcn func(res, T *la.Matrix, out *Local, progress, h float64)

// core implements the substep cycle shared by all variants
type core struct {
	opts    *Options
	jnl     *Journal
	nx      int
	nsig    int
	local   localFcn
	tangent tangentFcn

	// state at current progress
	x la.Vector  // converged state
	T *la.Matrix // dX/dΔε [nx][nsig]

	// substep cycle
	full  *Local     // full step
	half1 *Local     // first half step
	half2 *Local     // second half step
	Tfull *la.Matrix // tangent after full step
	Th1   *la.Matrix // tangent after first half step
	Th2   *la.Matrix // tangent after second half step
}

func newCore(opts *Options, nx, nsig int, jnl *Journal) *core {
	return &core{
		opts:  opts,
		jnl:   jnl,
		nx:    nx,
		nsig:  nsig,
		x:     la.NewVector(nx),
		T:     la.NewMatrix(nx, nsig),
		full:  NewLocal(nx, nsig),
		half1: NewLocal(nx, nsig),
		half2: NewLocal(nx, nsig),
		Tfull: la.NewMatrix(nx, nsig),
		Th1:   la.NewMatrix(nx, nsig),
		Th2:   la.NewMatrix(nx, nsig),
	}
}

// checkSizes checks the sizes of the initial state and strain increment
func checkSizes(nx, nsig int, xOld, Δε la.Vector) (err error) {
	if nsig < 1 || nx < nsig {
		return chk.Err("invalid sizes of local law: nx=%d, nsig=%d", nx, nsig)
	}
	if len(xOld) != nx {
		return chk.Err("size of state (%d) must be equal to %d", len(xOld), nx)
	}
	if len(Δε) != nsig {
		return chk.Err("size of strain increment (%d) must be equal to %d", len(Δε), nsig)
	}
	return
}

// stepScale returns the multiplier of the substep size for the given error ratio
func (o *Options) stepScale(ratio float64) float64 {
	scale := o.MaxScale
	if ratio > 1e-10 {
		scale = o.Safety * math.Sqrt(1.0/ratio)
	}
	return max(o.MinScale, min(scale, o.MaxScaleUpFactor, o.MaxScale))
}

// run integrates the increment starting from xOld
func (o *core) run(xOld la.Vector) (res *Result, err error) {

	// initial state
	copy(o.x, xOld)
	for k := range o.T.Data {
		o.T.Data[k] = 0
	}
	res = new(Result)
	progress := 0.0
	h := min(o.opts.InitialStepSize, 1.0)
	lastScale := 1.0
	noGrowth := false
	st := fullStep

	// output
	finish := func() {
		res.X = la.NewVector(o.nx)
		copy(res.X, o.x)
		res.Tangent = la.NewMatrix(o.nsig, o.nsig)
		for i := 0; i < o.nsig; i++ {
			for j := 0; j < o.nsig; j++ {
				res.Tangent.Set(i, j, o.T.Get(i, j))
			}
		}
		res.Progress = progress
	}
	fail := func(e error) (*Result, error) {
		finish()
		res.PNewDT = PNewDTFailure
		o.jnl.Warn("substepping failed at progress=%g with h=%g: %v", progress, h, e)
		return res, &IncrementError{Substep: res.NSteps, Progress: progress, StepSize: h, Err: e}
	}

	// accept full step alone
	acceptFull := func() {
		copy(o.x, o.full.X)
		copy(o.T.Data, o.Tfull.Data)
		progress += h
		res.NAccepted++
	}

	// local integration
	integrate := func(out *Local, x la.Vector, p, hh float64) (ok bool, e error) {
		if res.NSteps >= o.opts.MaxSubsteps {
			return false, ErrMaxSubsteps
		}
		res.NSteps++
		out.Elastic = false
		out.Reason = nil
		return o.local(out, x, p, hh), nil
	}

	// minimum step size reached with error above tolerance
	minStepReached := func() (e error) {
		if o.opts.IgnoreErrorToleranceOnMinStepSize {
			o.jnl.Warn("minimum step size reached; accepting full step with h=%g", h)
			acceptFull()
			return
		}
		return fmt.Errorf("%w: %w", ErrMinStepSize, ErrTolerance)
	}

	// substep cycles
	for {
		switch st {

		case fullStep:

			// reached the end of the increment
			if progress >= 1.0-2e-16 {
				progress = 1.0
				finish()
				res.PNewDT = 1.0
				if res.NRejected+res.NDiscarded == 0 {
					res.PNewDT = max(1.0, lastScale)
				}
				return res, nil
			}

			// full step
			h = min(h, 1.0-progress)
			ok, e := integrate(o.full, o.x, progress, h)
			if e != nil {
				return fail(e)
			}
			if !ok {
				res.NDiscarded++
				noGrowth = true
				reason := o.full.Reason
				if reason == nil {
					reason = ErrLocalDivergence
				}
				o.jnl.Notify("%s with h=%g discarded: %v", st, h, reason)
				h *= o.opts.ScaleDownFactor
				if h < o.opts.MinStepSize {
					return fail(fmt.Errorf("%w: %w", ErrMinStepSize, reason))
				}
				continue
			}
			o.tangent(o.Tfull, o.T, o.full, progress, h)

			// elastic steps are exact
			if o.full.Elastic {
				acceptFull()
				continue
			}
			st = firstHalfStep

		case firstHalfStep:
			ok, e := integrate(o.half1, o.x, progress, h/2.0)
			if e != nil {
				return fail(e)
			}
			if !ok {
				o.jnl.Warn("%s with h=%g did not converge; accepting full step", st, h/2.0)
				acceptFull()
				st = fullStep
				continue
			}
			o.tangent(o.Th1, o.T, o.half1, progress, h/2.0)
			st = secondHalfStep

		case secondHalfStep:
			ok, e := integrate(o.half2, o.half1.X, progress+h/2.0, h/2.0)
			if e != nil {
				return fail(e)
			}
			if !ok {
				o.jnl.Warn("%s with h=%g did not converge; accepting full step", st, h/2.0)
				acceptFull()
				st = fullStep
				continue
			}
			o.tangent(o.Th2, o.Th1, o.half2, progress+h/2.0, h/2.0)

			// error estimate
			ratio := o.opts.errorRatio(o.half2.X, o.full.X, o.nsig)
			scale := o.opts.stepScale(ratio)

			// accept Richardson's extrapolation
			if ratio <= 1.0 {
				for i := 0; i < o.nx; i++ {
					o.x[i] = 2.0*o.half2.X[i] - o.full.X[i]
				}
				for k := range o.T.Data {
					o.T.Data[k] = 2.0*o.Th2.Data[k] - o.Tfull.Data[k]
				}
				progress += h
				res.NAccepted++
				if noGrowth { // do not allow h to grow if previous was a reject
					scale = min(scale, 1.0)
				}
				noGrowth = false
				lastScale = scale
				h = max(h*scale, o.opts.MinStepSize)
				st = fullStep
				continue
			}

			// reject
			res.NRejected++
			noGrowth = true
			o.jnl.Notify("substep with h=%g rejected: error/tol=%g", h, ratio)

			// split: first half step becomes the new full step
			if ratio < o.opts.SplitRatio {
				if h/2.0 < o.opts.MinStepSize {
					if e = minStepReached(); e != nil {
						return fail(e)
					}
					st = fullStep
					continue
				}
				o.full.set(o.half1)
				copy(o.Tfull.Data, o.Th1.Data)
				h /= 2.0
				res.NSplit++
				st = firstHalfStep
				continue
			}

			// repeat with smaller step
			if h <= o.opts.MinStepSize {
				if e = minStepReached(); e != nil {
					return fail(e)
				}
				st = fullStep
				continue
			}
			h = max(h*scale, o.opts.MinStepSize)
			st = fullStep
		}
	}
}
