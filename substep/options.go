// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package substep

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// error norms
const (
	NormStress = "stress" // Euclidean norm of the stress part of the state
	NormState  = "state"  // Euclidean norm of the whole state
	NormRms    = "rms"    // scaled root-mean-square with Atol and Rtol
)

// Options holds the substepping control parameters
type Options struct {

	// step size control
	InitialStepSize                   float64 `json:"dt0" yaml:"dt0"`             // initial substep as fraction of the increment
	MinStepSize                       float64 `json:"dtmin" yaml:"dtmin"`         // minimum substep as fraction of the increment
	ErrorTolerance                    float64 `json:"tol" yaml:"tol"`             // tolerance on the Richardson error estimate
	IgnoreErrorToleranceOnMinStepSize bool    `json:"ignoretol" yaml:"ignoretol"` // accept full step when minimum step size is reached
	MaxNewtonIterations               int     `json:"nmaxit" yaml:"nmaxit"`       // max number of local Newton iterations (forwarded to models)
	MaxScaleUpFactor                  float64 `json:"scaleup" yaml:"scaleup"`     // max growth of the substep after an accepted step
	ScaleDownFactor                   float64 `json:"scaledown" yaml:"scaledown"` // multiplier of the substep when the local law fails
	Safety                            float64 `json:"safety" yaml:"safety"`       // safety factor of the step multiplier
	MinScale                          float64 `json:"minscale" yaml:"minscale"`   // min step multiplier
	MaxScale                          float64 `json:"maxscale" yaml:"maxscale"`   // max step multiplier
	SplitRatio                        float64 `json:"split" yaml:"split"`         // split the substep when error/tol is below this ratio
	MaxSubsteps                       int     `json:"nssmax" yaml:"nssmax"`       // max number of local integrations per increment

	// error norm
	ErrorNorm string  `json:"norm" yaml:"norm"` // "stress", "state" or "rms"
	Atol      float64 `json:"atol" yaml:"atol"` // absolute tolerance for the rms norm
	Rtol      float64 `json:"rtol" yaml:"rtol"` // relative tolerance for the rms norm
}

// SetDefault sets default values
func (o *Options) SetDefault() {
	o.InitialStepSize = 1.0
	o.MinStepSize = 1e-6
	o.ErrorTolerance = 1e-6
	o.IgnoreErrorToleranceOnMinStepSize = true
	o.MaxNewtonIterations = 15
	o.MaxScaleUpFactor = 10
	o.ScaleDownFactor = 0.5
	o.Safety = 0.9
	o.MinScale = 0.1
	o.MaxScale = 10
	o.SplitRatio = 2
	o.MaxSubsteps = 10000
	o.ErrorNorm = NormStress
	o.Atol = 1e-6
	o.Rtol = 1e-6
}

// Check checks the consistency of options
func (o *Options) Check() (err error) {
	if o.InitialStepSize <= 0 || o.InitialStepSize > 1 {
		return chk.Err("initial step size must be in (0, 1]. dt0=%g is invalid", o.InitialStepSize)
	}
	if o.MinStepSize <= 0 || o.MinStepSize > o.InitialStepSize {
		return chk.Err("minimum step size must be in (0, dt0]. dtmin=%g is invalid", o.MinStepSize)
	}
	if o.ErrorTolerance <= 0 {
		return chk.Err("error tolerance must be positive. tol=%g is invalid", o.ErrorTolerance)
	}
	if o.ScaleDownFactor <= 0 || o.ScaleDownFactor >= 1 {
		return chk.Err("scale down factor must be in (0, 1). scaledown=%g is invalid", o.ScaleDownFactor)
	}
	if o.MinScale <= 0 || o.MinScale >= 1 {
		return chk.Err("min step multiplier must be in (0, 1). minscale=%g is invalid", o.MinScale)
	}
	if o.MaxScale < 1 || o.MaxScaleUpFactor < 1 {
		return chk.Err("max step multipliers must be greater than or equal to 1. maxscale=%g, scaleup=%g are invalid", o.MaxScale, o.MaxScaleUpFactor)
	}
	if o.Safety <= 0 || o.Safety > 1 {
		return chk.Err("safety factor must be in (0, 1]. safety=%g is invalid", o.Safety)
	}
	if o.SplitRatio < 1 {
		return chk.Err("split ratio must be greater than or equal to 1. split=%g is invalid", o.SplitRatio)
	}
	if o.MaxSubsteps < 1 {
		return chk.Err("max number of substeps must be positive. nssmax=%d is invalid", o.MaxSubsteps)
	}
	switch o.ErrorNorm {
	case NormStress, NormState, NormRms:
	default:
		return chk.Err("error norm %q is not available. options are %q, %q or %q", o.ErrorNorm, NormStress, NormState, NormRms)
	}
	return
}

// ReadParams sets options from parameters; unknown names are ignored
func (o *Options) ReadParams(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch p.N {
		case "dt0":
			o.InitialStepSize = p.V
		case "dtmin":
			o.MinStepSize = p.V
		case "tol":
			o.ErrorTolerance = p.V
		case "ignoretol":
			o.IgnoreErrorToleranceOnMinStepSize = p.V > 0
		case "nmaxit":
			o.MaxNewtonIterations = int(p.V)
		case "scaleup":
			o.MaxScaleUpFactor = p.V
		case "scaledown":
			o.ScaleDownFactor = p.V
		case "safety":
			o.Safety = p.V
		case "minscale":
			o.MinScale = p.V
		case "maxscale":
			o.MaxScale = p.V
		case "split":
			o.SplitRatio = p.V
		case "nssmax":
			o.MaxSubsteps = int(p.V)
		}
	}
	return o.Check()
}
