// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package substep

import (
	"errors"

	"github.com/cpmech/gosl/io"
)

// failure kinds
var (
	ErrLocalDivergence       = errors.New("local integration did not converge")
	ErrTolerance             = errors.New("error tolerance not satisfied")
	ErrMinStepSize           = errors.New("minimum step size reached")
	ErrCombinationsExhausted = errors.New("all yield surface combinations tried")
	ErrMaxSubsteps           = errors.New("maximum number of substeps reached")
)

// IncrementError reports where the integration of one increment stopped
type IncrementError struct {
	Substep  int     // number of local integrations performed
	Progress float64 // converged fraction of the increment
	StepSize float64 // last substep size
	Err      error   // one (or more) of the failure kinds
}

func (e *IncrementError) Error() string {
	return io.Sf("substep %d (progress=%g, h=%g): %v", e.Substep, e.Progress, e.StepSize, e.Err)
}

func (e *IncrementError) Unwrap() error {
	return e.Err
}
