// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package substep

import "github.com/cpmech/gosl/la"

// StressNorm returns the Euclidean norm of the difference between the first
// nsig components (the stress) of a and b
func StressNorm(a, b la.Vector, nsig int) float64 {
	return a[:nsig].NormDiff(b[:nsig])
}

// StateNorm returns the Euclidean norm of a - b
func StateNorm(a, b la.Vector) float64 {
	return a.NormDiff(b)
}

// RmsError returns the scaled root-mean-square of a - b
//  rms = sqrt(Σ((a_i - b_i) / (atol + rtol |ref_i|))² / n)
func RmsError(a, b la.Vector, atol, rtol float64, ref la.Vector) float64 {
	if len(a) == 0 {
		return 0
	}
	return la.VecRmsError(a, b, atol, rtol, ref)
}

// errorRatio returns error/tolerance for the chosen norm. The rms norm is
// already scaled by its tolerances
func (o *Options) errorRatio(half, full la.Vector, nsig int) float64 {
	switch o.ErrorNorm {
	case NormState:
		return StateNorm(half, full) / o.ErrorTolerance
	case NormRms:
		return RmsError(half, full, o.Atol, o.Rtol, half)
	}
	return StressNorm(half, full, nsig) / o.ErrorTolerance
}
