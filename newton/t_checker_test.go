// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package newton

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

func init() {
	io.Verbose = false
}

func Test_checker01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("checker01")

	chkr := &Checker{
		Scale:     []float64{1, 2},
		NmaxIt:    3,
		NmaxItAlt: 5,
		Tol:       1e-10,
		RTol:      1e-10,
		TolAlt:    1e-6,
		RTolAlt:   1e-6,
	}
	chk.Float64(tst, "resnorm", 1e-15, chkr.ResidualNorm([]float64{3, 2}), 5)
	chk.Float64(tst, "relnorm", 1e-15, chkr.RelativeNorm([]float64{3, 4}, []float64{0, 10}), 0.5)
	chk.Float64(tst, "relnorm: tiny dx", 1e-20, chkr.RelativeNorm([]float64{1e-15, 0}, []float64{1, 1}), 1e-15)
	chk.Float64(tst, "relnorm: tiny x", 1e-20, chkr.RelativeNorm([]float64{1, 0}, []float64{1e-13, 0}), 0)

	x := la.Vector{1, 1}
	dx := la.Vector{0, 0}
	small := la.Vector{1e-8, 0}
	if chkr.IsConverged(small, x, dx, 1) {
		tst.Errorf("residual 1e-8 must not converge with the main tolerance\n")
		return
	}
	if !chkr.IsConverged(small, x, dx, 4) {
		tst.Errorf("residual 1e-8 must converge with the alternative tolerance\n")
		return
	}
	if chkr.IsConverged(small, x, dx, 7) {
		tst.Errorf("no convergence is possible beyond NmaxItAlt+1\n")
		return
	}
	if chkr.IterationFinished([]float64{1, 1}, x, dx, 5) {
		tst.Errorf("iterations must continue at it=5\n")
		return
	}
	if !chkr.IterationFinished([]float64{1, 1}, x, dx, 6) {
		tst.Errorf("iterations must finish at it=6\n")
		return
	}
	chk.String(tst, chkr.Check([]float64{1, 1}, x, dx, 2).String(), "continue")
	chk.String(tst, chkr.Check([]float64{1e-12, 0}, x, dx, 2).String(), "converged")
	chk.String(tst, chkr.Check([]float64{1, 1}, x, dx, 6).String(), "diverged")
	chk.String(tst, chkr.Check([]float64{math.NaN(), 1}, x, dx, 0).String(), "diverged")
}

func Test_checker02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("checker02")

	// converges when ||r|| <= tol; diverges when it > nmaxit
	chkr := NewChecker(4, 1e-8)
	x := la.Vector{1}
	dx := la.Vector{0.5}
	chk.String(tst, chkr.Check([]float64{1e-9}, x, dx, 1).String(), "converged")
	chk.String(tst, chkr.Check([]float64{1e-3}, x, dx, 4).String(), "continue")
	chk.String(tst, chkr.Check([]float64{1e-3}, x, dx, 5).String(), "diverged")
}

func Test_checkerMk2(tst *testing.T) {

	//verbose()
	chk.PrintTitle("checkerMk2")

	chkr := NewCheckerMk2(20, 1e-10, 2)
	x := la.Vector{1}

	// decreasing residuals => continue
	res := []float64{1, 0.5, 0.25, 0.1}
	for it, r := range res {
		status := chkr.Check([]float64{r}, x, nil, it)
		chk.String(tst, status.String(), "continue")
	}
	chk.Int(tst, "nhist", len(chkr.State().Hist), 3)
	chk.Int(tst, "it", chkr.State().It, 4)
	chk.Float64(tst, "prev", 1e-15, chkr.State().Prev, 0.25)

	// the returned history does not alias the checker's
	st := chkr.State()
	h0 := st.Hist[0]
	st.Hist[0] = 1e10
	chk.Float64(tst, "hist[0]", 1e-17, chkr.State().Hist[0], h0)

	// stagnation: 0.1 -> 0.2 -> 0.15 does not decrease over two iterations
	chk.String(tst, chkr.Check([]float64{0.2}, x, nil, 4).String(), "continue")
	chk.String(tst, chkr.Check([]float64{0.15}, x, nil, 5).String(), "diverged")

	// reset
	chkr.Reset()
	chk.Int(tst, "nhist after reset", len(chkr.State().Hist), 0)
	chk.String(tst, chkr.Check([]float64{1e-12}, x, nil, 0).String(), "converged")
}
