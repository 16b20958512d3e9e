// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"

	"github.com/cmi-go/cmi/msolid"
	"github.com/cmi-go/cmi/substep"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_input01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("input01. yaml and json")

	y, err := ReadInput("data/vm01.yaml")
	require.NoError(tst, err)
	j, err := ReadInput("data/vm01.json")
	require.NoError(tst, err)

	// decoded values
	require.Equal(tst, "vm01", y.Key)
	require.Equal(tst, "vm", y.Model)
	require.Equal(tst, 2, y.Ndim)
	require.Len(tst, y.Prms, 4)
	require.Equal(tst, Prm{N: "qy0", V: 2}, y.Prms[2])
	require.Equal(tst, 2, y.Path.Nsub)
	require.Equal(tst, 10, y.MaxCuts)

	// options: given values and defaults
	var def substep.Options
	def.SetDefault()
	require.Equal(tst, substep.NormState, y.Substep.ErrorNorm)
	chk.Float64(tst, "tol", 1e-17, y.Substep.ErrorTolerance, 1e-8)
	chk.Float64(tst, "dtmin", 1e-17, y.Substep.MinStepSize, 1e-5)
	chk.Float64(tst, "safety", 1e-17, y.Substep.Safety, def.Safety)
	require.Equal(tst, def.MaxSubsteps, y.Substep.MaxSubsteps)

	// equivalence
	j.Key = y.Key
	require.Equal(tst, y, j)

	// path
	pth, err := y.NewPath()
	require.NoError(tst, err)
	require.Equal(tst, 4, pth.Size())
	chk.Array(tst, "Δε1", 1e-17, pth.Deps[1], []float64{0.002, -0.0005, -0.0005, 0.001})
	chk.Array(tst, "Δt", 1e-17, pth.Dt, []float64{0.5, 0.5, 0.25, 0.25})

	// run
	drv, err := y.Driver()
	require.NoError(tst, err)
	require.NoError(tst, drv.Run(pth))
	require.Len(tst, drv.Res, 5)
	chk.Float64(tst, "t", 1e-15, drv.T[4], 1.5)
	last := drv.Res[4]
	io.Pforan("σ = %v\n", last.Sig)
	if last.Alp[0] <= 0 {
		tst.Errorf("plastic strain must be positive. α=%g\n", last.Alp[0])
	}
}

func Test_input02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("input02. dp-cut with viscosity")

	in, err := ReadInput("data/dpcut01.yml")
	require.NoError(tst, err)
	require.Equal(tst, 3, in.Ndim)
	require.Equal(tst, 5, in.MaxCuts)
	require.False(tst, in.Substep.IgnoreErrorToleranceOnMinStepSize)
	require.Equal(tst, 25, in.Substep.MaxNewtonIterations)
	require.Len(tst, in.Path.Dt, 2)

	drv, err := in.Driver()
	require.NoError(tst, err)
	require.NotNil(tst, drv.Mat.Visco)
	pth, err := in.NewPath()
	require.NoError(tst, err)
	require.NoError(tst, drv.Run(pth))

	// elastic unloading then tension cutoff blended with the trial state
	//  w = τ/(τ+Δt) = 5/6; p_trial = 4 - 60; p_inviscid = -pt
	p1, _ := msolid.Invs(drv.Res[1].Sig)
	chk.Float64(tst, "p1", 1e-10, p1, 4)
	w := 5.0 / 6.0
	p2, q2 := msolid.Invs(drv.Res[2].Sig)
	chk.Float64(tst, "p2", 1e-9, p2, w*(-56.0)+(1.0-w)*(-1.0))
	chk.Float64(tst, "q2", 1e-9, q2, 0)
}

func Test_input03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("input03. errors")

	_, err := ReadInput("data/vm01.txt")
	require.Error(tst, err)
	_, err = ReadInput("data/nonexistent.yaml")
	require.Error(tst, err)
	require.Contains(tst, err.Error(), "cannot read input file")

	for _, src := range []string{
		`{"ndim":2, "path":{"deps":[[1,0,0,0]]}}`,                           // no model
		`{"model":"vm", "ndim":1, "path":{"deps":[[1,0]]}}`,                 // ndim
		`{"model":"vm", "path":{"deps":[]}}`,                                // no path
		`{"model":"vm", "path":{"deps":[[1,0,0]]}}`,                         // size of increment
		`{"model":"vm", "sig0":[1,2], "path":{"deps":[[1,0,0,0]]}}`,         // size of stress
		`{"model":"vm", "tau":-1, "path":{"deps":[[1,0,0,0]]}}`,             // tau
		`{"model":"vm", "substep":{"tol":-1}, "path":{"deps":[[1,0,0,0]]}}`, // options
		`{"model":"vm", "path":{"deps":[[1,0,0,0]]}`,                        // syntax
	} {
		_, err = Decode([]byte(src), "json")
		require.Error(tst, err, src)
	}
	_, err = Decode([]byte(`model: vm`), "toml")
	require.Error(tst, err)

	// unknown model fails when allocating the material
	in, err := Decode([]byte("model: none\npath: {deps: [[1, 0, 0, 0]]}\n"), "yaml")
	require.NoError(tst, err)
	_, err = in.Material()
	require.Error(tst, err)
}
