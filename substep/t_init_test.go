// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package substep

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// dbfParams returns parameters from name, value pairs
func dbfParams(nameval ...interface{}) (prms dbf.Params) {
	for i := 0; i < len(nameval); i += 2 {
		var v float64
		switch val := nameval[i+1].(type) {
		case int:
			v = float64(val)
		case float64:
			v = val
		}
		prms = append(prms, &dbf.P{N: nameval[i].(string), V: v})
	}
	return
}

// linearLaw: X = Y + [c Δt², 0] with Y = xOld + [Cel Δε; 0]
//  nx = 2: X = [σ, α]; α does not change
type linearLaw struct {
	E       float64 // stiffness
	C       float64 // coefficient of the Δt² drift (introduces a controlled error)
	Elastic bool    // report elastic steps
	Hmax    float64 // converges only if Δt <= Hmax (if Hmax > 0)
	Never   bool    // never converges
	Reason  error   // reason of non-convergence
	Cel     *la.Matrix
	ncalls  int
	dts     []float64 // Δt of all calls
}

func newLinearLaw(E float64) *linearLaw {
	return &linearLaw{E: E, Cel: la.NewMatrixDeep2([][]float64{{E}})}
}

func (o *linearLaw) Sizes() (nx, nsig int)      { return 2, 1 }
func (o *linearLaw) ElasticTangent() *la.Matrix { return o.Cel }

func (o *linearLaw) Integrate(out *Local, xOld, Δε la.Vector, tOld, Δt float64) bool {
	o.ncalls++
	o.dts = append(o.dts, Δt)
	if o.Never || (o.Hmax > 0 && Δt > o.Hmax+1e-15) {
		out.Reason = o.Reason
		return false
	}
	out.X[0] = xOld[0] + o.E*Δε[0] + o.C*Δt*Δt
	out.X[1] = xOld[1]
	out.DXdY.Set(0, 0, 1)
	out.DXdY.Set(0, 1, 0)
	out.DXdY.Set(1, 0, 0)
	out.DXdY.Set(1, 1, 1)
	out.Elastic = o.Elastic
	return true
}

// relaxLaw: backward Euler of dσ/dt = E dε/dt - σ/τ
//  σ = Y / (1 + Δt/τ)
type relaxLaw struct {
	E, Tau float64
	Cel    *la.Matrix
}

func (o *relaxLaw) Sizes() (nx, nsig int)      { return 1, 1 }
func (o *relaxLaw) ElasticTangent() *la.Matrix { return o.Cel }

func (o *relaxLaw) Integrate(out *Local, xOld, Δε la.Vector, tOld, Δt float64) bool {
	c := 1.0 / (1.0 + Δt/o.Tau)
	out.X[0] = (xOld[0] + o.E*Δε[0]) * c
	out.DXdY.Set(0, 0, c)
	return true
}

// expLaw: forward Euler of dσ/dε = K0 + a σ
type expLaw struct {
	K0, A float64
}

func (o *expLaw) Sizes() (nx, nsig int) { return 1, 1 }

func (o *expLaw) Integrate(out *Local, xOld, Δε la.Vector, tOld, Δt float64) bool {
	out.X[0] = xOld[0] + (o.K0+o.A*xOld[0])*Δε[0]
	out.DXdY.Set(0, 0, 1.0+o.A*Δε[0])
	out.DXdE.Set(0, 0, o.K0+o.A*xOld[0])
	return true
}

// ageLaw: σ = σold + E(tOld) Δε with E(t) = E0 (1 + t)
type ageLaw struct {
	E0  float64
	Cel *la.Matrix
}

func (o *ageLaw) Sizes() (nx, nsig int)      { return 1, 1 }
func (o *ageLaw) ElasticTangent() *la.Matrix { return o.ElasticTangentAt(0) }

func (o *ageLaw) ElasticTangentAt(t float64) *la.Matrix {
	if o.Cel == nil {
		o.Cel = la.NewMatrix(1, 1)
	}
	o.Cel.Set(0, 0, o.E0*(1.0+t))
	return o.Cel
}

func (o *ageLaw) Integrate(out *Local, xOld, Δε la.Vector, tOld, Δt float64) bool {
	out.X[0] = xOld[0] + o.E0*(1.0+tOld)*Δε[0]
	out.DXdY.Set(0, 0, 1)
	return true
}

// exact solution of the relaxation law with constant strain rate and σ(0) = 0
func relaxExact(E, τ, Δε, ΔT float64) float64 {
	return E * (Δε / ΔT) * τ * (1.0 - math.Exp(-ΔT/τ))
}
