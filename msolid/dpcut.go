// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/tsr"

	"github.com/cmi-go/cmi/multisurf"
	"github.com/cmi-go/cmi/newton"
	"github.com/cmi-go/cmi/substep"
)

// surfaces of the Drucker-Prager model with tension cutoff
const (
	SurfShear   = 0 // f0 = q - M p - qy0 - H α
	SurfTension = 1 // f1 = -p - pt
)

// DruckerPragerCut implements associated Drucker-Prager plasticity with a
// tension cutoff. The return mapping is the closest point projection onto the
// active surfaces; active sets are tried until the multipliers are
// non-negative and the inactive surfaces are not violated
type DruckerPragerCut struct {
	SmallElasticity
	M   float64 // slope of fc line
	qy0 float64 // initial qy
	H   float64 // hardening variable
	Pt  float64 // tensile strength (mean stress)

	// local Newton iterations
	NmaxIt int                   // max number of iterations
	Tol    float64               // tolerance on residuals
	Last   multisurf.Combination // last converged combination
	ftol   float64               // tolerance on yield functions
	mgr    *multisurf.Manager    // active sets
	chkr   *newton.CheckerMk2    // convergence checks

	// auxiliary
	De    *la.Matrix         // elastic modulus
	ten   la.Vector          // trial stress
	s     la.Vector          // deviator
	nrm   [2]la.Vector       // normals to surfaces
	Denrm [2]la.Vector       // De · normals
	z     la.Vector          // unknowns
	dz    la.Vector          // corrections
	r     la.Vector          // residuals
	act   []int              // active surfaces
	J, Ji map[int]*la.Matrix // Jacobian and its inverse; number of active surfaces => matrix
}

// add model to factory
func init() {
	allocators["dp-cut"] = func() Model { return new(DruckerPragerCut) }
}

// Init initialises model
func (o *DruckerPragerCut) Init(ndim int, pstress bool, prms dbf.Params) (err error) {

	// parse parameters
	err = o.SmallElasticity.Init(ndim, pstress, prms)
	if err != nil {
		return
	}
	var c, φ float64
	var typ int
	o.NmaxIt = 15
	for _, p := range prms {
		switch p.N {
		case "M":
			o.M = p.V
		case "qy0":
			o.qy0 = p.V
		case "H":
			o.H = p.V
		case "pt":
			o.Pt = p.V
		case "c":
			c = p.V
		case "phi":
			φ = p.V
		case "typ":
			typ = int(p.V)
		case "nmaxit":
			o.NmaxIt = int(p.V)
		case "E", "nu", "K", "G":
		default:
			return chk.Err("dp-cut: parameter named %q is incorrect\n", p.N)
		}
	}

	// compute M from φ
	if φ > 0 {
		o.M, o.qy0, err = Mmatch(c, φ, typ)
		if err != nil {
			return
		}
	}

	// check
	if o.qy0 <= 0 || o.M < 0 || o.Pt < 0 {
		return chk.Err("dp-cut: qy0 must be positive and M and pt non-negative. qy0=%g, M=%g, pt=%g are invalid", o.qy0, o.M, o.Pt)
	}
	if o.qy0-o.M*o.Pt <= 0 {
		return chk.Err("dp-cut: tension cutoff must be inside the cone: qy0 - M pt = %g must be positive", o.qy0-o.M*o.Pt)
	}

	// local iterations
	o.Tol = 1e-10 * math.Max(1.0, o.qy0)
	o.ftol = 1e-9 * math.Max(1.0, o.qy0)
	o.mgr, err = multisurf.New(2, multisurf.FewestActiveFirst)
	if err != nil {
		return
	}
	o.SetNmaxIt(o.NmaxIt)

	// auxiliary structures
	o.De = la.NewMatrix(o.Nsig, o.Nsig)
	o.CalcDe(o.De)
	o.ten = la.NewVector(o.Nsig)
	o.s = la.NewVector(o.Nsig)
	for k := 0; k < 2; k++ {
		o.nrm[k] = la.NewVector(o.Nsig)
		o.Denrm[k] = la.NewVector(o.Nsig)
	}
	nmax := o.Nsig + 3
	o.z = la.NewVector(nmax)
	o.dz = la.NewVector(nmax)
	o.r = la.NewVector(nmax)
	o.J = make(map[int]*la.Matrix)
	o.Ji = make(map[int]*la.Matrix)
	for na := 1; na <= 2; na++ {
		o.J[na] = la.NewMatrix(o.Nsig+1+na, o.Nsig+1+na)
		o.Ji[na] = la.NewMatrix(o.Nsig+1+na, o.Nsig+1+na)
	}
	return
}

// SetNmaxIt sets the max number of local Newton iterations
func (o *DruckerPragerCut) SetNmaxIt(nmaxit int) {
	o.NmaxIt = nmaxit
	o.chkr = newton.NewCheckerMk2(nmaxit, o.Tol, 3)
}

// GetPrms gets (an example) of parameters
func (o DruckerPragerCut) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "K", V: 1000},
		&dbf.P{N: "G", V: 600},
		&dbf.P{N: "M", V: 1},
		&dbf.P{N: "qy0", V: 10},
		&dbf.P{N: "H", V: 0},
		&dbf.P{N: "pt", V: 2},
	}
}

// InitIntVars initialises internal (secondary) variables
func (o DruckerPragerCut) InitIntVars(σ la.Vector) (s *State, err error) {
	s = NewState(o.Nsig, 1, 2)
	copy(s.Sig, σ)
	return
}

// Sizes returns the number of components of X and σ
func (o DruckerPragerCut) Sizes() (nx, nsig int) { return o.Nsig + 1, o.Nsig }

// ElasticTangent returns De
func (o DruckerPragerCut) ElasticTangent() *la.Matrix { return o.De }

// YieldFuncs computes the yield functions
func (o DruckerPragerCut) YieldFuncs(s *State) []float64 {
	return o.yieldFuncs(s.Sig, s.Alp[0])
}

func (o DruckerPragerCut) yieldFuncs(σ la.Vector, α float64) []float64 {
	p, q := Invs(σ)
	return []float64{q - o.M*p - o.qy0 - o.H*α, -p - o.Pt}
}

// Integrate performs the return mapping
func (o *DruckerPragerCut) Integrate(out *substep.Local, xOld, Δε la.Vector, tOld, Δt float64) bool {

	// trial state
	n := o.Nsig
	o.Update(o.ten, xOld, Δε)
	αold := xOld[n]
	ftr := o.yieldFuncs(o.ten, αold)

	// elastic
	if ftr[SurfShear] <= o.ftol && ftr[SurfTension] <= o.ftol {
		copy(out.X, o.ten)
		out.X[n] = αold
		setIdentity(out.DXdY)
		out.Elastic = true
		o.Last = 0
		return true
	}

	// try the trial active set first; then all others
	o.mgr.Reset()
	o.mgr.MarkAsUsed(0)
	c := multisurf.FromFlags([]bool{ftr[SurfShear] > o.ftol, ftr[SurfTension] > o.ftol})
	for {
		o.mgr.MarkAsUsed(c)
		if o.solve(c, αold) && o.admissible(c) {
			break
		}
		var ok bool
		c, ok = o.mgr.NextUntried()
		if !ok {
			out.Reason = fmt.Errorf("%w: %w", substep.ErrCombinationsExhausted, multisurf.ErrExhausted)
			return false
		}
	}
	o.Last = c

	// results
	copy(out.X, o.z[:n+1])
	Ji := o.Ji[len(o.act)]
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			out.DXdY.Set(i, j, Ji.Get(i, j))
		}
	}
	return true
}

// solve solves the closest point projection problem with the active surfaces in c
//  z = [σ, α, Δγ_active]
//  r = [σ - σtr + Σ Δγk De nk, α - αold - Δγ0, f_active]
func (o *DruckerPragerCut) solve(c multisurf.Combination, αold float64) (converged bool) {

	// active surfaces
	o.act = o.act[:0]
	for k := 0; k < 2; k++ {
		if c.Active(k) {
			o.act = append(o.act, k)
		}
	}
	na := len(o.act)
	if na == 0 {
		return false
	}
	n := o.Nsig
	N := n + 1 + na
	z, dz, r := o.z[:N], o.dz[:N], o.r[:N]
	J, Ji := o.J[na], o.Ji[na]

	// initial values
	copy(z, o.ten)
	z[n] = αold
	for i := n + 1; i < N; i++ {
		z[i] = 0
	}
	for i := range dz {
		dz[i] = 0
	}

	// iterations
	o.chkr.Reset()
	for it := 0; ; it++ {

		// residual and Jacobian
		if !o.residual(r, J, z, αold) {
			return false
		}
		switch o.chkr.Check(r, z, dz, it) {
		case newton.Converged:
			la.MatInv(Ji, J, false)
			return true
		case newton.Diverged:
			return false
		}

		// update
		la.MatInv(Ji, J, false)
		la.MatVecMul(dz, -1, Ji, r)
		for i := range z {
			z[i] += dz[i]
		}
	}
}

// residual computes residuals and Jacobian; returns false if the normal to the
// shear surface is undefined
func (o *DruckerPragerCut) residual(r la.Vector, J *la.Matrix, z la.Vector, αold float64) bool {

	// state
	n := o.Nsig
	σ := z[:n]
	α := z[n]
	p, q := devInvs(o.s, σ)
	f := []float64{q - o.M*p - o.qy0 - o.H*α, -p - o.Pt}

	// normals
	for _, k := range o.act {
		switch k {
		case SurfShear:
			if q < 1e-12 {
				return false
			}
			for i := 0; i < n; i++ {
				o.nrm[k][i] = 1.5*o.s[i]/q + o.M*tsr.SecIdenMan[i]/3.0
				o.Denrm[k][i] = 3.0*o.G*o.s[i]/q + o.K*o.M*tsr.SecIdenMan[i]
			}
		case SurfTension:
			for i := 0; i < n; i++ {
				o.nrm[k][i] = tsr.SecIdenMan[i] / 3.0
				o.Denrm[k][i] = o.K * tsr.SecIdenMan[i]
			}
		}
	}

	// residual
	for i := 0; i < n; i++ {
		r[i] = σ[i] - o.ten[i]
	}
	r[n] = α - αold
	for a, k := range o.act {
		Δγ := z[n+1+a]
		for i := 0; i < n; i++ {
			r[i] += Δγ * o.Denrm[k][i]
		}
		if k == SurfShear {
			r[n] -= Δγ
		}
		r[n+1+a] = f[k]
	}

	// Jacobian
	for i := 0; i < J.M; i++ {
		for j := 0; j < J.N; j++ {
			J.Set(i, j, 0)
		}
	}
	for i := 0; i < n; i++ {
		J.Set(i, i, 1)
	}
	J.Set(n, n, 1)
	for a, k := range o.act {
		Δγ := z[n+1+a]
		col := n + 1 + a
		if k == SurfShear {
			// De · ∂n0/∂σ = 2G [3/(2q) Psd - 9/(4q³) s⊗s]
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					J.Add(i, j, Δγ*2.0*o.G*(1.5*tsr.FouPsdMan[i][j]/q-2.25*o.s[i]*o.s[j]/(q*q*q)))
				}
			}
			J.Set(n, col, -1)
			J.Set(col, n, -o.H)
		}
		for i := 0; i < n; i++ {
			J.Set(i, col, o.Denrm[k][i])
			J.Set(col, i, o.nrm[k][i])
		}
	}
	return true
}

// admissible checks the multipliers and the inactive surfaces
func (o *DruckerPragerCut) admissible(c multisurf.Combination) bool {
	n := o.Nsig
	for a := range o.act {
		if o.z[n+1+a] < 0 {
			return false
		}
	}
	f := o.yieldFuncs(o.z[:n], o.z[n])
	for k := 0; k < 2; k++ {
		if !c.Active(k) && f[k] > o.ftol {
			return false
		}
	}
	return true
}
