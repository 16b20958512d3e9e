// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from (.json) or (.yaml) files
// describing a material point simulation
package inp

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"

	"github.com/cmi-go/cmi/msolid"
	"github.com/cmi-go/cmi/substep"
)

// Prm holds one material parameter
type Prm struct {
	N string  `json:"n" yaml:"n"` // name
	V float64 `json:"v" yaml:"v"` // value
}

// PathData holds the strain path
type PathData struct {
	Deps [][]float64 `json:"deps" yaml:"deps"` // strain increments [ninc][nsig]
	Dt   []float64   `json:"dt" yaml:"dt"`     // time increments [ninc]; empty => unit increments
	Nsub int         `json:"nsub" yaml:"nsub"` // number of equal parts of each increment
}

// Input holds all data of a material point simulation
type Input struct {

	// material
	Desc    string          `json:"desc" yaml:"desc"`       // description of simulation
	Model   string          `json:"model" yaml:"model"`     // model name; e.g. "vm"
	Ndim    int             `json:"ndim" yaml:"ndim"`       // space dimension
	Prms    []Prm           `json:"prms" yaml:"prms"`       // model parameters
	Tau     float64         `json:"tau" yaml:"tau"`         // relaxation time of viscosity; 0 => rate-independent
	Substep substep.Options `json:"substep" yaml:"substep"` // substepping options

	// loading
	Sig0    []float64 `json:"sig0" yaml:"sig0"`       // initial stress; empty => zero
	Path    PathData  `json:"path" yaml:"path"`       // strain path
	MaxCuts int       `json:"maxcuts" yaml:"maxcuts"` // max number of cuts of one increment

	// output
	Verbose bool `json:"verbose" yaml:"verbose"` // show messages

	// derived
	Key string `json:"-" yaml:"-"` // filename key; e.g. "vm01" for "/tmp/vm01.yaml"
}

// SetDefault sets default values
func (o *Input) SetDefault() {
	o.Ndim = 2
	o.Substep.SetDefault()
	o.Path.Nsub = 1
	o.MaxCuts = 10
}

// PostProcess performs a post-processing of the just decoded data
func (o *Input) PostProcess() {
	if o.Path.Nsub < 1 {
		o.Path.Nsub = 1
	}
	if len(o.Path.Dt) == 0 {
		o.Path.Dt = nil
	}
}

// Check checks data
func (o *Input) Check() (err error) {
	if o.Model == "" {
		return chk.Err("model name must be given")
	}
	if o.Ndim != 2 && o.Ndim != 3 {
		return chk.Err("ndim must be 2 or 3. ndim=%d is invalid", o.Ndim)
	}
	if o.Tau < 0 {
		return chk.Err("relaxation time must be non-negative. tau=%g is invalid", o.Tau)
	}
	nsig := 2 * o.Ndim
	if len(o.Sig0) != 0 && len(o.Sig0) != nsig {
		return chk.Err("initial stress must have %d components. %d given", nsig, len(o.Sig0))
	}
	if len(o.Path.Deps) == 0 {
		return chk.Err("path must have at least one strain increment")
	}
	for i, Δε := range o.Path.Deps {
		if len(Δε) != nsig {
			return chk.Err("strain increment %d must have %d components. %d given", i, nsig, len(Δε))
		}
	}
	return o.Substep.Check()
}

// Params returns the model parameters
func (o *Input) Params() (prms dbf.Params) {
	for _, p := range o.Prms {
		prms = append(prms, &dbf.P{N: p.N, V: p.V})
	}
	return
}

// Material allocates the material point
func (o *Input) Material() (*msolid.Material, error) {
	return msolid.NewMaterial(o.Model, o.Ndim, false, o.Params(), &o.Substep, o.Tau)
}

// NewPath returns the strain path
func (o *Input) NewPath() (*msolid.Path, error) {
	return msolid.NewPath(o.Path.Deps, o.Path.Dt, o.Path.Nsub)
}

// Driver allocates the material point and initialises a driver
func (o *Input) Driver() (drv *msolid.Driver, err error) {
	mat, err := o.Material()
	if err != nil {
		return
	}
	drv = &msolid.Driver{MaxCuts: o.MaxCuts, Verbose: o.Verbose}
	if o.Verbose {
		mat.Jnl = substep.NewJournal(true)
	}
	err = drv.Init(mat, o.Sig0)
	return
}

// Decode decodes input data
//  format -- "json" or "yaml"
func Decode(b []byte, format string) (o *Input, err error) {

	// set default values
	o = new(Input)
	o.SetDefault()

	// decode
	switch format {
	case "json":
		err = json.Unmarshal(b, o)
	case "yaml":
		err = yaml.Unmarshal(b, o)
	default:
		return nil, chk.Err("format %q is invalid; must be \"json\" or \"yaml\"", format)
	}
	if err != nil {
		return nil, chk.Err("cannot decode %s input:\n%v", format, err)
	}

	// post-process and check
	o.PostProcess()
	if err = o.Check(); err != nil {
		return nil, err
	}
	return
}

// ReadInput reads input file. The format is given by the extension:
//  .json => JSON; .yaml or .yml => YAML
func ReadInput(fn string) (o *Input, err error) {

	// format
	var format string
	ext := strings.ToLower(filepath.Ext(fn))
	switch ext {
	case ".json":
		format = "json"
	case ".yaml", ".yml":
		format = "yaml"
	default:
		return nil, chk.Err("extension %q of input file %q is invalid", ext, fn)
	}

	// read file
	b, err := readFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read input file %q:\n%v", fn, err)
	}

	// decode
	o, err = Decode(b, format)
	if err != nil {
		return nil, chk.Err("file %q:\n%v", fn, err)
	}
	o.Key = strings.TrimSuffix(filepath.Base(fn), filepath.Ext(fn))
	return
}

// readFile reads fn with io.ReadFile, turning its panic into an error
func readFile(fn string) (b []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("%v", r)
		}
	}()
	b = io.ReadFile(fn)
	return
}
