// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// cmdrv runs material points along strain paths given in input files
package main

import (
	"bytes"
	"os"

	"github.com/cpmech/gosl/io"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/cmi-go/cmi/inp"
	"github.com/cmi-go/cmi/msolid"
)

const version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		io.Pfred("ERROR: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd returns the root command with all subcommands
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cmdrv",
		Short:         "constitutive model driver",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var verbose, tangent, plot bool
	runCmd := &cobra.Command{
		Use:   "run [input]",
		Short: "run a material point along the path given in a .yaml or .json file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInput(cmd, args[0], verbose, tangent, plot)
		},
	}
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show substepping messages")
	runCmd.Flags().BoolVarP(&tangent, "tangent", "t", false, "print consistent tangents")
	runCmd.Flags().BoolVarP(&plot, "plot", "p", false, "plot deviatoric stress q along the path")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list available models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var b bytes.Buffer
			for _, name := range msolid.Names() {
				io.Ff(&b, "%s\n", name)
			}
			_, err := cmd.OutOrStdout().Write(b.Bytes())
			return err
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write([]byte(io.Sf("cmdrv %s\n", version)))
			return err
		},
	}

	root.AddCommand(runCmd, modelsCmd, versionCmd)
	return root
}

// runInput reads input file, runs the driver and prints one line per increment
func runInput(cmd *cobra.Command, fn string, verbose, tangent, plot bool) (err error) {

	// input
	in, err := inp.ReadInput(fn)
	if err != nil {
		return
	}
	if verbose {
		in.Verbose = true
	}
	drv, err := in.Driver()
	if err != nil {
		return
	}
	drv.SaveD = tangent
	pth, err := in.NewPath()
	if err != nil {
		return
	}

	// run
	err = drv.Run(pth)

	// results
	var b bytes.Buffer
	if in.Desc != "" {
		io.Ff(&b, "# %s\n", in.Desc)
	}
	io.Ff(&b, "# model = %s  ndim = %d  ninc = %d\n", in.Model, in.Ndim, pth.Size())
	for i, s := range drv.Res {
		io.Ff(&b, "%4d t=%g ε=%v σ=%v", i, drv.T[i], drv.Eps[i], s.Sig)
		if len(s.Alp) > 0 {
			io.Ff(&b, " α=%v", s.Alp)
		}
		if i > 0 {
			io.Ff(&b, " cuts=%d", drv.NCuts[i-1])
			if tangent {
				io.Ff(&b, "\n     D=%v", drv.D[i-1].GetDeep2())
			}
		}
		io.Ff(&b, "\n")
	}
	if plot && len(drv.Res) > 1 {
		q := make([]float64, len(drv.Res))
		for i, s := range drv.Res {
			_, q[i] = msolid.Invs(s.Sig)
		}
		io.Ff(&b, "\n%s\n", asciigraph.Plot(q,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("q vs increment"),
		))
	}
	if _, e := cmd.OutOrStdout().Write(b.Bytes()); e != nil && err == nil {
		err = e
	}
	return
}
