// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command meshconv converts polygon mesh files between formats.
//
//	meshconv convert model.3ds model.dae
//	meshconv convert model.obj pov
//	meshconv info model.lwo
//	meshconv formats
//	meshconv watch model.obj x3d
package main

import (
	"context"
	"os"
	"os/signal"

	"cogentcore.org/meshio"
	"cogentcore.org/meshio/base/logx"
	"github.com/spf13/cobra"
)

// app has the state shared by the commands.
type app struct {
	reg *meshio.Registry
	cfg *Config

	configFile string
	vv, v, q   bool

	// flags overriding the configuration
	ignore, ascii, smooth bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd(meshio.Default()).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(reg *meshio.Registry) *cobra.Command {
	a := &app{reg: reg, cfg: DefaultConfig()}
	root := &cobra.Command{
		Use:           "meshconv",
		Short:         "Convert polygon mesh files between formats",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logx.UserLevel = logx.LevelFromFlags(a.vv, a.v, a.q)
			logx.SetDefaultLogger()
			if a.configFile != "" {
				cfg, err := LoadConfig(a.configFile)
				if err != nil {
					return err
				}
				a.cfg = cfg
			}
			a.cfg.IgnoreErrors = a.cfg.IgnoreErrors || a.ignore
			a.cfg.ASCIISTL = a.cfg.ASCIISTL || a.ascii
			a.cfg.Smooth = a.cfg.Smooth || a.smooth
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&a.configFile, "config", "c", "", "configuration file (.toml or .yaml)")
	pf.BoolVarP(&a.v, "verbose", "v", false, "log informational messages")
	pf.BoolVar(&a.vv, "vv", false, "log debugging messages")
	pf.BoolVarP(&a.q, "quiet", "q", false, "log errors only")

	root.AddCommand(a.convertCmd(), a.infoCmd(), a.formatsCmd(), a.watchCmd())
	return root
}
