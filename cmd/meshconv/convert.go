// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/meshio"
	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/export"
	"cogentcore.org/meshio/formats/stl"
	"cogentcore.org/meshio/scene"
	"github.com/spf13/cobra"
)

func (a *app) convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input> <output | extension>",
		Short: "Convert a mesh file to the format of the output extension",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.convert(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&a.ignore, "ignore-errors", false, "drop malformed records instead of failing")
	cmd.Flags().BoolVar(&a.ascii, "ascii-stl", false, "write STL files in the ASCII encoding")
	cmd.Flags().BoolVar(&a.smooth, "smooth", false, "share identical vertices of OBJ faces without a smoothing group")
	return cmd
}

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <input>",
		Short: "Print a summary of a mesh file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, _, err := a.read(args[0])
			if err != nil {
				return err
			}
			printInfo(cmd, sc)
			return nil
		},
	}
}

func (a *app) formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the extensions that can be read and written",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "read: ", strings.Join(a.reg.ReaderExts(), " "))
			fmt.Fprintln(w, "write:", strings.Join(a.reg.WriterExts(), " "))
		},
	}
}

// registry returns the registry with the configured writer variants.
func (a *app) registry() *meshio.Registry {
	if a.cfg.ASCIISTL {
		a.reg.AddWriter(meshio.WriterFunc(stl.WriteASCII), "stl")
	}
	return a.reg
}

// read reads the input file, detecting its format from its content
// when its extension is unknown. It returns the notices of the read.
func (a *app) read(in string) (*scene.Scene, *codec.Notices, error) {
	notes := &codec.Notices{}
	opts, err := a.cfg.Options(notes)
	if err != nil {
		return nil, nil, err
	}
	in = expand(in)
	reg := a.registry()
	if _, err := reg.Reader(filepath.Ext(in)); err == nil {
		sc, err := reg.ReadFile(in, opts)
		return sc, notes, err
	}
	ext, err := reg.DetectFile(in)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("detected format", "path", in, "format", ext)
	f, err := os.Open(in)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	sc, err := reg.Read(f, ext, opts.ForPath(in))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", in, err)
	}
	return sc, notes, nil
}

// outputPath returns the output file for the input: out itself, or
// when out is a bare extension, the input renamed to it, in the
// configured output directory if any.
func (a *app) outputPath(in, out string) string {
	out = expand(out)
	ext := strings.TrimPrefix(out, ".")
	if strings.ContainsAny(ext, `./\`) {
		return out
	}
	dir := filepath.Dir(in)
	if a.cfg.OutDir != "" {
		dir = expand(a.cfg.OutDir)
	}
	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	return filepath.Join(dir, base+"."+ext)
}

// convert converts the input file and returns the output file.
func (a *app) convert(in, out string) (string, error) {
	in = expand(in)
	out = a.outputPath(in, out)
	reg := a.registry()
	// fail before reading on an unknown output format
	if _, err := reg.Writer(filepath.Ext(out)); err != nil {
		return "", fmt.Errorf("%s: %w", out, err)
	}
	sc, notes, err := a.read(in)
	if err != nil {
		return "", err
	}
	opts, err := a.cfg.Options(notes)
	if err != nil {
		return "", err
	}
	if err := reg.WriteFile(out, sc, opts); err != nil {
		return "", err
	}
	slog.Info("converted", "input", in, "output", out, "triangles", sc.NumTriangles(), "notices", notes.Len())
	return out, nil
}

func printInfo(cmd *cobra.Command, sc *scene.Scene) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "name:      %s\n", sc.Name())
	fmt.Fprintf(w, "solids:    %d\n", len(sc.Solids()))
	fmt.Fprintf(w, "vertices:  %d\n", sc.NumVertices())
	fmt.Fprintf(w, "triangles: %d\n", sc.NumTriangles())
	fmt.Fprintf(w, "materials: %d\n", len(sc.Layers()))
	fmt.Fprintf(w, "lights:    %d\n", len(sc.Lights()))
	if bb := sc.BBox(); !bb.IsEmpty() {
		fmt.Fprintf(w, "bounds:    %s .. %s\n", export.Vec3(bb.Min), export.Vec3(bb.Max))
	}
}
