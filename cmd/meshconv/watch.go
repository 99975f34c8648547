// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// settle is how long the input must be unchanged before it is converted
// again, so that a save in several writes converts once.
const settle = 200 * time.Millisecond

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <input> <output | extension>",
		Short: "Convert a mesh file again every time it changes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.watch(cmd.Context(), args[0], args[1], cmd.OutOrStdout())
		},
	}
}

// watch converts the input and converts it again on every change
// until the context is done. Conversion errors are logged, not returned.
func (a *app) watch(ctx context.Context, in, out string, w io.Writer) error {
	in, err := filepath.Abs(expand(in))
	if err != nil {
		return err
	}
	if _, err := a.registry().Writer(filepath.Ext(a.outputPath(in, out))); err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// editors often replace the file, so watch its directory
	if err := watcher.Add(filepath.Dir(in)); err != nil {
		return err
	}

	convert := func() {
		res, err := a.convert(in, out)
		if err != nil {
			slog.Error("conversion failed", "input", in, "err", err)
			return
		}
		fmt.Fprintln(w, res)
	}
	convert()

	timer := time.NewTimer(settle)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(e.Name) != in || !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
				continue
			}
			slog.Debug("input changed", "path", e.Name, "op", e.Op.String())
			timer.Reset(settle)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watching", "err", err)
		case <-timer.C:
			convert()
		}
	}
}
