// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx sets up [slog] logging for the mesh tools.
package logx

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// UserLevel is the lowest [slog.Level] shown to the user.
// Command line flags set it through [LevelFromFlags].
var UserLevel = slog.LevelWarn

// LevelFromFlags maps the -vv, -v and -q flags to a level. The most
// verbose flag given wins; with no flags the level is [slog.LevelWarn].
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	}
	return slog.LevelWarn
}

// NewLogger returns a logger writing to w through a charmbracelet
// handler, filtered at [UserLevel].
func NewLogger(w io.Writer, prefix string) *slog.Logger {
	h := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          prefix,
	})
	h.SetLevel(log.Level(UserLevel))
	return slog.New(h)
}

// SetDefaultLogger installs a [NewLogger] on [os.Stderr] as the
// [slog] default.
func SetDefaultLogger() {
	slog.SetDefault(NewLogger(os.Stderr, ""))
}
