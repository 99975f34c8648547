// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package indent provides indentation generation methods
// and an indenting line writer for nested text formats.
package indent

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Character is the type of indentation character to use.
type Character int32

const (
	// Tab indicates to use tabs for indentation.
	Tab Character = iota

	// Space indicates to use spaces for indentation.
	Space
)

// Tabs returns a string of n tabs.
func Tabs(n int) string {
	return strings.Repeat("\t", n)
}

// Spaces returns a string of n*width spaces.
func Spaces(n, width int) string {
	return strings.Repeat(" ", n*width)
}

// String returns a string of n tabs or n*width spaces depending on the indent character.
func String(ich Character, n, width int) string {
	if ich == Tab {
		return Tabs(n)
	}
	return Spaces(n, width)
}

// Len returns the length of the indent string given indent character and indent level.
func Len(ich Character, n, width int) int {
	if ich == Tab {
		return n
	}
	return n * width
}

// Writer writes lines prefixed by the current indentation level.
// The first write error is kept and returned by [Writer.Flush];
// later writes are no-ops.
type Writer struct {
	Char  Character
	Width int
	Level int

	bw  *bufio.Writer
	err error
}

// NewWriter returns a new [Writer] writing to w, indenting with the
// given character; width is the number of spaces per level for [Space].
func NewWriter(w io.Writer, ich Character, width int) *Writer {
	return &Writer{Char: ich, Width: width, bw: bufio.NewWriter(w)}
}

// Line writes one indented line formatted with [fmt.Sprintf].
func (w *Writer) Line(format string, args ...any) {
	if w.err != nil {
		return
	}
	if _, w.err = w.bw.WriteString(String(w.Char, w.Level, w.Width)); w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.bw, format, args...)
	if w.err == nil {
		w.err = w.bw.WriteByte('\n')
	}
}

// Open writes an indented line and increases the level.
func (w *Writer) Open(format string, args ...any) {
	w.Line(format, args...)
	w.Level++
}

// Close decreases the level and writes an indented line.
func (w *Writer) Close(format string, args ...any) {
	if w.Level > 0 {
		w.Level--
	}
	w.Line(format, args...)
}

// Err returns the first error encountered while writing.
func (w *Writer) Err() error {
	return w.err
}

// Flush flushes buffered output, returning the first write error.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.bw.Flush()
}
