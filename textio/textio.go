// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package textio provides the line oriented token scanner shared
// by the text mesh formats, with a configurable error policy.
package textio

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"cogentcore.org/meshio/codec"
)

// Line is one logical line of input.
type Line struct {
	// Num is the 1-based physical line number where the logical line starts.
	Num int

	// Keyword is the first whitespace delimited token.
	Keyword string

	// Rest is the remainder of the line after the keyword, trimmed.
	Rest string
}

// Fields returns the whitespace delimited tokens of [Line.Rest].
func (l Line) Fields() []string {
	return strings.Fields(l.Rest)
}

// Text returns the whole logical line.
func (l Line) Text() string {
	if l.Rest == "" {
		return l.Keyword
	}
	return l.Keyword + " " + l.Rest
}

// Policy is the error policy of a scanner.
type Policy struct {
	// IgnoreErrors drops malformed records, reporting them as notices.
	IgnoreErrors bool
}

// Scanner reads logical lines: physical lines ending in a backslash
// are joined with the next one, and blank and comment lines are skipped.
type Scanner struct {
	// Format is the format name used in errors.
	Format string

	// Comment is the comment line prefix; empty disables comments.
	Comment string

	// Continuation enables joining lines ending in a backslash.
	Continuation bool

	Policy  Policy
	Notices *codec.Notices

	sc   *bufio.Scanner
	num  int
	line Line
}

// NewScanner returns a new [Scanner] over r for the given format,
// taking the error policy and notices from opts.
func NewScanner(r io.Reader, format string, opts *codec.Options) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	return &Scanner{
		Format:       format,
		Comment:      "#",
		Continuation: true,
		Policy:       Policy{IgnoreErrors: opts.Ignore()},
		Notices:      opts.Notes(),
		sc:           sc,
	}
}

// Scan advances to the next logical line, returning false at the end
// of input or on a read error, which [Scanner.Err] returns.
func (s *Scanner) Scan() bool {
	var text strings.Builder
	start := 0
	for s.sc.Scan() {
		s.num++
		ln := strings.TrimSpace(s.sc.Text())
		if text.Len() == 0 {
			if ln == "" || (s.Comment != "" && strings.HasPrefix(ln, s.Comment)) {
				continue
			}
			start = s.num
		}
		if s.Continuation && strings.HasSuffix(ln, "\\") {
			text.WriteString(strings.TrimSuffix(ln, "\\"))
			text.WriteByte(' ')
			continue
		}
		text.WriteString(ln)
		break
	}
	full := strings.TrimSpace(text.String())
	if full == "" {
		return false
	}
	kw, rest := full, ""
	if i := strings.IndexAny(full, " \t"); i >= 0 {
		kw, rest = full[:i], full[i+1:]
	}
	s.line = Line{Num: start, Keyword: kw, Rest: strings.TrimSpace(rest)}
	return true
}

// SetLineNum sets the number of physical lines already consumed, for
// input that continues after a header read by other means.
func (s *Scanner) SetLineNum(n int) {
	s.num = n
}

// Line returns the current logical line.
func (s *Scanner) Line() Line {
	return s.line
}

// LineNum returns the number of physical lines read so far.
func (s *Scanner) LineNum() int {
	return s.num
}

// Err returns the first read error.
func (s *Scanner) Err() error {
	if err := s.sc.Err(); err != nil {
		return codec.LineError(s.Format, s.num+1, err)
	}
	return nil
}

// Error returns err located at the given line.
func (s *Scanner) Error(line Line, err error) error {
	return codec.LineError(s.Format, line.Num, err)
}

// Fail applies the error policy to err at the given line: when errors
// are ignored it records a notice and returns nil, so the caller drops
// the record and continues; otherwise it returns the located error.
func (s *Scanner) Fail(line Line, err error) error {
	e := s.Error(line, err)
	if s.Policy.IgnoreErrors {
		s.Notices.Skipped(s.Format, e)
		return nil
	}
	return e
}

// Unsupported records a notice for a keyword or feature that is not supported.
func (s *Scanner) Unsupported(line Line, msg string) {
	s.Notices.Add(codec.Notice{Format: s.Format, Line: line.Num, Kind: codec.ErrUnsupportedFeature,
		Message: codec.ErrUnsupportedFeature.Error() + ": " + msg})
}

// Fields returns the whitespace delimited tokens of s.
func Fields(s string) []string {
	return strings.Fields(s)
}

// Float32 parses a locale independent decimal number.
func Float32(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, codec.Errorf(codec.ErrMalformedRecord, "invalid number %q", s)
	}
	return float32(v), nil
}

// Int parses a decimal integer.
func Int(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, codec.Errorf(codec.ErrMalformedRecord, "invalid integer %q", s)
	}
	return v, nil
}

// Floats parses all fields as numbers, requiring at least min of them.
func Floats(fields []string, min int) ([]float32, error) {
	if len(fields) < min {
		return nil, codec.Errorf(codec.ErrMalformedRecord, "expected %d numbers, got %d", min, len(fields))
	}
	vals := make([]float32, len(fields))
	for i, f := range fields {
		v, err := Float32(f)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// Ints parses all fields as integers, requiring at least min of them.
func Ints(fields []string, min int) ([]int, error) {
	if len(fields) < min {
		return nil, codec.Errorf(codec.ErrMalformedRecord, "expected %d integers, got %d", min, len(fields))
	}
	vals := make([]int, len(fields))
	for i, f := range fields {
		v, err := Int(f)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}
