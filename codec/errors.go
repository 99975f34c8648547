// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"errors"
	"fmt"
)

// Error kinds, matched with [errors.Is]. Malformed container and unknown
// format errors are always fatal; malformed record and invalid index
// errors may be downgraded by [Options.IgnoreErrors]; unsupported
// features are only ever reported as a [Notice].
var (
	ErrMalformedContainer = errors.New("malformed container")
	ErrLengthMismatch     = fmt.Errorf("%w: length mismatch", ErrMalformedContainer)
	ErrMalformedRecord    = errors.New("malformed record")
	ErrInvalidIndex       = errors.New("invalid index")
	ErrUnsupportedFeature = errors.New("unsupported feature")
	ErrUnknownFormat      = errors.New("unknown format")
)

// Error is a read or write error located in its source: a 1-based
// line number for text formats or a byte offset for binary ones.
type Error struct {
	// Format is the short name of the format, such as "obj".
	Format string

	// Line is the 1-based line number, or 0 if not applicable.
	Line int

	// Offset is the byte offset, or -1 if not applicable.
	Offset int64

	// Err is the underlying error, which wraps one of the error kinds.
	Err error
}

// LineError returns a new [Error] at the given line.
func LineError(format string, line int, err error) *Error {
	return &Error{Format: format, Line: line, Offset: -1, Err: err}
}

// OffsetError returns a new [Error] at the given byte offset.
func OffsetError(format string, offset int64, err error) *Error {
	return &Error{Format: format, Offset: offset, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s: line %d: %v", e.Format, e.Line, e.Err)
	case e.Offset >= 0:
		return fmt.Sprintf("%s: offset %d: %v", e.Format, e.Offset, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Format, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf returns an error of the given kind with a formatted message.
func Errorf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// Located returns err as an [*Error] with the given format, line
// and offset, unless it already is one, in which case it is returned as is.
func Located(format string, line int, offset int64, err error) error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return err
	}
	return &Error{Format: format, Line: line, Offset: offset, Err: err}
}
