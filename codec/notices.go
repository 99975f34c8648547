// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"errors"
	"fmt"
	"log/slog"
)

// Notice is a non-fatal diagnostic: a skipped record in permissive mode,
// or a feature that the source or target format cannot represent.
// Message includes the text of the kind.
type Notice struct {
	Format  string
	Line    int
	Offset  int64
	Kind    error
	Message string
}

func (n Notice) String() string {
	switch {
	case n.Line > 0:
		return fmt.Sprintf("%s: line %d: %s", n.Format, n.Line, n.Message)
	case n.Offset > 0:
		return fmt.Sprintf("%s: offset %d: %s", n.Format, n.Offset, n.Message)
	}
	return fmt.Sprintf("%s: %s", n.Format, n.Message)
}

// Notices collects the [Notice]s of one read or write call.
// A nil *Notices only logs.
type Notices struct {
	List []Notice
}

// Add records the notice and logs it at the warning level.
func (ns *Notices) Add(n Notice) {
	if n.Kind == nil {
		n.Kind = ErrUnsupportedFeature
	}
	slog.Warn(n.Message, "format", n.Format, "kind", n.Kind.Error(), "line", n.Line)
	if ns != nil {
		ns.List = append(ns.List, n)
	}
}

// Unsupported records an [ErrUnsupportedFeature] notice.
func (ns *Notices) Unsupported(format, msg string, args ...any) {
	ns.Add(Notice{Format: format, Kind: ErrUnsupportedFeature, Message: ErrUnsupportedFeature.Error() + ": " + fmt.Sprintf(msg, args...)})
}

// Skipped records a notice for a record dropped in permissive mode,
// located by the given error when it is an [*Error].
func (ns *Notices) Skipped(format string, err error) {
	n := Notice{Format: format, Kind: ErrMalformedRecord, Message: err.Error()}
	var ce *Error
	if errors.As(err, &ce) {
		n.Line = ce.Line
		n.Offset = ce.Offset
		n.Message = ce.Err.Error()
	}
	if errors.Is(err, ErrInvalidIndex) {
		n.Kind = ErrInvalidIndex
	}
	ns.Add(n)
}

// Len returns the number of recorded notices.
func (ns *Notices) Len() int {
	if ns == nil {
		return 0
	}
	return len(ns.List)
}

// Count returns the number of recorded notices of the given kind.
func (ns *Notices) Count(kind error) int {
	if ns == nil {
		return 0
	}
	n := 0
	for _, no := range ns.List {
		if errors.Is(no.Kind, kind) {
			n++
		}
	}
	return n
}
