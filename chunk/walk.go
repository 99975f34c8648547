// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunk

import "fmt"

// SizeMode is how a chunk size field counts bytes.
type SizeMode int32

const (
	// SizeExcludesHeader is a size counting the payload after the header,
	// as in IFF containers.
	SizeExcludesHeader SizeMode = iota

	// SizeIncludesHeader is a size counting the whole chunk from its
	// first tag byte, as in 3D Studio files.
	SizeIncludesHeader
)

// Header is a chunk header.
type Header struct {
	// Tag is the four character tag, empty for numeric tags.
	Tag string

	// ID is the numeric tag, 0 for four character tags.
	ID uint16

	// Size is the size field as stored.
	Size int64

	// Start is the stream offset of the first header byte.
	Start int64

	// HeaderLen is the number of header bytes.
	HeaderLen int64
}

// Name returns the tag, or the hex form of the numeric tag.
func (h Header) Name() string {
	if h.Tag != "" {
		return h.Tag
	}
	return fmt.Sprintf("0x%04X", h.ID)
}

// Payload returns the stream offset of the first payload byte.
func (h Header) Payload() int64 {
	return h.Start + h.HeaderLen
}

// End returns the stream offset just past the payload.
func (h Header) End(mode SizeMode) int64 {
	if mode == SizeIncludesHeader {
		return h.Start + h.Size
	}
	return h.Start + h.HeaderLen + h.Size
}

// HeaderFunc reads one chunk header.
type HeaderFunc func(r *Reader) Header

// ReadHeader4 reads a four character tag and a 32 bit size.
func ReadHeader4(r *Reader) Header {
	h := Header{Start: r.Offset(), HeaderLen: 8}
	h.Tag = r.Tag4()
	h.Size = int64(r.U32())
	return h
}

// ReadHeader2 reads a 16 bit numeric tag and a 32 bit size.
func ReadHeader2(r *Reader) Header {
	h := Header{Start: r.Offset(), HeaderLen: 6}
	h.ID = r.Tag2()
	h.Size = int64(r.U32())
	return h
}

// SubHeader4U16 reads a four character tag and a 16 bit size.
func SubHeader4U16(r *Reader) Header {
	h := Header{Start: r.Offset(), HeaderLen: 6}
	h.Tag = r.Tag4()
	h.Size = int64(r.U16())
	return h
}

// Walk reads consecutive chunks until the stream offset reaches end,
// calling fn for each header. Whatever fn leaves unconsumed of a
// chunk is skipped, so unknown chunks only need to be ignored by fn.
// A chunk extending past end, or fn reading past its chunk,
// is a malformed container error.
func (r *Reader) Walk(end int64, mode SizeMode, read HeaderFunc, fn func(h Header) error) error {
	for r.err == nil && r.off < end {
		h := read(r)
		if r.err != nil {
			break
		}
		hend := h.End(mode)
		if hend < h.Payload() {
			return r.Fail("chunk %s size %d smaller than its header", h.Name(), h.Size)
		}
		if hend > end {
			return r.Fail("chunk %s ends at %d, past its parent end %d", h.Name(), hend, end)
		}
		if err := fn(h); err != nil {
			return err
		}
		if r.err != nil {
			break
		}
		if r.off > hend {
			return r.Fail("chunk %s read %d bytes past its end", h.Name(), r.off-hend)
		}
		r.Skip(hend - r.off)
		if r.Pad && h.Size%2 == 1 && r.off < end {
			r.Skip(1)
		}
	}
	return r.err
}
