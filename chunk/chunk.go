// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chunk decodes tagged, length-prefixed binary chunk streams,
// such as the 3D Studio and IFF based LightWave containers.
package chunk

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"cogentcore.org/meshio/codec"
	"golang.org/x/exp/constraints"
)

// stream is the state shared by a [Reader] and its [Reader.Reversed] view.
type stream struct {
	r      io.Reader
	off    int64
	length int64
	err    error
	format string
}

// Reader reads primitive values from a binary stream in a configured
// byte order, tracking the byte offset. The first error is sticky:
// after it, all reads return zero values and [Reader.Err] reports it.
type Reader struct {
	*stream
	order binary.ByteOrder

	// Pad makes [Reader.Walk] skip the pad byte after odd-sized chunks.
	Pad bool

	buf [8]byte
}

// NewReader returns a new [Reader] over r using the given byte order.
// length is the declared length of the stream, or -1 if unknown;
// reading past it is a malformed container error.
func NewReader(r io.Reader, order binary.ByteOrder, length int64) *Reader {
	return &Reader{stream: &stream{r: r, length: length}, order: order}
}

// SetFormat sets the format name used in errors.
func (r *Reader) SetFormat(format string) *Reader {
	r.format = format
	return r
}

// Order returns the byte order of the reader.
func (r *Reader) Order() binary.ByteOrder {
	return r.order
}

// Reversed returns a view of the same stream reading multi-byte values
// in the opposite byte order. Offset and errors are shared.
func (r *Reader) Reversed() *Reader {
	var order binary.ByteOrder = binary.LittleEndian
	if r.order == binary.LittleEndian {
		order = binary.BigEndian
	}
	return &Reader{stream: r.stream, order: order, Pad: r.Pad}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.off
}

// Length returns the declared stream length, or -1 if unknown.
func (r *Reader) Length() int64 {
	return r.length
}

// Err returns the first error encountered.
func (r *Reader) Err() error {
	return r.err
}

// Fail records err as a malformed container error at the current
// offset, unless an error was already recorded.
func (r *Reader) Fail(format string, args ...any) error {
	if r.err == nil {
		r.err = codec.OffsetError(r.format, r.off, codec.Errorf(codec.ErrMalformedContainer, format, args...))
	}
	return r.err
}

func (r *Reader) read(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.length >= 0 && r.off+int64(n) > r.length {
		r.Fail("read of %d bytes past end of stream (length %d)", n, r.length)
		return nil
	}
	var b []byte
	if n <= len(r.buf) {
		b = r.buf[:n]
	} else {
		b = make([]byte, n)
	}
	m, err := io.ReadFull(r.r, b)
	r.off += int64(m)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			r.Fail("truncated stream, wanted %d more bytes", n-m)
		} else {
			r.err = codec.OffsetError(r.format, r.off, err)
		}
		return nil
	}
	return b
}

// U8 reads one byte.
func (r *Reader) U8() uint8 {
	b := r.read(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// U16 reads an unsigned 16 bit integer.
func (r *Reader) U16() uint16 {
	b := r.read(2)
	if b == nil {
		return 0
	}
	return r.order.Uint16(b)
}

// U32 reads an unsigned 32 bit integer.
func (r *Reader) U32() uint32 {
	b := r.read(4)
	if b == nil {
		return 0
	}
	return r.order.Uint32(b)
}

// I16 reads a signed 16 bit integer.
func (r *Reader) I16() int16 {
	return int16(r.U16())
}

// I32 reads a signed 32 bit integer.
func (r *Reader) I32() int32 {
	return int32(r.U32())
}

// F32 reads an IEEE 754 32 bit float.
func (r *Reader) F32() float32 {
	return math.Float32frombits(r.U32())
}

// F64 reads an IEEE 754 64 bit float.
func (r *Reader) F64() float64 {
	b := r.read(8)
	if b == nil {
		return 0
	}
	return math.Float64frombits(r.order.Uint64(b))
}

// Bytes reads n bytes into a new slice.
func (r *Reader) Bytes(n int) []byte {
	b := r.read(n)
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

// Skip discards n bytes.
func (r *Reader) Skip(n int64) {
	if n <= 0 || r.err != nil {
		return
	}
	if r.length >= 0 && r.off+n > r.length {
		r.Fail("skip of %d bytes past end of stream (length %d)", n, r.length)
		return
	}
	m, err := io.CopyN(io.Discard, r.r, n)
	r.off += m
	if err != nil {
		r.Fail("truncated stream, wanted %d more bytes", n-m)
	}
}

// Tag4 reads a four character tag.
func (r *Reader) Tag4() string {
	b := r.read(4)
	if b == nil {
		return ""
	}
	return string(b)
}

// Tag2 reads a two byte numeric tag.
func (r *Reader) Tag2() uint16 {
	return r.U16()
}

// CString reads a NUL terminated string, consuming the NUL.
func (r *Reader) CString() string {
	var s []byte
	for r.err == nil {
		c := r.U8()
		if r.err != nil || c == 0 {
			break
		}
		s = append(s, c)
	}
	return string(s)
}

// PaddedString reads a NUL terminated string padded to an even
// number of bytes, as IFF files store them.
func (r *Reader) PaddedString() string {
	s := r.CString()
	if (len(s)+1)%2 == 1 {
		r.U8()
	}
	return s
}

// ExpectEnd returns a length mismatch error unless exactly total
// bytes have been consumed.
func (r *Reader) ExpectEnd(total int64) error {
	if r.err != nil {
		return r.err
	}
	if r.off != total {
		return codec.OffsetError(r.format, r.off, codec.Errorf(codec.ErrLengthMismatch, "consumed %d bytes, declared %d", r.off, total))
	}
	return nil
}

// Uint reads an unsigned integer of the size of T.
func Uint[T constraints.Unsigned](r *Reader) T {
	var zero T
	switch binary.Size(zero) {
	case 1:
		return T(r.U8())
	case 2:
		return T(r.U16())
	case 4:
		return T(r.U32())
	}
	b := r.read(8)
	if b == nil {
		return 0
	}
	return T(r.order.Uint64(b))
}

// Int reads a signed integer of the size of T.
func Int[T constraints.Signed](r *Reader) T {
	var zero T
	switch binary.Size(zero) {
	case 1:
		return T(int8(r.U8()))
	case 2:
		return T(r.I16())
	case 4:
		return T(r.I32())
	}
	b := r.read(8)
	if b == nil {
		return 0
	}
	return T(int64(r.order.Uint64(b)))
}
