// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunk

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"cogentcore.org/meshio/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitives(t *testing.T) {
	var b bytes.Buffer
	binary.Write(&b, binary.BigEndian, uint16(0x1234))
	binary.Write(&b, binary.BigEndian, uint32(0xDEADBEEF))
	binary.Write(&b, binary.BigEndian, math.Float32bits(1.5))
	binary.Write(&b, binary.LittleEndian, uint16(0x0102))
	b.WriteString("FORM")
	b.WriteString("abc\x00")
	b.WriteString("ab\x00\x00")

	r := NewReader(bytes.NewReader(b.Bytes()), binary.BigEndian, int64(b.Len()))
	assert.Equal(t, uint16(0x1234), r.U16())
	assert.Equal(t, uint32(0xDEADBEEF), r.U32())
	assert.Equal(t, float32(1.5), r.F32())
	assert.Equal(t, uint16(0x0102), r.Reversed().U16())
	assert.Equal(t, "FORM", r.Tag4())
	assert.Equal(t, "abc", r.PaddedString())
	assert.Equal(t, "ab", r.PaddedString())
	assert.NoError(t, r.Err())
	assert.NoError(t, r.ExpectEnd(int64(b.Len())))
	assert.Equal(t, int64(b.Len()), r.Offset())

	r.U8()
	assert.ErrorIs(t, r.Err(), codec.ErrMalformedContainer)
}

func TestGenericInts(t *testing.T) {
	data := []byte{0xFF, 0xFE, 0xFF, 0x01, 0x00, 0x00, 0x00}
	r := NewReader(bytes.NewReader(data), binary.LittleEndian, -1)
	assert.Equal(t, int8(-1), Int[int8](r))
	assert.Equal(t, int16(-2), Int[int16](r))
	assert.Equal(t, uint32(1), Uint[uint32](r))
	assert.NoError(t, r.Err())
}

func TestTruncated(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2}), binary.LittleEndian, -1).SetFormat("3ds")
	r.U32()
	err := r.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrMalformedContainer)
	assert.Contains(t, err.Error(), "3ds")
	assert.Equal(t, uint16(0), r.U16())
}

// writes a 3DS style chunk with the size including the 6 byte header
func chunk2(id uint16, payload []byte) []byte {
	var b bytes.Buffer
	binary.Write(&b, binary.LittleEndian, id)
	binary.Write(&b, binary.LittleEndian, uint32(6+len(payload)))
	b.Write(payload)
	return b.Bytes()
}

func TestWalkIncludesHeader(t *testing.T) {
	inner := append(chunk2(0x0010, []byte{1, 2, 3}), chunk2(0x9999, []byte{9, 9})...)
	data := chunk2(0x4D4D, inner)

	r := NewReader(bytes.NewReader(data), binary.LittleEndian, int64(len(data)))
	var ids []uint16
	var payload []byte
	err := r.Walk(int64(len(data)), SizeIncludesHeader, ReadHeader2, func(h Header) error {
		ids = append(ids, h.ID)
		return r.Walk(h.End(SizeIncludesHeader), SizeIncludesHeader, ReadHeader2, func(h Header) error {
			ids = append(ids, h.ID)
			if h.ID == 0x0010 {
				payload = r.Bytes(2)
			}
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, []uint16{0x4D4D, 0x0010, 0x9999}, ids)
	assert.Equal(t, []byte{1, 2}, payload)
	assert.NoError(t, r.ExpectEnd(int64(len(data))))
}

func TestWalkExcludesHeaderPadded(t *testing.T) {
	var b bytes.Buffer
	b.WriteString("TAGS")
	binary.Write(&b, binary.BigEndian, uint32(3))
	b.WriteString("ab\x00\x00") // 3 bytes plus pad
	b.WriteString("PNTS")
	binary.Write(&b, binary.BigEndian, uint32(4))
	binary.Write(&b, binary.BigEndian, math.Float32bits(2))

	r := NewReader(bytes.NewReader(b.Bytes()), binary.BigEndian, int64(b.Len()))
	r.Pad = true
	var tags []string
	var f float32
	err := r.Walk(int64(b.Len()), SizeExcludesHeader, ReadHeader4, func(h Header) error {
		tags = append(tags, h.Tag)
		if h.Tag == "PNTS" {
			f = r.F32()
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"TAGS", "PNTS"}, tags)
	assert.Equal(t, float32(2), f)
}

func TestWalkOversizedChild(t *testing.T) {
	child := chunk2(0x0010, []byte{1, 2, 3})
	binary.LittleEndian.PutUint32(child[2:], 100)
	data := chunk2(0x4D4D, child)

	r := NewReader(bytes.NewReader(data), binary.LittleEndian, int64(len(data)))
	err := r.Walk(int64(len(data)), SizeIncludesHeader, ReadHeader2, func(h Header) error {
		return r.Walk(h.End(SizeIncludesHeader), SizeIncludesHeader, ReadHeader2, func(h Header) error { return nil })
	})
	assert.ErrorIs(t, err, codec.ErrMalformedContainer)
}

func TestExpectEndMismatch(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2, 3, 4}), binary.LittleEndian, 4)
	r.U16()
	err := r.ExpectEnd(4)
	assert.ErrorIs(t, err, codec.ErrLengthMismatch)
	assert.ErrorIs(t, err, codec.ErrMalformedContainer)
}
