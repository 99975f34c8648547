// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lwo

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image/color"
	"math"
	"testing"

	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/material"
	"cogentcore.org/meshio/math32"
	"cogentcore.org/meshio/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ck returns an IFF chunk, padded to even length.
func ck(tag string, parts ...[]byte) []byte {
	payload := bytes.Join(parts, nil)
	b := append([]byte(tag), binary.BigEndian.AppendUint32(nil, uint32(len(payload)))...)
	b = append(b, payload...)
	if len(payload)%2 == 1 {
		b = append(b, 0)
	}
	return b
}

// sub returns a surface sub-chunk with a 16 bit size.
func sub(tag string, parts ...[]byte) []byte {
	payload := bytes.Join(parts, nil)
	b := append([]byte(tag), binary.BigEndian.AppendUint16(nil, uint16(len(payload)))...)
	return append(b, payload...)
}

func u16(vs ...uint16) []byte {
	var b []byte
	for _, v := range vs {
		b = binary.BigEndian.AppendUint16(b, v)
	}
	return b
}

func f32(vs ...float32) []byte {
	var b []byte
	for _, v := range vs {
		b = binary.BigEndian.AppendUint32(b, math.Float32bits(v))
	}
	return b
}

// str returns a NUL terminated string padded to even length.
func str(s string) []byte {
	b := append([]byte(s), 0)
	if len(b)%2 == 1 {
		b = append(b, 0)
	}
	return b
}

func form(chunks ...[]byte) []byte {
	return ck("FORM", []byte("LWO2"), bytes.Join(chunks, nil))
}

func model() []byte {
	return form(
		ck("TAGS", str("Red"), str("Default")),
		ck("LAYR", u16(0, 0), f32(0, 0, 0), str("body")),
		ck("PNTS", f32(0, 0, 0, 0, 1, 0, 1, 1, 0, 1, 0, 0, 2, 0, 0)),
		ck("VMAP", []byte("TXUV"), u16(2), str("uv"), u16(0), f32(0, 0), u16(2), f32(1, 1)),
		ck("POLS", []byte("FACE"), u16(4, 0, 1, 2, 3), u16(3, 3, 2, 4)),
		ck("PTAG", []byte("SURF"), u16(0, 0)),
		ck("SURF", str("Red"), str(""),
			sub("COLR", f32(1, 0, 0), u16(0)),
			sub("DIFF", f32(1), u16(0)),
			sub("SPEC", f32(0), u16(0)),
		),
		ck("XXXX", []byte{1, 2, 3}),
	)
}

func TestRead(t *testing.T) {
	data := model()
	require.True(t, IsLWO(data))
	sc, err := Read(bytes.NewReader(data), &codec.Options{Name: "m"})
	require.NoError(t, err)
	require.Len(t, sc.Root.Children, 1)
	g := sc.Root.Children[0].(*scene.Group)
	assert.Equal(t, "body", g.Name)
	require.Len(t, g.Children, 2)

	red := g.Children[0].(*scene.Solid)
	assert.Equal(t, "body", red.Name)
	assert.Equal(t, 2, red.Mesh.NumTriangles())
	d, ok := red.Material.(*material.Diffuse)
	require.True(t, ok)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, d.Color)
	// the clockwise quad 0 1 2 3 is reversed, facing +z
	n := red.Mesh.TrianglePositions(0).Normal()
	assert.Equal(t, math32.Vec3(0, 0, 1), n)
	require.True(t, red.Mesh.HasTexCoords())

	plain := g.Children[1].(*scene.Solid)
	assert.Equal(t, "body_1", plain.Name)
	assert.Equal(t, 1, plain.Mesh.NumTriangles())
	assert.Equal(t, material.DefaultName, material.Flatten(plain.Material).Name)
}

func TestLengthMismatch(t *testing.T) {
	data := append(model(), 0, 0)
	_, err := Read(bytes.NewReader(data), nil)
	assert.True(t, errors.Is(err, codec.ErrLengthMismatch))
}

func TestNotLWO(t *testing.T) {
	_, err := Read(bytes.NewReader(ck("FORM", []byte("ILBM"))), nil)
	assert.True(t, errors.Is(err, codec.ErrMalformedContainer))
}

func TestInvalidIndex(t *testing.T) {
	data := form(
		ck("PNTS", f32(0, 0, 0, 0, 1, 0, 1, 1, 0)),
		ck("POLS", []byte("FACE"), u16(3, 0, 1, 9)),
	)
	_, err := Read(bytes.NewReader(data), nil)
	assert.True(t, errors.Is(err, codec.ErrInvalidIndex))

	ns := &codec.Notices{}
	sc, err := Read(bytes.NewReader(data), &codec.Options{IgnoreErrors: true, Notices: ns})
	require.NoError(t, err)
	assert.Len(t, sc.Solids(), 0)
	assert.Equal(t, 1, ns.Count(codec.ErrInvalidIndex))
}

func TestVX(t *testing.T) {
	data := form(
		ck("PNTS", f32(0, 0, 0, 1, 0, 0, 0, 1, 0)),
		ck("POLS", []byte("FACE"), u16(3), []byte{0xFF, 0, 0, 0}, u16(2, 1)),
	)
	sc, err := Read(bytes.NewReader(data), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, sc.NumTriangles())
}
