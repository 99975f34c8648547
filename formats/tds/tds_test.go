// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tds

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

// ck returns a chunk with the given id and payload parts.
func ck(id uint16, parts ...[]byte) []byte {
	payload := bytes.Join(parts, nil)
	b := binary.LittleEndian.AppendUint16(nil, id)
	b = binary.LittleEndian.AppendUint32(b, uint32(6+len(payload)))
	return append(b, payload...)
}

func u16(vs ...uint16) []byte {
	var b []byte
	for _, v := range vs {
		b = binary.LittleEndian.AppendUint16(b, v)
	}
	return b
}

func f32(vs ...float32) []byte {
	var b []byte
	for _, v := range vs {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v))
	}
	return b
}

func cstr(s string) []byte {
	return append([]byte(s), 0)
}

func model() []byte {
	verts := ck(idVertices, u16(4), f32(0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0))
	faces := ck(idFaces, u16(2, 0, 1, 2, 7, 0, 2, 3, 7),
		ck(idFaceMat, cstr("red"), u16(1, 0)),
		ck(idSmooth, []byte{1, 0, 0, 0, 1, 0, 0, 0}),
	)
	obj := ck(idObject, cstr("quad"), ck(idTrimesh, verts, faces, ck(0x4165, []byte{1})))
	mat := ck(idMaterial,
		ck(idMatName, cstr("red")),
		ck(idMatDiffuse, ck(idColor24, []byte{255, 0, 0}), ck(idColor24G, []byte{1, 2, 3})),
		ck(idMatTransp, ck(idPercentI, u16(25))),
	)
	light := ck(idObject, cstr("lamp"), ck(idLight, f32(0, 5, 0), ck(idColorF, f32(1, 1, 0))))
	return ck(idMain, ck(idVersion, []byte{3, 0, 0, 0}), ck(idEdit, mat, obj, light), ck(idKeyframes))
}

func TestRead(t *testing.T) {
	data := model()
	assert.True(t, IsTDS(data))
	ns := &codec.Notices{}
	sc, err := Read(bytes.NewReader(data), &codec.Options{Notices: ns})
	require.NoError(t, err)
	require.Len(t, sc.Root.Children, 2)

	g := sc.Root.Children[0].(*scene.Group)
	assert.Equal(t, "quad", g.Name)
	require.Len(t, g.Children, 2)
	plain := g.Children[0].(*scene.Solid)
	red := g.Children[1].(*scene.Solid)
	assert.Equal(t, "quad", plain.Name)
	assert.Equal(t, "quad_1", red.Name)
	assert.Equal(t, 1, plain.Mesh.NumTriangles())
	assert.True(t, plain.Mesh.HasNormals())

	d, ok := red.Material.(*material.Diffuse)
	require.True(t, ok)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, d.Color)
	assert.InDelta(t, 0.75, d.Opacity, 1e-6)

	lamp, ok := sc.Root.Children[1].(*scene.PointLight)
	require.True(t, ok)
	assert.Equal(t, math32.Vec3(0, 5, 0), lamp.Pos)
	assert.Equal(t, color.RGBA{255, 255, 0, 255}, lamp.Color)

	assert.Equal(t, 1, ns.Count(codec.ErrUnsupportedFeature))
}

func TestSmoothingWeld(t *testing.T) {
	verts := ck(idVertices, u16(4), f32(0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0))
	for _, tc := range []struct {
		mask []byte
		n    int
	}{
		{[]byte{1, 0, 0, 0, 1, 0, 0, 0}, 4},
		{[]byte{0, 0, 0, 0, 0, 0, 0, 0}, 6},
	} {
		faces := ck(idFaces, u16(2, 0, 1, 2, 7, 0, 2, 3, 7), ck(idSmooth, tc.mask))
		data := ck(idMain, ck(idEdit, ck(idObject, cstr("q"), ck(idTrimesh, verts, faces))))
		sc, err := Read(bytes.NewReader(data), nil)
		require.NoError(t, err)
		assert.Equal(t, tc.n, sc.Solids()[0].Mesh.NumVertices())
	}
}

func TestLengthMismatch(t *testing.T) {
	data := append(model(), 0, 0)
	_, err := Read(bytes.NewReader(data), nil)
	assert.True(t, errors.Is(err, codec.ErrLengthMismatch))
}

func TestChildPastParent(t *testing.T) {
	edit := ck(idEdit, ck(idObject, cstr("x")))
	// grow the object chunk size past the edit chunk
	binary.LittleEndian.PutUint32(edit[8:], 100)
	_, err := Read(bytes.NewReader(ck(idMain, edit)), nil)
	require.True(t, errors.Is(err, codec.ErrMalformedContainer))
	var ce *codec.Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, int64(18), ce.Offset)
}

func TestInvalidIndex(t *testing.T) {
	verts := ck(idVertices, u16(3), f32(0, 0, 0, 1, 0, 0, 0, 1, 0))
	faces := ck(idFaces, u16(1, 0, 1, 5, 0))
	data := ck(idMain, ck(idEdit, ck(idObject, cstr("bad"), ck(idTrimesh, verts, faces))))
	_, err := Read(bytes.NewReader(data), nil)
	assert.True(t, errors.Is(err, codec.ErrInvalidIndex))

	ns := &codec.Notices{}
	sc, err := Read(bytes.NewReader(data), &codec.Options{IgnoreErrors: true, Notices: ns})
	require.NoError(t, err)
	assert.Len(t, sc.Solids(), 0)
	assert.Equal(t, 1, ns.Count(codec.ErrInvalidIndex))
}
