// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"errors"
	"testing"

	"cogentcore.org/meshio/base/tolassert"
	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() *Source {
	return &Source{
		Positions: []math32.Vector3{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		},
		Normals:   []math32.Vector3{{0, 0, 1}},
		TexCoords: []math32.Vector2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	}
}

func refs(pos ...int) []VertexRef {
	rs := make([]VertexRef, len(pos))
	for i, p := range pos {
		rs[i] = VertexRef{Pos: p, Tex: -1, Norm: -1}
	}
	return rs
}

func TestFanCounts(t *testing.T) {
	src := square()
	var b Builder
	require.NoError(t, b.AddFace(src, refs(0, 1, 2)))
	assert.Equal(t, 1, b.NumTriangles())
	require.NoError(t, b.AddFace(src, refs(0, 1, 2, 3)))
	assert.Equal(t, 3, b.NumTriangles())
	ms := b.Mesh("quad")
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5, 3, 5, 6}, ms.Indices)
	assert.NoError(t, ms.Validate())
	assert.Equal(t, 0, b.NumTriangles())
}

func TestTriangulateConvex(t *testing.T) {
	for n := 3; n <= 12; n++ {
		pts := make([]math32.Vector3, n)
		for i := range pts {
			a := 2 * math32.Pi * float32(i) / float32(n)
			pts[i] = math32.Vec3(math32.Cos(a), math32.Sin(a), 0)
		}
		tris := Triangulate(pts)
		assert.Len(t, tris, n-2)
	}
}

func TestTriangulateConcave(t *testing.T) {
	// an L shape, in the xz plane
	pts := []math32.Vector3{
		{0, 0, 0}, {2, 0, 0}, {2, 0, 1}, {1, 0, 1}, {1, 0, 2}, {0, 0, 2},
	}
	tris := Triangulate(pts)
	require.Len(t, tris, 4)
	area := float32(0)
	for _, tr := range tris {
		tri := math32.NewTriangle(pts[tr[0]], pts[tr[1]], pts[tr[2]])
		area += tri.Area()
	}
	tolassert.EqualTol(t, 3, area, 1e-5)
}

func TestTriangulateKeepsWinding(t *testing.T) {
	pts := []math32.Vector3{
		{0, 0, 0}, {2, 0, 0}, {3, 1, 0}, {2, 2, 0}, {1, 1, 0}, {0, 2, 0},
	}
	want := math32.Normal(pts[0], pts[1], pts[2])
	for _, tr := range Triangulate(pts) {
		n := math32.Normal(pts[tr[0]], pts[tr[1]], pts[tr[2]])
		assert.Greater(t, n.Dot(want), float32(0))
	}
}

func TestTriangulateDegenerate(t *testing.T) {
	pts := make([]math32.Vector3, 6)
	for i := range pts {
		pts[i] = math32.Vec3(float32(i), 0, 0)
	}
	assert.Len(t, Triangulate(pts), 4)
	assert.Nil(t, Triangulate(pts[:2]))
}

func TestAddFaceErrors(t *testing.T) {
	src := square()
	var b Builder
	err := b.AddFace(src, refs(0, 1))
	assert.ErrorIs(t, err, codec.ErrMalformedRecord)
	err = b.AddFace(src, refs(0, 1, 7))
	assert.ErrorIs(t, err, codec.ErrInvalidIndex)
	err = b.AddFace(src, []VertexRef{{0, -1, 3}, {1, -1, 0}, {2, -1, 0}})
	assert.True(t, errors.Is(err, codec.ErrInvalidIndex))
	assert.True(t, b.IsEmpty())
	assert.Equal(t, 0, b.NumVertices())
}

func TestChannelPolicy(t *testing.T) {
	src := square()
	var b Builder
	require.NoError(t, b.AddFace(src, []VertexRef{{0, 0, 0}, {1, 1, 0}, {2, 2, 0}}))
	ch := b.Channels()
	assert.True(t, ch.TexCoords)
	assert.True(t, ch.Normals)
	require.NoError(t, b.AddFace(src, []VertexRef{{0, 0, -1}, {2, 2, -1}, {3, 3, -1}}))
	ms := b.Mesh("m")
	assert.Nil(t, ms.Normals)
	assert.Len(t, ms.TexCoords, ms.NumVertices())
	assert.NoError(t, ms.Validate())

	// a channel absent from the first face stays off
	require.NoError(t, b.AddFace(src, refs(0, 1, 2)))
	require.NoError(t, b.AddFace(src, []VertexRef{{0, 0, 0}, {1, 1, 0}, {2, 2, 0}}))
	ms = b.Mesh("m")
	assert.Nil(t, ms.TexCoords)
	assert.Nil(t, ms.Normals)
}

func TestSmoothingWeld(t *testing.T) {
	src := square()
	var b Builder
	b.Cache.SetGroup(1)
	require.NoError(t, b.AddFace(src, refs(0, 1, 2)))
	require.NoError(t, b.AddFace(src, refs(0, 2, 3)))
	ms := b.Mesh("welded")
	assert.Equal(t, 4, ms.NumVertices())
	assert.Equal(t, 2, ms.NumTriangles())

	b.Cache.SetGroup(0)
	require.NoError(t, b.AddFace(src, refs(0, 1, 2)))
	require.NoError(t, b.AddFace(src, refs(0, 2, 3)))
	ms = b.Mesh("split")
	assert.Equal(t, 6, ms.NumVertices())
}

func TestSmoothingGroupsSeparate(t *testing.T) {
	src := square()
	var b Builder
	b.Cache.SetGroup(1)
	require.NoError(t, b.AddFace(src, refs(0, 1, 2)))
	b.Cache.SetGroup(2)
	require.NoError(t, b.AddFace(src, refs(0, 2, 3)))
	b.Cache.SetGroup(1)
	require.NoError(t, b.AddFace(src, refs(2, 1, 0)))
	ms := b.Mesh("groups")
	assert.Equal(t, 6, ms.NumVertices())
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5, 2, 1, 0}, ms.Indices)
}

func TestVertexCache(t *testing.T) {
	var vc VertexCache
	k := VertexKey{1, -1, -1}
	vc.Insert(k, 5)
	_, ok := vc.Lookup(k)
	assert.False(t, ok)
	vc.SetGroup(3)
	vc.Insert(k, 5)
	idx, ok := vc.Lookup(k)
	assert.True(t, ok)
	assert.Equal(t, uint32(5), idx)
	vc.Clear()
	_, ok = vc.Lookup(k)
	assert.False(t, ok)
	assert.Equal(t, 3, vc.Group())
}

func TestValidate(t *testing.T) {
	ms := &Mesh{Positions: []math32.Vector3{{}, {}, {}}, Indices: []uint32{0, 1, 3}}
	assert.ErrorIs(t, ms.Validate(), codec.ErrInvalidIndex)
	ms.Indices = []uint32{0, 1}
	assert.Error(t, ms.Validate())
	ms.Indices = []uint32{0, 1, 2}
	ms.Normals = []math32.Vector3{{}}
	assert.Error(t, ms.Validate())
	ms.Normals = nil
	assert.NoError(t, ms.Validate())
}

func TestComputeNormals(t *testing.T) {
	var b Builder
	b.Cache.SetGroup(1)
	require.NoError(t, b.AddFace(square(), refs(0, 1, 2, 3)))
	ms := b.Mesh("sq")
	ms.ComputeNormals()
	require.Len(t, ms.Normals, 4)
	for _, n := range ms.Normals {
		assert.True(t, n.IsEqualTol(math32.Vec3(0, 0, 1), 1e-6))
	}
	bb := ms.BBox()
	assert.Equal(t, math32.Vec3(1, 1, 0), bb.Max)
}

func TestTransformed(t *testing.T) {
	ms := &Mesh{
		Positions: []math32.Vector3{{1, 0, 0}},
		Normals:   []math32.Vector3{{1, 0, 0}},
	}
	var q math32.Quat
	q.SetFromAxisAngle(math32.Vec3(0, 0, 1), math32.Pi/2)
	m := &math32.Matrix4{}
	m.SetTransform(math32.Vec3(0, 0, 5), q, math32.Vec3(2, 2, 2))
	tm := ms.Transformed(m)
	assert.True(t, tm.Positions[0].IsEqualTol(math32.Vec3(0, 2, 5), 1e-5))
	assert.True(t, tm.Normals[0].IsEqualTol(math32.Vec3(0, 1, 0), 1e-5))
	assert.Equal(t, math32.Vec3(1, 0, 0), ms.Positions[0])
}
