// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"image/color"

	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/math32"
)

// Source holds the separately indexed vertex attributes that faces
// refer to, such as the v, vt and vn lists of an OBJ file.
// Colors, when present, parallel Positions.
type Source struct {
	Positions []math32.Vector3
	Normals   []math32.Vector3
	TexCoords []math32.Vector2
	Colors    []color.RGBA
}

// VertexRef is a face vertex given as 0-based indices into a [Source];
// Tex and Norm are -1 when absent.
type VertexRef struct {
	Pos, Tex, Norm int
}

// Channels are the optional per-vertex attributes a mesh carries.
type Channels struct {
	Normals, TexCoords, Colors bool
}

// Vertex is one vertex with all its attributes, for [Builder.AddVertex].
type Vertex struct {
	Pos    math32.Vector3
	Normal math32.Vector3
	Tex    math32.Vector2
	Color  color.RGBA
}

// Builder accumulates faces into a [Mesh]. The first face decides which
// optional channels the mesh has; a later face that lacks a channel
// disables it for the whole mesh, dropping what was collected for it.
type Builder struct {
	// Cache shares vertices within smoothing groups.
	Cache VertexCache

	mesh     Mesh
	channels Channels
	started  bool
}

// SetChannels declares the channels of vertices added with [Builder.AddVertex].
func (b *Builder) SetChannels(c Channels) {
	b.channels = c
	b.started = true
}

// Channels returns the active channels.
func (b *Builder) Channels() Channels {
	return b.channels
}

// NumVertices returns the number of vertices emitted so far.
func (b *Builder) NumVertices() int {
	return len(b.mesh.Positions)
}

// NumTriangles returns the number of triangles emitted so far.
func (b *Builder) NumTriangles() int {
	return len(b.mesh.Indices) / 3
}

// AddVertex appends a vertex with the active channels and returns its index.
func (b *Builder) AddVertex(v Vertex) uint32 {
	idx := uint32(len(b.mesh.Positions))
	b.mesh.Positions = append(b.mesh.Positions, v.Pos)
	if b.channels.Normals {
		b.mesh.Normals = append(b.mesh.Normals, v.Normal)
	}
	if b.channels.TexCoords {
		b.mesh.TexCoords = append(b.mesh.TexCoords, v.Tex)
	}
	if b.channels.Colors {
		b.mesh.Colors = append(b.mesh.Colors, v.Color)
	}
	return idx
}

// AddTriangle appends a triangle of already emitted vertices.
func (b *Builder) AddTriangle(a, c, d uint32) {
	b.mesh.Indices = append(b.mesh.Indices, a, c, d)
}

// AddPolygon triangulates a polygon of already emitted vertices,
// fanning triangles and quads and ear-cutting larger polygons.
func (b *Builder) AddPolygon(idxs []uint32) error {
	n := len(idxs)
	if n < 3 {
		return codec.Errorf(codec.ErrMalformedRecord, "polygon has %d vertices, need at least 3", n)
	}
	for _, ix := range idxs {
		if int(ix) >= len(b.mesh.Positions) {
			return codec.Errorf(codec.ErrInvalidIndex, "vertex %d out of range [0, %d)", ix, len(b.mesh.Positions))
		}
	}
	switch n {
	case 3:
		b.AddTriangle(idxs[0], idxs[1], idxs[2])
	case 4:
		b.AddTriangle(idxs[0], idxs[1], idxs[2])
		b.AddTriangle(idxs[0], idxs[2], idxs[3])
	default:
		pts := make([]math32.Vector3, n)
		for i, ix := range idxs {
			pts[i] = b.mesh.Positions[ix]
		}
		for _, t := range Triangulate(pts) {
			b.AddTriangle(idxs[t[0]], idxs[t[1]], idxs[t[2]])
		}
	}
	return nil
}

// AddFace adds a polygon given as references into src. Indices are
// checked before anything is added, so a failing face leaves the
// builder unchanged.
func (b *Builder) AddFace(src *Source, refs []VertexRef) error {
	if len(refs) < 3 {
		return codec.Errorf(codec.ErrMalformedRecord, "face has %d vertices, need at least 3", len(refs))
	}
	allTex, allNorm := true, true
	for _, r := range refs {
		if r.Pos < 0 || r.Pos >= len(src.Positions) {
			return codec.Errorf(codec.ErrInvalidIndex, "vertex %d out of range [1, %d]", r.Pos+1, len(src.Positions))
		}
		if r.Tex >= len(src.TexCoords) {
			return codec.Errorf(codec.ErrInvalidIndex, "texture coordinate %d out of range [1, %d]", r.Tex+1, len(src.TexCoords))
		}
		if r.Norm >= len(src.Normals) {
			return codec.Errorf(codec.ErrInvalidIndex, "normal %d out of range [1, %d]", r.Norm+1, len(src.Normals))
		}
		allTex = allTex && r.Tex >= 0
		allNorm = allNorm && r.Norm >= 0
	}
	hasColors := len(src.Colors) > 0 && len(src.Colors) == len(src.Positions)
	if !b.started {
		b.SetChannels(Channels{Normals: allNorm, TexCoords: allTex, Colors: hasColors})
	} else {
		if b.channels.TexCoords && !allTex {
			b.channels.TexCoords = false
			b.mesh.TexCoords = nil
		}
		if b.channels.Normals && !allNorm {
			b.channels.Normals = false
			b.mesh.Normals = nil
		}
		if b.channels.Colors && !hasColors {
			b.channels.Colors = false
			b.mesh.Colors = nil
		}
	}

	idxs := make([]uint32, len(refs))
	for i, r := range refs {
		idxs[i] = b.vertex(src, r)
	}
	return b.AddPolygon(idxs)
}

// vertex returns the vertex for the reference, reusing one emitted
// earlier in the active smoothing group.
func (b *Builder) vertex(src *Source, r VertexRef) uint32 {
	k := VertexKey{Pos: r.Pos, Tex: -1, Norm: -1}
	v := Vertex{Pos: src.Positions[r.Pos]}
	if b.channels.TexCoords {
		k.Tex = r.Tex
		v.Tex = src.TexCoords[r.Tex]
	}
	if b.channels.Normals {
		k.Norm = r.Norm
		v.Normal = src.Normals[r.Norm]
	}
	if b.channels.Colors {
		v.Color = src.Colors[r.Pos]
	}
	if idx, ok := b.Cache.Lookup(k); ok {
		return idx
	}
	idx := b.AddVertex(v)
	b.Cache.Insert(k, idx)
	return idx
}

// IsEmpty returns true if no triangles have been added.
func (b *Builder) IsEmpty() bool {
	return len(b.mesh.Indices) == 0
}

// Mesh returns the finished mesh with the given name and resets the
// builder for a new mesh. The builder keeps no reference to the result.
func (b *Builder) Mesh(name string) *Mesh {
	ms := b.mesh
	ms.Name = name
	if !b.channels.Normals {
		ms.Normals = nil
	}
	if !b.channels.TexCoords {
		ms.TexCoords = nil
	}
	if !b.channels.Colors {
		ms.Colors = nil
	}
	b.Reset()
	return &ms
}

// Reset starts a new mesh, clearing the vertex cache but keeping
// the active smoothing group.
func (b *Builder) Reset() {
	b.mesh = Mesh{}
	b.channels = Channels{}
	b.started = false
	b.Cache.Clear()
}
