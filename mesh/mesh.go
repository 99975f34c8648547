// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh provides the indexed triangle mesh that all formats
// read into and write from, the [Builder] that accumulates faces into
// it, polygon triangulation, and the smoothing-group [VertexCache].
package mesh

import (
	"fmt"
	"image/color"

	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/math32"
)

// Mesh is an indexed triangle mesh. Normals, TexCoords and Colors
// are either nil or have exactly one entry per position.
// Indices has three entries per triangle, each indexing Positions.
type Mesh struct {
	Name      string
	Positions []math32.Vector3
	Normals   []math32.Vector3
	TexCoords []math32.Vector2
	Colors    []color.RGBA
	Indices   []uint32
}

// NumVertices returns the number of vertices.
func (ms *Mesh) NumVertices() int {
	return len(ms.Positions)
}

// NumTriangles returns the number of triangles.
func (ms *Mesh) NumTriangles() int {
	return len(ms.Indices) / 3
}

// IsEmpty returns true if the mesh has no triangles.
func (ms *Mesh) IsEmpty() bool {
	return ms == nil || len(ms.Indices) == 0
}

// HasNormals returns true if the mesh has per-vertex normals.
func (ms *Mesh) HasNormals() bool { return len(ms.Normals) > 0 }

// HasTexCoords returns true if the mesh has per-vertex texture coordinates.
func (ms *Mesh) HasTexCoords() bool { return len(ms.TexCoords) > 0 }

// HasColors returns true if the mesh has per-vertex colors.
func (ms *Mesh) HasColors() bool { return len(ms.Colors) > 0 }

// Triangle returns the vertex indices of triangle i.
func (ms *Mesh) Triangle(i int) (a, b, c uint32) {
	return ms.Indices[3*i], ms.Indices[3*i+1], ms.Indices[3*i+2]
}

// TrianglePositions returns the positions of triangle i.
func (ms *Mesh) TrianglePositions(i int) math32.Triangle {
	a, b, c := ms.Triangle(i)
	return math32.NewTriangle(ms.Positions[a], ms.Positions[b], ms.Positions[c])
}

// Validate checks the mesh invariants.
func (ms *Mesh) Validate() error {
	n := len(ms.Positions)
	if len(ms.Normals) != 0 && len(ms.Normals) != n {
		return fmt.Errorf("mesh %q: %d normals for %d positions", ms.Name, len(ms.Normals), n)
	}
	if len(ms.TexCoords) != 0 && len(ms.TexCoords) != n {
		return fmt.Errorf("mesh %q: %d texture coordinates for %d positions", ms.Name, len(ms.TexCoords), n)
	}
	if len(ms.Colors) != 0 && len(ms.Colors) != n {
		return fmt.Errorf("mesh %q: %d colors for %d positions", ms.Name, len(ms.Colors), n)
	}
	if len(ms.Indices)%3 != 0 {
		return fmt.Errorf("mesh %q: %d indices is not a multiple of 3", ms.Name, len(ms.Indices))
	}
	for i, ix := range ms.Indices {
		if int(ix) >= n {
			return codec.Errorf(codec.ErrInvalidIndex, "mesh %q: index %d at %d out of range [0, %d)", ms.Name, ix, i, n)
		}
	}
	return nil
}

// BBox returns the bounding box of the positions.
func (ms *Mesh) BBox() math32.Box3 {
	bb := math32.B3Empty()
	bb.SetFromPoints(ms.Positions)
	return bb
}

// ComputeNormals sets smooth per-vertex normals, averaging the
// normals of the triangles sharing each vertex weighted by their area.
func (ms *Mesh) ComputeNormals() {
	norms := make([]math32.Vector3, len(ms.Positions))
	for i := range ms.NumTriangles() {
		a, b, c := ms.Triangle(i)
		pa, pb, pc := ms.Positions[a], ms.Positions[b], ms.Positions[c]
		fn := pb.Sub(pa).Cross(pc.Sub(pa))
		norms[a].SetAdd(fn)
		norms[b].SetAdd(fn)
		norms[c].SetAdd(fn)
	}
	for i := range norms {
		norms[i] = norms[i].Normal()
	}
	ms.Normals = norms
}

// Transformed returns a copy of the mesh with positions transformed
// by m and normals by its inverse transpose.
func (ms *Mesh) Transformed(m *math32.Matrix4) *Mesh {
	nm := *ms
	nm.Positions = make([]math32.Vector3, len(ms.Positions))
	for i, p := range ms.Positions {
		nm.Positions[i] = p.MulMatrix4(m)
	}
	if ms.HasNormals() {
		inv, err := m.Inverse()
		if err != nil {
			inv = math32.Identity4()
		}
		nmat := inv.Transpose()
		nm.Normals = make([]math32.Vector3, len(ms.Normals))
		for i, n := range ms.Normals {
			nm.Normals[i] = n.MulMatrix4AsVector4(nmat, 0).Normal()
		}
	}
	return &nm
}
