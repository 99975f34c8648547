// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stl

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"cogentcore.org/meshio/base/indent"
	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/export"
	"cogentcore.org/meshio/math32"
	"cogentcore.org/meshio/mesh"
	"cogentcore.org/meshio/scene"
)

// Write writes the scene as a binary STL file with all solids merged,
// in world coordinates. Meshes with vertex colors get facet colors
// from the first vertex of each triangle. Lights are not supported.
func Write(w io.Writer, sc *scene.Scene, opts *codec.Options) error {
	bw := &binaryWriter{ctx: export.NewContext(Format, opts), w: bufio.NewWriter(w)}
	if err := export.Run(sc, bw); err != nil {
		return err
	}
	return bw.w.Flush()
}

// WriteASCII writes the scene as an ASCII STL file with one solid per
// scene solid, in world coordinates.
func WriteASCII(w io.Writer, sc *scene.Scene, opts *codec.Options) error {
	aw := &asciiWriter{ctx: export.NewContext(Format, opts), w: indent.NewWriter(w, indent.Space, 2)}
	if err := export.Run(sc, aw); err != nil {
		return err
	}
	return aw.w.Flush()
}

// facets calls fn for each triangle of the world space mesh with its normal.
func facets(ms *mesh.Mesh, fn func(i int, n math32.Vector3, t math32.Triangle)) {
	for i := range ms.NumTriangles() {
		t := ms.TrianglePositions(i)
		fn(i, t.Normal(), t)
	}
}

// binaryWriter implements [export.Hooks] for binary STL.
type binaryWriter struct {
	ctx *export.Context
	w   *bufio.Writer
	rec [recordLen]byte
	err error
}

func (bw *binaryWriter) Header(sc *scene.Scene) error {
	var hdr [headerLen + 4]byte
	// must not start with "solid", which would make it look like ASCII
	copy(hdr[:headerLen], "binary STL "+sc.Name())
	n := sc.NumTriangles()
	if int64(n) > math.MaxUint32 {
		return codec.Errorf(codec.ErrUnsupportedFeature, "%d triangles do not fit in a binary STL file", n)
	}
	binary.LittleEndian.PutUint32(hdr[headerLen:], uint32(n))
	_, err := bw.w.Write(hdr[:])
	return err
}

func (bw *binaryWriter) Solid(s *scene.Solid, world *math32.Matrix4) error {
	ms := s.Mesh.Transformed(world)
	facets(ms, func(i int, n math32.Vector3, t math32.Triangle) {
		if bw.err != nil {
			return
		}
		b := bw.rec[:0]
		for _, v := range []math32.Vector3{n, t.A, t.B, t.C} {
			b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v.X))
			b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v.Y))
			b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v.Z))
		}
		var attr uint16
		if ms.HasColors() {
			a, _, _ := ms.Triangle(i)
			attr = colorAttr(ms.Colors[a])
		}
		b = binary.LittleEndian.AppendUint16(b, attr)
		_, bw.err = bw.w.Write(b)
	})
	return bw.err
}

func (bw *binaryWriter) Light(l scene.Light, world *math32.Matrix4) error {
	bw.ctx.Unsupported("lights")
	return nil
}

func (bw *binaryWriter) Footer(sc *scene.Scene) error {
	if len(sc.Layers()) > 0 {
		bw.ctx.Unsupported("materials")
	}
	return nil
}

// asciiWriter implements [export.Hooks] for ASCII STL.
type asciiWriter struct {
	ctx *export.Context
	w   *indent.Writer
}

func (aw *asciiWriter) Header(sc *scene.Scene) error {
	return nil
}

func (aw *asciiWriter) Solid(s *scene.Solid, world *math32.Matrix4) error {
	name := aw.ctx.Names.Name(s, s.Name, "solid")
	ms := s.Mesh.Transformed(world)
	w := aw.w
	w.Open("solid %s", name)
	facets(ms, func(i int, n math32.Vector3, t math32.Triangle) {
		w.Open("facet normal %s", export.Vec3(n))
		w.Open("outer loop")
		w.Line("vertex %s", export.Vec3(t.A))
		w.Line("vertex %s", export.Vec3(t.B))
		w.Line("vertex %s", export.Vec3(t.C))
		w.Close("endloop")
		w.Close("endfacet")
	})
	w.Close("endsolid %s", name)
	if ms.HasColors() {
		aw.ctx.Unsupported("vertex colors in ASCII STL")
	}
	return w.Err()
}

func (aw *asciiWriter) Light(l scene.Light, world *math32.Matrix4) error {
	aw.ctx.Unsupported("lights")
	return nil
}

func (aw *asciiWriter) Footer(sc *scene.Scene) error {
	if len(sc.Layers()) > 0 {
		aw.ctx.Unsupported("materials")
	}
	return nil
}
