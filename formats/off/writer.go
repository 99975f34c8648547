// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package off

import (
	"io"
	"strings"

	"cogentcore.org/meshio/base/indent"
	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/colors"
	"cogentcore.org/meshio/export"
	"cogentcore.org/meshio/math32"
	"cogentcore.org/meshio/mesh"
	"cogentcore.org/meshio/scene"
)

// Write writes the scene as one OFF mesh with all solids merged in
// world coordinates. The header is COFF when any mesh has vertex
// colors, and NOFF when all meshes have normals.
func Write(w io.Writer, sc *scene.Scene, opts *codec.Options) error {
	wr := &writer{ctx: export.NewContext(Format, opts), w: indent.NewWriter(w, indent.Space, 2)}
	if err := export.Run(sc, wr); err != nil {
		return err
	}
	return wr.w.Flush()
}

// writer implements [export.Hooks] for OFF. Faces follow all
// vertices, so meshes are collected and written in the footer.
type writer struct {
	ctx    *export.Context
	w      *indent.Writer
	meshes []*mesh.Mesh
}

func (wr *writer) Header(sc *scene.Scene) error {
	return nil
}

func (wr *writer) Solid(s *scene.Solid, world *math32.Matrix4) error {
	wr.meshes = append(wr.meshes, s.Mesh.Transformed(world))
	return nil
}

func (wr *writer) Light(l scene.Light, world *math32.Matrix4) error {
	wr.ctx.Unsupported("lights")
	return nil
}

func (wr *writer) Footer(sc *scene.Scene) error {
	if len(sc.Layers()) > 0 {
		wr.ctx.Unsupported("materials")
	}
	v := Variant{Normals: len(wr.meshes) > 0}
	nv, nf := 0, 0
	for _, ms := range wr.meshes {
		v.Colors = v.Colors || ms.HasColors()
		v.Normals = v.Normals && ms.HasNormals()
		nv += ms.NumVertices()
		nf += ms.NumTriangles()
	}
	w := wr.w
	w.Line("%s", v)
	w.Line("%d %d 0", nv, nf)
	for _, ms := range wr.meshes {
		for i, p := range ms.Positions {
			fields := []string{export.Vec3(p)}
			if v.Normals {
				fields = append(fields, export.Vec3(ms.Normals[i]))
			}
			if v.Colors {
				c := colors.White
				if ms.HasColors() {
					c = ms.Colors[i]
				}
				_, _, _, a := colors.ToFloat32(c)
				fields = append(fields, export.RGB(c), export.Float(a))
			}
			w.Line("%s", strings.Join(fields, " "))
		}
	}
	base := 0
	for _, ms := range wr.meshes {
		for i := range ms.NumTriangles() {
			a, b, c := ms.Triangle(i)
			w.Line("3 %d %d %d", base+int(a), base+int(b), base+int(c))
		}
		base += ms.NumVertices()
	}
	return w.Err()
}
