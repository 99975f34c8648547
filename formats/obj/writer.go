// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obj

import (
	"fmt"
	"io"
	"strings"

	"cogentcore.org/meshio/base/indent"
	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/export"
	"cogentcore.org/meshio/material"
	"cogentcore.org/meshio/math32"
	"cogentcore.org/meshio/scene"
)

// Write writes the scene as an OBJ model, with its materials in a
// material library side file named after opts.Name. Positions are
// written in world coordinates. Lights are not supported.
func Write(w io.Writer, sc *scene.Scene, opts *codec.Options) error {
	wr := &writer{ctx: export.NewContext(Format, opts), w: indent.NewWriter(w, indent.Space, 2), mats: export.NewNames()}
	if err := export.Run(sc, wr); err != nil {
		return err
	}
	return wr.w.Flush()
}

// writer implements [export.Hooks] for OBJ.
type writer struct {
	ctx  *export.Context
	w    *indent.Writer
	mats *export.Names
	mtl  bool
	nPos int
	nTex int
	nNrm int
}

func (wr *writer) Header(sc *scene.Scene) error {
	wr.w.Line("# %s", sc.Name())
	layers := sc.Layers()
	for _, s := range sc.Solids() {
		if s.Material == nil {
			layers = append(layers, nil)
			break
		}
	}
	if len(layers) == 0 {
		return nil
	}
	name := wr.ctx.Options.BaseName(Format) + "." + MTLFormat
	sf, err := wr.ctx.SideFile(name)
	if err != nil || sf == nil {
		return err
	}
	mw := indent.NewWriter(sf, indent.Space, 2)
	for _, l := range layers {
		if err := wr.writeMaterial(mw, l); err != nil {
			sf.Close()
			return err
		}
	}
	err = mw.Flush()
	if cerr := sf.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	wr.mtl = true
	wr.w.Line("mtllib %s", quote(name))
	return nil
}

// materialName returns the unique name of the layer.
func (wr *writer) materialName(l material.Layer) string {
	if l == nil {
		return wr.mats.Name(l, material.DefaultName, "material")
	}
	return wr.mats.Name(l, material.Name(l), "material")
}

func (wr *writer) writeMaterial(w *indent.Writer, l material.Layer) error {
	mt := wr.ctx.Material(l)
	if _, err := wr.ctx.Baker.Bitmap(mt); err != nil {
		return err
	}
	diffuse := mt.Diffuse
	if mt.DiffuseMap == "" && material.IsProcedural(mt.DiffusePaint) {
		diffuse = wr.ctx.Baker.FlatColor(mt)
	}
	w.Line("newmtl %s", wr.materialName(l))
	w.Line("Ka %s", export.RGB(mt.Ambient))
	w.Line("Kd %s", export.RGB(diffuse))
	w.Line("Ks %s", export.RGB(mt.Specular))
	w.Line("Ns %s", export.Float(mt.SpecularPower))
	if mt.HasEmission() {
		w.Line("Ke %s", export.RGB(mt.Emissive))
	}
	w.Line("d %s", export.Float(mt.Opacity))
	if mt.RefractionIndex > 0 {
		w.Line("Ni %s", export.Float(mt.RefractionIndex))
	}
	if mt.Illum != 0 {
		w.Line("illum %d", mt.Illum)
	}
	if mt.DiffuseMap != "" {
		opt := ""
		if !mt.Tiling.IsIdentity() {
			opt = fmt.Sprintf("-s %s -o %s ", export.Vec2(mt.Tiling.Repeat), export.Vec2(mt.Tiling.Off))
		}
		w.Line("map_Kd %s%s", opt, quote(mt.DiffuseMap))
	}
	maps := []struct{ key, file string }{
		{"map_Ka", mt.AmbientMap},
		{"map_Ks", mt.SpecularMap},
		{"map_bump", mt.BumpMap},
		{"map_d", mt.OpacityMap},
	}
	for _, m := range maps {
		if m.file != "" {
			w.Line("%s %s", m.key, quote(m.file))
		}
	}
	w.Line("")
	return w.Err()
}

func (wr *writer) Solid(s *scene.Solid, world *math32.Matrix4) error {
	ms := s.Mesh.Transformed(world)
	w := wr.w
	w.Line("o %s", wr.ctx.Names.Name(s, s.Name, "solid"))
	for i, p := range ms.Positions {
		if ms.HasColors() {
			w.Line("v %s %s", export.Vec3(p), export.RGB(ms.Colors[i]))
		} else {
			w.Line("v %s", export.Vec3(p))
		}
	}
	for _, t := range ms.TexCoords {
		w.Line("vt %s", export.Floats(" ", t.X, 1-t.Y))
	}
	for _, n := range ms.Normals {
		w.Line("vn %s", export.Vec3(n))
	}
	if wr.mtl {
		w.Line("usemtl %s", wr.materialName(s.Material))
	}
	for i := range ms.NumTriangles() {
		a, b, c := ms.Triangle(i)
		w.Line("f %s %s %s", wr.ref(ms.HasTexCoords(), ms.HasNormals(), a), wr.ref(ms.HasTexCoords(), ms.HasNormals(), b), wr.ref(ms.HasTexCoords(), ms.HasNormals(), c))
	}
	wr.nPos += len(ms.Positions)
	wr.nTex += len(ms.TexCoords)
	wr.nNrm += len(ms.Normals)
	return w.Err()
}

// ref formats the 1-based face vertex reference of mesh vertex i.
func (wr *writer) ref(tex, norm bool, i uint32) string {
	v := int(i) + 1
	switch {
	case tex && norm:
		return fmt.Sprintf("%d/%d/%d", wr.nPos+v, wr.nTex+v, wr.nNrm+v)
	case tex:
		return fmt.Sprintf("%d/%d", wr.nPos+v, wr.nTex+v)
	case norm:
		return fmt.Sprintf("%d//%d", wr.nPos+v, wr.nNrm+v)
	}
	return fmt.Sprint(wr.nPos + v)
}

func (wr *writer) Light(l scene.Light, world *math32.Matrix4) error {
	wr.ctx.Unsupported("lights")
	return nil
}

func (wr *writer) Footer(sc *scene.Scene) error {
	return wr.w.Err()
}

// quote quotes names with spaces for reading back with shell word splitting.
func quote(s string) string {
	if !strings.ContainsAny(s, " \t\"'\\") {
		return s
	}
	return "\"" + strings.NewReplacer("\\", "\\\\", "\"", "\\\"").Replace(s) + "\""
}
