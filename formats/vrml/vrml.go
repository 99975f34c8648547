// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vrml writes scenes as VRML97 worlds (.wrl).
//
// Each solid is a Transform around a Shape with an IndexedFaceSet;
// shared meshes and materials are defined once with DEF and reused
// with USE. VRML97 colors have no alpha, so vertex color alpha is
// dropped.
package vrml

import (
	"io"
	"strings"

	"cogentcore.org/meshio/base/indent"
	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/export"
	"cogentcore.org/meshio/material"
	"cogentcore.org/meshio/math32"
	"cogentcore.org/meshio/mesh"
	"cogentcore.org/meshio/scene"
)

// Format is the short name of the format.
const Format = "wrl"

// Write writes the scene as a VRML97 world.
func Write(w io.Writer, sc *scene.Scene, opts *codec.Options) error {
	wr := &writer{ctx: export.NewContext(Format, opts), w: indent.NewWriter(w, indent.Space, 2)}
	if err := export.Run(sc, wr); err != nil {
		return err
	}
	return wr.w.Flush()
}

// writer implements [export.Hooks] for VRML97.
type writer struct {
	ctx *export.Context
	w   *indent.Writer

	geoms export.Cache[*mesh.Mesh, string]
	apps  export.Cache[material.Layer, string]
}

func (wr *writer) Header(sc *scene.Scene) error {
	w := wr.w
	w.Line("#VRML V2.0 utf8")
	w.Line("")
	w.Open("WorldInfo {")
	w.Line("title %s", quote(sc.Name()))
	w.Line("info [ %s ]", quote("generator: cogentcore.org/meshio"))
	w.Close("}")
	return w.Err()
}

func (wr *writer) Footer(sc *scene.Scene) error {
	return wr.w.Err()
}

func (wr *writer) Solid(s *scene.Solid, world *math32.Matrix4) error {
	w := wr.w
	w.Open("DEF %s Transform {", wr.ctx.Names.Name(s, s.Name, "solid"))
	trs := export.Decompose(world)
	if !trs.Translation.IsNil() {
		w.Line("translation %s", export.Vec3(trs.Translation))
	}
	if trs.Angle != 0 {
		w.Line("rotation %s %s", export.Vec3(trs.Axis), export.Float(trs.Angle))
	}
	if trs.Scale != math32.Vec3(1, 1, 1) {
		w.Line("scale %s", export.Vec3(trs.Scale))
	}
	w.Open("children [")
	w.Open("Shape {")
	if err := wr.appearance(s.Material); err != nil {
		return err
	}
	wr.geometry(s.Mesh)
	w.Close("}")
	w.Close("]")
	w.Close("}")
	return w.Err()
}

func (wr *writer) appearance(l material.Layer) error {
	w := wr.w
	if def, ok := wr.apps.Get(l); ok {
		w.Line("appearance USE %s", def)
		return nil
	}
	mt, err := wr.ctx.Surface(l)
	if err != nil {
		return err
	}
	def := wr.ctx.Names.Name(mt, mt.Name, "material")
	wr.apps.Set(l, def)
	w.Open("appearance DEF %s Appearance {", def)
	w.Open("material Material {")
	w.Line("diffuseColor %s", export.RGB(mt.Diffuse))
	w.Line("ambientIntensity %s", export.Float(export.AmbientIntensity(mt)))
	w.Line("specularColor %s", export.RGB(mt.Specular))
	w.Line("shininess %s", export.Float(export.Shininess(mt)))
	w.Line("emissiveColor %s", export.RGB(mt.Emissive))
	w.Line("transparency %s", export.Float(1-mt.Opacity))
	w.Close("}")
	if mt.DiffuseMap != "" {
		w.Line("texture ImageTexture { url %s }", quote(mt.DiffuseMap))
		if !mt.Tiling.IsIdentity() {
			w.Line("textureTransform TextureTransform { scale %s translation %s }", export.Vec2(mt.Tiling.Repeat), export.Vec2(mt.Tiling.Off))
		}
	}
	if mt.HasSecondaryMaps() {
		wr.ctx.Unsupported("texture maps other than diffuse")
	}
	w.Close("}")
	return nil
}

func (wr *writer) geometry(ms *mesh.Mesh) {
	w := wr.w
	if def, ok := wr.geoms.Get(ms); ok {
		w.Line("geometry USE %s", def)
		return
	}
	def := wr.ctx.Names.Name(ms, ms.Name, "mesh")
	wr.geoms.Set(ms, def)
	w.Open("geometry DEF %s IndexedFaceSet {", def)
	w.Open("coord Coordinate { point [")
	for _, p := range ms.Positions {
		w.Line("%s,", export.Vec3(p))
	}
	w.Close("] }")
	if ms.HasNormals() {
		w.Open("normal Normal { vector [")
		for _, n := range ms.Normals {
			w.Line("%s,", export.Vec3(n))
		}
		w.Close("] }")
	}
	if ms.HasTexCoords() {
		w.Open("texCoord TextureCoordinate { point [")
		for _, t := range ms.TexCoords {
			w.Line("%s,", export.Floats(" ", t.X, 1-t.Y))
		}
		w.Close("] }")
	}
	if ms.HasColors() {
		w.Open("color Color { color [")
		for _, c := range ms.Colors {
			w.Line("%s,", export.RGB(c))
		}
		w.Close("] }")
	}
	w.Open("coordIndex [")
	for i := range ms.NumTriangles() {
		a, b, c := ms.Triangle(i)
		w.Line("%d %d %d -1,", a, b, c)
	}
	w.Close("]")
	w.Close("}")
}

func (wr *writer) Light(l scene.Light, world *math32.Matrix4) error {
	w := wr.w
	lb := l.AsLightBase()
	def := wr.ctx.Names.Name(l, lb.Name, "light")
	intensity := export.Float(min(lb.Lumens, 1))
	switch l := l.(type) {
	case *scene.AmbientLight:
		w.Open("DEF %s DirectionalLight {", def)
		w.Line("ambientIntensity %s", intensity)
		w.Line("intensity 0")
	case *scene.DirLight:
		w.Open("DEF %s DirectionalLight {", def)
		w.Line("intensity %s", intensity)
		w.Line("direction %s", export.Vec3(export.LightDir(l, world)))
	case *scene.PointLight:
		w.Open("DEF %s PointLight {", def)
		w.Line("intensity %s", intensity)
		w.Line("location %s", export.Vec3(export.LightPos(l, world)))
		w.Line("attenuation %s", attenuation(l.Attenuation))
	case *scene.SpotLight:
		w.Open("DEF %s SpotLight {", def)
		w.Line("intensity %s", intensity)
		w.Line("location %s", export.Vec3(export.LightPos(l, world)))
		w.Line("direction %s", export.Vec3(export.LightDir(l, world)))
		w.Line("attenuation %s", attenuation(l.Attenuation))
		w.Line("beamWidth %s", export.Float(math32.DegToRad(l.InnerAngle)))
		w.Line("cutOffAngle %s", export.Float(math32.DegToRad(l.OuterAngle)))
	}
	w.Line("color %s", export.RGB(lb.Color))
	w.Close("}")
	return w.Err()
}

func attenuation(at scene.Attenuation) string {
	return export.Floats(" ", at.Constant, at.Linear, at.Quadratic)
}

// quote returns s as a VRML string.
func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}
