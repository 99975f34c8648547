// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pov writes scenes as POV-Ray 3.7 scene descriptions (.pov).
//
// Materials become declared textures and meshes declared mesh2
// objects, each written once. Every object is placed with its world
// matrix followed by a z mirror, since POV-Ray is left-handed; light
// positions are mirrored the same way. A camera framing the scene is
// added, and a light at the camera when the scene has none.
package pov

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"

	"cogentcore.org/meshio/base/indent"
	"cogentcore.org/meshio/base/iox/imagex"
	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/colors"
	"cogentcore.org/meshio/export"
	"cogentcore.org/meshio/material"
	"cogentcore.org/meshio/math32"
	"cogentcore.org/meshio/mesh"
	"cogentcore.org/meshio/scene"
)

// Format is the short name of the format.
const Format = "pov"

// distance is the distance of parallel light sources from the origin.
const distance = 1e4

// Write writes the scene as a POV-Ray scene description.
func Write(w io.Writer, sc *scene.Scene, opts *codec.Options) error {
	wr := &writer{ctx: export.NewContext(Format, opts), w: indent.NewWriter(w, indent.Space, 2)}
	if err := export.Run(sc, wr); err != nil {
		return err
	}
	return wr.w.Flush()
}

// writer implements [export.Hooks] for POV-Ray.
type writer struct {
	ctx *export.Context
	w   *indent.Writer

	textures export.Cache[material.Layer, string]
	meshes   export.Cache[*mesh.Mesh, string]
	lights   int
}

func (wr *writer) Header(sc *scene.Scene) error {
	w := wr.w
	w.Line("// %s", sc.Name())
	w.Line("// generator: cogentcore.org/meshio")
	w.Line("#version 3.7;")
	w.Line("global_settings { assumed_gamma 1.0 }")
	w.Line("")

	center, dist := math32.Vector3{}, float32(5)
	if bb := sc.BBox(); !bb.IsEmpty() {
		center = bb.Center()
		dist = max(bb.Size().Length()*1.5, 1)
	}
	w.Open("camera {")
	w.Line("location %s", mirror(center.Add(math32.Vec3(0, 0, dist))))
	w.Line("look_at %s", mirror(center))
	w.Line("right x*image_width/image_height")
	w.Close("}")
	w.Line("")
	return w.Err()
}

func (wr *writer) Footer(sc *scene.Scene) error {
	if wr.lights == 0 {
		wr.w.Line("light_source { camera_location rgb 1 }")
	}
	return wr.w.Err()
}

func (wr *writer) Solid(s *scene.Solid, world *math32.Matrix4) error {
	tex, err := wr.texture(s.Material)
	if err != nil {
		return err
	}
	ms := wr.mesh(s.Mesh)
	w := wr.w
	w.Line("// %s", s.Name)
	w.Open("object {")
	w.Line("%s", ms)
	w.Line("texture { %s }", tex)
	w.Line("matrix %s", matrix(world))
	w.Line("scale <1, 1, -1>")
	w.Close("}")
	w.Line("")
	return w.Err()
}

// texture declares the texture of the layer once and returns its name.
func (wr *writer) texture(l material.Layer) (string, error) {
	if name, ok := wr.textures.Get(l); ok {
		return name, nil
	}
	mt, err := wr.ctx.Surface(l)
	if err != nil {
		return "", err
	}
	name := "T_" + wr.ctx.Names.Name(mt, mt.Name, "material")
	wr.textures.Set(l, name)

	w := wr.w
	w.Open("#declare %s = texture {", name)
	transmit := 1 - mt.Opacity
	if kind := imageKind(mt.DiffuseMap); kind != "" {
		w.Open("pigment {")
		w.Line("uv_mapping image_map { %s %q interpolate 2 }", kind, mt.DiffuseMap)
		if !mt.Tiling.IsIdentity() {
			rep := mt.Tiling.Repeat
			w.Line("scale <%s, %s, 1>", export.Float(1/rep.X), export.Float(1/rep.Y))
			w.Line("translate <%s, 0>", export.Vec2(mt.Tiling.Off))
		}
		w.Close("}")
	} else {
		if mt.DiffuseMap != "" {
			wr.ctx.Unsupported("texture file %s", mt.DiffuseMap)
		}
		w.Line("pigment { rgbt <%s, %s> }", export.Floats(", ", rgb(mt.Diffuse)...), export.Float(transmit))
	}
	w.Open("finish {")
	w.Line("ambient %s", export.Float(export.AmbientIntensity(mt)))
	w.Line("diffuse 0.8")
	if mt.SpecularPower > 0 {
		w.Line("specular %s", export.Float(colors.Gray32(mt.Specular)))
		w.Line("roughness %s", export.Float(1/mt.SpecularPower))
	}
	if mt.HasEmission() {
		w.Line("emission rgb <%s>", export.Floats(", ", rgb(mt.Emissive)...))
	}
	w.Close("}")
	if mt.RefractionIndex > 0 && mt.IsTransparent() {
		w.Line("interior { ior %s }", export.Float(mt.RefractionIndex))
	}
	w.Close("}")
	w.Line("")
	if mt.HasSecondaryMaps() {
		wr.ctx.Unsupported("texture maps other than diffuse")
	}
	return name, w.Err()
}

// imageKind returns the POV-Ray image type keyword of the texture file,
// or "" when there is none.
func imageKind(file string) string {
	if file == "" {
		return ""
	}
	f, err := imagex.ExtToFormat(filepath.Ext(file))
	if err != nil {
		return ""
	}
	switch f {
	case imagex.PNG, imagex.GIF, imagex.TIFF, imagex.BMP:
		return f.String()
	case imagex.JPEG:
		return "jpeg"
	}
	return ""
}

// mesh declares the mesh once and returns its name.
func (wr *writer) mesh(ms *mesh.Mesh) string {
	if name, ok := wr.meshes.Get(ms); ok {
		return name
	}
	name := "M_" + wr.ctx.Names.Name(ms, ms.Name, "mesh")
	wr.meshes.Set(ms, name)

	w := wr.w
	n := ms.NumVertices()
	w.Open("#declare %s = mesh2 {", name)
	w.Open("vertex_vectors { %d,", n)
	for _, p := range ms.Positions {
		w.Line("%s,", vec(p))
	}
	w.Close("}")
	if ms.HasNormals() {
		w.Open("normal_vectors { %d,", n)
		for _, v := range ms.Normals {
			w.Line("%s,", vec(v))
		}
		w.Close("}")
	}
	if ms.HasTexCoords() {
		w.Open("uv_vectors { %d,", n)
		for _, t := range ms.TexCoords {
			w.Line("<%s>,", export.Floats(", ", t.X, 1-t.Y))
		}
		w.Close("}")
	}
	if ms.HasColors() {
		w.Open("texture_list { %d,", n)
		for _, c := range ms.Colors {
			r, g, b, a := colors.ToFloat32(c)
			w.Line("texture { pigment { rgbt <%s> } },", export.Floats(", ", r, g, b, 1-a))
		}
		w.Close("}")
	}
	w.Open("face_indices { %d,", ms.NumTriangles())
	for i := range ms.NumTriangles() {
		a, b, c := ms.Triangle(i)
		if ms.HasColors() {
			w.Line("<%d, %d, %d>, %d, %d, %d,", a, b, c, a, b, c)
		} else {
			w.Line("<%d, %d, %d>,", a, b, c)
		}
	}
	w.Close("}")
	w.Close("}")
	w.Line("")
	return name
}

func (wr *writer) Light(l scene.Light, world *math32.Matrix4) error {
	w := wr.w
	lb := l.AsLightBase()
	r, g, b := lb.Intensity()
	clr := fmt.Sprintf("rgb <%s>", export.Floats(", ", r, g, b))
	w.Line("// %s", lb.Name)
	switch l := l.(type) {
	case *scene.AmbientLight:
		w.Line("global_settings { ambient_light %s }", clr)
		w.Line("")
		return w.Err()
	case *scene.DirLight:
		dir := export.LightDir(l, world)
		w.Open("light_source {")
		w.Line("%s %s", mirror(dir.MulScalar(-distance)), clr)
		w.Line("parallel")
		w.Line("point_at <0, 0, 0>")
	case *scene.PointLight:
		w.Open("light_source {")
		w.Line("%s %s", mirror(export.LightPos(l, world)), clr)
		wr.attenuation(l.Attenuation)
	case *scene.SpotLight:
		pos := export.LightPos(l, world)
		w.Open("light_source {")
		w.Line("%s %s", mirror(pos), clr)
		w.Line("spotlight")
		w.Line("point_at %s", mirror(pos.Add(export.LightDir(l, world))))
		w.Line("radius %s", export.Float(l.InnerAngle))
		w.Line("falloff %s", export.Float(l.OuterAngle))
		wr.attenuation(l.Attenuation)
	}
	w.Close("}")
	w.Line("")
	wr.lights++
	return w.Err()
}

// attenuation writes the closest POV-Ray fading: by the linear
// or the quadratic term, whichever is larger.
func (wr *writer) attenuation(at scene.Attenuation) {
	k, power := at.Linear, 1
	if at.Quadratic > at.Linear {
		k, power = math32.Sqrt(at.Quadratic), 2
	}
	if k <= 0 {
		return
	}
	wr.w.Line("fade_distance %s", export.Float(1/k))
	wr.w.Line("fade_power %d", power)
}

func rgb(c color.RGBA) []float32 {
	r, g, b, _ := colors.ToFloat32(c)
	return []float32{r, g, b}
}

// vec formats v as a POV-Ray vector.
func vec(v math32.Vector3) string {
	return "<" + export.Floats(", ", v.X, v.Y, v.Z) + ">"
}

// mirror formats v as a POV-Ray vector in left-handed coordinates.
func mirror(v math32.Vector3) string {
	return vec(math32.Vec3(v.X, v.Y, -v.Z))
}

// matrix formats the affine part of m as a POV-Ray matrix, which
// transforms row vectors.
func matrix(m *math32.Matrix4) string {
	return "<" + export.Floats(", ", m[0], m[1], m[2], m[4], m[5], m[6], m[8], m[9], m[10], m[12], m[13], m[14]) + ">"
}
