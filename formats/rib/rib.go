// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rib writes scenes as RenderMan Interface Bytestream files
// (.rib), in the ASCII encoding.
//
// The camera frames the scene from +Z; a mirror in the camera
// transform turns the right-handed scene into RenderMan's
// left-handed space. Lights are declared first, in world
// coordinates, so that they illuminate every object. Each mesh is
// retained once as an object and instanced by the solids that use
// it. Procedural paints are baked to TIFF textures.
package rib

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"cogentcore.org/meshio/base/indent"
	"cogentcore.org/meshio/base/iox/imagex"
	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/export"
	"cogentcore.org/meshio/material"
	"cogentcore.org/meshio/math32"
	"cogentcore.org/meshio/mesh"
	"cogentcore.org/meshio/scene"
)

// Format is the short name of the format.
const Format = "rib"

// Image size of the Display.
const (
	width  = 640
	height = 480
	fov    = 45
)

// Write writes the scene as a RIB file.
func Write(w io.Writer, sc *scene.Scene, opts *codec.Options) error {
	ctx := export.NewContext(Format, opts)
	ctx.Baker.Options.Format = imagex.TIFF
	wr := &writer{ctx: ctx, w: indent.NewWriter(w, indent.Space, 2)}
	if err := export.Run(sc, wr); err != nil {
		return err
	}
	return wr.w.Flush()
}

// writer implements [export.Hooks] for RIB. It collects the scene and
// writes the world in Footer, lights before objects.
type writer struct {
	export.Collector
	ctx *export.Context
	w   *indent.Writer

	objects export.Cache[*mesh.Mesh, int]
}

func (wr *writer) Header(sc *scene.Scene) error {
	w := wr.w
	w.Line("##RenderMan RIB")
	w.Line("# %s", sc.Name())
	w.Line("# generator: cogentcore.org/meshio")
	w.Line("version 3.04")
	w.Line("Display %q \"file\" \"rgba\"", wr.ctx.Options.BaseName(Format)+".tif")
	w.Line("Format %d %d 1", width, height)
	w.Line("Projection \"perspective\" \"fov\" [%d]", fov)

	center, dist := math32.Vector3{}, float32(5)
	if bb := sc.BBox(); !bb.IsEmpty() {
		center = bb.Center()
		dist = max(bb.Size().Length()*1.5, 1)
	}
	w.Line("Scale 1 1 -1")
	w.Line("Translate %s", export.Vec3(math32.Vec3(-center.X, -center.Y, -center.Z-dist)))
	return w.Err()
}

func (wr *writer) Footer(sc *scene.Scene) error {
	w := wr.w
	for _, in := range wr.Solids {
		wr.object(in.Solid.Mesh)
	}
	w.Open("WorldBegin")
	for i, in := range wr.Lights {
		wr.light(i+1, in)
	}
	for _, in := range wr.Solids {
		if err := wr.solid(in); err != nil {
			return err
		}
	}
	w.Close("WorldEnd")
	return w.Err()
}

// object retains the mesh as an object once.
func (wr *writer) object(ms *mesh.Mesh) {
	if wr.objects.Has(ms) {
		return
	}
	id := wr.objects.Len() + 1
	wr.objects.Set(ms, id)
	w := wr.w
	w.Open("ObjectBegin %d", id)
	nv := make([]string, ms.NumTriangles())
	for i := range nv {
		nv[i] = "3"
	}
	idx := make([]string, len(ms.Indices))
	for i, ix := range ms.Indices {
		idx[i] = fmt.Sprint(ix)
	}
	w.Line("# %s", ms.Name)
	w.Line("PointsPolygons [%s]", strings.Join(nv, " "))
	w.Line("[%s]", strings.Join(idx, " "))
	w.Line("\"P\" [%s]", vec3s(ms.Positions))
	if ms.HasNormals() {
		w.Line("\"N\" [%s]", vec3s(ms.Normals))
	}
	if ms.HasTexCoords() {
		st := make([]string, len(ms.TexCoords))
		for i, t := range ms.TexCoords {
			st[i] = export.Vec2(t)
		}
		w.Line("\"st\" [%s]", strings.Join(st, " "))
	}
	if ms.HasColors() {
		cs := make([]string, len(ms.Colors))
		for i, c := range ms.Colors {
			cs[i] = export.RGB(c)
		}
		w.Line("\"Cs\" [%s]", strings.Join(cs, " "))
	}
	w.Close("ObjectEnd")
}

func vec3s(vs []math32.Vector3) string {
	s := make([]string, len(vs))
	for i, v := range vs {
		s[i] = export.Vec3(v)
	}
	return strings.Join(s, " ")
}

func (wr *writer) solid(in export.Instance) error {
	s := in.Solid
	mt, err := wr.ctx.Surface(s.Material)
	if err != nil {
		return err
	}
	w := wr.w
	w.Open("AttributeBegin")
	w.Line("Attribute \"identifier\" \"name\" [%q]", wr.ctx.Names.Name(s, s.Name, "solid"))
	w.Line("ConcatTransform [%s]", export.Floats(" ", in.World[:]...))
	wr.surface(mt)
	id, _ := wr.objects.Get(s.Mesh)
	w.Line("ObjectInstance %d", id)
	w.Close("AttributeEnd")
	return w.Err()
}

// surface writes the color, opacity and shader of the material.
func (wr *writer) surface(mt *material.Material) {
	w := wr.w
	w.Line("Color [%s]", export.RGB(mt.Diffuse))
	if mt.Opacity < 1 {
		o := export.Float(mt.Opacity)
		w.Line("Opacity [%s %s %s]", o, o, o)
	}
	params := fmt.Sprintf("\"Ka\" [%s] \"Kd\" [1]", export.Float(export.AmbientIntensity(mt)))
	shader := "matte"
	if mt.SpecularPower > 0 {
		shader = "plastic"
		params += fmt.Sprintf(" \"Ks\" [1] \"roughness\" [%s] \"specularcolor\" [%s]", export.Float(1/mt.SpecularPower), export.RGB(mt.Specular))
	}
	if mt.DiffuseMap != "" {
		if !isTIFF(mt.DiffuseMap) {
			wr.ctx.Unsupported("texture %s is not a TIFF file", mt.DiffuseMap)
		}
		shader = "paintedplastic"
		params += fmt.Sprintf(" \"texturename\" [%q]", mt.DiffuseMap)
	}
	w.Line("Surface %q %s", shader, params)
	if mt.HasEmission() {
		wr.ctx.Unsupported("emissive materials")
	}
	if mt.HasSecondaryMaps() {
		wr.ctx.Unsupported("texture maps other than diffuse")
	}
}

func isTIFF(file string) bool {
	f, err := imagex.ExtToFormat(filepath.Ext(file))
	return err == nil && f == imagex.TIFF
}

func (wr *writer) light(handle int, in export.Instance) {
	lb := in.Light.AsLightBase()
	intensity := fmt.Sprintf("\"intensity\" [%s] \"lightcolor\" [%s]", export.Float(lb.Lumens), export.RGB(lb.Color))
	w := wr.w
	w.Line("# %s", lb.Name)
	switch l := in.Light.(type) {
	case *scene.AmbientLight:
		w.Line("LightSource \"ambientlight\" %d %s", handle, intensity)
	case *scene.DirLight:
		w.Line("LightSource \"distantlight\" %d %s \"from\" [0 0 0] \"to\" [%s]", handle, intensity, export.Vec3(export.LightDir(l, in.World)))
	case *scene.PointLight:
		w.Line("LightSource \"pointlight\" %d %s \"from\" [%s]", handle, intensity, export.Vec3(export.LightPos(l, in.World)))
	case *scene.SpotLight:
		pos := export.LightPos(l, in.World)
		to := pos.Add(export.LightDir(l, in.World))
		cone := math32.DegToRad(l.OuterAngle)
		delta := math32.DegToRad(l.OuterAngle - l.InnerAngle)
		w.Line("LightSource \"spotlight\" %d %s \"from\" [%s] \"to\" [%s] \"coneangle\" [%s] \"conedeltaangle\" [%s]",
			handle, intensity, export.Vec3(pos), export.Vec3(to), export.Float(cone), export.Float(delta))
	}
}
