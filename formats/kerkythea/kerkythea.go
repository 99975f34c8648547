// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kerkythea writes scenes as Kerkythea ray tracer XML scenes.
//
// A Kerkythea scene is a tree of typed Object elements carrying
// Parameter values. Each solid becomes a model holding its own
// triangle mesh and Whitted material; point and spot lights become
// light objects. Kerkythea is Z-up, so all frames are rotated from
// the Y-up scene. A camera framing the scene is added.
package kerkythea

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"strconv"

	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/export"
	"cogentcore.org/meshio/material"
	"cogentcore.org/meshio/math32"
	"cogentcore.org/meshio/scene"
)

// Format is the short name of the format.
const Format = "xml"

type object struct {
	XMLName    xml.Name  `xml:"Object"`
	Identifier string    `xml:"Identifier,attr"`
	Label      string    `xml:"Label,attr"`
	Name       string    `xml:"Name,attr"`
	Type       string    `xml:"Type,attr"`
	Objects    []*object `xml:"Object"`
	Params     []param   `xml:"Parameter"`
}

type param struct {
	XMLName xml.Name `xml:"Parameter"`
	Name    string   `xml:"Name,attr"`
	Type    string   `xml:"Type,attr"`
	Value   string   `xml:"Value,attr"`
	Points  []point  `xml:"P"`
	Faces   []face   `xml:"F"`
}

type point struct {
	XYZ string `xml:"xyz,attr,omitempty"`
	XY  string `xml:"xy,attr,omitempty"`
}

type face struct {
	IJK string `xml:"ijk,attr"`
}

// startElement returns the start of an object element whose end is
// written separately, for the objects enclosing the whole scene.
func startElement(tag, identifier, label, name, typ string) xml.StartElement {
	attr := func(n, v string) xml.Attr { return xml.Attr{Name: xml.Name{Local: n}, Value: v} }
	return xml.StartElement{Name: xml.Name{Local: tag}, Attr: []xml.Attr{
		attr("Identifier", identifier), attr("Label", label), attr("Name", name), attr("Type", typ),
	}}
}

func boolParam(name string, v bool) param {
	s := "0"
	if v {
		s = "1"
	}
	return param{Name: name, Type: "Boolean", Value: s}
}

func realParam(name string, v float32) param {
	return param{Name: name, Type: "Real", Value: export.Float(v)}
}

func stringParam(name, v string) param {
	return param{Name: name, Type: "String", Value: v}
}

func rgbParam(name string, c color.RGBA) param {
	return param{Name: name, Type: "RGB", Value: export.RGB(c)}
}

// zUp rotates the Y-up scene into Kerkythea's Z-up space.
var zUp = func() *math32.Matrix4 {
	m := &math32.Matrix4{}
	m.Set(
		1, 0, 0, 0,
		0, 0, -1, 0,
		0, 1, 0, 0,
		0, 0, 0, 1)
	return m
}()

// frame returns the Kerkythea frame parameter of the world transform:
// the top three rows of the Z-up matrix, row-major.
func frame(world *math32.Matrix4) param {
	m := &math32.Matrix4{}
	m.MulMatrices(zUp, world)
	rm := m.RowMajor()
	return param{Name: "Frame", Type: "Transform", Value: export.Floats(" ", rm[:12]...)}
}

// Write writes the scene as a Kerkythea XML scene.
func Write(w io.Writer, sc *scene.Scene, opts *codec.Options) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	wr := &writer{ctx: export.NewContext(Format, opts), enc: enc}
	if err := export.Run(sc, wr); err != nil {
		return err
	}
	return enc.Flush()
}

// writer implements [export.Hooks] for Kerkythea.
type writer struct {
	ctx   *export.Context
	enc  *xml.Encoder
	open []xml.StartElement

	// ambient is the sum of the ambient lights, in 0-1 channels.
	ambient math32.Vector3
}

func (wr *writer) Header(sc *scene.Scene) error {
	starts := []xml.StartElement{
		startElement("Root", "", "Default Kernel", "", "Kernel"),
		startElement("Object", "./Modellers/XML Modeller", "XML Modeller", "XML Modeller", "Modeller"),
		startElement("Object", "./Scenes/"+sc.Name(), "Default Scene", sc.Name(), "Scene"),
	}
	// the kernel root has no identifier
	starts[0].Attr = starts[0].Attr[1:]
	for _, se := range starts {
		if err := wr.enc.EncodeToken(se); err != nil {
			return err
		}
		wr.open = append(wr.open, se)
	}
	return wr.enc.Encode(wr.camera(sc))
}

// camera returns a pinhole camera looking at the scene from +Z.
func (wr *writer) camera(sc *scene.Scene) *object {
	center, dist := math32.Vector3{}, float32(5)
	if bb := sc.BBox(); !bb.IsEmpty() {
		center = bb.Center()
		dist = max(bb.Size().Length()*1.5, 1)
	}
	eye := center.Add(math32.Vec3(0, 0, dist))
	// columns: right, image down, view direction
	world := &math32.Matrix4{}
	world.Set(
		1, 0, 0, eye.X,
		0, -1, 0, eye.Y,
		0, 0, -1, eye.Z,
		0, 0, 0, 1)
	return &object{
		Identifier: "./Cameras/Camera",
		Label:      "Pinhole Camera",
		Name:       "Camera",
		Type:       "Camera",
		Params: []param{
			realParam("Focal Length (mm)", 35),
			realParam("Film Height (mm)", 32),
			stringParam("Resolution", "640x480"),
			frame(world),
			realParam("Focus Distance", dist),
			stringParam("f-number", "Pinhole"),
		},
	}
}

func (wr *writer) Footer(sc *scene.Scene) error {
	params := []param{stringParam("./Cameras/Active", "Camera")}
	if wr.ambient != (math32.Vector3{}) {
		a := wr.ambient
		params = append(params, param{Name: "./Global Settings/Ambient Light", Type: "RGB", Value: export.Floats(" ", min(a.X, 1), min(a.Y, 1), min(a.Z, 1))})
	}
	for _, p := range params {
		if err := wr.enc.Encode(p); err != nil {
			return err
		}
	}
	for i := len(wr.open) - 1; i >= 0; i-- {
		if err := wr.enc.EncodeToken(wr.open[i].End()); err != nil {
			return err
		}
	}
	wr.open = nil
	return nil
}

func (wr *writer) Solid(s *scene.Solid, world *math32.Matrix4) error {
	mat, err := wr.material(s.Material)
	if err != nil {
		return err
	}
	name := wr.ctx.Names.Name(s, s.Name, "model")
	ms := s.Mesh
	surf := &object{Identifier: "Triangular Mesh", Label: "Triangular Mesh", Type: "Surface"}

	verts := param{Name: "Vertex List", Type: "Point3D List", Value: strconv.Itoa(ms.NumVertices())}
	for _, p := range ms.Positions {
		verts.Points = append(verts.Points, point{XYZ: export.Vec3(p)})
	}
	surf.Params = append(surf.Params, verts)
	if ms.HasNormals() {
		nrm := param{Name: "Normal List", Type: "Point3D List", Value: strconv.Itoa(ms.NumVertices())}
		for _, n := range ms.Normals {
			nrm.Points = append(nrm.Points, point{XYZ: export.Vec3(n)})
		}
		surf.Params = append(surf.Params, nrm)
	}
	idx := param{Name: "Index List", Type: "Triangle Index List", Value: strconv.Itoa(ms.NumTriangles())}
	for i := range ms.NumTriangles() {
		a, b, c := ms.Triangle(i)
		idx.Faces = append(idx.Faces, face{IJK: fmt.Sprintf("%d %d %d", a, b, c)})
	}
	surf.Params = append(surf.Params, idx)
	if ms.HasTexCoords() {
		uv := param{Name: "Map Channel", Type: "Point2D List", Value: strconv.Itoa(ms.NumVertices())}
		for _, t := range ms.TexCoords {
			uv.Points = append(uv.Points, point{XY: export.Floats(" ", t.X, 1-t.Y)})
		}
		surf.Params = append(surf.Params, uv)
	}
	if ms.HasColors() {
		wr.ctx.Unsupported("vertex colors")
	}
	surf.Params = append(surf.Params, boolParam("Smooth", ms.HasNormals()), realParam("AA Tolerance", 15))

	model := &object{
		Identifier: "./Models/" + name,
		Label:      "Default Model",
		Name:       name,
		Type:       "Model",
		Objects:    []*object{surf, mat},
		Params:     []param{frame(world), boolParam("Enabled", true), boolParam("Shadow Caster", true), boolParam("Shadow Receiver", true), boolParam("Visible", true)},
	}
	return wr.enc.Encode(model)
}

// constant returns a constant color texture object for the given channel.
func constant(channel string, c color.RGBA) *object {
	return &object{
		Identifier: "./" + channel + "/Constant Texture",
		Label:      "Constant Texture",
		Type:       "Texture",
		Params:     []param{rgbParam("Color", c)},
	}
}

// material returns the Whitted material object of the layer. Kerkythea
// has no material references, so every model carries its own copy.
func (wr *writer) material(l material.Layer) (*object, error) {
	mt, err := wr.ctx.Surface(l)
	if err != nil {
		return nil, err
	}
	name := wr.ctx.Names.Name(mt, mt.Name, "material")
	obj := &object{Identifier: "Whitted Material", Label: "Whitted Material", Name: name, Type: "Material"}
	if mt.DiffuseMap != "" {
		obj.Objects = append(obj.Objects, &object{
			Identifier: "./Diffuse/Bitmap Texture",
			Label:      "Bitmap Texture",
			Type:       "Texture",
			Params: []param{
				stringParam("Filename", mt.DiffuseMap),
				realParam("Scale U", mt.Tiling.Repeat.X),
				realParam("Scale V", mt.Tiling.Repeat.Y),
				realParam("Offset U", mt.Tiling.Off.X),
				realParam("Offset V", mt.Tiling.Off.Y),
			},
		})
	} else {
		obj.Objects = append(obj.Objects, constant("Diffuse", mt.Diffuse))
	}
	if mt.SpecularPower > 0 {
		obj.Objects = append(obj.Objects, constant("Specular", mt.Specular))
	}
	if mt.Opacity < 1 {
		t := uint8(255 * (1 - mt.Opacity))
		obj.Objects = append(obj.Objects, constant("Transmitted", color.RGBA{t, t, t, 255}))
	}
	ior := mt.RefractionIndex
	if ior <= 0 {
		ior = 1
	}
	obj.Params = []param{
		realParam("Shininess", max(mt.SpecularPower, 1)),
		realParam("Transmitted Shininess", 128),
		realParam("Index of Refraction", ior),
		boolParam("Specular Sampling", false),
		boolParam("Transmitted Sampling", false),
		boolParam("Dispersion", false),
	}
	if mt.HasEmission() {
		wr.ctx.Unsupported("emissive materials")
	}
	if mt.HasSecondaryMaps() {
		wr.ctx.Unsupported("texture maps other than diffuse")
	}
	return obj, nil
}

func (wr *writer) Light(l scene.Light, world *math32.Matrix4) error {
	lb := l.AsLightBase()
	r, g, b := lb.Intensity()
	emit := &object{
		Type:    "Emittance",
		Objects: []*object{{Identifier: "./Radiance/Constant Texture", Label: "Constant Texture", Type: "Texture", Params: []param{{Name: "Color", Type: "RGB", Value: export.Floats(" ", r, g, b)}}}},
		Params:  []param{stringParam("Attenuation", attenuation(l))},
	}
	var params []param
	switch l := l.(type) {
	case *scene.AmbientLight:
		wr.ambient = wr.ambient.Add(math32.Vec3(r, g, b))
		return nil
	case *scene.DirLight:
		wr.ctx.Unsupported("directional lights")
		return nil
	case *scene.PointLight:
		emit.Identifier, emit.Label = "Omni Light", "Omni Light"
	case *scene.SpotLight:
		emit.Identifier, emit.Label = "Spot Light", "Spot Light"
		params = append(params,
			realParam("Inner Cone", math32.DegToRad(l.InnerAngle)),
			realParam("Outer Cone", math32.DegToRad(l.OuterAngle)))
	}
	name := wr.ctx.Names.Name(l, lb.Name, "light")
	// the light shines along its local +Z
	var q math32.Quat
	q.SetFromUnitVectors(math32.Vec3(0, 0, 1), export.LightDir(l, world))
	lw := &math32.Matrix4{}
	lw.SetTransform(export.LightPos(l, world), q, math32.Vec3(1, 1, 1))
	params = append(params, boolParam("Enabled", true), boolParam("Shadow", true), frame(lw))
	return wr.enc.Encode(&object{
		Identifier: "./Lights/" + name,
		Label:      "Default Light",
		Name:       name,
		Type:       "Light",
		Objects:    []*object{emit},
		Params:     params,
	})
}

// attenuation returns the Kerkythea attenuation of the light.
func attenuation(l scene.Light) string {
	var at scene.Attenuation
	switch l := l.(type) {
	case *scene.PointLight:
		at = l.Attenuation
	case *scene.SpotLight:
		at = l.Attenuation
	}
	switch {
	case at.Quadratic > 0:
		return "Inverse Square"
	case at.Linear > 0:
		return "Inverse"
	}
	return "None"
}
