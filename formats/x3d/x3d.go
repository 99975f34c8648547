// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package x3d writes scenes as X3D 3.3 XML documents (.x3d).
//
// Each solid becomes a Transform holding a Shape, with its world
// transform decomposed into translation, rotation and scale. Shared
// meshes and materials are defined once with DEF and referenced with
// USE afterwards. Lights are global and placed in world coordinates.
package x3d

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/colors"
	"cogentcore.org/meshio/export"
	"cogentcore.org/meshio/material"
	"cogentcore.org/meshio/math32"
	"cogentcore.org/meshio/mesh"
	"cogentcore.org/meshio/scene"
)

// Format is the short name of the format.
const Format = "x3d"

const doctype = `DOCTYPE X3D PUBLIC "ISO//Web3D//DTD X3D 3.3//EN" "http://www.web3d.org/specifications/x3d-3.3.dtd"`

type head struct {
	XMLName xml.Name `xml:"head"`
	Meta    []meta   `xml:"meta"`
}

type meta struct {
	Name    string `xml:"name,attr"`
	Content string `xml:"content,attr"`
}

type transform struct {
	XMLName     xml.Name `xml:"Transform"`
	DEF         string   `xml:"DEF,attr,omitempty"`
	Translation string   `xml:"translation,attr,omitempty"`
	Rotation    string   `xml:"rotation,attr,omitempty"`
	Scale       string   `xml:"scale,attr,omitempty"`
	Shape       shape    `xml:"Shape"`
}

type shape struct {
	Appearance appearance  `xml:"Appearance"`
	Geometry   triangleSet `xml:"IndexedTriangleSet"`
}

type appearance struct {
	DEF              string            `xml:"DEF,attr,omitempty"`
	USE              string            `xml:"USE,attr,omitempty"`
	Material         *materialEl       `xml:"Material"`
	Texture          *imageTexture     `xml:"ImageTexture"`
	TextureTransform *textureTransform `xml:"TextureTransform"`
}

type materialEl struct {
	DiffuseColor     string `xml:"diffuseColor,attr"`
	AmbientIntensity string `xml:"ambientIntensity,attr"`
	SpecularColor    string `xml:"specularColor,attr"`
	Shininess        string `xml:"shininess,attr"`
	EmissiveColor    string `xml:"emissiveColor,attr"`
	Transparency     string `xml:"transparency,attr"`
}

type imageTexture struct {
	URL string `xml:"url,attr"`
}

type textureTransform struct {
	Scale       string `xml:"scale,attr"`
	Translation string `xml:"translation,attr"`
}

type triangleSet struct {
	DEF      string     `xml:"DEF,attr,omitempty"`
	USE      string     `xml:"USE,attr,omitempty"`
	Index    string     `xml:"index,attr,omitempty"`
	Coord    *points    `xml:"Coordinate"`
	Normal   *vectors   `xml:"Normal"`
	TexCoord *points    `xml:"TextureCoordinate"`
	Color    *colorRGBA `xml:"ColorRGBA"`
}

type points struct {
	Point string `xml:"point,attr"`
}

type vectors struct {
	Vector string `xml:"vector,attr"`
}

type colorRGBA struct {
	Color string `xml:"color,attr"`
}

// lightEl is any of the X3D light nodes; its element name is set per light.
type lightEl struct {
	XMLName          xml.Name
	DEF              string `xml:"DEF,attr,omitempty"`
	Global           string `xml:"global,attr,omitempty"`
	Color            string `xml:"color,attr"`
	Intensity        string `xml:"intensity,attr"`
	AmbientIntensity string `xml:"ambientIntensity,attr,omitempty"`
	Location         string `xml:"location,attr,omitempty"`
	Direction        string `xml:"direction,attr,omitempty"`
	Attenuation      string `xml:"attenuation,attr,omitempty"`
	BeamWidth        string `xml:"beamWidth,attr,omitempty"`
	CutOffAngle      string `xml:"cutOffAngle,attr,omitempty"`
}

// Write writes the scene as an X3D document.
func Write(w io.Writer, sc *scene.Scene, opts *codec.Options) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	wr := &writer{ctx: export.NewContext(Format, opts), enc: enc}
	if err := export.Run(sc, wr); err != nil {
		return err
	}
	return enc.Flush()
}

// writer implements [export.Hooks] for X3D.
type writer struct {
	ctx *export.Context
	enc *xml.Encoder

	geoms export.Cache[*mesh.Mesh, string]
	apps  export.Cache[material.Layer, string]
}

var (
	x3dStart   = xml.StartElement{Name: xml.Name{Local: "X3D"}, Attr: []xml.Attr{{Name: xml.Name{Local: "profile"}, Value: "Interchange"}, {Name: xml.Name{Local: "version"}, Value: "3.3"}}}
	sceneStart = xml.StartElement{Name: xml.Name{Local: "Scene"}}
)

func (wr *writer) Header(sc *scene.Scene) error {
	toks := []xml.Token{
		xml.ProcInst{Target: "xml", Inst: []byte(`version="1.0" encoding="UTF-8"`)},
		xml.Directive(doctype),
		x3dStart,
	}
	for _, t := range toks {
		if err := wr.enc.EncodeToken(t); err != nil {
			return err
		}
	}
	hd := head{Meta: []meta{{Name: "generator", Content: "cogentcore.org/meshio"}}}
	if sc.Name() != "" {
		hd.Meta = append(hd.Meta, meta{Name: "title", Content: sc.Name()})
	}
	if err := wr.enc.Encode(hd); err != nil {
		return err
	}
	return wr.enc.EncodeToken(sceneStart)
}

func (wr *writer) Footer(sc *scene.Scene) error {
	if err := wr.enc.EncodeToken(sceneStart.End()); err != nil {
		return err
	}
	return wr.enc.EncodeToken(x3dStart.End())
}

func (wr *writer) Solid(s *scene.Solid, world *math32.Matrix4) error {
	app, err := wr.appearance(s.Material)
	if err != nil {
		return err
	}
	trs := export.Decompose(world)
	tr := transform{
		DEF:   wr.ctx.Names.Name(s, s.Name, "solid"),
		Shape: shape{Appearance: app, Geometry: wr.geometry(s.Mesh)},
	}
	if !trs.Translation.IsNil() {
		tr.Translation = export.Vec3(trs.Translation)
	}
	if trs.Angle != 0 {
		tr.Rotation = export.Vec3(trs.Axis) + " " + export.Float(trs.Angle)
	}
	if trs.Scale != math32.Vec3(1, 1, 1) {
		tr.Scale = export.Vec3(trs.Scale)
	}
	return wr.enc.Encode(tr)
}

// geometry returns the triangle set of the mesh: its definition on
// first use and a reference to it afterwards.
func (wr *writer) geometry(ms *mesh.Mesh) triangleSet {
	if def, ok := wr.geoms.Get(ms); ok {
		return triangleSet{USE: def}
	}
	def := wr.ctx.Names.Name(ms, ms.Name, "mesh")
	wr.geoms.Set(ms, def)
	ts := triangleSet{DEF: def}
	idx := make([]string, len(ms.Indices))
	for i, ix := range ms.Indices {
		idx[i] = strconv.FormatUint(uint64(ix), 10)
	}
	ts.Index = strings.Join(idx, " ")
	ts.Coord = &points{Point: vec3s(ms.Positions)}
	if ms.HasNormals() {
		ts.Normal = &vectors{Vector: vec3s(ms.Normals)}
	}
	if ms.HasTexCoords() {
		uv := make([]string, len(ms.TexCoords))
		for i, t := range ms.TexCoords {
			uv[i] = export.Floats(" ", t.X, 1-t.Y)
		}
		ts.TexCoord = &points{Point: strings.Join(uv, ", ")}
	}
	if ms.HasColors() {
		cl := make([]string, len(ms.Colors))
		for i, c := range ms.Colors {
			r, g, b, a := colors.ToFloat32(c)
			cl[i] = export.Floats(" ", r, g, b, a)
		}
		ts.Color = &colorRGBA{Color: strings.Join(cl, ", ")}
	}
	return ts
}

func vec3s(vs []math32.Vector3) string {
	s := make([]string, len(vs))
	for i, v := range vs {
		s[i] = export.Vec3(v)
	}
	return strings.Join(s, ", ")
}

// appearance returns the appearance of the layer: its definition on
// first use and a reference to it afterwards.
func (wr *writer) appearance(l material.Layer) (appearance, error) {
	if def, ok := wr.apps.Get(l); ok {
		return appearance{USE: def}, nil
	}
	mt, err := wr.ctx.Surface(l)
	if err != nil {
		return appearance{}, err
	}
	def := wr.ctx.Names.Name(mt, mt.Name, "material")
	wr.apps.Set(l, def)
	app := appearance{
		DEF: def,
		Material: &materialEl{
			DiffuseColor:     export.RGB(mt.Diffuse),
			AmbientIntensity: export.Float(export.AmbientIntensity(mt)),
			SpecularColor:    export.RGB(mt.Specular),
			Shininess:        export.Float(export.Shininess(mt)),
			EmissiveColor:    export.RGB(mt.Emissive),
			Transparency:     export.Float(1 - mt.Opacity),
		},
	}
	if mt.DiffuseMap != "" {
		app.Texture = &imageTexture{URL: strconv.Quote(mt.DiffuseMap)}
		if !mt.Tiling.IsIdentity() {
			app.TextureTransform = &textureTransform{Scale: export.Vec2(mt.Tiling.Repeat), Translation: export.Vec2(mt.Tiling.Off)}
		}
	}
	if mt.HasSecondaryMaps() {
		wr.ctx.Unsupported("texture maps other than diffuse")
	}
	return app, nil
}

func (wr *writer) Light(l scene.Light, world *math32.Matrix4) error {
	lb := l.AsLightBase()
	le := lightEl{
		DEF:       wr.ctx.Names.Name(l, lb.Name, "light"),
		Global:    "true",
		Color:     export.RGB(lb.Color),
		Intensity: export.Float(min(lb.Lumens, 1)),
	}
	switch l := l.(type) {
	case *scene.AmbientLight:
		le.XMLName.Local = "DirectionalLight"
		le.AmbientIntensity = le.Intensity
		le.Intensity = "0"
	case *scene.DirLight:
		le.XMLName.Local = "DirectionalLight"
		le.Direction = export.Vec3(export.LightDir(l, world))
	case *scene.PointLight:
		le.XMLName.Local = "PointLight"
		le.Location = export.Vec3(export.LightPos(l, world))
		le.Attenuation = attenuation(l.Attenuation)
	case *scene.SpotLight:
		le.XMLName.Local = "SpotLight"
		le.Location = export.Vec3(export.LightPos(l, world))
		le.Direction = export.Vec3(export.LightDir(l, world))
		le.Attenuation = attenuation(l.Attenuation)
		le.BeamWidth = export.Float(math32.DegToRad(l.InnerAngle))
		le.CutOffAngle = export.Float(math32.DegToRad(l.OuterAngle))
	}
	return wr.enc.Encode(le)
}

func attenuation(at scene.Attenuation) string {
	return export.Floats(" ", at.Constant, at.Linear, at.Quadratic)
}
