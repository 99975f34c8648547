// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package collada writes scenes as COLLADA 1.4.1 documents (.dae).
//
// Resources go into the COLLADA libraries: one geometry per distinct
// mesh, one effect and material per distinct material layer, one
// image per texture file, and one light per light node. The visual
// scene then instances them with world transforms. Procedural paints
// are baked to texture files when side files are available.
package collada

import (
	"encoding/xml"
	"image/color"
	"io"
	"strconv"
	"strings"
	"time"

	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/colors"
	"cogentcore.org/meshio/export"
	"cogentcore.org/meshio/material"
	"cogentcore.org/meshio/math32"
	"cogentcore.org/meshio/mesh"
	"cogentcore.org/meshio/scene"
)

// Format is the short name of the format.
const Format = "dae"

const (
	namespace = "http://www.collada.org/2005/11/COLLADASchema"
	version   = "1.4.1"
	tool      = "cogentcore.org/meshio"

	// symbol is the material symbol of all geometries, bound per instance.
	symbol = "material"

	uvSet = "UVSET0"
)

// Write writes the scene as a COLLADA document.
func Write(w io.Writer, sc *scene.Scene, opts *codec.Options) error {
	wr := &writer{ctx: export.NewContext(Format, opts), w: w}
	return export.Run(sc, wr)
}

// writer implements [export.Hooks] for COLLADA, collecting the scene
// and encoding the whole document in Footer.
type writer struct {
	export.Collector
	ctx *export.Context
	w   io.Writer
	doc document

	geoms  export.Cache[*mesh.Mesh, string]
	mats   export.Cache[material.Layer, string]
	images export.Cache[string, string]
}

func (wr *writer) Header(sc *scene.Scene) error {
	now := time.Now().UTC().Format(time.RFC3339)
	wr.doc = document{
		Xmlns:   namespace,
		Version: version,
		Asset: asset{
			Tool:     tool,
			Created:  now,
			Modified: now,
			Unit:     unit{Name: "meter", Meter: 1},
			UpAxis:   "Y_UP",
		},
	}
	return nil
}

func (wr *writer) Footer(sc *scene.Scene) error {
	name := wr.ctx.Names.Name(sc, sc.Name(), "scene")
	vs := visualScene{ID: name, Name: sc.Name()}
	for _, in := range wr.Solids {
		nd, err := wr.solid(in)
		if err != nil {
			return err
		}
		vs.Nodes = append(vs.Nodes, nd)
	}
	for _, in := range wr.Lights {
		vs.Nodes = append(vs.Nodes, wr.light(in))
	}
	wr.doc.Scenes = []visualScene{vs}
	wr.doc.Scene.VisualScene.URL = "#" + name

	if _, err := io.WriteString(wr.w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(wr.w)
	enc.Indent("", "  ")
	if err := enc.Encode(&wr.doc); err != nil {
		return err
	}
	_, err := io.WriteString(wr.w, "\n")
	return err
}

func (wr *writer) solid(in export.Instance) (node, error) {
	s := in.Solid
	mat, err := wr.material(s.Material)
	if err != nil {
		return node{}, err
	}
	id := wr.ctx.Names.Name(s, s.Name, "solid")
	nd := node{ID: id, Name: s.Name, Matrix: matrixOf(in.World)}
	ig := &instanceGeom{URL: "#" + wr.geometry(s.Mesh)}
	ig.Material = instanceMaterial{Symbol: symbol, Target: "#" + mat}
	if s.Mesh.HasTexCoords() {
		ig.Material.Bind = &bindVertex{Semantic: uvSet, InputSemantic: "TEXCOORD"}
	}
	nd.Geometry = ig
	return nd, nil
}

// geometry adds the mesh to the geometry library once and returns its id.
func (wr *writer) geometry(ms *mesh.Mesh) string {
	if id, ok := wr.geoms.Get(ms); ok {
		return id
	}
	id := wr.ctx.Names.Name(ms, ms.Name, "mesh") + "-mesh"
	wr.geoms.Set(ms, id)

	g := geometry{ID: id, Name: ms.Name}
	n := ms.NumVertices()
	pos := make([]float32, 0, 3*n)
	for _, p := range ms.Positions {
		pos = append(pos, p.X, p.Y, p.Z)
	}
	g.Mesh.Sources = append(g.Mesh.Sources, newSource(id+"-positions", pos, "X", "Y", "Z"))
	vx := vertices{ID: id + "-vertices"}
	vx.Inputs = append(vx.Inputs, input{Semantic: "POSITION", Source: "#" + id + "-positions"})
	if ms.HasNormals() {
		nrm := make([]float32, 0, 3*n)
		for _, v := range ms.Normals {
			nrm = append(nrm, v.X, v.Y, v.Z)
		}
		g.Mesh.Sources = append(g.Mesh.Sources, newSource(id+"-normals", nrm, "X", "Y", "Z"))
		vx.Inputs = append(vx.Inputs, input{Semantic: "NORMAL", Source: "#" + id + "-normals"})
	}
	if ms.HasTexCoords() {
		uv := make([]float32, 0, 2*n)
		for _, t := range ms.TexCoords {
			uv = append(uv, t.X, 1-t.Y)
		}
		g.Mesh.Sources = append(g.Mesh.Sources, newSource(id+"-map", uv, "S", "T"))
		vx.Inputs = append(vx.Inputs, input{Semantic: "TEXCOORD", Source: "#" + id + "-map"})
	}
	if ms.HasColors() {
		cl := make([]float32, 0, 4*n)
		for _, c := range ms.Colors {
			r, g, b, a := colors.ToFloat32(c)
			cl = append(cl, r, g, b, a)
		}
		g.Mesh.Sources = append(g.Mesh.Sources, newSource(id+"-colors", cl, "R", "G", "B", "A"))
		vx.Inputs = append(vx.Inputs, input{Semantic: "COLOR", Source: "#" + id + "-colors"})
	}
	g.Mesh.Vertices = vx

	var p strings.Builder
	for i, ix := range ms.Indices {
		if i > 0 {
			p.WriteByte(' ')
		}
		p.WriteString(strconv.FormatUint(uint64(ix), 10))
	}
	offset := 0
	g.Mesh.Triangles = triangles{
		Material: symbol,
		Count:    ms.NumTriangles(),
		Inputs:   []input{{Semantic: "VERTEX", Source: "#" + vx.ID, Offset: &offset}},
		P:        p.String(),
	}
	wr.doc.Geometries = append(wr.doc.Geometries, g)
	return id
}

// newSource returns a float source with the given parameter names per element.
func newSource(id string, data []float32, params ...string) source {
	src := source{ID: id}
	src.Array = floatArray{ID: id + "-array", Count: len(data), Data: export.Floats(" ", data...)}
	src.Accessor = accessor{Source: "#" + id + "-array", Count: len(data) / len(params), Stride: len(params)}
	for _, pn := range params {
		src.Accessor.Params = append(src.Accessor.Params, param{Name: pn, Type: "float"})
	}
	return src
}

// material adds the layer's effect and material once and returns the material id.
func (wr *writer) material(l material.Layer) (string, error) {
	if id, ok := wr.mats.Get(l); ok {
		return id, nil
	}
	mt, err := wr.ctx.Surface(l)
	if err != nil {
		return "", err
	}
	name := wr.ctx.Names.Name(mt, mt.Name, "material")
	id := name + "-material"
	wr.mats.Set(l, id)

	sh := &shading{
		Emission: &colorOrTexture{Color: rgba(mt.Emissive)},
		Ambient:  &colorOrTexture{Color: rgba(mt.Ambient)},
		Diffuse:  &colorOrTexture{Color: rgba(mt.Diffuse)},
	}
	ef := effect{ID: name + "-effect"}
	if mt.DiffuseMap != "" {
		img := wr.image(mt.DiffuseMap)
		ef.Profile.Params = []newParam{
			{SID: name + "-surface", Surface: &surface{Type: "2D", InitFrom: img}},
			{SID: name + "-sampler", Sampler: &sampler2D{Source: name + "-surface"}},
		}
		sh.Diffuse = &colorOrTexture{Texture: &texture{Texture: name + "-sampler", TexCoord: uvSet}}
		if !mt.Tiling.IsIdentity() {
			wr.ctx.Unsupported("texture tiling")
		}
	}
	if mt.HasSecondaryMaps() {
		wr.ctx.Unsupported("texture maps other than diffuse")
	}
	if mt.Opacity < 1 {
		sh.Transparent = &transparent{Opaque: "A_ONE", Color: "1 1 1 1"}
		sh.Transparency = &floatParam{Float: mt.Opacity}
	}
	if mt.RefractionIndex > 0 {
		sh.Refraction = &floatParam{Float: mt.RefractionIndex}
	}
	ef.Profile.Technique.SID = "common"
	if mt.SpecularPower > 0 {
		sh.Specular = &colorOrTexture{Color: rgba(mt.Specular)}
		sh.Shininess = &floatParam{Float: mt.SpecularPower}
		ef.Profile.Technique.Phong = sh
	} else {
		ef.Profile.Technique.Lambert = sh
	}
	wr.doc.Effects = append(wr.doc.Effects, ef)
	wr.doc.Materials = append(wr.doc.Materials, materialEl{ID: id, Name: mt.Name, Effect: instanceURL{URL: "#" + ef.ID}})
	return id, nil
}

// image adds the texture file to the image library once and returns its id.
func (wr *writer) image(file string) string {
	if id, ok := wr.images.Get(file); ok {
		return id
	}
	id := wr.ctx.Names.Name("image:"+file, file, "image") + "-image"
	wr.images.Set(file, id)
	wr.doc.Images = append(wr.doc.Images, image{ID: id, Name: file, InitFrom: file})
	return id
}

func (wr *writer) light(in export.Instance) node {
	l := in.Light
	lb := l.AsLightBase()
	id := wr.ctx.Names.Name(l, lb.Name, "light")
	r, g, b := lb.Intensity()
	lc := &lightColor{Color: export.Floats(" ", r, g, b)}
	lt := light{ID: id + "-light", Name: lb.Name}
	world := in.World
	switch l := l.(type) {
	case *scene.AmbientLight:
		lt.Technique.Ambient = lc
	case *scene.DirLight:
		lt.Technique.Directional = lc
		world = export.LightFrame(l, in.World)
	case *scene.PointLight:
		lc.Constant, lc.Linear, lc.Quadratic = attenuation(l.Attenuation)
		lt.Technique.Point = lc
		world = export.LightFrame(l, in.World)
	case *scene.SpotLight:
		lc.Constant, lc.Linear, lc.Quadratic = attenuation(l.Attenuation)
		angle := 2 * l.OuterAngle
		exp := float32(0)
		if l.OuterAngle > 0 && l.InnerAngle < l.OuterAngle {
			exp = 1 - l.InnerAngle/l.OuterAngle
		}
		lc.FalloffAngle, lc.FalloffExponent = &angle, &exp
		lt.Technique.Spot = lc
		world = export.LightFrame(l, in.World)
	}
	wr.doc.Lights = append(wr.doc.Lights, lt)
	return node{ID: id, Name: lb.Name, Matrix: matrixOf(world), Light: &instanceURL{URL: "#" + lt.ID}}
}

func attenuation(at scene.Attenuation) (c, l, q *float32) {
	return &at.Constant, &at.Linear, &at.Quadratic
}

// matrixOf returns the transform as a COLLADA matrix, which is row-major.
func matrixOf(m *math32.Matrix4) matrix {
	rm := m.RowMajor()
	return matrix{SID: "transform", Data: export.Floats(" ", rm[:]...)}
}

// rgba formats the color as "r g b a" with 0-1 channel values.
func rgba(c color.RGBA) string {
	r, g, b, a := colors.ToFloat32(c)
	return export.Floats(" ", r, g, b, a)
}
