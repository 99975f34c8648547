// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collada

import "encoding/xml"

// The element types below are the subset of the COLLADA 1.4.1 schema
// the writer produces, in schema element order.

type document struct {
	XMLName    xml.Name      `xml:"COLLADA"`
	Xmlns      string        `xml:"xmlns,attr"`
	Version    string        `xml:"version,attr"`
	Asset      asset         `xml:"asset"`
	Images     []image       `xml:"library_images>image"`
	Effects    []effect      `xml:"library_effects>effect"`
	Materials  []materialEl  `xml:"library_materials>material"`
	Geometries []geometry    `xml:"library_geometries>geometry"`
	Lights     []light       `xml:"library_lights>light"`
	Scenes     []visualScene `xml:"library_visual_scenes>visual_scene"`
	Scene      sceneEl       `xml:"scene"`
}

type asset struct {
	Tool     string `xml:"contributor>authoring_tool"`
	Created  string `xml:"created"`
	Modified string `xml:"modified"`
	Unit     unit   `xml:"unit"`
	UpAxis   string `xml:"up_axis"`
}

type unit struct {
	Name  string  `xml:"name,attr"`
	Meter float32 `xml:"meter,attr"`
}

type image struct {
	ID       string `xml:"id,attr"`
	Name     string `xml:"name,attr"`
	InitFrom string `xml:"init_from"`
}

type effect struct {
	ID      string    `xml:"id,attr"`
	Profile profileEl `xml:"profile_COMMON"`
}

type profileEl struct {
	Params    []newParam `xml:"newparam"`
	Technique technique  `xml:"technique"`
}

type newParam struct {
	SID     string     `xml:"sid,attr"`
	Surface *surface   `xml:"surface"`
	Sampler *sampler2D `xml:"sampler2D"`
}

type surface struct {
	Type     string `xml:"type,attr"`
	InitFrom string `xml:"init_from"`
}

type sampler2D struct {
	Source string `xml:"source"`
}

type technique struct {
	SID     string   `xml:"sid,attr"`
	Lambert *shading `xml:"lambert"`
	Phong   *shading `xml:"phong"`
}

type shading struct {
	Emission     *colorOrTexture `xml:"emission"`
	Ambient      *colorOrTexture `xml:"ambient"`
	Diffuse      *colorOrTexture `xml:"diffuse"`
	Specular     *colorOrTexture `xml:"specular"`
	Shininess    *floatParam     `xml:"shininess"`
	Transparent  *transparent    `xml:"transparent"`
	Transparency *floatParam     `xml:"transparency"`
	Refraction   *floatParam     `xml:"index_of_refraction"`
}

type colorOrTexture struct {
	Color   string   `xml:"color,omitempty"`
	Texture *texture `xml:"texture"`
}

type texture struct {
	Texture  string `xml:"texture,attr"`
	TexCoord string `xml:"texcoord,attr"`
}

type transparent struct {
	Opaque string `xml:"opaque,attr"`
	Color  string `xml:"color"`
}

type floatParam struct {
	Float float32 `xml:"float"`
}

type materialEl struct {
	ID     string      `xml:"id,attr"`
	Name   string      `xml:"name,attr"`
	Effect instanceURL `xml:"instance_effect"`
}

type instanceURL struct {
	URL string `xml:"url,attr"`
}

type geometry struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
	Mesh meshEl `xml:"mesh"`
}

type meshEl struct {
	Sources   []source  `xml:"source"`
	Vertices  vertices  `xml:"vertices"`
	Triangles triangles `xml:"triangles"`
}

type source struct {
	ID       string     `xml:"id,attr"`
	Array    floatArray `xml:"float_array"`
	Accessor accessor   `xml:"technique_common>accessor"`
}

type floatArray struct {
	ID    string `xml:"id,attr"`
	Count int    `xml:"count,attr"`
	Data  string `xml:",chardata"`
}

type accessor struct {
	Source string  `xml:"source,attr"`
	Count  int     `xml:"count,attr"`
	Stride int     `xml:"stride,attr"`
	Params []param `xml:"param"`
}

type param struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

type vertices struct {
	ID     string  `xml:"id,attr"`
	Inputs []input `xml:"input"`
}

type input struct {
	Semantic string `xml:"semantic,attr"`
	Source   string `xml:"source,attr"`
	Offset   *int   `xml:"offset,attr"`
}

type triangles struct {
	Material string  `xml:"material,attr"`
	Count    int     `xml:"count,attr"`
	Inputs   []input `xml:"input"`
	P        string  `xml:"p"`
}

type light struct {
	ID        string         `xml:"id,attr"`
	Name      string         `xml:"name,attr"`
	Technique lightTechnique `xml:"technique_common"`
}

type lightTechnique struct {
	Ambient     *lightColor `xml:"ambient"`
	Directional *lightColor `xml:"directional"`
	Point       *lightColor `xml:"point"`
	Spot        *lightColor `xml:"spot"`
}

// lightColor holds the parameters of all light kinds; the ones
// a kind does not have are left nil.
type lightColor struct {
	Color           string   `xml:"color"`
	Constant        *float32 `xml:"constant_attenuation"`
	Linear          *float32 `xml:"linear_attenuation"`
	Quadratic       *float32 `xml:"quadratic_attenuation"`
	FalloffAngle    *float32 `xml:"falloff_angle"`
	FalloffExponent *float32 `xml:"falloff_exponent"`
}

type visualScene struct {
	ID    string `xml:"id,attr"`
	Name  string `xml:"name,attr"`
	Nodes []node `xml:"node"`
}

type node struct {
	ID       string        `xml:"id,attr"`
	Name     string        `xml:"name,attr"`
	Matrix   matrix        `xml:"matrix"`
	Geometry *instanceGeom `xml:"instance_geometry"`
	Light    *instanceURL  `xml:"instance_light"`
}

type matrix struct {
	SID  string `xml:"sid,attr"`
	Data string `xml:",chardata"`
}

type instanceGeom struct {
	URL      string           `xml:"url,attr"`
	Material instanceMaterial `xml:"bind_material>technique_common>instance_material"`
}

type instanceMaterial struct {
	Symbol string      `xml:"symbol,attr"`
	Target string      `xml:"target,attr"`
	Bind   *bindVertex `xml:"bind_vertex_input"`
}

type bindVertex struct {
	Semantic      string `xml:"semantic,attr"`
	InputSemantic string `xml:"input_semantic,attr"`
	InputSet      int    `xml:"input_set,attr"`
}

type sceneEl struct {
	VisualScene instanceURL `xml:"instance_visual_scene"`
}
