// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package material provides the common material record that format
// readers produce and writers consume, the layered [Layer] form
// materials take in a scene, the [Resolver] that turns named
// definitions into layers, and the [Baker] that rasterizes procedural
// paint sources into texture images for formats that need bitmaps.
package material

import (
	"image/color"

	"cogentcore.org/meshio/base/errors"
	"cogentcore.org/meshio/colors"
	"cogentcore.org/meshio/math32"
	"github.com/jinzhu/copier"
)

// Tiling are the texture tiling parameters.
type Tiling struct {

	// how often to repeat the texture in each direction
	Repeat math32.Vector2

	// offset for where to start the texture in each direction
	Off math32.Vector2
}

// Defaults sets default tiling params if not yet initialized.
func (tl *Tiling) Defaults() {
	if tl.Repeat == (math32.Vector2{}) {
		tl.Repeat.Set(1, 1)
	}
}

// IsIdentity returns whether the tiling leaves texture coordinates unchanged.
func (tl *Tiling) IsIdentity() bool {
	return (tl.Repeat == math32.Vector2{} || tl.Repeat == math32.Vec2(1, 1)) && tl.Off == math32.Vector2{}
}

// Material is the flat record of a surface material, as declared by
// material libraries and written by the format writers.
type Material struct {

	// Name of the material, unique within a [Library].
	Name string

	// Ambient is the color reflected from ambient light.
	Ambient color.RGBA

	// Diffuse is the main surface color.
	Diffuse color.RGBA

	// Specular is the color of specular highlights.
	Specular color.RGBA

	// Emissive is the color the surface emits independent of lighting.
	Emissive color.RGBA

	// SpecularPower is the specular exponent; 0 means no highlights.
	SpecularPower float32

	// Opacity is 0 for fully transparent and 1 for opaque.
	Opacity float32

	// RefractionIndex is the optical density; 0 when undeclared.
	RefractionIndex float32

	// Illum is the MTL illumination model, kept for round trips.
	Illum int

	// texture file references, relative to the model file
	DiffuseMap  string
	AmbientMap  string
	SpecularMap string
	BumpMap     string
	OpacityMap  string

	// Tiling of the texture maps.
	Tiling Tiling

	// DiffusePaint is a procedural source for the diffuse color,
	// rasterized by a [Baker] for formats that need a bitmap.
	// It is shared, not copied, by [Material.Clone].
	DiffusePaint Paint
}

// New returns a new opaque white material with the given name.
func New(name string) *Material {
	mt := &Material{Name: name}
	mt.Defaults()
	return mt
}

// Defaults sets the defaults used for undeclared properties.
func (mt *Material) Defaults() {
	mt.Ambient = colors.Black
	mt.Diffuse = colors.White
	mt.Specular = colors.Black
	mt.Emissive = colors.Black
	mt.Opacity = 1
	mt.Tiling.Defaults()
}

// DefaultName is the name of the [Default] material.
const DefaultName = "default"

// Default returns the material used for references to undefined names.
func Default() *Material {
	return &Material{
		Name:          DefaultName,
		Ambient:       colors.LightGray,
		Diffuse:       colors.LightGray,
		Specular:      colors.Gray,
		Emissive:      colors.Black,
		SpecularPower: 30,
		Opacity:       1,
		Tiling:        Tiling{Repeat: math32.Vec2(1, 1)},
	}
}

// Clone returns a copy of the material.
func (mt *Material) Clone() *Material {
	nm := &Material{}
	errors.Log(copier.Copy(nm, mt))
	return nm
}

// IsTransparent returns whether the material is not fully opaque.
func (mt *Material) IsTransparent() bool {
	return mt.Opacity < 1 || mt.Diffuse.A < 255
}

// HasSecondaryMaps returns whether the material references texture
// maps other than the diffuse map.
func (mt *Material) HasSecondaryMaps() bool {
	return mt.AmbientMap != "" || mt.SpecularMap != "" || mt.BumpMap != "" || mt.OpacityMap != ""
}

// HasEmission returns whether the material emits light.
func (mt *Material) HasEmission() bool {
	return !colors.IsBlack(mt.Emissive)
}

// TextureFiles returns the non-empty texture file references.
func (mt *Material) TextureFiles() []string {
	var fs []string
	for _, f := range []string{mt.DiffuseMap, mt.AmbientMap, mt.SpecularMap, mt.BumpMap, mt.OpacityMap} {
		if f != "" {
			fs = append(fs, f)
		}
	}
	return fs
}
