// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"fmt"
	"image/color"

	"cogentcore.org/meshio/colors"
)

// Layer is a material as attached to a solid in a scene: one of
// [*Diffuse], [*Specular], [*Emissive] or [*Composite]. The set is
// closed; code handling layers switches over exactly these types.
type Layer interface {
	layer()
}

// Diffuse is the base layer: surface color, opacity and textures.
type Diffuse struct {
	Name       string
	Ambient    color.RGBA
	Color      color.RGBA
	Opacity    float32
	Refraction float32
	Illum      int
	Map        string
	AmbientMap string
	BumpMap    string
	OpacityMap string
	Tiling     Tiling

	// Paint is the procedural diffuse source, if any.
	Paint Paint
}

// Specular is the highlight layer.
type Specular struct {
	Color color.RGBA
	Power float32
	Map   string
}

// Emissive is the glow layer.
type Emissive struct {
	Color color.RGBA
}

// Composite combines layers; the first is normally a [*Diffuse].
type Composite struct {
	Name   string
	Layers []Layer
}

func (*Diffuse) layer()   {}
func (*Specular) layer()  {}
func (*Emissive) layer()  {}
func (*Composite) layer() {}

// FromRecord converts a flat material to its layered form: a Diffuse
// layer always, a Specular layer when SpecularPower is positive and
// an Emissive layer when the emissive color is not black. A lone
// Diffuse layer is returned bare.
func FromRecord(mt *Material) Layer {
	d := &Diffuse{
		Name:       mt.Name,
		Ambient:    mt.Ambient,
		Color:      mt.Diffuse,
		Opacity:    mt.Opacity,
		Refraction: mt.RefractionIndex,
		Illum:      mt.Illum,
		Map:        mt.DiffuseMap,
		AmbientMap: mt.AmbientMap,
		BumpMap:    mt.BumpMap,
		OpacityMap: mt.OpacityMap,
		Tiling:     mt.Tiling,
		Paint:      mt.DiffusePaint,
	}
	layers := []Layer{d}
	if mt.SpecularPower > 0 {
		layers = append(layers, &Specular{Color: mt.Specular, Power: mt.SpecularPower, Map: mt.SpecularMap})
	}
	if mt.HasEmission() {
		layers = append(layers, &Emissive{Color: mt.Emissive})
	}
	if len(layers) == 1 {
		return d
	}
	return &Composite{Name: mt.Name, Layers: layers}
}

// Flatten folds a layer back into a new flat material record.
// Later layers of a composite override earlier ones.
func Flatten(l Layer) *Material {
	mt := &Material{
		Ambient:  colors.Black,
		Specular: colors.Black,
		Emissive: colors.Black,
		Opacity:  1,
	}
	flatten(mt, l)
	mt.Tiling.Defaults()
	return mt
}

func flatten(mt *Material, l Layer) {
	switch l := l.(type) {
	case *Diffuse:
		mt.Name = l.Name
		mt.Ambient = l.Ambient
		mt.Diffuse = l.Color
		mt.Opacity = l.Opacity
		mt.RefractionIndex = l.Refraction
		mt.Illum = l.Illum
		mt.DiffuseMap = l.Map
		mt.AmbientMap = l.AmbientMap
		mt.BumpMap = l.BumpMap
		mt.OpacityMap = l.OpacityMap
		mt.Tiling = l.Tiling
		mt.DiffusePaint = l.Paint
	case *Specular:
		mt.Specular = l.Color
		mt.SpecularPower = l.Power
		mt.SpecularMap = l.Map
	case *Emissive:
		mt.Emissive = l.Color
	case *Composite:
		for _, c := range l.Layers {
			flatten(mt, c)
		}
		if l.Name != "" {
			mt.Name = l.Name
		}
	case nil:
	default:
		panic(fmt.Sprintf("material: unknown layer type %T", l))
	}
}

// Name returns the name of the layer's material.
func Name(l Layer) string {
	switch l := l.(type) {
	case *Diffuse:
		return l.Name
	case *Composite:
		if l.Name != "" {
			return l.Name
		}
		for _, c := range l.Layers {
			if n := Name(c); n != "" {
				return n
			}
		}
	}
	return ""
}
