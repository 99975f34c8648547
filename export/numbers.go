// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"image/color"
	"strconv"
	"strings"

	"cogentcore.org/meshio/colors"
	"cogentcore.org/meshio/material"
	"cogentcore.org/meshio/math32"
)

// Float formats v with the fewest digits that read back as the same float32.
func Float(v float32) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// Floats formats the values separated by sep.
func Floats(sep string, vs ...float32) string {
	var b strings.Builder
	for i, v := range vs {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(Float(v))
	}
	return b.String()
}

// Vec3 formats the vector as "x y z".
func Vec3(v math32.Vector3) string {
	return Floats(" ", v.X, v.Y, v.Z)
}

// Vec2 formats the vector as "x y".
func Vec2(v math32.Vector2) string {
	return Floats(" ", v.X, v.Y)
}

// RGB formats the color as "r g b" with 0-1 channel values.
func RGB(c color.RGBA) string {
	r, g, b, _ := colors.ToFloat32(c)
	return Floats(" ", r, g, b)
}

// AmbientIntensity returns the ambient color of the material as a
// fraction of its diffuse color, the way VRML-like formats express it.
func AmbientIntensity(mt *material.Material) float32 {
	g := colors.Gray32(mt.Diffuse)
	if g == 0 {
		return 0
	}
	return min(colors.Gray32(mt.Ambient)/g, 1)
}

// Shininess returns the specular power of the material mapped to 0-1,
// with 128 as full shininess.
func Shininess(mt *material.Material) float32 {
	return math32.Clamp(mt.SpecularPower/128, 0, 1)
}
