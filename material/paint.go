// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"image"
	"image/color"

	"cogentcore.org/meshio/colors"
	"cogentcore.org/meshio/colors/gradient"
)

// Paint is a source of surface color: one of [*SolidPaint],
// [*GradientPaint] or [*ImagePaint].
type Paint interface {

	// Source returns the paint as an image, unbounded for solid
	// colors and gradients.
	Source() image.Image

	paint()
}

// SolidPaint is a flat color.
type SolidPaint struct {
	Color color.RGBA
}

// GradientPaint is a linear or radial gradient.
type GradientPaint struct {
	Gradient gradient.Gradient
}

// ImagePaint is a bitmap, typically loaded from a texture file.
type ImagePaint struct {
	File  string
	Image image.Image
}

func (*SolidPaint) paint()    {}
func (*GradientPaint) paint() {}
func (*ImagePaint) paint()    {}

func (p *SolidPaint) Source() image.Image    { return colors.Uniform(p.Color) }
func (p *GradientPaint) Source() image.Image { return p.Gradient }
func (p *ImagePaint) Source() image.Image    { return p.Image }

// IsProcedural returns whether the paint must be rasterized to be
// written as a texture: it is not nil and not a solid color.
func IsProcedural(p Paint) bool {
	switch p.(type) {
	case *GradientPaint, *ImagePaint:
		return true
	}
	return false
}
