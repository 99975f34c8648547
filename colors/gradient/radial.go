// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Based on https://github.com/srwiley/rasterx:
// Copyright 2018 by the rasterx Authors. All rights reserved.
// Created 2018 by S.R.Wiley

package gradient

import (
	"image"
	"image/color"

	"cogentcore.org/meshio/math32"
)

// Radial represents a radial gradient. It implements the [image.Image] interface.
type Radial struct {
	Base

	// the center point of the gradient, in 0-1 box coordinates
	Center math32.Vector2

	// the focal point of the gradient, where position 0 is;
	// it is normally the same as Center
	Focal math32.Vector2

	// the radius of the end circle, in 0-1 box units
	Radius float32
}

var _ Gradient = &Radial{}

// NewRadial returns a new centered [Radial] gradient.
func NewRadial() *Radial {
	return &Radial{
		Base:   NewBase(),
		Center: math32.Vec2(0.5, 0.5),
		Focal:  math32.Vec2(0.5, 0.5),
		Radius: 0.5,
	}
}

// AddStop adds a new stop with the given color and position to the radial gradient.
func (r *Radial) AddStop(color color.RGBA, pos float32, opacity ...float32) *Radial {
	r.Base.AddStop(color, pos, opacity...)
	return r
}

// Update sets the pixel box of the gradient.
func (r *Radial) Update(box image.Rectangle) {
	r.Box = box
}

// At returns the color of the radial gradient at the given point
func (r *Radial) At(x, y int) color.Color {
	if r.Radius <= 0 {
		return r.GetColor(1)
	}
	pt := r.Normalized(x, y)
	if r.Focal == r.Center {
		return r.GetColor(pt.Sub(r.Center).Length() / r.Radius)
	}
	// solve |focal + s*(pt-focal) - center| = radius for s; pos = 1/s
	d := pt.Sub(r.Focal)
	e := r.Focal.Sub(r.Center)
	a := d.Dot(d)
	if a == 0 {
		return r.GetColor(0)
	}
	b := 2 * e.Dot(d)
	c := e.Dot(e) - r.Radius*r.Radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return r.GetColor(1)
	}
	s := (-b + math32.Sqrt(disc)) / (2 * a)
	if s <= 0 {
		return r.GetColor(1)
	}
	return r.GetColor(1 / s)
}
