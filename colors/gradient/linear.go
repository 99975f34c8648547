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

// Linear represents a linear gradient. It implements the [image.Image] interface.
type Linear struct {
	Base

	// the starting point of the gradient, in 0-1 box coordinates
	Start math32.Vector2

	// the ending point of the gradient, in 0-1 box coordinates
	End math32.Vector2
}

var _ Gradient = &Linear{}

// NewLinear returns a new left-to-right [Linear] gradient.
func NewLinear() *Linear {
	return &Linear{
		Base: NewBase(),
		End:  math32.Vec2(1, 0),
	}
}

// AddStop adds a new stop with the given color and position to the linear gradient.
func (l *Linear) AddStop(color color.RGBA, pos float32, opacity ...float32) *Linear {
	l.Base.AddStop(color, pos, opacity...)
	return l
}

// Update sets the pixel box of the gradient.
func (l *Linear) Update(box image.Rectangle) {
	l.Box = box
}

// At returns the color of the linear gradient at the given point
func (l *Linear) At(x, y int) color.Color {
	d := l.End.Sub(l.Start)
	dd := d.Dot(d)
	if dd == 0 {
		return l.GetColor(0)
	}
	df := l.Normalized(x, y).Sub(l.Start)
	return l.GetColor(d.Dot(df) / dd)
}
