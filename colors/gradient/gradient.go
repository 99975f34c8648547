// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gradient provides linear and radial color gradients,
// the procedural paint sources that materials bake into textures.
// A gradient is an unbounded [image.Image] whose coordinates are
// normalized to a pixel box set with Update.
package gradient

import (
	"image"
	"image/color"

	"cogentcore.org/meshio/colors"
	"cogentcore.org/meshio/math32"
)

// Gradient is a [Linear] or [Radial] gradient.
type Gradient interface {
	image.Image

	// Update sets the pixel box that the 0-1 gradient coordinates
	// map onto. It must be called before sampling with At.
	Update(box image.Rectangle)
}

// Base has the stops and settings shared by all gradients.
type Base struct {

	// Stops in increasing position order; see AddStop.
	Stops []Stop

	// Spread applies outside the 0-1 range of the stops.
	Spread Spreads

	// Opacity multiplies the opacity of every stop.
	Opacity float32

	// Box is the pixel area of the 0-1 coordinates.
	Box image.Rectangle
}

// Stop is a color at a position between 0 and 1.
type Stop struct {
	Color   color.RGBA
	Opacity float32
	Pos     float32
}

// OpacityColor returns the stop color with the stop opacity
// times the given opacity applied.
func (st *Stop) OpacityColor(opacity float32) color.RGBA {
	return colors.ApplyOpacity(st.Color, st.Opacity*opacity)
}

// Spreads say how a gradient continues past its last stop.
type Spreads int32

const (
	// Pad extends the end colors.
	Pad Spreads = iota

	// Reflect runs the stops back and forth.
	Reflect

	// Repeat starts over from the first stop.
	Repeat
)

func (s Spreads) String() string {
	switch s {
	case Reflect:
		return "reflect"
	case Repeat:
		return "repeat"
	}
	return "pad"
}

// NewBase returns an opaque [Base] on a 100x100 box.
func NewBase() Base {
	return Base{Opacity: 1, Box: image.Rect(0, 0, 100, 100)}
}

// AddStop appends a stop, opaque unless an opacity is given.
func (b *Base) AddStop(clr color.RGBA, pos float32, opacity ...float32) {
	op := float32(1)
	if len(opacity) > 0 {
		op = opacity[0]
	}
	b.Stops = append(b.Stops, Stop{Color: clr, Opacity: op, Pos: pos})
}

func (b *Base) ColorModel() color.Model { return color.RGBAModel }

// Bounds is effectively infinite.
func (b *Base) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

// Normalized returns the center of pixel (x, y) in the 0-1
// coordinates of the box.
func (b *Base) Normalized(x, y int) math32.Vector2 {
	sz := b.Box.Size()
	w, h := float32(max(sz.X, 1)), float32(max(sz.Y, 1))
	return math32.Vec2((float32(x-b.Box.Min.X)+0.5)/w, (float32(y-b.Box.Min.Y)+0.5)/h)
}

// spread maps pos into the 0-1 range.
func (b *Base) spread(pos float32) float32 {
	switch b.Spread {
	case Repeat:
		pos = math32.Mod(pos, 1)
		if pos < 0 {
			pos++
		}
	case Reflect:
		pos = math32.Mod(pos, 2)
		if pos < 0 {
			pos += 2
		}
		if pos > 1 {
			pos = 2 - pos
		}
	}
	return pos
}

// GetColor returns the color at pos along the stops.
func (b *Base) GetColor(pos float32) color.RGBA {
	n := len(b.Stops)
	if n == 0 {
		return color.RGBA{}
	}
	pos = b.spread(pos)
	first, last := &b.Stops[0], &b.Stops[n-1]
	if n == 1 || pos <= first.Pos {
		return first.OpacityColor(b.Opacity)
	}
	if pos >= last.Pos {
		return last.OpacityColor(b.Opacity)
	}
	i := 1
	for i < n-1 && b.Stops[i].Pos < pos {
		i++
	}
	s1, s2 := b.Stops[i-1], b.Stops[i]
	if s2.Pos <= s1.Pos {
		return s2.OpacityColor(b.Opacity)
	}
	t := (pos - s1.Pos) / (s2.Pos - s1.Pos)
	op := (s1.Opacity*(1-t) + s2.Opacity*t) * b.Opacity
	return colors.ApplyOpacity(colors.Blend(100*(1-t), s1.Color, s2.Color), op)
}
