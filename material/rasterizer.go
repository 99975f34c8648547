// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"cogentcore.org/meshio/base/iox/imagex"
	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/colors/gradient"
	"cogentcore.org/meshio/math32"
	"github.com/anthonynsimon/bild/transform"
	"github.com/gogpu/gg"
)

// unbounded is the size above which an image is treated as an
// unbounded paint source, such as [image.Uniform] or a gradient.
const unbounded = 1 << 24

// RasterizerFunc adapts a function to a [codec.Rasterizer].
type RasterizerFunc func(src image.Image, width, height int) ([]byte, error)

func (f RasterizerFunc) Rasterize(src image.Image, width, height int) ([]byte, error) {
	return f(src, width, height)
}

// ImageRasterizer is the software [codec.Rasterizer]. Bounded images
// are resized to the target size; unbounded ones are sampled at
// Quality times the target size and then downsampled.
type ImageRasterizer struct {

	// Quality is the supersampling factor, 1 to 4.
	Quality int
}

func (ir ImageRasterizer) Rasterize(src image.Image, width, height int) ([]byte, error) {
	if err := checkRaster(src, width, height); err != nil {
		return nil, err
	}
	b := src.Bounds()
	if b.Dx() < unbounded && b.Dy() < unbounded {
		return transform.Resize(src, width, height, transform.Linear).Pix, nil
	}
	q := math32.Clamp(ir.Quality, 1, 4)
	sw, sh := width*q, height*q
	if g, ok := src.(gradient.Gradient); ok {
		g.Update(image.Rect(0, 0, sw, sh))
	}
	img := image.NewRGBA(image.Rect(0, 0, sw, sh))
	draw.Draw(img, img.Bounds(), src, image.Point{}, draw.Src)
	if q > 1 {
		img = transform.Resize(img, width, height, transform.Box)
	}
	return img.Pix, nil
}

// CanvasRasterizer is a [codec.Rasterizer] that fills the target with a
// [gg] brush built from solid colors and linear or circular radial
// gradients. Other sources go to Fallback, or an [ImageRasterizer]
// when it is nil.
type CanvasRasterizer struct {
	Fallback codec.Rasterizer
}

func (cr CanvasRasterizer) Rasterize(src image.Image, width, height int) ([]byte, error) {
	if err := checkRaster(src, width, height); err != nil {
		return nil, err
	}
	brush, ok := canvasBrush(src, width, height)
	if !ok {
		fb := cr.Fallback
		if fb == nil {
			fb = ImageRasterizer{Quality: 2}
		}
		return fb.Rasterize(src, width, height)
	}
	dc := gg.NewContext(width, height)
	defer dc.Close()
	dc.SetFillBrush(brush)
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	if err := dc.Fill(); err != nil {
		return nil, err
	}
	return imagex.AsRGBA(dc.Image()).Pix, nil
}

// canvasBrush returns the brush for the source, if there is one.
// Radial gradients are circles in the unit box, so they only
// map to a brush on square targets.
func canvasBrush(src image.Image, width, height int) (gg.Brush, bool) {
	w, h := float64(width), float64(height)
	switch s := src.(type) {
	case *image.Uniform:
		return gg.Solid(gg.FromColor(s.C)), true
	case *gradient.Linear:
		lb := gg.NewLinearGradientBrush(float64(s.Start.X)*w, float64(s.Start.Y)*h, float64(s.End.X)*w, float64(s.End.Y)*h)
		for _, st := range s.Stops {
			lb.AddColorStop(float64(st.Pos), gg.FromColor(st.OpacityColor(s.Opacity)))
		}
		lb.SetExtend(extendMode(s.Spread))
		return lb, true
	case *gradient.Radial:
		if width != height {
			return nil, false
		}
		rb := gg.NewRadialGradientBrush(float64(s.Center.X)*w, float64(s.Center.Y)*h, 0, float64(s.Radius)*w)
		if s.Focal != s.Center {
			rb.SetFocus(float64(s.Focal.X)*w, float64(s.Focal.Y)*h)
		}
		for _, st := range s.Stops {
			rb.AddColorStop(float64(st.Pos), gg.FromColor(st.OpacityColor(s.Opacity)))
		}
		rb.SetExtend(extendMode(s.Spread))
		return rb, true
	}
	return nil, false
}

func extendMode(s gradient.Spreads) gg.ExtendMode {
	switch s {
	case gradient.Reflect:
		return gg.ExtendReflect
	case gradient.Repeat:
		return gg.ExtendRepeat
	}
	return gg.ExtendPad
}

func checkRaster(src image.Image, width, height int) error {
	if src == nil {
		return errors.New("material: nil paint source")
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("material: invalid raster size %dx%d", width, height)
	}
	return nil
}
