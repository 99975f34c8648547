// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colors

import (
	"image"
	"image/color"
)

// Uniform returns a new [image.Uniform] filled completely with the given color.
func Uniform(c color.Color) image.Image {
	return image.NewUniform(c)
}

// Average returns the mean non-premultiplied color of the given image
// over the given rectangle, which must be non-empty for an unbounded
// image such as a gradient. An empty rectangle uses the image bounds.
func Average(img image.Image, r image.Rectangle) color.RGBA {
	if img == nil {
		return color.RGBA{}
	}
	if u, ok := img.(*image.Uniform); ok {
		return AsRGBA(u.C)
	}
	if r.Empty() {
		r = img.Bounds()
	}
	n := r.Dx() * r.Dy()
	if n <= 0 {
		return color.RGBA{}
	}
	var sr, sg, sb, sa uint64
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			sr += uint64(c.R)
			sg += uint64(c.G)
			sb += uint64(c.B)
			sa += uint64(c.A)
		}
	}
	un := uint64(n)
	h := un / 2
	return AsRGBA(color.NRGBA{uint8((sr + h) / un), uint8((sg + h) / un), uint8((sb + h) / un), uint8((sa + h) / un)})
}
