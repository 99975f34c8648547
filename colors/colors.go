// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colors provides color conversion and blending helpers
// for material colors, which are stored as [color.RGBA] with
// channel values in the 0-255 range.
package colors

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"cogentcore.org/meshio/math32"
)

// Common colors used for material defaults.
var (
	Black     = color.RGBA{0, 0, 0, 255}
	White     = color.RGBA{255, 255, 255, 255}
	LightGray = color.RGBA{0xA0, 0xA0, 0xA0, 255}
	Gray      = color.RGBA{0x80, 0x80, 0x80, 255}
)

// IsNil returns whether the color is the nil initial default color
func IsNil(c color.Color) bool {
	return c == color.RGBA{}
}

// IsBlack returns whether the color channels of c are all zero,
// ignoring alpha.
func IsBlack(c color.RGBA) bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// AsRGBA returns the given color as an RGBA color
func AsRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{}
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// FromFloat32 returns the color with the given 0-1 channel values,
// which are clamped to that range.
func FromFloat32(r, g, b, a float32) color.RGBA {
	return color.RGBA{toByte(r), toByte(g), toByte(b), toByte(a)}
}

func toByte(v float32) uint8 {
	return uint8(math32.Clamp(v, 0, 1)*255 + 0.5)
}

// ToFloat32 returns the 0-1 channel values of the given color.
func ToFloat32(c color.RGBA) (r, g, b, a float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
}

// Gray32 returns the mean of the 0-1 color channels, ignoring alpha.
// It is used where a format wants a single scalar coefficient.
func Gray32(c color.RGBA) float32 {
	r, g, b, _ := ToFloat32(c)
	return (r + g + b) / 3
}

// ScaleFloat32 returns c with the color channels multiplied by s,
// clamped, leaving alpha unchanged.
func ScaleFloat32(c color.RGBA, s float32) color.RGBA {
	r, g, b, a := ToFloat32(c)
	return FromFloat32(r*s, g*s, b*s, a)
}

// WithA returns the given color with the alpha channel set to a.
func WithA(c color.Color, a uint8) color.RGBA {
	rc := AsRGBA(c)
	rc.A = a
	return rc
}

// ApplyOpacity applies the given opacity (0-1) to the given color
// and returns the result. It is different from [WithA] in that it
// sets the transparency (A) value of the color to the current value
// times the given value instead of just directly overriding it.
func ApplyOpacity(c color.Color, opacity float32) color.RGBA {
	r := AsRGBA(c)
	if opacity >= 1 {
		return r
	}
	a := r.A
	r.A = uint8(float32(a) * math32.Clamp(opacity, 0, 1))
	return r
}

// Blend returns a color that is the given percent blend between the first
// and second color; 10 = 10% of the first and 90% of the second, etc;
// blending is done directly on non-premultiplied RGB values.
func Blend(pct float32, x, y color.Color) color.RGBA {
	xc := color.NRGBAModel.Convert(x).(color.NRGBA)
	yc := color.NRGBAModel.Convert(y).(color.NRGBA)
	px := math32.Clamp(pct, 0, 100) / 100
	py := 1 - px
	mix := func(a, b uint8) uint8 {
		return uint8(px*float32(a) + py*float32(b) + 0.5)
	}
	return AsRGBA(color.NRGBA{mix(xc.R, yc.R), mix(xc.G, yc.G), mix(xc.B, yc.B), mix(xc.A, yc.A)})
}

// AsHex returns the color as a standard 2-hexadecimal-digits-per-component
// string with a # prefix, omitting the alpha component when it is opaque.
func AsHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// FromHex parses the given hex color string
// and returns the resulting color. It supports
// #RRGGBB and #RRGGBBAA, with or without the #.
func FromHex(hex string) (color.RGBA, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, errors.New("colors.FromHex: could not process " + hex)
	}
	if len(hex) == 6 {
		hex += "FF"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colors.FromHex: %w", err)
	}
	return color.RGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}
