// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colors

import (
	"image"
	"image/color"
	"testing"

	"cogentcore.org/meshio/base/tolassert"
	"github.com/stretchr/testify/assert"
)

func TestFloat32(t *testing.T) {
	c := FromFloat32(1, 0.5, 0, 1)
	assert.Equal(t, color.RGBA{255, 128, 0, 255}, c)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, FromFloat32(2, -1, 0, 1))

	r, g, b, a := ToFloat32(c)
	tolassert.EqualTol(t, 1, r, 1e-6)
	tolassert.EqualTol(t, 0.502, g, 1e-3)
	tolassert.EqualTol(t, 0, b, 1e-6)
	tolassert.EqualTol(t, 1, a, 1e-6)

	tolassert.EqualTol(t, 1, Gray32(White), 1e-6)
	assert.Equal(t, color.RGBA{128, 128, 128, 255}, ScaleFloat32(White, 0.5))
}

func TestBlendOpacity(t *testing.T) {
	assert.Equal(t, Black, Blend(100, Black, White))
	assert.Equal(t, White, Blend(0, Black, White))
	assert.Equal(t, color.RGBA{128, 128, 128, 255}, Blend(50, Black, White))

	assert.Equal(t, uint8(127), ApplyOpacity(White, 0.5).A)
	assert.Equal(t, White, ApplyOpacity(White, 1))
	assert.Equal(t, uint8(10), WithA(White, 10).A)
	assert.True(t, IsBlack(color.RGBA{0, 0, 0, 128}))
	assert.False(t, IsBlack(LightGray))
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#A0A0A0", AsHex(LightGray))
	c, err := FromHex("#A0A0A0")
	assert.NoError(t, err)
	assert.Equal(t, LightGray, c)
	c, err = FromHex("ff000080")
	assert.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 0, 0, 128}, c)
	_, err = FromHex("#12")
	assert.Error(t, err)
}

func TestAverage(t *testing.T) {
	assert.Equal(t, White, Average(Uniform(White), image.Rectangle{}))
	im := image.NewRGBA(image.Rect(0, 0, 2, 1))
	im.Set(0, 0, Black)
	im.Set(1, 0, White)
	assert.Equal(t, color.RGBA{128, 128, 128, 255}, Average(im, image.Rectangle{}))
}
