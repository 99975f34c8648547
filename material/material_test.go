// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"cogentcore.org/meshio/base/iox/imagex"
	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/colors"
	"cogentcore.org/meshio/colors/gradient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = color.RGBA{255, 0, 0, 255}

func TestFromRecord(t *testing.T) {
	mt := New("plain")
	mt.Diffuse = red
	l := FromRecord(mt)
	d, ok := l.(*Diffuse)
	require.True(t, ok)
	assert.Equal(t, red, d.Color)
	assert.Equal(t, "plain", Name(l))

	mt.SpecularPower = 20
	mt.Specular = colors.White
	c, ok := FromRecord(mt).(*Composite)
	require.True(t, ok)
	require.Len(t, c.Layers, 2)
	assert.IsType(t, &Specular{}, c.Layers[1])

	mt.Emissive = color.RGBA{0, 10, 0, 255}
	c = FromRecord(mt).(*Composite)
	require.Len(t, c.Layers, 3)
	assert.IsType(t, &Emissive{}, c.Layers[2])
	assert.Equal(t, "plain", Name(c))
}

func TestFlatten(t *testing.T) {
	mt := New("shiny")
	mt.Diffuse = red
	mt.Specular = colors.Gray
	mt.SpecularPower = 40
	mt.Emissive = color.RGBA{1, 2, 3, 255}
	mt.Opacity = 0.5
	mt.DiffuseMap = "wood.png"
	mt.BumpMap = "bump.png"
	fm := Flatten(FromRecord(mt))
	assert.Equal(t, mt, fm)

	assert.Panics(t, func() { Flatten(&badLayer{}) })
}

type badLayer struct{ Diffuse }

func TestClone(t *testing.T) {
	p := &GradientPaint{Gradient: gradient.NewLinear()}
	mt := New("a")
	mt.DiffusePaint = p
	cl := mt.Clone()
	assert.Equal(t, mt, cl)
	assert.NotSame(t, mt, cl)
	assert.Same(t, p, cl.DiffusePaint)
}

func TestLibrary(t *testing.T) {
	lib := NewLibrary()
	lib.Add(New("b"))
	lib.Add(New("a"))
	lib.Add(&Material{Name: "b", Opacity: 0.25})
	assert.Equal(t, []string{"b", "a"}, lib.Names())
	m, ok := lib.Get("b")
	require.True(t, ok)
	assert.Equal(t, float32(0.25), m.Opacity)
	var nl *Library
	assert.Equal(t, 0, nl.Len())
	_, ok = nl.Get("b")
	assert.False(t, ok)
}

func pngBytes(t *testing.T) []byte {
	var b bytes.Buffer
	require.NoError(t, png.Encode(&b, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return b.Bytes()
}

func TestResolver(t *testing.T) {
	lib := NewLibrary()
	mt := New("wood")
	mt.DiffuseMap = "wood.png"
	mt.BumpMap = "bump.png"
	lib.Add(mt)
	notes := &codec.Notices{}
	files := codec.MemFiles{"wood.png": pngBytes(t), "bump.png": []byte("not an image")}
	rs := NewResolver(lib, "obj", &codec.Options{Files: files, Notices: notes})

	l := rs.Resolve("wood")
	assert.Same(t, l, rs.Resolve("wood"))
	assert.Equal(t, "wood.png", l.(*Diffuse).Map)
	assert.Equal(t, 1, notes.Count(codec.ErrUnsupportedFeature))

	u := rs.Resolve("missing")
	assert.Equal(t, colors.LightGray, Flatten(u).Diffuse)
	assert.Same(t, u, rs.Resolve("other"))
	assert.Same(t, u, rs.Default())
	assert.Equal(t, 2, notes.Count(codec.ErrMalformedRecord))
}

func TestImageRasterizer(t *testing.T) {
	pix, err := ImageRasterizer{Quality: 2}.Rasterize(colors.Uniform(red), 4, 3)
	require.NoError(t, err)
	require.Len(t, pix, 4*4*3)
	assert.Equal(t, []byte{255, 0, 0, 255}, pix[:4])

	g := gradient.NewLinear().AddStop(colors.Black, 0).AddStop(colors.White, 1)
	pix, err = ImageRasterizer{Quality: 1}.Rasterize(g, 8, 1)
	require.NoError(t, err)
	assert.Less(t, pix[0], pix[4*7])

	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	pix, err = ImageRasterizer{}.Rasterize(src, 5, 5)
	require.NoError(t, err)
	assert.Len(t, pix, 100)

	_, err = ImageRasterizer{}.Rasterize(nil, 5, 5)
	assert.Error(t, err)
	_, err = ImageRasterizer{}.Rasterize(src, 0, 5)
	assert.Error(t, err)
}

func TestCanvasRasterizer(t *testing.T) {
	pix, err := CanvasRasterizer{}.Rasterize(colors.Uniform(red), 8, 8)
	require.NoError(t, err)
	require.Len(t, pix, 8*8*4)
	c := pix[4*(4*8+4):]
	assert.Greater(t, c[0], uint8(200))
	assert.Less(t, c[2], uint8(50))

	// elliptical radial gradients fall back
	called := false
	cr := CanvasRasterizer{Fallback: RasterizerFunc(func(src image.Image, w, h int) ([]byte, error) {
		called = true
		return make([]byte, 4*w*h), nil
	})}
	pix, err = cr.Rasterize(gradient.NewRadial(), 4, 2)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Len(t, pix, 32)
}

func TestBakerBitmap(t *testing.T) {
	files := codec.MemFiles{}
	opts := &codec.Options{Files: files, Name: "scene", Bake: codec.BakeOptions{Width: 16, Height: 16}}
	bk := NewBaker("pov", opts)

	p := &GradientPaint{Gradient: gradient.NewLinear().AddStop(colors.Black, 0).AddStop(red, 1)}
	a := New("a b")
	a.DiffusePaint = p
	name, err := bk.Bitmap(a)
	require.NoError(t, err)
	assert.Equal(t, "scene_a_b.png", name)
	assert.Equal(t, name, a.DiffuseMap)
	img, f, err := imagex.Read(bytes.NewReader(files[name]))
	require.NoError(t, err)
	assert.Equal(t, imagex.PNG, f)
	assert.Equal(t, 16, img.Bounds().Dx())

	b := New("b")
	b.DiffusePaint = p
	name, err = bk.Bitmap(b)
	require.NoError(t, err)
	assert.Equal(t, "scene_a_b.png", name)
	assert.Len(t, files, 1)

	solid := New("s")
	solid.DiffusePaint = &SolidPaint{Color: red}
	name, err = bk.Bitmap(solid)
	require.NoError(t, err)
	assert.Empty(t, name)

	ip := New("img")
	ip.DiffusePaint = &ImagePaint{File: "tex.jpg"}
	name, err = bk.Bitmap(ip)
	require.NoError(t, err)
	assert.Equal(t, "tex.jpg", name)
}

func TestBakerTIFFAndCustomRasterizer(t *testing.T) {
	files := codec.MemFiles{}
	calls := 0
	r := RasterizerFunc(func(src image.Image, w, h int) ([]byte, error) {
		calls++
		return ImageRasterizer{Quality: 1}.Rasterize(src, w, h)
	})
	bk := NewBaker("rib", &codec.Options{Files: files, Bake: codec.BakeOptions{Width: 4, Height: 4, Format: imagex.TIFF, Rasterizer: r}})
	mt := New("g")
	mt.DiffusePaint = &GradientPaint{Gradient: gradient.NewRadial().AddStop(colors.White, 0).AddStop(colors.Black, 1)}
	name, err := bk.Bitmap(mt)
	require.NoError(t, err)
	assert.Equal(t, "rib_g.tif", name)
	assert.Equal(t, 1, calls)
	_, f, err := imagex.Read(bytes.NewReader(files[name]))
	require.NoError(t, err)
	assert.Equal(t, imagex.TIFF, f)
}

func TestBakerNoFiles(t *testing.T) {
	notes := &codec.Notices{}
	bk := NewBaker("x3d", &codec.Options{Notices: notes})
	mt := New("g")
	mt.DiffusePaint = &GradientPaint{Gradient: gradient.NewLinear().AddStop(colors.Black, 0).AddStop(colors.White, 1)}
	name, err := bk.Bitmap(mt)
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.Equal(t, 1, notes.Count(codec.ErrUnsupportedFeature))

	c := bk.FlatColor(mt)
	assert.InDelta(t, 127, int(c.R), 8)
	assert.Equal(t, c.R, c.G)
	assert.Equal(t, uint8(255), c.A)

	mt.DiffusePaint = &SolidPaint{Color: red}
	assert.Equal(t, red, bk.FlatColor(mt))
	mt.DiffusePaint = nil
	mt.Diffuse = colors.Gray
	assert.Equal(t, colors.Gray, bk.FlatColor(mt))
}
