// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"cogentcore.org/meshio/base/iox/imagex"
	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/colors"
	"cogentcore.org/meshio/colors/gradient"
)

// flatSamples is the side of the grid a gradient is averaged over.
const flatSamples = 32

// Baker converts between procedural paints and what a writer can
// express: bitmap texture files, or flat colors. It belongs to one
// write call and caches its results by paint, so a paint shared by
// several materials is rasterized once.
type Baker struct {
	Options codec.BakeOptions

	// Files is where texture files are created; nil disables baking.
	Files codec.Files

	// Name is the base name of generated files.
	Name string

	// Format is the short name of the format being written, for notices.
	Format string

	Notices *codec.Notices

	bitmaps map[any]string
	flats   map[any]color.RGBA
	used    map[string]bool
}

// NewBaker returns a baker for a write with the given options.
func NewBaker(format string, opts *codec.Options) *Baker {
	return &Baker{
		Options: opts.Baking(),
		Files:   opts.SideFiles(),
		Name:    opts.BaseName(format),
		Format:  format,
		Notices: opts.Notes(),
	}
}

// paintKey is the cache key of the paint: its color for solid
// paints and its identity otherwise.
func paintKey(p Paint) any {
	if sp, ok := p.(*SolidPaint); ok {
		return sp.Color
	}
	return p
}

// Bitmap makes sure the material's procedural diffuse paint has a
// texture file, rasterizing and writing it on first use, and records
// the file name in DiffuseMap, which it returns. It returns "" when
// the material has no procedural paint, or when there is nowhere to
// write the file, which is reported as a notice.
func (bk *Baker) Bitmap(mt *Material) (string, error) {
	if mt.DiffuseMap != "" {
		return mt.DiffuseMap, nil
	}
	p := mt.DiffusePaint
	if !IsProcedural(p) {
		return "", nil
	}
	if ip, ok := p.(*ImagePaint); ok {
		if ip.File != "" {
			mt.DiffuseMap = ip.File
			return ip.File, nil
		}
		if ip.Image == nil {
			return "", nil
		}
	}
	key := paintKey(p)
	if name, ok := bk.bitmaps[key]; ok {
		mt.DiffuseMap = name
		return name, nil
	}
	if bk.Files == nil {
		bk.Notices.Unsupported(bk.Format, "no side files: texture of material %q not written, using its average color", mt.Name)
		return "", nil
	}
	img, err := bk.Rasterize(p)
	if err != nil {
		return "", fmt.Errorf("baking texture of material %q: %w", mt.Name, err)
	}
	data, err := imagex.Encode(img, bk.Options.Defaults().Format)
	if err != nil {
		return "", err
	}
	name := bk.fileName(mt.Name)
	wc, err := bk.Files.Create(name)
	if err != nil {
		return "", err
	}
	_, err = wc.Write(data)
	if cerr := wc.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}
	if bk.bitmaps == nil {
		bk.bitmaps = make(map[any]string)
	}
	bk.bitmaps[key] = name
	mt.DiffuseMap = name
	return name, nil
}

// Rasterize renders the paint at the configured size.
func (bk *Baker) Rasterize(p Paint) (*image.RGBA, error) {
	opts := bk.Options.Defaults()
	r := opts.Rasterizer
	if r == nil {
		r = ImageRasterizer{Quality: opts.Quality}
	}
	w, h := opts.Width, opts.Height
	pix, err := r.Rasterize(p.Source(), w, h)
	if err != nil {
		return nil, err
	}
	if len(pix) != 4*w*h {
		return nil, fmt.Errorf("rasterizer returned %d bytes for %dx%d pixels", len(pix), w, h)
	}
	return &image.RGBA{Pix: pix, Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}, nil
}

// FlatColor returns the single color that best stands for the
// material's diffuse paint: the paint's color for solid paints,
// its average color for gradients and images, and the diffuse
// color when there is no paint.
func (bk *Baker) FlatColor(mt *Material) color.RGBA {
	switch p := mt.DiffusePaint.(type) {
	case nil:
		return mt.Diffuse
	case *SolidPaint:
		return p.Color
	}
	key := paintKey(mt.DiffusePaint)
	if c, ok := bk.flats[key]; ok {
		return c
	}
	src := mt.DiffusePaint.Source()
	if src == nil {
		return mt.Diffuse
	}
	var c color.RGBA
	if g, ok := src.(gradient.Gradient); ok {
		box := image.Rect(0, 0, flatSamples, flatSamples)
		g.Update(box)
		c = colors.Average(g, box)
	} else {
		c = colors.Average(src, image.Rectangle{})
	}
	if bk.flats == nil {
		bk.flats = make(map[any]color.RGBA)
	}
	bk.flats[key] = c
	return c
}

// fileName returns an unused texture file name for the material.
func (bk *Baker) fileName(matName string) string {
	if bk.used == nil {
		bk.used = make(map[string]bool)
	}
	base := bk.Name + "_" + fileSafe(matName)
	ext := bk.Options.Defaults().Format.Ext()
	name := base + ext
	for i := 1; bk.used[name]; i++ {
		name = fmt.Sprintf("%s_%d%s", base, i, ext)
	}
	bk.used[name] = true
	return name
}

// fileSafe replaces everything but ASCII letters, digits, '-' and '_'.
func fileSafe(s string) string {
	if s == "" {
		return "texture"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, s)
}
