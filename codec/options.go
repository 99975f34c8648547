// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package codec provides what every mesh format reader and writer
// shares: the error kinds, the per-call [Options], the [Notices]
// diagnostics side channel and [Files] access to side files.
package codec

import (
	"image"
	"path/filepath"
	"strings"

	"cogentcore.org/meshio/base/iox/imagex"
)

// Options are the options of one read or write call.
// A nil *Options is valid and means the defaults.
type Options struct {

	// IgnoreErrors drops malformed records and records with invalid
	// indices, reporting them as notices, instead of failing.
	IgnoreErrors bool

	// SmoothUngrouped puts faces that precede any smoothing group
	// statement in one smoothing group, so that their identical
	// vertices are shared. Otherwise such faces are unsmoothed.
	SmoothUngrouped bool

	// Files gives access to side files. When nil, side files
	// are not read and not written, which is reported as a notice.
	Files Files

	// Name is the base name of the main file, without extension,
	// used to name generated side files.
	Name string

	// Notices collects non-fatal diagnostics. It may be nil.
	Notices *Notices

	// Bake configures rasterizing procedural paints to textures.
	Bake BakeOptions
}

// BakeOptions configures texture baking of procedural paint sources.
type BakeOptions struct {

	// Width and Height of the baked image, in pixels.
	Width, Height int

	// Quality is the supersampling factor, 1 to 4.
	Quality int

	// Format of the baked image file.
	Format imagex.Formats

	// Rasterizer performs the rasterization; nil uses the
	// software image rasterizer.
	Rasterizer Rasterizer
}

// Rasterizer renders a paint source, a possibly unbounded image such as
// a gradient, into width x height pixels. It is called synchronously,
// and returns the pixels in [image.RGBA] Pix layout (4 bytes per pixel,
// row major, no padding). Hosts that must rasterize on a particular
// thread marshal the call themselves.
type Rasterizer interface {
	Rasterize(src image.Image, width, height int) ([]byte, error)
}

// Defaults returns the bake options with zero fields set to defaults:
// 256x256 pixels, quality 2, PNG format.
func (b BakeOptions) Defaults() BakeOptions {
	if b.Width <= 0 {
		b.Width = 256
	}
	if b.Height <= 0 {
		b.Height = 256
	}
	if b.Quality < 1 {
		b.Quality = 2
	}
	if b.Quality > 4 {
		b.Quality = 4
	}
	if b.Format == imagex.None {
		b.Format = imagex.PNG
	}
	return b
}

// Ignore returns whether records with errors are dropped.
func (o *Options) Ignore() bool {
	return o != nil && o.IgnoreErrors
}

// Smooth returns whether ungrouped faces are smoothed.
func (o *Options) Smooth() bool {
	return o != nil && o.SmoothUngrouped
}

// Notes returns the notices collector, which may be nil.
func (o *Options) Notes() *Notices {
	if o == nil {
		return nil
	}
	return o.Notices
}

// SideFiles returns the side-file access, which may be nil.
func (o *Options) SideFiles() Files {
	if o == nil {
		return nil
	}
	return o.Files
}

// BaseName returns [Options.Name], or def if it is empty.
func (o *Options) BaseName(def string) string {
	if o == nil || o.Name == "" {
		return def
	}
	return o.Name
}

// Baking returns the bake options with defaults applied.
func (o *Options) Baking() BakeOptions {
	if o == nil {
		return BakeOptions{}.Defaults()
	}
	return o.Bake.Defaults()
}

// ForPath returns options for the main file at path: Files on its
// directory and Name its base name without extension, unless already set.
// The receiver is not modified.
func (o *Options) ForPath(path string) *Options {
	no := &Options{}
	if o != nil {
		*no = *o
	}
	if no.Files == nil {
		no.Files = DirFiles(filepath.Dir(path))
	}
	if no.Name == "" {
		base := filepath.Base(path)
		no.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return no
}
