// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"fmt"
	"io"

	"cogentcore.org/meshio/codec"
	"github.com/h2non/filetype"
)

// Resolver resolves material names to layers for one read call.
// A name is converted on first use and the same [Layer] is returned
// for every later reference to it.
type Resolver struct {

	// Library has the material definitions.
	Library *Library

	// Files, when set, is used to check that texture files exist
	// and hold images.
	Files codec.Files

	// Format is the short name of the format being read, for notices.
	Format string

	// Notices receives undefined names and bad texture files.
	Notices *codec.Notices

	layers   map[string]Layer
	def      Layer
	textures map[string]bool
}

// NewResolver returns a resolver over the library for a read with the given options.
func NewResolver(lib *Library, format string, opts *codec.Options) *Resolver {
	return &Resolver{Library: lib, Files: opts.SideFiles(), Format: format, Notices: opts.Notes()}
}

// Resolve returns the layer for the named material. An undefined name
// resolves to the [Default] material, with a notice.
func (rs *Resolver) Resolve(name string) Layer {
	if l, ok := rs.layers[name]; ok {
		return l
	}
	if rs.layers == nil {
		rs.layers = make(map[string]Layer)
	}
	mt, ok := rs.Library.Get(name)
	if !ok {
		rs.Notices.Add(codec.Notice{Format: rs.Format, Kind: codec.ErrMalformedRecord,
			Message: fmt.Sprintf("material %q is not defined, using the default material", name)})
		if rs.def == nil {
			rs.def = FromRecord(Default())
		}
		rs.layers[name] = rs.def
		return rs.def
	}
	for _, tf := range mt.TextureFiles() {
		rs.checkTexture(tf)
	}
	l := FromRecord(mt)
	rs.layers[name] = l
	return l
}

// Default returns the layer of the default material, shared by all
// references to undefined names and by geometry with no material.
func (rs *Resolver) Default() Layer {
	if rs.def == nil {
		rs.def = FromRecord(Default())
	}
	return rs.def
}

// checkTexture records a notice when the texture file cannot be
// opened or does not look like an image.
func (rs *Resolver) checkTexture(name string) {
	if rs.Files == nil || rs.textures[name] {
		return
	}
	if rs.textures == nil {
		rs.textures = make(map[string]bool)
	}
	rs.textures[name] = true
	f, err := rs.Files.Open(name)
	if err != nil {
		rs.Notices.Unsupported(rs.Format, "texture %q: %v", name, err)
		return
	}
	defer f.Close()
	head := make([]byte, 262)
	n, _ := io.ReadFull(f, head)
	if !filetype.IsImage(head[:n]) {
		rs.Notices.Unsupported(rs.Format, "texture %q is not a recognized image file", name)
	}
}
