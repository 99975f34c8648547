// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package export drives the format writers: [Run] walks a scene and
// calls the [Hooks] of a writer, and [Context] holds what one write
// call owns: unique [Names], a [Cache] of written resources and the
// texture [material.Baker].
package export

import (
	"fmt"

	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/material"
	"cogentcore.org/meshio/math32"
	"cogentcore.org/meshio/scene"
)

// Hooks are the format-specific parts of a writer.
type Hooks interface {

	// Header writes the prologue.
	Header(sc *scene.Scene) error

	// Solid writes a solid with its world transform.
	Solid(s *scene.Solid, world *math32.Matrix4) error

	// Light writes a light with its world transform.
	Light(l scene.Light, world *math32.Matrix4) error

	// Footer writes the epilogue.
	Footer(sc *scene.Scene) error
}

// Run calls the hooks for the scene: Header, then Solid or Light for
// each solid and light in depth-first order, then Footer. It stops
// at the first error. Solids without a mesh or triangles are skipped.
func Run(sc *scene.Scene, h Hooks) error {
	if err := h.Header(sc); err != nil {
		return err
	}
	var err error
	sc.Walk(func(n scene.Node, world *math32.Matrix4) bool {
		if err != nil {
			return false
		}
		switch n := n.(type) {
		case *scene.Solid:
			if !n.Mesh.IsEmpty() {
				err = h.Solid(n, world)
			}
		case scene.Light:
			err = h.Light(n, world)
		}
		return err == nil
	})
	if err != nil {
		return err
	}
	return h.Footer(sc)
}

// Context is the state a writer keeps for one write call.
type Context struct {

	// Format is the short name of the format, for notices.
	Format string

	// Options of the write call.
	Options *codec.Options

	// Names are the unique identifiers of written resources.
	Names *Names

	// Baker rasterizes procedural paints when the format needs bitmaps.
	Baker *material.Baker

	materials Cache[material.Layer, *material.Material]
	surfaces  Cache[material.Layer, *material.Material]
	noted     map[string]bool
}

// NewContext returns a new context for a write in the given format.
func NewContext(format string, opts *codec.Options) *Context {
	return &Context{
		Format:  format,
		Options: opts,
		Names:   NewNames(),
		Baker:   material.NewBaker(format, opts),
	}
}

// Material returns the flat record of the layer, flattened once per
// layer. A nil layer is the default material.
func (c *Context) Material(l material.Layer) *material.Material {
	if mt, ok := c.materials.Get(l); ok {
		return mt
	}
	var mt *material.Material
	if l == nil {
		mt = material.Default()
	} else {
		mt = material.Flatten(l)
	}
	c.materials.Set(l, mt)
	return mt
}

// Surface returns the flat record of the layer with its procedural
// diffuse paint resolved: baked to the texture file named by
// DiffuseMap when possible, and averaged into Diffuse otherwise.
// The resolved record is a copy; [Context.Material] still returns
// the unbaked one.
func (c *Context) Surface(l material.Layer) (*material.Material, error) {
	if mt, ok := c.surfaces.Get(l); ok {
		return mt, nil
	}
	mt := c.Material(l)
	if material.IsProcedural(mt.DiffusePaint) {
		mt = mt.Clone()
		if _, err := c.Baker.Bitmap(mt); err != nil {
			return nil, err
		}
		if mt.DiffuseMap == "" {
			mt.Diffuse = c.Baker.FlatColor(mt)
		}
	}
	c.surfaces.Set(l, mt)
	return mt, nil
}

// Unsupported records an unsupported feature notice, once per message.
func (c *Context) Unsupported(msg string, args ...any) {
	s := fmt.Sprintf(msg, args...)
	if c.noted[s] {
		return
	}
	if c.noted == nil {
		c.noted = make(map[string]bool)
	}
	c.noted[s] = true
	c.Options.Notes().Unsupported(c.Format, "%s", s)
}

// SideFile creates the named side file, reporting a notice and
// returning nil when there is no side-file access.
func (c *Context) SideFile(name string) (*SideFile, error) {
	fs := c.Options.SideFiles()
	if fs == nil {
		c.Unsupported("no side files: %s not written", name)
		return nil, nil
	}
	wc, err := fs.Create(name)
	if err != nil {
		return nil, err
	}
	return &SideFile{Name: name, WriteCloser: wc}, nil
}
