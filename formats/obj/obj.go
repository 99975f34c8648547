// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This package is based extensively on https://github.com/g3n/engine :
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obj reads and writes the Wavefront OBJ file format (*.obj),
// including associated material libraries (*.mtl). Free-form curves
// and surfaces, lines and points are not supported and are reported
// as notices. Basic format info: https://en.wikipedia.org/wiki/Wavefront_.obj_file
package obj

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/colors"
	"cogentcore.org/meshio/material"
	"cogentcore.org/meshio/math32"
	"cogentcore.org/meshio/mesh"
	"cogentcore.org/meshio/scene"
	"cogentcore.org/meshio/textio"
	"github.com/mattn/go-shellwords"
)

const (
	// Format is the short name of the OBJ format.
	Format = "obj"

	// MTLFormat is the short name of the material library format.
	MTLFormat = "mtl"
)

// Read reads an OBJ model into a new scene. Material libraries named
// by mtllib lines are read through opts.Files. Faces before the first
// s line are unsmoothed unless opts.SmoothUngrouped is set. Each group (g or o)
// becomes a group node with one solid per material used in it.
func Read(r io.Reader, opts *codec.Options) (*scene.Scene, error) {
	dec := newDecoder(opts)
	if err := dec.parse(r); err != nil {
		return nil, err
	}
	return dec.scene, nil
}

// decoder has the state of one OBJ read.
type decoder struct {
	opts     *codec.Options
	sc       *textio.Scanner
	src      mesh.Source
	bld      mesh.Builder
	lib      *material.Library
	res      *material.Resolver
	scene    *scene.Scene
	group    *scene.Group
	matName  string
	parts    int
	libs     map[string]bool
	reported map[string]bool
}

func newDecoder(opts *codec.Options) *decoder {
	dec := &decoder{opts: opts, lib: material.NewLibrary(), libs: map[string]bool{}, reported: map[string]bool{}}
	dec.res = material.NewResolver(dec.lib, Format, opts)
	dec.scene = scene.New(opts.BaseName(Format))
	dec.scene.Library = dec.lib
	if opts.Smooth() {
		dec.bld.Cache.SetGroup(1)
	}
	return dec
}

func (dec *decoder) parse(r io.Reader) error {
	dec.sc = textio.NewScanner(r, Format, dec.opts)
	for dec.sc.Scan() {
		ln := dec.sc.Line()
		if err := dec.parseLine(ln); err != nil {
			if err = dec.sc.Fail(ln, err); err != nil {
				return err
			}
		}
	}
	if err := dec.sc.Err(); err != nil {
		return err
	}
	dec.flush()
	return nil
}

// parseLine dispatches the line to the parser for its keyword.
func (dec *decoder) parseLine(ln textio.Line) error {
	switch ln.Keyword {
	case "v":
		return dec.parseVertex(ln.Fields())
	case "vt":
		return dec.parseTex(ln.Fields())
	case "vn":
		return dec.parseNormal(ln.Fields())
	case "f":
		return dec.parseFace(ln.Fields())
	case "g", "o":
		dec.parseGroup(ln.Rest)
	case "s":
		return dec.parseSmooth(ln.Fields())
	case "usemtl":
		return dec.parseUsemtl(ln.Rest)
	case "mtllib":
		return dec.parseMtllib(ln.Rest)
	case "l", "p", "vp", "cstype", "deg", "bmat", "step", "curv", "curv2", "surf", "parm", "trim", "hole", "scrv", "sp", "end", "con", "mg", "bevel", "c_interp", "d_interp", "lod", "shadow_obj", "trace_obj", "ctech", "stech":
		dec.unsupported(ln, ln.Keyword+" statements")
	default:
		dec.unsupported(ln, "keyword "+ln.Keyword)
	}
	return nil
}

// unsupported records a notice once per kind of statement.
func (dec *decoder) unsupported(ln textio.Line, what string) {
	if dec.reported[what] {
		return
	}
	dec.reported[what] = true
	dec.sc.Unsupported(ln, what)
}

// parseVertex parses a vertex position line:
// v <x> <y> <z> [w] or v <x> <y> <z> <r> <g> <b>
func (dec *decoder) parseVertex(fields []string) error {
	vals, err := textio.Floats(fields, 3)
	if err != nil {
		return err
	}
	dec.src.Positions = append(dec.src.Positions, math32.Vec3(vals[0], vals[1], vals[2]))
	if len(vals) >= 6 {
		for len(dec.src.Colors) < len(dec.src.Positions)-1 {
			dec.src.Colors = append(dec.src.Colors, colors.White)
		}
		dec.src.Colors = append(dec.src.Colors, colors.FromFloat32(vals[3], vals[4], vals[5], 1))
	} else if len(dec.src.Colors) > 0 {
		dec.src.Colors = append(dec.src.Colors, colors.White)
	}
	return nil
}

// parseTex parses a texture coordinate line, flipping v:
// vt <u> <v> [w]
func (dec *decoder) parseTex(fields []string) error {
	if len(fields) == 1 {
		fields = append(fields, "0")
	}
	vals, err := textio.Floats(fields, 2)
	if err != nil {
		return err
	}
	dec.src.TexCoords = append(dec.src.TexCoords, math32.Vec2(vals[0], 1-vals[1]))
	return nil
}

// parseNormal parses a vertex normal line:
// vn <x> <y> <z>
func (dec *decoder) parseNormal(fields []string) error {
	vals, err := textio.Floats(fields, 3)
	if err != nil {
		return err
	}
	dec.src.Normals = append(dec.src.Normals, math32.Vec3(vals[0], vals[1], vals[2]))
	return nil
}

// parseFace parses a face line:
// f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ...
func (dec *decoder) parseFace(fields []string) error {
	if len(fields) < 3 {
		return codec.Errorf(codec.ErrMalformedRecord, "face with %d vertices, need at least 3", len(fields))
	}
	refs := make([]mesh.VertexRef, len(fields))
	for i, f := range fields {
		parts := strings.Split(f, "/")
		if len(parts) > 3 {
			return codec.Errorf(codec.ErrMalformedRecord, "face vertex %q has more than 3 parts", f)
		}
		ref := mesh.VertexRef{Tex: -1, Norm: -1}
		var err error
		if ref.Pos, err = resolveIndex(parts[0], len(dec.src.Positions), "vertex"); err != nil {
			return err
		}
		if len(parts) > 1 && parts[1] != "" {
			if ref.Tex, err = resolveIndex(parts[1], len(dec.src.TexCoords), "texture coordinate"); err != nil {
				return err
			}
		}
		if len(parts) > 2 && parts[2] != "" {
			if ref.Norm, err = resolveIndex(parts[2], len(dec.src.Normals), "normal"); err != nil {
				return err
			}
		}
		refs[i] = ref
	}
	dec.ensureGroup()
	return dec.bld.AddFace(&dec.src, refs)
}

// resolveIndex converts a 1-based index to a 0-based one. Negative
// indices count back from the end: with count declared so far,
// index -1 is count.
func resolveIndex(s string, count int, what string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, codec.Errorf(codec.ErrMalformedRecord, "invalid %s index %q", what, s)
	}
	switch {
	case v > 0:
		v--
	case v < 0:
		v = count + v
	default:
		return 0, codec.Errorf(codec.ErrInvalidIndex, "%s index 0", what)
	}
	if v < 0 || v >= count {
		return 0, codec.Errorf(codec.ErrInvalidIndex, "%s index %s out of range [1, %d]", what, s, count)
	}
	return v, nil
}

// parseGroup starts a new group, which starts a new mesh.
func (dec *decoder) parseGroup(name string) {
	dec.flush()
	if name == "" {
		name = "default"
	}
	dec.group = scene.NewGroup(name)
	dec.scene.Root.Add(dec.group)
	dec.parts = 0
}

func (dec *decoder) ensureGroup() {
	if dec.group == nil {
		dec.group = scene.NewGroup("default")
		dec.scene.Root.Add(dec.group)
	}
}

// parseSmooth parses a smoothing group line:
// s <id>|on|off
func (dec *decoder) parseSmooth(fields []string) error {
	if len(fields) < 1 {
		return codec.Errorf(codec.ErrMalformedRecord, "'s' with no fields")
	}
	switch fields[0] {
	case "off":
		dec.bld.Cache.SetGroup(0)
	case "on":
		dec.bld.Cache.SetGroup(1)
	default:
		id, err := textio.Int(fields[0])
		if err != nil {
			return err
		}
		dec.bld.Cache.SetGroup(id)
	}
	return nil
}

// parseUsemtl switches the material; a different material starts a new mesh.
func (dec *decoder) parseUsemtl(name string) error {
	if name == "" {
		return codec.Errorf(codec.ErrMalformedRecord, "usemtl with no name")
	}
	if name != dec.matName {
		dec.flush()
		dec.matName = name
	}
	return nil
}

// parseMtllib reads the named material libraries, once each.
// Names may be quoted.
func (dec *decoder) parseMtllib(rest string) error {
	names, err := shellwords.Parse(rest)
	if err != nil || len(names) == 0 {
		return codec.Errorf(codec.ErrMalformedRecord, "invalid mtllib %q", rest)
	}
	ln := dec.sc.Line()
	files := dec.opts.SideFiles()
	for _, name := range names {
		if dec.libs[name] {
			continue
		}
		dec.libs[name] = true
		if files == nil {
			dec.sc.Unsupported(ln, fmt.Sprintf("no side files: material library %q not read", name))
			continue
		}
		f, err := files.Open(name)
		if err != nil {
			dec.sc.Unsupported(ln, fmt.Sprintf("material library %q: %v", name, err))
			continue
		}
		err = ReadMTL(f, dec.lib, dec.opts)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// flush finishes the mesh being built, adding it to the current
// group as a solid with the active material.
func (dec *decoder) flush() {
	if dec.bld.IsEmpty() {
		dec.bld.Reset()
		return
	}
	dec.ensureGroup()
	name := dec.group.Name
	if dec.parts > 0 {
		name = fmt.Sprintf("%s_%d", name, dec.parts)
	}
	dec.parts++
	var mat material.Layer
	if dec.matName == "" {
		mat = dec.res.Default()
	} else {
		mat = dec.res.Resolve(dec.matName)
	}
	dec.group.Add(scene.NewSolid(name, dec.bld.Mesh(name), mat))
}
