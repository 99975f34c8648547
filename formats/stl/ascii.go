// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stl

import (
	"image/color"
	"io"

	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/math32"
	"cogentcore.org/meshio/mesh"
	"cogentcore.org/meshio/scene"
	"cogentcore.org/meshio/textio"
)

// asciiReader has the state of one ASCII STL read.
type asciiReader struct {
	sc     *textio.Scanner
	scene  *scene.Scene
	bld    mesh.Builder
	name   string
	normal math32.Vector3
	verts  []math32.Vector3
	inFace bool
	inLoop bool
}

func readASCII(r io.Reader, sc *scene.Scene, opts *codec.Options) error {
	ar := &asciiReader{scene: sc, sc: textio.NewScanner(r, Format, opts)}
	ar.sc.Comment = ""
	ar.sc.Continuation = false
	ar.bld.SetChannels(mesh.Channels{Normals: true})
	for ar.sc.Scan() {
		ln := ar.sc.Line()
		if err := ar.parseLine(ln); err != nil {
			ar.inFace, ar.inLoop, ar.verts = false, false, ar.verts[:0]
			if err = ar.sc.Fail(ln, err); err != nil {
				return err
			}
		}
	}
	if err := ar.sc.Err(); err != nil {
		return err
	}
	ar.flush()
	return nil
}

func (ar *asciiReader) parseLine(ln textio.Line) error {
	switch ln.Keyword {
	case "solid":
		ar.flush()
		ar.name = ln.Rest
	case "facet":
		fields := ln.Fields()
		if len(fields) < 1 || fields[0] != "normal" {
			return codec.Errorf(codec.ErrMalformedRecord, "facet without normal")
		}
		vals, err := textio.Floats(fields[1:], 3)
		if err != nil {
			return err
		}
		ar.normal = math32.Vec3(vals[0], vals[1], vals[2])
		ar.verts = ar.verts[:0]
		ar.inFace = true
	case "outer":
		if !ar.inFace {
			return codec.Errorf(codec.ErrMalformedRecord, "outer loop outside of a facet")
		}
		ar.inLoop = true
	case "vertex":
		if !ar.inLoop {
			return codec.Errorf(codec.ErrMalformedRecord, "vertex outside of a loop")
		}
		vals, err := textio.Floats(ln.Fields(), 3)
		if err != nil {
			return err
		}
		ar.verts = append(ar.verts, math32.Vec3(vals[0], vals[1], vals[2]))
	case "endloop":
		ar.inLoop = false
	case "endfacet":
		if !ar.inFace {
			return codec.Errorf(codec.ErrMalformedRecord, "endfacet outside of a facet")
		}
		ar.inFace = false
		if len(ar.verts) < 3 {
			return codec.Errorf(codec.ErrMalformedRecord, "facet has %d vertices, need at least 3", len(ar.verts))
		}
		return addFacet(&ar.bld, ar.normal, ar.verts, color.RGBA{})
	case "endsolid":
		ar.flush()
	default:
		return codec.Errorf(codec.ErrMalformedRecord, "unknown keyword %q", ln.Keyword)
	}
	return nil
}

// flush adds the solid read so far to the scene.
func (ar *asciiReader) flush() {
	if ar.bld.IsEmpty() {
		return
	}
	name := ar.name
	if name == "" {
		name = ar.scene.Name()
	}
	ar.scene.Root.Add(scene.NewSolid(name, ar.bld.Mesh(name), nil))
	ar.bld.SetChannels(mesh.Channels{Normals: true})
	ar.name = ""
}
