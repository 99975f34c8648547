// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ply reads the polygon file format (*.ply) in its ascii,
// binary_little_endian and binary_big_endian encodings. The vertex
// and face elements become one solid; other elements are skipped.
package ply

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"cogentcore.org/meshio/chunk"
	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/colors"
	"cogentcore.org/meshio/math32"
	"cogentcore.org/meshio/mesh"
	"cogentcore.org/meshio/scene"
	"cogentcore.org/meshio/textio"
)

// Format is the short name of the PLY format.
const Format = "ply"

// maxList is the largest accepted list length.
const maxList = 1 << 20

// IsPLY returns whether data starts with the PLY magic line.
func IsPLY(data []byte) bool {
	return bytes.HasPrefix(data, []byte("ply\n")) || bytes.HasPrefix(data, []byte("ply\r\n"))
}

// Read reads a PLY file into a scene with one solid.
func Read(r io.Reader, opts *codec.Options) (*scene.Scene, error) {
	br := bufio.NewReader(r)
	hd, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	d := &decoder{hd: hd, opts: opts}
	if hd.Encoding == ASCII {
		sc := textio.NewScanner(br, Format, opts)
		sc.Comment = ""
		sc.Continuation = false
		sc.SetLineNum(hd.Lines)
		d.rr = &asciiRecords{sc: sc}
	} else {
		d.rr = &binaryRecords{cr: chunk.NewReader(br, hd.Encoding.Order(), -1).SetFormat(Format)}
	}
	for _, el := range hd.Elements {
		if err := d.readElement(el); err != nil {
			return nil, err
		}
	}
	if d.rr.trailing() {
		opts.Notes().Add(codec.Notice{Format: Format, Kind: codec.ErrMalformedRecord, Message: "data after the last declared element ignored"})
	}
	return d.build()
}

// records reads element records in one encoding.
type records interface {

	// next reads one record of the element: one slice of values per
	// property. Errors are located; malformed container errors are fatal.
	next(el *Element) ([][]float64, error)

	// pos returns the line or byte offset of the last record.
	pos() (line int, offset int64)

	// trailing returns whether there is data after the records.
	trailing() bool
}

// face is a face record with its location, for errors found when
// the faces are built.
type face struct {
	idxs   []int
	line   int
	offset int64
}

type decoder struct {
	hd       *Header
	opts     *codec.Options
	rr       records
	src      mesh.Source
	channels mesh.Channels
	faces    []face
}

// fail applies the error policy to a record error.
func (d *decoder) fail(err error) error {
	if errors.Is(err, codec.ErrMalformedContainer) || !d.opts.Ignore() {
		return err
	}
	d.opts.Notes().Skipped(Format, err)
	return nil
}

func (d *decoder) readElement(el *Element) error {
	switch el.Name {
	case "vertex":
		return d.readVertices(el)
	case "face":
		return d.readFaces(el)
	}
	d.opts.Notes().Unsupported(Format, "element %q skipped", el.Name)
	for range el.Count {
		if _, err := d.rr.next(el); err != nil {
			if err := d.fail(err); err != nil {
				return err
			}
		}
	}
	return nil
}

// firstIndex returns the index of the first of the named properties present.
func firstIndex(el *Element, names ...string) int {
	for _, n := range names {
		if i := el.Index(n); i >= 0 {
			return i
		}
	}
	return -1
}

func (d *decoder) readVertices(el *Element) error {
	ix, iy, iz := el.Index("x"), el.Index("y"), el.Index("z")
	if ix < 0 || iy < 0 || iz < 0 {
		return codec.LineError(Format, d.hd.Lines, codec.Errorf(codec.ErrMalformedContainer, "vertex element without x, y and z"))
	}
	inx, iny, inz := el.Index("nx"), el.Index("ny"), el.Index("nz")
	iu, iv := firstIndex(el, "s", "u", "texture_u"), firstIndex(el, "t", "v", "texture_v")
	ir, ig, ib := firstIndex(el, "red", "diffuse_red"), firstIndex(el, "green", "diffuse_green"), firstIndex(el, "blue", "diffuse_blue")
	ia := el.Index("alpha")
	d.channels = mesh.Channels{
		Normals:   inx >= 0 && iny >= 0 && inz >= 0,
		TexCoords: iu >= 0 && iv >= 0,
		Colors:    ir >= 0 && ig >= 0 && ib >= 0,
	}
	scale := float32(1)
	if d.channels.Colors && !el.Properties[ir].Type.IsFloat() {
		scale = 1.0 / 255
	}
	for range el.Count {
		rec, err := d.rr.next(el)
		if err != nil {
			if err = d.fail(err); err != nil {
				return err
			}
			// keep later indices aligned
			rec = make([][]float64, len(el.Properties))
			for i := range rec {
				rec[i] = []float64{0}
			}
		}
		val := func(i int) float32 {
			if len(rec[i]) == 0 {
				return 0
			}
			return float32(rec[i][0])
		}
		d.src.Positions = append(d.src.Positions, math32.Vec3(val(ix), val(iy), val(iz)))
		if d.channels.Normals {
			d.src.Normals = append(d.src.Normals, math32.Vec3(val(inx), val(iny), val(inz)))
		}
		if d.channels.TexCoords {
			d.src.TexCoords = append(d.src.TexCoords, math32.Vec2(val(iu), 1-val(iv)))
		}
		if d.channels.Colors {
			a := float32(1)
			if ia >= 0 {
				a = val(ia) * scale
			}
			d.src.Colors = append(d.src.Colors, colors.FromFloat32(val(ir)*scale, val(ig)*scale, val(ib)*scale, a))
		}
	}
	return nil
}

func (d *decoder) readFaces(el *Element) error {
	ii := firstIndex(el, "vertex_indices", "vertex_index")
	if ii < 0 || !el.Properties[ii].List {
		return codec.LineError(Format, d.hd.Lines, codec.Errorf(codec.ErrMalformedContainer, "face element without a vertex_indices list"))
	}
	for range el.Count {
		rec, err := d.rr.next(el)
		if err != nil {
			if err = d.fail(err); err != nil {
				return err
			}
			continue
		}
		idxs := make([]int, len(rec[ii]))
		for i, v := range rec[ii] {
			idxs[i] = int(v)
		}
		f := face{idxs: idxs}
		f.line, f.offset = d.rr.pos()
		d.faces = append(d.faces, f)
	}
	return nil
}

// build builds the solid from the faces.
func (d *decoder) build() (*scene.Scene, error) {
	var b mesh.Builder
	b.Cache.SetGroup(1)
	n := len(d.src.Positions)
	for _, f := range d.faces {
		refs := make([]mesh.VertexRef, len(f.idxs))
		var err error
		for i, ix := range f.idxs {
			if ix < 0 || ix >= n {
				err = codec.Errorf(codec.ErrInvalidIndex, "vertex index %d out of range [0, %d)", ix, n)
				break
			}
			refs[i] = mesh.VertexRef{Pos: ix, Tex: -1, Norm: -1}
			if d.channels.TexCoords {
				refs[i].Tex = ix
			}
			if d.channels.Normals {
				refs[i].Norm = ix
			}
		}
		if err == nil {
			err = b.AddFace(&d.src, refs)
		}
		if err != nil {
			if err = d.fail(codec.Located(Format, f.line, f.offset, err)); err != nil {
				return nil, err
			}
		}
	}
	sc := scene.New(d.opts.BaseName(Format))
	if !b.IsEmpty() {
		sc.Root.Add(scene.NewSolid(sc.Name(), b.Mesh(sc.Name()), nil))
	}
	return sc, nil
}
