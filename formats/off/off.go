// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package off reads and writes the object file format (*.off), a
// vertex list followed by a face list, with the [C][N][ST]OFF header
// variants for vertex colors, normals and texture coordinates.
package off

import (
	"bytes"
	"image/color"
	"io"
	"strings"

	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/colors"
	"cogentcore.org/meshio/math32"
	"cogentcore.org/meshio/mesh"
	"cogentcore.org/meshio/scene"
	"cogentcore.org/meshio/textio"
)

// Format is the short name of the OFF format.
const Format = "off"

// Variant is the set of optional vertex fields named by the header.
type Variant struct {
	TexCoords, Colors, Normals bool
}

// ParseVariant parses a header keyword such as "OFF" or "CNOFF".
func ParseVariant(kw string) (Variant, bool) {
	var v Variant
	s, ok := strings.CutSuffix(kw, "OFF")
	if !ok {
		return v, false
	}
	s, v.TexCoords = strings.CutPrefix(s, "ST")
	s, v.Colors = strings.CutPrefix(s, "C")
	s, v.Normals = strings.CutPrefix(s, "N")
	return v, s == ""
}

// IsOFF returns whether data starts with an OFF header keyword.
func IsOFF(data []byte) bool {
	line, _, _ := bytes.Cut(bytes.TrimLeft(data, " \t\r\n"), []byte("\n"))
	fs := bytes.Fields(line)
	if len(fs) == 0 {
		return false
	}
	_, ok := ParseVariant(string(fs[0]))
	return ok
}

// String returns the header keyword of the variant.
func (v Variant) String() string {
	var b strings.Builder
	if v.TexCoords {
		b.WriteString("ST")
	}
	if v.Colors {
		b.WriteString("C")
	}
	if v.Normals {
		b.WriteString("N")
	}
	b.WriteString("OFF")
	return b.String()
}

// face is a face record with its line number and optional color.
type face struct {
	line  int
	idxs  []int
	color color.RGBA
	has   bool
}

// decoder has the state of one OFF read.
type decoder struct {
	sc      *textio.Scanner
	opts    *codec.Options
	variant Variant
	src     mesh.Source
	faces   []face
	colored bool
}

// Read reads an OFF file into a scene with one solid. Face colors
// become vertex colors, with unshared vertices.
func Read(r io.Reader, opts *codec.Options) (*scene.Scene, error) {
	d := &decoder{sc: textio.NewScanner(r, Format, opts), opts: opts}
	d.sc.Continuation = false
	nv, nf, err := d.readHeader()
	if err != nil {
		return nil, err
	}
	for range nv {
		if err := d.next("vertex"); err != nil {
			return nil, err
		}
		ln := d.sc.Line()
		if err := d.parseVertex(ln); err != nil {
			if err = d.sc.Fail(ln, err); err != nil {
				return nil, err
			}
			d.padVertex()
		}
	}
	for range nf {
		if err := d.next("face"); err != nil {
			return nil, err
		}
		ln := d.sc.Line()
		if err := d.parseFace(ln); err != nil {
			if err = d.sc.Fail(ln, err); err != nil {
				return nil, err
			}
		}
	}
	if err := d.sc.Err(); err != nil {
		return nil, err
	}
	return d.build()
}

// next scans the next record, failing at the end of the input.
func (d *decoder) next(what string) error {
	if d.sc.Scan() {
		return nil
	}
	if err := d.sc.Err(); err != nil {
		return err
	}
	return codec.LineError(Format, d.sc.LineNum(), codec.Errorf(codec.ErrMalformedContainer, "end of file, expected a %s", what))
}

// readHeader reads the optional keyword and the counts line.
func (d *decoder) readHeader() (nv, nf int, err error) {
	if err := d.next("header"); err != nil {
		return 0, 0, err
	}
	ln := d.sc.Line()
	fields := append([]string{ln.Keyword}, ln.Fields()...)
	if v, ok := ParseVariant(fields[0]); ok {
		d.variant = v
		fields = fields[1:]
		if len(fields) == 0 {
			if err := d.next("counts line"); err != nil {
				return 0, 0, err
			}
			ln = d.sc.Line()
			fields = append([]string{ln.Keyword}, ln.Fields()...)
		}
	}
	counts, err := textio.Ints(fields, 2)
	if err != nil || counts[0] < 0 || counts[1] < 0 {
		return 0, 0, d.sc.Error(ln, codec.Errorf(codec.ErrMalformedContainer, "invalid counts line %q", ln.Text()))
	}
	return counts[0], counts[1], nil
}

// parseVertex parses x y z [nx ny nz] [r g b [a]] [s t].
func (d *decoder) parseVertex(ln textio.Line) error {
	want := 3
	if d.variant.Normals {
		want += 3
	}
	if d.variant.Colors {
		want += 3
	}
	if d.variant.TexCoords {
		want += 2
	}
	vals, err := textio.Floats(append([]string{ln.Keyword}, ln.Fields()...), want)
	if err != nil {
		return err
	}
	d.src.Positions = append(d.src.Positions, math32.Vec3(vals[0], vals[1], vals[2]))
	vals = vals[3:]
	if d.variant.Normals {
		d.src.Normals = append(d.src.Normals, math32.Vec3(vals[0], vals[1], vals[2]))
		vals = vals[3:]
	}
	if d.variant.Colors {
		n := 3
		if len(vals) == 4 || len(vals) == 6 {
			n = 4
		}
		d.src.Colors = append(d.src.Colors, parseColor(vals[:n]))
		vals = vals[n:]
	}
	if d.variant.TexCoords {
		d.src.TexCoords = append(d.src.TexCoords, math32.Vec2(vals[0], 1-vals[1]))
	}
	return nil
}

// padVertex adds a zero vertex in place of a dropped one, keeping
// later indices aligned.
func (d *decoder) padVertex() {
	d.src.Positions = append(d.src.Positions, math32.Vector3{})
	if d.variant.Normals {
		d.src.Normals = append(d.src.Normals, math32.Vector3{})
	}
	if d.variant.Colors {
		d.src.Colors = append(d.src.Colors, colors.White)
	}
	if d.variant.TexCoords {
		d.src.TexCoords = append(d.src.TexCoords, math32.Vector2{})
	}
}

// parseColor converts 0-1 or 0-255 color values.
func parseColor(vals []float32) color.RGBA {
	scale := float32(1)
	for _, v := range vals {
		if v > 1 {
			scale = 1.0 / 255
		}
	}
	a := float32(1)
	if len(vals) > 3 {
		a = vals[3] * scale
	}
	return colors.FromFloat32(vals[0]*scale, vals[1]*scale, vals[2]*scale, a)
}

// parseFace parses n i0 .. in-1 [r g b [a]].
func (d *decoder) parseFace(ln textio.Line) error {
	fields := append([]string{ln.Keyword}, ln.Fields()...)
	n, err := textio.Int(fields[0])
	if err != nil {
		return err
	}
	if n < 3 {
		return codec.Errorf(codec.ErrMalformedRecord, "face has %d vertices, need at least 3", n)
	}
	idxs, err := textio.Ints(fields[1:min(len(fields), 1+n)], n)
	if err != nil {
		return err
	}
	f := face{line: ln.Num, idxs: idxs}
	if rest := fields[1+n:]; len(rest) >= 3 {
		vals, err := textio.Floats(rest, 3)
		if err != nil {
			return err
		}
		f.color, f.has = parseColor(vals[:min(len(vals), 4)]), true
		d.colored = true
	}
	for _, ix := range f.idxs {
		if ix < 0 || ix >= len(d.src.Positions) {
			return codec.Errorf(codec.ErrInvalidIndex, "vertex index %d out of range [0, %d)", ix, len(d.src.Positions))
		}
	}
	d.faces = append(d.faces, f)
	return nil
}

// build builds the solid from the faces.
func (d *decoder) build() (*scene.Scene, error) {
	sc := scene.New(d.opts.BaseName(Format))
	var b mesh.Builder
	if d.colored {
		b.SetChannels(mesh.Channels{Normals: d.variant.Normals, TexCoords: d.variant.TexCoords, Colors: true})
		for _, f := range d.faces {
			idxs := make([]uint32, len(f.idxs))
			for i, ix := range f.idxs {
				idxs[i] = b.AddVertex(d.vertex(ix, f))
			}
			if err := b.AddPolygon(idxs); err != nil {
				return nil, codec.LineError(Format, f.line, err)
			}
		}
	} else {
		b.Cache.SetGroup(1)
		for _, f := range d.faces {
			refs := make([]mesh.VertexRef, len(f.idxs))
			for i, ix := range f.idxs {
				refs[i] = mesh.VertexRef{Pos: ix, Tex: -1, Norm: -1}
				if d.variant.TexCoords {
					refs[i].Tex = ix
				}
				if d.variant.Normals {
					refs[i].Norm = ix
				}
			}
			if err := b.AddFace(&d.src, refs); err != nil {
				return nil, codec.LineError(Format, f.line, err)
			}
		}
	}
	if !b.IsEmpty() {
		sc.Root.Add(scene.NewSolid(sc.Name(), b.Mesh(sc.Name()), nil))
	}
	return sc, nil
}

// vertex returns vertex ix of face f as a standalone vertex.
func (d *decoder) vertex(ix int, f face) mesh.Vertex {
	v := mesh.Vertex{Pos: d.src.Positions[ix], Color: colors.White}
	if d.variant.Normals {
		v.Normal = d.src.Normals[ix]
	}
	if d.variant.TexCoords {
		v.Tex = d.src.TexCoords[ix]
	}
	switch {
	case f.has:
		v.Color = f.color
	case d.variant.Colors:
		v.Color = d.src.Colors[ix]
	}
	return v
}
