// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stl reads and writes stereolithography files (*.stl) in
// both the binary and the ASCII encoding. Binary facets may carry a
// 15 bit color in their attribute word, which becomes vertex colors.
package stl

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"io"

	"cogentcore.org/meshio/chunk"
	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/math32"
	"cogentcore.org/meshio/mesh"
	"cogentcore.org/meshio/scene"
)

// Format is the short name of the STL format.
const Format = "stl"

const (
	headerLen = 80
	recordLen = 50

	// colorValid is the attribute bit marking a facet color.
	colorValid = 1 << 15
)

// facet is one binary STL record.
type facet struct {
	normal math32.Vector3
	verts  [3]math32.Vector3
	attr   uint16
}

// IsBinary returns whether data is a binary STL file: its length
// matches the facet count in its header exactly.
func IsBinary(data []byte) bool {
	if len(data) < headerLen+4 {
		return false
	}
	n := int64(binary.LittleEndian.Uint32(data[headerLen:]))
	return int64(len(data)) == headerLen+4+n*recordLen
}

// IsASCII returns whether data starts like an ASCII STL file.
func IsASCII(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid"))
}

// Read reads a binary or ASCII STL file into a scene with one solid
// per STL solid. A file whose length matches its binary facet count
// is binary; otherwise a file starting with "solid" is ASCII, and
// anything else is read as binary, failing on the length mismatch.
func Read(r io.Reader, opts *codec.Options) (*scene.Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	sc := scene.New(opts.BaseName(Format))
	if !IsBinary(data) && IsASCII(data) {
		if err := readASCII(bytes.NewReader(data), sc, opts); err != nil {
			return nil, err
		}
		return sc, nil
	}
	ms, err := readBinary(data)
	if err != nil {
		return nil, err
	}
	ms.Name = sc.Name()
	sc.Root.Add(scene.NewSolid(ms.Name, ms, nil))
	return sc, nil
}

func readBinary(data []byte) (*mesh.Mesh, error) {
	cr := chunk.NewReader(bytes.NewReader(data), binary.LittleEndian, int64(len(data))).SetFormat(Format)
	cr.Skip(headerLen)
	n := int64(cr.U32())
	if cr.Err() != nil {
		return nil, cr.Err()
	}
	if want := headerLen + 4 + n*recordLen; want != int64(len(data)) {
		return nil, codec.OffsetError(Format, cr.Offset(), codec.Errorf(codec.ErrLengthMismatch,
			"%d facets need %d bytes, file has %d", n, want, len(data)))
	}
	facets := make([]facet, n)
	colored := false
	for i := range facets {
		f := &facets[i]
		f.normal = readVec3(cr)
		for j := range f.verts {
			f.verts[j] = readVec3(cr)
		}
		f.attr = cr.U16()
		if f.attr&colorValid != 0 {
			colored = true
		}
	}
	if err := cr.ExpectEnd(int64(len(data))); err != nil {
		return nil, err
	}
	var b mesh.Builder
	b.SetChannels(mesh.Channels{Normals: true, Colors: colored})
	for _, f := range facets {
		if err := addFacet(&b, f.normal, f.verts[:], attrColor(f.attr)); err != nil {
			return nil, err
		}
	}
	return b.Mesh(""), nil
}

func readVec3(cr *chunk.Reader) math32.Vector3 {
	return math32.Vec3(cr.F32(), cr.F32(), cr.F32())
}

// addFacet adds the facet polygon with its own vertices; a zero normal
// is replaced by the geometric one.
func addFacet(b *mesh.Builder, normal math32.Vector3, verts []math32.Vector3, clr color.RGBA) error {
	if normal == (math32.Vector3{}) && len(verts) >= 3 {
		normal = math32.Normal(verts[0], verts[1], verts[2])
	}
	idxs := make([]uint32, len(verts))
	for i, v := range verts {
		idxs[i] = b.AddVertex(mesh.Vertex{Pos: v, Normal: normal, Color: clr})
	}
	return b.AddPolygon(idxs)
}

// attrColor returns the color of a facet attribute: 5 bits per
// channel with red in bits 10-14, or white when the color is not valid.
func attrColor(attr uint16) color.RGBA {
	if attr&colorValid == 0 {
		return color.RGBA{255, 255, 255, 255}
	}
	return color.RGBA{
		R: uint8((attr>>10)&0x1F) << 3,
		G: uint8((attr>>5)&0x1F) << 3,
		B: uint8(attr&0x1F) << 3,
		A: 255,
	}
}

// colorAttr is the inverse of attrColor.
func colorAttr(c color.RGBA) uint16 {
	return colorValid | uint16(c.R>>3)<<10 | uint16(c.G>>3)<<5 | uint16(c.B>>3)
}
