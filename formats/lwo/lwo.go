// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lwo reads LightWave object files (*.lwo) in the LWO2 format:
// a big-endian IFF FORM whose chunk sizes exclude the 8 byte header,
// with odd sized chunks padded to even length.
package lwo

import (
	"bytes"
	"encoding/binary"
	"io"

	"cogentcore.org/meshio/chunk"
	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/colors"
	"cogentcore.org/meshio/material"
	"cogentcore.org/meshio/math32"
	"cogentcore.org/meshio/scene"
)

// Format is the short name of the LWO format.
const Format = "lwo"

// IsLWO returns whether data starts with an LWO2 FORM header.
func IsLWO(data []byte) bool {
	return len(data) >= 12 && string(data[:4]) == "FORM" && string(data[8:12]) == "LWO2"
}

// layer is one LAYR of the object with the geometry that follows it.
type layer struct {
	name   string
	points []math32.Vector3
	polys  [][]int
	tags   map[int]int
	uvs    map[int]math32.Vector2
	offset int64
}

// surface is a SURF definition.
type surface struct {
	name                         string
	color                        [3]float32
	diff, spec, glos, tran, lumi float32
}

// decoder has the state of one LWO read.
type decoder struct {
	cr       *chunk.Reader
	opts     *codec.Options
	tags     []string
	layers   []*layer
	surfaces []*surface
	noted    map[string]bool
}

// Read reads an LWO2 file into a scene with one group per layer,
// holding one solid per surface used by the layer. The FORM chunk
// must span the whole input.
func Read(r io.Reader, opts *codec.Options) (*scene.Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	total := int64(len(data))
	cr := chunk.NewReader(bytes.NewReader(data), binary.BigEndian, total).SetFormat(Format)
	cr.Pad = true
	d := &decoder{cr: cr, opts: opts, noted: map[string]bool{}}
	h := chunk.ReadHeader4(cr)
	kind := cr.Tag4()
	if err := cr.Err(); err != nil {
		return nil, err
	}
	if h.Tag != "FORM" || kind != "LWO2" {
		return nil, codec.OffsetError(Format, 0, codec.Errorf(codec.ErrMalformedContainer, "not an LWO2 file: %q %q", h.Tag, kind))
	}
	if end := h.End(chunk.SizeExcludesHeader); end != total {
		return nil, codec.OffsetError(Format, 4, codec.Errorf(codec.ErrLengthMismatch, "FORM size %d, file size %d", h.Size, total))
	}
	if err := cr.Walk(total, chunk.SizeExcludesHeader, chunk.ReadHeader4, d.chunk); err != nil {
		return nil, err
	}
	if err := cr.ExpectEnd(total); err != nil {
		return nil, err
	}
	return d.build()
}

// unsupported records a notice once per feature.
func (d *decoder) unsupported(what string) {
	if d.noted[what] {
		return
	}
	d.noted[what] = true
	d.opts.Notes().Add(codec.Notice{Format: Format, Offset: d.cr.Offset(), Kind: codec.ErrUnsupportedFeature,
		Message: codec.ErrUnsupportedFeature.Error() + ": " + what})
}

// current returns the current layer, starting a default one when
// geometry comes before any LAYR chunk.
func (d *decoder) current() *layer {
	if len(d.layers) == 0 {
		d.layers = append(d.layers, &layer{})
	}
	return d.layers[len(d.layers)-1]
}

// vx reads a variable length index: two bytes, or four bytes when
// the first is 0xFF.
func (d *decoder) vx() int {
	b := d.cr.U8()
	if b != 0xFF {
		return int(b)<<8 | int(d.cr.U8())
	}
	return int(d.cr.U8())<<16 | int(d.cr.U8())<<8 | int(d.cr.U8())
}

func (d *decoder) readVec3() math32.Vector3 {
	return math32.Vec3(d.cr.F32(), d.cr.F32(), d.cr.F32())
}

func (d *decoder) chunk(h chunk.Header) error {
	cr := d.cr
	end := h.End(chunk.SizeExcludesHeader)
	switch h.Tag {
	case "TAGS":
		for cr.Err() == nil && cr.Offset() < end {
			d.tags = append(d.tags, cr.PaddedString())
		}
	case "LAYR":
		ly := &layer{offset: h.Start}
		cr.U16() // number
		cr.U16() // flags
		d.readVec3()
		ly.name = cr.PaddedString()
		d.layers = append(d.layers, ly)
	case "PNTS":
		ly := d.current()
		for cr.Err() == nil && cr.Offset()+12 <= end {
			ly.points = append(ly.points, d.readVec3())
		}
	case "POLS":
		if typ := cr.Tag4(); typ != "FACE" {
			d.unsupported("polygons of type " + typ)
			return nil
		}
		ly := d.current()
		for cr.Err() == nil && cr.Offset() < end {
			n := int(cr.U16() & 0x03FF)
			poly := make([]int, n)
			for i := range poly {
				poly[i] = d.vx()
			}
			ly.polys = append(ly.polys, poly)
		}
	case "PTAG":
		if typ := cr.Tag4(); typ != "SURF" {
			d.unsupported("polygon tags of type " + typ)
			return nil
		}
		ly := d.current()
		if ly.tags == nil {
			ly.tags = map[int]int{}
		}
		for cr.Err() == nil && cr.Offset() < end {
			p := d.vx()
			ly.tags[p] = int(cr.U16())
		}
	case "VMAP":
		typ := cr.Tag4()
		dim := int(cr.U16())
		cr.PaddedString()
		if typ != "TXUV" || dim != 2 {
			d.unsupported("vertex maps of type " + typ)
			return nil
		}
		ly := d.current()
		if ly.uvs == nil {
			ly.uvs = map[int]math32.Vector2{}
		}
		for cr.Err() == nil && cr.Offset() < end {
			v := d.vx()
			u, w := cr.F32(), cr.F32()
			ly.uvs[v] = math32.Vec2(u, 1-w)
		}
	case "VMAD":
		d.unsupported("discontinuous vertex maps")
	case "SURF":
		return d.readSurface(end)
	case "CLIP", "ENVL":
		d.unsupported("images and envelopes")
	}
	return cr.Err()
}

func (d *decoder) readSurface(end int64) error {
	cr := d.cr
	sf := &surface{name: cr.PaddedString(), color: [3]float32{0.78, 0.78, 0.78}, diff: 1}
	cr.PaddedString() // source
	d.surfaces = append(d.surfaces, sf)
	return cr.Walk(end, chunk.SizeExcludesHeader, chunk.SubHeader4U16, func(h chunk.Header) error {
		switch h.Tag {
		case "COLR":
			sf.color = [3]float32{cr.F32(), cr.F32(), cr.F32()}
		case "DIFF":
			sf.diff = cr.F32()
		case "SPEC":
			sf.spec = cr.F32()
		case "GLOS":
			sf.glos = cr.F32()
		case "TRAN":
			sf.tran = cr.F32()
		case "LUMI":
			sf.lumi = cr.F32()
		case "BLOK":
			d.unsupported("surface texture blocks")
		}
		return nil
	})
}

// material converts the surface to a material record.
func (sf *surface) material() *material.Material {
	mt := material.New(sf.name)
	c := sf.color
	mt.Diffuse = colors.FromFloat32(c[0]*sf.diff, c[1]*sf.diff, c[2]*sf.diff, 1)
	if sf.spec > 0 {
		mt.Specular = colors.FromFloat32(sf.spec, sf.spec, sf.spec, 1)
		mt.SpecularPower = math32.Pow(2, 10*sf.glos+2)
	}
	mt.Emissive = colors.FromFloat32(c[0]*sf.lumi, c[1]*sf.lumi, c[2]*sf.lumi, 1)
	mt.Opacity = 1 - sf.tran
	return mt
}
