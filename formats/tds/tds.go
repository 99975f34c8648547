// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tds reads 3D Studio files (*.3ds): a little-endian tree of
// chunks, each a 16 bit id and a 32 bit size counting its 6 byte header.
// Meshes, materials and lights are read; cameras and keyframes are not.
package tds

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"io"

	"cogentcore.org/meshio/chunk"
	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/colors"
	"cogentcore.org/meshio/material"
	"cogentcore.org/meshio/math32"
	"cogentcore.org/meshio/scene"
)

// Format is the short name of the 3DS format.
const Format = "3ds"

// Chunk ids.
const (
	idMain        = 0x4D4D
	idVersion     = 0x0002
	idEdit        = 0x3D3D
	idObject      = 0x4000
	idTrimesh     = 0x4100
	idVertices    = 0x4110
	idFaces       = 0x4120
	idFaceMat     = 0x4130
	idMapping     = 0x4140
	idSmooth      = 0x4150
	idLocalMatrix = 0x4160
	idLight       = 0x4600
	idSpotlight   = 0x4610
	idLightOff    = 0x4620
	idCamera      = 0x4700
	idMaterial    = 0xAFFF
	idMatName     = 0xA000
	idMatAmbient  = 0xA010
	idMatDiffuse  = 0xA020
	idMatSpecular = 0xA030
	idMatShine    = 0xA040
	idMatTransp   = 0xA050
	idMatTexmap   = 0xA200
	idMatMapName  = 0xA300
	idMatMapUS    = 0xA354
	idMatMapVS    = 0xA356
	idMatMapUO    = 0xA358
	idMatMapVO    = 0xA35A
	idKeyframes   = 0xB000

	idColorF      = 0x0010
	idColor24     = 0x0011
	idColor24G    = 0x0012
	idColorFG     = 0x0013
	idPercentI    = 0x0030
	idPercentF    = 0x0031
)

// IsTDS returns whether data starts with a 3DS main chunk header.
func IsTDS(data []byte) bool {
	return len(data) >= 16 && binary.LittleEndian.Uint16(data) == idMain &&
		binary.LittleEndian.Uint16(data[6:]) == idVersion
}

// object is a mesh object as read, built once materials are known.
type object struct {
	name      string
	positions []math32.Vector3
	texCoords []math32.Vector2
	faces     [][3]uint16
	smooth    []uint32
	groups    []faceGroup
	matrix    *math32.Matrix4
	offset    int64
}

// faceGroup is a list of faces using a material.
type faceGroup struct {
	material string
	faces    []uint16
}

// decoder has the state of one 3DS read.
type decoder struct {
	cr      *chunk.Reader
	opts    *codec.Options
	lib     *material.Library
	objects []*object
	lights  []scene.Light
	noted   map[string]bool
}

// Read reads a 3DS file into a scene with one group per mesh object,
// holding one solid per material used by the object. The main chunk
// must span the whole input.
func Read(r io.Reader, opts *codec.Options) (*scene.Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	total := int64(len(data))
	d := &decoder{
		cr:    chunk.NewReader(bytes.NewReader(data), binary.LittleEndian, total).SetFormat(Format),
		opts:  opts,
		lib:   material.NewLibrary(),
		noted: map[string]bool{},
	}
	h := chunk.ReadHeader2(d.cr)
	if err := d.cr.Err(); err != nil {
		return nil, err
	}
	if h.ID != idMain {
		return nil, d.cr.Fail("not a 3DS file: first chunk %s", h.Name())
	}
	if end := h.End(chunk.SizeIncludesHeader); end != total {
		return nil, codec.OffsetError(Format, 2, codec.Errorf(codec.ErrLengthMismatch, "main chunk size %d, file size %d", h.Size, total))
	}
	err = d.cr.Walk(total, chunk.SizeIncludesHeader, chunk.ReadHeader2, d.main)
	if err != nil {
		return nil, err
	}
	if err := d.cr.ExpectEnd(total); err != nil {
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

func (d *decoder) main(h chunk.Header) error {
	switch h.ID {
	case idEdit:
		return d.walk(h, d.edit)
	case idKeyframes:
		d.unsupported("keyframes")
	}
	return nil
}

// walk walks the sub-chunks of h, whose payload starts at the
// current offset.
func (d *decoder) walk(h chunk.Header, fn func(h chunk.Header) error) error {
	return d.cr.Walk(h.End(chunk.SizeIncludesHeader), chunk.SizeIncludesHeader, chunk.ReadHeader2, fn)
}

func (d *decoder) edit(h chunk.Header) error {
	switch h.ID {
	case idObject:
		return d.readObject(h)
	case idMaterial:
		mt := material.New("")
		if err := d.walk(h, func(h chunk.Header) error { return d.readMaterial(mt, h) }); err != nil {
			return err
		}
		d.lib.Add(mt)
	}
	return nil
}

func (d *decoder) readObject(h chunk.Header) error {
	name := d.cr.CString()
	return d.walk(h, func(h chunk.Header) error {
		switch h.ID {
		case idTrimesh:
			obj := &object{name: name, offset: h.Start}
			if err := d.walk(h, func(h chunk.Header) error { return d.readTrimesh(obj, h) }); err != nil {
				return err
			}
			d.objects = append(d.objects, obj)
		case idLight:
			return d.readLight(name, h)
		case idCamera:
			d.unsupported("cameras")
		}
		return nil
	})
}

func (d *decoder) readVec3() math32.Vector3 {
	return math32.Vec3(d.cr.F32(), d.cr.F32(), d.cr.F32())
}

func (d *decoder) readTrimesh(obj *object, h chunk.Header) error {
	cr := d.cr
	switch h.ID {
	case idVertices:
		n := int(cr.U16())
		obj.positions = make([]math32.Vector3, 0, n)
		for range n {
			obj.positions = append(obj.positions, d.readVec3())
		}
	case idMapping:
		n := int(cr.U16())
		obj.texCoords = make([]math32.Vector2, 0, n)
		for range n {
			u, v := cr.F32(), cr.F32()
			obj.texCoords = append(obj.texCoords, math32.Vec2(u, 1-v))
		}
	case idLocalMatrix:
		var v [4]math32.Vector3
		for i := range v {
			v[i] = d.readVec3()
		}
		m := &math32.Matrix4{}
		m.Set(v[0].X, v[1].X, v[2].X, v[3].X,
			v[0].Y, v[1].Y, v[2].Y, v[3].Y,
			v[0].Z, v[1].Z, v[2].Z, v[3].Z,
			0, 0, 0, 1)
		obj.matrix = m
	case idFaces:
		n := int(cr.U16())
		obj.faces = make([][3]uint16, 0, n)
		for range n {
			f := [3]uint16{cr.U16(), cr.U16(), cr.U16()}
			cr.U16() // edge visibility flags
			obj.faces = append(obj.faces, f)
		}
		return d.walk(h, func(h chunk.Header) error {
			switch h.ID {
			case idFaceMat:
				g := faceGroup{material: cr.CString()}
				n := int(cr.U16())
				g.faces = make([]uint16, 0, n)
				for range n {
					g.faces = append(g.faces, cr.U16())
				}
				obj.groups = append(obj.groups, g)
			case idSmooth:
				obj.smooth = make([]uint32, 0, len(obj.faces))
				for range obj.faces {
					obj.smooth = append(obj.smooth, cr.U32())
				}
			}
			return nil
		})
	}
	return cr.Err()
}

// readColor reads the first color sub-chunk of h.
func (d *decoder) readColor(h chunk.Header) (color.RGBA, error) {
	var c color.RGBA
	found := false
	err := d.walk(h, func(h chunk.Header) error {
		if found {
			return nil
		}
		switch h.ID {
		case idColorF, idColorFG:
			c = colors.FromFloat32(d.cr.F32(), d.cr.F32(), d.cr.F32(), 1)
			found = true
		case idColor24, idColor24G:
			c = color.RGBA{d.cr.U8(), d.cr.U8(), d.cr.U8(), 255}
			found = true
		}
		return nil
	})
	return c, err
}

// readPercent reads the percentage sub-chunk of h as a 0-1 fraction.
func (d *decoder) readPercent(h chunk.Header) (float32, error) {
	var pct float32
	err := d.walk(h, func(h chunk.Header) error {
		switch h.ID {
		case idPercentI:
			pct = float32(d.cr.I16()) / 100
		case idPercentF:
			pct = d.cr.F32() / 100
		}
		return nil
	})
	return pct, err
}

func (d *decoder) readMaterial(mt *material.Material, h chunk.Header) error {
	var err error
	switch h.ID {
	case idMatName:
		mt.Name = d.cr.CString()
	case idMatAmbient:
		mt.Ambient, err = d.readColor(h)
	case idMatDiffuse:
		mt.Diffuse, err = d.readColor(h)
	case idMatSpecular:
		mt.Specular, err = d.readColor(h)
	case idMatShine:
		var pct float32
		pct, err = d.readPercent(h)
		mt.SpecularPower = pct * 128
	case idMatTransp:
		var pct float32
		pct, err = d.readPercent(h)
		mt.Opacity = 1 - pct
	case idMatTexmap:
		err = d.walk(h, func(h chunk.Header) error {
			switch h.ID {
			case idMatMapName:
				mt.DiffuseMap = d.cr.CString()
			case idMatMapUS:
				mt.Tiling.Repeat.X = d.cr.F32()
			case idMatMapVS:
				mt.Tiling.Repeat.Y = d.cr.F32()
			case idMatMapUO:
				mt.Tiling.Off.X = d.cr.F32()
			case idMatMapVO:
				mt.Tiling.Off.Y = d.cr.F32()
			}
			return nil
		})
	}
	if err != nil {
		return err
	}
	return d.cr.Err()
}

func (d *decoder) readLight(name string, h chunk.Header) error {
	pos := d.readVec3()
	clr := colors.White
	var spot *scene.SpotLight
	off := false
	err := d.walk(h, func(sh chunk.Header) error {
		switch sh.ID {
		case idColorF, idColorFG:
			clr = colors.FromFloat32(d.cr.F32(), d.cr.F32(), d.cr.F32(), 1)
		case idColor24, idColor24G:
			clr = color.RGBA{d.cr.U8(), d.cr.U8(), d.cr.U8(), 255}
		case idSpotlight:
			target := d.readVec3()
			hotspot, falloff := d.cr.F32(), d.cr.F32()
			spot = scene.NewSpotLight(name, colors.White, 1, pos, target.Sub(pos).Normal())
			spot.InnerAngle = hotspot / 2
			spot.OuterAngle = falloff / 2
		case idLightOff:
			off = true
		}
		return nil
	})
	if err != nil {
		return err
	}
	if off {
		return nil
	}
	if spot != nil {
		spot.Color = clr
		d.lights = append(d.lights, spot)
		return nil
	}
	d.lights = append(d.lights, scene.NewPointLight(name, clr, 1, pos))
	return nil
}
