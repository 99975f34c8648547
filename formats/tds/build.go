// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tds

import (
	"fmt"

	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/material"
	"cogentcore.org/meshio/math32"
	"cogentcore.org/meshio/mesh"
	"cogentcore.org/meshio/scene"
)

// build builds the scene from the objects read.
func (d *decoder) build() (*scene.Scene, error) {
	sc := scene.New(d.opts.BaseName(Format))
	sc.Library = d.lib
	res := material.NewResolver(d.lib, Format, d.opts)
	for _, obj := range d.objects {
		g, err := d.buildObject(obj, res)
		if err != nil {
			return nil, err
		}
		if g != nil {
			sc.Root.Add(g)
		}
	}
	for _, l := range d.lights {
		sc.Root.Add(l)
	}
	return sc, nil
}

// buildObject builds the group of an object, with one solid per
// material group and one for faces not in any group. Vertices are
// stored in world coordinates; with a local matrix they are moved to
// object coordinates and the matrix becomes the group pose.
func (d *decoder) buildObject(obj *object, res *material.Resolver) (*scene.Group, error) {
	for _, f := range obj.faces {
		for _, ix := range f {
			if int(ix) >= len(obj.positions) {
				err := codec.OffsetError(Format, obj.offset, codec.Errorf(codec.ErrInvalidIndex,
					"object %q: vertex %d out of range [0, %d)", obj.name, ix, len(obj.positions)))
				if !d.opts.Ignore() {
					return nil, err
				}
				d.opts.Notes().Skipped(Format, err)
				return nil, nil
			}
		}
	}
	g := scene.NewGroup(obj.name)
	src := mesh.Source{Positions: obj.positions}
	if len(obj.texCoords) == len(obj.positions) {
		src.TexCoords = obj.texCoords
	}
	if obj.matrix != nil && !obj.matrix.IsIdentity() {
		inv, err := obj.matrix.Inverse()
		if err == nil {
			src.Positions = make([]math32.Vector3, len(obj.positions))
			for i, p := range obj.positions {
				src.Positions[i] = p.MulMatrix4(inv)
			}
			g.Pose.SetMatrix(obj.matrix)
		}
	}

	used := make([]bool, len(obj.faces))
	groups := obj.groups
	for _, fg := range groups {
		for _, fi := range fg.faces {
			if int(fi) < len(used) {
				used[fi] = true
			}
		}
	}
	var rest []uint16
	for fi, u := range used {
		if !u {
			rest = append(rest, uint16(fi))
		}
	}
	if len(rest) > 0 {
		groups = append([]faceGroup{{faces: rest}}, groups...)
	}

	for _, fg := range groups {
		var b mesh.Builder
		for _, fi := range fg.faces {
			if int(fi) >= len(obj.faces) {
				continue
			}
			// faces sharing a smoothing mask share vertices
			group := 0
			if int(fi) < len(obj.smooth) {
				group = int(obj.smooth[fi])
			}
			b.Cache.SetGroup(group)
			f := obj.faces[fi]
			refs := make([]mesh.VertexRef, 3)
			for i, ix := range f {
				refs[i] = mesh.VertexRef{Pos: int(ix), Tex: -1, Norm: -1}
				if src.TexCoords != nil {
					refs[i].Tex = int(ix)
				}
			}
			if err := b.AddFace(&src, refs); err != nil {
				return nil, codec.OffsetError(Format, obj.offset, err)
			}
		}
		if b.IsEmpty() {
			continue
		}
		name := obj.name
		if len(g.Children) > 0 {
			name = fmt.Sprintf("%s_%d", obj.name, len(g.Children))
		}
		ms := b.Mesh(name)
		ms.ComputeNormals()
		mat := res.Default()
		if fg.material != "" {
			mat = res.Resolve(fg.material)
		}
		g.Add(scene.NewSolid(name, ms, mat))
	}
	return g, nil
}
