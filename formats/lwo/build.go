// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lwo

import (
	"fmt"

	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/material"
	"cogentcore.org/meshio/math32"
	"cogentcore.org/meshio/mesh"
	"cogentcore.org/meshio/scene"
)

// build builds the scene from the layers read.
func (d *decoder) build() (*scene.Scene, error) {
	sc := scene.New(d.opts.BaseName(Format))
	lib := material.NewLibrary()
	for _, sf := range d.surfaces {
		lib.Add(sf.material())
	}
	sc.Library = lib
	res := material.NewResolver(lib, Format, d.opts)
	for i, ly := range d.layers {
		g, err := d.buildLayer(i, ly, res)
		if err != nil {
			return nil, err
		}
		if len(g.Children) > 0 {
			sc.Root.Add(g)
		}
	}
	return sc, nil
}

// buildLayer builds the group of a layer, with one solid per surface.
// Polygons are stored clockwise and are reversed.
func (d *decoder) buildLayer(i int, ly *layer, res *material.Resolver) (*scene.Group, error) {
	name := ly.name
	if name == "" {
		name = fmt.Sprintf("layer%d", i+1)
	}
	g := scene.NewGroup(name)
	src := mesh.Source{Positions: ly.points}
	if len(ly.uvs) > 0 {
		src.TexCoords = make([]math32.Vector2, len(ly.points))
		for v, uv := range ly.uvs {
			if v < len(src.TexCoords) {
				src.TexCoords[v] = uv
			}
		}
	}

	// polygons by surface tag, in order of first use; -1 is untagged
	var order []int
	bySurf := map[int][]int{}
	for pi := range ly.polys {
		tag, ok := ly.tags[pi]
		if !ok {
			tag = -1
		}
		if _, seen := bySurf[tag]; !seen {
			order = append(order, tag)
		}
		bySurf[tag] = append(bySurf[tag], pi)
	}

	for _, tag := range order {
		var b mesh.Builder
		b.Cache.SetGroup(1)
		for _, pi := range bySurf[tag] {
			poly := ly.polys[pi]
			if len(poly) < 3 {
				d.unsupported("polygons with fewer than 3 vertices")
				continue
			}
			refs := make([]mesh.VertexRef, len(poly))
			for j, v := range poly {
				ref := mesh.VertexRef{Pos: v, Tex: -1, Norm: -1}
				if src.TexCoords != nil {
					ref.Tex = v
				}
				refs[len(poly)-1-j] = ref
			}
			if err := b.AddFace(&src, refs); err != nil {
				err = codec.OffsetError(Format, ly.offset, fmt.Errorf("layer %q polygon %d: %w", name, pi, err))
				if !d.opts.Ignore() {
					return nil, err
				}
				d.opts.Notes().Skipped(Format, err)
			}
		}
		if b.IsEmpty() {
			continue
		}
		sname := name
		if len(g.Children) > 0 {
			sname = fmt.Sprintf("%s_%d", name, len(g.Children))
		}
		ms := b.Mesh(sname)
		ms.ComputeNormals()
		mat := res.Default()
		if tag >= 0 && tag < len(d.tags) {
			mat = res.Resolve(d.tags[tag])
		}
		g.Add(scene.NewSolid(sname, ms, mat))
	}
	return g, nil
}
