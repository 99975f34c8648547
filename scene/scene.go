// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene provides the scene graph that format readers produce
// and writers consume: a tree of groups, solids and lights with
// local poses, and its depth-first traversal with world transforms.
package scene

import (
	"fmt"

	"cogentcore.org/meshio/material"
	"cogentcore.org/meshio/math32"
)

// Scene is a scene graph together with the material definitions
// it was read with.
type Scene struct {

	// Root is the top of the tree.
	Root *Group

	// Library has the material definitions of the source file, if any.
	Library *material.Library
}

// New returns a new scene with an empty root group of the given name.
func New(name string) *Scene {
	return &Scene{Root: NewGroup(name)}
}

// Name returns the name of the root group.
func (sc *Scene) Name() string {
	return sc.Root.Name
}

// WalkFunc is called for each node with its world transform.
// Returning false skips the children of the node.
type WalkFunc func(n Node, world *math32.Matrix4) bool

// Walk visits root and its descendants depth-first in pre-order,
// children in order, passing each node's world transform: the
// parent's world transform times the node's local pose.
func Walk(root Node, fn WalkFunc) {
	walk(root, math32.Identity4(), fn)
}

func walk(n Node, parent *math32.Matrix4, fn WalkFunc) {
	nb := n.AsNodeBase()
	world := &math32.Matrix4{}
	world.MulMatrices(parent, nb.Pose.Matrix())
	if !fn(n, world) {
		return
	}
	for _, c := range nb.Children {
		walk(c, world, fn)
	}
}

// Walk visits the nodes of the scene; see [Walk].
func (sc *Scene) Walk(fn WalkFunc) {
	Walk(sc.Root, fn)
}

// Solids returns the solids in traversal order.
func (sc *Scene) Solids() []*Solid {
	var sls []*Solid
	sc.Walk(func(n Node, world *math32.Matrix4) bool {
		if s, ok := n.(*Solid); ok {
			sls = append(sls, s)
		}
		return true
	})
	return sls
}

// Lights returns the lights in traversal order.
func (sc *Scene) Lights() []Light {
	var lts []Light
	sc.Walk(func(n Node, world *math32.Matrix4) bool {
		if l, ok := n.(Light); ok {
			lts = append(lts, l)
		}
		return true
	})
	return lts
}

// Layers returns the distinct materials of the solids, in order of first use.
func (sc *Scene) Layers() []material.Layer {
	var ls []material.Layer
	seen := map[material.Layer]bool{}
	for _, s := range sc.Solids() {
		if s.Material == nil || seen[s.Material] {
			continue
		}
		seen[s.Material] = true
		ls = append(ls, s.Material)
	}
	return ls
}

// NumVertices returns the total number of vertices of the solids.
func (sc *Scene) NumVertices() int {
	n := 0
	for _, s := range sc.Solids() {
		if s.Mesh != nil {
			n += s.Mesh.NumVertices()
		}
	}
	return n
}

// NumTriangles returns the total number of triangles of the solids.
func (sc *Scene) NumTriangles() int {
	n := 0
	for _, s := range sc.Solids() {
		if s.Mesh != nil {
			n += s.Mesh.NumTriangles()
		}
	}
	return n
}

// BBox returns the bounding box of the solids in world coordinates.
func (sc *Scene) BBox() math32.Box3 {
	bb := math32.B3Empty()
	sc.Walk(func(n Node, world *math32.Matrix4) bool {
		if s, ok := n.(*Solid); ok && s.Mesh != nil && s.Mesh.NumVertices() > 0 {
			bb.ExpandByBox(s.Mesh.BBox().MulMatrix4(world))
		}
		return true
	})
	return bb
}

// Clone returns a copy of the scene tree. Meshes, material layers
// and the library are immutable once read and are shared.
func (sc *Scene) Clone() *Scene {
	return &Scene{Root: CloneNode(sc.Root).(*Group), Library: sc.Library}
}

// CloneNode returns a copy of the node and its descendants.
func CloneNode(n Node) Node {
	var c Node
	switch n := n.(type) {
	case *Group:
		nc := *n
		c = &nc
	case *Solid:
		nc := *n
		c = &nc
	case *AmbientLight:
		nc := *n
		c = &nc
	case *DirLight:
		nc := *n
		c = &nc
	case *PointLight:
		nc := *n
		c = &nc
	case *SpotLight:
		nc := *n
		c = &nc
	default:
		panic(fmt.Sprintf("scene: unknown node type %T", n))
	}
	cb := c.AsNodeBase()
	cb.Children = nil
	for _, ch := range n.AsNodeBase().Children {
		cb.Children = append(cb.Children, CloneNode(ch))
	}
	return c
}
