// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

// VertexKey identifies a face vertex by its source attribute indices,
// -1 for an absent attribute.
type VertexKey struct {
	Pos, Tex, Norm int
}

// VertexCache maps face vertex keys to emitted vertex indices,
// scoped to the active smoothing group. Group 0 is "off":
// it never shares vertices.
type VertexCache struct {
	group  int
	groups map[int]map[VertexKey]uint32
}

// SetGroup sets the active smoothing group.
func (vc *VertexCache) SetGroup(id int) {
	vc.group = id
}

// Group returns the active smoothing group.
func (vc *VertexCache) Group() int {
	return vc.group
}

// Lookup returns the vertex emitted for k in the active group.
func (vc *VertexCache) Lookup(k VertexKey) (uint32, bool) {
	if vc.group == 0 {
		return 0, false
	}
	idx, ok := vc.groups[vc.group][k]
	return idx, ok
}

// Insert records the vertex emitted for k in the active group.
func (vc *VertexCache) Insert(k VertexKey, idx uint32) {
	if vc.group == 0 {
		return
	}
	if vc.groups == nil {
		vc.groups = make(map[int]map[VertexKey]uint32)
	}
	g := vc.groups[vc.group]
	if g == nil {
		g = make(map[VertexKey]uint32)
		vc.groups[vc.group] = g
	}
	g[k] = idx
}

// Clear drops the vertices of all groups, keeping the active group id.
func (vc *VertexCache) Clear() {
	vc.groups = nil
}
