// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "cogentcore.org/meshio/math32"

// Triangulate decomposes the polygon with the given vertices into
// len(pts)-2 triangles of indices into pts, keeping the winding of
// the polygon. It cuts ears from the polygon projected onto its
// dominant plane, which is exact for simple planar polygons.
// Non-planar or self-intersecting polygons get a best-effort result:
// when no ear is found the remainder is fanned.
func Triangulate(pts []math32.Vector3) [][3]int {
	n := len(pts)
	if n < 3 {
		return nil
	}
	if n == 3 {
		return [][3]int{{0, 1, 2}}
	}
	p2 := project(pts)

	// orientation of the projected polygon
	area := float32(0)
	for i := range n {
		area += p2[i].Cross(p2[(i+1)%n])
	}
	sign := float32(1)
	if area < 0 {
		sign = -1
	}

	vs := make([]int, n)
	for i := range vs {
		vs[i] = i
	}
	tris := make([][3]int, 0, n-2)
	for len(vs) > 3 {
		ear := -1
		for i := range vs {
			if isEar(p2, vs, i, sign) {
				ear = i
				break
			}
		}
		if ear < 0 {
			for k := 1; k < len(vs)-1; k++ {
				tris = append(tris, [3]int{vs[0], vs[k], vs[k+1]})
			}
			return tris
		}
		m := len(vs)
		tris = append(tris, [3]int{vs[(ear+m-1)%m], vs[ear], vs[(ear+1)%m]})
		vs = append(vs[:ear], vs[ear+1:]...)
	}
	return append(tris, [3]int{vs[0], vs[1], vs[2]})
}

// project drops the axis along which the Newell normal of the
// polygon is largest.
func project(pts []math32.Vector3) []math32.Vector2 {
	var nrm math32.Vector3
	n := len(pts)
	for i := range n {
		c, nx := pts[i], pts[(i+1)%n]
		nrm.X += (c.Y - nx.Y) * (c.Z + nx.Z)
		nrm.Y += (c.Z - nx.Z) * (c.X + nx.X)
		nrm.Z += (c.X - nx.X) * (c.Y + nx.Y)
	}
	ax, ay, az := math32.Abs(nrm.X), math32.Abs(nrm.Y), math32.Abs(nrm.Z)
	p2 := make([]math32.Vector2, n)
	for i, p := range pts {
		switch {
		case ax >= ay && ax >= az:
			p2[i] = math32.Vec2(p.Y, p.Z)
		case ay >= az:
			p2[i] = math32.Vec2(p.Z, p.X)
		default:
			p2[i] = math32.Vec2(p.X, p.Y)
		}
	}
	return p2
}

// isEar returns whether vertex i of the remaining polygon vs is convex
// and its triangle contains no other remaining vertex.
func isEar(p2 []math32.Vector2, vs []int, i int, sign float32) bool {
	m := len(vs)
	ia, ib, ic := vs[(i+m-1)%m], vs[i], vs[(i+1)%m]
	a, b, c := p2[ia], p2[ib], p2[ic]
	if sign*b.Sub(a).Cross(c.Sub(b)) <= 0 {
		return false
	}
	for _, j := range vs {
		if j == ia || j == ib || j == ic {
			continue
		}
		p := p2[j]
		if p == a || p == b || p == c {
			continue
		}
		if inTriangle(p, a, b, c, sign) {
			return false
		}
	}
	return true
}

// inTriangle returns whether p is inside or on the edge of the triangle abc
// of the given orientation.
func inTriangle(p, a, b, c math32.Vector2, sign float32) bool {
	return sign*b.Sub(a).Cross(p.Sub(a)) >= 0 &&
		sign*c.Sub(b).Cross(p.Sub(b)) >= 0 &&
		sign*a.Sub(c).Cross(p.Sub(c)) >= 0
}
