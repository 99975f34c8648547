// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"bytes"
	"encoding/xml"

	"cogentcore.org/meshio/math32"
	"cogentcore.org/meshio/scene"
)

// Instance is a solid or light of the scene with its world transform.
type Instance struct {
	Solid *scene.Solid
	Light scene.Light
	World *math32.Matrix4
}

// Collector records the solids and lights visited by [Run], for
// formats that declare all resources before the scene that uses them.
// Writers embed it and do their output in Footer.
type Collector struct {
	Solids []Instance
	Lights []Instance
}

func (c *Collector) Solid(s *scene.Solid, world *math32.Matrix4) error {
	c.Solids = append(c.Solids, Instance{Solid: s, World: world})
	return nil
}

func (c *Collector) Light(l scene.Light, world *math32.Matrix4) error {
	c.Lights = append(c.Lights, Instance{Light: l, World: world})
	return nil
}

// LightPos returns the position of a point or spot light in world
// coordinates, and the world origin of the light for other lights.
func LightPos(l scene.Light, world *math32.Matrix4) math32.Vector3 {
	var p math32.Vector3
	switch l := l.(type) {
	case *scene.PointLight:
		p = l.Pos
	case *scene.SpotLight:
		p = l.Pos
	}
	return p.MulMatrix4(world)
}

// LightDir returns the unit direction of a directional or spot light
// in world coordinates, and -Z for other lights.
func LightDir(l scene.Light, world *math32.Matrix4) math32.Vector3 {
	d := math32.Vec3(0, 0, -1)
	switch l := l.(type) {
	case *scene.DirLight:
		d = l.Direction
	case *scene.SpotLight:
		d = l.Direction
	}
	d = d.MulMatrix4AsVector4(world, 0)
	if d.IsNil() {
		return math32.Vec3(0, 0, -1)
	}
	return d.Normal()
}

// LightFrame returns a transform that places a light shining along
// -Z at the world position and direction of l. Formats that orient
// lights by their node transform use it.
func LightFrame(l scene.Light, world *math32.Matrix4) *math32.Matrix4 {
	var q math32.Quat
	q.SetFromUnitVectors(math32.Vec3(0, 0, -1), LightDir(l, world))
	m := &math32.Matrix4{}
	m.SetTransform(LightPos(l, world), q, math32.Vec3(1, 1, 1))
	return m
}

// TRS is a transform decomposed into a translation, a rotation about
// an axis and a scale, as VRML and X3D transforms are written.
type TRS struct {
	Translation math32.Vector3
	Axis        math32.Vector3

	// Angle of the rotation, in radians.
	Angle float32

	Scale math32.Vector3
}

// Decompose returns the translation, rotation and scale of m.
// Shear, which these cannot express, is lost.
func Decompose(m *math32.Matrix4) TRS {
	pos, q, scale := m.Decompose()
	axis, angle := q.ToAxisAngle()
	return TRS{Translation: pos, Axis: axis, Angle: angle, Scale: scale}
}

// XMLText escapes s for use in XML text or attribute values.
func XMLText(s string) string {
	var b bytes.Buffer
	xml.EscapeText(&b, []byte(s))
	return b.String()
}
