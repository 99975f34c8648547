// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"image/color"

	"cogentcore.org/meshio/material"
	"cogentcore.org/meshio/math32"
	"cogentcore.org/meshio/mesh"
)

// Node is an element of the scene tree: a [*Group], a [*Solid],
// or a light ([*AmbientLight], [*DirLight], [*PointLight], [*SpotLight]).
type Node interface {

	// AsNodeBase returns the [NodeBase] of the node.
	AsNodeBase() *NodeBase
}

// NodeBase is the part common to all nodes.
type NodeBase struct {
	Name string

	// Pose is the transform relative to the parent.
	Pose Pose

	// Children are the child nodes, in order. Lights have none.
	Children []Node
}

func (nb *NodeBase) AsNodeBase() *NodeBase {
	return nb
}

// Add appends the children.
func (nb *NodeBase) Add(children ...Node) {
	nb.Children = append(nb.Children, children...)
}

// Group is a named node that only holds children.
type Group struct {
	NodeBase
}

// NewGroup returns a new group with the given name.
func NewGroup(name string) *Group {
	return &Group{NodeBase{Name: name}}
}

// Solid is a mesh with a material.
type Solid struct {
	NodeBase

	// Mesh is the geometry, shared by solids that instance it.
	Mesh *mesh.Mesh

	// Material is the surface, shared by solids that use it.
	Material material.Layer
}

// NewSolid returns a new solid with the given name, mesh and material.
func NewSolid(name string, ms *mesh.Mesh, mat material.Layer) *Solid {
	return &Solid{NodeBase: NodeBase{Name: name}, Mesh: ms, Material: mat}
}

// Light is a light node.
type Light interface {
	Node

	// AsLightBase returns the [LightBase] of the light.
	AsLightBase() *LightBase
}

// LightBase is the part common to all lights.
type LightBase struct {
	NodeBase

	// Color of the light at full intensity.
	Color color.RGBA

	// Lumens is the intensity, in normalized 0-1 units, by which Color is multiplied.
	Lumens float32
}

func (lb *LightBase) AsLightBase() *LightBase {
	return lb
}

// Intensity returns the color multiplied by the lumens, as floats.
func (lb *LightBase) Intensity() (r, g, b float32) {
	return float32(lb.Color.R) / 255 * lb.Lumens, float32(lb.Color.G) / 255 * lb.Lumens, float32(lb.Color.B) / 255 * lb.Lumens
}

// AmbientLight is uniform light from all directions.
type AmbientLight struct {
	LightBase
}

// DirLight is a light at infinity shining in a direction, like the sun.
type DirLight struct {
	LightBase

	// Direction the light travels in, in the light's coordinates.
	Direction math32.Vector3
}

// Attenuation divides the intensity of a light at distance d by
// Constant + Linear*d + Quadratic*d*d.
type Attenuation struct {
	Constant, Linear, Quadratic float32
}

// PointLight is a light at a position shining in all directions.
type PointLight struct {
	LightBase

	// Pos of the light, in the light's coordinates.
	Pos math32.Vector3

	Attenuation Attenuation
}

// SpotLight is a light at a position shining a cone in a direction.
type SpotLight struct {
	LightBase

	// Pos of the light, in the light's coordinates.
	Pos math32.Vector3

	// Direction of the cone axis, in the light's coordinates.
	Direction math32.Vector3

	Attenuation Attenuation

	// InnerAngle is the half angle of the fully lit cone, in degrees.
	InnerAngle float32

	// OuterAngle is the half angle where the light falls to zero, in degrees.
	OuterAngle float32
}

// NewAmbientLight returns a new ambient light.
func NewAmbientLight(name string, clr color.RGBA, lumens float32) *AmbientLight {
	return &AmbientLight{lightBase(name, clr, lumens)}
}

// NewDirLight returns a new directional light shining along dir.
func NewDirLight(name string, clr color.RGBA, lumens float32, dir math32.Vector3) *DirLight {
	return &DirLight{LightBase: lightBase(name, clr, lumens), Direction: dir}
}

// NewPointLight returns a new point light at pos with no attenuation.
func NewPointLight(name string, clr color.RGBA, lumens float32, pos math32.Vector3) *PointLight {
	return &PointLight{LightBase: lightBase(name, clr, lumens), Pos: pos, Attenuation: Attenuation{Constant: 1}}
}

// NewSpotLight returns a new spot light at pos shining along dir,
// with a 30 degree inner and 45 degree outer cone.
func NewSpotLight(name string, clr color.RGBA, lumens float32, pos, dir math32.Vector3) *SpotLight {
	return &SpotLight{LightBase: lightBase(name, clr, lumens), Pos: pos, Direction: dir,
		Attenuation: Attenuation{Constant: 1}, InnerAngle: 30, OuterAngle: 45}
}

func lightBase(name string, clr color.RGBA, lumens float32) LightBase {
	return LightBase{NodeBase: NodeBase{Name: name}, Color: clr, Lumens: lumens}
}
