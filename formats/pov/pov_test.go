// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pov

import (
	"bytes"
	"strings"
	"testing"

	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/colors"
	"cogentcore.org/meshio/material"
	"cogentcore.org/meshio/math32"
	"cogentcore.org/meshio/mesh"
	"cogentcore.org/meshio/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangle() *mesh.Mesh {
	return &mesh.Mesh{
		Name:      "tri",
		Positions: []math32.Vector3{{}, {X: 1}, {Y: 1}},
		TexCoords: []math32.Vector2{{}, {X: 1}, {Y: 1}},
		Indices:   []uint32{0, 1, 2},
	}
}

func TestWrite(t *testing.T) {
	tri := triangle()
	wood := material.New("wood")
	wood.DiffuseMap = "wood.jpg"
	woodL := material.FromRecord(wood)

	sc := scene.New("world")
	b := scene.NewSolid("b", tri, woodL)
	b.Pose.Pos = math32.Vec3(1, 2, 3)
	sc.Root.Add(scene.NewSolid("a", tri, woodL), b, scene.NewSolid("c", tri, nil))
	sc.Root.Add(scene.NewSpotLight("spot", colors.White, 1, math32.Vec3(0, 4, 1), math32.Vec3(0, -1, 0)))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sc, nil))
	out := buf.String()

	assert.Contains(t, out, "#version 3.7;")
	assert.Contains(t, out, "camera {")
	assert.Equal(t, 1, strings.Count(out, "#declare M_tri = mesh2 {"))
	assert.Contains(t, out, "vertex_vectors { 3,\n    <0, 0, 0>,\n    <1, 0, 0>,\n    <0, 1, 0>,\n  }")
	assert.Contains(t, out, "uv_vectors { 3,\n    <0, 1>,\n    <1, 1>,\n    <0, 0>,\n  }")
	assert.Contains(t, out, "face_indices { 1,\n    <0, 1, 2>,\n  }")

	assert.Equal(t, 1, strings.Count(out, "#declare T_wood = texture {"))
	assert.Contains(t, out, `uv_mapping image_map { jpeg "wood.jpg" interpolate 2 }`)
	assert.Contains(t, out, "#declare T_default = texture {")
	assert.Contains(t, out, "roughness")

	assert.Equal(t, 3, strings.Count(out, "object {"))
	assert.Contains(t, out, "matrix <1, 0, 0, 0, 1, 0, 0, 0, 1, 1, 2, 3>\n  scale <1, 1, -1>")

	assert.Contains(t, out, "<0, 4, -1> rgb <1, 1, 1>\n  spotlight\n  point_at <0, 3, -1>\n  radius 30\n  falloff 45\n")
	assert.NotContains(t, out, "camera_location")
}

func TestWriteDefaultLight(t *testing.T) {
	red := material.New("red")
	red.Diffuse = colors.FromFloat32(1, 0, 0, 1)
	red.Opacity = 0.5
	red.DiffuseMap = "red.webp"
	sc := scene.New("world")
	sc.Root.Add(scene.NewSolid("a", triangle(), material.FromRecord(red)))
	sc.Root.Add(scene.NewAmbientLight("amb", colors.White, 0.25))

	notes := &codec.Notices{}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sc, &codec.Options{Notices: notes}))
	out := buf.String()
	assert.Contains(t, out, "pigment { rgbt <1, 0, 0, 0.5> }")
	assert.Contains(t, out, "global_settings { ambient_light rgb <0.25, 0.25, 0.25> }")
	assert.Contains(t, out, "light_source { camera_location rgb 1 }")
	assert.Equal(t, 1, notes.Count(codec.ErrUnsupportedFeature))
}

func TestImageKind(t *testing.T) {
	assert.Equal(t, "png", imageKind("a.PNG"))
	assert.Equal(t, "jpeg", imageKind("a.jpg"))
	assert.Equal(t, "tiff", imageKind("a.tif"))
	assert.Equal(t, "", imageKind("a.webp"))
	assert.Equal(t, "", imageKind(""))
}
