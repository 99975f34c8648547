// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kerkythea

import (
	"bytes"
	"encoding/xml"
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

type root struct {
	XMLName xml.Name  `xml:"Root"`
	Label   string    `xml:"Label,attr"`
	Objects []*object `xml:"Object"`
}

func child(t *testing.T, o *object, name string) *object {
	t.Helper()
	for _, c := range o.Objects {
		if c.Name == name {
			return c
		}
	}
	require.Failf(t, "missing object", "%q in %q", name, o.Name)
	return nil
}

func paramOf(t *testing.T, o *object, name string) param {
	t.Helper()
	for _, p := range o.Params {
		if p.Name == name {
			return p
		}
	}
	require.Failf(t, "missing parameter", "%q in %q", name, o.Name)
	return param{}
}

func TestWrite(t *testing.T) {
	tri := &mesh.Mesh{
		Name:      "tri",
		Positions: []math32.Vector3{{}, {X: 1}, {Y: 1}},
		TexCoords: []math32.Vector2{{}, {X: 1}, {Y: 1}},
		Indices:   []uint32{0, 1, 2},
	}
	red := material.New("red")
	red.Diffuse = colors.FromFloat32(1, 0, 0, 1)

	sc := scene.New("world")
	a := scene.NewSolid("a", tri, material.FromRecord(red))
	a.Pose.Pos = math32.Vec3(1, 2, 3)
	sc.Root.Add(a, scene.NewSolid("b", tri, nil))
	sc.Root.Add(scene.NewPointLight("lamp", colors.White, 1, math32.Vec3(1, 2, 3)))
	sc.Root.Add(scene.NewAmbientLight("amb", colors.White, 0.25))
	sc.Root.Add(scene.NewDirLight("sun", colors.White, 1, math32.Vec3(0, -1, 0)))

	notes := &codec.Notices{}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sc, &codec.Options{Notices: notes}))
	assert.Equal(t, 1, notes.Count(codec.ErrUnsupportedFeature))

	var doc root
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "Default Kernel", doc.Label)
	require.Len(t, doc.Objects, 1)
	modeller := doc.Objects[0]
	assert.Equal(t, "Modeller", modeller.Type)
	require.Len(t, modeller.Objects, 1)
	world := modeller.Objects[0]
	assert.Equal(t, "Scene", world.Type)
	assert.Equal(t, "Camera", paramOf(t, world, "./Cameras/Active").Value)
	assert.Equal(t, "0.25 0.25 0.25", paramOf(t, world, "./Global Settings/Ambient Light").Value)
	assert.Equal(t, "Camera", child(t, world, "Camera").Type)

	ma := child(t, world, "a")
	assert.Equal(t, "Model", ma.Type)
	assert.Equal(t, "1 0 0 1 0 0 -1 -3 0 1 0 2", paramOf(t, ma, "Frame").Value)
	require.Len(t, ma.Objects, 2)
	surf := ma.Objects[0]
	assert.Equal(t, "Triangular Mesh", surf.Identifier)
	verts := paramOf(t, surf, "Vertex List")
	assert.Equal(t, "3", verts.Value)
	assert.Equal(t, []point{{XYZ: "0 0 0"}, {XYZ: "1 0 0"}, {XYZ: "0 1 0"}}, verts.Points)
	assert.Equal(t, []face{{IJK: "0 1 2"}}, paramOf(t, surf, "Index List").Faces)
	assert.Equal(t, []point{{XY: "0 1"}, {XY: "1 1"}, {XY: "0 0"}}, paramOf(t, surf, "Map Channel").Points)

	mat := child(t, ma, "red")
	assert.Equal(t, "Whitted Material", mat.Identifier)
	require.Len(t, mat.Objects, 1)
	assert.Equal(t, "./Diffuse/Constant Texture", mat.Objects[0].Identifier)
	assert.Equal(t, "1 0 0", paramOf(t, mat.Objects[0], "Color").Value)

	def := child(t, child(t, world, "b"), "default")
	assert.Equal(t, "30", paramOf(t, def, "Shininess").Value)
	require.Len(t, def.Objects, 2)
	assert.Equal(t, "./Specular/Constant Texture", def.Objects[1].Identifier)

	lamp := child(t, world, "lamp")
	assert.Equal(t, "Light", lamp.Type)
	require.Len(t, lamp.Objects, 1)
	assert.Equal(t, "Omni Light", lamp.Objects[0].Identifier)
	assert.Equal(t, "None", paramOf(t, lamp.Objects[0], "Attenuation").Value)
	fr := strings.Fields(paramOf(t, lamp, "Frame").Value)
	require.Len(t, fr, 12)
	assert.Equal(t, []string{"1", "-3", "2"}, []string{fr[3], fr[7], fr[11]})

	for _, o := range world.Objects {
		assert.NotEqual(t, "sun", o.Name)
		assert.NotEqual(t, "amb", o.Name)
	}
}

func TestWriteTransparent(t *testing.T) {
	glass := material.New("glass")
	glass.Opacity = 0.25
	glass.RefractionIndex = 1.5
	glass.DiffuseMap = "glass.png"
	tri := &mesh.Mesh{Positions: []math32.Vector3{{}, {X: 1}, {Y: 1}}, Indices: []uint32{0, 1, 2}}
	sc := scene.New("world")
	sc.Root.Add(scene.NewSolid("a", tri, material.FromRecord(glass)))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sc, nil))
	var doc root
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	mat := child(t, child(t, doc.Objects[0].Objects[0], "a"), "glass")
	require.Len(t, mat.Objects, 2)
	assert.Equal(t, "./Diffuse/Bitmap Texture", mat.Objects[0].Identifier)
	assert.Equal(t, "glass.png", paramOf(t, mat.Objects[0], "Filename").Value)
	assert.Equal(t, "./Transmitted/Constant Texture", mat.Objects[1].Identifier)
	assert.Equal(t, "1.5", paramOf(t, mat, "Index of Refraction").Value)
	assert.NotContains(t, buf.String(), "Ambient Light")
}
