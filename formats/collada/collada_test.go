// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collada

import (
	"bytes"
	"encoding/xml"
	"testing"

	"cogentcore.org/meshio/codec"
	"cogentcore.org/meshio/colors"
	"cogentcore.org/meshio/colors/gradient"
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

func testScene() *scene.Scene {
	tri := triangle()
	red := material.New("red")
	red.Diffuse = colors.FromFloat32(1, 0, 0, 1)
	redL := material.FromRecord(red)

	sc := scene.New("world")
	a := scene.NewSolid("a", tri, redL)
	b := scene.NewSolid("b", tri, redL)
	b.Pose.Pos = math32.Vec3(5, 0, 0)
	sc.Root.Add(a, b, scene.NewSolid("c", tri, nil))
	sc.Root.Add(scene.NewSpotLight("spot", colors.White, 1, math32.Vec3(0, 4, 0), math32.Vec3(0, -1, 0)))
	return sc
}

func decode(t *testing.T, data []byte) *document {
	doc := &document{}
	require.NoError(t, xml.Unmarshal(data, doc))
	return doc
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testScene(), nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte(xml.Header)))

	doc := decode(t, buf.Bytes())
	assert.Equal(t, "1.4.1", doc.Version)
	assert.Equal(t, "Y_UP", doc.Asset.UpAxis)

	require.Len(t, doc.Geometries, 1)
	g := doc.Geometries[0]
	assert.Equal(t, "tri-mesh", g.ID)
	assert.Equal(t, "0 1 2", g.Mesh.Triangles.P)
	assert.Equal(t, 1, g.Mesh.Triangles.Count)
	require.Len(t, g.Mesh.Sources, 2)
	assert.Equal(t, "0 0 0 1 0 0 0 1 0", g.Mesh.Sources[0].Array.Data)
	assert.Equal(t, "0 1 1 1 0 0", g.Mesh.Sources[1].Array.Data)

	require.Len(t, doc.Materials, 2)
	assert.Equal(t, "red-material", doc.Materials[0].ID)
	assert.Equal(t, "default-material", doc.Materials[1].ID)
	require.Len(t, doc.Effects, 2)
	red := doc.Effects[0].Profile.Technique
	require.NotNil(t, red.Lambert)
	assert.Equal(t, "1 0 0 1", red.Lambert.Diffuse.Color)
	require.NotNil(t, doc.Effects[1].Profile.Technique.Phong)
	assert.Equal(t, float32(30), doc.Effects[1].Profile.Technique.Phong.Shininess.Float)

	require.Len(t, doc.Scenes, 1)
	nodes := doc.Scenes[0].Nodes
	require.Len(t, nodes, 4)
	assert.Equal(t, "b", nodes[1].ID)
	assert.Equal(t, "1 0 0 5 0 1 0 0 0 0 1 0 0 0 0 1", nodes[1].Matrix.Data)
	assert.Equal(t, "#tri-mesh", nodes[1].Geometry.URL)
	assert.Equal(t, "#red-material", nodes[1].Geometry.Material.Target)
	assert.Equal(t, "#default-material", nodes[2].Geometry.Material.Target)
	assert.Equal(t, "#"+doc.Scenes[0].ID, doc.Scene.VisualScene.URL)

	require.Len(t, doc.Lights, 1)
	spot := doc.Lights[0].Technique.Spot
	require.NotNil(t, spot)
	assert.Equal(t, "1 1 1", spot.Color)
	assert.Equal(t, float32(90), *spot.FalloffAngle)
	assert.Equal(t, "#spot-light", nodes[3].Light.URL)
}

func TestWriteBakedTexture(t *testing.T) {
	mt := material.New("grad")
	mt.DiffusePaint = &material.GradientPaint{Gradient: gradient.NewLinear().AddStop(colors.Black, 0).AddStop(colors.White, 1)}
	sc := scene.New("world")
	sc.Root.Add(scene.NewSolid("a", triangle(), material.FromRecord(mt)))

	files := codec.MemFiles{}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sc, &codec.Options{Files: files, Name: "model"}))
	assert.Contains(t, files, "model_grad.png")

	doc := decode(t, buf.Bytes())
	require.Len(t, doc.Images, 1)
	assert.Equal(t, "model_grad.png", doc.Images[0].InitFrom)
	diffuse := doc.Effects[0].Profile.Technique.Lambert.Diffuse
	require.NotNil(t, diffuse.Texture)
	assert.Equal(t, "grad-sampler", diffuse.Texture.Texture)
	require.Len(t, doc.Effects[0].Profile.Params, 2)
	assert.Equal(t, doc.Images[0].ID, doc.Effects[0].Profile.Params[0].Surface.InitFrom)
}
