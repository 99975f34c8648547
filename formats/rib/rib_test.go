// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rib

import (
	"bytes"
	"strings"
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

func TestWrite(t *testing.T) {
	tri := &mesh.Mesh{
		Name:      "tri",
		Positions: []math32.Vector3{{}, {X: 1}, {Y: 1}},
		TexCoords: []math32.Vector2{{}, {X: 1}, {Y: 1}},
		Indices:   []uint32{0, 1, 2},
	}
	grad := material.New("grad")
	grad.DiffusePaint = &material.GradientPaint{Gradient: gradient.NewLinear().AddStop(colors.Black, 0).AddStop(colors.White, 1)}
	gradL := material.FromRecord(grad)

	sc := scene.New("world")
	b := scene.NewSolid("b", tri, gradL)
	b.Pose.Pos = math32.Vec3(1, 2, 3)
	sc.Root.Add(scene.NewSolid("a", tri, gradL), b, scene.NewSolid("c", tri, nil))
	sc.Root.Add(scene.NewPointLight("lamp", colors.White, 0.5, math32.Vec3(0, 5, 0)))

	files := codec.MemFiles{}
	notes := &codec.Notices{}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sc, &codec.Options{Files: files, Name: "model", Notices: notes}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "##RenderMan RIB\n"))
	assert.Contains(t, out, `Display "model.tif" "file" "rgba"`)
	assert.Contains(t, out, "Scale 1 1 -1\n")
	assert.Equal(t, 1, strings.Count(out, "ObjectBegin"))
	assert.Contains(t, out, "PointsPolygons [3]\n  [0 1 2]\n  \"P\" [0 0 0 1 0 0 0 1 0]\n  \"st\" [0 0 1 0 0 1]\n")
	assert.Equal(t, 3, strings.Count(out, "ObjectInstance 1"))

	light := strings.Index(out, `LightSource "pointlight" 1 "intensity" [0.5] "lightcolor" [1 1 1] "from" [0 5 0]`)
	require.GreaterOrEqual(t, light, 0)
	assert.Less(t, light, strings.Index(out, "AttributeBegin"))

	assert.Contains(t, out, "ConcatTransform [1 0 0 0 0 1 0 0 0 0 1 0 1 2 3 1]")
	assert.Contains(t, out, `Surface "paintedplastic" "Ka" [0] "Kd" [1] "texturename" ["model_grad.tif"]`)
	assert.Contains(t, out, `Surface "plastic"`)
	assert.Contains(t, files, "model_grad.tif")
	assert.Equal(t, 0, notes.Len())
}

func TestWriteUnsupported(t *testing.T) {
	tri := &mesh.Mesh{Positions: []math32.Vector3{{}, {X: 1}, {Y: 1}}, Indices: []uint32{0, 1, 2}}
	glow := material.New("glow")
	glow.Emissive = colors.White
	glow.DiffuseMap = "glow.png"
	sc := scene.New("world")
	sc.Root.Add(scene.NewSolid("a", tri, material.FromRecord(glow)))

	notes := &codec.Notices{}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sc, &codec.Options{Notices: notes}))
	assert.Contains(t, buf.String(), `Display "rib.tif"`)
	assert.Equal(t, 2, notes.Count(codec.ErrUnsupportedFeature))
}
