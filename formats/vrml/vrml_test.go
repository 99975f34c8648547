// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import (
	"bytes"
	"image/color"
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

func TestWrite(t *testing.T) {
	tri := &mesh.Mesh{
		Name:      "tri",
		Positions: []math32.Vector3{{}, {X: 1}, {Y: 1}},
		Colors:    []color.RGBA{colors.White, colors.White, colors.White},
		Indices:   []uint32{0, 1, 2},
	}
	red := material.New(`my "red"`)
	red.Diffuse = colors.FromFloat32(1, 0, 0, 1)
	red.BumpMap = "bump.png"
	redL := material.FromRecord(red)

	sc := scene.New("world")
	b := scene.NewSolid("b", tri, redL)
	b.Pose.Pos = math32.Vec3(0, 0, 2)
	b.Pose.Scale = math32.Vec3(2, 2, 2)
	sc.Root.Add(scene.NewSolid("a", tri, redL), b)
	sc.Root.Add(scene.NewPointLight("lamp", colors.White, 0.8, math32.Vec3(1, 2, 3)))

	notes := &codec.Notices{}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sc, &codec.Options{Notices: notes}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "#VRML V2.0 utf8\n"))
	assert.Contains(t, out, `title "world"`)
	assert.Contains(t, out, "DEF a Transform {")
	assert.Contains(t, out, "appearance DEF my__red_ Appearance {")
	assert.Contains(t, out, "diffuseColor 1 0 0")
	assert.Contains(t, out, "geometry DEF tri IndexedFaceSet {")
	assert.Contains(t, out, "0 1 2 -1,")
	assert.Contains(t, out, "color Color { color [")
	assert.Contains(t, out, "DEF b Transform {\n  translation 0 0 2\n  scale 2 2 2\n")
	assert.Contains(t, out, "appearance USE my__red_")
	assert.Contains(t, out, "geometry USE tri")
	assert.Equal(t, 1, strings.Count(out, "IndexedFaceSet"))
	assert.Contains(t, out, "DEF lamp PointLight {\n  intensity 0.8\n  location 1 2 3\n  attenuation 1 0 0\n  color 1 1 1\n}")
	assert.Equal(t, 1, notes.Count(codec.ErrUnsupportedFeature))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"a \"b\" \\ c"`, quote(`a "b" \ c`))
}
