// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"errors"
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

type recorder struct {
	calls  []string
	failOn string
}

func (r *recorder) Header(sc *scene.Scene) error {
	r.calls = append(r.calls, "header")
	return nil
}

func (r *recorder) Solid(s *scene.Solid, world *math32.Matrix4) error {
	r.calls = append(r.calls, "solid "+s.Name)
	if s.Name == r.failOn {
		return errors.New("fail")
	}
	return nil
}

func (r *recorder) Light(l scene.Light, world *math32.Matrix4) error {
	r.calls = append(r.calls, "light "+l.AsLightBase().Name)
	return nil
}

func (r *recorder) Footer(sc *scene.Scene) error {
	r.calls = append(r.calls, "footer")
	return nil
}

func testScene() *scene.Scene {
	tri := &mesh.Mesh{Positions: []math32.Vector3{{}, {1, 0, 0}, {0, 1, 0}}, Indices: []uint32{0, 1, 2}}
	sc := scene.New("root")
	g := scene.NewGroup("g")
	g.Add(scene.NewSolid("a", tri, nil), scene.NewSolid("empty", &mesh.Mesh{}, nil))
	sc.Root.Add(g, scene.NewAmbientLight("amb", colors.White, 1), scene.NewSolid("b", tri, nil))
	return sc
}

func TestRun(t *testing.T) {
	r := &recorder{}
	require.NoError(t, Run(testScene(), r))
	assert.Equal(t, []string{"header", "solid a", "light amb", "solid b", "footer"}, r.calls)

	r = &recorder{failOn: "a"}
	assert.Error(t, Run(testScene(), r))
	assert.Equal(t, []string{"header", "solid a"}, r.calls)
}

func TestIdentifier(t *testing.T) {
	assert.Equal(t, "Cafe_noir", Identifier("Café noir"))
	assert.Equal(t, "_3ds_mat", Identifier("3ds-mat"))
	assert.Equal(t, "", Identifier(""))
}

func TestNames(t *testing.T) {
	nm := NewNames()
	a, b, c := new(int), new(int), new(int)
	assert.Equal(t, "mat", nm.Name(a, "mat", "m"))
	assert.Equal(t, "mat_1", nm.Name(b, "mat", "m"))
	assert.Equal(t, "mat", nm.Name(a, "other", "m"))
	assert.Equal(t, "m", nm.Name(c, "", "m"))
	n, ok := nm.Lookup(b)
	assert.True(t, ok)
	assert.Equal(t, "mat_1", n)
	assert.Equal(t, 3, nm.Len())
}

func TestContext(t *testing.T) {
	notes := &codec.Notices{}
	c := NewContext("vrml", &codec.Options{Notices: notes})
	l := material.FromRecord(material.New("red"))
	m1 := c.Material(l)
	assert.Same(t, m1, c.Material(l))
	assert.Equal(t, "red", m1.Name)
	assert.Equal(t, "default", c.Material(nil).Name)

	f, err := c.SideFile("x.mtl")
	assert.NoError(t, err)
	assert.Nil(t, f)
	c.Unsupported("lights")
	c.Unsupported("lights")
	assert.Equal(t, 2, notes.Count(codec.ErrUnsupportedFeature))

	files := codec.MemFiles{}
	c = NewContext("obj", &codec.Options{Files: files})
	f, err = c.SideFile("x.mtl")
	require.NoError(t, err)
	_, err = f.Write([]byte("newmtl a\n"))
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "newmtl a\n", string(files["x.mtl"]))

	var cache Cache[string, int]
	assert.False(t, cache.Has("a"))
	cache.Set("a", 1)
	v, ok := cache.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, cache.Len())
}

func TestCollector(t *testing.T) {
	c := &Collector{}
	require.NoError(t, c.Solid(scene.NewSolid("a", nil, nil), math32.Identity4()))
	require.NoError(t, c.Light(scene.NewAmbientLight("amb", colors.White, 1), math32.Identity4()))
	assert.Len(t, c.Solids, 1)
	assert.Len(t, c.Lights, 1)
	assert.Equal(t, "a", c.Solids[0].Solid.Name)
}

func TestLightFrame(t *testing.T) {
	sp := scene.NewSpotLight("s", colors.White, 1, math32.Vec3(1, 2, 3), math32.Vec3(0, -2, 0))
	world := &math32.Matrix4{}
	world.SetTransform(math32.Vec3(10, 0, 0), math32.Quat{W: 1}, math32.Vec3(1, 1, 1))
	assert.Equal(t, math32.Vec3(11, 2, 3), LightPos(sp, world))
	assert.Equal(t, math32.Vec3(0, -1, 0), LightDir(sp, world))
	assert.Equal(t, math32.Vec3(0, 0, -1), LightDir(scene.NewAmbientLight("a", colors.White, 1), world))

	fr := LightFrame(sp, world)
	d := math32.Vec3(0, 0, -1).MulMatrix4AsVector4(fr, 0)
	assert.InDelta(t, -1, d.Y, 1e-5)
	assert.Equal(t, math32.Vec3(11, 2, 3), fr.Translation())
}

func TestSurface(t *testing.T) {
	mt := material.New("grad")
	mt.DiffusePaint = &material.GradientPaint{Gradient: gradient.NewLinear().AddStop(colors.White, 0).AddStop(colors.White, 1)}
	l := material.FromRecord(mt)

	c := NewContext("vrml", &codec.Options{})
	s, err := c.Surface(l)
	require.NoError(t, err)
	assert.Equal(t, "", s.DiffuseMap)
	assert.Equal(t, colors.White, s.Diffuse)

	files := codec.MemFiles{}
	c = NewContext("pov", &codec.Options{Files: files, Name: "scene"})
	s, err = c.Surface(l)
	require.NoError(t, err)
	assert.Equal(t, "scene_grad.png", s.DiffuseMap)
	assert.Contains(t, files, "scene_grad.png")

	again, err := c.Surface(l)
	require.NoError(t, err)
	assert.Same(t, s, again)
	flat := c.Material(l)
	assert.NotSame(t, s, flat)
	assert.Equal(t, "", flat.DiffuseMap)
	assert.Same(t, s.DiffusePaint, flat.DiffusePaint)
}

func TestXMLText(t *testing.T) {
	assert.Equal(t, "a &lt;b&gt; &amp; &#34;c&#34;", XMLText(`a <b> & "c"`))
}

func TestDecompose(t *testing.T) {
	m := &math32.Matrix4{}
	var q math32.Quat
	q.SetFromAxisAngle(math32.Vec3(0, 1, 0), math32.Pi/2)
	m.SetTransform(math32.Vec3(1, 2, 3), q, math32.Vec3(2, 2, 2))
	trs := Decompose(m)
	assert.Equal(t, math32.Vec3(1, 2, 3), trs.Translation)
	assert.InDelta(t, 2, trs.Scale.X, 1e-5)
	assert.InDelta(t, 1, trs.Axis.Y, 1e-4)
	assert.InDelta(t, math32.Pi/2, trs.Angle, 1e-4)

	trs = Decompose(math32.Identity4())
	assert.Equal(t, float32(0), trs.Angle)
	assert.Equal(t, math32.Vec3(1, 1, 1), trs.Scale)
}
