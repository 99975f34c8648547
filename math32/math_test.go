// Copyright 2021 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"cogentcore.org/meshio/base/tolassert"
	"github.com/stretchr/testify/assert"
)

const StandardTol = float32(1.0e-6)

func TolAssertEqualVector(t *testing.T, tol float32, vt, va Vector3) {
	t.Helper()
	tolassert.EqualTol(t, vt.X, va.X, tol)
	tolassert.EqualTol(t, vt.Y, va.Y, tol)
	tolassert.EqualTol(t, vt.Z, va.Z, tol)
}

func axisAngle(axis Vector3, angle float32) Quat {
	var q Quat
	q.SetFromAxisAngle(axis, angle)
	return q
}

func TestMatrix4Transform(t *testing.T) {
	vx := Vec3(1, 0, 0)
	vy := Vec3(0, 1, 0)

	assert.Equal(t, vx, vx.MulMatrix4(Identity4()))

	m := &Matrix4{}
	m.SetTransform(Vec3(1, 2, 3), axisAngle(Vec3(0, 0, 1), DegToRad(90)), Vec3(2, 2, 2))
	TolAssertEqualVector(t, StandardTol, Vec3(1, 4, 3), vx.MulMatrix4(m))
	TolAssertEqualVector(t, StandardTol, Vec3(-2, 0, 0), vy.MulMatrix4AsVector4(m, 0))

	inv, err := m.Inverse()
	assert.NoError(t, err)
	TolAssertEqualVector(t, 1.0e-5, vx, vx.MulMatrix4(m).MulMatrix4(inv))

	pos, q, sc := m.Decompose()
	TolAssertEqualVector(t, 1.0e-5, Vec3(1, 2, 3), pos)
	TolAssertEqualVector(t, 1.0e-5, Vec3(2, 2, 2), sc)
	TolAssertEqualVector(t, 1.0e-5, vy, vx.MulQuat(q))
}

func TestMatrix4MulMatrices(t *testing.T) {
	parent := &Matrix4{}
	parent.SetTransform(Vec3(10, 0, 0), Quat{W: 1}, Vec3(1, 1, 1))
	local := &Matrix4{}
	local.SetTransform(Vec3(0, 5, 0), Quat{W: 1}, Vec3(3, 3, 3))
	world := parent.Mul(local)
	TolAssertEqualVector(t, StandardTol, Vec3(13, 5, 0), Vec3(1, 0, 0).MulMatrix4(world))

	var singular Matrix4
	_, err := singular.Inverse()
	assert.ErrorIs(t, err, ErrSingular)
}

func TestMatrix4RowMajor(t *testing.T) {
	m := &Matrix4{}
	m.SetTransform(Vec3(1, 2, 3), Quat{W: 1}, Vec3(1, 1, 1))
	rm := m.RowMajor()
	assert.Equal(t, float32(1), rm[3])
	assert.Equal(t, float32(2), rm[7])
	assert.Equal(t, float32(3), rm[11])
}

func TestQuatEulerAxis(t *testing.T) {
	var q Quat
	q.SetFromEuler(Vec3(0, DegToRad(90), 0))
	TolAssertEqualVector(t, 1.0e-5, Vec3(0, 0, -1), Vec3(1, 0, 0).MulQuat(q))

	axis, angle := axisAngle(Vec3(0, 0, 2), DegToRad(60)).ToAxisAngle()
	TolAssertEqualVector(t, 1.0e-5, Vec3(0, 0, 1), axis)
	tolassert.EqualTol(t, DegToRad(60), angle, 1.0e-5)

	var uq Quat
	uq.SetFromUnitVectors(Vec3(1, 0, 0), Vec3(0, 1, 0))
	TolAssertEqualVector(t, 1.0e-5, Vec3(0, 1, 0), Vec3(1, 0, 0).MulQuat(uq))
	uq.SetFromUnitVectors(Vec3(1, 0, 0), Vec3(-1, 0, 0))
	TolAssertEqualVector(t, 1.0e-5, Vec3(-1, 0, 0), Vec3(1, 0, 0).MulQuat(uq))

	var mq Quat
	for _, want := range []Quat{axisAngle(Vec3(1, 0, 0), 3), axisAngle(Vec3(0, 1, 0), 3), axisAngle(Vec3(0, 0, 1), 3), axisAngle(Vec3(1, 1, 0), 0.5)} {
		m := &Matrix4{}
		m.SetTransform(Vector3{}, want, Vec3(1, 1, 1))
		mq.SetFromRotationMatrix(m)
		TolAssertEqualVector(t, 1.0e-5, Vec3(0.3, 0.5, 0.7).MulQuat(want), Vec3(0.3, 0.5, 0.7).MulQuat(mq))
	}

	var zero Quat
	assert.True(t, zero.IsNil())
	zero.Normalize()
	assert.True(t, zero.IsIdentity())
}

func TestBox3(t *testing.T) {
	b := B3Empty()
	assert.True(t, b.IsEmpty())
	b.SetFromPoints([]Vector3{Vec3(1, 2, 3), Vec3(-1, 0, 5)})
	assert.Equal(t, Vec3(-1, 0, 3), b.Min)
	assert.Equal(t, Vec3(1, 2, 5), b.Max)
	assert.Equal(t, Vec3(0, 1, 4), b.Center())
	assert.True(t, b.ContainsPoint(Vec3(0, 1, 4)))

	m := &Matrix4{}
	m.SetTransform(Vec3(1, 1, 1), Quat{W: 1}, Vec3(1, 1, 1))
	mb := b.MulMatrix4(m)
	assert.Equal(t, Vec3(0, 1, 4), mb.Min)
}

func TestTriangle(t *testing.T) {
	tri := NewTriangle(Vec3(0, 0, 0), Vec3(1, 0, 0), Vec3(0, 1, 0))
	TolAssertEqualVector(t, StandardTol, Vec3(0, 0, 1), tri.Normal())
	tolassert.EqualTol(t, 0.5, tri.Area(), StandardTol)
	assert.Equal(t, Vector3{}, Normal(Vec3(0, 0, 0), Vec3(1, 1, 1), Vec3(2, 2, 2)))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 3, Clamp(5, 1, 3))
	assert.Equal(t, float32(0.5), Clamp(float32(0.5), 0, 1))
}
