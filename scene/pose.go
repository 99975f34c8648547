// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "cogentcore.org/meshio/math32"

// Pose is the position, orientation and scale of a node,
// relative to its parent.
type Pose struct {

	// Pos is the position relative to the parent.
	Pos math32.Vector3

	// Scale relative to the parent; the zero value means 1.
	Scale math32.Vector3

	// Quat is the rotation relative to the parent; the zero value means none.
	Quat math32.Quat
}

// Defaults sets defaults only if current values are nil.
func (ps *Pose) Defaults() {
	if ps.Scale.IsNil() {
		ps.Scale.Set(1, 1, 1)
	}
	if ps.Quat.IsNil() {
		ps.Quat.SetIdentity()
	}
}

// Matrix returns the local transform matrix.
func (ps Pose) Matrix() *math32.Matrix4 {
	ps.Defaults()
	m := &math32.Matrix4{}
	m.SetTransform(ps.Pos, ps.Quat, ps.Scale)
	return m
}

// SetMatrix sets the pose from a transform matrix.
func (ps *Pose) SetMatrix(m *math32.Matrix4) {
	ps.Pos, ps.Quat, ps.Scale = m.Decompose()
}

// IsIdentity returns whether the pose leaves coordinates unchanged.
func (ps Pose) IsIdentity() bool {
	ps.Defaults()
	return ps.Pos.IsNil() && ps.Quat.IsIdentity() && ps.Scale == math32.Vec3(1, 1, 1)
}

// SetEulerRotation sets the rotation in Euler angles (degrees).
func (ps *Pose) SetEulerRotation(x, y, z float32) {
	ps.Quat.SetFromEuler(math32.Vec3(math32.DegToRad(x), math32.DegToRad(y), math32.DegToRad(z)))
}

// SetAxisRotation sets the rotation from an axis and an angle (degrees).
func (ps *Pose) SetAxisRotation(x, y, z, angle float32) {
	ps.Quat.SetFromAxisAngle(math32.Vec3(x, y, z), math32.DegToRad(angle))
}
