// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Quat is a rotation quaternion. The zero value is not a rotation;
// poses replace it with the identity.
type Quat struct {
	X, Y, Z, W float32
}

// SetIdentity sets q to no rotation.
func (q *Quat) SetIdentity() {
	*q = Quat{W: 1}
}

// IsIdentity returns whether q is exactly no rotation.
func (q *Quat) IsIdentity() bool {
	return *q == Quat{W: 1}
}

// IsNil returns whether all components are 0.
func (q *Quat) IsNil() bool {
	return *q == Quat{}
}

// SetFromEuler sets q from XYZ Euler angles in radians.
func (q *Quat) SetFromEuler(euler Vector3) {
	sx, cx := Sin(euler.X/2), Cos(euler.X/2)
	sy, cy := Sin(euler.Y/2), Cos(euler.Y/2)
	sz, cz := Sin(euler.Z/2), Cos(euler.Z/2)
	*q = Quat{
		X: sx*cy*cz - cx*sy*sz,
		Y: cx*sy*cz + sx*cy*sz,
		Z: cx*cy*sz - sx*sy*cz,
		W: cx*cy*cz + sx*sy*sz,
	}
}

// SetFromAxisAngle sets q to a rotation of angle radians about axis,
// which need not be normalized.
func (q *Quat) SetFromAxisAngle(axis Vector3, angle float32) {
	v := axis.Normal().MulScalar(Sin(angle / 2))
	*q = Quat{v.X, v.Y, v.Z, Cos(angle / 2)}
}

// ToAxisAngle returns the unit axis and the angle in radians of q.
// A rotation near zero reports the X axis.
func (q Quat) ToAxisAngle() (Vector3, float32) {
	q.Normalize()
	angle := 2 * Acos(Clamp(q.W, -1, 1))
	s := Sqrt(1 - q.W*q.W)
	if s < 1e-4 {
		return Vec3(1, 0, 0), angle
	}
	return Vec3(q.X/s, q.Y/s, q.Z/s), angle
}

// SetFromRotationMatrix sets q from the rotation part of m,
// which must not be scaled.
func (q *Quat) SetFromRotationMatrix(m *Matrix4) {
	// at(r, c) for the column major layout
	at := func(r, c int) float32 { return m[c*4+r] }
	switch tr := at(0, 0) + at(1, 1) + at(2, 2); {
	case tr > 0:
		s := 2 * Sqrt(tr+1)
		*q = Quat{(at(2, 1) - at(1, 2)) / s, (at(0, 2) - at(2, 0)) / s, (at(1, 0) - at(0, 1)) / s, s / 4}
	case at(0, 0) > at(1, 1) && at(0, 0) > at(2, 2):
		s := 2 * Sqrt(1+at(0, 0)-at(1, 1)-at(2, 2))
		*q = Quat{s / 4, (at(0, 1) + at(1, 0)) / s, (at(0, 2) + at(2, 0)) / s, (at(2, 1) - at(1, 2)) / s}
	case at(1, 1) > at(2, 2):
		s := 2 * Sqrt(1+at(1, 1)-at(0, 0)-at(2, 2))
		*q = Quat{(at(0, 1) + at(1, 0)) / s, s / 4, (at(1, 2) + at(2, 1)) / s, (at(0, 2) - at(2, 0)) / s}
	default:
		s := 2 * Sqrt(1+at(2, 2)-at(0, 0)-at(1, 1))
		*q = Quat{(at(0, 2) + at(2, 0)) / s, (at(1, 2) + at(2, 1)) / s, s / 4, (at(1, 0) - at(0, 1)) / s}
	}
}

// SetFromUnitVectors sets q to the shortest rotation taking the unit
// vector from to the unit vector to. Opposite vectors turn about an
// arbitrary perpendicular axis.
func (q *Quat) SetFromUnitVectors(from, to Vector3) {
	w := from.Dot(to) + 1
	var v Vector3
	switch {
	case w >= 1e-6:
		v = from.Cross(to)
	case Abs(from.X) > Abs(from.Z):
		w, v = 0, Vec3(-from.Y, from.X, 0)
	default:
		w, v = 0, Vec3(0, -from.Z, from.Y)
	}
	*q = Quat{v.X, v.Y, v.Z, w}
	q.Normalize()
}

// Length returns the norm of q.
func (q Quat) Length() float32 {
	return Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize scales q to unit length; a zero q becomes the identity.
func (q *Quat) Normalize() {
	l := q.Length()
	if l == 0 {
		q.SetIdentity()
		return
	}
	*q = Quat{q.X / l, q.Y / l, q.Z / l, q.W / l}
}
