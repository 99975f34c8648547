// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit mesh interchange.

// Package math32 is a float32 based vector, matrix, and math package
// for 3D mesh data. Matrices are column major, as in OpenGL.
package math32

import (
	"cmp"
	"math"

	"github.com/chewxy/math32"
)

// Pi is π as a float32 friendly constant.
const Pi = math.Pi

// Infinity is positive infinity.
var Infinity = float32(math.Inf(1))

// DegToRad converts degrees to radians.
func DegToRad(degrees float32) float32 {
	return degrees * (Pi / 180)
}

// The scalar functions below forward to chewxy/math32, which
// computes in float32 without converting through float64.

func Abs(x float32) float32 { return math32.Abs(x) }
func Acos(x float32) float32 { return math32.Acos(x) }
func Asin(x float32) float32 { return math32.Asin(x) }
func Atan2(y, x float32) float32 { return math32.Atan2(y, x) }
func Cos(x float32) float32 { return math32.Cos(x) }
func Sin(x float32) float32 { return math32.Sin(x) }
func Tan(x float32) float32 { return math32.Tan(x) }
func Floor(x float32) float32 { return math32.Floor(x) }
func Round(x float32) float32 { return math32.Round(x) }
func Mod(x, y float32) float32 { return math32.Mod(x, y) }
func Pow(x, y float32) float32 { return math32.Pow(x, y) }
func Sqrt(x float32) float32 { return math32.Sqrt(x) }
func Max(x, y float32) float32 { return math32.Max(x, y) }
func Min(x, y float32) float32 { return math32.Min(x, y) }
func IsNaN(x float32) bool { return math32.IsNaN(x) }
func IsInf(x float32, sign int) bool { return math32.IsInf(x, sign) }

// Clamp returns x limited to the closed interval [a, b].
func Clamp[T cmp.Ordered](x, a, b T) T {
	return min(max(x, a), b)
}
