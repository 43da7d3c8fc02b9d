/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import (
	"errors"
	"math"
)

// ErrSingularMatrix is reported when inverting a matrix whose linear part is
// singular within epsilon. Callers may substitute Identity or skip the
// transform.
var ErrSingularMatrix = errors.New("geom: singular matrix")

// singularEps bounds the determinant magnitude below which a matrix is
// treated as non-invertible.
const singularEps = 1e-12

// Matrix is a 2x3 affine transform with coefficients (a, b, c, d, e, f)
// representing the augmented matrix
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// Matrices have value semantics and are never mutated after construction.
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix{A: 1, D: 1}

// Scale returns a transform scaling by (sx, sy).
func Scale(sx, sy float64) Matrix { return Matrix{A: sx, D: sy} }

// Translate returns a transform translating by (tx, ty).
func Translate(tx, ty float64) Matrix { return Matrix{A: 1, D: 1, E: tx, F: ty} }

// Rotate returns a transform rotating by th radians. In the y-down pixel
// coordinate system a positive angle rotates clockwise.
func Rotate(th float64) Matrix {
	sin, cos := math.Sincos(th)
	return Matrix{A: cos, B: sin, C: -sin, D: cos}
}

// Compose returns the transform equivalent to applying b first, then a.
// Composition is associative and Identity is its neutral element.
func Compose(a, b Matrix) Matrix {
	return Matrix{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Apply transforms a geometry-space point. Deterministic, no side effects.
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// Det returns the determinant of the linear part.
func (m Matrix) Det() float64 { return m.A*m.D - m.B*m.C }

// Invert returns the inverse transform, or ErrSingularMatrix when the
// determinant of the linear part is within epsilon of zero.
func (m Matrix) Invert() (Matrix, error) {
	det := m.Det()
	if math.Abs(det) < singularEps {
		return Matrix{}, ErrSingularMatrix
	}
	inv := 1 / det
	return Matrix{
		A: m.D * inv,
		B: -m.B * inv,
		C: -m.C * inv,
		D: m.A * inv,
		E: (m.C*m.F - m.D*m.E) * inv,
		F: (m.B*m.E - m.A*m.F) * inv,
	}, nil
}
