/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package geom is the small geometry kernel shared by the tracing pipeline:
// typed 2D points in pixel and geometry space, a 2x3 affine transform, an
// integer bounding box and a few shape-classification predicates.
//
// Pixel space uses integer coordinates (PointI); everything downstream of
// boundary tracing works in float64 geometry space (Point). The cast from
// PointI to Point is exact; the reverse rounds and is lossy.
package geom

import (
	"fmt"
	"math"
)

// PointI is a point in integer pixel space.
type PointI struct {
	X, Y int
}

// PtI returns the integer point (x, y).
func PtI(x, y int) PointI { return PointI{X: x, Y: y} }

func (p PointI) Add(o PointI) PointI { return PointI{p.X + o.X, p.Y + o.Y} }
func (p PointI) Sub(o PointI) PointI { return PointI{p.X - o.X, p.Y - o.Y} }

// ToPoint casts to geometry space. Exact for all representable pixel
// coordinates.
func (p PointI) ToPoint() Point { return Point{X: float64(p.X), Y: float64(p.Y)} }

func (p PointI) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

// Point is a point in float64 geometry space.
type Point struct {
	X, Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Round casts a geometry-space point back to pixel space, rounding each
// coordinate to the nearest integer (half away from zero). Lossy; the
// result is always within 0.5 units of the input per axis.
func Round(p Point) PointI {
	return PointI{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

// Mul scales the point by a scalar.
func (p Point) Mul(k float64) Point { return Point{p.X * k, p.Y * k} }

// Dot returns the dot product treating both points as vectors.
func (p Point) Dot(o Point) float64 { return p.X*o.X + p.Y*o.Y }

// Cross returns the z component of the cross product treating both points
// as vectors.
func (p Point) Cross(o Point) float64 { return p.X*o.Y - p.Y*o.X }

// Norm returns the L2 norm.
func (p Point) Norm() float64 { return math.Hypot(p.X, p.Y) }

// Distance returns the euclidean distance to o.
func (p Point) Distance(o Point) float64 { return p.Sub(o).Norm() }

// Midpoint returns the midpoint of p and o.
func (p Point) Midpoint(o Point) Point {
	return Point{X: 0.5 * (p.X + o.X), Y: 0.5 * (p.Y + o.Y)}
}

// Lerp linearly interpolates between p and o.
func (p Point) Lerp(o Point, t float64) Point {
	return Point{X: p.X + (o.X-p.X)*t, Y: p.Y + (o.Y-p.Y)*t}
}

// Normalize returns the unit vector in the direction of p. The zero vector
// is returned unchanged.
func (p Point) Normalize() Point {
	n := p.Norm()
	if n == 0 {
		return p
	}
	return Point{p.X / n, p.Y / n}
}

// Angle returns the angle of the vector p in radians, in (-pi, pi].
func (p Point) Angle() float64 { return math.Atan2(p.Y, p.X) }

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// SegmentDistance returns the distance from p to the line segment ab.
func SegmentDistance(p, a, b Point) float64 {
	d := b.Sub(a)
	den := d.Dot(d)
	if den == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(d) / den
	switch {
	case t <= 0:
		return p.Distance(a)
	case t >= 1:
		return p.Distance(b)
	default:
		return p.Distance(a.Add(d.Mul(t)))
	}
}
