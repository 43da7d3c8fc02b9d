/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package vpath approximates traced boundary rings with compound paths
// of line, arc and spline segments.
package vpath

import (
	"math"

	"rastervec/geom"
)

// Segment is one primitive of a compound path. Consecutive segments of
// a path share endpoints: Start of each segment equals End of the one
// before it.
type Segment interface {
	Start() geom.Point
	End() geom.Point

	// PointAt evaluates the segment at parameter t in [0, 1].
	PointAt(t float64) geom.Point

	transform(m geom.Matrix) Segment
}

// Line is a straight segment.
type Line struct {
	From, To geom.Point
}

func (l Line) Start() geom.Point { return l.From }
func (l Line) End() geom.Point   { return l.To }

func (l Line) PointAt(t float64) geom.Point { return l.From.Lerp(l.To, t) }

func (l Line) transform(m geom.Matrix) Segment {
	return Line{From: m.Apply(l.From), To: m.Apply(l.To)}
}

// Arc is a circular arc from StartAngle to EndAngle around Center.
// Angles are radians; the sweep runs counter-clockwise unless
// Clockwise is set.
type Arc struct {
	Center     geom.Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
	Clockwise  bool
}

// Sweep returns the absolute angular extent of the arc in (0, 2π].
func (a Arc) Sweep() float64 {
	s := a.EndAngle - a.StartAngle
	if a.Clockwise {
		s = -s
	}
	for s <= 0 {
		s += 2 * math.Pi
	}
	for s > 2*math.Pi {
		s -= 2 * math.Pi
	}
	return s
}

func (a Arc) at(angle float64) geom.Point {
	return geom.Pt(a.Center.X+a.Radius*math.Cos(angle), a.Center.Y+a.Radius*math.Sin(angle))
}

func (a Arc) Start() geom.Point { return a.at(a.StartAngle) }
func (a Arc) End() geom.Point   { return a.at(a.EndAngle) }

func (a Arc) PointAt(t float64) geom.Point {
	s := a.Sweep() * t
	if a.Clockwise {
		s = -s
	}
	return a.at(a.StartAngle + s)
}

// transform maps the arc through an affine matrix. Arcs are closed
// under similarity transforms; under non-uniform scale the radius is
// approximated from the determinant.
func (a Arc) transform(m geom.Matrix) Segment {
	rot := math.Atan2(m.B, m.A)
	det := m.Det()
	out := Arc{
		Center:     m.Apply(a.Center),
		Radius:     a.Radius * math.Sqrt(math.Abs(det)),
		StartAngle: a.StartAngle + rot,
		EndAngle:   a.EndAngle + rot,
		Clockwise:  a.Clockwise,
	}
	if det < 0 {
		out.Clockwise = !out.Clockwise
	}
	return out
}

// CubicBezier is one cubic curve with endpoints P0 and P3.
type CubicBezier struct {
	P0, P1, P2, P3 geom.Point
}

// PointAt evaluates the curve with de Casteljau interpolation.
func (c CubicBezier) PointAt(t float64) geom.Point {
	a := c.P0.Lerp(c.P1, t)
	b := c.P1.Lerp(c.P2, t)
	d := c.P2.Lerp(c.P3, t)
	ab := a.Lerp(b, t)
	bd := b.Lerp(d, t)
	return ab.Lerp(bd, t)
}

// Spline is a smooth curve interpolating its control points with a
// Catmull-Rom scheme rendered as cubic Béziers. The curve passes
// through every control point.
type Spline struct {
	Controls []geom.Point
}

func (s Spline) Start() geom.Point { return s.Controls[0] }
func (s Spline) End() geom.Point   { return s.Controls[len(s.Controls)-1] }

// Beziers converts the spline to its cubic Bézier pieces, one per
// control-point pair. Endpoints are clamped so the curve starts and
// ends exactly on the outer controls.
func (s Spline) Beziers() []CubicBezier {
	c := s.Controls
	n := len(c)
	if n < 2 {
		return nil
	}
	out := make([]CubicBezier, 0, n-1)
	for i := 0; i < n-1; i++ {
		p0 := c[max(i-1, 0)]
		p1 := c[i]
		p2 := c[i+1]
		p3 := c[min(i+2, n-1)]
		out = append(out, CubicBezier{
			P0: p1,
			P1: p1.Add(p2.Sub(p0).Mul(1.0 / 6)),
			P2: p2.Sub(p3.Sub(p1).Mul(1.0 / 6)),
			P3: p2,
		})
	}
	return out
}

func (s Spline) PointAt(t float64) geom.Point {
	bz := s.Beziers()
	if len(bz) == 0 {
		return s.Controls[0]
	}
	scaled := t * float64(len(bz))
	i := int(scaled)
	if i >= len(bz) {
		i = len(bz) - 1
	}
	return bz[i].PointAt(scaled - float64(i))
}

func (s Spline) transform(m geom.Matrix) Segment {
	out := Spline{Controls: make([]geom.Point, len(s.Controls))}
	for i, p := range s.Controls {
		out.Controls[i] = m.Apply(p)
	}
	return out
}
