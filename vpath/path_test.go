/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vpath

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"rastervec/geom"
)

func TestSplineInterpolatesControls(t *testing.T) {
	sp := Spline{Controls: []geom.Point{
		geom.Pt(0, 0), geom.Pt(4, 2), geom.Pt(8, -1), geom.Pt(12, 3),
	}}
	bz := sp.Beziers()
	if len(bz) != 3 {
		t.Fatalf("expected 3 curves, got %d", len(bz))
	}
	// Each Bézier starts and ends on consecutive controls.
	for i, b := range bz {
		if b.P0 != sp.Controls[i] || b.P3 != sp.Controls[i+1] {
			t.Fatalf("curve %d endpoints %v..%v not on controls", i, b.P0, b.P3)
		}
	}
	if got := sp.Start(); got != sp.Controls[0] {
		t.Fatalf("start = %v", got)
	}
	if got := sp.End(); got != sp.Controls[3] {
		t.Fatalf("end = %v", got)
	}
}

func TestArcEvaluation(t *testing.T) {
	a := Arc{Center: geom.Pt(1, 1), Radius: 2, StartAngle: 0, EndAngle: math.Pi / 2}
	opt := cmpopts.EquateApprox(0, 1e-12)
	if diff := cmp.Diff(geom.Pt(3, 1), a.Start(), opt); diff != "" {
		t.Fatalf("start mismatch:\n%s", diff)
	}
	if diff := cmp.Diff(geom.Pt(1, 3), a.End(), opt); diff != "" {
		t.Fatalf("end mismatch:\n%s", diff)
	}
	mid := a.PointAt(0.5)
	want := geom.Pt(1+2*math.Cos(math.Pi/4), 1+2*math.Sin(math.Pi/4))
	if diff := cmp.Diff(want, mid, opt); diff != "" {
		t.Fatalf("midpoint mismatch:\n%s", diff)
	}

	cw := Arc{Center: geom.Pt(0, 0), Radius: 1, StartAngle: math.Pi / 2, EndAngle: 0, Clockwise: true}
	if math.Abs(cw.Sweep()-math.Pi/2) > 1e-12 {
		t.Fatalf("clockwise sweep = %v", cw.Sweep())
	}
}

func TestTransformRotatesSegments(t *testing.T) {
	p := CompoundPath{
		Closed: true,
		Segments: []Segment{
			Line{From: geom.Pt(1, 0), To: geom.Pt(2, 0)},
			Arc{Center: geom.Pt(0, 0), Radius: 2, StartAngle: 0, EndAngle: math.Pi},
		},
	}
	rot := geom.Rotate(math.Pi / 2)
	got := p.Transform(rot)

	opt := cmpopts.EquateApprox(0, 1e-12)
	l := got.Segments[0].(Line)
	if diff := cmp.Diff(geom.Pt(0, 1), l.From, opt); diff != "" {
		t.Fatalf("line start mismatch:\n%s", diff)
	}
	a := got.Segments[1].(Arc)
	if math.Abs(a.Radius-2) > 1e-12 {
		t.Fatalf("rotation must preserve radius, got %v", a.Radius)
	}
	if diff := cmp.Diff(geom.Pt(0, 2), a.Start(), opt); diff != "" {
		t.Fatalf("arc start mismatch:\n%s", diff)
	}
}

func TestTransformScalesArcRadius(t *testing.T) {
	a := Arc{Center: geom.Pt(0, 0), Radius: 3, StartAngle: 0, EndAngle: math.Pi}
	out := a.transform(geom.Scale(2, 2)).(Arc)
	if math.Abs(out.Radius-6) > 1e-12 {
		t.Fatalf("scaled radius = %v, want 6", out.Radius)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := CompoundPath{
		Closed: true,
		Segments: []Segment{
			Spline{Controls: []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 0)}},
		},
	}
	cl := orig.Clone()
	cl.Segments[0].(Spline).Controls[1] = geom.Pt(9, 9)
	if orig.Segments[0].(Spline).Controls[1] != geom.Pt(1, 1) {
		t.Fatalf("clone aliases the original spline controls")
	}
	cl.Segments[0] = Line{From: geom.Pt(0, 0), To: geom.Pt(1, 0)}
	if _, ok := orig.Segments[0].(Spline); !ok {
		t.Fatalf("clone aliases the original segment slice")
	}
}
