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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestCastRoundTrip(t *testing.T) {
	pts := []PointI{{0, 0}, {1, 2}, {-3, 7}, {1024, -99}}
	for _, p := range pts {
		if got := Round(p.ToPoint()); got != p {
			t.Fatalf("int->float->int changed %v to %v", p, got)
		}
	}
	// float->int->float stays within the 0.5 rounding bound per axis
	fpts := []Point{{0.4, 0.6}, {-1.49, 2.5}, {3.14159, -2.71828}}
	for _, p := range fpts {
		back := Round(p).ToPoint()
		if math.Abs(back.X-p.X) > 0.5 || math.Abs(back.Y-p.Y) > 0.5 {
			t.Fatalf("rounding bound exceeded: %v -> %v", p, back)
		}
	}
}

func TestComposeAssociativeAndIdentity(t *testing.T) {
	a := Compose(Rotate(0.3), Translate(2, -5))
	b := Compose(Scale(2, 0.5), Rotate(-1.2))
	c := Translate(-7, 3)

	approx := cmpopts.EquateApprox(0, 1e-9)
	if d := cmp.Diff(Compose(Compose(a, b), c), Compose(a, Compose(b, c)), approx); d != "" {
		t.Fatalf("compose not associative (-ab.c +a.bc):\n%s", d)
	}
	if d := cmp.Diff(a, Compose(a, Identity), approx); d != "" {
		t.Fatalf("identity not neutral on the right:\n%s", d)
	}
	if d := cmp.Diff(a, Compose(Identity, a), approx); d != "" {
		t.Fatalf("identity not neutral on the left:\n%s", d)
	}
}

func TestComposeOrder(t *testing.T) {
	// Compose(A, B) applies B first: translate then scale.
	m := Compose(Scale(2, 2), Translate(1, 0))
	if got := m.Apply(Pt(0, 0)); got != Pt(2, 0) {
		t.Fatalf("apply order wrong: got %v, want (2, 0)", got)
	}
}

func TestInvert(t *testing.T) {
	m := Compose(Rotate(0.7), Compose(Scale(3, 0.25), Translate(11, -4)))
	inv, err := m.Invert()
	if err != nil {
		t.Fatalf("Invert error: %v", err)
	}
	p := Pt(5.5, -2.25)
	back := inv.Apply(m.Apply(p))
	if p.Distance(back) > 1e-9 {
		t.Fatalf("inverse roundtrip drifted: %v -> %v", p, back)
	}

	if _, err := Scale(1, 0).Invert(); !errors.Is(err, ErrSingularMatrix) {
		t.Fatalf("expected ErrSingularMatrix, got %v", err)
	}
}

func TestSegmentDistance(t *testing.T) {
	a, b := Pt(0, 0), Pt(10, 0)
	if d := SegmentDistance(Pt(5, 3), a, b); math.Abs(d-3) > 1e-12 {
		t.Fatalf("perpendicular distance: got %g", d)
	}
	// beyond the endpoints, distance is to the endpoint
	if d := SegmentDistance(Pt(-3, 4), a, b); math.Abs(d-5) > 1e-12 {
		t.Fatalf("endpoint distance: got %g", d)
	}
	// degenerate segment
	if d := SegmentDistance(Pt(3, 4), a, a); math.Abs(d-5) > 1e-12 {
		t.Fatalf("degenerate segment distance: got %g", d)
	}
}

func TestPredicates(t *testing.T) {
	if !IsIsosceles(Pt(0, 0), Pt(4, 0), Pt(2, 3)) {
		t.Fatalf("expected isosceles")
	}
	if IsIsosceles(Pt(0, 0), Pt(4, 0), Pt(1, 5)) {
		t.Fatalf("unexpected isosceles")
	}
	if !IsRight(Pt(0, 0), Pt(3, 0), Pt(0, 4)) {
		t.Fatalf("expected right triangle")
	}
	if IsRight(Pt(0, 0), Pt(4, 0), Pt(2, 3)) {
		t.Fatalf("unexpected right triangle")
	}
	if !Collinear(Pt(0, 0), Pt(2, 2), Pt(5, 5)) {
		t.Fatalf("expected collinear")
	}
	if Collinear(Pt(0, 0), Pt(2, 2), Pt(5, 6)) {
		t.Fatalf("unexpected collinear")
	}
	// degenerate inputs never classify as triangles
	if IsIsosceles(Pt(1, 1), Pt(1, 1), Pt(5, 5)) || IsRight(Pt(1, 1), Pt(1, 1), Pt(5, 5)) {
		t.Fatalf("degenerate input classified as triangle")
	}
}

func TestRect(t *testing.T) {
	var r Rect
	if !r.IsEmpty() {
		t.Fatalf("zero rect should be empty")
	}
	r.AddPoint(3, 4)
	r.AddPoint(1, 7)
	if r.Left != 1 || r.Top != 4 || r.Right != 4 || r.Bottom != 8 {
		t.Fatalf("unexpected rect: %+v", r)
	}
	if r.Width() != 3 || r.Height() != 4 {
		t.Fatalf("unexpected size: %dx%d", r.Width(), r.Height())
	}
	if !r.Contains(3, 7) || r.Contains(4, 7) {
		t.Fatalf("contains is wrong")
	}

	var o Rect
	o.AddPoint(10, 0)
	r.Merge(o)
	if r.Right != 11 || r.Top != 0 {
		t.Fatalf("merge wrong: %+v", r)
	}
}
