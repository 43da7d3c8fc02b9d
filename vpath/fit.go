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

	"rastervec/contour"
	"rastervec/geom"
)

// DefaultCornerThreshold is the turn angle, in radians, above which a
// vertex of the reduced outline counts as a hard corner.
const DefaultCornerThreshold = math.Pi / 3

// maxFitDepth bounds the recursive split. A run that still misses the
// tolerance at the bottom degrades to a raw polyline, which matches the
// input exactly.
const maxFitDepth = 20

// Fitter approximates boundary rings with compound paths. The zero
// value is not usable; construct with NewFitter.
type Fitter struct {
	// Tolerance is the maximum distance any input point may end up
	// from the fitted path.
	Tolerance float64

	// CornerThreshold is the turn angle marking hard corners.
	CornerThreshold float64
}

func NewFitter(tolerance float64) Fitter {
	return Fitter{Tolerance: tolerance, CornerThreshold: DefaultCornerThreshold}
}

// Fit approximates a ring at the given tolerance with default corner
// handling.
func Fit(r contour.Ring, tolerance float64) CompoundPath {
	return NewFitter(tolerance).Fit(r)
}

// Fit turns one closed ring into a compound path. Every ring point is
// within Tolerance of the result; the path is marked as a hole when
// the ring is one.
func (f Fitter) Fit(r contour.Ring) CompoundPath {
	return f.FitPoints(r.Points, true, r.Hole)
}

// FitPoints fits an arbitrary point run. Closed runs connect the last
// point back to the first.
func (f Fitter) FitPoints(pts []geom.Point, closed, hole bool) CompoundPath {
	out := CompoundPath{Closed: closed, Hole: hole}
	if len(pts) < 2 {
		return out
	}
	if len(pts) == 2 {
		out.Segments = []Segment{Line{From: pts[0], To: pts[1]}}
		return out
	}

	var runs [][]geom.Point
	if closed {
		runs = f.splitAtCorners(pts)
	} else {
		runs = [][]geom.Point{pts}
	}
	for _, run := range runs {
		out.Segments = append(out.Segments, f.fitRun(run, maxFitDepth)...)
	}
	return out
}

// splitAtCorners cuts a closed ring into runs between hard corners.
// Corners are found on a reduced copy of the ring so that raster
// staircases do not read as 90 degree turns. A ring without corners is
// cut in half arbitrarily to keep every run's endpoints distinct.
func (f Fitter) splitAtCorners(pts []geom.Point) [][]geom.Point {
	n := len(pts)
	kept := reduceRing(pts, math.Max(f.Tolerance, 1.0))

	var cuts []int
	for i, v := range kept {
		prev := pts[kept[(i+len(kept)-1)%len(kept)]]
		curr := pts[v]
		next := pts[kept[(i+1)%len(kept)]]
		if f.isCorner(prev, curr, next) {
			cuts = append(cuts, v)
		}
	}
	if len(cuts) == 0 {
		cuts = []int{0}
	}
	if len(cuts) == 1 {
		cuts = append(cuts, (cuts[0]+n/2)%n)
		if cuts[0] > cuts[1] {
			cuts[0], cuts[1] = cuts[1], cuts[0]
		}
	}

	runs := make([][]geom.Point, 0, len(cuts))
	for i, c := range cuts {
		next := cuts[(i+1)%len(cuts)]
		run := []geom.Point{}
		for j := c; j != next; j = (j + 1) % n {
			run = append(run, pts[j])
		}
		run = append(run, pts[next])
		runs = append(runs, run)
	}
	return runs
}

// isCorner applies the turn-angle test, biased toward a corner when the
// local vertex configuration is near-right or near-isosceles.
func (f Fitter) isCorner(prev, curr, next geom.Point) bool {
	v1 := curr.Sub(prev)
	v2 := next.Sub(curr)
	if v1.Norm() == 0 || v2.Norm() == 0 {
		return false
	}
	turn := math.Abs(angleDiff(v2.Angle(), v1.Angle()))
	if turn >= f.CornerThreshold {
		return true
	}
	if turn >= 0.75*f.CornerThreshold && (geom.IsRight(prev, curr, next) || geom.IsIsosceles(prev, curr, next)) {
		return true
	}
	return false
}

// fitRun applies the line, arc, spline cascade to one corner-free run.
func (f Fitter) fitRun(run []geom.Point, depth int) []Segment {
	if len(run) < 2 {
		return nil
	}
	if len(run) == 2 {
		return []Segment{Line{From: run[0], To: run[1]}}
	}
	if depth == 0 {
		return polyline(run)
	}

	worst, dev := maxChordDeviation(run)
	if dev <= f.Tolerance {
		return []Segment{Line{From: run[0], To: run[len(run)-1]}}
	}

	if arc, ok := f.fitArc(run, worst); ok {
		return []Segment{arc}
	}

	if sp, ok := f.fitSpline(run); ok {
		return []Segment{sp}
	}

	left := f.fitRun(run[:worst+1], depth-1)
	right := f.fitRun(run[worst:], depth-1)
	return append(left, right...)
}

// polyline is the degenerate-fit fallback: one line per point pair,
// trivially within any tolerance.
func polyline(run []geom.Point) []Segment {
	out := make([]Segment, 0, len(run)-1)
	for i := 1; i < len(run); i++ {
		out = append(out, Line{From: run[i-1], To: run[i]})
	}
	return out
}

// maxChordDeviation finds the run point farthest from the chord between
// the run's endpoints.
func maxChordDeviation(run []geom.Point) (idx int, dev float64) {
	a, b := run[0], run[len(run)-1]
	idx = len(run) / 2
	for i := 1; i < len(run)-1; i++ {
		if d := geom.SegmentDistance(run[i], a, b); d > dev {
			idx, dev = i, d
		}
	}
	return idx, dev
}

// fitArc tries a circular arc for the run. The center starts from a
// least-squares circle over all run points and is then projected onto
// the perpendicular bisector of the endpoint chord, so the arc passes
// exactly through both endpoints while the noise of intermediate
// points averages out. Non-finite or non-positive radii are rejected,
// as is any run point deviating radially beyond the tolerance.
func (f Fitter) fitArc(run []geom.Point, mid int) (Arc, bool) {
	a, m, b := run[0], run[mid], run[len(run)-1]
	ls, ok := leastSquaresCenter(run)
	if !ok {
		return Arc{}, false
	}

	// Project onto the chord bisector: c = midpoint + t * chord normal.
	chord := b.Sub(a)
	if chord.Norm() == 0 {
		return Arc{}, false
	}
	normal := geom.Pt(-chord.Y, chord.X).Normalize()
	midpt := a.Midpoint(b)
	center := midpt.Add(normal.Mul(ls.Sub(midpt).Dot(normal)))

	radius := center.Distance(a)
	if !isFinite(radius) || radius <= 0 {
		return Arc{}, false
	}
	for _, p := range run {
		if math.Abs(center.Distance(p)-radius) > f.Tolerance {
			return Arc{}, false
		}
	}

	start := a.Sub(center).Angle()
	via := m.Sub(center).Angle()
	end := b.Sub(center).Angle()
	arc := Arc{Center: center, Radius: radius, StartAngle: start, EndAngle: end}
	// The sweep must pass through the via point; otherwise the arc runs
	// the short way around the wrong side.
	if mod2pi(via-start) > mod2pi(end-start) {
		arc.Clockwise = true
	}
	return arc, true
}

// leastSquaresCenter solves the Kasa circle fit over the points. With
// three non-collinear points it degenerates to the circumcenter.
func leastSquaresCenter(pts []geom.Point) (geom.Point, bool) {
	n := float64(len(pts))
	var mx, my float64
	for _, p := range pts {
		mx += p.X
		my += p.Y
	}
	mx /= n
	my /= n

	var suu, suv, svv, suuu, svvv, suvv, svuu float64
	for _, p := range pts {
		u, v := p.X-mx, p.Y-my
		suu += u * u
		suv += u * v
		svv += v * v
		suuu += u * u * u
		svvv += v * v * v
		suvv += u * v * v
		svuu += v * u * u
	}
	det := suu*svv - suv*suv
	if math.Abs(det) < 1e-9 {
		return geom.Point{}, false
	}
	cu := ((suuu+suvv)/2*svv - (svvv+svuu)/2*suv) / det
	cv := ((svvv+svuu)/2*suu - (suuu+suvv)/2*suv) / det
	c := geom.Pt(mx+cu, my+cv)
	if !isFinite(c.X) || !isFinite(c.Y) {
		return geom.Point{}, false
	}
	return c, true
}

// fitSpline runs a Catmull-Rom curve through a reduced control set and
// accepts it when every run point stays within tolerance of the curve.
func (f Fitter) fitSpline(run []geom.Point) (Spline, bool) {
	kept := reduceOpen(run, f.Tolerance/2)
	if len(kept) < 3 {
		return Spline{}, false
	}
	controls := make([]geom.Point, len(kept))
	for i, k := range kept {
		controls[i] = run[k]
	}
	sp := Spline{Controls: controls}

	// Deviation is measured against a dense sampling of the Bézier
	// pieces bracketing each run point.
	samples := sampleBeziers(sp.Beziers(), 16)
	for _, p := range run {
		if polylineDistance(p, samples) > f.Tolerance {
			return Spline{}, false
		}
	}
	return sp, true
}

func sampleBeziers(bz []CubicBezier, per int) []geom.Point {
	out := make([]geom.Point, 0, len(bz)*per+1)
	for i, b := range bz {
		start := 0
		if i > 0 {
			start = 1
		}
		for j := start; j <= per; j++ {
			out = append(out, b.PointAt(float64(j)/float64(per)))
		}
	}
	return out
}

func polylineDistance(p geom.Point, pts []geom.Point) float64 {
	if len(pts) == 0 {
		return 0
	}
	best := p.Distance(pts[0])
	for i := 1; i < len(pts); i++ {
		if d := geom.SegmentDistance(p, pts[i-1], pts[i]); d < best {
			best = d
		}
	}
	return best
}

// reduceOpen keeps the significant vertices of an open polyline,
// splitting recursively at the point farthest from the current chord.
// The returned indices are ascending and always include both ends.
func reduceOpen(pts []geom.Point, eps float64) []int {
	kept := []int{0}
	var rec func(lo, hi int)
	rec = func(lo, hi int) {
		if hi-lo < 2 {
			kept = append(kept, hi)
			return
		}
		idx, dev := lo, 0.0
		for i := lo + 1; i < hi; i++ {
			if d := geom.SegmentDistance(pts[i], pts[lo], pts[hi]); d > dev {
				idx, dev = i, d
			}
		}
		if dev <= eps {
			kept = append(kept, hi)
			return
		}
		rec(lo, idx)
		rec(idx, hi)
	}
	rec(0, len(pts)-1)
	return kept
}

// reduceRing reduces a closed ring by anchoring at index 0 and the
// point farthest from it, then reducing the two halves.
func reduceRing(pts []geom.Point, eps float64) []int {
	n := len(pts)
	far := n / 2
	dist := 0.0
	for i := 1; i < n; i++ {
		if d := pts[0].Distance(pts[i]); d > dist {
			far, dist = i, d
		}
	}

	kept := reduceOpen(pts[:far+1], eps)
	second := append(append([]geom.Point{}, pts[far:]...), pts[0])
	for _, k := range reduceOpen(second, eps)[1:] {
		idx := (far + k) % n
		if idx != 0 {
			kept = append(kept, idx)
		}
	}
	return kept
}

func angleDiff(a, b float64) float64 {
	d := a - b
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

func mod2pi(a float64) float64 {
	for a < 0 {
		a += 2 * math.Pi
	}
	for a >= 2*math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

func isFinite(v float64) bool { return !math.IsInf(v, 0) && !math.IsNaN(v) }
